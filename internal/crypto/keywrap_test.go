package crypto

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// cheap Argon2id parameters so the suite stays fast
func newTestWrapper() *KeyWrapper {
	return NewKeyWrapperWithParams(1, 8*1024, 1)
}

func TestGenerateSalt_LengthAndRandomness(t *testing.T) {
	w := newTestWrapper()

	s1, err := w.GenerateSalt()
	require.NoError(t, err)
	s2, err := w.GenerateSalt()
	require.NoError(t, err)

	assert.Len(t, s1, saltSize)
	assert.Len(t, s2, saltSize)
	assert.False(t, bytes.Equal(s1, s2), "expected salts to differ")
}

func TestDeriveKEK_DeterministicForSameInputs(t *testing.T) {
	w := newTestWrapper()
	salt := bytes.Repeat([]byte{0xAB}, saltSize)

	k1 := w.DeriveKEK("correct horse battery staple", salt)
	k2 := w.DeriveKEK("correct horse battery staple", salt)

	assert.Len(t, k1, 32)
	assert.Equal(t, k1, k2)
}

func TestDeriveKEK_DifferentSaltProducesDifferentKEK(t *testing.T) {
	w := newTestWrapper()

	k1 := w.DeriveKEK("same password", bytes.Repeat([]byte{0x01}, saltSize))
	k2 := w.DeriveKEK("same password", bytes.Repeat([]byte{0x02}, saltSize))

	assert.NotEqual(t, k1, k2)
}

func TestWrapUnwrap_RoundTrip(t *testing.T) {
	w := newTestWrapper()
	secret := bytes.Repeat([]byte{0xDD}, KeySize)
	kek := bytes.Repeat([]byte{0x2A}, 32)

	blob, err := w.Wrap(secret, kek)
	require.NoError(t, err)
	assert.NotContains(t, string(blob), string(secret))

	got, err := w.Unwrap(blob, kek)
	require.NoError(t, err)
	assert.Equal(t, secret, got)
}

func TestWrap_NonceRandomness(t *testing.T) {
	w := newTestWrapper()
	secret := bytes.Repeat([]byte{0xDD}, KeySize)
	kek := bytes.Repeat([]byte{0x2A}, 32)

	b1, err := w.Wrap(secret, kek)
	require.NoError(t, err)
	b2, err := w.Wrap(secret, kek)
	require.NoError(t, err)

	assert.NotEqual(t, b1, b2)
}

func TestUnwrap_WrongKEK(t *testing.T) {
	w := newTestWrapper()
	blob, err := w.Wrap([]byte("secret"), bytes.Repeat([]byte{0x01}, 32))
	require.NoError(t, err)

	_, err = w.Unwrap(blob, bytes.Repeat([]byte{0x02}, 32))
	assert.ErrorIs(t, err, ErrDecryptionFailed)
}

func TestUnwrap_TooShort(t *testing.T) {
	w := newTestWrapper()

	_, err := w.Unwrap([]byte{1, 2, 3}, bytes.Repeat([]byte{0x01}, 32))
	assert.ErrorIs(t, err, ErrDecryptionFailed)
}

func TestWrap_InvalidKEKLength(t *testing.T) {
	w := newTestWrapper()

	_, err := w.Wrap([]byte("secret"), []byte("short"))
	assert.Error(t, err)
}
