// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package crypto

import (
	"slices"

	"github.com/rs/zerolog"
)

// KeySize is the size of the store master key in bytes (512 bits).
const KeySize = 64

const redacted = "[REDACTED]"

// Key is the store master key. It must only be handed to [NewStoreCipher];
// every textual rendering of a Key is redacted so it can never end up in a
// log line or a serialized payload by accident.
type Key []byte

// String implements [fmt.Stringer].
func (k Key) String() string { return redacted }

// GoString implements [fmt.GoStringer].
func (k Key) GoString() string { return redacted }

// MarshalJSON keeps the key out of any JSON encoding, zerolog included.
func (k Key) MarshalJSON() ([]byte, error) {
	return []byte(`"` + redacted + `"`), nil
}

// MarshalText keeps the key out of text encodings.
func (k Key) MarshalText() ([]byte, error) {
	return []byte(redacted), nil
}

// Clone returns an independent copy of the key bytes.
func (k Key) Clone() Key {
	return Key(slices.Clone([]byte(k)))
}

// Valid reports whether the key has the expected size.
func (k Key) Valid() bool {
	return len(k) == KeySize
}

// MarshalZerologObject implements [zerolog.LogObjectMarshaler].
func (k Key) MarshalZerologObject(e *zerolog.Event) {
	e.Str("key", redacted).Int("size", len(k))
}
