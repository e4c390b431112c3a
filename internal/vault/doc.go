// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package vault provides secure credential stores for the backup store
// master key.
//
// [KeyringVault] keeps the key in the operating system keyring (Keychain,
// Secret Service, Windows Credential Manager). [FileVault] keeps it in a
// passphrase-protected file for hosts without a keyring. Both satisfy
// [crypto.SecretVault]; the key lives independently of the store file and
// is never rotated when the store is recreated.
package vault
