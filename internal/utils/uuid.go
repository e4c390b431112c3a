// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package utils provides small helpers shared across the client, such as
// the generator of backup entry identifiers.
package utils

import "github.com/google/uuid"

// UUIDGenerator produces backup entry identifiers. Version 7 UUIDs sort by
// creation time, which keeps store rows roughly in insertion order.
type UUIDGenerator struct {
}

func NewUUIDGenerator() *UUIDGenerator {
	return &UUIDGenerator{}
}

// Generate returns a new UUIDv7, falling back to a random UUIDv4 when the
// v7 generator fails.
func (g *UUIDGenerator) Generate() string {
	v7, err := uuid.NewV7()
	if err != nil {
		return uuid.NewString()
	}

	return v7.String()
}
