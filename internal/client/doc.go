// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package client implements the command-line client runtime.
//
// It parses the subcommand and its operands, calls the backup service and
// renders the result to the terminal. The background status cache job is
// started only by the "watch" command.
package client
