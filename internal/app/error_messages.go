// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package app holds the message strings the storage service writes into
// response bodies. Bodies never carry internal error details; those only go
// to the log.
package app

const (
	// MsgInvalidJSON is returned when a request body cannot be decoded.
	MsgInvalidJSON = "invalid JSON was passed"

	// MsgInvalidDataProvided is returned when a decoded request fails
	// validation (bad encoding, short verifier, iteration floor, ...).
	MsgInvalidDataProvided = "invalid data provided"

	// MsgInvalidCredentials covers both an unknown identifier and a wrong
	// verifier.
	MsgInvalidCredentials = "invalid identifier or verifier"

	// MsgIdentifierTaken is returned by registration for an existing
	// identifier.
	MsgIdentifierTaken = "identifier already registered"

	MsgAccountNotFound = "account not found"

	// MsgUnauthorized is returned for a missing, malformed or expired
	// bearer token.
	MsgUnauthorized = "token is expired or invalid"

	MsgStorageUnavailable  = "storage temporarily unavailable"
	MsgInternalServerError = "internal server error"
)
