// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package validators checks what clients send to the storage service
// before it reaches the store.
//
// A Validator accepts any supported model and an optional list of field
// names. With no names every field of that model is checked; with names
// only those are, in the given order, and the first failure is returned.
package validators

import "context"

// Validator validates a value, optionally restricted to the named fields.
type Validator interface {
	Validate(context.Context, any, ...string) error
}
