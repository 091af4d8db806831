// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import "errors"

// ErrEmptyAuthorizationHeader is returned by the auth middleware when the
// request has no "Authorization" header at all. A malformed header is
// reported as utils.ErrInvalidAuthorizationHeader.
var ErrEmptyAuthorizationHeader = errors.New("empty `Authorization` header")
