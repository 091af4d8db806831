// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package codec converts key material and ciphertext to and from the text form
// used on the wire (standard, padded base64).
//
// Large payloads are converted chunk by chunk into a pre-sized buffer. Chunk
// sizes are multiples of 3 (encode) and 4 (decode), so padding can only
// appear in the last chunk and the output is identical to a single-shot
// conversion.
package codec

import (
	"encoding/base64"
	"errors"
	"fmt"
	"strings"
)

const (
	// encodeChunk must stay a multiple of 3.
	encodeChunk = 48 * 1024
	// decodeChunk must stay a multiple of 4.
	decodeChunk = 64 * 1024
)

// ErrMalformedInput is returned by [Decode] when the text is not valid
// padded base64.
var ErrMalformedInput = errors.New("malformed encoded input")

var enc = base64.StdEncoding

// Encode returns the text form of b.
func Encode(b []byte) string {
	if len(b) <= encodeChunk {
		return enc.EncodeToString(b)
	}

	var sb strings.Builder
	sb.Grow(enc.EncodedLen(len(b)))

	buf := make([]byte, enc.EncodedLen(encodeChunk))
	for off := 0; off < len(b); off += encodeChunk {
		end := min(off+encodeChunk, len(b))
		n := enc.EncodedLen(end - off)
		enc.Encode(buf[:n], b[off:end])
		sb.Write(buf[:n])
	}

	return sb.String()
}

// Decode returns the bytes represented by s. Decode(Encode(x)) == x for
// every x.
func Decode(s string) ([]byte, error) {
	if len(s)%4 != 0 {
		return nil, fmt.Errorf("%w: length %d is not a multiple of 4", ErrMalformedInput, len(s))
	}
	if len(s) <= decodeChunk {
		out, err := enc.DecodeString(s)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrMalformedInput, err)
		}
		return out, nil
	}

	out := make([]byte, 0, enc.DecodedLen(len(s)))
	buf := make([]byte, enc.DecodedLen(decodeChunk))
	for off := 0; off < len(s); off += decodeChunk {
		end := min(off+decodeChunk, len(s))
		chunk := s[off:end]
		if end < len(s) && strings.ContainsRune(chunk, '=') {
			return nil, fmt.Errorf("%w: padding before end of input at chunk offset %d", ErrMalformedInput, off)
		}
		n, err := enc.Decode(buf, []byte(chunk))
		if err != nil {
			return nil, fmt.Errorf("%w: at chunk offset %d: %v", ErrMalformedInput, off, err)
		}
		out = append(out, buf[:n]...)
	}

	return out, nil
}

// DecodeLen decodes s and checks that the result has exactly n bytes.
func DecodeLen(s string, n int) ([]byte, error) {
	b, err := Decode(s)
	if err != nil {
		return nil, err
	}
	if len(b) != n {
		return nil, fmt.Errorf("%w: got %d bytes, want %d", ErrMalformedInput, len(b), n)
	}
	return b, nil
}
