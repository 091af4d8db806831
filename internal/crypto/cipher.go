// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package crypto

import (
	"encoding/json"
	"fmt"

	"github.com/MKhiriev/go-zk-vault/internal/codec"
	"github.com/MKhiriev/go-zk-vault/models"
)

// Encrypt implements [VaultCipher]. It marshals record to JSON (field order
// is fixed by the struct definition), draws a fresh 12-byte IV and seals the
// bytes with AES-256-GCM. Both IV and ciphertext are returned codec-encoded
// and must be stored together.
func (k *keyChainService) Encrypt(record models.VaultRecord, key *EncryptionKey) (models.EncryptedVault, error) {
	aead, err := key.cipher()
	if err != nil {
		return models.EncryptedVault{}, fmt.Errorf("%w: %w", ErrEncryptionFailed, err)
	}

	if record.Items == nil {
		record.Items = make([]models.VaultItem, 0)
	}
	plaintext, err := json.Marshal(record)
	if err != nil {
		return models.EncryptedVault{}, fmt.Errorf("%w: marshal record: %v", ErrEncryptionFailed, err)
	}
	defer clear(plaintext)

	// A new IV on every call, including re-saves of unchanged content.
	iv, err := readRandom(k.provider, aead.NonceSize())
	if err != nil {
		return models.EncryptedVault{}, err
	}

	ciphertext := aead.Seal(nil, iv, plaintext, nil)

	return models.EncryptedVault{
		IV:         codec.Encode(iv),
		Ciphertext: codec.Encode(ciphertext),
	}, nil
}

// Decrypt implements [VaultCipher]. Malformed encoding, a wrong IV length, a
// tag mismatch, a wrong or destroyed key and undecodable plaintext all end
// in the same ErrDecryptionFailed.
func (k *keyChainService) Decrypt(vault models.EncryptedVault, key *EncryptionKey) (models.VaultRecord, error) {
	aead, err := key.cipher()
	if err != nil {
		return models.VaultRecord{}, ErrDecryptionFailed
	}

	iv, err := codec.DecodeLen(vault.IV, aead.NonceSize())
	if err != nil {
		return models.VaultRecord{}, ErrDecryptionFailed
	}
	ciphertext, err := codec.Decode(vault.Ciphertext)
	if err != nil {
		return models.VaultRecord{}, ErrDecryptionFailed
	}

	plaintext, err := aead.Open(nil, iv, ciphertext, nil)
	if err != nil {
		return models.VaultRecord{}, ErrDecryptionFailed
	}
	defer clear(plaintext)

	var record models.VaultRecord
	if err = json.Unmarshal(plaintext, &record); err != nil {
		return models.VaultRecord{}, ErrDecryptionFailed
	}
	if record.Items == nil {
		record.Items = make([]models.VaultItem, 0)
	}

	return record, nil
}
