// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

// VaultItem is a single credential stored in the vault.
// Optional fields are omitted from the serialized form when empty.
type VaultItem struct {
	// ID is unique within one vault and never reused after deletion.
	ID       string `json:"id"`
	Title    string `json:"title"`
	Username string `json:"username,omitempty"`
	Password string `json:"password,omitempty"`
	Notes    string `json:"notes,omitempty"`
}

// VaultRecord is the plaintext vault. It only ever exists in client memory
// while the session is unlocked.
type VaultRecord struct {
	Items []VaultItem `json:"items"`
}

// NewVaultRecord returns an empty record whose Items serialize as [] rather
// than null.
func NewVaultRecord() VaultRecord {
	return VaultRecord{Items: make([]VaultItem, 0)}
}

// Clone returns a deep copy of the record. Saves work on clones so that
// editing can continue while an upload is in flight.
func (r VaultRecord) Clone() VaultRecord {
	items := make([]VaultItem, len(r.Items))
	copy(items, r.Items)
	return VaultRecord{Items: items}
}

// Find returns the index of the item with the given id, or -1.
func (r VaultRecord) Find(id string) int {
	for i := range r.Items {
		if r.Items[i].ID == id {
			return i
		}
	}
	return -1
}

// EncryptedVault is the only form of the vault that is ever sent to or
// received from the storage service. Both fields are codec-encoded text.
type EncryptedVault struct {
	// IV is the per-encryption random nonce (96 bits before encoding).
	IV string `json:"iv"`

	// Ciphertext is the AES-256-GCM output including the authentication tag.
	Ciphertext string `json:"ciphertext"`
}

// VaultEnvelope is what FetchVault returns and SaveVault accepts: the
// encrypted vault together with the parameters needed to re-derive its key.
// Either field may be nil on fetch (no vault saved yet / no params yet).
type VaultEnvelope struct {
	Vault     *EncryptedVault `json:"vault"`
	KdfParams *KdfParams      `json:"kdf_params"`
}
