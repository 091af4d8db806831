package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewVaultRecord_SerializesEmptyItems(t *testing.T) {
	data, err := json.Marshal(NewVaultRecord())
	require.NoError(t, err)
	assert.JSONEq(t, `{"items":[]}`, string(data))
}

func TestVaultRecord_CloneIsIndependent(t *testing.T) {
	r := VaultRecord{Items: []VaultItem{{ID: "1", Title: "Mail"}}}
	c := r.Clone()
	c.Items[0].Title = "Bank"

	assert.Equal(t, "Mail", r.Items[0].Title)
	assert.Equal(t, "Bank", c.Items[0].Title)
}

func TestVaultRecord_Find(t *testing.T) {
	r := VaultRecord{Items: []VaultItem{{ID: "a"}, {ID: "b"}}}
	assert.Equal(t, 1, r.Find("b"))
	assert.Equal(t, -1, r.Find("c"))
}

func TestVaultItem_OmitsEmptyOptionalFields(t *testing.T) {
	data, err := json.Marshal(VaultItem{ID: "1", Title: "Mail"})
	require.NoError(t, err)
	assert.JSONEq(t, `{"id":"1","title":"Mail"}`, string(data))
}

func TestKdfParams_IsZeroAndHasSalt(t *testing.T) {
	assert.True(t, KdfParams{}.IsZero())
	p := KdfParams{Algorithm: AlgorithmPBKDF2SHA256, Iterations: 1}
	assert.False(t, p.IsZero())
	assert.False(t, p.HasSalt())
	p.Salt = "c2FsdA=="
	assert.True(t, p.HasSalt())
}

func TestNewAppBuildInfo_DefaultsToNA(t *testing.T) {
	info := NewAppBuildInfo("1.0.0", "", "")
	assert.Equal(t, "1.0.0", info.BuildVersion())
	assert.Equal(t, "N/A", info.BuildDate())
	assert.Equal(t, "N/A", info.BuildCommit())
	assert.Contains(t, info.String(), "Build version: 1.0.0")
}
