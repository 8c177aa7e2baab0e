package storage

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/dmitrijs2005/deployhq/internal/common"
)

// LoadJSON decodes the value under key into v. It reports found=false when
// the key is absent. Undecodable data yields an error wrapping
// common.ErrStorageCorrupt; v is left untouched in that case.
func LoadJSON(ctx context.Context, repo Repository, key string, v any) (bool, error) {
	raw, err := repo.Get(ctx, key)
	if err != nil {
		return false, err
	}
	if raw == nil {
		return false, nil
	}
	if !json.Valid(raw) {
		return true, fmt.Errorf("%s: %w", key, common.ErrStorageCorrupt)
	}
	if err := json.Unmarshal(raw, v); err != nil {
		return true, fmt.Errorf("%s: %w: %v", key, common.ErrStorageCorrupt, err)
	}
	return true, nil
}

// SaveJSON replaces the value under key with the JSON encoding of v.
func SaveJSON(ctx context.Context, repo Repository, key string, v any) error {
	b, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encode %s: %w", key, err)
	}
	return repo.Set(ctx, key, b)
}
