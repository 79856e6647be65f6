package store

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/mdnaeem95/musollah-sub007/internal/domain"
)

const settingsKey = "settings"

// SettingsRepo persists the user's notification settings (reminder
// offset, muted prayers, alert sound) in the key-value store.
type SettingsRepo struct {
	kv       KV
	defaults domain.Settings
}

// NewSettingsRepo builds a repo that falls back to defaults until the
// user saves something.
func NewSettingsRepo(kv KV, defaults domain.Settings) *SettingsRepo {
	return &SettingsRepo{kv: kv, defaults: defaults}
}

// Get returns the saved settings, or the defaults when none are saved.
func (r *SettingsRepo) Get(ctx context.Context) (domain.Settings, error) {
	blob, ok, err := r.kv.Get(ctx, settingsKey)
	if err != nil {
		return domain.Settings{}, err
	}
	if !ok {
		return r.defaults, nil
	}
	var s domain.Settings
	if err := json.Unmarshal([]byte(blob), &s); err != nil {
		return domain.Settings{}, fmt.Errorf("unmarshal settings: %w", err)
	}
	return s, nil
}

// Save validates and persists settings.
func (r *SettingsRepo) Save(ctx context.Context, s domain.Settings) error {
	if err := s.Validate(); err != nil {
		return err
	}
	blob, err := json.Marshal(s)
	if err != nil {
		return err
	}
	return r.kv.Set(ctx, settingsKey, string(blob))
}
