package store

import (
	"context"
	"testing"

	"github.com/mdnaeem95/musollah-sub007/internal/domain"
)

func TestSettingsDefaultsUntilSaved(t *testing.T) {
	db := openTestDB(t)
	defaults := domain.Settings{ReminderOffsetMin: 15, Sound: "adhan"}
	repo := NewSettingsRepo(db, defaults)
	ctx := context.Background()

	got, err := repo.Get(ctx)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.ReminderOffsetMin != 15 || got.Sound != "adhan" {
		t.Fatalf("got %+v", got)
	}

	saved := defaults.WithMuted(domain.Sunrise)
	saved.ReminderOffsetMin = 30
	if err := repo.Save(ctx, saved); err != nil {
		t.Fatalf("save: %v", err)
	}

	got, err = repo.Get(ctx)
	if err != nil {
		t.Fatalf("get after save: %v", err)
	}
	if got.ReminderOffsetMin != 30 || !got.MutedSet()[domain.Sunrise] {
		t.Fatalf("got %+v", got)
	}
}

func TestSettingsSaveRejectsInvalidOffset(t *testing.T) {
	db := openTestDB(t)
	repo := NewSettingsRepo(db, domain.Settings{})

	err := repo.Save(context.Background(), domain.Settings{ReminderOffsetMin: 999})
	if err == nil {
		t.Fatal("expected validation error")
	}
}
