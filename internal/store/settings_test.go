package store

import (
	"context"
	"testing"

	"github.com/otgil/otgil/internal/db"
)

func TestGetJWTSecret_GeneratesAndPersists(t *testing.T) {
	database, err := db.Open(":memory:")
	if err != nil {
		t.Fatal(err)
	}
	defer database.Close()

	if err := db.Migrate(database); err != nil {
		t.Fatal(err)
	}

	ctx := context.Background()

	secret1, err := GetJWTSecret(ctx, database)
	if err != nil {
		t.Fatal(err)
	}
	if len(secret1) != 64 { // 32 bytes = 64 hex chars
		t.Fatalf("expected 64 hex chars, got %d", len(secret1))
	}

	secret2, err := GetJWTSecret(ctx, database)
	if err != nil {
		t.Fatal(err)
	}
	if secret1 != secret2 {
		t.Fatalf("expected same secret, got %q and %q", secret1, secret2)
	}
}

func TestSettingRoundTrip(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()

	if _, ok, err := GetSetting(ctx, database, "theme"); err != nil || ok {
		t.Fatalf("expected missing setting, got ok=%v err=%v", ok, err)
	}

	if err := SetSetting(ctx, database, "theme", "light"); err != nil {
		t.Fatal(err)
	}
	if err := SetSetting(ctx, database, "theme", "dark"); err != nil {
		t.Fatal(err)
	}

	value, ok, err := GetSetting(ctx, database, "theme")
	if err != nil || !ok {
		t.Fatalf("GetSetting: ok=%v err=%v", ok, err)
	}
	if value != "dark" {
		t.Errorf("expected 'dark', got %q", value)
	}

	if err := DeleteSetting(ctx, database, "theme"); err != nil {
		t.Fatal(err)
	}
	if err := DeleteSetting(ctx, database, "theme"); err != nil {
		t.Fatalf("deleting twice: %v", err)
	}
	if _, ok, _ := GetSetting(ctx, database, "theme"); ok {
		t.Error("expected setting to be gone")
	}
}
