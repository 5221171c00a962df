package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestEnvStoreMissingFile(t *testing.T) {
	store := NewEnvStore(filepath.Join(t.TempDir(), ".env"))
	id, err := store.BotUserID()
	if err != nil {
		t.Fatal(err)
	}
	if id != "" {
		t.Fatalf("expected empty id before bootstrap, got %q", id)
	}
}

func TestEnvStoreSetPreservesOtherLines(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".env")
	original := "# tanuki configuration\n" +
		"SLACK_BOT_TOKEN=xoxb-abc\n" +
		"SLACK_BOT_USER_ID=UOLD\n" +
		"\n" +
		"GITLAB_URL=https://gitlab.example.com\n"
	if err := os.WriteFile(path, []byte(original), 0o600); err != nil {
		t.Fatal(err)
	}

	store := NewEnvStore(path)
	if err := store.SetBotUserID("UNEW"); err != nil {
		t.Fatal(err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	want := "# tanuki configuration\n" +
		"SLACK_BOT_TOKEN=xoxb-abc\n" +
		"SLACK_BOT_USER_ID=UNEW\n" +
		"\n" +
		"GITLAB_URL=https://gitlab.example.com\n"
	if string(data) != want {
		t.Fatalf("file rewritten incorrectly:\n%q\nwant:\n%q", data, want)
	}

	id, err := store.BotUserID()
	if err != nil {
		t.Fatal(err)
	}
	if id != "UNEW" {
		t.Fatalf("BotUserID = %q, want UNEW", id)
	}
}

func TestEnvStoreSetAppendsWhenAbsent(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".env")
	if err := os.WriteFile(path, []byte("SLACK_BOT_TOKEN=xoxb-abc\n"), 0o600); err != nil {
		t.Fatal(err)
	}

	store := NewEnvStore(path)
	if err := store.SetBotUserID("U42"); err != nil {
		t.Fatal(err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	want := "SLACK_BOT_TOKEN=xoxb-abc\nSLACK_BOT_USER_ID=U42\n"
	if string(data) != want {
		t.Fatalf("file = %q, want %q", data, want)
	}
}

func TestEnvStoreSetCreatesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".env")
	store := NewEnvStore(path)
	if err := store.SetBotUserID("U1"); err != nil {
		t.Fatal(err)
	}

	id, err := store.BotUserID()
	if err != nil {
		t.Fatal(err)
	}
	if id != "U1" {
		t.Fatalf("BotUserID = %q, want U1", id)
	}
}

func TestBotIdentityRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".env")
	store := NewEnvStore(path)

	identity, err := NewBotIdentity(store)
	if err != nil {
		t.Fatal(err)
	}
	if identity.UserID() != "" {
		t.Fatalf("expected empty identity, got %q", identity.UserID())
	}

	if err := identity.Set("UBOT"); err != nil {
		t.Fatal(err)
	}

	// A fresh identity sees the persisted value.
	reloaded, err := NewBotIdentity(NewEnvStore(path))
	if err != nil {
		t.Fatal(err)
	}
	if reloaded.UserID() != "UBOT" {
		t.Fatalf("reloaded identity = %q, want UBOT", reloaded.UserID())
	}
}
