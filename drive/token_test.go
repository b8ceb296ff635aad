package drive

import (
	"path/filepath"
	"testing"
	"time"

	"golang.org/x/oauth2"
)

func TestToken_SaveLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "token.enc")
	token := &oauth2.Token{
		AccessToken:  "access",
		RefreshToken: "refresh",
		Expiry:       time.Now().Add(time.Hour).Truncate(time.Second),
	}

	if err := SaveToken(path, "passphrase", token); err != nil {
		t.Fatalf("SaveToken() failed: %v", err)
	}
	got, err := LoadToken(path, "passphrase")
	if err != nil {
		t.Fatalf("LoadToken() failed: %v", err)
	}
	if got.AccessToken != token.AccessToken || got.RefreshToken != token.RefreshToken {
		t.Errorf("round trip lost data: got %+v, want %+v", got, token)
	}
}

func TestToken_WrongPassphrase(t *testing.T) {
	path := filepath.Join(t.TempDir(), "token.enc")
	if err := SaveToken(path, "right", &oauth2.Token{AccessToken: "access"}); err != nil {
		t.Fatalf("SaveToken() failed: %v", err)
	}
	if _, err := LoadToken(path, "wrong"); err == nil {
		t.Error("LoadToken() with the wrong passphrase expected error, got nil")
	}
}

func TestOpen_TruncatedBlob(t *testing.T) {
	if _, err := open("passphrase", []byte("short")); err == nil {
		t.Error("open() on a truncated blob expected error, got nil")
	}
}
