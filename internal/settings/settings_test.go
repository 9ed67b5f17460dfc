package settings

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestLoadDefaultsWhenMissing(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")

	s, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if s.Endpoint != "http://localhost:8777" {
		t.Errorf("Endpoint = %q", s.Endpoint)
	}
	if strings.Join(s.Sources, ",") != "remote,bolls,static" {
		t.Errorf("Sources = %v", s.Sources)
	}
	if s.ToastDuration != 8*time.Second {
		t.Errorf("ToastDuration = %v", s.ToastDuration)
	}
	if !s.StaticFallback {
		t.Error("StaticFallback should default to true")
	}
}

func TestLoadFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	yaml := `endpoint: http://127.0.0.1:9000
sources: [socket, bolls, static]
translation: WEB
toast_duration: 3s
`
	if err := os.WriteFile(path, []byte(yaml), 0o644); err != nil {
		t.Fatal(err)
	}

	s, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if s.Endpoint != "http://127.0.0.1:9000" || s.Translation != "WEB" {
		t.Errorf("unexpected settings %+v", s)
	}
	if len(s.Sources) != 3 || s.Sources[1] != "bolls" {
		t.Errorf("Sources = %v", s.Sources)
	}
	if s.ToastDuration != 3*time.Second {
		t.Errorf("ToastDuration = %v", s.ToastDuration)
	}
}

func TestLoadEnvOverride(t *testing.T) {
	t.Setenv("VOTD_TRANSLATION", "ASV")
	s, err := Load(filepath.Join(t.TempDir(), "config.yaml"))
	if err != nil {
		t.Fatal(err)
	}
	if s.Translation != "ASV" {
		t.Errorf("Translation = %q, want ASV", s.Translation)
	}
}

func TestLoadCorrupted(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	os.WriteFile(path, []byte("sources: [unterminated"), 0o644)

	if _, err := Load(path); err == nil {
		t.Error("expected error for corrupted config")
	}
}

func TestSaveThemeKeepsOtherKeys(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.yaml")
	if err := SaveTheme(path, "dracula"); err != nil {
		t.Fatalf("SaveTheme: %v", err)
	}

	if err := os.WriteFile(path, []byte("theme: dracula\ntranslation: WEB\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := SaveTheme(path, "solarized-light"); err != nil {
		t.Fatal(err)
	}

	s, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if s.CurrentTheme != "solarized-light" {
		t.Errorf("CurrentTheme = %q", s.CurrentTheme)
	}
	if s.Translation != "WEB" {
		t.Errorf("Translation = %q, SaveTheme dropped it", s.Translation)
	}
}
