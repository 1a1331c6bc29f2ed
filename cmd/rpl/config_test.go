package main

import (
	"os"
	"path/filepath"
	"testing"

	"rplcalc/internal/settings"
)

func TestLoadSettingsWithNoRplrcReturnsDefault(t *testing.T) {
	dir := t.TempDir()
	old, _ := os.Getwd()
	defer os.Chdir(old)
	if err := os.Chdir(dir); err != nil {
		t.Fatalf("Chdir: %v", err)
	}
	t.Setenv("HOME", dir)

	set, path, err := loadSettings("")
	if err != nil {
		t.Fatalf("loadSettings: %v", err)
	}
	if path != "" {
		t.Fatalf("path = %q, want empty when no rplrc.toml exists", path)
	}
	if set != settings.Default() {
		t.Fatalf("settings = %+v, want the factory default", set)
	}
}

func TestLoadSettingsAppliesExplicitPath(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "custom.toml")
	body := "base = 16\nangle_mode = \"radians\"\nauto_simplify = false\n"
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	set, used, err := loadSettings(path)
	if err != nil {
		t.Fatalf("loadSettings: %v", err)
	}
	if used != path {
		t.Fatalf("used = %q, want %q", used, path)
	}
	if set.Base != 16 {
		t.Fatalf("Base = %d, want 16", set.Base)
	}
	if set.AngleMode != settings.AngleRadians {
		t.Fatalf("AngleMode = %v, want AngleRadians", set.AngleMode)
	}
	if set.AutoSimplify {
		t.Fatalf("AutoSimplify = true, want false (explicitly set in the file)")
	}
	// Fields absent from the file keep settings.Default()'s values.
	if set.Precision != settings.Default().Precision {
		t.Fatalf("Precision = %d, want the default %d", set.Precision, settings.Default().Precision)
	}
}

func TestFindRplrcWalksUpToAncestor(t *testing.T) {
	root := t.TempDir()
	if err := os.WriteFile(filepath.Join(root, "rplrc.toml"), []byte("base = 2\n"), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	nested := filepath.Join(root, "a", "b", "c")
	if err := os.MkdirAll(nested, 0o755); err != nil {
		t.Fatalf("MkdirAll: %v", err)
	}

	found, ok, err := findRplrc(nested)
	if err != nil {
		t.Fatalf("findRplrc: %v", err)
	}
	if !ok {
		t.Fatalf("findRplrc should have found the ancestor rplrc.toml")
	}
	want, _ := filepath.Abs(filepath.Join(root, "rplrc.toml"))
	if found != want {
		t.Fatalf("found = %q, want %q", found, want)
	}
}
