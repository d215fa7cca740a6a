package dotfile

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/seqkit/loopr/internal/errors"
	"github.com/seqkit/loopr/internal/testutil"
)

func TestInitAndRead(t *testing.T) {
	dir := testutil.TempDir(t)
	cfg := testutil.WriteFile(t, dir, "project_config.yaml", "name: p\noutput_dir: out\n")

	path := PathIn(dir)
	if err := Init(path, cfg, false); err != nil {
		t.Fatalf("Init() returned error: %v", err)
	}

	got, err := ReadConfigPath(dir, nil)
	if err != nil {
		t.Fatalf("ReadConfigPath() returned error: %v", err)
	}
	if got != cfg {
		t.Errorf("ReadConfigPath() = %q, want %q", got, cfg)
	}
}

func TestInitRelativeConfigPath(t *testing.T) {
	dir := testutil.TempDir(t)
	testutil.WriteFile(t, dir, "project_config.yaml", "name: p\n")

	if err := Init(PathIn(dir), "project_config.yaml", false); err != nil {
		t.Fatalf("Init() returned error: %v", err)
	}

	got, err := ReadConfigPath(dir, nil)
	if err != nil {
		t.Fatalf("ReadConfigPath() returned error: %v", err)
	}
	want := filepath.Join(dir, "project_config.yaml")
	if got != want {
		t.Errorf("ReadConfigPath() = %q, want %q", got, want)
	}
}

func TestInitRefusesExisting(t *testing.T) {
	dir := testutil.TempDir(t)
	cfg := testutil.WriteFile(t, dir, "project_config.yaml", "name: p\n")

	path := PathIn(dir)
	if err := Init(path, cfg, false); err != nil {
		t.Fatalf("first Init() returned error: %v", err)
	}

	err := Init(path, cfg, false)
	if err == nil {
		t.Fatal("expected error for existing dotfile, got nil")
	}
	if !errors.IsAlreadyExists(err) {
		t.Errorf("expected ErrAlreadyExists, got %v", err)
	}

	// force overwrites
	if err := Init(path, cfg, true); err != nil {
		t.Errorf("forced Init() returned error: %v", err)
	}
}

func TestInitRejectsMissingConfig(t *testing.T) {
	dir := testutil.TempDir(t)

	err := Init(PathIn(dir), "no_such_config.yaml", false)
	if err == nil {
		t.Fatal("expected error for missing config, got nil")
	}
	if !errors.IsNotFound(err) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestFindInParents(t *testing.T) {
	dir := testutil.TempDir(t)
	cfg := testutil.WriteFile(t, dir, "project_config.yaml", "name: p\n")
	if err := Init(PathIn(dir), cfg, false); err != nil {
		t.Fatalf("Init() returned error: %v", err)
	}

	nested := filepath.Join(dir, "a", "b", "c")
	if err := os.MkdirAll(nested, 0755); err != nil {
		t.Fatalf("failed to create nested dirs: %v", err)
	}

	found, err := Find(nested)
	if err != nil {
		t.Fatalf("Find() returned error: %v", err)
	}
	if found != PathIn(dir) {
		t.Errorf("Find() = %q, want %q", found, PathIn(dir))
	}
}

func TestFindNotFound(t *testing.T) {
	dir := testutil.TempDir(t)

	_, err := Find(dir)
	if err == nil {
		t.Fatal("expected error when no dotfile exists, got nil")
	}
	if !errors.IsNotFound(err) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}
