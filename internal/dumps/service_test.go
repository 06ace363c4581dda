package dumps

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestListReturnsFilesNewestFirst(t *testing.T) {
	dir := t.TempDir()
	older := filepath.Join(dir, "store-2023-01.db.gz")
	newer := filepath.Join(dir, "store-2023-02.db.gz")
	if err := os.WriteFile(older, []byte("old dump"), 0o644); err != nil {
		t.Fatalf("failed to write file: %v", err)
	}
	if err := os.WriteFile(newer, []byte("new dump data"), 0o644); err != nil {
		t.Fatalf("failed to write file: %v", err)
	}
	past := time.Now().Add(-24 * time.Hour)
	if err := os.Chtimes(older, past, past); err != nil {
		t.Fatalf("failed to age file: %v", err)
	}

	service := NewService(ServiceConfig{Dir: dir, HrefPrefix: "/downloads/"})
	files, err := service.List()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(files) != 2 {
		t.Fatalf("expected 2 files, got %d", len(files))
	}
	if files[0].Name != "store-2023-02.db.gz" {
		t.Fatalf("expected newest file first, got %q", files[0].Name)
	}
	if files[0].Href != "/downloads/store-2023-02.db.gz" {
		t.Fatalf("unexpected href %q", files[0].Href)
	}
	if files[1].SizeBytes != int64(len("old dump")) {
		t.Fatalf("unexpected size %d", files[1].SizeBytes)
	}
}

func TestListSkipsDirectoriesAndHiddenFiles(t *testing.T) {
	dir := t.TempDir()
	if err := os.Mkdir(filepath.Join(dir, "staging"), 0o755); err != nil {
		t.Fatalf("failed to make subdir: %v", err)
	}
	if err := os.WriteFile(filepath.Join(dir, ".tmp-upload"), []byte("x"), 0o644); err != nil {
		t.Fatalf("failed to write hidden file: %v", err)
	}
	if err := os.WriteFile(filepath.Join(dir, "store.db.gz"), []byte("dump"), 0o644); err != nil {
		t.Fatalf("failed to write file: %v", err)
	}

	service := NewService(ServiceConfig{Dir: dir, HrefPrefix: "/downloads"})
	files, err := service.List()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(files) != 1 || files[0].Name != "store.db.gz" {
		t.Fatalf("unexpected listing: %#v", files)
	}
}

func TestListMissingDirectoryYieldsEmptyList(t *testing.T) {
	service := NewService(ServiceConfig{Dir: filepath.Join(t.TempDir(), "absent"), HrefPrefix: "/downloads"})
	files, err := service.List()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if files == nil || len(files) != 0 {
		t.Fatalf("expected empty non-nil listing, got %#v", files)
	}

	unconfigured := NewService(ServiceConfig{})
	files, err = unconfigured.List()
	if err != nil || len(files) != 0 {
		t.Fatalf("expected empty listing for unconfigured dir, got %#v err=%v", files, err)
	}
}
