package storage_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"cctv-service/internal/service/storage"
)

func TestLocalStore_Save(t *testing.T) {
	dir := t.TempDir()
	store, err := storage.NewLocalStore(dir, "http://localhost:8080/")
	if err != nil {
		t.Fatalf("failed to build store: %v", err)
	}

	url, err := store.Save("site-photo.JPG", strings.NewReader("fake image bytes"))
	if err != nil {
		t.Fatalf("save failed: %v", err)
	}

	if !strings.HasPrefix(url, "http://localhost:8080/uploads/") {
		t.Errorf("url = %q, want the /uploads/ prefix without a double slash", url)
	}
	if !strings.HasSuffix(url, ".jpg") {
		t.Errorf("url = %q, extension should be kept and lowercased", url)
	}
	if strings.Contains(url, "site-photo") {
		t.Errorf("url = %q, original name must not leak into the stored name", url)
	}

	filename := url[strings.LastIndex(url, "/")+1:]
	data, err := os.ReadFile(filepath.Join(dir, filename))
	if err != nil {
		t.Fatalf("stored file missing: %v", err)
	}
	if string(data) != "fake image bytes" {
		t.Errorf("stored content = %q", data)
	}
}

func TestLocalStore_UniqueNames(t *testing.T) {
	store, err := storage.NewLocalStore(t.TempDir(), "http://localhost:8080")
	if err != nil {
		t.Fatalf("failed to build store: %v", err)
	}

	a, err := store.Save("photo.png", strings.NewReader("a"))
	if err != nil {
		t.Fatalf("save failed: %v", err)
	}
	b, err := store.Save("photo.png", strings.NewReader("b"))
	if err != nil {
		t.Fatalf("save failed: %v", err)
	}
	if a == b {
		t.Error("two uploads of the same name must not collide")
	}
}

func TestNewLocalStore_CreatesDir(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "uploads")
	if _, err := storage.NewLocalStore(dir, "http://localhost:8080"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	info, err := os.Stat(dir)
	if err != nil || !info.IsDir() {
		t.Fatalf("upload dir was not created: %v", err)
	}
}
