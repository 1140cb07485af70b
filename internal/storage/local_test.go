package storage

import (
	"context"
	"os"
	"path/filepath"
	"testing"
)

func TestLocalStoreSave(t *testing.T) {
	dir := t.TempDir()
	s, err := NewLocalStore(dir, "/uploads")
	if err != nil {
		t.Fatalf("NewLocalStore: %v", err)
	}

	url, err := s.Save(context.Background(), "abc123.png", "image/png", []byte("fake png"))
	if err != nil {
		t.Fatalf("Save: %v", err)
	}
	if url != "/uploads/abc123.png" {
		t.Errorf("url: got %q", url)
	}

	b, err := os.ReadFile(filepath.Join(dir, "abc123.png"))
	if err != nil {
		t.Fatalf("stored file missing: %v", err)
	}
	if string(b) != "fake png" {
		t.Errorf("stored content mismatch: %q", b)
	}
}

func TestLocalStoreCreatesDir(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "uploads")
	if _, err := NewLocalStore(dir, ""); err != nil {
		t.Fatalf("NewLocalStore: %v", err)
	}
	info, err := os.Stat(dir)
	if err != nil || !info.IsDir() {
		t.Fatalf("upload dir not created: %v", err)
	}
}

func TestLocalStoreDefaultBaseURL(t *testing.T) {
	s, err := NewLocalStore(t.TempDir(), "")
	if err != nil {
		t.Fatalf("NewLocalStore: %v", err)
	}
	url, err := s.Save(context.Background(), "k.jpg", "image/jpeg", []byte("x"))
	if err != nil {
		t.Fatalf("Save: %v", err)
	}
	if url != "/uploads/k.jpg" {
		t.Errorf("url: got %q", url)
	}
}
