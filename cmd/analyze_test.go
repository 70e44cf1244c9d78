package cmd

import (
	"os"
	"path/filepath"
	"testing"
)

func TestSupportedFiles(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"b.pdf", "a.docx", "notes.txt", "photo.png", "legacy.doc"} {
		if err := os.WriteFile(filepath.Join(dir, name), []byte("x"), 0o600); err != nil {
			t.Fatalf("write %s: %v", name, err)
		}
	}
	if err := os.Mkdir(filepath.Join(dir, "nested.pdf"), 0o700); err != nil {
		t.Fatalf("mkdir: %v", err)
	}

	files, err := supportedFiles(dir)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := []string{"a.docx", "b.pdf", "legacy.doc", "notes.txt"}
	if len(files) != len(want) {
		t.Fatalf("expected %v, got %v", want, files)
	}
	for i, name := range want {
		if files[i] != filepath.Join(dir, name) {
			t.Fatalf("expected %s at %d, got %s", name, i, files[i])
		}
	}
}

func TestSelectFiles(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "cv.txt")
	if err := os.WriteFile(file, []byte("x"), 0o600); err != nil {
		t.Fatalf("write: %v", err)
	}

	got, err := selectFiles(file, false)
	if err != nil || len(got) != 1 || got[0] != file {
		t.Fatalf("expected the file itself, got %v (%v)", got, err)
	}

	got, err = selectFiles(dir, true)
	if err != nil || len(got) != 1 || got[0] != file {
		t.Fatalf("expected all files, got %v (%v)", got, err)
	}

	if _, err := selectFiles(t.TempDir(), true); err == nil {
		t.Fatalf("expected an error for an empty directory")
	}
}
