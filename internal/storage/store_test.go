package storage

import (
	"io"
	"strings"
	"testing"
)

func TestSanitizeFilename(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"plain name", "lecture.mp4", "lecture.mp4"},
		{"spaces become underscores", "my lecture 01.mp4", "my_lecture_01.mp4"},
		{"unsafe characters stripped", `a<b>c:d"e/f\g|h?i*j.mp4`, "abcdefghij.mp4"},
		{"long name truncated", strings.Repeat("a", 80) + ".mp4", strings.Repeat("a", 50)},
		{"empty name", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := SanitizeFilename(tt.input); got != tt.want {
				t.Errorf("SanitizeFilename(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestSaveExistsOpen(t *testing.T) {
	store, err := New(t.TempDir())
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	if store.Exists("video.mp4") {
		t.Fatal("Exists() should be false before Save")
	}

	path, err := store.Save("video.mp4", strings.NewReader("media bytes"))
	if err != nil {
		t.Fatalf("Save() error = %v", err)
	}
	if path != store.Path("video.mp4") {
		t.Errorf("Save() path = %q, want %q", path, store.Path("video.mp4"))
	}

	if !store.Exists("video.mp4") {
		t.Fatal("Exists() should be true after Save")
	}

	f, err := store.Open("video.mp4")
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		t.Fatalf("read blob: %v", err)
	}
	if string(data) != "media bytes" {
		t.Errorf("blob contents = %q", data)
	}
}

func TestSaveReplacesExistingBlob(t *testing.T) {
	store, err := New(t.TempDir())
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	if _, err := store.Save("doc.txt", strings.NewReader("first")); err != nil {
		t.Fatal(err)
	}
	if _, err := store.Save("doc.txt", strings.NewReader("second")); err != nil {
		t.Fatal(err)
	}

	f, err := store.Open("doc.txt")
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()

	data, _ := io.ReadAll(f)
	if string(data) != "second" {
		t.Errorf("blob contents = %q, want %q", data, "second")
	}
}
