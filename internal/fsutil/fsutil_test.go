package fsutil

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/amishk599/tailor/internal/model"
)

func TestWriteFileAtomic_CreatesAndReplaces(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sub", "record.json")

	if err := WriteFileAtomic(path, []byte("first"), 0o644); err != nil {
		t.Fatalf("WriteFileAtomic: %v", err)
	}
	if err := WriteFileAtomic(path, []byte("second"), 0o644); err != nil {
		t.Fatalf("WriteFileAtomic replace: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	if string(data) != "second" {
		t.Errorf("content = %q, want %q", data, "second")
	}
}

func TestWriteFileAtomic_LeavesNoTempFiles(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "record.json")

	if err := WriteFileAtomic(path, []byte("data"), 0o644); err != nil {
		t.Fatalf("WriteFileAtomic: %v", err)
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("ReadDir: %v", err)
	}
	if len(entries) != 1 || entries[0].Name() != "record.json" {
		t.Errorf("expected only record.json in dir, got %v", entries)
	}
}

func TestReadJSON_MissingFile(t *testing.T) {
	var v map[string]string
	err := ReadJSON(filepath.Join(t.TempDir(), "absent.json"), &v)
	if !IsNotExist(err) {
		t.Errorf("expected not-exist error, got %v", err)
	}
}

func TestReadJSON_CorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.json")
	if err := os.WriteFile(path, []byte("{not json"), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	var v map[string]string
	err := ReadJSON(path, &v)
	var corrupt *model.CorruptRecordError
	if !errors.As(err, &corrupt) {
		t.Fatalf("expected CorruptRecordError, got %v", err)
	}
	if corrupt.Path != path {
		t.Errorf("Path = %q, want %q", corrupt.Path, path)
	}
}

func TestWriteReadJSONRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "rec.json")
	in := map[string]int{"seq": 3}
	if err := WriteJSONAtomic(path, in); err != nil {
		t.Fatalf("WriteJSONAtomic: %v", err)
	}
	var out map[string]int
	if err := ReadJSON(path, &out); err != nil {
		t.Fatalf("ReadJSON: %v", err)
	}
	if out["seq"] != 3 {
		t.Errorf("seq = %d, want 3", out["seq"])
	}
}

func TestSlugify(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Acme Corp", "acme_corp"},
		{"Senior ML Engineer!", "senior_ml_engineer"},
		{"  spaced   out  ", "spaced_out"},
		{"", "unknown"},
		{"???", "unknown"},
		{"San Francisco, CA", "san_francisco_ca"},
	}
	for _, tt := range tests {
		if got := Slugify(tt.in); got != tt.want {
			t.Errorf("Slugify(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
