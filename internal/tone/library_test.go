package tone

import (
	"errors"
	"io"
	"log/slog"
	"os"
	"testing"

	"github.com/amishk599/tailor/internal/model"
	"github.com/amishk599/tailor/internal/profile"
)

func newTestLibrary(t *testing.T) *Library {
	t.Helper()
	paths := profile.NewPaths(t.TempDir(), "alice")
	return NewLibrary(paths, slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func TestSaveAndGet(t *testing.T) {
	l := newTestLibrary(t)

	err := l.Save(model.ToneConfiguration{
		Name:          "direct_concise",
		Description:   "Short declarative sentences. No filler.",
		ModelProvider: model.ProviderOpenAI,
		ModelName:     "gpt-4o",
	})
	if err != nil {
		t.Fatalf("Save: %v", err)
	}

	tc, err := l.Get("direct_concise")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if tc.Description != "Short declarative sentences. No filler." {
		t.Fatalf("description = %q", tc.Description)
	}
	if tc.CreatedAt.IsZero() {
		t.Fatal("Save did not stamp created_at")
	}
}

func TestGetUnknown(t *testing.T) {
	l := newTestLibrary(t)
	_, err := l.Get("nope")
	if !errors.Is(err, model.ErrNotFound) {
		t.Fatalf("Get error = %v, want ErrNotFound", err)
	}
}

func TestSaveBlankName(t *testing.T) {
	l := newTestLibrary(t)
	err := l.Save(model.ToneConfiguration{Name: "  "})
	if !errors.Is(err, model.ErrInvalidName) {
		t.Fatalf("Save error = %v, want ErrInvalidName", err)
	}
}

func TestListSortedAndSkipsCorrupt(t *testing.T) {
	l := newTestLibrary(t)

	for _, name := range []string{"warm_personal", "direct_concise"} {
		if err := l.Save(model.ToneConfiguration{Name: name, Description: name}); err != nil {
			t.Fatalf("Save %s: %v", name, err)
		}
	}
	if err := os.WriteFile(l.paths.Tone("broken"), []byte(":\n\t- not yaml"), 0o644); err != nil {
		t.Fatalf("write corrupt tone: %v", err)
	}

	tones, err := l.List()
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(tones) != 2 {
		t.Fatalf("List returned %d tones, want 2", len(tones))
	}
	if tones[0].Name != "direct_concise" || tones[1].Name != "warm_personal" {
		t.Fatalf("List order = [%s %s]", tones[0].Name, tones[1].Name)
	}
}

func TestListEmptyDir(t *testing.T) {
	l := newTestLibrary(t)
	tones, err := l.List()
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(tones) != 0 {
		t.Fatalf("List returned %d tones, want 0", len(tones))
	}
}

func TestIncrementUsage(t *testing.T) {
	l := newTestLibrary(t)
	if err := l.Save(model.ToneConfiguration{Name: "direct_concise"}); err != nil {
		t.Fatalf("Save: %v", err)
	}

	for i := 0; i < 3; i++ {
		if err := l.IncrementUsage("direct_concise"); err != nil {
			t.Fatalf("IncrementUsage: %v", err)
		}
	}
	tc, err := l.Get("direct_concise")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if tc.UsageCount != 3 {
		t.Fatalf("usage_count = %d, want 3", tc.UsageCount)
	}
}

func TestSnapshotFreezesContent(t *testing.T) {
	l := newTestLibrary(t)
	original := model.ToneConfiguration{
		Name:        "direct_concise",
		Description: "original prompt text",
	}
	if err := l.Save(original); err != nil {
		t.Fatalf("Save: %v", err)
	}

	snap := Snapshot(original)

	// Editing the stored tone must not change what the snapshot recorded.
	edited := original
	edited.Description = "rewritten prompt text"
	if err := l.Save(edited); err != nil {
		t.Fatalf("Save edited: %v", err)
	}

	if snap.Description != "original prompt text" {
		t.Fatalf("snapshot description = %q, want the original", snap.Description)
	}
}

func TestDeleteAndRename(t *testing.T) {
	l := newTestLibrary(t)
	if err := l.Save(model.ToneConfiguration{Name: "old", Description: "d", UsageCount: 2}); err != nil {
		t.Fatalf("Save: %v", err)
	}

	if err := l.Rename("old", "new"); err != nil {
		t.Fatalf("Rename: %v", err)
	}
	if _, err := l.Get("old"); !errors.Is(err, model.ErrNotFound) {
		t.Fatalf("old tone still readable after rename: %v", err)
	}
	tc, err := l.Get("new")
	if err != nil {
		t.Fatalf("Get renamed: %v", err)
	}
	if tc.UsageCount != 2 {
		t.Fatalf("rename dropped usage_count: %d", tc.UsageCount)
	}

	if err := l.Delete("new"); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if err := l.Delete("new"); !errors.Is(err, model.ErrNotFound) {
		t.Fatalf("second Delete error = %v, want ErrNotFound", err)
	}
}
