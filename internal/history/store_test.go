package history_test

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"triagem/internal/history"
)

func openStore(t *testing.T) *history.Store {
	t.Helper()
	store, err := history.Open(context.Background(), filepath.Join(t.TempDir(), "db", "history.db"))
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func TestRecordAndGet(t *testing.T) {
	store := openStore(t)
	ctx := context.Background()

	created := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)
	entry, err := store.Record(ctx, history.Entry{
		Video:          "/videos/entrevista.mp4",
		CreatedAt:      created,
		Frames:         12,
		VisualScore:    1.13,
		AudioScore:     9,
		TotalScore:     5.85,
		Risk:           "MODERADO",
		Bruises:        2,
		Marks:          1,
		AudioAvailable: true,
		ReportPath:     "/out/RELATORIO_FINAL_INTEGRADO.json",
	})
	if err != nil {
		t.Fatalf("Record failed: %v", err)
	}
	if len(entry.ID) != 36 {
		t.Fatalf("expected uuid id, got %q", entry.ID)
	}

	got, err := store.Get(ctx, entry.ID)
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if !got.CreatedAt.Equal(created) || got.Risk != "MODERADO" || !got.AudioAvailable || got.TotalScore != 5.85 {
		t.Fatalf("unexpected entry: %+v", got)
	}

	short, err := store.Get(ctx, entry.ID[:8])
	if err != nil || short.ID != entry.ID {
		t.Fatalf("expected prefix lookup to resolve, got %+v err=%v", short, err)
	}
}

func TestGetUnknown(t *testing.T) {
	store := openStore(t)
	if _, err := store.Get(context.Background(), "missing"); !errors.Is(err, history.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestRecordRequiresVideo(t *testing.T) {
	store := openStore(t)
	if _, err := store.Record(context.Background(), history.Entry{Risk: "BAIXO"}); err == nil {
		t.Fatal("expected error without video")
	}
}

func TestListOrderAndLimitAndClear(t *testing.T) {
	store := openStore(t)
	ctx := context.Background()
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	for i, name := range []string{"a.mp4", "b.mp4", "c.mp4"} {
		if _, err := store.Record(ctx, history.Entry{Video: name, Risk: "BAIXO", CreatedAt: base.Add(time.Duration(i) * time.Hour)}); err != nil {
			t.Fatalf("Record %s: %v", name, err)
		}
	}

	all, err := store.List(ctx, 0)
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(all) != 3 || all[0].Video != "c.mp4" || all[2].Video != "a.mp4" {
		t.Fatalf("unexpected order: %+v", all)
	}

	limited, err := store.List(ctx, 2)
	if err != nil {
		t.Fatalf("List limited failed: %v", err)
	}
	if len(limited) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(limited))
	}

	removed, err := store.Clear(ctx)
	if err != nil {
		t.Fatalf("Clear failed: %v", err)
	}
	if removed != 3 {
		t.Fatalf("expected 3 removed, got %d", removed)
	}
	if remaining, _ := store.List(ctx, 0); len(remaining) != 0 {
		t.Fatalf("expected empty history, got %d", len(remaining))
	}
}

func TestReopenKeepsSchema(t *testing.T) {
	path := filepath.Join(t.TempDir(), "history.db")
	ctx := context.Background()
	store, err := history.Open(ctx, path)
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	if _, err := store.Record(ctx, history.Entry{Video: "x.mp4", Risk: "ALTO"}); err != nil {
		t.Fatalf("Record failed: %v", err)
	}
	_ = store.Close()

	reopened, err := history.Open(ctx, path)
	if err != nil {
		t.Fatalf("reopen failed: %v", err)
	}
	defer reopened.Close()
	entries, err := reopened.List(ctx, 0)
	if err != nil || len(entries) != 1 {
		t.Fatalf("expected persisted entry, got %d err=%v", len(entries), err)
	}
}
