package localfs

import (
	"context"
	"io"
	"strings"
	"testing"
)

func TestSaveOpenRemove(t *testing.T) {
	s, err := New(t.TempDir())
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	ctx := context.Background()

	if err := s.Save(ctx, "doc-1_report.pdf", strings.NewReader("pdf bytes")); err != nil {
		t.Fatalf("Save: %v", err)
	}

	f, err := s.Open(ctx, "doc-1_report.pdf")
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	raw, err := io.ReadAll(f)
	f.Close()
	if err != nil {
		t.Fatal(err)
	}
	if string(raw) != "pdf bytes" {
		t.Fatalf("content = %q", raw)
	}

	if err := s.Remove(ctx, "doc-1_report.pdf"); err != nil {
		t.Fatalf("Remove: %v", err)
	}
	if _, err := s.Open(ctx, "doc-1_report.pdf"); err == nil {
		t.Fatal("file still readable after Remove")
	}
}

func TestRemoveMissingFileIsNotAnError(t *testing.T) {
	s, err := New(t.TempDir())
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if err := s.Remove(context.Background(), "never-saved.pdf"); err != nil {
		t.Fatalf("Remove of missing file: %v", err)
	}
}
