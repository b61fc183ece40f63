package state

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/avenirlabs/scorecard-ai/internal/core"
)

func newTestStore(t *testing.T) *SQLiteReportStore {
	t.Helper()
	s, err := NewSQLiteReportStore(filepath.Join(t.TempDir(), "reports.db"))
	if err != nil {
		t.Fatalf("NewSQLiteReportStore error = %v", err)
	}
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func sampleStoredReport(id string) *core.Report {
	return &core.Report{
		ID:       id,
		Markdown: "## Overall Tier: Leader\n\ntext",
		Tier:     core.TierLeader,
		Lead:     core.LeadInfo{Name: "Ada", Company: "Analytical", Industry: "Compute", Email: "ada@example.test"},
		History: []core.AnswerHistoryEntry{
			{Question: "Q1", Answer: core.Choice("Weekly"), PhaseName: "Adoption", AnswerType: core.AnswerChoice, Options: []string{"Daily", "Weekly"}},
			{Question: "Q2", Answer: core.Scale(4), AnswerType: core.AnswerScale},
		},
		CreatedAt: time.Now().UTC(),
	}
}

func TestSQLiteReportStore_SaveAndGet(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	want := sampleStoredReport("rep-1")
	if err := s.Save(ctx, want); err != nil {
		t.Fatalf("Save error = %v", err)
	}

	got, err := s.Get(ctx, "rep-1")
	if err != nil {
		t.Fatalf("Get error = %v", err)
	}
	if got.Markdown != want.Markdown || got.Tier != core.TierLeader {
		t.Errorf("got markdown/tier = %q/%q", got.Markdown, got.Tier)
	}
	if got.Lead != want.Lead {
		t.Errorf("Lead = %+v, want %+v", got.Lead, want.Lead)
	}
	if len(got.History) != 2 {
		t.Fatalf("len(History) = %d, want 2", len(got.History))
	}
	if got.History[1].Answer.Kind() != core.AnswerScale || got.History[1].Answer.ScaleValue() != 4 {
		t.Errorf("history answer round trip = %+v", got.History[1].Answer)
	}
}

func TestSQLiteReportStore_GetMissing(t *testing.T) {
	s := newTestStore(t)
	_, err := s.Get(context.Background(), "nope")
	if !core.IsNotFound(err) {
		t.Errorf("Get(missing) = %v, want not_found", err)
	}
}

func TestSQLiteReportStore_SaveDuplicateFails(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	if err := s.Save(ctx, sampleStoredReport("dup")); err != nil {
		t.Fatalf("first Save error = %v", err)
	}
	if err := s.Save(ctx, sampleStoredReport("dup")); err == nil {
		t.Error("second Save of same id succeeded; reports are immutable")
	}
}

func TestSQLiteReportStore_ListNewestFirst(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	older := sampleStoredReport("older")
	older.CreatedAt = time.Now().Add(-time.Hour).UTC()
	newer := sampleStoredReport("newer")

	if err := s.Save(ctx, older); err != nil {
		t.Fatal(err)
	}
	if err := s.Save(ctx, newer); err != nil {
		t.Fatal(err)
	}

	list, err := s.List(ctx)
	if err != nil {
		t.Fatalf("List error = %v", err)
	}
	if len(list) != 2 || list[0].ID != "newer" {
		ids := make([]string, len(list))
		for i, r := range list {
			ids[i] = r.ID
		}
		t.Errorf("List order = %v, want [newer older]", ids)
	}
}

func TestSQLiteReportStore_Delete(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	if err := s.Save(ctx, sampleStoredReport("gone")); err != nil {
		t.Fatal(err)
	}
	if err := s.Delete(ctx, "gone"); err != nil {
		t.Fatalf("Delete error = %v", err)
	}
	if _, err := s.Get(ctx, "gone"); !core.IsNotFound(err) {
		t.Error("report survived Delete")
	}
	if err := s.Delete(ctx, "gone"); !core.IsNotFound(err) {
		t.Errorf("Delete(missing) = %v, want not_found", err)
	}
}

func TestSQLiteReportStore_Reopen(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "reports.db")
	ctx := context.Background()

	s1, err := NewSQLiteReportStore(path)
	if err != nil {
		t.Fatal(err)
	}
	if err := s1.Save(ctx, sampleStoredReport("persist")); err != nil {
		t.Fatal(err)
	}
	if err := s1.Close(); err != nil {
		t.Fatal(err)
	}

	s2, err := NewSQLiteReportStore(path)
	if err != nil {
		t.Fatalf("reopen error = %v", err)
	}
	defer func() { _ = s2.Close() }()

	if _, err := s2.Get(ctx, "persist"); err != nil {
		t.Errorf("report lost across reopen: %v", err)
	}
}
