package recordlog

import (
	"testing"
	"time"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(t.TempDir())
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() {
		if err := s.Close(); err != nil {
			t.Errorf("Close: %v", err)
		}
	})
	return s
}

func TestAppendAndReadBack(t *testing.T) {
	s := openTestStore(t)
	s.now = func() time.Time {
		return time.Date(2026, 3, 14, 10, 30, 0, 0, time.UTC)
	}

	if err := s.Append("first dictation", "en"); err != nil {
		t.Fatalf("Append: %v", err)
	}
	if err := s.Append("second dictation", "de"); err != nil {
		t.Fatalf("Append: %v", err)
	}

	entries, err := s.ByDate("2026-03-14")
	if err != nil {
		t.Fatalf("ByDate: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("got %d entries, want 2", len(entries))
	}
	if entries[0].Transcript != "first dictation" || entries[1].Transcript != "second dictation" {
		t.Errorf("wrong order: %q, %q", entries[0].Transcript, entries[1].Transcript)
	}
	if entries[0].Language != "en" || entries[1].Language != "de" {
		t.Errorf("languages = %q, %q", entries[0].Language, entries[1].Language)
	}
	if entries[0].ID == "" || entries[0].ID == entries[1].ID {
		t.Error("entry IDs must be unique and non-empty")
	}
	if entries[0].Date != "2026-03-14" {
		t.Errorf("date = %q", entries[0].Date)
	}
}

func TestBlankTranscriptIgnored(t *testing.T) {
	s := openTestStore(t)

	if err := s.Append("   ", "en"); err != nil {
		t.Fatalf("Append blank: %v", err)
	}
	if err := s.Append("", ""); err != nil {
		t.Fatalf("Append empty: %v", err)
	}

	entries, err := s.Today()
	if err != nil {
		t.Fatalf("Today: %v", err)
	}
	if len(entries) != 0 {
		t.Errorf("blank transcripts were recorded: %v", entries)
	}
}

func TestDatesNewestFirst(t *testing.T) {
	s := openTestStore(t)

	days := []time.Time{
		time.Date(2026, 1, 5, 9, 0, 0, 0, time.UTC),
		time.Date(2026, 2, 1, 9, 0, 0, 0, time.UTC),
		time.Date(2026, 1, 20, 9, 0, 0, 0, time.UTC),
	}
	for _, day := range days {
		day := day
		s.now = func() time.Time { return day }
		if err := s.Append("entry on "+day.Format("2006-01-02"), "en"); err != nil {
			t.Fatalf("Append: %v", err)
		}
	}

	dates, err := s.Dates()
	if err != nil {
		t.Fatalf("Dates: %v", err)
	}
	want := []string{"2026-02-01", "2026-01-20", "2026-01-05"}
	if len(dates) != len(want) {
		t.Fatalf("dates = %v, want %v", dates, want)
	}
	for i := range want {
		if dates[i] != want[i] {
			t.Errorf("dates = %v, want %v", dates, want)
		}
	}
}

func TestTodayUsesCurrentDate(t *testing.T) {
	s := openTestStore(t)
	s.now = func() time.Time {
		return time.Date(2026, 6, 1, 15, 0, 0, 0, time.UTC)
	}
	if err := s.Append("yesterday's entry", "en"); err != nil {
		t.Fatalf("Append: %v", err)
	}

	s.now = func() time.Time {
		return time.Date(2026, 6, 2, 8, 0, 0, 0, time.UTC)
	}
	if err := s.Append("today's entry", "en"); err != nil {
		t.Fatalf("Append: %v", err)
	}

	entries, err := s.Today()
	if err != nil {
		t.Fatalf("Today: %v", err)
	}
	if len(entries) != 1 || entries[0].Transcript != "today's entry" {
		t.Errorf("Today = %v", entries)
	}
}
