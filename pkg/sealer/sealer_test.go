package sealer

import (
	"strings"
	"testing"
)

func TestSealAndParseSlot(t *testing.T) {
	s, err := New("")
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	token, err := s.SealSlot("court-1", "2026-09-01", "19:00")
	if err != nil {
		t.Fatalf("SealSlot: %v", err)
	}
	if strings.Contains(token, "court-1") {
		t.Error("token leaks the court id")
	}

	courtID, date, start, err := s.ParseSlot(token)
	if err != nil {
		t.Fatalf("ParseSlot: %v", err)
	}
	if courtID != "court-1" || date != "2026-09-01" || start != "19:00" {
		t.Errorf("round trip mismatch: %s %s %s", courtID, date, start)
	}
}

func TestParseSlotRejectsGarbage(t *testing.T) {
	s, err := New("")
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	for _, token := range []string{"", "not-a-token", "YWJjZGVm"} {
		if _, _, _, err := s.ParseSlot(token); err == nil {
			t.Errorf("expected error for token %q", token)
		}
	}
}

func TestNewRejectsBadKeys(t *testing.T) {
	if _, err := New("!!!"); err == nil {
		t.Error("expected error for non-base64 key")
	}
	if _, err := New("c2hvcnQ"); err == nil {
		t.Error("expected error for short key")
	}
}
