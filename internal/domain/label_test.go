package domain

import "testing"

func TestUnitDisplayCode(t *testing.T) {
	t.Parallel()

	tests := []struct {
		slotCode string
		label    int
		seq      int
		want     string
	}{
		{"3F-A", 12, 3, "3F-A-12-03"},
		{"1F-B", 1, 1, "1F-B-1-01"},
		{"10F-C", 250, 42, "10F-C-250-42"},
		{"2F-A", 7, 100, "2F-A-7-100"},
	}

	for _, tt := range tests {
		if got := UnitDisplayCode(tt.slotCode, tt.label, tt.seq); got != tt.want {
			t.Errorf("UnitDisplayCode(%q, %d, %d) = %q, want %q",
				tt.slotCode, tt.label, tt.seq, got, tt.want)
		}
	}
}

func TestSlotCode(t *testing.T) {
	t.Parallel()

	s := Slot{FloorNo: 3, SlotLetter: "A"}
	if got := s.Code(); got != "3F-A" {
		t.Errorf("Code() = %q, want %q", got, "3F-A")
	}
}
