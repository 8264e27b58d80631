package booking

import (
	"reflect"
	"testing"

	"courtside/models"
)

func TestGenerateTimeSlots_GridCompleteness(t *testing.T) {
	tests := []struct {
		name  string
		open  string
		close string
		count int
	}{
		{"full day", "06:00", "23:00", 34},
		{"one hour", "09:00", "10:00", 2},
		{"half hour", "09:00", "09:30", 1},
		{"half-past open", "06:30", "08:00", 3},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			slots := GenerateTimeSlots(tt.open, tt.close)
			if len(slots) != tt.count {
				t.Fatalf("expected %d slots, got %d", tt.count, len(slots))
			}
			if slots[0].Start != tt.open {
				t.Errorf("first slot starts at %s, want %s", slots[0].Start, tt.open)
			}
			if slots[len(slots)-1].End != tt.close {
				t.Errorf("last slot ends at %s, want %s", slots[len(slots)-1].End, tt.close)
			}
			for i := 0; i < len(slots)-1; i++ {
				if slots[i].End != slots[i+1].Start {
					t.Errorf("gap between slot %d (%s) and slot %d (%s)", i, slots[i].End, i+1, slots[i+1].Start)
				}
			}
		})
	}
}

func TestGenerateTimeSlots_EmptyWhenOpenEqualsClose(t *testing.T) {
	if slots := GenerateTimeSlots("09:00", "09:00"); len(slots) != 0 {
		t.Fatalf("expected no slots, got %v", slots)
	}
}

func TestGenerateTimeSlots_TruncatesPartialFinalSlot(t *testing.T) {
	slots := GenerateTimeSlots("09:00", "10:15")
	want := []models.TimeSlot{
		{Start: "09:00", End: "09:30"},
		{Start: "09:30", End: "10:00"},
	}
	if !reflect.DeepEqual(slots, want) {
		t.Fatalf("expected %v, got %v", want, slots)
	}
}

func TestGenerateTimeSlots_Deterministic(t *testing.T) {
	a := GenerateTimeSlots("06:00", "23:00")
	b := GenerateTimeSlots("06:00", "23:00")
	if !reflect.DeepEqual(a, b) {
		t.Fatal("same inputs must yield the same sequence")
	}
}

func TestGenerateTimeSlots_MalformedInput(t *testing.T) {
	if slots := GenerateTimeSlots("whenever", "10:00"); slots != nil {
		t.Fatalf("expected nil for malformed open time, got %v", slots)
	}
}
