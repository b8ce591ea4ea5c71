package syntax

import "testing"

func TestPosString(t *testing.T) {
	tests := []struct {
		name    string
		pos     Pos
		wantStr string
	}{
		{
			name:    "with filename",
			pos:     NewPos("test.sl", 10, 5, 120, 3),
			wantStr: "test.sl:10:5",
		},
		{
			name:    "without filename",
			pos:     NewPos("", 10, 5, 120, 3),
			wantStr: "10:5",
		},
		{
			name:    "line 1 col 1",
			pos:     NewPos("main.sl", 1, 1, 0, 0),
			wantStr: "main.sl:1:1",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.pos.String(); got != tt.wantStr {
				t.Errorf("Pos.String() = %q, want %q", got, tt.wantStr)
			}
		})
	}
}

func TestPosIsValid(t *testing.T) {
	tests := []struct {
		name  string
		pos   Pos
		valid bool
	}{
		{"valid position", NewPos("test.sl", 1, 1, 0, 1), true},
		{"valid position line 100", NewPos("", 100, 50, 4000, 0), true},
		{"invalid - zero line", NewPos("test.sl", 0, 1, 0, 0), false},
		{"invalid - zero value", Pos{}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.pos.IsValid(); got != tt.valid {
				t.Errorf("Pos.IsValid() = %v, want %v", got, tt.valid)
			}
		})
	}
}

func TestPosGetters(t *testing.T) {
	pos := NewPos("test.sl", 42, 17, 300, 5)

	if got := pos.Filename(); got != "test.sl" {
		t.Errorf("Filename() = %q, want %q", got, "test.sl")
	}
	if got := pos.Line(); got != 42 {
		t.Errorf("Line() = %d, want 42", got)
	}
	if got := pos.Col(); got != 17 {
		t.Errorf("Col() = %d, want 17", got)
	}
	if got := pos.Offset(); got != 300 {
		t.Errorf("Offset() = %d, want 300", got)
	}
	if got := pos.Len(); got != 5 {
		t.Errorf("Len() = %d, want 5", got)
	}
	if got := pos.End(); got != 305 {
		t.Errorf("End() = %d, want 305", got)
	}
}

func TestPosTo(t *testing.T) {
	start := NewPos("a.sl", 1, 1, 0, 3)
	end := NewPos("a.sl", 2, 4, 10, 2)

	got := start.To(end)
	if got.Line() != 1 || got.Col() != 1 || got.Offset() != 0 {
		t.Errorf("To() moved the start: %v offset %d", got, got.Offset())
	}
	if got.End() != 12 {
		t.Errorf("To().End() = %d, want 12", got.End())
	}

	// An invalid or earlier end leaves the span unchanged.
	if got := start.To(Pos{}); got != start {
		t.Errorf("To(Pos{}) = %+v, want %+v", got, start)
	}
	later := NewPos("a.sl", 3, 1, 20, 1)
	if got := later.To(start); got != later {
		t.Errorf("To(earlier) = %+v, want %+v", got, later)
	}
}
