package ui

import "testing"

func TestCenter(t *testing.T) {
	tests := []struct {
		name     string
		text     string
		width    int
		expected string
	}{
		{"text shorter than width", "Hello", 15, "     Hello"},
		{"text same as width", "Hello", 5, "Hello"},
		{"text longer than width", "Hello World", 5, "Hello World"},
		{"even padding", "Test", 10, "   Test"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := center(tt.text, tt.width); got != tt.expected {
				t.Errorf("center(%q, %d) = %q; want %q", tt.text, tt.width, got, tt.expected)
			}
		})
	}
}

func TestOutputFunctionsDoNotPanic(t *testing.T) {
	tests := []struct {
		name string
		fn   func()
	}{
		{"Header", func() { Header("Generating Sankey graph") }},
		{"Step", func() { Step(1, 4, "Reading CSV export") }},
		{"Success", func() { Success("graph written") }},
		{"Info", func() { Info("using stored settings") }},
		{"Warning", func() { Warning("no rows for period") }},
		{"Error", func() { Error("bad amount cell") }},
		{"Summary", func() { Summary("Income total", 2550.0) }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.fn()
		})
	}
}
