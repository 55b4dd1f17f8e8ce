package utils

import "testing"

func TestTruncateForLog(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		input  string
		limit  int
		expect string
	}{
		{
			name:   "returns empty when limit non-positive",
			input:  "hello world",
			limit:  0,
			expect: "",
		},
		{
			name:   "shorter than limit",
			input:  "hello",
			limit:  10,
			expect: "hello",
		},
		{
			name:   "truncates and adds ellipsis",
			input:  "hello world",
			limit:  5,
			expect: "hello...",
		},
		{
			name:   "trims surrounding whitespace",
			input:  "  spaced  ",
			limit:  5,
			expect: "space...",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := TruncateForLog(tt.input, tt.limit); got != tt.expect {
				t.Fatalf("expected %q, got %q", tt.expect, got)
			}
		})
	}
}

func TestFirstN(t *testing.T) {
	t.Parallel()

	items := []string{"a", "b", "c"}

	if got := FirstN(items, 2); len(got) != 2 || got[1] != "b" {
		t.Fatalf("expected [a b], got %v", got)
	}
	if got := FirstN(items, 5); len(got) != 3 {
		t.Fatalf("expected all items, got %v", got)
	}
	if got := FirstN(items, 0); len(got) != 0 {
		t.Fatalf("expected empty, got %v", got)
	}

	// A capped result must not alias the tail of the input on append.
	head := FirstN(items, 1)
	_ = append(head, "z")
	if items[1] != "b" {
		t.Fatalf("append through FirstN overwrote input: %v", items)
	}
}
