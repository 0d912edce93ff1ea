// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package tokens

import (
	"strings"
	"testing"
)

func TestHeuristicCounter_Count(t *testing.T) {
	tests := []struct {
		name string
		text string
		want int
	}{
		{name: "empty", text: "", want: 0},
		{name: "single word", text: "hello", want: 1}, // (1 + 5/4) / 2
		{name: "sentence", text: "the quick brown fox jumps", want: 5},
		{name: "code", text: "func main() { fmt.Println(42) }", want: 6},
	}

	var c HeuristicCounter
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := c.Count(tt.text)
			if err != nil {
				t.Fatalf("Count failed: %v", err)
			}
			if got != tt.want {
				t.Errorf("Count(%q): got %d, want %d", tt.text, got, tt.want)
			}
		})
	}
}

func TestHeuristicCounter_ScalesWithLength(t *testing.T) {
	var c HeuristicCounter
	short, _ := c.Count(strings.Repeat("word ", 10))
	long, _ := c.Count(strings.Repeat("word ", 1000))
	if long <= short {
		t.Errorf("longer text should count more tokens: short=%d long=%d", short, long)
	}
}

func TestFallbackCount(t *testing.T) {
	tests := []struct {
		text string
		want int
	}{
		{"", 0},
		{"a", 1},
		{"abcd", 1},
		{"abcde", 2},
		{strings.Repeat("x", 400), 100},
	}

	for _, tt := range tests {
		if got := FallbackCount(tt.text); got != tt.want {
			t.Errorf("FallbackCount(%d chars): got %d, want %d", len(tt.text), got, tt.want)
		}
	}
}
