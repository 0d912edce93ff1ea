// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package tokens

import "strings"

// Counter counts tokens in a piece of text.
// Implementations may fail (e.g. an external tokenizer that cannot load its
// vocabulary); callers are expected to recover with FallbackCount.
type Counter interface {
	Count(text string) (int, error)
}

// HeuristicCounter estimates token counts without a model vocabulary.
// GPT-style tokenizers average ~4 chars per token; a blend of word and
// character estimates tracks real counts more closely than either alone.
type HeuristicCounter struct{}

// Count returns the estimated token count for text. It never fails.
func (HeuristicCounter) Count(text string) (int, error) {
	words := len(strings.Fields(text))
	chars := len(text)
	return (words + chars/4) / 2, nil
}

// FallbackCount is the last-resort estimate used when a Counter fails:
// one token per four characters, rounded up.
func FallbackCount(text string) int {
	return (len(text) + 3) / 4
}
