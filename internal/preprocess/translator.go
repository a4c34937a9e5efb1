// Package preprocess implements the `#ifdef`/`#import` preprocessor and
// the bidirectional offset translator that lets the IDE map positions in
// the parser's processed text back to the original source. A
// character-by-character scan tracking line and column, generalized from
// "track position while lexing" to "track how position changes across a
// text-rewriting pass".
package preprocess

import (
	"sort"

	"github.com/wgsl-analyzer/wgsl-analyzer/internal/span"
)

// Strategy is how a Translator entry maps a processed-text offset back to
// the original text.
type Strategy int

const (
	// StrategyNormal is one-to-one within the block:
	// original = originalStart + (p - processedStart).
	StrategyNormal Strategy = iota
	// StrategyImport collapses the entire processed block to a single
	// original point: the block's original start for "start" queries, one
	// past its original end for "end" queries.
	StrategyImport
)

// entry is one row of the offset-translation table, keyed by the processed
// offset at which it begins.
type entry struct {
	processedStart span.Offset
	originalStart  span.Offset
	originalEnd    span.Offset // only meaningful for StrategyImport
	strategy       Strategy
}

// Translator maps processed-text offsets back to original-text offsets.
// The table always contains an entry at processed offset 0.
type Translator struct {
	entries []entry
}

// NewTranslator returns a Translator with only the mandatory `(0 -> 0,
// Normal)` entry, used when no directives rewrote anything.
func NewTranslator() *Translator {
	return &Translator{entries: []entry{{processedStart: 0, originalStart: 0, strategy: StrategyNormal}}}
}

// addNormal records a one-to-one region starting at processedStart, which
// maps to originalStart and onward.
func (t *Translator) addNormal(processedStart, originalStart span.Offset) {
	t.entries = append(t.entries, entry{processedStart: processedStart, originalStart: originalStart, strategy: StrategyNormal})
}

// addImport records a collapsed region: every offset in
// [processedStart, processedEnd) maps to the single original point range
// [originalStart, originalEnd).
func (t *Translator) addImport(processedStart, originalStart, originalEnd span.Offset) {
	t.entries = append(t.entries, entry{processedStart: processedStart, originalStart: originalStart, originalEnd: originalEnd, strategy: StrategyImport})
}

// finalize sorts entries by processed offset: the table must stay
// binary-searchable and monotone within Normal regions.
func (t *Translator) finalize() {
	sort.Slice(t.entries, func(i, j int) bool { return t.entries[i].processedStart < t.entries[j].processedStart })
}

// findEntry returns the latest entry with processedStart <= p.
func (t *Translator) findEntry(p span.Offset) entry {
	lo, hi := 0, len(t.entries)-1
	for lo < hi {
		mid := (lo + hi + 1) / 2
		if t.entries[mid].processedStart <= p {
			lo = mid
		} else {
			hi = mid - 1
		}
	}
	return t.entries[lo]
}

// TranslateStart finds the latest entry with key <= p and applies its
// strategy.
func (t *Translator) TranslateStart(p span.Offset) span.Offset {
	e := t.findEntry(p)
	switch e.strategy {
	case StrategyImport:
		return e.originalStart
	default:
		return e.originalStart + (p - e.processedStart)
	}
}

// TranslateEnd behaves like TranslateStart under StrategyNormal; under
// StrategyImport it returns the original end of the next block minus one,
// i.e. the collapsed block's own original end.
func (t *Translator) TranslateEnd(p span.Offset) span.Offset {
	e := t.findEntry(p)
	switch e.strategy {
	case StrategyImport:
		return e.originalEnd
	default:
		return e.originalStart + (p - e.processedStart)
	}
}

// TranslateRange maps a processed-text range to the original-text range.
func (t *Translator) TranslateRange(r span.Range) span.Range {
	return span.NewRange(t.TranslateStart(r.Start), t.TranslateEnd(r.End))
}
