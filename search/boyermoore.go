// Package search implements exact pattern matching over sequences with the
// Boyer-Moore algorithm. Residues compare byte for byte; ambiguity codes
// are not expanded.
package search

import (
	"fmt"

	"github.com/JaasperK/Bioinformatik/seq"
)

// A Matcher is a pattern preprocessed for Boyer-Moore scanning. Compiling
// is done once per pattern; a compiled Matcher is immutable and can scan
// any number of texts, concurrently if desired.
type Matcher struct {
	pattern seq.Sequence

	// badChar holds the rightmost pattern offset of every residue byte,
	// or -1 for residues that do not occur in the pattern.
	badChar [256]int

	// goodSuffix holds, for a mismatch at pattern offset j, the shift
	// that aligns the next occurrence of the matched suffix (or of a
	// pattern prefix that matches a suffix of it) under the text.
	// goodSuffix[0] is the period of the pattern and is the shift
	// applied after a full match, which keeps overlapping occurrences
	// visible.
	goodSuffix []int
}

// ShiftStats counts how the two Boyer-Moore shift rules fared during a
// scan. Every mismatch-driven advance is credited to the rule that
// proposed the larger shift; ties are credited to the bad character rule.
type ShiftStats struct {
	Shifts         int
	BadCharWins    int
	GoodSuffixWins int
}

// MatchResult reports one scan of a text: every start offset of the
// pattern in ascending order, including overlapping occurrences, plus the
// shift statistics of the scan.
type MatchResult struct {
	Offsets []int
	Stats   ShiftStats
}

// Compile preprocesses a pattern into a Matcher. The pattern must not be
// empty; the returned error wraps seq.ErrEmptyInput otherwise.
func Compile(pattern seq.Sequence) (*Matcher, error) {
	if pattern.Len() == 0 {
		return nil, fmt.Errorf("search: empty pattern %q: %w",
			pattern.ID(), seq.ErrEmptyInput)
	}
	m := &Matcher{pattern: pattern}
	p := pattern.Bytes()
	for i := range m.badChar {
		m.badChar[i] = -1
	}
	for i := 0; i < len(p); i++ {
		m.badChar[p[i]] = i
	}
	m.goodSuffix = goodSuffixTable(p)
	return m, nil
}

// Pattern returns the pattern the Matcher was compiled from.
func (m *Matcher) Pattern() seq.Sequence {
	return m.pattern
}

// BadCharShift returns the rightmost pattern offset of residue c, or -1 if
// c does not occur in the pattern.
func (m *Matcher) BadCharShift(c byte) int {
	return m.badChar[c]
}

// FindAll scans a text for the compiled pattern. The text must be over the
// same alphabet as the pattern; the returned error wraps
// seq.ErrAlphabetMismatch otherwise. An empty text, or one shorter than
// the pattern, yields no offsets.
func (m *Matcher) FindAll(text seq.Sequence) (MatchResult, error) {
	if text.Alphabet() != m.pattern.Alphabet() {
		return MatchResult{}, fmt.Errorf(
			"search: text %q is %s but pattern %q is %s: %w",
			text.ID(), text.Alphabet().Name(),
			m.pattern.ID(), m.pattern.Alphabet().Name(),
			seq.ErrAlphabetMismatch)
	}

	t, p := text.Bytes(), m.pattern.Bytes()
	n, w := len(t), len(p)

	var res MatchResult
	for s := 0; s+w <= n; {
		j := w - 1
		for j >= 0 && p[j] == t[s+j] {
			j--
		}
		if j < 0 {
			res.Offsets = append(res.Offsets, s)
			s += m.goodSuffix[0]
			continue
		}

		bc := j - m.badChar[t[s+j]]
		gs := m.goodSuffix[j]
		res.Stats.Shifts++
		shift := gs
		if bc >= gs {
			shift = bc
			res.Stats.BadCharWins++
		} else {
			res.Stats.GoodSuffixWins++
		}
		if shift < 1 {
			shift = 1
		}
		s += shift
	}
	return res, nil
}

// FindAll compiles pattern and scans text with it once. Callers matching
// one pattern against many texts should compile the pattern themselves and
// reuse the Matcher.
func FindAll(text, pattern seq.Sequence) (MatchResult, error) {
	m, err := Compile(pattern)
	if err != nil {
		return MatchResult{}, err
	}
	return m.FindAll(text)
}

// suffixLengths computes, for every pattern offset i, the length of the
// longest suffix of the pattern that ends at i.
func suffixLengths(p []byte) []int {
	w := len(p)
	suff := make([]int, w)
	suff[w-1] = w
	g := w - 1
	f := 0
	for i := w - 2; i >= 0; i-- {
		if i > g && suff[i+w-1-f] < i-g {
			suff[i] = suff[i+w-1-f]
		} else {
			if i < g {
				g = i
			}
			f = i
			for g >= 0 && p[g] == p[g+w-1-f] {
				g--
			}
			suff[i] = f - g
		}
	}
	return suff
}

// goodSuffixTable computes the strong good suffix shift table: the number
// of positions the window can advance after a mismatch at each pattern
// offset without skipping over an occurrence. Every entry is at least 1.
func goodSuffixTable(p []byte) []int {
	w := len(p)
	suff := suffixLengths(p)

	shift := make([]int, w)
	for i := range shift {
		shift[i] = w
	}
	j := 0
	for i := w - 1; i >= 0; i-- {
		if suff[i] == i+1 {
			for ; j < w-1-i; j++ {
				if shift[j] == w {
					shift[j] = w - 1 - i
				}
			}
		}
	}
	for i := 0; i <= w-2; i++ {
		shift[w-1-suff[i]] = w - 1 - i
	}
	return shift
}
