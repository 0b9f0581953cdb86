// Package align implements pairwise sequence alignment: Smith-Waterman
// local alignment and Needleman-Wunsch global alignment, both with linear
// or affine gap penalties. Residues compare literally; ambiguity codes are
// not expanded.
package align

import (
	"errors"
	"fmt"

	"github.com/JaasperK/Bioinformatik/blosum"
	"github.com/JaasperK/Bioinformatik/seq"
)

// ErrInvalidScheme reports a scoring scheme whose parameters make the
// alignment recurrences meaningless. Schemes are validated before any
// table is filled.
var ErrInvalidScheme = errors.New("invalid scoring scheme")

// A Scorer looks up the substitution score of a residue pair. ok is false
// when a residue is outside the table of the scorer.
type Scorer interface {
	Score(a, b byte) (score int, ok bool)
}

// A ScoringScheme configures the aligners. Match must be positive and
// Mismatch non-positive; when Matrix is non-nil it replaces the two for
// substitution scoring (protein alignments typically wire blosum.Table62
// here). Gap penalties are expressed as negative scores, and a gap run of
// length k costs
//
//	GapOpen + (k-1)*GapExtend
//
// A scheme with GapExtend == GapOpen charges every gap position alike and
// runs the single matrix recurrence; any other combination runs the affine
// recurrence with separate gap matrices.
type ScoringScheme struct {
	Match     int
	Mismatch  int
	GapOpen   int
	GapExtend int
	Matrix    Scorer
}

// DefaultNucleotideScheme mirrors the megablast defaults: +5/-4
// substitution scores with affine gaps.
var DefaultNucleotideScheme = ScoringScheme{
	Match:     5,
	Mismatch:  -4,
	GapOpen:   -10,
	GapExtend: -1,
}

// DefaultProteinScheme scores substitutions with BLOSUM62 and uses the
// blastp default gap penalties.
var DefaultProteinScheme = ScoringScheme{
	GapOpen:   -11,
	GapExtend: -1,
	Matrix:    blosum.Table62(),
}

// Validate reports whether the scheme can drive an alignment. The returned
// error wraps ErrInvalidScheme.
func (s ScoringScheme) Validate() error {
	if s.Matrix == nil {
		if s.Match <= 0 {
			return fmt.Errorf("align: match score %d must be positive: %w",
				s.Match, ErrInvalidScheme)
		}
		if s.Mismatch > 0 {
			return fmt.Errorf("align: mismatch score %d must be non-positive: %w",
				s.Mismatch, ErrInvalidScheme)
		}
	}
	if s.GapOpen >= 0 {
		return fmt.Errorf("align: gap open score %d must be negative: %w",
			s.GapOpen, ErrInvalidScheme)
	}
	if s.GapExtend >= 0 {
		return fmt.Errorf("align: gap extend score %d must be negative: %w",
			s.GapExtend, ErrInvalidScheme)
	}
	if s.GapExtend < s.GapOpen {
		return fmt.Errorf(
			"align: extending a gap (%d) must not cost more than opening one (%d): %w",
			s.GapExtend, s.GapOpen, ErrInvalidScheme)
	}
	return nil
}

// linear reports whether the scheme charges every gap position alike.
func (s ScoringScheme) linear() bool {
	return s.GapExtend == s.GapOpen
}

// sub scores the substitution of a by b. The residues must have passed
// checkResidues when a matrix is wired.
func (s ScoringScheme) sub(a, b byte) int {
	if s.Matrix != nil {
		v, _ := s.Matrix.Score(a, b)
		return v
	}
	if a == b {
		return s.Match
	}
	return s.Mismatch
}

// checkResidues verifies that every residue of x is covered by the
// substitution matrix, so that the fill loops can look scores up without
// checking. Scalar schemes cover every residue by definition.
func (s ScoringScheme) checkResidues(x seq.Sequence) error {
	if s.Matrix == nil {
		return nil
	}
	for i := 0; i < x.Len(); i++ {
		c := x.At(i)
		if _, ok := s.Matrix.Score(c, c); !ok {
			return fmt.Errorf(
				"align: sequence %q residue %q at offset %d is outside the "+
					"substitution matrix: %w",
				x.ID(), c, i, seq.ErrAlphabetMismatch)
		}
	}
	return nil
}

// validateInputs runs every precondition shared by the aligners: a sound
// scheme, one alphabet on both sides, and full matrix coverage.
func validateInputs(a, b seq.Sequence, scheme ScoringScheme) error {
	if err := scheme.Validate(); err != nil {
		return err
	}
	if a.Alphabet() != b.Alphabet() {
		return fmt.Errorf("align: sequence %q is %s, but sequence %q is %s: %w",
			a.ID(), a.Alphabet().Name(), b.ID(), b.Alphabet().Name(),
			seq.ErrAlphabetMismatch)
	}
	if err := scheme.checkResidues(a); err != nil {
		return err
	}
	return scheme.checkResidues(b)
}
