// Package motif derives position specific weight matrices from aligned
// binding site sequences and scores candidate sites against them.
package motif

import (
	"errors"
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"

	"github.com/JaasperK/Bioinformatik/seq"
)

var (
	// ErrInvalidPseudocount reports a negative smoothing constant.
	ErrInvalidPseudocount = errors.New("invalid pseudocount")

	// ErrInvalidCounts reports a count matrix with negative entries or
	// with columns that do not tally the same number of observations.
	ErrInvalidCounts = errors.New("invalid count matrix")

	// ErrInvalidBackground reports a background distribution that does
	// not cover every core symbol with positive probability, or that
	// does not sum to 1.
	ErrInvalidBackground = errors.New("invalid background distribution")
)

// DefaultPseudocount is a light smoothing constant suitable for motif sets
// of JASPAR scale.
const DefaultPseudocount = 0.1

// probTol bounds the floating point error tolerated when probabilities
// are checked for summing to 1.
const probTol = 1e-9

// An AlignedMotifSet is a non-empty collection of binding site sequences
// that share one alphabet and one length, with every residue a core symbol
// of that alphabet. It is the validated input that a weight matrix is
// counted from.
type AlignedMotifSet struct {
	members []seq.Sequence
	width   int
	alpha   seq.Alphabet
}

// NewAlignedMotifSet validates a motif set. The returned errors wrap
// seq.ErrEmptyInput for an empty set or zero width members,
// seq.ErrLengthMismatch for members of unequal length, and
// seq.ErrAlphabetMismatch for mixed alphabets or for residues outside the
// core alphabet (ambiguity codes and gaps cannot be counted).
func NewAlignedMotifSet(members []seq.Sequence) (AlignedMotifSet, error) {
	if len(members) == 0 {
		return AlignedMotifSet{}, fmt.Errorf(
			"motif: no member sequences: %w", seq.ErrEmptyInput)
	}
	width := members[0].Len()
	if width == 0 {
		return AlignedMotifSet{}, fmt.Errorf(
			"motif: zero width members: %w", seq.ErrEmptyInput)
	}
	alpha := members[0].Alphabet()
	for _, member := range members {
		if member.Alphabet() != alpha {
			return AlignedMotifSet{}, fmt.Errorf(
				"motif: member %q is %s, but the set is %s: %w",
				member.ID(), member.Alphabet().Name(), alpha.Name(),
				seq.ErrAlphabetMismatch)
		}
		if member.Len() != width {
			return AlignedMotifSet{}, fmt.Errorf(
				"motif: member %q has length %d, but the set has width %d: %w",
				member.ID(), member.Len(), width, seq.ErrLengthMismatch)
		}
		for i := 0; i < member.Len(); i++ {
			if alpha.IndexOf(member.At(i)) < 0 {
				return AlignedMotifSet{}, fmt.Errorf(
					"motif: member %q residue %q at position %d is not a "+
						"core %s symbol: %w",
					member.ID(), member.At(i), i, alpha.Name(),
					seq.ErrAlphabetMismatch)
			}
		}
	}
	cp := make([]seq.Sequence, len(members))
	copy(cp, members)
	return AlignedMotifSet{members: cp, width: width, alpha: alpha}, nil
}

// Width returns the number of positions in each member.
func (s AlignedMotifSet) Width() int {
	return s.width
}

// Depth returns the number of members.
func (s AlignedMotifSet) Depth() int {
	return len(s.members)
}

// Alphabet returns the shared alphabet of the members.
func (s AlignedMotifSet) Alphabet() seq.Alphabet {
	return s.alpha
}

// counts tallies residue occurrences per position. The result is indexed
// by position first and symbol index second.
func (s AlignedMotifSet) counts() [][]float64 {
	counts := make([][]float64, s.width)
	for pos := range counts {
		counts[pos] = make([]float64, s.alpha.Len())
	}
	for _, member := range s.members {
		for pos := 0; pos < s.width; pos++ {
			counts[pos][s.alpha.IndexOf(member.At(pos))]++
		}
	}
	return counts
}

// A Background assigns a null model probability to every core symbol of an
// alphabet.
type Background map[byte]float64

// UniformBackground spreads probability evenly over the core symbols of an
// alphabet.
func UniformBackground(alphabet seq.Alphabet) Background {
	bg := make(Background, alphabet.Len())
	p := 1.0 / float64(alphabet.Len())
	for i := 0; i < alphabet.Len(); i++ {
		bg[alphabet.Letter(i)] = p
	}
	return bg
}

// probs maps the background onto symbol indexes of alphabet, verifying
// that every core symbol has positive probability and that the total is 1.
func (bg Background) probs(alphabet seq.Alphabet) ([]float64, error) {
	ps := make([]float64, alphabet.Len())
	for i := 0; i < alphabet.Len(); i++ {
		p, ok := bg[alphabet.Letter(i)]
		if !ok || p <= 0 {
			return nil, fmt.Errorf(
				"motif: background gives symbol %q probability %g: %w",
				alphabet.Letter(i), p, ErrInvalidBackground)
		}
		ps[i] = p
	}
	if sum := floats.Sum(ps); math.Abs(sum-1) > probTol {
		return nil, fmt.Errorf(
			"motif: background sums to %g, but must sum to 1: %w",
			sum, ErrInvalidBackground)
	}
	return ps, nil
}
