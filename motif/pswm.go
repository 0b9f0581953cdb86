package motif

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"

	"github.com/JaasperK/Bioinformatik/seq"
)

// A PSWM is a position specific weight matrix: one probability distribution
// over the core symbols of an alphabet per motif position, derived once
// from counted observations and immutable afterwards. The background the
// matrix was built against is kept so that log odds scores use the same
// null model as the probabilities.
type PSWM struct {
	alpha seq.Alphabet
	probs *mat.Dense
	bg    []float64
}

// Build counts the members of a motif set and smooths the counts into
// probabilities with the given pseudocount:
//
//	p(pos, s) = (count(pos, s) + pseudocount) / (depth + pseudocount*k)
//
// where k is the alphabet size. Every position therefore sums to 1. A
// pseudocount of 0 is allowed and leaves unobserved symbols with
// probability 0; a negative pseudocount wraps ErrInvalidPseudocount.
func Build(set AlignedMotifSet, bg Background, pseudocount float64) (*PSWM, error) {
	if pseudocount < 0 {
		return nil, fmt.Errorf("motif: pseudocount %g is negative: %w",
			pseudocount, ErrInvalidPseudocount)
	}
	bgProbs, err := bg.probs(set.Alphabet())
	if err != nil {
		return nil, err
	}
	return fromCounts(set.Alphabet(), set.counts(), float64(set.Depth()),
		bgProbs, pseudocount)
}

// FromCounts builds a weight matrix from an already tallied count matrix,
// such as a JASPAR entry. counts follows the JASPAR orientation: one row
// per core symbol in alphabet index order, one column per motif position.
// Every column must tally the same positive number of observations.
func FromCounts(alphabet seq.Alphabet, counts [][]float64, bg Background, pseudocount float64) (*PSWM, error) {
	if pseudocount < 0 {
		return nil, fmt.Errorf("motif: pseudocount %g is negative: %w",
			pseudocount, ErrInvalidPseudocount)
	}
	bgProbs, err := bg.probs(alphabet)
	if err != nil {
		return nil, err
	}
	if len(counts) != alphabet.Len() {
		return nil, fmt.Errorf(
			"motif: count matrix has %d symbol rows for the %d symbol %s "+
				"alphabet: %w",
			len(counts), alphabet.Len(), alphabet.Name(), seq.ErrLengthMismatch)
	}
	width := len(counts[0])
	if width == 0 {
		return nil, fmt.Errorf("motif: count matrix has no positions: %w",
			seq.ErrEmptyInput)
	}
	for i, row := range counts {
		if len(row) != width {
			return nil, fmt.Errorf(
				"motif: count row %q has %d positions, but row %q has %d: %w",
				alphabet.Letter(i), len(row), alphabet.Letter(0), width,
				seq.ErrLengthMismatch)
		}
		for pos, count := range row {
			if count < 0 {
				return nil, fmt.Errorf(
					"motif: count of %q at position %d is %g: %w",
					alphabet.Letter(i), pos, count, ErrInvalidCounts)
			}
		}
	}

	// Transpose to position major order and check that every column
	// tallies the same number of observations.
	byPos := make([][]float64, width)
	depth := 0.0
	for pos := 0; pos < width; pos++ {
		byPos[pos] = make([]float64, alphabet.Len())
		for i := range counts {
			byPos[pos][i] = counts[i][pos]
		}
		sum := floats.Sum(byPos[pos])
		if pos == 0 {
			depth = sum
		} else if math.Abs(sum-depth) > probTol {
			return nil, fmt.Errorf(
				"motif: position %d tallies %g observations, but position "+
					"0 tallies %g: %w",
				pos, sum, depth, ErrInvalidCounts)
		}
	}
	if depth <= 0 {
		return nil, fmt.Errorf(
			"motif: positions tally %g observations: %w", depth, ErrInvalidCounts)
	}
	return fromCounts(alphabet, byPos, depth, bgProbs, pseudocount)
}

// fromCounts smooths position major counts into the probability matrix.
func fromCounts(alphabet seq.Alphabet, counts [][]float64, depth float64, bgProbs []float64, pseudocount float64) (*PSWM, error) {
	width := len(counts)
	k := alphabet.Len()
	probs := mat.NewDense(width, k, nil)
	den := depth + pseudocount*float64(k)
	row := make([]float64, k)
	for pos := 0; pos < width; pos++ {
		for i := 0; i < k; i++ {
			row[i] = (counts[pos][i] + pseudocount) / den
		}
		if sum := floats.Sum(row); math.Abs(sum-1) > probTol {
			return nil, fmt.Errorf(
				"motif: position %d probabilities sum to %g: %w",
				pos, sum, ErrInvalidCounts)
		}
		probs.SetRow(pos, row)
	}
	return &PSWM{alpha: alphabet, probs: probs, bg: bgProbs}, nil
}

// Width returns the number of motif positions.
func (p *PSWM) Width() int {
	width, _ := p.probs.Dims()
	return width
}

// Alphabet returns the alphabet the matrix is over.
func (p *PSWM) Alphabet() seq.Alphabet {
	return p.alpha
}

// Prob returns the probability of symbol c at the given position, or 0 for
// symbols outside the core alphabet.
func (p *PSWM) Prob(pos int, c byte) float64 {
	i := p.alpha.IndexOf(c)
	if i < 0 {
		return 0
	}
	return p.probs.At(pos, i)
}

// Column returns a copy of the probability distribution at a position,
// ordered by symbol index.
func (p *PSWM) Column(pos int) []float64 {
	return mat.Row(nil, pos, p.probs)
}

// Background returns a copy of the background distribution the matrix was
// built against.
func (p *PSWM) Background() Background {
	bg := make(Background, len(p.bg))
	for i, prob := range p.bg {
		bg[p.alpha.Letter(i)] = prob
	}
	return bg
}

// InformationContent holds the information content of a weight matrix
// measured against a background distribution, in bits.
type InformationContent struct {
	PerPosition []float64
	Total       float64
}

// InformationContent computes, for every position, the Kullback-Leibler
// divergence of the position distribution from the background, in bits.
// Positions can contribute negative information when they are closer to
// uniform than the background is; values are reported as computed, without
// clamping. A fully conserved position scores log2(k) bits against a
// uniform background over k symbols.
func (p *PSWM) InformationContent(bg Background) (InformationContent, error) {
	bgProbs, err := bg.probs(p.alpha)
	if err != nil {
		return InformationContent{}, err
	}
	width := p.Width()
	ic := InformationContent{PerPosition: make([]float64, width)}
	row := make([]float64, p.alpha.Len())
	for pos := 0; pos < width; pos++ {
		mat.Row(row, pos, p.probs)
		ic.PerPosition[pos] = stat.KullbackLeibler(row, bgProbs) / math.Ln2
	}
	ic.Total = floats.Sum(ic.PerPosition)
	return ic, nil
}

// Score computes the log odds score of a candidate site against the matrix
// and its background:
//
//	score = sum over positions of log2(p(pos, candidate[pos]) / bg(candidate[pos]))
//
// The candidate must be over the matrix alphabet, must have the matrix
// width, and must contain core symbols only; the returned errors wrap
// seq.ErrAlphabetMismatch and seq.ErrLengthMismatch. A symbol probability
// of 0, possible only with a zero pseudocount, yields math.Inf(-1).
func (p *PSWM) Score(candidate seq.Sequence) (float64, error) {
	if candidate.Alphabet() != p.alpha {
		return 0, fmt.Errorf(
			"motif: candidate %q is %s, but the matrix is %s: %w",
			candidate.ID(), candidate.Alphabet().Name(), p.alpha.Name(),
			seq.ErrAlphabetMismatch)
	}
	width := p.Width()
	if candidate.Len() != width {
		return 0, fmt.Errorf(
			"motif: candidate %q has length %d, but the matrix has width %d: %w",
			candidate.ID(), candidate.Len(), width, seq.ErrLengthMismatch)
	}
	score := 0.0
	for pos := 0; pos < width; pos++ {
		c := candidate.At(pos)
		i := p.alpha.IndexOf(c)
		if i < 0 {
			return 0, fmt.Errorf(
				"motif: candidate %q residue %q at position %d is not a "+
					"core %s symbol: %w",
				candidate.ID(), c, pos, p.alpha.Name(), seq.ErrAlphabetMismatch)
		}
		score += math.Log2(p.probs.At(pos, i) / p.bg[i])
	}
	return score, nil
}

// Consensus returns the highest probability symbol of every position as a
// sequence. Ties resolve to the lower symbol index.
func (p *PSWM) Consensus() seq.Sequence {
	width := p.Width()
	letters := make([]byte, width)
	for pos := 0; pos < width; pos++ {
		best := 0
		for i := 1; i < p.alpha.Len(); i++ {
			if p.probs.At(pos, i) > p.probs.At(pos, best) {
				best = i
			}
		}
		letters[pos] = p.alpha.Letter(best)
	}
	consensus, err := seq.New("consensus", p.alpha, letters)
	if err != nil {
		panic(fmt.Sprintf("Consensus symbols fell outside the %s alphabet: %s.",
			p.alpha.Name(), err))
	}
	return consensus
}
