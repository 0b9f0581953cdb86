package motif

import (
	"errors"
	"math"
	"testing"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/floats/scalar"

	"github.com/JaasperK/Bioinformatik/seq"
)

// gata2Counts is the JASPAR MA0036.1 (GATA2) count matrix: one row per
// nucleotide in A, C, G, T order, one column per motif position, 53
// observed sites.
var gata2Counts = [][]float64{
	{13, 0, 52, 0, 25},
	{13, 5, 0, 0, 7},
	{18, 48, 1, 0, 15},
	{9, 0, 0, 53, 6},
}

func mustSeq(t *testing.T, alphabet seq.Alphabet, residues string) seq.Sequence {
	t.Helper()
	s, err := seq.New("test", alphabet, []byte(residues))
	if err != nil {
		t.Fatal(err)
	}
	return s
}

func mustSet(t *testing.T, alphabet seq.Alphabet, members ...string) AlignedMotifSet {
	t.Helper()
	ss := make([]seq.Sequence, len(members))
	for i, m := range members {
		ss[i] = mustSeq(t, alphabet, m)
	}
	set, err := NewAlignedMotifSet(ss)
	if err != nil {
		t.Fatal(err)
	}
	return set
}

func TestNewAlignedMotifSetValidates(t *testing.T) {
	if _, err := NewAlignedMotifSet(nil); !errors.Is(err, seq.ErrEmptyInput) {
		t.Errorf("Empty set error %q should wrap seq.ErrEmptyInput.", err)
	}

	members := []seq.Sequence{
		mustSeq(t, seq.Nucleotide, "ACGT"),
		mustSeq(t, seq.Nucleotide, "ACG"),
	}
	if _, err := NewAlignedMotifSet(members); !errors.Is(err, seq.ErrLengthMismatch) {
		t.Errorf("Ragged set error %q should wrap seq.ErrLengthMismatch.", err)
	}

	members = []seq.Sequence{
		mustSeq(t, seq.Nucleotide, "ACGT"),
		mustSeq(t, seq.AminoAcid, "ACDE"),
	}
	if _, err := NewAlignedMotifSet(members); !errors.Is(err, seq.ErrAlphabetMismatch) {
		t.Errorf("Mixed alphabet error %q should wrap seq.ErrAlphabetMismatch.", err)
	}

	members = []seq.Sequence{mustSeq(t, seq.Nucleotide, "ANGT")}
	if _, err := NewAlignedMotifSet(members); !errors.Is(err, seq.ErrAlphabetMismatch) {
		t.Errorf("Ambiguity code error %q should wrap seq.ErrAlphabetMismatch.", err)
	}
}

func TestBuildColumnsSumToOne(t *testing.T) {
	for _, pseudocount := range []float64{0, 0.1, 1, 5} {
		set := mustSet(t, seq.Nucleotide, "GGATA", "GGATA", "AGATA", "TCATA")
		pswm, err := Build(set, UniformBackground(seq.Nucleotide), pseudocount)
		if err != nil {
			t.Fatal(err)
		}
		for pos := 0; pos < pswm.Width(); pos++ {
			sum := floats.Sum(pswm.Column(pos))
			if math.Abs(sum-1) > 1e-9 {
				t.Errorf("Position %d sums to %.12f with pseudocount %g.",
					pos, sum, pseudocount)
			}
			for i := 0; i < seq.Nucleotide.Len(); i++ {
				c := seq.Nucleotide.Letter(i)
				if pswm.Column(pos)[i] != pswm.Prob(pos, c) {
					t.Errorf("Column(%d)[%d] disagrees with Prob(%d, %q).",
						pos, i, pos, c)
				}
			}
		}
	}
}

func TestBuildRejectsNegativePseudocount(t *testing.T) {
	set := mustSet(t, seq.Nucleotide, "ACGT")
	_, err := Build(set, UniformBackground(seq.Nucleotide), -0.5)
	if !errors.Is(err, ErrInvalidPseudocount) {
		t.Fatalf("Error %q should wrap ErrInvalidPseudocount.", err)
	}
}

func TestBackgroundValidation(t *testing.T) {
	set := mustSet(t, seq.Nucleotide, "ACGT")

	missing := Background{'A': 0.5, 'C': 0.25, 'G': 0.25}
	if _, err := Build(set, missing, 0.1); !errors.Is(err, ErrInvalidBackground) {
		t.Errorf("Missing symbol error %q should wrap ErrInvalidBackground.", err)
	}

	lopsided := Background{'A': 0.5, 'C': 0.25, 'G': 0.25, 'T': 0.25}
	if _, err := Build(set, lopsided, 0.1); !errors.Is(err, ErrInvalidBackground) {
		t.Errorf("Bad sum error %q should wrap ErrInvalidBackground.", err)
	}
}

func TestConservedMotifInformationContent(t *testing.T) {
	// Every position fully conserved: against a uniform background over
	// four symbols each position carries exactly 2 bits.
	set := mustSet(t, seq.Nucleotide, "ACGT", "ACGT", "ACGT")
	pswm, err := Build(set, UniformBackground(seq.Nucleotide), 0)
	if err != nil {
		t.Fatal(err)
	}
	ic, err := pswm.InformationContent(UniformBackground(seq.Nucleotide))
	if err != nil {
		t.Fatal(err)
	}
	for pos, bits := range ic.PerPosition {
		if !scalar.EqualWithinAbs(bits, 2, 1e-12) {
			t.Errorf("Position %d carries %.12f bits, but expected 2.", pos, bits)
		}
	}
	if !scalar.EqualWithinAbs(ic.Total, 8, 1e-12) {
		t.Errorf("Total information is %.12f bits, but expected 8.", ic.Total)
	}
}

func TestUniformMotifInformationContent(t *testing.T) {
	set := mustSet(t, seq.Nucleotide, "A", "C", "G", "T")
	pswm, err := Build(set, UniformBackground(seq.Nucleotide), 0)
	if err != nil {
		t.Fatal(err)
	}
	ic, err := pswm.InformationContent(UniformBackground(seq.Nucleotide))
	if err != nil {
		t.Fatal(err)
	}
	if !scalar.EqualWithinAbs(ic.Total, 0, 1e-12) {
		t.Errorf("A background-shaped motif carries %.12f bits.", ic.Total)
	}
}

func TestGATA2FromCounts(t *testing.T) {
	bg := UniformBackground(seq.Nucleotide)
	pswm, err := FromCounts(seq.Nucleotide, gata2Counts, bg, 0)
	if err != nil {
		t.Fatal(err)
	}
	if pswm.Width() != 5 {
		t.Fatalf("Width is %d, but expected 5.", pswm.Width())
	}
	if consensus := pswm.Consensus(); string(consensus.Bytes()) != "GGATA" {
		t.Fatalf("Consensus is %q, but expected %q.", consensus.Bytes(), "GGATA")
	}

	ic, err := pswm.InformationContent(bg)
	if err != nil {
		t.Fatal(err)
	}
	// Position 3 is 53 T out of 53: fully conserved.
	if !scalar.EqualWithinAbs(ic.PerPosition[3], 2, 1e-12) {
		t.Errorf("Position 3 carries %.12f bits, but expected 2.",
			ic.PerPosition[3])
	}
	// Position 0 is split 13/13/18/9 and must carry far less information
	// than the nearly conserved position 1.
	if ic.PerPosition[0] >= ic.PerPosition[1] {
		t.Errorf("Position 0 carries %.4f bits, position 1 carries %.4f.",
			ic.PerPosition[0], ic.PerPosition[1])
	}
	if ic.Total <= 0 {
		t.Errorf("Total information is %.4f bits.", ic.Total)
	}
}

func TestFromCountsValidates(t *testing.T) {
	bg := UniformBackground(seq.Nucleotide)

	threeRows := [][]float64{{1}, {1}, {1}}
	if _, err := FromCounts(seq.Nucleotide, threeRows, bg, 0.1); !errors.Is(err, seq.ErrLengthMismatch) {
		t.Errorf("Row count error %q should wrap seq.ErrLengthMismatch.", err)
	}

	ragged := [][]float64{{1, 2}, {1, 2}, {1, 2}, {1}}
	if _, err := FromCounts(seq.Nucleotide, ragged, bg, 0.1); !errors.Is(err, seq.ErrLengthMismatch) {
		t.Errorf("Ragged row error %q should wrap seq.ErrLengthMismatch.", err)
	}

	negative := [][]float64{{1}, {1}, {-1}, {1}}
	if _, err := FromCounts(seq.Nucleotide, negative, bg, 0.1); !errors.Is(err, ErrInvalidCounts) {
		t.Errorf("Negative count error %q should wrap ErrInvalidCounts.", err)
	}

	unbalanced := [][]float64{{1, 2}, {1, 1}, {1, 1}, {1, 1}}
	if _, err := FromCounts(seq.Nucleotide, unbalanced, bg, 0.1); !errors.Is(err, ErrInvalidCounts) {
		t.Errorf("Unbalanced tally error %q should wrap ErrInvalidCounts.", err)
	}

	empty := [][]float64{{}, {}, {}, {}}
	if _, err := FromCounts(seq.Nucleotide, empty, bg, 0.1); !errors.Is(err, seq.ErrEmptyInput) {
		t.Errorf("Empty matrix error %q should wrap seq.ErrEmptyInput.", err)
	}
}

func TestScoreLogOdds(t *testing.T) {
	// Two fully conserved positions with no smoothing give crisp scores:
	// a consensus hit scores log2(1/0.25) per position, an unobserved
	// symbol scores negative infinity.
	set := mustSet(t, seq.Nucleotide, "AT", "AT")
	pswm, err := Build(set, UniformBackground(seq.Nucleotide), 0)
	if err != nil {
		t.Fatal(err)
	}

	score, err := pswm.Score(mustSeq(t, seq.Nucleotide, "AT"))
	if err != nil {
		t.Fatal(err)
	}
	if !scalar.EqualWithinAbs(score, 4, 1e-12) {
		t.Errorf("Score of the consensus is %.12f, but expected 4.", score)
	}

	score, err = pswm.Score(mustSeq(t, seq.Nucleotide, "CT"))
	if err != nil {
		t.Fatal(err)
	}
	if !math.IsInf(score, -1) {
		t.Errorf("Score of an unobserved site is %.12f, but expected -Inf.",
			score)
	}
}

func TestScoreSmoothed(t *testing.T) {
	set := mustSet(t, seq.Nucleotide, "ATG", "CTG")
	pswm, err := Build(set, UniformBackground(seq.Nucleotide), 0.1)
	if err != nil {
		t.Fatal(err)
	}
	score, err := pswm.Score(mustSeq(t, seq.Nucleotide, "ATG"))
	if err != nil {
		t.Fatal(err)
	}
	// depth 2, pseudocount 0.1: p(0,A) = 1.1/2.4, p(1,T) = p(2,G) = 2.1/2.4.
	expected := math.Log2(1.1/2.4/0.25) + 2*math.Log2(2.1/2.4/0.25)
	if !scalar.EqualWithinAbs(score, expected, 1e-12) {
		t.Errorf("Score is %.12f, but expected %.12f.", score, expected)
	}
}

func TestScoreValidates(t *testing.T) {
	set := mustSet(t, seq.Nucleotide, "ACGT")
	pswm, err := Build(set, UniformBackground(seq.Nucleotide), 0.1)
	if err != nil {
		t.Fatal(err)
	}

	if _, err := pswm.Score(mustSeq(t, seq.Nucleotide, "ACG")); !errors.Is(err, seq.ErrLengthMismatch) {
		t.Errorf("Length error %q should wrap seq.ErrLengthMismatch.", err)
	}
	if _, err := pswm.Score(mustSeq(t, seq.AminoAcid, "ACDE")); !errors.Is(err, seq.ErrAlphabetMismatch) {
		t.Errorf("Alphabet error %q should wrap seq.ErrAlphabetMismatch.", err)
	}
	if _, err := pswm.Score(mustSeq(t, seq.Nucleotide, "ACGN")); !errors.Is(err, seq.ErrAlphabetMismatch) {
		t.Errorf("Ambiguity error %q should wrap seq.ErrAlphabetMismatch.", err)
	}
}

func TestPSWMConcurrentReuse(t *testing.T) {
	bg := UniformBackground(seq.Nucleotide)
	pswm, err := FromCounts(seq.Nucleotide, gata2Counts, bg, DefaultPseudocount)
	if err != nil {
		t.Fatal(err)
	}
	for _, candidate := range []string{"GGATA", "AGATA", "TTTTT", "CCCCC"} {
		candidate := candidate
		t.Run(candidate, func(t *testing.T) {
			t.Parallel()
			first, err := pswm.Score(mustSeq(t, seq.Nucleotide, candidate))
			if err != nil {
				t.Fatal(err)
			}
			second, err := pswm.Score(mustSeq(t, seq.Nucleotide, candidate))
			if err != nil {
				t.Fatal(err)
			}
			if first != second {
				t.Errorf("Scores of %q differ: %v vs %v.",
					candidate, first, second)
			}
			if ic, err := pswm.InformationContent(bg); err != nil || ic.Total <= 0 {
				t.Errorf("Information content is %v with error %v.", ic, err)
			}
		})
	}
}

func TestBuildIsDeterministic(t *testing.T) {
	bg := Background{'A': 0.3, 'C': 0.2, 'G': 0.2, 'T': 0.3}
	first, err := Build(mustSet(t, seq.Nucleotide, "GGATA", "AGATA"), bg, 0.1)
	if err != nil {
		t.Fatal(err)
	}
	second, err := Build(mustSet(t, seq.Nucleotide, "GGATA", "AGATA"), bg, 0.1)
	if err != nil {
		t.Fatal(err)
	}
	for pos := 0; pos < first.Width(); pos++ {
		for i := 0; i < seq.Nucleotide.Len(); i++ {
			c := seq.Nucleotide.Letter(i)
			if first.Prob(pos, c) != second.Prob(pos, c) {
				t.Fatalf("Probability of %q at %d differs between builds.",
					c, pos)
			}
		}
	}
	if string(first.Consensus().Bytes()) != string(second.Consensus().Bytes()) {
		t.Fatal("Consensus differs between builds.")
	}
}
