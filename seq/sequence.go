package seq

import "fmt"

// Sequence is an immutable biological sequence: an identifier, the
// alphabet its residues are drawn from, and the residues themselves.
// Residues are upper cased and validated against the alphabet when the
// sequence is built, so every operation downstream can index alphabet
// tables without checking again. A Sequence is a plain value and is safe
// to share between goroutines.
type Sequence struct {
	id       string
	alphabet Alphabet
	residues []byte
	offset   int
}

// New builds a sequence from raw residues. The residues are copied and
// upper cased, and every one of them must be a core symbol of the
// alphabet, one of its ambiguity codes, or its gap symbol. The returned
// error wraps ErrAlphabetMismatch otherwise.
func New(id string, alphabet Alphabet, residues []byte) (Sequence, error) {
	rs := make([]byte, len(residues))
	for i := 0; i < len(residues); i++ {
		c := toUpper(residues[i])
		if !alphabet.IsValid(c) && !alphabet.IsAmbiguous(c) && c != alphabet.Gap() {
			return Sequence{}, fmt.Errorf(
				"sequence %q: residue %q at offset %d is not in the %s alphabet: %w",
				id, c, i, alphabet.Name(), ErrAlphabetMismatch)
		}
		rs[i] = c
	}
	return Sequence{id: id, alphabet: alphabet, residues: rs}, nil
}

// ID returns the identifier of the sequence.
func (s Sequence) ID() string {
	return s.id
}

// Alphabet returns the alphabet the residues are drawn from.
func (s Sequence) Alphabet() Alphabet {
	return s.alphabet
}

// Len returns the number of residues in the sequence.
func (s Sequence) Len() int {
	return len(s.residues)
}

// At returns the residue at offset i.
func (s Sequence) At(i int) byte {
	return s.residues[i]
}

// Bytes returns the residues of the sequence. The returned slice is a view
// into the sequence and must be treated as read only; callers that need to
// mutate it must copy it first.
func (s Sequence) Bytes() []byte {
	return s.residues
}

// Offset returns the start of this sequence within the sequence it was
// sliced from, or 0 for a sequence built with New.
func (s Sequence) Offset() int {
	return s.offset
}

// Slice returns the subsequence covering the half open range [start, end).
// The result shares the backing residues of s. Slice panics if the range
// is invalid, mirroring the behavior of a slice expression.
func (s Sequence) Slice(start, end int) Sequence {
	if start < 0 || start > end || end > len(s.residues) {
		panic(fmt.Sprintf("Invalid subsequence (%d, %d) for sequence %q "+
			"with length %d.", start, end, s.id, len(s.residues)))
	}
	return Sequence{
		id:       s.id,
		alphabet: s.alphabet,
		residues: s.residues[start:end],
		offset:   s.offset + start,
	}
}

// String returns a fasta-ish representation of the sequence. If the
// sequence was sliced out of a larger one, the range it covers is printed
// after the identifier.
func (s Sequence) String() string {
	if s.offset == 0 {
		return fmt.Sprintf("> %s\n%s", s.id, string(s.residues))
	}
	return fmt.Sprintf("> %s (%d, %d)\n%s",
		s.id, s.offset, s.Len(), string(s.residues))
}

// complement maps every nucleotide symbol, ambiguity codes included, to
// its Watson-Crick complement.
var complement [256]byte

func init() {
	const from = "ACGTURYSWKMBDHVN-"
	const to = "TGCAAYRSWMKVBHDN-"
	for i := 0; i < len(from); i++ {
		complement[from[i]] = to[i]
	}
}

// ReverseComplement returns the reverse complement of a nucleotide
// sequence. Sequences over other alphabets have no complement, so the
// returned error wraps ErrAlphabetMismatch for them.
func (s Sequence) ReverseComplement() (Sequence, error) {
	if s.alphabet != Nucleotide {
		return Sequence{}, fmt.Errorf(
			"sequence %q: no reverse complement for the %s alphabet: %w",
			s.id, s.alphabet.Name(), ErrAlphabetMismatch)
	}
	rs := make([]byte, len(s.residues))
	for i, j := 0, len(s.residues)-1; i < len(rs); i, j = i+1, j-1 {
		rs[i] = complement[s.residues[j]]
	}
	return Sequence{id: s.id, alphabet: s.alphabet, residues: rs}, nil
}

// Identity computes the sequence identity of two residue slices of equal
// length. The number returned is an integer in the range 0-100, inclusive.
// Identity panics if the lengths differ.
func Identity(seq1, seq2 []byte) int {
	if len(seq1) != len(seq2) {
		panic(fmt.Sprintf("Sequence identity requires that len(seq1) == "+
			"len(seq2), but %d != %d.", len(seq1), len(seq2)))
	}
	if len(seq1) == 0 {
		return 0
	}
	same := 0
	for i := range seq1 {
		if seq1[i] == seq2[i] {
			same++
		}
	}
	return (same * 100) / len(seq1)
}
