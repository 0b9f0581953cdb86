// Package seq provides the residue alphabets and the immutable sequence
// type shared by the search, motif and align packages.
package seq

// An Alphabet describes the symbol set that a sequence draws its residues
// from. Core symbols are mapped to dense indexes in the range
// [0, Len()), so that algorithm tables (bad character rows, weight matrix
// columns) can be indexed by slice rather than by map. Ambiguity codes and
// the gap symbol are valid residues but carry no index.
type Alphabet interface {
	// Name returns the tag of the alphabet, e.g. "nucleotide".
	Name() string

	// Len returns the number of core symbols.
	Len() int

	// Letters returns the core symbols in index order.
	Letters() string

	// Letter returns the core symbol with index i.
	Letter(i int) byte

	// IndexOf returns the dense index of a core symbol, or -1 if the
	// symbol is not a core symbol. Lower case symbols map to the index
	// of their upper case form.
	IndexOf(c byte) int

	// IsValid tells whether c is a core symbol.
	IsValid(c byte) bool

	// IsAmbiguous tells whether c is one of the ambiguity codes of the
	// alphabet.
	IsAmbiguous(c byte) bool

	// Gap returns the gap symbol of the alphabet.
	Gap() byte
}

// Nucleotide is the DNA/RNA alphabet: the four core bases plus the IUPAC
// ambiguity codes and U, with '-' as the gap symbol. U is treated as an
// ambiguity code so that RNA input validates while the core set stays at
// four symbols.
var Nucleotide Alphabet = newAlphabet("nucleotide", "ACGT", "URYSWKMBDHVN", '-')

// AminoAcid is the protein alphabet: the twenty standard residues plus the
// ambiguity codes B, Z, J and X and the stop symbol '*', with '-' as the
// gap symbol.
var AminoAcid Alphabet = newAlphabet("amino-acid", "ACDEFGHIKLMNPQRSTVWY", "BZJX*", '-')

// alphabet is the sole Alphabet implementation. Values are built once at
// package initialization and never written to afterwards, so they are safe
// to share between goroutines.
type alphabet struct {
	name      string
	letters   string
	ambiguous [256]bool
	index     [256]int
	gap       byte
}

func newAlphabet(name, letters, ambiguous string, gap byte) *alphabet {
	a := &alphabet{
		name:    name,
		letters: letters,
		gap:     gap,
	}
	for i := range a.index {
		a.index[i] = -1
	}
	for i := 0; i < len(letters); i++ {
		a.index[letters[i]] = i
		a.index[toUpper(letters[i])] = i
		a.index[toLower(letters[i])] = i
	}
	for i := 0; i < len(ambiguous); i++ {
		a.ambiguous[ambiguous[i]] = true
		a.ambiguous[toLower(ambiguous[i])] = true
	}
	return a
}

func (a *alphabet) Name() string {
	return a.name
}

func (a *alphabet) Len() int {
	return len(a.letters)
}

func (a *alphabet) Letters() string {
	return a.letters
}

func (a *alphabet) Letter(i int) byte {
	return a.letters[i]
}

func (a *alphabet) IndexOf(c byte) int {
	return a.index[c]
}

func (a *alphabet) IsValid(c byte) bool {
	return a.index[c] >= 0
}

func (a *alphabet) IsAmbiguous(c byte) bool {
	return a.ambiguous[c]
}

func (a *alphabet) Gap() byte {
	return a.gap
}

func toUpper(c byte) byte {
	if 'a' <= c && c <= 'z' {
		return c - 'a' + 'A'
	}
	return c
}

func toLower(c byte) byte {
	if 'A' <= c && c <= 'Z' {
		return c - 'A' + 'a'
	}
	return c
}
