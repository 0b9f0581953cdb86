// Package blosum provides the BLOSUM62 amino acid substitution matrix as
// plain Go data, along with a lookup table indexed by residue byte.
package blosum

// A Table pairs a residue ordering with a substitution matrix and serves
// scores by residue byte. Tables are immutable after NewTable and safe for
// concurrent use.
type Table struct {
	letters string
	scores  [][]int
	index   [256]int
}

// NewTable builds a lookup table for a matrix whose rows and columns
// follow the given residue ordering. Lower case residues resolve to the
// same entries as their upper case forms.
func NewTable(letters string, scores [][]int) *Table {
	t := &Table{letters: letters, scores: scores}
	for i := range t.index {
		t.index[i] = -1
	}
	for i := 0; i < len(letters); i++ {
		c := letters[i]
		t.index[c] = i
		if 'A' <= c && c <= 'Z' {
			t.index[c-'A'+'a'] = i
		}
	}
	return t
}

// Score returns the substitution score of a residue pair. ok is false when
// either residue is outside the table.
func (t *Table) Score(a, b byte) (score int, ok bool) {
	i, j := t.index[a], t.index[b]
	if i < 0 || j < 0 {
		return 0, false
	}
	return t.scores[i][j], true
}

// Letters returns the residue ordering of the table.
func (t *Table) Letters() string {
	return t.letters
}

var table62 = NewTable(Alphabet62, Matrix62)

// Table62 returns the shared lookup table for Matrix62.
func Table62() *Table {
	return table62
}
