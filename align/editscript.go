package align

import (
	"fmt"
	"strconv"
	"strings"
)

// Modification kinds of an edit script.
const (
	modSubstitution = iota
	modInsertion
	modDeletion
)

// A mod is one run of consecutive modifications of the same kind. Start
// and End index the unaligned window of row A; they are equal for
// insertions. Residues holds the replacement residues of row B and is
// empty for deletions, where End-Start counts the deleted residues.
type mod struct {
	kind     int
	start    int
	end      int
	residues []byte
}

func (m *mod) addResidue(residue byte) {
	if m.kind != modDeletion {
		m.residues = append(m.residues, residue)
	}
	if m.kind != modInsertion {
		m.end++
	}
}

// An EditScript is the compact difference between the two rows of an
// alignment: the runs of substitutions, insertions and deletions that turn
// the window of input a into the window of input b. Its string form reads
//
//	s<offset><residues> | i<offset><residues> | d<offset><gaps>
//
// where each offset is relative to the start of the previous modification.
type EditScript struct {
	mods []*mod
}

// NewEditScript condenses an alignment into an edit script. Applying the
// script to the window of a covered by the alignment yields the window of
// b. NewEditScript panics if the rows differ in length.
func NewEditScript(alignment Alignment) *EditScript {
	rowA, rowB := alignment.AlignedA, alignment.AlignedB
	if len(rowA) != len(rowB) {
		panic(fmt.Sprintf("An edit script requires rows of equal length, "+
			"but their lengths are %d and %d.", len(rowA), len(rowB)))
	}

	mods := make([]*mod, 0, 15)
	var current *mod

	// aIndex tracks the unaligned position in row A, skipping its gaps.
	aIndex := 0
	for i := 0; i < len(rowA); i++ {
		from, to := rowA[i], rowB[i]

		kind := -1
		switch {
		case from == to:
			kind = -1
		case from == GapByte:
			kind = modInsertion
		case to == GapByte:
			kind = modDeletion
		default:
			kind = modSubstitution
		}

		switch {
		case current != nil && current.kind == kind:
			current.addResidue(to)
		case current != nil:
			mods = append(mods, current)
			current = nil
			fallthrough
		default:
			if kind != -1 {
				current = &mod{kind: kind, start: aIndex, end: aIndex}
				current.addResidue(to)
			}
		}

		if from != GapByte {
			aIndex++
		}
	}
	if current != nil {
		mods = append(mods, current)
	}
	return &EditScript{mods: mods}
}

// ParseEditScript parses the string form produced by String.
func ParseEditScript(script string) (*EditScript, error) {
	mods := make([]*mod, 0, 15)
	var current *mod

	for i := 0; i < len(script); i++ {
		b := script[i]
		switch b {
		case 's', 'i', 'd':
			if current != nil {
				mods = append(mods, current)
			}
			next := &mod{kind: byteToModKind(b)}

			digits := make([]byte, 0, 3)
			for j := i + 1; j < len(script); j++ {
				if script[j] >= '0' && script[j] <= '9' {
					digits = append(digits, script[j])
				} else {
					break
				}
			}
			if len(digits) == 0 {
				return nil, fmt.Errorf(
					"align: expected an offset number after %q at column %d of %q",
					b, i, script)
			}
			i += len(digits)

			offset, err := strconv.Atoi(string(digits))
			if err != nil {
				return nil, fmt.Errorf(
					"align: cannot parse offset %q at column %d of %q",
					digits, i, script)
			}
			next.start = offset
			if current != nil {
				next.start += current.start
			}
			next.end = next.start
			current = next
		default:
			if b >= '0' && b <= '9' {
				return nil, fmt.Errorf(
					"align: expected a residue at column %d of %q, but got %q",
					i, script, b)
			}
			if current == nil {
				return nil, fmt.Errorf(
					"align: expected 's', 'i' or 'd' at column %d of %q, but got %q",
					i, script, b)
			}
			current.addResidue(b)
		}
	}
	if current != nil {
		mods = append(mods, current)
	}
	return &EditScript{mods: mods}, nil
}

func byteToModKind(b byte) int {
	switch b {
	case 's':
		return modSubstitution
	case 'i':
		return modInsertion
	}
	return modDeletion
}

// Apply rebuilds the window of input b from the window of input a, i.e.
// from a.Bytes()[StartA:EndA] of the alignment the script was built from.
func (es *EditScript) Apply(window []byte) []byte {
	out := make([]byte, 0, len(window))
	lastEnd := 0
	for _, m := range es.mods {
		out = append(out, window[lastEnd:m.start]...)
		out = append(out, m.residues...)
		lastEnd = m.end
	}
	out = append(out, window[lastEnd:]...)
	return out
}

// String renders the script in its compact form. Offsets are relative to
// the start of the previous modification.
func (es *EditScript) String() string {
	parts := make([]string, len(es.mods))
	lastStart := 0
	for i, m := range es.mods {
		offset := m.start - lastStart
		lastStart = m.start

		switch m.kind {
		case modSubstitution:
			parts[i] = fmt.Sprintf("s%d%s", offset, m.residues)
		case modInsertion:
			parts[i] = fmt.Sprintf("i%d%s", offset, m.residues)
		default:
			parts[i] = fmt.Sprintf("d%d%s", offset,
				strings.Repeat("-", m.end-m.start))
		}
	}
	return strings.Join(parts, "")
}
