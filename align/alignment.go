package align

import (
	"fmt"

	"github.com/JaasperK/Bioinformatik/seq"
)

// GapByte marks an indel position in aligned rows.
const GapByte = '-'

// An Alignment is the immutable result of a pairwise alignment: the
// optimal score, the half open windows [StartA, EndA) and [StartB, EndB)
// the alignment covers in the two inputs, and the gapped rows themselves.
// The rows always have equal length; a degenerate alignment has score 0
// and empty rows and windows.
type Alignment struct {
	Score  int
	StartA int
	EndA   int
	StartB int
	EndB   int

	AlignedA []byte
	AlignedB []byte
}

// Identity returns the percentage of alignment columns whose residues
// match, as an integer in the range 0-100. A degenerate alignment has
// identity 0.
func (a Alignment) Identity() int {
	return seq.Identity(a.AlignedA, a.AlignedB)
}

// String renders the two gapped rows stacked, with the covered windows as
// a header.
func (a Alignment) String() string {
	return fmt.Sprintf("score %d [%d, %d) x [%d, %d)\n%s\n%s",
		a.Score, a.StartA, a.EndA, a.StartB, a.EndB,
		string(a.AlignedA), string(a.AlignedB))
}
