package seq

import "fmt"

// geneticCode maps every DNA codon to its amino acid, with stop codons
// mapping to '*'.
var geneticCode = map[string]byte{
	"ATA": 'I', "ATC": 'I', "ATT": 'I', "ATG": 'M',
	"ACA": 'T', "ACC": 'T', "ACG": 'T', "ACT": 'T',
	"AAC": 'N', "AAT": 'N', "AAA": 'K', "AAG": 'K',
	"AGC": 'S', "AGT": 'S', "AGA": 'R', "AGG": 'R',
	"CTA": 'L', "CTC": 'L', "CTG": 'L', "CTT": 'L',
	"CCA": 'P', "CCC": 'P', "CCG": 'P', "CCT": 'P',
	"CAC": 'H', "CAT": 'H', "CAA": 'Q', "CAG": 'Q',
	"CGA": 'R', "CGC": 'R', "CGG": 'R', "CGT": 'R',
	"GTA": 'V', "GTC": 'V', "GTG": 'V', "GTT": 'V',
	"GCA": 'A', "GCC": 'A', "GCG": 'A', "GCT": 'A',
	"GAC": 'D', "GAT": 'D', "GAA": 'E', "GAG": 'E',
	"GGA": 'G', "GGC": 'G', "GGG": 'G', "GGT": 'G',
	"TCA": 'S', "TCC": 'S', "TCG": 'S', "TCT": 'S',
	"TTC": 'F', "TTT": 'F', "TTA": 'L', "TTG": 'L',
	"TAC": 'Y', "TAT": 'Y', "TAA": '*', "TAG": '*',
	"TGC": 'C', "TGT": 'C', "TGA": '*', "TGG": 'W',
}

// Translate translates the reading frame of a nucleotide sequence that
// starts at the given offset (0, 1 or 2) with the standard genetic code.
// U reads as T, stop codons translate to '*', and a codon holding any
// other ambiguity code or a gap translates to X. A trailing partial codon
// is dropped. Translate panics on a frame outside 0-2 and returns an error
// wrapping ErrAlphabetMismatch for non nucleotide input.
func Translate(s Sequence, frame int) (Sequence, error) {
	if s.alphabet != Nucleotide {
		return Sequence{}, fmt.Errorf(
			"sequence %q: cannot translate the %s alphabet: %w",
			s.id, s.alphabet.Name(), ErrAlphabetMismatch)
	}
	if frame < 0 || frame > 2 {
		panic(fmt.Sprintf("Invalid reading frame %d for sequence %q.",
			frame, s.id))
	}

	var residues []byte
	if n := s.Len() - frame; n > 0 {
		residues = make([]byte, 0, n/3)
	}
	var codon [3]byte
	for i := frame; i+3 <= s.Len(); i += 3 {
		for k := 0; k < 3; k++ {
			c := s.residues[i+k]
			if c == 'U' {
				c = 'T'
			}
			codon[k] = c
		}
		aa, ok := geneticCode[string(codon[:])]
		if !ok {
			aa = 'X'
		}
		residues = append(residues, aa)
	}
	return Sequence{id: s.id, alphabet: AminoAcid, residues: residues}, nil
}

// SixFrames translates all six reading frames of a nucleotide sequence:
// the three forward frames and the three frames of the reverse complement,
// interleaved as +1, -1, +2, -2, +3, -3. Frame identifiers are appended to
// the sequence identifier.
func SixFrames(s Sequence) ([]Sequence, error) {
	rc, err := s.ReverseComplement()
	if err != nil {
		return nil, err
	}
	frames := make([]Sequence, 0, 6)
	for frame := 0; frame < 3; frame++ {
		fwd, err := Translate(s, frame)
		if err != nil {
			return nil, err
		}
		fwd.id = fmt.Sprintf("%s[+%d]", s.id, frame+1)
		frames = append(frames, fwd)

		rev, err := Translate(rc, frame)
		if err != nil {
			return nil, err
		}
		rev.id = fmt.Sprintf("%s[-%d]", s.id, frame+1)
		frames = append(frames, rev)
	}
	return frames, nil
}
