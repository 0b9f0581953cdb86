package align

import "github.com/JaasperK/Bioinformatik/seq"

// Global computes the optimal Needleman-Wunsch global alignment of a and
// b: both sequences are consumed end to end, with leading and trailing
// gaps charged like any other. Tied candidates resolve diagonal first,
// then up, then left, so repeated runs yield identical results. Aligning
// against an empty sequence yields the all gap alignment.
func Global(a, b seq.Sequence, scheme ScoringScheme) (Alignment, error) {
	if err := validateInputs(a, b, scheme); err != nil {
		return Alignment{}, err
	}
	ra, rb := a.Bytes(), b.Bytes()
	end := cell{len(ra), len(rb)}
	if scheme.linear() {
		t := globalLinear(ra, rb, scheme)
		return t.trace(ra, rb, t.h[len(t.h)-1], end), nil
	}
	t := globalAffine(ra, rb, scheme)
	return t.trace(ra, rb, t.h[len(t.h)-1], end), nil
}

// globalLinear fills the single matrix recurrence without a floor. The
// first row and column hold the cost of consuming a prefix with gaps
// alone.
func globalLinear(ra, rb []byte, scheme ScoringScheme) *linearTables {
	rows, cols := len(ra)+1, len(rb)+1
	t := newLinearTables(rows, cols)
	gap := scheme.GapOpen
	for j := 1; j < cols; j++ {
		t.h[j] = j * gap
		t.dir[j] = dirLeft
	}
	for i := 1; i < rows; i++ {
		t.h[i*cols] = i * gap
		t.dir[i*cols] = dirUp
	}
	for i := 1; i < rows; i++ {
		for j := 1; j < cols; j++ {
			at := i*cols + j
			best, dir := t.h[at-cols-1]+scheme.sub(ra[i-1], rb[j-1]), dirDiag
			if v := t.h[at-cols] + gap; v > best {
				best, dir = v, dirUp
			}
			if v := t.h[at-1] + gap; v > best {
				best, dir = v, dirLeft
			}
			t.h[at] = best
			t.dir[at] = dir
		}
	}
	return t
}

// globalAffine fills the Gotoh recurrence without a floor. The first row
// and column hold affine priced all gap prefixes.
func globalAffine(ra, rb []byte, scheme ScoringScheme) *affineTables {
	rows, cols := len(ra)+1, len(rb)+1
	t := newAffineTables(rows, cols)
	t.e[0] = negInf
	t.f[0] = negInf
	for j := 1; j < cols; j++ {
		t.e[j] = scheme.GapOpen + (j-1)*scheme.GapExtend
		t.f[j] = negInf
		t.h[j] = t.e[j]
		t.dir[j] = dirLeft
		t.eExt[j] = j > 1
	}
	for i := 1; i < rows; i++ {
		at := i * cols
		t.f[at] = scheme.GapOpen + (i-1)*scheme.GapExtend
		t.e[at] = negInf
		t.h[at] = t.f[at]
		t.dir[at] = dirUp
		t.fExt[at] = i > 1
	}
	for i := 1; i < rows; i++ {
		for j := 1; j < cols; j++ {
			at := i*cols + j
			up := at - cols
			left := at - 1

			if open, ext := t.h[up]+scheme.GapOpen, t.f[up]+scheme.GapExtend; ext > open {
				t.f[at] = ext
				t.fExt[at] = true
			} else {
				t.f[at] = open
			}
			if open, ext := t.h[left]+scheme.GapOpen, t.e[left]+scheme.GapExtend; ext > open {
				t.e[at] = ext
				t.eExt[at] = true
			} else {
				t.e[at] = open
			}

			best, dir := t.h[up-1]+scheme.sub(ra[i-1], rb[j-1]), dirDiag
			if t.f[at] > best {
				best, dir = t.f[at], dirUp
			}
			if t.e[at] > best {
				best, dir = t.e[at], dirLeft
			}
			t.h[at] = best
			t.dir[at] = dir
		}
	}
	return t
}
