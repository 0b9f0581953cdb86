package align

import "github.com/JaasperK/Bioinformatik/seq"

// Local computes the optimal Smith-Waterman local alignment of a and b.
// When several cells tie for the optimal score, the alignment ending at
// the smallest row index, then the smallest column index, is returned, so
// repeated runs yield identical results. Inputs with no positive scoring
// window, an empty input included, yield the degenerate Alignment with
// score 0 and empty windows.
func Local(a, b seq.Sequence, scheme ScoringScheme) (Alignment, error) {
	if err := validateInputs(a, b, scheme); err != nil {
		return Alignment{}, err
	}
	if a.Len() == 0 || b.Len() == 0 {
		return Alignment{}, nil
	}
	tr, best, ends := localFill(a.Bytes(), b.Bytes(), scheme)
	if len(ends) == 0 {
		return Alignment{}, nil
	}
	return tr.trace(a.Bytes(), b.Bytes(), best, ends[0]), nil
}

// LocalAll computes one alignment per cell that ties for the optimal local
// score, ordered by end cell, row first. It returns nil when no window
// scores above 0.
func LocalAll(a, b seq.Sequence, scheme ScoringScheme) ([]Alignment, error) {
	if err := validateInputs(a, b, scheme); err != nil {
		return nil, err
	}
	if a.Len() == 0 || b.Len() == 0 {
		return nil, nil
	}
	ra, rb := a.Bytes(), b.Bytes()
	tr, best, ends := localFill(ra, rb, scheme)
	if len(ends) == 0 {
		return nil, nil
	}
	alignments := make([]Alignment, len(ends))
	for i, end := range ends {
		alignments[i] = tr.trace(ra, rb, best, end)
	}
	return alignments, nil
}

// tracer is what the two local fills have in common once filled.
type tracer interface {
	trace(ra, rb []byte, score int, from cell) Alignment
}

// localFill dispatches to the recurrence the scheme calls for and returns
// the filled tables, the optimal score and the tied end cells in row major
// order.
func localFill(ra, rb []byte, scheme ScoringScheme) (tracer, int, []cell) {
	if scheme.linear() {
		t := localLinear(ra, rb, scheme)
		return t, t.best, t.maxima
	}
	t := localAffine(ra, rb, scheme)
	return t, t.best, t.maxima
}

// localLinear fills the single matrix recurrence with a floor of 0:
//
//	h(i, j) = max(0, h(i-1, j-1)+sub, h(i-1, j)+gap, h(i, j-1)+gap)
func localLinear(ra, rb []byte, scheme ScoringScheme) *linearTables {
	rows, cols := len(ra)+1, len(rb)+1
	t := newLinearTables(rows, cols)
	gap := scheme.GapOpen
	for i := 1; i < rows; i++ {
		for j := 1; j < cols; j++ {
			at := i*cols + j
			best, dir := 0, dirNone
			if v := t.h[at-cols-1] + scheme.sub(ra[i-1], rb[j-1]); v > best {
				best, dir = v, dirDiag
			}
			if v := t.h[at-cols] + gap; v > best {
				best, dir = v, dirUp
			}
			if v := t.h[at-1] + gap; v > best {
				best, dir = v, dirLeft
			}
			t.h[at] = best
			t.dir[at] = dir
			if best > t.best {
				t.best = best
				t.maxima = t.maxima[:0]
			}
			if best == t.best && best > 0 {
				t.maxima = append(t.maxima, cell{i, j})
			}
		}
	}
	return t
}

// localAffine fills the Gotoh recurrence with a floor of 0 on the main
// matrix. Gap runs are priced GapOpen for their first position and
// GapExtend for each one after; on a tie between extending a run and
// opening a fresh one the run is closed.
func localAffine(ra, rb []byte, scheme ScoringScheme) *affineTables {
	rows, cols := len(ra)+1, len(rb)+1
	t := newAffineTables(rows, cols)
	for j := 0; j < cols; j++ {
		t.e[j] = negInf
		t.f[j] = negInf
	}
	for i := 1; i < rows; i++ {
		t.e[i*cols] = negInf
		t.f[i*cols] = negInf
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

			best, dir := 0, dirNone
			if v := t.h[up-1] + scheme.sub(ra[i-1], rb[j-1]); v > best {
				best, dir = v, dirDiag
			}
			if t.f[at] > best {
				best, dir = t.f[at], dirUp
			}
			if t.e[at] > best {
				best, dir = t.e[at], dirLeft
			}
			t.h[at] = best
			t.dir[at] = dir
			if best > t.best {
				t.best = best
				t.maxima = t.maxima[:0]
			}
			if best == t.best && best > 0 {
				t.maxima = append(t.maxima, cell{i, j})
			}
		}
	}
	return t
}
