package align

import "math"

// Direction codes record the provenance of every main matrix cell for the
// traceback. During the fill, candidates are taken diagonal first, then
// up, then left, each requiring strict improvement, so tied cells resolve
// in that order and a tie with the local recurrence floor keeps dirNone.
const (
	dirNone byte = iota
	dirDiag      // consume a residue of both sequences
	dirUp        // consume a residue of a, gap in b
	dirLeft      // consume a residue of b, gap in a
)

// negInf seeds gap matrix cells where no gap run can end. It is low enough
// to never win a maximum and high enough to stay clear of overflow when a
// penalty is added to it.
const negInf = math.MinInt / 4

// A cell addresses a table entry by row and column.
type cell struct {
	i, j int
}

// linearTables is the working state of the single matrix recurrence: the
// score and direction tables, flattened row major with cols entries per
// row. best and maxima are only tracked by the local fill.
type linearTables struct {
	cols   int
	h      []int
	dir    []byte
	best   int
	maxima []cell
}

func newLinearTables(rows, cols int) *linearTables {
	return &linearTables{
		cols: cols,
		h:    make([]int, rows*cols),
		dir:  make([]byte, rows*cols),
	}
}

// trace walks the direction table from a cell back to the nearest dirNone
// cell and materializes the alignment.
func (t *linearTables) trace(ra, rb []byte, score int, from cell) Alignment {
	var da, db []byte
	i, j := from.i, from.j
	for {
		d := t.dir[i*t.cols+j]
		if d == dirNone {
			break
		}
		switch d {
		case dirDiag:
			da = append(da, ra[i-1])
			db = append(db, rb[j-1])
			i--
			j--
		case dirUp:
			da = append(da, ra[i-1])
			db = append(db, GapByte)
			i--
		case dirLeft:
			da = append(da, GapByte)
			db = append(db, rb[j-1])
			j--
		}
	}
	reverseBytes(da)
	reverseBytes(db)
	return Alignment{
		Score:    score,
		StartA:   i,
		EndA:     from.i,
		StartB:   j,
		EndB:     from.j,
		AlignedA: da,
		AlignedB: db,
	}
}

// Traceback states of the affine recurrence: the main matrix and the two
// gap matrices.
const (
	matH byte = iota
	matE // gap in a, moving left
	matF // gap in b, moving up
)

// affineTables is the working state of the affine gap recurrence: the main
// matrix h plus the gap matrices e (gap in a) and f (gap in b). eExt and
// fExt record whether a gap matrix cell extended an existing run rather
// than opening one, which is what the traceback needs to leave a gap run
// at the position where it was opened.
type affineTables struct {
	cols   int
	h      []int
	e      []int
	f      []int
	dir    []byte
	eExt   []bool
	fExt   []bool
	best   int
	maxima []cell
}

func newAffineTables(rows, cols int) *affineTables {
	n := rows * cols
	return &affineTables{
		cols: cols,
		h:    make([]int, n),
		e:    make([]int, n),
		f:    make([]int, n),
		dir:  make([]byte, n),
		eExt: make([]bool, n),
		fExt: make([]bool, n),
	}
}

// trace walks the three matrices from a cell back to the nearest dirNone
// cell. Entering a gap matrix emits gap columns until the cell where the
// run was opened, then returns to the main matrix.
func (t *affineTables) trace(ra, rb []byte, score int, from cell) Alignment {
	var da, db []byte
	i, j := from.i, from.j
	state := matH
loop:
	for {
		at := i*t.cols + j
		switch state {
		case matH:
			switch t.dir[at] {
			case dirNone:
				break loop
			case dirDiag:
				da = append(da, ra[i-1])
				db = append(db, rb[j-1])
				i--
				j--
			case dirUp:
				state = matF
			case dirLeft:
				state = matE
			}
		case matF:
			da = append(da, ra[i-1])
			db = append(db, GapByte)
			if !t.fExt[at] {
				state = matH
			}
			i--
		case matE:
			da = append(da, GapByte)
			db = append(db, rb[j-1])
			if !t.eExt[at] {
				state = matH
			}
			j--
		}
	}
	reverseBytes(da)
	reverseBytes(db)
	return Alignment{
		Score:    score,
		StartA:   i,
		EndA:     from.i,
		StartB:   j,
		EndB:     from.j,
		AlignedA: da,
		AlignedB: db,
	}
}

func reverseBytes(bs []byte) {
	for i, j := 0, len(bs)-1; i < j; i, j = i+1, j-1 {
		bs[i], bs[j] = bs[j], bs[i]
	}
}
