package wildfire

import "firespread/internal/core"

// CellState is the fire state of a single raster cell.
type CellState uint8

const (
	Unburnt CellState = iota
	Burning
	Burnt
)

func (s CellState) String() string {
	switch s {
	case Unburnt:
		return "unburnt"
	case Burning:
		return "burning"
	case Burnt:
		return "burnt"
	default:
		return "invalid"
	}
}

// Frame is an immutable snapshot of the cell states at one time step.
type Frame struct {
	w, h  int
	cells []CellState
}

func newFrame(w, h int, cells []CellState) Frame {
	return Frame{w: w, h: h, cells: append([]CellState(nil), cells...)}
}

// Size reports the frame dimensions.
func (f Frame) Size() core.Size { return core.Size{W: f.w, H: f.h} }

// Len returns the number of cells in the frame.
func (f Frame) Len() int { return len(f.cells) }

// At returns the state at (x, y). Coordinates wrap toroidally.
func (f Frame) At(x, y int) CellState {
	x = (x%f.w + f.w) % f.w
	y = (y%f.h + f.h) % f.h
	return f.cells[y*f.w+x]
}

// Cell returns the state at linear index i.
func (f Frame) Cell(i int) CellState { return f.cells[i] }

// Count returns how many cells are in state s.
func (f Frame) Count(s CellState) int {
	n := 0
	for _, c := range f.cells {
		if c == s {
			n++
		}
	}
	return n
}

// Equal reports whether two frames hold identical cells.
func (f Frame) Equal(o Frame) bool {
	if f.w != o.w || f.h != o.h || len(f.cells) != len(o.cells) {
		return false
	}
	for i := range f.cells {
		if f.cells[i] != o.cells[i] {
			return false
		}
	}
	return true
}

// AppendBytes appends the frame's states as bytes to dst.
func (f Frame) AppendBytes(dst []uint8) []uint8 {
	for _, c := range f.cells {
		dst = append(dst, uint8(c))
	}
	return dst
}
