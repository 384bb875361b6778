package mapgen

import "errors"

var (
	// ErrDegenerateGrid is returned when a side of the map is below
	// grid.MinLinearSize or above grid.MaxLinearSize.
	ErrDegenerateGrid = errors.New("degenerate grid")

	// ErrMassUnderflow means the island builder placed more land than its
	// budget allowed. It indicates a bookkeeping defect.
	ErrMassUnderflow = errors.New("island mass underflow")
)
