package components

// Directions is the movement intent of a player-controlled entity.
// Input handlers flip the flags; the entity reads them once per frame.
type Directions struct {
	Left  bool
	Right bool
	Up    bool
	Down  bool
}

// Vector returns the intent as a unit-per-axis direction. Opposite keys
// cancel out. Diagonals are not normalised.
func (d Directions) Vector() (x, y float64) {
	if d.Left {
		x--
	}
	if d.Right {
		x++
	}
	if d.Up {
		y--
	}
	if d.Down {
		y++
	}
	return x, y
}

// Any reports whether any direction is held
func (d Directions) Any() bool {
	return d.Left || d.Right || d.Up || d.Down
}

// Direction names one movement flag
type Direction int

const (
	DirectionLeft Direction = iota
	DirectionRight
	DirectionUp
	DirectionDown
)

// Set updates the flag for one direction
func (d *Directions) Set(dir Direction, held bool) {
	switch dir {
	case DirectionLeft:
		d.Left = held
	case DirectionRight:
		d.Right = held
	case DirectionUp:
		d.Up = held
	case DirectionDown:
		d.Down = held
	}
}
