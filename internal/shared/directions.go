package shared

import "fmt"

// GridWidth and GridHeight describe the padded 10x12 grid: the 8x8 board
// sits inside a one-column frame on each side and a two-row frame above and below.
const (
	GridWidth  = 10
	GridHeight = 12
	GridSize   = GridWidth * GridHeight
)

// Square is an index into the padded grid (row*GridWidth + col).
type Square int

// NoSquare marks an absent square, such as an unset en-passant marker.
const NoSquare Square = 0

func (s Square) Row() int { return int(s) / GridWidth }
func (s Square) Col() int { return int(s) % GridWidth }

// Playable reports whether the square lies inside the 8x8 board.
func (s Square) Playable() bool {
	r, c := s.Row(), s.Col()
	return s >= 0 && int(s) < GridSize && r >= 2 && r <= 9 && c >= 1 && c <= 8
}

// Rank is the chess rank, 1..8, of a playable square.
func (s Square) Rank() int { return 10 - s.Row() }

// File is the chess file, 0 for a through 7 for h.
func (s Square) File() int { return s.Col() - 1 }

func (s Square) String() string {
	if !s.Playable() {
		return "-"
	}
	return fmt.Sprintf("%c%d", 'a'+s.File(), s.Rank())
}

// SquareAt maps a file (0..7) and rank (1..8) to a grid index.
func SquareAt(file, rank int) Square {
	return Square((10-rank)*GridWidth + file + 1)
}

// Vector is a signed step on the padded grid.
type Vector int

const (
	North Vector = -GridWidth
	South Vector = GridWidth
	East  Vector = 1
	West  Vector = -1

	NorthEast = North + East
	NorthWest = North + West
	SouthEast = South + East
	SouthWest = South + West
)

func (v Vector) Neg() Vector { return -v }

var vectorNames = map[Vector]string{
	North:     "N",
	South:     "S",
	East:      "E",
	West:      "W",
	NorthEast: "NE",
	NorthWest: "NW",
	SouthEast: "SE",
	SouthWest: "SW",

	2*North + East: "NNE",
	2*North + West: "NNW",
	2*South + East: "SSE",
	2*South + West: "SSW",
	2*East + North: "ENE",
	2*East + South: "ESE",
	2*West + North: "WNW",
	2*West + South: "WSW",

	2 * North: "NN",
	2 * South: "SS",
	2 * East:  "EE",
	2 * West:  "WW",
}

func (v Vector) String() string {
	if name, ok := vectorNames[v]; ok {
		return name
	}
	return fmt.Sprintf("%+d", int(v))
}

// Step applies v to s.
func (s Square) Step(v Vector) Square { return s + Square(v) }
