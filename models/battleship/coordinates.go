package battleship

import "fmt"

type Coordinates struct {
	Row int `json:"row"`
	Col int `json:"col"`
}

func NewCoordinates(row, col int) Coordinates {
	return Coordinates{Row: row, Col: col}
}

// Offset returns the coordinates shifted by dRow rows and dCol columns.
func (c Coordinates) Offset(dRow, dCol int) Coordinates {
	return Coordinates{Row: c.Row + dRow, Col: c.Col + dCol}
}

// Neighbours returns the 8 surrounding coordinates (Moore neighbourhood).
// They are not bound checked.
func (c Coordinates) Neighbours() []Coordinates {
	neighbours := make([]Coordinates, 0, 8)
	for dRow := -1; dRow <= 1; dRow++ {
		for dCol := -1; dCol <= 1; dCol++ {
			if dRow == 0 && dCol == 0 {
				continue
			}
			neighbours = append(neighbours, c.Offset(dRow, dCol))
		}
	}
	return neighbours
}

// String is 1-based since it is meant for players.
func (c Coordinates) String() string {
	return fmt.Sprintf("(%d, %d)", c.Row+1, c.Col+1)
}
