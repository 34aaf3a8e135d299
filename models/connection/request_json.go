package connection

// GridSize is optional, the server rules apply when it is nil.
type ReqCreateGame struct {
	GridSize *int `json:"grid_size,omitempty"`
}

// Orientation is 0 for vertical and 1 for horizontal.
type ReqPlaceShip struct {
	Length      int   `json:"length"`
	Row         int   `json:"row"`
	Col         int   `json:"col"`
	Orientation uint8 `json:"orientation"`
}

type ReqAttack struct {
	Row int `json:"row"`
	Col int `json:"col"`
}
