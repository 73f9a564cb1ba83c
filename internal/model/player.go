package model

// Side is the color a player moves. Black opens the game from rows 0-2,
// White answers from rows 5-7.
type Side string

const (
	White Side = "white"
	Black Side = "black"
)

func (s Side) Opponent() Side {
	if s == White {
		return Black
	}
	return White
}

func (s Side) Valid() bool {
	return s == White || s == Black
}

// crownRow is the far row a side's pieces are promoted on.
func (s Side) crownRow() int {
	if s == White {
		return 0
	}
	return 7
}

func (s Side) String() string {
	return string(s)
}
