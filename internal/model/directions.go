package model

// Permission selects which diagonals a piece may travel.
type Permission int

const (
	PermitWhite Permission = iota
	PermitBlack
	PermitKing
)

var (
	NW = Vector{X: -1, Y: -1}
	NE = Vector{X: 1, Y: -1}
	SE = Vector{X: 1, Y: 1}
	SW = Vector{X: -1, Y: 1}
)

var (
	upDirs   = []Vector{NW, NE}
	downDirs = []Vector{SW, SE}
	allDirs  = []Vector{NW, NE, SE, SW}
)

// DirectionsFor returns a fresh slice of unit diagonals for p. Callers own
// the result and may modify it.
func DirectionsFor(p Permission) []Vector {
	switch p {
	case PermitBlack:
		return copyDirs(downDirs)
	case PermitKing:
		return copyDirs(allDirs)
	default:
		return copyDirs(upDirs)
	}
}

func PermissionOf(p Piece) Permission {
	switch {
	case p.Crowned:
		return PermitKing
	case p.Side == Black:
		return PermitBlack
	default:
		return PermitWhite
	}
}

func copyDirs(in []Vector) []Vector {
	out := make([]Vector, len(in))
	copy(out, in)
	return out
}
