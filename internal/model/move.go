package model

// Vector is an integer displacement between two cells.
type Vector struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// Delta returns the displacement that carries from onto to.
func Delta(from, to Cell) Vector {
	return Vector{X: to.Col - from.Col, Y: to.Row - from.Row}
}

// Step lengthens v by one in every non-zero axis, keeping its sign.
func (v Vector) Step() Vector {
	return Vector{X: v.X + sign(v.X), Y: v.Y + sign(v.Y)}
}

// Unit reduces v to the sign of each axis.
func (v Vector) Unit() Vector {
	return Vector{X: sign(v.X), Y: sign(v.Y)}
}

func sign(v int) int {
	if v > 0 {
		return 1
	}
	if v < 0 {
		return -1
	}
	return 0
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

// MoveOutcome describes what applying one move did to the grid.
type MoveOutcome struct {
	From         Cell  `json:"from"`
	To           Cell  `json:"to"`
	Side         Side  `json:"side"`
	Promoted     bool  `json:"promoted"`
	WasCapture   bool  `json:"wasCapture"`
	CapturedSide *Side `json:"capturedSide"`
	CapturedAt   *Cell `json:"capturedAt"`
}

// MoveResult is the session-level answer to a drop or move attempt.
type MoveResult struct {
	Accepted bool         `json:"accepted"`
	Outcome  *MoveOutcome `json:"outcome"`
	// TurnPassed is false while a capture chain keeps the same side moving.
	TurnPassed bool  `json:"turnPassed"`
	ToMove     Side  `json:"toMove"`
	Winner     *Side `json:"winner"`
}

// MoveOption lists where the piece on From may currently go.
type MoveOption struct {
	From     Cell   `json:"from"`
	To       []Cell `json:"to"`
	Capture  bool   `json:"capture"`
	Disabled bool   `json:"disabled"`
}
