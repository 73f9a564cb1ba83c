package model

// State is a render-ready snapshot of a Game.
type State struct {
	Board          [][]*Piece   `json:"board"`
	ToMove         Side         `json:"toMove"`
	ForcedCaptures []Cell       `json:"forcedCaptures"`
	Moves          []MoveOption `json:"moves"`
	// Dimmed holds every cell not involved in a mandatory capture; it is
	// empty when no capture is forced.
	Dimmed      []Cell       `json:"dimmed"`
	Highlighted []Cell       `json:"highlighted"`
	Held        *Cell        `json:"held"`
	Chain       *Cell        `json:"chain"`
	Remaining   Remaining    `json:"remaining"`
	Winner      *Side        `json:"winner"`
	LastMove    *MoveOutcome `json:"lastMove"`
}

type Remaining struct {
	White int `json:"white"`
	Black int `json:"black"`
}

func (g *Game) State() State {
	state := State{
		Board:          g.grid.Rows(),
		ToMove:         g.toMove,
		ForcedCaptures: g.moves.Forced(),
		Moves:          g.moves.Options(),
		Dimmed:         g.dimmed(),
		Highlighted:    []Cell{},
		Remaining: Remaining{
			White: g.remaining[White],
			Black: g.remaining[Black],
		},
	}
	if g.held != nil {
		held := *g.held
		state.Held = &held
		state.Highlighted = append(state.Highlighted, held)
		state.Highlighted = append(state.Highlighted, g.moves.Destinations(held)...)
	}
	if g.chain != nil {
		chain := *g.chain
		state.Chain = &chain
	}
	if g.winner != nil {
		winner := *g.winner
		state.Winner = &winner
	}
	if g.lastMove != nil {
		last := *g.lastMove
		state.LastMove = &last
	}
	return state
}

// dimmed lists the cells neither holding a forced piece nor reachable by one.
func (g *Game) dimmed() []Cell {
	cells := []Cell{}
	if !g.moves.MustCapture() {
		return cells
	}
	involved := CellSet{}
	for _, from := range g.moves.Forced() {
		involved.add(from)
		for _, to := range g.moves.Candidates(from) {
			involved.add(to)
		}
	}
	for row := 0; row < BoardSize; row++ {
		for col := 0; col < BoardSize; col++ {
			c := Cell{Col: col, Row: row}
			if !involved.Has(c) {
				cells = append(cells, c)
			}
		}
	}
	return cells
}
