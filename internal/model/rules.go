package model

import (
	"fmt"
	"sort"
)

// CellSet is an unordered set of cells.
type CellSet map[Cell]struct{}

func (s CellSet) Has(c Cell) bool {
	_, ok := s[c]
	return ok
}

func (s CellSet) add(c Cell) {
	s[c] = struct{}{}
}

// Sorted returns the members in row-major order.
func (s CellSet) Sorted() []Cell {
	cells := make([]Cell, 0, len(s))
	for c := range s {
		cells = append(cells, c)
	}
	sortCells(cells)
	return cells
}

func sortCells(cells []Cell) {
	sort.Slice(cells, func(i, j int) bool {
		if cells[i].Row != cells[j].Row {
			return cells[i].Row < cells[j].Row
		}
		return cells[i].Col < cells[j].Col
	})
}

// LegalMoves is the move cache for one turn or one step of a capture chain.
// It must be rebuilt after every applied move.
type LegalMoves struct {
	forced     CellSet
	candidates map[Cell]CellSet
}

func newLegalMoves() LegalMoves {
	return LegalMoves{
		forced:     CellSet{},
		candidates: make(map[Cell]CellSet),
	}
}

// MustCapture reports whether the mandatory-capture rule is in force.
func (m LegalMoves) MustCapture() bool {
	return len(m.forced) > 0
}

func (m LegalMoves) IsForced(c Cell) bool {
	return m.forced.Has(c)
}

func (m LegalMoves) Forced() []Cell {
	return m.forced.Sorted()
}

// Candidates returns every destination computed for c, ignoring the
// mandatory-capture rule.
func (m LegalMoves) Candidates(c Cell) []Cell {
	set, ok := m.candidates[c]
	if !ok {
		return []Cell{}
	}
	return set.Sorted()
}

// Destinations returns the cells the piece on c may move to this turn.
func (m LegalMoves) Destinations(c Cell) []Cell {
	if m.MustCapture() && !m.IsForced(c) {
		return []Cell{}
	}
	return m.Candidates(c)
}

func (m LegalMoves) Allows(from, to Cell) bool {
	if m.MustCapture() && !m.IsForced(from) {
		return false
	}
	set, ok := m.candidates[from]
	return ok && set.Has(to)
}

// HasMoves reports whether any piece can move at all.
func (m LegalMoves) HasMoves() bool {
	for _, set := range m.candidates {
		if len(set) > 0 {
			return true
		}
	}
	return false
}

// Options lists every piece with computed destinations, marking the ones the
// mandatory-capture rule disables.
func (m LegalMoves) Options() []MoveOption {
	from := make([]Cell, 0, len(m.candidates))
	for c, set := range m.candidates {
		if len(set) > 0 {
			from = append(from, c)
		}
	}
	sortCells(from)
	options := make([]MoveOption, 0, len(from))
	for _, c := range from {
		options = append(options, MoveOption{
			From:     c,
			To:       m.Candidates(c),
			Capture:  m.IsForced(c),
			Disabled: m.MustCapture() && !m.IsForced(c),
		})
	}
	return options
}

// ComputeLegalMoves scans every piece of side and records its destinations.
// A piece able to capture records only its captures and joins the forced set.
func ComputeLegalMoves(g *Grid, side Side) LegalMoves {
	return computeLegalMoves(g, side, nil)
}

func computeLegalMoves(g *Grid, side Side, trace Tracer) LegalMoves {
	moves := newLegalMoves()
	for _, c := range g.Cells(side) {
		dests, capture := pieceMoves(g, c, trace)
		moves.candidates[c] = dests
		if capture {
			moves.forced.add(c)
		}
	}
	trace.emit(TraceMoves, "computed legal moves", "side", side, "pieces", len(moves.candidates), "forced", len(moves.forced))
	return moves
}

// ComputeChainMoves restricts move generation to the piece on c and keeps
// only captures. The result is empty when the chain is over.
func ComputeChainMoves(g *Grid, c Cell) LegalMoves {
	return computeChainMoves(g, c, nil)
}

func computeChainMoves(g *Grid, c Cell, trace Tracer) LegalMoves {
	moves := newLegalMoves()
	dests, capture := pieceMoves(g, c, trace)
	if capture {
		moves.candidates[c] = dests
		moves.forced.add(c)
	}
	trace.emit(TraceMoves, "computed chain moves", "cell", c, "continues", capture)
	return moves
}

func pieceMoves(g *Grid, c Cell, trace Tracer) (CellSet, bool) {
	dests := CellSet{}
	piece, ok := g.At(c)
	if !ok {
		return dests, false
	}
	dirs := DirectionsFor(PermissionOf(piece))
	trace.emit(TraceMoves, "scanning piece", "cell", c, "directions", len(dirs))

	capture := false
	for _, dir := range dirs {
		neighbor, ok := g.At(c.Add(dir))
		if !ok || neighbor.Side == piece.Side {
			continue
		}
		landing := c.Add(dir.Step())
		if g.Empty(landing) {
			trace.emit(TraceMoves, "jump available", "cell", c, "landing", landing)
			dests.add(landing)
			capture = true
		}
	}
	if capture {
		return dests, true
	}

	for _, dir := range dirs {
		if target := c.Add(dir); g.Empty(target) {
			dests.add(target)
		}
	}
	return dests, false
}

// ApplyMove moves side's piece from one cell to another, crowning it on the
// far row and removing the jumped piece when the move is a capture. The grid
// is left untouched when the move is malformed.
func ApplyMove(g *Grid, side Side, from, to Cell) (MoveOutcome, error) {
	piece, ok := g.At(from)
	if !ok {
		return MoveOutcome{}, fmt.Errorf("%w: no piece on %s", ErrInvalidMove, from)
	}
	if piece.Side != side {
		return MoveOutcome{}, fmt.Errorf("%w: piece on %s is not %s", ErrInvalidMove, from, side)
	}
	if !g.Empty(to) {
		return MoveOutcome{}, fmt.Errorf("%w: %s is not an open square", ErrInvalidMove, to)
	}

	movement := Delta(from, to)
	unit := movement.Unit()
	if abs(movement.X) != abs(movement.Y) || abs(movement.X) < 1 || abs(movement.X) > 2 {
		return MoveOutcome{}, fmt.Errorf("%w: %s -> %s is not a diagonal step or jump", ErrInvalidMove, from, to)
	}
	jump := movement != unit
	jumped := from.Add(unit)
	if jump {
		victim, ok := g.At(jumped)
		if !ok || victim.Side == side {
			return MoveOutcome{}, fmt.Errorf("%w: nothing to capture on %s", ErrInvalidMove, jumped)
		}
	}

	if err := g.Move(from, to); err != nil {
		return MoveOutcome{}, err
	}
	outcome := MoveOutcome{From: from, To: to, Side: side}
	if to.Row == side.crownRow() {
		outcome.Promoted = g.square(to).occupant.crown()
	}
	if jump {
		taken, _ := g.Take(jumped)
		capturedSide := taken.Side
		outcome.WasCapture = true
		outcome.CapturedSide = &capturedSide
		outcome.CapturedAt = &jumped
	}
	return outcome, nil
}
