package model

import "fmt"

// Game is one checkers session: the board, whose turn it is, the legal move
// cache for that turn and the piece currently held by the player. A Game is
// not safe for concurrent use; its owner serializes input events.
type Game struct {
	grid     *Grid
	toMove   Side
	moves    LegalMoves
	chain    *Cell
	held     *Cell
	winner   *Side
	lastMove *MoveOutcome

	remaining map[Side]int

	trace  Tracer
	render func(State)
}

type Option func(*Game)

// WithTracer installs a debug hook for move generation and turn changes.
func WithTracer(t Tracer) Option {
	return func(g *Game) {
		g.trace = t
	}
}

// WithRenderHook registers a callback run after every accepted state change.
func WithRenderHook(fn func(State)) Option {
	return func(g *Game) {
		g.render = fn
	}
}

// NewGame sets up the standard opening with Black to move.
func NewGame(opts ...Option) *Game {
	g := &Game{}
	for _, opt := range opts {
		opt(g)
	}
	g.start(NewStandardGrid(), Black)
	return g
}

// NewGameFromGrid starts a session from an arbitrary position. The game owns
// grid from here on.
func NewGameFromGrid(grid *Grid, toMove Side, opts ...Option) (*Game, error) {
	if grid == nil {
		return nil, fmt.Errorf("nil grid")
	}
	if !toMove.Valid() {
		return nil, fmt.Errorf("unknown side %q", toMove)
	}
	g := &Game{}
	for _, opt := range opts {
		opt(g)
	}
	g.start(grid, toMove)
	return g, nil
}

func (g *Game) start(grid *Grid, toMove Side) {
	g.grid = grid
	g.toMove = toMove
	g.chain = nil
	g.held = nil
	g.winner = nil
	g.lastMove = nil
	g.remaining = map[Side]int{
		White: grid.Count(White),
		Black: grid.Count(Black),
	}
	for _, side := range []Side{White, Black} {
		if g.remaining[side] == 0 {
			winner := side.Opponent()
			g.winner = &winner
		}
	}
	g.determineMoves()
}

// Reset throws the current board away and deals a fresh standard game.
func (g *Game) Reset() {
	g.start(NewStandardGrid(), Black)
	g.trace.emit(TraceTurns, "game reset")
	g.notify()
}

func (g *Game) ToMove() Side {
	return g.toMove
}

func (g *Game) PieceCount(side Side) int {
	return g.remaining[side]
}

// Winner reports the winning side once the game is over.
func (g *Game) Winner() (Side, bool) {
	if g.winner == nil {
		return "", false
	}
	return *g.winner, true
}

func (g *Game) IsOver() bool {
	return g.winner != nil
}

func (g *Game) ForcedCaptures() []Cell {
	return g.moves.Forced()
}

// Held reports the origin of the piece the player has picked up.
func (g *Game) Held() (Cell, bool) {
	if g.held == nil {
		return Cell{}, false
	}
	return *g.held, true
}

// Chain reports the cell of the piece that must continue a capture chain.
func (g *Game) Chain() (Cell, bool) {
	if g.chain == nil {
		return Cell{}, false
	}
	return *g.chain, true
}

func (g *Game) PieceAt(c Cell) (Piece, bool) {
	return g.grid.At(c)
}

// LegalDestinations returns where the piece on c may go this turn. It is empty
// for empty cells, the opponent's pieces and pieces the mandatory-capture rule
// holds back.
func (g *Game) LegalDestinations(c Cell) []Cell {
	if g.IsOver() {
		return []Cell{}
	}
	piece, ok := g.grid.At(c)
	if !ok || piece.Side != g.toMove {
		return []Cell{}
	}
	return g.moves.Destinations(c)
}

// PickUp selects the piece on c for the side to move. A rejected selection
// leaves the game untouched.
func (g *Game) PickUp(c Cell) error {
	if g.IsOver() {
		return ErrGameOver
	}
	if err := g.checkSelection(c); err != nil {
		g.trace.emit(TraceTurns, "selection rejected", "cell", c, "error", err)
		return err
	}
	cell := c
	g.held = &cell
	g.notify()
	return nil
}

func (g *Game) checkSelection(c Cell) error {
	piece, ok := g.grid.At(c)
	if !ok {
		return fmt.Errorf("%w: there is no piece on %s", ErrIllegalSelection, c)
	}
	if piece.Side != g.toMove {
		return fmt.Errorf("%w: it is %s's turn, they need to move a %s piece", ErrIllegalSelection, g.toMove, g.toMove)
	}
	if g.chain != nil && *g.chain != c {
		return fmt.Errorf("%w: the piece on %s must continue capturing", ErrIllegalSelection, *g.chain)
	}
	if g.moves.MustCapture() && !g.moves.IsForced(c) {
		return fmt.Errorf("%w: a capture is available and must be taken", ErrIllegalSelection)
	}
	return nil
}

// Drop releases the held piece on c. Dropping on the origin or off the board
// puts the piece back without complaint; any other cell outside the legal set
// is rejected with ErrIllegalDestination.
func (g *Game) Drop(c Cell) (MoveResult, error) {
	if g.held == nil {
		return MoveResult{}, ErrNothingHeld
	}
	from := *g.held
	g.held = nil

	if !c.InBounds() || c == from {
		g.notify()
		return g.rejected(), nil
	}
	if !g.moves.Allows(from, c) {
		g.notify()
		return g.rejected(), fmt.Errorf("%w: that was not a legal movement for your piece", ErrIllegalDestination)
	}

	outcome, err := ApplyMove(g.grid, g.toMove, from, c)
	if err != nil {
		// The cache said the move was legal, so the grid and cache disagree.
		return g.rejected(), fmt.Errorf("apply %s -> %s: %w", from, c, err)
	}
	g.lastMove = &outcome
	result := g.resolve(outcome)
	g.notify()
	return result, nil
}

// AttemptMove picks up the piece on from and drops it on to in one step.
func (g *Game) AttemptMove(from, to Cell) (MoveResult, error) {
	if err := g.PickUp(from); err != nil {
		return g.rejected(), err
	}
	return g.Drop(to)
}

func (g *Game) rejected() MoveResult {
	return MoveResult{Accepted: false, ToMove: g.toMove, Winner: g.winner}
}

// resolve decides what follows an applied move: the game ends, the same piece
// keeps capturing, or the turn passes.
func (g *Game) resolve(outcome MoveOutcome) MoveResult {
	result := MoveResult{Accepted: true, Outcome: &outcome}
	if !outcome.WasCapture {
		g.switchTurn()
		result.TurnPassed = true
		result.ToMove = g.toMove
		return result
	}

	captured := *outcome.CapturedSide
	g.remaining[captured]--
	if g.remaining[captured] == 0 {
		winner := captured.Opponent()
		g.winner = &winner
		g.chain = nil
		g.moves = newLegalMoves()
		g.trace.emit(TraceTurns, "game over", "winner", winner)
		result.ToMove = g.toMove
		result.Winner = g.winner
		return result
	}

	g.moves = computeChainMoves(g.grid, outcome.To, g.trace)
	if g.moves.MustCapture() {
		landing := outcome.To
		g.chain = &landing
		g.trace.emit(TraceTurns, "capture chain continues", "side", g.toMove, "cell", landing)
		result.ToMove = g.toMove
		return result
	}
	g.switchTurn()
	result.TurnPassed = true
	result.ToMove = g.toMove
	return result
}

func (g *Game) switchTurn() {
	g.toMove = g.toMove.Opponent()
	g.chain = nil
	g.determineMoves()
	g.trace.emit(TraceTurns, "switched turn", "toMove", g.toMove, "mustCapture", g.moves.MustCapture())
}

func (g *Game) determineMoves() {
	if g.IsOver() {
		g.moves = newLegalMoves()
		return
	}
	g.moves = computeLegalMoves(g.grid, g.toMove, g.trace)
}

func (g *Game) notify() {
	if g.render != nil {
		g.render(g.State())
	}
}
