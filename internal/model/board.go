package model

import "fmt"

const BoardSize = 8

// Cell addresses one square of the board by column and row.
type Cell struct {
	Col int `json:"col"`
	Row int `json:"row"`
}

func (c Cell) InBounds() bool {
	return c.Col >= 0 && c.Col < BoardSize && c.Row >= 0 && c.Row < BoardSize
}

// Playable follows the checkerboard alternation: only cells with an odd
// coordinate sum ever hold a piece.
func (c Cell) Playable() bool {
	return c.InBounds() && (c.Col+c.Row)%2 == 1
}

func (c Cell) Add(v Vector) Cell {
	return Cell{Col: c.Col + v.X, Row: c.Row + v.Y}
}

func (c Cell) String() string {
	return fmt.Sprintf("(%d, %d)", c.Col, c.Row)
}

type Piece struct {
	Side    Side `json:"side"`
	Crowned bool `json:"crowned"`
}

// crown is idempotent and reports whether the piece changed.
func (p *Piece) crown() bool {
	if p.Crowned {
		return false
	}
	p.Crowned = true
	return true
}

type square struct {
	playable bool
	occupant *Piece
}

// Grid is the 8x8 board. Squares are indexed [row][col].
type Grid struct {
	squares [BoardSize][BoardSize]square
}

// NewGrid returns an empty board with the playable pattern laid out.
func NewGrid() *Grid {
	g := &Grid{}
	for row := 0; row < BoardSize; row++ {
		for col := 0; col < BoardSize; col++ {
			g.squares[row][col].playable = Cell{Col: col, Row: row}.Playable()
		}
	}
	return g
}

// NewStandardGrid returns the opening position: twelve Black pieces on rows
// 0-2 and twelve White pieces on rows 5-7.
func NewStandardGrid() *Grid {
	g := NewGrid()
	for row := 0; row < BoardSize; row++ {
		for col := 0; col < BoardSize; col++ {
			c := Cell{Col: col, Row: row}
			if !c.Playable() {
				continue
			}
			switch {
			case row < 3:
				g.squares[row][col].occupant = &Piece{Side: Black}
			case row > 4:
				g.squares[row][col].occupant = &Piece{Side: White}
			}
		}
	}
	return g
}

func (g *Grid) square(c Cell) *square {
	return &g.squares[c.Row][c.Col]
}

// At returns a copy of the piece on c. Out-of-bounds cells hold nothing.
func (g *Grid) At(c Cell) (Piece, bool) {
	if !c.InBounds() {
		return Piece{}, false
	}
	p := g.square(c).occupant
	if p == nil {
		return Piece{}, false
	}
	return *p, true
}

// Empty reports whether c is on the board, playable and unoccupied.
func (g *Grid) Empty(c Cell) bool {
	if !c.InBounds() {
		return false
	}
	sq := g.square(c)
	return sq.playable && sq.occupant == nil
}

func (g *Grid) Place(c Cell, p Piece) error {
	if !c.InBounds() {
		return fmt.Errorf("%w: %s", ErrOutOfBounds, c)
	}
	sq := g.square(c)
	if !sq.playable {
		return fmt.Errorf("%w: %s", ErrNotPlayable, c)
	}
	if sq.occupant != nil {
		return fmt.Errorf("%w: %s", ErrOccupied, c)
	}
	piece := p
	sq.occupant = &piece
	return nil
}

func (g *Grid) Take(c Cell) (Piece, bool) {
	if !c.InBounds() {
		return Piece{}, false
	}
	sq := g.square(c)
	if sq.occupant == nil {
		return Piece{}, false
	}
	p := *sq.occupant
	sq.occupant = nil
	return p, true
}

// Move transfers the occupant of from onto to. The piece itself is moved,
// never copied, so any state it carries travels with it.
func (g *Grid) Move(from, to Cell) error {
	if !from.InBounds() || !to.InBounds() {
		return fmt.Errorf("%w: %s -> %s", ErrOutOfBounds, from, to)
	}
	p := g.square(from).occupant
	if p == nil {
		return fmt.Errorf("%w: no piece on %s", ErrInvalidMove, from)
	}
	dst := g.square(to)
	if !dst.playable {
		return fmt.Errorf("%w: %s", ErrNotPlayable, to)
	}
	if dst.occupant != nil {
		return fmt.Errorf("%w: %s", ErrOccupied, to)
	}
	g.square(from).occupant = nil
	dst.occupant = p
	return nil
}

func (g *Grid) Count(side Side) int {
	n := 0
	for row := range g.squares {
		for col := range g.squares[row] {
			if p := g.squares[row][col].occupant; p != nil && p.Side == side {
				n++
			}
		}
	}
	return n
}

// Cells lists the cells holding side's pieces in row-major order.
func (g *Grid) Cells(side Side) []Cell {
	cells := []Cell{}
	for row := range g.squares {
		for col := range g.squares[row] {
			if p := g.squares[row][col].occupant; p != nil && p.Side == side {
				cells = append(cells, Cell{Col: col, Row: row})
			}
		}
	}
	return cells
}

// Rows renders the board as [row][col] for clients; empty cells are nil.
func (g *Grid) Rows() [][]*Piece {
	rows := make([][]*Piece, BoardSize)
	for row := range g.squares {
		rows[row] = make([]*Piece, BoardSize)
		for col := range g.squares[row] {
			if p := g.squares[row][col].occupant; p != nil {
				piece := *p
				rows[row][col] = &piece
			}
		}
	}
	return rows
}
