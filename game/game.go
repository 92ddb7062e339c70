// Package game layers full-game bookkeeping over the move generator: a
// move history with undo, repetition tracking by position key, and the
// terminal and draw rules that perft itself never needs.
package game

import (
	"errors"
	"fmt"
	"math/bits"

	"chess-perft/movegen"
)

// Status classifies the state of the game from the side to move's view.
type Status int

const (
	Ongoing Status = iota
	Checkmate
	Stalemate
	DrawFiftyMove
	DrawRepetition
	DrawInsufficient
)

func (s Status) String() string {
	switch s {
	case Ongoing:
		return "ongoing"
	case Checkmate:
		return "checkmate"
	case Stalemate:
		return "stalemate"
	case DrawFiftyMove:
		return "draw by fifty-move rule"
	case DrawRepetition:
		return "draw by threefold repetition"
	case DrawInsufficient:
		return "draw by insufficient material"
	}
	return fmt.Sprintf("Status(%d)", int(s))
}

// Terminal reports whether the game is over.
func (s Status) Terminal() bool { return s != Ongoing }

// ErrIllegalMove is returned by Apply for a move that is not legal in the
// current position.
var ErrIllegalMove = errors.New("illegal move")

// Game tracks a single game: the current position, the move stack for undo
// and the position keys seen so far for repetition detection.
type Game struct {
	board   *movegen.Board
	stack   []movegen.MoveState
	moves   []movegen.Move
	history []uint64
	cache   *movegen.MoveCache
}

// New starts a game from the standard initial position.
func New() *Game {
	g, err := FromFEN(movegen.FENStartPos)
	if err != nil {
		panic(err)
	}
	return g
}

// FromFEN starts a game from an arbitrary position.
func FromFEN(fen string) (*Game, error) {
	b, err := movegen.ParseFEN(fen)
	if err != nil {
		return nil, err
	}
	return &Game{
		board:   b,
		history: []uint64{b.Hash()},
		cache:   movegen.NewMoveCache(),
	}, nil
}

// Board returns the current position. Callers must not mutate it; use Apply
// and Undo to move the game forward and back.
func (g *Game) Board() *movegen.Board { return g.board }

// Position returns an independent copy of the current position.
func (g *Game) Position() *movegen.Board { return g.board.Clone() }

// MoveCount reports the number of moves played so far.
func (g *Game) MoveCount() int { return len(g.moves) }

// Moves returns the moves played so far, oldest first.
func (g *Game) Moves() []movegen.Move {
	out := make([]movegen.Move, len(g.moves))
	copy(out, g.moves)
	return out
}

// LegalMoves returns the legal moves in the current position.
func (g *Game) LegalMoves() []movegen.Move {
	return g.board.LegalMoves()
}

// MovesFrom returns the pseudo-legal moves of the piece on the given square,
// served from the per-game move cache. The slice is owned by the cache.
func (g *Game) MovesFrom(from movegen.Square) []movegen.Move {
	return g.cache.MovesFrom(g.board, from)
}

// Apply plays a move. The move must come from LegalMoves or ParseMove on the
// current position; anything else returns ErrIllegalMove.
func (g *Game) Apply(m movegen.Move) error {
	legal := false
	for _, lm := range g.board.LegalMoves() {
		if lm == m {
			legal = true
			break
		}
	}
	if !legal {
		return fmt.Errorf("%w: %s in %s", ErrIllegalMove, m, g.board.ToFEN())
	}
	ok, st := g.board.MakeMove(m)
	if !ok {
		return fmt.Errorf("%w: %s in %s", ErrIllegalMove, m, g.board.ToFEN())
	}
	g.stack = append(g.stack, st)
	g.moves = append(g.moves, m)
	g.history = append(g.history, g.board.Hash())
	return nil
}

// ApplyString plays a move given in coordinate notation, e.g. "e2e4".
func (g *Game) ApplyString(text string) (movegen.Move, error) {
	m, err := g.board.ParseMove(text)
	if err != nil {
		return 0, err
	}
	return m, g.Apply(m)
}

// Undo takes back the last move. It reports false when no move has been
// played.
func (g *Game) Undo() bool {
	if len(g.stack) == 0 {
		return false
	}
	last := len(g.stack) - 1
	g.board.UnmakeMove(g.moves[last], g.stack[last])
	g.stack = g.stack[:last]
	g.moves = g.moves[:last]
	g.history = g.history[:len(g.history)-1]
	return true
}

// Status classifies the current position. Checkmate and stalemate outrank
// the draw counters, matching over-the-board rules where a mating move ends
// the game even when it is also the hundredth halfmove.
func (g *Game) Status() Status {
	if !g.board.HasLegalMoves() {
		if g.board.InCheck(g.board.SideToMove()) {
			return Checkmate
		}
		return Stalemate
	}
	if g.board.HalfmoveClock() >= 100 {
		return DrawFiftyMove
	}
	if g.repetitions() >= 3 {
		return DrawRepetition
	}
	if insufficientMaterial(g.board) {
		return DrawInsufficient
	}
	return Ongoing
}

// repetitions counts how many positions in the game, current included,
// share the current position key.
func (g *Game) repetitions() int {
	key := g.board.Hash()
	n := 0
	for _, h := range g.history {
		if h == key {
			n++
		}
	}
	return n
}

// insufficientMaterial reports whether neither side retains mating
// material: K vs K, K+minor vs K, or KB vs KB with same-colored bishops.
func insufficientMaterial(b *movegen.Board) bool {
	for _, c := range []movegen.Color{movegen.White, movegen.Black} {
		if b.TypeBB(c, movegen.PieceTypePawn)|
			b.TypeBB(c, movegen.PieceTypeRook)|
			b.TypeBB(c, movegen.PieceTypeQueen) != 0 {
			return false
		}
	}

	wN := bits.OnesCount64(b.TypeBB(movegen.White, movegen.PieceTypeKnight))
	wB := bits.OnesCount64(b.TypeBB(movegen.White, movegen.PieceTypeBishop))
	bN := bits.OnesCount64(b.TypeBB(movegen.Black, movegen.PieceTypeKnight))
	bB := bits.OnesCount64(b.TypeBB(movegen.Black, movegen.PieceTypeBishop))

	if wN+wB+bN+bB == 0 {
		return true
	}
	if wN+wB <= 1 && bN+bB == 0 {
		return true
	}
	if bN+bB <= 1 && wN+wB == 0 {
		return true
	}
	// Single bishop each, standing on equal-colored squares.
	if wN == 0 && bN == 0 && wB == 1 && bB == 1 {
		wSq := movegen.Square(bits.TrailingZeros64(b.TypeBB(movegen.White, movegen.PieceTypeBishop)))
		bSq := movegen.Square(bits.TrailingZeros64(b.TypeBB(movegen.Black, movegen.PieceTypeBishop)))
		return squareColor(wSq) == squareColor(bSq)
	}
	return false
}

func squareColor(sq movegen.Square) int {
	return (sq.File() + sq.Rank()) & 1
}
