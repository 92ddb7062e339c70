package game

import (
	"errors"

	"chess-perft/movegen"
)

// Presenter supplies moves for one side of a game. Implementations range
// from terminal prompts to scripted move lists in tests.
type Presenter interface {
	// ChooseMove picks one of the legal moves for the given position. The
	// position is a private copy and may be mutated freely. Returning an
	// error aborts the game.
	ChooseMove(pos *movegen.Board, legal []movegen.Move) (movegen.Move, error)

	// GameOver is called once when the game reaches a terminal status.
	GameOver(status Status)
}

// Play runs a game between two presenters until it reaches a terminal
// status, an error, or maxMoves moves have been played. maxMoves <= 0
// means no limit. It returns the final status.
func Play(g *Game, white, black Presenter, maxMoves int) (Status, error) {
	for {
		status := g.Status()
		if status.Terminal() {
			white.GameOver(status)
			black.GameOver(status)
			return status, nil
		}
		if maxMoves > 0 && g.MoveCount() >= maxMoves {
			return Ongoing, nil
		}

		p := white
		if g.Board().SideToMove() == movegen.Black {
			p = black
		}
		m, err := p.ChooseMove(g.Position(), g.LegalMoves())
		if err != nil {
			return Ongoing, err
		}
		if err := g.Apply(m); err != nil {
			return Ongoing, err
		}
	}
}

// ScriptedPresenter plays a fixed sequence of moves in coordinate notation
// and fails once the script runs out. Intended for tests and replays.
type ScriptedPresenter struct {
	Moves []string
	next  int
}

func (s *ScriptedPresenter) ChooseMove(pos *movegen.Board, _ []movegen.Move) (movegen.Move, error) {
	if s.next >= len(s.Moves) {
		return 0, ErrScriptExhausted
	}
	m, err := pos.ParseMove(s.Moves[s.next])
	if err != nil {
		return 0, err
	}
	s.next++
	return m, nil
}

func (s *ScriptedPresenter) GameOver(Status) {}

// ErrScriptExhausted is returned by ScriptedPresenter when asked for a move
// beyond the end of its script.
var ErrScriptExhausted = errors.New("scripted presenter: no moves left")
