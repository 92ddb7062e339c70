// Package refcheck verifies move generation against the dragontoothmg
// engine. It walks both game trees in lockstep and reports the first
// position where the two generators disagree, which pins a generation bug
// to a concrete FEN instead of a raw node-count difference at the root.
package refcheck

import (
	"github.com/dylhunn/dragontoothmg"
	"golang.org/x/exp/slices"

	"chess-perft/movegen"
)

// Mismatch describes the first divergence found between the two generators.
type Mismatch struct {
	// FEN of the position where the move lists differ.
	FEN string
	// Line is the sequence of moves from the root to that position, in
	// coordinate notation.
	Line []string
	// Depth remaining below the divergent position.
	Depth int
	// Missing lists moves the reference generates and we do not.
	Missing []string
	// Extra lists moves we generate and the reference does not.
	Extra []string
}

// ReferencePerft counts leaf nodes with the reference engine only.
func ReferencePerft(fen string, depth int) (uint64, error) {
	if _, err := movegen.ParseFEN(fen); err != nil {
		return 0, err
	}
	ref := dragontoothmg.ParseFen(fen)
	return refPerft(&ref, depth), nil
}

func refPerft(b *dragontoothmg.Board, depth int) uint64 {
	if depth <= 0 {
		return 1
	}
	moves := b.GenerateLegalMoves()
	if depth == 1 {
		return uint64(len(moves))
	}
	var nodes uint64
	for _, m := range moves {
		undo := b.Apply(m)
		nodes += refPerft(b, depth-1)
		undo()
	}
	return nodes
}

// Compare walks both trees from the given position down to the given depth
// and returns the first divergence, or nil when the trees agree everywhere.
func Compare(fen string, depth int) (*Mismatch, error) {
	ours, err := movegen.ParseFEN(fen)
	if err != nil {
		return nil, err
	}
	ref := dragontoothmg.ParseFen(fen)
	return compareRec(ours, &ref, depth, nil), nil
}

func compareRec(b *movegen.Board, ref *dragontoothmg.Board, depth int, line []string) *Mismatch {
	if depth <= 0 {
		return nil
	}

	ourMoves := b.LegalMoves()
	ourNames := make([]string, len(ourMoves))
	for i, m := range ourMoves {
		ourNames[i] = m.String()
	}
	slices.Sort(ourNames)

	refMoves := ref.GenerateLegalMoves()
	refNames := make([]string, len(refMoves))
	for i, m := range refMoves {
		refNames[i] = m.String()
	}
	slices.Sort(refNames)

	if missing, extra := diffSorted(refNames, ourNames); len(missing) > 0 || len(extra) > 0 {
		return &Mismatch{
			FEN:     b.ToFEN(),
			Line:    slices.Clone(line),
			Depth:   depth,
			Missing: missing,
			Extra:   extra,
		}
	}
	if depth == 1 {
		return nil
	}

	for i, m := range ourMoves {
		ok, st := b.MakeMove(m)
		if !ok {
			continue
		}
		undo := ref.Apply(refMoves[refIndex(refMoves, ourMoves[i].String())])
		mm := compareRec(b, ref, depth-1, append(line, m.String()))
		undo()
		b.UnmakeMove(m, st)
		if mm != nil {
			return mm
		}
	}
	return nil
}

// refIndex finds the reference move matching ours by coordinate notation.
// The move sets are known equal at this point, so a match always exists.
func refIndex(refMoves []dragontoothmg.Move, want string) int {
	for j, rm := range refMoves {
		if rm.String() == want {
			return j
		}
	}
	return 0
}

// diffSorted returns the elements of want absent from got and vice versa.
// Both inputs must be sorted.
func diffSorted(want, got []string) (missing, extra []string) {
	i, j := 0, 0
	for i < len(want) && j < len(got) {
		switch {
		case want[i] == got[j]:
			i++
			j++
		case want[i] < got[j]:
			missing = append(missing, want[i])
			i++
		default:
			extra = append(extra, got[j])
			j++
		}
	}
	missing = append(missing, want[i:]...)
	extra = append(extra, got[j:]...)
	return missing, extra
}
