package board

const (
	seventyFiveMoveLimit = 150 // plies
	fivefoldLimit        = 5
)

// repetitions counts how often the current position occurred, itself included.
// Only the window since the last irreversible move can hold a repeat, so the scan
// stops after HalfmoveClock plies.
func (p *Position) repetitions() int {
	if len(p.history) == 0 {
		return 0
	}
	last := len(p.history) - 1
	curr := p.history[last]
	start := last - p.HalfmoveClock()
	if start < 0 {
		start = 0
	}
	count := 0
	for i := last; i >= start; i-- {
		if p.history[i] == curr {
			count++
		}
	}
	return count
}

// IsFivefoldRepetition reports whether the current position has occurred five times.
func (p *Position) IsFivefoldRepetition() bool {
	return p.repetitions() >= fivefoldLimit
}

// IsThreefoldRepetition is the claimable draw; it does not end the game on its own.
func (p *Position) IsThreefoldRepetition() bool {
	return p.repetitions() >= 3
}

// IsSeventyFiveMoves reports 75 moves by each side without a capture or pawn move.
func (p *Position) IsSeventyFiveMoves() bool {
	return p.HalfmoveClock() >= seventyFiveMoveLimit
}
