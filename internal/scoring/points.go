package scoring

import (
	"encoding/json"
	"strconv"
)

// standardLadder is the symbolic point ladder of a regular game.
var standardLadder = [...]string{"0", "15", "30", "40"}

// Points is either a step on the 0/15/30/40 ladder or a tiebreak count.
// Both teams always hold the same kind.
type Points struct {
	tiebreak bool
	n        int
}

// Standard returns the ladder step 0..3 (0, 15, 30, 40).
func Standard(step int) Points {
	if step < 0 {
		step = 0
	}
	if step >= len(standardLadder) {
		step = len(standardLadder) - 1
	}
	return Points{n: step}
}

// Tiebreak returns a tiebreak count.
func Tiebreak(n int) Points {
	if n < 0 {
		n = 0
	}
	return Points{tiebreak: true, n: n}
}

func (p Points) IsTiebreak() bool { return p.tiebreak }

// Count is the tiebreak count, or the ladder step for a standard value.
// A standard zero reads as a tiebreak zero.
func (p Points) Count() int { return p.n }

func (p Points) IsZero() bool { return p.n == 0 }

// IsForty reports the last step of the standard ladder.
func (p Points) IsForty() bool { return !p.tiebreak && p.n == len(standardLadder)-1 }

// next advances one step on the standard ladder; callers check IsForty first.
func (p Points) next() Points {
	return Standard(p.n + 1)
}

func (p Points) String() string {
	if p.tiebreak {
		return strconv.Itoa(p.n)
	}
	return standardLadder[p.n]
}

func (p Points) MarshalJSON() ([]byte, error) {
	return json.Marshal(p.String())
}
