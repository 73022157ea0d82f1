package match

// Rule constants
const (
	WinScore   = 11 // first to 11 wins
	MercyScore = 7  // 7-0 ends the match early
)

// WinType labels how a decided match was won.
type WinType string

const (
	WinNone  WinType = ""
	WinGame  WinType = "Game win"
	WinMercy WinType = "Mercy win"
)

// Score holds the point counts for one match.
type Score struct {
	Left  uint32 `json:"left"`
	Right uint32 `json:"right"`
}

// RecordPoint credits one point to side.
func (s *Score) RecordPoint(side Side) {
	if side == Left {
		s.Left++
	} else {
		s.Right++
	}
}

// HasWinner reports whether either side reached WinScore or holds a mercy lead.
func (s Score) HasWinner() bool {
	if s.Left >= WinScore || s.Right >= WinScore {
		return true
	}
	return s.mercy()
}

// Winner returns the winning side. ok is false while the match is undecided.
func (s Score) Winner() (side Side, ok bool) {
	switch {
	case s.Left >= WinScore || (s.Left >= MercyScore && s.Right == 0):
		return Left, true
	case s.Right >= WinScore || (s.Right >= MercyScore && s.Left == 0):
		return Right, true
	}
	return Left, false
}

// WinType labels a decided match. Mercy takes the label whenever the
// opponent is scoreless, even past WinScore.
func (s Score) WinType() WinType {
	if !s.HasWinner() {
		return WinNone
	}
	if s.mercy() {
		return WinMercy
	}
	return WinGame
}

// Reset zeroes both sides for a new match.
func (s *Score) Reset() {
	s.Left, s.Right = 0, 0
}

func (s Score) mercy() bool {
	return (s.Left >= MercyScore && s.Right == 0) || (s.Right >= MercyScore && s.Left == 0)
}
