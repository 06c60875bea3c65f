package tetris

// Phase is a state of the game state machine.
type Phase int

const (
	PhaseWelcome Phase = iota
	PhaseStarted
	PhaseItemStarted
	PhaseItemFalling
	PhaseItemFallingFast
	PhaseItemStopped
	PhaseFinished
)

func (p Phase) String() string {
	switch p {
	case PhaseWelcome:
		return "GAME_WELCOME"
	case PhaseStarted:
		return "GAME_STARTED"
	case PhaseItemStarted:
		return "ITEM_STARTED"
	case PhaseItemFalling:
		return "ITEM_FALLING"
	case PhaseItemFallingFast:
		return "ITEM_FALLING_FAST"
	case PhaseItemStopped:
		return "ITEM_STOPPED"
	case PhaseFinished:
		return "GAME_FINISHED"
	default:
		return "UNKNOWN"
	}
}

// HasPiece reports whether a piece exists in this phase.
func (p Phase) HasPiece() bool {
	return p >= PhaseItemStarted && p <= PhaseItemStopped
}

// Falling reports whether the piece accepts movement input.
func (p Phase) Falling() bool {
	return p == PhaseItemFalling || p == PhaseItemFallingFast
}
