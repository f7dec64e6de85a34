package entity

import "github.com/rocketscienceinc/tictactoe-registry/internal/apperror"

type Outcome string

const (
	OutcomeOngoing Outcome = "ongoing"
	OutcomeWin     Outcome = "win"
	OutcomeDraw    Outcome = "draw"
)

// MoveResult is the result of an accepted move. PlayerID is the winner on a
// win and the mover's opponent on a draw.
type MoveResult struct {
	Outcome  Outcome  `json:"outcome"`
	PlayerID PlayerID `json:"player_id,omitempty"`
}

// Code - returns the integer form of the result: GAME_ONGOING while the game
// goes on, the result player's id once it has ended.
func (that MoveResult) Code() int64 {
	if that.Outcome == OutcomeOngoing || that.Outcome == "" {
		return int64(apperror.CodeGameOngoing)
	}

	return int64(that.PlayerID)
}

func (that MoveResult) IsFinal() bool {
	return that.Outcome == OutcomeWin || that.Outcome == OutcomeDraw
}
