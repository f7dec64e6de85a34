package apperror

import "errors"

// Code is the numeric form of a game error. Codes are negative so they never
// collide with a game or player identifier.
type Code int64

// Codes are listed in precedence order: when several apply, the one listed
// first is reported.
const (
	CodeNone               Code = 0
	CodeGameDoesNotExist   Code = -2
	CodeGameNotStarted     Code = -3
	CodeGameEnded          Code = -4
	CodeGameOngoing        Code = -5
	CodePlayerDoesNotExist Code = -6
	CodeWrongTurn          Code = -7
	CodeInvalidLocation    Code = -8
)

var (
	ErrGameDoesNotExist   = errors.New("game does not exist")
	ErrGameNotStarted     = errors.New("game is not started")
	ErrGameEnded          = errors.New("game is already finished")
	ErrGameOngoing        = errors.New("game is already ongoing")
	ErrPlayerDoesNotExist = errors.New("player does not exist in this game")
	ErrWrongTurn          = errors.New("it's not your turn")
	ErrInvalidLocation    = errors.New("invalid location")
)

var codes = []struct {
	err  error
	code Code
}{
	{ErrGameDoesNotExist, CodeGameDoesNotExist},
	{ErrGameNotStarted, CodeGameNotStarted},
	{ErrGameEnded, CodeGameEnded},
	{ErrGameOngoing, CodeGameOngoing},
	{ErrPlayerDoesNotExist, CodePlayerDoesNotExist},
	{ErrWrongTurn, CodeWrongTurn},
	{ErrInvalidLocation, CodeInvalidLocation},
}

// CodeOf - returns the code of a (possibly wrapped) game error, CodeNone otherwise.
func CodeOf(err error) Code {
	if err == nil {
		return CodeNone
	}

	for _, c := range codes {
		if errors.Is(err, c.err) {
			return c.code
		}
	}

	return CodeNone
}

func (that Code) String() string {
	switch that {
	case CodeGameDoesNotExist:
		return "GAME_DOES_NOT_EXIST"
	case CodeGameNotStarted:
		return "GAME_NOT_STARTED"
	case CodeGameEnded:
		return "GAME_ENDED"
	case CodeGameOngoing:
		return "GAME_ONGOING"
	case CodePlayerDoesNotExist:
		return "PLAYER_DOES_NOT_EXIST"
	case CodeWrongTurn:
		return "WRONG_TURN"
	case CodeInvalidLocation:
		return "INVALID_LOCATION"
	default:
		return "NONE"
	}
}
