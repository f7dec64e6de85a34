package entity

import (
	"fmt"

	"github.com/rocketscienceinc/tictactoe-registry/internal/apperror"
)

const (
	StatusFinished = "finished"
	StatusOngoing  = "ongoing"
	StatusWaiting  = "waiting"

	PlayerX = "X"
	PlayerO = "O"

	EmptyCell = ""
)

const (
	BoardSize = 3
	SeatCount = 2
)

type (
	GameID   int64
	PlayerID int64
)

// UnsetPlayer marks a free seat.
const UnsetPlayer PlayerID = 0

// WinCombos holds the 8 lines of flattened board indexes (3*y + x).
var WinCombos = [][3]int{
	{0, 1, 2},
	{3, 4, 5},
	{6, 7, 8},
	{0, 3, 6},
	{1, 4, 7},
	{2, 5, 8},
	{0, 4, 8},
	{2, 4, 6},
}

// seatMarks maps a seat index to the mark it leaves on the board.
var seatMarks = [SeatCount]string{PlayerX, PlayerO}

type Move struct {
	PlayerID PlayerID `json:"player_id"`
	X        int      `json:"x"`
	Y        int      `json:"y"`
}

type Game struct {
	ID      GameID              `json:"id"`
	Players [SeatCount]PlayerID `json:"players"`
	Turn    int                 `json:"turn"`
	Board   [9]string           `json:"board"`
	Moves   []Move              `json:"moves,omitempty"`
	Status  string              `json:"status"`
	Winner  PlayerID            `json:"winner,omitempty"`
	Draw    bool                `json:"draw,omitempty"`
}

func NewGame(id GameID) *Game {
	return &Game{
		ID:     id,
		Board:  [9]string{EmptyCell, EmptyCell, EmptyCell, EmptyCell, EmptyCell, EmptyCell, EmptyCell, EmptyCell, EmptyCell},
		Turn:   0,
		Status: StatusWaiting,
	}
}

func (that *Game) IsFinished() bool {
	return that.Status == StatusFinished
}

func (that *Game) IsStarted() bool {
	return that.Players[0] != UnsetPlayer && that.Players[1] != UnsetPlayer
}

// ConfirmJoinable - checks that a new player may take a seat.
func (that *Game) ConfirmJoinable() error {
	switch {
	case that.IsFinished():
		return apperror.ErrGameEnded
	case that.IsStarted():
		return apperror.ErrGameOngoing
	default:
		return nil
	}
}

// AddPlayer - seats the player in the first free seat and returns the seat index.
// Seating an id that already holds seat 0 means the allocator is broken, so it panics.
func (that *Game) AddPlayer(id PlayerID) (int, error) {
	if err := that.ConfirmJoinable(); err != nil {
		return -1, err
	}

	if that.Players[0] == UnsetPlayer {
		that.Players[0] = id
		return 0, nil
	}

	if that.Players[0] == id {
		panic(fmt.Sprintf("duplicate player id %d in game %d", id, that.ID))
	}

	that.Players[1] = id
	that.Status = StatusOngoing

	return 1, nil
}

// SeatOf - returns the seat index of the player, or -1.
func (that *Game) SeatOf(id PlayerID) int {
	if id == UnsetPlayer {
		return -1
	}

	for seat, player := range that.Players {
		if player == id {
			return seat
		}
	}

	return -1
}

// Opponent - returns the player sitting in the other seat.
func (that *Game) Opponent(seat int) PlayerID {
	return that.Players[1-seat]
}

func MarkOf(seat int) string {
	return seatMarks[seat]
}

// MakeMove - validates and applies a move. Checks run in precedence order:
// ended, not started, unknown player, wrong turn, invalid location.
func (that *Game) MakeMove(playerID PlayerID, x, y int) (MoveResult, error) {
	if that.IsFinished() {
		return MoveResult{}, apperror.ErrGameEnded
	}

	if !that.IsStarted() {
		return MoveResult{}, apperror.ErrGameNotStarted
	}

	seat := that.SeatOf(playerID)
	if seat < 0 {
		return MoveResult{}, fmt.Errorf("%w: player %d", apperror.ErrPlayerDoesNotExist, playerID)
	}

	if seat != that.Turn {
		return MoveResult{}, apperror.ErrWrongTurn
	}

	if !IsOnBoard(x, y) {
		return MoveResult{}, fmt.Errorf("%w: (%d, %d) is off the board", apperror.ErrInvalidLocation, x, y)
	}

	cell := CellIndex(x, y)
	if that.Board[cell] != EmptyCell {
		return MoveResult{}, fmt.Errorf("%w: (%d, %d) is occupied", apperror.ErrInvalidLocation, x, y)
	}

	that.Board[cell] = MarkOf(seat)
	that.Moves = append(that.Moves, Move{PlayerID: playerID, X: x, Y: y})

	return that.UpdateGameState(seat), nil
}

// UpdateGameState - settles the game after the given seat has moved.
func (that *Game) UpdateGameState(seat int) MoveResult {
	switch that.DetermineGameResult(MarkOf(seat)) {
	case OutcomeWin:
		that.Status = StatusFinished
		that.Winner = that.Players[seat]

		return MoveResult{Outcome: OutcomeWin, PlayerID: that.Winner}
	case OutcomeDraw:
		// a draw is reported with the opponent's id
		that.Status = StatusFinished
		that.Draw = true
		that.Winner = that.Opponent(seat)

		return MoveResult{Outcome: OutcomeDraw, PlayerID: that.Winner}
	default:
		that.Turn = 1 - seat

		return MoveResult{Outcome: OutcomeOngoing}
	}
}

// DetermineGameResult - checks the lines for the given mark, then a full board.
func (that *Game) DetermineGameResult(mark string) Outcome {
	for _, combo := range WinCombos {
		if that.Board[combo[0]] == mark && that.Board[combo[1]] == mark && that.Board[combo[2]] == mark {
			return OutcomeWin
		}
	}

	// the game will continue until all the squares are full
	for _, cell := range that.Board {
		if cell == EmptyCell {
			return OutcomeOngoing
		}
	}

	return OutcomeDraw
}

// Clone - returns a copy that shares no memory with the game.
func (that *Game) Clone() *Game {
	clone := *that
	clone.Moves = append([]Move(nil), that.Moves...)

	return &clone
}

func IsOnBoard(x, y int) bool {
	return x >= 0 && x < BoardSize && y >= 0 && y < BoardSize
}

func CellIndex(x, y int) int {
	return BoardSize*y + x
}
