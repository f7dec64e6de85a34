package entity

type Player struct {
	ID     PlayerID `json:"id"`
	Mark   string   `json:"mark,omitempty"`
	GameID GameID   `json:"game_id,omitempty"`
}
