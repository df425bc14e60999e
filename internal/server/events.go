package server

type EventPayload struct {
	RoomID      string `json:"room_id,omitempty"`
	UserID      string `json:"user_id,omitempty"`
	PlayerName  string `json:"player,omitempty"`
	RoundNumber int    `json:"round_number,omitempty"`
	Drawer      string `json:"drawer,omitempty"`
	Guess       string `json:"guess,omitempty"`
	Status      string `json:"status,omitempty"`
}
