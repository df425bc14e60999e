package server

import "time"

const (
	roomStatusWaiting = "waiting"
	roomStatusPlaying = "playing"
)

const (
	roundStatusActive = "active"
	roundStatusEnded  = "ended"
)

const (
	eventTypeStatus = "status"
	eventTypeDraw   = "draw"
)

type RoomSummary struct {
	ID      string
	Status  string
	Players int
	Rounds  int
}

type Room struct {
	ID        string
	DBID      uint
	Status    string
	CreatedAt time.Time
	Players   []Player
	Rounds    []Round
}

type Player struct {
	UserID   string
	Name     string
	Score    int
	DBID     uint
	JoinedAt time.Time
}

type Round struct {
	Number  int
	DBID    uint
	Drawer  string
	Word    string
	WordID  uint
	Status  string
	Guesses []Guess
}

type Guess struct {
	UserID  string
	Text    string
	Correct bool
}

func currentRound(room *Room) *Round {
	if room == nil || len(room.Rounds) == 0 {
		return nil
	}
	return &room.Rounds[len(room.Rounds)-1]
}

func findPlayer(room *Room, userID string) *Player {
	for i := range room.Players {
		if room.Players[i].UserID == userID {
			return &room.Players[i]
		}
	}
	return nil
}

func correctGuessCount(round *Round) int {
	count := 0
	for _, guess := range round.Guesses {
		if guess.Correct {
			count++
		}
	}
	return count
}
