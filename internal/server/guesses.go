package server

import (
	"context"
	"log"
)

// GuessResult reports what a submitted guess changed.
type GuessResult struct {
	Matched         bool `json:"matched"`
	RoundEnded      bool `json:"round_ended"`
	NewRoundStarted bool `json:"new_round_started"`
	Recorded        bool `json:"-"`
}

// processGuess validates a guess against the active round, updates scores,
// and closes the round once every non-drawer has guessed correctly. Callers
// must hold the room lock. Guesses from the drawer, duplicates after a
// correct answer, and wrong answers are recorded without affecting scores;
// only correct guesses count toward round completion.
func (s *Server) processGuess(ctx context.Context, room *Room, userID, text string) (GuessResult, error) {
	var result GuessResult

	guesser := findPlayer(room, userID)
	if guesser == nil {
		return result, ErrPlayerNotInRoom
	}

	round := currentRound(room)
	if round == nil || round.Status != roundStatusActive {
		// Guess arrived between rounds; acknowledged but ignored.
		return result, nil
	}

	eligible := userID != round.Drawer && !hasCorrectGuess(round, userID)
	if eligible && text == round.Word {
		drawer := findPlayer(room, round.Drawer)
		if drawer != nil {
			drawer.Score += s.cfg.GuessReward
		}
		guesser.Score += s.cfg.GuessReward
		round.Guesses = append(round.Guesses, Guess{UserID: userID, Text: text, Correct: true})
		result.Matched = true
		result.Recorded = true

		if correctGuessCount(round) == len(room.Players)-1 {
			endRound(room)
			result.RoundEnded = true
			if err := s.startNewRound(ctx, room); err != nil {
				log.Printf("next round not started room_id=%s error=%v", room.ID, err)
			} else {
				result.NewRoundStarted = true
			}
		}
		return result, nil
	}

	round.Guesses = append(round.Guesses, Guess{UserID: userID, Text: text, Correct: false})
	result.Recorded = true
	return result, nil
}

func hasCorrectGuess(round *Round, userID string) bool {
	for _, guess := range round.Guesses {
		if guess.Correct && guess.UserID == userID {
			return true
		}
	}
	return false
}
