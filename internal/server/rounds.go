package server

import (
	"context"
	"fmt"
	"log"
)

// startNewRound appends a fresh active round and moves the room to playing.
// Callers must hold the room lock (run inside Store.UpdateRoom). A round
// left active from before is ended first, so the room never carries two
// open rounds. The drawer rotates through the player list by round count.
func (s *Server) startNewRound(ctx context.Context, room *Room) error {
	if len(room.Players) < s.cfg.MinPlayersToStart {
		return ErrInvalidRoomState
	}
	word, err := s.words.SampleOne(ctx)
	if err != nil {
		return fmt.Errorf("sample word: %w", err)
	}
	endRound(room)
	drawer := room.Players[len(room.Rounds)%len(room.Players)]
	room.Rounds = append(room.Rounds, Round{
		Number: len(room.Rounds) + 1,
		Drawer: drawer.UserID,
		Word:   word.Text,
		WordID: word.DBID,
		Status: roundStatusActive,
	})
	room.Status = roomStatusPlaying
	return nil
}

// endRound marks the current round ended. It does not start the next round;
// the caller decides whether to chain into startNewRound.
func endRound(room *Room) *Round {
	round := currentRound(room)
	if round == nil || round.Status != roundStatusActive {
		return nil
	}
	round.Status = roundStatusEnded
	return round
}

// settleRoundAfterQuit closes the current round when a departure leaves
// every remaining non-drawer already correct, then chains into the next
// round while enough players remain; otherwise the room falls back to
// waiting. Callers must hold the room lock.
func (s *Server) settleRoundAfterQuit(ctx context.Context, room *Room) {
	round := currentRound(room)
	if round == nil || round.Status != roundStatusActive {
		return
	}
	if correctGuessCount(round) < len(room.Players)-1 {
		return
	}
	ended := round.Number
	endRound(room)
	if err := s.persistRoundEnd(room, ended); err != nil {
		log.Printf("round end not persisted room_id=%s error=%v", room.ID, err)
	}
	if err := s.startNewRound(ctx, room); err != nil {
		log.Printf("next round not started room_id=%s error=%v", room.ID, err)
		room.Status = roomStatusWaiting
		if err := s.persistRoomStatus(room); err != nil {
			log.Printf("room update not persisted room_id=%s error=%v", room.ID, err)
		}
		return
	}
	if err := s.persistRoundStart(room); err != nil {
		log.Printf("round start not persisted room_id=%s error=%v", room.ID, err)
	}
}
