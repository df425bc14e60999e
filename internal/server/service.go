package server

import (
	"context"
	"encoding/json"
	"log"
)

// CreateRoom registers an empty waiting room. The database mirror runs
// under the room lock; a failed mirror write rolls the room back out of
// the store.
func (s *Server) CreateRoom() (*Room, error) {
	room := s.store.CreateRoom()
	if _, err := s.store.UpdateRoom(room.ID, func(room *Room) error {
		return s.persistRoom(room)
	}); err != nil {
		s.store.DeleteRoom(room.ID)
		return nil, err
	}
	log.Printf("room created room_id=%s", room.ID)
	return room, nil
}

// JoinRoom appends a player with a zero score. Join does not broadcast; the
// joiner receives its first snapshot when it subscribes.
func (s *Server) JoinRoom(roomID, userID, name string) ([]map[string]any, error) {
	var players []map[string]any
	_, err := s.store.UpdateRoom(roomID, func(room *Room) error {
		if len(room.Players) >= s.cfg.MaxPlayers {
			return ErrRoomFull
		}
		if findPlayer(room, userID) != nil {
			return ErrAlreadyJoined
		}
		room.Players = append(room.Players, Player{
			UserID:   userID,
			Name:     name,
			JoinedAt: timeNowUTC(),
		})
		players = playerListPayload(room)
		if err := s.persistPlayerJoin(room, room.Players[len(room.Players)-1]); err != nil {
			log.Printf("player join not persisted room_id=%s user_id=%s error=%v", roomID, userID, err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	log.Printf("player joined room_id=%s user_id=%s", roomID, userID)
	return players, nil
}

// QuitRoom removes the player, settles a round the departure completed, and
// broadcasts the fresh snapshot to the remaining subscribers.
func (s *Server) QuitRoom(ctx context.Context, roomID, userID string) ([]map[string]any, error) {
	var players []map[string]any
	var snap map[string]any
	_, err := s.store.UpdateRoom(roomID, func(room *Room) error {
		index := -1
		for i := range room.Players {
			if room.Players[i].UserID == userID {
				index = i
				break
			}
		}
		if index == -1 {
			return ErrPlayerNotInRoom
		}
		room.Players = append(room.Players[:index], room.Players[index+1:]...)
		if err := s.persistPlayerQuit(room, userID); err != nil {
			log.Printf("player quit not persisted room_id=%s user_id=%s error=%v", roomID, userID, err)
		}
		s.settleRoundAfterQuit(ctx, room)
		players = playerListPayload(room)
		snap = snapshot(room)
		return nil
	})
	if err != nil {
		return nil, err
	}
	log.Printf("player quit room_id=%s user_id=%s", roomID, userID)
	s.hub.Broadcast(roomID, Event{Type: eventTypeStatus, Data: snap})
	return players, nil
}

// RelayDraw forwards an opaque drawing payload to the room's subscribers.
// Nothing is validated or persisted; the payload passes through verbatim.
func (s *Server) RelayDraw(roomID string, payload json.RawMessage) {
	s.hub.Broadcast(roomID, Event{Type: eventTypeDraw, Data: payload})
}

// SubmitGuess runs the guess through the processor and broadcasts the
// resulting snapshot when the room state changed.
func (s *Server) SubmitGuess(ctx context.Context, roomID, userID, answer string) (GuessResult, error) {
	var result GuessResult
	var snap map[string]any
	_, err := s.store.UpdateRoom(roomID, func(room *Room) error {
		processed, err := s.processGuess(ctx, room, userID, answer)
		if err != nil {
			return err
		}
		result = processed
		if result.Recorded {
			snap = snapshot(room)
			if err := s.persistGuessOutcome(room, userID, answer, result); err != nil {
				log.Printf("guess not persisted room_id=%s user_id=%s error=%v", roomID, userID, err)
			}
		}
		return nil
	})
	if err != nil {
		return GuessResult{}, err
	}
	if !result.Recorded {
		return result, nil
	}
	if result.Matched {
		log.Printf("guess matched room_id=%s user_id=%s round_ended=%v", roomID, userID, result.RoundEnded)
	}
	s.hub.Broadcast(roomID, Event{Type: eventTypeStatus, Data: snap})
	return result, nil
}

// SubscribeRoom registers a live subscriber for the room. The first
// subscription to a waiting room with enough players starts the opening
// round; every other subscription receives the current snapshot directly.
// The round check runs under the room lock so two simultaneous subscribers
// cannot both start it.
func (s *Server) SubscribeRoom(ctx context.Context, roomID string) (*Subscriber, error) {
	if !s.store.HasRoom(roomID) {
		return nil, ErrRoomNotFound
	}
	sub := s.hub.Subscribe(roomID)

	started := false
	var snap map[string]any
	_, err := s.store.UpdateRoom(roomID, func(room *Room) error {
		if room.Status == roomStatusWaiting && len(room.Players) >= s.cfg.MinPlayersToStart {
			if err := s.startNewRound(ctx, room); err != nil {
				return err
			}
			started = true
			if err := s.persistRoundStart(room); err != nil {
				log.Printf("round start not persisted room_id=%s error=%v", roomID, err)
			}
		}
		snap = snapshot(room)
		return nil
	})
	if err != nil {
		s.hub.Unsubscribe(roomID, sub)
		return nil, err
	}
	if started {
		log.Printf("round started room_id=%s", roomID)
		s.hub.Broadcast(roomID, Event{Type: eventTypeStatus, Data: snap})
	} else {
		s.hub.Send(roomID, sub, Event{Type: eventTypeStatus, Data: snap})
	}
	return sub, nil
}

// RoomSnapshot resolves the current room view.
func (s *Server) RoomSnapshot(roomID string) (map[string]any, error) {
	var snap map[string]any
	if err := s.store.ViewRoom(roomID, func(room *Room) {
		snap = snapshot(room)
	}); err != nil {
		return nil, err
	}
	return snap, nil
}

// ListRooms returns summaries of every live room.
func (s *Server) ListRooms() []RoomSummary {
	return s.store.ListRoomSummaries()
}

// UpdateRoomStatus overwrites the room status, the only field the update
// endpoint accepts.
func (s *Server) UpdateRoomStatus(roomID, status string) (map[string]any, error) {
	var snap map[string]any
	_, err := s.store.UpdateRoom(roomID, func(room *Room) error {
		if status != "" {
			room.Status = status
		}
		snap = snapshot(room)
		if err := s.persistRoomStatus(room); err != nil {
			log.Printf("room update not persisted room_id=%s error=%v", roomID, err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return snap, nil
}

// DeleteRoom removes the room and closes its subscriber channels.
func (s *Server) DeleteRoom(roomID string) error {
	var dbID uint
	if err := s.store.ViewRoom(roomID, func(room *Room) {
		dbID = room.DBID
	}); err != nil {
		return err
	}
	if !s.store.DeleteRoom(roomID) {
		return ErrRoomNotFound
	}
	s.hub.CloseRoom(roomID)
	if err := s.persistRoomDelete(dbID); err != nil {
		log.Printf("room delete not persisted room_id=%s error=%v", roomID, err)
	}
	log.Printf("room deleted room_id=%s", roomID)
	return nil
}

func playerListPayload(room *Room) []map[string]any {
	players := make([]map[string]any, 0, len(room.Players))
	for _, player := range room.Players {
		players = append(players, map[string]any{
			"user_id": player.UserID,
			"name":    player.Name,
			"score":   player.Score,
		})
	}
	return players
}
