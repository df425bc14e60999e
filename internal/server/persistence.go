package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"sketch-rooms/internal/db"

	"github.com/jackc/pgconn"
	"gorm.io/datatypes"
	"gorm.io/gorm/clause"
)

// The database is a mirror of the in-memory store: every persist helper
// no-ops when the server runs without a connection. Helpers that touch a
// room aggregate are called inside Store.UpdateRoom so their reads and the
// DBID writes stay under the room lock.

func (s *Server) persistRoom(room *Room) error {
	if s.db == nil {
		return nil
	}
	record := db.Room{Status: room.Status}
	if err := s.db.Clauses(clause.OnConflict{DoNothing: true}).Create(&record).Error; err != nil {
		return err
	}
	room.DBID = record.ID
	newID := fmt.Sprintf("room-%d", record.ID)
	if room.ID != newID {
		s.store.UpdateRoomID(room, newID)
	}
	return s.persistEvent(room, "room_created", EventPayload{
		RoomID: room.ID,
		Status: room.Status,
	})
}

func (s *Server) persistPlayerJoin(room *Room, player Player) error {
	if s.db == nil {
		return nil
	}
	if room.DBID == 0 {
		return errors.New("room not persisted")
	}
	user := db.User{UserID: player.UserID, Name: player.Name}
	if err := s.db.FirstOrCreate(&user, db.User{UserID: player.UserID}).Error; err != nil {
		return err
	}
	record := db.RoomPlayer{
		RoomID:   room.DBID,
		UserID:   player.UserID,
		Name:     player.Name,
		Score:    player.Score,
		JoinedAt: player.JoinedAt,
	}
	if err := s.db.Create(&record).Error; err != nil {
		if !isUniqueViolation(err) {
			return err
		}
		if err := s.db.Model(&db.RoomPlayer{}).
			Where("room_id = ? AND user_id = ?", room.DBID, player.UserID).
			Updates(map[string]any{"left_at": nil, "score": player.Score}).Error; err != nil {
			return err
		}
	}
	return s.persistEvent(room, "player_joined", EventPayload{
		UserID:     player.UserID,
		PlayerName: player.Name,
	})
}

func (s *Server) persistPlayerQuit(room *Room, userID string) error {
	if s.db == nil {
		return nil
	}
	if room.DBID == 0 {
		return errors.New("room not persisted")
	}
	now := time.Now().UTC()
	if err := s.db.Model(&db.RoomPlayer{}).
		Where("room_id = ? AND user_id = ? AND left_at IS NULL", room.DBID, userID).
		Update("left_at", now).Error; err != nil {
		return err
	}
	return s.persistEvent(room, "player_quit", EventPayload{UserID: userID})
}

func (s *Server) persistRoundStart(room *Room) error {
	if s.db == nil {
		return nil
	}
	if room.DBID == 0 {
		return errors.New("room not persisted")
	}
	round := currentRound(room)
	if round == nil {
		return errors.New("no round to persist")
	}
	record := db.Round{
		RoomID:       room.DBID,
		Number:       round.Number,
		DrawerUserID: round.Drawer,
		WordID:       round.WordID,
		Status:       round.Status,
	}
	if err := s.db.Clauses(clause.OnConflict{DoNothing: true}).Create(&record).Error; err != nil {
		return err
	}
	round.DBID = record.ID
	if err := s.db.Model(&db.Room{}).
		Where("id = ?", room.DBID).
		Update("status", room.Status).Error; err != nil {
		return err
	}
	return s.persistEvent(room, "round_started", EventPayload{
		RoundNumber: round.Number,
		Drawer:      round.Drawer,
	})
}

func (s *Server) persistRoundEnd(room *Room, number int) error {
	if s.db == nil {
		return nil
	}
	if room.DBID == 0 {
		return errors.New("room not persisted")
	}
	roundID, err := s.findRoundDBID(room.DBID, number)
	if err != nil {
		return err
	}
	if err := s.db.Model(&db.Round{}).
		Where("id = ?", roundID).
		Update("status", roundStatusEnded).Error; err != nil {
		return err
	}
	return s.persistEvent(room, "round_ended", EventPayload{RoundNumber: number})
}

func (s *Server) persistGuessOutcome(room *Room, userID, text string, result GuessResult) error {
	if s.db == nil {
		return nil
	}
	if room.DBID == 0 {
		return errors.New("room not persisted")
	}
	number := len(room.Rounds)
	if result.NewRoundStarted {
		number--
	}
	roundID, err := s.findRoundDBID(room.DBID, number)
	if err != nil {
		return err
	}
	record := db.Guess{
		RoundID: roundID,
		UserID:  userID,
		Text:    text,
		Correct: result.Matched,
	}
	if err := s.db.Create(&record).Error; err != nil {
		return err
	}
	if result.Matched {
		for _, player := range room.Players {
			if err := s.db.Model(&db.RoomPlayer{}).
				Where("room_id = ? AND user_id = ?", room.DBID, player.UserID).
				Update("score", player.Score).Error; err != nil {
				return err
			}
		}
		if err := s.persistEvent(room, "guess_correct", EventPayload{
			UserID:      userID,
			Guess:       text,
			RoundNumber: number,
		}); err != nil {
			return err
		}
	}
	if result.RoundEnded {
		if err := s.db.Model(&db.Round{}).
			Where("id = ?", roundID).
			Update("status", roundStatusEnded).Error; err != nil {
			return err
		}
		if err := s.persistEvent(room, "round_ended", EventPayload{RoundNumber: number}); err != nil {
			return err
		}
	}
	if result.NewRoundStarted {
		return s.persistRoundStart(room)
	}
	return nil
}

func (s *Server) persistRoomStatus(room *Room) error {
	if s.db == nil {
		return nil
	}
	if room.DBID == 0 {
		return errors.New("room not persisted")
	}
	if err := s.db.Model(&db.Room{}).
		Where("id = ?", room.DBID).
		Update("status", room.Status).Error; err != nil {
		return err
	}
	return s.persistEvent(room, "room_updated", EventPayload{Status: room.Status})
}

func (s *Server) persistRoomDelete(dbID uint) error {
	if s.db == nil || dbID == 0 {
		return nil
	}
	return s.db.Delete(&db.Room{}, dbID).Error
}

func (s *Server) persistEvent(room *Room, eventType string, payload EventPayload) error {
	if s.db == nil || room.DBID == 0 {
		return nil
	}
	data, err := json.Marshal(payload)
	if err != nil {
		return err
	}
	record := db.Event{
		RoomID:  room.DBID,
		UserID:  payload.UserID,
		Type:    eventType,
		Payload: datatypes.JSON(data),
	}
	return s.db.Create(&record).Error
}

func (s *Server) findRoundDBID(roomDBID uint, number int) (uint, error) {
	var record db.Round
	if err := s.db.Select("id").
		Where("room_id = ? AND number = ?", roomDBID, number).
		First(&record).Error; err != nil {
		return 0, err
	}
	return record.ID, nil
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23505"
	}
	return false
}
