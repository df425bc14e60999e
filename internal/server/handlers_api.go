package server

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
)

type joinRequest struct {
	UserID string `json:"user_id" binding:"required,userid"`
	Name   string `json:"name" binding:"required,playername"`
}

type quitRequest struct {
	UserID string `json:"user_id" binding:"required,userid"`
}

type guessRequest struct {
	UserID string `json:"user_id" binding:"required,userid"`
	Answer string `json:"answer" binding:"required,guess"`
}

type updateRoomRequest struct {
	Status string `json:"status" binding:"omitempty,oneof=waiting playing"`
}

var joinMessages = bindMessages{
	"UserID": {
		"required": "user id is required",
		"userid":   "user id is invalid",
	},
	"Name": {
		"required":   "name is required",
		"playername": "name is invalid",
	},
}

var quitMessages = bindMessages{
	"UserID": {
		"required": "user id is required",
		"userid":   "user id is invalid",
	},
}

var guessMessages = bindMessages{
	"UserID": {
		"required": "user id is required",
		"userid":   "user id is invalid",
	},
	"Answer": {
		"required": "answer is required",
		"guess":    "answer is invalid",
	},
}

func (s *Server) handleCreateRoom(c *gin.Context) {
	room, err := s.CreateRoom()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create room"})
		return
	}
	c.JSON(http.StatusCreated, gin.H{
		"room_id": room.ID,
		"status":  room.Status,
	})
}

func (s *Server) handleListRooms(c *gin.Context) {
	summaries := s.ListRooms()
	rooms := make([]gin.H, 0, len(summaries))
	for _, summary := range summaries {
		rooms = append(rooms, gin.H{
			"room_id": summary.ID,
			"status":  summary.Status,
			"players": summary.Players,
			"rounds":  summary.Rounds,
		})
	}
	c.JSON(http.StatusOK, gin.H{
		"count": len(rooms),
		"rooms": rooms,
	})
}

func (s *Server) handleGetRoom(c *gin.Context) {
	snap, err := s.RoomSnapshot(c.Param("roomID"))
	if err != nil {
		writeDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"room": snap})
}

func (s *Server) handleUpdateRoom(c *gin.Context) {
	var req updateRoomRequest
	if !bindJSON(c, &req, nil, "status must be waiting or playing") {
		return
	}
	snap, err := s.UpdateRoomStatus(c.Param("roomID"), req.Status)
	if err != nil {
		writeDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"room": snap})
}

func (s *Server) handleDeleteRoom(c *gin.Context) {
	if err := s.DeleteRoom(c.Param("roomID")); err != nil {
		writeDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{})
}

func (s *Server) handleJoinRoom(c *gin.Context) {
	var req joinRequest
	if !bindJSON(c, &req, joinMessages, "invalid join request") {
		return
	}
	name, err := validateName(req.Name)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	players, err := s.JoinRoom(c.Param("roomID"), req.UserID, name)
	if err != nil {
		writeDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"players": players})
}

func (s *Server) handleQuitRoom(c *gin.Context) {
	var req quitRequest
	if !bindJSON(c, &req, quitMessages, "invalid quit request") {
		return
	}
	players, err := s.QuitRoom(c.Request.Context(), c.Param("roomID"), req.UserID)
	if err != nil {
		writeDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"players": players})
}

func (s *Server) handleRelayDraw(c *gin.Context) {
	body, err := io.ReadAll(http.MaxBytesReader(c.Writer, c.Request.Body, maxDrawBytes))
	if err != nil {
		c.JSON(http.StatusRequestEntityTooLarge, gin.H{"error": "draw payload too large"})
		return
	}
	if !json.Valid(body) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "draw payload must be valid JSON"})
		return
	}
	s.RelayDraw(c.Param("roomID"), json.RawMessage(body))
	c.JSON(http.StatusOK, gin.H{"status": "relayed"})
}

func (s *Server) handleSubmitGuess(c *gin.Context) {
	var req guessRequest
	if !bindJSON(c, &req, guessMessages, "invalid guess request") {
		return
	}
	answer, err := validateGuess(req.Answer)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	result, err := s.SubmitGuess(c.Request.Context(), c.Param("roomID"), req.UserID, answer)
	if err != nil {
		writeDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"matched":     result.Matched,
		"round_ended": result.RoundEnded,
	})
}

func writeDomainError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, ErrRoomNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": ErrRoomNotFound.Error()})
	case errors.Is(err, ErrRoomFull):
		c.JSON(http.StatusConflict, gin.H{"error": ErrRoomFull.Error()})
	case errors.Is(err, ErrAlreadyJoined):
		c.JSON(http.StatusConflict, gin.H{"error": ErrAlreadyJoined.Error()})
	case errors.Is(err, ErrPlayerNotInRoom):
		c.JSON(http.StatusConflict, gin.H{"error": ErrPlayerNotInRoom.Error()})
	case errors.Is(err, ErrInvalidRoomState):
		c.JSON(http.StatusConflict, gin.H{"error": ErrInvalidRoomState.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "something went wrong"})
	}
}
