package server

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

func (s *Server) handleSubscribe(c *gin.Context) {
	roomID := c.Param("roomID")
	if !s.store.HasRoom(roomID) {
		c.JSON(http.StatusNotFound, gin.H{"error": ErrRoomNotFound.Error()})
		return
	}
	upgrader := websocket.Upgrader{
		CheckOrigin: func(r *http.Request) bool {
			return true
		},
	}
	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		return
	}
	sub, err := s.SubscribeRoom(c.Request.Context(), roomID)
	if err != nil {
		log.Printf("subscription failed room_id=%s error=%v", roomID, err)
		_ = conn.Close()
		return
	}
	log.Printf("ws connected room_id=%s subscriber_id=%s remote=%s", roomID, sub.ID(), c.Request.RemoteAddr)
	go s.writeSubscriber(conn, sub)
	go s.readSubscriber(roomID, conn, sub)
}

// writeSubscriber drains the subscriber channel onto the connection. The
// loop ends when the hub removes the subscriber or the write fails.
func (s *Server) writeSubscriber(conn *websocket.Conn, sub *Subscriber) {
	for event := range sub.Events() {
		if err := conn.WriteJSON(event); err != nil {
			break
		}
	}
	_ = conn.Close()
}

// readSubscriber watches for the client closing the connection and always
// releases the subscription on exit.
func (s *Server) readSubscriber(roomID string, conn *websocket.Conn, sub *Subscriber) {
	defer func() {
		s.hub.Unsubscribe(roomID, sub)
		_ = conn.Close()
	}()
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			log.Printf("ws disconnected room_id=%s subscriber_id=%s error=%v", roomID, sub.ID(), err)
			return
		}
	}
}
