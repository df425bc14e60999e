package server

import (
	"net/http"
	"time"

	"sketch-rooms/internal/config"
	"sketch-rooms/internal/web"

	"github.com/a-h/templ"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type Server struct {
	store *Store
	hub   *subscriberHub
	words WordProvider
	db    *gorm.DB
	cfg   config.Config
}

func New(conn *gorm.DB, cfg config.Config) *Server {
	registerValidators()
	var words WordProvider
	if conn != nil {
		words = &dbWordProvider{conn: conn}
	} else {
		words = newListWordProvider(time.Now().UnixNano(), nil)
	}
	return &Server{
		store: NewStore(),
		hub:   newSubscriberHub(cfg.SubscriberBuffer),
		words: words,
		db:    conn,
		cfg:   cfg,
	}
}

func (s *Server) Handler() http.Handler {
	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(cors.New(cors.Config{
		AllowOrigins: []string{"*"},
		AllowMethods: []string{"GET", "POST", "PUT", "DELETE"},
		AllowHeaders: []string{"Content-Type"},
	}))

	router.GET("/", s.handleHome)

	api := router.Group("/api")
	api.POST("/rooms", s.handleCreateRoom)
	api.GET("/rooms", s.handleListRooms)
	api.GET("/rooms/:roomID", s.handleGetRoom)
	api.PUT("/rooms/:roomID", s.handleUpdateRoom)
	api.DELETE("/rooms/:roomID", s.handleDeleteRoom)
	api.POST("/rooms/:roomID/join", s.handleJoinRoom)
	api.POST("/rooms/:roomID/quit", s.handleQuitRoom)
	api.POST("/rooms/:roomID/draw", s.handleRelayDraw)
	api.POST("/rooms/:roomID/guess", s.handleSubmitGuess)

	router.GET("/ws/rooms/:roomID", s.handleSubscribe)

	return router
}

// Shutdown releases every live subscription.
func (s *Server) Shutdown() {
	s.hub.Shutdown()
}

func (s *Server) handleHome(c *gin.Context) {
	templ.Handler(web.Home()).ServeHTTP(c.Writer, c.Request)
}
