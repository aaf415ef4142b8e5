// Package server HTTP API конвертера: загрузка сырой выгрузки и
// получение готового фида одним запросом.
package server

import (
	"fmt"
	"log"

	"github.com/gin-gonic/gin"

	"catalogfeed/database"
	"catalogfeed/internal/config"
	"catalogfeed/server/middleware"
)

// Server HTTP сервер конвертера
type Server struct {
	cfg    *config.Config
	router *gin.Engine
	db     *database.DB // nil — история запусков не сохраняется
}

// New создает сервер и регистрирует маршруты
func New(cfg *config.Config) (*Server, error) {
	var db *database.DB
	if cfg.DatabasePath != "" {
		var err error
		db, err = database.Open(cfg.DatabasePath)
		if err != nil {
			return nil, fmt.Errorf("failed to open run history database: %w", err)
		}
	}

	router := gin.Default()
	router.Use(middleware.RequestID())
	router.Use(middleware.CORS())

	s := &Server{cfg: cfg, router: router, db: db}

	api := router.Group("/api")
	{
		api.GET("/health", s.handleHealth)
		api.POST("/convert", s.handleConvert)
		api.GET("/runs", s.handleRuns)
	}
	return s, nil
}

// Run запускает сервер и блокируется до его остановки
func (s *Server) Run() error {
	addr := ":" + s.cfg.Port
	log.Printf("[Server] Listening on %s", addr)
	return s.router.Run(addr)
}

// Router возвращает роутер (для тестов)
func (s *Server) Router() *gin.Engine {
	return s.router
}

// Close освобождает ресурсы сервера
func (s *Server) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}
