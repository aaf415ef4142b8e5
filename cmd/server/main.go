// HTTP сервер конвертера: POST /api/convert принимает сырую выгрузку
// и возвращает готовый фид.
package main

import (
	"log"

	"catalogfeed/internal/config"
	"catalogfeed/server"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	s, err := server.New(cfg)
	if err != nil {
		log.Fatalf("Failed to create server: %v", err)
	}
	defer s.Close()

	if err := s.Run(); err != nil {
		log.Fatalf("Server stopped: %v", err)
	}
}
