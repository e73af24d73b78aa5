// Package config publishes the embedded per-board configuration as retained
// config/<service> messages, which services read on subscribe.
package config

import (
	"context"
	"encoding/json"
	"errors"

	"envsense-go/bus"
)

const (
	configPrefix = "config"

	// DefaultBoard selects the embedded configuration when none is given.
	DefaultBoard = "envsense"
)

// EmbeddedConfigLookup allows overriding how configs are resolved.
var EmbeddedConfigLookup = func(board string) ([]byte, bool) {
	b, ok := embeddedConfigs[board]
	return b, ok
}

type Service struct {
	Board string
}

func New(board string) *Service {
	if board == "" {
		board = DefaultBoard
	}
	return &Service{Board: board}
}

// Publish decodes the board's JSON object and publishes one retained message
// per top-level key.
func (s *Service) Publish(conn *bus.Connection) error {
	raw, ok := EmbeddedConfigLookup(s.Board)
	if !ok || len(raw) == 0 {
		return errors.New("config: no embedded config for board " + s.Board)
	}

	var m map[string]any
	if err := json.Unmarshal(raw, &m); err != nil {
		return errors.New("config: embedded config is not a JSON object")
	}

	for k, v := range m {
		conn.Publish(conn.NewMessage(bus.T(configPrefix, k), v, true))
	}
	return nil
}

// Start publishes once in the background.
func (s *Service) Start(_ context.Context, conn *bus.Connection) {
	go func() {
		if err := s.Publish(conn); err != nil {
			println("[config]", err.Error())
		}
	}()
}
