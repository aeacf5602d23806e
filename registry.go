package main

import (
	"crypto/rand"
	"sync"
	"time"
)

// Registry owns the room-code → session table. It is the only structure
// shared across sessions; each session guards its own state.
type Registry struct {
	mu          sync.Mutex
	rooms       map[string]*Session
	bank        *QuestionBank
	idleTimeout time.Duration
}

func newRegistry(cfg *Config, bank *QuestionBank) *Registry {
	reg := &Registry{
		rooms:       make(map[string]*Session),
		bank:        bank,
		idleTimeout: cfg.sessionTimeout,
	}
	if reg.idleTimeout > 0 {
		go reg.reaperLoop(cfg)
	}
	return reg
}

// newRoomCode generates a short, human-typeable room code, retrying on
// collision with a live room.
func (reg *Registry) newRoomCode() string {
	const letters = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
	for {
		buf := make([]byte, 4)
		if _, err := rand.Read(buf); err != nil {
			panic("crypto/rand failure: " + err.Error())
		}
		out := make([]byte, 4)
		for i := range out {
			out[i] = letters[int(buf[i])%len(letters)]
		}
		code := string(out)

		reg.mu.Lock()
		_, exists := reg.rooms[code]
		reg.mu.Unlock()

		if !exists {
			return code
		}
	}
}

// create registers a new session with the calling client as host.
func (reg *Registry) create(cfg *Config, c *Client, name string) *Session {
	code := reg.newRoomCode()
	s := newSession(code, reg.bank)

	reg.mu.Lock()
	reg.rooms[code] = s
	reg.mu.Unlock()

	s.attachHost(cfg, c, name)

	logf(cfg, "GAMES: Created session %s", code)

	return s
}

func (reg *Registry) get(code string) *Session {
	reg.mu.Lock()
	defer reg.mu.Unlock()
	return reg.rooms[code]
}

func (reg *Registry) remove(cfg *Config, code string) {
	reg.mu.Lock()
	defer reg.mu.Unlock()

	if _, ok := reg.rooms[code]; ok {
		delete(reg.rooms, code)
		logf(cfg, "GAMES: Removed session %s", code)
	}
}

// reaperLoop periodically tears down rooms that have been idle longer than
// idleTimeout.
func (reg *Registry) reaperLoop(cfg *Config) {
	ticker := time.NewTicker(reg.idleTimeout / 2)
	for range ticker.C {
		cutoff := time.Now().Add(-reg.idleTimeout)

		reg.mu.Lock()
		var stale []*Session
		for code, s := range reg.rooms {
			s.mu.RLock()
			last := s.lastActive
			s.mu.RUnlock()

			if last.Before(cutoff) {
				delete(reg.rooms, code)
				stale = append(stale, s)
			}
		}
		reg.mu.Unlock()

		for _, s := range stale {
			s.mu.Lock()
			s.teardownLocked(cfg, false)
			s.mu.Unlock()
		}
	}
}
