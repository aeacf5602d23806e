package main

import (
	"strings"
	"testing"
)

func TestNewRoomCodeFormat(t *testing.T) {
	cfg := testConfig()
	reg := newRegistry(cfg, nil)

	const charset = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
	for i := 0; i < 20; i++ {
		code := reg.newRoomCode()
		if len(code) != 4 {
			t.Fatalf("want 4-char code, got %q", code)
		}
		for _, r := range code {
			if !strings.ContainsRune(charset, r) {
				t.Fatalf("code %q contains %q outside the charset", code, r)
			}
		}
	}
}

func TestCreateRegistersSessionWithHost(t *testing.T) {
	cfg := testConfig()
	reg := newRegistry(cfg, nil)

	host := newTestClient("host-1")
	s := reg.create(cfg, host, "Host")

	if reg.get(s.code) != s {
		t.Fatalf("created session should be reachable by code")
	}

	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.hostID != "host-1" {
		t.Fatalf("creator should be host, got %q", s.hostID)
	}
	if p := s.players["host-1"]; p == nil || p.Role != roleHost {
		t.Fatalf("host should have a roster entry with the host role")
	}
}

func TestRemoveForgetsSession(t *testing.T) {
	cfg := testConfig()
	reg := newRegistry(cfg, nil)

	host := newTestClient("host-1")
	s := reg.create(cfg, host, "Host")

	reg.remove(cfg, s.code)

	if reg.get(s.code) != nil {
		t.Fatalf("removed session should not be reachable")
	}
}

func TestCreateRoomAckCarriesCode(t *testing.T) {
	cfg := testConfig()
	reg := newRegistry(cfg, nil)

	host := newTestClient("host-1")
	dispatch(cfg, reg, host, ClientMessage{Type: "create_room", Name: "Host"})

	ack, ok := findMsg[AckMessage](drain(host))
	if !ok || !ack.Ok {
		t.Fatalf("create_room should ack ok, got %+v", ack)
	}
	if reg.get(ack.Room) == nil {
		t.Fatalf("acked room code should resolve to a session")
	}

	// A second create on the same connection is rejected.
	dispatch(cfg, reg, host, ClientMessage{Type: "create_room"})
	again, _ := findMsg[AckMessage](drain(host))
	if again.Ok {
		t.Fatalf("a connection already in a room must not create another")
	}
}
