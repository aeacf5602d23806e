package main

import (
	"sort"
	"sync"
	"time"
)

const (
	roleHost   = "host"
	rolePlayer = "player"
)

// Player holds the data we store server-side for one participant. Score
// persists across rounds; buzzerLocked is reset at round and question
// boundaries.
type Player struct {
	PlayerID     string
	Name         string
	Score        int
	Role         string
	BuzzerLocked bool
}

// Session is one game room: a roster of participants plus at most one active
// round. All mutable state is guarded by mu; every inbound action takes the
// lock for its full duration, so actions are processed one at a time per
// room.
type Session struct {
	code string
	bank *QuestionBank

	clients map[*Client]bool

	mu         sync.RWMutex
	players    map[string]*Player
	joinOrder  []string
	hostID     string
	round      *Round
	createdAt  time.Time
	lastActive time.Time
	closed     bool
}

func newSession(code string, bank *QuestionBank) *Session {
	now := time.Now()
	return &Session{
		code:       code,
		bank:       bank,
		clients:    make(map[*Client]bool),
		players:    make(map[string]*Player),
		createdAt:  now,
		lastActive: now,
	}
}

// sendLocked delivers a message to one client, dropping the client if its
// send buffer is full. Clients already dropped are skipped, so handlers can
// safely ack after a broadcast evicted the caller.
func (s *Session) sendLocked(c *Client, msg any) {
	if !s.clients[c] {
		return
	}

	select {
	case c.send <- msg:
	default:
		delete(s.clients, c)
		close(c.send)
	}
}

func (s *Session) broadcastLocked(msg any) {
	for client := range s.clients {
		s.sendLocked(client, msg)
	}
}

// broadcastPlayersLocked sends to every connection except the host's.
func (s *Session) broadcastPlayersLocked(msg any) {
	for client := range s.clients {
		if client.playerID == s.hostID {
			continue
		}
		s.sendLocked(client, msg)
	}
}

func (s *Session) sendHostLocked(msg any) {
	for client := range s.clients {
		if client.playerID == s.hostID {
			s.sendLocked(client, msg)
		}
	}
}

// sendPlayerLocked targets every connection belonging to one identity.
func (s *Session) sendPlayerLocked(playerID string, msg any) {
	for client := range s.clients {
		if client.playerID == playerID {
			s.sendLocked(client, msg)
		}
	}
}

func (s *Session) rosterLocked() []RosterEntry {
	roster := make([]RosterEntry, 0, len(s.players))
	for _, pid := range s.joinOrder {
		p, ok := s.players[pid]
		if !ok {
			continue
		}
		roster = append(roster, RosterEntry{
			PlayerID: p.PlayerID,
			Name:     p.Name,
			Score:    p.Score,
			Role:     p.Role,
		})
	}
	return roster
}

func (s *Session) broadcastRosterLocked(msgType string) {
	s.broadcastLocked(RosterMessage{Type: msgType, Players: s.rosterLocked()})
}

// leaderboardLocked ranks players (never the host) by the given scores,
// highest first, ties broken by join order.
func (s *Session) leaderboardLocked(scores map[string]int) []LeaderboardEntry {
	entries := make([]LeaderboardEntry, 0, len(s.players))
	for _, pid := range s.joinOrder {
		p, ok := s.players[pid]
		if !ok || p.Role != rolePlayer {
			continue
		}
		entries = append(entries, LeaderboardEntry{Name: p.Name, Score: scores[pid]})
	}

	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Score > entries[j].Score
	})

	return entries
}

func (s *Session) cumulativeScoresLocked() map[string]int {
	scores := make(map[string]int, len(s.players))
	for pid, p := range s.players {
		scores[pid] = p.Score
	}
	return scores
}

func (s *Session) requireHostLocked(c *Client) error {
	if c.playerID != s.hostID {
		return ErrNotHost
	}
	return nil
}

func (s *Session) playerOf(c *Client) (*Player, bool) {
	p, ok := s.players[c.playerID]
	if !ok || p.Role != rolePlayer {
		return nil, false
	}
	return p, true
}

// addPlayerLocked inserts or updates the roster entry for an identity,
// preserving any prior score so a reconnecting player picks up where they
// left off.
func (s *Session) addPlayerLocked(playerID, name, role string) {
	if existing, ok := s.players[playerID]; ok {
		if name != "" {
			existing.Name = name
		}
		return
	}

	if role != roleHost {
		role = rolePlayer
	}

	s.players[playerID] = &Player{
		PlayerID: playerID,
		Name:     name,
		Role:     role,
	}
	s.joinOrder = append(s.joinOrder, playerID)
}

func (s *Session) removePlayerLocked(playerID string) bool {
	if _, ok := s.players[playerID]; !ok {
		return false
	}

	delete(s.players, playerID)
	for i, pid := range s.joinOrder {
		if pid == playerID {
			s.joinOrder = append(s.joinOrder[:i], s.joinOrder[i+1:]...)
			break
		}
	}
	return true
}

// join attaches a client to the session roster. Only the room's creator ever
// holds the host role; any requested role other than that is a player.
func (s *Session) join(cfg *Config, c *Client, name, role string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.lastActive = time.Now()
	s.clients[c] = true

	if c.playerID == s.hostID {
		role = roleHost
	} else {
		role = rolePlayer
	}
	s.addPlayerLocked(c.playerID, name, role)

	logf(cfg, "GAMES: %q joined %s as %s", name, s.code, role)

	s.broadcastRosterLocked("roster")
}

// attachHost registers the creating client as host.
func (s *Session) attachHost(cfg *Config, c *Client, name string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.lastActive = time.Now()
	s.clients[c] = true
	s.hostID = c.playerID
	if name == "" {
		name = "Host"
	}
	s.addPlayerLocked(c.playerID, name, roleHost)

	s.broadcastRosterLocked("roster")
}

// disconnect handles a closed connection. A departing host tears the room
// down; a departing player keeps their roster entry (and score) for a grace
// period so they can reconnect under the same identity.
func (s *Session) disconnect(cfg *Config, reg *Registry, c *Client) {
	s.mu.Lock()

	if !s.clients[c] {
		s.mu.Unlock()
		return
	}
	delete(s.clients, c)
	close(c.send)
	s.lastActive = time.Now()

	playerID := c.playerID
	stillConnected := false
	for client := range s.clients {
		if client.playerID == playerID {
			stillConnected = true
			break
		}
	}

	if playerID == s.hostID && !stillConnected {
		s.teardownLocked(cfg, true)
		s.mu.Unlock()
		reg.remove(cfg, s.code)
		return
	}

	s.mu.Unlock()

	if !stillConnected {
		go s.scheduleRemoval(cfg, playerID, cfg.playerTimeout)
	}
}

// scheduleRemoval waits for d, and if no client with this identity has
// reconnected, drops the roster entry and rebroadcasts the roster.
func (s *Session) scheduleRemoval(cfg *Config, playerID string, d time.Duration) {
	time.Sleep(d)

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return
	}

	for client := range s.clients {
		if client.playerID == playerID {
			return
		}
	}

	if !s.removePlayerLocked(playerID) {
		return
	}

	s.lastActive = time.Now()
	logf(cfg, "GAMES: Removed idle player from %s", s.code)

	s.broadcastRosterLocked("roster")
}

// teardownLocked ends the session: every remaining occupant is notified and
// disconnected, and the round ticker is stopped.
func (s *Session) teardownLocked(cfg *Config, hostLeft bool) {
	if s.closed {
		return
	}

	if hostLeft {
		s.broadcastLocked(HostLeftMessage{Type: "host_left"})
	}

	s.cancelTickerLocked()
	s.round = nil
	s.closed = true

	for client := range s.clients {
		close(client.send)
		delete(s.clients, client)
	}

	logf(cfg, "GAMES: Ended session %s", s.code)
}

// handleAction runs one client action to completion under the session lock
// and always acks the caller exactly once.
func (s *Session) handleAction(cfg *Config, c *Client, msg ClientMessage) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return
	}
	s.lastActive = time.Now()

	ack := AckMessage{Type: "ack", Action: msg.Type, Ok: true}
	var err error

	switch msg.Type {
	case "start_round":
		err = s.startRoundLocked(cfg, c, msg.RoundType, msg.Duration)
	case "start_question":
		err = s.startQuestionLocked(cfg, c, msg.Question)
	case "submit_answer":
		err = s.submitAnswerLocked(cfg, c, msg.Answer)
	case "reveal_answer":
		err = s.revealAnswerLocked(c)
	case "buzz":
		ack.Buzzer, err = s.buzzLocked(cfg, c)
	case "reset_buzzer":
		err = s.resetBuzzerLocked(c, msg.All, msg.PreserveLocks)
	case "confirm_points":
		err = s.confirmPointsLocked(cfg, c, msg.Scores)
	case "end_round":
		err = s.endRoundLocked(c)
	case "show_leaderboard":
		err = s.showLeaderboardLocked(c, "scoreboard")
	case "end_show":
		err = s.showLeaderboardLocked(c, "final_scoreboard")
	case "reveal_step":
		ack.RevealedStep, err = s.revealNextStepLocked(c)
	case "reveal_sequence_answer":
		err = s.revealSequenceAnswerLocked(c)
	case "get_questions":
		ack.Questions, err = s.getQuestionsLocked(c, msg.QuestionType, msg.Count)
	default:
		s.sendLocked(c, AckMessage{Type: "ack", Action: msg.Type, Ok: false, Reason: "unknownAction"})
		return
	}

	if err != nil {
		ack.Ok = false
		ack.Reason = reasonFor(err)
		ack.Buzzer = nil
		ack.Questions = nil
		ack.RevealedStep = 0
	}

	s.sendLocked(c, ack)
}

// getQuestionsLocked delegates to the question bank collaborator.
func (s *Session) getQuestionsLocked(c *Client, qtype string, count int) ([]Question, error) {
	if err := s.requireHostLocked(c); err != nil {
		return nil, err
	}
	if s.bank == nil {
		return nil, ErrQuestionBank
	}
	return s.bank.Draw(qtype, count)
}
