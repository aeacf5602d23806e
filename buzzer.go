package main

import "time"

// buzzLocked claims the buzzer for a player. The session lock serializes
// competing buzzes, so the first call to get here wins and every later one
// sees the holder.
func (s *Session) buzzLocked(cfg *Config, c *Client) (*BuzzEntry, error) {
	p, ok := s.playerOf(c)
	if !ok {
		return nil, ErrNotPlayer
	}
	round := s.round
	if round == nil {
		return nil, ErrNoActiveRound
	}
	if round.BuzzersLocked {
		return nil, ErrBuzzersLocked
	}
	if p.BuzzerLocked {
		return nil, ErrLockedOut
	}
	if round.Buzzer != nil {
		return nil, ErrAlreadyBuzzed
	}

	entry := &BuzzEntry{
		PlayerID: p.PlayerID,
		Name:     p.Name,
		At:       time.Now(),
	}
	round.Buzzer = entry
	round.LastBuzzed = p.PlayerID

	logf(cfg, "GAMES: %q buzzed in %s", p.Name, s.code)

	s.broadcastLocked(BuzzMessage{Type: "buzz", Buzzer: *entry})

	return entry, nil
}

// resetBuzzerLocked clears the held buzz in one of three modes:
//
//	all=true                   full reset: every lockout and the global lock
//	                           are cleared, each player is told they are free
//	all=false, preserveLocks   soft reset: lockouts untouched, each player is
//	                           re-sent their current lock state
//	all=false, !preserveLocks  advance: the previous holder is locked out so
//	                           the next buzz goes to someone else
func (s *Session) resetBuzzerLocked(c *Client, all, preserveLocks bool) error {
	if err := s.requireHostLocked(c); err != nil {
		return err
	}
	round := s.round
	if round == nil {
		return ErrNoActiveRound
	}

	switch {
	case all:
		round.BuzzersLocked = false
		for _, p := range s.players {
			if p.Role != rolePlayer {
				continue
			}
			p.BuzzerLocked = false
			s.sendPlayerLocked(p.PlayerID, BuzzerLockMessage{Type: "buzzer_lock", Locked: false})
		}

	case preserveLocks:
		for _, p := range s.players {
			if p.Role != rolePlayer {
				continue
			}
			s.sendPlayerLocked(p.PlayerID, BuzzerLockMessage{Type: "buzzer_lock", Locked: p.BuzzerLocked})
		}

	default:
		if prev, ok := s.players[round.LastBuzzed]; ok {
			prev.BuzzerLocked = true
			s.sendPlayerLocked(prev.PlayerID, BuzzerLockMessage{Type: "buzzer_lock", Locked: true})
			s.broadcastLocked(LockoutMessage{Type: "lockout", Name: prev.Name})
		}
	}

	round.Buzzer = nil
	round.LastBuzzed = ""

	s.broadcastLocked(BuzzerResetMessage{Type: "buzzer_reset"})

	return nil
}
