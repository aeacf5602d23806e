package main

import (
	"encoding/json"
	"maps"
	"strconv"
)

// coerceDelta turns a decoded JSON value into a point delta. Anything that
// is not a number (or a numeric string) counts as zero.
func coerceDelta(v any) int {
	switch n := v.(type) {
	case float64:
		return int(n)
	case int:
		return n
	case json.Number:
		f, err := n.Float64()
		if err != nil {
			return 0
		}
		return int(f)
	case string:
		f, err := strconv.ParseFloat(n, 64)
		if err != nil {
			return 0
		}
		return int(f)
	default:
		return 0
	}
}

// confirmPointsLocked is the only path that mutates cumulative scores. Each
// delta is applied to the round total and the player's cumulative score
// together; the question state is then cleared and the index advanced.
func (s *Session) confirmPointsLocked(cfg *Config, c *Client, scores map[string]any) error {
	if err := s.requireHostLocked(c); err != nil {
		return err
	}
	round := s.round
	if round == nil {
		return ErrNoActiveRound
	}

	for pid, v := range scores {
		p, ok := s.players[pid]
		if !ok {
			continue
		}
		delta := coerceDelta(v)
		round.RoundScores[pid] += delta
		p.Score += delta
	}

	round.QuestionIndex++
	round.Question = nil
	round.Answers = make(map[string]AnswerValue)
	round.QuestionScores = make(map[string]int)
	round.AllAnswered = false
	round.EndsAt = nil
	round.Buzzer = nil
	round.LastBuzzed = ""
	round.BuzzersLocked = false
	round.State = roundStateConfirmed
	s.cancelTickerLocked()

	logf(cfg, "GAMES: Points confirmed in %s, question index now %d", s.code, round.QuestionIndex)

	s.broadcastLocked(RosterMessage{Type: "score_update", Players: s.rosterLocked()})

	return nil
}

// endRoundLocked publishes the round's final scores and leaderboard, then
// discards the round.
func (s *Session) endRoundLocked(c *Client) error {
	if err := s.requireHostLocked(c); err != nil {
		return err
	}
	round := s.round
	if round == nil {
		return ErrNoActiveRound
	}

	s.broadcastLocked(RoundScoresMessage{
		Type:   "round_scores",
		Scores: maps.Clone(round.RoundScores),
	})
	s.broadcastLocked(RoundLeaderboardMessage{
		Type:    "round_leaderboard",
		Entries: s.leaderboardLocked(round.RoundScores),
	})

	s.cancelTickerLocked()
	s.round = nil

	return nil
}

// showLeaderboardLocked broadcasts the cumulative scoreboard. The host
// triggers it either mid-show ("scoreboard") or as the closing screen
// ("final_scoreboard"); the payload is the same.
func (s *Session) showLeaderboardLocked(c *Client, msgType string) error {
	if err := s.requireHostLocked(c); err != nil {
		return err
	}

	s.broadcastLocked(ScoreboardMessage{
		Type:    msgType,
		Entries: s.leaderboardLocked(s.cumulativeScoresLocked()),
	})

	return nil
}
