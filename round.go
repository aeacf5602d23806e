package main

import (
	"maps"
	"time"
)

// Round lifecycle states.
const (
	roundStateActive    = "active"
	roundStateQuestion  = "question"
	roundStateRevealed  = "revealed"
	roundStateConfirmed = "confirmed"
)

// Round holds the state for one sequence of questions of a single type.
// There is at most one per session; endRound discards it entirely, so no
// per-round totals ever leak into the next round.
type Round struct {
	Type           string
	Duration       int // seconds, advisory metadata for clients
	QuestionIndex  int
	RoundScores    map[string]int
	StartedAt      time.Time
	EndsAt         *time.Time
	BuzzersLocked  bool
	Buzzer         *BuzzEntry
	LastBuzzed     string
	Question       *Question
	Answers        map[string]AnswerValue
	QuestionScores map[string]int
	AllAnswered    bool
	RevealedStep   int
	State          string

	ticker *countdown
}

// stepPoints is the award schedule for a sequence question: guessing after
// fewer revealed clues is worth more.
func stepPoints(steps []string) []int {
	points := make([]int, len(steps))
	for i := range steps {
		points[i] = answerPoints * (len(steps) - i)
	}
	return points
}

func (s *Session) startRoundLocked(cfg *Config, c *Client, roundType string, duration int) error {
	if err := s.requireHostLocked(c); err != nil {
		return err
	}
	if !validQuestionType(roundType) {
		return ErrInvalidQuestionType
	}

	s.cancelTickerLocked()

	s.round = &Round{
		Type:           roundType,
		Duration:       duration,
		RoundScores:    make(map[string]int),
		Answers:        make(map[string]AnswerValue),
		QuestionScores: make(map[string]int),
		StartedAt:      time.Now(),
		State:          roundStateActive,
	}

	logf(cfg, "GAMES: Started %s round in %s", roundType, s.code)

	s.broadcastLocked(RoundStartedMessage{
		Type:      "round_started",
		RoundType: roundType,
		Duration:  duration,
	})

	return nil
}

// startQuestionLocked begins the lifecycle of one question, dispatching on
// its type. Any ticker from the previous question is cancelled first.
func (s *Session) startQuestionLocked(cfg *Config, c *Client, q *Question) error {
	if err := s.requireHostLocked(c); err != nil {
		return err
	}
	if s.round == nil {
		return ErrNoActiveRound
	}
	if q == nil || !validQuestionType(q.Type) {
		return ErrInvalidQuestionType
	}

	s.cancelTickerLocked()

	round := s.round
	round.Question = q
	round.Answers = make(map[string]AnswerValue)
	round.QuestionScores = make(map[string]int)
	round.AllAnswered = false
	round.EndsAt = nil
	round.RevealedStep = 0
	round.State = roundStateQuestion

	switch q.Type {
	case questionMultiple:
		s.startMultipleLocked(cfg, q)
	case questionBuzzer:
		s.startBuzzerLocked(cfg, q)
	case questionSequence:
		s.startSequenceLocked(cfg, q)
	}

	logf(cfg, "GAMES: Question %d (%s) started in %s", round.QuestionIndex, q.Type, s.code)

	return nil
}

// Multiple-choice: fixed answer window, countdown ticker, choices shown to
// everyone but the correct answer only to the host.
func (s *Session) startMultipleLocked(cfg *Config, q *Question) {
	round := s.round

	endsAt := time.Now().Add(cfg.answerWindow)
	round.EndsAt = &endsAt

	totals := maps.Clone(round.RoundScores)

	s.sendHostLocked(HostQuestionMessage{
		Type:        "host_question",
		Question:    *q,
		RoundTotals: totals,
	})

	s.broadcastPlayersLocked(QuestionMessage{
		Type:         "question",
		QuestionType: q.Type,
		Prompt:       q.Prompt,
		Choices:      q.Choices,
		EndsAt:       &endsAt,
		RoundTotals:  totals,
	})

	s.startTickerLocked(cfg, endsAt)
}

// Buzzer: untimed; all lockouts and any held buzz are cleared before the
// question goes out.
func (s *Session) startBuzzerLocked(cfg *Config, q *Question) {
	round := s.round

	round.Buzzer = nil
	round.LastBuzzed = ""
	round.BuzzersLocked = false
	for _, p := range s.players {
		p.BuzzerLocked = false
	}

	s.broadcastLocked(BuzzerResetMessage{Type: "buzzer_reset"})

	totals := maps.Clone(round.RoundScores)

	s.broadcastPlayersLocked(QuestionMessage{
		Type:         "question",
		QuestionType: q.Type,
		Prompt:       q.Prompt,
		RoundTotals:  totals,
	})

	s.sendHostLocked(HostQuestionMessage{
		Type:        "host_question",
		Question:    *q,
		RoundTotals: totals,
	})
}

// Sequence: players start with only the first clue; the host sees the whole
// list, the answer, and the points schedule for successive reveals.
func (s *Session) startSequenceLocked(cfg *Config, q *Question) {
	round := s.round

	round.Buzzer = nil
	round.LastBuzzed = ""
	round.BuzzersLocked = false
	for _, p := range s.players {
		p.BuzzerLocked = false
	}

	totals := maps.Clone(round.RoundScores)

	var visible []string
	if len(q.Steps) > 0 {
		visible = q.Steps[:1]
	}

	s.broadcastPlayersLocked(QuestionMessage{
		Type:         "question",
		QuestionType: q.Type,
		Prompt:       q.Prompt,
		VisibleSteps: visible,
		RoundTotals:  totals,
	})

	s.sendHostLocked(HostQuestionMessage{
		Type:        "host_question",
		Question:    *q,
		StepPoints:  stepPoints(q.Steps),
		RoundTotals: totals,
	})
}

// revealNextStepLocked uncovers the next sequence clue for the room.
func (s *Session) revealNextStepLocked(c *Client) (int, error) {
	if err := s.requireHostLocked(c); err != nil {
		return 0, err
	}
	round := s.round
	if round == nil || round.Question == nil {
		return 0, ErrNoActiveRound
	}
	if round.Question.Type != questionSequence {
		return 0, ErrInvalidQuestionType
	}
	if round.RevealedStep >= len(round.Question.Steps)-1 {
		return round.RevealedStep, ErrNoMoreSteps
	}

	round.RevealedStep++

	s.broadcastLocked(StepRevealedMessage{
		Type:         "step_revealed",
		Index:        round.RevealedStep,
		Step:         round.Question.Steps[round.RevealedStep],
		VisibleSteps: round.Question.Steps[:round.RevealedStep+1],
	})

	return round.RevealedStep, nil
}

// revealSequenceAnswerLocked publishes the full clue list and the answer,
// closing the buzzers so the host can move on to scoring.
func (s *Session) revealSequenceAnswerLocked(c *Client) error {
	if err := s.requireHostLocked(c); err != nil {
		return err
	}
	round := s.round
	if round == nil || round.Question == nil {
		return ErrNoActiveRound
	}
	if round.Question.Type != questionSequence {
		return ErrInvalidQuestionType
	}

	round.State = roundStateRevealed
	round.BuzzersLocked = true

	s.broadcastLocked(SequenceAnswerMessage{
		Type:   "sequence_answer",
		Steps:  round.Question.Steps,
		Answer: round.Question.Answer.display(round.Question.Choices),
	})

	return nil
}

// submitAnswerLocked records a player's answer and its provisional score.
// Late submissions fail without touching any state.
func (s *Session) submitAnswerLocked(cfg *Config, c *Client, answer AnswerValue) error {
	p, ok := s.playerOf(c)
	if !ok {
		return ErrNotPlayer
	}
	round := s.round
	if round == nil || round.Question == nil {
		return ErrNoActiveRound
	}
	if round.EndsAt != nil && time.Now().After(*round.EndsAt) {
		return ErrTooLate
	}

	q := round.Question
	round.Answers[p.PlayerID] = answer
	round.QuestionScores[p.PlayerID] = provisionalScore(answer, q.Answer, q.Choices)

	s.broadcastLocked(PlayerAnsweredMessage{Type: "player_answered", Name: p.Name})

	if !round.AllAnswered && s.everyPlayerAnsweredLocked() {
		round.AllAnswered = true
		s.cancelTickerLocked()
		s.broadcastLocked(AllAnsweredMessage{Type: "all_answered", Count: len(round.Answers)})
		logf(cfg, "GAMES: All %d players answered in %s", len(round.Answers), s.code)
	}

	return nil
}

func (s *Session) everyPlayerAnsweredLocked() bool {
	answered := 0
	total := 0
	for pid, p := range s.players {
		if p.Role != rolePlayer {
			continue
		}
		total++
		if _, ok := s.round.Answers[pid]; ok {
			answered++
		}
	}
	return total > 0 && answered == total
}

// revealAnswerLocked previews the correct answer and provisional scores.
// Cumulative totals are untouched; only confirm_points commits points.
func (s *Session) revealAnswerLocked(c *Client) error {
	if err := s.requireHostLocked(c); err != nil {
		return err
	}
	round := s.round
	if round == nil || round.Question == nil {
		return ErrNoActiveRound
	}

	expired := round.EndsAt != nil && time.Now().After(*round.EndsAt)
	if !round.AllAnswered && round.Question.Type != questionBuzzer && !expired {
		return ErrEarlyReveal
	}

	round.State = roundStateRevealed
	if round.Question.Type == questionBuzzer {
		round.BuzzersLocked = true
	}

	s.broadcastLocked(AnswerRevealMessage{
		Type:        "answer_reveal",
		Answer:      round.Question.Answer.display(round.Question.Choices),
		Scores:      maps.Clone(round.QuestionScores),
		RoundTotals: maps.Clone(round.RoundScores),
	})

	return nil
}
