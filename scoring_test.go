package main

import (
	"testing"
)

func TestCoerceDelta(t *testing.T) {
	cases := []struct {
		name string
		in   any
		want int
	}{
		{"float", float64(10), 10},
		{"int", 7, 7},
		{"numeric string", "5", 5},
		{"garbage string", "zap", 0},
		{"bool", true, 0},
		{"nil", nil, 0},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := coerceDelta(tc.in); got != tc.want {
				t.Fatalf("coerceDelta(%v): want %d, got %d", tc.in, tc.want, got)
			}
		})
	}
}

func TestConfirmPointsAppliesDeltasCumulatively(t *testing.T) {
	cfg := testConfig()
	s, host, _, _ := newGame(t, cfg)

	mustOk(t, act(t, cfg, s, host, ClientMessage{Type: "start_round", RoundType: questionBuzzer}))

	mustOk(t, act(t, cfg, s, host, ClientMessage{
		Type:   "confirm_points",
		Scores: map[string]any{"ann-1": 10, "bob-1": 0},
	}))

	s.mu.RLock()
	if s.round.RoundScores["ann-1"] != 10 || s.players["ann-1"].Score != 10 {
		t.Fatalf("want Ann at 10/10, got %d/%d", s.round.RoundScores["ann-1"], s.players["ann-1"].Score)
	}
	if s.round.RoundScores["bob-1"] != 0 || s.players["bob-1"].Score != 0 {
		t.Fatalf("Bob should be unchanged")
	}
	if s.round.QuestionIndex != 1 {
		t.Fatalf("want question index 1, got %d", s.round.QuestionIndex)
	}
	s.mu.RUnlock()

	// Deltas accumulate; they are never overwritten.
	mustOk(t, act(t, cfg, s, host, ClientMessage{
		Type:   "confirm_points",
		Scores: map[string]any{"ann-1": 5},
	}))

	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.round.RoundScores["ann-1"] != 15 || s.players["ann-1"].Score != 15 {
		t.Fatalf("want Ann at 15/15, got %d/%d", s.round.RoundScores["ann-1"], s.players["ann-1"].Score)
	}
	if s.round.QuestionIndex != 2 {
		t.Fatalf("want question index 2, got %d", s.round.QuestionIndex)
	}
}

func TestConfirmPointsSkipsUnknownAndInvalid(t *testing.T) {
	cfg := testConfig()
	s, host, _, _ := newGame(t, cfg)

	mustOk(t, act(t, cfg, s, host, ClientMessage{Type: "start_round", RoundType: questionBuzzer}))
	mustOk(t, act(t, cfg, s, host, ClientMessage{
		Type:   "confirm_points",
		Scores: map[string]any{"ann-1": "7", "bob-1": "oops", "ghost-9": 50},
	}))

	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.players["ann-1"].Score != 7 {
		t.Fatalf("numeric strings should coerce, got %d", s.players["ann-1"].Score)
	}
	if s.players["bob-1"].Score != 0 {
		t.Fatalf("invalid deltas should count as zero, got %d", s.players["bob-1"].Score)
	}
	if _, ok := s.round.RoundScores["ghost-9"]; ok {
		t.Fatalf("unknown players must not appear in round scores")
	}
}

func TestConfirmPointsClearsQuestionState(t *testing.T) {
	cfg := testConfig()
	s, host, ann, bob := newGame(t, cfg)

	startGame(t, cfg, s, host, multipleChoiceQuestion())
	mustOk(t, act(t, cfg, s, ann, ClientMessage{Type: "submit_answer", Answer: AnswerIndex(1)}))
	mustOk(t, act(t, cfg, s, bob, ClientMessage{Type: "submit_answer", Answer: AnswerIndex(0)}))

	mustOk(t, act(t, cfg, s, host, ClientMessage{
		Type:   "confirm_points",
		Scores: map[string]any{"ann-1": 10},
	}))

	s.mu.RLock()
	defer s.mu.RUnlock()
	round := s.round
	if round.Question != nil || len(round.Answers) != 0 || len(round.QuestionScores) != 0 {
		t.Fatalf("confirmation should clear the question state")
	}
	if round.Buzzer != nil || round.LastBuzzed != "" || round.BuzzersLocked {
		t.Fatalf("confirmation should clear the buzzer state")
	}
	if round.AllAnswered {
		t.Fatalf("confirmation should reset the all-answered flag")
	}
	if round.ticker != nil {
		t.Fatalf("confirmation should cancel any live ticker")
	}
}

func TestEndRoundPublishesLeaderboardAndClearsRound(t *testing.T) {
	cfg := testConfig()
	s, host, ann, _ := newGame(t, cfg)

	mustOk(t, act(t, cfg, s, host, ClientMessage{Type: "start_round", RoundType: questionBuzzer}))
	mustOk(t, act(t, cfg, s, host, ClientMessage{
		Type:   "confirm_points",
		Scores: map[string]any{"ann-1": 10, "bob-1": 20},
	}))
	drain(ann)

	mustOk(t, act(t, cfg, s, host, ClientMessage{Type: "end_round"}))

	msgs := drain(ann)

	scores, ok := findMsg[RoundScoresMessage](msgs)
	if !ok {
		t.Fatalf("expected a round_scores broadcast")
	}
	if scores.Scores["bob-1"] != 20 {
		t.Fatalf("unexpected round scores: %v", scores.Scores)
	}

	board, ok := findMsg[RoundLeaderboardMessage](msgs)
	if !ok {
		t.Fatalf("expected a round_leaderboard broadcast")
	}
	if len(board.Entries) != 2 {
		t.Fatalf("the host must not appear on the leaderboard: %+v", board.Entries)
	}
	if board.Entries[0].Name != "Bob" || board.Entries[1].Name != "Ann" {
		t.Fatalf("leaderboard should be sorted by score: %+v", board.Entries)
	}

	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.round != nil {
		t.Fatalf("end_round should clear the round")
	}
}

func TestLeaderboardTiesAreStableByJoinOrder(t *testing.T) {
	cfg := testConfig()
	s, host, ann, _ := newGame(t, cfg)

	mustOk(t, act(t, cfg, s, host, ClientMessage{Type: "start_round", RoundType: questionBuzzer}))
	mustOk(t, act(t, cfg, s, host, ClientMessage{
		Type:   "confirm_points",
		Scores: map[string]any{"ann-1": 10, "bob-1": 10},
	}))
	drain(ann)

	mustOk(t, act(t, cfg, s, host, ClientMessage{Type: "end_round"}))

	board, _ := findMsg[RoundLeaderboardMessage](drain(ann))
	if len(board.Entries) != 2 || board.Entries[0].Name != "Ann" {
		t.Fatalf("equal scores should keep join order: %+v", board.Entries)
	}
}

func TestShowLeaderboardAndEndShow(t *testing.T) {
	cfg := testConfig()
	s, host, ann, _ := newGame(t, cfg)

	s.mu.Lock()
	s.players["ann-1"].Score = 30
	s.players["bob-1"].Score = 40
	s.mu.Unlock()

	mustOk(t, act(t, cfg, s, host, ClientMessage{Type: "show_leaderboard"}))
	board, ok := findMsg[ScoreboardMessage](drain(ann))
	if !ok || board.Type != "scoreboard" {
		t.Fatalf("expected a scoreboard broadcast, got %+v", board)
	}
	if board.Entries[0].Name != "Bob" || board.Entries[0].Score != 40 {
		t.Fatalf("unexpected scoreboard order: %+v", board.Entries)
	}

	mustOk(t, act(t, cfg, s, host, ClientMessage{Type: "end_show"}))
	final, ok := findMsg[ScoreboardMessage](drain(ann))
	if !ok || final.Type != "final_scoreboard" {
		t.Fatalf("expected a final_scoreboard broadcast, got %+v", final)
	}
}

func TestConfirmPointsRequiresHostAndRound(t *testing.T) {
	cfg := testConfig()
	s, host, ann, _ := newGame(t, cfg)

	mustFail(t, act(t, cfg, s, host, ClientMessage{Type: "confirm_points"}), "noRound")

	mustOk(t, act(t, cfg, s, host, ClientMessage{Type: "start_round", RoundType: questionBuzzer}))
	mustFail(t, act(t, cfg, s, ann, ClientMessage{
		Type:   "confirm_points",
		Scores: map[string]any{"ann-1": 100},
	}), "notHost")
}
