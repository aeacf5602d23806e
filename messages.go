package main

import "time"

// Messages coming from clients. A single tagged struct covers every action;
// unused fields are simply omitted.
type ClientMessage struct {
	Type          string         `json:"type"`                     // action name, e.g. "create_room", "buzz"
	Room          string         `json:"room,omitempty"`           // join_room
	Name          string         `json:"name,omitempty"`           // create_room / join_room
	Role          string         `json:"role,omitempty"`           // join_room (default "player")
	RoundType     string         `json:"round_type,omitempty"`     // start_round
	Duration      int            `json:"duration,omitempty"`       // start_round, seconds
	Question      *Question      `json:"question,omitempty"`       // start_question
	Answer        AnswerValue    `json:"answer,omitempty"`         // submit_answer
	Scores        map[string]any `json:"scores,omitempty"`         // confirm_points, playerID -> delta
	All           bool           `json:"all,omitempty"`            // reset_buzzer
	PreserveLocks bool           `json:"preserve_locks,omitempty"` // reset_buzzer
	QuestionType  string         `json:"question_type,omitempty"`  // get_questions
	Count         int            `json:"count,omitempty"`          // get_questions
}

// AckMessage is sent to the acting client only, once per request.
type AckMessage struct {
	Type         string     `json:"type"` // "ack"
	Action       string     `json:"action"`
	Ok           bool       `json:"ok"`
	Reason       string     `json:"reason,omitempty"`
	Room         string     `json:"room,omitempty"`          // create_room
	Buzzer       *BuzzEntry `json:"buzzer,omitempty"`        // buzz
	Questions    []Question `json:"questions,omitempty"`     // get_questions
	RevealedStep int        `json:"revealed_step,omitempty"` // reveal_step
}

// RosterEntry is the public view of one participant.
type RosterEntry struct {
	PlayerID string `json:"player_id"`
	Name     string `json:"name"`
	Score    int    `json:"score"`
	Role     string `json:"role"`
}

// RosterMessage is broadcast whenever the roster or cumulative scores change.
type RosterMessage struct {
	Type    string        `json:"type"` // "roster" or "score_update"
	Players []RosterEntry `json:"players"`
}

type RoundStartedMessage struct {
	Type      string `json:"type"` // "round_started"
	RoundType string `json:"round_type"`
	Duration  int    `json:"duration,omitempty"` // seconds
}

// QuestionMessage is the player view of a question: never includes the answer.
type QuestionMessage struct {
	Type         string         `json:"type"` // "question"
	QuestionType string         `json:"question_type"`
	Prompt       string         `json:"prompt"`
	Choices      []string       `json:"choices,omitempty"`
	EndsAt       *time.Time     `json:"ends_at,omitempty"`
	VisibleSteps []string       `json:"visible_steps,omitempty"`
	RoundTotals  map[string]int `json:"round_totals"`
}

// HostQuestionMessage is the host view: the full question, answer included.
type HostQuestionMessage struct {
	Type        string         `json:"type"` // "host_question"
	Question    Question       `json:"question"`
	StepPoints  []int          `json:"step_points,omitempty"`
	RoundTotals map[string]int `json:"round_totals"`
}

type CountdownMessage struct {
	Type      string `json:"type"` // "countdown"
	Remaining int    `json:"remaining"`
}

type TimeUpMessage struct {
	Type string `json:"type"` // "time_up"
}

type BuzzerResetMessage struct {
	Type string `json:"type"` // "buzzer_reset"
}

// BuzzEntry identifies the current buzzer holder.
type BuzzEntry struct {
	PlayerID string    `json:"player_id"`
	Name     string    `json:"name"`
	At       time.Time `json:"at"`
}

type BuzzMessage struct {
	Type   string    `json:"type"` // "buzz"
	Buzzer BuzzEntry `json:"buzzer"`
}

// BuzzerLockMessage is sent to a single player to sync their lockout state.
type BuzzerLockMessage struct {
	Type   string `json:"type"` // "buzzer_lock"
	Locked bool   `json:"locked"`
}

// LockoutMessage announces to the room that a player was locked out.
type LockoutMessage struct {
	Type string `json:"type"` // "lockout"
	Name string `json:"name"`
}

type PlayerAnsweredMessage struct {
	Type string `json:"type"` // "player_answered"
	Name string `json:"name"`
}

type AllAnsweredMessage struct {
	Type  string `json:"type"` // "all_answered"
	Count int    `json:"count"`
}

// AnswerRevealMessage carries the correct answer plus provisional scores for
// the current question. Cumulative totals are untouched until the host
// confirms.
type AnswerRevealMessage struct {
	Type        string         `json:"type"` // "answer_reveal"
	Answer      string         `json:"answer"`
	Scores      map[string]int `json:"scores"`
	RoundTotals map[string]int `json:"round_totals"`
}

type RoundScoresMessage struct {
	Type   string         `json:"type"` // "round_scores"
	Scores map[string]int `json:"scores"`
}

type LeaderboardEntry struct {
	Name  string `json:"name"`
	Score int    `json:"score"`
}

type RoundLeaderboardMessage struct {
	Type    string             `json:"type"` // "round_leaderboard"
	Entries []LeaderboardEntry `json:"entries"`
}

// ScoreboardMessage is the cumulative scoreboard; its type is "scoreboard"
// for show_leaderboard and "final_scoreboard" for end_show, so clients can
// style the two differently.
type ScoreboardMessage struct {
	Type    string             `json:"type"`
	Entries []LeaderboardEntry `json:"entries"`
}

type StepRevealedMessage struct {
	Type         string   `json:"type"` // "step_revealed"
	Index        int      `json:"index"`
	Step         string   `json:"step"`
	VisibleSteps []string `json:"visible_steps"`
}

type SequenceAnswerMessage struct {
	Type   string   `json:"type"` // "sequence_answer"
	Steps  []string `json:"steps"`
	Answer string   `json:"answer"`
}

type HostLeftMessage struct {
	Type string `json:"type"` // "host_left"
}
