package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

const (
	answerNone = iota
	answerIndex
	answerText
)

// AnswerValue is either a choice index (JSON number) or free-form text
// (JSON string). The zero value means "no answer".
type AnswerValue struct {
	kind  int
	index int
	text  string
}

func AnswerIndex(i int) AnswerValue {
	return AnswerValue{kind: answerIndex, index: i}
}

func AnswerText(s string) AnswerValue {
	return AnswerValue{kind: answerText, text: s}
}

func (a AnswerValue) IsZero() bool {
	return a.kind == answerNone
}

func (a *AnswerValue) UnmarshalJSON(data []byte) error {
	trimmed := strings.TrimSpace(string(data))
	if trimmed == "null" {
		*a = AnswerValue{}
		return nil
	}

	var i int
	if err := json.Unmarshal(data, &i); err == nil {
		*a = AnswerIndex(i)
		return nil
	}

	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		*a = AnswerText(s)
		return nil
	}

	return errors.New("answer must be a number or a string")
}

func (a AnswerValue) MarshalJSON() ([]byte, error) {
	switch a.kind {
	case answerIndex:
		return json.Marshal(a.index)
	case answerText:
		return json.Marshal(a.text)
	default:
		return []byte("null"), nil
	}
}

// normalize resolves the value against the given choice list and produces a
// canonical comparable string. An out-of-range index or an empty value is a
// normalization failure, not a protocol error.
func (a AnswerValue) normalize(choices []string) (string, error) {
	switch a.kind {
	case answerIndex:
		if a.index < 0 || a.index >= len(choices) {
			return "", fmt.Errorf("choice index out of range: %d", a.index)
		}
		return strings.ToLower(strings.TrimSpace(choices[a.index])), nil
	case answerText:
		return strings.ToLower(strings.TrimSpace(a.text)), nil
	default:
		return "", errors.New("no answer given")
	}
}

// display renders the value for broadcasting, without canonicalization.
func (a AnswerValue) display(choices []string) string {
	switch a.kind {
	case answerIndex:
		if a.index >= 0 && a.index < len(choices) {
			return choices[a.index]
		}
		return ""
	case answerText:
		return a.text
	default:
		return ""
	}
}

// Flat provisional score for a correct answer. The host can always adjust
// the real award before confirming.
const answerPoints = 10

// provisionalScore compares a submitted answer against the correct one. A
// normalization failure on either side scores zero rather than erroring.
func provisionalScore(submitted, correct AnswerValue, choices []string) int {
	got, err := submitted.normalize(choices)
	if err != nil {
		return 0
	}
	want, err := correct.normalize(choices)
	if err != nil {
		return 0
	}
	if got == want {
		return answerPoints
	}
	return 0
}
