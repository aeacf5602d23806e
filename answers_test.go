package main

import (
	"encoding/json"
	"testing"
)

func TestAnswerValueUnmarshal(t *testing.T) {
	var a AnswerValue
	if err := json.Unmarshal([]byte(`1`), &a); err != nil {
		t.Fatalf("number should unmarshal: %v", err)
	}
	if a.kind != answerIndex || a.index != 1 {
		t.Fatalf("want index 1, got %+v", a)
	}

	if err := json.Unmarshal([]byte(`" Paris "`), &a); err != nil {
		t.Fatalf("string should unmarshal: %v", err)
	}
	if a.kind != answerText || a.text != " Paris " {
		t.Fatalf("want raw text preserved, got %+v", a)
	}

	if err := json.Unmarshal([]byte(`null`), &a); err != nil {
		t.Fatalf("null should unmarshal: %v", err)
	}
	if !a.IsZero() {
		t.Fatalf("null should decode to the zero value")
	}

	if err := json.Unmarshal([]byte(`true`), &a); err == nil {
		t.Fatalf("booleans are not valid answers")
	}
}

func TestNormalizeResolvesIndexThroughChoices(t *testing.T) {
	choices := []string{"  Left ", "Right"}

	got, err := AnswerIndex(0).normalize(choices)
	if err != nil {
		t.Fatalf("normalize failed: %v", err)
	}
	if got != "left" {
		t.Fatalf("want %q, got %q", "left", got)
	}

	if _, err := AnswerIndex(5).normalize(choices); err == nil {
		t.Fatalf("out-of-range index must fail normalization")
	}
	if _, err := AnswerIndex(-1).normalize(choices); err == nil {
		t.Fatalf("negative index must fail normalization")
	}

	got, err = AnswerText("  MOZART ").normalize(nil)
	if err != nil {
		t.Fatalf("normalize failed: %v", err)
	}
	if got != "mozart" {
		t.Fatalf("want %q, got %q", "mozart", got)
	}
}

func TestProvisionalScore(t *testing.T) {
	choices := []string{"Left", "Right"}

	if got := provisionalScore(AnswerIndex(1), AnswerIndex(1), choices); got != answerPoints {
		t.Fatalf("correct answer should score %d, got %d", answerPoints, got)
	}
	if got := provisionalScore(AnswerIndex(0), AnswerIndex(1), choices); got != 0 {
		t.Fatalf("wrong answer should score 0, got %d", got)
	}
	if got := provisionalScore(AnswerText("right"), AnswerIndex(1), choices); got != answerPoints {
		t.Fatalf("text matching the correct choice should score, got %d", got)
	}
	// Normalization failure scores zero, it never errors.
	if got := provisionalScore(AnswerIndex(9), AnswerIndex(1), choices); got != 0 {
		t.Fatalf("unnormalizable answer should score 0, got %d", got)
	}
	if got := provisionalScore(AnswerValue{}, AnswerIndex(1), choices); got != 0 {
		t.Fatalf("missing answer should score 0, got %d", got)
	}
}

func TestDisplayRendersRawValue(t *testing.T) {
	choices := []string{"Left", "Right"}

	if got := AnswerIndex(1).display(choices); got != "Right" {
		t.Fatalf("want Right, got %q", got)
	}
	if got := AnswerText("Mozart").display(nil); got != "Mozart" {
		t.Fatalf("want Mozart, got %q", got)
	}
	if got := AnswerIndex(9).display(choices); got != "" {
		t.Fatalf("out-of-range index should render empty, got %q", got)
	}
}
