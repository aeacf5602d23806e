package main

import (
	"embed"
	"encoding/json"
	"fmt"
	"math/rand"
	"os"
)

const (
	questionMultiple = "multiple"
	questionBuzzer   = "buzzer"
	questionSequence = "sequence"
)

func validQuestionType(qtype string) bool {
	switch qtype {
	case questionMultiple, questionBuzzer, questionSequence:
		return true
	default:
		return false
	}
}

// Question is one entry from the question bank. Which fields are populated
// depends on the type: multiple-choice questions carry choices, sequence
// questions carry an ordered list of clues.
type Question struct {
	Type    string      `json:"type"`
	Prompt  string      `json:"prompt"`
	Choices []string    `json:"choices,omitempty"`
	Answer  AnswerValue `json:"answer"`
	Steps   []string    `json:"steps,omitempty"`
}

//go:embed questions.json
var defaultQuestions embed.FS

// QuestionBank is a read-only collaborator: the game never writes to it.
type QuestionBank struct {
	byType map[string][]Question
}

func loadQuestionBank(cfg *Config) (*QuestionBank, error) {
	var data []byte
	var err error

	if cfg.questions != "" {
		data, err = os.ReadFile(cfg.questions)
		if err != nil {
			return nil, fmt.Errorf("failed to read question bank: %w", err)
		}
	} else {
		data, err = defaultQuestions.ReadFile("questions.json")
		if err != nil {
			return nil, err
		}
	}

	var questions []Question
	if err := json.Unmarshal(data, &questions); err != nil {
		return nil, fmt.Errorf("failed to parse question bank: %w", err)
	}

	return newQuestionBank(questions)
}

func newQuestionBank(questions []Question) (*QuestionBank, error) {
	bank := &QuestionBank{byType: make(map[string][]Question)}

	for i, q := range questions {
		if !validQuestionType(q.Type) {
			return nil, fmt.Errorf("question %d: unknown type %q", i, q.Type)
		}
		if q.Prompt == "" {
			return nil, fmt.Errorf("question %d: missing prompt", i)
		}
		bank.byType[q.Type] = append(bank.byType[q.Type], q)
	}

	return bank, nil
}

// Draw returns up to count questions of the given type, in randomized order.
func (b *QuestionBank) Draw(qtype string, count int) ([]Question, error) {
	if !validQuestionType(qtype) {
		return nil, ErrInvalidQuestionType
	}

	pool := b.byType[qtype]
	if len(pool) == 0 {
		return nil, ErrQuestionBank
	}

	shuffled := make([]Question, len(pool))
	copy(shuffled, pool)
	rand.Shuffle(len(shuffled), func(i, j int) {
		shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
	})

	if count <= 0 || count > len(shuffled) {
		count = len(shuffled)
	}

	return shuffled[:count], nil
}
