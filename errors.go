package main

import "errors"

// Game-level failures. All of these are returned to the acting client as an
// ack with ok=false; none of them are broadcast to the room or terminate the
// connection.
var (
	ErrRoomNotFound        = errors.New("room not found")
	ErrNotHost             = errors.New("only the host may do that")
	ErrNoActiveRound       = errors.New("no active round")
	ErrAlreadyBuzzed       = errors.New("someone already buzzed in")
	ErrLockedOut           = errors.New("you are locked out of the buzzer")
	ErrBuzzersLocked       = errors.New("buzzers are locked")
	ErrTooLate             = errors.New("the answer window has closed")
	ErrEarlyReveal         = errors.New("not all players have answered yet")
	ErrNoMoreSteps         = errors.New("no more steps to reveal")
	ErrInvalidQuestionType = errors.New("invalid question type")
	ErrQuestionBank        = errors.New("question bank unavailable")
	ErrNotJoined           = errors.New("join a room first")
	ErrNotPlayer           = errors.New("only players may do that")
)

// reasonFor maps a game failure to the short machine-readable reason string
// carried in acks.
func reasonFor(err error) string {
	switch {
	case errors.Is(err, ErrRoomNotFound):
		return "roomNotFound"
	case errors.Is(err, ErrNotHost):
		return "notHost"
	case errors.Is(err, ErrNoActiveRound):
		return "noRound"
	case errors.Is(err, ErrAlreadyBuzzed):
		return "alreadyBuzzed"
	case errors.Is(err, ErrLockedOut):
		return "lockedOut"
	case errors.Is(err, ErrBuzzersLocked):
		return "buzzersLocked"
	case errors.Is(err, ErrTooLate):
		return "tooLate"
	case errors.Is(err, ErrEarlyReveal):
		return "early"
	case errors.Is(err, ErrNoMoreSteps):
		return "noMoreSteps"
	case errors.Is(err, ErrInvalidQuestionType):
		return "invalidQuestionType"
	case errors.Is(err, ErrQuestionBank):
		return "questionBankUnavailable"
	case errors.Is(err, ErrNotJoined):
		return "notJoined"
	case errors.Is(err, ErrNotPlayer):
		return "notPlayer"
	default:
		return "error"
	}
}
