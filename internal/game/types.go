// internal/game/types.go
//
// Core type definitions for the game engine.
// Defines:
//   - Mark: per-letter feedback of a guess (correct/present/absent).
//   - Status: state machine position (in_progress/won/lost).
//   - Result: outcome of one accepted guess.
//   - State: read-only snapshot of a game for rendering.
//   - Dictionary: the word source the engine depends on.

package game

import "errors"

// Rows is the number of attempts a player gets.
const Rows = 6

// Mark represents the evaluation result for a single letter in a guess.
// Possible values:
//   - "correct": letter is in the secret at this position.
//   - "present": letter is in the secret at another position, and the budget allows it.
//   - "absent":  letter is not in the secret, or every occurrence is already accounted for.
type Mark string

const (
	MarkCorrect Mark = "correct"
	MarkPresent Mark = "present"
	MarkAbsent  Mark = "absent"
)

// Status is the game's position in its state machine.
type Status string

const (
	StatusInProgress Status = "in_progress"
	StatusWon        Status = "won"
	StatusLost       Status = "lost"
)

// Terminal reports whether no further moves are allowed.
func (s Status) Terminal() bool { return s == StatusWon || s == StatusLost }

var (
	// ErrInvalidWord: the guess is not in the dictionary. Recoverable; the row stays editable.
	ErrInvalidWord = errors.New("not in word list")
	// ErrIncompleteGuess: submit was called before the row was full.
	ErrIncompleteGuess = errors.New("not enough letters")
	// ErrGameOver: a mutating call arrived after the game ended. Callers should gate on Status.
	ErrGameOver = errors.New("game finished")
	// ErrInvalidLetter: AddLetter received something other than an ASCII letter.
	ErrInvalidLetter = errors.New("invalid letter")
	// ErrUnknownSecret: NewWithSecret was given a word the dictionary does not contain.
	ErrUnknownSecret = errors.New("secret not in word list")
)

// Result is returned by SubmitGuess for an accepted guess.
type Result struct {
	Row    int    `json:"row"`              // row that was evaluated
	Guess  string `json:"guess"`            // uppercase guess
	Marks  []Mark `json:"marks"`            // one mark per letter
	Status Status `json:"status"`           // status after the guess
	Secret string `json:"secret,omitempty"` // set only when Status is terminal
}

// State is a copy of everything a presentation layer may render.
type State struct {
	ID       string   `json:"id"`
	Grid     []string `json:"grid"` // one string per row, '.' for empty cells
	Row      int      `json:"row"`
	Col      int      `json:"col"`
	Length   int      `json:"length"`
	Status   Status   `json:"status"`
	Feedback [][]Mark `json:"feedback"` // marks of submitted rows, in order
	Secret   string   `json:"secret,omitempty"`
}

// Dictionary is the word source a game validates guesses against.
// *words.Dictionary satisfies it.
type Dictionary interface {
	Contains(word string) bool
	Length() int
	PickRandom() string
}
