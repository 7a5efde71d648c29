// Package input turns key events into game engine operations.
//
// Presentation layers translate whatever they receive (browser key names, terminal
// lines) into Commands and hand them to Dispatch; the engine never sees raw input.
package input

import (
	"strings"
	"unicode/utf8"

	"github.com/robalobadob/wordgrid/internal/game"
)

// Kind identifies which engine operation a Command maps to.
type Kind int

const (
	KindNone Kind = iota
	KindLetter
	KindDelete
	KindSubmit
)

func (k Kind) String() string {
	switch k {
	case KindLetter:
		return "letter"
	case KindDelete:
		return "delete"
	case KindSubmit:
		return "submit"
	default:
		return "none"
	}
}

// Command is one decoded key event.
type Command struct {
	Kind   Kind
	Letter rune // set for KindLetter
}

// Engine is the subset of *game.Game that commands drive.
type Engine interface {
	AddLetter(r rune) error
	RemoveLetter() error
	SubmitGuess() (game.Result, error)
}

// Outcome reports what a dispatched command did.
type Outcome struct {
	Command Command
	Result  *game.Result // non-nil after an accepted submit
}

// Parse maps a browser-style key name to a Command.
// Unknown keys decode to KindNone and are ignored by Dispatch.
func Parse(key string) Command {
	switch key {
	case "Enter":
		return Command{Kind: KindSubmit}
	case "Backspace", "Delete":
		return Command{Kind: KindDelete}
	}
	if utf8.RuneCountInString(key) != 1 {
		return Command{}
	}
	r, _ := utf8.DecodeRuneInString(key)
	if (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') {
		return Command{Kind: KindLetter, Letter: r}
	}
	return Command{}
}

// Typed expands a line of text into letter commands followed by a submit.
// Characters that are not letters are skipped.
func Typed(line string) []Command {
	var out []Command
	for _, r := range strings.TrimSpace(line) {
		if c := Parse(string(r)); c.Kind == KindLetter {
			out = append(out, c)
		}
	}
	return append(out, Command{Kind: KindSubmit})
}

// Dispatch runs the single engine operation cmd stands for.
func Dispatch(e Engine, cmd Command) (Outcome, error) {
	out := Outcome{Command: cmd}
	switch cmd.Kind {
	case KindLetter:
		return out, e.AddLetter(cmd.Letter)
	case KindDelete:
		return out, e.RemoveLetter()
	case KindSubmit:
		res, err := e.SubmitGuess()
		if err != nil {
			return out, err
		}
		out.Result = &res
		return out, nil
	}
	return out, nil
}
