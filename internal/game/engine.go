// internal/game/engine.go
//
// Core game engine for a single session.
// Responsibilities:
//   - Create games with a 6 x L grid, L taken from the dictionary.
//   - Edit the current row letter by letter (AddLetter / RemoveLetter).
//   - Validate and score submitted rows with the two-pass budget algorithm.
//   - Track state transitions: in_progress → won/lost.
//
// Notes:
//   - A Game is owned by exactly one session and is not safe for concurrent use;
//     callers that share one across goroutines must serialize access.
//   - Every error return leaves the game exactly as it was.
package game

import (
	"strings"

	"github.com/google/uuid"
)

// empty marks a cell with no letter.
const empty rune = 0

// Game holds the state of a single game session.
type Game struct {
	id       string
	dict     Dictionary
	secret   string   // uppercase, fixed for the session
	grid     [][]rune // Rows x L, uppercase letters or empty
	feedback [][]Mark // marks for rows already submitted
	row      int      // row being edited, Rows once the last row is spent
	col      int      // next cell to fill in row
	status   Status
}

// New starts a game with a secret drawn at random from dict.
func New(dict Dictionary) *Game {
	return newGame(dict, dict.PickRandom())
}

// NewWithSecret starts a game with a fixed secret, which must be a dictionary word.
func NewWithSecret(dict Dictionary, secret string) (*Game, error) {
	if !dict.Contains(secret) {
		return nil, ErrUnknownSecret
	}
	return newGame(dict, secret), nil
}

func newGame(dict Dictionary, secret string) *Game {
	n := dict.Length()
	grid := make([][]rune, Rows)
	for i := range grid {
		grid[i] = make([]rune, n)
	}
	return &Game{
		id:     uuid.NewString(),
		dict:   dict,
		secret: strings.ToUpper(secret),
		grid:   grid,
		status: StatusInProgress,
	}
}

// AddLetter writes r into the next free cell of the current row.
// A full row is left untouched.
func (g *Game) AddLetter(r rune) error {
	if g.status.Terminal() {
		return ErrGameOver
	}
	if !isLetter(r) {
		return ErrInvalidLetter
	}
	if g.col == len(g.grid[g.row]) {
		return nil
	}
	g.grid[g.row][g.col] = toUpper(r)
	g.col++
	return nil
}

// RemoveLetter clears the last filled cell of the current row.
// An empty row is left untouched.
func (g *Game) RemoveLetter() error {
	if g.status.Terminal() {
		return ErrGameOver
	}
	if g.col == 0 {
		return nil
	}
	g.col--
	g.grid[g.row][g.col] = empty
	return nil
}

// SubmitGuess validates and scores the current row.
//
// Validation order:
//   - Game must not be finished (ErrGameOver).
//   - Row must be full (ErrIncompleteGuess).
//   - Row must spell a dictionary word (ErrInvalidWord).
//
// State transitions:
//   - Guess equals the secret → won.
//   - Otherwise, last row spent → lost.
func (g *Game) SubmitGuess() (Result, error) {
	if g.status.Terminal() {
		return Result{}, ErrGameOver
	}
	if g.col < len(g.grid[g.row]) {
		return Result{}, ErrIncompleteGuess
	}
	guess := string(g.grid[g.row])
	if !g.dict.Contains(guess) {
		return Result{}, ErrInvalidWord
	}

	marks := Score(g.secret, guess)
	res := Result{Row: g.row, Guess: guess, Marks: marks}

	g.feedback = append(g.feedback, marks)
	g.row++
	g.col = 0

	if guess == g.secret {
		g.status = StatusWon
	} else if g.row == Rows {
		g.status = StatusLost
	}

	res.Status = g.status
	if g.status.Terminal() {
		res.Secret = g.secret
	}
	return res, nil
}

// ID returns the session identifier.
func (g *Game) ID() string { return g.id }

// Row returns the index of the row being edited.
func (g *Game) Row() int { return g.row }

// Col returns the index of the next cell to fill.
func (g *Game) Col() int { return g.col }

// Status returns the current state machine position.
func (g *Game) Status() Status { return g.status }

// WordLength returns L.
func (g *Game) WordLength() int { return len(g.secret) }

// Secret reveals the secret once the game has ended.
func (g *Game) Secret() (string, bool) {
	if !g.status.Terminal() {
		return "", false
	}
	return g.secret, true
}

// Grid returns a copy of the board. Empty cells are zero runes.
func (g *Game) Grid() [][]rune {
	out := make([][]rune, len(g.grid))
	for i, row := range g.grid {
		out[i] = append([]rune(nil), row...)
	}
	return out
}

// Feedback returns a copy of the marks of every submitted row.
func (g *Game) Feedback() [][]Mark {
	out := make([][]Mark, len(g.feedback))
	for i, m := range g.feedback {
		out[i] = append([]Mark(nil), m...)
	}
	return out
}

// Snapshot returns a render-ready copy of the game.
func (g *Game) Snapshot() State {
	rows := make([]string, len(g.grid))
	for i, row := range g.grid {
		var b strings.Builder
		for _, c := range row {
			if c == empty {
				b.WriteByte('.')
			} else {
				b.WriteRune(c)
			}
		}
		rows[i] = b.String()
	}
	secret, _ := g.Secret()
	return State{
		ID:       g.id,
		Grid:     rows,
		Row:      g.row,
		Col:      g.col,
		Length:   g.WordLength(),
		Status:   g.status,
		Feedback: g.Feedback(),
		Secret:   secret,
	}
}

// isLetter reports whether r is an ASCII letter of either case.
func isLetter(r rune) bool {
	return (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z')
}

func toUpper(r rune) rune {
	if r >= 'a' && r <= 'z' {
		return r - 'a' + 'A'
	}
	return r
}
