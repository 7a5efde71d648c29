// cmd/play is a terminal front end for the game engine.
//
// Each input line is typed into the current row and submitted. A line made of
// dashes removes that many letters; ":q" quits. A rejected row keeps its letters.
//
// Flags fall back to the same environment settings the server reads.
package main

import (
	"bufio"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"golang.org/x/text/language"

	"github.com/robalobadob/wordgrid/internal/config"
	"github.com/robalobadob/wordgrid/internal/daily"
	"github.com/robalobadob/wordgrid/internal/game"
	"github.com/robalobadob/wordgrid/internal/i18n"
	"github.com/robalobadob/wordgrid/internal/input"
	"github.com/robalobadob/wordgrid/internal/words"
)

func main() {
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen})

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load config")
	}
	if lvl, err := zerolog.ParseLevel(cfg.LogLevel); err == nil {
		zerolog.SetGlobalLevel(lvl)
	}

	wordsFile := flag.String("words", cfg.WordsFile, "word list file (default: embedded list)")
	lang := flag.String("lang", cfg.DefaultLang, "message language ("+languages()+")")
	dailyMode := flag.Bool("daily", false, "play the word of the day")
	salt := flag.String("salt", cfg.DailySalt, "salt for the word of the day")
	flag.Parse()

	dict, err := words.Load(*wordsFile)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load word list")
	}

	var g *game.Game
	if *dailyMode {
		now := time.Now()
		g, err = game.NewWithSecret(dict, daily.Secret(dict, now, *salt))
		if err != nil {
			log.Fatal().Err(err).Msg("failed to start daily game")
		}
		log.Debug().Str("date", daily.DateKey(now)).Msg("daily game")
	} else {
		g = game.New(dict)
	}
	log.Debug().Str("gameId", g.ID()).Int("words", dict.Len()).Msg("game started")

	if err := play(os.Stdin, os.Stdout, g, i18n.Match(*lang)); err != nil {
		log.Fatal().Err(err).Msg("read input")
	}
}

// play runs the read-eval-render loop until the game ends, the input closes, or the player quits.
func play(in io.Reader, out io.Writer, g *game.Game, tag language.Tag) error {
	sc := bufio.NewScanner(in)
	render(out, g.Snapshot())
	fmt.Fprintf(out, "%s > ", i18n.Text(tag, i18n.Attempts, g.Row()+1, game.Rows))

	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		switch {
		case line == ":q":
			return nil
		case line != "" && strings.Trim(line, "-") == "":
			for range line {
				_ = g.RemoveLetter()
			}
		default:
			res, err := typeLine(g, line)
			if err != nil {
				fmt.Fprintln(out, i18n.Text(tag, messageKey(err)))
			}
			if res != nil && res.Status.Terminal() {
				render(out, g.Snapshot())
				if res.Status == game.StatusWon {
					fmt.Fprintln(out, i18n.Text(tag, i18n.Won))
				} else {
					fmt.Fprintln(out, i18n.Text(tag, i18n.Lost, res.Secret))
				}
				return nil
			}
		}
		render(out, g.Snapshot())
		fmt.Fprintf(out, "%s > ", i18n.Text(tag, i18n.Attempts, g.Row()+1, game.Rows))
	}
	return sc.Err()
}

// typeLine dispatches the letters of line followed by a submit.
func typeLine(g *game.Game, line string) (*game.Result, error) {
	var res *game.Result
	for _, cmd := range input.Typed(line) {
		o, err := input.Dispatch(g, cmd)
		if err != nil {
			return nil, err
		}
		res = o.Result
	}
	return res, nil
}

// languages lists the tags accepted by -lang.
func languages() string {
	var names []string
	for _, t := range i18n.Supported() {
		names = append(names, t.String())
	}
	return strings.Join(names, ", ")
}

func messageKey(err error) string {
	switch {
	case errors.Is(err, game.ErrInvalidWord):
		return i18n.InvalidWord
	case errors.Is(err, game.ErrIncompleteGuess):
		return i18n.IncompleteGuess
	case errors.Is(err, game.ErrInvalidLetter):
		return i18n.InvalidLetter
	default:
		return i18n.GameOver
	}
}

// render prints the grid. Correct letters are bracketed, present letters
// parenthesized, absent letters bare.
func render(out io.Writer, st game.State) {
	for i, row := range st.Grid {
		var b strings.Builder
		for j, c := range row {
			mark := game.Mark("")
			if i < len(st.Feedback) {
				mark = st.Feedback[i][j]
			}
			switch mark {
			case game.MarkCorrect:
				fmt.Fprintf(&b, "[%c]", c)
			case game.MarkPresent:
				fmt.Fprintf(&b, "(%c)", c)
			default:
				fmt.Fprintf(&b, " %c ", c)
			}
		}
		fmt.Fprintln(out, b.String())
	}
}
