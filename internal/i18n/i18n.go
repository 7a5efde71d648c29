// Package i18n holds the player-facing messages of the game in every supported language.
package i18n

import (
	"net/http"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// LangParam is the query parameter used to select a language.
const LangParam = "lang"

// Message keys.
const (
	InvalidWord     = "invalid_word"
	IncompleteGuess = "incomplete_guess"
	InvalidLetter   = "invalid_letter"
	GameOver        = "game_over"
	Won             = "won"
	Lost            = "lost" // takes the secret as its only argument
	Attempts        = "attempts"
)

var supported = []language.Tag{
	language.AmericanEnglish,
	language.BrazilianPortuguese,
}

var matcher = language.NewMatcher(supported)

var catalog = map[language.Tag]map[string]string{
	language.AmericanEnglish: {
		InvalidWord:     "Not in word list.",
		IncompleteGuess: "Not enough letters.",
		InvalidLetter:   "Only letters A to Z.",
		GameOver:        "The game is over.",
		Won:             "You got it!",
		Lost:            "You are out of attempts! The word was %s.",
		Attempts:        "Attempt %d of %d",
	},
	language.BrazilianPortuguese: {
		InvalidWord:     "Palavra inválida.",
		IncompleteGuess: "Letras insuficientes.",
		InvalidLetter:   "Apenas letras de A a Z.",
		GameOver:        "O jogo acabou.",
		Won:             "Você acertou!",
		Lost:            "Suas tentativas acabaram! A palavra era %s.",
		Attempts:        "Tentativa %d de %d",
	},
}

func init() {
	for tag, msgs := range catalog {
		for key, msg := range msgs {
			if err := message.SetString(tag, key, msg); err != nil {
				panic(err)
			}
		}
	}
}

// Default returns the fallback language.
func Default() language.Tag { return supported[0] }

// Supported returns the languages with a full catalog.
func Supported() []language.Tag { return append([]language.Tag(nil), supported...) }

// Match returns the supported language closest to the given BCP 47 values.
// Unparseable values are skipped; nothing usable yields Default.
func Match(values ...string) language.Tag {
	var tags []language.Tag
	for _, v := range values {
		if t, err := language.Parse(strings.TrimSpace(v)); err == nil {
			tags = append(tags, t)
		}
	}
	return best(tags)
}

// ResolveTag picks the language for a request: lang query parameter first,
// then Accept-Language, then fallback.
func ResolveTag(r *http.Request, fallback language.Tag) language.Tag {
	if v := strings.TrimSpace(r.URL.Query().Get(LangParam)); v != "" {
		if t, err := language.Parse(v); err == nil {
			return best([]language.Tag{t})
		}
	}
	if accept := r.Header.Get("Accept-Language"); accept != "" {
		if tags, _, err := language.ParseAcceptLanguage(accept); err == nil && len(tags) > 0 {
			return best(tags)
		}
	}
	return fallback
}

func best(tags []language.Tag) language.Tag {
	if len(tags) == 0 {
		return Default()
	}
	_, i, conf := matcher.Match(tags...)
	if conf == language.No {
		return Default()
	}
	return supported[i]
}

// Text renders key in tag's language.
func Text(tag language.Tag, key string, args ...any) string {
	return message.NewPrinter(tag).Sprintf(key, args...)
}
