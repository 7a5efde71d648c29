// internal/game/score.go
//
// Duplicate-aware feedback for one guess.

package game

import "strings"

// Score evaluates guess against secret, case-insensitively.
//
// Pass 1:
//   - Mark exact matches as correct.
//   - Count the secret letters left unmatched; that count is each letter's budget.
//
// Pass 2, left to right:
//   - A non-correct letter with budget left is present and spends one unit; otherwise absent.
//
// So a letter never earns more correct+present marks than it has occurrences in secret,
// and the leftmost duplicates win when the budget is short.
// Both words must have the same length and contain only ASCII letters.
func Score(secret, guess string) []Mark {
	secret = strings.ToLower(secret)
	guess = strings.ToLower(guess)

	n := len(guess)
	res := make([]Mark, n)

	var budget [26]int

	for i := 0; i < n; i++ {
		if guess[i] == secret[i] {
			res[i] = MarkCorrect
		} else {
			budget[idx(secret[i])]++
		}
	}

	for i := 0; i < n; i++ {
		if res[i] == MarkCorrect {
			continue
		}
		j := idx(guess[i])
		if budget[j] > 0 {
			res[i] = MarkPresent
			budget[j]--
		} else {
			res[i] = MarkAbsent
		}
	}
	return res
}

// idx maps a lowercase ASCII letter to 0..25.
func idx(c byte) int { return int(c - 'a') }
