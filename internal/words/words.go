// internal/words/words.go
//
// Dictionary of valid words for the game engine.
//
// Responsibilities:
//   - Load the word list from a configured file or fall back to the embedded default.
//   - Enforce the fixed-length contract at load time (every entry shares one length L).
//   - Supply PickRandom (secret selection) and Contains (guess validation).
//
// Constraints:
//   • Words must be ASCII letters a–z; lists are normalized to lowercase.
//   • Blank lines and lines starting with '#' are ignored.
//   • A Dictionary never changes after construction and is safe to share between sessions.

package words

import (
	"bufio"
	"crypto/rand"
	"errors"
	"fmt"
	"math/big"
	"os"
	"strings"

	"github.com/robalobadob/wordgrid/assets"
)

var (
	// ErrEmpty is returned when a list has no usable entries.
	ErrEmpty = errors.New("words: dictionary is empty")
	// ErrMixedLength is returned when entries do not share a single length.
	ErrMixedLength = errors.New("words: entries have different lengths")
	// ErrInvalidEntry is returned when an entry contains a non-letter.
	ErrInvalidEntry = errors.New("words: entry is not alphabetic")
)

// Dictionary is an immutable ordered list of same-length lowercase words.
type Dictionary struct {
	list   []string            // ordered entries, duplicates kept
	set    map[string]struct{} // membership lookup
	length int                 // L, shared by every entry
}

// New validates list and builds a Dictionary from it.
func New(list []string) (*Dictionary, error) {
	d := &Dictionary{set: make(map[string]struct{}, len(list))}
	for _, raw := range list {
		w := strings.TrimSpace(strings.ToLower(raw))
		if w == "" || strings.HasPrefix(w, "#") {
			continue
		}
		if !isAlpha(w) {
			return nil, fmt.Errorf("%w: %q", ErrInvalidEntry, w)
		}
		if d.length == 0 {
			d.length = len(w)
		} else if len(w) != d.length {
			return nil, fmt.Errorf("%w: %q has %d letters, want %d", ErrMixedLength, w, len(w), d.length)
		}
		d.list = append(d.list, w)
		d.set[w] = struct{}{}
	}
	if len(d.list) == 0 {
		return nil, ErrEmpty
	}
	return d, nil
}

// Load reads a dictionary from path, one word per line.
// An empty path loads the embedded default list.
func Load(path string) (*Dictionary, error) {
	if path == "" {
		return New(assets.WordList())
	}
	list, err := readWordFile(path)
	if err != nil {
		return nil, fmt.Errorf("words: read list: %w", err)
	}
	return New(list)
}

// readWordFile loads one entry per line from a file without filtering;
// New decides what is acceptable.
func readWordFile(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	var out []string
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		out = append(out, sc.Text())
	}
	return out, sc.Err()
}

// isAlpha reports whether s is all lowercase ASCII letters.
func isAlpha(s string) bool {
	for _, r := range s {
		if r < 'a' || r > 'z' {
			return false
		}
	}
	return true
}

// PickRandom returns a uniformly random entry using crypto/rand.
func (d *Dictionary) PickRandom() string {
	nBig, err := rand.Int(rand.Reader, big.NewInt(int64(len(d.list))))
	if err != nil {
		// crypto/rand only fails when the OS entropy source is broken.
		panic(fmt.Sprintf("words: read random index: %v", err))
	}
	return d.list[nBig.Int64()]
}

// Contains reports whether word is in the dictionary, ignoring case.
func (d *Dictionary) Contains(word string) bool {
	_, ok := d.set[strings.ToLower(word)]
	return ok
}

// Length returns L, the letter count shared by every entry.
func (d *Dictionary) Length() int { return d.length }

// Len returns the number of entries, duplicates included.
func (d *Dictionary) Len() int { return len(d.list) }

// At returns the i-th entry in load order.
func (d *Dictionary) At(i int) string { return d.list[i] }
