// Package assets carries the default dictionary compiled into the binaries.
package assets

import (
	_ "embed"
	"strings"
)

//go:embed words.txt
var words string

// WordList returns the raw lines of the embedded list. Comments and blank
// lines are left in; the words package filters them.
func WordList() []string {
	return strings.Split(strings.ReplaceAll(words, "\r\n", "\n"), "\n")
}
