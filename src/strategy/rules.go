package strategy

import (
	"bufio"
	"io"
	"os"
	"strings"

	"github.com/fkuefler/blackjack-lab/src/errors"
)

// CommentMarker starts a comment line in a strategy file.
const CommentMarker = "#"

// maxLineBytes bounds a single line of a strategy file.
const maxLineBytes = 1 << 20

func newLineScanner(r io.Reader) *bufio.Scanner {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineBytes)
	return scanner
}

// ParseRules collects the leading comment block of r as rules text.
// Each comment line loses its leading '#'/';' markers and surrounding whitespace;
// parsing stops at the first non-comment line.
func ParseRules(r io.Reader) (string, error) {
	var lines []string
	scanner := newLineScanner(r)
	for scanner.Scan() {
		line := scanner.Text()
		if !strings.HasPrefix(line, CommentMarker) {
			break
		}
		lines = append(lines, strings.TrimSpace(strings.TrimLeft(line, "#;")))
	}
	if err := scanner.Err(); err != nil {
		return "", errors.Wrap(err, "read rules header")
	}
	return strings.Join(lines, "\n"), nil
}

// ReadRules opens path and returns its rules text.
func ReadRules(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) || os.IsPermission(err) {
			return "", errors.NotFound(err, path)
		}
		return "", errors.Wrapf(err, "open %s", path)
	}
	defer f.Close()
	return ParseRules(f)
}
