package markdown

import (
	"errors"
	"fmt"
	"strings"
)

var ErrMissingTitle = errors.New("missing title")

// ExtractTitle returns the text of the first "# " line of the document.
// Lines are trimmed before matching, so an indented title is still found.
func ExtractTitle(document string) (string, error) {
	for _, line := range strings.Split(document, "\n") {
		line = strings.TrimSpace(line)
		if title, ok := strings.CutPrefix(line, "# "); ok {
			return title, nil
		}
	}
	return "", fmt.Errorf("%w: no \"# \" heading found", ErrMissingTitle)
}
