package parser

import "strings"

const (
	fieldSep   = "~"
	recordSep  = "~^"
	sectionSep = "~~~~~~~~"
)

var sentinels = []string{
	"Please try again after some time.",
	"Train not found",
	"From station not found",
	"To station not found",
	"No direct trains found",
}

// Classify reports whether the first section of a tilde feed carries one of
// the known upstream refusal messages, returning the message without delimiters.
func Classify(raw string) (string, bool) {
	head := raw
	if i := strings.Index(raw, sectionSep); i >= 0 {
		head = raw[:i]
	}

	for _, sentinel := range sentinels {
		if strings.Contains(head, sentinel) {
			return sentinel, true
		}
	}

	return "", false
}
