package domain

import (
	"errors"
	"strings"
)

const MinPollOptions = 2

var ErrInvalidDraft = errors.New("a question and at least 2 options are required")

// Draft - creation form input before it is sent to the poll service.
type Draft struct {
	Question string
	// OptionsText - raw options, one per line.
	OptionsText string
}

// Options splits OptionsText into trimmed, non-blank lines. Duplicates are kept.
func (d Draft) Options() []string {
	lines := strings.Split(strings.ReplaceAll(d.OptionsText, "\r\n", "\n"), "\n")
	options := make([]string, 0, len(lines))
	for _, line := range lines {
		if line = strings.TrimSpace(line); line != "" {
			options = append(options, line)
		}
	}
	return options
}

// Validate requires a non-blank question and at least MinPollOptions options.
func (d Draft) Validate() error {
	if strings.TrimSpace(d.Question) == "" || len(d.Options()) < MinPollOptions {
		return ErrInvalidDraft
	}
	return nil
}

// IsEmpty reports whether nothing was typed into the form.
func (d Draft) IsEmpty() bool {
	return d.Question == "" && d.OptionsText == ""
}
