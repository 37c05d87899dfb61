package domain

import (
	"errors"
	"fmt"
)

var ErrVotesMismatch = errors.New("votes count does not match options count")

// Poll - fully loaded poll as returned by the poll service.
type Poll struct {
	ID       uint64
	Question string
	Options  []string
	// Votes - tally per option, Votes[i] belongs to Options[i].
	Votes []uint64
}

// PollSummary - roster entry, carries no vote data.
type PollSummary struct {
	ID    uint64
	Title string
}

// OptionTally - derived count and percentage of a single option.
type OptionTally struct {
	Index   int
	Text    string
	Votes   uint64
	Percent uint64
}

func (p *Poll) Validate() error {
	if len(p.Votes) != len(p.Options) {
		return fmt.Errorf("poll %d: %w: %d options, %d votes", p.ID, ErrVotesMismatch, len(p.Options), len(p.Votes))
	}
	return nil
}

func (p *Poll) TotalVotes() uint64 {
	var total uint64
	for _, v := range p.Votes {
		total += v
	}
	return total
}

func (p *Poll) Tally() []OptionTally {
	total := p.TotalVotes()
	tally := make([]OptionTally, len(p.Options))
	for i, text := range p.Options {
		var count uint64
		if i < len(p.Votes) {
			count = p.Votes[i]
		}
		tally[i] = OptionTally{
			Index:   i,
			Text:    text,
			Votes:   count,
			Percent: Percentage(count, total),
		}
	}
	return tally
}

// Percentage rounds count/total*100 half-up. Zero total gives zero.
func Percentage(count, total uint64) uint64 {
	if total == 0 {
		return 0
	}
	return (200*count + total) / (2 * total)
}
