package bot

import (
	"fmt"
	"strings"

	"github.com/Xausdorf/pollbooth/internal/domain"
)

const (
	emptyRoster = "There are no polls yet."
	voteHint    = "Vote with /poll_vote [option number], delete with /poll_delete."
	confirmHint = "Reply /poll_delete confirm to delete it or /poll_delete cancel to keep it."
)

func renderNotice(n domain.Notice) string {
	switch n.Level {
	case domain.NoticeNotFound:
		return "**" + n.Text + "**"
	default:
		return n.Text
	}
}

func renderRoster(roster []domain.PollSummary) string {
	if len(roster) == 0 {
		return emptyRoster
	}

	var b strings.Builder
	b.WriteString("Polls:")
	for _, p := range roster {
		fmt.Fprintf(&b, "\n#%d %s", p.ID, p.Title)
	}
	b.WriteString("\nOpen one with /poll_open [ID].")
	return b.String()
}

// renderPoll draws the detail panel: one line per option with its tally.
func renderPoll(p *domain.Poll, votePending bool) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Poll #%d: %s", p.ID, p.Question)
	for _, t := range p.Tally() {
		fmt.Fprintf(&b, "\n%d. %s: %d votes (%d%%)", t.Index, t.Text, t.Votes, t.Percent)
	}
	b.WriteString("\n")
	if votePending {
		b.WriteString("Your vote is being counted...")
	} else {
		b.WriteString(voteHint)
	}
	return b.String()
}

func joinSections(sections ...string) string {
	parts := make([]string, 0, len(sections))
	for _, s := range sections {
		if s != "" {
			parts = append(parts, s)
		}
	}
	return strings.Join(parts, "\n\n")
}

const helpText = `Available commands:
	* /help - info about commands

	* /poll_list - shows all polls.

	* /poll_create [question] - creates a poll and opens it. Write one option per line below the command, at least 2.

	* /poll_open [pollID] - shows the poll's question, options and results.

	* /poll_vote [vote] - votes in the open poll. Parameter [vote] is number of option in the list of options.

	* /poll_delete - deletes the open poll after confirmation with /poll_delete confirm.`
