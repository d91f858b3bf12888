package notifier

import (
	"fmt"
	"strings"

	"pricewatcher/services/differ"
)

// Notifier delivers a composed change report to the notification channel
type Notifier interface {
	Send(message string) error
}

// Compose renders a diff into the message body: the new-products
// section first, then price changes, one line per entry. An empty diff
// still produces a sentence so the channel can tell a quiet run from a
// broken one.
func Compose(diff differ.Diff) string {
	var parts []string

	if len(diff.New) > 0 {
		parts = append(parts, "**🆕 New products**")
		for _, p := range diff.New {
			parts = append(parts, fmt.Sprintf("• %s – %s  <%s>", p.Title, p.Price, p.URL))
		}
	}

	if len(diff.Changed) > 0 {
		parts = append(parts, "**💲 Price changes**")
		for _, c := range diff.Changed {
			parts = append(parts, fmt.Sprintf("• %s: %s → **%s**  <%s>", c.Title, c.OldPrice, c.NewPrice, c.URL))
		}
	}

	msg := strings.TrimSpace(strings.Join(parts, "\n"))
	if msg == "" {
		return "Nothing changed, but the monitor ran."
	}
	return msg
}
