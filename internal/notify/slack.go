// Package notify posts flagging summaries to Slack via an incoming webhook.
package notify

import (
	"context"
	"fmt"
	"strings"

	"github.com/slack-go/slack"

	"github.com/ekolabs/qc-triage/internal/common"
	"github.com/ekolabs/qc-triage/internal/flagger"
	"github.com/ekolabs/qc-triage/internal/model"
)

// SlackNotifier posts messages to a Slack incoming webhook.
type SlackNotifier struct {
	webhookURL string
}

// NewSlackNotifier creates a notifier for the given webhook URL.
func NewSlackNotifier(webhookURL string) *SlackNotifier {
	return &SlackNotifier{webhookURL: webhookURL}
}

// PostFlagged sends the flagged-experience summary for a date. The webhook
// call is retried with backoff; the message content is deterministic for a
// given selection.
func (n *SlackNotifier) PostFlagged(ctx context.Context, date string, flagged map[string][]model.FlaggedExperience) error {
	if n.webhookURL == "" {
		return fmt.Errorf("%w: slack webhook url", common.ErrMissingConfig)
	}

	msg := &slack.WebhookMessage{Text: formatFlaggedMessage(date, flagged)}

	return common.WithRetry(ctx, func() error {
		if err := slack.PostWebhookContext(ctx, n.webhookURL, msg); err != nil {
			return fmt.Errorf("failed to post slack webhook: %w", err)
		}
		return nil
	}, common.RetryOptions{MaxAttempts: 3})
}

// formatFlaggedMessage builds the webhook text: a header plus one section
// per issue with the flagged instances and their backstage links.
func formatFlaggedMessage(date string, flagged map[string][]model.FlaggedExperience) string {
	groups := flagger.Ordered(flagged)

	var b strings.Builder
	fmt.Fprintf(&b, ":triangular_flag_on_post: *QC review flags for %s* (%d total)\n",
		date, flagger.Total(flagged))

	if len(groups) == 0 {
		b.WriteString("Nothing flagged today.")
		return b.String()
	}

	for _, g := range groups {
		fmt.Fprintf(&b, "\n*%s*\n", g.Issue)
		for _, exp := range g.Experiences {
			fmt.Fprintf(&b, "• `%s` %s [%s]", exp.InstanceID, exp.TicketName, exp.TicketStatus)
			if exp.BackstageLink != "" {
				fmt.Fprintf(&b, " — <%s|backstage>", exp.BackstageLink)
			}
			b.WriteString("\n")
		}
	}

	return b.String()
}
