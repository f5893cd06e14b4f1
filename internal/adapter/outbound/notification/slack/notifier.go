package slack

import (
	"context"
	"fmt"

	slackapi "github.com/slack-go/slack"

	"github.com/kubedeck/kubedeck/internal/domain/port/outbound"
)

// Config holds Slack notifier configuration.
type Config struct {
	BotToken string
	Channel  string
}

// Notifier posts security-audit notices to a Slack channel.
type Notifier struct {
	client *slackapi.Client
	config Config
}

// NewNotifier creates a Slack Notifier.
func NewNotifier(cfg Config) *Notifier {
	return &Notifier{
		client: slackapi.New(cfg.BotToken),
		config: cfg,
	}
}

var _ outbound.Notifier = (*Notifier)(nil)

// NotifyDestructiveCommand posts an attachment-formatted notice for an audited
// destructive command.
func (n *Notifier) NotifyDestructiveCommand(ctx context.Context, notice outbound.DestructiveCommandNotice) error {
	attachment := slackapi.Attachment{
		Color: "danger",
		Title: "Destructive command executed",
		Fields: []slackapi.AttachmentField{
			{Title: "Command", Value: "`" + notice.Command + "`"},
			{Title: "Remote", Value: notice.Remote, Short: true},
			{Title: "Time", Value: notice.When.Format("2006-01-02 15:04:05 UTC"), Short: true},
		},
	}

	_, _, err := n.client.PostMessageContext(ctx, n.config.Channel,
		slackapi.MsgOptionAttachments(attachment),
		slackapi.MsgOptionText("Security audit: destructive kubectl command", false),
	)
	if err != nil {
		return fmt.Errorf("slack NotifyDestructiveCommand: %w", err)
	}
	return nil
}
