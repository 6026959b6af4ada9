package slack

import (
	"context"

	"github.com/slack-go/slack"
)

// Service provides interface to the Slack Web API through a bot token
type Service interface {
	// PostMessage posts a Block Kit message to a channel and returns the message timestamp.
	// The text parameter is used as a fallback for notifications.
	PostMessage(ctx context.Context, channelID string, blocks []slack.Block, text string) (string, error)

	// UpdateMessage updates an existing Block Kit message identified by channel and timestamp.
	UpdateMessage(ctx context.Context, channelID string, timestamp string, blocks []slack.Block, text string) error
}

// ActionIDAcknowledgeAlert is the action ID of the button on compliance
// alert messages.
const ActionIDAcknowledgeAlert = "grc_ack_alert"

const alertActionBlockID = "grc_alert_buttons"
