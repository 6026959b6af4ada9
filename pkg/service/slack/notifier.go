package slack

import (
	"context"
	"net/http"
	"time"

	"github.com/Sinfosecurity/GRC-Sinfosecurity--sub006/pkg/domain/interfaces"
	"github.com/Sinfosecurity/GRC-Sinfosecurity--sub006/pkg/domain/model"
	"github.com/Sinfosecurity/GRC-Sinfosecurity--sub006/pkg/utils/logging"
	"github.com/m-mizutani/goerr/v2"
	goslack "github.com/slack-go/slack"
)

// Notifier delivers notifications through an incoming webhook, or through
// the bot API when a bot token and channel are configured. Without either
// it only logs the payload.
type Notifier struct {
	webhookURL string
	channelID  string
	service    Service
	httpClient *http.Client
}

var _ interfaces.Notifier = &Notifier{}

type Option func(*Notifier)

func WithWebhookURL(url string) Option {
	return func(n *Notifier) {
		n.webhookURL = url
	}
}

// WithService enables bot delivery to channelID.
func WithService(svc Service, channelID string) Option {
	return func(n *Notifier) {
		n.service = svc
		n.channelID = channelID
	}
}

func WithHTTPClient(c *http.Client) Option {
	return func(n *Notifier) {
		n.httpClient = c
	}
}

func NewNotifier(opts ...Option) *Notifier {
	n := &Notifier{
		httpClient: &http.Client{Timeout: 10 * time.Second},
	}
	for _, opt := range opts {
		opt(n)
	}
	return n
}

func (n *Notifier) Name() string { return "slack" }

func (n *Notifier) Configured() bool {
	return n.webhookURL != "" || n.botEnabled()
}

func (n *Notifier) botEnabled() bool {
	return n.service != nil && n.channelID != ""
}

func (n *Notifier) Notify(ctx context.Context, msg *model.Notification) error {
	return n.send(ctx, NotificationBlocks(msg), msg.Title)
}

// PostAlert posts a compliance alert. Through the bot API the message
// carries an Acknowledge button; webhooks cannot receive interactions, so
// the button is omitted there.
func (n *Notifier) PostAlert(ctx context.Context, alert *model.ComplianceAlert, change *model.RegulatoryChange) error {
	if n.botEnabled() {
		if _, err := n.service.PostMessage(ctx, n.channelID, AlertBlocks(alert, change), alert.Message); err != nil {
			return goerr.Wrap(err, "failed to post compliance alert", goerr.V("alert_id", alert.ID))
		}
		return nil
	}
	return n.send(ctx, alertBodyBlocks(alert, change), alert.Message)
}

func (n *Notifier) send(ctx context.Context, blocks []goslack.Block, text string) error {
	switch {
	case n.webhookURL != "":
		msg := &goslack.WebhookMessage{
			Text:   text,
			Blocks: &goslack.Blocks{BlockSet: blocks},
		}
		if err := goslack.PostWebhookCustomHTTPContext(ctx, n.webhookURL, n.httpClient, msg); err != nil {
			return goerr.Wrap(err, "failed to post Slack webhook")
		}

	case n.botEnabled():
		if _, err := n.service.PostMessage(ctx, n.channelID, blocks, text); err != nil {
			return err
		}

	default:
		logging.From(ctx).Info("Slack not configured, notification not sent",
			"text", text, "blocks", len(blocks))
	}
	return nil
}
