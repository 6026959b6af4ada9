package config

import (
	"log/slog"

	"github.com/Sinfosecurity/GRC-Sinfosecurity--sub006/pkg/service/slack"
	"github.com/m-mizutani/goerr/v2"
	"github.com/urfave/cli/v3"
)

type Slack struct {
	webhookURL    string
	botToken      string
	channelID     string
	signingSecret string
}

func (x *Slack) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "slack-webhook-url",
			Usage:       "Slack incoming webhook URL for notifications",
			Category:    "Slack",
			Destination: &x.webhookURL,
			Sources:     cli.EnvVars("GRC_SLACK_WEBHOOK_URL"),
		},
		&cli.StringFlag{
			Name:        "slack-bot-token",
			Usage:       "Slack Bot User OAuth Token (posts alerts with an Acknowledge button)",
			Category:    "Slack",
			Destination: &x.botToken,
			Sources:     cli.EnvVars("GRC_SLACK_BOT_TOKEN"),
		},
		&cli.StringFlag{
			Name:        "slack-channel",
			Usage:       "Slack channel ID the bot posts to",
			Category:    "Slack",
			Destination: &x.channelID,
			Sources:     cli.EnvVars("GRC_SLACK_CHANNEL"),
		},
		&cli.StringFlag{
			Name:        "slack-signing-secret",
			Usage:       "Slack Signing Secret (for interaction verification)",
			Category:    "Slack",
			Destination: &x.signingSecret,
			Sources:     cli.EnvVars("GRC_SLACK_SIGNING_SECRET"),
		},
	}
}

func (x Slack) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Bool("webhook_url.set", x.webhookURL != ""),
		slog.Int("bot_token.len", len(x.botToken)),
		slog.String("channel", x.channelID),
		slog.Int("signing_secret.len", len(x.signingSecret)),
	)
}

// BotToken returns the Slack bot token
func (x *Slack) BotToken() string {
	return x.botToken
}

// SigningSecret returns the Slack signing secret
func (x *Slack) SigningSecret() string {
	return x.signingSecret
}

// IsBotConfigured reports whether messages can be posted through the bot API.
func (x *Slack) IsBotConfigured() bool {
	return x.botToken != "" && x.channelID != ""
}

// IsInteractionConfigured reports whether the interaction endpoint can be
// served: interactions need the bot to update messages and the signing
// secret to verify requests.
func (x *Slack) IsInteractionConfigured() bool {
	return x.IsBotConfigured() && x.signingSecret != ""
}

// Service creates the bot API client, or returns nil when no bot token is set.
func (x *Slack) Service() (slack.Service, error) {
	if x.botToken == "" {
		return nil, nil
	}
	svc, err := slack.New(x.botToken)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to create Slack service")
	}
	return svc, nil
}

// Notifier builds the Slack notifier. An unconfigured notifier logs the
// message instead of sending it.
func (x *Slack) Notifier(svc slack.Service) *slack.Notifier {
	var opts []slack.Option
	if x.webhookURL != "" {
		opts = append(opts, slack.WithWebhookURL(x.webhookURL))
	}
	if svc != nil && x.channelID != "" {
		opts = append(opts, slack.WithService(svc, x.channelID))
	}
	return slack.NewNotifier(opts...)
}
