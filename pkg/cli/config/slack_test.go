package config_test

import (
	"testing"

	"github.com/Sinfosecurity/GRC-Sinfosecurity--sub006/pkg/cli/config"
	"github.com/m-mizutani/gt"
)

func TestSlack(t *testing.T) {
	tests := []struct {
		name            string
		cfg             *config.Slack
		wantBot         bool
		wantInteraction bool
		wantService     bool
		wantConfigured  bool
	}{
		{
			name: "nothing configured",
			cfg:  config.NewSlackForTest("", "", "", ""),
		},
		{
			name:           "webhook only",
			cfg:            config.NewSlackForTest("https://hooks.slack.com/services/T/B/X", "", "", ""),
			wantConfigured: true,
		},
		{
			name:        "bot token without channel",
			cfg:         config.NewSlackForTest("", "xoxb-test", "", "secret"),
			wantService: true,
		},
		{
			name:           "bot without signing secret",
			cfg:            config.NewSlackForTest("", "xoxb-test", "C123", ""),
			wantBot:        true,
			wantService:    true,
			wantConfigured: true,
		},
		{
			name:            "bot with signing secret",
			cfg:             config.NewSlackForTest("", "xoxb-test", "C123", "secret"),
			wantBot:         true,
			wantInteraction: true,
			wantService:     true,
			wantConfigured:  true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gt.Value(t, tt.cfg.IsBotConfigured()).Equal(tt.wantBot)
			gt.Value(t, tt.cfg.IsInteractionConfigured()).Equal(tt.wantInteraction)

			svc, err := tt.cfg.Service()
			gt.NoError(t, err).Required()
			gt.Value(t, svc != nil).Equal(tt.wantService)

			notifier := tt.cfg.Notifier(svc)
			gt.Value(t, notifier.Name()).Equal("slack")
			gt.Value(t, notifier.Configured()).Equal(tt.wantConfigured)
		})
	}
}
