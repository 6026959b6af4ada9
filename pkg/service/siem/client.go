package siem

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/Sinfosecurity/GRC-Sinfosecurity--sub006/pkg/domain/interfaces"
	"github.com/Sinfosecurity/GRC-Sinfosecurity--sub006/pkg/domain/model"
	"github.com/Sinfosecurity/GRC-Sinfosecurity--sub006/pkg/utils/logging"
	"github.com/Sinfosecurity/GRC-Sinfosecurity--sub006/pkg/utils/safe"
	"github.com/m-mizutani/goerr/v2"
)

type Config struct {
	Endpoint string
	APIKey   string
	Source   string
}

// Notifier forwards events to an HTTP event collector.
type Notifier struct {
	cfg        Config
	httpClient *http.Client
}

var _ interfaces.Notifier = &Notifier{}

func New(cfg Config) *Notifier {
	if cfg.Source == "" {
		cfg.Source = "grc"
	}
	return &Notifier{
		cfg:        cfg,
		httpClient: &http.Client{Timeout: 10 * time.Second},
	}
}

func (n *Notifier) Name() string { return "siem" }

func (n *Notifier) Configured() bool { return n.cfg.Endpoint != "" }

// Event is the collector payload.
type Event struct {
	Time       int64          `json:"time"`
	Source     string         `json:"source"`
	SourceType string         `json:"sourcetype"`
	Event      map[string]any `json:"event"`
}

func BuildEvent(source string, msg *model.Notification) *Event {
	ts := msg.Timestamp
	if ts.IsZero() {
		ts = time.Now()
	}
	return &Event{
		Time:       ts.Unix(),
		Source:     source,
		SourceType: "grc:notification",
		Event: map[string]any{
			"title":       msg.Title,
			"message":     msg.Message,
			"severity":    msg.Severity,
			"kind":        msg.Kind,
			"resource_id": msg.ResourceID,
		},
	}
}

func (n *Notifier) Notify(ctx context.Context, msg *model.Notification) error {
	event := BuildEvent(n.cfg.Source, msg)
	if !n.Configured() {
		logging.From(ctx).Info("SIEM not configured, event not sent",
			"sourcetype", event.SourceType, "title", msg.Title)
		return nil
	}

	body, err := json.Marshal(event)
	if err != nil {
		return goerr.Wrap(err, "failed to marshal SIEM event")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, n.cfg.Endpoint, bytes.NewReader(body))
	if err != nil {
		return goerr.Wrap(err, "failed to create SIEM request", goerr.V("endpoint", n.cfg.Endpoint))
	}
	req.Header.Set("Content-Type", "application/json")
	if n.cfg.APIKey != "" {
		req.Header.Set("Authorization", "Bearer "+n.cfg.APIKey)
	}

	resp, err := n.httpClient.Do(req)
	if err != nil {
		return goerr.Wrap(err, "failed to send SIEM event", goerr.V("endpoint", n.cfg.Endpoint))
	}
	defer safe.Close(ctx, resp.Body)

	if resp.StatusCode/100 != 2 {
		return goerr.New("SIEM collector returned an error", goerr.V("status", resp.StatusCode))
	}
	return nil
}
