package servicenow

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/Sinfosecurity/GRC-Sinfosecurity--sub006/pkg/domain/interfaces"
	"github.com/Sinfosecurity/GRC-Sinfosecurity--sub006/pkg/domain/model"
	"github.com/Sinfosecurity/GRC-Sinfosecurity--sub006/pkg/domain/types"
	"github.com/Sinfosecurity/GRC-Sinfosecurity--sub006/pkg/utils/logging"
	"github.com/Sinfosecurity/GRC-Sinfosecurity--sub006/pkg/utils/safe"
	"github.com/m-mizutani/goerr/v2"
)

const defaultTable = "incident"

type Config struct {
	InstanceURL string
	Username    string
	Password    string
	Table       string
}

// Notifier creates a record in a ServiceNow table through the Table API.
type Notifier struct {
	cfg        Config
	httpClient *http.Client
}

var _ interfaces.Notifier = &Notifier{}

func New(cfg Config) *Notifier {
	if cfg.Table == "" {
		cfg.Table = defaultTable
	}
	cfg.InstanceURL = strings.TrimRight(cfg.InstanceURL, "/")
	return &Notifier{
		cfg:        cfg,
		httpClient: &http.Client{Timeout: 10 * time.Second},
	}
}

func (n *Notifier) Name() string { return "servicenow" }

func (n *Notifier) Configured() bool { return n.cfg.InstanceURL != "" }

// Record is the Table API payload.
type Record struct {
	ShortDescription string `json:"short_description"`
	Description      string `json:"description"`
	Urgency          string `json:"urgency"`
	Impact           string `json:"impact"`
	Category         string `json:"category"`
	CorrelationID    string `json:"correlation_id,omitempty"`
}

// BuildRecord maps a notification to a table record. Urgency and impact use
// the ServiceNow 1 (high) to 3 (low) scale.
func BuildRecord(msg *model.Notification) *Record {
	level := "3"
	switch msg.Severity {
	case types.SeverityCritical, types.SeverityHigh:
		level = "1"
	case types.SeverityMedium:
		level = "2"
	}

	rec := &Record{
		ShortDescription: msg.Title,
		Description:      msg.Message,
		Urgency:          level,
		Impact:           level,
		Category:         "grc",
	}
	if msg.ResourceID != "" {
		rec.CorrelationID = string(msg.Kind) + ":" + msg.ResourceID
	}
	return rec
}

func (n *Notifier) Notify(ctx context.Context, msg *model.Notification) error {
	rec := BuildRecord(msg)
	if !n.Configured() {
		logging.From(ctx).Info("ServiceNow not configured, record not created",
			"table", n.cfg.Table, "short_description", rec.ShortDescription)
		return nil
	}

	body, err := json.Marshal(rec)
	if err != nil {
		return goerr.Wrap(err, "failed to marshal ServiceNow record")
	}

	endpoint := n.cfg.InstanceURL + "/api/now/table/" + n.cfg.Table
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return goerr.Wrap(err, "failed to create ServiceNow request", goerr.V("endpoint", endpoint))
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.SetBasicAuth(n.cfg.Username, n.cfg.Password)

	resp, err := n.httpClient.Do(req)
	if err != nil {
		return goerr.Wrap(err, "failed to send ServiceNow request", goerr.V("endpoint", endpoint))
	}
	defer safe.Close(ctx, resp.Body)

	if resp.StatusCode != http.StatusCreated && resp.StatusCode != http.StatusOK {
		respBody, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return goerr.New("ServiceNow returned an error",
			goerr.V("status", resp.StatusCode), goerr.V("body", string(respBody)))
	}
	return nil
}
