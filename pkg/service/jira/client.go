package jira

import (
	"context"
	"fmt"
	"net/http"

	"github.com/Sinfosecurity/GRC-Sinfosecurity--sub006/pkg/domain/interfaces"
	"github.com/Sinfosecurity/GRC-Sinfosecurity--sub006/pkg/domain/model"
	"github.com/Sinfosecurity/GRC-Sinfosecurity--sub006/pkg/domain/types"
	"github.com/Sinfosecurity/GRC-Sinfosecurity--sub006/pkg/utils/logging"
	gojira "github.com/andygrunwald/go-jira"
	"github.com/m-mizutani/goerr/v2"
)

const defaultIssueType = "Task"

// Config holds the connection settings of a Jira Cloud or Server instance.
type Config struct {
	BaseURL    string
	Username   string
	APIToken   string
	ProjectKey string
	IssueType  string
}

// Notifier opens a Jira issue for every notification.
type Notifier struct {
	cfg    Config
	client *gojira.Client
}

var _ interfaces.Notifier = &Notifier{}

// New returns a notifier. An empty BaseURL or ProjectKey yields a dry-run
// notifier that only logs the issue it would create.
func New(cfg Config) (*Notifier, error) {
	if cfg.IssueType == "" {
		cfg.IssueType = defaultIssueType
	}
	n := &Notifier{cfg: cfg}
	if cfg.BaseURL == "" || cfg.ProjectKey == "" {
		return n, nil
	}

	tp := gojira.BasicAuthTransport{
		Username: cfg.Username,
		Password: cfg.APIToken,
	}
	client, err := gojira.NewClient(tp.Client(), cfg.BaseURL)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to create Jira client", goerr.V("base_url", cfg.BaseURL))
	}
	n.client = client
	return n, nil
}

func (n *Notifier) Name() string { return "jira" }

func (n *Notifier) Configured() bool { return n.client != nil }

// BuildIssue maps a notification to a Jira issue.
func BuildIssue(cfg Config, msg *model.Notification) *gojira.Issue {
	description := msg.Message
	if msg.Kind != "" {
		description += fmt.Sprintf("\n\nResource: %s %s", msg.Kind, msg.ResourceID)
	}
	if msg.Link != "" {
		description += "\n" + msg.Link
	}

	labels := []string{"grc", "severity-" + string(msg.Severity)}
	if msg.Kind != "" {
		labels = append(labels, string(msg.Kind))
	}

	return &gojira.Issue{
		Fields: &gojira.IssueFields{
			Type:        gojira.IssueType{Name: cfg.IssueType},
			Project:     gojira.Project{Key: cfg.ProjectKey},
			Summary:     msg.Title,
			Description: description,
			Labels:      labels,
			Priority:    &gojira.Priority{Name: priorityName(msg.Severity)},
		},
	}
}

func priorityName(s types.Severity) string {
	switch s {
	case types.SeverityCritical:
		return "Highest"
	case types.SeverityHigh:
		return "High"
	case types.SeverityMedium:
		return "Medium"
	default:
		return "Low"
	}
}

func (n *Notifier) Notify(ctx context.Context, msg *model.Notification) error {
	issue := BuildIssue(n.cfg, msg)
	if n.client == nil {
		logging.From(ctx).Info("Jira not configured, issue not created",
			"summary", issue.Fields.Summary, "labels", issue.Fields.Labels)
		return nil
	}

	created, resp, err := n.client.Issue.CreateWithContext(ctx, issue)
	if err != nil {
		status := 0
		if resp != nil {
			status = resp.StatusCode
		}
		return goerr.Wrap(err, "failed to create Jira issue",
			goerr.V("project", n.cfg.ProjectKey), goerr.V("status", status))
	}
	if resp != nil && resp.StatusCode != http.StatusCreated {
		return goerr.New("unexpected Jira response", goerr.V("status", resp.StatusCode))
	}

	logging.From(ctx).Info("Jira issue created", "key", created.Key)
	return nil
}
