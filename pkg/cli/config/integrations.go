package config

import (
	"log/slog"

	"github.com/Sinfosecurity/GRC-Sinfosecurity--sub006/pkg/domain/interfaces"
	"github.com/Sinfosecurity/GRC-Sinfosecurity--sub006/pkg/service/jira"
	"github.com/Sinfosecurity/GRC-Sinfosecurity--sub006/pkg/service/servicenow"
	"github.com/Sinfosecurity/GRC-Sinfosecurity--sub006/pkg/service/siem"
	"github.com/m-mizutani/goerr/v2"
	"github.com/urfave/cli/v3"
)

// Integrations holds the ticketing and SIEM adapters. Adapters left
// unconfigured run in dry-run mode and only log their payload.
type Integrations struct {
	jira       jira.Config
	servicenow servicenow.Config
	siem       siem.Config
}

func (x *Integrations) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "jira-base-url",
			Usage:       "Jira base URL, e.g. https://example.atlassian.net",
			Category:    "Jira",
			Sources:     cli.EnvVars("GRC_JIRA_BASE_URL"),
			Destination: &x.jira.BaseURL,
		},
		&cli.StringFlag{
			Name:        "jira-username",
			Usage:       "Jira account e-mail",
			Category:    "Jira",
			Sources:     cli.EnvVars("GRC_JIRA_USERNAME"),
			Destination: &x.jira.Username,
		},
		&cli.StringFlag{
			Name:        "jira-api-token",
			Usage:       "Jira API token",
			Category:    "Jira",
			Sources:     cli.EnvVars("GRC_JIRA_API_TOKEN"),
			Destination: &x.jira.APIToken,
		},
		&cli.StringFlag{
			Name:        "jira-project",
			Usage:       "Project key issues are created in",
			Category:    "Jira",
			Sources:     cli.EnvVars("GRC_JIRA_PROJECT"),
			Destination: &x.jira.ProjectKey,
		},
		&cli.StringFlag{
			Name:        "jira-issue-type",
			Usage:       "Issue type of created issues",
			Category:    "Jira",
			Value:       "Task",
			Sources:     cli.EnvVars("GRC_JIRA_ISSUE_TYPE"),
			Destination: &x.jira.IssueType,
		},
		&cli.StringFlag{
			Name:        "servicenow-instance-url",
			Usage:       "ServiceNow instance URL, e.g. https://example.service-now.com",
			Category:    "ServiceNow",
			Sources:     cli.EnvVars("GRC_SERVICENOW_INSTANCE_URL"),
			Destination: &x.servicenow.InstanceURL,
		},
		&cli.StringFlag{
			Name:        "servicenow-username",
			Usage:       "ServiceNow user",
			Category:    "ServiceNow",
			Sources:     cli.EnvVars("GRC_SERVICENOW_USERNAME"),
			Destination: &x.servicenow.Username,
		},
		&cli.StringFlag{
			Name:        "servicenow-password",
			Usage:       "ServiceNow password",
			Category:    "ServiceNow",
			Sources:     cli.EnvVars("GRC_SERVICENOW_PASSWORD"),
			Destination: &x.servicenow.Password,
		},
		&cli.StringFlag{
			Name:        "servicenow-table",
			Usage:       "Table records are created in",
			Category:    "ServiceNow",
			Value:       "incident",
			Sources:     cli.EnvVars("GRC_SERVICENOW_TABLE"),
			Destination: &x.servicenow.Table,
		},
		&cli.StringFlag{
			Name:        "siem-endpoint",
			Usage:       "HTTP event collector endpoint of the SIEM",
			Category:    "SIEM",
			Sources:     cli.EnvVars("GRC_SIEM_ENDPOINT"),
			Destination: &x.siem.Endpoint,
		},
		&cli.StringFlag{
			Name:        "siem-api-key",
			Usage:       "SIEM collector API key",
			Category:    "SIEM",
			Sources:     cli.EnvVars("GRC_SIEM_API_KEY"),
			Destination: &x.siem.APIKey,
		},
		&cli.StringFlag{
			Name:        "siem-source",
			Usage:       "Source name attached to forwarded events",
			Category:    "SIEM",
			Value:       "grc",
			Sources:     cli.EnvVars("GRC_SIEM_SOURCE"),
			Destination: &x.siem.Source,
		},
	}
}

func (x Integrations) LogValue() slog.Value {
	return slog.GroupValue(
		slog.String("jira_base_url", x.jira.BaseURL),
		slog.String("jira_project", x.jira.ProjectKey),
		slog.Int("jira_api_token.len", len(x.jira.APIToken)),
		slog.String("servicenow_instance_url", x.servicenow.InstanceURL),
		slog.Int("servicenow_password.len", len(x.servicenow.Password)),
		slog.String("siem_endpoint", x.siem.Endpoint),
		slog.Int("siem_api_key.len", len(x.siem.APIKey)),
	)
}

// Notifiers builds the Jira, ServiceNow and SIEM adapters.
func (x *Integrations) Notifiers() ([]interfaces.Notifier, error) {
	jiraNotifier, err := jira.New(x.jira)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to create Jira notifier")
	}

	return []interfaces.Notifier{
		jiraNotifier,
		servicenow.New(x.servicenow),
		siem.New(x.siem),
	}, nil
}
