package jira_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/Sinfosecurity/GRC-Sinfosecurity--sub006/pkg/domain/model"
	"github.com/Sinfosecurity/GRC-Sinfosecurity--sub006/pkg/domain/types"
	"github.com/Sinfosecurity/GRC-Sinfosecurity--sub006/pkg/service/jira"
	"github.com/m-mizutani/gt"
)

func TestBuildIssue(t *testing.T) {
	issue := jira.BuildIssue(jira.Config{ProjectKey: "GRC", IssueType: "Bug"}, &model.Notification{
		Title:      "Phishing incident",
		Message:    "Credentials leaked",
		Severity:   types.SeverityCritical,
		Kind:       types.KindIncident,
		ResourceID: "inc-1",
	})

	gt.Value(t, issue.Fields.Project.Key).Equal("GRC")
	gt.Value(t, issue.Fields.Type.Name).Equal("Bug")
	gt.Value(t, issue.Fields.Summary).Equal("Phishing incident")
	gt.Value(t, issue.Fields.Priority.Name).Equal("Highest")
	gt.String(t, issue.Fields.Description).Contains("inc-1")
	gt.Array(t, issue.Fields.Labels).Has("severity-critical")
}

func TestNotifierDryRun(t *testing.T) {
	n, err := jira.New(jira.Config{})
	gt.NoError(t, err).Required()
	gt.Bool(t, n.Configured()).False()
	gt.NoError(t, n.Notify(context.Background(), &model.Notification{Title: "t", Message: "m", Severity: types.SeverityLow}))
}

func TestNotifierCreatesIssue(t *testing.T) {
	var (
		mu      sync.Mutex
		payload map[string]any
		user    string
	)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		mu.Lock()
		defer mu.Unlock()
		user, _, _ = r.BasicAuth()
		_ = json.NewDecoder(r.Body).Decode(&payload)
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(`{"id":"10000","key":"GRC-1","self":"x"}`))
	}))
	defer srv.Close()

	n, err := jira.New(jira.Config{
		BaseURL:    srv.URL,
		Username:   "bot@example.com",
		APIToken:   "token",
		ProjectKey: "GRC",
	})
	gt.NoError(t, err).Required()
	gt.Bool(t, n.Configured()).True()

	err = n.Notify(context.Background(), &model.Notification{Title: "Audit finding", Message: "m", Severity: types.SeverityHigh})
	gt.NoError(t, err).Required()

	mu.Lock()
	defer mu.Unlock()
	gt.Value(t, user).Equal("bot@example.com")
	fields, ok := payload["fields"].(map[string]any)
	gt.Bool(t, ok).True()
	gt.Value(t, fields["summary"]).Equal("Audit finding")
}
