package slack_test

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync"
	"testing"

	"github.com/Sinfosecurity/GRC-Sinfosecurity--sub006/pkg/domain/model"
	"github.com/Sinfosecurity/GRC-Sinfosecurity--sub006/pkg/domain/types"
	"github.com/Sinfosecurity/GRC-Sinfosecurity--sub006/pkg/service/slack"
	"github.com/m-mizutani/gt"
	goslack "github.com/slack-go/slack"
)

func TestNew(t *testing.T) {
	t.Run("returns error when token is empty", func(t *testing.T) {
		_, err := slack.New("")
		gt.Value(t, err).NotNil()
	})

	t.Run("creates service when token is provided", func(t *testing.T) {
		svc, err := slack.New("test-token")
		gt.NoError(t, err).Required()
		gt.Value(t, svc).NotNil()
	})
}

func TestTruncateToMaxBytes(t *testing.T) {
	gt.Value(t, slack.TruncateToMaxBytes("hello", 10)).Equal("hello")
	gt.Value(t, slack.TruncateToMaxBytes("hello", 3)).Equal("hel")
	// "é" is two bytes and must not be split
	gt.Value(t, slack.TruncateToMaxBytes("aé", 2)).Equal("a")
}

func TestNotifierWebhook(t *testing.T) {
	var (
		mu   sync.Mutex
		body map[string]any
	)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		raw, _ := io.ReadAll(r.Body)
		mu.Lock()
		defer mu.Unlock()
		_ = json.Unmarshal(raw, &body)
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	n := slack.NewNotifier(slack.WithWebhookURL(srv.URL))
	gt.Bool(t, n.Configured()).True()
	gt.Value(t, n.Name()).Equal("slack")

	err := n.Notify(context.Background(), &model.Notification{
		Title:    "Critical incident",
		Message:  "Ransomware detected",
		Severity: types.SeverityCritical,
	})
	gt.NoError(t, err).Required()

	mu.Lock()
	defer mu.Unlock()
	gt.Value(t, body["text"]).Equal("Critical incident")
	gt.Map(t, body).HasKey("blocks")
}

func TestNotifierWebhookFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	n := slack.NewNotifier(slack.WithWebhookURL(srv.URL))
	err := n.Notify(context.Background(), &model.Notification{Title: "x", Message: "y", Severity: types.SeverityLow})
	gt.Value(t, err).NotNil()
}

func TestNotifierDryRun(t *testing.T) {
	n := slack.NewNotifier()
	gt.Bool(t, n.Configured()).False()
	gt.NoError(t, n.Notify(context.Background(), &model.Notification{Title: "x", Message: "y", Severity: types.SeverityLow}))
}

func TestNotifierPostAlertWithBot(t *testing.T) {
	var (
		mu     sync.Mutex
		posted url.Values
	)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gt.Bool(t, strings.HasSuffix(r.URL.Path, "chat.postMessage")).True()
		gt.NoError(t, r.ParseForm())
		mu.Lock()
		posted = r.PostForm
		mu.Unlock()
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"ok":true,"channel":"C123","ts":"1700000000.000100"}`))
	}))
	defer srv.Close()

	svc, err := slack.New("xoxb-test", slack.WithAPIURL(srv.URL+"/"))
	gt.NoError(t, err).Required()
	n := slack.NewNotifier(slack.WithService(svc, "C123"))

	alert := &model.ComplianceAlert{
		Meta:     model.Meta{ID: "alert-1"},
		Severity: types.SeverityHigh,
		Message:  "High impact regulatory change",
	}
	gt.NoError(t, n.PostAlert(context.Background(), alert, &model.RegulatoryChange{Regulator: "EBA"})).Required()

	mu.Lock()
	defer mu.Unlock()
	gt.Value(t, posted.Get("channel")).Equal("C123")
	gt.String(t, posted.Get("blocks")).Contains(slack.ActionIDAcknowledgeAlert)
	gt.String(t, posted.Get("blocks")).Contains("alert-1")
}

func TestAlertBlocks(t *testing.T) {
	alert := &model.ComplianceAlert{Meta: model.Meta{ID: "a1"}, Severity: types.SeverityCritical, Message: "m"}

	blocks := slack.AlertBlocks(alert, nil)
	gt.Array(t, blocks).Length(3)
	action, ok := blocks[2].(*goslack.ActionBlock)
	gt.Bool(t, ok).True()
	gt.Array(t, action.Elements.ElementSet).Length(1)

	acked := slack.AcknowledgedAlertBlocks(alert, nil)
	gt.Array(t, acked).Length(3)
	_, ok = acked[2].(*goslack.ContextBlock)
	gt.Bool(t, ok).True()
}
