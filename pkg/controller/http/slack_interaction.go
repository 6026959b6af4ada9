package http

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/Sinfosecurity/GRC-Sinfosecurity--sub006/pkg/domain/model/auth"
	"github.com/Sinfosecurity/GRC-Sinfosecurity--sub006/pkg/domain/types"
	"github.com/Sinfosecurity/GRC-Sinfosecurity--sub006/pkg/service/slack"
	"github.com/Sinfosecurity/GRC-Sinfosecurity--sub006/pkg/usecase"
	"github.com/Sinfosecurity/GRC-Sinfosecurity--sub006/pkg/utils/errutil"
	"github.com/Sinfosecurity/GRC-Sinfosecurity--sub006/pkg/utils/logging"
	"github.com/m-mizutani/goerr/v2"
	goslack "github.com/slack-go/slack"
)

// SlackInteractionHandler handles Slack interactive component payloads.
// The only action served is the Acknowledge button of compliance alerts.
type SlackInteractionHandler struct {
	regulatoryUC *usecase.RegulatoryUseCase
	slackService slack.Service
}

// NewSlackInteractionHandler creates a new Slack interaction handler. When
// slackService is nil the original message is left unchanged.
func NewSlackInteractionHandler(regulatoryUC *usecase.RegulatoryUseCase, slackService slack.Service) *SlackInteractionHandler {
	return &SlackInteractionHandler{
		regulatoryUC: regulatoryUC,
		slackService: slackService,
	}
}

// slackActor is the identity recorded for actions taken from Slack.
func slackActor(user goslack.User) *auth.Token {
	name := user.Name
	if name == "" {
		name = user.ID
	}
	return &auth.Token{
		Sub:   "slack:" + user.ID,
		Email: "slack:" + name,
		Name:  name,
		Role:  types.RoleAnalyst,
	}
}

// ServeHTTP handles Slack interaction webhook requests
func (h *SlackInteractionHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	// Slack sends interaction payloads as application/x-www-form-urlencoded
	// with a "payload" field containing JSON
	payload := r.FormValue("payload")
	if payload == "" {
		errutil.HandleHTTP(ctx, w, goerr.New("missing payload field in interaction request"), http.StatusBadRequest)
		return
	}

	var callback goslack.InteractionCallback
	if err := json.Unmarshal([]byte(payload), &callback); err != nil {
		errutil.HandleHTTP(ctx, w, goerr.Wrap(err, "failed to parse interaction payload"), http.StatusBadRequest)
		return
	}

	if callback.Type != goslack.InteractionTypeBlockActions {
		w.WriteHeader(http.StatusOK)
		return
	}

	ctx = auth.ContextWithToken(ctx, slackActor(callback.User))
	for _, action := range callback.ActionCallback.BlockActions {
		if action.ActionID != slack.ActionIDAcknowledgeAlert {
			continue
		}
		if err := h.acknowledge(ctx, action.Value, callback); err != nil {
			logging.From(ctx).Error("failed to handle Slack interaction",
				"error", err,
				"action_id", action.ActionID,
				"alert_id", action.Value,
				"user_id", callback.User.ID,
			)
		}
	}

	w.WriteHeader(http.StatusOK)
}

func (h *SlackInteractionHandler) acknowledge(ctx context.Context, alertID string, callback goslack.InteractionCallback) error {
	alert, err := h.regulatoryUC.AcknowledgeAlert(ctx, alertID)
	if err != nil {
		return err
	}
	if h.slackService == nil || callback.Channel.ID == "" || callback.Message.Timestamp == "" {
		return nil
	}

	change, err := h.regulatoryUC.GetChange(ctx, alert.ChangeID)
	if err != nil {
		// the alert is acknowledged already; render without change details
		logging.From(ctx).Warn("regulatory change of alert not found", "error", err, "change_id", alert.ChangeID)
		change = nil
	}

	blocks := slack.AcknowledgedAlertBlocks(alert, change)
	if err := h.slackService.UpdateMessage(ctx, callback.Channel.ID, callback.Message.Timestamp, blocks, alert.Message); err != nil {
		return goerr.Wrap(err, "failed to update alert message", goerr.V("alert_id", alert.ID))
	}
	return nil
}
