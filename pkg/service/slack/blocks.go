package slack

import (
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/Sinfosecurity/GRC-Sinfosecurity--sub006/pkg/domain/model"
	"github.com/Sinfosecurity/GRC-Sinfosecurity--sub006/pkg/domain/types"
	goslack "github.com/slack-go/slack"
)

// Slack rejects section text longer than 3000 characters.
const maxSectionBytes = 3000

// truncateToMaxBytes cuts s to at most n bytes without splitting a rune.
func truncateToMaxBytes(s string, n int) string {
	if len(s) <= n {
		return s
	}
	cut := n
	for cut > 0 && !utf8.RuneStart(s[cut]) {
		cut--
	}
	return s[:cut]
}

func severityEmoji(s types.Severity) string {
	switch s {
	case types.SeverityCritical:
		return ":red_circle:"
	case types.SeverityHigh:
		return ":large_orange_circle:"
	case types.SeverityMedium:
		return ":large_yellow_circle:"
	default:
		return ":large_green_circle:"
	}
}

// NotificationBlocks renders a generic notification.
func NotificationBlocks(n *model.Notification) []goslack.Block {
	blocks := []goslack.Block{
		goslack.NewHeaderBlock(
			goslack.NewTextBlockObject(goslack.PlainTextType, severityEmoji(n.Severity)+" "+n.Title, true, false),
		),
		goslack.NewSectionBlock(
			goslack.NewTextBlockObject(goslack.MarkdownType, truncateToMaxBytes(n.Message, maxSectionBytes), false, false),
			nil, nil,
		),
	}

	fields := []string{"*Severity:* " + string(n.Severity)}
	if n.Kind != "" {
		fields = append(fields, fmt.Sprintf("*%s:* `%s`", n.Kind, n.ResourceID))
	}
	if n.Link != "" {
		fields = append(fields, "<"+n.Link+"|Open in GRC>")
	}
	blocks = append(blocks, goslack.NewContextBlock("",
		goslack.NewTextBlockObject(goslack.MarkdownType, strings.Join(fields, "  |  "), false, false),
	))

	return blocks
}

// AlertBlocks renders a compliance alert with an Acknowledge button whose
// value is the alert ID.
func AlertBlocks(alert *model.ComplianceAlert, change *model.RegulatoryChange) []goslack.Block {
	blocks := alertBodyBlocks(alert, change)

	btn := goslack.NewButtonBlockElement(ActionIDAcknowledgeAlert, alert.ID,
		goslack.NewTextBlockObject(goslack.PlainTextType, "Acknowledge", true, false),
	)
	btn.Style = goslack.StylePrimary
	blocks = append(blocks, goslack.NewActionBlock(alertActionBlockID, btn))

	return blocks
}

// AcknowledgedAlertBlocks replaces the button once the alert is acknowledged.
func AcknowledgedAlertBlocks(alert *model.ComplianceAlert, change *model.RegulatoryChange) []goslack.Block {
	blocks := alertBodyBlocks(alert, change)

	at := ""
	if alert.AcknowledgedAt != nil {
		at = " at " + alert.AcknowledgedAt.Format(time.RFC3339)
	}
	blocks = append(blocks, goslack.NewContextBlock("",
		goslack.NewTextBlockObject(goslack.MarkdownType,
			":white_check_mark: Acknowledged by "+alert.AcknowledgedBy+at, false, false),
	))
	return blocks
}

func alertBodyBlocks(alert *model.ComplianceAlert, change *model.RegulatoryChange) []goslack.Block {
	blocks := []goslack.Block{
		goslack.NewHeaderBlock(
			goslack.NewTextBlockObject(goslack.PlainTextType, severityEmoji(alert.Severity)+" Compliance alert", true, false),
		),
		goslack.NewSectionBlock(
			goslack.NewTextBlockObject(goslack.MarkdownType, truncateToMaxBytes(alert.Message, maxSectionBytes), false, false),
			nil, nil,
		),
	}

	if change != nil {
		contextText := fmt.Sprintf("*Regulator:* %s  |  *Impact:* %s  |  *Status:* %s", change.Regulator, change.Impact, change.Status)
		if change.EffectiveDate != nil {
			contextText += "  |  *Effective:* " + change.EffectiveDate.Format(time.DateOnly)
		}
		blocks = append(blocks, goslack.NewContextBlock("",
			goslack.NewTextBlockObject(goslack.MarkdownType, contextText, false, false),
		))
	}
	return blocks
}
