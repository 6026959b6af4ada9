package types_test

import (
	"testing"

	"github.com/Sinfosecurity/GRC-Sinfosecurity--sub006/pkg/domain/types"
	"github.com/m-mizutani/gt"
)

func TestSeverityFromRiskScore(t *testing.T) {
	tests := []struct {
		score int
		want  types.Severity
	}{
		{1, types.SeverityLow},
		{5, types.SeverityLow},
		{6, types.SeverityMedium},
		{11, types.SeverityMedium},
		{12, types.SeverityHigh},
		{19, types.SeverityHigh},
		{20, types.SeverityCritical},
		{25, types.SeverityCritical},
	}

	for _, tt := range tests {
		gt.Value(t, types.SeverityFromRiskScore(tt.score)).Equal(tt.want)
	}
}

func TestSeverityFromPercent(t *testing.T) {
	gt.Value(t, types.SeverityFromPercent(0)).Equal(types.SeverityLow)
	gt.Value(t, types.SeverityFromPercent(24)).Equal(types.SeverityLow)
	gt.Value(t, types.SeverityFromPercent(25)).Equal(types.SeverityMedium)
	gt.Value(t, types.SeverityFromPercent(50)).Equal(types.SeverityHigh)
	gt.Value(t, types.SeverityFromPercent(75)).Equal(types.SeverityCritical)
	gt.Value(t, types.SeverityFromPercent(100)).Equal(types.SeverityCritical)
}

func TestSeverity_Rank(t *testing.T) {
	gt.Bool(t, types.SeverityCritical.AtLeast(types.SeverityHigh)).True()
	gt.Bool(t, types.SeverityHigh.AtLeast(types.SeverityHigh)).True()
	gt.Bool(t, types.SeverityMedium.AtLeast(types.SeverityHigh)).False()
	gt.Number(t, types.Severity("unknown").Rank()).Equal(0)
}

func TestParseSeverity(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    types.Severity
		wantErr bool
	}{
		{"low", "low", types.SeverityLow, false},
		{"critical", "critical", types.SeverityCritical, false},
		{"uppercase", "HIGH", "", true},
		{"empty", "", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := types.ParseSeverity(tt.input)
			if tt.wantErr {
				gt.Error(t, err)
			} else {
				gt.NoError(t, err)
				gt.V(t, got).Equal(tt.want)
			}
		})
	}
}
