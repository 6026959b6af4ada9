package model_test

import (
	"testing"

	"github.com/Sinfosecurity/GRC-Sinfosecurity--sub006/pkg/domain/model"
	"github.com/Sinfosecurity/GRC-Sinfosecurity--sub006/pkg/domain/types"
	"github.com/m-mizutani/gt"
)

func TestRiskScore(t *testing.T) {
	testCases := []struct {
		name             string
		risk             model.Risk
		expectedInherent int
		expectedResidual int
		expectedSeverity types.Severity
	}{
		{
			name:             "critical without residual rating",
			risk:             model.Risk{Likelihood: 5, Impact: 4},
			expectedInherent: 20,
			expectedResidual: 20,
			expectedSeverity: types.SeverityCritical,
		},
		{
			name:             "high with residual rating",
			risk:             model.Risk{Likelihood: 4, Impact: 3, ResidualLikelihood: 2, ResidualImpact: 2},
			expectedInherent: 12,
			expectedResidual: 4,
			expectedSeverity: types.SeverityHigh,
		},
		{
			name:             "low",
			risk:             model.Risk{Likelihood: 1, Impact: 5},
			expectedInherent: 5,
			expectedResidual: 5,
			expectedSeverity: types.SeverityLow,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			r := tc.risk
			r.Score()
			gt.Number(t, r.InherentScore).Equal(tc.expectedInherent)
			gt.Number(t, r.ResidualScore).Equal(tc.expectedResidual)
			gt.Value(t, r.Severity).Equal(tc.expectedSeverity)
		})
	}
}

func TestRiskValidate(t *testing.T) {
	valid := func() *model.Risk {
		return &model.Risk{
			Title:      "Ransomware",
			Category:   types.RiskCategorySecurity,
			Status:     types.RiskStatusIdentified,
			Likelihood: 3,
			Impact:     4,
		}
	}

	t.Run("valid", func(t *testing.T) {
		gt.NoError(t, valid().Validate())
	})

	t.Run("likelihood out of range", func(t *testing.T) {
		r := valid()
		r.Likelihood = 6
		gt.Error(t, r.Validate()).Is(model.ErrValidation)
	})

	t.Run("invalid category", func(t *testing.T) {
		r := valid()
		r.Category = "weather"
		gt.Error(t, r.Validate()).Is(model.ErrValidation)
	})

	t.Run("residual impact out of range", func(t *testing.T) {
		r := valid()
		r.ResidualImpact = 9
		gt.Error(t, r.Validate()).Is(model.ErrValidation)
	})
}

func TestRiskFilter(t *testing.T) {
	risks := []*model.Risk{
		{Meta: model.Meta{ID: "1"}, Category: types.RiskCategorySecurity, Status: types.RiskStatusIdentified, Severity: types.SeverityHigh, Owner: "alice"},
		{Meta: model.Meta{ID: "2"}, Category: types.RiskCategorySecurity, Status: types.RiskStatusClosed, Severity: types.SeverityLow, Owner: "bob"},
		{Meta: model.Meta{ID: "3"}, Category: types.RiskCategoryFinancial, Status: types.RiskStatusIdentified, Severity: types.SeverityHigh, Owner: "alice"},
	}

	match := func(f model.RiskFilter) []string {
		var ids []string
		for _, r := range risks {
			if f.Match(r) {
				ids = append(ids, r.ID)
			}
		}
		return ids
	}

	gt.Array(t, match(model.RiskFilter{})).Length(3)
	gt.Value(t, match(model.RiskFilter{Category: types.RiskCategorySecurity})).Equal([]string{"1", "2"})
	gt.Value(t, match(model.RiskFilter{Severity: types.SeverityHigh, Owner: "alice"})).Equal([]string{"1", "3"})
	gt.Value(t, match(model.RiskFilter{Category: types.RiskCategoryFinancial, Status: types.RiskStatusClosed})).Nil()
}
