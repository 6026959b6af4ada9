package usecase_test

import (
	"context"
	"testing"

	"github.com/Sinfosecurity/GRC-Sinfosecurity--sub006/pkg/domain/model"
	"github.com/Sinfosecurity/GRC-Sinfosecurity--sub006/pkg/domain/model/catalog"
	"github.com/Sinfosecurity/GRC-Sinfosecurity--sub006/pkg/domain/types"
	"github.com/Sinfosecurity/GRC-Sinfosecurity--sub006/pkg/usecase"
	"github.com/m-mizutani/gt"
)

func testCatalog() *catalog.Catalog {
	return &catalog.Catalog{
		Frameworks: []catalog.FrameworkTemplate{
			{
				ID:      "iso-27001",
				Name:    "ISO/IEC 27001",
				Version: "2022",
				Domains: []catalog.TemplateDomain{
					{Code: "A.5", Name: "Organizational", Controls: []catalog.TemplateControl{
						{Code: "A.5.1", Title: "Policies for information security", Priority: types.SeverityHigh},
						{Code: "A.5.2", Title: "Roles and responsibilities", Priority: types.SeverityMedium},
					}},
					{Code: "A.8", Name: "Technological", Controls: []catalog.TemplateControl{
						{Code: "A.8.5", Title: "Secure authentication", Priority: types.SeverityCritical},
					}},
				},
			},
		},
		MaturityModels: []catalog.MaturityModel{
			{
				ID:   "security-program",
				Name: "Security Program",
				Domains: []catalog.ModelDomain{
					{ID: "governance", Name: "Governance", Capabilities: []catalog.ModelCapability{
						{ID: "policy", Name: "Policy management", TargetScore: 4},
						{ID: "risk", Name: "Risk management", TargetScore: 4},
					}},
					{ID: "operations", Name: "Operations", Capabilities: []catalog.ModelCapability{
						{ID: "monitoring", Name: "Monitoring", TargetScore: 3},
					}},
				},
			},
		},
	}
}

func TestFrameworkUseCase_Instantiate(t *testing.T) {
	env := setup(t, usecase.WithCatalog(testCatalog()))
	ctx := context.Background()

	gt.Array(t, env.uc.Framework.Templates()).Length(1)

	f, err := env.uc.Framework.Instantiate(ctx, "iso-27001", "")
	gt.NoError(t, err).Required()
	gt.Value(t, f.Name).Equal("ISO/IEC 27001")
	gt.Value(t, f.TemplateID).Equal("iso-27001")
	gt.Value(t, f.Status).Equal(types.FrameworkStatusDraft)
	gt.Array(t, f.Domains).Length(2).Required()
	gt.Number(t, f.ControlCount()).Equal(3)
	gt.Value(t, f.Domains[0].Controls[0].ID).NotEqual("")

	_, err = env.uc.Framework.Instantiate(ctx, "nist-csf", "")
	gt.Error(t, err).Is(usecase.ErrNotFound)
}

func TestFrameworkUseCase_Mappings(t *testing.T) {
	env := setup(t, usecase.WithCatalog(testCatalog()))
	ctx := context.Background()

	iso, err := env.uc.Framework.Instantiate(ctx, "iso-27001", "ISO copy")
	gt.NoError(t, err).Required()
	gt.Value(t, iso.Name).Equal("ISO copy")

	custom, err := env.uc.Framework.Create(ctx, &model.CustomFramework{Name: "Internal baseline"})
	gt.NoError(t, err).Required()
	custom, err = env.uc.Framework.AddDomain(ctx, custom.ID, model.CustomDomain{Code: "IAM", Name: "Identity"})
	gt.NoError(t, err).Required()
	gt.Array(t, custom.Domains).Length(1).Required()

	custom, err = env.uc.Framework.AddControl(ctx, custom.ID, custom.Domains[0].ID, model.CustomControl{Code: "IAM-1", Title: "MFA everywhere"})
	gt.NoError(t, err).Required()
	ctrl := custom.Domains[0].Controls[0]
	gt.Value(t, ctrl.Priority).Equal(types.SeverityMedium)

	_, err = env.uc.Framework.AddControl(ctx, custom.ID, custom.Domains[0].ID, model.CustomControl{Code: "IAM-1", Title: "duplicate"})
	gt.Error(t, err).Is(usecase.ErrValidation)

	_, err = env.uc.Framework.AddControl(ctx, custom.ID, "no-domain", model.CustomControl{Code: "IAM-2", Title: "x"})
	gt.Error(t, err).Is(usecase.ErrNotFound)

	target := iso.Domains[1].Controls[0]
	mapping, err := env.uc.Framework.CreateMapping(ctx, &model.FrameworkMapping{
		SourceFrameworkID: custom.ID,
		SourceControlID:   ctrl.ID,
		TargetFrameworkID: iso.ID,
		TargetControlID:   target.ID,
	})
	gt.NoError(t, err).Required()
	gt.Value(t, mapping.Type).Equal(types.MappingTypeRelated)

	t.Run("mapping requires existing controls", func(t *testing.T) {
		_, err := env.uc.Framework.CreateMapping(ctx, &model.FrameworkMapping{
			SourceFrameworkID: custom.ID,
			SourceControlID:   "missing",
			TargetFrameworkID: iso.ID,
			TargetControlID:   target.ID,
		})
		gt.Error(t, err).Is(usecase.ErrNotFound)
	})

	t.Run("mapping within one framework is rejected", func(t *testing.T) {
		_, err := env.uc.Framework.CreateMapping(ctx, &model.FrameworkMapping{
			SourceFrameworkID: iso.ID,
			SourceControlID:   iso.Domains[0].Controls[0].ID,
			TargetFrameworkID: iso.ID,
			TargetControlID:   target.ID,
		})
		gt.Error(t, err).Is(usecase.ErrValidation)
	})

	stats, err := env.uc.Framework.Stats(ctx, iso.ID)
	gt.NoError(t, err).Required()
	gt.Number(t, stats.Domains).Equal(2)
	gt.Number(t, stats.Controls).Equal(3)
	gt.Number(t, stats.MappedControls).Equal(1)
	gt.Number(t, stats.Coverage).Equal(33.33)

	mappings, err := env.uc.Framework.ListMappings(ctx, model.MappingFilter{ControlID: ctrl.ID})
	gt.NoError(t, err).Required()
	gt.Array(t, mappings).Length(1)
}

func TestMaturityUseCase(t *testing.T) {
	env := setup(t, usecase.WithCatalog(testCatalog()))
	ctx := context.Background()

	a, err := env.uc.Maturity.CreateFromModel(ctx, "security-program", &model.MaturityAssessment{Name: "2026 baseline", Assessor: "grc@example.com"})
	gt.NoError(t, err).Required()
	gt.Value(t, a.ModelID).Equal("security-program")
	gt.Value(t, a.Status).Equal(types.AssessmentStatusDraft)
	gt.Array(t, a.Domains).Length(2)

	score := func(domain, capability string, v float64) {
		t.Helper()
		_, err := env.uc.Maturity.UpdateCapability(ctx, a.ID, usecase.ScoreInput{DomainID: domain, CapabilityID: capability, Score: v})
		gt.NoError(t, err).Required()
	}
	score("governance", "policy", 3)
	score("governance", "risk", 2)
	score("operations", "monitoring", 3)

	current, err := env.uc.Maturity.Get(ctx, a.ID)
	gt.NoError(t, err).Required()
	gt.Value(t, current.Status).Equal(types.AssessmentStatusInProgress)

	summary, err := env.uc.Maturity.Summary(ctx, a.ID)
	gt.NoError(t, err).Required()
	gt.Number(t, summary.OverallScore).Equal(2.75)
	gt.Value(t, summary.Level).Equal(types.MaturityLevelDefined)
	gt.Array(t, summary.Gaps).Length(2).Required()
	gt.Value(t, summary.Gaps[0].CapabilityID).Equal("risk")

	t.Run("score out of range", func(t *testing.T) {
		_, err := env.uc.Maturity.UpdateCapability(ctx, a.ID, usecase.ScoreInput{DomainID: "governance", CapabilityID: "policy", Score: 6})
		gt.Error(t, err).Is(usecase.ErrValidation)
	})

	t.Run("unknown capability", func(t *testing.T) {
		_, err := env.uc.Maturity.UpdateCapability(ctx, a.ID, usecase.ScoreInput{DomainID: "governance", CapabilityID: "nope", Score: 3})
		gt.Error(t, err).Is(usecase.ErrNotFound)
	})

	t.Run("completed assessments are frozen", func(t *testing.T) {
		done, err := env.uc.Maturity.Complete(ctx, a.ID)
		gt.NoError(t, err).Required()
		gt.Value(t, done.CompletedAt).NotNil()

		_, err = env.uc.Maturity.UpdateCapability(ctx, a.ID, usecase.ScoreInput{DomainID: "governance", CapabilityID: "policy", Score: 4})
		gt.Error(t, err).Is(usecase.ErrConflict)
		_, err = env.uc.Maturity.Complete(ctx, a.ID)
		gt.Error(t, err).Is(usecase.ErrConflict)
	})

	_, err = env.uc.Maturity.CreateFromModel(ctx, "unknown", &model.MaturityAssessment{Name: "x"})
	gt.Error(t, err).Is(usecase.ErrNotFound)
}
