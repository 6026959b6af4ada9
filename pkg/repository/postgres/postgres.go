package postgres

import (
	"context"
	"slices"

	"github.com/Sinfosecurity/GRC-Sinfosecurity--sub006/pkg/domain/interfaces"
	"github.com/Sinfosecurity/GRC-Sinfosecurity--sub006/pkg/domain/model"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/m-mizutani/goerr/v2"
)

// entityTables lists every JSONB entity table created by Migrate.
var entityTables = []string{
	"risks", "incidents", "controls", "policies", "documents",
	"business_processes", "recovery_plans", "bcp_tests",
	"frameworks", "framework_mappings", "maturity_assessments",
	"regulatory_changes", "framework_updates", "compliance_alerts",
	"audits", "vendors", "users",
}

// Tables returns the entity tables Migrate creates, plus the token table.
func Tables() []string {
	return append(slices.Clone(entityTables), "tokens")
}

type Postgres struct {
	pool             *pgxpool.Pool
	risk             *table[*model.Risk]
	incident         *table[*model.Incident]
	control          *table[*model.Control]
	policy           *table[*model.Policy]
	document         *table[*model.Document]
	process          *table[*model.BusinessProcess]
	recoveryPlan     *table[*model.RecoveryPlan]
	bcpTest          *table[*model.BCPTest]
	framework        *table[*model.CustomFramework]
	mapping          *table[*model.FrameworkMapping]
	assessment       *table[*model.MaturityAssessment]
	regulatoryChange *table[*model.RegulatoryChange]
	frameworkUpdate  *table[*model.FrameworkUpdate]
	alert            *table[*model.ComplianceAlert]
	audit            *table[*model.Audit]
	vendor           *table[*model.Vendor]
	user             *userRepository
}

var _ interfaces.Repository = &Postgres{}

func New(ctx context.Context, databaseURL string) (*Postgres, error) {
	pool, err := pgxpool.New(ctx, databaseURL)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to create postgres pool")
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, goerr.Wrap(err, "failed to connect to postgres")
	}

	return &Postgres{
		pool:             pool,
		risk:             newTable[*model.Risk](pool, "risks"),
		incident:         newTable[*model.Incident](pool, "incidents"),
		control:          newTable[*model.Control](pool, "controls"),
		policy:           newTable[*model.Policy](pool, "policies"),
		document:         newTable[*model.Document](pool, "documents"),
		process:          newTable[*model.BusinessProcess](pool, "business_processes"),
		recoveryPlan:     newTable[*model.RecoveryPlan](pool, "recovery_plans"),
		bcpTest:          newTable[*model.BCPTest](pool, "bcp_tests"),
		framework:        newTable[*model.CustomFramework](pool, "frameworks"),
		mapping:          newTable[*model.FrameworkMapping](pool, "framework_mappings"),
		assessment:       newTable[*model.MaturityAssessment](pool, "maturity_assessments"),
		regulatoryChange: newTable[*model.RegulatoryChange](pool, "regulatory_changes"),
		frameworkUpdate:  newTable[*model.FrameworkUpdate](pool, "framework_updates"),
		alert:            newTable[*model.ComplianceAlert](pool, "compliance_alerts"),
		audit:            newTable[*model.Audit](pool, "audits"),
		vendor:           newTable[*model.Vendor](pool, "vendors"),
		user:             newUserRepository(pool),
	}, nil
}

// Migrate creates the schema. It is idempotent.
func (p *Postgres) Migrate(ctx context.Context) error {
	tx, err := p.pool.Begin(ctx)
	if err != nil {
		return goerr.Wrap(err, "failed to begin migration")
	}
	defer func() { _ = tx.Rollback(ctx) }()

	for _, name := range entityTables {
		if _, err := tx.Exec(ctx, `CREATE TABLE IF NOT EXISTS `+name+` (
			id         TEXT PRIMARY KEY,
			data       JSONB NOT NULL,
			created_at TIMESTAMPTZ NOT NULL,
			updated_at TIMESTAMPTZ NOT NULL
		)`); err != nil {
			return goerr.Wrap(err, "failed to create table", goerr.V("table", name))
		}
	}

	statements := []string{
		`CREATE UNIQUE INDEX IF NOT EXISTS users_email_idx ON users (lower(data->>'email'))`,
		`CREATE TABLE IF NOT EXISTS tokens (
			id         TEXT PRIMARY KEY,
			data       JSONB NOT NULL,
			expires_at TIMESTAMPTZ NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS tokens_expires_at_idx ON tokens (expires_at)`,
	}
	for _, stmt := range statements {
		if _, err := tx.Exec(ctx, stmt); err != nil {
			return goerr.Wrap(err, "failed to apply migration statement")
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return goerr.Wrap(err, "failed to commit migration")
	}
	return nil
}

// MissingTables returns the tables of Tables that do not exist yet.
func (p *Postgres) MissingTables(ctx context.Context) ([]string, error) {
	var missing []string
	for _, name := range Tables() {
		var exists bool
		if err := p.pool.QueryRow(ctx, `SELECT to_regclass($1) IS NOT NULL`, name).Scan(&exists); err != nil {
			return nil, goerr.Wrap(err, "failed to check table", goerr.V("table", name))
		}
		if !exists {
			missing = append(missing, name)
		}
	}
	return missing, nil
}

func (p *Postgres) Close() {
	p.pool.Close()
}

func (p *Postgres) Risk() interfaces.EntityRepository[*model.Risk]         { return p.risk }
func (p *Postgres) Incident() interfaces.EntityRepository[*model.Incident] { return p.incident }
func (p *Postgres) Control() interfaces.EntityRepository[*model.Control]   { return p.control }
func (p *Postgres) Policy() interfaces.EntityRepository[*model.Policy]     { return p.policy }
func (p *Postgres) Document() interfaces.EntityRepository[*model.Document] { return p.document }

func (p *Postgres) Process() interfaces.EntityRepository[*model.BusinessProcess] {
	return p.process
}

func (p *Postgres) RecoveryPlan() interfaces.EntityRepository[*model.RecoveryPlan] {
	return p.recoveryPlan
}

func (p *Postgres) BCPTest() interfaces.EntityRepository[*model.BCPTest] {
	return p.bcpTest
}

func (p *Postgres) Framework() interfaces.EntityRepository[*model.CustomFramework] {
	return p.framework
}

func (p *Postgres) Mapping() interfaces.EntityRepository[*model.FrameworkMapping] {
	return p.mapping
}

func (p *Postgres) Assessment() interfaces.EntityRepository[*model.MaturityAssessment] {
	return p.assessment
}

func (p *Postgres) RegulatoryChange() interfaces.EntityRepository[*model.RegulatoryChange] {
	return p.regulatoryChange
}

func (p *Postgres) FrameworkUpdate() interfaces.EntityRepository[*model.FrameworkUpdate] {
	return p.frameworkUpdate
}

func (p *Postgres) Alert() interfaces.EntityRepository[*model.ComplianceAlert] {
	return p.alert
}

func (p *Postgres) Audit() interfaces.EntityRepository[*model.Audit] {
	return p.audit
}

func (p *Postgres) Vendor() interfaces.EntityRepository[*model.Vendor] {
	return p.vendor
}

func (p *Postgres) User() interfaces.UserRepository {
	return p.user
}
