package interfaces

import (
	"context"

	"github.com/Sinfosecurity/GRC-Sinfosecurity--sub006/pkg/domain/model"
	"github.com/Sinfosecurity/GRC-Sinfosecurity--sub006/pkg/domain/model/auth"
)

// Repository defines the interface for data persistence
type Repository interface {
	Risk() EntityRepository[*model.Risk]
	Incident() EntityRepository[*model.Incident]
	Control() EntityRepository[*model.Control]
	Policy() EntityRepository[*model.Policy]
	Document() EntityRepository[*model.Document]

	Process() EntityRepository[*model.BusinessProcess]
	RecoveryPlan() EntityRepository[*model.RecoveryPlan]
	BCPTest() EntityRepository[*model.BCPTest]

	Framework() EntityRepository[*model.CustomFramework]
	Mapping() EntityRepository[*model.FrameworkMapping]
	Assessment() EntityRepository[*model.MaturityAssessment]
	RegulatoryChange() EntityRepository[*model.RegulatoryChange]
	FrameworkUpdate() EntityRepository[*model.FrameworkUpdate]
	Alert() EntityRepository[*model.ComplianceAlert]

	Audit() EntityRepository[*model.Audit]
	Vendor() EntityRepository[*model.Vendor]

	User() UserRepository

	// Auth methods
	PutToken(ctx context.Context, token *auth.Token) error
	GetToken(ctx context.Context, tokenID auth.TokenID) (*auth.Token, error)
	DeleteToken(ctx context.Context, tokenID auth.TokenID) error
}

// EntityRepository stores records of a single kind keyed by ID.
type EntityRepository[T model.Entity] interface {
	// Create stores a new record. An empty ID is replaced with a generated
	// one; CreatedAt and UpdatedAt are set by the repository.
	Create(ctx context.Context, v T) (T, error)

	// Get retrieves a record by ID
	Get(ctx context.Context, id string) (T, error)

	// List retrieves all records in creation order
	List(ctx context.Context) ([]T, error)

	// Update replaces an existing record, keeping its CreatedAt
	Update(ctx context.Context, v T) (T, error)

	// Delete deletes a record by ID
	Delete(ctx context.Context, id string) error
}

type UserRepository interface {
	EntityRepository[*model.User]

	// GetByEmail looks up a user by e-mail address, case insensitive
	GetByEmail(ctx context.Context, email string) (*model.User, error)
}
