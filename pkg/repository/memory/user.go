package memory

import (
	"context"
	"strings"

	"github.com/Sinfosecurity/GRC-Sinfosecurity--sub006/pkg/domain/model"
	"github.com/m-mizutani/goerr/v2"
)

type userRepository struct {
	*table[*model.User]
}

func newUserRepository() *userRepository {
	return &userRepository{table: newTable[*model.User]("user")}
}

func (r *userRepository) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, u := range r.records {
		if strings.EqualFold(u.Email, email) {
			return clone(u)
		}
	}
	return nil, goerr.Wrap(ErrNotFound, "user not found", goerr.V("email", email))
}
