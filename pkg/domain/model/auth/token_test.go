package auth_test

import (
	"context"
	"testing"
	"time"

	"github.com/Sinfosecurity/GRC-Sinfosecurity--sub006/pkg/domain/model/auth"
	"github.com/Sinfosecurity/GRC-Sinfosecurity--sub006/pkg/domain/types"
	"github.com/m-mizutani/gt"
)

func TestNewToken(t *testing.T) {
	token := auth.NewToken("user-1", "alice@example.com", "Alice", types.RoleAnalyst, time.Hour)
	gt.NoError(t, token.Validate()).Required()
	gt.Bool(t, token.IsExpired()).False()
	gt.Bool(t, token.IsAnonymous()).False()
	gt.Value(t, token.Role).Equal(types.RoleAnalyst)

	expired := auth.NewToken("user-1", "alice@example.com", "Alice", types.RoleAnalyst, -time.Minute)
	gt.Bool(t, expired.IsExpired()).True()
}

func TestTokenValidate(t *testing.T) {
	t.Run("bad id", func(t *testing.T) {
		token := auth.NewToken("user-1", "a@example.com", "A", types.RoleViewer, time.Hour)
		token.ID = "not-a-uuid"
		gt.Error(t, token.Validate())
	})
	t.Run("missing subject", func(t *testing.T) {
		token := auth.NewToken("", "a@example.com", "A", types.RoleViewer, time.Hour)
		gt.Error(t, token.Validate())
	})
	t.Run("bad role", func(t *testing.T) {
		token := auth.NewToken("user-1", "a@example.com", "A", types.Role("root"), time.Hour)
		gt.Error(t, token.Validate())
	})
}

func TestContextWithToken(t *testing.T) {
	ctx := context.Background()
	gt.Value(t, auth.TokenFromContext(ctx)).Nil()
	gt.Value(t, auth.ActorFromContext(ctx)).Equal("system")

	token := auth.NewAnonymousUser()
	ctx = auth.ContextWithToken(ctx, token)
	gt.Value(t, auth.TokenFromContext(ctx)).Equal(token)
	gt.Bool(t, token.IsAnonymous()).True()
	gt.Value(t, token.Role).Equal(types.RoleAdmin)
	gt.Value(t, auth.ActorFromContext(ctx)).Equal("anonymous@localhost")
}
