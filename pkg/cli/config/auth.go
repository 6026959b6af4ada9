package config

import (
	"context"
	"log/slog"
	"time"

	"github.com/Sinfosecurity/GRC-Sinfosecurity--sub006/pkg/domain/interfaces"
	"github.com/Sinfosecurity/GRC-Sinfosecurity--sub006/pkg/domain/model/auth"
	"github.com/Sinfosecurity/GRC-Sinfosecurity--sub006/pkg/domain/types"
	"github.com/Sinfosecurity/GRC-Sinfosecurity--sub006/pkg/usecase"
	"github.com/Sinfosecurity/GRC-Sinfosecurity--sub006/pkg/utils/logging"
	"github.com/m-mizutani/goerr/v2"
	"github.com/urfave/cli/v3"
)

// MinSecretLength is the shortest accepted JWT signing secret.
const MinSecretLength = 32

type Auth struct {
	jwtSecret     string
	tokenTTL      time.Duration
	adminEmail    string
	adminPassword string
	devMode       bool
}

func (x *Auth) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "jwt-secret",
			Usage:       "HS256 signing secret for session tokens (at least 32 bytes)",
			Category:    "Authentication",
			Sources:     cli.EnvVars("GRC_JWT_SECRET"),
			Destination: &x.jwtSecret,
		},
		&cli.DurationFlag{
			Name:        "token-ttl",
			Usage:       "Session token lifetime",
			Category:    "Authentication",
			Value:       auth.DefaultTokenTTL,
			Sources:     cli.EnvVars("GRC_TOKEN_TTL"),
			Destination: &x.tokenTTL,
		},
		&cli.StringFlag{
			Name:        "admin-email",
			Usage:       "E-mail of the bootstrap admin user, created or updated at startup",
			Category:    "Authentication",
			Sources:     cli.EnvVars("GRC_ADMIN_EMAIL"),
			Destination: &x.adminEmail,
		},
		&cli.StringFlag{
			Name:        "admin-password",
			Usage:       "Password of the bootstrap admin user",
			Category:    "Authentication",
			Sources:     cli.EnvVars("GRC_ADMIN_PASSWORD"),
			Destination: &x.adminPassword,
		},
		&cli.BoolFlag{
			Name:        "dev-mode",
			Usage:       "Skip authentication and act as an anonymous admin (development only)",
			Category:    "Authentication",
			Sources:     cli.EnvVars("GRC_DEV_MODE"),
			Destination: &x.devMode,
		},
	}
}

func (x Auth) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Int("jwt_secret.len", len(x.jwtSecret)),
		slog.Duration("token_ttl", x.tokenTTL),
		slog.String("admin_email", x.adminEmail),
		slog.Bool("dev_mode", x.devMode),
	)
}

func (x *Auth) IsDevMode() bool {
	return x.devMode
}

// Configure returns NoAuthnUseCase in dev mode and a password/JWT
// AuthUseCase otherwise. The bootstrap admin is ensured when both admin
// flags are set.
func (x *Auth) Configure(ctx context.Context, repo interfaces.Repository, activity interfaces.ActivityLog) (usecase.AuthUseCaseInterface, error) {
	if x.devMode {
		logging.From(ctx).Warn("Running in dev mode: authentication is disabled and every request acts as admin")
		return usecase.NewNoAuthnUseCase(), nil
	}

	if len(x.jwtSecret) < MinSecretLength {
		return nil, goerr.New("--jwt-secret of at least 32 bytes is required unless --dev-mode is set",
			goerr.V("length", len(x.jwtSecret)))
	}

	opts := []usecase.AuthOption{usecase.WithTokenTTL(x.tokenTTL)}
	if activity != nil {
		opts = append(opts, usecase.WithLoginActivity(activity))
	}
	authUC, err := usecase.NewAuthUseCase(repo, []byte(x.jwtSecret), opts...)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to create auth use case")
	}

	if x.adminEmail != "" || x.adminPassword != "" {
		if x.adminEmail == "" || x.adminPassword == "" {
			return nil, goerr.New("--admin-email and --admin-password must be set together")
		}
		if _, err := authUC.EnsureUser(ctx, x.adminEmail, "Administrator", x.adminPassword, types.RoleAdmin); err != nil {
			return nil, goerr.Wrap(err, "failed to ensure admin user", goerr.V("email", x.adminEmail))
		}
		logging.From(ctx).Info("Admin user ensured", "email", x.adminEmail)
	}

	return authUC, nil
}
