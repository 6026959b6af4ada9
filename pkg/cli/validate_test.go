package cli_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/Sinfosecurity/GRC-Sinfosecurity--sub006/pkg/cli"
	"github.com/m-mizutani/gt"
)

func writeCatalog(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "catalog.toml")
	gt.NoError(t, os.WriteFile(path, []byte(content), 0o600)).Required()
	return path
}

func TestRun_ValidateCommand_BuiltinCatalog(t *testing.T) {
	err := cli.Run(context.Background(), []string{"grc", "validate"}, "test")
	gt.NoError(t, err)
}

func TestRun_ValidateCommand_ValidCatalog(t *testing.T) {
	path := writeCatalog(t, `
[[framework]]
id = "internal-baseline"
name = "Internal baseline"

  [[framework.domain]]
  code = "AC"
  name = "Access control"

    [[framework.domain.control]]
    code = "AC-1"
    title = "Access reviews"
    priority = "high"

[[maturity_model]]
id = "baseline-maturity"
name = "Baseline maturity"

  [[maturity_model.domain]]
  id = "identity"
  name = "Identity"

    [[maturity_model.domain.capability]]
    id = "access-reviews"
    name = "Access reviews"
    target_score = 3.0
`)

	err := cli.Run(context.Background(), []string{"grc", "validate", "--catalog", path}, "test")
	gt.NoError(t, err)
}

func TestRun_ValidateCommand_InvalidCatalog(t *testing.T) {
	// Invalid: framework ID with uppercase and underscore
	path := writeCatalog(t, `
[[framework]]
id = "ISO_27001"
name = "ISO"

  [[framework.domain]]
  code = "A.5"
  name = "Organizational controls"
`)

	err := cli.Run(context.Background(), []string{"grc", "validate", "--catalog", path}, "test")
	gt.Value(t, err).NotNil()
}

func TestRun_ValidateCommand_MissingCatalog(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nonexistent.toml")

	err := cli.Run(context.Background(), []string{"grc", "validate", "--catalog", path}, "test")
	gt.Value(t, err).NotNil()
}

func TestRun_MigrateCommand_DryRun(t *testing.T) {
	err := cli.Run(context.Background(), []string{"grc", "migrate", "--dry-run"}, "test")
	gt.NoError(t, err)
}

func TestRun_InvalidLogLevel(t *testing.T) {
	err := cli.Run(context.Background(), []string{"grc", "--log-level", "verbose", "validate"}, "test")
	gt.Value(t, err).NotNil()
}
