package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/medisite/cms/internal/pkg/category"
)

const fixture = `
categories:
  - name: Services
    slug: services
    children:
      - name: Cardiology
        slug: cardiology
        news:
          - title: New cath lab
            slug: new-cath-lab
            status: publish
          - title: Heart week
            slug: heart-week
            status: publish
        pages:
          - title: Opening hours
            slug: cardiology-hours
            published: true
      - name: Archive
        slug: archive
  - name: About
    slug: about
`

func setupCLI(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("DB_DRIVER", "sqlite")
	t.Setenv("DB_NAME", filepath.Join(dir, "cms.db"))
	t.Setenv("CACHE_PORT", "1")

	path := filepath.Join(dir, "hospital.yaml")
	require.NoError(t, os.WriteFile(path, []byte(fixture), 0o600))
	t.Cleanup(func() { _ = closeSession(rootCmd, nil) })
	return path
}

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	actorName = "catctl"
	activeOnly = false
	strategyName = category.StrategyCascade
	migrateTarget = 0
	dryRun = false

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(args)
	err := rootCmd.ExecuteContext(context.Background())
	return out.String(), err
}

func TestCatctlWorkflow(t *testing.T) {
	path := setupCLI(t)

	out, err := run(t, "seed", path)
	require.NoError(t, err)
	assert.Contains(t, out, "Seeded 4 categories, 2 articles and 1 pages")

	out, err = run(t, "list")
	require.NoError(t, err)
	assert.Contains(t, out, "cardiology")
	assert.Contains(t, out, "about")

	out, err = run(t, "tree")
	require.NoError(t, err)
	assert.Contains(t, out, "Services (#1, services)")
	assert.Contains(t, out, "Cardiology (#2, cardiology)")

	out, err = run(t, "descendants", "1")
	require.NoError(t, err)
	assert.Equal(t, "2\n3\n", out)

	out, err = run(t, "inspect", "1")
	require.NoError(t, err)
	assert.Contains(t, out, "3 categories in branch")
	assert.Contains(t, out, "Cardiology")

	out, err = run(t, "deactivate", "1", "--strategy", "migrate", "--target", "4")
	require.NoError(t, err)
	assert.Contains(t, out, "3 categories deactivated, 2 articles and 1 pages moved to category 4")

	out, err = run(t, "inspect", "4")
	require.NoError(t, err)
	assert.Contains(t, out, "About")

	out, err = run(t, "list", "--active")
	require.NoError(t, err)
	assert.Contains(t, out, "about")
	assert.NotContains(t, out, "cardiology")

	out, err = run(t, "deactivate", "1")
	require.NoError(t, err)
	assert.Contains(t, out, "already inactive")

	out, err = run(t, "activate", "1")
	require.NoError(t, err)
	assert.Contains(t, out, "Category updated successfully")

	out, err = run(t, "delete", "2")
	require.NoError(t, err)
	assert.Contains(t, out, "Category 2 deleted")

	_, err = run(t, "delete", "4")
	assert.ErrorIs(t, err, category.ErrHasArticles)
}

func TestCatctlDryRunChangesNothing(t *testing.T) {
	path := setupCLI(t)
	_, err := run(t, "seed", path)
	require.NoError(t, err)

	out, err := run(t, "deactivate", "2", "--dry-run")
	require.NoError(t, err)
	assert.Contains(t, out, "Cardiology (#2): 1 categories in branch")

	out, err = run(t, "list", "--active")
	require.NoError(t, err)
	assert.Contains(t, out, "cardiology")
}

func TestCatctlRejectsBadInput(t *testing.T) {
	setupCLI(t)

	_, err := run(t, "descendants", "abc")
	assert.ErrorContains(t, err, "invalid category id")

	_, err = run(t, "deactivate", "1", "--strategy", "shred")
	assert.ErrorIs(t, err, category.ErrUnknownStrategy)

	_, err = run(t, "deactivate", "1", "--strategy", "migrate")
	assert.ErrorIs(t, err, category.ErrMigrateTargetMissing)

	_, err = run(t, "inspect", "99")
	assert.ErrorIs(t, err, category.ErrNotFound)
}
