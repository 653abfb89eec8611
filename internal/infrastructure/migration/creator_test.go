package migration

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"testing/fstest"

	"github.com/rentdesk/backend/migrations"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSanitizeName(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"add leases table", "add_leases_table"},
		{"Add-Leases-Table", "add_leases_table"},
		{"ADD_LEASES_TABLE", "add_leases_table"},
		{"add__leases__table", "add_leases_table"},
		{"Add Units 123", "add_units_123"},
		{"   spaces   ", "spaces"},
		{"special!@#$chars", "specialchars"},
		{"trailing_", "trailing"},
		{"_leading", "leading"},
		{"", ""},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.expected, sanitizeName(tt.input))
		})
	}
}

func writeFiles(t *testing.T, dir string, names ...string) {
	t.Helper()
	for _, n := range names {
		require.NoError(t, os.WriteFile(filepath.Join(dir, n), []byte("-- test"), 0o644))
	}
}

func TestCreateMigration(t *testing.T) {
	dir := t.TempDir()

	mf, err := CreateMigration(dir, "add maintenance images", "Store photos per request")
	require.NoError(t, err)

	assert.Equal(t, "000001", mf.Version)
	assert.Equal(t, "000001_add_maintenance_images.up.sql", filepath.Base(mf.UpPath))
	assert.Equal(t, "000001_add_maintenance_images.down.sql", filepath.Base(mf.DownPath))

	up, err := os.ReadFile(mf.UpPath)
	require.NoError(t, err)
	assert.Contains(t, string(up), "add maintenance images")
	assert.Contains(t, string(up), "Store photos per request")
	assert.Contains(t, string(up), "business_id")

	down, err := os.ReadFile(mf.DownPath)
	require.NoError(t, err)
	assert.Contains(t, string(down), "(rollback)")
}

func TestCreateMigration_ContinuesNumbering(t *testing.T) {
	dir := t.TempDir()
	writeFiles(t, dir,
		"000001_init_schema.up.sql", "000001_init_schema.down.sql",
		"000007_late_fees.up.sql", "000007_late_fees.down.sql",
	)

	mf, err := CreateMigration(dir, "tenant documents", "")
	require.NoError(t, err)
	assert.Equal(t, "000008", mf.Version)
}

func TestCreateMigration_Errors(t *testing.T) {
	_, err := CreateMigration(t.TempDir(), "!!!", "")
	assert.Error(t, err)

	nested := filepath.Join(t.TempDir(), "nested", "migrations")
	_, err = CreateMigration(nested, "first", "")
	require.NoError(t, err)
	info, err := os.Stat(nested)
	require.NoError(t, err)
	assert.True(t, info.IsDir())
}

func TestNextVersion(t *testing.T) {
	assert.Equal(t, 1, NextVersion(nil))
	assert.Equal(t, 3, NextVersion([]string{"000002_b", "000001_a"}))
	assert.Equal(t, 5, NextVersion([]string{"000004_x", "notes", "abc_def"}))
}

func TestListMigrations(t *testing.T) {
	t.Run("sorted base names", func(t *testing.T) {
		dir := t.TempDir()
		writeFiles(t, dir,
			"000002_add_leases.up.sql", "000002_add_leases.down.sql",
			"000001_init_schema.up.sql", "000001_init_schema.down.sql",
			"README.md", ".gitkeep",
		)
		require.NoError(t, os.Mkdir(filepath.Join(dir, "subdir.up.sql"), 0o755))

		names, err := ListMigrations(dir)
		require.NoError(t, err)
		assert.Equal(t, []string{"000001_init_schema", "000002_add_leases"}, names)
	})

	t.Run("missing directory", func(t *testing.T) {
		names, err := ListMigrations(filepath.Join(t.TempDir(), "absent"))
		require.NoError(t, err)
		assert.Empty(t, names)
	})
}

func TestListEmbedded(t *testing.T) {
	t.Run("in-memory fs", func(t *testing.T) {
		fsys := fstest.MapFS{
			"000001_a.up.sql":   {Data: []byte("--")},
			"000001_a.down.sql": {Data: []byte("--")},
		}
		names, err := ListEmbedded(fsys)
		require.NoError(t, err)
		assert.Equal(t, []string{"000001_a"}, names)
	})

	t.Run("shipped migrations pair up", func(t *testing.T) {
		names, err := ListEmbedded(migrations.FS)
		require.NoError(t, err)
		require.NotEmpty(t, names)
		assert.True(t, strings.HasPrefix(names[0], "000001_"))
		for _, n := range names {
			_, err := migrations.FS.Open(n + ".down.sql")
			assert.NoError(t, err, "missing down file for %s", n)
		}
		assert.Equal(t, len(names)+1, NextVersion(names))
	})
}
