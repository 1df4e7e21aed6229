package migration

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSanitizeName(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"add order notes", "add_order_notes"},
		{"Add-Menu-Items", "add_menu_items"},
		{"CREATE_DINING_TABLES", "create_dining_tables"},
		{"add__addon__groups", "add_addon_groups"},
		{"seed v2 data", "seed_v2_data"},
		{"   padded   ", "padded"},
		{"drop qr.tokens!", "drop_qr_tokens"},
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

func TestCreateMigration(t *testing.T) {
	t.Run("writes a matching up and down pair", func(t *testing.T) {
		dir := t.TempDir()

		mf, err := CreateMigration(dir, "add order notes", "Free-text notes column on orders")
		require.NoError(t, err)

		assert.Len(t, mf.Version, 14)
		assert.Equal(t, "add_order_notes", mf.Name)

		upBase := strings.TrimSuffix(filepath.Base(mf.UpPath), ".up.sql")
		downBase := strings.TrimSuffix(filepath.Base(mf.DownPath), ".down.sql")
		assert.Equal(t, upBase, downBase)

		upContent, err := os.ReadFile(mf.UpPath)
		require.NoError(t, err)
		assert.Contains(t, string(upContent), "add_order_notes")
		assert.Contains(t, string(upContent), "Free-text notes column on orders")

		downContent, err := os.ReadFile(mf.DownPath)
		require.NoError(t, err)
		assert.Contains(t, string(downContent), "Reverts:")
	})

	t.Run("creates the migrations directory when missing", func(t *testing.T) {
		nested := filepath.Join(t.TempDir(), "db", "migrations")

		_, err := CreateMigration(nested, "init schema", "Initial tenant schema")
		require.NoError(t, err)

		info, err := os.Stat(nested)
		require.NoError(t, err)
		assert.True(t, info.IsDir())
	})
}

func TestListMigrations(t *testing.T) {
	writeFiles := func(t *testing.T, dir string, names ...string) {
		t.Helper()
		for _, name := range names {
			require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte("-- sql"), 0644))
		}
	}

	t.Run("returns pairs sorted by version", func(t *testing.T) {
		dir := t.TempDir()
		writeFiles(t, dir,
			"000002_add_menus.up.sql",
			"000002_add_menus.down.sql",
			"000001_init_schema.up.sql",
			"000001_init_schema.down.sql",
			"000003_add_orders.up.sql",
			"000003_add_orders.down.sql",
		)

		migrations, err := ListMigrations(dir)
		require.NoError(t, err)
		assert.Equal(t, []string{
			"000001_init_schema",
			"000002_add_menus",
			"000003_add_orders",
		}, migrations)
	})

	t.Run("ignores files that are not up migrations", func(t *testing.T) {
		dir := t.TempDir()
		writeFiles(t, dir,
			"000001_init_schema.up.sql",
			"000001_init_schema.down.sql",
			"README.md",
			".gitkeep",
		)
		require.NoError(t, os.Mkdir(filepath.Join(dir, "archive.up.sql"), 0755))

		migrations, err := ListMigrations(dir)
		require.NoError(t, err)
		assert.Equal(t, []string{"000001_init_schema"}, migrations)
	})

	t.Run("missing directory is an empty list", func(t *testing.T) {
		migrations, err := ListMigrations(filepath.Join(t.TempDir(), "absent"))
		require.NoError(t, err)
		assert.Empty(t, migrations)
	})
}
