package cli

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/typelate/reportstamp/internal/stamp"
)

func env(values map[string]string) func(string) string {
	return func(key string) string { return values[key] }
}

func TestCommands(t *testing.T) {
	t.Run("unknown flag", func(t *testing.T) {
		err := Commands(t.TempDir(), []string{"reportstamp", "--unknown"}, env(nil), io.Discard, io.Discard)
		assert.ErrorContains(t, err, "unknown flag")
	})
	t.Run("unexpected argument", func(t *testing.T) {
		err := Commands(t.TempDir(), []string{"reportstamp", "update", "README.md"}, env(nil), io.Discard, io.Discard)
		assert.Error(t, err)
	})
	t.Run("no program name", func(t *testing.T) {
		dir := t.TempDir()
		err := Commands(dir, nil, env(nil), io.Discard, io.Discard)
		assert.ErrorIs(t, err, stamp.ErrDocumentNotFound)
	})
	t.Run("updates the document in the working directory", func(t *testing.T) {
		dir := t.TempDir()
		readme := filepath.Join(dir, stamp.DefaultDocument)
		require.NoError(t, os.WriteFile(readme, []byte("x\n"+stamp.StartMarker+stamp.EndMarker+"\ny\n"), 0o644))

		var stdout bytes.Buffer
		err := Commands(dir, []string{"reportstamp"}, env(map[string]string{
			stamp.RunStartedAtEnv: "2025-12-23T19:58:12Z",
		}), &stdout, io.Discard)
		require.NoError(t, err)
		assert.Equal(t, "README updated: 2025-12-23 19:58 UTC\n", stdout.String())

		got, err := os.ReadFile(readme)
		require.NoError(t, err)
		assert.Equal(t, "x\n"+stamp.Block("2025-12-23 19:58 UTC")+"\ny\n", string(got))
	})
}

func TestGlobalFlags_root(t *testing.T) {
	wd := filepath.FromSlash("/work/repo")
	for _, tt := range []struct {
		Name, ChangeRoot, Want string
	}{
		{Name: "default", ChangeRoot: "", Want: wd},
		{Name: "relative", ChangeRoot: "docs", Want: filepath.Join(wd, "docs")},
		{Name: "parent", ChangeRoot: "..", Want: filepath.Dir(wd)},
		{Name: "absolute", ChangeRoot: filepath.FromSlash("/srv/site"), Want: filepath.FromSlash("/srv/site")},
		{Name: "storage url", ChangeRoot: "mem://localhost/site", Want: "mem://localhost/site"},
	} {
		t.Run(tt.Name, func(t *testing.T) {
			g := globalFlags{changeRoot: tt.ChangeRoot}
			got, err := g.root(wd)
			require.NoError(t, err)
			assert.Equal(t, tt.Want, got)
		})
	}
}

func TestLookupRunStartedAt(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "ci.env"), []byte(stamp.RunStartedAtEnv+"=2024-06-01T08:15:00Z\n"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "empty.env"), []byte("OTHER=1\n"), 0o644))

	t.Run("environment wins", func(t *testing.T) {
		got, err := lookupRunStartedAt(dir, "ci.env", env(map[string]string{stamp.RunStartedAtEnv: "2025-12-23T19:58:12Z"}))
		require.NoError(t, err)
		assert.Equal(t, "2025-12-23T19:58:12Z", got)
	})
	t.Run("env file", func(t *testing.T) {
		got, err := lookupRunStartedAt(dir, "ci.env", env(nil))
		require.NoError(t, err)
		assert.Equal(t, "2024-06-01T08:15:00Z", got)
	})
	t.Run("absolute env file", func(t *testing.T) {
		got, err := lookupRunStartedAt(t.TempDir(), filepath.Join(dir, "ci.env"), env(nil))
		require.NoError(t, err)
		assert.Equal(t, "2024-06-01T08:15:00Z", got)
	})
	t.Run("blank environment value reads the env file", func(t *testing.T) {
		got, err := lookupRunStartedAt(dir, "ci.env", env(map[string]string{stamp.RunStartedAtEnv: "  \t"}))
		require.NoError(t, err)
		assert.Equal(t, "2024-06-01T08:15:00Z", got)
	})
	t.Run("env file without the variable", func(t *testing.T) {
		got, err := lookupRunStartedAt(dir, "empty.env", env(nil))
		require.NoError(t, err)
		assert.Empty(t, got)
	})
	t.Run("no env file", func(t *testing.T) {
		got, err := lookupRunStartedAt(dir, "", env(nil))
		require.NoError(t, err)
		assert.Empty(t, got)
	})
	t.Run("missing env file", func(t *testing.T) {
		_, err := lookupRunStartedAt(dir, "missing.env", env(nil))
		assert.ErrorContains(t, err, "failed to read env file")
	})
}
