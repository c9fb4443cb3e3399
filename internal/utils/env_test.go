package utils

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFindProjectRoot(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(root, "go.mod"), []byte("module x\n"), 0o644))
	nested := filepath.Join(root, "a", "b")
	require.NoError(t, os.MkdirAll(nested, 0o755))
	t.Chdir(nested)

	got, err := FindProjectRoot()
	require.NoError(t, err)
	want, _ := filepath.EvalSymlinks(root)
	gotResolved, _ := filepath.EvalSymlinks(got)
	assert.Equal(t, want, gotResolved)
}

func TestLoadEnv(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(root, "go.mod"), []byte("module x\n"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(root, ".env"), []byte("PROMPTBOX_TEST_VALUE=from-dotenv\n"), 0o644))
	t.Chdir(root)
	t.Setenv("PROMPTBOX_TEST_VALUE", "")
	require.NoError(t, os.Unsetenv("PROMPTBOX_TEST_VALUE"))

	require.NoError(t, LoadEnv())
	assert.Equal(t, "from-dotenv", os.Getenv("PROMPTBOX_TEST_VALUE"))
}

func TestLoadEnv_MissingFile(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(root, "go.mod"), []byte("module x\n"), 0o644))
	t.Chdir(root)

	assert.NoError(t, LoadEnv())
}
