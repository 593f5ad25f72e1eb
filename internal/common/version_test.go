package common

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadVersionFile(t *testing.T) {
	origVersion, origBuild, origCommit := Version, Build, GitCommit
	t.Cleanup(func() { Version, Build, GitCommit = origVersion, origBuild, origCommit })

	Version, Build, GitCommit = "dev", "unknown", "1a2b3c"

	path := filepath.Join(t.TempDir(), ".version")
	content := "# release metadata\nversion: 0.4.1\nbuild: 2025-10-19-10-00-00\ncommit: ffffff\nnonsense\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	loadVersionFile(path)

	info := GetVersionInfo()
	assert.Equal(t, "0.4.1", info.Version)
	assert.Equal(t, "2025-10-19-10-00-00", info.Build)
	assert.Equal(t, "1a2b3c", info.Commit, "ldflags values are kept")
	assert.Equal(t, "0.4.1 (build: 2025-10-19-10-00-00, commit: 1a2b3c)", GetFullVersion())
}

func TestLoadVersionFile_Missing(t *testing.T) {
	origVersion := Version
	t.Cleanup(func() { Version = origVersion })

	Version = "dev"
	loadVersionFile(filepath.Join(t.TempDir(), "absent"))
	assert.Equal(t, "dev", Version)
}
