package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// evalSymlinks resolves symlinks for path comparison (macOS /var -> /private/var).
func evalSymlinks(t *testing.T, path string) string {
	t.Helper()
	resolved, err := filepath.EvalSymlinks(path)
	if err != nil {
		return path
	}
	return resolved
}

func touch(t *testing.T, path string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, []byte("services: {}\n"), 0644))
}

func envOf(vars map[string]string) func(string) (string, bool) {
	return func(name string) (string, bool) {
		v, ok := vars[name]
		return v, ok
	}
}

func TestFindComposeFiles_SearchesUpward(t *testing.T) {
	tmpDir := evalSymlinks(t, t.TempDir())
	touch(t, filepath.Join(tmpDir, "docker-compose.yml"))

	subDir := filepath.Join(tmpDir, "sub", "deep")
	require.NoError(t, os.MkdirAll(subDir, 0755))

	files, err := FindComposeFiles(subDir)
	require.NoError(t, err)
	assert.Equal(t, []string{filepath.Join(tmpDir, "docker-compose.yml")}, files)
}

func TestFindComposeFiles_Preference(t *testing.T) {
	tmpDir := evalSymlinks(t, t.TempDir())
	touch(t, filepath.Join(tmpDir, "docker-compose.yaml"))
	touch(t, filepath.Join(tmpDir, "compose.yml"))

	files, err := FindComposeFiles(tmpDir)
	require.NoError(t, err)
	assert.Equal(t, []string{filepath.Join(tmpDir, "compose.yml")}, files)
}

func TestFindComposeFiles_NearestWins(t *testing.T) {
	tmpDir := evalSymlinks(t, t.TempDir())
	touch(t, filepath.Join(tmpDir, "compose.yaml"))
	touch(t, filepath.Join(tmpDir, "app", "docker-compose.yml"))

	files, err := FindComposeFiles(filepath.Join(tmpDir, "app"))
	require.NoError(t, err)
	assert.Equal(t, []string{filepath.Join(tmpDir, "app", "docker-compose.yml")}, files)
}

func TestFindComposeFiles_Override(t *testing.T) {
	tmpDir := evalSymlinks(t, t.TempDir())
	touch(t, filepath.Join(tmpDir, "compose.yaml"))
	touch(t, filepath.Join(tmpDir, "compose.override.yml"))
	touch(t, filepath.Join(tmpDir, "docker-compose.override.yml"))

	files, err := FindComposeFiles(tmpDir)
	require.NoError(t, err)
	assert.Equal(t, []string{
		filepath.Join(tmpDir, "compose.yaml"),
		filepath.Join(tmpDir, "compose.override.yml"),
	}, files)
}

func TestFindComposeFiles_IgnoresDirectories(t *testing.T) {
	tmpDir := evalSymlinks(t, t.TempDir())
	require.NoError(t, os.MkdirAll(filepath.Join(tmpDir, "compose.yaml"), 0755))
	touch(t, filepath.Join(tmpDir, "compose.yml"))

	files, err := FindComposeFiles(tmpDir)
	require.NoError(t, err)
	assert.Equal(t, []string{filepath.Join(tmpDir, "compose.yml")}, files)
}

func TestFindComposeFiles_NotFound(t *testing.T) {
	tmpDir := evalSymlinks(t, t.TempDir())

	_, err := FindComposeFiles(tmpDir)
	// A compose file above the temp dir would be found; only assert the
	// error when the search actually failed.
	if err != nil {
		assert.ErrorIs(t, err, ErrNoConfigFile)
		assert.EqualError(t, err, "no configuration file provided: not found")
	}
}

func TestLoad(t *testing.T) {
	tmpDir := evalSymlinks(t, t.TempDir())
	touch(t, filepath.Join(tmpDir, "compose.yaml"))

	tests := []struct {
		name        string
		opts        Options
		env         map[string]string
		wantFiles   []string
		wantProject string
	}{
		{
			name:      "discovered",
			wantFiles: []string{filepath.Join(tmpDir, "compose.yaml")},
		},
		{
			name:      "flags win over environment",
			opts:      Options{Files: []string{"a.yml", "b.yml"}},
			env:       map[string]string{FileEnv: "c.yml"},
			wantFiles: []string{"a.yml", "b.yml"},
		},
		{
			name:      "environment file list",
			env:       map[string]string{FileEnv: "c.yml" + string(os.PathListSeparator) + "d.yml"},
			wantFiles: []string{"c.yml", "d.yml"},
		},
		{
			name:      "custom separator",
			env:       map[string]string{FileEnv: "c.yml,d.yml", PathSeparatorEnv: ","},
			wantFiles: []string{"c.yml", "d.yml"},
		},
		{
			name:      "empty environment falls back to discovery",
			env:       map[string]string{FileEnv: ""},
			wantFiles: []string{filepath.Join(tmpDir, "compose.yaml")},
		},
		{
			name:        "project name flag wins",
			opts:        Options{ProjectName: "flag"},
			env:         map[string]string{ProjectNameEnv: "env"},
			wantFiles:   []string{filepath.Join(tmpDir, "compose.yaml")},
			wantProject: "flag",
		},
		{
			name:        "project name from environment",
			env:         map[string]string{ProjectNameEnv: "env"},
			wantFiles:   []string{filepath.Join(tmpDir, "compose.yaml")},
			wantProject: "env",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			opts := tt.opts
			opts.WorkingDir = tmpDir
			opts.LookupEnv = envOf(tt.env)

			cfg, err := Load(opts)
			require.NoError(t, err)
			assert.Equal(t, tt.wantFiles, cfg.Files)
			assert.Equal(t, tt.wantProject, cfg.ProjectName)
			assert.Equal(t, tmpDir, cfg.WorkingDir)
		})
	}
}

func TestLoad_DefaultsToProcess(t *testing.T) {
	tmpDir := evalSymlinks(t, t.TempDir())
	touch(t, filepath.Join(tmpDir, "compose.yaml"))

	originalWd, err := os.Getwd()
	require.NoError(t, err)
	defer os.Chdir(originalWd)
	require.NoError(t, os.Chdir(tmpDir))

	t.Setenv(FileEnv, "")
	t.Setenv(ProjectNameEnv, "from-env")

	cfg, err := Load(Options{})
	require.NoError(t, err)
	assert.Equal(t, tmpDir, evalSymlinks(t, cfg.WorkingDir))
	assert.Equal(t, "from-env", cfg.ProjectName)
	require.Len(t, cfg.Files, 1)
	assert.Equal(t, "compose.yaml", filepath.Base(cfg.Files[0]))
}
