// Package config resolves which compose files to load and the project name
// to load them under.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Environment variables consulted when flags are not given.
const (
	FileEnv          = "COMPOSE_FILE"
	PathSeparatorEnv = "COMPOSE_PATH_SEPARATOR"
	ProjectNameEnv   = "COMPOSE_PROJECT_NAME"
)

// ErrNoConfigFile indicates that no compose file was given and none was found.
var ErrNoConfigFile = errors.New("no configuration file provided: not found")

// CandidateFiles are the file names searched for, in order of preference.
var CandidateFiles = []string{
	"compose.yaml",
	"compose.yml",
	"docker-compose.yaml",
	"docker-compose.yml",
}

// overrideFiles maps a discovered file to the override files loaded after it.
var overrideFiles = map[string][]string{
	"compose.yaml":        {"compose.override.yaml", "compose.override.yml"},
	"compose.yml":         {"compose.override.yaml", "compose.override.yml"},
	"docker-compose.yaml": {"docker-compose.override.yaml", "docker-compose.override.yml"},
	"docker-compose.yml":  {"docker-compose.override.yaml", "docker-compose.override.yml"},
}

// Options are the user-supplied inputs to Load.
type Options struct {
	// Files are the -f flags, in order.
	Files []string

	// ProjectName is the -p flag.
	ProjectName string

	// WorkingDir overrides the process working directory.
	WorkingDir string

	// LookupEnv overrides os.LookupEnv.
	LookupEnv func(string) (string, bool)
}

// Config is the resolved invocation configuration.
type Config struct {
	// Files are the compose files to load, in merge order.
	Files []string

	// ProjectName is the explicitly requested project name, or empty.
	ProjectName string

	// WorkingDir is the directory the project name falls back to.
	WorkingDir string
}

// Load resolves opts against the environment and the file system.
func Load(opts Options) (*Config, error) {
	lookup := opts.LookupEnv
	if lookup == nil {
		lookup = os.LookupEnv
	}

	wd := opts.WorkingDir
	if wd == "" {
		var err error
		wd, err = os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("get working directory: %w", err)
		}
	}

	cfg := &Config{WorkingDir: wd, ProjectName: opts.ProjectName}
	if cfg.ProjectName == "" {
		cfg.ProjectName, _ = lookup(ProjectNameEnv)
	}

	fromEnv := envFiles(lookup)
	switch {
	case len(opts.Files) > 0:
		cfg.Files = append([]string(nil), opts.Files...)

	case len(fromEnv) > 0:
		cfg.Files = fromEnv

	default:
		files, err := FindComposeFiles(wd)
		if err != nil {
			return nil, err
		}
		cfg.Files = files
	}

	return cfg, nil
}

// envFiles splits COMPOSE_FILE, or returns nil when it is unset or empty.
func envFiles(lookup func(string) (string, bool)) []string {
	value, ok := lookup(FileEnv)
	if !ok || value == "" {
		return nil
	}

	sep := string(os.PathListSeparator)
	if s, ok := lookup(PathSeparatorEnv); ok && s != "" {
		sep = s
	}

	var files []string
	for _, f := range strings.Split(value, sep) {
		if f = strings.TrimSpace(f); f != "" {
			files = append(files, f)
		}
	}
	return files
}

// FindComposeFiles searches upward from dir for the first directory holding
// a compose file. It returns that file followed by its override file, if any.
func FindComposeFiles(dir string) ([]string, error) {
	dir, err := filepath.Abs(dir)
	if err != nil {
		return nil, fmt.Errorf("resolve %s: %w", dir, err)
	}

	for {
		for _, name := range CandidateFiles {
			path := filepath.Join(dir, name)
			if !isFile(path) {
				continue
			}

			files := []string{path}
			for _, override := range overrideFiles[name] {
				if p := filepath.Join(dir, override); isFile(p) {
					files = append(files, p)
					break
				}
			}
			return files, nil
		}

		// Move up one directory
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}

	return nil, ErrNoConfigFile
}

func isFile(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}
