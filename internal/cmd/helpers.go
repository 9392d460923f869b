package cmd

import (
	"github.com/cameronsjo/capstan/internal/compose"
	"github.com/cameronsjo/capstan/internal/config"
	"github.com/cameronsjo/capstan/internal/ui"
)

// loadProject resolves the compose files named by the global flags, loads
// each one and merges them into a single document.
func loadProject(noInterpolate bool) (*compose.Compose, error) {
	cfg, err := config.Load(config.Options{
		Files:       composeFiles,
		ProjectName: projectName,
	})
	if err != nil {
		return nil, err
	}

	sources, err := compose.ReadSources(cfg.Files)
	if err != nil {
		return nil, err
	}

	opts := []compose.LoaderOption{
		compose.WithWorkingDir(cfg.WorkingDir),
		compose.WithWarner(ui.Warning),
	}
	if cfg.ProjectName != "" {
		opts = append(opts, compose.WithProjectName(cfg.ProjectName))
	}
	if noInterpolate {
		opts = append(opts, compose.WithoutInterpolation())
	}

	loaded, err := compose.NewLoader(opts...).Load(sources)
	if err != nil {
		return nil, err
	}
	return compose.Merge(loaded)
}
