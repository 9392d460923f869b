// Package update checks GitHub releases for newer capstan builds and
// installs them in place.
package update

import (
	"context"
	"fmt"
	"runtime"
	"strings"

	"github.com/creativeprojects/go-selfupdate"
)

const (
	// Repository owner and name for GitHub releases.
	repoOwner = "cameronsjo"
	repoName  = "capstan"
)

// Release contains information about an available update.
type Release struct {
	Version     string
	ReleaseURL  string
	PublishedAt string
	Changelog   string
}

// latest returns the newest release and whether it is newer than current.
func latest(ctx context.Context, current string) (*selfupdate.Updater, *selfupdate.Release, bool, error) {
	source, err := selfupdate.NewGitHubSource(selfupdate.GitHubConfig{})
	if err != nil {
		return nil, nil, false, fmt.Errorf("creating update source: %w", err)
	}

	updater, err := selfupdate.NewUpdater(selfupdate.Config{Source: source})
	if err != nil {
		return nil, nil, false, fmt.Errorf("creating updater: %w", err)
	}

	rel, found, err := updater.DetectLatest(ctx, selfupdate.NewRepositorySlug(repoOwner, repoName))
	if err != nil {
		return nil, nil, false, fmt.Errorf("detecting latest version: %w", err)
	}
	if !found {
		return nil, nil, false, fmt.Errorf("no releases found for %s/%s", repoOwner, repoName)
	}

	return updater, rel, !rel.LessOrEqual(current), nil
}

func toRelease(rel *selfupdate.Release) *Release {
	return &Release{
		Version:     rel.Version(),
		ReleaseURL:  rel.URL,
		PublishedAt: rel.PublishedAt.Format("2006-01-02"),
		Changelog:   rel.ReleaseNotes,
	}
}

// Check reports the newest release when it is newer than current.
func Check(ctx context.Context, current string) (*Release, bool, error) {
	_, rel, newer, err := latest(ctx, current)
	if err != nil || !newer {
		return nil, false, err
	}
	return toRelease(rel), true, nil
}

// Apply replaces the running executable with the newest release. It returns
// nil when current is already the newest.
func Apply(ctx context.Context, current string) (*Release, error) {
	updater, rel, newer, err := latest(ctx, current)
	if err != nil || !newer {
		return nil, err
	}

	exe, err := selfupdate.ExecutablePath()
	if err != nil {
		return nil, fmt.Errorf("getting executable path: %w", err)
	}
	if err := updater.UpdateTo(ctx, rel, exe); err != nil {
		return nil, fmt.Errorf("updating binary: %w", err)
	}

	return toRelease(rel), nil
}

// Platform returns the current os/arch pair.
func Platform() string {
	return fmt.Sprintf("%s/%s", runtime.GOOS, runtime.GOARCH)
}

// Excerpt returns at most maxLines lines of a changelog, followed by a
// count of the lines left out.
func Excerpt(changelog string, maxLines int) []string {
	changelog = strings.TrimSpace(changelog)
	if changelog == "" {
		return nil
	}

	lines := strings.Split(changelog, "\n")
	if len(lines) <= maxLines {
		return lines
	}
	out := append([]string(nil), lines[:maxLines]...)
	return append(out, fmt.Sprintf("... (%d more lines)", len(lines)-maxLines))
}
