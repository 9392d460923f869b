package compose

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

// Format is an output encoding for a document.
type Format int

const (
	FormatYAML Format = iota
	FormatJSON
)

// Formats lists the names accepted by ParseFormat.
var Formats = []string{"yaml", "json"}

// ParseFormat parses a format name.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "yaml", "yml":
		return FormatYAML, nil
	case "json":
		return FormatJSON, nil
	}
	return 0, fmt.Errorf("unsupported format %q (supported: %s)", s, strings.Join(Formats, ", "))
}

func (f Format) String() string {
	if f == FormatJSON {
		return "json"
	}
	return "yaml"
}

// Render encodes c in the given format. JSON output is indented and ends
// with a newline.
func Render(c *Compose, f Format) ([]byte, error) {
	var buf bytes.Buffer

	switch f {
	case FormatJSON:
		enc := json.NewEncoder(&buf)
		enc.SetEscapeHTML(false)
		enc.SetIndent("", "  ")
		if err := enc.Encode(c); err != nil {
			return nil, fmt.Errorf("encode json: %w", err)
		}

	default:
		enc := yaml.NewEncoder(&buf)
		enc.SetIndent(2)
		if err := enc.Encode(c); err != nil {
			return nil, fmt.Errorf("encode yaml: %w", err)
		}
		if err := enc.Close(); err != nil {
			return nil, fmt.Errorf("encode yaml: %w", err)
		}
	}

	return buf.Bytes(), nil
}

// ServiceNames returns service names in document order.
func (c *Compose) ServiceNames() []string {
	return c.Services.Keys()
}

// VolumeNames returns top-level volume names in document order.
func (c *Compose) VolumeNames() []string {
	return c.Volumes.Keys()
}

// Profiles returns every profile used by any service, without duplicates,
// in order of first use.
func (c *Compose) Profiles() []string {
	var profiles []string
	seen := make(map[string]bool)
	for _, svc := range c.Services.All() {
		for _, p := range svc.Profiles {
			if !seen[p] {
				seen[p] = true
				profiles = append(profiles, p)
			}
		}
	}
	return profiles
}

// Images returns the image of every service that declares one.
func (c *Compose) Images() []string {
	var images []string
	for _, svc := range c.Services.All() {
		if svc.Image != nil {
			images = append(images, *svc.Image)
		}
	}
	return images
}
