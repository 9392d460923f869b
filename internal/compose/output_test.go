package compose

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

const projectionDoc = `
name: shop
services:
  web:
    image: nginx
    profiles: [frontend, debug]
  worker:
    build: ./worker
    profiles: [backend, debug]
  db:
    image: postgres
volumes:
  data: {}
  cache: {}
`

func TestProjections(t *testing.T) {
	doc := mustLoad(t, "compose.yaml", projectionDoc).Doc

	assert.Equal(t, []string{"web", "worker", "db"}, doc.ServiceNames())
	assert.Equal(t, []string{"data", "cache"}, doc.VolumeNames())
	assert.Equal(t, []string{"frontend", "debug", "backend"}, doc.Profiles())
	assert.Equal(t, []string{"nginx", "postgres"}, doc.Images())
}

func TestProjections_Empty(t *testing.T) {
	doc := mustLoad(t, "compose.yaml", "services: {}\n").Doc

	assert.Empty(t, doc.ServiceNames())
	assert.Empty(t, doc.VolumeNames())
	assert.Empty(t, doc.Profiles())
	assert.Empty(t, doc.Images())
}

func TestParseFormat(t *testing.T) {
	tests := []struct {
		input   string
		want    Format
		wantErr bool
	}{
		{"yaml", FormatYAML, false},
		{"yml", FormatYAML, false},
		{"JSON", FormatJSON, false},
		{"toml", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseFormat(tt.input)
			if tt.wantErr {
				require.Error(t, err)
				assert.Contains(t, err.Error(), "supported: yaml, json")
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestRender_JSON(t *testing.T) {
	doc := mustLoad(t, "compose.yaml", `
name: shop
services:
  web:
    image: nginx
    ports: ["8080:80"]
  db:
    image: postgres
volumes:
  data: {}
`).Doc

	out, err := Render(doc, FormatJSON)
	require.NoError(t, err)

	want := `{
  "name": "shop",
  "services": {
    "web": {
      "image": "nginx",
      "ports": [
        "8080:80"
      ]
    },
    "db": {
      "image": "postgres"
    }
  },
  "volumes": {
    "data": {}
  }
}
`
	assert.Equal(t, want, string(out))
}

func TestRender_YAML(t *testing.T) {
	doc := mustLoad(t, "compose.yaml", `
name: shop
services:
  web:
    image: nginx
  db:
    image: postgres
`).Doc

	out, err := Render(doc, FormatYAML)
	require.NoError(t, err)

	want := `name: shop
services:
  web:
    image: nginx
  db:
    image: postgres
`
	assert.Equal(t, want, string(out))
}

func TestRender_RoundTrip(t *testing.T) {
	doc := mustLoad(t, "compose.yaml", projectionDoc).Doc

	for _, f := range []Format{FormatYAML, FormatJSON} {
		t.Run(f.String(), func(t *testing.T) {
			out, err := Render(doc, f)
			require.NoError(t, err)

			// JSON is valid YAML, so both decode the same way.
			var again Compose
			require.NoError(t, yaml.Unmarshal(out, &again))
			assert.Equal(t, doc.ServiceNames(), again.ServiceNames())
			assert.Equal(t, doc.Profiles(), again.Profiles())
			assert.Equal(t, doc.Images(), again.Images())

			if f == FormatJSON {
				assert.True(t, json.Valid(out))
			}
		})
	}
}
