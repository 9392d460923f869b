package interpolate

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func parseNode(t *testing.T, src string) *yaml.Node {
	t.Helper()
	var node yaml.Node
	require.NoError(t, yaml.Unmarshal([]byte(src), &node))
	return &node
}

func decodeAny(t *testing.T, node *yaml.Node) any {
	t.Helper()
	var out any
	require.NoError(t, node.Decode(&out))
	return out
}

func TestWalker_Interpolate(t *testing.T) {
	env := MapEnv{"IMG": "nginx", "PORT": "8080", "RO": "true", "EMPTY": ""}
	node := parseNode(t, `
services:
  web:
    image: ${IMG}:latest
    ports:
      - "${PORT}:80"
      - 443
    read_only: ${RO}
    replicas: ${PORT}
    quoted: "${PORT}"
    empty: ${EMPTY}
    enabled: true
    nothing: null
    ${IMG}: key is kept
`)

	rec := &recorder{}
	w := NewWalker(NewEvaluator(env, rec.warn))
	require.NoError(t, w.Interpolate(node))
	assert.Empty(t, rec.warnings)

	got := decodeAny(t, node)
	want := map[string]any{
		"services": map[string]any{
			"web": map[string]any{
				"image":     "nginx:latest",
				"ports":     []any{"8080:80", 443},
				"read_only": true,
				"replicas":  8080,
				"quoted":    "8080",
				"empty":     "",
				"enabled":   true,
				"nothing":   nil,
				"${IMG}":    "key is kept",
			},
		},
	}
	assert.Equal(t, want, got)
}

func TestWalker_ErrorPath(t *testing.T) {
	tests := []struct {
		name string
		src  string
		want string
	}{
		{
			name: "nested mapping",
			src:  "services:\n  web:\n    image: ${IMG?}\n",
			want: `services.web.image: Required variable "IMG" is missing a value`,
		},
		{
			name: "sequence element uses parent path",
			src:  "services:\n  web:\n    command: [run, \"${ARG?give an arg}\"]\n",
			want: `services.web.command: Required variable "ARG" is missing a value: give an arg`,
		},
		{
			name: "top level scalar",
			src:  "name: ${NAME?}\n",
			want: `name: Required variable "NAME" is missing a value`,
		},
		{
			name: "parse error",
			src:  "x:\n  y: ${BROKEN\n",
			want: `x.y: invalid interpolation format for "${BROKEN": missing closing brace`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := NewWalker(NewEvaluator(MapEnv{}, nil))
			err := w.Interpolate(parseNode(t, tt.src))
			require.Error(t, err)
			assert.EqualError(t, err, tt.want)

			var perr *PathError
			assert.ErrorAs(t, err, &perr)
		})
	}
}

func TestWalker_InitialPath(t *testing.T) {
	node := parseNode(t, "${X?}")
	err := NewWalker(NewEvaluator(MapEnv{}, nil)).Interpolate(node, "name")
	assert.EqualError(t, err, `name: Required variable "X" is missing a value`)
}

func TestWalker_Aliases(t *testing.T) {
	node := parseNode(t, `
base: &base
  image: ${IMG}
copy: *base
`)
	require.NoError(t, NewWalker(NewEvaluator(MapEnv{"IMG": "redis"}, nil)).Interpolate(node))

	got := decodeAny(t, node)
	assert.Equal(t, map[string]any{
		"base": map[string]any{"image": "redis"},
		"copy": map[string]any{"image": "redis"},
	}, got)
}

func TestSetScalar(t *testing.T) {
	tests := []struct {
		name  string
		style yaml.Style
		value string
		tag   string
	}{
		{"plain int", 0, "42", "!!int"},
		{"plain float", 0, "1.5", "!!float"},
		{"plain bool", 0, "false", "!!bool"},
		{"plain text", 0, "hello", "!!str"},
		{"plain empty", 0, "", "!!str"},
		{"plain null word", 0, "null", "!!str"},
		{"double quoted int", yaml.DoubleQuotedStyle, "42", "!!str"},
		{"single quoted bool", yaml.SingleQuotedStyle, "true", "!!str"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			node := &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Style: tt.style, Value: "$X"}
			SetScalar(node, tt.value)
			assert.Equal(t, tt.tag, node.Tag)
			assert.Equal(t, tt.value, node.Value)
		})
	}
}
