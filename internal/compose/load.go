package compose

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"reflect"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/cameronsjo/capstan/internal/interpolate"
)

// Loaded is a decoded document along with the fields it declared that the
// schema does not know.
type Loaded struct {
	Source  string
	Doc     *Compose
	Unknown []string
}

// Loader turns sources into decoded documents.
type Loader struct {
	env           interpolate.Environment
	projectName   string
	noInterpolate bool
	workingDir    func() (string, error)
	warn          interpolate.Warner
}

// LoaderOption configures a Loader.
type LoaderOption func(*Loader)

// WithEnvironment sets the environment variables are read from and the
// project name is published to. The default is the process environment.
func WithEnvironment(env interpolate.Environment) LoaderOption {
	return func(l *Loader) {
		l.env = env
	}
}

// WithProjectName forces the project name of every document.
func WithProjectName(name string) LoaderOption {
	return func(l *Loader) {
		l.projectName = name
	}
}

// WithoutInterpolation leaves ${VAR} references in the documents as written.
func WithoutInterpolation() LoaderOption {
	return func(l *Loader) {
		l.noInterpolate = true
	}
}

// WithWorkingDir sets the directory whose base name becomes the project name
// of documents that declare none.
func WithWorkingDir(dir string) LoaderOption {
	return func(l *Loader) {
		l.workingDir = func() (string, error) { return dir, nil }
	}
}

// WithWarner sets the receiver of non-fatal diagnostics.
func WithWarner(warn interpolate.Warner) LoaderOption {
	return func(l *Loader) {
		l.warn = warn
	}
}

// NewLoader creates a Loader.
func NewLoader(opts ...LoaderOption) *Loader {
	l := &Loader{
		env:        interpolate.OSEnv{},
		workingDir: os.Getwd,
		warn:       func(string, ...any) {},
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Load loads every source in order. Sources are processed one at a time so
// the project name published by one is visible to the next; the first
// failure aborts the run.
func (l *Loader) Load(sources []Source) ([]Loaded, error) {
	loaded := make([]Loaded, 0, len(sources))
	for _, src := range sources {
		doc, err := l.LoadSource(src)
		if err != nil {
			return nil, err
		}
		loaded = append(loaded, *doc)
	}
	return loaded, nil
}

// LoadSource parses, interpolates and decodes a single source.
func (l *Loader) LoadSource(src Source) (*Loaded, error) {
	var root yaml.Node
	if err := yaml.Unmarshal(src.Data, &root); err != nil {
		return nil, fmt.Errorf("parse %s: %w", src.Name, err)
	}

	doc := documentMapping(&root)
	if doc == nil {
		return nil, &SchemaError{Source: src.Name, Err: errors.New("top-level value must be a mapping")}
	}

	nameNode, err := l.resolveProjectName(doc)
	if err != nil {
		var schemaErr *SchemaError
		if errors.As(err, &schemaErr) {
			schemaErr.Source = src.Name
			return nil, err
		}
		return nil, fmt.Errorf("%s: %w", src.Name, err)
	}

	if !l.noInterpolate {
		walker := interpolate.NewWalker(interpolate.NewEvaluator(l.env, l.warn))
		for i := 0; i+1 < len(doc.Content); i += 2 {
			key, value := doc.Content[i], doc.Content[i+1]
			if value == nameNode {
				continue
			}
			if err := walker.Interpolate(value, key.Value); err != nil {
				return nil, fmt.Errorf("%s: %w", src.Name, err)
			}
		}
	}

	var c Compose
	if err := doc.Decode(&c); err != nil {
		return nil, &SchemaError{Source: src.Name, Err: err}
	}

	unknown := UnknownFields(doc, reflect.TypeFor[Compose]())
	if len(unknown) > 0 {
		l.warn("Unsupported/unknown properties in %s: %s", src.Name, strings.Join(unknown, ", "))
	}

	return &Loaded{Source: src.Name, Doc: &c, Unknown: unknown}, nil
}

// resolveProjectName sets the document's name field and publishes it.
// The explicit name wins, then the document's own name, then the working
// directory's base name. It returns the name value node.
func (l *Loader) resolveProjectName(doc *yaml.Node) (*yaml.Node, error) {
	var name string

	node := mappingValue(doc, "name")
	switch {
	case l.projectName != "":
		name = l.projectName
		node = setMappingValue(doc, "name", name)

	case node != nil:
		node = resolveAlias(node)
		text, err := l.projectNameText(node)
		if err != nil {
			return nil, err
		}
		name = text
		node.Value = name
		node.Tag = "!!str"

	default:
		dir, err := l.workingDir()
		if err != nil {
			return nil, fmt.Errorf("determine project name: %w", err)
		}
		name = filepath.Base(dir)
		node = setMappingValue(doc, "name", name)
	}

	if err := l.env.Setenv(ProjectNameEnv, name); err != nil {
		return nil, fmt.Errorf("publish project name: %w", err)
	}
	return node, nil
}

// projectNameText interpolates a textual name on its own and renders
// boolean and numeric names as text.
func (l *Loader) projectNameText(node *yaml.Node) (string, error) {
	if node.Kind == yaml.ScalarNode && node.ShortTag() == "!!str" {
		if l.noInterpolate {
			return node.Value, nil
		}
		text, err := interpolate.NewEvaluator(l.env, l.warn).Expand(node.Value)
		if err != nil {
			return "", &interpolate.PathError{Path: "name", Err: err}
		}
		return text, nil
	}

	if node.Kind != yaml.ScalarNode {
		return "", &SchemaError{Err: fmt.Errorf("name: expected a string, got %s", describeNode(node))}
	}
	value, err := decodeNameValue(node)
	if err != nil {
		return "", &SchemaError{Err: err}
	}
	return value.displayString(), nil
}

// documentMapping returns the top-level mapping of a parsed document, or nil.
func documentMapping(root *yaml.Node) *yaml.Node {
	node := root
	if node.Kind == yaml.DocumentNode {
		if len(node.Content) == 0 {
			return nil
		}
		node = node.Content[0]
	}
	node = resolveAlias(node)
	if node.Kind != yaml.MappingNode {
		return nil
	}
	return node
}

func mappingValue(node *yaml.Node, key string) *yaml.Node {
	for i := 0; i+1 < len(node.Content); i += 2 {
		if node.Content[i].Value == key {
			return node.Content[i+1]
		}
	}
	return nil
}

// setMappingValue replaces or appends a string value under key.
func setMappingValue(node *yaml.Node, key, value string) *yaml.Node {
	v := &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: value}
	for i := 0; i+1 < len(node.Content); i += 2 {
		if node.Content[i].Value == key {
			node.Content[i+1] = v
			return v
		}
	}
	node.Content = append(node.Content,
		&yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: key},
		v,
	)
	return v
}
