package compose

import (
	"reflect"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

var (
	shaperType      = reflect.TypeFor[yamlShaper]()
	mappingType     = reflect.TypeFor[mappingOf]()
	unmarshalerType = reflect.TypeFor[yaml.Unmarshaler]()
)

// mappingOf is implemented by Mapping to expose its value type.
type mappingOf interface {
	mappingValueType() reflect.Type
}

// UnknownFields returns the dotted paths of fields in node that t does not
// declare, in document order and without duplicates. Keys starting with
// "x-" are extensions and never reported. Sequence elements contribute
// their index to the path.
func UnknownFields(node *yaml.Node, t reflect.Type) []string {
	c := &unknownCollector{seen: make(map[string]bool)}
	c.walk(node, t, nil)
	return c.paths
}

type unknownCollector struct {
	paths []string
	seen  map[string]bool
}

func (c *unknownCollector) add(path []string) {
	p := strings.Join(path, ".")
	if c.seen[p] {
		return
	}
	c.seen[p] = true
	c.paths = append(c.paths, p)
}

func (c *unknownCollector) walk(node *yaml.Node, t reflect.Type, path []string) {
	if node == nil {
		return
	}
	if node.Kind == yaml.DocumentNode {
		for _, child := range node.Content {
			c.walk(child, t, path)
		}
		return
	}
	node = resolveAlias(node)
	if node.ShortTag() == "!!null" {
		return
	}

	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	ptr := reflect.PointerTo(t)

	switch {
	case ptr.Implements(shaperType):
		shape := reflect.New(t).Interface().(yamlShaper).yamlShape(node)
		if shape != nil {
			c.walk(node, shape, path)
		}
		return

	case ptr.Implements(mappingType):
		elem := reflect.New(t).Interface().(mappingOf).mappingValueType()
		c.entries(node, path, func(_ string, value *yaml.Node, p []string) {
			c.walk(value, elem, p)
		})
		return

	case ptr.Implements(unmarshalerType):
		// custom decoding without named fields
		return
	}

	switch t.Kind() {
	case reflect.Struct:
		fields := yamlFields(t)
		c.entries(node, path, func(key string, value *yaml.Node, p []string) {
			field, ok := fields[key]
			if !ok {
				c.add(p)
				return
			}
			c.walk(value, field, p)
		})

	case reflect.Map:
		elem := t.Elem()
		c.entries(node, path, func(_ string, value *yaml.Node, p []string) {
			c.walk(value, elem, p)
		})

	case reflect.Slice, reflect.Array:
		if node.Kind != yaml.SequenceNode {
			return
		}
		for i, item := range node.Content {
			c.walk(item, t.Elem(), appendPath(path, strconv.Itoa(i)))
		}
	}
}

// entries calls fn for every key/value pair of a mapping node, following
// "<<" merge keys and skipping extension keys.
func (c *unknownCollector) entries(node *yaml.Node, path []string, fn func(key string, value *yaml.Node, path []string)) {
	if node.Kind != yaml.MappingNode {
		return
	}
	for i := 0; i+1 < len(node.Content); i += 2 {
		key, value := node.Content[i], node.Content[i+1]
		if isMergeKey(key) {
			for _, src := range mergeSources(value) {
				c.entries(src, path, fn)
			}
			continue
		}
		if strings.HasPrefix(key.Value, "x-") {
			continue
		}
		fn(key.Value, value, appendPath(path, key.Value))
	}
}

// yamlFields maps the yaml names of t's exported fields to their types.
func yamlFields(t reflect.Type) map[string]reflect.Type {
	fields := make(map[string]reflect.Type, t.NumField())
	for i := range t.NumField() {
		f := t.Field(i)
		if !f.IsExported() {
			continue
		}
		name, _, _ := strings.Cut(f.Tag.Get("yaml"), ",")
		switch name {
		case "-":
			continue
		case "":
			name = strings.ToLower(f.Name)
		}
		fields[name] = f.Type
	}
	return fields
}

func appendPath(path []string, key string) []string {
	out := make([]string, len(path), len(path)+1)
	copy(out, path)
	return append(out, key)
}
