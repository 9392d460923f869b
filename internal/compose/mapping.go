package compose

import (
	"bytes"
	"encoding/json"
	"fmt"
	"iter"
	"reflect"

	"gopkg.in/yaml.v3"
)

// Mapping is a string-keyed map that remembers insertion order. Overwriting
// an existing key keeps its original position.
type Mapping[V any] struct {
	keys   []string
	values map[string]V
}

// NewMapping returns an empty Mapping.
func NewMapping[V any]() *Mapping[V] {
	return &Mapping[V]{values: make(map[string]V)}
}

// Len returns the number of entries.
func (m *Mapping[V]) Len() int {
	if m == nil {
		return 0
	}
	return len(m.keys)
}

// Get returns the value stored under key.
func (m *Mapping[V]) Get(key string) (V, bool) {
	if m == nil {
		var zero V
		return zero, false
	}
	v, ok := m.values[key]
	return v, ok
}

// Set stores value under key.
func (m *Mapping[V]) Set(key string, value V) {
	if m.values == nil {
		m.values = make(map[string]V)
	}
	if _, ok := m.values[key]; !ok {
		m.keys = append(m.keys, key)
	}
	m.values[key] = value
}

// Keys returns the keys in insertion order.
func (m *Mapping[V]) Keys() []string {
	if m == nil {
		return nil
	}
	return append([]string(nil), m.keys...)
}

// All iterates over entries in insertion order.
func (m *Mapping[V]) All() iter.Seq2[string, V] {
	return func(yield func(string, V) bool) {
		if m == nil {
			return
		}
		for _, k := range m.keys {
			if !yield(k, m.values[k]) {
				return
			}
		}
	}
}

// Extend copies every entry of other into m, overwriting on collision.
func (m *Mapping[V]) Extend(other *Mapping[V]) {
	for k, v := range other.All() {
		m.Set(k, v)
	}
}

func (Mapping[V]) mappingValueType() reflect.Type {
	return reflect.TypeFor[V]()
}

// UnmarshalYAML decodes a mapping node, honoring "<<" merge keys.
func (m *Mapping[V]) UnmarshalYAML(node *yaml.Node) error {
	node = resolveAlias(node)
	if node.Kind != yaml.MappingNode {
		return fmt.Errorf("line %d: expected a mapping, got %s", node.Line, describeNode(node))
	}

	*m = Mapping[V]{values: make(map[string]V)}

	var merged []*yaml.Node
	seen := make(map[string]bool, len(node.Content)/2)

	for i := 0; i+1 < len(node.Content); i += 2 {
		key, value := node.Content[i], node.Content[i+1]
		if isMergeKey(key) {
			merged = append(merged, mergeSources(value)...)
			continue
		}
		if seen[key.Value] {
			return fmt.Errorf("line %d: duplicate key %q", key.Line, key.Value)
		}
		seen[key.Value] = true

		var v V
		if err := value.Decode(&v); err != nil {
			return err
		}
		m.Set(key.Value, v)
	}

	// Explicit keys win over merged ones, and earlier merge sources win
	// over later ones.
	for _, src := range merged {
		for i := 0; i+1 < len(src.Content); i += 2 {
			key := src.Content[i].Value
			if _, ok := m.values[key]; ok {
				continue
			}
			var v V
			if err := src.Content[i+1].Decode(&v); err != nil {
				return err
			}
			m.Set(key, v)
		}
	}

	return nil
}

// MarshalYAML encodes the entries in insertion order.
func (m Mapping[V]) MarshalYAML() (any, error) {
	node := &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
	for _, k := range m.keys {
		var value yaml.Node
		if err := value.Encode(m.values[k]); err != nil {
			return nil, fmt.Errorf("encode %s: %w", k, err)
		}
		node.Content = append(node.Content,
			&yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: k},
			&value,
		)
	}
	return node, nil
}

// MarshalJSON encodes the entries as a JSON object in insertion order.
func (m Mapping[V]) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, k := range m.keys {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := marshalJSON(k)
		if err != nil {
			return nil, err
		}
		value, err := marshalJSON(m.values[k])
		if err != nil {
			return nil, fmt.Errorf("encode %s: %w", k, err)
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(value)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// marshalJSON is json.Marshal without HTML escaping.
func marshalJSON(v any) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	return bytes.TrimRight(buf.Bytes(), "\n"), nil
}

func resolveAlias(node *yaml.Node) *yaml.Node {
	for node.Kind == yaml.AliasNode && node.Alias != nil {
		node = node.Alias
	}
	return node
}

func isMergeKey(key *yaml.Node) bool {
	return key.Kind == yaml.ScalarNode && key.Value == "<<" && (key.Tag == "!!merge" || key.Tag == "")
}

// mergeSources returns the mappings referenced by the value of a "<<" key.
func mergeSources(value *yaml.Node) []*yaml.Node {
	value = resolveAlias(value)
	switch value.Kind {
	case yaml.MappingNode:
		return []*yaml.Node{value}
	case yaml.SequenceNode:
		var out []*yaml.Node
		for _, item := range value.Content {
			if item = resolveAlias(item); item.Kind == yaml.MappingNode {
				out = append(out, item)
			}
		}
		return out
	}
	return nil
}

func describeNode(node *yaml.Node) string {
	switch node.Kind {
	case yaml.SequenceNode:
		return "a sequence"
	case yaml.MappingNode:
		return "a mapping"
	case yaml.ScalarNode:
		return fmt.Sprintf("%s %q", node.ShortTag(), node.Value)
	default:
		return "nothing"
	}
}
