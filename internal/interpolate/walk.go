package interpolate

import (
	"strings"

	"gopkg.in/yaml.v3"
)

// Walker interpolates every string scalar of a YAML node tree.
type Walker struct {
	eval *Evaluator
}

// NewWalker returns a Walker that expands scalars with e.
func NewWalker(e *Evaluator) *Walker {
	return &Walker{eval: e}
}

// Interpolate expands string scalars under node in place. Mapping keys are
// never expanded. path is the field path of node itself; failures are
// returned as *PathError carrying the path of the failing field.
//
// Sequence indices are not part of the path. Alias nodes are skipped since
// their anchors are expanded where they are defined.
func (w *Walker) Interpolate(node *yaml.Node, path ...string) error {
	if node == nil {
		return nil
	}

	switch node.Kind {
	case yaml.DocumentNode, yaml.SequenceNode:
		for _, child := range node.Content {
			if err := w.Interpolate(child, path...); err != nil {
				return err
			}
		}

	case yaml.MappingNode:
		for i := 0; i+1 < len(node.Content); i += 2 {
			key, value := node.Content[i], node.Content[i+1]
			if err := w.Interpolate(value, appendPath(path, key.Value)...); err != nil {
				return err
			}
		}

	case yaml.ScalarNode:
		if node.ShortTag() != "!!str" {
			return nil
		}
		expanded, err := w.eval.Expand(node.Value)
		if err != nil {
			return &PathError{Path: strings.Join(path, "."), Err: err}
		}
		if expanded != node.Value {
			SetScalar(node, expanded)
		}
	}

	return nil
}

// SetScalar replaces the text of a scalar node. A plain, untagged scalar is
// re-typed when its new text reads as a bool, int or float, so that
// "${PORT:-80}" decodes into numeric fields the same way a literal 80 would.
func SetScalar(node *yaml.Node, value string) {
	node.Kind = yaml.ScalarNode
	node.Value = value
	node.Tag = "!!str"

	const quoted = yaml.TaggedStyle | yaml.DoubleQuotedStyle | yaml.SingleQuotedStyle |
		yaml.LiteralStyle | yaml.FoldedStyle
	if node.Style&quoted != 0 {
		return
	}

	probe := yaml.Node{Kind: yaml.ScalarNode, Value: value}
	switch tag := probe.ShortTag(); tag {
	case "!!bool", "!!int", "!!float":
		node.Tag = tag
	}
}

func appendPath(path []string, key string) []string {
	out := make([]string, len(path), len(path)+1)
	copy(out, path)
	return append(out, key)
}
