package compose

import (
	"fmt"
	"math"
	"strconv"

	"gopkg.in/yaml.v3"
)

// ProjectNameEnv is the variable the resolved project name is published to.
const ProjectNameEnv = "COMPOSE_PROJECT_NAME"

// nameValue is a non-textual project name as written in a document.
type nameValue interface {
	displayString() string
}

type (
	boolName  bool
	intName   int64
	uintName  uint64
	floatName float64
)

func (b boolName) displayString() string { return strconv.FormatBool(bool(b)) }
func (i intName) displayString() string  { return strconv.FormatInt(int64(i), 10) }
func (u uintName) displayString() string { return strconv.FormatUint(uint64(u), 10) }

func (f floatName) displayString() string {
	v := float64(f)
	switch {
	case math.IsInf(v, 1):
		return "inf"
	case math.IsInf(v, -1):
		return "-inf"
	case math.IsNaN(v):
		return "NaN"
	}
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// decodeNameValue reads a bool, int or float scalar. Integers too large for
// int64 fall back to uint64.
func decodeNameValue(node *yaml.Node) (nameValue, error) {
	switch node.ShortTag() {
	case "!!bool":
		var b bool
		err := node.Decode(&b)
		return boolName(b), err
	case "!!int":
		var i int64
		if err := node.Decode(&i); err == nil {
			return intName(i), nil
		}
		var u uint64
		err := node.Decode(&u)
		return uintName(u), err
	case "!!float":
		var f float64
		err := node.Decode(&f)
		return floatName(f), err
	}
	return nil, fmt.Errorf("name: expected a string, got %s", describeNode(node))
}
