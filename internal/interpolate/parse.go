package interpolate

import "strings"

// MaxDepth bounds how deeply default, message and replacement expressions
// may nest inside each other.
const MaxDepth = 32

// Parse splits input into literal runs and variable references.
//
// A '$' that is not followed by '{' or an identifier start character is kept
// as literal text.
func Parse(input string) (Stream, error) {
	return parse(input, 0, false)
}

// parse tokenizes s. Nested text (the body of an operator) additionally
// treats "\}" as an escaped closing brace.
func parse(s string, depth int, nested bool) (Stream, error) {
	var (
		out Stream
		lit strings.Builder
	)

	flush := func() {
		if lit.Len() > 0 {
			out = append(out, Literal{Text: lit.String()})
			lit.Reset()
		}
	}

	for i := 0; i < len(s); {
		c := s[i]

		if nested && c == '\\' && i+1 < len(s) && s[i+1] == '}' {
			lit.WriteByte('}')
			i += 2
			continue
		}

		if c != '$' || i+1 >= len(s) {
			lit.WriteByte(c)
			i++
			continue
		}

		switch next := s[i+1]; {
		case next == '{':
			v, end, err := parseBraced(s, i, depth)
			if err != nil {
				return nil, err
			}
			flush()
			out = append(out, v)
			i = end

		case isNameStart(next):
			j := i + 1
			for j < len(s) && isNameChar(s[j]) {
				j++
			}
			flush()
			out = append(out, Variable{Name: s[i+1 : j]})
			i = j

		default:
			lit.WriteByte(c)
			i++
		}
	}

	flush()
	return out, nil
}

// parseBraced parses the ${...} form starting at s[start] == '$' and returns
// the reference along with the index just past its closing brace.
func parseBraced(s string, start, depth int) (Variable, int, error) {
	i := start + 2
	j := i
	if j < len(s) && isNameStart(s[j]) {
		for j < len(s) && isNameChar(s[j]) {
			j++
		}
	}

	if j == i {
		return Variable{}, 0, newParseError(s, fragment(s, start), "empty variable name")
	}
	if j >= len(s) {
		return Variable{}, 0, newParseError(s, s[start:], "missing closing brace")
	}

	name := s[i:j]
	c := s[j]
	if c == '}' {
		return Variable{Name: name}, j + 1, nil
	}

	presence := Set
	if c == ':' {
		presence = SetAndNonEmpty
		j++
		if j >= len(s) {
			return Variable{}, 0, newParseError(s, s[start:], "missing closing brace")
		}
		c = s[j]
	}

	var kind OperatorKind
	switch c {
	case '-':
		kind = Default
	case '?':
		kind = RequireOrFail
	case '+':
		kind = ReplaceIfPresent
	default:
		return Variable{}, 0, newParseError(s, fragment(s, start), "unrecognized operator "+quoteByte(c))
	}

	body := j + 1
	end := findClose(s, body)
	if end < 0 {
		return Variable{}, 0, newParseError(s, s[start:], "missing closing brace")
	}

	if depth+1 > MaxDepth {
		return Variable{}, 0, newParseError(s, s[start:end+1], "expression nested too deeply")
	}

	text, err := parse(s[body:end], depth+1, true)
	if err != nil {
		return Variable{}, 0, err
	}

	return Variable{
		Name: name,
		Op: &Operator{
			Kind:     kind,
			Presence: presence,
			Text:     text,
		},
	}, end + 1, nil
}

// findClose returns the index of the '}' closing an operator body that
// begins at from, skipping over nested ${...} expressions and "\}" escapes.
// It returns -1 when the body is unterminated.
func findClose(s string, from int) int {
	depth := 0
	for k := from; k < len(s); {
		switch {
		case s[k] == '\\' && k+1 < len(s) && s[k+1] == '}':
			k += 2
			continue
		case s[k] == '$' && k+1 < len(s) && s[k+1] == '{':
			depth++
			k += 2
			continue
		case s[k] == '}':
			if depth == 0 {
				return k
			}
			depth--
		}
		k++
	}
	return -1
}

// fragment returns the reference starting at start, up to and including
// the first closing brace if there is one.
func fragment(s string, start int) string {
	if end := strings.IndexByte(s[start:], '}'); end >= 0 {
		return s[start : start+end+1]
	}
	return s[start:]
}

func quoteByte(c byte) string {
	return "'" + string(c) + "'"
}

func isNameStart(c byte) bool {
	return c == '_' || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

func isNameChar(c byte) bool {
	return isNameStart(c) || (c >= '0' && c <= '9')
}
