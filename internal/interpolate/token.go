package interpolate

// Stream is the list of tokens produced by parsing a string.
type Stream []Token

// Token is implemented by [Literal] and [Variable].
type Token interface {
	token()
}

// Literal is text copied verbatim into the result.
type Literal struct {
	Text string
}

func (Literal) token() {}

// Variable is a reference to an environment variable, optionally with an
// expansion operator.
type Variable struct {
	Name string

	// Op is nil for plain $NAME and ${NAME} references.
	Op *Operator
}

func (Variable) token() {}

// Presence selects which existence test gates an operator.
type Presence int

const (
	// Set requires the variable to be defined.
	Set Presence = iota
	// SetAndNonEmpty requires the variable to be defined and not empty.
	SetAndNonEmpty
)

// Satisfied reports whether a lookup result passes the presence test.
func (p Presence) Satisfied(value string, ok bool) bool {
	if !ok {
		return false
	}
	return p == Set || value != ""
}

// OperatorKind identifies the expansion applied to a variable.
type OperatorKind int

const (
	// Default substitutes the nested text when the variable is absent.
	Default OperatorKind = iota
	// RequireOrFail fails with the nested text when the variable is absent.
	RequireOrFail
	// ReplaceIfPresent substitutes the nested text when the variable is present.
	ReplaceIfPresent
)

// Sigil returns the character that introduces the operator.
func (k OperatorKind) Sigil() byte {
	switch k {
	case RequireOrFail:
		return '?'
	case ReplaceIfPresent:
		return '+'
	default:
		return '-'
	}
}

func (k OperatorKind) String() string {
	switch k {
	case Default:
		return "default"
	case RequireOrFail:
		return "require"
	case ReplaceIfPresent:
		return "replace"
	default:
		return "unknown"
	}
}

// Operator is the expansion attached to a braced reference.
type Operator struct {
	Kind     OperatorKind
	Presence Presence

	// Text is the parsed fallback, message or replacement.
	Text Stream
}
