package interpolate

import "strings"

// Warner receives non-fatal diagnostics.
type Warner func(format string, args ...any)

// Evaluator resolves token streams against an environment.
type Evaluator struct {
	env  Env
	warn Warner
}

// NewEvaluator returns an Evaluator reading from env. A nil warn discards
// warnings.
func NewEvaluator(env Env, warn Warner) *Evaluator {
	if warn == nil {
		warn = func(string, ...any) {}
	}
	return &Evaluator{env: env, warn: warn}
}

// Expand parses and evaluates s.
func (e *Evaluator) Expand(s string) (string, error) {
	tokens, err := Parse(s)
	if err != nil {
		return "", err
	}
	return e.Evaluate(tokens)
}

// Evaluate resolves every token in order and concatenates the results.
func (e *Evaluator) Evaluate(tokens Stream) (string, error) {
	var b strings.Builder
	for _, tok := range tokens {
		switch t := tok.(type) {
		case Literal:
			b.WriteString(t.Text)
		case Variable:
			v, err := e.resolve(t)
			if err != nil {
				return "", err
			}
			b.WriteString(v)
		}
	}
	return b.String(), nil
}

func (e *Evaluator) resolve(v Variable) (string, error) {
	value, ok := e.env.Lookup(v.Name)

	if v.Op == nil {
		if !ok {
			e.warn("The %q variable is not set, defaulting to a blank string", v.Name)
			return "", nil
		}
		return value, nil
	}

	present := v.Op.Presence.Satisfied(value, ok)

	switch v.Op.Kind {
	case Default:
		if present {
			return value, nil
		}
		return e.Evaluate(v.Op.Text)

	case RequireOrFail:
		if present {
			return value, nil
		}
		msg, err := e.Evaluate(v.Op.Text)
		if err != nil {
			return "", err
		}
		return "", &RequiredError{Name: v.Name, Message: msg}

	case ReplaceIfPresent:
		if !present {
			return "", nil
		}
		return e.Evaluate(v.Op.Text)
	}

	return "", nil
}
