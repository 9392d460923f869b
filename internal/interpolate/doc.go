// Package interpolate implements shell-style variable expansion for
// compose documents.
//
// A string is first split into a token [Stream] by [Parse], then resolved
// against an [Env] by an [Evaluator]. Supported forms:
//
//	$NAME              value of NAME, blank (with a warning) when unset
//	${NAME}            same as $NAME
//	${NAME-default}    default when NAME is unset
//	${NAME:-default}   default when NAME is unset or empty
//	${NAME?message}    error when NAME is unset
//	${NAME:?message}   error when NAME is unset or empty
//	${NAME+text}       text when NAME is set, blank otherwise
//	${NAME:+text}      text when NAME is set and non-empty, blank otherwise
//
// Default, message and replacement text is itself parsed, so it may contain
// further references:
//
//	image: ${REGISTRY:-${DEFAULT_REGISTRY:-docker.io}}/app:${TAG-latest}
//
// [Walker] applies an Evaluator to every string scalar of a YAML node tree
// and reports failures with the dotted path of the offending field.
package interpolate
