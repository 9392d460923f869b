// Package compose loads, validates and merges compose documents.
//
// Loading a set of files runs each one through the same pipeline:
//
//   - parse the YAML text into a node tree
//   - resolve the project name (explicit override, the document's own
//     name field, or the working directory) and publish it as
//     COMPOSE_PROJECT_NAME
//   - interpolate ${VAR} references in every string value
//   - decode the tree into [Compose], recording fields the schema does
//     not know about
//
// [Merge] then validates every loaded document and folds them together in
// order. Later documents override services, networks, volumes, configs and
// secrets of the same name:
//
//	loader := compose.NewLoader(compose.WithProjectName("shop"))
//	loaded, err := loader.Load(sources)
//	...
//	combined, err := compose.Merge(loaded)
package compose
