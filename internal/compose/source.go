package compose

import "os"

// Source is the raw text of one compose document.
type Source struct {
	// Name identifies the document in diagnostics, typically its path.
	Name string
	Data []byte
}

// ReadSources reads every path in order. The first unreadable path fails
// with a *ReadError.
func ReadSources(paths []string) ([]Source, error) {
	sources := make([]Source, 0, len(paths))
	for _, path := range paths {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, &ReadError{Source: path, Err: err}
		}
		sources = append(sources, Source{Name: path, Data: data})
	}
	return sources, nil
}
