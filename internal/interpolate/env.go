package interpolate

import "os"

// Env is the read side of an environment.
type Env interface {
	Lookup(name string) (value string, ok bool)
}

// Environment is an Env that can also be written to. The loader uses it to
// publish the resolved project name.
type Environment interface {
	Env
	Setenv(name, value string) error
}

// OSEnv is the process environment.
type OSEnv struct{}

// Lookup calls os.LookupEnv.
func (OSEnv) Lookup(name string) (string, bool) {
	return os.LookupEnv(name)
}

// Setenv calls os.Setenv.
func (OSEnv) Setenv(name, value string) error {
	return os.Setenv(name, value)
}

// MapEnv is an in-memory environment.
type MapEnv map[string]string

// Lookup returns the value stored under name.
func (m MapEnv) Lookup(name string) (string, bool) {
	v, ok := m[name]
	return v, ok
}

// Setenv stores value under name.
func (m MapEnv) Setenv(name, value string) error {
	m[name] = value
	return nil
}
