package compose

import (
	"fmt"
	"reflect"
	"strings"

	"gopkg.in/yaml.v3"
)

// yamlShaper is implemented by types that accept more than one YAML form.
// yamlShape returns the plain type the node decodes into for field
// checking, or nil when the form has no named fields.
type yamlShaper interface {
	yamlShape(node *yaml.Node) reflect.Type
}

// StringOrList holds a value written either as a single string or as a list
// of strings (command, entrypoint, env_file, dns, healthcheck test).
type StringOrList struct {
	Values []string

	single bool
}

// UnmarshalYAML accepts a scalar or a sequence of scalars.
func (s *StringOrList) UnmarshalYAML(node *yaml.Node) error {
	node = resolveAlias(node)
	switch node.Kind {
	case yaml.ScalarNode:
		*s = StringOrList{Values: []string{node.Value}, single: true}
		return nil
	case yaml.SequenceNode:
		*s = StringOrList{}
		return node.Decode(&s.Values)
	}
	return fmt.Errorf("line %d: expected a string or a list of strings, got %s", node.Line, describeNode(node))
}

func (s StringOrList) value() any {
	if s.single && len(s.Values) == 1 {
		return s.Values[0]
	}
	if s.Values == nil {
		return []string{}
	}
	return s.Values
}

// MarshalYAML keeps the form the value was written in.
func (s StringOrList) MarshalYAML() (any, error) { return s.value(), nil }

// MarshalJSON keeps the form the value was written in.
func (s StringOrList) MarshalJSON() ([]byte, error) { return marshalJSON(s.value()) }

// ListOrDict holds environment-style entries written either as a mapping or
// as a list of "KEY=value" strings. A nil value means the key is declared
// without a value.
type ListOrDict struct {
	entries Mapping[*string]
}

// Get returns the value for key.
func (l *ListOrDict) Get(key string) (*string, bool) {
	if l == nil {
		return nil, false
	}
	return l.entries.Get(key)
}

// Len returns the number of entries.
func (l *ListOrDict) Len() int {
	if l == nil {
		return 0
	}
	return l.entries.Len()
}

// UnmarshalYAML accepts a mapping of scalars or a list of KEY=value strings.
func (l *ListOrDict) UnmarshalYAML(node *yaml.Node) error {
	node = resolveAlias(node)
	*l = ListOrDict{}

	switch node.Kind {
	case yaml.MappingNode:
		for i := 0; i+1 < len(node.Content); i += 2 {
			key, value := node.Content[i], resolveAlias(node.Content[i+1])
			switch {
			case value.ShortTag() == "!!null":
				l.entries.Set(key.Value, nil)
			case value.Kind == yaml.ScalarNode:
				v := value.Value
				l.entries.Set(key.Value, &v)
			default:
				return fmt.Errorf("line %d: value of %q must be a scalar, got %s", value.Line, key.Value, describeNode(value))
			}
		}
		return nil

	case yaml.SequenceNode:
		for _, item := range node.Content {
			item = resolveAlias(item)
			if item.Kind != yaml.ScalarNode {
				return fmt.Errorf("line %d: list entries must be strings, got %s", item.Line, describeNode(item))
			}
			key, value, ok := strings.Cut(item.Value, "=")
			if !ok {
				l.entries.Set(key, nil)
				continue
			}
			l.entries.Set(key, &value)
		}
		return nil
	}

	return fmt.Errorf("line %d: expected a mapping or a list, got %s", node.Line, describeNode(node))
}

// MarshalYAML always encodes the mapping form.
func (l ListOrDict) MarshalYAML() (any, error) { return l.entries.MarshalYAML() }

// MarshalJSON always encodes the object form.
func (l ListOrDict) MarshalJSON() ([]byte, error) { return l.entries.MarshalJSON() }

// ListOrMapping holds named entries written either as a list of names or as
// a mapping from name to options (service networks, depends_on).
type ListOrMapping[V any] struct {
	entries Mapping[V]
	list    bool
}

// Names returns the entry names in order.
func (l *ListOrMapping[V]) Names() []string {
	if l == nil {
		return nil
	}
	return l.entries.Keys()
}

// Get returns the options for name.
func (l *ListOrMapping[V]) Get(name string) (V, bool) {
	if l == nil {
		var zero V
		return zero, false
	}
	return l.entries.Get(name)
}

// UnmarshalYAML accepts a list of names or a mapping.
func (l *ListOrMapping[V]) UnmarshalYAML(node *yaml.Node) error {
	node = resolveAlias(node)
	*l = ListOrMapping[V]{}

	switch node.Kind {
	case yaml.SequenceNode:
		l.list = true
		for _, item := range node.Content {
			item = resolveAlias(item)
			if item.Kind != yaml.ScalarNode {
				return fmt.Errorf("line %d: list entries must be names, got %s", item.Line, describeNode(item))
			}
			var zero V
			l.entries.Set(item.Value, zero)
		}
		return nil
	case yaml.MappingNode:
		return l.entries.UnmarshalYAML(node)
	}

	return fmt.Errorf("line %d: expected a list or a mapping, got %s", node.Line, describeNode(node))
}

func (ListOrMapping[V]) yamlShape(node *yaml.Node) reflect.Type {
	if resolveAlias(node).Kind == yaml.MappingNode {
		return reflect.TypeFor[Mapping[V]]()
	}
	return nil
}

// MarshalYAML keeps the list form when the value was written as a list.
func (l ListOrMapping[V]) MarshalYAML() (any, error) {
	if l.list {
		return l.entries.Keys(), nil
	}
	return l.entries.MarshalYAML()
}

// MarshalJSON keeps the list form when the value was written as a list.
func (l ListOrMapping[V]) MarshalJSON() ([]byte, error) {
	if l.list {
		return marshalJSON(l.entries.Keys())
	}
	return l.entries.MarshalJSON()
}

// decodeShortOrLong decodes a value that is either a short string
// or a long-syntax mapping decoded into L.
func decodeShortOrLong[L any](node *yaml.Node, what string) (string, *L, error) {
	node = resolveAlias(node)
	switch node.Kind {
	case yaml.ScalarNode:
		return node.Value, nil, nil
	case yaml.MappingNode:
		long := new(L)
		if err := node.Decode(long); err != nil {
			return "", nil, err
		}
		return "", long, nil
	}
	return "", nil, fmt.Errorf("line %d: %s must be a string or a mapping, got %s", node.Line, what, describeNode(node))
}

func longShape[L any](node *yaml.Node) reflect.Type {
	if resolveAlias(node).Kind == yaml.MappingNode {
		return reflect.TypeFor[L]()
	}
	return nil
}

func shortOrLongValue[L any](short string, long *L) any {
	if long != nil {
		return long
	}
	return short
}

// Build is a service build definition. The short form sets only Context.
type Build struct {
	Context            string      `yaml:"context,omitempty" json:"context,omitempty"`
	Dockerfile         string      `yaml:"dockerfile,omitempty" json:"dockerfile,omitempty"`
	DockerfileInline   string      `yaml:"dockerfile_inline,omitempty" json:"dockerfile_inline,omitempty"`
	Args               *ListOrDict `yaml:"args,omitempty" json:"args,omitempty"`
	SSH                []string    `yaml:"ssh,omitempty" json:"ssh,omitempty"`
	Labels             *ListOrDict `yaml:"labels,omitempty" json:"labels,omitempty"`
	CacheFrom          []string    `yaml:"cache_from,omitempty" json:"cache_from,omitempty"`
	CacheTo            []string    `yaml:"cache_to,omitempty" json:"cache_to,omitempty"`
	NoCache            *bool       `yaml:"no_cache,omitempty" json:"no_cache,omitempty"`
	AdditionalContexts *ListOrDict `yaml:"additional_contexts,omitempty" json:"additional_contexts,omitempty"`
	Network            string      `yaml:"network,omitempty" json:"network,omitempty"`
	Pull               *bool       `yaml:"pull,omitempty" json:"pull,omitempty"`
	Target             string      `yaml:"target,omitempty" json:"target,omitempty"`
	ShmSize            string      `yaml:"shm_size,omitempty" json:"shm_size,omitempty"`
	ExtraHosts         []string    `yaml:"extra_hosts,omitempty" json:"extra_hosts,omitempty"`
	Isolation          string      `yaml:"isolation,omitempty" json:"isolation,omitempty"`
	Privileged         *bool       `yaml:"privileged,omitempty" json:"privileged,omitempty"`
	Tags               []string    `yaml:"tags,omitempty" json:"tags,omitempty"`
	Platforms          []string    `yaml:"platforms,omitempty" json:"platforms,omitempty"`
}

type buildFields Build

// UnmarshalYAML accepts a context path or the long form.
func (b *Build) UnmarshalYAML(node *yaml.Node) error {
	short, long, err := decodeShortOrLong[buildFields](node, "build")
	if err != nil {
		return err
	}
	if long != nil {
		*b = Build(*long)
		return nil
	}
	*b = Build{Context: short}
	return nil
}

func (Build) yamlShape(node *yaml.Node) reflect.Type { return longShape[buildFields](node) }

// Port is a service port mapping in short ("8080:80/tcp") or long form.
type Port struct {
	Short string
	Long  *PortConfig
}

// PortConfig is the long port syntax.
type PortConfig struct {
	Name        string `yaml:"name,omitempty" json:"name,omitempty"`
	Mode        string `yaml:"mode,omitempty" json:"mode,omitempty"`
	HostIP      string `yaml:"host_ip,omitempty" json:"host_ip,omitempty"`
	Target      int    `yaml:"target,omitempty" json:"target,omitempty"`
	Published   string `yaml:"published,omitempty" json:"published,omitempty"`
	Protocol    string `yaml:"protocol,omitempty" json:"protocol,omitempty"`
	AppProtocol string `yaml:"app_protocol,omitempty" json:"app_protocol,omitempty"`
}

// UnmarshalYAML accepts a string, a number or the long form.
func (p *Port) UnmarshalYAML(node *yaml.Node) error {
	short, long, err := decodeShortOrLong[PortConfig](node, "port")
	*p = Port{Short: short, Long: long}
	return err
}

func (Port) yamlShape(node *yaml.Node) reflect.Type { return longShape[PortConfig](node) }

// MarshalYAML keeps the form the port was written in.
func (p Port) MarshalYAML() (any, error) { return shortOrLongValue(p.Short, p.Long), nil }

// MarshalJSON keeps the form the port was written in.
func (p Port) MarshalJSON() ([]byte, error) { return marshalJSON(shortOrLongValue(p.Short, p.Long)) }

// ServiceVolume is a service mount in short ("./data:/data:ro") or long form.
type ServiceVolume struct {
	Short string
	Long  *VolumeMount
}

// VolumeMount is the long volume syntax.
type VolumeMount struct {
	Type        string       `yaml:"type,omitempty" json:"type,omitempty"`
	Source      string       `yaml:"source,omitempty" json:"source,omitempty"`
	Target      string       `yaml:"target,omitempty" json:"target,omitempty"`
	ReadOnly    *bool        `yaml:"read_only,omitempty" json:"read_only,omitempty"`
	Consistency string       `yaml:"consistency,omitempty" json:"consistency,omitempty"`
	Bind        *BindOptions `yaml:"bind,omitempty" json:"bind,omitempty"`
	Volume      *VolumeOpts  `yaml:"volume,omitempty" json:"volume,omitempty"`
	Tmpfs       *TmpfsOpts   `yaml:"tmpfs,omitempty" json:"tmpfs,omitempty"`
}

// BindOptions configures bind mounts.
type BindOptions struct {
	Propagation    string `yaml:"propagation,omitempty" json:"propagation,omitempty"`
	CreateHostPath *bool  `yaml:"create_host_path,omitempty" json:"create_host_path,omitempty"`
	SELinux        string `yaml:"selinux,omitempty" json:"selinux,omitempty"`
}

// VolumeOpts configures named volume mounts.
type VolumeOpts struct {
	NoCopy  *bool  `yaml:"nocopy,omitempty" json:"nocopy,omitempty"`
	Subpath string `yaml:"subpath,omitempty" json:"subpath,omitempty"`
}

// TmpfsOpts configures tmpfs mounts.
type TmpfsOpts struct {
	Size string `yaml:"size,omitempty" json:"size,omitempty"`
	Mode string `yaml:"mode,omitempty" json:"mode,omitempty"`
}

// UnmarshalYAML accepts a string or the long form.
func (v *ServiceVolume) UnmarshalYAML(node *yaml.Node) error {
	short, long, err := decodeShortOrLong[VolumeMount](node, "volume")
	*v = ServiceVolume{Short: short, Long: long}
	return err
}

func (ServiceVolume) yamlShape(node *yaml.Node) reflect.Type { return longShape[VolumeMount](node) }

// MarshalYAML keeps the form the mount was written in.
func (v ServiceVolume) MarshalYAML() (any, error) { return shortOrLongValue(v.Short, v.Long), nil }

// MarshalJSON keeps the form the mount was written in.
func (v ServiceVolume) MarshalJSON() ([]byte, error) {
	return marshalJSON(shortOrLongValue(v.Short, v.Long))
}

// ResourceRef grants a service access to a config or secret, by name or in
// long form.
type ResourceRef struct {
	Short string
	Long  *ResourceGrant
}

// ResourceGrant is the long config/secret reference syntax.
type ResourceGrant struct {
	Source string `yaml:"source,omitempty" json:"source,omitempty"`
	Target string `yaml:"target,omitempty" json:"target,omitempty"`
	UID    string `yaml:"uid,omitempty" json:"uid,omitempty"`
	GID    string `yaml:"gid,omitempty" json:"gid,omitempty"`
	Mode   string `yaml:"mode,omitempty" json:"mode,omitempty"`
}

// UnmarshalYAML accepts a name or the long form.
func (r *ResourceRef) UnmarshalYAML(node *yaml.Node) error {
	short, long, err := decodeShortOrLong[ResourceGrant](node, "reference")
	*r = ResourceRef{Short: short, Long: long}
	return err
}

func (ResourceRef) yamlShape(node *yaml.Node) reflect.Type { return longShape[ResourceGrant](node) }

// MarshalYAML keeps the form the reference was written in.
func (r ResourceRef) MarshalYAML() (any, error) { return shortOrLongValue(r.Short, r.Long), nil }

// MarshalJSON keeps the form the reference was written in.
func (r ResourceRef) MarshalJSON() ([]byte, error) {
	return marshalJSON(shortOrLongValue(r.Short, r.Long))
}
