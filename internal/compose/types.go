package compose

// Compose is a compose document, and also the result of merging several.
//
// The optional sections are nil when a document does not declare them, which
// is distinct from declaring an empty section.
type Compose struct {
	Version  *string            `yaml:"version,omitempty" json:"version,omitempty"`
	Name     string             `yaml:"name,omitempty" json:"name,omitempty"`
	Services Mapping[Service]   `yaml:"services" json:"services"`
	Networks *Mapping[*Network] `yaml:"networks,omitempty" json:"networks,omitempty"`
	Volumes  *Mapping[*Volume]  `yaml:"volumes,omitempty" json:"volumes,omitempty"`
	Configs  *Mapping[*Config]  `yaml:"configs,omitempty" json:"configs,omitempty"`
	Secrets  *Mapping[*Secret]  `yaml:"secrets,omitempty" json:"secrets,omitempty"`
}

// ServiceNetworks lists the networks a service joins.
type ServiceNetworks = ListOrMapping[*ServiceNetwork]

// DependsOn lists the services a service starts after.
type DependsOn = ListOrMapping[*Dependency]

// Service is a single service definition.
type Service struct {
	Image           *string          `yaml:"image,omitempty" json:"image,omitempty"`
	Build           *Build           `yaml:"build,omitempty" json:"build,omitempty"`
	ContainerName   string           `yaml:"container_name,omitempty" json:"container_name,omitempty"`
	Hostname        string           `yaml:"hostname,omitempty" json:"hostname,omitempty"`
	Domainname      string           `yaml:"domainname,omitempty" json:"domainname,omitempty"`
	Platform        string           `yaml:"platform,omitempty" json:"platform,omitempty"`
	PullPolicy      string           `yaml:"pull_policy,omitempty" json:"pull_policy,omitempty"`
	Profiles        []string         `yaml:"profiles,omitempty" json:"profiles,omitempty"`
	Command         *StringOrList    `yaml:"command,omitempty" json:"command,omitempty"`
	Entrypoint      *StringOrList    `yaml:"entrypoint,omitempty" json:"entrypoint,omitempty"`
	WorkingDir      string           `yaml:"working_dir,omitempty" json:"working_dir,omitempty"`
	User            string           `yaml:"user,omitempty" json:"user,omitempty"`
	Environment     *ListOrDict      `yaml:"environment,omitempty" json:"environment,omitempty"`
	EnvFile         *StringOrList    `yaml:"env_file,omitempty" json:"env_file,omitempty"`
	Labels          *ListOrDict      `yaml:"labels,omitempty" json:"labels,omitempty"`
	Ports           []Port           `yaml:"ports,omitempty" json:"ports,omitempty"`
	Expose          []string         `yaml:"expose,omitempty" json:"expose,omitempty"`
	Volumes         []ServiceVolume  `yaml:"volumes,omitempty" json:"volumes,omitempty"`
	Tmpfs           *StringOrList    `yaml:"tmpfs,omitempty" json:"tmpfs,omitempty"`
	NetworkMode     *string          `yaml:"network_mode,omitempty" json:"network_mode,omitempty"`
	Networks        *ServiceNetworks `yaml:"networks,omitempty" json:"networks,omitempty"`
	DNS             *StringOrList    `yaml:"dns,omitempty" json:"dns,omitempty"`
	ExtraHosts      []string         `yaml:"extra_hosts,omitempty" json:"extra_hosts,omitempty"`
	DependsOn       *DependsOn       `yaml:"depends_on,omitempty" json:"depends_on,omitempty"`
	Links           []string         `yaml:"links,omitempty" json:"links,omitempty"`
	Configs         []ResourceRef    `yaml:"configs,omitempty" json:"configs,omitempty"`
	Secrets         []ResourceRef    `yaml:"secrets,omitempty" json:"secrets,omitempty"`
	Healthcheck     *Healthcheck     `yaml:"healthcheck,omitempty" json:"healthcheck,omitempty"`
	Logging         *Logging         `yaml:"logging,omitempty" json:"logging,omitempty"`
	Restart         string           `yaml:"restart,omitempty" json:"restart,omitempty"`
	Init            *bool            `yaml:"init,omitempty" json:"init,omitempty"`
	Privileged      *bool            `yaml:"privileged,omitempty" json:"privileged,omitempty"`
	ReadOnly        *bool            `yaml:"read_only,omitempty" json:"read_only,omitempty"`
	StdinOpen       *bool            `yaml:"stdin_open,omitempty" json:"stdin_open,omitempty"`
	TTY             *bool            `yaml:"tty,omitempty" json:"tty,omitempty"`
	CapAdd          []string         `yaml:"cap_add,omitempty" json:"cap_add,omitempty"`
	CapDrop         []string         `yaml:"cap_drop,omitempty" json:"cap_drop,omitempty"`
	SecurityOpt     []string         `yaml:"security_opt,omitempty" json:"security_opt,omitempty"`
	Devices         []string         `yaml:"devices,omitempty" json:"devices,omitempty"`
	Sysctls         *ListOrDict      `yaml:"sysctls,omitempty" json:"sysctls,omitempty"`
	StopSignal      string           `yaml:"stop_signal,omitempty" json:"stop_signal,omitempty"`
	StopGracePeriod string           `yaml:"stop_grace_period,omitempty" json:"stop_grace_period,omitempty"`
	MemLimit        string           `yaml:"mem_limit,omitempty" json:"mem_limit,omitempty"`
	MemReservation  string           `yaml:"mem_reservation,omitempty" json:"mem_reservation,omitempty"`
	CPUs            string           `yaml:"cpus,omitempty" json:"cpus,omitempty"`
	ShmSize         string           `yaml:"shm_size,omitempty" json:"shm_size,omitempty"`
	Scale           *int             `yaml:"scale,omitempty" json:"scale,omitempty"`
	Deploy          map[string]any   `yaml:"deploy,omitempty" json:"deploy,omitempty"`
}

// ServiceNetwork holds per-service options for a joined network.
type ServiceNetwork struct {
	Aliases      []string `yaml:"aliases,omitempty" json:"aliases,omitempty"`
	IPv4Address  string   `yaml:"ipv4_address,omitempty" json:"ipv4_address,omitempty"`
	IPv6Address  string   `yaml:"ipv6_address,omitempty" json:"ipv6_address,omitempty"`
	LinkLocalIPs []string `yaml:"link_local_ips,omitempty" json:"link_local_ips,omitempty"`
	MacAddress   string   `yaml:"mac_address,omitempty" json:"mac_address,omitempty"`
	Priority     *int     `yaml:"priority,omitempty" json:"priority,omitempty"`
}

// Dependency holds the long depends_on options.
type Dependency struct {
	Condition string `yaml:"condition,omitempty" json:"condition,omitempty"`
	Restart   *bool  `yaml:"restart,omitempty" json:"restart,omitempty"`
	Required  *bool  `yaml:"required,omitempty" json:"required,omitempty"`
}

// Healthcheck configures a container health probe.
type Healthcheck struct {
	Test          *StringOrList `yaml:"test,omitempty" json:"test,omitempty"`
	Interval      string        `yaml:"interval,omitempty" json:"interval,omitempty"`
	Timeout       string        `yaml:"timeout,omitempty" json:"timeout,omitempty"`
	Retries       *int          `yaml:"retries,omitempty" json:"retries,omitempty"`
	StartPeriod   string        `yaml:"start_period,omitempty" json:"start_period,omitempty"`
	StartInterval string        `yaml:"start_interval,omitempty" json:"start_interval,omitempty"`
	Disable       *bool         `yaml:"disable,omitempty" json:"disable,omitempty"`
}

// Logging configures the container log driver.
type Logging struct {
	Driver  string           `yaml:"driver,omitempty" json:"driver,omitempty"`
	Options *Mapping[string] `yaml:"options,omitempty" json:"options,omitempty"`
}

// Network is a top-level network definition.
type Network struct {
	Name       string           `yaml:"name,omitempty" json:"name,omitempty"`
	Driver     *string          `yaml:"driver,omitempty" json:"driver,omitempty"`
	DriverOpts *Mapping[string] `yaml:"driver_opts,omitempty" json:"driver_opts,omitempty"`
	Attachable *bool            `yaml:"attachable,omitempty" json:"attachable,omitempty"`
	EnableIPv6 *bool            `yaml:"enable_ipv6,omitempty" json:"enable_ipv6,omitempty"`
	IPAM       *IPAM            `yaml:"ipam,omitempty" json:"ipam,omitempty"`
	Internal   *bool            `yaml:"internal,omitempty" json:"internal,omitempty"`
	Labels     *ListOrDict      `yaml:"labels,omitempty" json:"labels,omitempty"`
	External   *bool            `yaml:"external,omitempty" json:"external,omitempty"`
}

// IPAM is a network's address management configuration.
type IPAM struct {
	Driver  string           `yaml:"driver,omitempty" json:"driver,omitempty"`
	Config  []IPAMPool       `yaml:"config,omitempty" json:"config,omitempty"`
	Options *Mapping[string] `yaml:"options,omitempty" json:"options,omitempty"`
}

// IPAMPool is a single address pool.
type IPAMPool struct {
	Subnet       string           `yaml:"subnet,omitempty" json:"subnet,omitempty"`
	IPRange      string           `yaml:"ip_range,omitempty" json:"ip_range,omitempty"`
	Gateway      string           `yaml:"gateway,omitempty" json:"gateway,omitempty"`
	AuxAddresses *Mapping[string] `yaml:"aux_addresses,omitempty" json:"aux_addresses,omitempty"`
}

// Volume is a top-level named volume definition.
type Volume struct {
	Name       string           `yaml:"name,omitempty" json:"name,omitempty"`
	Driver     *string          `yaml:"driver,omitempty" json:"driver,omitempty"`
	DriverOpts *Mapping[string] `yaml:"driver_opts,omitempty" json:"driver_opts,omitempty"`
	Labels     *ListOrDict      `yaml:"labels,omitempty" json:"labels,omitempty"`
	External   *bool            `yaml:"external,omitempty" json:"external,omitempty"`
}

// Config is a top-level config definition.
type Config struct {
	Name        string      `yaml:"name,omitempty" json:"name,omitempty"`
	File        *string     `yaml:"file,omitempty" json:"file,omitempty"`
	Environment *string     `yaml:"environment,omitempty" json:"environment,omitempty"`
	Content     *string     `yaml:"content,omitempty" json:"content,omitempty"`
	Labels      *ListOrDict `yaml:"labels,omitempty" json:"labels,omitempty"`
	External    *bool       `yaml:"external,omitempty" json:"external,omitempty"`
}

// Secret is a top-level secret definition.
type Secret struct {
	Name        string      `yaml:"name,omitempty" json:"name,omitempty"`
	File        *string     `yaml:"file,omitempty" json:"file,omitempty"`
	Environment *string     `yaml:"environment,omitempty" json:"environment,omitempty"`
	Labels      *ListOrDict `yaml:"labels,omitempty" json:"labels,omitempty"`
	External    *bool       `yaml:"external,omitempty" json:"external,omitempty"`
}

// isExternal reports whether an external flag is set to true.
func isExternal(b *bool) bool {
	return b != nil && *b
}
