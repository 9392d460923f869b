package compose

// Validate checks the semantic constraints of a single document and returns
// the first violation as a *ValidationError.
//
//   - every service declares an image or a build context
//   - a service using host networking declares no ports
//   - an external network, volume, config or secret declares none of the
//     fields that only apply to resources managed by the document
func Validate(source string, c *Compose) error {
	for name, svc := range c.Services.All() {
		if svc.Image == nil && svc.Build == nil {
			return &ValidationError{Source: source, Kind: "service", Name: name, Err: ErrMissingImageOrBuild}
		}
		if svc.NetworkMode != nil && *svc.NetworkMode == "host" && svc.Ports != nil {
			return &ValidationError{Source: source, Kind: "service", Name: name, Err: ErrHostNetworkPorts}
		}
	}

	for name, n := range c.Networks.All() {
		if n != nil && isExternal(n.External) &&
			(n.Driver != nil || n.DriverOpts != nil || n.EnableIPv6 != nil ||
				n.IPAM != nil || n.Internal != nil || n.Labels != nil) {
			return conflict(source, "network", name)
		}
	}

	for name, v := range c.Volumes.All() {
		if v != nil && isExternal(v.External) &&
			(v.Driver != nil || v.DriverOpts != nil || v.Labels != nil) {
			return conflict(source, "volume", name)
		}
	}

	for name, cfg := range c.Configs.All() {
		if cfg != nil && isExternal(cfg.External) && (cfg.File != nil || cfg.Environment != nil) {
			return conflict(source, "config", name)
		}
	}

	for name, s := range c.Secrets.All() {
		if s != nil && isExternal(s.External) && (s.File != nil || s.Environment != nil) {
			return conflict(source, "secret", name)
		}
	}

	return nil
}

func conflict(source, kind, name string) error {
	return &ValidationError{Source: source, Kind: kind, Name: name, Err: ErrConflictingParameters}
}
