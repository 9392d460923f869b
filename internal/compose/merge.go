package compose

// Merge validates each loaded document and folds them, in order, into a
// single document.
//
// Merge semantics:
//   - version, name: the last document wins, even when it leaves them unset
//   - services: entries are added, replacing any earlier entry of the same name
//   - networks, volumes, configs, secrets: extended like services when both
//     sides declare the section, adopted when only the new document does,
//     left alone otherwise
//
// A document that fails validation is never merged.
func Merge(loaded []Loaded) (*Compose, error) {
	combined := &Compose{}
	for _, l := range loaded {
		if err := Validate(l.Source, l.Doc); err != nil {
			return nil, err
		}
		mergeInto(combined, l.Doc)
	}
	return combined, nil
}

func mergeInto(dst, src *Compose) {
	dst.Version = src.Version
	dst.Name = src.Name
	dst.Services.Extend(&src.Services)

	dst.Networks = mergeSection(dst.Networks, src.Networks)
	dst.Volumes = mergeSection(dst.Volumes, src.Volumes)
	dst.Configs = mergeSection(dst.Configs, src.Configs)
	dst.Secrets = mergeSection(dst.Secrets, src.Secrets)
}

// mergeSection combines an optional section of the accumulator with the
// same section of the next document.
func mergeSection[V any](dst, src *Mapping[V]) *Mapping[V] {
	switch {
	case src == nil:
		return dst
	case dst == nil:
		out := NewMapping[V]()
		out.Extend(src)
		return out
	default:
		dst.Extend(src)
		return dst
	}
}
