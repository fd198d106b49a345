package frontmatter

// Converter expands structured shorthand frontmatter into a flat
// placeholder-field → value dictionary using the registry's mapping rules.
type Converter struct {
	registry *Registry
}

// NewConverter creates a converter over a registry.
func NewConverter(registry *Registry) *Converter {
	return &Converter{registry: registry}
}

// ConvertStructured expands one frontmatter block. For unsupported layouts,
// or blocks with no layout key, the input is returned unchanged. Extraction
// paths that do not resolve simply omit their target key.
func (c *Converter) ConvertStructured(fm map[string]interface{}) map[string]interface{} {
	layoutName, _ := fm["layout"].(string)
	def, ok := c.registry.StructureDefinition(layoutName)
	if !ok {
		return fm
	}

	roots := make(map[string]bool, len(def.RootKeys))
	used := false
	for _, root := range def.RootKeys {
		roots[root] = true
		if _, present := fm[root]; present {
			used = true
		}
	}
	if !used {
		// Supported layout authored without the shorthand: leave as-is.
		return fm
	}

	result := make(map[string]interface{}, len(fm))
	// Non-structural keys (layout, style, title, ...) pass through.
	for key, value := range fm {
		if !roots[key] {
			result[key] = value
		}
	}
	for path, field := range def.MappingRules {
		value, ok := extract(fm, path)
		if !ok || value == nil {
			continue
		}
		result[field] = value
	}
	return result
}

// Validate exposes the registry's structured-frontmatter validation.
func (c *Converter) Validate(fm map[string]interface{}) error {
	return c.registry.Validate(fm)
}
