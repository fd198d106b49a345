package models

// Pattern describes the authoring contract for one layout: which frontmatter
// fields it requires, an example YAML block, and the shape of its structured
// shorthand. Patterns load from the built-in set and may be overridden by
// files in {templateFolder}/patterns/.
type Pattern struct {
	Description string                 `json:"description"`
	YAMLPattern map[string]interface{} `json:"yaml_pattern"`
	Validation  PatternValidation      `json:"validation"`
	Example     string                 `json:"example"`
}

// PatternValidation lists the fields a layout's frontmatter must or may carry.
type PatternValidation struct {
	RequiredFields []string `json:"required_fields"`
	OptionalFields []string `json:"optional_fields"`
}
