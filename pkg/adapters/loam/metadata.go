package loam

// Metadata is the front matter of a machine document, kept generic so the
// shared schema validates it exactly like YAML, TOML and JSON files.
type Metadata map[string]any
