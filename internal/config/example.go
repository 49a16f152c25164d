package config

// ExampleConfig returns an example configuration showing all available options.
func ExampleConfig() string {
	return `# todo configuration file
# Looked up in ~/.todo/todo.toml, then ./todo.toml or ./.todo.toml.
# CLI flags override every file.

# Log level: debug, info, warn, error
log_level = "warn"

# Log format: text, json, logfmt
log_format = "text"

# Strike through finished items: auto, always, never
color = "auto"
`
}
