// Package config loads the server configuration from an optional YAML file
// and the process environment. Provider credentials are only taken from
// OPENAI_API_KEY and ANTHROPIC_API_KEY.
package config
