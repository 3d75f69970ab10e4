// Package config loads executor and tracer configuration from TOML
// files with toml.DecodeFile.
package config
