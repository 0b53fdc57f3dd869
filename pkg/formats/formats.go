// Package formats provides parsers for rig and animation file formats.
package formats

// Note: the YAML rig format is implemented in rig.go
