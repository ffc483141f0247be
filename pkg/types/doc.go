// Package types defines the typed records (Project, Section, Feature), the
// configuration, and the standard errors shared by the vibe documentation
// tool.
package types
