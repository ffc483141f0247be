// Package vibedocs holds build metadata for the vibe CLI.
package vibedocs

// Version is the semantic version reported by "vibe version".
const Version = "0.1.0"
