package model

// RawCommand is untrusted free-form operator input, e.g. "kubectl get pods -A".
type RawCommand string

// ValidatedCommand is a RawCommand that has passed the gatekeeper's prefix
// check, subcommand whitelist, and metacharacter sanitization. Immutable once
// produced.
type ValidatedCommand struct {
	// Line is the full sanitized command including the program prefix.
	Line string
	// Subcommand is the whitelisted leading token after the prefix.
	Subcommand string
	// Args are the sanitized tokens after the program name, suitable for an
	// argument-array exec call.
	Args []string
	// Destructive marks a delete without --dry-run; such commands are audited
	// before execution but not blocked.
	Destructive bool
}
