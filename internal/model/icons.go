package model

// Markers printed in front of report lines.
// Single-width characters keep terminal columns aligned.
const (
	IconViolation = "✗" // Out-of-policy line
	IconBackup    = "◆" // Original moved aside
	IconReplace   = "→" // File rewritten
	IconPrompt    = "?" // Question awaiting an answer
)
