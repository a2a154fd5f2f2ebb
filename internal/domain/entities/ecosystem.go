package entities

// Ecosystem is the package ecosystem a component belongs to
type Ecosystem string

// Known ecosystems. Unknown is an explicit outcome, not a default.
const (
	EcosystemNPM     Ecosystem = "NPM"
	EcosystemRust    Ecosystem = "Rust"
	EcosystemPython  Ecosystem = "Python"
	EcosystemUnknown Ecosystem = "Unknown"
)
