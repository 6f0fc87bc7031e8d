package roster

import "embed"

// defaultData carries a bundled roster so the service can start without
// any external files. Callers override it per file via configuration.
//
//go:embed data
var defaultData embed.FS

// Bundled roster file paths inside defaultData.
const (
	defaultPlayersPath = "data/players.yaml"
	defaultTeamsPath   = "data/teams.yaml"
	defaultAliasesPath = "data/aliases.yaml"
)
