// Package roster loads player, team, and alias data from YAML files. When
// a path is empty the bundled dataset ships in its place, so a bare binary
// still resolves something useful.
package roster

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/okian/rostermatch/internal/domain/index"
	"github.com/okian/rostermatch/internal/domain/model"
)

// playerFile is the on-disk shape of a players YAML document.
type playerFile struct {
	Players []playerRecord `yaml:"players"`
}

type playerRecord struct {
	ID   string `yaml:"id"`
	Name string `yaml:"name"`
	Team string `yaml:"team"`
}

// teamFile is the on-disk shape of a teams YAML document.
type teamFile struct {
	Teams []teamRecord `yaml:"teams"`
}

type teamRecord struct {
	Code       string   `yaml:"code"`
	FullName   string   `yaml:"full_name"`
	Location   string   `yaml:"location"`
	Nickname   string   `yaml:"nickname"`
	Alternates []string `yaml:"alternates"`
}

// aliasFile is the on-disk shape of an aliases YAML document: entity ID to
// the list of nicknames it answers to.
type aliasFile struct {
	Aliases map[string][]string `yaml:"aliases"`
}

// Roster is the loaded dataset, ready to hand to the index builder.
type Roster struct {
	Entities []model.Entity
	Teams    []model.Team
	Aliases  index.AliasTable
}

// Load reads the three roster documents. Any empty path falls back to the
// bundled dataset for that document. Cross-referential checks (players on
// unknown teams, aliases for unknown players) are left to the index
// builder, which validates the merged view.
func Load(playersPath, teamsPath, aliasesPath string) (*Roster, error) {
	players, err := readFile(playersPath, defaultPlayersPath)
	if err != nil {
		return nil, err
	}
	teams, err := readFile(teamsPath, defaultTeamsPath)
	if err != nil {
		return nil, err
	}
	aliases, err := readFile(aliasesPath, defaultAliasesPath)
	if err != nil {
		return nil, err
	}

	r := &Roster{}
	if r.Entities, err = parsePlayers(players); err != nil {
		return nil, err
	}
	if r.Teams, err = parseTeams(teams); err != nil {
		return nil, err
	}
	if r.Aliases, err = parseAliases(aliases); err != nil {
		return nil, err
	}
	return r, nil
}

// readFile returns the file at path, or the bundled file when path is
// empty.
func readFile(path, bundled string) ([]byte, error) {
	if path == "" {
		data, err := defaultData.ReadFile(bundled)
		if err != nil {
			return nil, fmt.Errorf("%w: %s: %v", ErrReadFile, bundled, err)
		}
		return data, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrReadFile, path, err)
	}
	return data, nil
}

func parsePlayers(data []byte) ([]model.Entity, error) {
	var doc playerFile
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("%w: players: %v", ErrParseFile, err)
	}
	entities := make([]model.Entity, 0, len(doc.Players))
	for i, p := range doc.Players {
		if p.ID == "" || p.Name == "" {
			return nil, fmt.Errorf("%w: player %d needs id and name", ErrInvalidRecord, i)
		}
		entities = append(entities, model.Entity{
			ID:            p.ID,
			CanonicalName: p.Name,
			TeamCode:      p.Team,
		})
	}
	return entities, nil
}

func parseTeams(data []byte) ([]model.Team, error) {
	var doc teamFile
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("%w: teams: %v", ErrParseFile, err)
	}
	teams := make([]model.Team, 0, len(doc.Teams))
	for i, t := range doc.Teams {
		if t.Code == "" || t.FullName == "" {
			return nil, fmt.Errorf("%w: team %d needs code and full_name", ErrInvalidRecord, i)
		}
		teams = append(teams, model.Team{
			Code:       t.Code,
			FullName:   t.FullName,
			Location:   t.Location,
			Nickname:   t.Nickname,
			Alternates: t.Alternates,
		})
	}
	return teams, nil
}

func parseAliases(data []byte) (index.AliasTable, error) {
	var doc aliasFile
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("%w: aliases: %v", ErrParseFile, err)
	}
	table := make(index.AliasTable, len(doc.Aliases))
	for id, names := range doc.Aliases {
		table[id] = names
	}
	return table, nil
}
