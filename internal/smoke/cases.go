package smoke

// Case is one canned post with the outcome it must produce against the
// bundled roster.
type Case struct {
	Name string
	Text string

	// WantTop is the entity id expected at rank one; empty means the case
	// expects no matches at all.
	WantTop string

	// WantTeams are team codes that must all appear in the detected set.
	WantTeams []string

	// WantAmbiguous marks cases that must surface a surname collision.
	WantAmbiguous bool
}

// Cases exercises the main resolution paths: direct names, nicknames, team
// context boosts, surname collisions and typo recovery.
func Cases() []Case {
	return []Case{
		{
			Name:    "full canonical name",
			Text:    "LeBron James was unstoppable in the fourth quarter",
			WantTop: "lebron-james",
		},
		{
			Name:      "nickname with team mention",
			Text:      "The King dropped 40 on the Warriors last night",
			WantTop:   "lebron-james",
			WantTeams: []string{"GSW"},
		},
		{
			Name:      "surname plus team full name",
			Text:      "Harden led the Philadelphia 76ers past the Nets",
			WantTop:   "james-harden",
			WantTeams: []string{"PHI", "BKN"},
		},
		{
			Name:    "single surname",
			Text:    "Curry from way downtown again",
			WantTop: "stephen-curry",
		},
		{
			Name:      "surname collision resolved by team",
			Text:      "Davis dominated the paint for the Lakers",
			WantTop:   "anthony-davis",
			WantTeams: []string{"LAL"},
		},
		{
			Name:    "multi word nickname",
			Text:    "the greek freak had another triple double",
			WantTop: "giannis-antetokounmpo",
		},
		{
			Name:      "shared location adds both teams",
			Text:      "Big Los Angeles matchup tonight",
			WantTeams: []string{"LAL", "LAC"},
		},
		{
			Name:      "shared location claimed by nickname",
			Text:      "Los Angeles Clippers looked sharp",
			WantTeams: []string{"LAC"},
		},
		{
			Name:    "typo recovered by similarity",
			Text:    "Lebrn James with the chase-down block",
			WantTop: "lebron-james",
		},
		{
			Name:    "no roster content",
			Text:    "the weather in springfield is lovely today",
			WantTop: "",
		},
	}
}
