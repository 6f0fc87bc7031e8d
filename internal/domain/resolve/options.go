package resolve

// Option applies a configuration option to the Aggregator.
type Option func(*Aggregator)

// WithTeamBoost sets the additive boost for candidates on a mentioned team.
func WithTeamBoost(boost float64) Option {
	return func(a *Aggregator) {
		if boost >= 0 {
			a.teamBoost = boost
		}
	}
}

// WithSurnameBoost sets the extra boost for surname-collision members whose
// team is mentioned.
func WithSurnameBoost(boost float64) Option {
	return func(a *Aggregator) {
		if boost >= 0 {
			a.surnameBoost = boost
		}
	}
}

// WithSurnamePenalty sets the amount subtracted from surname-collision
// members whose team exists but is not mentioned.
func WithSurnamePenalty(penalty float64) Option {
	return func(a *Aggregator) {
		if penalty >= 0 {
			a.surnamePenalty = penalty
		}
	}
}

// WithHighConfidenceCutoff sets the score above which a top result is
// marked as a singular answer.
func WithHighConfidenceCutoff(cutoff float64) Option {
	return func(a *Aggregator) {
		if cutoff > 0 {
			a.cutoff = cutoff
		}
	}
}

// WithLimit caps the number of matches returned.
func WithLimit(limit int) Option {
	return func(a *Aggregator) {
		if limit > 0 {
			a.limit = limit
		}
	}
}
