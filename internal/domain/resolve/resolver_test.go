package resolve_test

import (
	"testing"

	index "github.com/okian/rostermatch/internal/domain/index"
	"github.com/okian/rostermatch/internal/domain/model"
	resolve "github.com/okian/rostermatch/internal/domain/resolve"
	. "github.com/smartystreets/goconvey/convey"
)

func buildIndex(t *testing.T) *index.Index {
	t.Helper()
	entities := []model.Entity{
		{ID: "lebron-james", CanonicalName: "LeBron James", TeamCode: "LAL"},
		{ID: "anthony-davis", CanonicalName: "Anthony Davis", TeamCode: "LAL"},
		{ID: "james-harden", CanonicalName: "James Harden", TeamCode: "PHI"},
		{ID: "marcus-morris", CanonicalName: "Marcus Morris", TeamCode: "LAC"},
		{ID: "markieff-morris", CanonicalName: "Markieff Morris", TeamCode: "LAL"},
		{ID: "free-agent", CanonicalName: "Free Agent"},
	}
	teams := []model.Team{
		{Code: "LAL", FullName: "Los Angeles Lakers"},
		{Code: "LAC", FullName: "Los Angeles Clippers"},
		{Code: "PHI", FullName: "Philadelphia 76ers"},
	}
	idx, err := index.Build(entities, teams, nil)
	if err != nil {
		t.Fatalf("failed to build index: %v", err)
	}
	return idx
}

func TestAggregate(t *testing.T) {
	idx := buildIndex(t)
	mentioned := func(codes ...string) map[string]struct{} {
		m := make(map[string]struct{}, len(codes))
		for _, c := range codes {
			m[c] = struct{}{}
		}
		return m
	}

	Convey("Given an aggregator with default policy", t, func() {
		agg := resolve.NewAggregator()

		Convey("When lexical and fuzzy evidence cover the same entity", func() {
			res := agg.Aggregate(idx,
				map[string]float64{"lebron-james": 80},
				map[string]float64{"lebron-james": 95},
				nil)

			Convey("Then the scores max-merge, never sum", func() {
				top, ok := res.Top()
				So(ok, ShouldBeTrue)
				So(top.Entity.ID, ShouldEqual, "lebron-james")
				So(top.Score, ShouldEqual, 95)
			})
		})

		Convey("When a candidate's team was mentioned", func() {
			res := agg.Aggregate(idx,
				map[string]float64{"lebron-james": 80, "james-harden": 80},
				nil,
				mentioned("LAL"))

			Convey("Then only that candidate gains the boost", func() {
				So(res.Matches[0].Entity.ID, ShouldEqual, "lebron-james")
				So(res.Matches[0].Score, ShouldEqual, 100)
				So(res.Matches[1].Entity.ID, ShouldEqual, "james-harden")
				So(res.Matches[1].Score, ShouldEqual, 80)
			})

			Convey("Then the detected teams surface sorted", func() {
				So(res.Teams, ShouldResemble, []string{"LAL"})
			})
		})

		Convey("When two candidates share a surname without team context", func() {
			res := agg.Aggregate(idx,
				map[string]float64{"marcus-morris": 80, "markieff-morris": 80},
				nil,
				nil)

			Convey("Then the resolution is flagged ambiguous with scores untouched", func() {
				So(res.Ambiguous, ShouldBeTrue)
				So(res.Matches[0].Score, ShouldEqual, 80)
				So(res.Matches[1].Score, ShouldEqual, 80)
			})

			Convey("Then equal scores rank by roster order", func() {
				So(res.Matches[0].Entity.ID, ShouldEqual, "marcus-morris")
				So(res.Matches[1].Entity.ID, ShouldEqual, "markieff-morris")
			})
		})

		Convey("When a surname collision has team context", func() {
			res := agg.Aggregate(idx,
				map[string]float64{"marcus-morris": 80, "markieff-morris": 80},
				nil,
				mentioned("LAC"))

			Convey("Then the mentioned-team member gains and the other loses", func() {
				So(res.Ambiguous, ShouldBeFalse)
				So(res.Matches[0].Entity.ID, ShouldEqual, "marcus-morris")
				// 80 + 20 team boost + 30 surname boost.
				So(res.Matches[0].Score, ShouldEqual, 130)
				// 80 - 10 surname penalty; markieff's team exists but was
				// not mentioned.
				So(res.Matches[1].Score, ShouldEqual, 70)
			})
		})

		Convey("When a candidate has no team affiliation", func() {
			lexical := map[string]float64{"free-agent": 80, "anthony-davis": 80}
			res := agg.Aggregate(idx, lexical, nil, mentioned("LAC"))

			Convey("Then the teamless entity is neither boosted nor penalized", func() {
				for _, m := range res.Matches {
					if m.Entity.ID == "free-agent" {
						So(m.Score, ShouldEqual, 80)
					}
				}
			})
		})

		Convey("When the top score clears the cutoff", func() {
			res := agg.Aggregate(idx, map[string]float64{"lebron-james": 90}, nil, nil)
			So(res.HighConfidence, ShouldBeTrue)
		})

		Convey("When the top score equals the cutoff exactly", func() {
			res := agg.Aggregate(idx, map[string]float64{"lebron-james": 85}, nil, nil)
			So(res.HighConfidence, ShouldBeFalse)
		})

		Convey("When no evidence exists at all", func() {
			res := agg.Aggregate(idx, nil, nil, nil)

			Convey("Then the resolution is empty and valid", func() {
				So(res.Matches, ShouldBeEmpty)
				So(res.Ambiguous, ShouldBeFalse)
				So(res.HighConfidence, ShouldBeFalse)
			})
		})
	})

	Convey("Given an aggregator with a small limit", t, func() {
		agg := resolve.NewAggregator(resolve.WithLimit(2))

		Convey("When more candidates survive than the limit", func() {
			res := agg.Aggregate(idx,
				map[string]float64{
					"lebron-james":  90,
					"anthony-davis": 85,
					"james-harden":  80,
					"free-agent":    75,
				},
				nil, nil)

			Convey("Then only the top results return, ranked", func() {
				So(len(res.Matches), ShouldEqual, 2)
				So(res.Matches[0].Entity.ID, ShouldEqual, "lebron-james")
				So(res.Matches[1].Entity.ID, ShouldEqual, "anthony-davis")
			})
		})
	})

	Convey("Given an aggregator with custom policy", t, func() {
		agg := resolve.NewAggregator(
			resolve.WithTeamBoost(5),
			resolve.WithSurnameBoost(7),
			resolve.WithSurnamePenalty(3),
			resolve.WithHighConfidenceCutoff(200),
		)

		Convey("When a surname collision resolves with team context", func() {
			res := agg.Aggregate(idx,
				map[string]float64{"marcus-morris": 80, "markieff-morris": 80},
				nil,
				mentioned("LAC"))

			Convey("Then the configured adjustments apply", func() {
				So(res.Matches[0].Score, ShouldEqual, 92) // 80 + 5 + 7
				So(res.Matches[1].Score, ShouldEqual, 77) // 80 - 3
				So(res.HighConfidence, ShouldBeFalse)
			})
		})
	})
}
