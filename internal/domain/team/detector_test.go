package team_test

import (
	"testing"

	index "github.com/okian/rostermatch/internal/domain/index"
	"github.com/okian/rostermatch/internal/domain/model"
	team "github.com/okian/rostermatch/internal/domain/team"
	. "github.com/smartystreets/goconvey/convey"
)

func buildIndex(t *testing.T) *index.Index {
	t.Helper()
	entities := []model.Entity{
		{ID: "p1", CanonicalName: "Some Player", TeamCode: "LAL"},
	}
	teams := []model.Team{
		{Code: "LAL", FullName: "Los Angeles Lakers", Location: "Los Angeles", Nickname: "Lakers", Alternates: []string{"The Lakers", "LA Lakers"}},
		{Code: "LAC", FullName: "Los Angeles Clippers", Location: "Los Angeles", Nickname: "Clippers", Alternates: []string{"The Clippers"}},
		{Code: "BOS", FullName: "Boston Celtics", Location: "Boston", Nickname: "Celtics"},
		{Code: "BKN", FullName: "Brooklyn Nets", Location: "Brooklyn", Nickname: "Nets"},
	}
	idx, err := index.Build(entities, teams, nil)
	if err != nil {
		t.Fatalf("failed to build index: %v", err)
	}
	return idx
}

func TestDetect(t *testing.T) {
	idx := buildIndex(t)

	Convey("Given a team detector", t, func() {
		Convey("When the text carries a full team name", func() {
			got := team.Detect("the Boston Celtics won again", idx)

			Convey("Then that team is detected", func() {
				So(got, ShouldContainKey, "BOS")
				So(len(got), ShouldEqual, 1)
			})
		})

		Convey("When the text carries only a nickname", func() {
			got := team.Detect("big night for the Nets", idx)

			Convey("Then the nickname resolves to its team", func() {
				So(got, ShouldContainKey, "BKN")
				So(len(got), ShouldEqual, 1)
			})
		})

		Convey("When the text carries a team code", func() {
			got := team.Detect("BOS closed the series at home", idx)

			Convey("Then the code resolves to its team", func() {
				So(got, ShouldContainKey, "BOS")
			})
		})

		Convey("When the text carries an alternate name", func() {
			got := team.Detect("LA Lakers in transition", idx)

			Convey("Then the alternate resolves to its team", func() {
				So(got, ShouldContainKey, "LAL")
			})
		})

		Convey("When a shared location appears without a nickname", func() {
			got := team.Detect("huge Los Angeles rivalry game", idx)

			Convey("Then every sharer is detected rather than guessing", func() {
				So(got, ShouldContainKey, "LAL")
				So(got, ShouldContainKey, "LAC")
			})
		})

		Convey("When a shared location appears next to one sharer's nickname", func() {
			got := team.Detect("the Los Angeles Clippers pulled away late", idx)

			Convey("Then only the claiming team is detected", func() {
				So(got, ShouldContainKey, "LAC")
				So(got, ShouldNotContainKey, "LAL")
			})
		})

		Convey("When the text mentions no team at all", func() {
			got := team.Detect("a quiet evening of baseball", idx)

			Convey("Then the result is an empty set, not an error", func() {
				So(len(got), ShouldEqual, 0)
			})
		})

		Convey("When detecting the same text twice", func() {
			first := team.Detect("the Boston Celtics against the Nets", idx)
			second := team.Detect("the Boston Celtics against the Nets", idx)

			Convey("Then the outputs are identical", func() {
				So(first, ShouldResemble, second)
			})
		})
	})
}

func TestCodes(t *testing.T) {
	Convey("Given a detected set", t, func() {
		Convey("When converting to a slice", func() {
			codes := team.Codes(map[string]struct{}{"LAL": {}, "BOS": {}, "BKN": {}})

			Convey("Then codes come back sorted", func() {
				So(codes, ShouldResemble, []string{"BKN", "BOS", "LAL"})
			})
		})

		Convey("When the set is empty", func() {
			So(team.Codes(nil), ShouldBeNil)
		})
	})
}
