package app_test

import (
	"context"
	"errors"
	"os"
	"testing"

	app "github.com/okian/rostermatch/internal/app"
	"github.com/okian/rostermatch/internal/config"
	fuzzy "github.com/okian/rostermatch/internal/domain/fuzzy"
	index "github.com/okian/rostermatch/internal/domain/index"
	"github.com/okian/rostermatch/internal/domain/model"
	"github.com/okian/rostermatch/pkg/logger"
	. "github.com/smartystreets/goconvey/convey"
)

func TestMain(m *testing.M) {
	if err := logger.Init(); err != nil {
		os.Exit(1)
	}
	os.Exit(m.Run())
}

func testRoster() ([]model.Entity, []model.Team, index.AliasTable) {
	entities := []model.Entity{
		{ID: "lebron-james", CanonicalName: "LeBron James", TeamCode: "LAL"},
		{ID: "anthony-davis", CanonicalName: "Anthony Davis", TeamCode: "LAL"},
		{ID: "james-harden", CanonicalName: "James Harden", TeamCode: "PHI"},
		{ID: "stephen-curry", CanonicalName: "Stephen Curry", TeamCode: "GSW"},
		{ID: "marcus-morris", CanonicalName: "Marcus Morris", TeamCode: "LAC"},
		{ID: "markieff-morris", CanonicalName: "Markieff Morris", TeamCode: "LAL"},
	}
	teams := []model.Team{
		{Code: "LAL", FullName: "Los Angeles Lakers", Location: "Los Angeles", Nickname: "Lakers"},
		{Code: "LAC", FullName: "Los Angeles Clippers", Location: "Los Angeles", Nickname: "Clippers"},
		{Code: "PHI", FullName: "Philadelphia 76ers", Location: "Philadelphia", Nickname: "76ers"},
		{Code: "GSW", FullName: "Golden State Warriors", Location: "Golden State", Nickname: "Warriors"},
	}
	aliases := index.AliasTable{
		"lebron-james": {"King", "LBJ", "King James"},
		"james-harden": {"Beard"},
	}
	return entities, teams, aliases
}

func newService(t *testing.T, ctx context.Context) *app.Service {
	t.Helper()
	svc := app.New(config.New())
	svc.Start(ctx)
	t.Cleanup(func() { svc.Stop(context.Background()) })

	entities, teams, aliases := testRoster()
	if err := svc.Rebuild(ctx, entities, teams, aliases); err != nil {
		t.Fatalf("failed to rebuild: %v", err)
	}
	return svc
}

// failingScorer always errors; it stands in for a broken similarity backend.
type failingScorer struct{}

func (failingScorer) ScoreAll(ctx context.Context, query string, candidates []string, variant fuzzy.Variant, limit int) ([]fuzzy.Result, error) {
	return nil, errors.New("backend down")
}

func TestResolve(t *testing.T) {
	ctx := context.Background()

	Convey("Given a running service", t, func() {
		svc := newService(t, ctx)

		Convey("When resolving a canonical name", func() {
			res, err := svc.Resolve(ctx, "LeBron James went off tonight")

			Convey("Then the entity resolves on top", func() {
				So(err, ShouldBeNil)
				top, ok := res.Top()
				So(ok, ShouldBeTrue)
				So(top.Entity.ID, ShouldEqual, "lebron-james")
			})
		})

		Convey("When resolving a nickname with a rival team mentioned", func() {
			res, err := svc.Resolve(ctx, "The King torched the Warriors")

			Convey("Then the nickname wins and the team is detected", func() {
				So(err, ShouldBeNil)
				top, ok := res.Top()
				So(ok, ShouldBeTrue)
				So(top.Entity.ID, ShouldEqual, "lebron-james")
				So(res.Teams, ShouldResemble, []string{"GSW"})
			})
		})

		Convey("When an ambiguous token gets team context", func() {
			// "James" reaches LeBron James by last name and James Harden
			// by first name; the Lakers mention settles it.
			res, err := svc.Resolve(ctx, "James dropped 40 for the Lakers")

			Convey("Then the mentioned-team player wins", func() {
				So(err, ShouldBeNil)
				So(res.Teams, ShouldResemble, []string{"LAL"})
				So(len(res.Matches), ShouldBeGreaterThanOrEqualTo, 2)
				So(res.Matches[0].Entity.ID, ShouldEqual, "lebron-james")
				So(res.Matches[0].Score, ShouldBeGreaterThan, res.Matches[1].Score)
			})
		})

		Convey("When a surname collision has team context", func() {
			res, err := svc.Resolve(ctx, "Morris hit the dagger for the Clippers")

			Convey("Then the mentioned-team member ranks first", func() {
				So(err, ShouldBeNil)
				So(res.Ambiguous, ShouldBeFalse)
				top, ok := res.Top()
				So(ok, ShouldBeTrue)
				So(top.Entity.ID, ShouldEqual, "marcus-morris")
			})
		})

		Convey("When a surname collision has no team context", func() {
			res, err := svc.Resolve(ctx, "Morris with the rebound")

			Convey("Then the resolution is flagged ambiguous", func() {
				So(err, ShouldBeNil)
				So(res.Ambiguous, ShouldBeTrue)
			})
		})

		Convey("When resolving the same text twice", func() {
			first, err1 := svc.Resolve(ctx, "Curry for three")
			second, err2 := svc.Resolve(ctx, "Curry for three")

			Convey("Then the cached result matches the computed one", func() {
				So(err1, ShouldBeNil)
				So(err2, ShouldBeNil)
				So(first, ShouldResemble, second)
			})
		})

		Convey("When the text is blank", func() {
			res, err := svc.Resolve(ctx, "   ")

			Convey("Then an empty resolution returns without error", func() {
				So(err, ShouldBeNil)
				So(res.Matches, ShouldBeEmpty)
			})
		})

		Convey("When the text mentions nothing on the roster", func() {
			res, err := svc.Resolve(ctx, "the stadium lights flickered during halftime")

			Convey("Then the resolution is empty and valid", func() {
				So(err, ShouldBeNil)
				So(res.Matches, ShouldBeEmpty)
				So(res.Teams, ShouldBeEmpty)
			})
		})

		Convey("When more entities match than the limit", func() {
			// Every entity surfaces through its first or last name.
			res, err := svc.Resolve(ctx, "James Davis Harden Curry Marcus Markieff Stephen Anthony")

			Convey("Then at most the configured limit returns", func() {
				So(err, ShouldBeNil)
				So(len(res.Matches), ShouldBeLessThanOrEqualTo, config.New().Limit)
				So(len(res.Matches), ShouldEqual, config.New().Limit)
			})
		})

		Convey("When reporting stats", func() {
			stats := svc.Stats()

			Convey("Then the active index is described", func() {
				So(stats["entities"], ShouldEqual, 6)
				So(stats["teams"], ShouldEqual, 4)
				So(stats["index_version"], ShouldNotBeEmpty)
			})
		})
	})

	Convey("Given a service without an index", t, func() {
		svc := app.New(config.New())
		svc.Start(ctx)
		defer svc.Stop(context.Background())

		Convey("When resolving", func() {
			_, err := svc.Resolve(ctx, "anyone")

			Convey("Then it fails with the no-index sentinel", func() {
				So(errors.Is(err, app.ErrNoIndex), ShouldBeTrue)
			})
		})
	})

	Convey("Given a service whose pool is stopped", t, func() {
		svc := newService(t, ctx)
		svc.Stop(context.Background())

		Convey("When resolving", func() {
			_, err := svc.Resolve(ctx, "LeBron")

			Convey("Then it fails with the saturation sentinel", func() {
				So(errors.Is(err, app.ErrSaturated), ShouldBeTrue)
			})
		})
	})

	Convey("Given a failing similarity backend", t, func() {
		svc := app.New(config.New(), app.WithScorer(failingScorer{}))
		svc.Start(ctx)
		defer svc.Stop(context.Background())

		entities, teams, aliases := testRoster()
		So(svc.Rebuild(ctx, entities, teams, aliases), ShouldBeNil)

		Convey("When resolving", func() {
			_, err := svc.Resolve(ctx, "LeBron James")

			Convey("Then the scoring error surfaces wrapped", func() {
				So(errors.Is(err, app.ErrScoring), ShouldBeTrue)
			})
		})
	})
}

func TestRebuild(t *testing.T) {
	ctx := context.Background()

	Convey("Given a running service", t, func() {
		svc := newService(t, ctx)

		Convey("When rebuilding with invalid data", func() {
			err := svc.Rebuild(ctx, nil, nil, nil)

			Convey("Then the build error surfaces and the old index survives", func() {
				So(errors.Is(err, app.ErrBuildIndex), ShouldBeTrue)
				res, rerr := svc.Resolve(ctx, "Curry pull-up")
				So(rerr, ShouldBeNil)
				top, ok := res.Top()
				So(ok, ShouldBeTrue)
				So(top.Entity.ID, ShouldEqual, "stephen-curry")
			})
		})

		Convey("When rebuilding with a grown roster", func() {
			entities, teams, aliases := testRoster()
			entities = append(entities, model.Entity{ID: "new-rookie", CanonicalName: "New Rookie", TeamCode: "GSW"})
			So(svc.Rebuild(ctx, entities, teams, aliases), ShouldBeNil)

			Convey("Then the new entity resolves immediately", func() {
				res, err := svc.Resolve(ctx, "Rookie with the putback slam")
				So(err, ShouldBeNil)
				top, ok := res.Top()
				So(ok, ShouldBeTrue)
				So(top.Entity.ID, ShouldEqual, "new-rookie")
			})
		})
	})
}
