package service

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	. "github.com/smartystreets/goconvey/convey"

	"github.com/okian/talentroll/internal/domain/assembler"
	"github.com/okian/talentroll/internal/domain/model"
	"github.com/okian/talentroll/internal/domain/sampler"
	"github.com/okian/talentroll/internal/domain/simulator"
	"github.com/okian/talentroll/pkg/logger"
)

func intPtr(v int) *int { return &v }

func hero() model.CharacterRecord {
	return model.CharacterRecord{
		Name: "Alrik",
		Attributes: &model.AttributeBlock{Values: []model.AttributeScore{
			{ID: "ATTR_1", Value: intPtr(13)},
			{ID: "ATTR_2", Value: intPtr(12)},
			{ID: "ATTR_6", Value: intPtr(14)},
			{ID: "ATTR_7", Value: intPtr(10)},
			{ID: "ATTR_8", Value: intPtr(13)},
		}},
		Talents: map[string]*int{"TAL_3": intPtr(4), "TAL_14": intPtr(0)},
	}
}

func definitions() []model.TalentDefinition {
	return []model.TalentDefinition{
		{ID: "TAL_3", Name: "Klettern", Check1: "ATTR_1", Check2: "ATTR_6", Check3: "ATTR_8"},
		{ID: "TAL_5", Name: "Kraftakt", Check1: "ATTR_7", Check2: "ATTR_8", Check3: "ATTR_8"},
		{ID: "TAL_14", Name: "Zechen", Check1: "ATTR_2", Check2: "ATTR_7", Check3: "ATTR_8"},
	}
}

func exhaustive() sampler.Factory {
	perms := sampler.Permutations()
	return func(int) sampler.Sampler { return sampler.NewSequence(perms...) }
}

// Runs before any test initializes the global logger.
func TestServiceWithInjectedLogger(t *testing.T) {
	Convey("Given a service with its own logger and no global logger", t, func() {
		talents := []model.AssembledTalent{
			{ID: "T1", Name: "plain", Thresholds: [3]int{13, 13, 13}, SkillLevel: intPtr(0)},
			{ID: "T2", Name: "unlearned", Thresholds: [3]int{12, 14, 10}},
		}
		svc := New(WithLogger(logger.Nop()), WithSeed(1), WithTrials(10), WithWorkerCount(3))

		Convey("Then a parallel run should complete without panicking", func() {
			var res *model.Results
			var err error
			So(func() { res, err = svc.Simulate(context.Background(), talents) }, ShouldNotPanic)
			So(err, ShouldBeNil)
			So(len(res.Talents), ShouldEqual, 2)
			So(res.Talents[1].Tally.Total(), ShouldEqual, 10)
		})
	})
}

func TestServiceRun(t *testing.T) {
	_ = logger.Init()
	ctx := context.Background()

	Convey("Given a seeded service", t, func() {
		Convey("When the same run uses different worker counts", func() {
			one, errOne := New(WithSeed(7), WithTrials(2000), WithWorkerCount(1)).Run(ctx, hero(), definitions())
			many, errMany := New(WithSeed(7), WithTrials(2000), WithWorkerCount(8)).Run(ctx, hero(), definitions())

			Convey("Then the tallies should be identical and in talent order", func() {
				So(errOne, ShouldBeNil)
				So(errMany, ShouldBeNil)
				So(len(one.Talents), ShouldEqual, 3)
				So(len(many.Talents), ShouldEqual, 3)
				for i := range one.Talents {
					So(many.Talents[i].Talent.Name, ShouldEqual, one.Talents[i].Talent.Name)
					So(many.Talents[i].Tally, ShouldResemble, one.Talents[i].Tally)
				}
				So(one.Talents[0].Talent.Name, ShouldEqual, "Klettern")
				So(one.Talents[2].Talent.Name, ShouldEqual, "Zechen")
				So(one.Seed, ShouldEqual, 7)
				So(one.Trials, ShouldEqual, 2000)
			})

			Convey("Then every distribution should sum to one", func() {
				So(errOne, ShouldBeNil)
				for _, tr := range one.Talents {
					So(tr.Distribution.Sum(), ShouldAlmostEqual, 1.0, 1e-9)
					So(tr.Tally.Total(), ShouldEqual, 2000)
				}
			})

			Convey("Then each run should carry its own run id", func() {
				So(errOne, ShouldBeNil)
				_, parseErr := uuid.Parse(one.RunID)
				So(parseErr, ShouldBeNil)
				So(one.RunID, ShouldNotEqual, many.RunID)
			})
		})

		Convey("When no seed is given", func() {
			res, err := New(WithTrials(10), WithWorkerCount(2)).Run(ctx, hero(), definitions())

			Convey("Then a fresh seed should be drawn and reported", func() {
				So(err, ShouldBeNil)
				So(res.Seed, ShouldNotEqual, 0)
			})
		})
	})

	Convey("Given the exhaustive sampler", t, func() {
		talents := []model.AssembledTalent{
			{ID: "T1", Name: "plain", Thresholds: [3]int{13, 13, 13}, SkillLevel: intPtr(0)},
			{ID: "T2", Name: "capped", Thresholds: [3]int{1, 1, 1}, SkillLevel: intPtr(57)},
		}
		svc := New(WithSamplerFactory(exhaustive()), WithTrials(len(sampler.Permutations())), WithWorkerCount(4))
		res, err := svc.Simulate(ctx, talents)

		Convey("Then the tallies should match the exact enumeration", func() {
			So(err, ShouldBeNil)
			So(res.Talents[0].Tally, ShouldResemble, model.Tally{
				0: 1716, 1: 468, 2: 468, 3: 546, 4: 546, 5: 624, 6: 630, 7: 708, 8: 246,
				9: 252, 10: 180, 11: 180, 12: 108, 13: 102, 14: 24, 15: 18, 16: 12, 17: 6, 18: 6,
			})
			So(res.Talents[1].Distribution, ShouldResemble, model.Distribution{-1: 1.0})
		})
	})

	Convey("Given the skip policy", t, func() {
		res, err := New(WithSeed(3), WithTrials(100), WithMissingSkillPolicy(simulator.MissingSkip)).Run(ctx, hero(), definitions())

		Convey("Then unlearned talents should be listed as skipped", func() {
			So(err, ShouldBeNil)
			So(len(res.Talents), ShouldEqual, 2)
			So(len(res.Skipped), ShouldEqual, 1)
			So(res.Skipped[0].Name, ShouldEqual, "Kraftakt")
			So(res.Talents[1].Stream, ShouldEqual, 2)
		})
	})

	Convey("Given invalid input", t, func() {
		Convey("When the trial count is zero", func() {
			res, err := New(WithSeed(1), WithTrials(0)).Run(ctx, hero(), definitions())

			Convey("Then no results should be returned", func() {
				So(res, ShouldBeNil)
				So(errors.Is(err, simulator.ErrInvalidTrialCount), ShouldBeTrue)
			})
		})

		Convey("When the character has no attr block", func() {
			broken := hero()
			broken.Attributes = nil
			res, err := New(WithSeed(1)).Run(ctx, broken, definitions())

			Convey("Then the assembler error should surface", func() {
				So(res, ShouldBeNil)
				So(errors.Is(err, assembler.ErrMalformedInput), ShouldBeTrue)
			})
		})

		Convey("When the context is already canceled", func() {
			cctx, cancel := context.WithCancel(ctx)
			cancel()
			res, err := New(WithSeed(1), WithTrials(100)).Run(cctx, hero(), definitions())

			Convey("Then the run should abort without results", func() {
				So(res, ShouldBeNil)
				So(err, ShouldNotBeNil)
			})
		})
	})
}

func TestCollector(t *testing.T) {
	Convey("Given a collector", t, func() {
		canceled := false
		c := newCollector(func() { canceled = true })
		jobs := []model.Job{{Stream: 0}, {Stream: 3}}

		Convey("When results arrive out of order", func() {
			c.Record(context.Background(), model.TalentResult{Stream: 3})
			c.Record(context.Background(), model.TalentResult{Stream: 0})
			out, err := c.ordered(jobs)

			Convey("Then they should be returned in job order", func() {
				So(err, ShouldBeNil)
				So(out[0].Stream, ShouldEqual, 0)
				So(out[1].Stream, ShouldEqual, 3)
			})
		})

		Convey("When a result is missing", func() {
			c.Record(context.Background(), model.TalentResult{Stream: 0})
			_, err := c.ordered(jobs)

			So(errors.Is(err, ErrIncomplete), ShouldBeTrue)
		})

		Convey("When jobs fail", func() {
			first := errors.New("first")
			c.Fail(context.Background(), jobs[0], first)
			c.Fail(context.Background(), jobs[1], errors.New("second"))

			Convey("Then the first error should win and the run be canceled", func() {
				So(errors.Is(c.Err(), first), ShouldBeTrue)
				So(canceled, ShouldBeTrue)
			})
		})
	})
}
