package sampler_test

import (
	"testing"

	"github.com/okian/talentroll/internal/domain/sampler"
	. "github.com/smartystreets/goconvey/convey"
)

// fixedSource always returns the same offset into the remaining pool.
type fixedSource struct{ last bool }

func (f fixedSource) IntN(n int) int {
	if f.last {
		return n - 1
	}
	return 0
}

func TestFaceSampler(t *testing.T) {
	Convey("Given a face sampler", t, func() {
		Convey("When the source always picks the first remaining face", func() {
			s := sampler.New(fixedSource{})

			Convey("Then the roll should take the pool in order", func() {
				So(s.Draw(), ShouldResemble, sampler.Roll{1, 2, 3})
				So(s.Draw(), ShouldResemble, sampler.Roll{1, 2, 3})
			})
		})

		Convey("When the source always picks the last remaining face", func() {
			s := sampler.New(fixedSource{last: true})

			Convey("Then each draw should still be distinct", func() {
				So(s.Draw(), ShouldResemble, sampler.Roll{20, 1, 2})
			})
		})

		Convey("When drawing many seeded rolls", func() {
			s := sampler.NewSeeded(42, 0)
			var positions [sampler.Draws][sampler.Faces + 1]int
			valid := true
			const n = 60_000
			for i := 0; i < n; i++ {
				r := s.Draw()
				if !r.Valid() {
					valid = false
				}
				for p, face := range r {
					positions[p][face]++
				}
			}

			Convey("Then every roll should have three distinct faces in range", func() {
				So(valid, ShouldBeTrue)
			})

			Convey("And each face should appear about uniformly in every position", func() {
				expected := float64(n) / sampler.Faces
				for p := 0; p < sampler.Draws; p++ {
					for face := 1; face <= sampler.Faces; face++ {
						So(float64(positions[p][face]), ShouldAlmostEqual, expected, expected*0.1)
					}
				}
			})
		})
	})
}

func TestSeededDeterminism(t *testing.T) {
	Convey("Given two samplers with equal seed and stream", t, func() {
		a := sampler.NewSeeded(7, 3)
		b := sampler.Seeded(7)(3)

		Convey("Then they should produce identical rolls", func() {
			for i := 0; i < 1000; i++ {
				So(a.Draw(), ShouldResemble, b.Draw())
			}
		})
	})

	Convey("Given samplers on different streams", t, func() {
		a := sampler.NewSeeded(7, 0)
		b := sampler.NewSeeded(7, 1)

		Convey("Then their sequences should differ", func() {
			same := 0
			for i := 0; i < 100; i++ {
				if a.Draw() == b.Draw() {
					same++
				}
			}
			So(same, ShouldBeLessThan, 100)
		})
	})
}

func TestRollValid(t *testing.T) {
	Convey("Given rolls", t, func() {
		So(sampler.Roll{1, 2, 20}.Valid(), ShouldBeTrue)
		So(sampler.Roll{5, 5, 1}.Valid(), ShouldBeFalse)
		So(sampler.Roll{1, 9, 1}.Valid(), ShouldBeFalse)
		So(sampler.Roll{0, 2, 3}.Valid(), ShouldBeFalse)
		So(sampler.Roll{1, 2, 21}.Valid(), ShouldBeFalse)
	})
}

func TestSequence(t *testing.T) {
	Convey("Given a sequence sampler", t, func() {
		s := sampler.NewSequence(sampler.Roll{1, 2, 3}, sampler.Roll{4, 5, 6})

		Convey("Then it should replay and wrap", func() {
			So(s.Draw(), ShouldResemble, sampler.Roll{1, 2, 3})
			So(s.Draw(), ShouldResemble, sampler.Roll{4, 5, 6})
			So(s.Draw(), ShouldResemble, sampler.Roll{1, 2, 3})
		})

		Convey("Then an empty sequence should panic", func() {
			So(func() { sampler.NewSequence() }, ShouldPanic)
		})
	})

	Convey("Given all permutations", t, func() {
		perms := sampler.Permutations()

		Convey("Then there should be 20*19*18 distinct valid rolls", func() {
			So(len(perms), ShouldEqual, 6840)
			seen := make(map[sampler.Roll]bool, len(perms))
			for _, r := range perms {
				So(r.Valid(), ShouldBeTrue)
				seen[r] = true
			}
			So(len(seen), ShouldEqual, 6840)
			So(perms[0], ShouldResemble, sampler.Roll{1, 2, 3})
			So(perms[len(perms)-1], ShouldResemble, sampler.Roll{20, 19, 18})
		})
	})
}

func TestNewSeed(t *testing.T) {
	Convey("When generating seeds", t, func() {
		a, errA := sampler.NewSeed()
		b, errB := sampler.NewSeed()

		Convey("Then they should succeed and differ", func() {
			So(errA, ShouldBeNil)
			So(errB, ShouldBeNil)
			So(a, ShouldNotEqual, b)
		})
	})
}
