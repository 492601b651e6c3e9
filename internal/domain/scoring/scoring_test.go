package scoring_test

import (
	"testing"

	"github.com/okian/lootpool/internal/domain/model"
	"github.com/okian/lootpool/internal/domain/scoring"
	. "github.com/smartystreets/goconvey/convey"
)

func TestTierInfo(t *testing.T) {
	Convey("Given an engine with mythic thresholds [1,5,15]", t, func() {
		engine := scoring.New(
			scoring.WithTierTable("mythic", []int{1, 5, 15}),
			scoring.WithWeight("mythic", 1, 2, 13.55),
			scoring.WithWeight("mythic", 2, 3, 10.0),
		)

		Convey("When the amount is below the first threshold", func() {
			current, target, remaining := engine.TierInfo(model.RarityMythic, 0)

			Convey("Then the player sits in tier 1 aiming at tier 2", func() {
				So(current, ShouldEqual, 1)
				So(target, ShouldEqual, 2)
				So(remaining, ShouldEqual, 5)
			})
		})

		Convey("When the amount is mid-table", func() {
			current, target, remaining := engine.TierInfo(model.RarityMythic, 10)

			Convey("Then the player sits in tier 2 aiming at tier 3", func() {
				So(current, ShouldEqual, 2)
				So(target, ShouldEqual, 3)
				So(remaining, ShouldEqual, 5)
			})
		})

		Convey("When the amount reaches the max", func() {
			current, target, remaining := engine.TierInfo(model.RarityMythic, 15)

			Convey("Then the terminal state is returned", func() {
				So(current, ShouldEqual, 0)
				So(target, ShouldEqual, 0)
				So(remaining, ShouldEqual, 0)
			})
		})

		Convey("When the amount exceeds the max", func() {
			current, _, _ := engine.TierInfo(model.RarityMythic, 200)

			Convey("Then it still reads as maxed", func() {
				So(current, ShouldEqual, 0)
			})
		})

		Convey("When the amount is negative", func() {
			current, target, remaining := engine.TierInfo(model.RarityMythic, -7)

			Convey("Then it clamps to zero before lookup", func() {
				So(current, ShouldEqual, 1)
				So(target, ShouldEqual, 2)
				So(remaining, ShouldEqual, 5)
			})
		})
	})

	Convey("Given a rarity with no configured table", t, func() {
		engine := scoring.New()

		Convey("When asking for tier info", func() {
			current, target, remaining := engine.TierInfo(model.Rarity("Common"), 100)

			Convey("Then the single-tier fallback applies", func() {
				So(current, ShouldEqual, 1)
				So(target, ShouldEqual, 1)
				So(remaining, ShouldEqual, 50)
			})
		})
	})
}

func TestAspectScore(t *testing.T) {
	Convey("Given the mythic table [1,5,15] with weights 1-2=13.55 and 2-3=10.0", t, func() {
		engine := scoring.New()

		Convey("Then amount 0 scores 5 x 13.55", func() {
			So(engine.AspectScore(model.RarityMythic, 0), ShouldEqual, 67.75)
		})

		Convey("Then amount 10 scores 5 x 10.0", func() {
			So(engine.AspectScore(model.RarityMythic, 10), ShouldEqual, 50.0)
		})

		Convey("Then amount 15 scores exactly zero", func() {
			So(engine.AspectScore(model.RarityMythic, 15), ShouldEqual, 0.0)
		})
	})

	Convey("Given the fabled table [1,15,75] with weight 2-3=0.5", t, func() {
		engine := scoring.New()

		Convey("Then amount 20 scores 55 x 0.5", func() {
			So(engine.AspectScore(model.RarityFabled, 20), ShouldEqual, 27.5)
		})
	})

	Convey("Given any rarity", t, func() {
		engine := scoring.New()

		Convey("Then the score never increases while the tier stays the same", func() {
			for _, r := range []model.Rarity{model.RarityMythic, model.RarityFabled, model.RarityLegendary} {
				prevScore := engine.AspectScore(r, 0)
				prevTier, _, _ := engine.TierInfo(r, 0)
				for amount := 1; amount <= engine.MaxAmount(r)+5; amount++ {
					score := engine.AspectScore(r, amount)
					tier, _, _ := engine.TierInfo(r, amount)
					if tier == prevTier {
						So(score, ShouldBeLessThanOrEqualTo, prevScore)
					}
					prevScore, prevTier = score, tier
				}
			}
		})

		Convey("Then amounts at or past the max score exactly zero", func() {
			for _, r := range []model.Rarity{model.RarityMythic, model.RarityFabled, model.RarityLegendary} {
				maxAmount := engine.MaxAmount(r)
				So(engine.AspectScore(r, maxAmount), ShouldEqual, 0.0)
				So(engine.AspectScore(r, maxAmount+100), ShouldEqual, 0.0)
			}
		})
	})

	Convey("Given a tier step with no configured weight", t, func() {
		engine := scoring.New()

		Convey("Then the default weight of 1.0 applies", func() {
			// fabled tier 1 targets tier 2; no weight configured for 1-2.
			So(engine.AspectScore(model.RarityFabled, 5), ShouldEqual, 10.0)
		})
	})
}

func TestPoolScore(t *testing.T) {
	Convey("Given a pool and a player's progress", t, func() {
		engine := scoring.New()
		pool := []model.Aspect{
			{Name: "Aspect A", Rarity: model.RarityMythic},
			{Name: "Aspect B", Rarity: model.RarityMythic},
			{Name: "Aspect C", Rarity: model.RarityFabled},
		}

		Convey("When the player has partial progress", func() {
			progress := model.Progress{"Aspect A": 10, "Aspect C": 20}
			score := engine.PoolScore(pool, progress)

			Convey("Then aspects sum individually with missing names at zero", func() {
				// A: 50.0, B: 67.75 (absent -> 0), C: 27.5
				So(score, ShouldEqual, 50.0+67.75+27.5)
			})
		})

		Convey("When the pool is empty", func() {
			So(engine.PoolScore(nil, model.Progress{"x": 3}), ShouldEqual, 0.0)
		})

		Convey("When everything is maxed", func() {
			progress := model.Progress{"Aspect A": 15, "Aspect B": 15, "Aspect C": 75}

			Convey("Then the score is the exact zero sentinel", func() {
				So(engine.PoolScore(pool, progress), ShouldEqual, 0.0)
			})
		})

		Convey("When an aspect has an unknown rarity", func() {
			odd := []model.Aspect{{Name: "Oddity", Rarity: model.Rarity("Relic")}}

			Convey("Then the fallback table and weight 1.0 apply", func() {
				So(engine.PoolScore(odd, model.Progress{}), ShouldEqual, 150.0)
			})
		})
	})
}

func TestOptions(t *testing.T) {
	Convey("Given engine options", t, func() {
		Convey("When a tier table is overridden", func() {
			engine := scoring.New(scoring.WithTierTable("mythic", []int{2, 8}))

			Convey("Then the new table is used", func() {
				So(engine.MaxAmount(model.RarityMythic), ShouldEqual, 8)
			})
		})

		Convey("When an invalid table is supplied", func() {
			engine := scoring.New(scoring.WithTierTable("mythic", []int{5, 3}))

			Convey("Then the previous table is kept", func() {
				So(engine.MaxAmount(model.RarityMythic), ShouldEqual, 15)
			})
		})

		Convey("When a non-positive weight is supplied", func() {
			engine := scoring.New(scoring.WithWeight("mythic", 1, 2, -4))

			Convey("Then the seeded weight is kept", func() {
				So(engine.AspectScore(model.RarityMythic, 0), ShouldEqual, 67.75)
			})
		})
	})
}

func TestParseStep(t *testing.T) {
	Convey("Given tier step specs", t, func() {
		Convey("Then well-formed specs parse", func() {
			from, to, err := scoring.ParseStep("1-2")
			So(err, ShouldBeNil)
			So(from, ShouldEqual, 1)
			So(to, ShouldEqual, 2)
		})

		Convey("Then malformed specs error", func() {
			_, _, err := scoring.ParseStep("12")
			So(err, ShouldNotBeNil)

			_, _, err = scoring.ParseStep("a-b")
			So(err, ShouldNotBeNil)
		})
	})
}
