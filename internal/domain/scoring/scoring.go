// Package scoring implements the tier-weight distance-to-completion model.
//
// Each rarity has an ascending threshold table whose last entry is the max
// collectible amount; the gap between adjacent thresholds is a tier. The
// score for an aspect is the amount still missing in the current tier times
// the weight configured for the step to the next tier, so early tiers can be
// weighted heavier than the home stretch.
package scoring

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/okian/lootpool/internal/domain/model"
)

// Default scoring configuration constants.
const (
	// defaultWeight applies when no weight is configured for a tier step.
	defaultWeight = 1.0
	// fallbackMax is the single-tier max used for rarities with no
	// configured threshold table.
	fallbackMax = 150
)

// stepKey identifies a tier transition for weight lookup.
type stepKey struct {
	rarity string
	from   int
	to     int
}

// Engine evaluates tier positions and pool scores. It is pure and safe for
// concurrent use once constructed.
type Engine struct {
	tiers   map[string][]int
	weights map[stepKey]float64
}

// Option applies a configuration option to the Engine.
type Option func(*Engine)

// WithTierTable replaces the threshold table for a rarity. Invalid tables
// (empty, non-ascending, or starting at zero) are ignored and the previous
// table is kept.
func WithTierTable(rarity string, thresholds []int) Option {
	return func(e *Engine) {
		if !validTable(thresholds) {
			return
		}
		t := make([]int, len(thresholds))
		copy(t, thresholds)
		e.tiers[strings.ToLower(rarity)] = t
	}
}

// WithWeight sets the weight multiplier for one tier step of a rarity.
// Non-positive weights are ignored.
func WithWeight(rarity string, from, to int, weight float64) Option {
	return func(e *Engine) {
		if weight <= 0 {
			return
		}
		e.weights[stepKey{rarity: strings.ToLower(rarity), from: from, to: to}] = weight
	}
}

// New constructs an Engine seeded with the production tier tables and
// weights, then applies opts.
func New(opts ...Option) *Engine {
	e := &Engine{
		tiers: map[string][]int{
			"mythic":    {1, 5, 15},
			"fabled":    {1, 15, 75},
			"legendary": {1, 30, 150},
		},
		weights: map[stepKey]float64{
			{rarity: "mythic", from: 1, to: 2}: 13.55,
			{rarity: "mythic", from: 2, to: 3}: 10.0,
			{rarity: "fabled", from: 2, to: 3}: 0.5,
		},
	}

	for _, opt := range opts {
		opt(e)
	}

	return e
}

// MaxAmount returns the amount at which the rarity is fully collected.
func (e *Engine) MaxAmount(r model.Rarity) int {
	ts := e.thresholds(r)
	return ts[len(ts)-1]
}

// IsMaxed reports whether amount has reached the rarity's max.
func (e *Engine) IsMaxed(r model.Rarity, amount int) bool {
	return amount >= e.MaxAmount(r)
}

// TierInfo returns the 1-based current tier, the target tier, and the amount
// remaining to reach the end of the current tier. A fully collected aspect
// returns the terminal state (0, 0, 0).
func (e *Engine) TierInfo(r model.Rarity, amount int) (current, target, remaining int) {
	if amount < 0 {
		amount = 0
	}

	ts := e.thresholds(r)
	maxAmount := ts[len(ts)-1]
	if amount >= maxAmount {
		return 0, 0, 0
	}

	current = 1
	for i, t := range ts {
		if amount >= t {
			current = i + 1
		}
	}

	// Last configured tier targets itself and runs up to the max.
	target = current
	tierEnd := maxAmount
	if current < len(ts) {
		target = current + 1
		tierEnd = ts[current]
	}

	return current, target, tierEnd - amount
}

// AspectScore returns the weighted work remaining for one aspect. Exactly
// 0.0 means fully maxed.
func (e *Engine) AspectScore(r model.Rarity, amount int) float64 {
	current, target, remaining := e.TierInfo(r, amount)
	if current == 0 {
		return 0.0
	}

	weight, ok := e.weights[stepKey{rarity: r.Key(), from: current, to: target}]
	if !ok {
		weight = defaultWeight
	}

	return float64(remaining) * weight
}

// PoolScore sums AspectScore over all aspects in a pool against the player's
// progress. Missing progress counts as zero; the result is the pool's
// distance to completion, with exactly 0.0 meaning everything is maxed.
func (e *Engine) PoolScore(aspects []model.Aspect, progress model.Progress) float64 {
	total := 0.0
	for _, a := range aspects {
		total += e.AspectScore(a.Rarity, progress.Amount(a.Name))
	}
	return total
}

// thresholds returns the configured table for a rarity, or the single-tier
// fallback for unknown rarities.
func (e *Engine) thresholds(r model.Rarity) []int {
	if ts, ok := e.tiers[r.Key()]; ok {
		return ts
	}
	return []int{fallbackMax}
}

func validTable(thresholds []int) bool {
	if len(thresholds) == 0 || thresholds[0] <= 0 {
		return false
	}
	for i := 1; i < len(thresholds); i++ {
		if thresholds[i] <= thresholds[i-1] {
			return false
		}
	}
	return true
}

// ParseStep parses a "from-to" tier step spec such as "1-2", used by weight
// tables loaded from configuration.
func ParseStep(spec string) (from, to int, err error) {
	parts := strings.SplitN(strings.TrimSpace(spec), "-", 2)
	if len(parts) != 2 {
		return 0, 0, fmt.Errorf("invalid tier step %q", spec)
	}
	from, err = strconv.Atoi(parts[0])
	if err != nil {
		return 0, 0, fmt.Errorf("invalid tier step %q: %w", spec, err)
	}
	to, err = strconv.Atoi(parts[1])
	if err != nil {
		return 0, 0, fmt.Errorf("invalid tier step %q: %w", spec, err)
	}
	return from, to, nil
}
