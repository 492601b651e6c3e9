// Package model contains domain models passed between layers.
package model

import (
	"sort"
	"strings"
	"time"
)

// Rarity classifies an aspect by drop tier. Upstream sends capitalized names
// ("Mythic"); lookups normalize through Key.
type Rarity string

// Known rarities, from most to least scarce.
const (
	RarityMythic    Rarity = "Mythic"
	RarityFabled    Rarity = "Fabled"
	RarityLegendary Rarity = "Legendary"
)

// Key returns the lowercase lookup key for tier and weight tables.
func (r Rarity) Key() string { return strings.ToLower(string(r)) }

// Order returns the display/sort position of the rarity; unknown rarities
// sort last.
func (r Rarity) Order() int {
	switch r {
	case RarityMythic:
		return 0
	case RarityFabled:
		return 1
	case RarityLegendary:
		return 2
	default:
		return 99
	}
}

// Aspect is a single reward pool item. Immutable once fetched.
type Aspect struct {
	Name   string `json:"name"`
	Rarity Rarity `json:"rarity"`
	// Class is the category the aspect belongs to; empty until resolved
	// through the category mapping.
	Class string `json:"class,omitempty"`
}

// PoolSnapshot is the cached unit: one pool's aspects as of FetchedAt.
type PoolSnapshot struct {
	PoolType  string    `json:"pool_type"`
	Aspects   []Aspect  `json:"aspects"`
	FetchedAt time.Time `json:"fetched_at"`
}

// PooledAspect tags an aspect with the pool type it came from, used for
// cross-pool summaries.
type PooledAspect struct {
	Aspect
	PoolType string `json:"pool_type"`
}

// Gambit is one of the daily run modifiers offered alongside the pools.
type Gambit struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

// Progress maps aspect name to the player's collected amount. Supplied by an
// external collaborator; never mutated by this core.
type Progress map[string]int

// Amount returns the collected count for name, zero when absent or negative.
func (p Progress) Amount(name string) int {
	n := p[name]
	if n < 0 {
		return 0
	}
	return n
}

// SortAspectsByRarity orders aspects mythic-first, preserving the upstream
// order within a rarity.
func SortAspectsByRarity(aspects []Aspect) {
	sort.SliceStable(aspects, func(i, j int) bool {
		return aspects[i].Rarity.Order() < aspects[j].Rarity.Order()
	})
}
