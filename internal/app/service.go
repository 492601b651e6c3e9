// Package service provides the core business service that implements
// the dependencies required by the HTTP API.
package service

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/okian/lootpool/internal/adapters/poolcache"
	"github.com/okian/lootpool/internal/domain/model"
	"github.com/okian/lootpool/internal/domain/reset"
	"github.com/okian/lootpool/internal/domain/scoring"
	"github.com/okian/lootpool/pkg/clock"
	"github.com/okian/lootpool/pkg/logger"
	"github.com/okian/lootpool/pkg/metrics"
)

// Defaults applied by New; all overridable through options.
const (
	defaultPoolTTL    = 5 * time.Minute
	defaultMappingTTL = time.Hour

	// defaultClass is assumed for aspects with no class requirement and no
	// mapping entry.
	defaultClass = "warrior"

	// gambitKey is the single cache key for the daily gambit list.
	gambitKey = "daily-gambits"
)

// Known raid pool types, in display order.
var defaultPoolTypes = []string{"NOTG", "NOL", "TCC", "TNA"} //nolint:gochecknoglobals // immutable default set

// Class categories served by the category source.
var defaultCategories = []string{"warrior", "mage", "archer", "assassin", "shaman"} //nolint:gochecknoglobals // immutable default set

// PoolSource supplies the current reward pool for a raid.
type PoolSource interface {
	Pool(ctx context.Context, poolType string) (model.PoolSnapshot, error)
}

// CategorySource supplies the aspect names belonging to a class category.
type CategorySource interface {
	Items(ctx context.Context, category string) ([]string, error)
}

// ProgressSource supplies per-player collection counts. The boolean reports
// whether the player is tracked at all.
type ProgressSource interface {
	Progress(ctx context.Context, player string) (model.Progress, bool, error)
}

// GambitSource supplies the current daily gambits.
type GambitSource interface {
	Gambits(ctx context.Context) ([]model.Gambit, error)
}

// Service implements the API dependencies for the reward pool companion.
type Service struct {
	pools      PoolSource
	categories CategorySource
	progress   ProgressSource
	gambits    GambitSource

	poolCache    *poolcache.Cache[string, model.PoolSnapshot]
	mappingCache *poolcache.Cache[string, map[string]string]
	gambitCache  *poolcache.Cache[string, []model.Gambit]

	engine *scoring.Engine
	clk    clock.Clock
	logger logger.Logger

	poolTTL       time.Duration
	mappingTTL    time.Duration
	poolTypes     []string
	categoryNames []string

	anchorWeekday   time.Weekday
	anchorHour      int
	anchorUTCOffset int
}

// Option applies a configuration option to the Service.
type Option func(*Service)

// WithPoolTTL sets how long pool snapshots are served from cache.
func WithPoolTTL(ttl time.Duration) Option {
	return func(s *Service) {
		if ttl > 0 {
			s.poolTTL = ttl
		}
	}
}

// WithMappingTTL sets how long the category mapping is served from cache.
func WithMappingTTL(ttl time.Duration) Option {
	return func(s *Service) {
		if ttl > 0 {
			s.mappingTTL = ttl
		}
	}
}

// WithClock injects the clock used for TTL checks and the reset window.
func WithClock(clk clock.Clock) Option {
	return func(s *Service) {
		if clk != nil {
			s.clk = clk
		}
	}
}

// WithPoolTypes replaces the set of known pool types.
func WithPoolTypes(types []string) Option {
	return func(s *Service) {
		if len(types) > 0 {
			s.poolTypes = types
		}
	}
}

// WithCategories replaces the set of class categories used for the mapping.
func WithCategories(categories []string) Option {
	return func(s *Service) {
		if len(categories) > 0 {
			s.categoryNames = categories
		}
	}
}

// WithEngine injects a scoring engine built from configuration.
func WithEngine(e *scoring.Engine) Option {
	return func(s *Service) {
		if e != nil {
			s.engine = e
		}
	}
}

// WithLogger sets a custom logger for the service.
func WithLogger(l logger.Logger) Option {
	return func(s *Service) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithResetAnchor overrides the weekly rollover anchor.
func WithResetAnchor(weekday time.Weekday, hour, utcOffsetHours int) Option {
	return func(s *Service) {
		s.anchorWeekday = weekday
		s.anchorHour = hour
		s.anchorUTCOffset = utcOffsetHours
	}
}

// New constructs a Service over the four upstream sources.
func New(pools PoolSource, categories CategorySource, progress ProgressSource, gambits GambitSource, opts ...Option) *Service {
	s := &Service{
		pools:           pools,
		categories:      categories,
		progress:        progress,
		gambits:         gambits,
		engine:          scoring.New(),
		clk:             clock.System(),
		logger:          logger.Nop(),
		poolTTL:         defaultPoolTTL,
		mappingTTL:      defaultMappingTTL,
		poolTypes:       defaultPoolTypes,
		categoryNames:   defaultCategories,
		anchorWeekday:   reset.DefaultWeekday,
		anchorHour:      reset.DefaultHour,
		anchorUTCOffset: reset.DefaultUTCOffset,
	}

	for _, opt := range opts {
		opt(s)
	}

	s.poolCache = poolcache.New[string, model.PoolSnapshot](s.poolTTL,
		poolcache.WithClock[string, model.PoolSnapshot](s.clk),
		poolcache.WithName[string, model.PoolSnapshot]("pool"),
	)
	s.mappingCache = poolcache.New[string, map[string]string](s.mappingTTL,
		poolcache.WithClock[string, map[string]string](s.clk),
		poolcache.WithName[string, map[string]string]("mapping"),
	)
	s.gambitCache = poolcache.New[string, []model.Gambit](s.poolTTL,
		poolcache.WithClock[string, []model.Gambit](s.clk),
		poolcache.WithName[string, []model.Gambit]("gambit"),
	)

	return s
}

// PoolTypes returns the known pool types in display order.
func (s *Service) PoolTypes() []string {
	out := make([]string, len(s.poolTypes))
	copy(out, s.poolTypes)
	return out
}

// knownPool reports whether poolType is one of the configured pools,
// case-insensitively, and returns its canonical spelling.
func (s *Service) knownPool(poolType string) (string, bool) {
	for _, t := range s.poolTypes {
		if strings.EqualFold(t, poolType) {
			return t, true
		}
	}
	return "", false
}

// Pool returns the snapshot for one pool, served from cache when fresh.
// Concurrent misses on the same pool share a single upstream fetch.
func (s *Service) Pool(ctx context.Context, poolType string) (model.PoolSnapshot, error) {
	canonical, ok := s.knownPool(poolType)
	if !ok {
		return model.PoolSnapshot{}, ErrUnknownPoolType
	}

	// The flag stays false when the read was a cache hit or the fetch was
	// shared with a concurrent flight.
	fetched := false
	snap, err := s.poolCache.GetOrFetch(ctx, canonical, func(ctx context.Context) (model.PoolSnapshot, error) {
		fetched = true
		snap, err := s.pools.Pool(ctx, canonical)
		if err != nil {
			return model.PoolSnapshot{}, err
		}
		s.annotateClasses(ctx, snap.Aspects)
		// Stamped here rather than in the client so snapshot age and cache
		// expiry run off the same clock.
		snap.FetchedAt = s.clk.Now()
		return snap, nil
	})
	if err != nil {
		metrics.RecordPoolFetch(canonical, metrics.OutcomeError)
		s.logger.Warn(ctx, "pool fetch failed",
			logger.String("poolType", canonical),
			logger.Error(err),
		)
		return model.PoolSnapshot{}, err
	}

	if fetched {
		metrics.RecordPoolFetch(canonical, metrics.OutcomeFetched)
		metrics.UpdatePoolAspects(canonical, len(snap.Aspects))
	} else {
		metrics.RecordPoolFetch(canonical, metrics.OutcomeHit)
	}
	return snap, nil
}

// FetchMany fetches several pools concurrently and returns the ones that
// succeeded, keyed by canonical pool type. A nil or empty request means all
// known pools. Duplicate and unknown entries are dropped; per-pool failures
// are logged and simply absent from the result.
func (s *Service) FetchMany(ctx context.Context, poolTypes []string) map[string]model.PoolSnapshot {
	if len(poolTypes) == 0 {
		poolTypes = s.poolTypes
	}

	// Dedupe the request so each pool is fetched at most once.
	seen := make(map[string]struct{}, len(poolTypes))
	targets := make([]string, 0, len(poolTypes))
	for _, t := range poolTypes {
		canonical, ok := s.knownPool(t)
		if !ok {
			s.logger.Debug(ctx, "skipping unknown pool type", logger.String("poolType", t))
			continue
		}
		if _, dup := seen[canonical]; dup {
			continue
		}
		seen[canonical] = struct{}{}
		targets = append(targets, canonical)
	}

	var (
		mu      sync.Mutex
		results = make(map[string]model.PoolSnapshot, len(targets))
		wg      sync.WaitGroup
	)

	for _, t := range targets {
		wg.Add(1)
		go func(poolType string) {
			defer wg.Done()

			snap, err := s.Pool(ctx, poolType)
			if err != nil {
				return
			}

			mu.Lock()
			results[poolType] = snap
			mu.Unlock()
		}(t)
	}
	wg.Wait()

	return results
}

// TopRarityAcrossPools collects the aspects of one rarity from the requested
// pools, tagged with their pool type and ordered by pool then upstream order.
// Nil or empty poolTypes means all known pools; an empty rarity defaults to
// mythic. Rarity matching is case-insensitive. It fails only when no pool
// could be fetched at all.
func (s *Service) TopRarityAcrossPools(ctx context.Context, poolTypes []string, rarity model.Rarity) ([]model.PooledAspect, error) {
	if rarity == "" {
		rarity = model.RarityMythic
	}

	pools := s.FetchMany(ctx, poolTypes)
	if len(pools) == 0 {
		return nil, ErrNoPoolsAvailable
	}

	out := make([]model.PooledAspect, 0)
	for _, poolType := range s.poolTypes {
		snap, ok := pools[poolType]
		if !ok {
			continue
		}
		for _, a := range snap.Aspects {
			if a.Rarity.Key() != rarity.Key() {
				continue
			}
			out = append(out, model.PooledAspect{Aspect: a, PoolType: poolType})
		}
	}

	return out, nil
}

// Gambits returns the current daily gambits, served from cache when fresh.
func (s *Service) Gambits(ctx context.Context) ([]model.Gambit, error) {
	gambits, err := s.gambitCache.GetOrFetch(ctx, gambitKey, s.gambits.Gambits)
	if err != nil {
		s.logger.Warn(ctx, "gambit fetch failed", logger.Error(err))
		return nil, err
	}
	return gambits, nil
}

// PlayerScore computes the pool completion score for a tracked player. The
// boolean reports whether the player is tracked; an untracked player is
// absence, not an error.
func (s *Service) PlayerScore(ctx context.Context, poolType, player string) (float64, bool, error) {
	snap, err := s.Pool(ctx, poolType)
	if err != nil {
		return 0, false, err
	}

	progress, found, err := s.progress.Progress(ctx, player)
	if err != nil {
		return 0, false, err
	}
	if !found {
		return 0, false, nil
	}

	return s.engine.PoolScore(snap.Aspects, progress), true, nil
}

// Engine exposes the scoring engine for per-aspect breakdowns.
func (s *Service) Engine() *scoring.Engine {
	return s.engine
}

// WarmCaches refreshes the category mapping and every configured pool. Run
// by the background prefetcher; it returns the number of pools now cached
// and fails only when no pool could be fetched.
func (s *Service) WarmCaches(ctx context.Context) (int, error) {
	if _, err := s.Mapping(ctx); err != nil {
		s.logger.Warn(ctx, "mapping warm failed", logger.Error(err))
	}
	if _, err := s.Gambits(ctx); err != nil {
		s.logger.Warn(ctx, "gambit warm failed", logger.Error(err))
	}

	pools := s.FetchMany(ctx, nil)
	if len(pools) == 0 {
		return 0, ErrNoPoolsAvailable
	}
	return len(pools), nil
}

// Window returns the previous and next weekly rollover around now.
func (s *Service) Window() (lastReset, nextReset time.Time) {
	return reset.Window(s.clk.Now(), s.anchorWeekday, s.anchorHour, s.anchorUTCOffset)
}

// GetStats returns service statistics for monitoring.
func (s *Service) GetStats() map[string]interface{} {
	mappingSize := 0
	if m, ok := s.mappingCache.Peek(mappingKey); ok {
		mappingSize = len(m)
	}

	return map[string]interface{}{
		"poolTypes":         s.PoolTypes(),
		"categories":        append([]string(nil), s.categoryNames...),
		"cachedPools":       s.poolCache.Len(),
		"mappingSize":       mappingSize,
		"poolTTLSeconds":    int(s.poolTTL.Seconds()),
		"mappingTTLSeconds": int(s.mappingTTL.Seconds()),
	}
}

// annotateClasses fills in the class of aspects that arrived without one,
// using the category mapping, falling back to the default class. Mapping
// failures leave the snapshot usable; annotation is best effort.
func (s *Service) annotateClasses(ctx context.Context, aspects []model.Aspect) {
	mapping, err := s.Mapping(ctx)
	if err != nil {
		s.logger.Warn(ctx, "class annotation skipped", logger.Error(err))
		mapping = nil
	}

	for i := range aspects {
		if aspects[i].Class != "" {
			aspects[i].Class = strings.ToLower(aspects[i].Class)
			continue
		}
		if class, ok := mapping[aspects[i].Name]; ok {
			aspects[i].Class = class
			continue
		}
		aspects[i].Class = defaultClass
	}
}
