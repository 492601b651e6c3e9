package service

import (
	"context"

	"github.com/okian/lootpool/pkg/logger"
	"github.com/okian/lootpool/pkg/metrics"
)

// mappingKey is the single cache key under which the merged aspect-to-class
// mapping lives.
const mappingKey = "aspect-classes"

// Mapping returns the aspect-name-to-class mapping, refreshed at most once
// per mapping TTL. Concurrent callers during a refresh share one flight.
//
// Refresh semantics: every configured category is fetched and the results
// merged. If some categories fail the merged partial result is still
// committed, so a single flaky category cannot blank the mapping. If every
// category fails the previous mapping is served stale when one exists;
// otherwise the failure surfaces as ErrAllCategoriesFailed.
func (s *Service) Mapping(ctx context.Context) (map[string]string, error) {
	mapping, err := s.mappingCache.GetOrFetch(ctx, mappingKey, s.refreshMapping)
	if err != nil {
		if stale, ok := s.mappingCache.Peek(mappingKey); ok {
			s.logger.Warn(ctx, "mapping refresh failed, serving stale", logger.Error(err))
			return stale, nil
		}
		return nil, err
	}
	return mapping, nil
}

// refreshMapping fetches every category and merges them into one mapping.
// Later categories win on (unexpected) duplicate names.
func (s *Service) refreshMapping(ctx context.Context) (map[string]string, error) {
	merged := make(map[string]string)
	failed := 0

	for _, category := range s.categoryNames {
		names, err := s.categories.Items(ctx, category)
		if err != nil {
			failed++
			s.logger.Warn(ctx, "category fetch failed",
				logger.String("category", category),
				logger.Error(err),
			)
			continue
		}
		for _, name := range names {
			merged[name] = category
		}
	}

	if failed == len(s.categoryNames) {
		metrics.RecordMappingRefresh(metrics.RefreshFailed)
		return nil, ErrAllCategoriesFailed
	}

	if failed > 0 {
		metrics.RecordMappingRefresh(metrics.RefreshPartial)
	} else {
		metrics.RecordMappingRefresh(metrics.RefreshSuccess)
	}
	metrics.UpdateMappingSize(len(merged))

	s.logger.Debug(ctx, "category mapping refreshed",
		logger.Int("entries", len(merged)),
		logger.Int("failedCategories", failed),
	)

	return merged, nil
}
