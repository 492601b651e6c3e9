package upstream

import (
	"context"
	"net/url"

	"github.com/okian/lootpool/internal/domain/model"
)

const sourcePool = "pool"

// poolPayload mirrors the loose upstream shape. Fields beyond the ones we
// read are ignored.
type poolPayload struct {
	Aspects []struct {
		Name          string `json:"name"`
		Rarity        string `json:"rarity"`
		RequiredClass string `json:"requiredClass"`
	} `json:"aspects"`
}

// PoolClient fetches the current reward pool for a raid from the pool source.
type PoolClient struct {
	client
}

// NewPoolClient constructs a PoolClient rooted at baseURL.
func NewPoolClient(baseURL string, opts ...Option) *PoolClient {
	return &PoolClient{client: newClient(baseURL, opts...)}
}

// Pool fetches the current pool for poolType. A payload with no aspects list
// yields an empty snapshot, not an error; nameless entries are dropped.
// FetchedAt is left zero; the caller stamps it with its own clock.
func (p *PoolClient) Pool(ctx context.Context, poolType string) (model.PoolSnapshot, error) {
	var payload poolPayload

	q := url.Values{"raidType": []string{poolType}}
	if err := p.getJSON(ctx, sourcePool, "/raid/loot-pool", q, &payload); err != nil {
		return model.PoolSnapshot{}, err
	}

	aspects := make([]model.Aspect, 0, len(payload.Aspects))
	for _, a := range payload.Aspects {
		if a.Name == "" {
			continue
		}
		aspects = append(aspects, model.Aspect{
			Name:   a.Name,
			Rarity: model.Rarity(a.Rarity),
			Class:  a.RequiredClass,
		})
	}

	return model.PoolSnapshot{
		PoolType: poolType,
		Aspects:  aspects,
	}, nil
}
