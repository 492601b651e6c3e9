package upstream

import (
	"context"

	"github.com/okian/lootpool/internal/domain/model"
)

const sourceGambit = "gambit"

// gambitPayload mirrors the loose upstream shape.
type gambitPayload struct {
	Gambits []struct {
		Name        string `json:"name"`
		Description string `json:"description"`
	} `json:"gambits"`
}

// GambitClient fetches the current daily gambits.
type GambitClient struct {
	client
}

// NewGambitClient constructs a GambitClient rooted at baseURL.
func NewGambitClient(baseURL string, opts ...Option) *GambitClient {
	return &GambitClient{client: newClient(baseURL, opts...)}
}

// Gambits fetches today's gambits. A payload with no gambits list yields an
// empty slice, not an error; nameless entries are dropped.
func (g *GambitClient) Gambits(ctx context.Context) ([]model.Gambit, error) {
	var payload gambitPayload

	if err := g.getJSON(ctx, sourceGambit, "/gambit", nil, &payload); err != nil {
		return nil, err
	}

	gambits := make([]model.Gambit, 0, len(payload.Gambits))
	for _, entry := range payload.Gambits {
		if entry.Name == "" {
			continue
		}
		gambits = append(gambits, model.Gambit{
			Name:        entry.Name,
			Description: entry.Description,
		})
	}

	return gambits, nil
}
