package upstream

import (
	"context"
	"net/url"
	"strings"

	"github.com/okian/lootpool/internal/domain/model"
)

const sourceProgress = "progress"

// rosterEntry is one tracked player in the progress source's roster.
type rosterEntry struct {
	PlayerName string `json:"playerName"`
	PlayerUUID string `json:"playerUuid"`
}

// progressPayload is the per-player collection state.
type progressPayload struct {
	Aspects []struct {
		Name   string `json:"name"`
		Amount int    `json:"amount"`
	} `json:"aspects"`
}

// ProgressClient fetches per-player aspect collection counts. Players are
// addressed by name and resolved to a UUID through the tracked roster.
type ProgressClient struct {
	client
}

// NewProgressClient constructs a ProgressClient rooted at baseURL.
func NewProgressClient(baseURL string, opts ...Option) *ProgressClient {
	return &ProgressClient{client: newClient(baseURL, opts...)}
}

// Progress resolves player against the roster case-insensitively and fetches
// their collection counts. A player missing from the roster yields
// (nil, false, nil): absence, not failure.
func (p *ProgressClient) Progress(ctx context.Context, player string) (model.Progress, bool, error) {
	var roster []rosterEntry
	if err := p.getJSON(ctx, sourceProgress, "/aspects/list", nil, &roster); err != nil {
		return nil, false, err
	}

	var uuid string
	for _, entry := range roster {
		if strings.EqualFold(entry.PlayerName, player) {
			uuid = entry.PlayerUUID
			break
		}
	}
	if uuid == "" {
		return nil, false, nil
	}

	var payload progressPayload
	q := url.Values{"playerUuid": []string{uuid}}
	if err := p.getJSON(ctx, sourceProgress, "/aspects", q, &payload); err != nil {
		return nil, false, err
	}

	progress := make(model.Progress, len(payload.Aspects))
	for _, a := range payload.Aspects {
		if a.Name == "" {
			continue
		}
		progress[a.Name] = a.Amount
	}

	return progress, true, nil
}
