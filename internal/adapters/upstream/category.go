package upstream

import (
	"context"
	"encoding/json"
	"fmt"
)

const sourceCategory = "category"

// CategoryClient fetches the aspect roster for one class category. The
// upstream keys its payload by aspect name; only the names matter for the
// mapping, the per-aspect details are discarded here.
type CategoryClient struct {
	client
}

// NewCategoryClient constructs a CategoryClient rooted at baseURL.
func NewCategoryClient(baseURL string, opts ...Option) *CategoryClient {
	return &CategoryClient{client: newClient(baseURL, opts...)}
}

// Items returns the names of every aspect belonging to category.
func (c *CategoryClient) Items(ctx context.Context, category string) ([]string, error) {
	var payload map[string]json.RawMessage

	path := fmt.Sprintf("/v3/aspects/%s", category)
	if err := c.getJSON(ctx, sourceCategory, path, nil, &payload); err != nil {
		return nil, err
	}

	names := make([]string, 0, len(payload))
	for name := range payload {
		if name == "" {
			continue
		}
		names = append(names, name)
	}

	return names, nil
}
