package exapi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
)

// FetchAll pages through endpoint until the listing is exhausted.
//
// Pagination ends normally on an empty page, a short page, or once the
// accumulated rows reach the server-reported count. A transport error, a
// non-JSON body or a non-success envelope also ends it; the rows gathered
// so far are returned together with the error.
func FetchAll[T any](ctx context.Context, c *Client, endpoint string, params map[string]string) ([]T, error) {
	all := []T{}
	for pageNo := 1; ; pageNo++ {
		body, err := c.page(ctx, endpoint, params, pageNo)
		if err != nil {
			return all, err
		}

		trimmed := bytes.TrimSpace(body)
		if len(trimmed) == 0 || trimmed[0] != '{' {
			return all, fmt.Errorf("%s page %d: %w", endpoint, pageNo, ErrMalformedResponse)
		}

		var env Envelope[T]
		if err := json.Unmarshal(trimmed, &env); err != nil {
			return all, fmt.Errorf("%s page %d: %w: %w", endpoint, pageNo, ErrMalformedResponse, err)
		}
		if !env.OK() {
			return all, fmt.Errorf("%s page %d: %w: %s %s", endpoint, pageNo, ErrUpstreamStatus, env.Code, env.Message)
		}
		if len(env.List) == 0 {
			return all, nil
		}

		all = append(all, env.List...)
		c.logger.Debug("fetched page",
			slog.String("endpoint", endpoint),
			slog.Int("page", pageNo),
			slog.Int("rows", len(env.List)),
			slog.Int("total", len(all)),
		)

		if total := env.Count.Int(); total > 0 && len(all) >= total {
			return all, nil
		}
		if len(env.List) < c.pageSize {
			return all, nil
		}
		if err := c.sleep(ctx, c.pageDelay); err != nil {
			return all, fmt.Errorf("%s page %d: %w", endpoint, pageNo, err)
		}
	}
}
