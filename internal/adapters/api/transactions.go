package api

import (
	"context"
	"net/http"
	"net/url"
	"strconv"

	"github.com/SasmithaSL/Diamond-Store-Admin/internal/core/domain"
	"github.com/SasmithaSL/Diamond-Store-Admin/internal/core/search"
)

// Transactions fetches the newest transactions matching filter, newest first
func (c *Client) Transactions(ctx context.Context, token string, filter search.Filter, limit int) ([]domain.Transaction, error) {
	q := url.Values{}
	filter.Apply(q)
	if limit > 0 {
		q.Set("limit", strconv.Itoa(limit))
	}

	raw, err := c.do(ctx, http.MethodGet, "/users/transactions/all", token, q, nil)
	if err != nil {
		return nil, err
	}
	return decodeList[domain.Transaction](raw, "transactions")
}
