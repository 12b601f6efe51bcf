package apiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strconv"
)

// Compatibility adapter for upstream body shapes.
//
// Single resources arrive either bare (T) or wrapped ({"data": T}).
// Lists arrive bare ([]T), wrapped ({"data": []T}), paginated
// ({"data": []T, "last_page": n, ...}) or paginated inside a wrapper
// ({"data": {"data": []T, "last_page": n}}). Every call site goes through
// Decode or DecodeList; nothing else inspects envelopes.

// Page is a normalized list response.
type Page[T any] struct {
	Items       []T
	CurrentPage int
	LastPage    int
	PerPage     int
	Total       int
}

type envelope struct {
	Data        json.RawMessage `json:"data"`
	CurrentPage int             `json:"current_page"`
	LastPage    int             `json:"last_page"`
	PerPage     int             `json:"per_page"`
	Total       int             `json:"total"`
	Meta        *struct {
		Page       int `json:"page"`
		Limit      int `json:"limit"`
		TotalItems int `json:"total_items"`
		TotalPages int `json:"total_pages"`
	} `json:"meta"`
}

func firstByte(raw []byte) byte {
	trimmed := bytes.TrimLeft(raw, " \t\r\n")
	if len(trimmed) == 0 {
		return 0
	}
	return trimmed[0]
}

func hasData(env envelope) bool {
	return len(env.Data) > 0 && !bytes.Equal(bytes.TrimSpace(env.Data), []byte("null"))
}

// Decode unwraps a single resource from either {"data": T} or T.
func Decode[T any](raw json.RawMessage) (T, error) {
	var out T
	if firstByte(raw) == '{' {
		var env envelope
		if err := json.Unmarshal(raw, &env); err == nil && hasData(env) && firstByte(env.Data) == '{' {
			raw = env.Data
		}
	}
	if err := json.Unmarshal(raw, &out); err != nil {
		return out, fmt.Errorf("%w: %v", ErrMalformedResponse, err)
	}
	return out, nil
}

// DecodeList unwraps a list from any of the accepted list shapes.
// A bare or unpaginated list is reported as a single page.
func DecodeList[T any](raw json.RawMessage) (Page[T], error) {
	return decodeList[T](raw, 0)
}

func decodeList[T any](raw json.RawMessage, depth int) (Page[T], error) {
	var page Page[T]

	switch firstByte(raw) {
	case '[':
		if err := json.Unmarshal(raw, &page.Items); err != nil {
			return page, fmt.Errorf("%w: %v", ErrMalformedResponse, err)
		}
		page.CurrentPage, page.LastPage, page.Total = 1, 1, len(page.Items)
		return page, nil

	case '{':
		var env envelope
		if err := json.Unmarshal(raw, &env); err != nil {
			return page, fmt.Errorf("%w: %v", ErrMalformedResponse, err)
		}
		if !hasData(env) {
			page.CurrentPage, page.LastPage = 1, 1
			return page, nil
		}
		if firstByte(env.Data) == '{' {
			if depth > 0 {
				return page, fmt.Errorf("%w: nested list envelope too deep", ErrMalformedResponse)
			}
			return decodeList[T](env.Data, depth+1)
		}
		if err := json.Unmarshal(env.Data, &page.Items); err != nil {
			return page, fmt.Errorf("%w: %v", ErrMalformedResponse, err)
		}
		page.CurrentPage = env.CurrentPage
		page.LastPage = env.LastPage
		page.PerPage = env.PerPage
		page.Total = env.Total
		if env.Meta != nil {
			page.CurrentPage = env.Meta.Page
			page.LastPage = env.Meta.TotalPages
			page.PerPage = env.Meta.Limit
			page.Total = env.Meta.TotalItems
		}
		if page.CurrentPage < 1 {
			page.CurrentPage = 1
		}
		if page.LastPage < 1 {
			page.LastPage = 1
		}
		if page.Total == 0 && page.LastPage == 1 {
			page.Total = len(page.Items)
		}
		return page, nil
	}

	return page, fmt.Errorf("%w: expected list body", ErrMalformedResponse)
}

// maxPages bounds GetAll against an upstream that never reports a last page.
const maxPages = 100

// GetAll fetches every page of a list endpoint and returns the items in order.
func GetAll[T any](ctx context.Context, c *Client, path string, query url.Values) ([]T, error) {
	params := url.Values{}
	for k, vs := range query {
		params[k] = append([]string(nil), vs...)
	}

	var items []T
	for pageNum := 1; pageNum <= maxPages; pageNum++ {
		if pageNum > 1 {
			params.Set("page", strconv.Itoa(pageNum))
		}
		raw, err := c.Get(ctx, path, params)
		if err != nil {
			return nil, err
		}
		page, err := DecodeList[T](raw)
		if err != nil {
			return nil, err
		}
		items = append(items, page.Items...)
		if pageNum >= page.LastPage {
			break
		}
	}
	if items == nil {
		items = []T{}
	}
	return items, nil
}
