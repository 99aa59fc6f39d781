package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/url"
)

func (c *Client) ListFilters(ctx context.Context) (FilterList, error) {
	raw, err := c.do(ctx, http.MethodGet, "/filters", nil, nil)
	if err != nil {
		return FilterList{}, err
	}
	items, err := parseFilters(raw)
	if err != nil {
		return FilterList{}, err
	}
	return FilterList{Items: items, Raw: raw}, nil
}

// CreateFilter creates the filter or adds values to an existing one.
func (c *Client) CreateFilter(ctx context.Context, req FilterMutationRequest) (json.RawMessage, error) {
	return c.do(ctx, http.MethodPost, "/filters/"+url.PathEscape(req.Name), nil, req)
}

func (c *Client) RemoveFilterValues(ctx context.Context, req FilterMutationRequest) (json.RawMessage, error) {
	return c.do(ctx, http.MethodDelete, "/filters/"+url.PathEscape(req.Name), nil, req)
}

func parseFilters(raw json.RawMessage) ([]Filter, error) {
	coll, err := parseCollection(raw, filterKeys)
	if err != nil {
		return nil, err
	}
	items := make([]Filter, 0, len(coll.Entries))
	for i, entry := range coll.Entries {
		obj, name, err := entryObject("filter", i, entry)
		if err != nil {
			return nil, err
		}
		items = append(items, Filter{
			Name:   name,
			Values: orEmpty(asStringArray(obj["values"])),
			Raw:    obj,
		})
	}
	return items, nil
}
