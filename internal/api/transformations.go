package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/url"
)

func (c *Client) ListTransformations(ctx context.Context) (TransformationList, error) {
	raw, err := c.do(ctx, http.MethodGet, "/transformations", nil, nil)
	if err != nil {
		return TransformationList{}, err
	}
	items, err := parseTransformations(raw)
	if err != nil {
		return TransformationList{}, err
	}
	return TransformationList{Items: items, Raw: raw}, nil
}

// TestTransformation runs code against a beat or hash without saving it.
func (c *Client) TestTransformation(ctx context.Context, req TransformationTestRequest) (json.RawMessage, error) {
	if req.Beat == "" && req.Hash == "" {
		return nil, ErrMissingTarget
	}
	query := url.Values{}
	query.Set("network", req.Network)
	if req.Beat != "" {
		query.Set("beat", req.Beat)
	}
	if req.Hash != "" {
		query.Set("hash", req.Hash)
	}
	body := map[string]string{"code": req.Code}
	return c.do(ctx, http.MethodPost, "/transformations/test", query, body)
}

func (c *Client) CreateTransformation(ctx context.Context, name, code string) (json.RawMessage, error) {
	body := map[string]string{"code": code}
	return c.do(ctx, http.MethodPost, "/transformations/"+url.PathEscape(name), nil, body)
}

func parseTransformations(raw json.RawMessage) ([]Transformation, error) {
	coll, err := parseCollection(raw, transformationKeys)
	if err != nil {
		return nil, err
	}
	items := make([]Transformation, 0, len(coll.Entries))
	for i, entry := range coll.Entries {
		obj, name, err := entryObject("transformation", i, entry)
		if err != nil {
			return nil, err
		}
		items = append(items, Transformation{
			Name:      name,
			Status:    firstString(obj, "status", "state"),
			Version:   firstString(obj, "version"),
			Language:  firstString(obj, "language", "lang"),
			Checksum:  firstString(obj, "checksum"),
			CreatedAt: firstString(obj, "createdAt", "created_at"),
			UpdatedAt: firstString(obj, "updatedAt", "updated_at"),
			Raw:       obj,
		})
	}
	return items, nil
}
