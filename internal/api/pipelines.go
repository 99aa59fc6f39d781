package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/url"
)

func (c *Client) ListPipelines(ctx context.Context) (PipelineList, error) {
	raw, err := c.do(ctx, http.MethodGet, "/pipelines", nil, nil)
	if err != nil {
		return PipelineList{}, err
	}
	items, err := parsePipelines(raw)
	if err != nil {
		return PipelineList{}, err
	}
	return PipelineList{Items: items, Raw: raw}, nil
}

func (c *Client) CreatePipeline(ctx context.Context, req PipelineCreateRequest) (json.RawMessage, error) {
	return c.do(ctx, http.MethodPost, "/pipelines", nil, req)
}

func (c *Client) DeletePipeline(ctx context.Context, name string) (json.RawMessage, error) {
	return c.do(ctx, http.MethodDelete, "/pipelines/"+url.PathEscape(name), nil, nil)
}

// TestPipeline runs the pipeline end to end against one block (beat) or one
// hash on the given network.
func (c *Client) TestPipeline(ctx context.Context, name string, req PipelineTestRequest) (json.RawMessage, error) {
	if req.Beat == "" && req.Hash == "" {
		return nil, ErrMissingTarget
	}
	target := req.Beat
	if target == "" {
		target = req.Hash
	}
	path := "/pipelines/" + url.PathEscape(name) +
		"/test/" + url.PathEscape(req.Network) +
		"/" + url.PathEscape(target)
	return c.do(ctx, http.MethodPost, path, nil, nil)
}

func (c *Client) BackfillPipeline(ctx context.Context, name string, req PipelineBackfillRequest) (json.RawMessage, error) {
	return c.do(ctx, http.MethodPost, "/pipelines/"+url.PathEscape(name)+"/backfill", nil, req)
}

func parsePipelines(raw json.RawMessage) ([]Pipeline, error) {
	coll, err := parseCollection(raw, pipelineKeys)
	if err != nil {
		return nil, err
	}
	items := make([]Pipeline, 0, len(coll.Entries))
	for i, entry := range coll.Entries {
		obj, name, err := entryObject("pipeline", i, entry)
		if err != nil {
			return nil, err
		}
		items = append(items, Pipeline{
			ID:             firstString(obj, "id"),
			Name:           name,
			Status:         firstString(obj, "status", "state", "pipelineStatus"),
			Filter:         firstString(obj, "filter", "filterName"),
			Transformation: firstString(obj, "transformation", "transformationName"),
			Networks:       orEmpty(asStringArray(obj["networks"])),
			CreatedAt:      firstString(obj, "createdAt", "created_at"),
			UpdatedAt:      firstString(obj, "updatedAt", "updated_at"),
			Summary:        firstString(obj, "summary", "description"),
			Paused:         firstBool(obj, "paused", "isPaused"),
			Raw:            obj,
		})
	}
	return items, nil
}

func orEmpty(values []string) []string {
	if values == nil {
		return []string{}
	}
	return values
}
