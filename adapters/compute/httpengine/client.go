// Package httpengine implements the compute.Engine contract over the
// service's JSON HTTP API.
package httpengine

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/Jade2451/LULC-ISA/adapters/compute"
	"github.com/Jade2451/LULC-ISA/core/types"
	"github.com/Jade2451/LULC-ISA/internal/errors"
)

// Client talks to the compute service.
type Client struct {
	baseURL string
	apiKey  string
	http    *http.Client
}

// Option configures a Client.
type Option func(*Client)

// WithAPIKey sets the bearer token sent with every request.
func WithAPIKey(key string) Option {
	return func(c *Client) { c.apiKey = key }
}

// WithTimeout sets the per-request timeout.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) { c.http.Timeout = d }
}

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(h *http.Client) Option {
	return func(c *Client) { c.http = h }
}

// New creates a client for the service at baseURL.
func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL: baseURL,
		http:    &http.Client{Timeout: 2 * time.Minute},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

var _ compute.Engine = (*Client)(nil)

type filterRequest struct {
	AOI             types.AOI       `json:"aoi"`
	Dates           types.DateRange `json:"dates"`
	MaxCloudPercent float64         `json:"max_cloud_percent"`
}

// FilterScenes implements compute.Engine.
func (c *Client) FilterScenes(ctx context.Context, aoi types.AOI, dates types.DateRange, maxCloudPercent float64) (*compute.SceneSet, error) {
	var out compute.SceneSet
	req := filterRequest{AOI: aoi, Dates: dates, MaxCloudPercent: maxCloudPercent}
	if err := c.post(ctx, "/v1/scenes/filter", req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// FetchQA implements compute.Engine.
func (c *Client) FetchQA(ctx context.Context, scenes *compute.SceneSet, cursor string) (*compute.QAPage, error) {
	var out compute.QAPage
	path := fmt.Sprintf("/v1/scenes/%s/qa", url.PathEscape(scenes.ID))
	if cursor != "" {
		path += "?cursor=" + url.QueryEscape(cursor)
	}
	if err := c.get(ctx, path, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

type compositeRequest struct {
	PixelMask []bool `json:"pixel_mask"`
}

// Composite implements compute.Engine.
func (c *Client) Composite(ctx context.Context, scenes *compute.SceneSet, pixelMask []bool) (*compute.CompositeRef, error) {
	var out compute.CompositeRef
	path := fmt.Sprintf("/v1/scenes/%s/composite", url.PathEscape(scenes.ID))
	if err := c.post(ctx, path, compositeRequest{PixelMask: pixelMask}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

type trainRequest struct {
	Classes []types.TrainingClass `json:"classes"`
}

// Train implements compute.Engine.
func (c *Client) Train(ctx context.Context, composite *compute.CompositeRef, classes []types.TrainingClass) (*compute.ModelRef, error) {
	var out compute.ModelRef
	path := fmt.Sprintf("/v1/composites/%s/train", url.PathEscape(composite.ID))
	if err := c.post(ctx, path, trainRequest{Classes: classes}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

type classifyRequest struct {
	ModelID string `json:"model_id"`
}

// Classify implements compute.Engine.
func (c *Client) Classify(ctx context.Context, composite *compute.CompositeRef, model *compute.ModelRef) (*compute.Classification, error) {
	var out compute.Classification
	path := fmt.Sprintf("/v1/composites/%s/classify", url.PathEscape(composite.ID))
	if err := c.post(ctx, path, classifyRequest{ModelID: model.ID}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// FetchClassified implements compute.Engine.
func (c *Client) FetchClassified(ctx context.Context, cl *compute.Classification, cursor string) (*compute.ClassifiedPage, error) {
	var out compute.ClassifiedPage
	path := fmt.Sprintf("/v1/classifications/%s/pixels", url.PathEscape(cl.ID))
	if cursor != "" {
		path += "?cursor=" + url.QueryEscape(cursor)
	}
	if err := c.get(ctx, path, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

type exportRequest struct {
	ScaleMeters int     `json:"scale_meters"`
	MaxPixels   float64 `json:"max_pixels"`
}

type exportResponse struct {
	TaskID string `json:"task_id"`
}

// ExportClassification implements compute.Engine.
func (c *Client) ExportClassification(ctx context.Context, cl *compute.Classification, scaleMeters int, maxPixels float64) (string, error) {
	var out exportResponse
	path := fmt.Sprintf("/v1/classifications/%s/export", url.PathEscape(cl.ID))
	req := exportRequest{ScaleMeters: scaleMeters, MaxPixels: maxPixels}
	if err := c.post(ctx, path, req, &out); err != nil {
		return "", err
	}
	return out.TaskID, nil
}

// Healthcheck implements compute.Engine.
func (c *Client) Healthcheck(ctx context.Context) error {
	return c.get(ctx, "/v1/health", &struct{}{})
}

func (c *Client) post(ctx context.Context, path string, body, out interface{}) error {
	payload, err := json.Marshal(body)
	if err != nil {
		return errors.Internal("encode request", err)
	}
	return c.do(ctx, http.MethodPost, path, bytes.NewReader(payload), out)
}

func (c *Client) get(ctx context.Context, path string, out interface{}) error {
	return c.do(ctx, http.MethodGet, path, nil, out)
}

func (c *Client) do(ctx context.Context, method, path string, body io.Reader, out interface{}) error {
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return errors.Internal("build request", err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return errors.Compute(method+" "+path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return errors.Newf(errors.TypeCompute, "%s %s: status %d: %s",
			method, path, resp.StatusCode, bytes.TrimSpace(msg))
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return errors.Compute("decode response from "+path, err)
	}
	return nil
}
