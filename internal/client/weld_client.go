package client

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"go.uber.org/zap"

	"github.com/zaqqye/weld_backend_v1/internal/models"
)

// APIError is a non-2xx response from the weld API.
type APIError struct {
	Status   int      `json:"-"`
	Message  string   `json:"error"`
	Messages []string `json:"messages"`
}

func (e *APIError) Error() string {
	if len(e.Messages) > 0 {
		return fmt.Sprintf("weld api %d: %s", e.Status, strings.Join(e.Messages, "; "))
	}
	if e.Message != "" {
		return fmt.Sprintf("weld api %d: %s", e.Status, e.Message)
	}
	return fmt.Sprintf("weld api %d", e.Status)
}

// Details returns the per-field messages, falling back to the summary.
func (e *APIError) Details() []string {
	if len(e.Messages) > 0 {
		return e.Messages
	}
	if e.Message != "" {
		return []string{e.Message}
	}
	return []string{http.StatusText(e.Status)}
}

// IsNotFound reports whether err is a 404 from the API.
func IsNotFound(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.Status == http.StatusNotFound
}

type ListQuery struct {
	Search     string
	ObjectName string
	Page       int
	Limit      int
}

func (q ListQuery) params() map[string]string {
	p := map[string]string{}
	if q.Search != "" {
		p["search"] = q.Search
	}
	if q.ObjectName != "" {
		p["objectName"] = q.ObjectName
	}
	if q.Limit > 0 {
		p["limit"] = strconv.Itoa(q.Limit)
		if q.Page > 0 {
			p["page"] = strconv.Itoa(q.Page)
		}
	}
	return p
}

// WeldClient calls the /api/welds endpoints. Requests are not retried.
type WeldClient struct {
	httpClient *resty.Client
	logger     *zap.Logger
}

// NewWeldClient builds a client for baseURL, e.g. http://localhost:3333/api.
func NewWeldClient(baseURL string, logger *zap.Logger) *WeldClient {
	if logger == nil {
		logger = zap.NewNop()
	}
	httpClient := resty.New().
		SetBaseURL(strings.TrimRight(baseURL, "/")).
		SetTimeout(30*time.Second).
		SetHeader("Accept", "application/json")
	return &WeldClient{httpClient: httpClient, logger: logger}
}

func (c *WeldClient) List(ctx context.Context, q ListQuery) ([]models.Weld, error) {
	var welds []models.Weld
	resp, err := c.httpClient.R().
		SetContext(ctx).
		SetQueryParams(q.params()).
		SetResult(&welds).
		SetError(&APIError{}).
		Get("/welds")
	if err := c.check("list welds", resp, err); err != nil {
		return nil, err
	}
	return welds, nil
}

func (c *WeldClient) Get(ctx context.Context, id string) (*models.Weld, error) {
	var w models.Weld
	resp, err := c.httpClient.R().
		SetContext(ctx).
		SetPathParam("id", id).
		SetResult(&w).
		SetError(&APIError{}).
		Get("/welds/{id}")
	if err := c.check("get weld", resp, err); err != nil {
		return nil, err
	}
	return &w, nil
}

func (c *WeldClient) Create(ctx context.Context, in models.CreateWeldDTO) (*models.Weld, error) {
	var w models.Weld
	resp, err := c.httpClient.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(in).
		SetResult(&w).
		SetError(&APIError{}).
		Post("/welds")
	if err := c.check("create weld", resp, err); err != nil {
		return nil, err
	}
	return &w, nil
}

func (c *WeldClient) Update(ctx context.Context, id string, in models.UpdateWeldDTO) (*models.Weld, error) {
	var w models.Weld
	resp, err := c.httpClient.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetPathParam("id", id).
		SetBody(in).
		SetResult(&w).
		SetError(&APIError{}).
		Patch("/welds/{id}")
	if err := c.check("update weld", resp, err); err != nil {
		return nil, err
	}
	return &w, nil
}

func (c *WeldClient) Delete(ctx context.Context, id string) error {
	resp, err := c.httpClient.R().
		SetContext(ctx).
		SetPathParam("id", id).
		SetError(&APIError{}).
		Delete("/welds/{id}")
	return c.check("delete weld", resp, err)
}

// Export downloads the filtered registry as an xlsx workbook.
func (c *WeldClient) Export(ctx context.Context, q ListQuery) ([]byte, error) {
	q.Page, q.Limit = 0, 0
	resp, err := c.httpClient.R().
		SetContext(ctx).
		SetQueryParams(q.params()).
		SetHeader("Accept", "application/octet-stream").
		SetError(&APIError{}).
		Get("/welds/export")
	if err := c.check("export welds", resp, err); err != nil {
		return nil, err
	}
	return resp.Body(), nil
}

func (c *WeldClient) check(op string, resp *resty.Response, err error) error {
	if err != nil {
		c.logger.Warn("weld api call failed", zap.String("op", op), zap.Error(err))
		return fmt.Errorf("%s: %w", op, err)
	}
	if !resp.IsError() {
		return nil
	}
	apiErr, ok := resp.Error().(*APIError)
	if !ok || apiErr == nil {
		apiErr = &APIError{}
	}
	apiErr.Status = resp.StatusCode()
	c.logger.Debug("weld api returned error",
		zap.String("op", op),
		zap.Int("status", apiErr.Status),
		zap.Strings("messages", apiErr.Details()),
	)
	return apiErr
}
