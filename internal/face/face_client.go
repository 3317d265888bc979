// Package face talks to the external face recognition service.
package face

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	faceerrors "go-hrms/internal/face/errors"

	"go.uber.org/zap"
)

const DefaultTimeout = 10 * time.Second

// Match is the best candidate returned by Recognize. EmployeeID is empty
// when nothing scored above the service's own threshold.
type Match struct {
	EmployeeID string
	Confidence float64
}

//go:generate mockgen -source=face_client.go -destination=mock/face_client_mock.go -package=mock
type Client interface {
	Enroll(ctx context.Context, employeeID string, images []string) error
	Recognize(ctx context.Context, image string) (Match, error)
}

type httpClient struct {
	baseURL string
	http    *http.Client
	logger  *zap.Logger
}

func NewClient(baseURL string, timeout time.Duration, logger ...*zap.Logger) Client {
	l := zap.L().Named("face.client")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("face.client")
	}
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &httpClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: timeout},
		logger:  l,
	}
}

type enrollRequest struct {
	Image  string   `json:"image"`
	Images []string `json:"images"`
}

type recognizeRequest struct {
	Image string `json:"image"`
}

type recognizeResponse struct {
	EmployeeID *string `json:"employeeId"`
	Confidence float64 `json:"confidence"`
}

func (c *httpClient) Enroll(ctx context.Context, employeeID string, images []string) error {
	if len(images) != 1 && len(images) != 3 {
		return faceerrors.ErrInvalidImageCount
	}
	for _, img := range images {
		if strings.TrimSpace(img) == "" {
			return faceerrors.ErrImageRequired
		}
	}

	path := "/enroll/" + url.PathEscape(employeeID)
	if err := c.post(ctx, path, enrollRequest{Image: images[0], Images: images}, nil); err != nil {
		return err
	}

	c.logger.Info("face enrolled", zap.String("employee_id", employeeID), zap.Int("images", len(images)))
	return nil
}

func (c *httpClient) Recognize(ctx context.Context, image string) (Match, error) {
	if strings.TrimSpace(image) == "" {
		return Match{}, faceerrors.ErrImageRequired
	}

	var out recognizeResponse
	if err := c.post(ctx, "/recognize", recognizeRequest{Image: image}, &out); err != nil {
		return Match{}, err
	}

	m := Match{Confidence: out.Confidence}
	if out.EmployeeID != nil {
		m.EmployeeID = *out.EmployeeID
	}
	return m, nil
}

func (c *httpClient) post(ctx context.Context, path string, body, out any) error {
	payload, err := json.Marshal(body)
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(payload))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		c.logger.Error("face service unreachable", zap.String("path", path), zap.Error(err))
		return faceerrors.ErrServiceUnavailable.WithCause(err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return faceerrors.ErrServiceUnavailable.WithCause(err)
	}

	switch {
	case resp.StatusCode >= http.StatusInternalServerError:
		c.logger.Error("face service failed", zap.String("path", path), zap.Int("status", resp.StatusCode))
		return faceerrors.ErrServiceUnavailable
	case resp.StatusCode >= http.StatusBadRequest:
		c.logger.Warn("face service rejected request",
			zap.String("path", path),
			zap.Int("status", resp.StatusCode),
			zap.String("detail", detail(raw)),
		)
		return faceerrors.ErrFaceRejected
	}

	if out == nil {
		return nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("decode face service response: %w", err)
	}
	return nil
}

func detail(raw []byte) string {
	var body struct {
		Detail string `json:"detail"`
	}
	if json.Unmarshal(raw, &body) == nil && body.Detail != "" {
		return body.Detail
	}
	return string(raw)
}
