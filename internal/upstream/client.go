// Package upstream is the typed REST client for the driving-school backend.
package upstream

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

	"go.uber.org/zap"

	"github.com/noah-isme/drivedesk-gateway/internal/models"
	"github.com/noah-isme/drivedesk-gateway/pkg/middleware/requestid"
)

const maxBodyBytes = 4 << 20

// Observer receives one callback per upstream call.
type Observer interface {
	ObserveUpstreamCall(endpoint string, status int, duration time.Duration, err error)
}

// Config configures the client.
type Config struct {
	BaseURL    string
	Timeout    time.Duration
	HTTPClient *http.Client
	Observer   Observer
	Logger     *zap.Logger
}

// Client calls the backend under `<BaseURL>/api`. It never retries.
type Client struct {
	apiBase  string
	http     *http.Client
	observer Observer
	logger   *zap.Logger
}

// New constructs a Client with sane defaults.
func New(cfg Config) *Client {
	httpClient := cfg.HTTPClient
	if httpClient == nil {
		timeout := cfg.Timeout
		if timeout <= 0 {
			timeout = 15 * time.Second
		}
		httpClient = &http.Client{Timeout: timeout}
	}
	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Client{
		apiBase:  strings.TrimRight(cfg.BaseURL, "/") + "/api",
		http:     httpClient,
		observer: cfg.Observer,
		logger:   logger,
	}
}

// MySessions returns the sessions of the acting teacher.
func (c *Client) MySessions(ctx context.Context, token string) ([]models.Session, error) {
	var payload struct {
		Sessions []models.Session `json:"sessions"`
	}
	if err := c.do(ctx, token, http.MethodGet, "/sessions/my", "GET /sessions/my", nil, &payload); err != nil {
		return nil, err
	}
	return nonNil(payload.Sessions), nil
}

// SchoolSessions returns every session of the acting school.
func (c *Client) SchoolSessions(ctx context.Context, token string) ([]models.Session, error) {
	var payload struct {
		Sessions []models.Session `json:"sessions"`
	}
	if err := c.do(ctx, token, http.MethodGet, "/sessions/school", "GET /sessions/school", nil, &payload); err != nil {
		return nil, err
	}
	return nonNil(payload.Sessions), nil
}

// Teachers returns the teachers of the acting school.
func (c *Client) Teachers(ctx context.Context, token string) ([]models.Teacher, error) {
	var payload struct {
		Teachers []models.Teacher `json:"teachers"`
	}
	if err := c.do(ctx, token, http.MethodGet, "/teachers/my", "GET /teachers/my", nil, &payload); err != nil {
		return nil, err
	}
	return nonNil(payload.Teachers), nil
}

// Enrollments returns the enrollments of the acting school.
func (c *Client) Enrollments(ctx context.Context, token string) ([]models.Enrollment, error) {
	var payload struct {
		Enrollments []models.Enrollment `json:"enrollments"`
	}
	if err := c.do(ctx, token, http.MethodGet, "/manager/enrollments", "GET /manager/enrollments", nil, &payload); err != nil {
		return nil, err
	}
	return nonNil(payload.Enrollments), nil
}

// School reads the dashboard summary and returns its user_school, or nil when
// the manager has no school yet.
func (c *Client) School(ctx context.Context, token string) (*models.SchoolInfo, error) {
	var payload struct {
		UserSchool *models.SchoolInfo `json:"user_school"`
	}
	if err := c.do(ctx, token, http.MethodGet, "/dashboard", "GET /dashboard", nil, &payload); err != nil {
		return nil, err
	}
	return payload.UserSchool, nil
}

// AddTeacher creates a teacher under the acting school.
func (c *Client) AddTeacher(ctx context.Context, token string, form models.TeacherForm) (*models.Teacher, error) {
	var teacher models.Teacher
	if err := c.do(ctx, token, http.MethodPost, "/teachers/add", "POST /teachers/add", form, &teacher); err != nil {
		return nil, err
	}
	return &teacher, nil
}

// RemoveTeacher deletes a teacher.
func (c *Client) RemoveTeacher(ctx context.Context, token string, teacherID models.ID) error {
	path := "/teachers/" + url.PathEscape(teacherID.String())
	return c.do(ctx, token, http.MethodDelete, path, "DELETE /teachers/{id}", nil, nil)
}

// UpdateSchool replaces the editable fields of a school.
func (c *Client) UpdateSchool(ctx context.Context, token string, schoolID models.ID, form models.SchoolForm) (*models.SchoolInfo, error) {
	path := "/driving-schools/" + url.PathEscape(schoolID.String())
	var school models.SchoolInfo
	if err := c.do(ctx, token, http.MethodPut, path, "PUT /driving-schools/{id}", form, &school); err != nil {
		return nil, err
	}
	return &school, nil
}

// ScheduleSession books a session.
func (c *Client) ScheduleSession(ctx context.Context, token string, form models.SessionForm) (*models.Session, error) {
	var session models.Session
	if err := c.do(ctx, token, http.MethodPost, "/sessions/schedule", "POST /sessions/schedule", form, &session); err != nil {
		return nil, err
	}
	return &session, nil
}

func (c *Client) do(ctx context.Context, token, method, path, endpoint string, body, dest interface{}) (err error) {
	status := 0
	start := time.Now()
	defer func() {
		if c.observer != nil {
			c.observer.ObserveUpstreamCall(endpoint, status, time.Since(start), err)
		}
	}()

	var reader io.Reader
	if body != nil {
		encoded, marshalErr := json.Marshal(body)
		if marshalErr != nil {
			return &Error{Endpoint: endpoint, Err: fmt.Errorf("encode request: %w", marshalErr)}
		}
		reader = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.apiBase+path, reader)
	if err != nil {
		return &Error{Endpoint: endpoint, Err: err}
	}
	req.Header.Set("Accept", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if reqID := requestid.FromContext(ctx); reqID != "" {
		req.Header.Set(requestid.Header, reqID)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return &Error{Endpoint: endpoint, Err: err}
	}
	defer resp.Body.Close()
	status = resp.StatusCode

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return &Error{Endpoint: endpoint, StatusCode: status, Err: fmt.Errorf("read body: %w", err)}
	}

	if status < 200 || status >= 300 {
		detail := parseDetail(raw)
		c.logger.Debug("upstream call rejected",
			zap.String("endpoint", endpoint),
			zap.Int("status", status),
			zap.String("detail", detail),
		)
		return &Error{Endpoint: endpoint, StatusCode: status, Detail: detail}
	}

	if dest == nil || len(bytes.TrimSpace(raw)) == 0 {
		return nil
	}
	if err := json.Unmarshal(raw, dest); err != nil {
		return &Error{Endpoint: endpoint, StatusCode: status, Err: fmt.Errorf("decode response: %w", err)}
	}
	return nil
}

func nonNil[T any](items []T) []T {
	if items == nil {
		return []T{}
	}
	return items
}
