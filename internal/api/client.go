// Package api is the HTTP client for the Voice Studio backend.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/Ashish-Jain-dev/voicestudio/internal/domain"
)

const defaultUnaryTimeout = 30 * time.Second

// Client talks to the backend REST API. All methods are safe for
// concurrent use.
type Client struct {
	baseURL      string
	token        string
	client       *http.Client
	unaryTimeout time.Duration
}

func New(baseURL string) *Client {
	return NewWithClient(baseURL, &http.Client{})
}

func NewWithClient(baseURL string, client *http.Client) *Client {
	if client == nil {
		client = &http.Client{}
	}
	return &Client{
		baseURL:      strings.TrimRight(baseURL, "/"),
		client:       client,
		unaryTimeout: defaultUnaryTimeout,
	}
}

func (c *Client) WithUnaryTimeout(timeout time.Duration) *Client {
	if c == nil {
		return nil
	}
	clone := *c
	clone.unaryTimeout = timeout
	return &clone
}

// WithToken returns a copy that sends a bearer token on every request.
func (c *Client) WithToken(token string) *Client {
	if c == nil {
		return nil
	}
	clone := *c
	clone.token = strings.TrimSpace(token)
	return &clone
}

// RequestError is a non-2xx response from the backend. Detail carries
// the server's error message when one was decodable.
type RequestError struct {
	StatusCode int
	Detail     string
}

func (e *RequestError) Error() string {
	if e == nil {
		return ""
	}
	detail := strings.TrimSpace(e.Detail)
	if detail != "" {
		return fmt.Sprintf("http %d: %s", e.StatusCode, detail)
	}
	return fmt.Sprintf("http %d", e.StatusCode)
}

func (e *RequestError) Retryable() bool {
	if e == nil {
		return false
	}
	if e.StatusCode == http.StatusTooManyRequests || e.StatusCode == http.StatusRequestTimeout {
		return true
	}
	return e.StatusCode >= 500
}

// --- Sessions ---

func (c *Client) StartSession(ctx context.Context, agentID string) (StartSessionResponse, error) {
	id := strings.TrimSpace(agentID)
	if id == "" {
		return StartSessionResponse{}, fmt.Errorf("agent id is required")
	}
	body, err := c.request(ctx, http.MethodPost, "/api/sessions/start", nil, StartSessionRequest{AgentID: id})
	if err != nil {
		return StartSessionResponse{}, err
	}
	var resp StartSessionResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return StartSessionResponse{}, fmt.Errorf("decode session start response: %w", err)
	}
	return resp, nil
}

func (c *Client) EndSession(ctx context.Context, sessionID string) error {
	id := strings.TrimSpace(sessionID)
	if id == "" {
		return fmt.Errorf("session id is required")
	}
	_, err := c.request(ctx, http.MethodPost, "/api/sessions/"+url.PathEscape(id)+"/end", nil, nil)
	return err
}

func (c *Client) QuerySession(ctx context.Context, sessionID, question string) (QueryResponse, error) {
	id := strings.TrimSpace(sessionID)
	if id == "" {
		return QueryResponse{}, fmt.Errorf("session id is required")
	}
	body, err := c.request(ctx, http.MethodPost, "/api/sessions/"+url.PathEscape(id)+"/query", nil, QueryRequest{Question: question})
	if err != nil {
		return QueryResponse{}, err
	}
	var resp QueryResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return QueryResponse{}, fmt.Errorf("decode query response: %w", err)
	}
	return resp, nil
}

func (c *Client) RecentSessions(ctx context.Context, limit int) ([]domain.Session, error) {
	query := url.Values{}
	if limit > 0 {
		query.Set("limit", strconv.Itoa(limit))
	}
	body, err := c.request(ctx, http.MethodGet, "/api/sessions/recent", query, nil)
	if err != nil {
		return nil, err
	}
	var resp RecentSessionsResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("decode recent sessions: %w", err)
	}
	return resp.Sessions, nil
}

func (c *Client) GetSession(ctx context.Context, sessionID string) (domain.Session, error) {
	id := strings.TrimSpace(sessionID)
	if id == "" {
		return domain.Session{}, fmt.Errorf("session id is required")
	}
	body, err := c.request(ctx, http.MethodGet, "/api/sessions/"+url.PathEscape(id), nil, nil)
	if err != nil {
		return domain.Session{}, err
	}
	var sess domain.Session
	if err := json.Unmarshal(body, &sess); err != nil {
		return domain.Session{}, fmt.Errorf("decode session: %w", err)
	}
	return sess, nil
}

// --- Agents ---

func (c *Client) ListAgents(ctx context.Context) ([]domain.Agent, error) {
	body, err := c.request(ctx, http.MethodGet, "/api/agents/list", nil, nil)
	if err != nil {
		return nil, err
	}
	var resp AgentListResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("decode agent list: %w", err)
	}
	return resp.Agents, nil
}

func (c *Client) GetAgent(ctx context.Context, agentID string) (domain.Agent, error) {
	id := strings.TrimSpace(agentID)
	if id == "" {
		return domain.Agent{}, fmt.Errorf("agent id is required")
	}
	body, err := c.request(ctx, http.MethodGet, "/api/agents/"+url.PathEscape(id), nil, nil)
	if err != nil {
		return domain.Agent{}, err
	}
	var agent domain.Agent
	if err := json.Unmarshal(body, &agent); err != nil {
		return domain.Agent{}, fmt.Errorf("decode agent: %w", err)
	}
	return agent, nil
}

func (c *Client) CreateAgent(ctx context.Context, req CreateAgentRequest) (domain.Agent, error) {
	if strings.TrimSpace(req.Name) == "" {
		return domain.Agent{}, fmt.Errorf("agent name is required")
	}
	body, err := c.request(ctx, http.MethodPost, "/api/agents/create", nil, req)
	if err != nil {
		return domain.Agent{}, err
	}
	var agent domain.Agent
	if err := json.Unmarshal(body, &agent); err != nil {
		return domain.Agent{}, fmt.Errorf("decode agent: %w", err)
	}
	return agent, nil
}

func (c *Client) UpdateAgent(ctx context.Context, agentID string, req UpdateAgentRequest) (domain.Agent, error) {
	id := strings.TrimSpace(agentID)
	if id == "" {
		return domain.Agent{}, fmt.Errorf("agent id is required")
	}
	body, err := c.request(ctx, http.MethodPut, "/api/agents/"+url.PathEscape(id), nil, req)
	if err != nil {
		return domain.Agent{}, err
	}
	var agent domain.Agent
	if err := json.Unmarshal(body, &agent); err != nil {
		return domain.Agent{}, fmt.Errorf("decode agent: %w", err)
	}
	return agent, nil
}

func (c *Client) DeleteAgent(ctx context.Context, agentID string) error {
	id := strings.TrimSpace(agentID)
	if id == "" {
		return fmt.Errorf("agent id is required")
	}
	_, err := c.request(ctx, http.MethodDelete, "/api/agents/"+url.PathEscape(id), nil, nil)
	return err
}

func (c *Client) ListTemplates(ctx context.Context) ([]domain.Template, error) {
	body, err := c.request(ctx, http.MethodGet, "/api/agents/templates", nil, nil)
	if err != nil {
		return nil, err
	}
	var resp TemplateListResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("decode template list: %w", err)
	}
	return resp.Templates, nil
}

// --- Documents ---

func (c *Client) ListDocuments(ctx context.Context, agentID string) ([]domain.Document, error) {
	id := strings.TrimSpace(agentID)
	if id == "" {
		return nil, fmt.Errorf("agent id is required")
	}
	body, err := c.request(ctx, http.MethodGet, "/api/agents/"+url.PathEscape(id)+"/documents", nil, nil)
	if err != nil {
		return nil, err
	}
	var resp DocumentListResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("decode document list: %w", err)
	}
	return resp.Documents, nil
}

// UploadDocument sends a knowledge file as multipart form data under
// the "file" field.
func (c *Client) UploadDocument(ctx context.Context, agentID, filename string, content io.Reader) (domain.Document, error) {
	id := strings.TrimSpace(agentID)
	if id == "" {
		return domain.Document{}, fmt.Errorf("agent id is required")
	}
	buf := &bytes.Buffer{}
	mw := multipart.NewWriter(buf)
	part, err := mw.CreateFormFile("file", filepath.Base(filename))
	if err != nil {
		return domain.Document{}, fmt.Errorf("build multipart form: %w", err)
	}
	if _, err := io.Copy(part, content); err != nil {
		return domain.Document{}, fmt.Errorf("read upload content: %w", err)
	}
	if err := mw.Close(); err != nil {
		return domain.Document{}, fmt.Errorf("finish multipart form: %w", err)
	}

	body, err := c.requestRaw(ctx, http.MethodPost, "/api/agents/"+url.PathEscape(id)+"/upload", buf, mw.FormDataContentType())
	if err != nil {
		return domain.Document{}, err
	}
	var resp UploadResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return domain.Document{}, fmt.Errorf("decode upload response: %w", err)
	}
	return resp.Document, nil
}

func (c *Client) DeleteDocument(ctx context.Context, documentID string) error {
	id := strings.TrimSpace(documentID)
	if id == "" {
		return fmt.Errorf("document id is required")
	}
	_, err := c.request(ctx, http.MethodDelete, "/api/documents/"+url.PathEscape(id), nil, nil)
	return err
}

// --- Analytics ---

func (c *Client) AnalyticsOverview(ctx context.Context) (domain.AnalyticsOverview, error) {
	body, err := c.request(ctx, http.MethodGet, "/api/analytics/overview", nil, nil)
	if err != nil {
		return domain.AnalyticsOverview{}, err
	}
	var resp domain.AnalyticsOverview
	if err := json.Unmarshal(body, &resp); err != nil {
		return domain.AnalyticsOverview{}, fmt.Errorf("decode analytics overview: %w", err)
	}
	return resp, nil
}

func (c *Client) AgentAnalytics(ctx context.Context, agentID string) (domain.AgentAnalytics, error) {
	id := strings.TrimSpace(agentID)
	if id == "" {
		return domain.AgentAnalytics{}, fmt.Errorf("agent id is required")
	}
	body, err := c.request(ctx, http.MethodGet, "/api/analytics/agents/"+url.PathEscape(id), nil, nil)
	if err != nil {
		return domain.AgentAnalytics{}, err
	}
	var resp domain.AgentAnalytics
	if err := json.Unmarshal(body, &resp); err != nil {
		return domain.AgentAnalytics{}, fmt.Errorf("decode agent analytics: %w", err)
	}
	return resp, nil
}

// --- transport plumbing ---

func (c *Client) request(ctx context.Context, method, path string, query url.Values, body any) ([]byte, error) {
	u := path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}
	var reqBody io.Reader
	contentType := ""
	if body != nil {
		buf := &bytes.Buffer{}
		if err := json.NewEncoder(buf).Encode(body); err != nil {
			return nil, fmt.Errorf("encode request body: %w", err)
		}
		reqBody = buf
		contentType = "application/json"
	}
	return c.requestRaw(ctx, method, u, reqBody, contentType)
}

func (c *Client) requestRaw(ctx context.Context, method, path string, body io.Reader, contentType string) ([]byte, error) {
	reqCtx := ctx
	if c.unaryTimeout > 0 {
		if deadline, ok := ctx.Deadline(); !ok || time.Until(deadline) > c.unaryTimeout {
			var cancel context.CancelFunc
			reqCtx, cancel = context.WithTimeout(ctx, c.unaryTimeout)
			defer cancel()
		}
	}
	req, err := http.NewRequestWithContext(reqCtx, method, c.baseURL+path, body)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}
	resp, err := c.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	payload, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode >= 400 {
		return nil, decodeError(resp.StatusCode, payload)
	}
	return payload, nil
}

// decodeError maps a non-2xx body to a RequestError. The backend
// reports errors as {"detail": "..."}, falling back to the raw body
// when the payload is not in that shape.
func decodeError(status int, payload []byte) *RequestError {
	var er struct {
		Detail string `json:"detail"`
	}
	if err := json.Unmarshal(payload, &er); err == nil && strings.TrimSpace(er.Detail) != "" {
		return &RequestError{StatusCode: status, Detail: er.Detail}
	}
	return &RequestError{StatusCode: status, Detail: strings.TrimSpace(string(payload))}
}
