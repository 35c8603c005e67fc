package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"strings"
	"time"

	"golang.org/x/oauth2"
)

// Формат ответов платформы:
//
//	успех:   {"data": {...}} либо {"data": [...], "total": N}
//	ошибка:  {"error": {"code": "404", "message": "..."}}

type dataEnvelope struct {
	Data json.RawMessage `json:"data"`
}

type listEnvelope struct {
	Data  json.RawMessage `json:"data"`
	Total int             `json:"total"`
}

type errorEnvelope struct {
	Error struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

// Options — настройки клиента платформы.
type Options struct {
	// BaseURL — адрес API, например "https://api.annotata.io/v1".
	BaseURL string

	// Token — статический bearer-токен. Используется, если не
	// задан TokenSource.
	Token string

	// TokenSource — источник токенов (например, oauth2 client
	// credentials). Имеет приоритет над Token.
	TokenSource oauth2.TokenSource

	// HTTPClient — транспорт. По умолчанию — клиент с таймаутом 30s.
	HTTPClient *http.Client

	// UserAgent — значение заголовка User-Agent.
	UserAgent string
}

// Client — HTTP клиент API платформы.
type Client struct {
	baseURL     string
	token       string
	tokenSource oauth2.TokenSource
	http        *http.Client
	userAgent   string
}

// New создаёт клиент платформы.
func New(opts Options) (*Client, error) {
	if opts.BaseURL == "" {
		return nil, ErrEmptyBaseURL
	}
	httpClient := opts.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 30 * time.Second}
	}
	userAgent := opts.UserAgent
	if userAgent == "" {
		userAgent = "annotata-sdk/1.0"
	}
	return &Client{
		baseURL:     strings.TrimRight(opts.BaseURL, "/"),
		token:       opts.Token,
		tokenSource: opts.TokenSource,
		http:        httpClient,
		userAgent:   userAgent,
	}, nil
}

// Get выполняет GET запрос и декодирует data-конверт в out.
func (c *Client) Get(ctx context.Context, path string, out any) error {
	return c.doJSON(ctx, http.MethodGet, path, nil, nil, out)
}

// Post выполняет POST запрос с JSON телом.
func (c *Client) Post(ctx context.Context, path string, body, out any) error {
	return c.doJSON(ctx, http.MethodPost, path, nil, body, out)
}

// Put выполняет PUT запрос с JSON телом.
func (c *Client) Put(ctx context.Context, path string, body, out any) error {
	return c.doJSON(ctx, http.MethodPut, path, nil, body, out)
}

// Delete выполняет DELETE запрос.
func (c *Client) Delete(ctx context.Context, path string) error {
	return c.doJSON(ctx, http.MethodDelete, path, nil, nil, nil)
}

// List выполняет GET запрос списка и возвращает total из конверта.
func (c *Client) List(ctx context.Context, path string, query url.Values, out any) (int, error) {
	resp, err := c.do(ctx, http.MethodGet, path, query, nil, "")
	if err != nil {
		return 0, err
	}
	defer resp.Body.Close()

	raw, err := c.checkResponse(resp)
	if err != nil {
		return 0, err
	}
	var envelope listEnvelope
	if err := json.Unmarshal(raw, &envelope); err != nil {
		return 0, fmt.Errorf("decode list envelope: %w", err)
	}
	if out != nil && len(envelope.Data) > 0 {
		if err := json.Unmarshal(envelope.Data, out); err != nil {
			return 0, fmt.Errorf("decode list data: %w", err)
		}
	}
	return envelope.Total, nil
}

// Upload отправляет файл multipart-запросом.
func (c *Client) Upload(ctx context.Context, path, filename string, content io.Reader, fields map[string]string, out any) error {
	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	for key, value := range fields {
		if err := writer.WriteField(key, value); err != nil {
			return fmt.Errorf("write field %q: %w", key, err)
		}
	}
	part, err := writer.CreateFormFile("file", filename)
	if err != nil {
		return fmt.Errorf("create form file: %w", err)
	}
	if _, err := io.Copy(part, content); err != nil {
		return fmt.Errorf("copy file content: %w", err)
	}
	if err := writer.Close(); err != nil {
		return fmt.Errorf("finalize multipart body: %w", err)
	}

	resp, err := c.do(ctx, http.MethodPost, path, nil, &buf, writer.FormDataContentType())
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	return c.decodeData(resp, out)
}

// Download возвращает тело ответа для потокового чтения.
// Закрыть ReadCloser обязан вызывающий.
func (c *Client) Download(ctx context.Context, path string) (io.ReadCloser, error) {
	resp, err := c.do(ctx, http.MethodGet, path, nil, nil, "")
	if err != nil {
		return nil, err
	}
	if resp.StatusCode >= http.StatusBadRequest {
		defer resp.Body.Close()
		_, err := c.checkResponse(resp)
		return nil, err
	}
	return resp.Body, nil
}

func (c *Client) doJSON(ctx context.Context, method, path string, query url.Values, body, out any) error {
	var reader io.Reader
	contentType := ""
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request body: %w", err)
		}
		reader = bytes.NewReader(encoded)
		contentType = "application/json"
	}
	resp, err := c.do(ctx, method, path, query, reader, contentType)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	return c.decodeData(resp, out)
}

func (c *Client) do(ctx context.Context, method, path string, query url.Values, body io.Reader, contentType string) (*http.Response, error) {
	u := c.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}
	req, err := http.NewRequestWithContext(ctx, method, u, body)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("User-Agent", c.userAgent)
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	if err := c.authorize(req); err != nil {
		return nil, err
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%s %s: %w", method, path, err)
	}
	return resp, nil
}

func (c *Client) authorize(req *http.Request) error {
	if c.tokenSource != nil {
		token, err := c.tokenSource.Token()
		if err != nil {
			return fmt.Errorf("obtain access token: %w", err)
		}
		token.SetAuthHeader(req)
		return nil
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}
	return nil
}

// decodeData проверяет статус и декодирует data-конверт в out.
func (c *Client) decodeData(resp *http.Response, out any) error {
	raw, err := c.checkResponse(resp)
	if err != nil {
		return err
	}
	if out == nil {
		return nil
	}
	var envelope dataEnvelope
	if err := json.Unmarshal(raw, &envelope); err != nil {
		return fmt.Errorf("decode envelope: %w", err)
	}
	if len(envelope.Data) == 0 {
		return nil
	}
	if err := json.Unmarshal(envelope.Data, out); err != nil {
		return fmt.Errorf("decode data: %w", err)
	}
	return nil
}

// checkResponse читает тело и превращает статусы >= 400 в PlatformError.
func (c *Client) checkResponse(resp *http.Response) ([]byte, error) {
	raw, err := io.ReadAll(io.LimitReader(resp.Body, 8<<20))
	if err != nil {
		return nil, fmt.Errorf("read response body: %w", err)
	}
	if resp.StatusCode < http.StatusBadRequest {
		return raw, nil
	}

	perr := &PlatformError{StatusCode: resp.StatusCode}
	var envelope errorEnvelope
	if json.Unmarshal(raw, &envelope) == nil && envelope.Error.Message != "" {
		perr.Code = envelope.Error.Code
		perr.Message = envelope.Error.Message
	} else {
		perr.Message = strings.TrimSpace(string(raw))
	}
	return nil, perr
}
