package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/spf13/afero"
)

// Options параметры клиента
type Options struct {
	BaseURL        string
	RequestTimeout time.Duration
	// FS файловая система, из которой читаются записи и резюме
	FS afero.Fs
	// Transport для тестов, по умолчанию http.DefaultTransport
	Transport http.RoundTripper
}

// Client REST клиент сервера интервью
type Client struct {
	baseURL string
	fs      afero.Fs
	// client для обычных запросов с таймаутом, upload ограничен контекстом
	client *http.Client
	upload *http.Client

	mu     sync.RWMutex
	userID string
}

func NewClient(opts Options) *Client {
	if opts.RequestTimeout <= 0 {
		opts.RequestTimeout = 30 * time.Second
	}
	if opts.FS == nil {
		opts.FS = afero.NewOsFs()
	}
	return &Client{
		baseURL: strings.TrimRight(opts.BaseURL, "/"),
		fs:      opts.FS,
		client: &http.Client{
			Timeout:   opts.RequestTimeout,
			Transport: opts.Transport,
		},
		upload: &http.Client{
			Transport: opts.Transport,
		},
	}
}

// SetUserID задает заголовок Authorization для последующих запросов
func (c *Client) SetUserID(id string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.userID = id
}

func (c *Client) UserID() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.userID
}

// HTTPError ответ сервера вне диапазона 2xx
type HTTPError struct {
	StatusCode int
	Message    string
	Body       string
}

func (e *HTTPError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return fmt.Sprintf("request failed with status %d", e.StatusCode)
}

type errorBody struct {
	Message string `json:"message"`
	Error   string `json:"error"`
}

func (c *Client) doJSON(ctx context.Context, method, path string, in, out any) error {
	var body io.Reader
	if in != nil {
		data, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("error marshaling request: %w", err)
		}
		body = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return fmt.Errorf("error creating request: %w", err)
	}
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	data, err := c.do(c.client, req)
	if err != nil {
		return err
	}
	if out == nil {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("error unmarshaling response: %w", err)
	}
	return nil
}

// do выполняет запрос и возвращает тело успешного ответа
func (c *Client) do(hc *http.Client, req *http.Request) ([]byte, error) {
	req.Header.Set("Accept", "application/json")
	if id := c.UserID(); id != "" {
		req.Header.Set("Authorization", id)
	}

	resp, err := hc.Do(req)
	if err != nil {
		log.Printf("API %s %s failed: %v", req.Method, req.URL.Path, err)
		return nil, fmt.Errorf("error making request: %w", err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("error reading response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		httpErr := &HTTPError{StatusCode: resp.StatusCode, Body: string(data)}
		var eb errorBody
		if json.Unmarshal(data, &eb) == nil {
			httpErr.Message = eb.Message
			if httpErr.Message == "" {
				httpErr.Message = eb.Error
			}
		}
		log.Printf("API %s %s failed: status %d", req.Method, req.URL.Path, resp.StatusCode)
		return nil, httpErr
	}
	return data, nil
}
