// internal/dashboard/client.go
package dashboard

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/avpetrescu/catalog-admin/internal/models"
)

// Client talks to the catalog API. One call per user interaction, no
// retries; errors are surfaced once and the user re-initiates.
type Client struct {
	BaseURL    string
	HTTPClient *http.Client
}

func NewClient(baseURL string) *Client {
	return &Client{
		BaseURL:    strings.TrimRight(baseURL, "/"),
		HTTPClient: &http.Client{Timeout: 30 * time.Second},
	}
}

// APIError is a non-2xx response carrying the server's detail message.
type APIError struct {
	StatusCode int
	Detail     string
}

func (e *APIError) Error() string {
	if e.Detail != "" {
		return e.Detail
	}
	return fmt.Sprintf("API responded with status %d", e.StatusCode)
}

type LoginResult struct {
	Message string `json:"message"`
	UserID  uint   `json:"user_id"`
	Token   string `json:"token"`
}

func (c *Client) Login(ctx context.Context, username, password string) (*LoginResult, error) {
	form := url.Values{
		"username": {username},
		"password": {password},
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.BaseURL+"/login/",
		strings.NewReader(form.Encode()))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	var result LoginResult
	if err := c.do(req, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

func (c *Client) CreateProduct(ctx context.Context, name, description string, price float64, filename string, image []byte) (uint, error) {
	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)

	fields := map[string]string{
		"name":        name,
		"description": description,
		"price":       strconv.FormatFloat(price, 'f', -1, 64),
	}
	for field, value := range fields {
		if err := writer.WriteField(field, value); err != nil {
			return 0, err
		}
	}

	part, err := writer.CreateFormFile("image", filename)
	if err != nil {
		return 0, err
	}
	if _, err := part.Write(image); err != nil {
		return 0, err
	}
	if err := writer.Close(); err != nil {
		return 0, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.BaseURL+"/products/", body)
	if err != nil {
		return 0, err
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())

	var result struct {
		Message string `json:"message"`
		Product uint   `json:"product"`
	}
	if err := c.do(req, &result); err != nil {
		return 0, err
	}
	return result.Product, nil
}

func (c *Client) ListProducts(ctx context.Context) ([]models.Product, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.BaseURL+"/products/", nil)
	if err != nil {
		return nil, err
	}

	var products []models.Product
	if err := c.do(req, &products); err != nil {
		return nil, err
	}
	return products, nil
}

// do executes the request and decodes the JSON body into out. Non-2xx
// responses come back as *APIError with the server's detail message.
func (c *Client) do(req *http.Request, out interface{}) error {
	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		apiErr := &APIError{StatusCode: resp.StatusCode}
		var body struct {
			Detail string `json:"detail"`
		}
		if err := json.Unmarshal(data, &body); err == nil {
			apiErr.Detail = body.Detail
		}
		return apiErr
	}

	if out == nil {
		return nil
	}
	return json.Unmarshal(data, out)
}
