package shopify

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"strings"

	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

// Client issues GraphQL and REST calls against the Shopify Admin API.
// All responses are decoded into typed results at this boundary.
type Client struct {
	cfg     Config
	http    *http.Client
	limiter *rate.Limiter
	log     *zap.Logger
}

func NewClient(cfg Config, log *zap.Logger) *Client {
	return &Client{
		cfg:  cfg,
		http: &http.Client{},
		// Shopify's REST bucket refills at 2 requests/second (burst 40)
		limiter: rate.NewLimiter(rate.Limit(2), 40),
		log:     log,
	}
}

// baseURL normalizes the configured store domain into an absolute URL.
func (c *Client) baseURL() string {
	domain := strings.TrimRight(c.cfg.StoreDomain, "/")
	if strings.Contains(domain, "://") {
		return domain
	}
	return "https://" + domain
}

func (c *Client) graphqlEndpoint() string {
	return c.baseURL() + "/admin/api/" + c.cfg.APIVersion + "/graphql.json"
}

func (c *Client) restEndpoint(path string) string {
	return c.baseURL() + "/admin/api/" + c.cfg.APIVersion + "/" + strings.TrimLeft(path, "/")
}

type graphqlEnvelope struct {
	Data   json.RawMessage `json:"data"`
	Errors []struct {
		Message string `json:"message"`
	} `json:"errors"`
}

// Query performs a GraphQL request. It fails with *TransportError on
// network/non-2xx failures and *GraphQLError when the response carries a
// top-level errors array. Mutation-specific userErrors are checked by the
// typed wrappers on top of this.
func (c *Client) Query(document string, variables map[string]any) (json.RawMessage, error) {
	payload, err := json.Marshal(map[string]any{
		"query":     document,
		"variables": variables,
	})
	if err != nil {
		return nil, err
	}

	body, err := c.do(http.MethodPost, c.graphqlEndpoint(), payload)
	if err != nil {
		return nil, err
	}

	var envelope graphqlEnvelope
	if err := json.Unmarshal(body, &envelope); err != nil {
		return nil, &ProtocolError{Op: "parseable response body"}
	}
	if len(envelope.Errors) > 0 {
		messages := make([]string, len(envelope.Errors))
		for i, e := range envelope.Errors {
			messages[i] = e.Message
		}
		return nil, &GraphQLError{Messages: messages}
	}
	return envelope.Data, nil
}

// restRequest performs a REST request with the same failure contract as
// Query. The returned body may be empty (e.g. DELETE).
func (c *Client) restRequest(method, path string, payload any) (json.RawMessage, error) {
	var body []byte
	if payload != nil {
		var err error
		body, err = json.Marshal(payload)
		if err != nil {
			return nil, err
		}
	}
	return c.do(method, c.restEndpoint(path), body)
}

func (c *Client) do(method, url string, payload []byte) ([]byte, error) {
	if err := c.limiter.Wait(context.Background()); err != nil {
		return nil, &TransportError{Err: err}
	}

	var reader io.Reader
	if payload != nil {
		reader = bytes.NewReader(payload)
	}
	req, err := http.NewRequest(method, url, reader)
	if err != nil {
		return nil, err
	}
	req.Header.Set("X-Shopify-Access-Token", c.cfg.AccessToken)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, &TransportError{Err: err}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &TransportError{Err: err}
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, &TransportError{Status: resp.StatusCode, Body: string(body)}
	}
	return body, nil
}

// ValidateCredentials checks the configured domain and token with a
// minimal shop query. Only a 401/403 response (or a failed request)
// marks the credentials invalid; this is a weak proxy for "healthy".
func (c *Client) ValidateCredentials() bool {
	payload, err := json.Marshal(map[string]any{
		"query": "{ shop { name myshopifyDomain } }",
	})
	if err != nil {
		return false
	}

	req, err := http.NewRequest(http.MethodPost, c.graphqlEndpoint(), bytes.NewReader(payload))
	if err != nil {
		return false
	}
	req.Header.Set("X-Shopify-Access-Token", c.cfg.AccessToken)
	req.Header.Set("Content-Type", "application/json")

	if err := c.limiter.Wait(context.Background()); err != nil {
		return false
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return false
	}
	defer resp.Body.Close()

	return resp.StatusCode != http.StatusUnauthorized && resp.StatusCode != http.StatusForbidden
}
