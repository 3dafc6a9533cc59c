package airtableclient

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	jsoniter "github.com/json-iterator/go"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	airtabledomain "github.com/vfg2006/dealer-crm-api/infrastructure/integrator/airtable/domain"
	"github.com/vfg2006/dealer-crm-api/internal/config"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// maxPageSize is the largest page the list endpoint serves.
const maxPageSize = 100

type Client interface {
	ListRecords(ctx context.Context, baseID, table string) ([]airtabledomain.Record, error)
	GetRecord(ctx context.Context, baseID, table, recordID string) (*airtabledomain.Record, error)
	CreateRecord(ctx context.Context, baseID, table string, fields any) (*airtabledomain.Record, error)
	UpdateRecord(ctx context.Context, baseID, table, recordID string, fields any) (*airtabledomain.Record, error)
	DeleteRecord(ctx context.Context, baseID, table, recordID string) error
}

type AirtableClient struct {
	httpClient *http.Client
	baseURL    string
	apiKey     string
	maxRetries int
	retryDelay time.Duration
}

func NewClient(cfg *config.Config) Client {
	return &AirtableClient{
		httpClient: &http.Client{
			Timeout: cfg.Airtable.Timeout,
		},
		baseURL:    cfg.Airtable.URL,
		apiKey:     cfg.Airtable.APIKey,
		maxRetries: cfg.Airtable.MaxRetries,
		retryDelay: cfg.Airtable.RetryDelay,
	}
}

func (c *AirtableClient) tableURL(baseID, table string, segments ...string) string {
	endpoint := fmt.Sprintf("%s/%s/%s", c.baseURL, url.PathEscape(baseID), url.PathEscape(table))
	for _, segment := range segments {
		endpoint += "/" + url.PathEscape(segment)
	}
	return endpoint
}

// do sends the request and decodes a 2xx body into out. Rate-limited calls
// and server errors are retried with exponential backoff up to maxRetries
// times.
func (c *AirtableClient) do(ctx context.Context, method, endpoint string, body any, out any) error {
	var payload []byte
	if body != nil {
		var err error
		payload, err = json.Marshal(body)
		if err != nil {
			return errors.Wrap(err, "error encoding request body")
		}
	}

	for attempt := 0; ; attempt++ {
		var reader io.Reader
		if payload != nil {
			reader = bytes.NewReader(payload)
		}

		req, err := http.NewRequestWithContext(ctx, method, endpoint, reader)
		if err != nil {
			return errors.Wrap(err, "error creating request")
		}
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
		req.Header.Set("Accept", "application/json")
		if payload != nil {
			req.Header.Set("Content-Type", "application/json")
		}

		resp, err := c.httpClient.Do(req)
		if err != nil {
			return errors.Wrapf(err, "error executing %s %s", method, endpoint)
		}

		if retryable(resp.StatusCode) && attempt < c.maxRetries {
			resp.Body.Close()
			wait := c.retryDelay << attempt
			logrus.WithFields(logrus.Fields{
				"attempt": attempt + 1,
				"status":  resp.StatusCode,
				"wait":    wait.String(),
			}).Warn("Airtable request failed, retrying")

			select {
			case <-ctx.Done():
				return errors.Wrap(ctx.Err(), "request cancelled while waiting to retry")
			case <-time.After(wait):
			}
			continue
		}

		err = decodeResponse(resp, out)
		resp.Body.Close()
		return err
	}
}

func retryable(status int) bool {
	return status == http.StatusTooManyRequests || status >= http.StatusInternalServerError
}

func decodeResponse(resp *http.Response, out any) error {
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return decodeError(resp)
	}

	if out == nil {
		return nil
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return errors.Wrap(err, "error decoding response")
	}

	return nil
}

func decodeError(resp *http.Response) error {
	apiErr := &airtabledomain.ErrorResponse{StatusCode: resp.StatusCode}

	raw, _ := io.ReadAll(resp.Body)
	var envelope struct {
		Error jsoniter.RawMessage `json:"error"`
	}
	if err := json.Unmarshal(raw, &envelope); err == nil && len(envelope.Error) > 0 {
		if err := json.Unmarshal(envelope.Error, &apiErr.Detail); err != nil {
			var kind string
			if json.Unmarshal(envelope.Error, &kind) == nil {
				apiErr.Detail.Type = kind
			}
		}
	}

	if apiErr.Detail.Type == "" {
		apiErr.Detail.Type = resp.Status
	}

	return apiErr
}
