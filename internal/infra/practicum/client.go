// Package practicum talks to the Yandex Practicum homework_statuses API.
package practicum

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"homework_status_bot/internal/domain/homework"

	"github.com/sirupsen/logrus"
)

// Response is the decoded top-level JSON object returned by the API.
// Values stay raw so that CheckResponse can judge their shape.
type Response map[string]json.RawMessage

// Client issues homework_statuses requests.
type Client struct {
	endpoint   string
	token      string
	httpClient *http.Client
	logger     *logrus.Entry
}

func NewClient(endpoint, token string, httpClient *http.Client, logger *logrus.Entry) *Client {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &Client{
		endpoint:   endpoint,
		token:      token,
		httpClient: httpClient,
		logger:     logger,
	}
}

// GetAPIAnswer fetches homework statuses changed since fromDate (Unix seconds).
// A non-positive fromDate means "now". Any non-200 answer, transport failure or
// body that is not JSON is returned as *homework.FetchError. Valid JSON that is not an
// object is a homework.ErrResponseShape error.
func (c *Client) GetAPIAnswer(ctx context.Context, fromDate int64) (Response, error) {
	if fromDate <= 0 {
		fromDate = time.Now().Unix()
	}
	logCtx := c.logger.WithField("from_date", fromDate)

	u, err := url.Parse(c.endpoint)
	if err != nil {
		return nil, &homework.FetchError{Err: fmt.Errorf("invalid endpoint %q: %w", c.endpoint, err)}
	}
	q := u.Query()
	q.Set("from_date", strconv.FormatInt(fromDate, 10))
	u.RawQuery = q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, &homework.FetchError{Err: fmt.Errorf("create request: %w", err)}
	}
	req.Header.Set("Authorization", "OAuth "+c.token)
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		logCtx.WithError(err).Error("Request to the homework API failed")
		return nil, &homework.FetchError{Err: fmt.Errorf("execute request: %w", err)}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		logCtx.WithError(err).WithField("status_code", resp.StatusCode).Error("Failed to read homework API response")
		return nil, &homework.FetchError{StatusCode: resp.StatusCode, Err: fmt.Errorf("read response: %w", err)}
	}

	if resp.StatusCode != http.StatusOK {
		logCtx.WithFields(logrus.Fields{
			"status_code": resp.StatusCode,
			"body":        string(body),
		}).Error("Homework API answered with unexpected status")
		return nil, &homework.FetchError{StatusCode: resp.StatusCode, Body: string(body)}
	}

	if !json.Valid(body) {
		logCtx.WithField("body", string(body)).Error("Homework API answer is not valid JSON")
		return nil, &homework.FetchError{StatusCode: resp.StatusCode, Err: fmt.Errorf("decode response: invalid JSON")}
	}

	var answer Response
	// A literal null decodes into a nil map without error.
	if err := json.Unmarshal(body, &answer); err != nil || answer == nil {
		logCtx.WithField("body", string(body)).Error("Homework API answer is not a JSON object")
		return nil, fmt.Errorf("%w: answer is not a JSON object: %s", homework.ErrResponseShape, truncate(bytes.TrimSpace(body)))
	}

	logCtx.WithField("body", string(body)).Info("Received answer from the homework API")
	return answer, nil
}

// CheckResponse verifies that the answer carries a "homeworks" list and returns its
// elements undecoded. The list may be empty; the elements themselves are not inspected.
func CheckResponse(resp Response) ([]json.RawMessage, error) {
	raw, ok := resp["homeworks"]
	if !ok {
		return nil, fmt.Errorf("%w: key \"homeworks\" is absent", homework.ErrResponseShape)
	}
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || trimmed[0] != '[' {
		return nil, fmt.Errorf("%w: \"homeworks\" is not a list: %s", homework.ErrResponseShape, truncate(trimmed))
	}

	homeworks := []json.RawMessage{}
	if err := json.Unmarshal(trimmed, &homeworks); err != nil {
		return nil, fmt.Errorf("%w: %v", homework.ErrResponseShape, err)
	}
	return homeworks, nil
}

// CurrentDate returns the server-side "current_date" cursor if the answer has one.
func CurrentDate(resp Response) (int64, bool) {
	raw, ok := resp["current_date"]
	if !ok {
		return 0, false
	}
	var ts int64
	if err := json.Unmarshal(raw, &ts); err != nil || ts <= 0 {
		return 0, false
	}
	return ts, true
}

func truncate(b []byte) string {
	const max = 64
	if len(b) > max {
		return string(b[:max]) + "..."
	}
	return string(b)
}
