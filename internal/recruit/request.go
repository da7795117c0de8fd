package recruit

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"

	"github.com/go-resty/resty/v2"
	"github.com/mitchellh/mapstructure"
	"github.com/tidwall/gjson"
	"go.uber.org/zap"

	"github.com/spigell/recruit-dashboard/internal/logger"
)

const (
	contentType     = "application/json"
	maxDetailLength = 300
)

type Item interface{}

// request returns a request bound to ctx with the common headers set.
func (c *Client) request(ctx context.Context) *resty.Request {
	return c.http.R().
		SetContext(ctx).
		SetHeader("User-Agent", c.UserAgent).
		SetHeader("Accept", contentType)
}

func (c *Client) url(path string) string {
	return fmt.Sprintf("%s%s", c.APIURL, path)
}

// do executes the request and converts every failure into a ServiceError.
func (c *Client) do(op string, req *resty.Request, method, path string) (*resty.Response, error) {
	url := c.url(path)
	c.logger.Debug("make request", zap.String("op", op), zap.String("method", method), zap.String("url", url))

	resp, err := req.Execute(method, url)
	if err != nil {
		return nil, &ServiceError{Op: op, Err: err}
	}

	if !resp.IsSuccess() {
		detail := errorDetail(resp.Body())
		c.logger.Debug("bad response from ranking service",
			zap.String("op", op),
			zap.Int("status", resp.StatusCode()),
			zap.String("body", logger.TruncateForLog(string(resp.Body()), maxDetailLength)),
		)
		return nil, &ServiceError{
			Op:         op,
			StatusCode: resp.StatusCode(),
			Detail:     detail,
			Err:        fmt.Errorf("bad status: %s", resp.Status()),
		}
	}

	return resp, nil
}

// getItems makes GET request and returns the decoded top-level array.
func (c *Client) getItems(op string, req *resty.Request, path string) ([]Item, error) {
	resp, err := c.do(op, req, resty.MethodGet, path)
	if err != nil {
		return nil, err
	}

	var items []Item
	if err := unmarshal(resp.Body(), &items); err != nil {
		return nil, &ServiceError{Op: op, Err: fmt.Errorf("decode items: %w", err)}
	}

	c.logger.Debug("got response from ranking service", zap.String("op", op), zap.Int("items", len(items)))

	return items, nil
}

// unmarshal keeps numbers as json.Number so that numeric identifiers survive
// the trip into string fields untouched.
func unmarshal(body []byte, target any) error {
	body = bytes.TrimSpace(body)
	if len(body) == 0 {
		return nil
	}

	dec := json.NewDecoder(bytes.NewReader(body))
	dec.UseNumber()

	return dec.Decode(target)
}

// decode maps generic JSON values onto typed structs using json tag names.
func decode(input any, target any) error {
	cfg := &mapstructure.DecoderConfig{
		Result:           target,
		TagName:          "json",
		WeaklyTypedInput: true,
	}

	decoder, err := mapstructure.NewDecoder(cfg)
	if err != nil {
		return err
	}

	return decoder.Decode(input)
}

// errorDetail extracts a human readable cause from an error body.
func errorDetail(body []byte) string {
	if len(bytes.TrimSpace(body)) == 0 {
		return ""
	}

	if !gjson.ValidBytes(body) {
		return logger.TruncateForLog(string(body), maxDetailLength)
	}

	for _, path := range []string{"detail", "detail.0.msg", "message", "error"} {
		value := gjson.GetBytes(body, path)
		if value.Type == gjson.String && value.String() != "" {
			return logger.TruncateForLog(value.String(), maxDetailLength)
		}
	}

	return ""
}
