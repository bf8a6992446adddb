package blockset

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/url"
	"strings"
)

const contentTypeJSON = "application/json; charset=utf-8"

// newRequest assembles a fully qualified request from the configured base
// URL, ordered path segments, a multi-valued query and an optional JSON
// body. A base URL that fails to parse, or a body that fails to serialize,
// is a caller error (KindBadRequest) surfaced before any network I/O.
func (c *Client) newRequest(method string, segments []string, query url.Values, body any) (*http.Request, *Error) {
	base, err := url.Parse(c.baseURL)
	if err != nil || base.Scheme == "" || base.Host == "" {
		return nil, badRequest("invalid base URL " + c.baseURL)
	}

	// Path and RawPath move in lockstep so String() keeps the per-segment
	// escaping instead of re-encoding it.
	path := strings.TrimRight(base.Path, "/")
	rawPath := strings.TrimRight(base.EscapedPath(), "/")
	for _, s := range segments {
		path += "/" + s
		rawPath += "/" + url.PathEscape(s)
	}
	base.Path = path
	base.RawPath = rawPath
	if len(query) > 0 {
		base.RawQuery = query.Encode()
	}

	return c.decorateRequest(method, base.String(), body)
}

// newRequestURL builds a request from an absolute URL, as handed back by
// the service in pagination links.
func (c *Client) newRequestURL(method, rawURL string) (*http.Request, *Error) {
	u, err := url.Parse(rawURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return nil, badRequest("invalid URL " + rawURL)
	}
	return c.decorateRequest(method, u.String(), nil)
}

func (c *Client) decorateRequest(method, fullURL string, body any) (*http.Request, *Error) {
	var reader io.Reader
	if body != nil {
		serialized, err := json.Marshal(body)
		if err != nil {
			return nil, badRequest("serialize body: " + err.Error())
		}
		reader = bytes.NewReader(serialized)
	}

	req, err := http.NewRequest(method, fullURL, reader)
	if err != nil {
		return nil, badRequest("build request: " + err.Error())
	}

	req.Header.Set("Accept", c.capabilities.VersionDescription())
	if body != nil {
		req.Header.Set("Content-Type", contentTypeJSON)
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}
	return req, nil
}
