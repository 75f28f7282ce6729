package transport

import (
	"context"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/malusev998/cryptoboard"
)

const (
	ConnectTimeout   = 15 * time.Second
	ReadTimeout      = 10 * time.Second
	DefaultUserAgent = "cryptoboard/1.0"

	maxDrain = 4 << 10
)

type (
	HTTPTransport struct {
		client    *http.Client
		UserAgent string
	}

	// deadlineConn refreshes the read deadline before every read, so a
	// socket that stays silent for longer than timeout fails the call.
	deadlineConn struct {
		net.Conn
		timeout time.Duration
	}
)

func (c *deadlineConn) Read(b []byte) (int, error) {
	if err := c.Conn.SetReadDeadline(time.Now().Add(c.timeout)); err != nil {
		return 0, err
	}

	return c.Conn.Read(b)
}

func New() *HTTPTransport {
	return newHTTPTransport(ConnectTimeout, ReadTimeout)
}

func newHTTPTransport(connectTimeout, readTimeout time.Duration) *HTTPTransport {
	dialer := &net.Dialer{Timeout: connectTimeout}

	transport := &http.Transport{
		Proxy: http.ProxyFromEnvironment,
		DialContext: func(ctx context.Context, network, addr string) (net.Conn, error) {
			conn, err := dialer.DialContext(ctx, network, addr)

			if err != nil {
				return nil, err
			}

			return &deadlineConn{Conn: conn, timeout: readTimeout}, nil
		},
		TLSHandshakeTimeout:   connectTimeout,
		ResponseHeaderTimeout: readTimeout,
		DisableKeepAlives:     true,
	}

	return &HTTPTransport{
		client:    &http.Client{Transport: transport},
		UserAgent: DefaultUserAgent,
	}
}

func parseURL(rawURL string) (*url.URL, error) {
	u, err := url.ParseRequestURI(rawURL)

	if err != nil {
		return nil, fmt.Errorf("%w %q: %v", cryptoboard.ErrInvalidURL, rawURL, err)
	}

	if (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return nil, fmt.Errorf("%w %q: absolute http(s) url required", cryptoboard.ErrInvalidURL, rawURL)
	}

	return u, nil
}

// Fetch issues a GET to rawURL and returns the body of a 200 response as text.
func (t *HTTPTransport) Fetch(ctx context.Context, rawURL string) (string, error) {
	u, err := parseURL(rawURL)

	if err != nil {
		return "", err
	}

	if ctx == nil {
		ctx = context.Background()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)

	if err != nil {
		return "", &cryptoboard.TransportError{Cause: err}
	}

	req.Header.Add("Accept", "application/json")

	if t.UserAgent != "" {
		req.Header.Set("User-Agent", t.UserAgent)
	}

	res, err := t.client.Do(req)

	if err != nil {
		return "", &cryptoboard.TransportError{Cause: err}
	}

	defer res.Body.Close()

	if res.StatusCode != http.StatusOK {
		_, _ = io.Copy(io.Discard, io.LimitReader(res.Body, maxDrain))
		return "", &cryptoboard.BadStatusError{Code: res.StatusCode}
	}

	body, err := io.ReadAll(res.Body)

	if err != nil {
		return "", &cryptoboard.TransportError{Cause: err}
	}

	return strings.ToValidUTF8(string(body), "\uFFFD"), nil
}
