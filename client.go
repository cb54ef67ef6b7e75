package nnclient

import (
	"bytes"
	"context"
	"crypto/tls"
	"crypto/x509"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"sync"
	"time"

	ctxio "github.com/jbenet/go-context/io"
	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/semaphore"
)

// DefaultAccountServerHost is the host of the official account server.
const DefaultAccountServerHost = "account.nintendo.net"

const (
	peopleEndpoint     = "/v1/api/people/"
	agreementsEndpoint = "/v1/api/content/agreements/"
	timezonesEndpoint  = "/v1/api/content/time_zones/"
	timeEndpoint       = "/v1/api/admin/time"
	mappedIDsEndpoint  = "/v1/api/admin/mapped_ids"
)

const (
	maxRetries            = 3
	retryDelay            = 2 * time.Second
	maxConcurrentRequests = 4
	defaultPoolSize       = 16
)

// UnexpectedStatusError is returned when the account server answers with a
// status code the endpoint contract does not cover.
type UnexpectedStatusError struct {
	Status int
}

func (e *UnexpectedStatusError) Error() string {
	return fmt.Sprintf("the account server returned an unexpected status code %d", e.Status)
}

// MissingHeaderError is returned when a response lacks a header the endpoint
// contract requires.
type MissingHeaderError struct {
	Header string
}

func (e *MissingHeaderError) Error() string {
	return fmt.Sprintf("the account server response lacked the %s header", e.Header)
}

// Client talks to a Nintendo Network account server while mimicking the
// console it was built with. Every request carries the console's header
// fingerprint; the headers are cached and can be refreshed after the console
// data changes.
type Client struct {
	host    string
	console Console
	http    *http.Client
	pool    *BufferPool

	mu      sync.RWMutex
	headers http.Header
}

// ClientOption adjusts a Client during construction.
type ClientOption func(*Client)

// WithHost points the client at a different account server, e.g. a private
// reimplementation.
func WithHost(host string) ClientOption {
	return func(c *Client) { c.host = host }
}

// WithBufferPool substitutes the pool used for response body buffers.
func WithBufferPool(pool *BufferPool) ClientOption {
	return func(c *Client) { c.pool = pool }
}

// WithHTTPClient substitutes the underlying HTTP client entirely, discarding
// the identity-based TLS configuration. Mainly useful in tests.
func WithHTTPClient(hc *http.Client) ClientOption {
	return func(c *Client) { c.http = hc }
}

// NewClient builds a client around the given console. The identity is the
// console's TLS client certificate (see LoadIdentity); the server rejects
// most endpoints without one. A nil cacerts falls back to the host's trust
// store, which does not include Nintendo's private CAs.
func NewClient(console Console, identity *tls.Certificate, cacerts *x509.CertPool, opts ...ClientOption) (*Client, error) {
	tlsConfig := &tls.Config{RootCAs: cacerts}
	if identity != nil {
		tlsConfig.Certificates = []tls.Certificate{*identity}
	}

	c := &Client{
		host:    DefaultAccountServerHost,
		console: console,
		http: &http.Client{
			Transport: &http.Transport{TLSClientConfig: tlsConfig},
		},
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.pool == nil {
		c.pool = NewBufferPool(defaultPoolSize)
	}

	if err := c.RefreshHeaders(); err != nil {
		return nil, err
	}
	return c, nil
}

// Host returns the account server host the client is pointed at.
func (c *Client) Host() string {
	return c.host
}

// RefreshHeaders regenerates the cached console header fingerprint. Call it
// after mutating the console's fields.
func (c *Client) RefreshHeaders() error {
	headers, err := c.console.HTTPHeaders(Server{Kind: ServerAccount, Host: c.host})
	if err != nil {
		return err
	}
	c.mu.Lock()
	c.headers = headers
	c.mu.Unlock()
	return nil
}

// get performs a GET against path on the account server, retrying transient
// transport and server failures a bounded number of times.
func (c *Client) get(ctx context.Context, path string, query url.Values) (*http.Response, error) {
	u := url.URL{Scheme: "https", Host: c.host, Path: path, RawQuery: query.Encode()}

	var lastErr error
	for attempt := 1; attempt <= maxRetries; attempt++ {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
		if err != nil {
			return nil, err
		}
		c.mu.RLock()
		for name, values := range c.headers {
			req.Header[name] = values
		}
		c.mu.RUnlock()

		resp, err := c.http.Do(req)
		if err != nil {
			lastErr = err
		} else if resp.StatusCode >= 500 {
			resp.Body.Close()
			lastErr = &UnexpectedStatusError{Status: resp.StatusCode}
		} else {
			return resp, nil
		}

		if attempt < maxRetries {
			select {
			case <-time.After(retryDelay):
			case <-ctx.Done():
				return nil, ctx.Err()
			}
		}
	}
	return nil, lastErr
}

// readBody drains a response body through a pooled buffer, honoring ctx
// cancellation mid-read.
func (c *Client) readBody(ctx context.Context, resp *http.Response) ([]byte, error) {
	defer resp.Body.Close()

	buf := c.pool.Get()
	defer c.pool.Put(buf)

	if _, err := io.Copy(buf, ctxio.NewReader(ctx, resp.Body)); err != nil {
		return nil, err
	}
	return bytes.Clone(buf.Bytes()), nil
}

// serverError decodes an error document out of a 400/401 response body.
func (c *Client) serverError(ctx context.Context, resp *http.Response) error {
	body, err := c.readBody(ctx, resp)
	if err != nil {
		return err
	}
	var errs Errors
	if err := xml.Unmarshal(body, &errs); err != nil {
		return fmt.Errorf("undecodable error document (status %d): %w", resp.StatusCode, err)
	}
	return &errs
}

// UserExists checks whether an account with the given Nintendo Network id is
// registered on the server.
func (c *Client) UserExists(ctx context.Context, nnid NNID) (bool, error) {
	resp, err := c.get(ctx, peopleEndpoint+url.PathEscape(string(nnid)), nil)
	if err != nil {
		return false, err
	}

	switch resp.StatusCode {
	case http.StatusOK:
		resp.Body.Close()
		return false, nil
	case http.StatusBadRequest, http.StatusUnauthorized:
		err := c.serverError(ctx, resp)
		var errs *Errors
		if errors.As(err, &errs) && errs.FirstCode() == ErrAccountIDExists {
			return true, nil
		}
		return false, err
	default:
		resp.Body.Close()
		return false, &UnexpectedStatusError{Status: resp.StatusCode}
	}
}

// Agreements fetches the agreements of the given kind (see
// AgreementKindEULA) for a country, in the requested version.
func (c *Client) Agreements(ctx context.Context, kind, country string, version AgreementVersion) (*Agreements, error) {
	path := agreementsEndpoint + url.PathEscape(kind) + "/" + url.PathEscape(country) + "/" + version.String()

	resp, err := c.get(ctx, path, nil)
	if err != nil {
		return nil, err
	}

	switch resp.StatusCode {
	case http.StatusOK:
		body, err := c.readBody(ctx, resp)
		if err != nil {
			return nil, err
		}
		var agreements Agreements
		if err := xml.Unmarshal(body, &agreements); err != nil {
			return nil, fmt.Errorf("decoding agreement document: %w", err)
		}
		return &agreements, nil
	case http.StatusBadRequest, http.StatusUnauthorized:
		return nil, c.serverError(ctx, resp)
	default:
		resp.Body.Close()
		return nil, &UnexpectedStatusError{Status: resp.StatusCode}
	}
}

// AgreementsForCountries fetches one country's agreements per goroutine,
// bounded by a small concurrency limit, and returns them keyed by country.
func (c *Client) AgreementsForCountries(ctx context.Context, kind string, countries []string, version AgreementVersion) (map[string]*Agreements, error) {
	var (
		mu      sync.Mutex
		results = make(map[string]*Agreements, len(countries))
	)

	g, ctx := errgroup.WithContext(ctx)
	sem := semaphore.NewWeighted(maxConcurrentRequests)

	for _, country := range countries {
		country := country
		g.Go(func() error {
			if err := sem.Acquire(ctx, 1); err != nil {
				return err
			}
			defer sem.Release(1)

			agreements, err := c.Agreements(ctx, kind, country, version)
			if err != nil {
				return fmt.Errorf("fetching agreements for %s: %w", country, err)
			}
			mu.Lock()
			results[country] = agreements
			mu.Unlock()
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

// Timezones fetches the timezone list for a country, localized into the
// given language.
func (c *Client) Timezones(ctx context.Context, country, language string) (*Timezones, error) {
	path := timezonesEndpoint + url.PathEscape(country) + "/" + url.PathEscape(language)

	resp, err := c.get(ctx, path, nil)
	if err != nil {
		return nil, err
	}

	switch resp.StatusCode {
	case http.StatusOK:
		body, err := c.readBody(ctx, resp)
		if err != nil {
			return nil, err
		}
		var timezones Timezones
		if err := xml.Unmarshal(body, &timezones); err != nil {
			return nil, fmt.Errorf("decoding timezone document: %w", err)
		}
		return &timezones, nil
	case http.StatusBadRequest, http.StatusUnauthorized:
		return nil, c.serverError(ctx, resp)
	default:
		resp.Body.Close()
		return nil, &UnexpectedStatusError{Status: resp.StatusCode}
	}
}

// Time returns the current time according to the account server, carried in
// the X-Nintendo-Date response header as milliseconds since the epoch.
func (c *Client) Time(ctx context.Context) (time.Time, error) {
	resp, err := c.get(ctx, timeEndpoint, nil)
	if err != nil {
		return time.Time{}, err
	}

	switch resp.StatusCode {
	case http.StatusOK:
		resp.Body.Close()
		value := resp.Header.Get("X-Nintendo-Date")
		if value == "" {
			return time.Time{}, &MissingHeaderError{Header: "X-Nintendo-Date"}
		}
		millis, err := strconv.ParseInt(value, 10, 64)
		if err != nil {
			return time.Time{}, fmt.Errorf("bad X-Nintendo-Date value %q: %w", value, err)
		}
		return time.UnixMilli(millis).UTC(), nil
	case http.StatusUnauthorized:
		return time.Time{}, c.serverError(ctx, resp)
	default:
		resp.Body.Close()
		return time.Time{}, &UnexpectedStatusError{Status: resp.StatusCode}
	}
}

// MapIDs converts identifiers of one kind into another, e.g. Nintendo
// Network ids ("user_id") into PIDs ("pid").
func (c *Client) MapIDs(ctx context.Context, inputType, outputType string, inputs []string) (*MappedIDs, error) {
	query := url.Values{}
	query.Set("input_type", inputType)
	query.Set("output_type", outputType)
	for _, input := range inputs {
		query.Add("input", input)
	}

	resp, err := c.get(ctx, mappedIDsEndpoint, query)
	if err != nil {
		return nil, err
	}

	switch resp.StatusCode {
	case http.StatusOK:
		body, err := c.readBody(ctx, resp)
		if err != nil {
			return nil, err
		}
		var mapped MappedIDs
		if err := xml.Unmarshal(body, &mapped); err != nil {
			return nil, fmt.Errorf("decoding id mapping document: %w", err)
		}
		return &mapped, nil
	case http.StatusBadRequest, http.StatusUnauthorized:
		return nil, c.serverError(ctx, resp)
	default:
		resp.Body.Close()
		return nil, &UnexpectedStatusError{Status: resp.StatusCode}
	}
}
