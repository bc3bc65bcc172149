package schema

import (
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"

	"github.com/jacoelho/xsd"
)

// emptySchemaStub is served in place of a schema document that could not be
// fetched. Compilation then proceeds with the affected components missing
// instead of aborting; the gap surfaces later as validation errors.
const emptySchemaStub = `<?xml version="1.0" encoding="UTF-8"?>
<xs:schema xmlns:xs="http://www.w3.org/2001/XMLSchema"/>
`

// HTTPResolver resolves xs:include and xs:import schemaLocation values over
// HTTP. Absolute locations are fetched as-is; relative ones are rewritten
// against the URL of the including document, or against the flavor base URL
// for the root request. Fetches are sequential and blocking.
type HTTPResolver struct {
	base   *url.URL
	client *http.Client
	logger *slog.Logger
}

// Resolver is satisfied by HTTPResolver.
var _ xsd.Resolver = (*HTTPResolver)(nil)

// NewHTTPResolver creates a resolver anchored at baseURL.
func NewHTTPResolver(baseURL string, client *http.Client, logger *slog.Logger) (*HTTPResolver, error) {
	base, err := url.Parse(baseURL)
	if err != nil {
		return nil, &InvalidSchemaLocationError{Location: baseURL, Reason: err.Error()}
	}
	if !base.IsAbs() {
		return nil, &InvalidSchemaLocationError{Location: baseURL, Reason: "base URL must be absolute"}
	}
	if client == nil {
		client = http.DefaultClient
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &HTTPResolver{
		base:   base,
		client: client,
		logger: logger.With("component", "resolver"),
	}, nil
}

// Resolve implements xsd.Resolver. The returned system ID is the absolute
// URL the document was fetched from, so that nested relative includes are
// rewritten against the right origin.
func (r *HTTPResolver) Resolve(req xsd.ResolveRequest) (io.ReadCloser, string, error) {
	target, err := r.rewrite(req.BaseSystemID, req.SchemaLocation)
	if err != nil {
		return nil, "", err
	}

	body, err := r.fetch(target)
	if err != nil {
		// Failure is not propagated: the schema compiles with the include
		// unresolved and the gap shows up as validation errors.
		r.logger.Warn("schema document could not be fetched, continuing without it",
			"url", target, "error", err)
		return io.NopCloser(strings.NewReader(emptySchemaStub)), target, nil
	}
	return body, target, nil
}

// rewrite turns a schemaLocation into an absolute URL. The base for relative
// locations is the including document's URL when known, otherwise the flavor
// base URL.
func (r *HTTPResolver) rewrite(baseSystemID, location string) (string, error) {
	if location == "" {
		return "", &InvalidSchemaLocationError{Location: location, Reason: "empty"}
	}

	loc, err := url.Parse(location)
	if err != nil {
		return "", &InvalidSchemaLocationError{Location: location, Reason: err.Error()}
	}
	if loc.IsAbs() {
		return loc.String(), nil
	}

	base := r.base
	if baseSystemID != "" {
		if parent, err := url.Parse(baseSystemID); err == nil && parent.IsAbs() {
			base = parent
		}
	}
	return base.ResolveReference(loc).String(), nil
}

func (r *HTTPResolver) fetch(target string) (io.ReadCloser, error) {
	resp, err := r.client.Get(target)
	if err != nil {
		return nil, &SchemaFetchError{URL: target, Wrapped: err}
	}
	if resp.StatusCode != http.StatusOK {
		resp.Body.Close()
		return nil, &SchemaFetchError{URL: target, Status: resp.Status}
	}
	return resp.Body, nil
}

// FetchDocument fetches a single schema document without the stub fallback.
// Used by the fetch command, where a failed download must be reported.
func (r *HTTPResolver) FetchDocument(baseSystemID, location string) ([]byte, string, error) {
	target, err := r.rewrite(baseSystemID, location)
	if err != nil {
		return nil, "", err
	}
	body, err := r.fetch(target)
	if err != nil {
		return nil, "", err
	}
	defer body.Close()
	data, err := io.ReadAll(body)
	if err != nil {
		return nil, "", fmt.Errorf("reading %s: %w", target, err)
	}
	return data, target, nil
}
