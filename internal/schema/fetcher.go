package schema

import (
	"bytes"
	"encoding/xml"
	"log/slog"
	"net/http"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"strings"
)

const xsdNamespace = "http://www.w3.org/2001/XMLSchema"

// Fetcher downloads a flavor's schema tree - the root document plus every
// transitively included same-origin document - into a local directory,
// preserving the relative layout so the tree stays loadable offline.
type Fetcher struct {
	client *http.Client
	logger *slog.Logger
}

// NewFetcher creates a Fetcher.
func NewFetcher(client *http.Client, logger *slog.Logger) *Fetcher {
	if client == nil {
		client = http.DefaultClient
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Fetcher{
		client: client,
		logger: logger.With("component", "fetcher"),
	}
}

// Fetch downloads the schema tree for d into destDir and returns the written
// file paths. Unlike validator construction, a failed download here is an
// error: a partial offline copy is worse than none.
func (f *Fetcher) Fetch(d Definition, destDir string) ([]string, error) {
	resolver, err := NewHTTPResolver(d.BaseURL, f.client, f.logger)
	if err != nil {
		return nil, err
	}

	type job struct {
		location     string // relative to the tree root
		baseSystemID string
	}

	var written []string
	seen := map[string]bool{}
	queue := []job{{location: d.RootDocument}}

	for len(queue) > 0 {
		j := queue[0]
		queue = queue[1:]

		rel, err := treePath(j.location, j.baseSystemID, d.BaseURL)
		if err != nil {
			return nil, err
		}
		if seen[rel] {
			continue
		}
		seen[rel] = true

		data, systemID, err := resolver.FetchDocument(j.baseSystemID, j.location)
		if err != nil {
			return nil, err
		}
		f.logger.Debug("fetched schema document", "url", systemID)

		dest := filepath.Join(destDir, filepath.FromSlash(rel))
		if err := os.MkdirAll(filepath.Dir(dest), 0o755); err != nil {
			return nil, err
		}
		if err := os.WriteFile(dest, data, 0o644); err != nil {
			return nil, err
		}
		written = append(written, dest)

		for _, loc := range schemaLocations(data) {
			if isAbsoluteLocation(loc) {
				// Foreign-origin imports (e.g. xml.xsd from w3.org) are left
				// to their canonical hosts.
				f.logger.Debug("skipping absolute schema location", "location", loc)
				continue
			}
			queue = append(queue, job{location: loc, baseSystemID: systemID})
		}
	}

	return written, nil
}

// schemaLocations extracts the schemaLocation attribute of every xs:include
// and xs:import element in doc. A document that does not parse yields none.
func schemaLocations(doc []byte) []string {
	var out []string
	dec := xml.NewDecoder(bytes.NewReader(doc))
	for {
		tok, err := dec.Token()
		if err != nil {
			return out
		}
		start, ok := tok.(xml.StartElement)
		if !ok {
			continue
		}
		if start.Name.Space != xsdNamespace {
			continue
		}
		if start.Name.Local != "include" && start.Name.Local != "import" &&
			start.Name.Local != "redefine" {
			continue
		}
		for _, attr := range start.Attr {
			if attr.Name.Local == "schemaLocation" && attr.Value != "" {
				out = append(out, attr.Value)
			}
		}
	}
}

func isAbsoluteLocation(location string) bool {
	u, err := url.Parse(location)
	return err == nil && u.IsAbs()
}

// treePath maps a schemaLocation to a path relative to the tree root,
// rejecting locations that would escape destDir.
func treePath(location, baseSystemID, baseURL string) (string, error) {
	full := location
	if baseSystemID != "" {
		parent, err := url.Parse(baseSystemID)
		if err == nil && parent.IsAbs() {
			loc, err := url.Parse(location)
			if err != nil {
				return "", &InvalidSchemaLocationError{Location: location, Reason: err.Error()}
			}
			resolved := parent.ResolveReference(loc).String()
			base := strings.TrimSuffix(baseURL, "/") + "/"
			if !strings.HasPrefix(resolved, base) {
				return "", &InvalidSchemaLocationError{Location: location, Reason: "outside schema tree"}
			}
			full = strings.TrimPrefix(resolved, base)
		}
	}

	clean := path.Clean(full)
	if clean == ".." || strings.HasPrefix(clean, "../") || path.IsAbs(clean) {
		return "", &InvalidSchemaLocationError{Location: location, Reason: "escapes destination directory"}
	}
	return clean, nil
}
