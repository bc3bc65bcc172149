package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/unna97/topst/internal/report"
	"github.com/unna97/topst/internal/schema"
)

// ValidateRequest carries everything the validate command resolved from
// flags and arguments.
type ValidateRequest struct {
	Paths           []string
	Flavor          schema.Flavor // empty means detect per document
	Format          string        // "text" or "json"
	Verbose         bool
	UseColour       bool
	ContinueOnError bool
}

// Manager defines the business logic behind the CLI commands.
type Manager interface {
	ValidateFiles(ctx context.Context, req ValidateRequest) error
	WatchFiles(ctx context.Context, req ValidateRequest, readyChan chan<- struct{}) error
	FetchSchema(ctx context.Context, flavor schema.Flavor, destDir string) error
	Flavors() []schema.Definition
	Registry() *schema.Registry
}

// Ensure the interface is satisfied.
var _ Manager = (*LazyManager)(nil)

// LazyManager acts as a placeholder for a real Manager implementation,
// allowing for deferred initialization of dependencies.
type LazyManager struct {
	inner Manager
}

func (l *LazyManager) SetInner(m Manager) {
	l.inner = m
}

// HasInner returns true if the inner manager has been set.
// PersistentPreRunE uses it to skip initialization when already configured
// (e.g. in tests).
func (l *LazyManager) HasInner() bool {
	return l.inner != nil
}

func (l *LazyManager) check() Manager {
	if l.inner == nil {
		panic("LazyManager accessed before initialization; check command wiring.")
	}
	return l.inner
}

func (l *LazyManager) ValidateFiles(ctx context.Context, req ValidateRequest) error {
	return l.check().ValidateFiles(ctx, req)
}

func (l *LazyManager) WatchFiles(ctx context.Context, req ValidateRequest, readyChan chan<- struct{}) error {
	return l.check().WatchFiles(ctx, req, readyChan)
}

func (l *LazyManager) FetchSchema(ctx context.Context, flavor schema.Flavor, destDir string) error {
	return l.check().FetchSchema(ctx, flavor, destDir)
}

func (l *LazyManager) Flavors() []schema.Definition {
	return l.check().Flavors()
}

func (l *LazyManager) Registry() *schema.Registry {
	return l.check().Registry()
}

// Ensure the interface is satisfied.
var _ Manager = (*CLIManager)(nil)

// CLIManager is the concrete implementation of the Manager interface.
type CLIManager struct {
	logger         *slog.Logger
	registry       *schema.Registry
	fetcher        *schema.Fetcher
	defaultFlavor  schema.Flavor
	reporterWriter io.Writer

	// maxParallel bounds concurrent document validation in a batch.
	maxParallel int
}

func NewCLIManager(
	l *slog.Logger,
	r *schema.Registry,
	f *schema.Fetcher,
	defaultFlavor schema.Flavor,
) *CLIManager {
	return &CLIManager{
		logger:         l,
		registry:       r,
		fetcher:        f,
		defaultFlavor:  defaultFlavor,
		reporterWriter: os.Stdout,
		maxParallel:    4,
	}
}

func (m *CLIManager) Registry() *schema.Registry {
	return m.registry
}

func (m *CLIManager) Flavors() []schema.Definition {
	return schema.Definitions()
}

func (m *CLIManager) ValidateFiles(ctx context.Context, req ValidateRequest) error {
	rep, err := m.runValidation(ctx, req)
	if err != nil {
		return err
	}
	if err := m.writeReport(rep, req); err != nil {
		return err
	}
	if n := rep.Failures(); n > 0 {
		return &ValidationFailedError{Invalid: n}
	}
	return nil
}

// runValidation validates every requested file and collects the outcomes.
// Results keep the order of the request regardless of scheduling.
func (m *CLIManager) runValidation(ctx context.Context, req ValidateRequest) (*report.Report, error) {
	rep := &report.Report{StartTime: time.Now()}

	if !req.ContinueOnError {
		// Stopping at the first failure is inherently sequential.
		for _, path := range req.Paths {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
			res := m.validateOne(path, req.Flavor)
			rep.Results = append(rep.Results, res)
			if !res.Valid {
				break
			}
		}
		rep.EndTime = time.Now()
		return rep, nil
	}

	// With --continue-on-error every document is validated regardless, so
	// the batch can run in parallel. Each worker owns a distinct index.
	results := make([]report.Result, len(req.Paths))
	g := &errgroup.Group{}
	g.SetLimit(m.maxParallel)
	for i, path := range req.Paths {
		g.Go(func() error {
			results[i] = m.validateOne(path, req.Flavor)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	rep.Results = results
	rep.EndTime = time.Now()
	return rep, nil
}

// validateOne runs the full pipeline for a single document: read, resolve
// flavor, look up (or build) the validator, validate.
func (m *CLIManager) validateOne(path string, flavor schema.Flavor) report.Result {
	res := report.Result{Path: path, Flavor: flavor}

	data, err := os.ReadFile(path)
	if err != nil {
		res.Message = err.Error()
		return res
	}

	if res.Flavor == "" {
		detected, err := schema.DetectFlavor(data, path)
		if err != nil {
			if m.defaultFlavor == "" {
				res.Message = err.Error()
				return res
			}
			detected = m.defaultFlavor
		}
		res.Flavor = detected
	}

	v, err := m.registry.Validator(res.Flavor)
	if err != nil {
		res.Message = err.Error()
		return res
	}

	m.logger.Debug("validating document", "path", path, "flavor", res.Flavor)
	if err := v.Validate(data); err != nil {
		res.Message = err.Error()
		return res
	}

	res.Valid = true
	return res
}

func (m *CLIManager) writeReport(rep *report.Report, req ValidateRequest) error {
	var reporter report.Reporter
	switch req.Format {
	case "json":
		reporter = &report.JSONReporter{}
	default:
		reporter = &report.TextReporter{Verbose: req.Verbose, UseColour: req.UseColour}
	}
	return reporter.Write(m.reporterWriter, rep)
}

func (m *CLIManager) WatchFiles(ctx context.Context, req ValidateRequest, readyChan chan<- struct{}) error {
	// Initial pass; failures do not stop the watch.
	if err := m.ValidateFiles(ctx, req); err != nil {
		var vfe *ValidationFailedError
		if !errors.As(err, &vfe) {
			return err
		}
	}

	watcher, err := schema.NewWatcher(req.Paths, m.logger)
	if err != nil {
		return err
	}
	if readyChan != nil {
		go func() {
			<-watcher.Ready
			close(readyChan)
		}()
	}

	return watcher.Watch(ctx, func(path string) {
		single := req
		single.Paths = []string{path}
		single.ContinueOnError = true
		if err := m.ValidateFiles(ctx, single); err != nil {
			var vfe *ValidationFailedError
			if !errors.As(err, &vfe) {
				m.logger.Error("revalidation failed", "path", path, "error", err)
			}
		}
	})
}

func (m *CLIManager) FetchSchema(ctx context.Context, flavor schema.Flavor, destDir string) error {
	d, err := m.registry.Definition(flavor)
	if err != nil {
		return err
	}

	m.logger.Debug("fetching schema tree", "flavor", flavor, "base", d.BaseURL, "dest", destDir)
	written, err := m.fetcher.Fetch(d, destDir)
	if err != nil {
		return err
	}

	fmt.Fprintf(m.reporterWriter, "Fetched %d schema document(s) for %s into %s\n",
		len(written), flavor, destDir)
	return nil
}
