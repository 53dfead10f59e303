package links

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"golang.org/x/sync/singleflight"

	"github.com/rionatty/ampower-visualize/internal/graph"
)

// fetchTimeout bounds one shared procedure run
const fetchTimeout = 30 * time.Second

// Service fetches linked documents and turns them into graphs
type Service struct {
	registry *Registry
	logger   *log.Logger
	opts     []graph.Option
	group    singleflight.Group
}

// NewService creates a service over a registry. Graph options apply to every
// graph the service builds.
func NewService(registry *Registry, logger *log.Logger, opts ...graph.Option) *Service {
	return &Service{
		registry: registry,
		logger:   logger,
		opts:     opts,
	}
}

// Registry returns the procedures the service dispatches to
func (s *Service) Registry() *Registry {
	return s.registry
}

// Links runs the procedure registered for doctype. Identical concurrent
// calls share one run.
func (s *Service) Links(ctx context.Context, doctype, name string) (*graph.LinksResponse, error) {
	doctype = strings.TrimSpace(doctype)
	name = strings.TrimSpace(name)
	if doctype == "" {
		return nil, fmt.Errorf("no document type specified: %w", graph.ErrEmptyInput)
	}
	if name == "" {
		return nil, fmt.Errorf("no document name specified: %w", graph.ErrEmptyInput)
	}

	proc, err := s.registry.Lookup(doctype)
	if err != nil {
		return nil, err
	}

	// The shared run outlives any single caller; each caller stops waiting
	// when its own context ends.
	ch := s.group.DoChan(doctype+"\x00"+name, func() (any, error) {
		fetchCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), fetchTimeout)
		defer cancel()
		return proc(fetchCtx, name)
	})

	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("fetching links of %s %s: %w", doctype, name, ctx.Err())
	case res := <-ch:
		if res.Err != nil {
			return nil, fmt.Errorf("fetching links of %s %s: %w", doctype, name, res.Err)
		}
		if res.Shared {
			s.logger.Debug("Shared link fetch", "doctype", doctype, "name", name)
		}
		return res.Val.(*graph.LinksResponse), nil
	}
}

// Graph fetches the links of a document and builds its graph. Skipped
// records are logged and the partial graph is returned.
func (s *Service) Graph(ctx context.Context, doctype, name string) (*graph.Graph, error) {
	resp, err := s.Links(ctx, doctype, name)
	if err != nil {
		return nil, err
	}
	return s.Build(resp, strings.TrimSpace(name))
}

// Build turns a procedure response into a graph rooted at rootName
func (s *Service) Build(resp *graph.LinksResponse, rootName string) (*graph.Graph, error) {
	if resp == nil {
		return nil, fmt.Errorf("no response: %w", graph.ErrEmptyInput)
	}
	g, err := graph.Build(resp.Items, rootName, s.opts...)
	if err != nil {
		return nil, err
	}
	for _, skipped := range g.Skipped {
		s.logger.Warn("Skipped linked record", "root", rootName, "err", skipped)
	}
	s.logger.Debug("Built graph", "root", rootName, "nodes", len(g.Nodes), "links", len(g.Links), "skipped", len(g.Skipped))
	return g, nil
}
