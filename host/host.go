// Package host serves local adapters over the remote wire protocol,
// so that a remote.Client elsewhere can use them.
package host

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/patrickmn/go-cache"
	"github.com/resolver-cli/resolver/identity"
	"github.com/resolver-cli/resolver/log"
	"github.com/resolver-cli/resolver/provider"
	"github.com/resolver-cli/resolver/provider/remote"
	"github.com/resolver-cli/resolver/source"
	"github.com/samber/lo"
)

// SourceTTL is how long a resolved adapter is kept before it is built again.
// Scripted adapters are reloaded from disk on the next call after that.
const SourceTTL = 10 * time.Minute

// Server exposes every adapter of a resolver at /providers/<name>/rpc/<method>.
type Server struct {
	resolver *provider.Resolver
	engine   *gin.Engine
	sources  *cache.Cache
}

// New returns a server for the local adapters of resolver.
func New(resolver *provider.Resolver) *Server {
	return newServer(resolver, SourceTTL)
}

func newServer(resolver *provider.Resolver, ttl time.Duration) *Server {
	gin.SetMode(gin.ReleaseMode)

	s := &Server{
		resolver: resolver,
		engine:   gin.New(),
		sources:  cache.New(ttl, min(ttl, time.Minute)),
	}
	s.sources.OnEvicted(func(_ string, value any) {
		value.(*lease).evict()
	})
	s.engine.Use(gin.Recovery(), requestLogger())

	s.engine.GET("/providers", s.list)
	s.engine.POST("/providers/:name/rpc/:method", s.call)
	s.engine.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, remote.Envelope[struct{}]{Error: &remote.Error{
			Kind:    remote.KindUnknownMethod,
			Message: c.Request.Method + " " + c.Request.URL.Path,
		}})
	})

	return s
}

// Handler is the HTTP handler of the server.
func (s *Server) Handler() http.Handler {
	return s.engine
}

// Run serves on address until ctx is done.
func (s *Server) Run(ctx context.Context, address string) error {
	server := &http.Server{
		Addr:              address,
		Handler:           s.engine,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errs := make(chan error, 1)
	go func() {
		log.Infof("serving providers on %s", address)
		errs <- server.ListenAndServe()
	}()

	select {
	case err := <-errs:
		return err
	case <-ctx.Done():
		defer s.Close()

		shutdown, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdown); err != nil {
			return err
		}
		if err := <-errs; !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	}
}

// Close releases every cached adapter. Adapters still serving a request are
// closed when that request is done.
func (s *Server) Close() {
	for name := range s.sources.Items() {
		s.sources.Delete(name)
	}
}

// source resolves a local adapter, reusing the last one built for name.
// The caller must call release once it no longer uses the adapter.
func (s *Server) source(name string) (src source.Source, release func(), err error) {
	if cached, ok := s.sources.Get(name); ok {
		if l := cached.(*lease); l.acquire() {
			return l.src, l.release, nil
		}
	}

	src, err = s.resolver.Resolve(identity.Local(name))
	if err != nil {
		return nil, nil, err
	}

	l := &lease{src: src, users: 1}
	if err := s.sources.Add(name, l, cache.DefaultExpiration); err != nil {
		// another request cached name first, this adapter serves one call only
		l.evicted = true
	}
	return src, l.release, nil
}

func (s *Server) list(c *gin.Context) {
	names := lo.FilterMap(s.resolver.Identities(), func(id identity.Provider, _ int) (string, bool) {
		return id.RawValue(), id.IsLocal()
	})
	c.JSON(http.StatusOK, remote.Envelope[[]string]{Result: &names})
}

func (s *Server) call(c *gin.Context) {
	name := c.Param("name")

	src, release, err := s.source(name)
	if err != nil {
		fail(c, &remote.Error{Kind: remote.KindUnknownProvider, Message: err.Error()})
		return
	}
	defer release()

	var req remote.Request
	if c.Request.ContentLength != 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			fail(c, &remote.Error{Kind: remote.KindDecode, Message: err.Error()})
			return
		}
	}

	ctx := c.Request.Context()

	switch method := c.Param("method"); method {
	case remote.MethodLatestMovies:
		respond[[]source.Entry](c)(src.LatestMovies(ctx, req.Page))
	case remote.MethodLatestShows:
		respond[[]source.Entry](c)(src.LatestShows(ctx, req.Page))
	case remote.MethodSearch:
		respond[[]source.Entry](c)(src.Search(ctx, req.Keyword, req.Page))
	case remote.MethodHome:
		respond[[]source.Section](c)(src.Home(ctx))
	case remote.MethodMovieDetails:
		respond[source.Movie](c)(src.MovieDetails(ctx, req.URL))
	case remote.MethodShowDetails:
		respond[source.Show](c)(src.ShowDetails(ctx, req.URL))
	default:
		fail(c, &remote.Error{Kind: remote.KindUnknownMethod, Message: method})
	}
}

// respond writes the outcome of an adapter call as an envelope.
func respond[T any](c *gin.Context) func(T, error) {
	return func(result T, err error) {
		if err != nil {
			fail(c, remote.EncodeError(err))
			return
		}
		c.JSON(http.StatusOK, remote.Envelope[T]{Result: &result})
	}
}

func fail(c *gin.Context, wire *remote.Error) {
	c.JSON(remote.StatusOf(wire.Kind), remote.Envelope[struct{}]{Error: wire})
}

func requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		log.With(log.Fields{
			"method":   c.Request.Method,
			"path":     c.Request.URL.Path,
			"status":   c.Writer.Status(),
			"duration": time.Since(start).String(),
		}).Info("request")
	}
}
