// Package cache keeps provider listings on disk for a limited time, so repeated
// browsing of the same page does not hit the provider again.
package cache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/resolver-cli/resolver/filesystem"
	"github.com/resolver-cli/resolver/log"
	"github.com/resolver-cli/resolver/source"
	"github.com/resolver-cli/resolver/where"
)

func dir() string {
	return filepath.Join(where.Cache(), "listings")
}

// Key derives a stable file name from the parts of a call.
func Key(parts ...string) string {
	sum := sha256.Sum256([]byte(strings.Join(parts, "\x00")))
	return hex.EncodeToString(sum[:])
}

// Read decodes the entry stored under key unless it is missing, unreadable or older than ttl.
func Read[T any](key string, ttl time.Duration) (T, bool) {
	var value T
	path := filepath.Join(dir(), key)

	info, err := filesystem.API().Stat(path)
	if err != nil || time.Since(info.ModTime()) > ttl {
		return value, false
	}

	data, err := filesystem.API().ReadFile(path)
	if err != nil {
		return value, false
	}

	if err := json.Unmarshal(data, &value); err != nil {
		return value, false
	}
	return value, true
}

// Write stores value under key. The file is swapped in atomically.
func Write(key string, value any) error {
	data, err := json.Marshal(value)
	if err != nil {
		return err
	}

	if err := filesystem.API().MkdirAll(dir(), os.ModePerm); err != nil {
		return err
	}

	path := filepath.Join(dir(), key)
	tmp := path + ".tmp"
	if err := filesystem.API().WriteFile(tmp, data, 0o644); err != nil {
		return err
	}
	return filesystem.API().Rename(tmp, path)
}

// CollectGarbage removes entries older than ttl.
func CollectGarbage(ttl time.Duration) {
	root := dir()
	if exists, _ := filesystem.API().DirExists(root); !exists {
		return
	}

	_ = filesystem.API().Walk(root, func(path string, info os.FileInfo, err error) error {
		if err != nil || info.IsDir() {
			return nil
		}
		if time.Since(info.ModTime()) > ttl {
			_ = filesystem.API().Remove(path)
		}
		return nil
	})
}

// Wrap caches the listing calls of src for ttl. Details are never cached since
// their host links tend to expire. A non-positive ttl returns src unchanged.
func Wrap(src source.Source, ttl time.Duration) source.Source {
	if ttl <= 0 {
		return src
	}
	return &cached{Source: src, ttl: ttl}
}

type cached struct {
	source.Source
	ttl time.Duration
}

// Close releases the wrapped source.
func (c *cached) Close() {
	source.Close(c.Source)
}

func remember[T any](c *cached, method string, fetch func() (T, error), args ...string) (T, error) {
	key := Key(append([]string{c.ID().String(), method}, args...)...)

	if value, ok := Read[T](key, c.ttl); ok {
		log.Debugf("cache hit: %s %s", c.ID(), method)
		return value, nil
	}

	value, err := fetch()
	if err != nil {
		return value, err
	}

	if err := Write(key, value); err != nil {
		log.Warnf("cache write %s %s: %v", c.ID(), method, err)
	}
	return value, nil
}

func (c *cached) LatestMovies(ctx context.Context, page int) ([]source.Entry, error) {
	return remember(c, "latestMovies", func() ([]source.Entry, error) {
		return c.Source.LatestMovies(ctx, page)
	}, strconv.Itoa(page))
}

func (c *cached) LatestShows(ctx context.Context, page int) ([]source.Entry, error) {
	return remember(c, "latestShows", func() ([]source.Entry, error) {
		return c.Source.LatestShows(ctx, page)
	}, strconv.Itoa(page))
}

func (c *cached) Search(ctx context.Context, keyword string, page int) ([]source.Entry, error) {
	return remember(c, "search", func() ([]source.Entry, error) {
		return c.Source.Search(ctx, keyword, page)
	}, keyword, strconv.Itoa(page))
}

func (c *cached) Home(ctx context.Context) ([]source.Section, error) {
	return remember(c, "home", func() ([]source.Section, error) {
		return c.Source.Home(ctx)
	})
}
