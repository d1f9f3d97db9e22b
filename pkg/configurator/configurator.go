package configurator

import (
	"context"
	"io/fs"
	"log/slog"
	"sync"

	"github.com/getmockd/configurator/pkg/cache"
	"github.com/getmockd/configurator/pkg/loader"
	"github.com/getmockd/configurator/pkg/logging"
	"github.com/getmockd/configurator/pkg/template"
)

// FileOptions controls how Configure reads a template file.
type FileOptions struct {
	// Encoding of the file on disk. Empty means utf-8.
	Encoding string `json:"encoding,omitempty" yaml:"encoding,omitempty"`

	// Cache stores the file content on first read and serves it on later
	// calls until ClearCache is called.
	Cache bool `json:"cache,omitempty" yaml:"cache,omitempty"`
}

// DefaultFileOptions returns the options used when none are passed.
func DefaultFileOptions() FileOptions {
	return FileOptions{Encoding: loader.DefaultEncoding}
}

// Configurator renders template files and strings.
type Configurator struct {
	engine *template.Engine
	cache  cache.Store
	logger *slog.Logger
	fsys   fs.FS
}

// Option configures a Configurator.
type Option func(*Configurator)

// WithEngine sets the template engine.
func WithEngine(e *template.Engine) Option {
	return func(c *Configurator) {
		if e != nil {
			c.engine = e
		}
	}
}

// WithCache sets the file content cache.
func WithCache(s cache.Store) Option {
	return func(c *Configurator) {
		if s != nil {
			c.cache = s
		}
	}
}

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Configurator) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// WithFS reads template files from fsys instead of the operating system.
func WithFS(fsys fs.FS) Option {
	return func(c *Configurator) {
		c.fsys = fsys
	}
}

// New creates a Configurator. Without options it reads from the operating
// system, caches in memory and discards logs.
func New(opts ...Option) *Configurator {
	c := &Configurator{
		cache:  cache.NewMemory(),
		logger: logging.Nop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.engine == nil {
		c.engine = template.New(template.WithLogger(c.logger))
	}
	return c
}

// Engine returns the template engine.
func (c *Configurator) Engine() *template.Engine {
	return c.engine
}

// Cache returns the file content cache.
func (c *Configurator) Cache() cache.Store {
	return c.cache
}

// Configure reads the template at path and renders it against data.
// A nil opts uses DefaultFileOptions.
func (c *Configurator) Configure(ctx context.Context, path string, data template.Context, opts *FileOptions) (string, error) {
	content, err := c.load(ctx, path, opts)
	if err != nil {
		return "", err
	}
	return c.engine.Process(content, data)
}

// ConfigureString renders an in-memory template against data.
func (c *Configurator) ConfigureString(input string, data template.Context) (string, error) {
	return c.engine.Process(input, data)
}

// Check reads the template at path and validates its header and every
// inline rule without rendering.
func (c *Configurator) Check(ctx context.Context, path string, opts *FileOptions) (*template.Summary, error) {
	content, err := c.load(ctx, path, opts)
	if err != nil {
		return nil, err
	}
	return c.engine.Check(content)
}

// ClearCache removes every cached file.
func (c *Configurator) ClearCache() {
	n := c.cache.Len()
	c.cache.Clear()
	c.logger.Debug("cache cleared", "entries", n)
}

// Invalidate removes the cached content for path.
func (c *Configurator) Invalidate(path string) bool {
	return c.cache.Delete(path)
}

// load returns the template content for path. A cached entry is served
// whether or not opts requests caching.
func (c *Configurator) load(ctx context.Context, path string, opts *FileOptions) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	o := DefaultFileOptions()
	if opts != nil {
		o = *opts
	}

	if content, ok := c.cache.Get(path); ok {
		c.logger.Debug("cache hit", "path", path)
		return content, nil
	}

	content, err := loader.Load(c.fsys, path, o.Encoding)
	if err != nil {
		return "", err
	}
	c.logger.Debug("template loaded", "path", path, "encoding", o.Encoding, "bytes", len(content))

	if o.Cache && c.cache.Set(path, content) {
		c.logger.Debug("cache stored", "path", path)
	}
	return content, nil
}

var (
	defaultOnce sync.Once
	defaultInst *Configurator
)

// Default returns the process-wide Configurator used by the package-level
// functions.
func Default() *Configurator {
	defaultOnce.Do(func() {
		defaultInst = New()
	})
	return defaultInst
}

// Configure renders the template at path using the default Configurator.
func Configure(ctx context.Context, path string, data template.Context, opts *FileOptions) (string, error) {
	return Default().Configure(ctx, path, data, opts)
}

// ConfigureString renders input using the default Configurator.
func ConfigureString(input string, data template.Context) (string, error) {
	return Default().ConfigureString(input, data)
}

// ClearCache clears the default Configurator's cache.
func ClearCache() {
	Default().ClearCache()
}
