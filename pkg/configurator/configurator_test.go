package configurator

import (
	"bytes"
	"context"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/getmockd/configurator/pkg/cache"
	"github.com/getmockd/configurator/pkg/rule"
	"github.com/getmockd/configurator/pkg/template"
)

func writeTemplate(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

// =============================================================================
// Configure
// =============================================================================

func TestConfigure_File(t *testing.T) {
	dir := t.TempDir()
	path := writeTemplate(t, dir, "app.conf.in",
		`[header]{"list": {"arrayJoin": ","}}[header]hosts=@hosts:#list@ port=$port$`)

	c := New()
	out, err := c.Configure(context.Background(), path, template.Context{
		"hosts": []string{"a", "b"},
		"port":  8080,
	}, nil)
	require.NoError(t, err)
	assert.Equal(t, "hosts=a,b port=8080", out)
	assert.Equal(t, 0, c.Cache().Len(), "cache is off by default")
}

func TestConfigure_CacheServesStaleContent(t *testing.T) {
	dir := t.TempDir()
	path := writeTemplate(t, dir, "t.txt", "v1 @key@")
	c := New()
	ctx := context.Background()
	data := template.Context{"key": "x"}

	out, err := c.Configure(ctx, path, data, &FileOptions{Cache: true})
	require.NoError(t, err)
	assert.Equal(t, "v1 x", out)

	writeTemplate(t, dir, "t.txt", "v2 @key@")

	out, err = c.Configure(ctx, path, data, &FileOptions{Cache: true})
	require.NoError(t, err)
	assert.Equal(t, "v1 x", out)

	// cached entries are served even when caching is not requested
	out, err = c.Configure(ctx, path, data, &FileOptions{Cache: false})
	require.NoError(t, err)
	assert.Equal(t, "v1 x", out)

	c.ClearCache()
	out, err = c.Configure(ctx, path, data, nil)
	require.NoError(t, err)
	assert.Equal(t, "v2 x", out)
}

func TestConfigure_NoCacheReadsEveryTime(t *testing.T) {
	dir := t.TempDir()
	path := writeTemplate(t, dir, "t.txt", "one")
	c := New()
	ctx := context.Background()

	out, err := c.Configure(ctx, path, nil, nil)
	require.NoError(t, err)
	assert.Equal(t, "one", out)

	writeTemplate(t, dir, "t.txt", "two")
	out, err = c.Configure(ctx, path, nil, nil)
	require.NoError(t, err)
	assert.Equal(t, "two", out)
}

func TestConfigure_Invalidate(t *testing.T) {
	fsys := fstest.MapFS{"t.txt": {Data: []byte("a")}}
	c := New(WithFS(fsys))
	ctx := context.Background()

	_, err := c.Configure(ctx, "t.txt", nil, &FileOptions{Cache: true})
	require.NoError(t, err)

	fsys["t.txt"] = &fstest.MapFile{Data: []byte("b")}
	assert.True(t, c.Invalidate("t.txt"))
	assert.False(t, c.Invalidate("t.txt"))

	out, err := c.Configure(ctx, "t.txt", nil, nil)
	require.NoError(t, err)
	assert.Equal(t, "b", out)
}

func TestConfigure_Encoding(t *testing.T) {
	// "@k@" in UTF-16LE
	fsys := fstest.MapFS{"wide.txt": {Data: []byte{'@', 0, 'k', 0, '@', 0}}}
	c := New(WithFS(fsys))

	out, err := c.Configure(context.Background(), "wide.txt", template.Context{"k": "ok"}, &FileOptions{Encoding: "utf16le"})
	require.NoError(t, err)
	assert.Equal(t, "ok", out)
}

func TestConfigure_Errors(t *testing.T) {
	fsys := fstest.MapFS{
		"bad-header.txt": {Data: []byte("[header]{oops[header]x")},
		"bad-rule.txt":   {Data: []byte(`[header]{"r": {"padLeft": 1}}[header]@x:#r@`)},
	}
	c := New(WithFS(fsys))
	ctx := context.Background()

	t.Run("missing file", func(t *testing.T) {
		_, err := c.Configure(ctx, "missing.txt", nil, nil)
		require.Error(t, err)
		assert.ErrorIs(t, err, fs.ErrNotExist)
	})

	t.Run("parse error", func(t *testing.T) {
		_, err := c.Configure(ctx, "bad-header.txt", nil, nil)
		assert.True(t, rule.IsParseError(err))
	})

	t.Run("validation error", func(t *testing.T) {
		_, err := c.Configure(ctx, "bad-rule.txt", nil, nil)
		assert.True(t, rule.IsValidationError(err))
	})

	t.Run("unknown encoding", func(t *testing.T) {
		_, err := c.Configure(ctx, "bad-rule.txt", nil, &FileOptions{Encoding: "bogus"})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "unknown encoding")
	})

	t.Run("canceled context", func(t *testing.T) {
		cctx, cancel := context.WithCancel(ctx)
		cancel()
		_, err := c.Configure(cctx, "bad-rule.txt", nil, nil)
		assert.ErrorIs(t, err, context.Canceled)
	})

	t.Run("errors are not cached", func(t *testing.T) {
		_, err := c.Configure(ctx, "missing.txt", nil, &FileOptions{Cache: true})
		require.Error(t, err)
		_, ok := c.Cache().Get("missing.txt")
		assert.False(t, ok)
	})
}

func TestConfigureString(t *testing.T) {
	c := New()
	out, err := c.ConfigureString(`@mode:{"switch":{"cases":{"dev":"debug=@debug@"}}}@`, template.Context{
		"mode":  "dev",
		"debug": true,
	})
	require.NoError(t, err)
	assert.Equal(t, "debug=true", out)
}

func TestCheck(t *testing.T) {
	fsys := fstest.MapFS{
		"ok.txt":  {Data: []byte(`[header]{"a": {}}[header]@x:#a@ @y@`)},
		"bad.txt": {Data: []byte(`@x:{"nope": 1}@`)},
	}
	c := New(WithFS(fsys))

	sum, err := c.Check(context.Background(), "ok.txt", nil)
	require.NoError(t, err)
	assert.Equal(t, 1, sum.Rules)
	assert.Equal(t, 2, sum.Tokens)

	_, err = c.Check(context.Background(), "bad.txt", nil)
	assert.True(t, rule.IsValidationError(err))
}

// =============================================================================
// Options
// =============================================================================

func TestOptions(t *testing.T) {
	store := cache.NewMemory()
	engine := template.New(template.WithMaxDepth(3))

	c := New(WithCache(store), WithEngine(engine), WithLogger(nil), WithCache(nil))
	assert.Same(t, engine, c.Engine())
	assert.Same(t, store, c.Cache())
}

func TestCacheLogging(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
	fsys := fstest.MapFS{"t.txt": {Data: []byte("x")}}
	c := New(WithFS(fsys), WithLogger(logger))
	ctx := context.Background()

	_, err := c.Configure(ctx, "t.txt", nil, &FileOptions{Cache: true})
	require.NoError(t, err)
	_, err = c.Configure(ctx, "t.txt", nil, &FileOptions{Cache: true})
	require.NoError(t, err)
	c.ClearCache()

	logs := buf.String()
	assert.Contains(t, logs, "cache stored")
	assert.Contains(t, logs, "cache hit")
	assert.Contains(t, logs, "cache cleared")
}

// =============================================================================
// Default instance
// =============================================================================

func TestDefault(t *testing.T) {
	assert.Same(t, Default(), Default())

	dir := t.TempDir()
	path := writeTemplate(t, dir, "d.txt", "@a@")
	ctx := context.Background()

	out, err := Configure(ctx, path, template.Context{"a": "1"}, &FileOptions{Cache: true})
	require.NoError(t, err)
	assert.Equal(t, "1", out)

	writeTemplate(t, dir, "d.txt", "@a@@a@")
	out, err = Configure(ctx, path, template.Context{"a": "1"}, nil)
	require.NoError(t, err)
	assert.Equal(t, "1", out)

	ClearCache()
	out, err = Configure(ctx, path, template.Context{"a": "1"}, nil)
	require.NoError(t, err)
	assert.Equal(t, "11", out)

	out, err = ConfigureString("$a$", template.Context{"a": "2"})
	require.NoError(t, err)
	assert.Equal(t, "2", out)
}
