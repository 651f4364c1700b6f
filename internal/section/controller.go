// Package section binds navigation entries to section resources and keeps
// the per-path load cache.
package section

import (
	"context"
	"log/slog"

	"golang.org/x/sync/singleflight"

	"vocab-viewer/internal/loader"
	"vocab-viewer/internal/render"
	"vocab-viewer/internal/vocab"
)

// Entry is one navigation item and the resource it shows.
type Entry struct {
	Title string
	Path  string
}

// Controller tracks the active entry, loads sections through the cache and
// renders them onto a mount.
//
// Select, Start, Show and ShowSection touch the mount and must be called
// from the UI goroutine. Load and Cached are safe from any goroutine.
type Controller struct {
	entries  []Entry
	active   int
	loader   loader.Loader
	renderer *render.Renderer
	mount    render.Mount
	cache    *Cache[[]vocab.Block]
	inflight singleflight.Group
	logger   *slog.Logger
}

// New creates a controller with an empty session cache.
func New(entries []Entry, l loader.Loader, r *render.Renderer, mount render.Mount, logger *slog.Logger) *Controller {
	if logger == nil {
		logger = slog.Default()
	}
	return &Controller{
		entries:  append([]Entry(nil), entries...),
		active:   -1,
		loader:   l,
		renderer: r,
		mount:    mount,
		cache:    NewCache[[]vocab.Block](),
		logger:   logger,
	}
}

// Entries returns the navigation entries in display order.
func (c *Controller) Entries() []Entry {
	return append([]Entry(nil), c.entries...)
}

// Add appends a navigation entry unless its path is already listed.
func (c *Controller) Add(e Entry) bool {
	for _, existing := range c.entries {
		if existing.Path == e.Path {
			return false
		}
	}
	c.entries = append(c.entries, e)
	return true
}

// Active returns the index of the active entry, or -1.
func (c *Controller) Active() int {
	return c.active
}

// ActiveEntry returns the active entry.
func (c *Controller) ActiveEntry() (Entry, bool) {
	if c.active < 0 || c.active >= len(c.entries) {
		return Entry{}, false
	}
	return c.entries[c.active], true
}

// IsActive reports whether path belongs to the active entry.
func (c *Controller) IsActive(path string) bool {
	e, ok := c.ActiveEntry()
	return ok && e.Path == path
}

// Activate makes entry i the only active entry.
func (c *Controller) Activate(i int) (Entry, bool) {
	if i < 0 || i >= len(c.entries) {
		return Entry{}, false
	}
	c.active = i
	return c.entries[i], true
}

// Cache exposes the session cache.
func (c *Controller) Cache() *Cache[[]vocab.Block] {
	return c.cache
}

// Cached returns the blocks already loaded for path.
func (c *Controller) Cached(path string) ([]vocab.Block, bool) {
	return c.cache.Get(path)
}

// Load returns the blocks for path, fetching and caching them on first use.
// Concurrent loads of one path share a single fetch. Failures are logged
// and leave the cache untouched.
func (c *Controller) Load(ctx context.Context, path string) ([]vocab.Block, error) {
	v, err, _ := c.inflight.Do(path, func() (any, error) {
		if blocks, ok := c.cache.Get(path); ok {
			return blocks, nil
		}
		blocks, err := c.loader.Load(ctx, path)
		if err != nil {
			return nil, err
		}
		c.cache.Set(path, blocks)
		return blocks, nil
	})
	if err != nil {
		c.logger.Error("failed to load section", "path", path, "err", err)
		return nil, err
	}
	return v.([]vocab.Block), nil
}

// Show renders blocks onto the mount, replacing what was there.
func (c *Controller) Show(blocks []vocab.Block) {
	c.renderer.Render(blocks, c.mount)
}

// ShowSection shows path, reusing cached blocks without fetching. On a
// failed load the mount keeps its previous content.
func (c *Controller) ShowSection(ctx context.Context, path string) error {
	if blocks, ok := c.cache.Get(path); ok {
		c.Show(blocks)
		return nil
	}

	blocks, err := c.Load(ctx, path)
	if err != nil {
		return err
	}
	c.Show(blocks)
	return nil
}

// Selection is the outcome of selecting an entry. When Pending is set the
// section is not cached yet: the caller loads Entry.Path and shows the result
// only if the entry is still active. Otherwise Blocks are already on the
// mount.
type Selection struct {
	Entry   Entry
	Blocks  []vocab.Block
	Pending bool
}

// Select activates entry i and shows its section straight from the cache
// when possible. It never fetches, so it is safe on the UI goroutine.
func (c *Controller) Select(i int) (Selection, bool) {
	e, ok := c.Activate(i)
	if !ok {
		return Selection{}, false
	}
	if blocks, ok := c.cache.Get(e.Path); ok {
		c.Show(blocks)
		return Selection{Entry: e, Blocks: blocks}, true
	}
	return Selection{Entry: e, Pending: true}, true
}

// Start selects the first entry, as if the user had picked it. It reports
// false when there are no entries.
func (c *Controller) Start() (Selection, bool) {
	return c.Select(0)
}
