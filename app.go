package oak

import (
	"context"
	"errors"

	"golang.org/x/sync/errgroup"

	"github.com/oakui/oak/retained"
	"github.com/oakui/oak/store"
)

// errQuit unwinds the run loop on a requested shutdown.
var errQuit = errors.New("oak: quit")

// App owns the UI goroutine, the windows, and the posted-message queue. The
// retained trees are confined to the goroutine running App.Run; code on
// other goroutines mutates UI state only by posting closures or addressed
// updates.
type App struct {
	cfg Config
	db  *store.DB

	windows []*Window
	posted  chan func()
	events  chan windowEvent
	quit    chan struct{}
}

type windowEvent struct {
	win *Window
	ev  InputEvent
}

// NewApp creates an application shell from a config. Window-state
// persistence opens lazily when a StatePath is configured; an unusable
// state database degrades to no persistence.
func NewApp(cfg Config) *App {
	applyLogLevel(cfg.LogLevel)
	a := &App{
		cfg:    cfg,
		posted: make(chan func(), 128),
		events: make(chan windowEvent, 256),
		quit:   make(chan struct{}),
	}
	if cfg.StatePath != "" {
		db, err := store.Open(cfg.StatePath)
		if err != nil {
			Logger().Warn("window state persistence disabled", "error", err)
		} else {
			a.db = db
		}
	}
	return a
}

// Config returns the app's effective configuration.
func (a *App) Config() Config { return a.cfg }

// NewWindow creates and registers a window over a backend, restoring its
// persisted geometry when available. Call before Run, or from the UI
// goroutine via Post.
func (a *App) NewWindow(name string, backend Backend) *Window {
	wc := a.cfg.Window
	var saved store.WindowState
	restored := false
	if a.db != nil {
		if st, ok, err := a.db.LoadWindow(name); err != nil {
			Logger().Warn("load window state", "window", name, "error", err)
		} else if ok {
			saved = st
			restored = true
			if st.Width > 0 && st.Height > 0 {
				wc.Width, wc.Height = st.Width, st.Height
			}
		}
	}
	w := NewWindow(name, wc, backend)
	w.router.SetDoubleClickInterval(a.cfg.DoubleClickInterval())
	if restored && len(saved.Scrolls) > 0 {
		w.pendingScrolls = saved.Scrolls
	}
	a.windows = append(a.windows, w)
	return w
}

// Post marshals a closure onto the UI goroutine. Safe to call from any
// goroutine; the closure runs between event batches, never concurrently
// with a dispatch or frame pass.
func (a *App) Post(fn func()) {
	select {
	case a.posted <- fn:
	case <-a.quit:
	}
}

// PostUpdate marshals an addressed mutation to one element: the update
// routes as an ordinary event along the ID path, so it can mark dirty
// flags and request rebuilds like any handler. A path that no longer
// resolves is logged and dropped.
func (a *App) PostUpdate(w *Window, path retained.IDPath, apply func(ctx *retained.EventCtx, el *retained.Element)) {
	target := path.Clone()
	a.Post(func() {
		w.router.RouteTo(target, &retained.UpdateEvent{Apply: apply})
	})
}

// Quit asks the run loop to shut down.
func (a *App) Quit() {
	select {
	case <-a.quit:
	default:
		close(a.quit)
	}
}

// Run drives the application until the context is canceled or Quit is
// called. One pump goroutine per window forwards backend input into the UI
// loop; the UI loop goroutine is the single owner of every tree. Events are
// drained in batches: a relayout+repaint frame runs only after the queue
// empties, observing the union of all drained dirty flags.
func (a *App) Run(ctx context.Context) error {
	g, ctx := errgroup.WithContext(ctx)

	for _, w := range a.windows {
		if w.backend == nil {
			continue
		}
		win := w
		g.Go(func() error {
			for {
				select {
				case ev, ok := <-win.backend.Events():
					if !ok {
						return nil
					}
					select {
					case a.events <- windowEvent{win: win, ev: ev}:
					case <-ctx.Done():
						return ctx.Err()
					case <-a.quit:
						return nil
					}
				case <-ctx.Done():
					return ctx.Err()
				case <-a.quit:
					return nil
				}
			}
		})
	}

	g.Go(func() error {
		defer a.shutdown()
		for {
			// Block until something arrives.
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-a.quit:
				return errQuit
			case fn := <-a.posted:
				fn()
			case we := <-a.events:
				a.handle(we)
			}

			// Drain whatever else queued up before framing.
		drain:
			for {
				select {
				case fn := <-a.posted:
					fn()
				case we := <-a.events:
					a.handle(we)
				default:
					break drain
				}
			}

			open := 0
			for _, w := range a.windows {
				if w.Closed() {
					continue
				}
				open++
				if w.NeedsFrame() {
					if err := w.Frame(); err != nil {
						Logger().Warn("frame failed", "window", w.name, "error", err)
					}
				}
			}
			if open == 0 {
				return errQuit
			}
		}
	})

	err := g.Wait()
	if errors.Is(err, errQuit) {
		return nil
	}
	return err
}

func (a *App) handle(we windowEvent) {
	if we.win.Closed() {
		return
	}
	we.win.HandleInput(we.ev)
}

// shutdown persists window state and releases backends. Runs on the UI
// goroutine as the run loop exits.
func (a *App) shutdown() {
	for _, w := range a.windows {
		if a.db != nil {
			st := store.WindowState{
				Width:   w.size.Width,
				Height:  w.size.Height,
				Scrolls: w.ScrollOffsets(),
			}
			if err := a.db.SaveWindow(w.name, st); err != nil {
				Logger().Warn("save window state", "window", w.name, "error", err)
			}
		}
		if w.backend != nil {
			if err := w.backend.Close(); err != nil {
				Logger().Warn("close backend", "window", w.name, "error", err)
			}
		}
	}
	if a.db != nil {
		if err := a.db.Close(); err != nil {
			Logger().Warn("close state db", "error", err)
		}
	}
}
