package oak

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/oakui/oak/retained"
)

func TestAppRunExitsWhenAllWindowsClose(t *testing.T) {
	b := newStubBackend()
	b.events <- InputEvent{Kind: InputCloseRequest}
	close(b.events)

	app := NewApp(DefaultConfig())
	w := app.NewWindow("main", b)
	w.SetContent(twoButtons())

	if err := app.Run(context.Background()); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if !w.Closed() {
		t.Fatal("window not closed")
	}
	if !b.closed {
		t.Fatal("backend not released on shutdown")
	}
}

func TestAppRunHonorsContextCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	app := NewApp(DefaultConfig())
	app.NewWindow("main", newStubBackend())

	if err := app.Run(ctx); !errors.Is(err, context.Canceled) {
		t.Fatalf("Run = %v, want context.Canceled", err)
	}
}

func TestAppQuitUnwindsCleanly(t *testing.T) {
	app := NewApp(DefaultConfig())
	app.NewWindow("main", newStubBackend())
	app.Quit()
	if err := app.Run(context.Background()); err != nil {
		t.Fatalf("Run after Quit = %v, want nil", err)
	}
}

func TestAppPostRunsOnUILoop(t *testing.T) {
	app := NewApp(DefaultConfig())
	ran := false
	app.Post(func() {
		ran = true
	})
	// With no open windows the loop exits after draining the queue.
	if err := app.Run(context.Background()); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if !ran {
		t.Fatal("posted closure never ran")
	}
}

func TestAppRunDispatchesBackendInput(t *testing.T) {
	rootID := retained.DeriveID(0, "root")
	aPath := retained.IDPath{rootID, retained.DeriveID(rootID, "a")}

	b := newStubBackend()
	b.events <- InputEvent{Kind: InputPointerMove, X: 10, Y: 10}
	b.events <- InputEvent{Kind: InputCloseRequest}
	close(b.events)

	app := NewApp(DefaultConfig())
	w := app.NewWindow("main", b)
	w.SetContent(twoButtons())

	if err := app.Run(context.Background()); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if !w.Router().HotPath().Equal(aPath) {
		t.Fatalf("hot = %v, want the first button", w.Router().HotPath())
	}
}

func TestAppPersistsWindowStateAcrossRuns(t *testing.T) {
	cfg := DefaultConfig()
	cfg.StatePath = filepath.Join(t.TempDir(), "state.db")

	b := newStubBackend()
	b.events <- InputEvent{Kind: InputResize, Width: 320, Height: 240}
	b.events <- InputEvent{Kind: InputCloseRequest}
	close(b.events)

	app := NewApp(cfg)
	w := app.NewWindow("main", b)
	w.SetContent(twoButtons())
	if err := app.Run(context.Background()); err != nil {
		t.Fatalf("Run: %v", err)
	}

	app2 := NewApp(cfg)
	w2 := app2.NewWindow("main", newStubBackend())
	if w2.Size() != (retained.Size{Width: 320, Height: 240}) {
		t.Fatalf("restored size = %v, want 320x240", w2.Size())
	}
	if app2.db == nil {
		t.Fatal("state db not opened on the second run")
	}
	if err := app2.db.Close(); err != nil {
		t.Fatal(err)
	}
}
