// Command jayd is the compositor process entrypoint: it wires the
// dispatch core, the scene tree, the connector lifecycle state machine,
// and the Unix socket acceptor into one running engine, then blocks
// until a signal or a fatal subsystem error.
//
// Grounded on original_source/src/main.rs's main_(): that function
// enumerates distinct fallible init steps (clientmem, EventLoop,
// sighand, Wheel, AsyncEngine, Acceptor, the xorg backend) each wrapped
// in its own MainError variant, then runs the event loop until error.
// run() below reproduces the same enumerated sequence and the same
// "any init failure is fatal, exit 1; a clean shutdown signal exits 0"
// policy (spec.md §6/§7), adapted onto Go's explicit error returns
// instead of thiserror's #[from] chain.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/jaywm/jayd/internal/async"
	"github.com/jaywm/jayd/internal/backend"
	"github.com/jaywm/jayd/internal/backend/xorg"
	"github.com/jaywm/jayd/internal/config"
	"github.com/jaywm/jayd/internal/globals"
	"github.com/jaywm/jayd/internal/ifaces/primaryselection"
	"github.com/jaywm/jayd/internal/ifaces/wlcompositor"
	_ "github.com/jaywm/jayd/internal/ifaces/wloutput"
	_ "github.com/jaywm/jayd/internal/ifaces/wlregistry"
	"github.com/jaywm/jayd/internal/ifaces/wlseat"
	"github.com/jaywm/jayd/internal/ifaces/wlshm"
	"github.com/jaywm/jayd/internal/ifaces/xdgshell"
	"github.com/jaywm/jayd/internal/render"
	"github.com/jaywm/jayd/internal/render/webgpu"
	"github.com/jaywm/jayd/internal/scene"
	"github.com/jaywm/jayd/internal/transport"
)

var (
	socketPath  string
	configPath  string
	backendName string
	logLevel    string
)

var rootCmd = &cobra.Command{
	Use:   "jayd",
	Short: "A Wayland compositor core",
	RunE: func(cmd *cobra.Command, args []string) error {
		return run()
	},
}

func init() {
	rootCmd.Flags().StringVar(&socketPath, "socket", defaultSocketPath(), "Unix socket path to listen on")
	rootCmd.Flags().StringVar(&configPath, "config", "", "optional YAML policy file")
	rootCmd.Flags().StringVar(&backendName, "backend", "xorg", "connector backend to use (xorg, headless)")
	rootCmd.Flags().StringVar(&logLevel, "log-level", "info", "log level (debug, info, warn, error)")
}

func defaultSocketPath() string {
	dir := os.Getenv("XDG_RUNTIME_DIR")
	if dir == "" {
		dir = os.TempDir()
	}
	return dir + "/jayd-0"
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func newLogger() zerolog.Logger {
	level, err := zerolog.ParseLevel(logLevel)
	if err != nil {
		level = zerolog.InfoLevel
	}
	return zerolog.New(os.Stderr).Level(level).With().Timestamp().Logger()
}

// run reproduces original_source/src/main.rs's main_(): a sequence of
// independently fallible subsystem initializations, each named so a
// failure's log line says exactly which one broke, ending in the
// engine's run loop. Returns a non-nil error for any init failure
// (mapped to exit 1 by Execute); a signal-requested shutdown returns
// nil (exit 0).
func run() error {
	log := newLogger()

	// clientmem: the Rust original's client-memory init step, which
	// prepares shared-memory access at startup. This compositor core
	// never maps client memory itself (spec.md §1 Non-goals), so there
	// is nothing to fail here; kept as a named, explicit no-op step so
	// the enumerated sequence stays visible rather than silently
	// collapsing two steps into one.
	log.Debug().Msg("clientmem: ok (no-op, shm mapping out of scope)")

	ctx, cancel := signalContext()
	defer cancel()

	engine := async.New(256)

	sockAddr := socketPath
	acceptor := &transport.Acceptor{
		SocketPath: sockAddr,
		Engine:     engine,
		Log:        log.With().Str("subsystem", "acceptor").Logger(),
	}

	reg := globals.New(acceptor.Broadcast)
	acceptor.Globals = reg
	reg.InsertNoBroadcast(wlcompositor.CompositorInterfaceName, 4, true)
	reg.InsertNoBroadcast(wlshm.ShmInterfaceName, 1, true)
	reg.InsertNoBroadcast(xdgshell.WmBaseInterfaceName, 3, true)
	reg.InsertNoBroadcast(wlseat.SeatInterfaceName, 7, true)
	reg.InsertNoBroadcast(primaryselection.ManagerInterfaceName, 1, true)

	state := backend.NewState(engine, reg)
	state.Log = log.With().Str("subsystem", "backend").Logger()

	renderer := newRenderer(backendName, state.Log)
	state.OnDamage = func() {
		state.Root.Render(renderer, 0, 0)
	}

	if configPath != "" {
		file, err := config.Load(configPath)
		if err != nil {
			return fmt.Errorf("config: %w", err)
		}
		state.SetConfig(&config.Configurator{File: file, Log: state.Log})
	}

	if err := acceptor.Listen(); err != nil {
		return fmt.Errorf("acceptor: %w", err)
	}
	defer acceptor.Close()
	log.Info().Str("socket", sockAddr).Msg("acceptor: listening")

	conn, err := newBackendConnector(backendName)
	if err != nil {
		return fmt.Errorf("backend: %w", err)
	}
	engine.Schedule(func() {
		backend.Handle(state, conn)
	})

	serveErr := make(chan error, 1)
	go func() { serveErr <- acceptor.Serve(ctx) }()

	log.Info().Msg("event loop: running")
	engine.Run(ctx)

	select {
	case err := <-serveErr:
		if err != nil && ctx.Err() == nil {
			return fmt.Errorf("event loop: %w", err)
		}
	default:
	}

	log.Info().Msg("shutdown: clean")
	return nil
}

// signalContext returns a context canceled on SIGINT/SIGTERM, the
// clean-shutdown path (exit 0) spec.md §6 distinguishes from a fatal
// subsystem error (exit 1). Grounded on original_source's sighand
// module: a dedicated, named signal-handling step installed once at
// startup rather than scattered ad hoc handlers.
func signalContext() (context.Context, context.CancelFunc) {
	ctx, cancel := context.WithCancel(context.Background())
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigCh
		cancel()
	}()
	return ctx, cancel
}

// newBackendConnector constructs the concrete Connector for name,
// mirroring original_source/src/main.rs's XorgBackend::new(&state)
// call — the one concrete backend wired at main() while every other
// layer only ever sees the backend.Connector interface.
func newBackendConnector(name string) (backend.Connector, error) {
	switch name {
	case "xorg":
		return xorg.New(), nil
	case "headless":
		return xorg.NewHeadless(), nil
	default:
		return nil, fmt.Errorf("unknown backend %q", name)
	}
}

// newRenderer selects the scene.Renderer state.OnDamage drives. The
// headless backend never has a real surface to draw into, so it gets
// render.NopRenderer; every other backend gets the thin webgpu.Renderer
// (internal/render/webgpu), which clears each visible output to a flat
// color without a SurfaceProvider — there is no window-handle source
// wired in yet, so every RenderOutput call is a harmless no-op until
// one is.
func newRenderer(backendName string, log zerolog.Logger) scene.Renderer {
	if backendName == "headless" {
		return render.NopRenderer{}
	}
	return webgpu.New(nil, nil)
}
