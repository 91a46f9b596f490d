// Package main is the entry point for the pilltoastd toast daemon.
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"sync/atomic"
	"syscall"

	"github.com/diamondburned/gotk4-adwaita/pkg/adw"
	"github.com/diamondburned/gotk4/pkg/glib/v2"
	"github.com/diamondburned/gotk4/pkg/gtk/v4"

	"github.com/jmylchreest/pilltoast/internal/audio"
	"github.com/jmylchreest/pilltoast/internal/config"
	"github.com/jmylchreest/pilltoast/internal/daemon"
	"github.com/jmylchreest/pilltoast/internal/dbus"
	"github.com/jmylchreest/pilltoast/internal/display"
	"github.com/jmylchreest/pilltoast/internal/layout"
	"github.com/jmylchreest/pilltoast/internal/style"
	"github.com/jmylchreest/pilltoast/internal/toast"
)

const (
	appID   = "io.github.jmylchreest.pilltoastd"
	appName = "pilltoastd"
)

var (
	// Build-time variables
	version = "dev"
)

func main() {
	configPath := flag.String("config", "", "Path to config file (default: ~/.config/pilltoast/config.toml)")
	verbose := flag.Bool("verbose", false, "Enable debug logging")
	showVersion := flag.Bool("version", false, "Show version and exit")
	flag.Parse()

	if *showVersion {
		fmt.Println(appName, "version", version)
		os.Exit(0)
	}

	level := slog.LevelInfo
	if *verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)

	os.Exit(run(*configPath, logger))
}

func run(configPath string, logger *slog.Logger) int {
	logger.Info("starting pilltoastd", "version", version)

	if configPath == "" {
		p, err := config.ConfigPath()
		if err != nil {
			logger.Error("failed to get config path", "error", err)
			return 1
		}
		configPath = p
	}
	cfg, err := config.Load(configPath)
	if err != nil {
		logger.Error("failed to load config", "error", err)
		return 1
	}

	app := adw.NewApplication(appID, 0)

	// Shared state between the GTK main loop and signal handlers
	var (
		server        *dbus.Server
		audioManager  *audio.Manager
		stylesheet    *display.Stylesheet
		configWatcher *config.Watcher
		running       atomic.Bool
	)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	stopAll := func() {
		if configWatcher != nil {
			configWatcher.Stop()
		}
		if stylesheet != nil {
			stylesheet.Stop()
		}
		if audioManager != nil {
			audioManager.Stop()
		}
		if server != nil {
			_ = server.Stop()
		}
	}

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigCh
		logger.Info("received signal, shutting down", "signal", sig)
		cancel()

		glib.IdleAdd(func() {
			if running.Load() {
				stopAll()
				running.Store(false)
			}
			app.Quit()
		})
	}()

	app.ConnectActivate(func() {
		if running.Load() {
			logger.Warn("application already running")
			return
		}
		running.Store(true)

		var measurer layout.Measurer = layout.CellMeasurer{}
		fonts, err := layout.NewFontMeasurer()
		if err != nil {
			logger.Warn("failed to load font, measuring in cells", "error", err)
		} else {
			measurer = fonts
		}

		styles := style.NewRegistry()
		executor := display.MainLoop{}
		platform := display.NewPlatform(&app.Application, cfg.Display, logger)
		audioManager = audio.NewManager(cfg.Audio, nil, logger)

		presenter := toast.NewPresenter(toast.Options{
			Platform: platform,
			Executor: executor,
			Animator: cfg.Animation.Animator(executor),
			Measurer: measurer,
			Styles:   styles,
			Logger:   logger,
			Hooks: toast.Hooks{
				OnState: func(id string, s toast.State) {
					if server == nil {
						return
					}
					if err := server.EmitStateChanged(id, s); err != nil {
						logger.Debug("failed to emit state change", "toast_id", id, "error", err)
					}
				},
				Sound: audioManager,
			},
		})

		server = dbus.NewServer(presenter, logger)
		notifier := daemon.NewNotifier(presenter, logger)

		stylesheet = display.NewStylesheet(measurer, cfg.Display, logger)
		if err := stylesheet.Attach(); err != nil {
			logger.Warn("failed to attach stylesheet", "error", err)
		}

		runtime := daemon.NewRuntime(daemon.RuntimeOptions{
			Styles:   styles,
			Sound:    audioManager,
			Server:   server,
			Notifier: notifier,
			Logger:   logger,
		})
		runtime.OnApply(func(c *config.Config) {
			platform.UpdateConfig(c.Display)
			stylesheet.Update(styles, c.Display)
		})
		if err := runtime.Apply(cfg); err != nil {
			logger.Error("failed to apply config", "error", err)
			app.Quit()
			return
		}

		stylesheet.WatchUser(ctx)
		if err := audioManager.Start(ctx); err != nil {
			logger.Warn("failed to start audio manager", "error", err)
		}

		if err := server.Start(); err != nil {
			logger.Error("failed to start D-Bus service", "error", err)
			stopAll()
			app.Quit()
			return
		}

		if cfg.Reload.Enabled {
			configWatcher, err = config.NewWatcher(configPath, logger)
			if err != nil {
				logger.Warn("failed to create config watcher", "error", err)
			} else {
				configWatcher.SetDebounce(cfg.Reload.Debounce.Duration())
				configWatcher.SetReloadCallback(func(newConfig *config.Config) {
					glib.IdleAdd(func() { runtime.Reload(newConfig) })
				})
				configWatcher.SetErrorCallback(func(err error) {
					glib.IdleAdd(func() { runtime.ReportError(err) })
				})
				if err := configWatcher.Start(ctx, cfg); err != nil {
					logger.Warn("failed to start config watcher", "error", err)
				}
			}
		}

		logger.Info("pilltoastd ready", "dbus_interface", dbus.Interface)

		// GTK apps quit when all windows are closed.
		keepAliveWindow := gtk.NewWindow()
		keepAliveWindow.SetApplication(&app.Application)
		keepAliveWindow.SetDefaultSize(1, 1)
		keepAliveWindow.SetDecorated(false)
		keepAliveWindow.SetVisible(false)
	})

	app.ConnectShutdown(func() {
		logger.Info("application shutting down")
		if running.Load() {
			stopAll()
			running.Store(false)
		}
	})

	status := app.Run(os.Args[:1])
	if status != 0 {
		logger.Error("application exited with error", "status", status)
		return status
	}

	logger.Info("pilltoastd stopped")
	return 0
}
