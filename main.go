package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/gogpu/gg"

	"PaintBoard/internal/config"
	"PaintBoard/internal/database"
	"PaintBoard/internal/document"
	"PaintBoard/internal/net"
	"PaintBoard/internal/ui"
)

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, "config:", err)
		return 1
	}
	setupLogging(cfg.Logging)

	if len(args) > 0 {
		switch {
		case net.IsShareLink(args[0]):
			return exitCode(runViewer(cfg, args[0]))
		case args[0] == "inspect":
			if len(args) != 2 {
				return usage()
			}
			return exitCode(inspect(os.Stdout, args[1]))
		case args[0] == "render":
			if len(args) != 3 {
				return usage()
			}
			return exitCode(renderFile(args[1], args[2]))
		case args[0] == "browse":
			return exitCode(browse(os.Stdout, browseTimeout))
		default:
			return usage()
		}
	}
	return exitCode(runHost(cfg))
}

func usage() int {
	fmt.Fprintln(os.Stderr, `usage:
  paintboard                        open the editor
  paintboard paintboard://HOST:PORT  view a shared painting
  paintboard browse                 list shared paintings on the network
  paintboard inspect FILE           summarise a painting file
  paintboard render FILE OUT        render a painting to OUT (.png or .pdf)`)
	return 2
}

func exitCode(err error) int {
	if err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		return 1
	}
	return 0
}

func setupLogging(c config.LoggingConfig) {
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: c.SlogLevel()}))
	slog.SetDefault(logger)
	gg.SetLogger(logger)
}

func surfaceConfig(cfg config.Config) ui.SurfaceConfig {
	return ui.SurfaceConfig{
		Width:      cfg.Canvas.Width,
		Height:     cfg.Canvas.Height,
		Background: cfg.Canvas.Background,
		Palette:    cfg.Canvas.Palette,
	}
}

func runHost(cfg config.Config) error {
	slog.Info("[MAIN] starting as host")
	db, err := database.OpenMigrated(cfg.Database.Path)
	if err != nil {
		return err
	}
	defer db.Close()

	opts := ui.HostOptions{
		Page: ui.PageConfig{
			Canvas:  surfaceConfig(cfg),
			Title:   cfg.Painting.Title,
			Library: database.NewPaintingRepo(db),
		},
	}

	if cfg.Share.Enabled {
		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()

		hub := net.NewHub()
		go func() {
			if err := hub.Serve(ctx, cfg.Share.Port); err != nil {
				slog.Error("[MAIN] share server stopped", "err", err)
			}
		}()

		if srv, err := net.Advertise(cfg.Share.Port); err != nil {
			slog.Warn("[MAIN] mDNS advertisement unavailable", "err", err)
		} else {
			defer srv.Shutdown()
		}

		ip, err := net.GetOutgoingIP()
		if err != nil {
			slog.Warn("[MAIN] could not determine local IP", "err", err)
			ip = "127.0.0.1"
		}
		opts.ShareLink = net.ShareLink(ip, cfg.Share.Port)
		opts.OnPaintingChange = func(p document.Painting) {
			if err := hub.Publish(p); err != nil {
				slog.Warn("[MAIN] publish failed", "err", err)
			}
		}
		slog.Info("[MAIN] sharing", "link", opts.ShareLink)
	}

	ui.RunApp(opts)
	return nil
}

func runViewer(cfg config.Config, link string) error {
	addr, err := net.ParseShareLink(link)
	if err != nil {
		return err
	}
	slog.Info("[MAIN] starting as viewer", "host", addr)
	ui.RunViewer(addr, surfaceConfig(cfg), func(ctx context.Context, on func(document.Painting)) error {
		return net.Follow(ctx, addr, on)
	})
	return nil
}
