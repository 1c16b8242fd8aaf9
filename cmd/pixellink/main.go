package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"runtime"
	"runtime/debug"
	"strings"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	pflag "github.com/spf13/pflag"

	"github.com/santikzz/pixellink"
	logAdapter "github.com/santikzz/pixellink/internal/adapters/log"
	"github.com/santikzz/pixellink/internal/cliconfig"
	"github.com/santikzz/pixellink/internal/snapshot"
	"github.com/santikzz/pixellink/internal/viewer"
)

const helpBanner = `
        _               _  _  _         _
  _ __ (_)__  __ ___   | || |(_) _ __  | | __
 | '_ \| |\ \/ // _ \  | || || || '_ \ | |/ /
 | |_) | | >  <|  __/  | || || || | | ||   <
 | .__/|_|/_/\_\\___|  |_||_||_||_| |_||_|\_\
 |_|
`

const helpDescription = `
Chat with a peer through screen pixels instead of sockets.

Two instances share one pixel surface: each frames its message as
magic + length + payload, paints it into its own scan region three
bytes per pixel, and polls the mirrored region for the reply.

Run one instance with --role a and the other with --role b against the
same surface file. Use "pixellink watch" in a third terminal to see the
frames crossing the surface, and "pixellink snapshot" to export a PNG.
`

var longHelp = strings.TrimSpace(helpBanner) + "\n\n" + strings.TrimSpace(helpDescription)

var exampleUsage = strings.TrimSpace(`
  pixellink --role a
  pixellink --role b --surface /tmp/pixellink.surface
  PIXELLINK_ROLE=2 pixellink --poll 250ms
  pixellink watch --rows 20
  pixellink snapshot --out surface.png --scale 8
`)

func getVersion() string {
	if info, ok := debug.ReadBuildInfo(); ok && info.Main.Version != "" {
		return info.Main.Version
	}
	return "dev"
}

func newLogger(verbose bool) *logAdapter.ZerologAdapter {
	output := zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339}
	level := zerolog.InfoLevel
	if verbose {
		level = zerolog.DebugLevel
	}
	logger := zerolog.New(output).Level(level).With().Timestamp().Logger()
	return logAdapter.NewZerologAdapterWithLogger(logger)
}

// loadConfig merges defaults, the config file, environment variables and
// explicitly-set flags, in that order of increasing precedence.
func loadConfig(cmd *cobra.Command, cfg *cliconfig.Config, cfgPath string) error {
	changed := map[string]bool{}
	cmd.Flags().Visit(func(f *pflag.Flag) { changed[f.Name] = true })

	cfgFile := cfgPath
	if cfgFile == "" {
		cfgFile = cliconfig.DefaultConfigPath()
	}
	if cfgFile != "" && cliconfig.FileExists(cfgFile) {
		fc, err := cliconfig.LoadFileConfig(cfgFile)
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}
		if err := cliconfig.ApplyFileConfig(cfg, fc, changed); err != nil {
			return err
		}
	}

	return cliconfig.ApplyEnvConfig(cfg, changed)
}

func main() {
	cfg := cliconfig.DefaultConfig()
	var cfgPath string

	root := &cobra.Command{
		Use:     "pixellink",
		Short:   "Full-duplex chat over screen pixels",
		Long:    longHelp,
		Example: exampleUsage,
		Version: fmt.Sprintf("%s %s/%s", getVersion(), runtime.GOOS, runtime.GOARCH),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := loadConfig(cmd, &cfg, cfgPath); err != nil {
				return err
			}
			if err := cfg.Validate(); err != nil {
				return err
			}

			log := newLogger(cfg.Verbose)
			log.Info("configuration",
				pixellink.LogField{Key: "role", Value: cfg.Role},
				pixellink.LogField{Key: "surface", Value: cfg.SurfacePath},
				pixellink.LogField{Key: "width", Value: cfg.Width},
				pixellink.LogField{Key: "poll", Value: cfg.PollInterval},
			)

			ctx, cancel := context.WithCancel(context.Background())
			defer cancel()

			sigCh := make(chan os.Signal, 1)
			signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
			go func() {
				<-sigCh
				log.Info("received signal, stopping...")
				cancel()
			}()

			err := pixellink.Run(ctx, cfg, pixellink.WithLogger(log))
			if errors.Is(err, context.Canceled) {
				return nil
			}
			return err
		},
	}

	root.Flags().StringVar(&cfgPath, "config", "", "path to config file (default: $HOME/.pixellink/config.toml)")
	root.Flags().StringVar(&cfg.Role, "role", cfg.Role, "endpoint role: a or b (a sends first)")
	root.Flags().StringVar(&cfg.SurfacePath, "surface", cfg.SurfacePath, "shared surface file both peers open")
	root.Flags().IntVar(&cfg.Width, "width", cfg.Width, "surface horizontal resolution in pixels")
	root.Flags().IntVar(&cfg.RegionRows, "region-rows", cfg.RegionRows, "vertical gap between the two scan regions")
	root.Flags().DurationVar(&cfg.PollInterval, "poll", cfg.PollInterval, "delay between receive attempts")
	root.Flags().IntVar(&cfg.MaxPollAttempts, "max-poll-attempts", cfg.MaxPollAttempts, "give up waiting after this many attempts (0 = wait forever)")
	root.Flags().BoolVarP(&cfg.Verbose, "verbose", "v", cfg.Verbose, "enable debug logging")
	if err := root.Flags().MarkHidden("region-rows"); err != nil {
		fmt.Fprintln(os.Stderr, "failed to hide region-rows flag:", err)
	}

	root.AddCommand(newWatchCmd(&cfg, &cfgPath))
	root.AddCommand(newSnapshotCmd(&cfg, &cfgPath))

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "pixellink:", err)
		os.Exit(1)
	}
}

func newWatchCmd(cfg *cliconfig.Config, cfgPath *string) *cobra.Command {
	var rows int
	var refresh time.Duration

	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Render the shared surface live in the terminal",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := loadConfig(cmd, cfg, *cfgPath); err != nil {
				return err
			}

			ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
			defer cancel()

			err := viewer.Run(ctx, viewer.Options{
				SurfacePath: cfg.SurfacePath,
				Width:       cfg.Width,
				Rows:        rows,
				Refresh:     refresh,
			}, newLogger(cfg.Verbose))
			if errors.Is(err, context.Canceled) {
				return nil
			}
			return err
		},
	}

	cmd.Flags().StringVar(&cfg.SurfacePath, "surface", cfg.SurfacePath, "shared surface file to watch")
	cmd.Flags().IntVar(&cfg.Width, "width", cfg.Width, "surface horizontal resolution in pixels")
	cmd.Flags().IntVar(&rows, "rows", 2*cliconfig.DefaultRegionRows, "surface rows to render")
	cmd.Flags().DurationVar(&refresh, "refresh", 500*time.Millisecond, "fallback redraw interval")
	return cmd
}

func newSnapshotCmd(cfg *cliconfig.Config, cfgPath *string) *cobra.Command {
	var rows, scale int
	var out string

	cmd := &cobra.Command{
		Use:   "snapshot",
		Short: "Export the shared surface to a PNG image",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := loadConfig(cmd, cfg, *cfgPath); err != nil {
				return err
			}

			return snapshot.Write(snapshot.Options{
				SurfacePath: cfg.SurfacePath,
				Width:       cfg.Width,
				Rows:        rows,
				Scale:       scale,
				OutPath:     out,
			})
		},
	}

	cmd.Flags().StringVar(&cfg.SurfacePath, "surface", cfg.SurfacePath, "shared surface file to export")
	cmd.Flags().IntVar(&cfg.Width, "width", cfg.Width, "surface horizontal resolution in pixels")
	cmd.Flags().IntVar(&rows, "rows", 2*cliconfig.DefaultRegionRows, "surface rows to export")
	cmd.Flags().IntVar(&scale, "scale", 4, "integer zoom factor for the output image")
	cmd.Flags().StringVar(&out, "out", "pixellink.png", "output PNG path")
	return cmd
}
