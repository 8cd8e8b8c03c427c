// Package cmd implements the screenshot-capturer command line surface.
package cmd

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"runtime"
	"strings"
	"time"

	"github.com/codeforgood-org/screenshot-capturer/internal/buildinfo"
	"github.com/codeforgood-org/screenshot-capturer/pkg/config"
	"github.com/codeforgood-org/screenshot-capturer/pkg/logging"
	"github.com/codeforgood-org/screenshot-capturer/pkg/screenshot"
)

// timeNow is extracted for testability.
var timeNow = time.Now

// newCapturer is extracted for testability.
var newCapturer = screenshot.New

// App wires the CLI to its collaborators. The zero value from NewApp
// talks to the real terminal, config location, and display server;
// tests override the exported-for-test seams.
type App struct {
	stdout io.Writer
	stderr io.Writer

	// configPath overrides the per-user config location in tests.
	configPath string
	// grabber overrides the screen-grab primitive in tests.
	grabber screenshot.Grabber
	// platform overrides the resolved OS identifier in tests.
	platform string
}

// NewApp constructs the CLI bound to the process streams.
func NewApp() *App {
	return &App{stdout: os.Stdout, stderr: os.Stderr}
}

type options struct {
	mode    string
	region  string
	output  string
	format  string
	quality int

	display      int
	listDisplays bool

	count         int
	interval      time.Duration
	skipUnchanged bool

	resizeSpec string
	pdf        bool

	showConfig       bool
	setDefaultFormat string
	setDefaultDir    string
	resetConfig      bool

	verbose bool
	quiet   bool
	version bool
}

func (o *options) register(fs *flag.FlagSet) {
	fs.StringVar(&o.mode, "m", "fullscreen", "")
	fs.StringVar(&o.mode, "mode", "fullscreen", "Capture mode: fullscreen, region, active_window")
	fs.StringVar(&o.region, "r", "", "")
	fs.StringVar(&o.region, "region", "", "Region to capture as 'x,y,width,height' (required for region mode)")
	fs.StringVar(&o.output, "o", "", "")
	fs.StringVar(&o.output, "output", "", "Output file path (default: auto-generated in the configured directory)")
	fs.StringVar(&o.format, "f", "", "")
	fs.StringVar(&o.format, "format", "", "Output image format: png, jpeg, jpg, bmp, gif, tiff, webp")
	fs.IntVar(&o.quality, "q", -1, "")
	fs.IntVar(&o.quality, "quality", -1, "JPEG quality 1-100 (default: 95, only for JPEG format)")

	fs.IntVar(&o.display, "d", 0, "")
	fs.IntVar(&o.display, "display", 0, "Display index for fullscreen capture")
	fs.BoolVar(&o.listDisplays, "list-displays", false, "List active displays and exit")

	fs.IntVar(&o.count, "count", 1, "Number of screenshots to capture")
	fs.DurationVar(&o.interval, "interval", time.Second, "Delay between captures when count > 1")
	fs.BoolVar(&o.skipUnchanged, "skip-unchanged", false, "Skip frames identical to the previous capture")

	fs.StringVar(&o.resizeSpec, "resize", "", "Scale the capture to WIDTHxHEIGHT before saving (0 keeps aspect)")
	fs.BoolVar(&o.pdf, "pdf", false, "Save the capture as a single-page PDF")

	fs.BoolVar(&o.showConfig, "show-config", false, "Display current configuration and exit")
	fs.StringVar(&o.setDefaultFormat, "set-default-format", "", "Set default output format in config and exit")
	fs.StringVar(&o.setDefaultDir, "set-default-dir", "", "Set default output directory in config and exit")
	fs.BoolVar(&o.resetConfig, "reset-config", false, "Restore built-in configuration defaults and exit")

	fs.BoolVar(&o.verbose, "v", false, "")
	fs.BoolVar(&o.verbose, "verbose", false, "Enable verbose output")
	fs.BoolVar(&o.quiet, "quiet", false, "Suppress all output except errors")
	fs.BoolVar(&o.version, "version", false, "Print version information and exit")
}

// Run parses args, executes the requested action, and returns the
// process exit code: 0 on success, 1 for handled errors, 2 for flag
// parse failures, 130 when interrupted.
func (a *App) Run(ctx context.Context, args []string) int {
	fs := flag.NewFlagSet("screenshot-capturer", flag.ContinueOnError)
	fs.SetOutput(a.stderr)
	opts := &options{}
	opts.register(fs)
	fs.Usage = func() { a.printHelp() }

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return 0
		}
		return 2
	}

	if opts.version {
		fmt.Fprintf(a.stdout, "screenshot-capturer %s\n", versionString())
		return 0
	}

	logger := logging.ForVerbosity(opts.verbose, opts.quiet, a.stderr)

	store, err := config.Open(a.configPath)
	if err != nil {
		fmt.Fprintf(a.stderr, "Error: %v\n", err)
		return 1
	}
	logger.Debug("configuration loaded", "path", store.Path(),
		"format", store.DefaultFormat(), "quality", store.DefaultQuality(), "output_dir", store.DefaultOutputDir())

	if opts.showConfig {
		a.printConfig(store)
		return 0
	}
	if opts.resetConfig {
		if err := store.Reset(); err != nil {
			fmt.Fprintf(a.stderr, "Error: %v\n", err)
			return 1
		}
		fmt.Fprintln(a.stdout, "Configuration reset to defaults")
		return 0
	}
	if opts.setDefaultFormat != "" || opts.setDefaultDir != "" {
		return a.updateConfig(store, opts)
	}

	return a.runCapture(ctx, logger, store, opts)
}

func (a *App) fail(err error, verbose bool) int {
	switch {
	case errors.Is(err, context.Canceled):
		fmt.Fprintln(a.stderr, "\nOperation cancelled by user")
		return 130
	case screenshot.IsDomain(err):
		fmt.Fprintf(a.stderr, "Error: %v\n", err)
		return 1
	default:
		fmt.Fprintf(a.stderr, "Unexpected error: %v\n", err)
		if verbose {
			for cause := errors.Unwrap(err); cause != nil; cause = errors.Unwrap(cause) {
				fmt.Fprintf(a.stderr, "  caused by: %v\n", cause)
			}
		}
		return 1
	}
}

func (a *App) printHelp() {
	fmt.Fprintf(a.stdout, "screenshot-capturer - cross-platform desktop screenshot capture tool\nVersion: %s\n\n", versionString())
	fmt.Fprintln(a.stdout, "Usage: screenshot-capturer [flags]")
	fmt.Fprintln(a.stdout, "")
	fmt.Fprintln(a.stdout, "Capture flags:")
	fmt.Fprintln(a.stdout, "  -m, --mode string        Capture mode: fullscreen, region, active_window (default fullscreen)")
	fmt.Fprintln(a.stdout, "  -r, --region X,Y,W,H     Region to capture (required for region mode)")
	fmt.Fprintln(a.stdout, "  -o, --output PATH        Output file path (default: auto-generated name)")
	fmt.Fprintln(a.stdout, "  -f, --format string      Image format: png, jpeg, jpg, bmp, gif, tiff, webp")
	fmt.Fprintln(a.stdout, "  -q, --quality N          JPEG quality 1-100 (default 95)")
	fmt.Fprintln(a.stdout, "  -d, --display N          Display index for fullscreen capture (default 0)")
	fmt.Fprintln(a.stdout, "      --list-displays      List active displays and exit")
	fmt.Fprintln(a.stdout, "      --count N            Capture a series of N screenshots (default 1)")
	fmt.Fprintln(a.stdout, "      --interval DURATION  Delay between series captures (default 1s)")
	fmt.Fprintln(a.stdout, "      --skip-unchanged     Skip frames identical to the previous capture")
	fmt.Fprintln(a.stdout, "      --resize WxH         Scale the capture before saving (0 keeps aspect)")
	fmt.Fprintln(a.stdout, "      --pdf                Save the capture as a single-page PDF")
	fmt.Fprintln(a.stdout, "")
	fmt.Fprintln(a.stdout, "Configuration flags:")
	fmt.Fprintln(a.stdout, "      --show-config              Display current configuration and exit")
	fmt.Fprintln(a.stdout, "      --set-default-format FMT   Persist the default output format and exit")
	fmt.Fprintln(a.stdout, "      --set-default-dir PATH     Persist the default output directory and exit")
	fmt.Fprintln(a.stdout, "      --reset-config             Restore built-in defaults and exit")
	fmt.Fprintln(a.stdout, "")
	fmt.Fprintln(a.stdout, "Other flags:")
	fmt.Fprintln(a.stdout, "  -v, --verbose            Enable verbose output")
	fmt.Fprintln(a.stdout, "      --quiet              Suppress all output except errors")
	fmt.Fprintln(a.stdout, "      --version            Print version information and exit")
	fmt.Fprintln(a.stdout, "")
	fmt.Fprintln(a.stdout, "Examples:")
	fmt.Fprintln(a.stdout, "  screenshot-capturer")
	fmt.Fprintln(a.stdout, "  screenshot-capturer -o ~/Pictures/my_screenshot.png")
	fmt.Fprintln(a.stdout, "  screenshot-capturer -m region -r 100,100,800,600")
	fmt.Fprintln(a.stdout, "  screenshot-capturer -f jpeg -q 85")
	fmt.Fprintln(a.stdout, "  screenshot-capturer --count 5 --interval 2s --skip-unchanged")
	fmt.Fprintln(a.stdout, "  screenshot-capturer --show-config")
}

func versionString() string {
	return fmt.Sprintf("%s (%s/%s)", buildinfo.Version(), strings.TrimPrefix(runtime.Version(), "go"), runtime.GOOS)
}
