package cmd

import (
	"fmt"

	"github.com/codeforgood-org/screenshot-capturer/pkg/config"
)

func (a *App) printConfig(store *config.Store) {
	fmt.Fprintln(a.stdout, "Current Configuration:")
	fmt.Fprintf(a.stdout, "  Default Format: %s\n", store.DefaultFormat())
	fmt.Fprintf(a.stdout, "  Default Directory: %s\n", store.DefaultOutputDir())
	fmt.Fprintf(a.stdout, "  Default Quality: %d\n", store.DefaultQuality())
	fmt.Fprintf(a.stdout, "  Config File: %s\n", store.Path())
}

// updateConfig applies --set-default-format / --set-default-dir and
// persists the result.
func (a *App) updateConfig(store *config.Store, opts *options) int {
	if opts.setDefaultFormat != "" {
		store.SetDefaultFormat(opts.setDefaultFormat)
		fmt.Fprintf(a.stdout, "Default format set to: %s\n", store.DefaultFormat())
	}
	if opts.setDefaultDir != "" {
		store.SetDefaultOutputDir(opts.setDefaultDir)
		fmt.Fprintf(a.stdout, "Default directory set to: %s\n", store.DefaultOutputDir())
	}
	if err := store.Save(); err != nil {
		fmt.Fprintf(a.stderr, "Error: %v\n", err)
		return 1
	}
	fmt.Fprintln(a.stdout, "Configuration saved successfully")
	return 0
}
