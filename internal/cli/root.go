package cli

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/rileyhilliard/ledmon/internal/config"
	lmerrors "github.com/rileyhilliard/ledmon/internal/errors"
	"github.com/rileyhilliard/ledmon/internal/logger"
	"github.com/rileyhilliard/ledmon/internal/sensors"
	"github.com/rileyhilliard/ledmon/internal/ui"
)

// Global flags
var (
	cfgFile  string
	verbose  bool
	noColor  bool
	stderr   io.Writer = os.Stderr
	exitFunc           = os.Exit

	// sensorSource replaces the host sensors when set (tests).
	sensorSource sensors.Source
)

var rootCmd = &cobra.Command{
	Use:   "ledmon",
	Short: "Show host load on an LED matrix",
	Long: `ledmon samples CPU, memory, disk, network, temperature and battery
readings, draws them as bars and plots on a 9x34 LED matrix, and sends each
frame to the LED-matrix daemon over its Unix socket.

Run 'ledmon preview' to see the current layout in the terminal and
'ledmon doctor' if nothing shows up on the matrix.`,
	SilenceErrors: true,
	SilenceUsage:  true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		applyGlobalFlags()
	},
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "config file (default: search ./ledmon.yaml, ~/.config/ledmon, /etc/ledmon)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
	rootCmd.PersistentFlags().BoolVar(&noColor, "no-color", false, "disable colored output")
}

func applyGlobalFlags() {
	if noColor || os.Getenv("NO_COLOR") != "" {
		ui.DisableColors()
	}
	if verbose {
		logger.SetDebug(true)
	}
}

// exitError ends the process with code without printing anything further.
// Commands use it when they already reported the problem themselves.
type exitError struct {
	code int
}

func (e *exitError) Error() string {
	return fmt.Sprintf("exit status %d", e.code)
}

// Execute runs the root command and exits non-zero on failure.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		exitFunc(handleError(err, stderr))
	}
}

// handleError prints err for the user and returns the exit code.
func handleError(err error, w io.Writer) int {
	var exit *exitError
	if errors.As(err, &exit) {
		return exit.code
	}

	var lmErr *lmerrors.Error
	if errors.As(err, &lmErr) {
		fmt.Fprint(w, lmErr.Error())
		return 1
	}

	fmt.Fprintf(w, "%s %v\n", ui.ErrorStyle().Render(ui.SymbolFail), err)
	return 1
}

// loadConfig finds and loads the config named by --config, or the first one
// on the search path. It returns the path used, empty for built-in defaults.
func loadConfig() (*config.Config, string, error) {
	return config.LoadOrDefault(cfgFile)
}

// describePath names a config path for output.
func describePath(path string) string {
	if path == "" {
		return "built-in defaults"
	}
	return path
}
