package cli

import (
	"github.com/spf13/cobra"

	"github.com/rileyhilliard/ledmon/internal/errors"
)

// Command-specific flags
var (
	snapshotOpts   SnapshotOptions
	previewWatch   bool
	previewSamples int
	doctorOpts     DoctorOptions
	initOpts       InitOptions
)

// runCmd is the long-running monitor
var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Sample, render and send frames until interrupted",
	Long: `Load the config, take the instance lock and drive the matrix until
SIGINT or SIGTERM.

Frames that cannot be delivered are dropped; sampling keeps going and the
display recovers as soon as the daemon is reachable again.

Examples:
  ledmon run
  ledmon run --config ./ledmon.yaml
  LEDMON_SOCKET=/tmp/matrix.sock ledmon run -v`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runCommand(cmd.Context())
	},
}

// snapshotCmd writes one frame to disk
var snapshotCmd = &cobra.Command{
	Use:   "snapshot",
	Short: "Sample briefly and write the frame as PNG files",
	Long: `Sample for a few ticks, render one frame and write each panel as a
grayscale PNG (left.png, right.png). Nothing is sent to the daemon.

Examples:
  ledmon snapshot
  ledmon snapshot --out /tmp/frames --scale 8
  ledmon snapshot --samples 10`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return snapshotCommand(cmd.Context(), cmd.OutOrStdout(), snapshotOpts)
	},
}

// previewCmd draws the frame in the terminal
var previewCmd = &cobra.Command{
	Use:   "preview",
	Short: "Draw the current frame in the terminal",
	Long: `Sample for a few ticks and print the frame using shade characters,
next to the value history of every tracked series. Nothing is sent to the
daemon.

With --watch the preview keeps sampling in a full-screen view.

Keyboard shortcuts (--watch):
  q / Ctrl+C  Quit
  p / Space   Pause sampling
  s           Toggle the series list
  ?           Show help

Examples:
  ledmon preview
  ledmon preview --watch`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return previewCommand(cmd.Context(), cmd.OutOrStdout(), previewWatch, previewSamples)
	},
}

// doctorCmd diagnoses sensor, config and socket issues
var doctorCmd = &cobra.Command{
	Use:   "doctor",
	Short: "Diagnose sensor, config and daemon issues",
	Long: `Run diagnostic checks to find out why the matrix is not showing
what you expect.

Checks:
  - Config file location and validity
  - CPU, memory and battery readings
  - Which disks, interfaces and temperature sensors the selectors match
  - Daemon socket reachability
  - Brightness file and instance lock

Examples:
  ledmon doctor
  ledmon doctor --json
  ledmon doctor --serial   # one check at a time, in report order`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return doctorCommand(cmd.Context(), cmd.OutOrStdout(), doctorOpts)
	},
}

// validateCmd lints a config
var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Check the config without running",
	Long: `Load the config, apply defaults and environment overrides, and check
every field, selector rule and widget geometry.

Examples:
  ledmon validate
  ledmon validate --config /etc/ledmon/config.yaml`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return validateCommand(cmd.OutOrStdout())
	},
}

// initCmd writes a starter config
var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Write a starter config",
	Long: `Write a config file with the default layout, asking for the daemon
socket and brightness settings.

Examples:
  ledmon init
  ledmon init --output ./ledmon.yaml --non-interactive
  ledmon init --update --socket /run/led-matrix.sock`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return Init(cmd.OutOrStdout(), initOpts)
	},
}

// completionCmd generates shell completion scripts
var completionCmd = &cobra.Command{
	Use:   "completion [bash|zsh|fish|powershell]",
	Short: "Generate shell completion script",
	Long: `Generate shell completion scripts for ledmon.

Examples:
  # Bash
  ledmon completion bash > /etc/bash_completion.d/ledmon

  # Zsh
  ledmon completion zsh > "${fpath[1]}/_ledmon"

  # Fish
  ledmon completion fish > ~/.config/fish/completions/ledmon.fish`,
	ValidArgs: []string{"bash", "zsh", "fish", "powershell"},
	Args:      cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()
		switch args[0] {
		case "bash":
			return rootCmd.GenBashCompletion(out)
		case "zsh":
			return rootCmd.GenZshCompletion(out)
		case "fish":
			return rootCmd.GenFishCompletion(out, true)
		case "powershell":
			return rootCmd.GenPowerShellCompletion(out)
		default:
			return errors.New(errors.ErrConfig,
				"Unknown shell: "+args[0],
				"Supported shells: bash, zsh, fish, powershell")
		}
	},
}

func init() {
	// snapshot command flags
	snapshotCmd.Flags().IntVarP(&snapshotOpts.Samples, "samples", "n", 0, "ticks to sample before rendering (default: history size)")
	snapshotCmd.Flags().StringVarP(&snapshotOpts.OutDir, "out", "o", ".", "directory to write left.png and right.png to")
	snapshotCmd.Flags().IntVar(&snapshotOpts.Scale, "scale", 1, "enlarge every LED to an NxN block")

	// preview command flags
	previewCmd.Flags().BoolVarP(&previewWatch, "watch", "w", false, "keep sampling in a live full-screen view")
	previewCmd.Flags().IntVarP(&previewSamples, "samples", "n", 0, "ticks to sample before printing (default: history size)")

	// doctor command flags
	doctorCmd.Flags().BoolVar(&doctorOpts.JSON, "json", false, "output in JSON format")
	doctorCmd.Flags().BoolVar(&doctorOpts.Serial, "serial", false, "run checks one at a time")

	// init command flags
	initCmd.Flags().StringVarP(&initOpts.Path, "output", "o", "", "where to write the config (default: ~/.config/ledmon/config.yaml)")
	initCmd.Flags().BoolVarP(&initOpts.Overwrite, "force", "f", false, "overwrite an existing config")
	initCmd.Flags().BoolVar(&initOpts.Update, "update", false, "only update socket and brightness settings in an existing config")
	initCmd.Flags().BoolVar(&initOpts.NonInteractive, "non-interactive", false, "skip prompts and use flag values")
	initCmd.Flags().StringVar(&initOpts.Socket, "socket", "", "daemon socket path")
	initCmd.Flags().StringVar(&initOpts.BrightnessFile, "brightness-file", "", "file holding the current brightness cap")
	initCmd.Flags().IntVar(&initOpts.MaxBrightness, "max-brightness", 0, "brightness cap, 1-255")

	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(snapshotCmd)
	rootCmd.AddCommand(previewCmd)
	rootCmd.AddCommand(doctorCmd)
	rootCmd.AddCommand(validateCmd)
	rootCmd.AddCommand(initCmd)
	rootCmd.AddCommand(completionCmd)
}
