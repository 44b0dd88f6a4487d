package cli

import (
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/charmbracelet/huh"

	"github.com/rileyhilliard/ledmon/internal/config"
	"github.com/rileyhilliard/ledmon/internal/errors"
	"github.com/rileyhilliard/ledmon/internal/ui"
)

// InitOptions holds options for the init command.
type InitOptions struct {
	Path           string // where to write; empty for the per-user config path
	Overwrite      bool   // replace an existing file without asking
	Update         bool   // only set socket and brightness keys in an existing file
	NonInteractive bool   // skip prompts, use flag values and defaults

	Socket         string
	BrightnessFile string
	MaxBrightness  int
}

// initAction is what Init does to the target file.
type initAction int

const (
	actionCreate initAction = iota
	actionUpdate
	actionCancel
)

// initValues are the settings init asks for, as entered.
type initValues struct {
	Socket         string
	BrightnessFile string
	MaxBrightness  string
}

// Init writes a starter config, or updates the daemon settings of an
// existing one.
func Init(w io.Writer, opts InitOptions) error {
	path := opts.Path
	if path == "" {
		path = config.UserConfigPath()
	}
	path = config.ExpandTilde(path)

	if !opts.NonInteractive && !isTerminal() {
		return errors.New(errors.ErrConfig,
			"init needs an interactive terminal to prompt",
			"Run with --non-interactive and pass --socket / --brightness-file as needed")
	}

	action, err := chooseInitAction(path, opts)
	if err != nil {
		return err
	}
	if action == actionCancel {
		fmt.Fprintln(w, "Cancelled.")
		return nil
	}

	base := config.DefaultConfig()
	if action == actionUpdate {
		existing, err := config.Load(path)
		if err != nil {
			return err
		}
		base = existing
	}

	values := initValues{
		Socket:         firstNonEmpty(opts.Socket, base.Socket),
		BrightnessFile: firstNonEmpty(opts.BrightnessFile, base.Render.MaxBrightnessFile),
		MaxBrightness:  strconv.Itoa(base.Render.MaxBrightness),
	}
	if opts.MaxBrightness != 0 {
		values.MaxBrightness = strconv.Itoa(opts.MaxBrightness)
	}

	if !opts.NonInteractive {
		if err := promptInitValues(&values); err != nil {
			return errors.WrapWithCode(err, errors.ErrConfig,
				"Failed to get user input",
				"Try running with --non-interactive")
		}
	}

	if err := validateMaxBrightness(values.MaxBrightness); err != nil {
		return errors.Field("render.max_brightness", err.Error(), "Use a whole number from 1 to 255")
	}

	if action == actionUpdate {
		if err := config.SetScalars(path, map[string]string{
			"socket":                     values.Socket,
			"render.max_brightness":      values.MaxBrightness,
			"render.max_brightness_file": values.BrightnessFile,
		}); err != nil {
			return errors.WrapWithCode(err, errors.ErrConfig,
				fmt.Sprintf("Failed to update %s", path),
				"Check the file is valid YAML, or use --force to rewrite it")
		}
		updated, err := config.Load(path)
		if err != nil {
			return err
		}
		if err := config.Validate(updated); err != nil {
			return err
		}
		fmt.Fprintf(w, "%s Updated %s\n", ui.SuccessStyle().Render(ui.SymbolSuccess), path)
		return nil
	}

	cfg := base
	cfg.Socket = values.Socket
	cfg.Render.MaxBrightnessFile = values.BrightnessFile
	cfg.Render.MaxBrightness, _ = strconv.Atoi(values.MaxBrightness)
	if err := config.Validate(cfg); err != nil {
		return err
	}
	if err := config.Save(cfg, path); err != nil {
		return errors.WrapWithCode(err, errors.ErrConfig,
			fmt.Sprintf("Failed to write %s", path),
			"Check that the directory is writable, or pass --output")
	}

	fmt.Fprintf(w, "%s Wrote %s\n", ui.SuccessStyle().Render(ui.SymbolSuccess), path)
	fmt.Fprintln(w)
	fmt.Fprintln(w, ui.MutedStyle().Render("Next: 'ledmon doctor' to check sensors and the socket, 'ledmon preview' to see the layout."))
	return nil
}

// chooseInitAction decides whether to create, update or leave the file.
func chooseInitAction(path string, opts InitOptions) (initAction, error) {
	_, statErr := os.Stat(path)
	exists := statErr == nil

	switch {
	case !exists && opts.Update:
		return actionCancel, errors.New(errors.ErrConfig,
			fmt.Sprintf("No config to update at %s", path),
			"Run 'ledmon init' without --update to create one")
	case !exists:
		return actionCreate, nil
	case opts.Update:
		return actionUpdate, nil
	case opts.Overwrite:
		return actionCreate, nil
	case opts.NonInteractive:
		return actionCancel, errors.New(errors.ErrConfig,
			fmt.Sprintf("Config file already exists: %s", path),
			"Use --force to overwrite or --update to change only the daemon settings")
	}

	action := actionUpdate
	form := huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[initAction]().
				Title(fmt.Sprintf("%s already exists", path)).
				Options(
					huh.NewOption("Update socket and brightness only", actionUpdate),
					huh.NewOption("Overwrite with the default layout", actionCreate),
					huh.NewOption("Cancel", actionCancel),
				).
				Value(&action),
		),
	)
	if err := form.Run(); err != nil {
		return actionCancel, errors.WrapWithCode(err, errors.ErrConfig,
			"Failed to get user input",
			"Try running with --force or --update")
	}
	return action, nil
}

func promptInitValues(v *initValues) error {
	form := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Daemon socket").
				Description("Unix socket the LED-matrix daemon listens on").
				Value(&v.Socket).
				Validate(func(s string) error {
					if s == "" {
						return fmt.Errorf("socket path is required")
					}
					return nil
				}),
			huh.NewInput().
				Title("Maximum brightness").
				Description("1-255; frames are scaled down to this level").
				Value(&v.MaxBrightness).
				Validate(validateMaxBrightness),
			huh.NewInput().
				Title("Brightness file (optional)").
				Description("A file holding the current cap, e.g. written by an ambient light script").
				Value(&v.BrightnessFile),
		),
	)
	return form.Run()
}

func validateMaxBrightness(s string) error {
	n, err := strconv.Atoi(s)
	if err != nil || n < 1 || n > 255 {
		return fmt.Errorf("must be a number from 1 to 255")
	}
	return nil
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
