// Package cli implements the ledmon command-line interface.
//
// Commands are Cobra commands defined in commands.go, each delegating to a
// function in its own file that loads the config and wires the pipeline:
//
//	ledmon run         - Sample, render and send frames until interrupted
//	ledmon snapshot    - Sample briefly and write the frame as PNG files
//	ledmon preview     - Draw the frame in the terminal (--watch for live)
//	ledmon doctor      - Diagnose sensors, config and the daemon socket
//	ledmon validate    - Check a config file without running
//	ledmon init        - Write a starter config
//
// # Flag Handling
//
// Global flags (--config, --verbose, --no-color) are defined on the root
// command. --verbose turns on debug logging; --no-color (or NO_COLOR) makes
// all styled output plain.
//
// # Errors
//
// Commands return structured errors from internal/errors. Execute prints them
// once, with their suggestion, and exits non-zero.
package cli
