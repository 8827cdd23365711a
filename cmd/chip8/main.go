// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

// Package main implements the chip8 command line front end.
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/retroenv/retrogolib/log"

	"github.com/ezrec/chip8/display"
	"github.com/ezrec/chip8/emulator"
)

type options struct {
	verbose bool
	quiet   bool
	seed    uint64
}

func main() {
	var opts options

	flags := flag.NewFlagSet(os.Args[0], flag.ExitOnError)
	flags.BoolVar(&opts.verbose, "v", false, "verbose logging")
	flags.BoolVar(&opts.quiet, "q", false, "only log errors")
	flags.Uint64Var(&opts.seed, "seed", emulator.DEFAULT_SEED, "seed for the random instruction source")

	err := flags.Parse(os.Args[1:])
	args := flags.Args()
	if err != nil || len(args) != 2 {
		usage(flags)
		os.Exit(1)
	}

	logger := createLogger(opts.verbose, opts.quiet)

	command, path := args[0], args[1]
	switch command {
	case "print":
		err = printListing(path)
	case "trace":
		err = execute(path, opts, &display.Null{}, true, logger)
	case "run":
		window := display.NewWindow("CHIP-8 - ESC to exit",
			display.LOGICAL_WIDTH*display.SCALE, display.LOGICAL_HEIGHT*display.SCALE)
		defer window.Close()
		err = execute(path, opts, window, opts.verbose, logger)
	default:
		usage(flags)
		os.Exit(1)
	}

	if err != nil {
		logger.Fatal(command+" failed", log.Err(err))
	}
}

func usage(flags *flag.FlagSet) {
	fmt.Printf("usage: chip8 [options] <print|trace|run> <program file>\n\n")
	flags.PrintDefaults()
}

// createLogger creates a logger with appropriate settings
func createLogger(verbose, quiet bool) *log.Logger {
	cfg := log.DefaultConfig()
	if verbose {
		cfg.Level = log.DebugLevel
	} else if quiet {
		cfg.Level = log.ErrorLevel
	}
	return log.NewWithConfig(cfg)
}

// printListing decodes every instruction word of the file and prints one
// "XXXX => mnemonic" line per word. Unknown opcodes print without aborting.
func printListing(path string) (err error) {
	program, err := os.ReadFile(path)
	if err != nil {
		return
	}

	for word, inst := range emulator.Listing(program) {
		fmt.Printf("%04X => %v\n", word, inst)
	}

	return
}

// execute loads the program and runs it against the given display sink.
func execute(path string, opts options, disp display.Display, trace bool, logger *log.Logger) (err error) {
	emu := emulator.NewEmulator(opts.seed, disp, logger)
	emu.Trace = trace

	err = emu.LoadFile(path)
	if err != nil {
		return
	}

	return emu.Run()
}
