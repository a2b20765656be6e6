// bitsctl decodes a BITS transmission and prints the version sum (P1) and
// the evaluated value (P2) of its root packet.
package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/danmuck/bitsctl/internal/logging"
	"github.com/danmuck/bitsctl/internal/protocol"
	"github.com/danmuck/bitsctl/internal/protocol/packet"
	"github.com/rs/zerolog/log"
	"github.com/spf13/pflag"
)

func main() {
	if err := run(os.Args[1:], os.Stdout); err != nil {
		fmt.Fprintf(os.Stderr, "bitsctl: %v\n", err)
		os.Exit(1)
	}
}

func run(args []string, stdout io.Writer) error {
	var (
		configPath string
		inputPath  string
		printTree  bool
		logLevel   string
	)
	flagSet := pflag.NewFlagSet("bitsctl", pflag.ContinueOnError)
	flagSet.SetOutput(stdout)
	flagSet.StringVar(&configPath, "config", "", "path to a TOML config file")
	flagSet.StringVar(&inputPath, "input", "", "path to the hex transmission (default "+defaultInputPath+")")
	flagSet.BoolVar(&printTree, "tree", false, "print the decoded packet tree")
	flagSet.StringVar(&logLevel, "log-level", "", "log level (trace, debug, info, warn, error, off)")
	flagSet.BoolP("help", "h", false, "show help")

	if err := flagSet.Parse(args); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			printHelp(stdout, flagSet)
			return nil
		}
		return err
	}
	if help, _ := flagSet.GetBool("help"); help {
		printHelp(stdout, flagSet)
		return nil
	}
	if flagSet.NArg() > 1 {
		return fmt.Errorf("expected at most one hex argument, got %d", flagSet.NArg())
	}

	logging.ConfigureRuntime()

	cfg := defaultRunConfig()
	if configPath != "" {
		loaded, err := loadRunConfig(configPath)
		if err != nil {
			return err
		}
		cfg = loaded
	}
	if flagSet.Changed("input") {
		cfg.Input = inputPath
	}
	if flagSet.Changed("tree") {
		cfg.PrintTree = printTree
	}
	if flagSet.Changed("log-level") {
		if err := cfg.setLogLevel(logLevel); err != nil {
			return err
		}
	}
	if cfg.LogLevelSet {
		logging.SetLevel(cfg.LogLevel)
	}

	text, source, err := readTransmission(flagSet.Args(), cfg.Input)
	if err != nil {
		return err
	}
	log.Debug().Str("source", source).Int("chars", len(text)).Msg("bitsctl input")

	report, err := protocol.Analyze(text, cfg.Limits)
	if err != nil {
		return fmt.Errorf("%s: %w", source, err)
	}

	if cfg.PrintTree {
		fmt.Fprint(stdout, packet.Format(report.Root))
	}
	fmt.Fprintf(stdout, "P1: %d\n", report.VersionSum)
	fmt.Fprintf(stdout, "P2: %d\n", report.Value)
	return nil
}

func readTransmission(args []string, path string) (string, string, error) {
	if len(args) == 1 {
		return args[0], "argument", nil
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return "", path, fmt.Errorf("read input: %w", err)
	}
	return strings.TrimRight(string(b), " \t\r\n"), path, nil
}

func printHelp(w io.Writer, flagSet *pflag.FlagSet) {
	fmt.Fprintln(w, "usage: bitsctl [flags] [HEX]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Decodes HEX, or the input file when HEX is omitted, and prints")
	fmt.Fprintln(w, "the version sum (P1) and value (P2) of the root packet.")
	fmt.Fprintln(w)
	flagSet.PrintDefaults()
}
