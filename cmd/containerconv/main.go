// containerconv converts a value container between the text formats spoken
// by the C++, Python, .NET and Go implementations.
//
// The input format is detected: v2 JSON, the nested C++ JSON, the flat
// Python JSON, or the @header/@data wire protocol. The output format is
// chosen with --to.
//
//	containerconv --to wire message.json
//	cat message.txt | containerconv --to v2 --pretty
//	containerconv --detect message.json
//
// Settings may also come from a TOML file given with --config. Flags given
// on the command line override the file.
package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/pflag"

	"github.com/arloliu/valuecontainer/format"
	"github.com/arloliu/valuecontainer/jsonv2"
)

func main() {
	if err := run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr); err != nil {
		fmt.Fprintf(os.Stderr, "containerconv: %v\n", err)
		os.Exit(1)
	}
}

func run(args []string, stdin io.Reader, stdout, stderr io.Writer) error {
	var (
		target     string
		pretty     bool
		lenient    bool
		maxValues  int
		logLevel   string
		configPath string
		detect     bool
	)

	flagSet := pflag.NewFlagSet("containerconv", pflag.ContinueOnError)
	flagSet.SetOutput(stderr)
	flagSet.StringVarP(&target, "to", "t", "v2", "output format: v2, cpp, python or wire")
	flagSet.BoolVarP(&pretty, "pretty", "p", false, "indent JSON output")
	flagSet.BoolVar(&lenient, "lenient", false, "accept comments and trailing commas in JSON input")
	flagSet.IntVar(&maxValues, "max-values", 0, "maximum number of values accepted from the input")
	flagSet.StringVar(&logLevel, "log-level", "", "log level: debug, info, warn or error")
	flagSet.StringVarP(&configPath, "config", "c", "", "path to a TOML config file")
	flagSet.BoolVar(&detect, "detect", false, "print the detected input format and exit")
	flagSet.Usage = func() {
		fmt.Fprintf(stderr, "Usage: containerconv [flags] [input]\n\nReads stdin when input is omitted or \"-\".\n\nFlags:\n")
		flagSet.PrintDefaults()
	}

	if err := flagSet.Parse(args); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return nil
		}
		return err
	}
	if flagSet.NArg() > 1 {
		return fmt.Errorf("unexpected argument: %s", flagSet.Arg(1))
	}

	cfg := defaultConfig()
	if configPath != "" {
		if err := loadConfig(configPath, &cfg); err != nil {
			return err
		}
	}
	if flagSet.Changed("to") {
		if err := cfg.setTarget(target); err != nil {
			return err
		}
	}
	if flagSet.Changed("pretty") {
		cfg.Pretty = pretty
	}
	if flagSet.Changed("lenient") {
		cfg.Lenient = lenient
	}
	if flagSet.Changed("max-values") {
		cfg.MaxValues = maxValues
	}
	if flagSet.Changed("log-level") {
		if err := cfg.setLogLevel(logLevel); err != nil {
			return err
		}
	}

	logger := newLogger(stderr, cfg.LogLevel)

	adapter, err := jsonv2.NewAdapter(
		jsonv2.WithPretty(cfg.Pretty),
		jsonv2.WithLenient(cfg.Lenient),
		jsonv2.WithMaxValues(cfg.MaxValues),
		jsonv2.WithLogger(logger),
	)
	if err != nil {
		return err
	}

	input, err := readInput(flagSet.Arg(0), stdin)
	if err != nil {
		return err
	}

	if detect {
		f := adapter.DetectFormat(input)
		fmt.Fprintln(stdout, f)
		if f == format.FormatUnknown {
			return errors.New("input format not recognized")
		}

		return nil
	}

	out, err := adapter.ConvertFormat(input, cfg.Target)
	if err != nil {
		return err
	}
	logger.Info().Stringer("to", cfg.Target).Int("bytes", len(out)).Msg("conversion complete")

	_, err = fmt.Fprintln(stdout, out)

	return err
}

func newLogger(w io.Writer, level zerolog.Level) zerolog.Logger {
	output := zerolog.ConsoleWriter{
		Out:        w,
		TimeFormat: time.RFC3339,
	}

	return zerolog.New(output).Level(level).With().Timestamp().Str("app", "containerconv").Logger()
}

func readInput(path string, stdin io.Reader) (string, error) {
	if path == "" || path == "-" {
		data, err := io.ReadAll(stdin)
		if err != nil {
			return "", fmt.Errorf("read stdin: %w", err)
		}

		return string(data), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("read input: %w", err)
	}

	return string(data), nil
}
