package main

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/vela-lang/vela/internal/config"
	"github.com/vela-lang/vela/internal/diagnostics"
)

const usage = `Usage: vela <command> [flags] <file.yaml>

Commands:
  annotate    register the declarations and print each constructor's
              forcing annotations
  translate   additionally run the forcing translation over every
              clause and print the result

Flags:
  --config <path>   project file (default: nearest vela.yaml)
  --trace <level>   trace verbosity (0 disables)
  --no-color        disable ANSI color in diagnostics
  --watch           re-run on file changes
  --no-forcing      disable the forcing analysis entirely
`

func main() {
	args := os.Args[1:]
	if len(args) == 0 || args[0] == "help" || args[0] == "-help" || args[0] == "--help" {
		fmt.Fprint(os.Stderr, usage)
		os.Exit(2)
	}

	command := args[0]
	if command != "annotate" && command != "translate" {
		fmt.Fprintf(os.Stderr, "unknown command: %s\n\n%s", command, usage)
		os.Exit(2)
	}

	var (
		configPath string
		traceLevel = -1
		noColor    bool
		watch      bool
		noForcing  bool
		file       string
	)
	rest := args[1:]
	for i := 0; i < len(rest); i++ {
		arg := rest[i]
		switch {
		case arg == "--config":
			i++
			if i >= len(rest) {
				fmt.Fprintln(os.Stderr, "--config needs a path")
				os.Exit(2)
			}
			configPath = rest[i]
		case arg == "--trace":
			i++
			if i >= len(rest) {
				fmt.Fprintln(os.Stderr, "--trace needs a level")
				os.Exit(2)
			}
			level, err := strconv.Atoi(rest[i])
			if err != nil || level < 0 {
				fmt.Fprintf(os.Stderr, "invalid trace level: %s\n", rest[i])
				os.Exit(2)
			}
			traceLevel = level
		case arg == "--no-color":
			noColor = true
		case arg == "--watch":
			watch = true
		case arg == "--no-forcing":
			noForcing = true
		case len(arg) > 1 && arg[0] == '-':
			fmt.Fprintf(os.Stderr, "unknown flag: %s\n\n%s", arg, usage)
			os.Exit(2)
		default:
			if file != "" {
				fmt.Fprintf(os.Stderr, "unexpected argument: %s\n", arg)
				os.Exit(2)
			}
			file = arg
		}
	}
	if file == "" {
		fmt.Fprintf(os.Stderr, "%s needs a declaration file\n\n%s", command, usage)
		os.Exit(2)
	}
	if !isDeclFile(file) {
		fmt.Fprintf(os.Stderr, "not a declaration file: %s\n", file)
		os.Exit(2)
	}

	opts, err := loadOptions(configPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	if traceLevel >= 0 {
		opts.Verbosity = traceLevel
	}
	if noColor {
		opts.NoColor = true
	}
	if noForcing {
		opts.Forcing = false
	}

	color := !opts.NoColor && diagnostics.ShouldColor(os.Stderr.Fd())
	runner := &runner{
		command: command,
		file:    file,
		opts:    opts,
		out:     os.Stdout,
		errOut:  os.Stderr,
		color:   color,
	}

	if watch {
		if err := watchLoop(file, runner); err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
		return
	}
	os.Exit(runner.run())
}

// isDeclFile checks if a file has a recognized declaration-set extension
func isDeclFile(path string) bool {
	for _, ext := range config.DeclFileExtensions {
		if strings.HasSuffix(path, ext) {
			return true
		}
	}
	return false
}

func loadOptions(configPath string) (*config.Options, error) {
	if configPath != "" {
		return config.Load(configPath)
	}
	cwd, err := os.Getwd()
	if err != nil {
		return nil, err
	}
	found, err := config.Find(cwd)
	if err != nil {
		return nil, err
	}
	if found == "" {
		return config.Default(), nil
	}
	return config.Load(found)
}
