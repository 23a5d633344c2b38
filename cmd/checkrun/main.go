package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"time"

	"github.com/joho/godotenv"

	"github.com/systemstart/checkrun/pkg/api"
	"github.com/systemstart/checkrun/pkg/logging"
	"github.com/systemstart/checkrun/pkg/runner"
	"github.com/systemstart/checkrun/pkg/ui"
	"github.com/systemstart/checkrun/pkg/watch"
)

var version = "dev"

// Startup failures use their own exit codes; once the pipeline runs, the
// process exits with the aggregate of the step exit codes instead.
const (
	_ = iota
	exitDotenvError
	exitLoadConfigurationFileFailed
	exitLoadContextFailed
	exitBuildStepsFailed
	exitRunFailed
	exitWatchFailed
	exitWorkDirCheckFailed
	exitWorkDirNotADirectory
)

var (
	configFile  string
	contextFile string
	workDir     string
	failFast    bool
	watchMode   bool
	debounce    time.Duration
	noColor     bool
	loggingType string
	logLevel    string
	showVersion bool
)

func init() {
	flag.StringVar(
		&configFile,
		"config",
		"",
		"pipeline configuration file (default: "+api.DefaultConfigFilename+" next to -dir)")
	flag.StringVar(
		&contextFile,
		"context-file",
		"",
		"global context YAML file")
	flag.StringVar(
		&workDir,
		"dir",
		"",
		"working directory for the tools (default: the config file's directory)")
	flag.BoolVar(
		&failFast,
		"fail-fast",
		false,
		"stop at the first failing step instead of running all steps")
	flag.BoolVar(
		&watchMode,
		"watch",
		false,
		"re-run the pipeline when target files change")
	flag.DurationVar(
		&debounce,
		"debounce",
		watch.DefaultDebounce,
		"settle time before a watch-triggered re-run")
	flag.BoolVar(
		&noColor,
		"no-color",
		false,
		"disable styled output")
	flag.StringVar(
		&loggingType,
		"logging-type",
		"tint",
		"logging type: json, text or tint")
	flag.StringVar(
		&logLevel,
		"log-level",
		"info",
		"logging level: debug, info, warn, error")
	flag.BoolVar(
		&showVersion,
		"version",
		false,
		"print version and exit")
}

func main() {
	flag.Parse()

	if showVersion {
		fmt.Println(version)
		os.Exit(0)
	}

	_ = logging.Initialize(loggingType, logLevel, noColor)

	includeEnv()

	globalContext := loadGlobalContext()
	cfg := loadConfiguration()
	dir := resolveWorkDir(cfg)

	steps, err := runner.BuildSteps(cfg, dir, globalContext)
	if err != nil {
		slog.Error("failed to build pipeline steps", "error", err)
		os.Exit(exitBuildStepsFailed)
	}

	printer := ui.NewPrinter(os.Stdout, noColor)
	r := &runner.Runner{
		Stdout:   os.Stdout,
		Stderr:   os.Stderr,
		FailFast: failFast,
		Reporter: printer,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	run := func() int {
		results, runErr := r.Run(ctx, steps)
		if runErr != nil {
			slog.Error("pipeline run failed", "error", runErr)
			return exitRunFailed
		}
		printer.Summary(results)
		return runner.Aggregate(results)
	}

	if watchMode {
		runWatch(ctx, dir, steps, run)
		return
	}

	os.Exit(run())
}

func runWatch(ctx context.Context, dir string, steps []runner.Step, run func() int) {
	run()

	dirs := watch.CollectDirs(dir, steps)
	slog.Info("watching for changes", "directories", len(dirs))

	if err := watch.Watch(ctx, dirs, debounce, func() { run() }); err != nil {
		slog.Error("watch failed", "error", err)
		os.Exit(exitWatchFailed)
	}
}

func loadConfiguration() *api.Config {
	filename := configFile
	if filename == "" {
		filename = api.DefaultConfigFilename
	}

	cfg, err := api.LoadConfig(filename)
	if err != nil {
		slog.Error("failed to load configuration", "filename", filename, "error", err)
		os.Exit(exitLoadConfigurationFileFailed)
	}
	return cfg
}

func resolveWorkDir(cfg *api.Config) string {
	dir := workDir
	if dir == "" {
		dir = cfg.Dir
	}

	st, err := os.Stat(dir)
	if err != nil {
		slog.Error("failed to check working directory", "directory", dir, "error", err)
		os.Exit(exitWorkDirCheckFailed)
	}
	if !st.IsDir() {
		slog.Error("-dir is not a directory", "directory", dir)
		os.Exit(exitWorkDirNotADirectory)
	}
	return dir
}

func loadGlobalContext() map[string]any {
	if contextFile == "" {
		return nil
	}

	ctx, err := api.LoadContextFile(contextFile)
	if err != nil {
		slog.Error("failed to load context file", "filename", contextFile, "error", err)
		os.Exit(exitLoadContextFailed)
	}
	return ctx
}

func includeEnv() {
	err := godotenv.Load()
	if err != nil {
		if !os.IsNotExist(err) {
			slog.Error("failed to load .env", "error", err)
			os.Exit(exitDotenvError)
		}
		slog.Debug("no .env file found")
	} else {
		slog.Info("using .env file")
	}
}
