// cmd/tideweave/main.go
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	stlog "log"
	"os"
	"path/filepath"

	"github.com/bethropolis/tideweave/internal/app"
	"github.com/bethropolis/tideweave/internal/config"
	"github.com/bethropolis/tideweave/internal/logger"
	"github.com/bethropolis/tideweave/internal/tui"
)

var version = "dev"

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	var flags config.Flags
	fs := flag.NewFlagSet(config.AppName, flag.ContinueOnError)
	rest, err := flags.ParseFlags(fs, args)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return 0
		}
		return 2
	}
	if *flags.Version {
		fmt.Printf("%s %s\n", config.AppName, version)
		return 0
	}

	cfg, err := config.LoadConfig(*flags.ConfigFilePath, &flags)
	if err != nil {
		stlog.Printf("Warning: %v (using defaults)", err)
	}

	output, closeLog, err := openLog(cfg.Logger.LogFilePath)
	if err != nil {
		stlog.Fatalf("Failed to open log file '%s': %v", cfg.Logger.LogFilePath, err)
	}
	defer closeLog()
	logger.SetDebugFilter(*flags.DebugLog)
	logger.Init(cfg.Logger, output)

	filePath := ""
	if len(rest) > 0 {
		filePath = rest[0]
	}
	logger.Infof("Starting %s %s (file %q)", config.AppName, version, filePath)

	th := app.LoadTheme(cfg.Editor)
	ui, err := tui.New(th)
	if err != nil {
		logger.Errorf("Error initializing terminal: %v", err)
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	editorApp, err := app.New(cfg, filePath, ui, th)
	if err != nil {
		ui.Close()
		logger.Errorf("Error initializing application: %v", err)
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	if err := editorApp.Run(); err != nil {
		logger.Errorf("Application exited with error: %v", err)
		return 1
	}
	logger.Infof("%s finished", config.AppName)
	return 0
}

// openLog opens the log destination: stderr for "-", the default file under
// the user cache directory when path is empty.
func openLog(path string) (io.Writer, func(), error) {
	switch path {
	case "-":
		return os.Stderr, func() {}, nil
	case "":
		dir, err := os.UserCacheDir()
		if err != nil {
			return nil, func() {}, nil
		}
		dir = filepath.Join(dir, config.AppName)
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, nil, err
		}
		path = filepath.Join(dir, config.DefaultLogFileName)
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o666)
	if err != nil {
		return nil, nil, err
	}
	return f, func() { f.Close() }, nil
}
