package main

import (
	"flag"
	"os"
	"path/filepath"
	"strings"
	"time"

	"stairwell/internal/config"
	"stairwell/internal/game"

	"github.com/getsentry/sentry-go"
	"github.com/go-echarts/statsview"
	"github.com/go-echarts/statsview/viewer"
	"github.com/sirupsen/logrus"
)

const defaultConfig = "stairwell.yaml"

func main() {
	configFlag := flag.String("config", defaultConfig, "path to the config file")
	debug := flag.Bool("debug", false, "show the debug overlay")
	statsAddr := flag.String("statsview", "", "serve runtime stats on this address, e.g. localhost:18066")
	flag.Parse()

	log := logrus.New()
	log.Formatter = &logrus.TextFormatter{ForceColors: true}

	var explicit bool
	flag.Visit(func(f *flag.Flag) { explicit = explicit || f.Name == "config" })
	configPath, err := configFile(*configFlag, explicit)
	if err != nil {
		log.WithError(err).Fatal("config: bad path")
	}

	// Change working directory to executable location for deployed builds.
	// Skip this for "go run" which puts the binary in a temp directory.
	if execPath, err := os.Executable(); err == nil {
		execDir := filepath.Dir(execPath)
		if !strings.Contains(execDir, "go-build") {
			os.Chdir(execDir)
		}
	}

	cfg, err := config.Load(configPath)
	if err != nil {
		log.WithError(err).Fatal("config: load failed")
	}
	cfg.Debug = cfg.Debug || *debug
	log.SetLevel(cfg.Level())

	if cfg.SentryDSN != "" {
		if err := sentry.Init(sentry.ClientOptions{Dsn: cfg.SentryDSN}); err != nil {
			log.WithError(err).Warn("sentry: init failed")
		}
		defer sentry.Flush(5 * time.Second)
	}
	defer func() {
		if v := recover(); v != nil {
			hub := sentry.CurrentHub().Clone()
			hub.Recover(v)
			hub.Flush(5 * time.Second)
			panic(v)
		}
	}()

	if *statsAddr != "" {
		// set configurations before calling `statsview.New()` method
		viewer.SetConfiguration(viewer.WithTheme(viewer.ThemeWesteros), viewer.WithAddr(*statsAddr))
		mgr := statsview.New()
		go mgr.Start()
		defer mgr.Stop()
		log.WithField("addr", *statsAddr).Info("statsview: serving")
	}

	g, err := game.New(cfg, log, nil)
	if err != nil {
		log.WithError(err).Fatal("game: setup failed")
	}

	if w, err := config.Watch(configPath, config.DefaultDebounce); err != nil {
		log.WithError(err).Warn("config: hot reload disabled")
	} else {
		defer w.Close()
		g.Watch(w)
	}

	g.Run()
}

// configFile makes a -config path given on the command line absolute, so it
// stays relative to where the game was launched from. The default is left
// relative and found next to the executable.
func configFile(path string, explicit bool) (string, error) {
	if !explicit || filepath.IsAbs(path) {
		return path, nil
	}
	return filepath.Abs(path)
}
