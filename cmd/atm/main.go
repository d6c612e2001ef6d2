package main

import (
	"errors"
	"flag"
	"io/fs"
	"os"

	"atmgo"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"gopkg.in/yaml.v3"
)

func main() {
	zerolog.SetGlobalLevel(zerolog.InfoLevel)
	logger := zerolog.New(os.Stderr).With().Timestamp().Logger()

	_ = godotenv.Load()
	defaultPath := os.Getenv("ATM_CONFIG")
	if defaultPath == "" {
		defaultPath = "config.yml"
	}
	cfp := flag.String("config", defaultPath, "path to configuration file")
	flag.Parse()

	cfg := atmgo.DefaultConfig()
	cfgfl, err := os.Open(*cfp)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		logger.Info().Str("path", *cfp).Msg("no config file, using defaults")
	case err != nil:
		logger.Fatal().Err(err).Msg("error opening config file")
	default:
		if err = yaml.NewDecoder(cfgfl).Decode(&cfg); err != nil {
			logger.Fatal().Err(err).Msg("error decoding config file")
		}
		cfgfl.Close()
	}

	store := atmgo.NewBreakerStore(atmgo.NewFileStore(cfg.Snapshot.Path))
	svc := atmgo.NewService(store, cfg, &logger)

	var wired atmgo.Service = svc
	for _, mw := range []atmgo.Middleware{
		atmgo.NewValidationMiddleware(),
		atmgo.NewLoggingMiddleware(&logger),
	} {
		wired = mw(wired)
	}

	sh := atmgo.NewShell(wired, cfg.Banks, os.Stdin, os.Stdout, &logger)
	sh.Run()
}
