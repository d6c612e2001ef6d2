// Command statement exports one account's transaction history as a PDF,
// straight from the snapshot file. Operator tool; it bypasses PIN checks.
package main

import (
	"flag"
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
	acct := flag.String("account", "", "account number to export")
	out := flag.String("out", "statement.pdf", "output PDF path")
	flag.Parse()

	if *acct == "" {
		logger.Fatal().Msg("missing -account")
	}

	cfg := atmgo.DefaultConfig()
	if cfgfl, err := os.Open(*cfp); err == nil {
		if err = yaml.NewDecoder(cfgfl).Decode(&cfg); err != nil {
			logger.Fatal().Err(err).Msg("error decoding config file")
		}
		cfgfl.Close()
	}

	store := atmgo.NewFileStore(cfg.Snapshot.Path)
	svc := atmgo.NewService(store, cfg, &logger)

	f, err := os.Create(*out)
	if err != nil {
		logger.Fatal().Err(err).Msg("error creating output file")
	}
	defer f.Close()

	if err = svc.Statement(f, atmgo.StatementReq{Number: *acct}); err != nil {
		logger.Fatal().Err(err).Str("account", *acct).Msg("error exporting statement")
	}
	logger.Info().Str("account", *acct).Str("out", *out).Msg("statement exported")
}
