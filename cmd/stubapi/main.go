package main

import (
	"github.com/joho/godotenv"

	"github.com/svcdesk/adminconsole/internal/infrastructure/config"
	"github.com/svcdesk/adminconsole/internal/stubapi"
	"github.com/svcdesk/adminconsole/pkg/logger"
)

func main() {
	_ = godotenv.Load()
	cfg := config.Load()

	log := logger.Init(logger.Options{
		Level:  cfg.LogLevel,
		Pretty: cfg.Env == "development",
	})

	e := stubapi.New(cfg.Stub.JWTSecret, cfg.Stub.TokenTTL, log)
	log.Info().Str("addr", cfg.Stub.Addr).Msg("stub backend listening")
	if err := e.Start(cfg.Stub.Addr); err != nil {
		log.Fatal().Err(err).Msg("stub backend stopped")
	}
}
