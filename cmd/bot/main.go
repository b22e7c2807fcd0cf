package main

import (
	"errors"
	"log"
	"os"

	"github.com/joho/godotenv"

	"github.com/ksokolovskiy/ks-buy-bot/app"
	"github.com/ksokolovskiy/ks-buy-bot/core/cmd"
)

var errUnexpectedConfig = errors.New("unexpected config carrier type")

func main() {
	// .env is optional; real deployments pass env vars directly
	_ = godotenv.Load()

	err := cmd.Run(cmd.Options{
		ConfigEnvVar:      "CONFIG_PATH",
		DefaultConfigPath: "config.yaml",
		LoadConfig: func(path string) (cmd.ConfigCarrier, error) {
			return app.Load(path)
		},
		Bootstrap: func(carrier cmd.ConfigCarrier) (cmd.TelegramApp, error) {
			cfg, ok := carrier.(*app.Config)
			if !ok {
				return nil, errUnexpectedConfig
			}
			return app.Bootstrap(cfg)
		},
	})
	if err != nil {
		log.Printf("fatal: %v", err)
		os.Exit(1)
	}
}
