package main

import (
	"log"
	"os"

	"github.com/m3rciful/portfoliobot/bot"
	"github.com/m3rciful/portfoliobot/core/cmd"
	"github.com/m3rciful/portfoliobot/core/logger"
)

func main() {
	err := cmd.Run(cmd.Options{
		DefaultConfigPath: "config.yaml",
		LoadConfig: func(path string) (cmd.ConfigCarrier, error) {
			cfg, err := bot.Load(path)
			if err != nil {
				return nil, err
			}
			return cfg, nil
		},
		Bootstrap: bot.Bootstrap,
	})
	if err != nil {
		// The structured logger may already be closed here.
		_ = logger.Shutdown()
		log.Printf("portfoliobot: %v", err)
		os.Exit(1)
	}
}
