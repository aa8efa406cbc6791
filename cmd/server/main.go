package main

import (
	"log"

	"github.com/wapjude/CP-2-Document-Mangement-system/internal/app"
	"github.com/wapjude/CP-2-Document-Mangement-system/internal/config"
	"github.com/wapjude/CP-2-Document-Mangement-system/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	if err := logger.Init(cfg.Env); err != nil {
		log.Fatal(err)
	}
	defer logger.Sync()

	if err := app.Run(cfg); err != nil {
		log.Fatal(err)
	}
}
