package main

import (
	"os"

	"pangkas/pkg/dupcheck"

	"github.com/gin-gonic/gin"
)

var jwtSecret []byte

var dedup *dupcheck.Store

func main() {
	cfg, err := InitConfig()
	if err != nil {
		log.Fatalf("failed to load config: %s", err)
	}
	if err := InitLogger(cfg.LogLevel); err != nil {
		log.Fatalf("%s", err)
	}
	jwtSecret = []byte(cfg.JWTSecret)

	// Support a lightweight migrate command: `./pangkas migrate`
	// It runs AutoMigrate and seeding then exits. Useful for CI or manual DB setup.
	if len(os.Args) > 1 && os.Args[1] == "migrate" {
		initDB(cfg)
		log.Info("migration and seeding completed")
		return
	}

	initDB(cfg)

	dedup, err = dupcheck.Open(cfg.DedupDBPath)
	if err != nil {
		log.Fatalf("failed to open dedup store: %s", err)
	}
	defer dedup.Close()

	r := gin.Default()

	setupRoutes(r)

	log.Infof("listening on %s", cfg.Address)
	if err := r.Run(cfg.Address); err != nil {
		log.Fatalf("server stopped: %s", err)
	}
}
