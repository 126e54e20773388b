package main

import (
	"fmt"

	"github.com/amirasaad/greenpoints/infra/initializer"
	"github.com/amirasaad/greenpoints/pkg/service/auth"
	pointssvc "github.com/amirasaad/greenpoints/pkg/service/points"
	usersvc "github.com/amirasaad/greenpoints/pkg/service/user"
	"github.com/amirasaad/greenpoints/webapi"
	log "github.com/charmbracelet/log"
)

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	deps, err := initializer.Initialize()
	if err != nil {
		return fmt.Errorf("failed to initialize dependencies: %w", err)
	}
	cfg := deps.Config
	logger := deps.Logger

	app := webapi.New(cfg, webapi.Services{
		Points: pointssvc.New(deps.UoW, deps.Bus, logger),
		User:   usersvc.New(deps.UoW, logger),
		Auth:   auth.New(deps.UoW, cfg.Jwt, logger),
	})

	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	logger.Info("starting server",
		"env", cfg.Env,
		"address", addr,
		"storage", cfg.Storage.Driver,
	)
	return app.Listen(addr)
}
