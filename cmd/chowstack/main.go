package main

import (
	"github.com/bwmarrin/snowflake"
	"github.com/chowstack/chowstack/internal/clock"
	"github.com/chowstack/chowstack/internal/config"
	"github.com/chowstack/chowstack/internal/logger"
	"github.com/chowstack/chowstack/internal/migration"
	"github.com/chowstack/chowstack/internal/server"
	"github.com/chowstack/chowstack/pkg/db"
	"go.uber.org/fx"
)

func main() {
	app := fx.New(
		config.Module,
		logger.Module,
		db.Module,
		clock.Module,
		fx.Provide(newSnowflakeNode),
		migration.Module,
		server.Module,
	)
	app.Run()
}

func newSnowflakeNode() (*snowflake.Node, error) {
	return snowflake.NewNode(1)
}
