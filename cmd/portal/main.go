package main

import (
	"github.com/bwmarrin/snowflake"
	"github.com/markproof/portal/internal/config"
	"github.com/markproof/portal/internal/migration"
	"github.com/markproof/portal/internal/observability"
	"github.com/markproof/portal/internal/server"
	"github.com/markproof/portal/pkg/db"
	"github.com/markproof/portal/pkg/log"
	"go.uber.org/fx"
)

func main() {
	app := fx.New(
		config.Module,
		log.Module,
		observability.Module,
		fx.Provide(RegisterSnowflake),
		db.Module,
		migration.Module,
		server.Module,
	)
	app.Run()
}

func RegisterSnowflake() (*snowflake.Node, error) {
	return snowflake.NewNode(1)
}
