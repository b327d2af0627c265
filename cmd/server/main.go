package main

import (
	"github.com/seaotterie/grantgraph/internal/server"
	"github.com/seaotterie/grantgraph/internal/util"
	"github.com/seaotterie/grantgraph/pkg/logger"
	"github.com/seaotterie/grantgraph/pkg/logger/console"

	_ "github.com/lib/pq"
)

func main() {
	util.LoadEnv()

	debug := util.GetEnvBool("DEBUG", false)

	consoleLogger := console.NewConsoleLogger(console.ConsoleLoggerParams{
		Debug: debug,
	})
	logger.Init(consoleLogger)

	server.Init()
}
