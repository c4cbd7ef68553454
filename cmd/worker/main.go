package main

import (
	"quickcourt/config"
	"quickcourt/di"
	"quickcourt/shared/logger"
)

func main() {
	cfg := config.Get()

	logger.InitLogger()

	logger.SetLogLevel(cfg)

	worker := di.InitializeWorker()
	worker.Run()
}
