package main

import (
	"hoteldesk/config"
	"hoteldesk/di"
	"hoteldesk/shared/logger"
)

func main() {
	cfg := config.Get()

	logger.InitLogger()

	logger.SetLogLevel(cfg)

	http := di.InitializeService()
	http.Serve()
}
