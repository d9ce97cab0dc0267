package main

import (
	"os"

	"yildizli-agac-api/core/logger"
	"yildizli-agac-api/core/server"
)

// @title Yıldızlı Ağaç API
// @version 1.0
// @description Secret Santa matching, meeting time proposals and overlap notifications

// @BasePath /api/v1

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Session token. Example: "Bearer {token}"

// @securityDefinitions.apikey InternalKey
// @in header
// @name X-Internal-Key

func main() {
	if err := server.Run(); err != nil {
		logger.Error("run server error", err)
		os.Exit(1)
	}
}
