package app

import (
	"github.com/okaforcj/examforge-backend/internal/logger"
	"github.com/okaforcj/examforge-backend/internal/utils"
)

type Config struct {
	ServiceName string
	Environment string
	Version     string
	Port        string
}

func LoadConfig(log *logger.Logger) Config {
	return Config{
		ServiceName: utils.GetEnv("SERVICE_NAME", "examforge", log),
		Environment: utils.GetEnv("ENVIRONMENT", "development", log),
		Version:     utils.GetEnv("SERVICE_VERSION", "dev", log),
		Port:        utils.GetEnv("PORT", "8080", log),
	}
}
