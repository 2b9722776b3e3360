package logger

import "go.uber.org/zap"

// New builds a production logger for "production" and a development logger otherwise.
func New(env string) (*zap.Logger, error) {
	if env == "production" {
		return zap.NewProduction()
	}

	return zap.NewDevelopment()
}
