package logger

import (
	"go.uber.org/zap"
)

// New builds the production zap logger used across the app. The caller
// owns the instance and passes it down; there is no package singleton.
func New() *zap.Logger {
	cfg := zap.NewProductionConfig()
	cfg.OutputPaths = []string{"stdout"}
	log, err := cfg.Build()
	if err != nil {
		panic(err)
	}
	return log
}
