package utils

import (
	"go.uber.org/zap"
)

// InitLogger builds the process logger. Development mode uses the
// human-readable console encoder, production emits JSON.
func InitLogger(production bool) (*zap.Logger, error) {
	if production {
		return zap.NewProduction()
	}
	return zap.NewDevelopment()
}
