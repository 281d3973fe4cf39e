package logger

import (
	"log"

	"go.uber.org/zap"
)

// New monta o logger global do serviço.
// Em dev usa o encoder legível; em produção, JSON.
func New(devMode bool) *zap.Logger {
	var (
		l   *zap.Logger
		err error
	)

	if devMode {
		l, err = zap.NewDevelopment()
	} else {
		l, err = zap.NewProduction()
	}

	if err != nil {
		log.Fatalf("failed to build logger: %v", err)
	}

	return l
}
