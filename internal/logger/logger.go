package logger

import (
	"fmt"

	"go.uber.org/zap"
)

// Init builds the global zap logger. Development gets the console
// encoder, everything else the production JSON encoder.
func Init(environment string) error {
	var (
		l   *zap.Logger
		err error
	)

	switch environment {
	case "development", "test":
		l, err = zap.NewDevelopment()
	default:
		l, err = zap.NewProduction()
	}
	if err != nil {
		return fmt.Errorf("zap.New -> %w", err)
	}

	zap.ReplaceGlobals(l)

	return nil
}
