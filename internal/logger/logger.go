package logger

import (
	"fmt"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var level = zap.NewAtomicLevel()

// Init builds the global zap logger for the given environment and
// replaces zap.L().
func Init(environment string) error {
	var conf zap.Config
	if environment == "production" {
		conf = zap.NewProductionConfig()
	} else {
		conf = zap.NewDevelopmentConfig()
		conf.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	}
	level.SetLevel(conf.Level.Level())
	conf.Level = level

	l, err := conf.Build()
	if err != nil {
		return fmt.Errorf("conf.Build -> %w", err)
	}
	zap.ReplaceGlobals(l)

	return nil
}

// SetLevel changes the level of the global logger at runtime.
func SetLevel(text string) error {
	if text == "" {
		return nil
	}
	var lvl zapcore.Level
	if err := lvl.UnmarshalText([]byte(text)); err != nil {
		return fmt.Errorf("lvl.UnmarshalText -> %w", err)
	}
	level.SetLevel(lvl)

	return nil
}

func Level() zapcore.Level {
	return level.Level()
}
