package logger

import (
	"log"

	"go.uber.org/zap"
)

var base *zap.SugaredLogger

// Init sets up the process-wide logger. Development environments get the
// human-readable console encoder, everything else structured JSON.
func Init(environment string) {
	var (
		l   *zap.Logger
		err error
	)
	if environment == "production" {
		l, err = zap.NewProduction(zap.AddCallerSkip(1))
	} else {
		l, err = zap.NewDevelopment(zap.AddCallerSkip(1))
	}
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	base = l.Sugar()
}

func sugar() *zap.SugaredLogger {
	if base == nil {
		Init("development")
	}
	return base
}

// normalize lets callers pass either key-value pairs or a single error.
func normalize(args []any) []any {
	if len(args) == 1 {
		return []any{"error", args[0]}
	}
	return args
}

func Debug(msg string, args ...any) {
	sugar().Debugw(msg, normalize(args)...)
}

func Info(msg string, args ...any) {
	sugar().Infow(msg, normalize(args)...)
}

func Warn(msg string, args ...any) {
	sugar().Warnw(msg, normalize(args)...)
}

func Error(msg string, args ...any) {
	sugar().Errorw(msg, normalize(args)...)
}

func Fatal(msg string, args ...any) {
	sugar().Fatalw(msg, normalize(args)...)
}
