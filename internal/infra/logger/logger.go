package logger

import (
	"log/slog"
	"os"
	"strings"
)

// Init inicializa o logger global no nível informado (debug, info, warn, error).
func Init(level string) {
	// Cria um logger JSON estruturado
	handler := slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: parseLevel(level),
	})
	logger := slog.New(handler)
	slog.SetDefault(logger)
}

func parseLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// Debug registra uma mensagem de depuração.
func Debug(msg string, args ...any) {
	slog.Debug(msg, args...)
}

// Info registra uma mensagem de informação.
func Info(msg string, args ...any) {
	slog.Info(msg, args...)
}

// Warn registra um aviso.
func Warn(msg string, args ...any) {
	slog.Warn(msg, args...)
}

// Error registra uma mensagem de erro.
func Error(msg string, args ...any) {
	slog.Error(msg, args...)
}
