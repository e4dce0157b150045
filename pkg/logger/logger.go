// Package logger arma el logger estructurado del gateway sobre zerolog.
// En development escribe consola legible; en cualquier otro entorno emite JSON
// por stdout, una línea por evento, listo para el colector.
package logger

import (
	"io"
	"os"
	"strings"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Config opciones de arranque del logger.
type Config struct {
	Env   string // "development" habilita la consola legible
	Level string // trace, debug, info, warn, error; info si está vacío o no parsea
}

// Logger envoltorio inyectable sobre zerolog.
type Logger struct {
	zl zerolog.Logger
}

// New construye el logger del proceso. También redirige el logger global de
// zerolog para que las librerías que loguean por su cuenta salgan por el
// mismo writer.
func New(cfg Config) *Logger {
	var w io.Writer = os.Stdout
	if cfg.Env == "development" {
		w = zerolog.ConsoleWriter{Out: os.Stdout}
	}

	level, err := zerolog.ParseLevel(strings.ToLower(strings.TrimSpace(cfg.Level)))
	if err != nil || level == zerolog.NoLevel {
		level = zerolog.InfoLevel
	}

	zl := zerolog.New(w).Level(level).With().Timestamp().Logger()
	log.Logger = zl

	return &Logger{zl: zl}
}

// Eventos por nivel, delegados a zerolog.
func (l *Logger) Trace() *zerolog.Event { return l.zl.Trace() }
func (l *Logger) Debug() *zerolog.Event { return l.zl.Debug() }
func (l *Logger) Info() *zerolog.Event  { return l.zl.Info() }
func (l *Logger) Warn() *zerolog.Event  { return l.zl.Warn() }
func (l *Logger) Error() *zerolog.Event { return l.zl.Error() }
func (l *Logger) Fatal() *zerolog.Event { return l.zl.Fatal() }

// With crea un sublogger con campos fijos, útil para etiquetar un almacén o
// un cliente remoto concreto.
func (l *Logger) With() zerolog.Context {
	return l.zl.With()
}

// Zerolog expone el logger interno cuando hace falta la API directa.
func (l *Logger) Zerolog() zerolog.Logger {
	return l.zl
}
