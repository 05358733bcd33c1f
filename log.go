package main

import (
	stdlog "log"
	"os"

	"github.com/mattn/go-isatty"
)

type logger struct {
	color bool
}

var log = logger{
	color: isatty.IsTerminal(os.Stderr.Fd()) || isatty.IsCygwinTerminal(os.Stderr.Fd()),
}

func (l *logger) prefix(color string, level string) string {
	if !l.color {
		return "[" + level + "] "
	}
	return "\u001B[" + color + "m[" + level + "]\u001B[0;39m "
}

func (l *logger) Warn(format string, value ...any) {
	stdlog.Printf(l.prefix("0;33", "WARN")+format, value...)
}

func (l *logger) Err(format string, value ...any) {
	stdlog.Printf(l.prefix("0;31", "ERROR")+format, value...)
}

func (l *logger) Info(format string, value ...any) {
	stdlog.Printf(l.prefix("0;32", "INFO")+format, value...)
}

func (l *logger) Fatal(format string, value ...any) {
	stdlog.Fatalf(l.prefix("0;31", "FATAL")+format, value...)
}
