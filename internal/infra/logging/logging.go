package logging

import (
	"strings"

	"github.com/labstack/gommon/log"
)

// echoと同じgommonのロガー。usecaseにもこれを渡す
func New(level string) *log.Logger {
	l := log.New("handicrafts")
	l.SetHeader(`${time_rfc3339} ${level} ${short_file}:${line}`)
	l.SetLevel(ParseLevel(level))
	return l
}

// 不明な値はINFO
func ParseLevel(s string) log.Lvl {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return log.DEBUG
	case "warn", "warning":
		return log.WARN
	case "error":
		return log.ERROR
	case "off":
		return log.OFF
	default:
		return log.INFO
	}
}
