// Package alert implements the user-facing alert surface for a headless
// agent: alerts land on stderr and in the structured log.
package alert

import (
	"fmt"
	"os"

	"go.uber.org/zap"
)

type Console struct {
	log *zap.Logger
}

func NewConsole(log *zap.Logger) *Console {
	return &Console{log: log}
}

func (c *Console) Alert(title, message string) {
	fmt.Fprintf(os.Stderr, "[%s] %s\n", title, message)
	c.log.Warn("user alert", zap.String("title", title), zap.String("message", message))
}
