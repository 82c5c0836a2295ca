package slogcustom

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"sync"

	"github.com/fatih/color"
)

// CustomHandler печатает записи одной цветной строкой:
// время, уровень, сообщение и атрибуты key=value.
type CustomHandler struct {
	mu    *sync.Mutex
	out   io.Writer
	level slog.Leveler
	// attrs — уже отформатированные атрибуты из WithAttrs.
	attrs  string
	prefix string
}

func NewCustomHandler(out io.Writer, level slog.Leveler) *CustomHandler {
	return &CustomHandler{
		mu:    &sync.Mutex{},
		out:   out,
		level: level,
	}
}

func (c *CustomHandler) Handle(_ context.Context, r slog.Record) error {
	level := r.Level.String() + ":"

	switch {
	case r.Level >= slog.LevelError:
		level = color.RedString(level)
	case r.Level >= slog.LevelWarn:
		level = color.YellowString(level)
	case r.Level >= slog.LevelInfo:
		level = color.HiBlueString(level)
	default:
		level = color.MagentaString(level)
	}

	var sb strings.Builder
	sb.WriteString(r.Time.Format("15:04:05.000"))
	sb.WriteString(" ")
	sb.WriteString(level)
	sb.WriteString(" ")
	sb.WriteString(r.Message)
	sb.WriteString(c.attrs)

	r.Attrs(func(a slog.Attr) bool {
		appendAttr(&sb, c.prefix, a)
		return true
	})
	sb.WriteString("\n")

	c.mu.Lock()
	defer c.mu.Unlock()

	_, err := io.WriteString(c.out, sb.String())
	return err
}

func appendAttr(sb *strings.Builder, prefix string, a slog.Attr) {
	a.Value = a.Value.Resolve()
	if a.Equal(slog.Attr{}) {
		return
	}

	if a.Value.Kind() == slog.KindGroup {
		groupPrefix := prefix
		if a.Key != "" {
			groupPrefix += a.Key + "."
		}
		for _, ga := range a.Value.Group() {
			appendAttr(sb, groupPrefix, ga)
		}
		return
	}

	sb.WriteString(" ")
	sb.WriteString(color.GreenString(prefix + a.Key))
	sb.WriteString("=")
	sb.WriteString(fmt.Sprint(a.Value.Any()))
}

func (c *CustomHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	if len(attrs) == 0 {
		return c
	}

	var sb strings.Builder
	sb.WriteString(c.attrs)
	for _, a := range attrs {
		appendAttr(&sb, c.prefix, a)
	}

	clone := *c
	clone.attrs = sb.String()

	return &clone
}

func (c *CustomHandler) WithGroup(name string) slog.Handler {
	if name == "" {
		return c
	}

	clone := *c
	clone.prefix = c.prefix + name + "."

	return &clone
}

func (c *CustomHandler) Enabled(_ context.Context, level slog.Level) bool {
	return level >= c.level.Level()
}
