package logger

import (
	"bytes"
	"errors"
	"log/slog"
	"strings"
	"testing"
)

func TestCustomHandler_Handle(t *testing.T) {
	tests := []struct {
		name     string
		level    slog.Level
		log      func(l *slog.Logger)
		contains []string
		empty    bool
	}{
		{
			name:  "info with db type",
			level: slog.LevelInfo,
			log: func(l *slog.Logger) {
				l.Info("Query executed", slog.String("type", "db"), slog.Int("rows", 3))
			},
			contains: []string{"[MekGold]", "[DB]", "Query executed", "rows=3"},
		},
		{
			name:  "economy type from logger attrs",
			level: slog.LevelInfo,
			log: func(l *slog.Logger) {
				l.With(slog.String("type", "economy")).Info("Gold collected")
			},
			contains: []string{"[ECO]", "Gold collected"},
		},
		{
			name:  "error details",
			level: slog.LevelInfo,
			log: func(l *slog.Logger) {
				l.Error("Collect failed", slog.String("type", "error"), slog.Any("error", errors.New("boom")))
			},
			contains: []string{"ERROR", "[ERR]", `error="boom"`},
		},
		{
			name:  "debug filtered below level",
			level: slog.LevelInfo,
			log: func(l *slog.Logger) {
				l.Debug("noisy")
			},
			empty: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			tt.log(slog.New(NewHandlerWithWriter(&buf, "MekGold", tt.level)))

			out := buf.String()
			if tt.empty {
				if out != "" {
					t.Errorf("expected no output, got %q", out)
				}
				return
			}
			for _, want := range tt.contains {
				if !strings.Contains(out, want) {
					t.Errorf("output %q does not contain %q", out, want)
				}
			}
		})
	}
}
