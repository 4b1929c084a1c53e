package jisp

import (
	"io"
	"os"
	"time"

	"github.com/itchyny/timefmt-go"
	"github.com/rs/zerolog"
)

// Execution tracing, enabled with JISP_DEBUG (set to "stdout" to trace to
// standard output, any other value traces to standard error). Traces each
// walker classification, opcode invocation, and residual commit.

var (
	tracing  bool
	traceLog zerolog.Logger
)

func init() {
	out := os.Getenv("JISP_DEBUG")
	if out == "" {
		return
	}
	var w io.Writer = os.Stderr
	if out == "stdout" {
		w = os.Stdout
	}
	cw := zerolog.ConsoleWriter{
		Out:        w,
		NoColor:    true,
		TimeFormat: time.StampMicro,
		FormatTimestamp: func(any) string {
			return timefmt.Format(time.Now(), "%H:%M:%S")
		},
	}
	traceLog = zerolog.New(cw).With().Timestamp().Logger()
	tracing = true
}

func traceInstr(framePath string, idx int, kind string) {
	if !tracing {
		return
	}
	traceLog.Debug().Str("frame", framePath).Int("idx", idx).Msg(kind)
}

func traceResidual(entry any) {
	if !tracing {
		return
	}
	if group, ok := entry.([]any); ok {
		traceLog.Debug().Int("patches", len(group)).Msg("residual group")
		return
	}
	traceLog.Debug().Msg("residual patch")
}
