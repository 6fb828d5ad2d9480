package cmd

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/gookit/color"

	"github.com/ssargent/tokfile/pkg/stats"
)

const (
	levelDebug = iota
	levelInfo
	levelWarn
	levelError
)

var levelNames = map[string]int{
	"debug": levelDebug,
	"info":  levelInfo,
	"warn":  levelWarn,
	"error": levelError,
}

var levelStyles = []struct {
	tag   string
	style color.Color
}{
	levelDebug: {"DEBU", color.FgDarkGray},
	levelInfo:  {"INFO", color.FgCyan},
	levelWarn:  {"WARN", color.FgYellow},
	levelError: {"ERRO", color.FgRed},
}

// consoleLogger prints levelled, coloured status lines
type consoleLogger struct {
	out    io.Writer
	level  int
	prefix func() string
}

func newConsoleLogger(out io.Writer, level string) *consoleLogger {
	lvl, ok := levelNames[strings.ToLower(level)]
	if !ok {
		lvl = levelInfo
	}
	return &consoleLogger{
		out:   out,
		level: lvl,
		prefix: func() string {
			return "[" + time.Now().Format("15:04:05") + "]"
		},
	}
}

func (l *consoleLogger) logf(level int, format string, a ...interface{}) {
	if level < l.level {
		return
	}
	s := levelStyles[level]
	fmt.Fprintf(l.out, "%s %s %s\n", l.prefix(), s.style.Sprint(s.tag), fmt.Sprintf(format, a...))
}

func (l *consoleLogger) Debugf(format string, a ...interface{}) { l.logf(levelDebug, format, a...) }
func (l *consoleLogger) Infof(format string, a ...interface{})  { l.logf(levelInfo, format, a...) }
func (l *consoleLogger) Warnf(format string, a ...interface{})  { l.logf(levelWarn, format, a...) }
func (l *consoleLogger) Errorf(format string, a ...interface{}) { l.logf(levelError, format, a...) }

// outputSummary displays line statistics as a table
func outputSummary(out io.Writer, sum stats.Summary) error {
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)

	fmt.Fprintf(w, "Lines:\t%d\n", sum.Lines)
	fmt.Fprintf(w, "Tokens:\t%d\n", sum.Tokens)
	fmt.Fprintf(w, "Empty lines:\t%d\n", sum.Empty)
	if sum.MaxToken >= 0 {
		fmt.Fprintf(w, "Max token:\t%d\n", sum.MaxToken)
	}
	if sum.Lines > 0 {
		fmt.Fprintf(w, "Line length:\tmin %d, max %d, mean %.2f\n", sum.MinLength, sum.MaxLength, sum.MeanLength)
		fmt.Fprintf(w, "Percentiles:\tp50 %d, p90 %d, p99 %d\n", sum.P50, sum.P90, sum.P99)
	}
	if sum.Overflow > 0 {
		fmt.Fprintf(w, "Untracked long lines:\t%d\n", sum.Overflow)
	}

	return w.Flush()
}
