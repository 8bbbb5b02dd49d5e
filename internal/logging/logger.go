// Package logging provides structured, colorful logging for the Tessera node
// daemon, ensuring consistent log formatting across bootstrap, the node
// runtime, and integrated third-party libraries.
//
// Implements a unified logging interface over charmbracelet/log with
// color-coded levels and consistent timestamp formatting. INFO/SUCCESS lines
// go to stdout and WARN/ERROR/DEBUG lines to stderr, following Unix
// conventions.
//
// The package also owns the process-wide logger guard: RedirectStandardLog
// routes Go's global standard-library logger through this package exactly
// once at startup, so third-party libraries that write to the global logger
// cannot change how the process logs. GossipWriter integrates the membership
// library's own log output into the same pipeline.
package logging

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"regexp"
	"strings"
	"time"

	stdlog "log"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
)

var (
	// Logger for INFO/SUCCESS messages (stdout, follows Unix conventions)
	stdoutLogger = log.NewWithOptions(os.Stdout, log.Options{
		ReportTimestamp: true,
		TimeFormat:      time.RFC3339,
	})

	// Logger for WARN/ERROR/DEBUG messages (stderr, follows Unix conventions)
	stderrLogger = log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		TimeFormat:      time.RFC3339,
	})
)

// setupCustomStyles configures distinct colors for each log level to improve
// visual parsing of log output during development and node operation.
// Colors are chosen to stay readable in both light and dark terminals.
func setupCustomStyles() *log.Styles {
	styles := log.DefaultStyles()

	// DEBUG: light purple
	styles.Levels[log.DebugLevel] = lipgloss.NewStyle().
		SetString("DEBUG").
		Foreground(lipgloss.Color("#7F6DFF"))

	// INFO: light blue
	styles.Levels[log.InfoLevel] = lipgloss.NewStyle().
		SetString("INFO").
		Foreground(lipgloss.Color("#42E7FF"))

	// WARN: light yellow
	styles.Levels[log.WarnLevel] = lipgloss.NewStyle().
		SetString("WARN").
		Foreground(lipgloss.Color("#FFE763"))

	// ERROR: light red/pink
	styles.Levels[log.ErrorLevel] = lipgloss.NewStyle().
		SetString("ERROR").
		Foreground(lipgloss.Color("#FF4473"))

	return styles
}

func init() {
	styles := setupCustomStyles()
	stdoutLogger.SetStyles(styles)
	stderrLogger.SetStyles(styles)
}

// Info logs informational messages for node operations and status updates.
func Info(format string, v ...any) {
	stdoutLogger.Info(fmt.Sprintf(format, v...))
}

// Warn logs warning messages for non-critical issues requiring attention.
func Warn(format string, v ...any) {
	stderrLogger.Warn(fmt.Sprintf(format, v...))
}

// Error logs error messages for failures in bootstrap or node operation.
func Error(format string, v ...any) {
	stderrLogger.Error(fmt.Sprintf(format, v...))
}

// Debug logs detailed debugging information for development and
// troubleshooting.
func Debug(format string, v ...any) {
	stderrLogger.Debug(fmt.Sprintf(format, v...))
}

// Success logs successful operations in green using INFO level with custom
// styling. Implements a custom SUCCESS label that respects INFO level
// filtering.
func Success(format string, v ...any) {
	if stdoutLogger.GetLevel() > log.InfoLevel {
		return // Skip if INFO level is suppressed
	}

	styles := setupCustomStyles()
	styles.Levels[log.InfoLevel] = lipgloss.NewStyle().
		SetString("SUCCESS").
		Foreground(lipgloss.Color("#60F281")) // Light green

	tempLogger := log.NewWithOptions(os.Stdout, log.Options{
		ReportTimestamp: true,
		TimeFormat:      time.RFC3339,
	})
	tempLogger.SetStyles(styles)

	tempLogger.Info(fmt.Sprintf(format, v...))
}

// SetLevel configures the minimum logging level for all output. Accepts the
// canonical level strings (CRITICAL, ERROR, WARNING, INFO, DEBUG) and applies
// filtering to both the stdout and stderr loggers. Unknown strings fall back
// to INFO.
func SetLevel(level string) {
	var logLevel log.Level
	switch level {
	case "DEBUG":
		logLevel = log.DebugLevel
	case "INFO":
		logLevel = log.InfoLevel
	case "WARNING":
		logLevel = log.WarnLevel
	case "ERROR":
		logLevel = log.ErrorLevel
	case "CRITICAL":
		logLevel = log.FatalLevel
	default:
		logLevel = log.InfoLevel
	}

	stdoutLogger.SetLevel(logLevel)
	stderrLogger.SetLevel(logLevel)
}

// ============================================================================
// GOSSIP LOG INTEGRATION - Capture and reformat membership library logs
// ============================================================================

// GossipWriter captures the gossip membership library's logs and routes them
// through the unified colorful logging system for consistent formatting.
type GossipWriter struct {
	reader *io.PipeReader
	writer *io.PipeWriter
}

// NewGossipWriter creates a writer for capturing and reformatting membership
// library logs. It starts a background goroutine that parses lines as they
// arrive; callers must Close the writer when the membership layer shuts down.
func NewGossipWriter() *GossipWriter {
	r, w := io.Pipe()
	gw := &GossipWriter{
		reader: r,
		writer: w,
	}

	go gw.processLogs()

	return gw
}

// Write implements io.Writer for capturing gossip log output.
func (gw *GossipWriter) Write(p []byte) (n int, err error) {
	return gw.writer.Write(p)
}

// Close closes the writer and stops log processing.
func (gw *GossipWriter) Close() error {
	return gw.writer.Close()
}

// processLogs parses gossip log lines and routes them through the colorful
// logging system. Extracts log levels from the library's
// "timestamp [LEVEL] component: message" format and re-emits each line through
// our logger with a "(gossip)" prefix.
func (gw *GossipWriter) processLogs() {
	scanner := bufio.NewScanner(gw.reader)

	logRegex := regexp.MustCompile(`^\d{4}/\d{2}/\d{2} \d{2}:\d{2}:\d{2} \[(\w+)\] (.+)$`)

	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		matches := logRegex.FindStringSubmatch(line)
		if len(matches) == 3 {
			level := matches[1]
			message := matches[2]

			// Avoid redundant component prefixes since we add our own label
			if strings.HasPrefix(strings.ToLower(message), "serf: ") {
				message = strings.TrimSpace(message[len("serf: "):])
			}

			switch level {
			case "DEBUG":
				Debug("(gossip) %s", message)
			case "INFO":
				Info("(gossip) %s", message)
			case "WARN", "WARNING":
				Warn("(gossip) %s", message)
			case "ERR", "ERROR":
				Error("(gossip) %s", message)
			default:
				Info("(gossip)[%s]: %s", level, message)
			}
		} else {
			// Unparseable lines still flow through the unified logger
			Info("(gossip) %s", line)
		}
	}
}

// ============================================================================
// GENERIC LOG INTEGRATION - General purpose writers for third-party libraries
// ============================================================================

// LevelWriter forwards log lines to a specific log level with optional prefix.
// Useful for integrating third-party libraries that expect io.Writer
// interfaces.
type LevelWriter struct {
	level  string
	prefix string
}

// NewLevelWriter creates a writer that logs each line at the specified level
// with prefix. Valid levels: DEBUG, INFO, WARNING, ERROR.
func NewLevelWriter(level, prefix string) io.Writer {
	return &LevelWriter{level: strings.ToUpper(level), prefix: prefix}
}

// Write implements io.Writer by splitting input into lines and logging each
// at the configured level.
func (w *LevelWriter) Write(p []byte) (int, error) {
	text := string(p)
	lines := strings.Split(text, "\n")
	for _, line := range lines {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		msg := line
		if w.prefix != "" {
			msg = w.prefix + ": " + line
		}
		switch w.level {
		case "DEBUG":
			Debug("%s", msg)
		case "INFO":
			Info("%s", msg)
		case "WARNING":
			Warn("%s", msg)
		case "ERROR":
			Error("%s", msg)
		default:
			Info("%s", msg)
		}
	}
	return len(p), nil
}

// RedirectStandardLog redirects Go's standard library logger output to the
// provided writer. This is the process-wide logger guard: installed once at
// startup, before any component logs, it ensures dependencies that grab the
// global logger write through the unified pipeline instead of reconfiguring
// process logging behind our back. Passing nil discards standard log output.
// Safe to call again; later calls simply re-point the same global logger.
func RedirectStandardLog(w io.Writer) {
	if w == nil {
		stdlog.SetOutput(io.Discard)
		return
	}
	stdlog.SetFlags(0)
	stdlog.SetOutput(w)
}
