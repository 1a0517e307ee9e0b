package logx

import (
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"strconv"
	"sync"

	"gopkg.in/natefinch/lumberjack.v2"
)

const (
	ColorReset  = "\033[0m"
	ColorRed    = "\033[31m"
	ColorGreen  = "\033[32m"
	ColorYellow = "\033[33m"
	ColorBlue   = "\033[34m"
)

const (
	defaultLogDir      = "./logs"
	defaultLogFile     = "orion.log"
	defaultMaxSizeMB   = 50
	defaultMaxAgeDays  = 7
	defaultMaxBackups  = 3
	envLogFile         = "LOGFILE"
	envLogMaxSizeMB    = "LOGFILE_MAX_SIZE_MB"
	envLogMaxAgeDays   = "LOGFILE_MAX_AGE_DAYS"
	envLogDebugEnabled = "LOG_DEBUG"
)

// Options configures the rotating log file. Zero values fall back to the
// LOGFILE* environment variables and then to package defaults.
type Options struct {
	Filename   string
	MaxSizeMB  int
	MaxAgeDays int
	Debug      bool
	// Console mirrors every line to stderr.
	Console bool
}

var (
	mu           sync.RWMutex
	debugEnabled = os.Getenv(envLogDebugEnabled) != ""
	// rotating is the file writer behind logger, nil after SetOutput.
	rotating = newRotatingWriter(Options{})
	logger   = log.New(rotating, "", log.Ldate|log.Ltime|log.Lmicroseconds)
)

// Init replaces the package logger and closes the file of the previous
// one. Safe to call more than once.
func Init(opts Options) {
	file := newRotatingWriter(opts)
	var w io.Writer = file
	if opts.Console {
		w = io.MultiWriter(w, os.Stderr)
	}

	mu.Lock()
	defer mu.Unlock()
	swap(file, w)
	debugEnabled = debugEnabled || opts.Debug
}

// SetOutput redirects logging, mainly for tests.
func SetOutput(w io.Writer) {
	mu.Lock()
	defer mu.Unlock()
	swap(nil, w)
}

// swap installs w as the output. Caller holds mu.
func swap(file *lumberjack.Logger, w io.Writer) {
	if rotating != nil {
		_ = rotating.Close()
	}
	rotating = file
	logger = log.New(w, "", log.Ldate|log.Ltime|log.Lmicroseconds)
}

func newRotatingWriter(opts Options) *lumberjack.Logger {
	filename := opts.Filename
	if filename == "" {
		filename = getLogFilename()
	}
	maxSize := opts.MaxSizeMB
	if maxSize <= 0 {
		maxSize = getEnvInt(envLogMaxSizeMB, defaultMaxSizeMB)
	}
	maxAge := opts.MaxAgeDays
	if maxAge <= 0 {
		maxAge = getEnvInt(envLogMaxAgeDays, defaultMaxAgeDays)
	}
	return &lumberjack.Logger{
		Filename:   filename,
		MaxSize:    maxSize, // megabytes
		MaxAge:     maxAge,  // days
		MaxBackups: defaultMaxBackups,
	}
}

func getLogFilename() string {
	if logFile := os.Getenv(envLogFile); logFile != "" {
		return filepath.Join(defaultLogDir, logFile)
	}
	return filepath.Join(defaultLogDir, defaultLogFile)
}

func getEnvInt(name string, fallback int) int {
	raw := os.Getenv(name)
	if raw == "" {
		return fallback
	}
	v, err := strconv.Atoi(raw)
	if err != nil || v <= 0 {
		return fallback
	}
	return v
}

func printf(format string, args ...interface{}) {
	mu.RLock()
	l := logger
	mu.RUnlock()
	l.Printf(format, args...)
}

func Info(category string, content ...interface{}) {
	message := fmt.Sprint(content...)
	coloredCategory := fmt.Sprintf("%s[INFO][%s]%s", ColorGreen, category, ColorReset)
	printf("%s: %s", coloredCategory, message)
}

func Error(category string, content ...interface{}) {
	message := fmt.Sprint(content...)
	coloredCategory := fmt.Sprintf("%s[ERROR][%s]%s", ColorRed, category, ColorReset)
	printf("%s: %s", coloredCategory, message)
}

func Warn(category string, content ...interface{}) {
	message := fmt.Sprint(content...)
	coloredCategory := fmt.Sprintf("%s[WARN][%s]%s", ColorYellow, category, ColorReset)
	printf("%s: %s", coloredCategory, message)
}

func Debug(category string, content ...interface{}) {
	mu.RLock()
	enabled := debugEnabled
	mu.RUnlock()
	if !enabled {
		return
	}
	message := fmt.Sprint(content...)
	coloredCategory := fmt.Sprintf("%s[DEBUG][%s]%s", ColorBlue, category, ColorReset)
	printf("%s: %s", coloredCategory, message)
}

// Errorf logs an error message and returns a formatted error
func Errorf(format string, args ...interface{}) error {
	err := fmt.Errorf(format, args...)
	Error("ERROR", err.Error())
	return err
}
