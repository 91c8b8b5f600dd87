// MIT License
//
// Copyright (c) 2024 sphinx-core
//
// Permission is hereby granted, free of charge, to any person obtaining a copy
// of this software and associated documentation files (the "Software"), to deal
// in the Software without restriction, including without limitation the rights
// to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
// copies of the Software, and to permit persons to whom the Software is
// furnished to do so, subject to the following conditions:
//
// The above copyright notice and this permission notice shall be included in all
// copies or substantial portions of the Software.
//
// THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
// IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
// FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
// AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
// LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
// OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
// SOFTWARE.

// sigcost/src/log/logger.go
package logger

import (
	"bytes"
	"os"
	"sync"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// LogLevel defines the severity level of the log message.
type LogLevel int

// Log level constants starting from 0 with iota.
const (
	DEBUG LogLevel = iota // Detailed debug information.
	INFO                  // General informational messages.
	WARN                  // Warnings about potential issues.
	ERROR                 // Error messages.
)

// Global variables for the logger state:

// level is the atomic minimum level shared with the zap core.
var level = zap.NewAtomicLevelAt(zapcore.InfoLevel)

// buffer holds the in-memory copy of log messages for inspection.
var buffer = &LogBuffer{}

// once guards one-time construction of the underlying zap logger.
var once sync.Once

// sugar is the zap logger behind the package-level functions.
var sugar *zap.SugaredLogger

// LogBuffer is a thread-safe bytes.Buffer to store logs in memory.
type LogBuffer struct {
	mu  sync.Mutex   // protects buf
	buf bytes.Buffer // underlying buffer
}

// Write implements zapcore.WriteSyncer for LogBuffer.
// It writes bytes into the buffer in a thread-safe manner.
func (l *LogBuffer) Write(p []byte) (n int, err error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.buf.Write(p)
}

// Sync implements zapcore.WriteSyncer; the buffer is always flushed.
func (l *LogBuffer) Sync() error {
	return nil
}

// String returns the current contents of the buffer as a string.
// It locks the buffer during read to prevent race conditions.
func (l *LogBuffer) String() string {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.buf.String()
}

// Init builds the zap logger writing to both stdout and the in-memory
// buffer. It is safe to call multiple times; the first call wins. Callers
// that skip Init still get a working logger through lazy initialization.
func Init() {
	once.Do(func() {
		encCfg := zap.NewDevelopmentEncoderConfig()
		encCfg.EncodeTime = zapcore.TimeEncoderOfLayout("2006-01-02 15:04:05.000")
		core := zapcore.NewCore(
			zapcore.NewConsoleEncoder(encCfg),
			zapcore.NewMultiWriteSyncer(zapcore.Lock(zapcore.AddSync(os.Stdout)), buffer),
			level,
		)
		sugar = zap.New(core).Sugar()
	})
}

// logger returns the shared zap logger, initializing it on first use.
func logger() *zap.SugaredLogger {
	Init()
	return sugar
}

// SetLevel sets the global logging level.
// Messages below this level will be ignored.
func SetLevel(lvl LogLevel) {
	level.SetLevel(zapLevel(lvl))
}

// zapLevel maps package levels to zap levels.
func zapLevel(lvl LogLevel) zapcore.Level {
	switch lvl {
	case DEBUG:
		return zapcore.DebugLevel
	case WARN:
		return zapcore.WarnLevel
	case ERROR:
		return zapcore.ErrorLevel
	default:
		return zapcore.InfoLevel
	}
}

// Debugf logs a formatted message at DEBUG level.
func Debugf(format string, args ...any) { logger().Debugf(format, args...) }

// Infof logs a formatted message at INFO level.
func Infof(format string, args ...any) { logger().Infof(format, args...) }

// Warnf logs a formatted message at WARN level.
func Warnf(format string, args ...any) { logger().Warnf(format, args...) }

// Errorf logs a formatted message at ERROR level.
func Errorf(format string, args ...any) { logger().Errorf(format, args...) }

// Fatalf logs a formatted message at ERROR level and then terminates the program.
func Fatalf(format string, args ...any) { logger().Fatalf(format, args...) }

// Convenience exported functions to log with simpler names:

// Debug logs a DEBUG level message.
func Debug(format string, args ...any) { logger().Debugf(format, args...) }

// Info logs an INFO level message.
func Info(format string, args ...any) { logger().Infof(format, args...) }

// Warn logs a WARN level message.
func Warn(format string, args ...any) { logger().Warnf(format, args...) }

// Error logs an ERROR level message.
func Error(format string, args ...any) { logger().Errorf(format, args...) }

// Sync flushes any buffered log entries.
func Sync() {
	if sugar != nil {
		_ = sugar.Sync()
	}
}

// GetLogs returns the full log content accumulated in the in-memory buffer.
// Useful for retrieving all logs for inspection or testing.
func GetLogs() string {
	return buffer.String()
}
