// Package logger — логирование с префиксом сервиса и асинхронной записью:
// запись уходит в буферизованный канал и не блокирует обработку запроса.
package logger

import (
	"fmt"
	"log"
	"os"
	"sync"
	"time"
)

const bufferSize = 4096

// slowThreshold — при LOG_LEVEL=info замеры длительности логируются
// только для вызовов дольше этого порога.
const slowThreshold = 100 * time.Millisecond

var (
	prefix string
	debug  bool
	ch     chan string
	once   sync.Once
)

func initWorker() {
	switch os.Getenv("LOG_LEVEL") {
	case "debug", "trace":
		debug = true
	}
	ch = make(chan string, bufferSize)
	go func() {
		for msg := range ch {
			log.Print(msg)
		}
	}()
}

func enqueue(msg string) {
	once.Do(initWorker)
	select {
	case ch <- msg:
	default:
		// Буфер полон — лог теряется, но запрос не ждёт
	}
}

// SetPrefix задаёт префикс всех последующих записей (например "api").
func SetPrefix(p string) {
	prefix = p
}

func tag() string {
	if prefix == "" {
		return ""
	}
	return "[" + prefix + "] "
}

// Info пишет сообщение (асинхронно).
func Info(v ...any) {
	enqueue(tag() + fmt.Sprint(v...))
}

// Infof форматирует и пишет сообщение (асинхронно).
func Infof(format string, v ...any) {
	enqueue(tag() + fmt.Sprintf(format, v...))
}

// Error пишет ошибку (асинхронно).
func Error(v ...any) {
	enqueue(tag() + "ERROR: " + fmt.Sprint(v...))
}

// Errorf форматирует и пишет ошибку (асинхронно).
func Errorf(format string, v ...any) {
	enqueue(tag() + "ERROR: " + fmt.Sprintf(format, v...))
}

// Debugf пишет отладочное сообщение только при LOG_LEVEL=debug.
func Debugf(format string, v ...any) {
	once.Do(initWorker)
	if !debug {
		return
	}
	enqueue(tag() + "DEBUG: " + fmt.Sprintf(format, v...))
}

// LogDuration логирует имя операции и её длительность в миллисекундах.
// При LOG_LEVEL=info — только медленные вызовы, при debug — все.
func LogDuration(fn string, start time.Time) {
	once.Do(initWorker)
	elapsed := time.Since(start)
	if debug || elapsed >= slowThreshold {
		enqueue(fmt.Sprintf("%sfn=%s duration_ms=%d", tag(), fn, elapsed.Milliseconds()))
	}
}

// DeferLogDuration — для вызова в defer: defer logger.DeferLogDuration("user.List", time.Now())().
func DeferLogDuration(fn string, start time.Time) func() {
	return func() { LogDuration(fn, start) }
}
