// Command jx serves JSON document tools over line-oriented JSON-RPC
// on stdin/stdout.
package main

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/google/uuid"

	"github.com/jacoelho/jx/internal/config"
	"github.com/jacoelho/jx/internal/pathexpr"
	"github.com/jacoelho/jx/internal/ratelimit"
	"github.com/jacoelho/jx/internal/server"
	"github.com/jacoelho/jx/internal/tools"
)

const maxRequestBytes = 16 << 20

func main() {
	os.Exit(run())
}

func run() int {
	cfg, exitResult := config.Parse(os.Args)
	if exitResult != nil {
		exitResult.Print()
		return exitResult.ExitCode
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	registry := tools.NewRegistry(pathexpr.New())
	srv := server.New(registry, ratelimit.New(cfg.RateLimit))

	trace := openTrace(cfg.DebugLog)
	defer trace.Close()

	return serve(ctx, srv, trace)
}

func serve(ctx context.Context, srv *server.Server, trace *traceLog) int {
	scanner := bufio.NewScanner(os.Stdin)
	scanner.Buffer(make([]byte, 64*1024), maxRequestBytes)

	for scanner.Scan() {
		if ctx.Err() != nil {
			return 0
		}

		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		trace.write("INCOMING", line)

		response, err := srv.HandleRequest(ctx, []byte(line))
		if err != nil {
			response = server.InternalErrorResponse(err)
			trace.write("ERROR_OUTGOING", string(response))
		} else {
			trace.write("OUTGOING", string(response))
		}

		if _, err := fmt.Fprintf(os.Stdout, "%s\n", response); err != nil {
			return 1
		}
	}

	return 0
}

// traceLog appends timestamped wire messages to a file. A nil
// receiver is a disabled trace.
type traceLog struct {
	file    *os.File
	session string
}

// openTrace returns a disabled trace when path is empty or the file
// cannot be opened; tracing is best effort and never blocks serving.
func openTrace(path string) *traceLog {
	if path == "" {
		return nil
	}

	file, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return nil
	}

	return &traceLog{
		file:    file,
		session: uuid.New().String(),
	}
}

func (t *traceLog) write(direction, message string) {
	if t == nil {
		return
	}

	timestamp := time.Now().UTC().Format("2006-01-02 15:04:05.000")
	fmt.Fprintf(t.file, "[%s] [%s] %s: %s\n", timestamp, t.session, direction, message)
}

func (t *traceLog) Close() {
	if t == nil || t.file == nil {
		return
	}
	t.file.Close()
}
