package slogx

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"
	"unicode"

	"github.com/saylorsolutions/concur/executor"
	"golang.org/x/term"
)

const TimeFormat = "Jan _2 15:04:05.000"

const (
	colorReset  = "\x1b[0m"
	colorGray   = "\x1b[90m"
	colorCyan   = "\x1b[36m"
	colorYellow = "\x1b[33m"
	colorRed    = "\x1b[31m"
)

var _ slog.Handler = (*QueuedHandler)(nil)

// QueuedHandlerOptions configures a [QueuedHandler].
type QueuedHandlerOptions struct {
	// Level is the minimum level that will be written. Defaults to [slog.LevelInfo].
	Level slog.Leveler
	// Color forces ANSI colored levels on or off. By default, color is used only if the output is a terminal.
	Color *bool
	// OnWriteError is called with every error returned from writing to the output.
	OnWriteError func(err error)
}

type queuedSink struct {
	exec  *executor.QueueExecutor[[]byte]
	level slog.Leveler
	color bool
}

// QueuedHandler is a [slog.Handler] that writes lines through a single-slot [executor.QueueExecutor].
// Handlers derived with WithAttrs or WithGroup share the same output queue.
type QueuedHandler struct {
	sink   *queuedSink
	group  string
	prefix string
}

// NewQueuedHandler creates a [QueuedHandler] writing to out.
// Call [QueuedHandler.Close] to flush queued lines.
func NewQueuedHandler(ctx context.Context, out io.Writer, opts *QueuedHandlerOptions) (*QueuedHandler, error) {
	if out == nil {
		return nil, fmt.Errorf("%w: nil output writer", executor.ErrInvalidArgument)
	}
	if opts == nil {
		opts = new(QueuedHandlerOptions)
	}
	sink := &queuedSink{
		level: opts.Level,
		color: isTerminal(out),
	}
	if sink.level == nil {
		sink.level = slog.LevelInfo
	}
	if opts.Color != nil {
		sink.color = *opts.Color
	}
	// The executor can't log through the handler it serves.
	fallback := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn}))
	exec, err := executor.New[[]byte](ctx, func(_ context.Context, line []byte) error {
		_, err := out.Write(line)
		return err
	}, executor.MaxConcurrency(1), executor.Name("slogx"), executor.WithLogger(fallback))
	if err != nil {
		return nil, err
	}
	onWriteError := opts.OnWriteError
	if err := exec.OnError().Register(func(_ context.Context, qerr executor.QueueError[[]byte]) error {
		if onWriteError != nil {
			onWriteError(qerr.Err)
		}
		return nil
	}); err != nil {
		return nil, err
	}
	sink.exec = exec
	return &QueuedHandler{sink: sink}, nil
}

func isTerminal(out io.Writer) bool {
	f, ok := out.(interface{ Fd() uintptr })
	if !ok {
		return false
	}
	return term.IsTerminal(int(f.Fd()))
}

// Close waits for queued lines to be written, or for ctx to be done, and then stops the background writer.
// Records handled after Close are dropped with an error.
func (h *QueuedHandler) Close(ctx context.Context) error {
	defer h.sink.exec.Dispose()
	return h.sink.exec.AwaitIdle(ctx)
}

// Stats reports on the background writer.
func (h *QueuedHandler) Stats() executor.Stats {
	return h.sink.exec.Stats()
}

func (h *QueuedHandler) Enabled(_ context.Context, level slog.Level) bool {
	return level >= h.sink.level.Level()
}

func (h *QueuedHandler) Handle(_ context.Context, record slog.Record) error {
	var buf bytes.Buffer
	if !record.Time.IsZero() {
		buf.WriteString(record.Time.Format(TimeFormat))
		buf.WriteByte(' ')
	}
	buf.WriteString(h.levelTag(record.Level))
	buf.WriteByte(' ')
	buf.WriteString(record.Message)
	buf.WriteString(h.prefix)
	record.Attrs(func(attr slog.Attr) bool {
		writeAttr(&buf, h.group, attr)
		return true
	})
	buf.WriteByte('\n')
	return h.sink.exec.Enqueue(buf.Bytes())
}

func (h *QueuedHandler) levelTag(level slog.Level) string {
	tag := fmt.Sprintf("[%-5s]", level.String())
	if !h.sink.color {
		return tag
	}
	color := colorCyan
	switch {
	case level >= slog.LevelError:
		color = colorRed
	case level >= slog.LevelWarn:
		color = colorYellow
	case level < slog.LevelInfo:
		color = colorGray
	}
	return color + tag + colorReset
}

func (h *QueuedHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	if len(attrs) == 0 {
		return h
	}
	var buf bytes.Buffer
	buf.WriteString(h.prefix)
	for _, attr := range attrs {
		writeAttr(&buf, h.group, attr)
	}
	cp := *h
	cp.prefix = buf.String()
	return &cp
}

func (h *QueuedHandler) WithGroup(name string) slog.Handler {
	if len(name) == 0 {
		return h
	}
	cp := *h
	cp.group = joinKey(h.group, name)
	return &cp
}

func joinKey(group, key string) string {
	if len(group) == 0 {
		return key
	}
	return group + "." + key
}

func writeAttr(buf *bytes.Buffer, group string, attr slog.Attr) {
	attr.Value = attr.Value.Resolve()
	if attr.Equal(slog.Attr{}) {
		return
	}
	if attr.Value.Kind() == slog.KindGroup {
		if len(attr.Key) > 0 {
			group = joinKey(group, attr.Key)
		}
		for _, member := range attr.Value.Group() {
			writeAttr(buf, group, member)
		}
		return
	}
	buf.WriteByte(' ')
	buf.WriteString(joinKey(group, attr.Key))
	buf.WriteByte('=')
	buf.WriteString(quoteIfNeeded(formatValue(attr.Value)))
}

func formatValue(val slog.Value) string {
	switch val.Kind() {
	case slog.KindTime:
		return val.Time().Format(time.RFC3339Nano)
	case slog.KindAny:
		if err, ok := val.Any().(error); ok {
			return err.Error()
		}
	}
	return val.String()
}

func quoteIfNeeded(s string) string {
	if len(s) == 0 {
		return `""`
	}
	if strings.IndexFunc(s, func(r rune) bool {
		return unicode.IsSpace(r) || r == '"' || r == '=' || !unicode.IsPrint(r)
	}) >= 0 {
		return strconv.Quote(s)
	}
	return s
}
