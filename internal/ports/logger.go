package ports

import "context"

// Logger — контракт логгера для всех слоёв.
// Из ctx реализация сама достаёт request_id, origin и trace_id.
type Logger interface {
	Infof(ctx context.Context, format string, args ...any)
	Warnf(ctx context.Context, format string, args ...any)
	Errorf(ctx context.Context, format string, args ...any)
}

// NopLogger — логгер, который ничего не пишет (тесты, тихий режим CLI).
type NopLogger struct{}

var _ Logger = NopLogger{}

func (NopLogger) Infof(context.Context, string, ...any)  {}
func (NopLogger) Warnf(context.Context, string, ...any)  {}
func (NopLogger) Errorf(context.Context, string, ...any) {}
