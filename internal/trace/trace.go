// Package trace wraps go.uber.org/zap for the matching engine's two
// logging needs: per-backtrack decisions during search (Debug level) and
// operational logging for cmd/pimatch (Info/Warn), following the logger
// idiom theRebelliousNerd-codenerd's cmd/nerd/main.go uses (a package-level
// *zap.Logger, swapped for zap.NewProductionConfig at verbose levels, and
// zap.NewNop in tests).
package trace

import (
	"context"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

type attemptIDKey struct{}

// WithAttemptID tags ctx with an attempt identifier (a UUID string from
// internal/parallel) so that Backtrack log lines from concurrent
// SolveProblem invocations can be told apart.
func WithAttemptID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, attemptIDKey{}, id)
}

// Logger is the engine-wide logger. It defaults to a no-op logger so
// library callers that never configure tracing pay no logging cost;
// cmd/pimatch replaces it at startup via SetVerbose/SetLogger.
var Logger = zap.NewNop()

// SetLogger replaces the package-level logger outright, for example to
// install zap.NewNop() or an observer core.
func SetLogger(l *zap.Logger) {
	Logger = l
}

// SetVerbose installs a production logger at Info level, or Debug level
// when verbose is true. Called from cmd/pimatch's PersistentPreRunE.
func SetVerbose(verbose bool) error {
	cfg := zap.NewProductionConfig()
	if verbose {
		cfg.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
	}
	l, err := cfg.Build()
	if err != nil {
		return err
	}
	Logger = l
	return nil
}

// Backtrack logs one search decision: the AC problem's position in the
// rearranged list, the variable chosen by fetch_var, the candidate RHS
// term tried, and whether it was accepted or rejected. If ctx carries an
// attempt ID (set via WithAttemptID), it is attached so that log lines from
// concurrent internal/parallel.Pool workers can be told apart.
func Backtrack(ctx context.Context, problemIndex int, variable int, candidate string, accepted bool) {
	fields := []zap.Field{
		zap.Int("problem", problemIndex),
		zap.Int("variable", variable),
		zap.String("candidate", candidate),
		zap.Bool("accepted", accepted),
	}
	if id, ok := ctx.Value(attemptIDKey{}).(string); ok {
		fields = append(fields, zap.String("attempt", id))
	}
	Logger.Debug("backtrack", fields...)
}
