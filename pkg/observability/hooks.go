package observability

import (
	"log/slog"

	"github.com/aretw0/logica/pkg/logic"
)

// LoggingHooks logs every editor event on logger.
func LoggingHooks(logger *slog.Logger) logic.Hooks {
	return logic.Hooks{
		OnScan: func(e *logic.ScanEvent) {
			logger.Debug("logic_scan", "items", e.Items, "invisible", e.Invisible)
		},
		OnCommit: func(e *logic.CommitEvent) {
			logger.Info("logic_commit",
				"mode", e.Mode,
				"expression", e.Expression,
				"written", e.Written,
				"cleared", e.Cleared,
				"dropped", e.Dropped,
				"merged", e.Merged,
			)
		},
		OnReject: func(e *logic.RejectEvent) {
			logger.Warn("logic_reject", "mode", e.Mode, "err", e.Err)
		},
		OnRename: func(e *logic.RenameEvent) {
			logger.Info("logic_rename", "old", e.OldName, "new", e.NewName, "changed", e.Changed)
		},
	}
}

// Combine fans every event out to all hooks, in order.
func Combine(hooks ...logic.Hooks) logic.Hooks {
	var out logic.Hooks
	for _, h := range hooks {
		out.OnScan = chain(out.OnScan, h.OnScan)
		out.OnCommit = chain(out.OnCommit, h.OnCommit)
		out.OnReject = chain(out.OnReject, h.OnReject)
		out.OnRename = chain(out.OnRename, h.OnRename)
	}
	return out
}

func chain[E any](a, b func(*E)) func(*E) {
	switch {
	case a == nil:
		return b
	case b == nil:
		return a
	}
	return func(e *E) {
		a(e)
		b(e)
	}
}
