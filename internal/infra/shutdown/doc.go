// Package shutdown ties a command's lifetime to process signals.
//
//	ctx, stop := shutdown.WithSignals(context.Background())
//	defer stop()
//
// Handler collects cleanup hooks that run once when the command ends,
// whether it succeeded, failed or was interrupted.
package shutdown
