package core

// Logger receives progress and summary lines from scene setup and rendering.
// Implementations must be safe for use from several goroutines.
type Logger interface {
	Printf(format string, args ...any)
}
