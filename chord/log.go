package chord

import "github.com/rs/zerolog"

// SetLogLevel adjusts the package-wide zerolog level. Nodes log failed
// RPCs to unreachable peers at debug level, bootstrap and join at info
// level, and accept failures at error level, so a quiet default of
// zerolog.InfoLevel is appropriate for interactive use.
func SetLogLevel(level zerolog.Level) {
	zerolog.SetGlobalLevel(level)
}
