// Package logx is a thin zerolog wrapper shared by the library and the
// showcase bot:
//   - Value-type Logger with structured Field helpers
//   - Console and file sinks, swappable level
//   - Rate-limited writer for flood-prone sinks
//
// The zero Logger is a no-op, so library types can take one optionally
// without nil checks.
package logx
