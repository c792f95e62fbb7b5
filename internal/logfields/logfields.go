package logfields

import "log/slog"

// Canonical log field name constants to avoid drift across packages.
const (
	KeySource  = "source"
	KeyDest    = "destination"
	KeyPattern = "pattern"
	KeyEntry   = "entry"
	KeyMode    = "mode"
	KeyBuildID = "build_id"
	KeyCount   = "count"
	KeyPath    = "path"
	KeyPort    = "port"
	KeyError   = "error"
)

// Simple helpers returning slog.Attr. Keeping each granular means callers can compose.
func Source(p string) slog.Attr   { return slog.String(KeySource, p) }
func Dest(p string) slog.Attr     { return slog.String(KeyDest, p) }
func Pattern(p string) slog.Attr  { return slog.String(KeyPattern, p) }
func Entry(i int) slog.Attr       { return slog.Int(KeyEntry, i) }
func Mode(m string) slog.Attr     { return slog.String(KeyMode, m) }
func BuildID(id string) slog.Attr { return slog.String(KeyBuildID, id) }
func Count(n int) slog.Attr       { return slog.Int(KeyCount, n) }
func Path(p string) slog.Attr     { return slog.String(KeyPath, p) }
func Port(p int) slog.Attr        { return slog.Int(KeyPort, p) }
func Error(err error) slog.Attr {
	if err == nil {
		return slog.String(KeyError, "")
	}
	return slog.String(KeyError, err.Error())
}
