// Package logfields holds the canonical slog keys used across pagegen.
package logfields

import "log/slog"

const (
	KeyPath    = "path"
	KeyFile    = "file"
	KeyStatus  = "status"
	KeySlug    = "slug"
	KeyKind    = "kind"
	KeyCount   = "count"
	KeyRunID   = "run_id"
	KeyAddr    = "addr"
	KeyEvent   = "event"
	KeyDurMS   = "duration_ms"
	KeyError   = "error"
	KeyClients = "clients"
)

func Path(p string) slog.Attr          { return slog.String(KeyPath, p) }
func File(f string) slog.Attr          { return slog.String(KeyFile, f) }
func Status(s string) slog.Attr        { return slog.String(KeyStatus, s) }
func Slug(s string) slog.Attr          { return slog.String(KeySlug, s) }
func Kind(k string) slog.Attr          { return slog.String(KeyKind, k) }
func Count(n int) slog.Attr            { return slog.Int(KeyCount, n) }
func RunID(id string) slog.Attr        { return slog.String(KeyRunID, id) }
func Addr(a string) slog.Attr          { return slog.String(KeyAddr, a) }
func Event(e string) slog.Attr         { return slog.String(KeyEvent, e) }
func DurationMS(ms float64) slog.Attr  { return slog.Float64(KeyDurMS, ms) }
func Clients(n int) slog.Attr          { return slog.Int(KeyClients, n) }
func Error(err error) slog.Attr {
	if err == nil {
		return slog.String(KeyError, "")
	}
	return slog.String(KeyError, err.Error())
}
