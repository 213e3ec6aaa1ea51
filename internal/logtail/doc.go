// Package logtail reads and formats the bloglist client log.
//
// The client logs JSON records through zap (see internal/logging). Read
// returns the last N lines of the file with a ring buffer, so memory stays
// O(N) however large the log grows; a non-positive N returns the whole file.
// A missing file is not an error.
//
// Parse decodes one record into an Entry, pulling out the standard zap keys
// (ts, level, msg, caller) and keeping the rest as fields. FormatLine renders
// a record as plain text:
//
//	2026-10-16T09:12:03.114+0200 WARN Error could not like blog post_id=p1 error=api PUT /api/blogs/p1 returned status 401
//
// ColorizeLine adds lipgloss styling on top for `bloglist logs` on a
// terminal. Lines that are not JSON pass through unchanged.
package logtail
