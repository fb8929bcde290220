package logger

// Error chain formatting, exported for tests.
var (
	CollectErrorEntries = collectErrorEntries
	FormatErrorEntries  = formatErrorEntries
)

// ErrorEntry exposes the fields of a collected chain entry.
func ErrorEntry(entries []errorEntry, i int) (string, map[string]any) {
	return entries[i].message, entries[i].metadata
}
