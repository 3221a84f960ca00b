// Package leaderboard holds the fixed hall-of-fame display records.
// These are static demo data shown alongside local results; the match
// engine never reads or writes them.
package leaderboard

// Entry is one hall-of-fame display record.
type Entry struct {
	Name    string
	Moves   int
	Seconds int
}

// entries are ordered best-first and never change at runtime.
var entries = []Entry{
	{Name: "Nova", Moves: 10, Seconds: 48},
	{Name: "Pixel", Moves: 11, Seconds: 57},
	{Name: "Echo", Moves: 12, Seconds: 64},
	{Name: "Rook", Moves: 13, Seconds: 71},
	{Name: "Wren", Moves: 14, Seconds: 83},
	{Name: "Juno", Moves: 16, Seconds: 95},
	{Name: "Moss", Moves: 18, Seconds: 112},
	{Name: "Flint", Moves: 21, Seconds: 130},
}

// Entries returns a copy of the hall-of-fame records, best-first.
func Entries() []Entry {
	out := make([]Entry, len(entries))
	copy(out, entries)
	return out
}
