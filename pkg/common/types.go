package common

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

// MaxFieldLen is the byte limit for Title and Author.
const MaxFieldLen = 99

// Record is one catalog entry (a codex). Both indexes point at the same *Record.
type Record struct {
	ID     int
	Title  string
	Author string
}

// NewRecord builds a Record, silently truncating overlong title and author.
func NewRecord(id int, title, author string) *Record {
	return &Record{
		ID:     id,
		Title:  Truncate(title, MaxFieldLen),
		Author: Truncate(author, MaxFieldLen),
	}
}

// Truncate cuts s to at most n bytes. When the cut would split a valid
// UTF-8 sequence the whole sequence is dropped; invalid bytes are cut as is.
func Truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	cut := n
	for i := 0; i < utf8.UTFMax-1 && cut > 0 && !utf8.RuneStart(s[cut]); i++ {
		cut--
	}
	if cut < n && utf8.RuneStart(s[cut]) {
		r, size := utf8.DecodeRuneInString(s[cut:])
		if r != utf8.RuneError && cut+size > n {
			return s[:cut]
		}
	}
	return s[:n]
}

// Storable reports whether r survives the `ID;TITLE;AUTHOR` line format:
// the title may not contain ';' and neither field may contain a line break.
func (r *Record) Storable() bool {
	return !strings.ContainsAny(r.Title, ";\r\n") && !strings.ContainsAny(r.Author, "\r\n")
}

// String renders the console listing line.
func (r *Record) String() string {
	return fmt.Sprintf("ID: %d | Título: %s | Autor: %s", r.ID, r.Title, r.Author)
}
