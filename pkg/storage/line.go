package storage

import (
	"fmt"
	"strconv"
	"strings"

	"codexdb/pkg/common"
)

// ParseLine decodes one `ID;TITLE;AUTHOR` line. Leading whitespace and a
// sign are accepted before the ID; TITLE runs to the first ';' and AUTHOR
// is the rest of the line, so it may itself contain ';'. Both must be
// non-empty and are truncated to common.MaxFieldLen bytes. Lines that do
// not fit this shape report ok == false.
func ParseLine(line string) (*common.Record, bool) {
	line = strings.TrimSuffix(strings.TrimSuffix(line, "\n"), "\r")
	s := strings.TrimLeft(line, " \t\v\f\r\n")

	end := 0
	if end < len(s) && (s[end] == '+' || s[end] == '-') {
		end++
	}
	digits := end
	for end < len(s) && s[end] >= '0' && s[end] <= '9' {
		end++
	}
	if end == digits || end >= len(s) || s[end] != ';' {
		return nil, false
	}
	id, err := strconv.Atoi(s[:end])
	if err != nil {
		return nil, false
	}

	rest := s[end+1:]
	sep := strings.IndexByte(rest, ';')
	if sep <= 0 {
		return nil, false
	}
	title, author := rest[:sep], rest[sep+1:]
	if author == "" {
		return nil, false
	}

	return common.NewRecord(id, title, author), true
}

// FormatLine encodes rec in the layout ParseLine reads, newline included.
func FormatLine(rec *common.Record) string {
	return fmt.Sprintf("%d;%s;%s\n", rec.ID, rec.Title, rec.Author)
}
