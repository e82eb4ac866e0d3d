package storage

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"iter"
	"os"

	"codexdb/pkg/common"
)

// maxLineSize caps how much of one line is kept; the rest is discarded so
// an oversized line is parsed (or skipped) like any other.
const maxLineSize = 1 << 20

// TextFile stores one record per line. Malformed lines are skipped on load.
type TextFile struct {
	path        string
	compression Compression
}

func NewTextFile(path string) *TextFile {
	return &TextFile{path: path, compression: CompressionFor(path)}
}

func (f *TextFile) Name() string { return f.path }

func (f *TextFile) Load() ([]*common.Record, error) {
	file, err := os.Open(f.path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	r, err := newReader(file, f.compression)
	if err != nil {
		return nil, fmt.Errorf("open %s reader: %w", f.compression, err)
	}
	defer r.Close()

	var records []*common.Record
	br := bufio.NewReader(r)
	for {
		line, err := readLine(br)
		if line != "" {
			if rec, ok := ParseLine(line); ok {
				records = append(records, rec)
			}
		}
		if errors.Is(err, io.EOF) {
			return records, nil
		}
		if err != nil {
			return records, fmt.Errorf("read %s: %w", f.path, err)
		}
	}
}

// readLine returns the next line with at most maxLineSize bytes kept. A
// final line without a newline is returned with a nil error; io.EOF comes
// on the following call.
func readLine(br *bufio.Reader) (string, error) {
	var line []byte
	for {
		chunk, err := br.ReadSlice('\n')
		if room := maxLineSize - len(line); room > 0 {
			line = append(line, chunk[:min(len(chunk), room)]...)
		}
		if errors.Is(err, bufio.ErrBufferFull) {
			continue
		}
		if errors.Is(err, io.EOF) && len(line) > 0 {
			return string(line), nil
		}
		return string(line), err
	}
}

// Save truncates the file and writes every record of seq.
func (f *TextFile) Save(records iter.Seq[*common.Record]) (int, error) {
	file, err := os.Create(f.path)
	if err != nil {
		return 0, err
	}

	n, err := f.write(file, records)
	if cerr := file.Close(); err == nil {
		err = cerr
	}
	return n, err
}

func (f *TextFile) write(file *os.File, records iter.Seq[*common.Record]) (int, error) {
	cw, err := newWriter(file, f.compression)
	if err != nil {
		return 0, err
	}
	buf := bufio.NewWriter(cw)

	n := 0
	for rec := range records {
		if _, err := buf.WriteString(FormatLine(rec)); err != nil {
			cw.Close()
			return n, err
		}
		n++
	}
	if err := buf.Flush(); err != nil {
		cw.Close()
		return n, err
	}
	return n, cw.Close()
}

func (f *TextFile) Close() error { return nil }
