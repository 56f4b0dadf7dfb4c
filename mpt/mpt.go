// Package mpt reads the vendor's tab-separated ASCII export format.
//
// EC-Lab and BT-Lab can export any run as a .mpt text file: a magic line, a
// header-line count, free-form comment lines, one tab-separated column header
// line, then one data line per record. Column headers map to the same
// canonical field names the binary decoder produces, so exports and binary
// captures of the same run line up column for column.
package mpt

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/echemdata/galvani/errs"
	"github.com/echemdata/galvani/format"
)

// Known magic lines, without line terminators.
var magicLines = []string{
	"EC-Lab ASCII FILE",
	"BT-Lab ASCII FILE",
}

const headerLinesPrefix = "Nb header lines : "

// minHeaderLines counts the magic line, the header-count line and the column
// header line. Every additional header line is a comment.
const minHeaderLines = 3

// Column is one resolved column of the export.
type Column struct {
	Header string // header as written in the file
	Name   string // canonical field name, matching the binary schema
	Kind   format.DecodeKind
}

// Table is a fully parsed .mpt export. All cells are held as float64; Kind
// records whether the source field is integral.
type Table struct {
	Columns  []Column
	Comments []string
	Rows     [][]float64
}

// Lookup returns the index of the column with the given canonical name.
func (t *Table) Lookup(name string) (int, bool) {
	for i, col := range t.Columns {
		if col.Name == name {
			return i, true
		}
	}

	return 0, false
}

// Parse reads a complete .mpt export from an in-memory buffer.
//
// Returns:
//   - *Table: Parsed columns, comments and rows
//   - error: ErrBadTextHeader, ErrUnknownColumnHeader or ErrBadTextRow with
//     line context
func Parse(data []byte) (*Table, error) {
	return ParseReader(bytes.NewReader(data))
}

// ParseReader reads a complete .mpt export from r.
func ParseReader(r io.Reader) (*Table, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 4*1024*1024)

	magic, err := nextLine(scanner)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", errs.ErrBadTextHeader, err)
	}
	if !isMagic(magic) {
		return nil, fmt.Errorf("%w: first line %q", errs.ErrBadTextHeader, magic)
	}

	countLine, err := nextLine(scanner)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", errs.ErrBadTextHeader, err)
	}
	headerLines, err := parseHeaderCount(countLine)
	if err != nil {
		return nil, err
	}

	comments := make([]string, 0, headerLines-minHeaderLines)
	for i := 0; i < headerLines-minHeaderLines; i++ {
		line, err := nextLine(scanner)
		if err != nil {
			return nil, fmt.Errorf("%w: %d header lines declared, file ends at comment %d",
				errs.ErrBadTextHeader, headerLines, i+1)
		}
		comments = append(comments, line)
	}

	headerLine, err := nextLine(scanner)
	if err != nil {
		return nil, fmt.Errorf("%w: missing column header line", errs.ErrBadTextHeader)
	}

	columns, err := resolveColumns(strings.Split(headerLine, "\t"))
	if err != nil {
		return nil, err
	}

	table := &Table{Columns: columns, Comments: comments}

	lineNo := headerLines
	for {
		line, err := nextLine(scanner)
		if err != nil {
			break
		}
		lineNo++
		if strings.TrimSpace(line) == "" {
			continue
		}

		row, err := parseRow(line, len(columns))
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", lineNo, err)
		}
		table.Rows = append(table.Rows, row)
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}

	return table, nil
}

func nextLine(scanner *bufio.Scanner) (string, error) {
	if !scanner.Scan() {
		if err := scanner.Err(); err != nil {
			return "", err
		}

		return "", io.ErrUnexpectedEOF
	}

	return strings.TrimRight(scanner.Text(), "\r"), nil
}

func isMagic(line string) bool {
	trimmed := strings.TrimSpace(line)
	for _, magic := range magicLines {
		if trimmed == magic {
			return true
		}
	}

	return false
}

func parseHeaderCount(line string) (int, error) {
	rest, ok := strings.CutPrefix(line, headerLinesPrefix)
	if !ok {
		return 0, fmt.Errorf("%w: second line %q", errs.ErrBadTextHeader, line)
	}

	n, err := strconv.Atoi(strings.TrimSpace(rest))
	if err != nil {
		return 0, fmt.Errorf("%w: header line count %q", errs.ErrBadTextHeader, rest)
	}
	if n < minHeaderLines {
		return 0, fmt.Errorf("%w: %d header lines, need at least %d", errs.ErrBadTextHeader, n, minHeaderLines)
	}

	return n, nil
}

func resolveColumns(headers []string) ([]Column, error) {
	columns := make([]Column, 0, len(headers))
	for i, header := range headers {
		name, kind, err := canonicalField(strings.TrimSpace(header))
		if err != nil {
			return nil, fmt.Errorf("column %d: %w", i+1, err)
		}
		columns = append(columns, Column{Header: header, Name: name, Kind: kind})
	}

	return columns, nil
}

// parseRow splits one data line and parses each cell, accepting both '.' and
// ',' as the decimal separator.
func parseRow(line string, want int) ([]float64, error) {
	cells := strings.Split(line, "\t")
	if len(cells) != want {
		return nil, fmt.Errorf("%w: %d cells, header declares %d columns",
			errs.ErrBadTextRow, len(cells), want)
	}

	row := make([]float64, len(cells))
	for i, cell := range cells {
		v, err := strconv.ParseFloat(strings.ReplaceAll(strings.TrimSpace(cell), ",", "."), 64)
		if err != nil {
			return nil, fmt.Errorf("%w: cell %d %q", errs.ErrBadTextRow, i+1, cell)
		}
		row[i] = v
	}

	return row, nil
}
