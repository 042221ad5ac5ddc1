// Package importer parses bank and ERP statement exports into ledger rows.
// Exports from Brazilian banking systems typically arrive as Windows-1252
// encoded CSV with semicolon delimiters, DD/MM/YYYY dates and decimal commas.
package importer

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/shopspring/decimal"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"
)

// StatementRow is one parsed line of a statement export
type StatementRow struct {
	LineNumber  int
	Description string
	Amount      decimal.Decimal
	DueDate     time.Time
	RubricCode  string
	Competence  *time.Time
}

// RowError describes why one line could not be parsed
type RowError struct {
	LineNumber int    `json:"line_number"`
	Field      string `json:"field"`
	Message    string `json:"message"`
}

func (e RowError) Error() string {
	return fmt.Sprintf("line %d: %s: %s", e.LineNumber, e.Field, e.Message)
}

// ParseResult carries the rows that parsed cleanly and the per-line failures
type ParseResult struct {
	Rows   []StatementRow
	Errors []RowError
}

// expected header columns, matched case-insensitively after normalization
var expectedHeader = []string{"description", "amount", "due_date", "rubric_code", "competence"}

// Parse reads a whole statement export. Lines that fail to parse are
// collected as row errors instead of aborting the file.
func Parse(r io.Reader) (*ParseResult, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read statement: %w", err)
	}
	data = decodeCharset(data)

	reader := csv.NewReader(bytes.NewReader(data))
	reader.Comma = sniffDelimiter(data)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err == io.EOF {
		return nil, fmt.Errorf("statement file is empty")
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read statement header: %w", err)
	}
	columns, err := mapHeader(header)
	if err != nil {
		return nil, err
	}

	result := &ParseResult{}
	line := 1
	for {
		fields, err := reader.Read()
		if err == io.EOF {
			break
		}
		line++
		if err != nil {
			result.Errors = append(result.Errors, RowError{LineNumber: line, Field: "", Message: "malformed csv line"})
			continue
		}
		if isBlank(fields) {
			continue
		}
		row, rowErr := parseRow(line, fields, columns)
		if rowErr != nil {
			result.Errors = append(result.Errors, *rowErr)
			continue
		}
		result.Rows = append(result.Rows, *row)
	}
	return result, nil
}

// decodeCharset converts legacy bank exports to UTF-8. Valid UTF-8 input
// passes through untouched.
func decodeCharset(data []byte) []byte {
	data = bytes.TrimPrefix(data, []byte{0xEF, 0xBB, 0xBF})
	if utf8.Valid(data) {
		return data
	}
	decoded, _, err := transform.Bytes(charmap.Windows1252.NewDecoder(), data)
	if err != nil {
		return data
	}
	return decoded
}

// sniffDelimiter picks the delimiter that appears most in the first line.
// Brazilian exports use semicolons; spreadsheet re-saves produce commas.
func sniffDelimiter(data []byte) rune {
	firstLine := data
	if i := bytes.IndexByte(data, '\n'); i >= 0 {
		firstLine = data[:i]
	}
	if bytes.Count(firstLine, []byte{';'}) >= bytes.Count(firstLine, []byte{','}) {
		return ';'
	}
	return ','
}

func mapHeader(header []string) (map[string]int, error) {
	columns := make(map[string]int, len(header))
	for i, name := range header {
		normalized := strings.ToLower(strings.TrimSpace(name))
		normalized = strings.ReplaceAll(normalized, " ", "_")
		columns[normalized] = i
	}
	for _, required := range []string{"description", "amount", "due_date"} {
		if _, ok := columns[required]; !ok {
			return nil, fmt.Errorf("statement header is missing the %q column", required)
		}
	}
	return columns, nil
}

func parseRow(line int, fields []string, columns map[string]int) (*StatementRow, *RowError) {
	get := func(name string) string {
		i, ok := columns[name]
		if !ok || i >= len(fields) {
			return ""
		}
		return strings.TrimSpace(fields[i])
	}

	description := get("description")
	if description == "" {
		return nil, &RowError{LineNumber: line, Field: "description", Message: "description is required"}
	}

	amount, err := ParseAmount(get("amount"))
	if err != nil {
		return nil, &RowError{LineNumber: line, Field: "amount", Message: err.Error()}
	}

	dueDate, err := ParseDate(get("due_date"))
	if err != nil {
		return nil, &RowError{LineNumber: line, Field: "due_date", Message: err.Error()}
	}

	row := &StatementRow{
		LineNumber:  line,
		Description: description,
		Amount:      amount,
		DueDate:     dueDate,
		RubricCode:  get("rubric_code"),
	}

	if raw := get("competence"); raw != "" {
		competence, err := ParseCompetence(raw)
		if err != nil {
			return nil, &RowError{LineNumber: line, Field: "competence", Message: err.Error()}
		}
		row.Competence = &competence
	}

	return row, nil
}

// ParseAmount accepts both decimal-comma ("1.234,56") and decimal-point
// ("1234.56") notation, with an optional currency prefix.
func ParseAmount(raw string) (decimal.Decimal, error) {
	if raw == "" {
		return decimal.Zero, fmt.Errorf("amount is required")
	}
	cleaned := strings.TrimSpace(raw)
	cleaned = strings.TrimPrefix(cleaned, "R$")
	cleaned = strings.TrimSpace(cleaned)
	if strings.Contains(cleaned, ",") {
		cleaned = strings.ReplaceAll(cleaned, ".", "")
		cleaned = strings.ReplaceAll(cleaned, ",", ".")
	}
	amount, err := decimal.NewFromString(cleaned)
	if err != nil {
		return decimal.Zero, fmt.Errorf("invalid amount %q", raw)
	}
	return amount, nil
}

// ParseDate accepts DD/MM/YYYY and YYYY-MM-DD
func ParseDate(raw string) (time.Time, error) {
	if raw == "" {
		return time.Time{}, fmt.Errorf("date is required")
	}
	for _, layout := range []string{"02/01/2006", "2006-01-02"} {
		if date, err := time.Parse(layout, raw); err == nil {
			return date, nil
		}
	}
	return time.Time{}, fmt.Errorf("invalid date %q", raw)
}

// ParseCompetence accepts MM/YYYY and the full date formats, truncating full
// dates to the first of the month
func ParseCompetence(raw string) (time.Time, error) {
	if date, err := time.Parse("01/2006", raw); err == nil {
		return date, nil
	}
	date, err := ParseDate(raw)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid competence %q", raw)
	}
	return time.Date(date.Year(), date.Month(), 1, 0, 0, 0, 0, time.UTC), nil
}

func isBlank(fields []string) bool {
	for _, field := range fields {
		if strings.TrimSpace(field) != "" {
			return false
		}
	}
	return true
}
