package ticket

import (
	"strings"
	"time"
)

// Canonical lookup keys for the five fields the table cares about,
// derived from the literal spreadsheet headers so a sheet with any
// casing/accent variant of these headers still resolves.
var (
	KeyRequest    = NormalizeHeader("Petición")
	KeyAssignee   = NormalizeHeader("Asignado")
	KeyStartDate  = NormalizeHeader("Fecha")
	KeyAnswered   = NormalizeHeader("Respondida")
	KeyAnswerDate = NormalizeHeader("FechaRespuesta")
)

// Row is one normalized ticket: canonical header key → raw cell value.
// Unknown headers pass through under their normalized key; values are
// never coerced. A missing key reads as the empty string.
type Row map[string]string

// NormalizeRow re-keys one CSV record through NormalizeHeader.
// When two headers collapse to the same key the later column wins.
// Records shorter than the header line leave the trailing fields absent.
func NormalizeRow(headers, record []string) Row {
	row := make(Row, len(headers))
	for i, h := range headers {
		if i >= len(record) {
			break
		}
		row[NormalizeHeader(h)] = record[i]
	}
	return row
}

// NormalizeRows applies NormalizeRow to every data record.
func NormalizeRows(headers []string, records [][]string) []Row {
	rows := make([]Row, 0, len(records))
	for _, rec := range records {
		rows = append(rows, NormalizeRow(headers, rec))
	}
	return rows
}

// Request returns the ticket's request text.
func (r Row) Request() string { return r[KeyRequest] }

// Assignee returns who the ticket is assigned to.
func (r Row) Assignee() string { return r[KeyAssignee] }

// StartDate returns the raw request-date cell.
func (r Row) StartDate() string { return r[KeyStartDate] }

// AnsweredText returns the raw answered-flag cell.
func (r Row) AnsweredText() string { return r[KeyAnswered] }

// AnswerDate returns the raw answer-date cell.
func (r Row) AnswerDate() string { return r[KeyAnswerDate] }

// Answered reports whether the ticket's answered flag is affirmative.
func (r Row) Answered() bool { return IsAffirmative(r.AnsweredText()) }

// Elapsed returns the whole days between the request date and the answer
// date, or between the request date and now for open tickets.
func (r Row) Elapsed(now time.Time) int {
	return ElapsedDays(r.StartDate(), r.AnswerDate(), now)
}

// Matches reports whether any cell of the row contains the query as a
// case-insensitive substring. The comparison is literal: accents in cell
// values are not folded, only casing is. An empty query matches.
func (r Row) Matches(query string) bool {
	if query == "" {
		return true
	}
	q := strings.ToLower(query)
	for _, v := range r {
		if strings.Contains(strings.ToLower(v), q) {
			return true
		}
	}
	return false
}
