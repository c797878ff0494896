package strategy

import (
	"encoding/csv"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/fkuefler/blackjack-lab/src/errors"
	"github.com/fkuefler/blackjack-lab/src/types"
)

// DefaultSkipRows matches the generator's layout: a title comment and six rule lines.
const DefaultSkipRows = 7

var requiredColumns = []string{types.ColumnPlayerHand, types.ColumnDealerUpcard, types.ColumnOptimalAction}

// LoadTable reads the data table of the strategy file at path.
func LoadTable(path string, skipRows int) ([]types.Record, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) || os.IsPermission(err) {
			return nil, errors.NotFound(err, path)
		}
		return nil, errors.Wrapf(err, "open %s", path)
	}
	defer f.Close()
	return ParseTable(f, skipRows)
}

// ParseTable skips the first skipRows physical lines of r, drops blank and comment
// lines from the rest and parses what remains as CSV with a header row.
func ParseTable(r io.Reader, skipRows int) ([]types.Record, error) {
	var body strings.Builder
	var lineNos []int // body line -> source line
	scanner := newLineScanner(r)
	n := 0
	for scanner.Scan() {
		n++
		if n <= skipRows {
			continue
		}
		line := scanner.Text()
		trimmed := strings.TrimSpace(line)
		if trimmed == "" || strings.HasPrefix(trimmed, CommentMarker) {
			continue
		}
		body.WriteString(line)
		body.WriteByte('\n')
		lineNos = append(lineNos, n)
	}
	if err := scanner.Err(); err != nil {
		return nil, errors.Wrap(err, "read strategy table")
	}
	sourceLine := func(bodyLine int) int {
		if bodyLine >= 1 && bodyLine <= len(lineNos) {
			return lineNos[bodyLine-1]
		}
		return bodyLine
	}

	cr := csv.NewReader(strings.NewReader(body.String()))
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if err == io.EOF {
		return nil, errors.Parsef("no header row after skipping %d lines", skipRows)
	}
	if err != nil {
		return nil, errors.Mark(errors.Wrap(err, "parse header row"), errors.ErrParse)
	}
	cols, err := indexColumns(header)
	if err != nil {
		return nil, err
	}

	var records []types.Record
	for {
		row, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, errors.Mark(errors.Wrap(err, "parse strategy row"), errors.ErrParse)
		}
		bodyLine, _ := cr.FieldPos(0)
		line := sourceLine(bodyLine)
		if len(row) != len(header) {
			return nil, errors.Parsef("line %d: expected %d fields, got %d", line, len(header), len(row))
		}
		rec := types.Record{
			PlayerHand:   strings.TrimSpace(row[cols.hand]),
			DealerUpcard: strings.TrimSpace(row[cols.upcard]),
			Action:       types.Action(strings.TrimSpace(row[cols.action])),
			Line:         line,
		}
		if cols.ev >= 0 {
			if s := strings.TrimSpace(row[cols.ev]); s != "" {
				v, perr := strconv.ParseFloat(s, 64)
				if perr != nil {
					return nil, errors.Parsef("line %d: bad %s %q", line, types.ColumnExpectedValue, s)
				}
				rec.ExpectedValue = v
				rec.HasExpectedValue = true
			}
		}
		records = append(records, rec)
	}
	if len(records) == 0 {
		return nil, errors.Parsef("strategy table has no data rows")
	}
	return records, nil
}

type columnIndex struct {
	hand, upcard, action, ev int
}

func indexColumns(header []string) (columnIndex, error) {
	pos := make(map[string]int, len(header))
	for i, h := range header {
		h = strings.TrimSpace(strings.TrimPrefix(h, "\ufeff"))
		if _, dup := pos[h]; !dup {
			pos[h] = i
		}
	}
	var missing []string
	for _, c := range requiredColumns {
		if _, ok := pos[c]; !ok {
			missing = append(missing, c)
		}
	}
	if len(missing) > 0 {
		err := errors.Parsef("missing column(s) %s", strings.Join(quoteAll(missing), ", "))
		return columnIndex{}, errors.WithHintf(err, "expected columns: %s", strings.Join(requiredColumns, ", "))
	}
	ci := columnIndex{
		hand:   pos[types.ColumnPlayerHand],
		upcard: pos[types.ColumnDealerUpcard],
		action: pos[types.ColumnOptimalAction],
		ev:     -1,
	}
	if i, ok := pos[types.ColumnExpectedValue]; ok {
		ci.ev = i
	}
	return ci, nil
}

func quoteAll(ss []string) []string {
	out := make([]string, len(ss))
	for i, s := range ss {
		out[i] = strconv.Quote(s)
	}
	return out
}
