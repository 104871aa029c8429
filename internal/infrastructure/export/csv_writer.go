// Package csvexport renders stakeholder earnings as CSV reports.
package csvexport

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"

	"github.com/rentalops/backend/internal/domain/revenue"
	"github.com/shopspring/decimal"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// UTF-8 byte order mark, written first when WithBOM is set so spreadsheet tools
// detect the encoding.
var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// Writer renders earnings reports
type Writer struct {
	delimiter rune
	bom       bool
}

// WriterOption configures a Writer
type WriterOption func(*Writer)

// WithDelimiter sets the field delimiter (default is comma)
func WithDelimiter(d rune) WriterOption {
	return func(w *Writer) {
		w.delimiter = d
	}
}

// WithBOM prefixes the output with a UTF-8 byte order mark
func WithBOM(enabled bool) WriterOption {
	return func(w *Writer) {
		w.bom = enabled
	}
}

// NewWriter creates a Writer
func NewWriter(opts ...WriterOption) *Writer {
	w := &Writer{
		delimiter: ',',
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// column is one report column: its key and how to render it from an earning
type column struct {
	key    string
	render func(e revenue.StakeholderEarning) string
}

func money(d decimal.Decimal) string {
	return d.StringFixed(2)
}

var (
	colPropertyCount = column{"properties", func(e revenue.StakeholderEarning) string { return strconv.Itoa(len(e.Properties)) }}
	colPropertyNames = column{"property_names", func(e revenue.StakeholderEarning) string { return propertyNames(e) }}
	colBookingCount  = column{"bookings", func(e revenue.StakeholderEarning) string { return strconv.Itoa(e.BookingCount) }}
	colStatus        = column{"status", func(e revenue.StakeholderEarning) string { return string(e.Status) }}
)

func idColumn(key string) column {
	return column{key, func(e revenue.StakeholderEarning) string { return e.StakeholderID.String() }}
}

func nameColumn(key string) column {
	return column{key, func(e revenue.StakeholderEarning) string { return e.StakeholderName }}
}

func grossColumn(key string) column {
	return column{key, func(e revenue.StakeholderEarning) string { return money(e.Gross) }}
}

func netColumn(key string) column {
	return column{key, func(e revenue.StakeholderEarning) string { return money(e.Net) }}
}

func deductionsColumn(key string) column {
	return column{key, func(e revenue.StakeholderEarning) string { return money(e.Deductions) }}
}

var reportColumns = map[revenue.StakeholderType][]column{
	revenue.StakeholderOwner: {
		idColumn("owner_id"), nameColumn("owner_name"), colPropertyCount, colBookingCount,
		grossColumn("gross_revenue"), deductionsColumn("deductions"), netColumn("net_payout"), colStatus,
	},
	revenue.StakeholderPropertyManager: {
		idColumn("manager_id"), nameColumn("manager_name"), colPropertyCount, colBookingCount,
		grossColumn("management_fees"), deductionsColumn("company_retained"), netColumn("pm_share"), colStatus,
	},
	revenue.StakeholderReferralAgent: {
		idColumn("agent_id"), nameColumn("agent_name"), colPropertyCount, colBookingCount,
		netColumn("commission"), colStatus,
	},
	revenue.StakeholderRetailAgent: {
		idColumn("agent_id"), nameColumn("agent_name"), colPropertyCount, colBookingCount,
		netColumn("commission"), colStatus,
	},
	revenue.StakeholderStaff: {
		idColumn("staff_id"), nameColumn("staff_name"), colPropertyNames,
		netColumn("monthly_wage"), colStatus,
	},
}

// Columns returns the column keys of the report for kind
func Columns(kind revenue.StakeholderType) ([]string, error) {
	cols, ok := reportColumns[kind]
	if !ok {
		return nil, fmt.Errorf("unknown stakeholder type %q", kind)
	}
	keys := make([]string, len(cols))
	for i, c := range cols {
		keys[i] = c.key
	}
	return keys, nil
}

var acronyms = strings.NewReplacer(" Id", " ID", "Pm ", "PM ")

// Header returns the human-readable header row of the report for kind
func (w *Writer) Header(kind revenue.StakeholderType) ([]string, error) {
	keys, err := Columns(kind)
	if err != nil {
		return nil, err
	}
	// Casers carry state, so each call gets its own.
	caser := cases.Title(language.English)
	labels := make([]string, len(keys))
	for i, key := range keys {
		label := caser.String(strings.ReplaceAll(key, "_", " "))
		labels[i] = strings.TrimSpace(acronyms.Replace(label + " "))
	}
	return labels, nil
}

// Write renders earnings as CSV to out: a header row, then one row per earning in
// the given order
func (w *Writer) Write(out io.Writer, kind revenue.StakeholderType, earnings []revenue.StakeholderEarning) error {
	header, err := w.Header(kind)
	if err != nil {
		return err
	}
	cols := reportColumns[kind]

	if w.bom {
		if _, err := out.Write(utf8BOM); err != nil {
			return fmt.Errorf("failed to write BOM: %w", err)
		}
	}

	cw := csv.NewWriter(out)
	cw.Comma = w.delimiter
	if err := cw.Write(header); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}

	row := make([]string, len(cols))
	for _, e := range earnings {
		for i, c := range cols {
			row[i] = sanitizeCell(c.render(e))
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("failed to write row for %s: %w", e.StakeholderID, err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// Render is Write into a new buffer
func (w *Writer) Render(kind revenue.StakeholderType, earnings []revenue.StakeholderEarning) ([]byte, error) {
	var buf bytes.Buffer
	if err := w.Write(&buf, kind, earnings); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Filename is the suggested attachment name for a report
func Filename(kind revenue.StakeholderType, period revenue.ReportPeriod) string {
	return fmt.Sprintf("%s-payouts-%s-%s.csv",
		strings.ReplaceAll(kind.String(), "_", "-"),
		period.Start.Format("20060102"),
		period.End.Format("20060102"))
}

func propertyNames(e revenue.StakeholderEarning) string {
	names := make([]string, 0, len(e.Properties))
	for _, p := range e.Properties {
		if p.PropertyName != "" {
			names = append(names, p.PropertyName)
		} else {
			names = append(names, p.PropertyID.String())
		}
	}
	sort.Strings(names)
	return strings.Join(names, "; ")
}

// sanitizeCell neutralizes values a spreadsheet would evaluate as a formula.
// Negative amounts are plain numbers and pass through.
func sanitizeCell(v string) string {
	if v == "" {
		return v
	}
	switch v[0] {
	case '=', '+', '@', '\t', '\r':
		return "'" + v
	case '-':
		if _, err := strconv.ParseFloat(v, 64); err == nil {
			return v
		}
		return "'" + v
	}
	return v
}
