package esic

// Column names of a StructuredTable, in output order.
const (
	ColumnSerial       = "SNo"
	ColumnDisabled     = "Is Disable"
	ColumnIdentifier   = "IP Number"
	ColumnName         = "IP Name"
	ColumnDays         = "No of Days"
	ColumnWages        = "Total Wages"
	ColumnContribution = "IP Contribution"
	ColumnReason       = "Reason"
)

// Columns is the fixed header attached to every StructuredTable.
var Columns = []string{
	ColumnSerial,
	ColumnDisabled,
	ColumnIdentifier,
	ColumnName,
	ColumnDays,
	ColumnWages,
	ColumnContribution,
	ColumnReason,
}

// RawRow is one row of text cells as produced by table extraction.
type RawRow []string

// RawTable is an ordered grid of cells for one detected table.
type RawTable []RawRow

// StructuredRow is a reconstructed employee wage/contribution record.
// An empty string is the null value for every field.
type StructuredRow struct {
	Serial       string `json:"sno"`
	Disabled     string `json:"is_disable"`
	Identifier   string `json:"ip_number"`
	Name         string `json:"ip_name"`
	Days         string `json:"no_of_days"`
	Wages        string `json:"total_wages"`
	Contribution string `json:"ip_contribution"`
	Reason       string `json:"reason"`
}

// Values returns the row's fields in Columns order.
func (r StructuredRow) Values() []string {
	return []string{
		r.Serial,
		r.Disabled,
		r.Identifier,
		r.Name,
		r.Days,
		r.Wages,
		r.Contribution,
		r.Reason,
	}
}

// StructuredTable is an ordered set of rows under the fixed 8-column header.
type StructuredTable struct {
	Columns []string        `json:"columns"`
	Rows    []StructuredRow `json:"rows"`
}

// NewTable returns an empty table carrying the fixed header.
func NewTable() StructuredTable {
	cols := make([]string, len(Columns))
	copy(cols, Columns)
	return StructuredTable{Columns: cols, Rows: []StructuredRow{}}
}

// Len returns the number of data rows.
func (t StructuredTable) Len() int {
	return len(t.Rows)
}

// Segment is a flat row split around its pivot token.
type Segment struct {
	Prefix     []string
	Identifier string
	Suffix     []string
}

// Footer holds the print metadata scraped from page text.
type Footer struct {
	TotalPages  string `json:"total_pages"`
	PrintedOn   string `json:"printed_on"`
	PrintedTime string `json:"printed_time"`
}

// Headings holds the first two lines of the first page.
type Headings struct {
	Main string `json:"main_heading"`
	Sub  string `json:"sub_heading"`
}
