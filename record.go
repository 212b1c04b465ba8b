package foerder

import "strings"

// Fixed column names. Metadata and tab columns are added per record.
const (
	ColumnTitle         = "Title"
	ColumnLink          = "Link"
	ColumnWhoIsFunded   = "Who is funded"
	ColumnWhatIsFunded  = "What is funded"
	ColumnDetailTitle   = "Title (Details Page)"
	ColumnLinkNames     = "Weiterführende Link Names"
	ColumnLinkURLs      = "Weiterführende Link URLs"
	ColumnError         = "Error"
	SuffixContent       = " Content"
	SuffixLinkLabels    = " Hyperlink Labels"
	SuffixLinkURLs      = " Hyperlink URLs"
	GeneralContentTitle = "General Content"
)

// Sentinel values substituted when expected data is absent.
const (
	NoTitle        = "No Title"
	NoLink         = "No Link"
	NoLinks        = "No Links"
	NotSpecified   = "Nicht angegeben"
	NotAvailable   = "Nicht vorhanden"
	ValueSeparator = "; "
)

// Record is one output row: an ordered mapping from column name to value.
// The schema is open; records from the same crawl may carry different
// columns, and stores union them.
type Record struct {
	keys   []string
	values map[string]string
}

// NewRecord returns an empty record.
func NewRecord() *Record {
	return &Record{values: make(map[string]string)}
}

// Set assigns value to key. New keys are appended to the column order.
func (r *Record) Set(key, value string) {
	if r.values == nil {
		r.values = make(map[string]string)
	}
	if _, ok := r.values[key]; !ok {
		r.keys = append(r.keys, key)
	}
	r.values[key] = value
}

// SetDefault assigns value to key only if key is not present yet.
// It reports whether the value was assigned.
func (r *Record) SetDefault(key, value string) bool {
	if _, ok := r.values[key]; ok {
		return false
	}
	r.Set(key, value)
	return true
}

// Get returns the value for key and whether it is present.
func (r *Record) Get(key string) (string, bool) {
	v, ok := r.values[key]
	return v, ok
}

// Value returns the value for key, or "" if absent.
func (r *Record) Value(key string) string {
	return r.values[key]
}

// Keys returns the column names in insertion order.
func (r *Record) Keys() []string {
	keys := make([]string, len(r.keys))
	copy(keys, r.keys)
	return keys
}

// Len returns the number of columns.
func (r *Record) Len() int {
	return len(r.keys)
}

// Augment copies every column of other that r does not already have.
// Existing values in r are never overwritten.
func (r *Record) Augment(other *Record) {
	if other == nil {
		return
	}
	for _, k := range other.keys {
		r.SetDefault(k, other.values[k])
	}
}

// Link returns the record's detail link, the key used for deduplication.
func (r *Record) Link() string {
	return r.values[ColumnLink]
}

// Failed reports whether the record carries a detail fetch error marker.
func (r *Record) Failed() bool {
	return r.values[ColumnError] != ""
}

// Columns returns the union of all record columns in first-seen order.
func Columns(records []*Record) []string {
	seen := make(map[string]bool)
	var cols []string
	for _, r := range records {
		for _, k := range r.keys {
			if !seen[k] {
				seen[k] = true
				cols = append(cols, k)
			}
		}
	}
	return cols
}

// JoinValues joins values with ValueSeparator, or returns NoLinks if empty.
func JoinValues(values []string) string {
	if len(values) == 0 {
		return NoLinks
	}
	return strings.Join(values, ValueSeparator)
}
