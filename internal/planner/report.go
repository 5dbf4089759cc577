package planner

import "time"

// Column headers of the order report.
const (
	HeaderDate     = "Date"
	HeaderProduct  = "Product Code"
	HeaderQuantity = "Order Quantity"
)

// DateLayout is the delivery date format used in reports.
const DateLayout = "2006-01-02"

// Report is the presentation form of a finished ledger.
type Report struct {
	GeneratedAt time.Time
	Platforms   []PlatformOrders
}

// Summary totals a report.
type Summary struct {
	Platforms      int
	Orders         int
	TotalQuantity  int
	EmptyPlatforms []string
}

func NewReport(l *Ledger, generatedAt time.Time) *Report {
	return &Report{GeneratedAt: generatedAt, Platforms: l.Platforms()}
}

// Rows lays the report out as a single sheet: per platform a name row, a
// column header row, one row per order and a blank spacer. Platforms with
// no orders still get their two header rows.
func (r *Report) Rows() [][]any {
	var rows [][]any
	for _, p := range r.Platforms {
		rows = append(rows,
			[]any{p.Name, ""},
			[]any{HeaderDate, HeaderProduct, HeaderQuantity},
		)
		for _, o := range p.Orders {
			rows = append(rows, []any{o.DeliveryDate.Format(DateLayout), o.ProductCode, o.Quantity})
		}
		rows = append(rows, []any{})
	}
	return rows
}

func (r *Report) Summary() Summary {
	s := Summary{Platforms: len(r.Platforms)}
	for _, p := range r.Platforms {
		if len(p.Orders) == 0 {
			s.EmptyPlatforms = append(s.EmptyPlatforms, p.Name)
		}
		for _, o := range p.Orders {
			s.Orders++
			s.TotalQuantity += o.Quantity
		}
	}
	return s
}
