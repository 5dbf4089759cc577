package domain

import "time"

// PlanRun is one archived planner run.
type PlanRun struct {
	ID         int64     `json:"id" db:"id"`
	Workbook   string    `json:"workbook" db:"workbook"`
	WindowDays int       `json:"window_days" db:"window_days"`
	Platforms  int       `json:"platforms" db:"platforms"`
	EveryDay   bool      `json:"every_day" db:"every_day"`
	Gaps       string    `json:"gaps" db:"gaps"`
	LeadTime   int       `json:"lead_time" db:"lead_time"`
	Orders     int       `json:"orders" db:"orders"`
	TotalQty   int64     `json:"total_quantity" db:"total_quantity"`
	OutputPath string    `json:"output_path" db:"output_path"`
	CreatedAt  time.Time `json:"created_at" db:"created_at"`
}

// OrderSuggestion is one archived ledger entry.
type OrderSuggestion struct {
	ID           int64     `json:"id" db:"id"`
	RunID        int64     `json:"run_id" db:"run_id"`
	Platform     string    `json:"platform" db:"platform"`
	PlatformIdx  int       `json:"platform_index" db:"platform_index"`
	DeliveryDate time.Time `json:"delivery_date" db:"delivery_date"`
	ProductCode  string    `json:"product_code" db:"product_code"`
	Quantity     int       `json:"quantity" db:"quantity"`
}
