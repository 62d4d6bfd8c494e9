package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

type Order struct {
	OrderID   int
	OrderDate time.Time
	Total     decimal.Decimal
}

// YearMonth is the composite key used when orders are bucketed by calendar month.
type YearMonth struct {
	Year  int
	Month time.Month
}

func (o Order) YearMonth() YearMonth {
	return YearMonth{Year: o.OrderDate.Year(), Month: o.OrderDate.Month()}
}
