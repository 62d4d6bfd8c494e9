package domain

import "github.com/shopspring/decimal"

type Product struct {
	ProductID    int
	ProductName  string
	Category     string
	UnitPrice    decimal.Decimal
	UnitsInStock int
}

func (p Product) InStock() bool { return p.UnitsInStock > 0 }
