package postgres

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/phenrril/linqsamples/internal/dataset"
	"github.com/phenrril/linqsamples/internal/domain"
)

// Position columns keep the order rows were seeded in. Queries return rows
// ordered by it, never by id.

type customerRow struct {
	ID          string     `gorm:"primaryKey;size:16"`
	Position    int        `gorm:"not null;index"`
	CompanyName string     `gorm:"size:120;not null"`
	Address     string     `gorm:"size:120"`
	City        string     `gorm:"size:60;index:idx_customers_location"`
	Region      *string    `gorm:"size:60"`
	PostalCode  *string    `gorm:"size:20"`
	Country     string     `gorm:"size:60;index:idx_customers_location"`
	Phone       string     `gorm:"size:30"`
	Fax         string     `gorm:"size:30"`
	Orders      []orderRow `gorm:"foreignKey:CustomerID;constraint:OnDelete:CASCADE"`
}

func (customerRow) TableName() string { return "customers" }

type orderRow struct {
	ID         int             `gorm:"primaryKey;autoIncrement:false"`
	CustomerID string          `gorm:"size:16;not null;index"`
	Position   int             `gorm:"not null"`
	OrderDate  time.Time       `gorm:"not null"`
	Total      decimal.Decimal `gorm:"type:numeric(14,2);not null"`
}

func (orderRow) TableName() string { return "orders" }

type supplierRow struct {
	ID       int    `gorm:"primaryKey;autoIncrement:false"`
	Position int    `gorm:"not null;index"`
	Name     string `gorm:"size:120;not null"`
	Address  string `gorm:"size:120"`
	City     string `gorm:"size:60"`
	Country  string `gorm:"size:60"`
}

func (supplierRow) TableName() string { return "suppliers" }

type productRow struct {
	ID           int             `gorm:"primaryKey;autoIncrement:false"`
	Position     int             `gorm:"not null;index"`
	Name         string          `gorm:"size:120;not null"`
	Category     string          `gorm:"size:60;index"`
	UnitPrice    decimal.Decimal `gorm:"type:numeric(12,2);not null"`
	UnitsInStock int             `gorm:"not null"`
}

func (productRow) TableName() string { return "products" }

func models() []any {
	return []any{&customerRow{}, &orderRow{}, &supplierRow{}, &productRow{}}
}

func toRows(t dataset.Tables) ([]customerRow, []supplierRow, []productRow) {
	customers := make([]customerRow, len(t.Customers))
	for i, c := range t.Customers {
		orders := make([]orderRow, len(c.Orders))
		for j, o := range c.Orders {
			orders[j] = orderRow{ID: o.OrderID, CustomerID: c.CustomerID, Position: j, OrderDate: o.OrderDate.UTC(), Total: o.Total}
		}
		customers[i] = customerRow{
			ID: c.CustomerID, Position: i, CompanyName: c.CompanyName, Address: c.Address, City: c.City,
			Region: c.Region, PostalCode: c.PostalCode, Country: c.Country, Phone: c.Phone, Fax: c.Fax,
			Orders: orders,
		}
	}
	suppliers := make([]supplierRow, len(t.Suppliers))
	for i, s := range t.Suppliers {
		suppliers[i] = supplierRow{ID: s.SupplierID, Position: i, Name: s.SupplierName, Address: s.Address, City: s.City, Country: s.Country}
	}
	products := make([]productRow, len(t.Products))
	for i, p := range t.Products {
		products[i] = productRow{ID: p.ProductID, Position: i, Name: p.ProductName, Category: p.Category, UnitPrice: p.UnitPrice, UnitsInStock: p.UnitsInStock}
	}
	return customers, suppliers, products
}

// fromRows expects rows, and each customer's orders, already sorted by
// position.
func fromRows(customers []customerRow, suppliers []supplierRow, products []productRow) dataset.Tables {
	var t dataset.Tables
	t.Customers = make([]domain.Customer, len(customers))
	for i, r := range customers {
		orders := make([]domain.Order, len(r.Orders))
		for j, o := range r.Orders {
			orders[j] = domain.Order{OrderID: o.ID, OrderDate: o.OrderDate.UTC(), Total: o.Total}
		}
		t.Customers[i] = domain.Customer{
			CustomerID: r.ID, CompanyName: r.CompanyName, Address: r.Address, City: r.City,
			Region: r.Region, PostalCode: r.PostalCode, Country: r.Country, Phone: r.Phone, Fax: r.Fax,
			Orders: orders,
		}
	}
	t.Suppliers = make([]domain.Supplier, len(suppliers))
	for i, r := range suppliers {
		t.Suppliers[i] = domain.Supplier{SupplierID: r.ID, SupplierName: r.Name, Address: r.Address, City: r.City, Country: r.Country}
	}
	t.Products = make([]domain.Product, len(products))
	for i, r := range products {
		t.Products[i] = domain.Product{ProductID: r.ID, ProductName: r.Name, Category: r.Category, UnitPrice: r.UnitPrice, UnitsInStock: r.UnitsInStock}
	}
	return t
}
