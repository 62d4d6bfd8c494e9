package usecase

import (
	"iter"
	"time"

	"github.com/shopspring/decimal"

	"github.com/phenrril/linqsamples/internal/dataset"
	"github.com/phenrril/linqsamples/internal/domain"
	"github.com/phenrril/linqsamples/internal/query"
)

// Thresholds and boundaries the registered exercises run with.
var (
	TotalThresholds     = []decimal.Decimal{decimal.NewFromInt(100), decimal.NewFromInt(1500)}
	LargeOrderThreshold = decimal.NewFromInt(5000)
	CheapBelow          = decimal.NewFromInt(20)
	ExpensiveFrom       = decimal.NewFromInt(50)
)

func orderTotal(o domain.Order) decimal.Decimal { return o.Total }

func hasOrders(c domain.Customer) bool { return query.Any(query.From(c.Orders)) }

func totalSum(c domain.Customer) decimal.Decimal {
	return query.SumDecimal(query.From(c.Orders), orderTotal)
}

// firstOrderDate must only be called for customers that pass hasOrders.
func firstOrderDate(c domain.Customer) time.Time {
	dates := query.Project(
		query.SortBy(query.From(c.Orders), query.KeyFunc(func(o domain.Order) time.Time { return o.OrderDate }, time.Time.Compare, query.Ascending)),
		func(o domain.Order) time.Time { return o.OrderDate })
	start, _ := query.First(dates)
	return start
}

type CustomerTotal struct {
	CustomerID string
	TotalSum   decimal.Decimal
}

// CustomersWithTotalOver keeps customers whose order total exceeds *x. The
// threshold is dereferenced on every enumeration, so changing *x between
// two ranges over the same sequence changes the result.
func CustomersWithTotalOver(ds *dataset.Dataset, x *decimal.Decimal) iter.Seq[CustomerTotal] {
	totals := query.Project(ds.Customers(), func(c domain.Customer) CustomerTotal {
		return CustomerTotal{CustomerID: c.CustomerID, TotalSum: totalSum(c)}
	})
	return query.Filter(totals, func(t CustomerTotal) bool { return t.TotalSum.GreaterThan(*x) })
}

type CustomerSuppliers struct {
	Customer  domain.Customer
	Suppliers []domain.Supplier
}

// SuppliersByNestedFilter scans all suppliers once per customer.
func SuppliersByNestedFilter(ds *dataset.Dataset) iter.Seq[CustomerSuppliers] {
	return query.Project(ds.Customers(), func(c domain.Customer) CustomerSuppliers {
		same := query.Filter(ds.Suppliers(), func(s domain.Supplier) bool {
			return s.City == c.City && s.Country == c.Country
		})
		return CustomerSuppliers{Customer: c, Suppliers: query.ToSlice(same)}
	})
}

// SuppliersByGroupJoin matches on the (city, country) pair in one pass and
// keeps customers without suppliers.
func SuppliersByGroupJoin(ds *dataset.Dataset) iter.Seq[CustomerSuppliers] {
	joined := query.GroupJoin(ds.Customers(), ds.Suppliers(), domain.Customer.Location, domain.Supplier.Location)
	return query.Project(joined, func(j query.Joined[domain.Customer, domain.Supplier]) CustomerSuppliers {
		return CustomerSuppliers{Customer: j.Outer, Suppliers: j.Matches}
	})
}

// SupplierPairs is the equi-join: customers without suppliers are dropped.
func SupplierPairs(ds *dataset.Dataset) iter.Seq[query.Pair[domain.Customer, domain.Supplier]] {
	return query.Join(ds.Customers(), ds.Suppliers(), domain.Customer.Location, domain.Supplier.Location)
}

func CustomersWithOrderOver(ds *dataset.Dataset, x decimal.Decimal) iter.Seq[domain.Customer] {
	return query.Filter(ds.Customers(), func(c domain.Customer) bool {
		return query.AnyMatch(query.From(c.Orders), func(o domain.Order) bool { return o.Total.GreaterThan(x) })
	})
}

// LargeOrders are c's orders with a total above x.
func LargeOrders(c domain.Customer, x decimal.Decimal) iter.Seq[domain.Order] {
	return query.Filter(query.From(c.Orders), func(o domain.Order) bool { return o.Total.GreaterThan(x) })
}

type FirstOrder struct {
	CustomerID string
	StartDate  time.Time
	TotalSum   decimal.Decimal
}

// FirstOrders lists customers that have ordered with the date of their
// earliest order. Customers without orders are left out.
func FirstOrders(ds *dataset.Dataset) iter.Seq[FirstOrder] {
	return query.Project(query.Filter(ds.Customers(), hasOrders), func(c domain.Customer) FirstOrder {
		return FirstOrder{CustomerID: c.CustomerID, StartDate: firstOrderDate(c), TotalSum: totalSum(c)}
	})
}

// FirstOrdersRanked orders FirstOrders by year, month, order total and
// customer id, all descending.
func FirstOrdersRanked(ds *dataset.Dataset) iter.Seq[FirstOrder] {
	return query.SortBy(FirstOrders(ds),
		query.Desc(func(f FirstOrder) int { return f.StartDate.Year() }),
		query.Desc(func(f FirstOrder) time.Month { return f.StartDate.Month() }),
		query.DescDecimal(func(f FirstOrder) decimal.Decimal { return f.TotalSum }),
		query.Desc(func(f FirstOrder) string { return f.CustomerID }),
	)
}

// IncompleteContact reports customers with a non-numeric postal code, no
// region, or a phone number without an area code in parentheses.
func IncompleteContact(c domain.Customer) bool {
	if c.HasPostalCode() {
		for _, r := range *c.PostalCode {
			if r < '0' || r > '9' {
				return true
			}
		}
	}
	if !c.HasRegion() {
		return true
	}
	return len(c.Phone) == 0 || c.Phone[0] != '('
}

func IncompleteContacts(ds *dataset.Dataset) iter.Seq[domain.Customer] {
	return query.Filter(ds.Customers(), IncompleteContact)
}

type StockGroup struct {
	InStock  bool
	Products []domain.Product
}

type CategoryStock struct {
	Category string
	ByStock  []StockGroup
}

// ProductsByCategoryAndStock groups by category, then by availability,
// with each availability group sorted by unit price.
func ProductsByCategoryAndStock(ds *dataset.Dataset) iter.Seq[CategoryStock] {
	byCategory := query.GroupBy(ds.Products(), func(p domain.Product) string { return p.Category })
	return query.Project(byCategory, func(g query.Grouping[string, domain.Product]) CategoryStock {
		byStock := query.Project(query.GroupBy(g.Values(), domain.Product.InStock),
			func(s query.Grouping[bool, domain.Product]) StockGroup {
				sorted := query.SortBy(s.Values(), query.AscDecimal(func(p domain.Product) decimal.Decimal { return p.UnitPrice }))
				return StockGroup{InStock: s.Key, Products: query.ToSlice(sorted)}
			})
		return CategoryStock{Category: g.Key, ByStock: query.ToSlice(byStock)}
	})
}

type PriceBand string

const (
	Cheap        PriceBand = "Cheap"
	AveragePrice PriceBand = "Average price"
	Expensive    PriceBand = "Expensive"
)

// BandOf places price below low as Cheap, below high as AveragePrice and
// everything else as Expensive.
func BandOf(price, low, high decimal.Decimal) PriceBand {
	switch {
	case price.LessThan(low):
		return Cheap
	case price.LessThan(high):
		return AveragePrice
	default:
		return Expensive
	}
}

// PriceBands groups products by band, bands in the order first seen.
func PriceBands(ds *dataset.Dataset, low, high decimal.Decimal) iter.Seq[query.Grouping[PriceBand, domain.Product]] {
	return query.GroupBy(ds.Products(), func(p domain.Product) PriceBand { return BandOf(p.UnitPrice, low, high) })
}

type CityStats struct {
	City string
	// Intensity is the average number of orders per customer.
	Intensity decimal.Decimal
	// AverageIncome is the average of each customer's order total.
	AverageIncome decimal.Decimal
}

// CityStatistics averages are rounded to query.AveragePrecision digits.
func CityStatistics(ds *dataset.Dataset) iter.Seq[CityStats] {
	byCity := query.GroupBy(ds.Customers(), func(c domain.Customer) string { return c.City })
	return query.Project(byCity, func(g query.Grouping[string, domain.Customer]) CityStats {
		// groups are never empty, the averages cannot fail
		intensity, _ := query.AverageDecimal(g.Values(), func(c domain.Customer) decimal.Decimal {
			return decimal.NewFromInt(int64(query.Count(query.From(c.Orders))))
		})
		income, _ := query.AverageDecimal(g.Values(), totalSum)
		return CityStats{City: g.Key, Intensity: intensity, AverageIncome: income}
	})
}

type MonthCount struct {
	Month       time.Month
	OrdersCount int
}

type YearCount struct {
	Year        int
	OrdersCount int
}

type YearMonthCount struct {
	Year        int
	Month       time.Month
	OrdersCount int
}

type Activity struct {
	CustomerID string
	Months     []MonthCount
	Years      []YearCount
	YearMonths []YearMonthCount
}

// CustomerActivity counts each customer's orders per month of year, per
// year and per calendar month, buckets in the order first seen.
func CustomerActivity(ds *dataset.Dataset) iter.Seq[Activity] {
	return query.Project(ds.Customers(), func(c domain.Customer) Activity {
		orders := query.From(c.Orders)
		months := query.Project(query.GroupBy(orders, func(o domain.Order) time.Month { return o.OrderDate.Month() }),
			func(g query.Grouping[time.Month, domain.Order]) MonthCount {
				return MonthCount{Month: g.Key, OrdersCount: g.Len()}
			})
		years := query.Project(query.GroupBy(orders, func(o domain.Order) int { return o.OrderDate.Year() }),
			func(g query.Grouping[int, domain.Order]) YearCount {
				return YearCount{Year: g.Key, OrdersCount: g.Len()}
			})
		yearMonths := query.Project(query.GroupBy(orders, domain.Order.YearMonth),
			func(g query.Grouping[domain.YearMonth, domain.Order]) YearMonthCount {
				return YearMonthCount{Year: g.Key.Year, Month: g.Key.Month, OrdersCount: g.Len()}
			})
		return Activity{
			CustomerID: c.CustomerID,
			Months:     query.ToSlice(months),
			Years:      query.ToSlice(years),
			YearMonths: query.ToSlice(yearMonths),
		}
	})
}
