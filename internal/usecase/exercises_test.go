package usecase

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/phenrril/linqsamples/internal/dataset"
	"github.com/phenrril/linqsamples/internal/domain"
	"github.com/phenrril/linqsamples/internal/query"
)

func day(y int, m time.Month, d int) time.Time { return time.Date(y, m, d, 0, 0, 0, 0, time.UTC) }

func money(v int64) decimal.Decimal { return decimal.NewFromInt(v) }

func str(s string) *string { return &s }

func newDataset(t *testing.T, tables dataset.Tables) *dataset.Dataset {
	t.Helper()
	ds, err := dataset.New(tables)
	require.NoError(t, err)
	return ds
}

func twoCustomers(t *testing.T) *dataset.Dataset {
	return newDataset(t, dataset.Tables{Customers: []domain.Customer{
		{CustomerID: "C1", City: "Berlin", Country: "Germany", Orders: []domain.Order{
			{OrderID: 1, OrderDate: day(2020, 3, 15), Total: money(50)},
			{OrderID: 2, OrderDate: day(2021, 1, 5), Total: money(60)},
		}},
		{CustomerID: "C2", City: "Berlin", Country: "Germany", Orders: []domain.Order{
			{OrderID: 3, OrderDate: day(2019, 6, 1), Total: money(2000)},
		}},
		{CustomerID: "C3", City: "Madrid", Country: "Spain"},
	}})
}

func ids[T any](items []T, id func(T) string) []string {
	out := make([]string, len(items))
	for i, v := range items {
		out[i] = id(v)
	}
	return out
}

func totalID(c CustomerTotal) string { return c.CustomerID }

func TestCustomersWithTotalOverReadsThresholdLate(t *testing.T) {
	ds := twoCustomers(t)
	x := money(100)
	q := CustomersWithTotalOver(ds, &x)

	first := query.ToSlice(q)
	assert.Equal(t, []string{"C1", "C2"}, ids(first, totalID))
	assert.True(t, first[0].TotalSum.Equal(money(110)))

	x = money(1500)
	second := query.ToSlice(q)
	assert.Equal(t, []string{"C2"}, ids(second, totalID))
	for _, c := range second {
		assert.Contains(t, ids(first, totalID), c.CustomerID)
	}
}

func TestCustomersWithTotalOverScenario(t *testing.T) {
	ds := newDataset(t, dataset.Tables{Customers: []domain.Customer{
		{CustomerID: "C1", Orders: []domain.Order{
			{OrderID: 1, OrderDate: day(2020, 1, 1), Total: money(50)},
			{OrderID: 2, OrderDate: day(2020, 1, 2), Total: money(60)},
		}},
		{CustomerID: "C2", Orders: []domain.Order{{OrderID: 3, OrderDate: day(2020, 1, 3), Total: money(2000)}}},
	}})
	x := money(100)
	q := CustomersWithTotalOver(ds, &x)
	assert.Equal(t, []string{"C1", "C2"}, ids(query.ToSlice(q), totalID))
	x = money(1500)
	assert.Equal(t, []string{"C2"}, ids(query.ToSlice(q), totalID))
}

func supplierTables() dataset.Tables {
	return dataset.Tables{
		Customers: []domain.Customer{
			{CustomerID: "C1", City: "Berlin", Country: "Germany"},
			{CustomerID: "C2", City: "Paris", Country: "France"},
			{CustomerID: "C3", City: "Berlin", Country: "USA"},
		},
		Suppliers: []domain.Supplier{
			{SupplierID: 1, SupplierName: "S1", City: "Berlin", Country: "Germany"},
			{SupplierID: 2, SupplierName: "S2", City: "Berlin", Country: "Germany"},
			{SupplierID: 3, SupplierName: "S3", City: "Lyon", Country: "France"},
		},
	}
}

func TestSupplierStrategiesAgree(t *testing.T) {
	ds := newDataset(t, supplierTables())

	nested := query.ToSlice(SuppliersByNestedFilter(ds))
	grouped := query.ToSlice(SuppliersByGroupJoin(ds))
	require.Len(t, nested, 3)
	require.Len(t, grouped, 3)
	for i := range nested {
		assert.Equal(t, nested[i].Customer.CustomerID, grouped[i].Customer.CustomerID)
		assert.Equal(t, nested[i].Suppliers, grouped[i].Suppliers)
	}
	assert.Equal(t, "S1, S2", supplierNames(grouped[0].Suppliers))
	assert.Empty(t, grouped[1].Suppliers)
	assert.Empty(t, grouped[2].Suppliers, "city alone must not match")
}

func TestSupplierPairsDropsUnmatched(t *testing.T) {
	ds := newDataset(t, supplierTables())
	pairs := query.ToSlice(SupplierPairs(ds))
	require.Len(t, pairs, 2)
	for _, p := range pairs {
		assert.Equal(t, "C1", p.Outer.CustomerID)
	}
	assert.Equal(t, "S1", pairs[0].Inner.SupplierName)
	assert.Equal(t, "S2", pairs[1].Inner.SupplierName)
}

func TestCustomersWithOrderOver(t *testing.T) {
	ds := twoCustomers(t)
	got := query.ToSlice(CustomersWithOrderOver(ds, money(55)))
	assert.Equal(t, []string{"C1", "C2"}, ids(got, func(c domain.Customer) string { return c.CustomerID }))
	got = query.ToSlice(CustomersWithOrderOver(ds, money(2000)))
	assert.Empty(t, got)
}

func TestFirstOrdersSkipsCustomersWithoutOrders(t *testing.T) {
	ds := twoCustomers(t)
	first := query.ToSlice(FirstOrders(ds))
	assert.Equal(t, []string{"C1", "C2"}, ids(first, func(f FirstOrder) string { return f.CustomerID }))
	assert.Equal(t, day(2020, 3, 15), first[0].StartDate)

	ranked := query.ToSlice(FirstOrdersRanked(ds))
	assert.Equal(t, []string{"C1", "C2"}, ids(ranked, func(f FirstOrder) string { return f.CustomerID }))
}

func TestFirstOrderUsesEarliestDate(t *testing.T) {
	ds := newDataset(t, dataset.Tables{Customers: []domain.Customer{
		{CustomerID: "C1", Orders: []domain.Order{
			{OrderID: 1, OrderDate: day(2021, 5, 1), Total: money(1)},
			{OrderID: 2, OrderDate: day(2019, 2, 1), Total: money(1)},
		}},
	}})
	f, err := query.First(FirstOrders(ds))
	require.NoError(t, err)
	assert.Equal(t, day(2019, 2, 1), f.StartDate)
}

func TestFirstOrdersRankedTieBreaks(t *testing.T) {
	ds := newDataset(t, dataset.Tables{Customers: []domain.Customer{
		{CustomerID: "A", Orders: []domain.Order{{OrderID: 1, OrderDate: day(2020, 1, 1), Total: money(10)}}},
		{CustomerID: "B", Orders: []domain.Order{{OrderID: 2, OrderDate: day(2020, 1, 9), Total: money(10)}}},
		{CustomerID: "C", Orders: []domain.Order{{OrderID: 3, OrderDate: day(2020, 1, 5), Total: money(30)}}},
		{CustomerID: "D", Orders: []domain.Order{{OrderID: 4, OrderDate: day(2020, 2, 1), Total: money(1)}}},
	}})
	ranked := query.ToSlice(FirstOrdersRanked(ds))
	assert.Equal(t, []string{"D", "C", "B", "A"}, ids(ranked, func(f FirstOrder) string { return f.CustomerID }))
}

func TestIncompleteContact(t *testing.T) {
	complete := domain.Customer{CustomerID: "OK", Region: str("WA"), PostalCode: str("12345"), Phone: "(5) 555-1234"}
	assert.False(t, IncompleteContact(complete))

	noPostal := complete
	noPostal.PostalCode = nil
	assert.False(t, IncompleteContact(noPostal), "a missing postal code is not non-numeric")

	cases := map[string]func(c *domain.Customer){
		"letters in postal code": func(c *domain.Customer) { c.PostalCode = str("WA1 1DP") },
		"dash in postal code":    func(c *domain.Customer) { c.PostalCode = str("01-012") },
		"no region":              func(c *domain.Customer) { c.Region = nil },
		"blank region":           func(c *domain.Customer) { c.Region = str("  ") },
		"no area code":           func(c *domain.Customer) { c.Phone = "555-1234" },
		"no phone":               func(c *domain.Customer) { c.Phone = "" },
	}
	for name, mutate := range cases {
		t.Run(name, func(t *testing.T) {
			c := complete
			mutate(&c)
			assert.True(t, IncompleteContact(c))
		})
	}
}

func TestProductsByCategoryAndStock(t *testing.T) {
	ds := newDataset(t, dataset.Tables{Products: []domain.Product{
		{ProductID: 1, ProductName: "Tea", Category: "Beverages", UnitPrice: money(18), UnitsInStock: 10},
		{ProductID: 2, ProductName: "Beer", Category: "Beverages", UnitPrice: money(14), UnitsInStock: 0},
		{ProductID: 3, ProductName: "Coffee", Category: "Beverages", UnitPrice: money(4), UnitsInStock: 5},
		{ProductID: 4, ProductName: "Salt", Category: "Condiments", UnitPrice: money(2), UnitsInStock: 1},
	}})
	got := query.ToSlice(ProductsByCategoryAndStock(ds))
	require.Len(t, got, 2)
	assert.Equal(t, "Beverages", got[0].Category)
	require.Len(t, got[0].ByStock, 2)
	assert.True(t, got[0].ByStock[0].InStock)
	assert.Equal(t, []string{"Coffee", "Tea"}, ids(got[0].ByStock[0].Products, func(p domain.Product) string { return p.ProductName }))
	assert.False(t, got[0].ByStock[1].InStock)
	assert.Equal(t, "Condiments", got[1].Category)
}

func TestPriceBandsScenario(t *testing.T) {
	ds := newDataset(t, dataset.Tables{Products: []domain.Product{
		{ProductID: 1, ProductName: "A", UnitPrice: money(15)},
		{ProductID: 2, ProductName: "B", UnitPrice: money(30)},
		{ProductID: 3, ProductName: "C", UnitPrice: money(60)},
	}})
	bands := query.ToSlice(PriceBands(ds, money(20), money(50)))
	require.Len(t, bands, 3)
	want := map[PriceBand]string{Cheap: "A", AveragePrice: "B", Expensive: "C"}
	for _, b := range bands {
		require.Len(t, b.Items, 1)
		assert.Equal(t, want[b.Key], b.Items[0].ProductName)
	}
}

func TestBandOfBoundaries(t *testing.T) {
	low, high := money(20), money(50)
	assert.Equal(t, Cheap, BandOf(decimal.RequireFromString("19.99"), low, high))
	assert.Equal(t, AveragePrice, BandOf(low, low, high))
	assert.Equal(t, Expensive, BandOf(high, low, high))
}

func TestCityStatistics(t *testing.T) {
	ds := twoCustomers(t)
	stats := query.ToSlice(CityStatistics(ds))
	require.Len(t, stats, 2)

	assert.Equal(t, "Berlin", stats[0].City)
	assert.True(t, stats[0].Intensity.Equal(decimal.RequireFromString("1.5")), stats[0].Intensity.String())
	assert.True(t, stats[0].AverageIncome.Equal(money(1055)), stats[0].AverageIncome.String())

	assert.Equal(t, "Madrid", stats[1].City)
	assert.True(t, stats[1].Intensity.IsZero())
	assert.True(t, stats[1].AverageIncome.IsZero())
}

func TestCityStatisticsRounding(t *testing.T) {
	ds := newDataset(t, dataset.Tables{Customers: []domain.Customer{
		{CustomerID: "A", City: "X", Orders: []domain.Order{{OrderID: 1, OrderDate: day(2020, 1, 1), Total: money(1)}}},
		{CustomerID: "B", City: "X"},
		{CustomerID: "C", City: "X"},
	}})
	s, err := query.First(CityStatistics(ds))
	require.NoError(t, err)
	assert.Equal(t, "0.33", s.Intensity.StringFixed(2))
	assert.Equal(t, "0.33", s.AverageIncome.StringFixed(2))
}

func TestCustomerActivityScenario(t *testing.T) {
	ds := twoCustomers(t)
	a, err := query.First(CustomerActivity(ds))
	require.NoError(t, err)

	assert.Equal(t, "C1", a.CustomerID)
	assert.Equal(t, []MonthCount{{Month: time.March, OrdersCount: 1}, {Month: time.January, OrdersCount: 1}}, a.Months)
	assert.Equal(t, []YearCount{{Year: 2020, OrdersCount: 1}, {Year: 2021, OrdersCount: 1}}, a.Years)
	assert.Equal(t, []YearMonthCount{
		{Year: 2020, Month: time.March, OrdersCount: 1},
		{Year: 2021, Month: time.January, OrdersCount: 1},
	}, a.YearMonths)
}

func TestCustomerActivityWithoutOrders(t *testing.T) {
	ds := twoCustomers(t)
	all := query.ToSlice(CustomerActivity(ds))
	require.Len(t, all, 3)
	assert.Empty(t, all[2].Months)
	assert.Empty(t, all[2].Years)
	assert.Empty(t, all[2].YearMonths)
}

func TestLargeOrders(t *testing.T) {
	c, err := twoCustomers(t).Customer("C1")
	require.NoError(t, err)
	got := query.ToSlice(LargeOrders(c, money(55)))
	require.Len(t, got, 1)
	assert.Equal(t, 2, got[0].OrderID)
}
