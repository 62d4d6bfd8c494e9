package usecase

import (
	"strings"

	"github.com/phenrril/linqsamples/internal/dataset"
	"github.com/phenrril/linqsamples/internal/domain"
	"github.com/phenrril/linqsamples/internal/report"
)

type Exercise struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Category    string `json:"category"`

	render func(ds *dataset.Dataset, r *report.Reporter)
}

const categoryTask = "Task"

var registry = []Exercise{
	{ID: "001", Title: "Task 001", Category: categoryTask,
		Description: "Displays all customers with sum of orders total greater than X",
		render:      renderTotals},
	{ID: "002", Title: "Task 002", Category: categoryTask,
		Description: "For each customer displays a list of suppliers from the same city and country",
		render:      renderSuppliers},
	{ID: "003", Title: "Task 003", Category: categoryTask,
		Description: "Displays all customers who have an order with total greater than X",
		render:      renderLargeOrders},
	{ID: "004", Title: "Task 004", Category: categoryTask,
		Description: "Displays all customers with their first order's month and year",
		render:      renderFirstOrders},
	{ID: "005", Title: "Task 005", Category: categoryTask,
		Description: "Displays all customers with their first order's month and year ordered by year, month, sum of orders total, client name",
		render:      renderRankedFirstOrders},
	{ID: "006", Title: "Task 006", Category: categoryTask,
		Description: "Displays all customers with a non-numeric postal code, without region or without operator's code",
		render:      renderIncompleteContacts},
	{ID: "007", Title: "Task 007", Category: categoryTask,
		Description: "Groups products by categories, then by units in stock > 0, then orders by unit price",
		render:      renderCategoryStock},
	{ID: "008", Title: "Task 008", Category: categoryTask,
		Description: "Groups products by price: Cheap, Average price, Expensive",
		render:      renderPriceBands},
	{ID: "009", Title: "Task 009", Category: categoryTask,
		Description: "Counts average order sum and average client's intensity for every city",
		render:      renderCityStatistics},
	{ID: "010", Title: "Task 010", Category: categoryTask,
		Description: "Displays clients activity statistic by month (without year), by year and by year and month",
		render:      renderActivity},
}

func lookup(id string) (Exercise, bool) {
	for _, e := range registry {
		if e.ID == id {
			return e, true
		}
	}
	return Exercise{}, false
}

func renderTotals(ds *dataset.Dataset, r *report.Reporter) {
	x := TotalThresholds[0]
	customers := CustomersWithTotalOver(ds, &x)
	for _, threshold := range TotalThresholds {
		x = threshold
		r.Label("Greater than " + r.Format.Money(x))
		for c := range customers {
			r.Line("CustomerId = %s TotalSum = %s", c.CustomerID, r.Format.Money(c.TotalSum))
		}
	}
}

func supplierNames(list []domain.Supplier) string {
	names := make([]string, len(list))
	for i, s := range list {
		names[i] = s.SupplierName
	}
	return strings.Join(names, ", ")
}

func renderSuppliers(ds *dataset.Dataset, r *report.Reporter) {
	r.Label("Without grouping:")
	for cs := range SuppliersByNestedFilter(ds) {
		r.Line("CustomerId: %s List of suppliers: %s", cs.Customer.CustomerID, supplierNames(cs.Suppliers))
	}
	r.Label("With grouping:")
	for cs := range SuppliersByGroupJoin(ds) {
		r.Line("CustomerId: %s List of suppliers: %s", cs.Customer.CustomerID, supplierNames(cs.Suppliers))
	}
	r.Label("Matched pairs only:")
	for p := range SupplierPairs(ds) {
		r.Line("CustomerId: %s Supplier: %s", p.Outer.CustomerID, p.Inner.SupplierName)
	}
}

func renderLargeOrders(ds *dataset.Dataset, r *report.Reporter) {
	r.Label("Order total greater than " + r.Format.Money(LargeOrderThreshold))
	for c := range CustomersWithOrderOver(ds, LargeOrderThreshold) {
		r.Dump(c)
		for o := range LargeOrders(c, LargeOrderThreshold) {
			r.Dump(o)
		}
	}
}

func renderFirstOrders(ds *dataset.Dataset, r *report.Reporter) {
	for f := range FirstOrders(ds) {
		r.Line("CustomerId = %s Month = %d Year = %d", f.CustomerID, int(f.StartDate.Month()), f.StartDate.Year())
	}
}

func renderRankedFirstOrders(ds *dataset.Dataset, r *report.Reporter) {
	for f := range FirstOrdersRanked(ds) {
		r.Line("CustomerId = %s TotalSum: %s Month = %d Year = %d",
			f.CustomerID, r.Format.Money(f.TotalSum), int(f.StartDate.Month()), f.StartDate.Year())
	}
}

func renderIncompleteContacts(ds *dataset.Dataset, r *report.Reporter) {
	for c := range IncompleteContacts(ds) {
		r.Dump(c)
	}
}

func renderCategoryStock(ds *dataset.Dataset, r *report.Reporter) {
	for cat := range ProductsByCategoryAndStock(ds) {
		r.Line("Category: %s", cat.Category)
		for _, stock := range cat.ByStock {
			r.Line("\tHas in stock: %t", stock.InStock)
			for _, p := range stock.Products {
				r.Line("\t\tProduct: %s Price: %s", p.ProductName, r.Format.Money(p.UnitPrice))
			}
		}
	}
}

func renderPriceBands(ds *dataset.Dataset, r *report.Reporter) {
	for band := range PriceBands(ds, CheapBelow, ExpensiveFrom) {
		r.Line("%s:", band.Key)
		for _, p := range band.Items {
			r.Line("\tProduct: %s Price: %s", p.ProductName, r.Format.Money(p.UnitPrice))
		}
	}
}

func renderCityStatistics(ds *dataset.Dataset, r *report.Reporter) {
	for city := range CityStatistics(ds) {
		r.Line("City: %s", city.City)
		r.Line("\tIntensity: %s", r.Format.Money(city.Intensity))
		r.Line("\tAverage Income: %s", r.Format.Money(city.AverageIncome))
	}
}

func renderActivity(ds *dataset.Dataset, r *report.Reporter) {
	for a := range CustomerActivity(ds) {
		r.Line("CustomerId: %s", a.CustomerID)
		r.Label("\tMonths statistic:")
		for _, m := range a.Months {
			r.Line("\t\tMonth: %d Orders count: %s", int(m.Month), r.Format.Int(m.OrdersCount))
		}
		r.Label("\tYears statistic:")
		for _, y := range a.Years {
			r.Line("\t\tYear: %d Orders count: %s", y.Year, r.Format.Int(y.OrdersCount))
		}
		r.Label("\tYear and month statistic:")
		for _, ym := range a.YearMonths {
			r.Line("\t\tYear: %d Month: %d Orders count: %s", ym.Year, int(ym.Month), r.Format.Int(ym.OrdersCount))
		}
	}
}

