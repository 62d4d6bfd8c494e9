// Package dataset holds the read-only snapshot every exercise queries.
package dataset

import (
	"context"
	"iter"

	"github.com/cockroachdb/errors"

	"github.com/phenrril/linqsamples/internal/domain"
	"github.com/phenrril/linqsamples/internal/query"
)

// Tables is the decoded shape of a data source. Orders travel nested under
// the customer that owns them.
type Tables struct {
	Customers []domain.Customer
	Suppliers []domain.Supplier
	Products  []domain.Product
}

// Source produces Tables. Implementations read fixtures, databases, etc.
type Source interface {
	Fetch(ctx context.Context) (Tables, error)
}

// Dataset is an immutable snapshot. Its sequences can be ranged over any
// number of times, from any number of goroutines.
type Dataset struct {
	customers []domain.Customer
	suppliers []domain.Supplier
	products  []domain.Product
}

// Load fetches from src and builds a Dataset. Every failure is marked with
// domain.ErrDataLoad.
func Load(ctx context.Context, src Source) (*Dataset, error) {
	if src == nil {
		return nil, errors.Mark(errors.New("nil dataset source"), domain.ErrDataLoad)
	}
	t, err := src.Fetch(ctx)
	if err != nil {
		return nil, errors.Mark(errors.Wrap(err, "fetch dataset"), domain.ErrDataLoad)
	}
	return New(t)
}

// New validates t and copies it into a Dataset. The caller keeps ownership
// of t; later changes to it are not visible through the Dataset.
func New(t Tables) (*Dataset, error) {
	if err := validate(t); err != nil {
		return nil, errors.Mark(err, domain.ErrDataLoad)
	}
	ds := &Dataset{
		customers: make([]domain.Customer, len(t.Customers)),
		suppliers: append([]domain.Supplier(nil), t.Suppliers...),
		products:  append([]domain.Product(nil), t.Products...),
	}
	for i, c := range t.Customers {
		ds.customers[i] = c.Clone()
	}
	return ds, nil
}

func validate(t Tables) error {
	customerIDs := make(map[string]struct{}, len(t.Customers))
	orderIDs := make(map[int]string)
	for i, c := range t.Customers {
		if c.CustomerID == "" {
			return errors.Newf("customer #%d: empty id", i)
		}
		if _, dup := customerIDs[c.CustomerID]; dup {
			return errors.Newf("customer %q: duplicate id", c.CustomerID)
		}
		customerIDs[c.CustomerID] = struct{}{}
		for _, o := range c.Orders {
			if owner, dup := orderIDs[o.OrderID]; dup {
				return errors.Newf("order %d: owned by both %q and %q", o.OrderID, owner, c.CustomerID)
			}
			orderIDs[o.OrderID] = c.CustomerID
			if o.OrderDate.IsZero() {
				return errors.Newf("order %d: missing date", o.OrderID)
			}
		}
	}
	supplierIDs := make(map[int]struct{}, len(t.Suppliers))
	for _, s := range t.Suppliers {
		if _, dup := supplierIDs[s.SupplierID]; dup {
			return errors.Newf("supplier %d: duplicate id", s.SupplierID)
		}
		supplierIDs[s.SupplierID] = struct{}{}
	}
	productIDs := make(map[int]struct{}, len(t.Products))
	for _, p := range t.Products {
		if _, dup := productIDs[p.ProductID]; dup {
			return errors.Newf("product %d: duplicate id", p.ProductID)
		}
		productIDs[p.ProductID] = struct{}{}
		if p.UnitsInStock < 0 {
			return errors.Newf("product %d: negative units in stock", p.ProductID)
		}
	}
	return nil
}

// Customers yields copies, so the Orders slice of a yielded customer can be
// modified without affecting the snapshot.
func (d *Dataset) Customers() iter.Seq[domain.Customer] {
	return func(yield func(domain.Customer) bool) {
		for _, c := range d.customers {
			if !yield(c.Clone()) {
				return
			}
		}
	}
}

// Orders yields every order, grouped by owning customer in customer order.
func (d *Dataset) Orders() iter.Seq[domain.Order] {
	return func(yield func(domain.Order) bool) {
		for _, c := range d.customers {
			for _, o := range c.Orders {
				if !yield(o) {
					return
				}
			}
		}
	}
}

func (d *Dataset) Suppliers() iter.Seq[domain.Supplier] { return query.From(d.suppliers) }

func (d *Dataset) Products() iter.Seq[domain.Product] { return query.From(d.products) }

// Customer looks a customer up by id.
func (d *Dataset) Customer(id string) (domain.Customer, error) {
	for _, c := range d.customers {
		if c.CustomerID == id {
			return c.Clone(), nil
		}
	}
	return domain.Customer{}, errors.Wrapf(domain.ErrNotFound, "customer %q", id)
}

type Counts struct {
	Customers int `json:"customers"`
	Orders    int `json:"orders"`
	Suppliers int `json:"suppliers"`
	Products  int `json:"products"`
}

func (d *Dataset) Counts() Counts {
	return Counts{
		Customers: len(d.customers),
		Orders:    query.Count(d.Orders()),
		Suppliers: len(d.suppliers),
		Products:  len(d.products),
	}
}

// Tables returns a deep copy of the snapshot in its source shape.
func (d *Dataset) Tables() Tables {
	return Tables{
		Customers: query.ToSlice(d.Customers()),
		Suppliers: append([]domain.Supplier{}, d.suppliers...),
		Products:  append([]domain.Product{}, d.products...),
	}
}

// Static is a Source over in-memory tables, mostly useful in tests.
type Static Tables

func (s Static) Fetch(context.Context) (Tables, error) { return Tables(s), nil }
