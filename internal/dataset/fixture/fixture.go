// Package fixture decodes datasets from YAML documents shaped as a mapping
// from entity name (customers, suppliers, products) to an ordered list of
// field mappings. A default document is embedded in the binary.
package fixture

import (
	"bytes"
	"context"
	"embed"
	"io"
	"io/fs"
	"os"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"

	"github.com/phenrril/linqsamples/internal/dataset"
	"github.com/phenrril/linqsamples/internal/domain"
)

//go:embed data/*.yaml
var embedded embed.FS

const defaultFile = "data/northwind.yaml"

type Source struct {
	fsys fs.FS
	name string
}

// Embedded reads the fixture compiled into the binary.
func Embedded() *Source { return &Source{fsys: embedded, name: defaultFile} }

// File reads a fixture from disk at fetch time.
func File(path string) *Source { return &Source{name: path} }

func (s *Source) Fetch(ctx context.Context) (dataset.Tables, error) {
	if err := ctx.Err(); err != nil {
		return dataset.Tables{}, err
	}
	var (
		raw []byte
		err error
	)
	if s.fsys != nil {
		raw, err = fs.ReadFile(s.fsys, s.name)
	} else {
		raw, err = os.ReadFile(s.name)
	}
	if err != nil {
		return dataset.Tables{}, errors.Mark(errors.Wrapf(err, "read fixture %s", s.name), domain.ErrDataLoad)
	}
	t, err := Decode(bytes.NewReader(raw))
	if err != nil {
		return dataset.Tables{}, errors.Wrapf(err, "fixture %s", s.name)
	}
	return t, nil
}

func (s *Source) String() string { return "fixture:" + s.name }

type document struct {
	Customers *[]customerDoc `yaml:"customers"`
	Suppliers *[]supplierDoc `yaml:"suppliers"`
	Products  *[]productDoc  `yaml:"products"`
}

type customerDoc struct {
	ID          string     `yaml:"id"`
	CompanyName string     `yaml:"companyName"`
	Address     string     `yaml:"address"`
	City        string     `yaml:"city"`
	Region      *string    `yaml:"region"`
	PostalCode  *string    `yaml:"postalCode"`
	Country     string     `yaml:"country"`
	Phone       string     `yaml:"phone"`
	Fax         string     `yaml:"fax"`
	Orders      []orderDoc `yaml:"orders"`
}

type orderDoc struct {
	ID    int   `yaml:"id"`
	Date  date  `yaml:"date"`
	Total money `yaml:"total"`
}

type supplierDoc struct {
	ID      int    `yaml:"id"`
	Name    string `yaml:"name"`
	Address string `yaml:"address"`
	City    string `yaml:"city"`
	Country string `yaml:"country"`
}

type productDoc struct {
	ID           int    `yaml:"id"`
	Name         string `yaml:"name"`
	Category     string `yaml:"category"`
	UnitPrice    money  `yaml:"unitPrice"`
	UnitsInStock int    `yaml:"unitsInStock"`
}

type money struct{ decimal.Decimal }

func (m *money) UnmarshalYAML(n *yaml.Node) error {
	if n.Kind != yaml.ScalarNode {
		return errors.Newf("line %d: decimal must be a scalar", n.Line)
	}
	d, err := decimal.NewFromString(n.Value)
	if err != nil {
		return errors.Wrapf(err, "line %d: invalid decimal %q", n.Line, n.Value)
	}
	m.Decimal = d
	return nil
}

type date struct{ time.Time }

var dateLayouts = []string{time.DateOnly, time.RFC3339}

func (d *date) UnmarshalYAML(n *yaml.Node) error {
	if n.Kind != yaml.ScalarNode {
		return errors.Newf("line %d: date must be a scalar", n.Line)
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, n.Value); err == nil {
			d.Time = t
			return nil
		}
	}
	return errors.Newf("line %d: invalid date %q", n.Line, n.Value)
}

// Decode parses a single YAML document. All three entity lists must be
// present, though any of them may be empty.
func Decode(r io.Reader) (dataset.Tables, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)

	var doc document
	if err := dec.Decode(&doc); err != nil {
		if errors.Is(err, io.EOF) {
			err = errors.New("empty document")
		}
		return dataset.Tables{}, errors.Mark(errors.Wrap(err, "decode fixture"), domain.ErrDataLoad)
	}
	var missing []string
	if doc.Customers == nil {
		missing = append(missing, "customers")
	}
	if doc.Suppliers == nil {
		missing = append(missing, "suppliers")
	}
	if doc.Products == nil {
		missing = append(missing, "products")
	}
	if len(missing) > 0 {
		return dataset.Tables{}, errors.Mark(errors.Newf("fixture is missing %v", missing), domain.ErrDataLoad)
	}
	return doc.tables(), nil
}

func (doc document) tables() dataset.Tables {
	t := dataset.Tables{
		Customers: make([]domain.Customer, 0, len(*doc.Customers)),
		Suppliers: make([]domain.Supplier, 0, len(*doc.Suppliers)),
		Products:  make([]domain.Product, 0, len(*doc.Products)),
	}
	for _, c := range *doc.Customers {
		orders := make([]domain.Order, 0, len(c.Orders))
		for _, o := range c.Orders {
			orders = append(orders, domain.Order{OrderID: o.ID, OrderDate: o.Date.Time, Total: o.Total.Decimal})
		}
		t.Customers = append(t.Customers, domain.Customer{
			CustomerID:  c.ID,
			CompanyName: c.CompanyName,
			Address:     c.Address,
			City:        c.City,
			Region:      c.Region,
			PostalCode:  c.PostalCode,
			Country:     c.Country,
			Phone:       c.Phone,
			Fax:         c.Fax,
			Orders:      orders,
		})
	}
	for _, s := range *doc.Suppliers {
		t.Suppliers = append(t.Suppliers, domain.Supplier{
			SupplierID:   s.ID,
			SupplierName: s.Name,
			Address:      s.Address,
			City:         s.City,
			Country:      s.Country,
		})
	}
	for _, p := range *doc.Products {
		t.Products = append(t.Products, domain.Product{
			ProductID:    p.ID,
			ProductName:  p.Name,
			Category:     p.Category,
			UnitPrice:    p.UnitPrice.Decimal,
			UnitsInStock: p.UnitsInStock,
		})
	}
	return t
}
