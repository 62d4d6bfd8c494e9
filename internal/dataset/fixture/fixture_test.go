package fixture

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/phenrril/linqsamples/internal/dataset"
	"github.com/phenrril/linqsamples/internal/domain"
)

func TestEmbeddedFixtureLoads(t *testing.T) {
	ds, err := dataset.Load(context.Background(), Embedded())
	require.NoError(t, err)

	counts := ds.Counts()
	assert.Equal(t, 14, counts.Customers)
	assert.Equal(t, 8, counts.Suppliers)
	assert.Equal(t, 20, counts.Products)
	assert.Positive(t, counts.Orders)

	fissa, err := ds.Customer("FISSA")
	require.NoError(t, err)
	assert.NotNil(t, fissa.Orders)
	assert.Empty(t, fissa.Orders)

	specd, err := ds.Customer("SPECD")
	require.NoError(t, err)
	require.NotNil(t, specd.Region)
	assert.False(t, specd.HasRegion())

	alfki, err := ds.Customer("ALFKI")
	require.NoError(t, err)
	assert.Nil(t, alfki.Region)
	require.NotNil(t, alfki.PostalCode)
	assert.Equal(t, "12209", *alfki.PostalCode)
	require.Len(t, alfki.Orders, 5)
	assert.Equal(t, time.Date(1997, time.August, 25, 0, 0, 0, 0, time.UTC), alfki.Orders[0].OrderDate)
	assert.True(t, decimal.RequireFromString("814.50").Equal(alfki.Orders[0].Total))
}

const valid = `
customers:
  - id: C1
    city: Berlin
    country: Germany
    phone: (1) 2
    orders:
      - { id: 1, date: 2020-03-15, total: 50 }
      - { id: 2, date: "2021-01-05T10:00:00Z", total: "60.25" }
suppliers: []
products:
  - { id: 1, name: A, category: X, unitPrice: 15, unitsInStock: 0 }
`

func TestDecode(t *testing.T) {
	tables, err := Decode(strings.NewReader(valid))
	require.NoError(t, err)

	require.Len(t, tables.Customers, 1)
	c := tables.Customers[0]
	assert.Equal(t, "C1", c.CustomerID)
	assert.Nil(t, c.PostalCode)
	require.Len(t, c.Orders, 2)
	assert.Equal(t, 2021, c.Orders[1].OrderDate.Year())
	assert.Equal(t, "60.25", c.Orders[1].Total.String())
	assert.Empty(t, tables.Suppliers)
	require.Len(t, tables.Products, 1)
	assert.Equal(t, "15", tables.Products[0].UnitPrice.String())
}

func TestDecodeErrors(t *testing.T) {
	cases := map[string]string{
		"empty":          ``,
		"not a mapping":  `- 1`,
		"missing entity": "customers: []\nsuppliers: []\n",
		"unknown field":  "customers: []\nsuppliers: []\nproducts: []\nemployees: []\n",
		"bad decimal":    "customers: []\nsuppliers: []\nproducts:\n  - { id: 1, unitPrice: cheap }\n",
		"bad date":       "customers:\n  - { id: C, orders: [ { id: 1, date: yesterday, total: 1 } ] }\nsuppliers: []\nproducts: []\n",
		"decimal list":   "customers: []\nsuppliers: []\nproducts:\n  - { id: 1, unitPrice: [1] }\n",
	}
	for name, doc := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := Decode(strings.NewReader(doc))
			require.Error(t, err)
			assert.True(t, errors.Is(err, domain.ErrDataLoad), "%v", err)
		})
	}
}

func TestFileSource(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "data.yaml")
	require.NoError(t, os.WriteFile(path, []byte(valid), 0o600))

	ds, err := dataset.Load(context.Background(), File(path))
	require.NoError(t, err)
	assert.Equal(t, 1, ds.Counts().Customers)

	_, err = dataset.Load(context.Background(), File(filepath.Join(dir, "missing.yaml")))
	assert.True(t, errors.Is(err, domain.ErrDataLoad))
}

func TestFetchHonoursCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := dataset.Load(ctx, Embedded())
	assert.True(t, errors.Is(err, domain.ErrDataLoad))
	assert.True(t, errors.Is(err, context.Canceled))
}
