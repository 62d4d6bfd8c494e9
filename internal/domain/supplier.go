package domain

type Supplier struct {
	SupplierID   int
	SupplierName string
	Address      string
	City         string
	Country      string
}

// Location is the (city, country) pair customers and suppliers are matched on.
type Location struct {
	City    string
	Country string
}

func (s Supplier) Location() Location { return Location{City: s.City, Country: s.Country} }

func (c Customer) Location() Location { return Location{City: c.City, Country: c.Country} }
