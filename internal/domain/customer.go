package domain

import (
	"fmt"
	"strings"
)

type Customer struct {
	CustomerID  string
	CompanyName string
	Address     string
	City        string
	Region      *string
	PostalCode  *string
	Country     string
	Phone       string
	Fax         string
	Orders      []Order
}

// HasRegion reports whether the region is set to something other than blanks.
func (c Customer) HasRegion() bool {
	return c.Region != nil && strings.TrimSpace(*c.Region) != ""
}

// HasPostalCode only checks presence; an empty postal code still counts.
func (c Customer) HasPostalCode() bool {
	return c.PostalCode != nil
}

// String renders the flat field dump used when a whole customer is printed.
// Orders are summarized by count.
func (c Customer) String() string {
	return fmt.Sprintf("CustomerID=%s CompanyName=%s Address=%s City=%s Region=%s PostalCode=%s Country=%s Phone=%s Fax=%s Orders=%d",
		c.CustomerID, c.CompanyName, c.Address, c.City, nullable(c.Region), nullable(c.PostalCode), c.Country, c.Phone, c.Fax, len(c.Orders))
}

func nullable(s *string) string {
	if s == nil {
		return "null"
	}
	return *s
}

// Clone returns a copy that shares no slice or pointer storage with c.
func (c Customer) Clone() Customer {
	out := c
	if c.Region != nil {
		r := *c.Region
		out.Region = &r
	}
	if c.PostalCode != nil {
		p := *c.PostalCode
		out.PostalCode = &p
	}
	out.Orders = make([]Order, len(c.Orders))
	copy(out.Orders, c.Orders)
	return out
}
