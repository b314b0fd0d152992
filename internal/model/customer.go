package model

import "time"

// Customer is customer model entity
type Customer struct {
	ID        string    `json:"id" msgpack:"id"`
	FirstName string    `json:"firstName" msgpack:"firstName"`
	LastName  string    `json:"lastName" msgpack:"lastName"`
	Telephone string    `json:"telephone" msgpack:"telephone"`
	Email     string    `json:"email" msgpack:"email"`
	CreatedAt time.Time `json:"createdAt" msgpack:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt" msgpack:"updatedAt"`
}

// FullName joins first and last name
func (c *Customer) FullName() string {
	return c.FirstName + " " + c.LastName
}

// NewCustomer is payload submitted for customer creation or replacement
type NewCustomer struct {
	FirstName string `json:"firstName" form:"firstName"`
	LastName  string `json:"lastName" form:"lastName"`
	Telephone string `json:"telephone" form:"telephone"`
	Email     string `json:"email" form:"email"`
}

// CustomerPage is a single page of customers listing
type CustomerPage struct {
	Customers []*Customer `json:"customers"`
	Current   int         `json:"current"`
	Pages     int         `json:"pages"`
}

// HasPrev reports whether page before current exists
func (p *CustomerPage) HasPrev() bool {
	return p.Current > 1
}

// HasNext reports whether page after current exists
func (p *CustomerPage) HasNext() bool {
	return p.Current < p.Pages
}
