package entities

import "time"

// Client is a customer of the company (usually a city hall).
//
// Document holds digits only; formatting is a presentation concern.
type Client struct {
	ID            string
	Name          string
	Document      string
	Email         string
	Phone         string
	Street        string
	Number        string
	Complement    string
	Neighborhood  string
	City          string
	State         string
	ZipCode       string
	Mayor         string
	Party         string
	MayorPhone    string
	ClientFactors []ClientFactor
	Observations  string
	Deleted       bool
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// ClientFactor selects which sub-item of a factor applies to a client.
type ClientFactor struct {
	FactorID  string
	SubItemID string
}

// FactorSelection returns the sub-item chosen for factorID, if any.
func (c Client) FactorSelection(factorID string) (ClientFactor, bool) {
	for _, cf := range c.ClientFactors {
		if cf.FactorID == factorID {
			return cf, true
		}
	}
	return ClientFactor{}, false
}
