package response

import (
	"time"

	"orcamentos/internal/domain/entities"
	"orcamentos/pkg"
)

type ClientFactorResponse struct {
	FactorID  string `json:"factor_id"`
	SubItemID string `json:"sub_item_id"`
}

// ClientResponse carries the document and phones already masked for display.
type ClientResponse struct {
	ID            string                 `json:"id"`
	Name          string                 `json:"name"`
	Document      string                 `json:"document"`
	Email         string                 `json:"email"`
	Phone         string                 `json:"phone"`
	Street        string                 `json:"street"`
	Number        string                 `json:"number"`
	Complement    string                 `json:"complement"`
	Neighborhood  string                 `json:"neighborhood"`
	City          string                 `json:"city"`
	State         string                 `json:"state"`
	ZipCode       string                 `json:"zip_code"`
	Mayor         string                 `json:"mayor"`
	Party         string                 `json:"party"`
	MayorPhone    string                 `json:"mayor_phone"`
	ClientFactors []ClientFactorResponse `json:"client_factors"`
	Observations  string                 `json:"observations"`
	Deleted       bool                   `json:"deleted"`
	CreatedAt     time.Time              `json:"created_at"`
	UpdatedAt     time.Time              `json:"updated_at"`
}

func FromClient(c entities.Client) ClientResponse {
	res := ClientResponse{
		ID:            c.ID,
		Name:          c.Name,
		Document:      pkg.FormatDocument(c.Document),
		Email:         c.Email,
		Phone:         pkg.FormatPhone(c.Phone),
		Street:        c.Street,
		Number:        c.Number,
		Complement:    c.Complement,
		Neighborhood:  c.Neighborhood,
		City:          c.City,
		State:         c.State,
		ZipCode:       c.ZipCode,
		Mayor:         c.Mayor,
		Party:         c.Party,
		MayorPhone:    pkg.FormatPhone(c.MayorPhone),
		ClientFactors: make([]ClientFactorResponse, 0, len(c.ClientFactors)),
		Observations:  c.Observations,
		Deleted:       c.Deleted,
		CreatedAt:     c.CreatedAt,
		UpdatedAt:     c.UpdatedAt,
	}
	for _, cf := range c.ClientFactors {
		res.ClientFactors = append(res.ClientFactors, ClientFactorResponse{FactorID: cf.FactorID, SubItemID: cf.SubItemID})
	}
	return res
}

func FromClients(clients []entities.Client) []ClientResponse {
	out := make([]ClientResponse, 0, len(clients))
	for _, c := range clients {
		out = append(out, FromClient(c))
	}
	return out
}
