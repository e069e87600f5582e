package response

import (
	"time"

	"orcamentos/internal/domain/entities"
)

type SubServiceResponse struct {
	ID             string   `json:"id"`
	Code           string   `json:"code"`
	Description    string   `json:"description"`
	Unit           string   `json:"unit"`
	UnitPrice      float64  `json:"unit_price"`
	ServiceID      string   `json:"service_id"`
	AllowedFactors []string `json:"allowed_factors"`
}

type ServiceResponse struct {
	ID          string               `json:"id"`
	GroupID     string               `json:"group_id"`
	Code        string               `json:"code"`
	Title       string               `json:"title"`
	Description string               `json:"description"`
	UnitPrice   float64              `json:"unit_price"`
	SubServices []SubServiceResponse `json:"sub_services"`
	Deleted     bool                 `json:"deleted"`
	CreatedAt   time.Time            `json:"created_at"`
	UpdatedAt   time.Time            `json:"updated_at"`
}

type GroupResponse struct {
	ID          string            `json:"id"`
	Code        string            `json:"code"`
	Name        string            `json:"name"`
	Description string            `json:"description"`
	Services    []ServiceResponse `json:"services"`
	CreatedAt   time.Time         `json:"created_at"`
	UpdatedAt   time.Time         `json:"updated_at"`
}

func FromService(s entities.Service) ServiceResponse {
	res := ServiceResponse{
		ID:          s.ID,
		GroupID:     s.GroupID,
		Code:        s.Code,
		Title:       s.Title,
		Description: s.Description,
		UnitPrice:   money(s.UnitPrice),
		SubServices: make([]SubServiceResponse, 0, len(s.SubServices)),
		Deleted:     s.Deleted,
		CreatedAt:   s.CreatedAt,
		UpdatedAt:   s.UpdatedAt,
	}
	for _, ss := range s.SubServices {
		allowed := ss.AllowedFactors
		if allowed == nil {
			allowed = []string{}
		}
		res.SubServices = append(res.SubServices, SubServiceResponse{
			ID:             ss.ID,
			Code:           ss.Code,
			Description:    ss.Description,
			Unit:           ss.Unit,
			UnitPrice:      money(ss.UnitPrice),
			ServiceID:      ss.ServiceID,
			AllowedFactors: allowed,
		})
	}
	return res
}

func FromServices(services []entities.Service) []ServiceResponse {
	out := make([]ServiceResponse, 0, len(services))
	for _, s := range services {
		out = append(out, FromService(s))
	}
	return out
}

func FromGroup(g entities.ServiceGroup) GroupResponse {
	return GroupResponse{
		ID:          g.ID,
		Code:        g.Code,
		Name:        g.Name,
		Description: g.Description,
		Services:    FromServices(g.Services),
		CreatedAt:   g.CreatedAt,
		UpdatedAt:   g.UpdatedAt,
	}
}

func FromGroups(groups []entities.ServiceGroup) []GroupResponse {
	out := make([]GroupResponse, 0, len(groups))
	for _, g := range groups {
		out = append(out, FromGroup(g))
	}
	return out
}
