package entities

import (
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

type ServiceGroup struct {
	ID          string
	Code        string
	Name        string
	Description string
	Services    []Service
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Service is a catalog entry. Sub-services are embedded in the same document
// and replaced as a whole on update.
type Service struct {
	ID          string
	GroupID     string
	Code        string
	Title       string
	Description string
	UnitPrice   decimal.Decimal
	SubServices []SubService
	Deleted     bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

type SubService struct {
	ID             string
	Code           string
	Description    string
	Unit           string
	UnitPrice      decimal.Decimal
	ServiceID      string
	AllowedFactors []string
}

func (s Service) SubService(id string) (SubService, bool) {
	for _, ss := range s.SubServices {
		if ss.ID == id {
			return ss, true
		}
	}
	return SubService{}, false
}

// AllowsFactor reports whether the sub-service accepts factorID.
func (s SubService) AllowsFactor(factorID string) bool {
	for _, id := range s.AllowedFactors {
		if id == factorID {
			return true
		}
	}
	return false
}

// CompareCodes orders dotted numeric codes ("1.2" < "1.10" < "2"). Segments
// that are not numbers compare as strings.
func CompareCodes(a, b string) int {
	as := strings.Split(a, ".")
	bs := strings.Split(b, ".")
	for i := 0; i < len(as) && i < len(bs); i++ {
		an, aerr := strconv.Atoi(strings.TrimSpace(as[i]))
		bn, berr := strconv.Atoi(strings.TrimSpace(bs[i]))
		if aerr == nil && berr == nil {
			if an != bn {
				if an < bn {
					return -1
				}
				return 1
			}
			continue
		}
		if c := strings.Compare(as[i], bs[i]); c != 0 {
			return c
		}
	}
	switch {
	case len(as) < len(bs):
		return -1
	case len(as) > len(bs):
		return 1
	}
	return 0
}
