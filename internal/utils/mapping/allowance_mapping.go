package mapping

import (
	"github.com/scholarbase/scholarship_portal_api/internal/core/domain"
	"github.com/scholarbase/scholarship_portal_api/internal/models"
)

// ToModelAllowance converts a domain Allowance to a model Allowance.
// Components travel separately; the row itself carries no line items.
func ToModelAllowance(d domain.Allowance) models.Allowance {
	return models.Allowance{
		AllowanceID: d.AllowanceID,
		ScholarID:   d.ScholarID,
		Month:       d.Month,
		Year:        d.Year,
		TotalAmount: d.TotalAmount,
		Claimed:     d.Claimed,
		ClaimedAt:   d.ClaimedAt,
		AuditFields: ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainAllowance converts a model Allowance to a domain Allowance
func ToDomainAllowance(m models.Allowance) domain.Allowance {
	return domain.Allowance{
		AllowanceID: m.AllowanceID,
		ScholarID:   m.ScholarID,
		Month:       m.Month,
		Year:        m.Year,
		TotalAmount: m.TotalAmount,
		Claimed:     m.Claimed,
		ClaimedAt:   m.ClaimedAt,
		AuditFields: ToDomainAuditFields(m.AuditFields),
	}
}

// ToModelAllowanceComponent converts a domain AllowanceComponent to its model
func ToModelAllowanceComponent(d domain.AllowanceComponent) models.AllowanceComponent {
	return models.AllowanceComponent{
		ComponentID: d.ComponentID,
		AllowanceID: d.AllowanceID,
		Name:        d.Name,
		Amount:      d.Amount,
	}
}

// ToDomainAllowanceComponent converts a model AllowanceComponent to its domain form
func ToDomainAllowanceComponent(m models.AllowanceComponent) domain.AllowanceComponent {
	return domain.AllowanceComponent{
		ComponentID: m.ComponentID,
		AllowanceID: m.AllowanceID,
		Name:        m.Name,
		Amount:      m.Amount,
	}
}
