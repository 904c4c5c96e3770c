package persistence

import (
	"gorm.io/gorm"

	"invsettle/pkg/contracts/domain"
)

// Person is a club member (or the club itself, under the ETA name) who can
// own invoice line items. Records auto-created during parsing carry only the
// name; contact details are filled in by hand afterwards.
type Person struct {
	gorm.Model
	Name  string `gorm:"uniqueIndex;not null"`
	Email string
	Phone string
}

// SettlementInvoice is one internally allocated invoice grouping the items
// owed by a single person for one batch run.
type SettlementInvoice struct {
	gorm.Model
	Reference string `gorm:"uniqueIndex;not null"`
}

// LineItem is a persisted purchase line. Cost is VAT-inclusive.
// InvoiceNumber is the vendor's printed number, not the settlement invoice.
type LineItem struct {
	gorm.Model
	ItemCount           int    `gorm:"not null"`
	ItemNo              string `gorm:"not null"`
	ItemDesc            string
	PersonID            uint `gorm:"index;not null"`
	Person              Person
	Cost                float64
	OrderPlacedAt       string
	InvoiceNumber       string
	SettlementInvoiceID uint `gorm:"index;not null"`
}

func (p Person) toRef() domain.PersonRef {
	return domain.PersonRef{ID: p.ID, Name: p.Name}
}

func (inv SettlementInvoice) toDomain() domain.SettlementInvoice {
	return domain.SettlementInvoice{
		ID:        inv.ID,
		Reference: inv.Reference,
		CreatedAt: inv.CreatedAt,
	}
}

func (li LineItem) toDomain() domain.LineItem {
	return domain.LineItem{
		ID:                  li.ID,
		ItemCount:           li.ItemCount,
		ItemNo:              li.ItemNo,
		ItemDesc:            li.ItemDesc,
		PersonID:            li.PersonID,
		PersonName:          li.Person.Name,
		Cost:                li.Cost,
		OrderPlacedAt:       li.OrderPlacedAt,
		InvoiceNumber:       li.InvoiceNumber,
		SettlementInvoiceID: li.SettlementInvoiceID,
		CreatedAt:           li.CreatedAt,
	}
}

func fromDomainItem(item domain.LineItem) LineItem {
	return LineItem{
		ItemCount:           item.ItemCount,
		ItemNo:              item.ItemNo,
		ItemDesc:            item.ItemDesc,
		PersonID:            item.PersonID,
		Cost:                item.Cost,
		OrderPlacedAt:       item.OrderPlacedAt,
		InvoiceNumber:       item.InvoiceNumber,
		SettlementInvoiceID: item.SettlementInvoiceID,
	}
}
