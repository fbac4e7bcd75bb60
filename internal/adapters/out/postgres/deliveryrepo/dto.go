// Package deliveryrepo persists Delivery aggregates and their marker associations.
package deliveryrepo

import (
	"time"

	"warehouse/internal/adapters/out/postgres/softdelete"
	"warehouse/internal/core/domain/model/delivery"
	"warehouse/internal/core/domain/model/kernel"
)

// DeliveryDTO represents the deliveries table.
type DeliveryDTO struct {
	softdelete.AuditColumns

	VendorID           int64  `gorm:"not null;index"`
	SystemNumber       string `gorm:"size:255"`
	ReceptionNumber    string `gorm:"size:255"`
	TruckNumber        string `gorm:"size:255"`
	Cmr                string `gorm:"size:255"`
	DeliveryTime       time.Time
	Pallets            int
	Packages           int
	Pieces             int
	Status             int  `gorm:"not null;index"`
	IsApproved         bool `gorm:"not null"`
	ApprovedOn         *time.Time
	StartedProcessing  *time.Time
	FinishedProcessing *time.Time

	MarkerIDs []int64 `gorm:"-"`
}

func (DeliveryDTO) TableName() string {
	return "deliveries"
}

func (d *DeliveryDTO) Columns() *softdelete.AuditColumns {
	return &d.AuditColumns
}

// DeliveryMarkerDTO is one row of the deliveries_markers association.
type DeliveryMarkerDTO struct {
	DeliveryID int64 `gorm:"primaryKey;autoIncrement:false"`
	MarkerID   int64 `gorm:"primaryKey;autoIncrement:false;index"`
}

func (DeliveryMarkerDTO) TableName() string {
	return "deliveries_markers"
}

func (l DeliveryMarkerDTO) OwnerID() int64  { return l.DeliveryID }
func (l DeliveryMarkerDTO) TargetID() int64 { return l.MarkerID }

func fromDomain(d *delivery.Delivery) DeliveryDTO {
	q := d.Quantities()
	return DeliveryDTO{
		AuditColumns:       softdelete.ColumnsFromAudit(d.Snapshot()),
		VendorID:           d.VendorID(),
		SystemNumber:       d.SystemNumber(),
		ReceptionNumber:    d.ReceptionNumber(),
		TruckNumber:        d.TruckNumber(),
		Cmr:                d.Cmr(),
		DeliveryTime:       d.DeliveryTime(),
		Pallets:            q.Pallets(),
		Packages:           q.Packages(),
		Pieces:             q.Pieces(),
		Status:             int(d.Status()),
		IsApproved:         d.IsApproved(),
		ApprovedOn:         d.ApprovedOn(),
		StartedProcessing:  d.StartedProcessing(),
		FinishedProcessing: d.FinishedProcessing(),
		MarkerIDs:          d.MarkerIDs(),
	}
}

func toDomain(dto DeliveryDTO) (*delivery.Delivery, error) {
	audit, err := dto.AuditColumns.Audit()
	if err != nil {
		return nil, err
	}
	q, err := kernel.NewQuantities(dto.Pallets, dto.Packages, dto.Pieces)
	if err != nil {
		return nil, err
	}
	return delivery.RestoreDelivery(audit, delivery.Details{
		VendorID:        dto.VendorID,
		SystemNumber:    dto.SystemNumber,
		ReceptionNumber: dto.ReceptionNumber,
		TruckNumber:     dto.TruckNumber,
		Cmr:             dto.Cmr,
		DeliveryTime:    dto.DeliveryTime,
		Quantities:      q,
		MarkerIDs:       dto.MarkerIDs,
	}, delivery.State{
		Status:             delivery.Status(dto.Status),
		IsApproved:         dto.IsApproved,
		ApprovedOn:         dto.ApprovedOn,
		StartedProcessing:  dto.StartedProcessing,
		FinishedProcessing: dto.FinishedProcessing,
	})
}

func markerLinks(d *delivery.Delivery) []DeliveryMarkerDTO {
	ids := d.MarkerIDs()
	links := make([]DeliveryMarkerDTO, 0, len(ids))
	for _, id := range ids {
		links = append(links, DeliveryMarkerDTO{DeliveryID: d.ID(), MarkerID: id})
	}
	return links
}
