// Package orderrepo provides data transfer objects and mapping functions for order persistence.
// An order is stored across three tables: orders, kot_lines and kot_line_items.
// Money columns hold integer minor units.
package orderrepo

import (
	"time"

	"cafe/internal/core/domain/model/kernel"
	"cafe/internal/core/domain/model/order"
)

// OrderDTO is the orders row. Version backs optimistic concurrency.
type OrderDTO struct {
	ID          string       `gorm:"primaryKey;size:32"`
	TableNumber string       `gorm:"not null"`
	Status      string       `gorm:"not null;size:16;index"`
	CreatedAt   time.Time    `gorm:"not null;index;autoCreateTime:false"`
	UpdatedAt   time.Time    `gorm:"not null;autoUpdateTime:false"`
	PaidAt      *time.Time   `gorm:"column:paid_at"`
	Version     int          `gorm:"not null;default:1"`
	KotLines    []KotLineDTO `gorm:"foreignKey:OrderID;references:ID"`
}

func (OrderDTO) TableName() string {
	return "orders"
}

// KotLineDTO is one KOT round. Position keeps insertion order within the order.
type KotLineDTO struct {
	ID          uint             `gorm:"primaryKey"`
	OrderID     string           `gorm:"not null;size:32;uniqueIndex:idx_kot_lines_order_position"`
	Position    int              `gorm:"not null;uniqueIndex:idx_kot_lines_order_position"`
	Subtotal    int64            `gorm:"not null"`
	GST         int64            `gorm:"column:gst;not null"`
	TotalAmount int64            `gorm:"not null"`
	CreatedAt   time.Time        `gorm:"not null;autoCreateTime:false"`
	Items       []KotLineItemDTO `gorm:"foreignKey:KotLineID;references:ID"`
}

func (KotLineDTO) TableName() string {
	return "kot_lines"
}

type KotLineItemDTO struct {
	ID        uint   `gorm:"primaryKey"`
	KotLineID uint   `gorm:"not null;index"`
	Position  int    `gorm:"not null"`
	Name      string `gorm:"not null"`
	Quantity  int    `gorm:"not null"`
	Price     int64  `gorm:"not null"`
}

func (KotLineItemDTO) TableName() string {
	return "kot_line_items"
}

func fromDomain(o *order.Order) OrderDTO {
	return OrderDTO{
		ID:          o.ID().String(),
		TableNumber: o.TableNumber(),
		Status:      o.Status().String(),
		CreatedAt:   o.CreatedAt(),
		UpdatedAt:   o.UpdatedAt(),
		PaidAt:      o.PaidAt(),
		Version:     o.Version(),
		KotLines:    kotLinesFromDomain(o.ID().String(), o.KotLines(), 0),
	}
}

// kotLinesFromDomain maps lines starting at position offset.
func kotLinesFromDomain(orderID string, lines []order.KotLine, offset int) []KotLineDTO {
	dtos := make([]KotLineDTO, 0, len(lines))
	for i, line := range lines {
		items := line.Items()
		itemDTOs := make([]KotLineItemDTO, 0, len(items))
		for j, item := range items {
			itemDTOs = append(itemDTOs, KotLineItemDTO{
				Position: j,
				Name:     item.Name(),
				Quantity: item.Quantity(),
				Price:    item.Price().Minor(),
			})
		}

		dtos = append(dtos, KotLineDTO{
			OrderID:     orderID,
			Position:    offset + i,
			Subtotal:    line.Subtotal().Minor(),
			GST:         line.GST().Minor(),
			TotalAmount: line.TotalAmount().Minor(),
			CreatedAt:   line.CreatedAt(),
			Items:       itemDTOs,
		})
	}
	return dtos
}

// toDomain rebuilds the aggregate. Lines and items must already be sorted by position.
func toDomain(dto OrderDTO) (*order.Order, error) {
	id, err := kernel.ParseOrderID(dto.ID)
	if err != nil {
		return nil, err
	}

	status, err := order.ParseStatus(dto.Status)
	if err != nil {
		return nil, err
	}

	lines := make([]order.KotLine, 0, len(dto.KotLines))
	for _, lineDTO := range dto.KotLines {
		items := make([]order.LineItem, 0, len(lineDTO.Items))
		for _, itemDTO := range lineDTO.Items {
			item, itemErr := order.NewLineItem(itemDTO.Name, itemDTO.Quantity, kernel.NewMoney(itemDTO.Price))
			if itemErr != nil {
				return nil, itemErr
			}
			items = append(items, item)
		}

		line, lineErr := order.RestoreKotLine(
			items,
			kernel.NewMoney(lineDTO.Subtotal),
			kernel.NewMoney(lineDTO.GST),
			kernel.NewMoney(lineDTO.TotalAmount),
			lineDTO.CreatedAt.UTC(),
		)
		if lineErr != nil {
			return nil, lineErr
		}
		lines = append(lines, line)
	}

	var paidAt *time.Time
	if dto.PaidAt != nil {
		p := dto.PaidAt.UTC()
		paidAt = &p
	}

	return order.RestoreOrder(
		id,
		dto.TableNumber,
		lines,
		status,
		dto.CreatedAt.UTC(),
		dto.UpdatedAt.UTC(),
		paidAt,
		dto.Version,
	)
}
