package inventory

import (
	"time"
)

// RoutingKeyRestocked 补货事件路由键
const RoutingKeyRestocked = "inventory.restocked"

// RestockedEvent 补货事件
type RestockedEvent struct {
	InventoryID    uint      `json:"inventory_id"`
	BookID         uint      `json:"book_id"`
	AddedUnits     int       `json:"added_units"`
	UnitsPurchased int       `json:"units_purchased"`
	UnitsAvailable int       `json:"units_available"`
	OccurredAt     time.Time `json:"occurred_at"`
}

// NewRestockedEvent 根据补货后的库存生成事件
func NewRestockedEvent(inv *Inventory, added int) RestockedEvent {
	return RestockedEvent{
		InventoryID:    inv.ID,
		BookID:         inv.BookID,
		AddedUnits:     added,
		UnitsPurchased: inv.UnitsPurchased,
		UnitsAvailable: inv.UnitsAvailable,
		OccurredAt:     time.Now(),
	}
}
