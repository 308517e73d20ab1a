package entity

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

type OrderStatus string

const (
	OrderPending   OrderStatus = "pending"
	OrderAccepted  OrderStatus = "accepted"
	OrderRejected  OrderStatus = "rejected"
	OrderCompleted OrderStatus = "completed"
)

var orderNext = map[OrderStatus]map[OrderStatus]bool{
	OrderPending:   {OrderAccepted: true, OrderRejected: true},
	OrderAccepted:  {OrderCompleted: true},
	OrderRejected:  {},
	OrderCompleted: {},
}

func (s OrderStatus) Valid() bool {
	_, ok := orderNext[s]
	return ok
}

func (s *OrderStatus) UnmarshalJSON(data []byte) error {
	var raw string
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	status := OrderStatus(raw)
	if !status.Valid() {
		return fmt.Errorf("unknown order status %q", raw)
	}
	*s = status
	return nil
}

// CanTransition reports whether a seller may move an order from one status to
// the other. The backend stays the authority; this only gates the request.
func CanTransition(from, to OrderStatus) bool {
	return orderNext[from][to]
}

// NextStatuses lists the statuses reachable from s, accept before reject.
func (s OrderStatus) NextStatuses() []OrderStatus {
	switch s {
	case OrderPending:
		return []OrderStatus{OrderAccepted, OrderRejected}
	case OrderAccepted:
		return []OrderStatus{OrderCompleted}
	default:
		return nil
	}
}

type OrderProduct struct {
	Name   string   `json:"name"`
	Unit   string   `json:"unit"`
	Photos []string `json:"photos"`
}

type Order struct {
	ID         string          `json:"id"`
	ProductID  string          `json:"productId"`
	BuyerID    string          `json:"buyerId"`
	SellerID   string          `json:"sellerId"`
	Quantity   int             `json:"quantity"`
	TotalPrice decimal.Decimal `json:"totalPrice"`
	Status     OrderStatus     `json:"status"`
	CreatedAt  time.Time       `json:"createdAt"`
	Product    OrderProduct    `json:"product"`
	Buyer      Participant     `json:"buyer"`
	Seller     Participant     `json:"seller"`
}
