package usecase

import (
	"context"
	"sync"
	"time"

	"agriconnect/internal/domain/entity"
	"agriconnect/internal/domain/repository"
	"agriconnect/pkg/errors"
	"agriconnect/pkg/response"
	"agriconnect/pkg/utils"
)

const (
	msgOrdersFailed       = "Impossible de charger les commandes"
	msgStatusFailed       = "Impossible de mettre à jour le statut"
	msgStatusUpdated      = "Le statut de la commande a été mis à jour"
	msgSellerOnly         = "Seul le vendeur peut changer le statut de cette commande"
	msgTransitionRejected = "Ce changement de statut n'est pas permis"
)

// OrdersView keeps the fetched orders of one session in backend order.
type OrdersView struct {
	mu     sync.Mutex
	loaded bool
	orders []entity.Order
	gen    uint64
}

func newOrdersView() *OrdersView {
	return &OrdersView{orders: []entity.Order{}}
}

type OrderAction struct {
	Status entity.OrderStatus `json:"status"`
	Label  string             `json:"label"`
}

type OrderCard struct {
	entity.Order
	StatusLabel string        `json:"statusLabel"`
	Counterpart string        `json:"counterpart"`
	Total       string        `json:"total"`
	Date        string        `json:"date"`
	Photo       string        `json:"photo,omitempty"`
	Actions     []OrderAction `json:"actions"`
}

type OrdersSnapshot struct {
	Loaded    bool        `json:"loaded"`
	Purchases []OrderCard `json:"purchases"`
	Sales     []OrderCard `json:"sales"`
}

// SplitOrders sorts orders into the ones user bought and the ones user sold.
// An order the user is seller of is a sale even when the user is also its
// buyer, so no order lands in both lists. Unrelated orders land in neither.
func SplitOrders(orders []entity.Order, userID string) (purchases, sales []entity.Order) {
	purchases = []entity.Order{}
	sales = []entity.Order{}
	for _, o := range orders {
		switch {
		case o.SellerID == userID:
			sales = append(sales, o)
		case o.BuyerID == userID:
			purchases = append(purchases, o)
		}
	}
	return purchases, sales
}

func OrderStatusLabel(s entity.OrderStatus) string {
	switch s {
	case entity.OrderPending:
		return "En attente"
	case entity.OrderAccepted:
		return "Acceptée"
	case entity.OrderRejected:
		return "Refusée"
	case entity.OrderCompleted:
		return "Terminée"
	default:
		return string(s)
	}
}

func orderActionLabel(s entity.OrderStatus) string {
	switch s {
	case entity.OrderAccepted:
		return "Accepter"
	case entity.OrderRejected:
		return "Refuser"
	case entity.OrderCompleted:
		return "Marquer comme terminée"
	default:
		return string(s)
	}
}

func (v *OrdersView) begin() uint64 {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.gen++
	return v.gen
}

func (v *OrdersView) apply(gen uint64, orders []entity.Order) {
	v.mu.Lock()
	defer v.mu.Unlock()
	if gen != v.gen {
		return
	}
	v.orders = append([]entity.Order(nil), orders...)
	v.loaded = true
}

func (v *OrdersView) find(id string) (entity.Order, bool) {
	v.mu.Lock()
	defer v.mu.Unlock()
	for _, o := range v.orders {
		if o.ID == id {
			return o, true
		}
	}
	return entity.Order{}, false
}

// patch replaces the order with the same id, leaving every other one alone.
func (v *OrdersView) patch(updated entity.Order) {
	v.mu.Lock()
	defer v.mu.Unlock()
	for i := range v.orders {
		if v.orders[i].ID == updated.ID {
			v.orders[i] = updated
			return
		}
	}
}

func (v *OrdersView) list() ([]entity.Order, bool) {
	v.mu.Lock()
	defer v.mu.Unlock()
	return append([]entity.Order(nil), v.orders...), v.loaded
}

type OrderUseCase struct {
	orderRepo repository.OrderRepository
	loc       *time.Location
	now       func() time.Time
}

func NewOrderUseCase(orderRepo repository.OrderRepository, loc *time.Location) *OrderUseCase {
	return &OrderUseCase{
		orderRepo: orderRepo,
		loc:       loc,
		now:       time.Now,
	}
}

type OrderResult struct {
	Snapshot *OrdersSnapshot
	Notice   *response.Notice
}

func (uc *OrderUseCase) Mount(ctx context.Context, ws *Workspace, user *entity.User) (*OrderResult, error) {
	v := newOrdersView()
	ws.setOrdersView(v)

	gen := v.begin()
	orders, err := uc.orderRepo.List(ctx)
	if err != nil {
		return uc.result(v, user, response.ErrorNotice(msgOrdersFailed)), err
	}
	v.apply(gen, orders)
	return uc.result(v, user, nil), nil
}

// UpdateStatus asks the backend to move an order along. Only the seller may,
// and only along pending→accepted|rejected and accepted→completed.
func (uc *OrderUseCase) UpdateStatus(ctx context.Context, ws *Workspace, user *entity.User, orderID string, status entity.OrderStatus) (*OrderResult, error) {
	v := ws.ordersView()
	if v == nil {
		result, err := uc.Mount(ctx, ws, user)
		if err != nil {
			return result, err
		}
		v = ws.ordersView()
	}

	order, ok := v.find(orderID)
	if !ok {
		return uc.result(v, user, nil), errors.NotFound("Order", nil)
	}
	if order.SellerID != user.ID {
		return uc.result(v, user, response.ErrorNotice(msgSellerOnly)), errors.Forbidden(msgSellerOnly, nil)
	}
	if !entity.CanTransition(order.Status, status) {
		return uc.result(v, user, response.ErrorNotice(msgTransitionRejected)), errors.Conflict(msgTransitionRejected)
	}

	updated, err := uc.orderRepo.UpdateStatus(ctx, orderID, status)
	if err != nil {
		return uc.result(v, user, response.ErrorNotice(msgStatusFailed)), err
	}

	v.patch(*updated)
	return uc.result(v, user, response.SuccessNotice("Succès", msgStatusUpdated)), nil
}

func (uc *OrderUseCase) result(v *OrdersView, user *entity.User, notice *response.Notice) *OrderResult {
	orders, loaded := v.list()
	purchases, sales := SplitOrders(orders, user.ID)
	now := uc.now()

	snap := &OrdersSnapshot{
		Loaded:    loaded,
		Purchases: make([]OrderCard, 0, len(purchases)),
		Sales:     make([]OrderCard, 0, len(sales)),
	}
	for _, o := range purchases {
		snap.Purchases = append(snap.Purchases, uc.card(o, user, now))
	}
	for _, o := range sales {
		snap.Sales = append(snap.Sales, uc.card(o, user, now))
	}
	return &OrderResult{Snapshot: snap, Notice: notice}
}

func (uc *OrderUseCase) card(o entity.Order, user *entity.User, now time.Time) OrderCard {
	card := OrderCard{
		Order:       o,
		StatusLabel: OrderStatusLabel(o.Status),
		Total:       utils.FormatPrice(o.TotalPrice),
		Date:        utils.FormatDate(o.CreatedAt, now, uc.loc),
		Actions:     []OrderAction{},
	}
	if len(o.Product.Photos) > 0 {
		card.Photo = o.Product.Photos[0]
	}

	if o.SellerID == user.ID {
		card.Counterpart = "Acheteur: " + o.Buyer.Name
		for _, next := range o.Status.NextStatuses() {
			card.Actions = append(card.Actions, OrderAction{Status: next, Label: orderActionLabel(next)})
		}
	} else {
		card.Counterpart = "Vendeur: " + o.Seller.Name
	}
	return card
}
