package usecase

import (
	"context"

	"agriconnect/internal/domain/entity"
	"agriconnect/internal/domain/repository"
	"agriconnect/pkg/logger"
	"agriconnect/pkg/response"
	"agriconnect/pkg/utils"
)

const msgSummaryPartial = "Certaines données du tableau de bord n'ont pas pu être chargées"

type UserCard struct {
	ID       string      `json:"id"`
	Name     string      `json:"name"`
	Email    string      `json:"email"`
	Role     entity.Role `json:"role"`
	Initials string      `json:"initials"`
	Color    string      `json:"color"`
	Phone    string      `json:"phone,omitempty"`
	Region   string      `json:"region,omitempty"`
}

func NewUserCard(u *entity.User) UserCard {
	return UserCard{
		ID:       u.ID,
		Name:     u.Name,
		Email:    u.Email,
		Role:     u.Role,
		Initials: utils.Initials(u.Name),
		Color:    utils.ColorFromString(u.Name),
		Phone:    utils.FormatPhoneNumber(u.Phone),
		Region:   u.Region,
	}
}

// DashboardSummary holds the overview figures. A nil figure could not be
// loaded, or does not apply to the user's role.
type DashboardSummary struct {
	UnreadMessages *int `json:"unreadMessages,omitempty"`
	PendingSales   *int `json:"pendingSales,omitempty"`
	OpenPurchases  *int `json:"openPurchases,omitempty"`
	ActiveListings *int `json:"activeListings,omitempty"`
}

type DashboardSnapshot struct {
	User       UserCard         `json:"user"`
	Navigation []entity.NavItem `json:"navigation"`
	Summary    DashboardSummary `json:"summary"`
}

type DashboardUseCase struct {
	messageRepo repository.MessageRepository
	orderRepo   repository.OrderRepository
	productRepo repository.ProductRepository
}

func NewDashboardUseCase(
	messageRepo repository.MessageRepository,
	orderRepo repository.OrderRepository,
	productRepo repository.ProductRepository,
) *DashboardUseCase {
	return &DashboardUseCase{
		messageRepo: messageRepo,
		orderRepo:   orderRepo,
		productRepo: productRepo,
	}
}

// Mount fetches each slice of the overview one after the other. A failed
// slice leaves its figure empty and the page still renders.
func (uc *DashboardUseCase) Mount(ctx context.Context, user *entity.User) (*DashboardSnapshot, *response.Notice) {
	snap := &DashboardSnapshot{
		User:       NewUserCard(user),
		Navigation: entity.Navigation(user.Role, entity.PathDashboard),
	}
	failed := false

	if contacts, err := uc.messageRepo.ListContacts(ctx); err != nil {
		logger.Warn("dashboard: contacts for %s: %v", user.ID, err)
		failed = true
	} else {
		unread := 0
		for _, c := range contacts {
			unread += c.UnreadCount
		}
		snap.Summary.UnreadMessages = &unread
	}

	if orders, err := uc.orderRepo.List(ctx); err != nil {
		logger.Warn("dashboard: orders for %s: %v", user.ID, err)
		failed = true
	} else {
		purchases, sales := SplitOrders(orders, user.ID)
		pending, open := 0, 0
		for _, o := range sales {
			if o.Status == entity.OrderPending {
				pending++
			}
		}
		for _, o := range purchases {
			if o.Status == entity.OrderPending || o.Status == entity.OrderAccepted {
				open++
			}
		}
		snap.Summary.OpenPurchases = &open
		if user.Role.CanManageListings() {
			snap.Summary.PendingSales = &pending
		}
	}

	if user.Role.CanManageListings() {
		if products, err := uc.productRepo.ListMine(ctx); err != nil {
			logger.Warn("dashboard: listings for %s: %v", user.ID, err)
			failed = true
		} else {
			active := 0
			for _, p := range products {
				if p.EffectiveStatus() != entity.ProductOutOfStock {
					active++
				}
			}
			snap.Summary.ActiveListings = &active
		}
	}

	if failed {
		return snap, response.ErrorNotice(msgSummaryPartial)
	}
	return snap, nil
}
