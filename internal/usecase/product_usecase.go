package usecase

import (
	"context"
	"sync"

	"agriconnect/internal/domain/entity"
	"agriconnect/internal/domain/repository"
	"agriconnect/pkg/errors"
	"agriconnect/pkg/response"
	"agriconnect/pkg/utils"
)

const (
	msgProductsFailed   = "Impossible de charger vos annonces"
	msgDeleteFailed     = "Impossible de supprimer l'annonce"
	msgDeleteConfirm    = "Êtes-vous sûr de vouloir supprimer cette annonce ?"
	msgProductsSellers  = "Seuls les vendeurs ont des annonces"
	titleProductDeleted = "Annonce supprimée"
	msgProductDeleted   = "L'annonce a été supprimée avec succès"
)

// ProductsView is the seller's own catalog as last fetched.
type ProductsView struct {
	mu       sync.Mutex
	loaded   bool
	products []entity.Product
	gen      uint64
}

func newProductsView() *ProductsView {
	return &ProductsView{products: []entity.Product{}}
}

type ProductCard struct {
	entity.Product
	Status      entity.ProductStatus `json:"status"`
	StatusLabel string               `json:"statusLabel"`
	PriceLabel  string               `json:"priceLabel"`
	Photo       string               `json:"photo,omitempty"`
	Slug        string               `json:"slug"`
}

type ProductsSnapshot struct {
	Loaded   bool          `json:"loaded"`
	Products []ProductCard `json:"products"`
	Empty    bool          `json:"empty"`
}

func ProductStatusLabel(s entity.ProductStatus) string {
	switch s {
	case entity.ProductAvailable:
		return "Disponible"
	case entity.ProductLowStock:
		return "Stock faible"
	case entity.ProductOutOfStock:
		return "Épuisé"
	default:
		return string(s)
	}
}

func (v *ProductsView) begin() uint64 {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.gen++
	return v.gen
}

func (v *ProductsView) apply(gen uint64, products []entity.Product) {
	v.mu.Lock()
	defer v.mu.Unlock()
	if gen != v.gen {
		return
	}
	v.products = append([]entity.Product(nil), products...)
	v.loaded = true
}

func (v *ProductsView) has(id string) bool {
	v.mu.Lock()
	defer v.mu.Unlock()
	for _, p := range v.products {
		if p.ID == id {
			return true
		}
	}
	return false
}

// remove drops the first listing with id and nothing else.
func (v *ProductsView) remove(id string) {
	v.mu.Lock()
	defer v.mu.Unlock()
	for i, p := range v.products {
		if p.ID == id {
			v.products = append(v.products[:i:i], v.products[i+1:]...)
			return
		}
	}
}

func (v *ProductsView) snapshot() *ProductsSnapshot {
	v.mu.Lock()
	defer v.mu.Unlock()

	snap := &ProductsSnapshot{
		Loaded:   v.loaded,
		Products: make([]ProductCard, 0, len(v.products)),
		Empty:    v.loaded && len(v.products) == 0,
	}
	for _, p := range v.products {
		status := p.EffectiveStatus()
		card := ProductCard{
			Product:     p,
			Status:      status,
			StatusLabel: ProductStatusLabel(status),
			PriceLabel:  utils.FormatPrice(p.Price) + "/" + p.Unit,
			Slug:        utils.Slugify(p.Name),
		}
		if len(p.Photos) > 0 {
			card.Photo = p.Photos[0]
		}
		snap.Products = append(snap.Products, card)
	}
	return snap
}

type ProductUseCase struct {
	productRepo repository.ProductRepository
}

func NewProductUseCase(productRepo repository.ProductRepository) *ProductUseCase {
	return &ProductUseCase{
		productRepo: productRepo,
	}
}

type ProductResult struct {
	Snapshot *ProductsSnapshot
	Notice   *response.Notice
}

func (uc *ProductUseCase) Mount(ctx context.Context, ws *Workspace, user *entity.User) (*ProductResult, error) {
	if !user.Role.CanManageListings() {
		return nil, errors.Forbidden(msgProductsSellers, nil)
	}

	v := newProductsView()
	ws.setProductsView(v)

	gen := v.begin()
	products, err := uc.productRepo.ListMine(ctx)
	if err != nil {
		return &ProductResult{Snapshot: v.snapshot(), Notice: response.ErrorNotice(msgProductsFailed)}, err
	}
	v.apply(gen, products)
	return &ProductResult{Snapshot: v.snapshot()}, nil
}

// Delete removes a listing once the user confirmed it. Without confirmation
// it only returns the prompt to show.
func (uc *ProductUseCase) Delete(ctx context.Context, ws *Workspace, user *entity.User, productID string, confirmed bool) (*ProductResult, error) {
	if !user.Role.CanManageListings() {
		return nil, errors.Forbidden(msgProductsSellers, nil)
	}

	v := ws.productsView()
	if v == nil {
		result, err := uc.Mount(ctx, ws, user)
		if err != nil {
			return result, err
		}
		v = ws.productsView()
	}

	if !v.has(productID) {
		return &ProductResult{Snapshot: v.snapshot()}, errors.NotFound("Product", nil)
	}
	if !confirmed {
		return &ProductResult{Snapshot: v.snapshot()}, errors.ConfirmationRequired(msgDeleteConfirm)
	}

	if err := uc.productRepo.Delete(ctx, productID); err != nil {
		return &ProductResult{Snapshot: v.snapshot(), Notice: response.ErrorNotice(msgDeleteFailed)}, err
	}

	v.remove(productID)
	return &ProductResult{
		Snapshot: v.snapshot(),
		Notice:   response.SuccessNotice(titleProductDeleted, msgProductDeleted),
	}, nil
}
