package usecase

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"agriconnect/internal/domain/entity"
	"agriconnect/pkg/errors"
)

func seedProducts() *fakeProductRepo {
	return &fakeProductRepo{products: []entity.Product{
		{ID: "p1", Name: "Cacao de Soubré", Price: decimal.NewFromInt(1500), Quantity: 200, Unit: "kg"},
		{ID: "p2", Name: "Igname", Price: decimal.NewFromInt(500), Quantity: 4, Unit: "kg"},
		{ID: "p3", Name: "Riz", Price: decimal.NewFromInt(700), Quantity: 0, Unit: "sac", Status: entity.ProductAvailable},
	}}
}

func productIDs(snap *ProductsSnapshot) []string {
	out := []string{}
	for _, p := range snap.Products {
		out = append(out, p.ID)
	}
	return out
}

func TestProductUseCase_Mount(t *testing.T) {
	uc := NewProductUseCase(seedProducts())

	result, err := uc.Mount(context.Background(), &Workspace{}, seller)
	require.NoError(t, err)

	cards := result.Snapshot.Products
	require.Len(t, cards, 3)
	assert.Equal(t, entity.ProductAvailable, cards[0].Status)
	assert.Equal(t, "Disponible", cards[0].StatusLabel)
	assert.Equal(t, "1\u202f500\u00a0F\u00a0CFA/kg", cards[0].PriceLabel)
	assert.Equal(t, "cacao-de-soubre", cards[0].Slug)
	assert.Equal(t, entity.ProductLowStock, cards[1].Status)
	assert.Equal(t, entity.ProductAvailable, cards[2].Status, "backend status wins over quantity")
}

func TestProductUseCase_BuyersAreTurnedAway(t *testing.T) {
	repo := seedProducts()
	_, err := NewProductUseCase(repo).Mount(context.Background(), &Workspace{}, buyer)
	assert.True(t, errors.Is(err, errors.CodeForbidden))
}

func TestProductUseCase_DeleteNeedsConfirmation(t *testing.T) {
	repo := seedProducts()
	uc := NewProductUseCase(repo)
	ws := &Workspace{}
	_, err := uc.Mount(context.Background(), ws, seller)
	require.NoError(t, err)

	result, err := uc.Delete(context.Background(), ws, seller, "p2", false)

	assert.True(t, errors.Is(err, errors.CodeConfirmationRequired))
	assert.Equal(t, "Êtes-vous sûr de vouloir supprimer cette annonce ?", errors.MessageOr(err, ""))
	assert.Empty(t, repo.deletes)
	assert.Len(t, result.Snapshot.Products, 3)
}

func TestProductUseCase_DeleteRemovesExactlyOne(t *testing.T) {
	repo := seedProducts()
	uc := NewProductUseCase(repo)
	ws := &Workspace{}
	_, err := uc.Mount(context.Background(), ws, seller)
	require.NoError(t, err)

	result, err := uc.Delete(context.Background(), ws, seller, "p2", true)
	require.NoError(t, err)

	assert.Equal(t, []string{"p2"}, repo.deletes)
	assert.Equal(t, []string{"p1", "p3"}, productIDs(result.Snapshot))
	assert.Equal(t, "Annonce supprimée", result.Notice.Title)
}

func TestProductUseCase_DeleteFailureLeavesList(t *testing.T) {
	repo := seedProducts()
	repo.deleteErr = errBackendDown
	uc := NewProductUseCase(repo)
	ws := &Workspace{}
	_, err := uc.Mount(context.Background(), ws, seller)
	require.NoError(t, err)

	result, err := uc.Delete(context.Background(), ws, seller, "p2", true)

	require.Error(t, err)
	assert.Equal(t, []string{"p1", "p2", "p3"}, productIDs(result.Snapshot))
	assert.Equal(t, "Impossible de supprimer l'annonce", result.Notice.Description)
}

func TestProductUseCase_DeleteUnknown(t *testing.T) {
	repo := seedProducts()
	uc := NewProductUseCase(repo)

	_, err := uc.Delete(context.Background(), &Workspace{}, seller, "ghost", true)

	assert.True(t, errors.Is(err, errors.CodeNotFound))
	assert.Empty(t, repo.deletes)
}
