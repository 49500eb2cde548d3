package service

import (
	"context"
	"errors"
	"strings"
	"sync"

	"github.com/sangkips/scango-api/internal/domain/entity"
	"github.com/sangkips/scango-api/internal/domain/repository"
	"github.com/sangkips/scango-api/pkg/apperror"
)

// CartView is a cart with its totals
type CartView struct {
	StoreID string            `json:"store_id"`
	Items   []entity.CartItem `json:"items"`
	Count   int               `json:"count"`
	Payable entity.Money      `json:"payable"`
	Savings entity.Money      `json:"savings"`
}

// CartService keeps one in-memory cart per customer session
type CartService struct {
	catalog *CatalogService
	stores  repository.StoreRepository

	mu    sync.Mutex
	carts map[string]*entity.Cart
}

// NewCartService creates a new cart service
func NewCartService(catalog *CatalogService, stores repository.StoreRepository) *CartService {
	return &CartService{
		catalog: catalog,
		stores:  stores,
		carts:   make(map[string]*entity.Cart),
	}
}

// SelectStore binds the customer's cart to a store. Changing store empties the cart
// because prices are store-specific. An unknown store leaves the cart untouched.
func (s *CartService) SelectStore(ctx context.Context, customerID, storeID string) (*CartView, error) {
	storeID = strings.TrimSpace(storeID)
	if storeID == "" {
		return nil, apperror.NewBadRequestError("Select a store before scanning")
	}
	store, err := s.stores.GetByID(ctx, storeID)
	if err != nil {
		return nil, apperror.NewPersistenceError("Store directory unavailable", err)
	}
	if store == nil {
		return nil, apperror.NewBadRequestError("Unknown store")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	cart, ok := s.carts[customerID]
	if !ok || cart.StoreID != storeID {
		cart = entity.NewCart(storeID)
		s.carts[customerID] = cart
	}
	return viewOf(cart), nil
}

// Get returns the customer's cart, empty if none exists
func (s *CartService) Get(customerID string) *CartView {
	s.mu.Lock()
	defer s.mu.Unlock()

	cart, ok := s.carts[customerID]
	if !ok {
		return viewOf(entity.NewCart(""))
	}
	return viewOf(cart)
}

// AddByBarcode resolves barcode in the cart's store and adds qty units
func (s *CartService) AddByBarcode(ctx context.Context, customerID, barcode string, qty int) (*CartView, error) {
	storeID := s.storeOf(customerID)
	if storeID == "" {
		return nil, apperror.NewBadRequestError("Select a store before scanning")
	}
	if qty < 1 {
		return nil, apperror.NewBadRequestError(entity.ErrInvalidQuantity.Error())
	}

	product, err := s.catalog.Resolve(ctx, barcode, storeID)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	cart, ok := s.carts[customerID]
	if !ok || cart.StoreID != storeID {
		// store changed while resolving
		return nil, apperror.NewBadRequestError("Store changed, please scan again")
	}
	if err := cart.Add(product, qty); err != nil {
		return nil, cartError(err)
	}
	return viewOf(cart), nil
}

// Adjust changes a line's quantity by delta
func (s *CartService) Adjust(customerID, productID string, delta int) (*CartView, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	cart, ok := s.carts[customerID]
	if !ok {
		return nil, apperror.NewNotFoundError("Cart item")
	}
	if err := cart.Adjust(productID, delta); err != nil {
		return nil, cartError(err)
	}
	return viewOf(cart), nil
}

// Clear empties the cart but keeps the store
func (s *CartService) Clear(customerID string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if cart, ok := s.carts[customerID]; ok {
		cart.Clear()
	}
}

// Snapshot returns the store and a copy of the lines for checkout
func (s *CartService) Snapshot(customerID string) (string, []entity.CartItem) {
	s.mu.Lock()
	defer s.mu.Unlock()

	cart, ok := s.carts[customerID]
	if !ok {
		return "", nil
	}
	return cart.StoreID, cart.Items()
}

func (s *CartService) storeOf(customerID string) string {
	s.mu.Lock()
	defer s.mu.Unlock()

	if cart, ok := s.carts[customerID]; ok {
		return cart.StoreID
	}
	return ""
}

func viewOf(cart *entity.Cart) *CartView {
	payable, savings := cart.Totals()
	return &CartView{
		StoreID: cart.StoreID,
		Items:   cart.Items(),
		Count:   cart.Count(),
		Payable: payable,
		Savings: savings,
	}
}

func cartError(err error) error {
	switch {
	case errors.Is(err, entity.ErrCartItemNotFound):
		return apperror.NewNotFoundError("Cart item")
	case errors.Is(err, entity.ErrInvalidQuantity), errors.Is(err, entity.ErrNilProduct):
		return apperror.NewBadRequestError(err.Error())
	}
	return err
}
