package service

import (
	"context"

	"github.com/sangkips/scango-api/internal/domain/entity"
	"github.com/sangkips/scango-api/internal/domain/repository"
	"github.com/sangkips/scango-api/pkg/apperror"
	"github.com/sangkips/scango-api/pkg/pagination"
)

// HistoryService reads a customer's past orders
type HistoryService struct {
	history repository.HistoryRepository
}

// NewHistoryService creates a new history service
func NewHistoryService(history repository.HistoryRepository) *HistoryService {
	return &HistoryService{history: history}
}

// List returns the customer's orders, newest first
func (s *HistoryService) List(ctx context.Context, customerID string, params *pagination.PaginationParams) (*pagination.PaginatedResult[entity.Order], error) {
	params.Validate()
	orders, total, err := s.history.List(ctx, customerID, params)
	if err != nil {
		return nil, apperror.NewPersistenceError("History unavailable", err)
	}
	return pagination.NewPaginatedResult(orders, pagination.NewPagination(params.Page, params.PerPage, total)), nil
}

// Get returns one of the customer's orders
func (s *HistoryService) Get(ctx context.Context, customerID, orderID string) (*entity.Order, error) {
	order, err := s.history.FindByOrderID(ctx, orderID)
	if err != nil {
		return nil, apperror.NewPersistenceError("History unavailable", err)
	}
	if order == nil || order.CustomerID != customerID {
		return nil, apperror.NewNotFoundError("Order")
	}
	return order, nil
}
