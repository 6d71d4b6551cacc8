package memory

import (
	"context"
	"fmt"
	"sync"

	"rentacar-backend/internal/domain"
	"rentacar-backend/internal/repository"
)

type customerRepository struct {
	mu    sync.RWMutex
	byID  map[string]domain.Customer
	order []string
}

func NewCustomerRepository() repository.CustomerRepository {
	return &customerRepository{byID: make(map[string]domain.Customer)}
}

func (r *customerRepository) Create(ctx context.Context, customer *domain.Customer) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.byID[customer.ID]; ok {
		return fmt.Errorf("customer %s: %w", customer.ID, domain.ErrAlreadyExists)
	}
	for _, c := range r.byID {
		if c.DocumentNumber == customer.DocumentNumber {
			return fmt.Errorf("customer with document %s: %w", customer.DocumentNumber, domain.ErrAlreadyExists)
		}
	}
	r.byID[customer.ID] = *customer
	r.order = append(r.order, customer.ID)
	return nil
}

func (r *customerRepository) GetByID(ctx context.Context, id string) (*domain.Customer, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	c, ok := r.byID[id]
	if !ok {
		return nil, fmt.Errorf("customer %s: %w", id, domain.ErrNotFound)
	}
	return &c, nil
}

func (r *customerRepository) GetByDocumentNumber(ctx context.Context, documentNumber string) (*domain.Customer, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, c := range r.byID {
		if c.DocumentNumber == documentNumber {
			return &c, nil
		}
	}
	return nil, fmt.Errorf("customer with document %s: %w", documentNumber, domain.ErrNotFound)
}

func (r *customerRepository) List(ctx context.Context) ([]domain.Customer, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]domain.Customer, 0, len(r.order))
	for _, id := range r.order {
		out = append(out, r.byID[id])
	}
	return out, nil
}
