package service

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"rentacar-backend/internal/domain"
	"rentacar-backend/internal/logger"
	"rentacar-backend/internal/repository"
	"rentacar-backend/internal/validation"
)

type customerService struct {
	customerRepo repository.CustomerRepository
	now          func() time.Time
}

func NewCustomerService(customerRepo repository.CustomerRepository) CustomerService {
	return &customerService{
		customerRepo: customerRepo,
		now:          func() time.Time { return time.Now().UTC() },
	}
}

// Register validates the customer, assigns an id and stores it. Document numbers are unique.
func (s *customerService) Register(ctx context.Context, customer *domain.Customer) error {
	logger.EnterMethod("CustomerService.Register", "document_number", customer.DocumentNumber)

	customer.LastName = strings.TrimSpace(customer.LastName)
	customer.FirstName = strings.TrimSpace(customer.FirstName)
	customer.Email = strings.ToLower(strings.TrimSpace(customer.Email))
	if err := validation.Validate(customer); err != nil {
		logger.ExitMethodWithError("CustomerService.Register", err)
		return err
	}

	customer.ID = uuid.NewString()
	customer.CreatedOn = s.now()
	if err := s.customerRepo.Create(ctx, customer); err != nil {
		logger.ExitMethodWithError("CustomerService.Register", err)
		return err
	}

	logger.Info("Customer registered", "customer_id", customer.ID)
	logger.ExitMethod("CustomerService.Register")
	return nil
}

func (s *customerService) Get(ctx context.Context, id string) (*domain.Customer, error) {
	return s.customerRepo.GetByID(ctx, id)
}

func (s *customerService) List(ctx context.Context) ([]domain.Customer, error) {
	return s.customerRepo.List(ctx)
}
