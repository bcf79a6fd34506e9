package application

import (
	"context"
	"sort"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/wyfcoding/claimsmanagement/internal/customer/domain"
)

type memoryCustomerRepository struct {
	customers map[int64]*domain.Customer
	emails    map[string]bool
}

func newMemoryCustomerRepository() *memoryCustomerRepository {
	return &memoryCustomerRepository{
		customers: make(map[int64]*domain.Customer),
		emails:    make(map[string]bool),
	}
}

func (r *memoryCustomerRepository) Create(_ context.Context, customer *domain.Customer) error {
	if _, exists := r.customers[customer.PolicyholderID]; exists {
		return domain.ErrDuplicateCustomer
	}
	if r.emails[customer.Email] {
		return domain.ErrDuplicateCustomer
	}
	cp := *customer
	r.customers[customer.PolicyholderID] = &cp
	r.emails[customer.Email] = true
	return nil
}

func (r *memoryCustomerRepository) List(_ context.Context) ([]*domain.Customer, error) {
	result := make([]*domain.Customer, 0, len(r.customers))
	for _, c := range r.customers {
		cp := *c
		result = append(result, &cp)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].PolicyholderID < result[j].PolicyholderID })
	return result, nil
}

func (r *memoryCustomerRepository) GetByID(_ context.Context, policyholderID int64) (*domain.Customer, error) {
	c, ok := r.customers[policyholderID]
	if !ok {
		return nil, domain.ErrCustomerNotFound
	}
	cp := *c
	return &cp, nil
}

func testCustomer(policyholderID int64, email string) *domain.Customer {
	return &domain.Customer{
		PolicyholderID:   policyholderID,
		PolicyholderName: "Jane Doe",
		Email:            email,
		Phone:            "555-0101",
		PolicyNumber:     "POL-1001",
	}
}

func TestCreateCustomer(t *testing.T) {
	svc := NewCustomerService(newMemoryCustomerRepository())

	created, err := svc.CreateCustomer(context.Background(), testCustomer(42, "jane@example.com"))
	require.NoError(t, err)
	require.Equal(t, int64(42), created.PolicyholderID)
}

func TestCreateCustomer_MissingFields(t *testing.T) {
	svc := NewCustomerService(newMemoryCustomerRepository())

	c := testCustomer(42, "jane@example.com")
	c.PolicyholderName = ""
	c.Phone = ""

	_, err := svc.CreateCustomer(context.Background(), c)
	require.ErrorIs(t, err, domain.ErrMissingFields)
	require.Contains(t, err.Error(), "policyholderName")
	require.Contains(t, err.Error(), "phone")
}

func TestCreateCustomer_Duplicate(t *testing.T) {
	svc := NewCustomerService(newMemoryCustomerRepository())
	ctx := context.Background()

	_, err := svc.CreateCustomer(ctx, testCustomer(42, "jane@example.com"))
	require.NoError(t, err)

	_, err = svc.CreateCustomer(ctx, testCustomer(42, "other@example.com"))
	require.ErrorIs(t, err, domain.ErrDuplicateCustomer)

	_, err = svc.CreateCustomer(ctx, testCustomer(43, "jane@example.com"))
	require.ErrorIs(t, err, domain.ErrDuplicateCustomer)
}

func TestListAndGetCustomers(t *testing.T) {
	svc := NewCustomerService(newMemoryCustomerRepository())
	ctx := context.Background()

	_, err := svc.CreateCustomer(ctx, testCustomer(43, "john@example.com"))
	require.NoError(t, err)
	_, err = svc.CreateCustomer(ctx, testCustomer(42, "jane@example.com"))
	require.NoError(t, err)

	customers, err := svc.ListCustomers(ctx)
	require.NoError(t, err)
	require.Len(t, customers, 2)
	require.Equal(t, int64(42), customers[0].PolicyholderID)

	customer, err := svc.GetCustomer(ctx, 42)
	require.NoError(t, err)
	require.Equal(t, "jane@example.com", customer.Email)

	_, err = svc.GetCustomer(ctx, 99)
	require.ErrorIs(t, err, domain.ErrCustomerNotFound)
}
