package application

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/wyfcoding/claimsmanagement/internal/claimofficer/domain"
)

type memoryOfficerRepository struct {
	officers map[int64]*domain.ClaimOfficer
}

func (r *memoryOfficerRepository) Create(_ context.Context, officer *domain.ClaimOfficer) error {
	if _, exists := r.officers[officer.ClaimOfficerID]; exists {
		return domain.ErrDuplicateClaimOfficer
	}
	cp := *officer
	r.officers[officer.ClaimOfficerID] = &cp
	return nil
}

func (r *memoryOfficerRepository) List(_ context.Context) ([]*domain.ClaimOfficer, error) {
	result := make([]*domain.ClaimOfficer, 0, len(r.officers))
	for _, o := range r.officers {
		cp := *o
		result = append(result, &cp)
	}
	return result, nil
}

func (r *memoryOfficerRepository) GetByID(_ context.Context, claimOfficerID int64) (*domain.ClaimOfficer, error) {
	o, ok := r.officers[claimOfficerID]
	if !ok {
		return nil, domain.ErrClaimOfficerNotFound
	}
	cp := *o
	return &cp, nil
}

func newTestService() *ClaimOfficerService {
	return NewClaimOfficerService(&memoryOfficerRepository{officers: make(map[int64]*domain.ClaimOfficer)})
}

func TestCreateClaimOfficer(t *testing.T) {
	svc := newTestService()

	created, err := svc.CreateClaimOfficer(context.Background(), &domain.ClaimOfficer{
		ClaimOfficerID:   7,
		ClaimOfficerName: "Sam Reed",
		Email:            "sam@example.com",
		Phone:            "555-0102",
	})
	require.NoError(t, err)
	require.Equal(t, int64(7), created.ClaimOfficerID)
}

func TestCreateClaimOfficer_MissingFields(t *testing.T) {
	svc := newTestService()

	_, err := svc.CreateClaimOfficer(context.Background(), &domain.ClaimOfficer{
		ClaimOfficerID: 7,
	})
	require.ErrorIs(t, err, domain.ErrMissingFields)
	require.Contains(t, err.Error(), "claimOfficerName")
	require.Contains(t, err.Error(), "email")
	require.Contains(t, err.Error(), "phone")
}

func TestGetClaimOfficer_NotFound(t *testing.T) {
	svc := newTestService()

	_, err := svc.GetClaimOfficer(context.Background(), 99)
	require.ErrorIs(t, err, domain.ErrClaimOfficerNotFound)
}
