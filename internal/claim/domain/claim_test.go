package domain

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

func validClaim() *Claim {
	return &Claim{
		ClaimID:           1,
		PolicyID:          10,
		PolicyholderID:    42,
		AgentID:           8,
		ClaimReason:       "Water damage",
		ClaimType:         "Property",
		ClaimStatus:       ClaimStatusPending,
		IncidentDate:      time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC),
		ClaimDate:         time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC),
		ClaimAmtRequested: decimal.NewFromInt(1000),
	}
}

func TestClaimValidate(t *testing.T) {
	require.NoError(t, validClaim().Validate())
}

func TestClaimValidate_NamesMissingFields(t *testing.T) {
	c := validClaim()
	c.ClaimReason = ""
	c.IncidentDate = time.Time{}

	err := c.Validate()
	require.ErrorIs(t, err, ErrMissingFields)
	require.Contains(t, err.Error(), "claimReason")
	require.Contains(t, err.Error(), "incidentDate")
	require.NotContains(t, err.Error(), "claimType")
}

func TestClaimStatus(t *testing.T) {
	require.True(t, ClaimStatusPending.IsValid())
	require.True(t, ClaimStatusApproved.IsValid())
	require.True(t, ClaimStatusRejected.IsValid())
	require.False(t, ClaimStatus("pending").IsValid())
	require.False(t, ClaimStatus("Closed").IsValid())

	require.False(t, ClaimStatusPending.Decided())
	require.True(t, ClaimStatusApproved.Decided())
	require.True(t, ClaimStatusRejected.Decided())
}

func TestCanAppendDocuments(t *testing.T) {
	c := validClaim()
	require.NoError(t, c.CanAppendDocuments())

	c.ClaimStatus = ClaimStatusApproved
	require.ErrorIs(t, c.CanAppendDocuments(), ErrClaimDecided)

	c.ClaimStatus = ClaimStatusRejected
	require.ErrorIs(t, c.CanAppendDocuments(), ErrClaimDecided)
}

func TestStatusUpdateValidate(t *testing.T) {
	amt := decimal.NewFromInt(800)

	cases := []struct {
		name   string
		update StatusUpdate
		want   error
	}{
		{"approve with amount", StatusUpdate{Status: ClaimStatusApproved, ApprovedAmt: &amt}, nil},
		{"approve without amount", StatusUpdate{Status: ClaimStatusApproved}, ErrApprovedAmtRequired},
		{"reject without amount", StatusUpdate{Status: ClaimStatusRejected}, nil},
		{"back to pending", StatusUpdate{Status: ClaimStatusPending}, nil},
		{"unknown status", StatusUpdate{Status: "Settled"}, ErrInvalidStatus},
		{"empty status", StatusUpdate{}, ErrInvalidStatus},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.update.Validate()
			if tc.want == nil {
				require.NoError(t, err)
			} else {
				require.ErrorIs(t, err, tc.want)
			}
		})
	}
}
