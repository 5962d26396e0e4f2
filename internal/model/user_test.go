package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseStatus(t *testing.T) {
	tests := []struct {
		in   string
		want Status
	}{
		{in: "Active", want: StatusActive},
		{in: "active", want: StatusActive},
		{in: "INACTIVE", want: StatusInactive},
		{in: "suspended", want: StatusSuspended},
		{in: "Deleted", want: StatusDeleted},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseStatus(tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseStatus_Invalid(t *testing.T) {
	for _, in := range []string{"", "banned", "Active "} {
		_, err := ParseStatus(in)
		require.ErrorIs(t, err, ErrInvalidInput, "input %q", in)
	}
}

func TestParseKYCStatus(t *testing.T) {
	tests := []struct {
		in   string
		want KYCStatus
	}{
		{in: "Pending", want: KYCPending},
		{in: "inprogress", want: KYCInProgress},
		{in: "VERIFIED", want: KYCVerified},
		{in: "rejected", want: KYCRejected},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseKYCStatus(tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseKYCStatus_Invalid(t *testing.T) {
	for _, in := range []string{"", "done", "in progress"} {
		_, err := ParseKYCStatus(in)
		require.ErrorIs(t, err, ErrInvalidInput, "input %q", in)
	}
}
