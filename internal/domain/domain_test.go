package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRoleLabel(t *testing.T) {
	tests := []struct {
		name string
		role Role
		want string
	}{
		{name: "admin", role: RoleAdmin, want: "admin"},
		{name: "doctor", role: RoleDoctor, want: "doctor"},
		{name: "anonymous is a patient", role: "", want: "patient"},
		{name: "unknown role strips prefix", role: Role("ROLE_NURSE"), want: "nurse"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.role.Label())
		})
	}
}

func TestLoginResultIdentity(t *testing.T) {
	result := LoginResult{Token: "jwt", Username: "Dr. Ayşe Kaya", Role: RoleDoctor, UserID: 7}

	identity := result.Identity()

	assert.Equal(t, Identity{Username: "Dr. Ayşe Kaya", Role: RoleDoctor, UserID: 7}, identity)
	assert.True(t, identity.HasRole(RoleDoctor))
	assert.False(t, identity.HasRole(RoleAdmin))
	assert.False(t, identity.IsZero())
	assert.True(t, Identity{}.IsZero())
}

func TestAppointmentStatusLabel(t *testing.T) {
	tests := []struct {
		status AppointmentStatus
		want   string
	}{
		{status: AppointmentPending, want: "pending"},
		{status: AppointmentConfirmed, want: "confirmed"},
		{status: AppointmentCompleted, want: "completed"},
		{status: AppointmentCancelled, want: "cancelled"},
		{status: "", want: "unknown"},
		{status: "ERTELENDI", want: "ertelendi"},
	}

	for _, tt := range tests {
		t.Run(string(tt.status), func(t *testing.T) {
			assert.Equal(t, tt.want, tt.status.Label())
		})
	}
}

func TestFullNamesTrimMissingParts(t *testing.T) {
	assert.Equal(t, "Ayşe Kaya", Doctor{FirstName: "Ayşe", LastName: "Kaya"}.FullName())
	assert.Equal(t, "Ayşe", Doctor{FirstName: "Ayşe"}.FullName())
	assert.Equal(t, "Mehmet Yılmaz", Appointment{PatientFirstName: "Mehmet", PatientLastName: "Yılmaz"}.PatientFullName())
}

func TestReviewStarsClampsRating(t *testing.T) {
	assert.Equal(t, "★★★☆☆", Review{Rating: 3}.Stars())
	assert.Equal(t, "★★★★★", Review{Rating: 9}.Stars())
	assert.Equal(t, "☆☆☆☆☆", Review{Rating: -2}.Stars())
}

func TestTotalAmount(t *testing.T) {
	invoices := []Invoice{
		{Amount: 1500, Status: InvoicePaid},
		{Amount: 750.5, Status: InvoicePending},
	}

	assert.InDelta(t, 2250.5, TotalAmount(invoices), 0.001)
	assert.True(t, invoices[0].IsPaid())
	assert.False(t, invoices[1].IsPaid())
	assert.Zero(t, TotalAmount(nil))
}
