package booking

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestValidateGuestInfo(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		guest GuestInfo
		want  map[Field]string
	}{
		{
			name:  "valid with parentheses",
			guest: GuestInfo{Name: "Ada", Email: "ada@example.com", Phone: "(555) 123-4567"},
		},
		{
			name:  "valid digits only",
			guest: GuestInfo{Name: "Ada", Email: "a@b.io", Phone: "5551234567"},
		},
		{
			name:  "valid with dots and padding",
			guest: GuestInfo{Name: " Ada ", Email: " ada@example.com ", Phone: " 555.123.4567 "},
		},
		{
			name:  "everything missing",
			guest: GuestInfo{},
			want: map[Field]string{
				FieldName:  "Name is required",
				FieldEmail: "Email is required",
				FieldPhone: "Phone number is required",
			},
		},
		{
			name:  "whitespace only name",
			guest: GuestInfo{Name: "\t ", Email: "a@b.io", Phone: "5551234567"},
			want:  map[Field]string{FieldName: "Name is required"},
		},
		{
			name:  "malformed email and phone",
			guest: GuestInfo{Name: "Ada", Email: "ada@@example", Phone: "12345"},
			want: map[Field]string{
				FieldEmail: "Please enter a valid email",
				FieldPhone: "Please enter a valid phone number",
			},
		},
		{
			name:  "email with space",
			guest: GuestInfo{Name: "Ada", Email: "ada lovelace@example.com", Phone: "555-123-4567"},
			want:  map[Field]string{FieldEmail: "Please enter a valid email"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			err := ValidateGuestInfo(tt.guest)
			if tt.want == nil {
				require.NoError(t, err)
				return
			}
			require.Equal(t, tt.want, FieldErrors(err))
		})
	}
}

func TestValidationErrorMessage(t *testing.T) {
	t.Parallel()

	err := ValidateGuestInfo(GuestInfo{Name: "Ada"})
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	require.Empty(t, verr.Message(FieldName))
	require.Equal(t, "Email is required", verr.Message(FieldEmail))
	require.Equal(t,
		"invalid contact details (email: Email is required; phone: Phone number is required)",
		err.Error())

	require.Nil(t, FieldErrors(ErrInvalidZip))
}
