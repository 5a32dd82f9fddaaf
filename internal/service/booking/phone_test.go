package booking

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizePhone(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    string
		wantErr bool
	}{
		{"bare ten digits", "5551234567", "+905551234567", false},
		{"leading zero", "05551234567", "+905551234567", false},
		{"country code", "905551234567", "+905551234567", false},
		{"plus country code", "+905551234567", "+905551234567", false},
		{"formatted", "0 (555) 123 45 67", "+905551234567", false},
		{"dashes", "0555-123-45-67", "+905551234567", false},
		{"not a mobile prefix", "1234567890", "", true},
		{"too short", "555123", "", true},
		{"too long", "555512345678", "", true},
		{"empty", "", "", true},
		{"letters only", "phone", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := NormalizePhone(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
