package identity

import "testing"

func TestValidateAddress(t *testing.T) {
	tests := []struct {
		input   string
		wantErr bool
	}{
		{"192.168.1.37", false},
		{"0.0.0.0", false},
		{"255.255.255.255", false},
		{"10.0.0.1", false},
		{"", true},
		{"192.168.1", true},
		{"192.168.1.1.1", true},
		{"192.168.one.1", true},
		{"192.168.1.-1", true},
		{"192.168..1", true},
		{"192.168.1.256", true},
		{"300.1.1.1", true},
		{"192.168.1.99999999999999999999", true},
		{"192.168.01.1", true},
		{" 192.168.1.1", true},
		{"::1", true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			err := ValidateAddress(tt.input)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ValidateAddress(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if err != nil && !IsValidationError(err) {
				t.Errorf("error %v is not a ValidationError", err)
			}
		})
	}
}

func TestValidateSerial(t *testing.T) {
	tests := []struct {
		input   string
		wantErr bool
	}{
		{"00e20100", false},
		{"abcdefgh", false},
		{"", true},
		{"0123456", true},
		{"012345678", true},
		{"ééééàààà", false},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			err := ValidateSerial(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateSerial(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
		})
	}
}

func TestValidationError_Error(t *testing.T) {
	err := ValidateSerial("abc")
	want := `invalid serial "abc": must be exactly 8 characters, got 3`
	if err == nil || err.Error() != want {
		t.Errorf("Error() = %v, want %q", err, want)
	}
}
