package discovery

import "testing"

func TestDevice_String(t *testing.T) {
	device := &Device{
		Name:     "Vector-A1B2",
		Hostname: "Vector-A1B2.local.",
		IP:       "192.168.1.37",
		Port:     443,
	}

	expected := "Vector-A1B2 (Vector-A1B2.local.) at 192.168.1.37:443"
	if device.String() != expected {
		t.Errorf("Device.String() = %v, want %v", device.String(), expected)
	}
}

func TestDevice_GetMetadata(t *testing.T) {
	tests := []struct {
		name     string
		device   *Device
		key      string
		expected string
	}{
		{
			name:     "existing key",
			device:   &Device{Metadata: map[string]string{"build": "1.8.1"}},
			key:      "build",
			expected: "1.8.1",
		},
		{
			name:     "missing key",
			device:   &Device{Metadata: map[string]string{"build": "1.8.1"}},
			key:      "other",
			expected: "",
		},
		{
			name:     "nil metadata",
			device:   &Device{},
			key:      "build",
			expected: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.device.GetMetadata(tt.key); got != tt.expected {
				t.Errorf("Device.GetMetadata() = %v, want %v", got, tt.expected)
			}
		})
	}
}
