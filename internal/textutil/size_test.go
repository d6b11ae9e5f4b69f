package textutil

import "testing"

func TestHumanSize(t *testing.T) {
	tests := []struct {
		size uint64
		want string
	}{
		{0, "0.00 B"},
		{512, "512.00 B"},
		{1536, "1.50 KiB"},
		{1048576, "1.00 MiB"},
		{5 * 1024 * 1024 * 1024, "5.00 GiB"},
		{3 * 1024 * 1024 * 1024 * 1024, "3.00 TiB"},
	}
	for _, tt := range tests {
		if got := HumanSize(tt.size); got != tt.want {
			t.Errorf("HumanSize(%d) = %q, want %q", tt.size, got, tt.want)
		}
	}
}
