package cli

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/customeros/mailposture/internal/logger"
)

func TestParseDomains(t *testing.T) {
	tests := []struct {
		name   string
		values []string
		want   []string
	}{
		{
			name:   "comma separated",
			values: []string{"a.com,b.com"},
			want:   []string{"a.com", "b.com"},
		},
		{
			name:   "repeated flag",
			values: []string{"a.com", "b.com"},
			want:   []string{"a.com", "b.com"},
		},
		{
			name:   "mixed with normalization",
			values: []string{"A.COM, https://www.b.com/about", "c.com"},
			want:   []string{"a.com", "b.com", "c.com"},
		},
		{
			name:   "invalid entries dropped",
			values: []string{"a.com,notadomain,,b.com"},
			want:   []string{"a.com", "b.com"},
		},
		{
			name:   "nothing valid",
			values: []string{"notadomain"},
			want:   nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, parseDomains(tt.values, logger.NewNop()))
		})
	}
}
