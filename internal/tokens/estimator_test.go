package tokens

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEstimate(t *testing.T) {
	tests := []struct {
		name string
		text string
		want int
	}{
		{"empty", "", 0},
		{"single short word", "hi", 1},
		{"four chars one token", "abcd", 1},
		{"char-dominated", strings.Repeat("x", 40), 10},
		{"word-dominated", "a b c d e f", 8}, // 6 words * 4/3
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Estimate(tt.text))
		})
	}
}

func TestEstimateGrowsWithInput(t *testing.T) {
	small := Estimate("func main() {}\n")
	large := Estimate(strings.Repeat("func main() {}\n", 100))
	assert.Greater(t, large, small*50)
}
