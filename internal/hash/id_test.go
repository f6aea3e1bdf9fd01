package hash

import (
	"math/rand"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestSum(t *testing.T) {
	tests := []struct {
		name string
		data []byte
		sum  uint64
	}{
		{"empty", nil, 0xef46db3751d8e999},
		{"short", []byte("test"), 0x4fdcca5ddb678139},
		{"long", []byte("this is a longer test string to hash"), 0x69275f7f7ee59dbd},
		{"another", []byte("another test string"), 0x212a22f593810bec},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.sum, Sum(tt.data))
		})
	}
}

func TestSumBinaryStability(t *testing.T) {
	data := make([]byte, 256)
	for i := range data {
		data[i] = byte(i)
	}

	assert.Equal(t, Sum(data), Sum(append([]byte(nil), data...)))

	mutated := append([]byte(nil), data...)
	mutated[128] ^= 0x01
	assert.NotEqual(t, Sum(data), Sum(mutated))
}

func randBytes(n int) []byte {
	b := make([]byte, n)
	seededRand := rand.New(rand.NewSource(time.Now().UnixNano()))
	for i := range b {
		b[i] = byte(seededRand.Intn(256))
	}

	return b
}

func BenchmarkSum(b *testing.B) {
	data := randBytes(4096)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		Sum(data)
	}
}
