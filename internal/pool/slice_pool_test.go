package pool

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/pixelgram/pxg/quant"
)

func TestGetSymbolSlice(t *testing.T) {
	t.Run("returns slice with correct size", func(t *testing.T) {
		slice, cleanup := GetSymbolSlice(100)
		defer cleanup()

		require.Len(t, slice, 100)
		require.GreaterOrEqual(t, cap(slice), 100)
	})

	t.Run("reuses pooled slice when capacity sufficient", func(t *testing.T) {
		slice1, cleanup1 := GetSymbolSlice(50)
		ptr1 := &slice1[0]
		cleanup1()

		slice2, cleanup2 := GetSymbolSlice(50)
		defer cleanup2()
		ptr2 := &slice2[0]

		require.Equal(t, ptr1, ptr2, "should reuse same underlying array")
	})

	t.Run("allocates new slice when capacity insufficient", func(t *testing.T) {
		_, cleanup1 := GetSymbolSlice(10)
		cleanup1()

		slice2, cleanup2 := GetSymbolSlice(1000)
		defer cleanup2()

		require.Len(t, slice2, 1000)
		require.GreaterOrEqual(t, cap(slice2), 1000)
	})

	t.Run("slice is writable", func(t *testing.T) {
		slice, cleanup := GetSymbolSlice(8)
		defer cleanup()

		for i := range slice {
			slice[i] = quant.Data(i)
		}
		idx, ok := slice[7].Index()
		require.True(t, ok)
		require.Equal(t, 7, idx)
	})
}

func TestGetByteSlice(t *testing.T) {
	t.Run("returns slice with correct size", func(t *testing.T) {
		slice, cleanup := GetByteSlice(256)
		defer cleanup()

		require.Len(t, slice, 256)
		require.GreaterOrEqual(t, cap(slice), 256)
	})

	t.Run("reuses pooled slice when capacity sufficient", func(t *testing.T) {
		slice1, cleanup1 := GetByteSlice(64)
		ptr1 := &slice1[0]
		cleanup1()

		slice2, cleanup2 := GetByteSlice(64)
		defer cleanup2()
		ptr2 := &slice2[0]

		require.Equal(t, ptr1, ptr2, "should reuse same underlying array")
	})
}

func TestSlicePoolConcurrency(t *testing.T) {
	t.Run("concurrent access to symbol pool", func(t *testing.T) {
		const goroutines = 100
		done := make(chan bool, goroutines)

		for i := 0; i < goroutines; i++ {
			go func() {
				slice, cleanup := GetSymbolSlice(50)
				defer cleanup()

				for j := range slice {
					slice[j] = quant.Filler()
				}

				done <- true
			}()
		}

		for i := 0; i < goroutines; i++ {
			<-done
		}
	})

	t.Run("concurrent access to byte pool", func(t *testing.T) {
		const goroutines = 100
		done := make(chan bool, goroutines)

		for i := 0; i < goroutines; i++ {
			go func() {
				slice, cleanup := GetByteSlice(50)
				defer cleanup()

				for j := range slice {
					slice[j] = byte(j)
				}

				done <- true
			}()
		}

		for i := 0; i < goroutines; i++ {
			<-done
		}
	})
}
