package bench

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestRegisteredWorkloadsRoundTrip(t *testing.T) {
	names := List()
	require.Contains(t, names, "scalar-row")
	require.Contains(t, names, "wide-row")

	for _, name := range names {
		w, ok := Build(name)
		require.True(t, ok)
		buf, err := w.EncodeOne()
		require.NoError(t, err)
		require.NoError(t, w.DecodeOne(buf))
	}
}

func TestBuildUnknownWorkload(t *testing.T) {
	_, ok := Build("does-not-exist")
	require.False(t, ok)
}

func BenchmarkScalarRowEncode(b *testing.B) {
	w, _ := Build("scalar-row")
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := w.EncodeOne(); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkWideRowEncode(b *testing.B) {
	w, _ := Build("wide-row")
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := w.EncodeOne(); err != nil {
			b.Fatal(err)
		}
	}
}
