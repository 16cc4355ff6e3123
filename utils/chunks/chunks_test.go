package chunks

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSplit(t *testing.T) {
	t.Run("even split", func(t *testing.T) {
		result := Split([]int{1, 2, 3, 4}, 2)
		require.Equal(t, [][]int{{1, 2}, {3, 4}}, result)
	})

	t.Run("uneven tail", func(t *testing.T) {
		result := Split([]string{"a", "b", "c"}, 2)
		require.Equal(t, [][]string{{"a", "b"}, {"c"}}, result)
	})

	t.Run("chunk larger than input", func(t *testing.T) {
		result := Split([]int{1, 2}, 100)
		require.Equal(t, [][]int{{1, 2}}, result)
	})

	t.Run("empty input", func(t *testing.T) {
		require.Empty(t, Split([]int{}, 10))
	})
}
