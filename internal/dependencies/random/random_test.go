package random_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/mcoot/scrabblegame-go/internal/dependencies/mocks"
	"github.com/mcoot/scrabblegame-go/internal/dependencies/random"
)

func TestIntnStaysInRange(t *testing.T) {
	r := random.New()
	for i := 0; i < 100; i++ {
		n := r.Intn(7)
		assert.GreaterOrEqual(t, n, 0)
		assert.Less(t, n, 7)
	}
	assert.Equal(t, 0, r.Intn(0))
}

func TestShuffleIsPermutation(t *testing.T) {
	items := []string{"a", "b", "c", "d", "e"}
	random.New().Shuffle(len(items), func(i, j int) { items[i], items[j] = items[j], items[i] })
	assert.ElementsMatch(t, []string{"a", "b", "c", "d", "e"}, items)
}

func TestFisherYatesUsesQueuedIndices(t *testing.T) {
	mock := mocks.NewMockRandom()
	// i=2 swaps with 2, i=1 swaps with 0
	mock.QueueIntn(2, 0)

	items := []string{"a", "b", "c"}
	mock.Shuffle(len(items), func(i, j int) { items[i], items[j] = items[j], items[i] })

	assert.Equal(t, []string{"b", "a", "c"}, items)
	assert.Equal(t, 0, mock.Remaining())
}
