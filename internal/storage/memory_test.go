package storage

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemorySlot(t *testing.T) {
	ctx := context.Background()

	t.Run("unwritten key reports no data", func(t *testing.T) {
		slot := NewMemorySlot()
		_, err := slot.Load(ctx, "catalog:s1")
		assert.ErrorIs(t, err, ErrNoData)
	})

	t.Run("save then load round trips", func(t *testing.T) {
		slot := NewMemorySlot()
		require.NoError(t, slot.Save(ctx, "catalog:s1", []byte(`[{"id":"p1"}]`)))

		payload, err := slot.Load(ctx, "catalog:s1")
		require.NoError(t, err)
		assert.Equal(t, `[{"id":"p1"}]`, string(payload))
	})

	t.Run("keys are independent", func(t *testing.T) {
		slot := NewMemorySlot()
		require.NoError(t, slot.Save(ctx, "catalog:s1", []byte(`[]`)))

		_, err := slot.Load(ctx, "catalog:s2")
		assert.ErrorIs(t, err, ErrNoData)
	})

	t.Run("loaded payload is a copy", func(t *testing.T) {
		slot := NewMemorySlot()
		require.NoError(t, slot.Save(ctx, "catalog:s1", []byte(`abc`)))

		payload, err := slot.Load(ctx, "catalog:s1")
		require.NoError(t, err)
		payload[0] = 'x'

		again, err := slot.Load(ctx, "catalog:s1")
		require.NoError(t, err)
		assert.Equal(t, "abc", string(again))
	})
}
