package supplier_test

import (
	"testing"

	"freight/internal/core/domain/model/kernel"
	"freight/internal/core/domain/model/supplier"
	"freight/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewSupplier(t *testing.T) {
	t.Run("should create supplier", func(t *testing.T) {
		id := kernel.NewUUID()
		s, err := supplier.NewSupplier(id, "Acme Electronics Ltd")

		require.NoError(t, err)
		assert.Equal(t, id, s.ID())
		assert.Equal(t, "Acme Electronics Ltd", s.Name())
		require.NoError(t, s.Validate())
	})

	t.Run("should require a valid identifier", func(t *testing.T) {
		_, err := supplier.NewSupplier(kernel.UUID{}, "Acme Electronics Ltd")
		require.Error(t, err)
		assert.ErrorIs(t, err, kernel.ErrUUIDIsNotConstructed)
	})

	t.Run("should require a name", func(t *testing.T) {
		_, err := supplier.NewSupplier(kernel.NewUUID(), "")
		require.Error(t, err)
		assert.ErrorIs(t, err, errs.ErrValueIsRequired)
	})
}

func TestSupplier_IsEqual(t *testing.T) {
	id := kernel.NewUUID()
	s1, err := supplier.NewSupplier(id, "Acme Electronics Ltd")
	require.NoError(t, err)
	s2, err := supplier.RestoreSupplier(id, "Acme Electronics Limited")
	require.NoError(t, err)
	s3, err := supplier.NewSupplier(kernel.NewUUID(), "Acme Electronics Ltd")
	require.NoError(t, err)

	assert.True(t, s1.IsEqual(s2))
	assert.False(t, s1.IsEqual(s3))
	assert.False(t, s1.IsEqual(nil))
}

func TestSupplier_Validate_NotConstructed(t *testing.T) {
	var s supplier.Supplier
	err := s.Validate()
	require.Error(t, err)
	assert.ErrorIs(t, err, supplier.ErrSupplierIsNotConstructed)
}
