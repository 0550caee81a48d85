package queries_test

import (
	"testing"

	"freight/internal/core/application/usecases/queries"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewGetActiveShipmentsQuery_Valid(t *testing.T) {
	query := queries.NewGetActiveShipmentsQuery()
	err := query.Validate()
	require.NoError(t, err)
}

func TestGetActiveShipmentsQuery_NotConstructedViaConstructor(t *testing.T) {
	query := queries.GetActiveShipmentsQuery{}
	err := query.Validate()
	require.Error(t, err)
	assert.ErrorIs(t, err, queries.ErrGetActiveShipmentsQueryIsNotConstructed)
}
