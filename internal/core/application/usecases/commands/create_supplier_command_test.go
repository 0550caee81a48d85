package commands_test

import (
	"testing"

	"freight/internal/core/application/usecases/commands"
	"freight/internal/core/domain/model/kernel"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewCreateSupplierCommand_ValidInput(t *testing.T) {
	id := kernel.NewUUID()
	cmd, err := commands.NewCreateSupplierCommand(id, "Acme Electronics Ltd")
	require.NoError(t, err)
	assert.Equal(t, id, cmd.SupplierID())
	assert.Equal(t, "Acme Electronics Ltd", cmd.Name())
}

func TestNewCreateSupplierCommand_InvalidSupplierID(t *testing.T) {
	invalidID := kernel.UUID{} // zero value, should trigger validation error
	_, err := commands.NewCreateSupplierCommand(invalidID, "Acme Electronics Ltd")
	require.Error(t, err)
	assert.ErrorIs(t, err, kernel.ErrUUIDIsNotConstructed)
}

func TestNewCreateSupplierCommand_EmptyName(t *testing.T) {
	id := kernel.NewUUID()
	_, err := commands.NewCreateSupplierCommand(id, "")
	require.Error(t, err)
	assert.ErrorIs(t, err, commands.ErrSupplierNameIsRequired)
}

func TestCreateSupplierCommand_Validate_NotConstructed(t *testing.T) {
	var cmd commands.CreateSupplierCommand
	err := cmd.Validate()
	require.Error(t, err)
	assert.ErrorIs(t, err, commands.ErrCreateSupplierCommandIsNotConstructed)
}
