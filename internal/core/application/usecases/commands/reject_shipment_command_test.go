package commands_test

import (
	"testing"

	"freight/internal/core/application/usecases/commands"
	"freight/internal/core/domain/model/kernel"
	"freight/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewRejectShipmentCommand_ValidInput(t *testing.T) {
	shipmentID := kernel.NewUUID()
	actor, err := kernel.NewActor("j.deboer", kernel.RoleOperator)
	require.NoError(t, err)

	cmd, err := commands.NewRejectShipmentCommand(shipmentID, "damaged packaging", actor, true)
	require.NoError(t, err)
	assert.Equal(t, shipmentID, cmd.ShipmentID())
	assert.Equal(t, "damaged packaging", cmd.Reason())
	assert.Equal(t, actor, cmd.Actor())
	assert.True(t, cmd.AutoArchive())
}

func TestNewRejectShipmentCommand_EmptyReason(t *testing.T) {
	actor, err := kernel.NewActor("j.deboer", kernel.RoleOperator)
	require.NoError(t, err)

	_, err = commands.NewRejectShipmentCommand(kernel.NewUUID(), "", actor, false)
	require.Error(t, err)
	assert.ErrorIs(t, err, errs.ErrValueIsRequired)
}

func TestNewRejectShipmentCommand_SupplierRoleDenied(t *testing.T) {
	supplier, err := kernel.NewActor("fresh.blooms", kernel.RoleSupplier)
	require.NoError(t, err)

	_, err = commands.NewRejectShipmentCommand(kernel.NewUUID(), "damaged packaging", supplier, false)
	require.Error(t, err)
	assert.ErrorIs(t, err, kernel.ErrRoleNotPermitted)
}

func TestNewRejectShipmentCommand_InvalidActor(t *testing.T) {
	_, err := commands.NewRejectShipmentCommand(kernel.NewUUID(), "damaged packaging", kernel.Actor{}, false)
	require.Error(t, err)
}

func TestRejectShipmentCommand_Validate_NotConstructed(t *testing.T) {
	var cmd commands.RejectShipmentCommand
	err := cmd.Validate()
	require.Error(t, err)
	assert.ErrorIs(t, err, commands.ErrRejectShipmentCommandIsNotConstructed)
}
