package vehicle

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-DetailingBooking/internal/domain"
	"github.com/m04kA/SMC-DetailingBooking/internal/infra/storage/storagetest"
	"github.com/m04kA/SMC-DetailingBooking/pkg/ptr"
)

func TestRepository_CreateIfAbsent(t *testing.T) {
	db := storagetest.NewDB(t)
	repo := NewRepository(db, storagetest.Builder())
	ctx := context.Background()
	now := time.Date(2026, 6, 1, 8, 0, 0, 0, time.UTC)

	customerID, existingID := storagetest.SeedCustomerVehicle(t, db, "a@example.com", "AB12CDE")

	same, err := repo.CreateIfAbsent(ctx, &domain.Vehicle{
		CustomerID: customerID, Registration: "AB12CDE", Make: "Tesla", Model: "3", Size: domain.VehicleMedium, CreatedAt: now,
	})
	require.NoError(t, err)
	assert.Equal(t, existingID, same.ID)
	assert.Equal(t, "Ford", same.Make)

	created, err := repo.CreateIfAbsent(ctx, &domain.Vehicle{
		CustomerID: customerID, Registration: "XY34ZZZ", Make: "VW", Model: "Transporter",
		Colour: ptr.Ptr("white"), Size: domain.VehicleVan, CreatedAt: now,
	})
	require.NoError(t, err)
	assert.NotEqual(t, existingID, created.ID)

	got, err := repo.GetByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.VehicleVan, got.Size)
	assert.Equal(t, "white", *got.Colour)

	_, err = repo.GetByRegistration(ctx, customerID, "NOPE")
	assert.ErrorIs(t, err, ErrVehicleNotFound)
}
