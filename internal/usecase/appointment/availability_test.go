package appointment

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go.uber.org/zap"

	domain "github.com/JeanLimaa/minimal-agendefacil-backend/internal/domain/appointment"
	"github.com/JeanLimaa/minimal-agendefacil-backend/internal/httperr"
)

// 2026-03-10 é uma terça-feira (dia 2)
const tuesday = 2

func availabilityFixture(interval int) (*fakeRepo, *GetAvailability) {
	repo := newFakeRepo()
	repo.seedCompany(1, interval)
	repo.seedWorkingHour(1, tuesday, "08:00", "10:00")

	return repo, NewGetAvailability(repo, nil, zap.NewNop())
}

func TestAvailability_EmptyDayWithoutWorkingHours(t *testing.T) {
	repo := newFakeRepo()
	repo.seedCompany(1, 30)
	uc := NewGetAvailability(repo, nil, zap.NewNop())

	times, err := uc.Execute(context.Background(), 1, dateAt(0, 0), nil)
	require.NoError(t, err)
	assert.Empty(t, times)
}

func TestAvailability_FullGrid(t *testing.T) {
	_, uc := availabilityFixture(30)

	times, err := uc.Execute(context.Background(), 1, dateAt(0, 0), nil)
	require.NoError(t, err)

	assert.Equal(t, []string{"08:00", "08:30", "09:00", "09:30"}, times)
}

func TestAvailability_SlotLengthFollowsRequestedServices(t *testing.T) {
	repo, uc := availabilityFixture(30)
	corte := repo.seedService(1, "Corte", 80, 60, true)

	times, err := uc.Execute(context.Background(), 1, dateAt(0, 0), []uint{corte})
	require.NoError(t, err)

	// slots de 60 min em grade de 30: o último que cabe termina às 10:00
	assert.Equal(t, []string{"08:00", "08:30", "09:00"}, times)
}

func TestAvailability_BusySlotsAreRemoved(t *testing.T) {
	repo, uc := availabilityFixture(30)
	clientID := repo.seedClient(1, "Maria", "11999990000")
	corte := repo.seedService(1, "Corte", 80, 30, true)

	createUC := newCreateUC(repo)
	_, err := createUC.Execute(context.Background(), domain.AdminBooking{
		ClientID:   clientID,
		Date:       dateAt(8, 30),
		ServiceIDs: []uint{corte}, // ocupa 08:30–09:00
	}, domain.RoleAdmin)
	require.NoError(t, err)

	times, err := uc.Execute(context.Background(), 1, dateAt(0, 0), nil)
	require.NoError(t, err)

	assert.Equal(t, []string{"08:00", "09:00", "09:30"}, times)
}

func TestAvailability_CancelledAppointmentFreesSlot(t *testing.T) {
	repo, uc := availabilityFixture(30)
	clientID := repo.seedClient(1, "Maria", "11999990000")
	corte := repo.seedService(1, "Corte", 80, 30, true)

	createUC := newCreateUC(repo)
	ap, err := createUC.Execute(context.Background(), domain.AdminBooking{
		ClientID:   clientID,
		Date:       dateAt(8, 30),
		ServiceIDs: []uint{corte},
	}, domain.RoleAdmin)
	require.NoError(t, err)

	cancelUC := NewCancelAppointment(repo, nil, zap.NewNop())
	_, err = cancelUC.Execute(context.Background(), ap.ID, 1)
	require.NoError(t, err)

	times, err := uc.Execute(context.Background(), 1, dateAt(0, 0), nil)
	require.NoError(t, err)
	assert.Equal(t, []string{"08:00", "08:30", "09:00", "09:30"}, times)
}

func TestAvailability_BlockRemovesSlots(t *testing.T) {
	repo, uc := availabilityFixture(30)

	blockUC, _ := newBlockUCs(repo)
	_, err := blockUC.Execute(context.Background(), 1, dateAt(8, 0), dateAt(9, 0), "")
	require.NoError(t, err)

	times, err := uc.Execute(context.Background(), 1, dateAt(0, 0), nil)
	require.NoError(t, err)
	assert.Equal(t, []string{"09:00", "09:30"}, times)
}

func TestAvailability_DefaultStepWhenIntervalUnset(t *testing.T) {
	_, uc := availabilityFixture(0)

	times, err := uc.Execute(context.Background(), 1, dateAt(0, 0), nil)
	require.NoError(t, err)

	// intervalo não configurado cai no passo padrão de 30 min
	assert.Equal(t, []string{"08:00", "08:30", "09:00", "09:30"}, times)
}

func TestAvailability_InvalidServiceIDs(t *testing.T) {
	_, uc := availabilityFixture(30)

	_, err := uc.Execute(context.Background(), 1, dateAt(0, 0), []uint{999})
	require.Error(t, err)
	assert.True(t, httperr.IsBusiness(err, "no_valid_services"))
}

func TestAvailability_CompanyNotFound(t *testing.T) {
	repo := newFakeRepo()
	uc := NewGetAvailability(repo, nil, zap.NewNop())

	_, err := uc.Execute(context.Background(), 9, dateAt(0, 0), nil)
	require.Error(t, err)
	assert.True(t, httperr.IsBusiness(err, "company_not_found"))
}
