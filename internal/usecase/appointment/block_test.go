package appointment

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go.uber.org/zap"

	domain "github.com/JeanLimaa/minimal-agendefacil-backend/internal/domain/appointment"
	"github.com/JeanLimaa/minimal-agendefacil-backend/internal/httperr"
	"github.com/JeanLimaa/minimal-agendefacil-backend/internal/models"
)

func newBlockUCs(repo *fakeRepo) (*CreateBlock, *DeleteBlock) {
	log := zap.NewNop()
	return NewCreateBlock(repo, nil, log), NewDeleteBlock(repo, nil, log)
}

// --------------------------------------------------
// Create
// --------------------------------------------------

func TestCreateBlock(t *testing.T) {
	repo := newFakeRepo()
	repo.seedCompany(1, 30)
	createUC, _ := newBlockUCs(repo)

	block, err := createUC.Execute(context.Background(), 1, dateAt(12, 0), dateAt(13, 30), "")
	require.NoError(t, err)

	assert.Equal(t, string(domain.StatusConfirmed), block.Status)
	assert.Equal(t, 90, block.DurationMin)
	assert.Equal(t, 0.0, block.SubTotalPrice)
	assert.Equal(t, 0.0, block.TotalPrice)
	assert.Equal(t, domain.BlockDefaultNotes, block.Notes)

	// sentinelas criados sob demanda
	client, err := repo.FindClientByName(context.Background(), 1, domain.BlockClientName)
	require.NoError(t, err)
	require.NotNil(t, client)
	assert.True(t, client.IsBlocked)
	assert.Equal(t, domain.BlockClientPhone, client.Phone)
	assert.Equal(t, client.ID, block.ClientID)

	service, err := repo.FindServiceByName(context.Background(), 1, domain.BlockServiceName)
	require.NoError(t, err)
	require.NotNil(t, service)
	assert.False(t, service.IsActive, "serviço sentinela nunca aparece para clientes")
}

func TestCreateBlock_InvalidRange(t *testing.T) {
	repo := newFakeRepo()
	repo.seedCompany(1, 30)
	createUC, _ := newBlockUCs(repo)

	_, err := createUC.Execute(context.Background(), 1, dateAt(13, 0), dateAt(13, 0), "")
	require.Error(t, err)
	assert.True(t, httperr.IsBusiness(err, "invalid_range"))

	_, err = createUC.Execute(context.Background(), 1, dateAt(13, 0), dateAt(12, 0), "")
	require.Error(t, err)
	assert.True(t, httperr.IsBusiness(err, "invalid_range"))

	assert.Empty(t, repo.appointments)
}

func TestCreateBlock_CompanyNotFound(t *testing.T) {
	repo := newFakeRepo()
	createUC, _ := newBlockUCs(repo)

	_, err := createUC.Execute(context.Background(), 42, dateAt(12, 0), dateAt(13, 0), "")
	require.Error(t, err)
	assert.True(t, httperr.IsBusiness(err, "company_not_found"))
}

func TestCreateBlock_SentinelsAreIdempotent(t *testing.T) {
	repo := newFakeRepo()
	repo.seedCompany(1, 30)
	createUC, _ := newBlockUCs(repo)

	_, err := createUC.Execute(context.Background(), 1, dateAt(12, 0), dateAt(13, 0), "")
	require.NoError(t, err)

	_, err = createUC.Execute(context.Background(), 1, dateAt(15, 0), dateAt(16, 0), "")
	require.NoError(t, err)

	assert.Len(t, repo.clients, 1, "um único cliente sentinela por empresa")
	assert.Len(t, repo.services, 1, "um único serviço sentinela por empresa")
	assert.Len(t, repo.appointments, 2)
}

func TestCreateBlock_SentinelRaceRereads(t *testing.T) {
	repo := newFakeRepo()
	repo.seedCompany(1, 30)

	// outra transação vence a corrida: o insert falha com conflito e o
	// cliente sentinela passa a existir
	repo.onCreateClient = func(_ *models.Client) error {
		repo.clients[77] = models.Client{
			ID:        77,
			CompanyID: 1,
			Name:      domain.BlockClientName,
			Phone:     domain.BlockClientPhone,
			IsBlocked: true,
		}
		return httperr.ErrConflict("client_phone_taken", "Já existe um cliente com este telefone.")
	}

	createUC, _ := newBlockUCs(repo)

	block, err := createUC.Execute(context.Background(), 1, dateAt(12, 0), dateAt(13, 0), "")
	require.NoError(t, err)
	assert.Equal(t, uint(77), block.ClientID, "quem perde a corrida relê o sentinela")
}

func TestCreateBlock_Conflict(t *testing.T) {
	repo := newFakeRepo()
	repo.seedCompany(1, 30)
	createUC, _ := newBlockUCs(repo)

	_, err := createUC.Execute(context.Background(), 1, dateAt(12, 0), dateAt(14, 0), "")
	require.NoError(t, err)

	_, err = createUC.Execute(context.Background(), 1, dateAt(13, 0), dateAt(15, 0), "")
	require.Error(t, err)
	assert.True(t, httperr.IsBusiness(err, "schedule_conflict"))
	assert.Len(t, repo.appointments, 1)
}

// --------------------------------------------------
// Delete
// --------------------------------------------------

func TestDeleteBlock(t *testing.T) {
	repo := newFakeRepo()
	repo.seedCompany(1, 30)
	createUC, deleteUC := newBlockUCs(repo)

	block, err := createUC.Execute(context.Background(), 1, dateAt(12, 0), dateAt(13, 0), "")
	require.NoError(t, err)

	deleted, err := deleteUC.Execute(context.Background(), block.ID, 1)
	require.NoError(t, err)
	assert.Equal(t, block.ID, deleted.ID)
	assert.Empty(t, repo.appointments)
}

func TestDeleteBlock_NotFound(t *testing.T) {
	repo := newFakeRepo()
	_, deleteUC := newBlockUCs(repo)

	_, err := deleteUC.Execute(context.Background(), 99, 1)
	require.Error(t, err)
	assert.True(t, httperr.IsBusiness(err, "block_not_found"))
}

func TestDeleteBlock_RefusesRegularAppointment(t *testing.T) {
	repo, corte, _, clientID := bookingFixture()
	createAp := newCreateUC(repo)
	_, deleteUC := newBlockUCs(repo)

	ap, err := createAp.Execute(context.Background(), domain.AdminBooking{
		ClientID:   clientID,
		Date:       dateAt(10, 0),
		ServiceIDs: []uint{corte},
	}, domain.RoleAdmin)
	require.NoError(t, err)

	_, err = deleteUC.Execute(context.Background(), ap.ID, 1)
	require.Error(t, err)
	assert.True(t, httperr.IsBusiness(err, "not_a_block"))
	assert.Len(t, repo.appointments, 1, "agendamento comum permanece")
}

func TestDeleteBlock_CompanyMismatch(t *testing.T) {
	repo := newFakeRepo()
	repo.seedCompany(1, 30)
	createUC, deleteUC := newBlockUCs(repo)

	block, err := createUC.Execute(context.Background(), 1, dateAt(12, 0), dateAt(13, 0), "")
	require.NoError(t, err)

	_, err = deleteUC.Execute(context.Background(), block.ID, 2)
	require.Error(t, err)
	assert.True(t, httperr.IsBusiness(err, "unauthorized"))
	assert.Len(t, repo.appointments, 1)
}
