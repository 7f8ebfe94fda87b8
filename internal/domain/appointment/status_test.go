package appointment

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/JeanLimaa/minimal-agendefacil-backend/internal/httperr"
	"github.com/JeanLimaa/minimal-agendefacil-backend/internal/models"
)

func TestComplete_OnlyFromPending(t *testing.T) {
	ap := &models.Appointment{Status: string(StatusPending)}

	require.NoError(t, Complete(ap))
	assert.Equal(t, string(StatusCompleted), ap.Status)

	// estados finais são imutáveis
	for _, status := range []Status{StatusConfirmed, StatusCancelled, StatusCompleted} {
		ap := &models.Appointment{Status: string(status)}

		err := Complete(ap)
		require.Error(t, err)
		assert.True(t, httperr.IsBusiness(err, "invalid_state"))
		assert.Equal(t, string(status), ap.Status, "status não deve mudar em transição inválida")
	}
}

func TestCancel_OnlyFromPending(t *testing.T) {
	ap := &models.Appointment{Status: string(StatusPending)}

	require.NoError(t, Cancel(ap))
	assert.Equal(t, string(StatusCancelled), ap.Status)

	for _, status := range []Status{StatusConfirmed, StatusCancelled, StatusCompleted} {
		ap := &models.Appointment{Status: string(status)}

		err := Cancel(ap)
		require.Error(t, err)
		assert.True(t, httperr.IsBusiness(err, "invalid_state"))
		assert.Equal(t, string(status), ap.Status)
	}
}

func TestTranslate(t *testing.T) {
	assert.Equal(t, "Pendente", Translate(StatusPending))
	assert.Equal(t, "Confirmado", Translate(StatusConfirmed))
	assert.Equal(t, "Cancelado", Translate(StatusCancelled))
	assert.Equal(t, "Concluído", Translate(StatusCompleted))

	// status desconhecido passa cru
	assert.Equal(t, "WHATEVER", Translate(Status("WHATEVER")))
}

func TestCanApplyDiscount(t *testing.T) {
	assert.True(t, CanApplyDiscount(RoleAdmin))
	assert.True(t, CanApplyDiscount(RoleEmployee))
	assert.False(t, CanApplyDiscount(RoleClient))
	assert.False(t, CanApplyDiscount(""))
}

func TestIsBlock(t *testing.T) {
	block := &models.Appointment{Client: models.Client{Name: BlockClientName}}
	regular := &models.Appointment{Client: models.Client{Name: "Maria"}}

	assert.True(t, IsBlock(block))
	assert.False(t, IsBlock(regular))
	assert.False(t, IsBlock(nil))
}
