package booking

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/PalcoServices/palco-hire/internal/httperr"
	"github.com/PalcoServices/palco-hire/internal/models"
)

func newBooking(status Status) *models.Booking {
	return &models.Booking{
		ID:            "bk-1",
		ArtistID:      1,
		ListenerID:    2,
		DurationHours: 3,
		TotalPrice:    TotalPrice(2500, 3),
		Status:        string(status),
	}
}

func TestAccept(t *testing.T) {
	now := time.Now()

	b := newBooking(StatusWaitingConfirmation)
	require.NoError(t, Accept(b, RoleArtist, now))

	assert.Equal(t, string(StatusWaitingPayment), b.Status)
	assert.True(t, b.ArtistConfirmed)

	// segunda tentativa recusa sem alterar nada
	err := Accept(b, RoleArtist, now)
	assert.True(t, httperr.IsBusiness(err, "invalid_state"))
	assert.Equal(t, string(StatusWaitingPayment), b.Status)
}

func TestReject(t *testing.T) {
	now := time.Now()

	b := newBooking(StatusWaitingConfirmation)
	require.NoError(t, Reject(b, RoleArtist, now))

	assert.Equal(t, string(StatusCancelled), b.Status)
	require.NotNil(t, b.CancelledAt)
	assert.Equal(t, now, *b.CancelledAt)
}

func TestCancel(t *testing.T) {
	now := time.Now()

	b := newBooking(StatusWaitingPayment)
	require.NoError(t, Cancel(b, RoleListener, "mudou a data do evento", now))

	assert.Equal(t, string(StatusCancelled), b.Status)
	assert.Equal(t, "mudou a data do evento", b.CancelReason)
	require.NotNil(t, b.CancelledAt)
}

func TestCancelWindowClosesAfterPayment(t *testing.T) {
	b := newBooking(StatusWaitingFinalConfirmation)

	err := Cancel(b, RoleListener, "", time.Now())
	assert.True(t, httperr.IsBusiness(err, "invalid_state"))
	assert.Equal(t, string(StatusWaitingFinalConfirmation), b.Status)
}

func TestMarkPaid(t *testing.T) {
	now := time.Now()

	b := newBooking(StatusWaitingPayment)
	require.NoError(t, MarkPaid(b, RoleListener, now))

	assert.Equal(t, string(StatusWaitingFinalConfirmation), b.Status)
	assert.True(t, b.PaymentDone)
	assert.True(t, b.ListenerConfirmed)

	// preço congelado: pagamento não recalcula nada
	assert.Equal(t, 7500.0, b.TotalPrice)
}

func TestConfirmFinalCompletesOnSecondParty(t *testing.T) {
	now := time.Now()

	b := newBooking(StatusWaitingFinalConfirmation)

	require.NoError(t, ConfirmFinal(b, RoleListener, now))
	assert.Equal(t, string(StatusWaitingFinalConfirmation), b.Status)
	assert.True(t, b.ListenerFinalConfirmed)
	assert.Nil(t, b.CompletedAt)

	// mesma parte não confirma duas vezes
	err := ConfirmFinal(b, RoleListener, now)
	assert.True(t, httperr.IsBusiness(err, "already_confirmed"))

	// segunda parte conclui
	require.NoError(t, ConfirmFinal(b, RoleArtist, now))
	assert.Equal(t, string(StatusCompleted), b.Status)
	require.NotNil(t, b.CompletedAt)
}

func TestConfirmFinalOrderDoesNotMatter(t *testing.T) {
	now := time.Now()

	b := newBooking(StatusWaitingFinalConfirmation)

	require.NoError(t, ConfirmFinal(b, RoleArtist, now))
	assert.Equal(t, string(StatusWaitingFinalConfirmation), b.Status)

	require.NoError(t, ConfirmFinal(b, RoleListener, now))
	assert.Equal(t, string(StatusCompleted), b.Status)
}

func TestTotalPrice(t *testing.T) {
	assert.Equal(t, 7500.0, TotalPrice(2500, 3))
	assert.Equal(t, 2500.0, TotalPrice(2500, 1))
}

func TestValidateCreate(t *testing.T) {
	assert.NoError(t, ValidateCreate(1, 2, 300))

	assert.True(t, httperr.IsBusiness(ValidateCreate(0, 2, 300), "artist_required"))
	assert.True(t, httperr.IsBusiness(ValidateCreate(1, 0, 300), "invalid_duration"))
	assert.True(t, httperr.IsBusiness(ValidateCreate(1, 2, 0), "invalid_price"))
}
