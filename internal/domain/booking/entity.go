package booking

import (
	"time"

	"github.com/PalcoServices/palco-hire/internal/models"
)

// ===============================
// Domain Actions
// ===============================

func Accept(b *models.Booking, actor Role, now time.Time) error {
	if err := CanAccept(actor, Status(b.Status)); err != nil {
		return err
	}

	b.Status = string(StatusWaitingPayment)
	b.ArtistConfirmed = true
	return nil
}

func Reject(b *models.Booking, actor Role, now time.Time) error {
	if err := CanReject(actor, Status(b.Status)); err != nil {
		return err
	}

	b.Status = string(StatusCancelled)
	b.CancelledAt = &now
	return nil
}

func Cancel(b *models.Booking, actor Role, reason string, now time.Time) error {
	if err := CanCancel(actor, Status(b.Status)); err != nil {
		return err
	}

	b.Status = string(StatusCancelled)
	b.CancelReason = reason
	b.CancelledAt = &now
	return nil
}

// MarkPaid registra o pagamento confirmado e avança para a fase de
// confirmação final. Só é chamado depois do processador de pagamento
// sinalizar sucesso.
func MarkPaid(b *models.Booking, actor Role, now time.Time) error {
	if err := CanPay(actor, Status(b.Status)); err != nil {
		return err
	}

	b.Status = string(StatusWaitingFinalConfirmation)
	b.PaymentDone = true
	b.ListenerConfirmed = true
	return nil
}

// ConfirmFinal marca a confirmação final da parte que agiu. A contratação
// só é concluída quando as duas partes confirmaram.
func ConfirmFinal(b *models.Booking, actor Role, now time.Time) error {
	already := false
	switch actor {
	case RoleArtist:
		already = b.ArtistFinalConfirmed
	case RoleListener:
		already = b.ListenerFinalConfirmed
	}

	if err := CanConfirmFinal(actor, Status(b.Status), already); err != nil {
		return err
	}

	switch actor {
	case RoleArtist:
		b.ArtistFinalConfirmed = true
	case RoleListener:
		b.ListenerFinalConfirmed = true
	}

	if FinalState(b).Both() {
		b.Status = string(StatusCompleted)
		b.CompletedAt = &now
	}

	return nil
}

// ===============================
// Final confirmation view
// ===============================

// FinalConfirmation torna "as duas partes confirmaram" verificável
// estruturalmente em vez de por convenção sobre dois booleans soltos.
type FinalConfirmation struct {
	Listener bool
	Artist   bool
}

func FinalState(b *models.Booking) FinalConfirmation {
	return FinalConfirmation{
		Listener: b.ListenerFinalConfirmed,
		Artist:   b.ArtistFinalConfirmed,
	}
}

func (f FinalConfirmation) Both() bool {
	return f.Listener && f.Artist
}
