package booking

import "github.com/PalcoServices/palco-hire/internal/httperr"

// ===============================
// Booking Status
// ===============================

type Status string

const (
	StatusWaitingConfirmation      Status = "waiting_confirmation"
	StatusWaitingPayment           Status = "waiting_payment"
	StatusWaitingFinalConfirmation Status = "waiting_final_confirmation"
	StatusCompleted                Status = "completed"
	StatusCancelled                Status = "cancelled"
)

// Estados intermediários legados do backend antigo. Nunca são produzidos
// aqui; apenas normalizados na leitura.
const (
	legacyConfirmedByArtist Status = "confirmed_by_artist"
	legacyPaid              Status = "paid"
)

type Role string

const (
	RoleArtist   Role = "artist"
	RoleListener Role = "listener"
)

// ===============================
// Validations
// ===============================

// InitialStatus é o status de toda contratação recém-criada.
func InitialStatus() Status {
	return StatusWaitingConfirmation
}

// Normalize mapeia status legados para o fluxo atual.
func Normalize(s Status) Status {
	switch s {
	case legacyConfirmedByArtist:
		return StatusWaitingPayment
	case legacyPaid:
		return StatusWaitingFinalConfirmation
	}
	return s
}

// CanCreate define quem pode abrir uma contratação.
func CanCreate(actor Role) error {
	if actor != RoleListener {
		return httperr.ErrBusiness("wrong_role")
	}
	return nil
}

// CanAccept define se o artista pode aceitar a contratação.
func CanAccept(actor Role, current Status) error {
	if actor != RoleArtist {
		return httperr.ErrBusiness("wrong_role")
	}
	if Normalize(current) != StatusWaitingConfirmation {
		return httperr.ErrBusiness("invalid_state")
	}
	return nil
}

// CanReject define se o artista pode recusar a contratação.
func CanReject(actor Role, current Status) error {
	if actor != RoleArtist {
		return httperr.ErrBusiness("wrong_role")
	}
	if Normalize(current) != StatusWaitingConfirmation {
		return httperr.ErrBusiness("invalid_state")
	}
	return nil
}

// CanCancel define se o ouvinte pode cancelar. A janela fecha quando o
// pagamento é feito.
func CanCancel(actor Role, current Status) error {
	if actor != RoleListener {
		return httperr.ErrBusiness("wrong_role")
	}
	switch Normalize(current) {
	case StatusWaitingConfirmation, StatusWaitingPayment:
		return nil
	}
	return httperr.ErrBusiness("invalid_state")
}

// CanPay define se o ouvinte pode pagar.
func CanPay(actor Role, current Status) error {
	if actor != RoleListener {
		return httperr.ErrBusiness("wrong_role")
	}
	if Normalize(current) != StatusWaitingPayment {
		return httperr.ErrBusiness("invalid_state")
	}
	return nil
}

// CanConfirmFinal define se a parte pode dar a confirmação final.
// Cada parte confirma no máximo uma vez.
func CanConfirmFinal(actor Role, current Status, alreadyConfirmed bool) error {
	if actor != RoleArtist && actor != RoleListener {
		return httperr.ErrBusiness("wrong_role")
	}
	if Normalize(current) != StatusWaitingFinalConfirmation {
		return httperr.ErrBusiness("invalid_state")
	}
	if alreadyConfirmed {
		return httperr.ErrBusiness("already_confirmed")
	}
	return nil
}
