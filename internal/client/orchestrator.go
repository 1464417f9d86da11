package client

import (
	"context"
	"errors"
	"sync"

	"go.uber.org/zap"

	domain "github.com/PalcoServices/palco-hire/internal/domain/booking"
	"github.com/PalcoServices/palco-hire/internal/httperr"
	"github.com/PalcoServices/palco-hire/internal/models"
	"github.com/PalcoServices/palco-hire/internal/payment"
)

// Actor identifica quem opera o orquestrador nesta sessão.
type Actor struct {
	UserID uint
	Role   domain.Role
}

// Orchestrator dirige o ciclo de vida das contratações do lado do cliente:
// valida papel e estado antes de qualquer chamada remota, chama o Booking
// Store e reconcilia a coleção em cache com a resposta autoritativa.
//
// A coleção em cache é propriedade exclusiva do orquestrador; a camada de
// apresentação só lê snapshots. Depois de cada mutação bem-sucedida a
// coleção inteira é recarregada do servidor em vez de remendada localmente.
type Orchestrator struct {
	store  Store
	actor  Actor
	sim    *payment.Simulator
	logger *zap.Logger

	mu       sync.Mutex
	bookings []models.Booking
	busy     map[string]bool
	lastErr  map[string]error
}

func NewOrchestrator(
	store Store,
	actor Actor,
	sim *payment.Simulator,
	logger *zap.Logger,
) *Orchestrator {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Orchestrator{
		store:   store,
		actor:   actor,
		sim:     sim,
		logger:  logger,
		busy:    make(map[string]bool),
		lastErr: make(map[string]error),
	}
}

// ======================================================
// Cached collection (read side)
// ======================================================

// Refresh recarrega a coleção inteira do servidor.
func (o *Orchestrator) Refresh(ctx context.Context) error {
	bs, err := o.store.List(ctx)
	if err != nil {
		return err
	}

	for i := range bs {
		bs[i].Status = string(domain.Normalize(domain.Status(bs[i].Status)))
	}

	o.mu.Lock()
	o.bookings = bs
	o.mu.Unlock()

	return nil
}

// Bookings devolve um snapshot da coleção em cache.
func (o *Orchestrator) Bookings() []models.Booking {
	o.mu.Lock()
	defer o.mu.Unlock()

	out := make([]models.Booking, len(o.bookings))
	copy(out, o.bookings)
	return out
}

// Booking devolve uma contratação do cache, se presente.
func (o *Orchestrator) Booking(id string) (models.Booking, bool) {
	o.mu.Lock()
	defer o.mu.Unlock()

	for _, b := range o.bookings {
		if b.ID == id {
			return b, true
		}
	}
	return models.Booking{}, false
}

// Filter é uma função pura sobre o cache; não dispara consulta remota.
func (o *Orchestrator) Filter(status domain.Status) []models.Booking {
	o.mu.Lock()
	defer o.mu.Unlock()

	var out []models.Booking
	for _, b := range o.bookings {
		if domain.Status(b.Status) == status {
			out = append(out, b)
		}
	}
	return out
}

// GroupByStatus agrupa o snapshot atual por status, para exibição.
func (o *Orchestrator) GroupByStatus() map[domain.Status][]models.Booking {
	o.mu.Lock()
	defer o.mu.Unlock()

	out := make(map[domain.Status][]models.Booking)
	for _, b := range o.bookings {
		s := domain.Status(b.Status)
		out[s] = append(out[s], b)
	}
	return out
}

// Busy informa se há operação em andamento para a contratação.
func (o *Orchestrator) Busy(id string) bool {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.busy[id]
}

// LastError devolve o último erro da contratação, ou nil.
func (o *Orchestrator) LastError(id string) error {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.lastErr[id]
}

// ======================================================
// Transitions
// ======================================================

func (o *Orchestrator) CreateBooking(
	ctx context.Context,
	req CreateBookingRequest,
) (*models.Booking, error) {

	if err := domain.CanCreate(o.actor.Role); err != nil {
		return nil, err
	}
	if req.ArtistID == 0 {
		return nil, httperr.ErrBusiness("artist_required")
	}
	if req.DurationHours < 1 {
		return nil, httperr.ErrBusiness("invalid_duration")
	}

	created, err := o.store.Create(ctx, req)
	if err != nil {
		return nil, err
	}

	o.refreshAfterMutation(ctx, "create")
	return created, nil
}

func (o *Orchestrator) Accept(ctx context.Context, id string) (*models.Booking, error) {
	return o.transition(ctx, id, "accept",
		func(b models.Booking) error {
			return domain.CanAccept(o.actor.Role, domain.Status(b.Status))
		},
		func(ctx context.Context) (*models.Booking, error) {
			return o.store.Accept(ctx, id)
		},
	)
}

func (o *Orchestrator) Reject(ctx context.Context, id string) (*models.Booking, error) {
	return o.transition(ctx, id, "reject",
		func(b models.Booking) error {
			return domain.CanReject(o.actor.Role, domain.Status(b.Status))
		},
		func(ctx context.Context) (*models.Booking, error) {
			return o.store.Reject(ctx, id)
		},
	)
}

func (o *Orchestrator) Cancel(ctx context.Context, id string, reason string) (*models.Booking, error) {
	return o.transition(ctx, id, "cancel",
		func(b models.Booking) error {
			return domain.CanCancel(o.actor.Role, domain.Status(b.Status))
		},
		func(ctx context.Context) (*models.Booking, error) {
			return o.store.Cancel(ctx, id, reason)
		},
	)
}

func (o *Orchestrator) ConfirmFinal(ctx context.Context, id string) (*models.Booking, error) {
	return o.transition(ctx, id, "final-confirm",
		func(b models.Booking) error {
			already := b.ListenerFinalConfirmed
			if o.actor.Role == domain.RoleArtist {
				already = b.ArtistFinalConfirmed
			}
			return domain.CanConfirmFinal(o.actor.Role, domain.Status(b.Status), already)
		},
		func(ctx context.Context) (*models.Booking, error) {
			return o.store.ConfirmFinal(ctx, id)
		},
	)
}

// ======================================================
// Pay (simulador aninhado)
// ======================================================

type PayResult struct {
	Outcome payment.Outcome
	Booking *models.Booking // preenchido apenas no sucesso
}

// Pay roda o simulador de pagamento e, somente no sucesso, dispara a
// transição remota exatamente uma vez. Abandono (ctx cancelado antes da
// conclusão) não é erro: nenhuma transição acontece e a contratação
// permanece aguardando pagamento.
func (o *Orchestrator) Pay(
	ctx context.Context,
	id string,
	onProgress func(pct float64),
) (*PayResult, error) {

	b, err := o.begin(id, func(b models.Booking) error {
		return domain.CanPay(o.actor.Role, domain.Status(b.Status))
	})
	if err != nil {
		return nil, err
	}
	defer o.end(id)

	proc := o.sim.Start(b.TotalPrice)
	defer proc.Close()

	for {
		select {
		case <-ctx.Done():
			proc.Close()
			o.logger.Info("payment abandoned",
				zap.String("booking_id", id),
			)
			return &PayResult{Outcome: payment.OutcomeAbandoned}, nil

		case pct := <-proc.Progress():
			if onProgress != nil {
				onProgress(pct)
			}

		case out := <-proc.Outcome():
			switch out {
			case payment.OutcomeSuccess:
				updated, err := o.store.Pay(ctx, id)
				if err != nil {
					o.handleRemoteFailure(ctx, id, "pay", err)
					return nil, err
				}
				o.recordError(id, nil)
				o.refreshAfterMutation(ctx, "pay")
				return &PayResult{Outcome: out, Booking: updated}, nil

			case payment.OutcomeFailed:
				o.recordError(id, httperr.ErrBusiness("payment_failed"))
				return &PayResult{Outcome: out}, nil

			default: // abandoned
				return &PayResult{Outcome: out}, nil
			}
		}
	}
}

// ======================================================
// Internals
// ======================================================

// transition executa uma operação remota com guarda local prévia. A guarda
// é só fast-fail: a decisão final é sempre do servidor, e uma recusa
// remota força recarga do estado autoritativo.
func (o *Orchestrator) transition(
	ctx context.Context,
	id string,
	action string,
	guard func(b models.Booking) error,
	call func(ctx context.Context) (*models.Booking, error),
) (*models.Booking, error) {

	if _, err := o.begin(id, guard); err != nil {
		return nil, err
	}
	defer o.end(id)

	updated, err := call(ctx)
	if err != nil {
		o.handleRemoteFailure(ctx, id, action, err)
		return nil, err
	}

	o.recordError(id, nil)
	o.refreshAfterMutation(ctx, action)
	return updated, nil
}

// begin valida a guarda local e marca a contratação como ocupada. Nenhuma
// chamada remota acontece se a guarda recusar.
func (o *Orchestrator) begin(
	id string,
	guard func(b models.Booking) error,
) (models.Booking, error) {

	o.mu.Lock()
	defer o.mu.Unlock()

	var found *models.Booking
	for i := range o.bookings {
		if o.bookings[i].ID == id {
			found = &o.bookings[i]
			break
		}
	}
	if found == nil {
		return models.Booking{}, httperr.ErrBusiness("booking_not_found")
	}

	if o.busy[id] {
		return models.Booking{}, httperr.ErrBusiness("action_in_progress")
	}

	if err := guard(*found); err != nil {
		o.lastErr[id] = err
		return models.Booking{}, err
	}

	o.busy[id] = true
	return *found, nil
}

func (o *Orchestrator) end(id string) {
	o.mu.Lock()
	delete(o.busy, id)
	o.mu.Unlock()
}

func (o *Orchestrator) recordError(id string, err error) {
	o.mu.Lock()
	if err == nil {
		delete(o.lastErr, id)
	} else {
		o.lastErr[id] = err
	}
	o.mu.Unlock()
}

// handleRemoteFailure registra o erro e, se foi a guarda do servidor que
// recusou (estado local obsoleto), força a recarga da coleção.
func (o *Orchestrator) handleRemoteFailure(ctx context.Context, id, action string, err error) {
	o.recordError(id, err)

	var re *RemoteError
	if errors.As(err, &re) {
		o.logger.Warn("remote store rejected transition",
			zap.String("booking_id", id),
			zap.String("action", action),
			zap.String("code", re.Code),
		)
		if rerr := o.Refresh(ctx); rerr != nil {
			o.logger.Warn("refresh after rejection failed", zap.Error(rerr))
		}
		return
	}

	o.logger.Warn("transition failed",
		zap.String("booking_id", id),
		zap.String("action", action),
		zap.Error(err),
	)
}

func (o *Orchestrator) refreshAfterMutation(ctx context.Context, action string) {
	if err := o.Refresh(ctx); err != nil {
		// a transição já foi aplicada no servidor; o cache só fica
		// defasado até a próxima recarga
		o.logger.Warn("refresh after mutation failed",
			zap.String("action", action),
			zap.Error(err),
		)
	}
}
