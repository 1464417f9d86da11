package client

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domain "github.com/PalcoServices/palco-hire/internal/domain/booking"
	"github.com/PalcoServices/palco-hire/internal/httperr"
	"github.com/PalcoServices/palco-hire/internal/models"
	"github.com/PalcoServices/palco-hire/internal/payment"
)

// ======================================================
// FAKE STORE
// ======================================================

type fakeStore struct {
	mu sync.Mutex

	bookings []models.Booking

	createCalls  int
	listCalls    int
	acceptCalls  int
	rejectCalls  int
	payCalls     int
	confirmCalls int
	cancelCalls  int

	// erro a devolver na próxima transição, se definido
	nextErr error
}

func (f *fakeStore) find(id string) *models.Booking {
	for i := range f.bookings {
		if f.bookings[i].ID == id {
			return &f.bookings[i]
		}
	}
	return nil
}

func (f *fakeStore) Create(ctx context.Context, in CreateBookingRequest) (*models.Booking, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.createCalls++
	if f.nextErr != nil {
		return nil, f.nextErr
	}
	b := models.Booking{
		ID:         "bk-new",
		ArtistID:   in.ArtistID,
		Status:     string(domain.StatusWaitingConfirmation),
		TotalPrice: 7500,
	}
	f.bookings = append(f.bookings, b)
	return &b, nil
}

func (f *fakeStore) List(ctx context.Context) ([]models.Booking, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.listCalls++
	out := make([]models.Booking, len(f.bookings))
	copy(out, f.bookings)
	return out, nil
}

func (f *fakeStore) transition(calls *int, id string, to domain.Status) (*models.Booking, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	*calls++
	if f.nextErr != nil {
		return nil, f.nextErr
	}
	b := f.find(id)
	if b == nil {
		return nil, &RemoteError{Status: 404, Code: "booking_not_found"}
	}
	b.Status = string(to)
	out := *b
	return &out, nil
}

func (f *fakeStore) Accept(ctx context.Context, id string) (*models.Booking, error) {
	return f.transition(&f.acceptCalls, id, domain.StatusWaitingPayment)
}

func (f *fakeStore) Reject(ctx context.Context, id string) (*models.Booking, error) {
	return f.transition(&f.rejectCalls, id, domain.StatusCancelled)
}

func (f *fakeStore) Pay(ctx context.Context, id string) (*models.Booking, error) {
	return f.transition(&f.payCalls, id, domain.StatusWaitingFinalConfirmation)
}

func (f *fakeStore) ConfirmFinal(ctx context.Context, id string) (*models.Booking, error) {
	return f.transition(&f.confirmCalls, id, domain.StatusCompleted)
}

func (f *fakeStore) Cancel(ctx context.Context, id string, reason string) (*models.Booking, error) {
	return f.transition(&f.cancelCalls, id, domain.StatusCancelled)
}

var _ Store = (*fakeStore)(nil)

// ======================================================
// HELPERS
// ======================================================

func fastSimulator() *payment.Simulator {
	s := payment.NewSimulator(nil)
	s.MinDuration = 50 * time.Millisecond
	s.MaxDuration = 50 * time.Millisecond
	s.Tick = 10 * time.Millisecond
	s.Linger = 10 * time.Millisecond
	s.RandInt = func(n int) int { return 0 }
	return s
}

func newListenerOrchestrator(t *testing.T, store *fakeStore) *Orchestrator {
	t.Helper()

	o := NewOrchestrator(store, Actor{UserID: 2, Role: domain.RoleListener}, fastSimulator(), nil)
	require.NoError(t, o.Refresh(context.Background()))
	return o
}

func newArtistOrchestrator(t *testing.T, store *fakeStore) *Orchestrator {
	t.Helper()

	o := NewOrchestrator(store, Actor{UserID: 1, Role: domain.RoleArtist}, fastSimulator(), nil)
	require.NoError(t, o.Refresh(context.Background()))
	return o
}

func storeWith(status domain.Status) *fakeStore {
	return &fakeStore{
		bookings: []models.Booking{
			{
				ID:         "bk-1",
				ArtistID:   1,
				ListenerID: 2,
				Status:     string(status),
				TotalPrice: 7500,
			},
		},
	}
}

// ======================================================
// READ SIDE
// ======================================================

func TestRefreshNormalizesLegacyStatuses(t *testing.T) {
	store := &fakeStore{
		bookings: []models.Booking{
			{ID: "bk-1", Status: "confirmed_by_artist"},
			{ID: "bk-2", Status: "paid"},
		},
	}

	o := newListenerOrchestrator(t, store)

	b, ok := o.Booking("bk-1")
	require.True(t, ok)
	assert.Equal(t, string(domain.StatusWaitingPayment), b.Status)

	b, ok = o.Booking("bk-2")
	require.True(t, ok)
	assert.Equal(t, string(domain.StatusWaitingFinalConfirmation), b.Status)
}

func TestFilterAndGroupAreLocal(t *testing.T) {
	store := &fakeStore{
		bookings: []models.Booking{
			{ID: "bk-1", Status: string(domain.StatusWaitingPayment)},
			{ID: "bk-2", Status: string(domain.StatusWaitingPayment)},
			{ID: "bk-3", Status: string(domain.StatusCompleted)},
		},
	}

	o := newListenerOrchestrator(t, store)
	listCallsAfterRefresh := store.listCalls

	assert.Len(t, o.Filter(domain.StatusWaitingPayment), 2)
	assert.Len(t, o.Filter(domain.StatusCancelled), 0)

	groups := o.GroupByStatus()
	assert.Len(t, groups[domain.StatusWaitingPayment], 2)
	assert.Len(t, groups[domain.StatusCompleted], 1)

	// leitura é puramente local
	assert.Equal(t, listCallsAfterRefresh, store.listCalls)
}

// ======================================================
// GUARDS (fast-fail local)
// ======================================================

func TestGuardRefusalNeverCallsStore(t *testing.T) {
	store := storeWith(domain.StatusWaitingConfirmation)
	o := newListenerOrchestrator(t, store)

	// ouvinte não aceita
	_, err := o.Accept(context.Background(), "bk-1")
	assert.True(t, httperr.IsBusiness(err, "wrong_role"))
	assert.Zero(t, store.acceptCalls)

	// pagamento antes do aceite do artista
	res, err := o.Pay(context.Background(), "bk-1", nil)
	assert.True(t, httperr.IsBusiness(err, "invalid_state"))
	assert.Nil(t, res)
	assert.Zero(t, store.payCalls)

	// erro fica registrado para a UI
	assert.Error(t, o.LastError("bk-1"))
}

func TestUnknownBookingRefused(t *testing.T) {
	store := storeWith(domain.StatusWaitingConfirmation)
	o := newListenerOrchestrator(t, store)

	_, err := o.Cancel(context.Background(), "bk-missing", "")
	assert.True(t, httperr.IsBusiness(err, "booking_not_found"))
	assert.Zero(t, store.cancelCalls)
}

func TestCreateRequiresListenerRole(t *testing.T) {
	store := storeWith(domain.StatusWaitingConfirmation)
	o := newArtistOrchestrator(t, store)

	_, err := o.CreateBooking(context.Background(), CreateBookingRequest{ArtistID: 1, DurationHours: 2})
	assert.True(t, httperr.IsBusiness(err, "wrong_role"))
	assert.Zero(t, store.createCalls)
}

// ======================================================
// MUTATIONS (refresh obrigatório)
// ======================================================

func TestAcceptRefreshesCollection(t *testing.T) {
	store := storeWith(domain.StatusWaitingConfirmation)
	o := newArtistOrchestrator(t, store)
	listCallsBefore := store.listCalls

	b, err := o.Accept(context.Background(), "bk-1")
	require.NoError(t, err)
	assert.Equal(t, string(domain.StatusWaitingPayment), b.Status)

	// a coleção foi recarregada, não remendada
	assert.Equal(t, listCallsBefore+1, store.listCalls)

	cached, ok := o.Booking("bk-1")
	require.True(t, ok)
	assert.Equal(t, string(domain.StatusWaitingPayment), cached.Status)

	assert.NoError(t, o.LastError("bk-1"))
	assert.False(t, o.Busy("bk-1"))
}

func TestCreateRefreshesCollection(t *testing.T) {
	store := &fakeStore{}
	o := newListenerOrchestrator(t, store)

	b, err := o.CreateBooking(context.Background(), CreateBookingRequest{
		ArtistID:      1,
		EventType:     "Festival",
		EventDate:     "2026-11-01",
		EventTime:     "20:00",
		DurationHours: 3,
		Location:      "Rio de Janeiro",
	})
	require.NoError(t, err)

	_, ok := o.Booking(b.ID)
	assert.True(t, ok)
}

func TestRemoteRejectionForcesRefresh(t *testing.T) {
	store := storeWith(domain.StatusWaitingConfirmation)
	o := newArtistOrchestrator(t, store)

	store.nextErr = &RemoteError{Status: 409, Code: "invalid_state"}
	listCallsBefore := store.listCalls

	_, err := o.Accept(context.Background(), "bk-1")

	var re *RemoteError
	require.ErrorAs(t, err, &re)
	assert.Equal(t, "invalid_state", re.Code)

	// recusa do servidor significa cache obsoleto: recarga forçada
	assert.Greater(t, store.listCalls, listCallsBefore)
	assert.Error(t, o.LastError("bk-1"))
	assert.False(t, o.Busy("bk-1"))
}

func TestTransportFailureDoesNotForceRefresh(t *testing.T) {
	store := storeWith(domain.StatusWaitingConfirmation)
	o := newArtistOrchestrator(t, store)

	store.nextErr = ErrUnavailable
	listCallsBefore := store.listCalls

	_, err := o.Accept(context.Background(), "bk-1")
	require.ErrorIs(t, err, ErrUnavailable)

	assert.Equal(t, listCallsBefore, store.listCalls)
	assert.False(t, o.Busy("bk-1"))
}

// ======================================================
// PAY
// ======================================================

func TestPaySuccessCallsStoreExactlyOnce(t *testing.T) {
	store := storeWith(domain.StatusWaitingPayment)
	o := newListenerOrchestrator(t, store)

	var progress []float64
	res, err := o.Pay(context.Background(), "bk-1", func(pct float64) {
		progress = append(progress, pct)
	})
	require.NoError(t, err)

	assert.Equal(t, payment.OutcomeSuccess, res.Outcome)
	require.NotNil(t, res.Booking)
	assert.Equal(t, string(domain.StatusWaitingFinalConfirmation), res.Booking.Status)

	assert.Equal(t, 1, store.payCalls)
	assert.NotEmpty(t, progress)
	assert.False(t, o.Busy("bk-1"))
}

func TestPayAbandonedNeverCallsStore(t *testing.T) {
	store := storeWith(domain.StatusWaitingPayment)
	o := newListenerOrchestrator(t, store)

	// duração longa garante o cancelamento antes da conclusão
	o.sim.MinDuration = 10 * time.Second
	o.sim.MaxDuration = 10 * time.Second

	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		time.Sleep(30 * time.Millisecond)
		cancel()
	}()

	res, err := o.Pay(ctx, "bk-1", nil)
	require.NoError(t, err)

	// abandono não é erro e não muda estado
	assert.Equal(t, payment.OutcomeAbandoned, res.Outcome)
	assert.Nil(t, res.Booking)
	assert.Zero(t, store.payCalls)

	cached, _ := o.Booking("bk-1")
	assert.Equal(t, string(domain.StatusWaitingPayment), cached.Status)
}

func TestPayWhileBusyRefused(t *testing.T) {
	store := storeWith(domain.StatusWaitingPayment)
	o := newListenerOrchestrator(t, store)

	o.sim.MinDuration = 10 * time.Second
	o.sim.MaxDuration = 10 * time.Second

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	started := make(chan struct{})
	finished := make(chan struct{})
	go func() {
		close(started)
		o.Pay(ctx, "bk-1", nil)
		close(finished)
	}()

	<-started
	time.Sleep(30 * time.Millisecond)

	_, err := o.Pay(context.Background(), "bk-1", nil)
	assert.True(t, httperr.IsBusiness(err, "action_in_progress"))

	cancel()
	<-finished
}
