package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/PalcoServices/palco-hire/internal/httperr"
	"github.com/PalcoServices/palco-hire/internal/models"
)

// Store é o contrato do Booking Store remoto consumido pelo orquestrador.
// Cada operação de transição devolve a contratação completa atualizada;
// o servidor é a única fonte de verdade das guardas.
type Store interface {
	Create(ctx context.Context, in CreateBookingRequest) (*models.Booking, error)
	List(ctx context.Context) ([]models.Booking, error)
	Accept(ctx context.Context, bookingID string) (*models.Booking, error)
	Reject(ctx context.Context, bookingID string) (*models.Booking, error)
	Pay(ctx context.Context, bookingID string) (*models.Booking, error)
	ConfirmFinal(ctx context.Context, bookingID string) (*models.Booking, error)
	Cancel(ctx context.Context, bookingID string, reason string) (*models.Booking, error)
}

type CreateBookingRequest struct {
	ArtistID      uint   `json:"artist_id"`
	EventType     string `json:"event_type"`
	EventDate     string `json:"event_date"`
	EventTime     string `json:"event_time"`
	DurationHours int    `json:"duration_hours"`
	Location      string `json:"location"`
	Notes         string `json:"notes,omitempty"`
}

// ErrUnavailable marca falha de transporte: nada foi aplicado no servidor
// até onde o cliente sabe, e a operação pode ser repetida.
var ErrUnavailable = errors.New("booking store unreachable")

// RemoteError é a recusa da guarda do servidor (estado obsoleto, corrida
// perdida). O chamador deve recarregar o estado autoritativo.
type RemoteError struct {
	Status  int
	Code    string
	Message string
}

func (e *RemoteError) Error() string {
	return fmt.Sprintf("remote rejected: %s (%d)", e.Code, e.Status)
}

// ======================================================
// HTTP implementation
// ======================================================

type HTTPStore struct {
	baseURL string
	token   string
	http    *http.Client
}

// NewHTTPStore cria o cliente HTTP do Booking Store. Sem timeout próprio:
// o cancelamento vem do contexto de cada chamada.
func NewHTTPStore(baseURL, token string) *HTTPStore {
	return &HTTPStore{
		baseURL: baseURL,
		token:   token,
		http:    &http.Client{},
	}
}

func (s *HTTPStore) Create(ctx context.Context, in CreateBookingRequest) (*models.Booking, error) {
	var b models.Booking
	if err := s.do(ctx, http.MethodPost, "/bookings", in, &b); err != nil {
		return nil, err
	}
	return &b, nil
}

func (s *HTTPStore) List(ctx context.Context) ([]models.Booking, error) {
	var bs []models.Booking
	if err := s.do(ctx, http.MethodGet, "/bookings", nil, &bs); err != nil {
		return nil, err
	}
	return bs, nil
}

func (s *HTTPStore) Accept(ctx context.Context, bookingID string) (*models.Booking, error) {
	return s.transition(ctx, http.MethodPost, bookingID, "accept", nil)
}

func (s *HTTPStore) Reject(ctx context.Context, bookingID string) (*models.Booking, error) {
	return s.transition(ctx, http.MethodPost, bookingID, "reject", nil)
}

func (s *HTTPStore) Pay(ctx context.Context, bookingID string) (*models.Booking, error) {
	return s.transition(ctx, http.MethodPatch, bookingID, "pay", nil)
}

func (s *HTTPStore) ConfirmFinal(ctx context.Context, bookingID string) (*models.Booking, error) {
	return s.transition(ctx, http.MethodPatch, bookingID, "final-confirm", nil)
}

func (s *HTTPStore) Cancel(ctx context.Context, bookingID string, reason string) (*models.Booking, error) {
	body := map[string]string{"reason": reason}
	return s.transition(ctx, http.MethodPatch, bookingID, "cancel", body)
}

func (s *HTTPStore) transition(
	ctx context.Context,
	method string,
	bookingID string,
	action string,
	body any,
) (*models.Booking, error) {

	var b models.Booking
	path := fmt.Sprintf("/bookings/%s/%s", bookingID, action)
	if err := s.do(ctx, method, path, body, &b); err != nil {
		return nil, err
	}
	return &b, nil
}

func (s *HTTPStore) do(ctx context.Context, method, path string, body, out any) error {
	var reader *bytes.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reader = bytes.NewReader(payload)
	} else {
		reader = bytes.NewReader(nil)
	}

	req, err := http.NewRequestWithContext(ctx, method, s.baseURL+path, reader)
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	if s.token != "" {
		req.Header.Set("Authorization", "Bearer "+s.token)
	}

	resp, err := s.http.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 500 {
		return fmt.Errorf("%w: status %d", ErrUnavailable, resp.StatusCode)
	}

	if resp.StatusCode >= 400 {
		var he httperr.HTTPError
		if err := json.NewDecoder(resp.Body).Decode(&he); err != nil {
			he.Code = "unknown_error"
		}
		return &RemoteError{
			Status:  resp.StatusCode,
			Code:    he.Code,
			Message: he.Message,
		}
	}

	if out == nil {
		return nil
	}
	return json.NewDecoder(resp.Body).Decode(out)
}

// Compile-time check
var _ Store = (*HTTPStore)(nil)
