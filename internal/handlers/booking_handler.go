package handlers

import (
	"github.com/gin-gonic/gin"

	domain "github.com/PalcoServices/palco-hire/internal/domain/booking"
	"github.com/PalcoServices/palco-hire/internal/httperr"
	"github.com/PalcoServices/palco-hire/internal/middleware"
	ucBooking "github.com/PalcoServices/palco-hire/internal/usecase/booking"
)

// ======================================================
// HANDLER
// ======================================================

type BookingHandler struct {
	createUC       *ucBooking.CreateBooking
	acceptUC       *ucBooking.AcceptBooking
	rejectUC       *ucBooking.RejectBooking
	cancelUC       *ucBooking.CancelBooking
	payUC          *ucBooking.PayBooking
	confirmFinalUC *ucBooking.ConfirmFinalBooking
	listUC         *ucBooking.ListBookings
}

func NewBookingHandler(
	createUC *ucBooking.CreateBooking,
	acceptUC *ucBooking.AcceptBooking,
	rejectUC *ucBooking.RejectBooking,
	cancelUC *ucBooking.CancelBooking,
	payUC *ucBooking.PayBooking,
	confirmFinalUC *ucBooking.ConfirmFinalBooking,
	listUC *ucBooking.ListBookings,
) *BookingHandler {
	return &BookingHandler{
		createUC:       createUC,
		acceptUC:       acceptUC,
		rejectUC:       rejectUC,
		cancelUC:       cancelUC,
		payUC:          payUC,
		confirmFinalUC: confirmFinalUC,
		listUC:         listUC,
	}
}

// ======================================================
// REQUESTS
// ======================================================

type CreateBookingRequest struct {
	ArtistID      uint   `json:"artist_id" binding:"required"`
	EventType     string `json:"event_type" binding:"required"`
	EventDate     string `json:"event_date" binding:"required"`
	EventTime     string `json:"event_time" binding:"required"`
	DurationHours int    `json:"duration_hours" binding:"required,min=1"`
	Location      string `json:"location" binding:"required"`
	Notes         string `json:"notes"`
}

type CancelBookingRequest struct {
	Reason string `json:"reason"`
}

// ======================================================
// CREATE
// ======================================================

func (h *BookingHandler) Create(c *gin.Context) {
	userID := c.MustGet(middleware.ContextUserID).(uint)
	role := c.MustGet(middleware.ContextUserRole).(string)

	if err := domain.CanCreate(domain.Role(role)); err != nil {
		httperr.Forbidden(c, "wrong_role", "Apenas ouvintes podem criar contratações.")
		return
	}

	var req CreateBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Dados inválidos.")
		return
	}

	b, err := h.createUC.Execute(c.Request.Context(), ucBooking.CreateBookingInput{
		ListenerID:    userID,
		ArtistID:      req.ArtistID,
		EventType:     req.EventType,
		EventDate:     req.EventDate,
		EventTime:     req.EventTime,
		DurationHours: req.DurationHours,
		Location:      req.Location,
		Notes:         req.Notes,
	})
	if err != nil {
		writeBookingError(c, err)
		return
	}

	c.JSON(201, b)
}

// ======================================================
// LIST
// ======================================================

func (h *BookingHandler) List(c *gin.Context) {
	userID := c.MustGet(middleware.ContextUserID).(uint)

	bs, err := h.listUC.Execute(c.Request.Context(), userID)
	if err != nil {
		httperr.Internal(c, "failed_to_list_bookings", "Erro ao listar contratações.")
		return
	}

	c.JSON(200, bs)
}

// ======================================================
// TRANSITIONS
// ======================================================

func (h *BookingHandler) Accept(c *gin.Context) {
	userID := c.MustGet(middleware.ContextUserID).(uint)
	role := c.MustGet(middleware.ContextUserRole).(string)

	if role != string(domain.RoleArtist) {
		httperr.Forbidden(c, "wrong_role", "Apenas o artista pode aceitar.")
		return
	}

	b, err := h.acceptUC.Execute(c.Request.Context(), userID, c.Param("id"))
	if err != nil {
		writeBookingError(c, err)
		return
	}

	c.JSON(200, b)
}

func (h *BookingHandler) Reject(c *gin.Context) {
	userID := c.MustGet(middleware.ContextUserID).(uint)
	role := c.MustGet(middleware.ContextUserRole).(string)

	if role != string(domain.RoleArtist) {
		httperr.Forbidden(c, "wrong_role", "Apenas o artista pode recusar.")
		return
	}

	b, err := h.rejectUC.Execute(c.Request.Context(), userID, c.Param("id"))
	if err != nil {
		writeBookingError(c, err)
		return
	}

	c.JSON(200, b)
}

func (h *BookingHandler) Cancel(c *gin.Context) {
	userID := c.MustGet(middleware.ContextUserID).(uint)
	role := c.MustGet(middleware.ContextUserRole).(string)

	if role != string(domain.RoleListener) {
		httperr.Forbidden(c, "wrong_role", "Apenas o ouvinte pode cancelar.")
		return
	}

	var req CancelBookingRequest
	// corpo opcional
	_ = c.ShouldBindJSON(&req)

	b, err := h.cancelUC.Execute(c.Request.Context(), userID, c.Param("id"), req.Reason)
	if err != nil {
		writeBookingError(c, err)
		return
	}

	c.JSON(200, b)
}

func (h *BookingHandler) Pay(c *gin.Context) {
	userID := c.MustGet(middleware.ContextUserID).(uint)
	role := c.MustGet(middleware.ContextUserRole).(string)

	if role != string(domain.RoleListener) {
		httperr.Forbidden(c, "wrong_role", "Apenas o ouvinte pode pagar.")
		return
	}

	b, err := h.payUC.Execute(c.Request.Context(), userID, c.Param("id"))
	if err != nil {
		writeBookingError(c, err)
		return
	}

	c.JSON(200, b)
}

func (h *BookingHandler) ConfirmFinal(c *gin.Context) {
	userID := c.MustGet(middleware.ContextUserID).(uint)
	role := c.MustGet(middleware.ContextUserRole).(string)

	b, err := h.confirmFinalUC.Execute(
		c.Request.Context(),
		userID,
		domain.Role(role),
		c.Param("id"),
	)
	if err != nil {
		writeBookingError(c, err)
		return
	}

	c.JSON(200, b)
}

// ======================================================
// ERROR MAPPING
// ======================================================

// writeBookingError traduz erros de negócio para a taxonomia HTTP:
// guarda de estado recusada vira 409 (o cliente deve recarregar o estado
// autoritativo), papel errado vira 403.
func writeBookingError(c *gin.Context, err error) {
	code, ok := httperr.BusinessCode(err)
	if !ok {
		httperr.Internal(c, "internal_error", "Erro interno.")
		return
	}

	switch code {
	case "booking_not_found":
		httperr.NotFound(c, code, "Contratação não encontrada.")
	case "artist_not_found":
		httperr.BadRequest(c, code, "Artista não encontrado.")
	case "listener_not_found":
		httperr.BadRequest(c, code, "Ouvinte não encontrado.")
	case "wrong_role":
		httperr.Forbidden(c, code, "Ação não permitida para o seu papel.")
	case "invalid_state", "already_confirmed":
		httperr.Conflict(c, code, "Estado atual não permite esta ação.")
	case "invalid_duration", "invalid_price", "invalid_date_or_time", "artist_required":
		httperr.BadRequest(c, code, "Dados inválidos.")
	default:
		httperr.Internal(c, code, "Erro interno.")
	}
}
