package handlers

import (
	"net/http"

	bookingRepo "servicelink/database/repository/booking"
	"servicelink/middleware"
	"servicelink/models"
	"servicelink/services/booking"
	"servicelink/utils"

	"github.com/gin-gonic/gin"
)

type BookingHandler struct {
	Service booking.BookingService
}

func NewBookingHandler(svc booking.BookingService) *BookingHandler {
	return &BookingHandler{Service: svc}
}

func (h *BookingHandler) InitiateHandler(c *gin.Context) {
	var req struct {
		WorkerID string `json:"workerId"`
		Service  string `json:"service"`
	}
	if !bindJSON(c, &req) {
		return
	}
	acct := middleware.CurrentAccount(c)
	draft, err := h.Service.Initiate(c.Request.Context(), middleware.SessionID(c), acct.ID(), req.WorkerID, req.Service)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, draft)
}

func (h *BookingHandler) GetDraftHandler(c *gin.Context) {
	draft, err := h.Service.Draft(c.Request.Context(), middleware.SessionID(c))
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"draft": draft, "missing": draft.MissingFields()})
}

func (h *BookingHandler) ScheduleHandler(c *gin.Context) {
	var req struct {
		Date string          `json:"date"`
		Slot models.TimeSlot `json:"slot"`
	}
	if !bindJSON(c, &req) {
		return
	}
	draft, err := h.Service.SetDateTime(c.Request.Context(), middleware.SessionID(c), req.Date, req.Slot)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, draft)
}

// LocationHandler accepts either a full address or the id of a saved one.
func (h *BookingHandler) LocationHandler(c *gin.Context) {
	var req struct {
		Address   *models.Address `json:"address"`
		AddressID string          `json:"addressId"`
	}
	if !bindJSON(c, &req) {
		return
	}
	var addr models.Address
	switch {
	case req.Address != nil:
		addr = *req.Address
	case req.AddressID != "":
		acct := middleware.CurrentAccount(c)
		if acct == nil || acct.Client == nil {
			utils.RespondError(c, utils.NewValidationError("saved addresses belong to client accounts", "addressId"))
			return
		}
		saved, ok := acct.Client.FindAddress(req.AddressID)
		if !ok {
			utils.RespondError(c, utils.NewNotFoundError("address", req.AddressID))
			return
		}
		addr = saved
	default:
		utils.RespondError(c, utils.NewValidationError("", "address"))
		return
	}
	draft, err := h.Service.SetLocation(c.Request.Context(), middleware.SessionID(c), addr)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, draft)
}

func (h *BookingHandler) NotesHandler(c *gin.Context) {
	var req struct {
		Notes string `json:"notes"`
	}
	if !bindJSON(c, &req) {
		return
	}
	draft, err := h.Service.AddNotes(c.Request.Context(), middleware.SessionID(c), req.Notes)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, draft)
}

func (h *BookingHandler) AbandonHandler(c *gin.Context) {
	if err := h.Service.Abandon(c.Request.Context(), middleware.SessionID(c)); err != nil {
		utils.RespondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *BookingHandler) FinalizeHandler(c *gin.Context) {
	b, err := h.Service.Finalize(c.Request.Context(), middleware.SessionID(c))
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, b)
}

// ListBookingsHandler returns the caller's bookings, as client or as worker.
func (h *BookingHandler) ListBookingsHandler(c *gin.Context) {
	acct := middleware.CurrentAccount(c)
	var filter bookingRepo.BookingFilter
	if acct.Role() == models.RoleWorker {
		filter.WorkerID = acct.ID()
	} else {
		filter.ClientID = acct.ID()
	}
	if s := c.Query("status"); s != "" {
		status, err := models.ParseBookingStatus(s)
		if err != nil {
			utils.RespondError(c, err)
			return
		}
		filter.Status = status
	}
	list, err := h.Service.List(c.Request.Context(), filter)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"bookings": list})
}

// ownBooking loads a booking the caller is a party to.
func (h *BookingHandler) ownBooking(c *gin.Context) (*models.Booking, bool) {
	b, err := h.Service.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		utils.RespondError(c, err)
		return nil, false
	}
	id := middleware.CurrentAccount(c).ID()
	if b.ClientID != id && b.WorkerID != id {
		utils.RespondError(c, &utils.PermissionError{Msg: "not a party to this booking"})
		return nil, false
	}
	return b, true
}

func (h *BookingHandler) GetBookingHandler(c *gin.Context) {
	if b, ok := h.ownBooking(c); ok {
		c.JSON(http.StatusOK, b)
	}
}

func (h *BookingHandler) UpdateStatusHandler(c *gin.Context) {
	var req struct {
		Status string `json:"status"`
	}
	if !bindJSON(c, &req) {
		return
	}
	b, ok := h.ownBooking(c)
	if !ok {
		return
	}
	updated, err := h.Service.UpdateStatus(c.Request.Context(), b.ID, req.Status, middleware.CurrentAccount(c).Role())
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, updated)
}

func (h *BookingHandler) ReviewHandler(c *gin.Context) {
	var req struct {
		Rating  int    `json:"rating"`
		Comment string `json:"comment"`
	}
	if !bindJSON(c, &req) {
		return
	}
	acct := middleware.CurrentAccount(c)
	updated, err := h.Service.AttachReview(c.Request.Context(), c.Param("id"), acct.ID(), req.Rating, req.Comment)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, updated)
}

func (h *BookingHandler) PaymentHandler(c *gin.Context) {
	var req struct {
		Amount   float64              `json:"amount"`
		Method   models.PaymentMethod `json:"method"`
		Currency string               `json:"currency"`
	}
	if !bindJSON(c, &req) {
		return
	}
	acct := middleware.CurrentAccount(c)
	updated, err := h.Service.AttachPayment(c.Request.Context(), models.PaymentRequest{
		BookingID: c.Param("id"),
		ClientID:  acct.ID(),
		Amount:    req.Amount,
		Currency:  req.Currency,
		Method:    req.Method,
	})
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, updated)
}
