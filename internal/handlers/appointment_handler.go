package handlers

import (
	"strings"

	"github.com/gin-gonic/gin"

	domain "github.com/BruksfildServices01/dental-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/dental-scheduler/internal/httperr"
	"github.com/BruksfildServices01/dental-scheduler/internal/httpresp"
	"github.com/BruksfildServices01/dental-scheduler/internal/usecase/appointment"
)

// ======================================================
// HANDLER
// ======================================================

type AppointmentHandler struct {
	create     *appointment.CreateAppointment
	reschedule *appointment.RescheduleAppointment
	status     *appointment.ChangeStatus
	remove     *appointment.DeleteAppointment
	list       *appointment.ListAppointments
}

func NewAppointmentHandler(
	create *appointment.CreateAppointment,
	reschedule *appointment.RescheduleAppointment,
	status *appointment.ChangeStatus,
	remove *appointment.DeleteAppointment,
	list *appointment.ListAppointments,
) *AppointmentHandler {
	return &AppointmentHandler{
		create:     create,
		reschedule: reschedule,
		status:     status,
		remove:     remove,
		list:       list,
	}
}

// ======================================================
// REQUESTS
// ======================================================

type CreateAppointmentRequest struct {
	PatientID string `json:"patient_id" binding:"required"`
	Type      string `json:"type"`
	Date      string `json:"date" binding:"required"` // YYYY-MM-DD
	Time      string `json:"time" binding:"required"` // HH:mm
	Room      string `json:"room" binding:"required"`
	Duration  int    `json:"duration" binding:"required,gt=0"`
	Notes     string `json:"notes"`
}

type UpdateAppointmentRequest struct {
	PatientID string  `json:"patient_id"`
	Type      string  `json:"type"`
	Date      string  `json:"date"`
	Time      string  `json:"time"`
	Room      string  `json:"room"`
	Duration  int     `json:"duration" binding:"gte=0"`
	Notes     *string `json:"notes"`
}

type ChangeStatusRequest struct {
	Status string `json:"status" binding:"required"`
	Reason string `json:"reason"`
}

// ======================================================
// CREATE
// ======================================================

func (h *AppointmentHandler) Create(c *gin.Context) {
	var req CreateAppointmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Dados inválidos.")
		return
	}

	ap, err := h.create.Execute(c.Request.Context(), appointment.CreateAppointmentInput{
		PatientID: req.PatientID,
		Type:      req.Type,
		Date:      req.Date,
		Time:      req.Time,
		Room:      req.Room,
		Duration:  req.Duration,
		Notes:     req.Notes,
	})
	if err != nil {
		writeError(c, err, "failed_to_create_appointment")
		return
	}

	httpresp.Created(c, ap)
}

// ======================================================
// READ
// ======================================================

func (h *AppointmentHandler) List(c *gin.Context) {
	filter := domain.Filter{
		Date:      strings.TrimSpace(c.Query("date")),
		PatientID: strings.TrimSpace(c.Query("patient_id")),
		Room:      strings.TrimSpace(c.Query("room")),
	}
	if raw := strings.TrimSpace(c.Query("status")); raw != "" {
		status, err := domain.ParseStatus(raw)
		if err != nil {
			writeError(c, err, "invalid_status")
			return
		}
		filter.Status = status
	}

	out, err := h.list.Execute(c.Request.Context(), filter)
	if err != nil {
		writeError(c, err, "failed_to_list_appointments")
		return
	}

	httpresp.List(c, out)
}

func (h *AppointmentHandler) Get(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	ap, err := h.list.Get(c.Request.Context(), id)
	if err != nil {
		writeError(c, err, "failed_to_load_appointment")
		return
	}

	httpresp.OK(c, ap)
}

// ======================================================
// UPDATE
// ======================================================

func (h *AppointmentHandler) Update(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	var req UpdateAppointmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Dados inválidos.")
		return
	}

	ap, err := h.reschedule.Execute(c.Request.Context(), id, appointment.RescheduleAppointmentInput{
		PatientID: req.PatientID,
		Type:      req.Type,
		Date:      req.Date,
		Time:      req.Time,
		Room:      req.Room,
		Duration:  req.Duration,
		Notes:     req.Notes,
	})
	if err != nil {
		writeError(c, err, "failed_to_update_appointment")
		return
	}

	httpresp.OK(c, ap)
}

func (h *AppointmentHandler) ChangeStatus(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	var req ChangeStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Dados inválidos.")
		return
	}

	ap, err := h.status.Execute(c.Request.Context(), id, req.Status, req.Reason)
	if err != nil {
		writeError(c, err, "failed_to_change_status")
		return
	}

	httpresp.OK(c, ap)
}

// ======================================================
// DELETE
// ======================================================

func (h *AppointmentHandler) Delete(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	if err := h.remove.Execute(c.Request.Context(), id); err != nil {
		writeError(c, err, "failed_to_delete_appointment")
		return
	}

	httpresp.NoContent(c)
}
