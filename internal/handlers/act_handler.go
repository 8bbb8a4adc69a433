package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/dental-scheduler/internal/httperr"
	"github.com/BruksfildServices01/dental-scheduler/internal/httpresp"
	"github.com/BruksfildServices01/dental-scheduler/internal/usecase/act"
)

// ======================================================
// HANDLER
// ======================================================

type ActHandler struct {
	acts     *act.Acts
	phases   *act.Phases
	payments *act.Payments
	photos   *act.Photos
}

func NewActHandler(
	acts *act.Acts,
	phases *act.Phases,
	payments *act.Payments,
	photos *act.Photos,
) *ActHandler {
	return &ActHandler{
		acts:     acts,
		phases:   phases,
		payments: payments,
		photos:   photos,
	}
}

// ======================================================
// REQUESTS
// ======================================================

type ActRequest struct {
	Type       string `json:"type" binding:"required"`
	Tooth      string `json:"tooth" binding:"required"`
	PriceCents int64  `json:"price_cents" binding:"gte=0"`
	Date       string `json:"date"` // YYYY-MM-DD, hoje se vazio
	Notes      string `json:"notes"`
}

type PhaseRequest struct {
	Date        string `json:"date"`
	Description string `json:"description" binding:"required"`
	Notes       string `json:"notes"`
}

type PaymentRequest struct {
	Date        string `json:"date"`
	AmountCents int64  `json:"amount_cents" binding:"required,gt=0"`
	Method      string `json:"method"`
	Reference   string `json:"reference"`
	Notes       string `json:"notes"`
}

func (req ActRequest) input() act.ActInput {
	return act.ActInput{
		Type:       req.Type,
		Tooth:      req.Tooth,
		PriceCents: req.PriceCents,
		Date:       req.Date,
		Notes:      req.Notes,
	}
}

func (req PaymentRequest) input() act.PaymentInput {
	return act.PaymentInput{
		Date:        req.Date,
		AmountCents: req.AmountCents,
		Method:      req.Method,
		Reference:   req.Reference,
		Notes:       req.Notes,
	}
}

// ======================================================
// ACTS
// ======================================================

// ListByPatient serves GET /api/patients/:seq/:year/acts.
func (h *ActHandler) ListByPatient(c *gin.Context) {
	out, err := h.acts.ListByPatient(c.Request.Context(), patientID(c))
	if err != nil {
		writeError(c, err, "failed_to_list_acts")
		return
	}
	httpresp.OK(c, out)
}

func (h *ActHandler) Create(c *gin.Context) {
	var req ActRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Dados inválidos.")
		return
	}

	out, err := h.acts.Create(c.Request.Context(), patientID(c), req.input())
	if err != nil {
		writeError(c, err, "failed_to_create_act")
		return
	}
	httpresp.Created(c, out)
}

func (h *ActHandler) Get(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	out, err := h.acts.Get(c.Request.Context(), id)
	if err != nil {
		writeError(c, err, "failed_to_load_act")
		return
	}
	httpresp.OK(c, out)
}

func (h *ActHandler) Update(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	var req ActRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Dados inválidos.")
		return
	}

	out, err := h.acts.Update(c.Request.Context(), id, req.input())
	if err != nil {
		writeError(c, err, "failed_to_update_act")
		return
	}
	httpresp.OK(c, out)
}

func (h *ActHandler) Delete(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	if err := h.acts.Delete(c.Request.Context(), id); err != nil {
		writeError(c, err, "failed_to_delete_act")
		return
	}
	httpresp.NoContent(c)
}

// ======================================================
// PHASES
// ======================================================

// CreatePhase serves POST /api/acts/:id/phases.
func (h *ActHandler) CreatePhase(c *gin.Context) {
	actID, ok := parseID(c)
	if !ok {
		return
	}
	var req PhaseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Dados inválidos.")
		return
	}

	out, err := h.phases.Create(c.Request.Context(), actID, act.PhaseInput{
		Date:        req.Date,
		Description: req.Description,
		Notes:       req.Notes,
	})
	if err != nil {
		writeError(c, err, "failed_to_create_phase")
		return
	}
	httpresp.Created(c, out)
}

func (h *ActHandler) UpdatePhase(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	var req PhaseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Dados inválidos.")
		return
	}

	out, err := h.phases.Update(c.Request.Context(), id, act.PhaseInput{
		Date:        req.Date,
		Description: req.Description,
		Notes:       req.Notes,
	})
	if err != nil {
		writeError(c, err, "failed_to_update_phase")
		return
	}
	httpresp.OK(c, out)
}

func (h *ActHandler) DeletePhase(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	if err := h.phases.Delete(c.Request.Context(), id); err != nil {
		writeError(c, err, "failed_to_delete_phase")
		return
	}
	httpresp.NoContent(c)
}

// ======================================================
// PHOTOS
// ======================================================

// UploadPhoto serves POST /api/phases/:id/photos (multipart, field "photo").
func (h *ActHandler) UploadPhoto(c *gin.Context) {
	phaseID, ok := parseID(c)
	if !ok {
		return
	}

	fh, err := c.FormFile("photo")
	if err != nil {
		httperr.BadRequest(c, "invalid_request", "Arquivo \"photo\" ausente.")
		return
	}
	f, err := fh.Open()
	if err != nil {
		httperr.BadRequest(c, "invalid_request", "Arquivo ilegível.")
		return
	}
	defer f.Close()

	out, err := h.photos.Upload(c.Request.Context(), phaseID, act.PhotoUpload{
		Name:        fh.Filename,
		ContentType: fh.Header.Get("Content-Type"),
		Size:        fh.Size,
		Body:        f,
	})
	if err != nil {
		writeError(c, err, "failed_to_upload_photo")
		return
	}
	httpresp.Created(c, out)
}

// Photo streams the stored WebP.
func (h *ActHandler) Photo(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	_, obj, err := h.photos.Open(c.Request.Context(), id)
	if err != nil {
		writeError(c, err, "failed_to_load_photo")
		return
	}
	defer obj.Body.Close()

	c.DataFromReader(http.StatusOK, obj.Size, obj.ContentType, obj.Body, map[string]string{
		"Cache-Control": "private, max-age=86400",
	})
}

func (h *ActHandler) DeletePhoto(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	if err := h.photos.Delete(c.Request.Context(), id); err != nil {
		writeError(c, err, "failed_to_delete_photo")
		return
	}
	httpresp.NoContent(c)
}

// ======================================================
// PAYMENTS
// ======================================================

// CreatePayment serves POST /api/acts/:id/payments and answers with the act card.
func (h *ActHandler) CreatePayment(c *gin.Context) {
	actID, ok := parseID(c)
	if !ok {
		return
	}
	var req PaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Dados inválidos.")
		return
	}

	out, err := h.payments.Create(c.Request.Context(), actID, req.input())
	if err != nil {
		writeError(c, err, "failed_to_create_payment")
		return
	}
	httpresp.Created(c, out)
}

func (h *ActHandler) UpdatePayment(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	var req PaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Dados inválidos.")
		return
	}

	out, err := h.payments.Update(c.Request.Context(), id, req.input())
	if err != nil {
		writeError(c, err, "failed_to_update_payment")
		return
	}
	httpresp.OK(c, out)
}

func (h *ActHandler) DeletePayment(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	out, err := h.payments.Delete(c.Request.Context(), id)
	if err != nil {
		writeError(c, err, "failed_to_delete_payment")
		return
	}
	httpresp.OK(c, out)
}
