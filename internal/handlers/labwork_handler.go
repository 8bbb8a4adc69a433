package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/dental-scheduler/internal/httperr"
	"github.com/BruksfildServices01/dental-scheduler/internal/httpresp"
	"github.com/BruksfildServices01/dental-scheduler/internal/usecase/labwork"
)

type LabWorkHandler struct {
	labWorks *labwork.LabWorks
}

func NewLabWorkHandler(labWorks *labwork.LabWorks) *LabWorkHandler {
	return &LabWorkHandler{labWorks: labWorks}
}

type LabWorkRequest struct {
	LabName      string `json:"lab_name" binding:"required"`
	Phone        string `json:"phone"`
	TypeWork     string `json:"type_work"`
	Tooth        string `json:"tooth"`
	PatientID    string `json:"patient_id"`
	PatientName  string `json:"patient_name"`
	Status       string `json:"status"`
	DateSent     string `json:"date_sent"`
	DateExpected string `json:"date_expected"`
	Notes        string `json:"notes"`
}

func (req LabWorkRequest) input() labwork.LabWorkInput {
	return labwork.LabWorkInput{
		LabName:      req.LabName,
		Phone:        req.Phone,
		TypeWork:     req.TypeWork,
		Tooth:        req.Tooth,
		PatientID:    req.PatientID,
		PatientName:  req.PatientName,
		Status:       req.Status,
		DateSent:     req.DateSent,
		DateExpected: req.DateExpected,
		Notes:        req.Notes,
	}
}

// List serves GET /api/lab-works?query=&status=.
func (h *LabWorkHandler) List(c *gin.Context) {
	out, err := h.labWorks.Search(c.Request.Context(), c.Query("query"), c.Query("status"))
	if err != nil {
		writeError(c, err, "failed_to_list_lab_works")
		return
	}
	httpresp.List(c, out)
}

func (h *LabWorkHandler) Create(c *gin.Context) {
	var req LabWorkRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Dados inválidos.")
		return
	}

	out, err := h.labWorks.Create(c.Request.Context(), req.input())
	if err != nil {
		writeError(c, err, "failed_to_create_lab_work")
		return
	}
	httpresp.Created(c, out)
}

func (h *LabWorkHandler) Get(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	out, err := h.labWorks.Get(c.Request.Context(), id)
	if err != nil {
		writeError(c, err, "failed_to_load_lab_work")
		return
	}
	httpresp.OK(c, out)
}

func (h *LabWorkHandler) Update(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	var req LabWorkRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Dados inválidos.")
		return
	}

	out, err := h.labWorks.Update(c.Request.Context(), id, req.input())
	if err != nil {
		writeError(c, err, "failed_to_update_lab_work")
		return
	}
	httpresp.OK(c, out)
}

func (h *LabWorkHandler) Delete(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	if err := h.labWorks.Delete(c.Request.Context(), id); err != nil {
		writeError(c, err, "failed_to_delete_lab_work")
		return
	}
	httpresp.NoContent(c)
}
