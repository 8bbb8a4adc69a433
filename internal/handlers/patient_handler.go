package handlers

import (
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/dental-scheduler/internal/httperr"
	"github.com/BruksfildServices01/dental-scheduler/internal/httpresp"
	"github.com/BruksfildServices01/dental-scheduler/internal/usecase/patient"
)

type PatientHandler struct {
	create *patient.CreatePatient
	update *patient.UpdatePatient
	remove *patient.DeletePatient
	get    *patient.GetPatient
	search *patient.SearchPatients
}

func NewPatientHandler(
	create *patient.CreatePatient,
	update *patient.UpdatePatient,
	remove *patient.DeletePatient,
	get *patient.GetPatient,
	search *patient.SearchPatients,
) *PatientHandler {
	return &PatientHandler{
		create: create,
		update: update,
		remove: remove,
		get:    get,
		search: search,
	}
}

type CreatePatientRequest struct {
	FirstName   string `json:"first_name" binding:"required"`
	LastName    string `json:"last_name" binding:"required"`
	CINPassport string `json:"cin_passport"`
	BirthDate   string `json:"birth_date"`
	Phone       string `json:"phone"`
	Email       string `json:"email" binding:"omitempty,email"`
	Notes       string `json:"notes"`
}

func (req CreatePatientRequest) input() patient.CreatePatientInput {
	return patient.CreatePatientInput{
		FirstName:   req.FirstName,
		LastName:    req.LastName,
		CINPassport: req.CINPassport,
		BirthDate:   req.BirthDate,
		Phone:       req.Phone,
		Email:       req.Email,
		Notes:       req.Notes,
	}
}

// ======================================================
// CREATE
// ======================================================
func (h *PatientHandler) Create(c *gin.Context) {
	var req CreatePatientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Dados inválidos.")
		return
	}

	p, err := h.create.Execute(c.Request.Context(), req.input())
	if err != nil {
		writeError(c, err, "failed_to_create_patient")
		return
	}

	httpresp.Created(c, patient.ToDTO(*p))
}

// ======================================================
// LIST / SEARCH
// ======================================================
func (h *PatientHandler) List(c *gin.Context) {
	query := strings.TrimSpace(c.Query("query"))
	limit := queryInt(c.Query("limit"), 50)

	out, err := h.search.Execute(c.Request.Context(), query, limit)
	if err != nil {
		writeError(c, err, "failed_to_list_patients")
		return
	}

	httpresp.List(c, out)
}

// patientID joins the :seq and :year halves of "NN/YYYY".
func patientID(c *gin.Context) string {
	return c.Param("seq") + "/" + c.Param("year")
}

func (h *PatientHandler) Get(c *gin.Context) {
	id := patientID(c)

	p, err := h.get.Execute(c.Request.Context(), id)
	if err != nil {
		writeError(c, err, "failed_to_load_patient")
		return
	}

	httpresp.OK(c, patient.ToDTO(*p))
}

// ======================================================
// UPDATE / DELETE
// ======================================================

// Update replaces every editable field; the body has the shape of Create.
func (h *PatientHandler) Update(c *gin.Context) {
	var req CreatePatientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Dados inválidos.")
		return
	}

	p, err := h.update.Execute(c.Request.Context(), patientID(c), req.input())
	if err != nil {
		writeError(c, err, "failed_to_update_patient")
		return
	}

	httpresp.OK(c, patient.ToDTO(*p))
}

func (h *PatientHandler) Delete(c *gin.Context) {
	if err := h.remove.Execute(c.Request.Context(), patientID(c)); err != nil {
		writeError(c, err, "failed_to_delete_patient")
		return
	}

	httpresp.NoContent(c)
}
