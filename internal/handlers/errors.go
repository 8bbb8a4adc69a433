package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/dental-scheduler/internal/httperr"
)

var businessAnswers = httperr.Table{
	"time_conflict":         {Status: http.StatusConflict, Message: "Conflito de horário: a sala já está ocupada."},
	"patient_id_taken":      {Status: http.StatusConflict, Message: "Número de paciente já utilizado, tente novamente."},
	"appointment_not_found": {Status: http.StatusNotFound, Message: "Agendamento não encontrado."},
	"patient_not_found":     {Status: http.StatusNotFound, Message: "Paciente não encontrado."},
	"invalid_slot":          {Status: http.StatusBadRequest, Message: "Data, hora ou duração inválida."},
	"invalid_room":          {Status: http.StatusBadRequest, Message: "Sala inválida."},
	"invalid_status":        {Status: http.StatusBadRequest, Message: "Status inválido."},
	"invalid_patient":       {Status: http.StatusBadRequest, Message: "Dados do paciente inválidos."},
	"patient_has_acts":      {Status: http.StatusConflict, Message: "Paciente possui atos registrados e não pode ser excluído."},

	"act_not_found":     {Status: http.StatusNotFound, Message: "Ato não encontrado."},
	"phase_not_found":   {Status: http.StatusNotFound, Message: "Fase de tratamento não encontrada."},
	"payment_not_found": {Status: http.StatusNotFound, Message: "Pagamento não encontrado."},
	"photo_not_found":   {Status: http.StatusNotFound, Message: "Foto não encontrada."},
	"invalid_act":       {Status: http.StatusBadRequest, Message: "Dados do ato inválidos."},
	"invalid_phase":     {Status: http.StatusBadRequest, Message: "Dados da fase inválidos."},
	"invalid_payment":   {Status: http.StatusBadRequest, Message: "Dados do pagamento inválidos."},
	"invalid_photo":     {Status: http.StatusBadRequest, Message: "Arquivo de imagem inválido."},
	"photo_too_large":   {Status: http.StatusRequestEntityTooLarge, Message: "Imagem grande demais."},

	"lab_work_not_found": {Status: http.StatusNotFound, Message: "Trabalho de laboratório não encontrado."},
	"invalid_lab_work":   {Status: http.StatusBadRequest, Message: "Dados do trabalho de laboratório inválidos."},
	"invalid_lab_status": {Status: http.StatusBadRequest, Message: "Status de laboratório inválido."},
}

// writeError answers business errors from businessAnswers; anything else
// is a 500 and gets attached to the gin context for the request logger.
func writeError(c *gin.Context, err error, internalCode string) {
	if businessAnswers.Respond(c, err) {
		return
	}

	_ = c.Error(err)
	httperr.Internal(c, internalCode, "Erro interno.")
}

func parseID(c *gin.Context) (uint, bool) {
	id, err := parseUint(c.Param("id"))
	if err != nil || id == 0 {
		httperr.BadRequest(c, "invalid_id", "ID inválido.")
		return 0, false
	}
	return id, true
}
