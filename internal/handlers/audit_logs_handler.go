package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/dental-scheduler/internal/audit"
	"github.com/BruksfildServices01/dental-scheduler/internal/httpresp"
)

// ======================================================
// HANDLER
// ======================================================

type AuditLogsHandler struct {
	store audit.Store
}

func NewAuditLogsHandler(store audit.Store) *AuditLogsHandler {
	return &AuditLogsHandler{store: store}
}

func (h *AuditLogsHandler) List(c *gin.Context) {
	q := audit.Query{
		Action: c.Query("action"),
		Entity: c.Query("entity"),
		From:   c.Query("from"),
		To:     c.Query("to"),
		Page:   queryInt(c.DefaultQuery("page", "1"), 1),
		Limit:  queryInt(c.DefaultQuery("limit", "50"), 50),
	}
	page, limit := audit.Page(q)

	logs, total, err := h.store.ListAuditLogs(c.Request.Context(), q)
	if err != nil {
		writeError(c, err, "audit_list_failed")
		return
	}

	httpresp.Page(c, logs, page, limit, total)
}
