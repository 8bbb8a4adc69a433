package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	domain "github.com/BruksfildServices01/dental-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/dental-scheduler/internal/usecase/appointment"
)

////////////////////////////////////////////////////////
// HANDLER
////////////////////////////////////////////////////////

type SlotHandler struct {
	getSlots   *appointment.GetSlots
	roomStatus *appointment.RoomStatus
}

func NewSlotHandler(
	getSlots *appointment.GetSlots,
	roomStatus *appointment.RoomStatus,
) *SlotHandler {
	return &SlotHandler{
		getSlots:   getSlots,
		roomStatus: roomStatus,
	}
}

// slotQuery never fails: malformed numbers become zero and the scheduler
// answers "nothing available" for them.
func slotQuery(c *gin.Context) domain.SlotQuery {
	q := domain.SlotQuery{
		Date:     strings.TrimSpace(c.Query("date")),
		Room:     strings.TrimSpace(c.Query("room")),
		Duration: 30,
	}
	if raw := c.Query("duration"); raw != "" {
		q.Duration = queryInt(raw, 0)
	}
	if raw := c.Query("exclude_id"); raw != "" {
		if id, err := parseUint(raw); err == nil {
			q.ExcludeID = id
		}
	}
	return q
}

////////////////////////////////////////////////////////
// SLOTS
////////////////////////////////////////////////////////

// List is GET /api/slots?date=&room=&duration=&exclude_id=
func (h *SlotHandler) List(c *gin.Context) {
	out, err := h.getSlots.Execute(c.Request.Context(), slotQuery(c))
	if err != nil {
		writeError(c, err, "failed_to_list_slots")
		return
	}
	c.JSON(http.StatusOK, out)
}

// Check is GET /api/slots/check?date=&time=&room=&duration=&exclude_id=
func (h *SlotHandler) Check(c *gin.Context) {
	ok, err := h.getSlots.Check(c.Request.Context(), slotQuery(c), strings.TrimSpace(c.Query("time")))
	if err != nil {
		writeError(c, err, "failed_to_check_slot")
		return
	}
	c.JSON(http.StatusOK, gin.H{"available": ok})
}

func (h *SlotHandler) Grid(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"slots": h.getSlots.Grid()})
}

////////////////////////////////////////////////////////
// ROOMS
////////////////////////////////////////////////////////

func (h *SlotHandler) RoomStatus(c *gin.Context) {
	out, err := h.roomStatus.Execute(c.Request.Context(), strings.TrimSpace(c.Query("date")))
	if err != nil {
		writeError(c, err, "failed_to_load_rooms")
		return
	}
	c.JSON(http.StatusOK, out)
}
