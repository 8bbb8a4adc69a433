package appointment

// SlotQuery selects the room-day universe and candidate length for a slot
// listing. ExcludeID is set when the listing feeds an edit form.
type SlotQuery struct {
	Date      string
	Room      string
	Duration  int
	ExcludeID uint
}
