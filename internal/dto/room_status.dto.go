package dto

type RoomStatusDTO struct {
	Room         string `json:"room"`
	Appointments int    `json:"appointments"`
	Next         string `json:"next,omitempty"`
}

type RoomsStatusDTO struct {
	Date  string          `json:"date"`
	Rooms []RoomStatusDTO `json:"rooms"`
}

type SlotsDTO struct {
	Date     string    `json:"date"`
	Room     string    `json:"room"`
	Duration int       `json:"duration"`
	Slots    []SlotDTO `json:"slots"`
}

type SlotDTO struct {
	Time      string `json:"time"`
	Available bool   `json:"available"`
}

type PatientDTO struct {
	ID          string `json:"id"`
	DisplayID   string `json:"display_id"`
	FirstName   string `json:"first_name"`
	LastName    string `json:"last_name"`
	CINPassport string `json:"cin_passport,omitempty"`
	BirthDate   string `json:"birth_date,omitempty"`
	Phone       string `json:"phone,omitempty"`
	Email       string `json:"email,omitempty"`
	Notes       string `json:"notes,omitempty"`
}
