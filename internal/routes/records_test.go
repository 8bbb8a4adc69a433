package routes

import (
	"bytes"
	"image"
	"image/png"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"testing"
)

type actBody struct {
	ID     uint   `json:"id"`
	Type   string `json:"type"`
	Phases []struct {
		ID     uint `json:"id"`
		Photos []struct {
			ID    uint `json:"id"`
			Width int  `json:"width"`
		} `json:"photos"`
	} `json:"phases"`
	Payments []struct {
		ID uint `json:"id"`
	} `json:"payments"`
	Balance struct {
		PaidCents      int64 `json:"paid_cents"`
		RemainingCents int64 `json:"remaining_cents"`
		Settled        bool  `json:"settled"`
	} `json:"balance"`
}

func (s *server) upload(t *testing.T, path, field, filename, contentType string, data []byte) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	h := make(textproto.MIMEHeader)
	h.Set("Content-Disposition", `form-data; name="`+field+`"; filename="`+filename+`"`)
	h.Set("Content-Type", contentType)
	part, err := w.CreatePart(h)
	if err != nil {
		t.Fatalf("multipart: %v", err)
	}
	_, _ = part.Write(data)
	_ = w.Close()

	req := httptest.NewRequest(http.MethodPost, path, &buf)
	req.Header.Set("Content-Type", w.FormDataContentType())
	rec := httptest.NewRecorder()
	s.router.ServeHTTP(rec, req)
	return rec
}

func TestPatientUpdateAndDelete(t *testing.T) {
	s := newServer(t)
	id := s.createPatient(t)

	rec := s.do(t, http.MethodPut, "/api/patients/"+id, map[string]any{
		"first_name": "Salma",
		"last_name":  "Bennani",
		"phone":      "0612345678",
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("update status = %d body=%s", rec.Code, rec.Body.String())
	}
	got := decode[struct {
		ID       string `json:"id"`
		LastName string `json:"last_name"`
	}](t, rec)
	if got.ID != id || got.LastName != "Bennani" {
		t.Fatalf("updated = %+v", got)
	}

	rec = s.do(t, http.MethodPut, "/api/patients/"+id, map[string]any{"first_name": "Salma"})
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("incomplete update status = %d", rec.Code)
	}

	rec = s.do(t, http.MethodPost, "/api/patients/"+id+"/acts", map[string]any{"type": "Extraction", "tooth": "48", "price_cents": 50000})
	if rec.Code != http.StatusCreated {
		t.Fatalf("act status = %d body=%s", rec.Code, rec.Body.String())
	}
	actID := decode[actBody](t, rec).ID

	rec = s.do(t, http.MethodDelete, "/api/patients/"+id, nil)
	if rec.Code != http.StatusConflict || decode[errorBody](t, rec).Code != "patient_has_acts" {
		t.Fatalf("delete with acts = %d body=%s", rec.Code, rec.Body.String())
	}

	if rec = s.do(t, http.MethodDelete, "/api/acts/"+itoa(actID), nil); rec.Code != http.StatusNoContent {
		t.Fatalf("act delete = %d", rec.Code)
	}
	if rec = s.do(t, http.MethodDelete, "/api/patients/"+id, nil); rec.Code != http.StatusNoContent {
		t.Fatalf("patient delete = %d body=%s", rec.Code, rec.Body.String())
	}
	if rec = s.do(t, http.MethodGet, "/api/patients/"+id, nil); rec.Code != http.StatusNotFound {
		t.Fatalf("get deleted patient = %d", rec.Code)
	}
}

func TestActPhasesPhotosAndPayments(t *testing.T) {
	s := newServer(t)
	id := s.createPatient(t)

	rec := s.do(t, http.MethodPost, "/api/patients/"+id+"/acts", map[string]any{
		"type": "Couronne", "tooth": "26", "price_cents": 300000, "date": "2024-06-01",
	})
	if rec.Code != http.StatusCreated {
		t.Fatalf("create act = %d body=%s", rec.Code, rec.Body.String())
	}
	a := decode[actBody](t, rec)

	rec = s.do(t, http.MethodPost, "/api/acts/"+itoa(a.ID)+"/phases", map[string]any{"description": "Préparation", "date": "2024-06-01"})
	if rec.Code != http.StatusCreated {
		t.Fatalf("create phase = %d body=%s", rec.Code, rec.Body.String())
	}
	phaseID := decode[struct {
		ID uint `json:"id"`
	}](t, rec).ID

	var img bytes.Buffer
	_ = png.Encode(&img, image.NewRGBA(image.Rect(0, 0, 128, 96)))
	rec = s.upload(t, "/api/phases/"+itoa(phaseID)+"/photos", "photo", "prep.png", "image/png", img.Bytes())
	if rec.Code != http.StatusCreated {
		t.Fatalf("upload = %d body=%s", rec.Code, rec.Body.String())
	}
	photo := decode[struct {
		ID          uint   `json:"id"`
		Width       int    `json:"width"`
		ContentType string `json:"content_type"`
	}](t, rec)
	if photo.Width != 64 || photo.ContentType != "image/webp" {
		t.Fatalf("photo = %+v", photo)
	}

	rec = s.do(t, http.MethodGet, "/api/photos/"+itoa(photo.ID), nil)
	if rec.Code != http.StatusOK || rec.Header().Get("Content-Type") != "image/webp" {
		t.Fatalf("photo get = %d %q", rec.Code, rec.Header().Get("Content-Type"))
	}
	if !bytes.HasPrefix(rec.Body.Bytes(), []byte("RIFF")) {
		t.Fatalf("photo body is not webp")
	}

	rec = s.upload(t, "/api/phases/"+itoa(phaseID)+"/photos", "photo", "notes.txt", "text/plain", []byte("hello"))
	if rec.Code != http.StatusBadRequest || decode[errorBody](t, rec).Code != "invalid_photo" {
		t.Fatalf("text upload = %d body=%s", rec.Code, rec.Body.String())
	}
	rec = s.upload(t, "/api/phases/"+itoa(phaseID)+"/photos", "file", "prep.png", "image/png", img.Bytes())
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("wrong field = %d", rec.Code)
	}

	rec = s.do(t, http.MethodPost, "/api/acts/"+itoa(a.ID)+"/payments", map[string]any{"amount_cents": 100000, "method": "Espèces"})
	if rec.Code != http.StatusCreated {
		t.Fatalf("payment = %d body=%s", rec.Code, rec.Body.String())
	}
	card := decode[actBody](t, rec)
	if card.Balance.PaidCents != 100000 || card.Balance.RemainingCents != 200000 || card.Balance.Settled {
		t.Fatalf("balance = %+v", card.Balance)
	}
	if len(card.Phases) != 1 || len(card.Phases[0].Photos) != 1 {
		t.Fatalf("card phases = %+v", card.Phases)
	}

	rec = s.do(t, http.MethodPut, "/api/payments/"+itoa(card.Payments[0].ID), map[string]any{"amount_cents": 300000, "method": "Carte"})
	if got := decode[actBody](t, rec); rec.Code != http.StatusOK || !got.Balance.Settled {
		t.Fatalf("payment update = %d body=%s", rec.Code, rec.Body.String())
	}

	rec = s.do(t, http.MethodPost, "/api/acts/"+itoa(a.ID)+"/payments", map[string]any{"amount_cents": 100, "method": "Bitcoin"})
	if rec.Code != http.StatusBadRequest || decode[errorBody](t, rec).Code != "invalid_payment" {
		t.Fatalf("bad method = %d body=%s", rec.Code, rec.Body.String())
	}

	rec = s.do(t, http.MethodGet, "/api/patients/"+id+"/acts", nil)
	summary := decode[struct {
		Acts    []actBody `json:"acts"`
		Summary struct {
			TotalCents int64 `json:"total_cents"`
			PaidCents  int64 `json:"paid_cents"`
		} `json:"summary"`
	}](t, rec)
	if len(summary.Acts) != 1 || summary.Summary.TotalCents != 300000 || summary.Summary.PaidCents != 300000 {
		t.Fatalf("summary = %s", rec.Body.String())
	}

	if rec = s.do(t, http.MethodDelete, "/api/phases/"+itoa(phaseID), nil); rec.Code != http.StatusNoContent {
		t.Fatalf("phase delete = %d", rec.Code)
	}
	if rec = s.do(t, http.MethodGet, "/api/photos/"+itoa(photo.ID), nil); rec.Code != http.StatusNotFound {
		t.Fatalf("photo after phase delete = %d", rec.Code)
	}
	if rec = s.do(t, http.MethodGet, "/api/acts/999", nil); rec.Code != http.StatusNotFound {
		t.Fatalf("missing act = %d", rec.Code)
	}
}

func TestLabWorksEndpoints(t *testing.T) {
	s := newServer(t)
	id := s.createPatient(t)

	rec := s.do(t, http.MethodPost, "/api/lab-works", map[string]any{
		"lab_name": "Labo Atlas", "type_work": "Bridge", "tooth": "14-16", "patient_id": id, "date_sent": "2024-06-01",
	})
	if rec.Code != http.StatusCreated {
		t.Fatalf("create = %d body=%s", rec.Code, rec.Body.String())
	}
	lw := decode[struct {
		ID           uint   `json:"id"`
		PatientName  string `json:"patient_name"`
		Status       string `json:"status"`
		DateExpected string `json:"date_expected"`
	}](t, rec)
	if lw.PatientName != "Salma Chraibi" || lw.Status != "Not Started" || lw.DateExpected != "2024-06-08" {
		t.Fatalf("lab work = %+v", lw)
	}

	rec = s.do(t, http.MethodPut, "/api/lab-works/"+itoa(lw.ID), map[string]any{
		"lab_name": "Labo Atlas", "type_work": "Bridge", "patient_id": id, "status": "Ready", "date_sent": "2024-06-01",
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("update = %d body=%s", rec.Code, rec.Body.String())
	}

	rec = s.do(t, http.MethodGet, "/api/lab-works?query=atlas&status=Ready", nil)
	if decode[struct {
		Total int `json:"total"`
	}](t, rec).Total != 1 {
		t.Fatalf("search body=%s", rec.Body.String())
	}
	rec = s.do(t, http.MethodGet, "/api/lab-works?status=Lost", nil)
	if rec.Code != http.StatusBadRequest || decode[errorBody](t, rec).Code != "invalid_lab_status" {
		t.Fatalf("bad status = %d body=%s", rec.Code, rec.Body.String())
	}

	if rec = s.do(t, http.MethodPost, "/api/lab-works", map[string]any{"type_work": "Bridge"}); rec.Code != http.StatusBadRequest {
		t.Fatalf("missing lab name = %d", rec.Code)
	}

	if rec = s.do(t, http.MethodDelete, "/api/lab-works/"+itoa(lw.ID), nil); rec.Code != http.StatusNoContent {
		t.Fatalf("delete = %d", rec.Code)
	}
	if rec = s.do(t, http.MethodGet, "/api/lab-works/"+itoa(lw.ID), nil); rec.Code != http.StatusNotFound {
		t.Fatalf("get deleted = %d", rec.Code)
	}
}
