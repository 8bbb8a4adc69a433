package act

import "github.com/BruksfildServices01/dental-scheduler/internal/httperr"

var (
	ErrActNotFound     = httperr.ErrBusiness("act_not_found")
	ErrPhaseNotFound   = httperr.ErrBusiness("phase_not_found")
	ErrPaymentNotFound = httperr.ErrBusiness("payment_not_found")
	ErrPhotoNotFound   = httperr.ErrBusiness("photo_not_found")

	ErrInvalidAct     = httperr.ErrBusiness("invalid_act")
	ErrInvalidPhase   = httperr.ErrBusiness("invalid_phase")
	ErrInvalidPayment = httperr.ErrBusiness("invalid_payment")
	ErrInvalidPhoto   = httperr.ErrBusiness("invalid_photo")
	ErrPhotoTooLarge  = httperr.ErrBusiness("photo_too_large")
)
