package act

import "github.com/BruksfildServices01/dental-scheduler/internal/models"

type PaymentMethod string

const (
	MethodCash     PaymentMethod = "Espèces"
	MethodCheque   PaymentMethod = "Chèque"
	MethodCard     PaymentMethod = "Carte"
	MethodTransfer PaymentMethod = "Virement"
	MethodOther    PaymentMethod = "Autre"
)

// Valid accepts the known methods and the empty value (method not recorded).
func (m PaymentMethod) Valid() bool {
	switch m {
	case "", MethodCash, MethodCheque, MethodCard, MethodTransfer, MethodOther:
		return true
	}
	return false
}

// Balance is what a patient owes on one or more acts, in centimes.
// Remaining goes negative on overpayment.
type Balance struct {
	TotalCents     int64 `json:"total_cents"`
	PaidCents      int64 `json:"paid_cents"`
	RemainingCents int64 `json:"remaining_cents"`
}

func (b Balance) Settled() bool {
	return b.RemainingCents <= 0
}

func ActBalance(a models.Act) Balance {
	var paid int64
	for _, p := range a.Payments {
		paid += p.AmountCents
	}
	return Balance{
		TotalCents:     a.PriceCents,
		PaidCents:      paid,
		RemainingCents: a.PriceCents - paid,
	}
}

// Summarize adds up the balances of acts.
func Summarize(acts []models.Act) Balance {
	var sum Balance
	for _, a := range acts {
		b := ActBalance(a)
		sum.TotalCents += b.TotalCents
		sum.PaidCents += b.PaidCents
		sum.RemainingCents += b.RemainingCents
	}
	return sum
}
