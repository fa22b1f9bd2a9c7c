package domain

type InvoiceID int64

type InvoiceStatus string

const (
	InvoicePending   InvoiceStatus = "BEKLEMEDE"
	InvoicePaid      InvoiceStatus = "ODENDI"
	InvoiceCancelled InvoiceStatus = "IPTAL_EDILDI"
)

type Invoice struct {
	ID          InvoiceID     `json:"id,omitempty"`
	Appointment *Appointment  `json:"appointment,omitempty"`
	Amount      float64       `json:"tutar"`
	Description string        `json:"aciklama,omitempty"`
	IssuedAt    string        `json:"tarih,omitempty"`
	Status      InvoiceStatus `json:"status,omitempty"`
}

func (i Invoice) IsPaid() bool {
	return i.Status == InvoicePaid
}

// TotalAmount sums every invoice regardless of status.
func TotalAmount(invoices []Invoice) float64 {
	var total float64
	for _, invoice := range invoices {
		total += invoice.Amount
	}
	return total
}
