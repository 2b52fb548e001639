package enum

import (
	"database/sql/driver"
	"encoding/json"
)

// InvoiceStatus represents the lifecycle status of a sales invoice
type InvoiceStatus int

const (
	InvoiceDraft InvoiceStatus = iota
	InvoicePending
	InvoicePaid
	InvoicePartiallyPaid
	InvoiceRefunded
	InvoiceTransferred
	InvoiceCancelled
)

var invoiceStatusNames = [...]string{
	"draft",
	"pending",
	"paid",
	"partially_paid",
	"refunded",
	"transferred",
	"cancelled",
}

func (s InvoiceStatus) String() string {
	if int(s) < 0 || int(s) >= len(invoiceStatusNames) {
		return "draft"
	}
	return invoiceStatusNames[s]
}

// ParseInvoiceStatus maps a wire name to its status. The boolean reports
// whether the name was recognised.
func ParseInvoiceStatus(s string) (InvoiceStatus, bool) {
	for i, name := range invoiceStatusNames {
		if name == s {
			return InvoiceStatus(i), true
		}
	}
	return InvoiceDraft, false
}

// IsOpen reports whether the invoice can still receive payments or transfers
func (s InvoiceStatus) IsOpen() bool {
	return s == InvoiceDraft || s == InvoicePending || s == InvoicePartiallyPaid
}

func (s InvoiceStatus) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.String())
}

func (s *InvoiceStatus) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		var i int
		if err := json.Unmarshal(data, &i); err != nil {
			return err
		}
		*s = InvoiceStatus(i)
		return nil
	}
	for i, name := range invoiceStatusNames {
		if name == str {
			*s = InvoiceStatus(i)
			return nil
		}
	}
	return nil
}

// Value stores the status as its wire name so the column reads naturally
// in SQL and reports.
func (s InvoiceStatus) Value() (driver.Value, error) {
	return s.String(), nil
}

func (s *InvoiceStatus) Scan(value interface{}) error {
	if value == nil {
		*s = InvoiceDraft
		return nil
	}
	switch v := value.(type) {
	case string:
		if parsed, ok := ParseInvoiceStatus(v); ok {
			*s = parsed
		}
	case []byte:
		if parsed, ok := ParseInvoiceStatus(string(v)); ok {
			*s = parsed
		}
	case int64:
		*s = InvoiceStatus(v)
	}
	return nil
}
