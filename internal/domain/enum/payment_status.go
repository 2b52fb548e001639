package enum

import (
	"database/sql/driver"
	"encoding/json"
)

// PaymentStatus represents the status of a payment record
type PaymentStatus int

const (
	PaymentPending PaymentStatus = iota
	PaymentCompleted
	PaymentRefunded
	PaymentFailed
	PaymentCancelled
)

var paymentStatusNames = [...]string{
	"pending",
	"completed",
	"refunded",
	"failed",
	"cancelled",
}

func (s PaymentStatus) String() string {
	if int(s) < 0 || int(s) >= len(paymentStatusNames) {
		return "pending"
	}
	return paymentStatusNames[s]
}

func (s PaymentStatus) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.String())
}

func (s *PaymentStatus) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		var i int
		if err := json.Unmarshal(data, &i); err != nil {
			return err
		}
		*s = PaymentStatus(i)
		return nil
	}
	for i, name := range paymentStatusNames {
		if name == str {
			*s = PaymentStatus(i)
			return nil
		}
	}
	return nil
}

func (s PaymentStatus) Value() (driver.Value, error) {
	return s.String(), nil
}

func (s *PaymentStatus) Scan(value interface{}) error {
	if value == nil {
		*s = PaymentPending
		return nil
	}
	name := ""
	switch v := value.(type) {
	case string:
		name = v
	case []byte:
		name = string(v)
	case int64:
		*s = PaymentStatus(v)
		return nil
	}
	for i, n := range paymentStatusNames {
		if n == name {
			*s = PaymentStatus(i)
			return nil
		}
	}
	return nil
}
