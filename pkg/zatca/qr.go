// Package zatca implements the ZATCA (Saudi tax authority) simplified
// e-invoice QR payload: a base64-encoded TLV structure carrying the seller
// identity, invoice timestamp and amounts.
package zatca

import (
	"bytes"
	"crypto/sha256"
	"encoding/base64"
	"fmt"
	"time"

	qrcode "github.com/skip2/go-qrcode"
)

// TLV tags defined by the ZATCA e-invoicing regulation.
const (
	tagSellerName = 1
	tagVATNumber  = 2
	tagTimestamp  = 3
	tagTotal      = 4
	tagVATAmount  = 5
	tagStamp      = 6
)

// maxPayloadLen is the maximum base64 payload length allowed by ZATCA.
const maxPayloadLen = 700

const timestampLayout = "2006-01-02T15:04:05Z"

// QRData holds the fields encoded into a ZATCA QR payload.
type QRData struct {
	SellerName  string    `json:"seller_name"`
	VATNumber   string    `json:"vat_number"`
	Timestamp   time.Time `json:"timestamp"`
	TotalAmount float64   `json:"total_amount"`
	VATAmount   float64   `json:"vat_amount"`
	Stamp       []byte    `json:"-"`
}

// HasStamp reports whether the payload carried a 32-byte cryptographic stamp.
func (d *QRData) HasStamp() bool {
	return len(d.Stamp) == sha256.Size
}

// Encode builds the base64 TLV payload for the given invoice data. The
// cryptographic stamp (tag 6) is a SHA-256 digest of the other fields; a
// production deployment would replace it with a ZATCA-certified signature.
func Encode(data QRData) (string, error) {
	if data.SellerName == "" {
		return "", fmt.Errorf("zatca: seller name is required")
	}
	if data.VATNumber == "" {
		return "", fmt.Errorf("zatca: VAT number is required")
	}

	stamp := computeStamp(data)

	var buf bytes.Buffer
	if err := writeField(&buf, tagSellerName, []byte(data.SellerName)); err != nil {
		return "", err
	}
	if err := writeField(&buf, tagVATNumber, []byte(data.VATNumber)); err != nil {
		return "", err
	}
	if err := writeField(&buf, tagTimestamp, []byte(data.Timestamp.UTC().Format(timestampLayout))); err != nil {
		return "", err
	}
	if err := writeField(&buf, tagTotal, []byte(fmt.Sprintf("%.2f", data.TotalAmount))); err != nil {
		return "", err
	}
	if err := writeField(&buf, tagVATAmount, []byte(fmt.Sprintf("%.2f", data.VATAmount))); err != nil {
		return "", err
	}
	if err := writeField(&buf, tagStamp, stamp); err != nil {
		return "", err
	}

	payload := base64.StdEncoding.EncodeToString(buf.Bytes())
	if len(payload) > maxPayloadLen {
		return "", fmt.Errorf("zatca: payload exceeds maximum length of %d characters: %d", maxPayloadLen, len(payload))
	}
	return payload, nil
}

// EncodePNG renders the base64 TLV payload as a QR code PNG.
func EncodePNG(data QRData, size int) ([]byte, error) {
	payload, err := Encode(data)
	if err != nil {
		return nil, err
	}
	return qrcode.Encode(payload, qrcode.Medium, size)
}

// Decode parses a base64 TLV payload back into its fields.
func Decode(payload string) (*QRData, error) {
	if len(payload) > maxPayloadLen {
		return nil, fmt.Errorf("zatca: payload exceeds maximum length of %d characters", maxPayloadLen)
	}

	raw, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return nil, fmt.Errorf("zatca: invalid base64 encoding: %w", err)
	}
	return parseTLV(raw)
}

// Validate checks that a payload is a structurally valid ZATCA QR code.
func Validate(payload string) error {
	_, err := Decode(payload)
	return err
}

func writeField(buf *bytes.Buffer, tag byte, value []byte) error {
	if tag != tagStamp && len(value) > 255 {
		return fmt.Errorf("zatca: value too long for tag %d: %d bytes", tag, len(value))
	}
	if tag == tagStamp && len(value) != sha256.Size {
		return fmt.Errorf("zatca: stamp must be exactly %d bytes, got %d", sha256.Size, len(value))
	}
	buf.WriteByte(tag)
	buf.WriteByte(byte(len(value)))
	buf.Write(value)
	return nil
}

func parseTLV(raw []byte) (*QRData, error) {
	data := &QRData{}
	offset := 0

	for offset < len(raw) {
		if offset+2 > len(raw) {
			return nil, fmt.Errorf("zatca: incomplete TLV field at offset %d", offset)
		}

		tag := raw[offset]
		length := int(raw[offset+1])
		offset += 2

		if offset+length > len(raw) {
			return nil, fmt.Errorf("zatca: incomplete TLV value at offset %d", offset)
		}
		value := raw[offset : offset+length]
		offset += length

		switch tag {
		case tagSellerName:
			data.SellerName = string(value)
		case tagVATNumber:
			data.VATNumber = string(value)
		case tagTimestamp:
			ts, err := time.Parse(timestampLayout, string(value))
			if err != nil {
				return nil, fmt.Errorf("zatca: invalid timestamp: %w", err)
			}
			data.Timestamp = ts
		case tagTotal:
			if _, err := fmt.Sscanf(string(value), "%f", &data.TotalAmount); err != nil {
				return nil, fmt.Errorf("zatca: invalid total amount: %w", err)
			}
		case tagVATAmount:
			if _, err := fmt.Sscanf(string(value), "%f", &data.VATAmount); err != nil {
				return nil, fmt.Errorf("zatca: invalid VAT amount: %w", err)
			}
		case tagStamp:
			if length != sha256.Size {
				return nil, fmt.Errorf("zatca: stamp must be %d bytes, got %d", sha256.Size, length)
			}
			data.Stamp = append([]byte(nil), value...)
		default:
			return nil, fmt.Errorf("zatca: unknown tag %d", tag)
		}
	}

	if data.SellerName == "" {
		return nil, fmt.Errorf("zatca: missing seller name (tag 1)")
	}
	if data.VATNumber == "" {
		return nil, fmt.Errorf("zatca: missing VAT number (tag 2)")
	}
	if data.Timestamp.IsZero() {
		return nil, fmt.Errorf("zatca: missing timestamp (tag 3)")
	}
	if !data.HasStamp() {
		return nil, fmt.Errorf("zatca: missing cryptographic stamp (tag 6)")
	}

	return data, nil
}

func computeStamp(data QRData) []byte {
	payload := fmt.Sprintf("%s|%s|%s|%.2f|%.2f",
		data.SellerName,
		data.VATNumber,
		data.Timestamp.UTC().Format(timestampLayout),
		data.TotalAmount,
		data.VATAmount,
	)
	sum := sha256.Sum256([]byte(payload))
	return sum[:]
}
