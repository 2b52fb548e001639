package zatca

import (
	"encoding/base64"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleData() QRData {
	return QRData{
		SellerName:  "Qayd Trading Co",
		VATNumber:   "310122393500003",
		Timestamp:   time.Date(2026, 3, 14, 9, 30, 0, 0, time.UTC),
		TotalAmount: 23,
		VATAmount:   3,
	}
}

func TestEncodeDecodeRoundTrip(t *testing.T) {
	payload, err := Encode(sampleData())
	require.NoError(t, err)
	require.NotEmpty(t, payload)

	decoded, err := Decode(payload)
	require.NoError(t, err)

	assert.Equal(t, "Qayd Trading Co", decoded.SellerName)
	assert.Equal(t, "310122393500003", decoded.VATNumber)
	assert.True(t, decoded.Timestamp.Equal(time.Date(2026, 3, 14, 9, 30, 0, 0, time.UTC)))
	assert.InDelta(t, 23.0, decoded.TotalAmount, 1e-9)
	assert.InDelta(t, 3.0, decoded.VATAmount, 1e-9)
	assert.True(t, decoded.HasStamp())
}

func TestEncodeRequiresSellerIdentity(t *testing.T) {
	data := sampleData()
	data.SellerName = ""
	_, err := Encode(data)
	assert.Error(t, err)

	data = sampleData()
	data.VATNumber = ""
	_, err = Encode(data)
	assert.Error(t, err)
}

func TestValidateRejectsGarbage(t *testing.T) {
	assert.Error(t, Validate("not-base64!!"))

	// Valid base64 but not TLV
	junk := base64.StdEncoding.EncodeToString([]byte("hello world"))
	assert.Error(t, Validate(junk))
}

func TestValidateRejectsTruncatedPayload(t *testing.T) {
	payload, err := Encode(sampleData())
	require.NoError(t, err)

	raw, err := base64.StdEncoding.DecodeString(payload)
	require.NoError(t, err)

	truncated := base64.StdEncoding.EncodeToString(raw[:len(raw)-10])
	assert.Error(t, Validate(truncated))
}

func TestEncodePNG(t *testing.T) {
	png, err := EncodePNG(sampleData(), 256)
	require.NoError(t, err)
	assert.NotEmpty(t, png)
	// PNG magic bytes
	assert.Equal(t, []byte{0x89, 'P', 'N', 'G'}, png[:4])
}
