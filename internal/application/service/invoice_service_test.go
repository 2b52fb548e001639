package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/obakr/qayd-api/internal/domain/entity"
)

func day(d int) time.Time {
	return time.Date(2026, time.March, d, 12, 0, 0, 0, time.UTC)
}

func TestFilterByDateRange(t *testing.T) {
	invoices := []entity.Invoice{
		{InvoiceNumber: "SI-000001", IssueDate: day(1)},
		{InvoiceNumber: "SI-000002", IssueDate: day(5)},
		{InvoiceNumber: "SI-000003", IssueDate: day(10)},
		{InvoiceNumber: "SI-000004", IssueDate: day(20)},
	}

	out := FilterByDateRange(invoices, day(5), day(10))
	require.Len(t, out, 2)
	assert.Equal(t, "SI-000002", out[0].InvoiceNumber)
	assert.Equal(t, "SI-000003", out[1].InvoiceNumber)

	// both bounds are inclusive
	out = FilterByDateRange(invoices, day(1), day(1))
	require.Len(t, out, 1)
	assert.Equal(t, "SI-000001", out[0].InvoiceNumber)
}

func TestFilterByDateRangeOpenBounds(t *testing.T) {
	invoices := []entity.Invoice{
		{InvoiceNumber: "SI-000001", IssueDate: day(1)},
		{InvoiceNumber: "SI-000002", IssueDate: day(15)},
	}

	assert.Len(t, FilterByDateRange(invoices, time.Time{}, day(10)), 1)
	assert.Len(t, FilterByDateRange(invoices, day(10), time.Time{}), 1)
	assert.Len(t, FilterByDateRange(invoices, time.Time{}, time.Time{}), 2)
	assert.Empty(t, FilterByDateRange(nil, time.Time{}, time.Time{}))
}
