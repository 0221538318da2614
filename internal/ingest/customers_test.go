package ingest

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadCustomers(t *testing.T) {
	csv := "Account Number,Email,Customer Name\n" +
		"FBNWSTX123456,john@example.com,John Smith\n" +
		"990022,jane@example.com,Jane Doe\n"

	customers, rowErrs, err := LoadCustomers(strings.NewReader(csv))
	require.NoError(t, err)
	assert.Empty(t, rowErrs)
	require.Len(t, customers, 2)

	assert.Equal(t, "FBNWSTX123456", customers[0].AccountNumber)
	assert.Equal(t, "john@example.com", customers[0].Email)
	assert.Equal(t, "John Smith", customers[0].CustomerName)
}

func TestLoadCustomers_HeaderVariants(t *testing.T) {
	tests := []struct {
		name   string
		header string
	}{
		{name: "canonical", header: "account number,email,customer name"},
		{name: "abbreviated", header: "acct,e-mail,name"},
		{name: "snake case", header: "account_number,email address,customer"},
		{name: "mixed case with spaces", header: "ACCOUNT NO, EMAIL , NAME"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			csv := tt.header + "\nA100,a@example.com,Alice Brown\n"

			customers, rowErrs, err := LoadCustomers(strings.NewReader(csv))
			require.NoError(t, err)
			assert.Empty(t, rowErrs)
			require.Len(t, customers, 1)
			assert.Equal(t, "A100", customers[0].AccountNumber)
			assert.Equal(t, "a@example.com", customers[0].Email)
			assert.Equal(t, "Alice Brown", customers[0].CustomerName)
		})
	}
}

func TestLoadCustomers_InvalidRows(t *testing.T) {
	csv := "account number,email,customer name\n" +
		"A100,good@example.com,Alice Brown\n" +
		",orphan@example.com,No Account\n" +
		"A300,not-an-email,Bad Email\n" +
		"A400,,Missing Email\n" +
		"A500,e@example.com,\n"

	customers, rowErrs, err := LoadCustomers(strings.NewReader(csv))
	require.NoError(t, err)

	require.Len(t, customers, 1)
	assert.Equal(t, "A100", customers[0].AccountNumber)

	require.Len(t, rowErrs, 4)
	assert.Equal(t, 3, rowErrs[0].Row)
	assert.Contains(t, rowErrs[0].Message, "missing account number")
	assert.Equal(t, 4, rowErrs[1].Row)
	assert.Contains(t, rowErrs[1].Message, "invalid email")
	assert.Equal(t, 5, rowErrs[2].Row)
	assert.Contains(t, rowErrs[2].Message, "missing email")
	assert.Equal(t, 6, rowErrs[3].Row)
	assert.Contains(t, rowErrs[3].Message, "missing customer name")
}

func TestLoadCustomers_Malformed(t *testing.T) {
	_, _, err := LoadCustomers(strings.NewReader(""))
	assert.Error(t, err)
}
