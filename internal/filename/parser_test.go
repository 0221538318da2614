package filename

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/billflow/billflow/internal/model"
)

func TestParse(t *testing.T) {
	tests := []struct {
		name        string
		filename    string
		wantAccount string
		wantName    string
	}{
		{
			name:        "embedded account with name and date",
			filename:    "FBNWSTX123456_John Smith_May 2025.pdf",
			wantAccount: "FBNWSTX123456",
			wantName:    "John Smith",
		},
		{
			name:        "pure digits no delimiter",
			filename:    "12345678.pdf",
			wantAccount: "12345678",
			wantName:    model.UnknownField,
		},
		{
			name:        "embedded account only",
			filename:    "ACCT1234.pdf",
			wantAccount: "ACCT1234",
			wantName:    model.UnknownField,
		},
		{
			name:        "underscore with swapped positions",
			filename:    "Jane Doe_990022.pdf",
			wantAccount: "990022",
			wantName:    "Jane Doe",
		},
		{
			name:        "space delimited without account shape",
			filename:    "990022 Jane 5/2025.pdf",
			wantAccount: "990022",
			wantName:    "Jane",
		},
		{
			name:        "dash delimited",
			filename:    "990022-Jane.pdf",
			wantAccount: "990022",
			wantName:    "Jane",
		},
		{
			name:        "embedded account strips numeric date",
			filename:    "ACCT1234_Jane Doe_5-12-2025.pdf",
			wantAccount: "ACCT1234",
			wantName:    "Jane Doe",
		},
		{
			name:        "bare word",
			filename:    "statement.pdf",
			wantAccount: "statement",
			wantName:    model.UnknownField,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Parse(tt.filename)
			assert.Equal(t, tt.wantAccount, got.AccountNumber)
			assert.Equal(t, tt.wantName, got.CustomerName)
		})
	}
}

func TestParse_Total(t *testing.T) {
	// Every input, however pathological, yields non-empty fields.
	inputs := []string{
		"",
		".pdf",
		"___",
		"---",
		"   ",
		"????",
		"_ _ _",
		"....",
		"a",
		"May 2025.pdf",
		"5/12/2025.pdf",
	}

	for _, in := range inputs {
		got := Parse(in)
		assert.NotEmpty(t, got.AccountNumber, "input %q", in)
		assert.NotEmpty(t, got.CustomerName, "input %q", in)
	}
}
