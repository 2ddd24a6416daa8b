package cli

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"smartbook/internal/citytax"
	ierr "smartbook/internal/errors"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := NewRootCmd()
	buf := new(bytes.Buffer)
	cmd.SetOut(buf)
	cmd.SetErr(buf)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return buf.String(), err
}

func TestCalculateCmd(t *testing.T) {
	out, err := run(t, "calculate", "-f", "testdata/group.yaml")
	require.NoError(t, err)

	assert.Contains(t, out, "7f1d2c3e-1111-4a5b-9c8d-000000000001")
	assert.Contains(t, out, "Total: € 10,00")
	assert.Contains(t, out, "autista")
	assert.Contains(t, out, "guida turistica")
	assert.Contains(t, out, "minore")
	assert.Contains(t, out, "Taxable nights: 4  Exempt nights: 6")
}

func TestCalculateCmdBreakdownTable(t *testing.T) {
	out, err := run(t, "calculate", "-f", "testdata/group.yaml")
	require.NoError(t, err)

	var header, leader string
	for _, line := range strings.Split(out, "\n") {
		switch {
		case strings.Contains(line, "GUEST"):
			header = line
		case strings.Contains(line, "Giulia"):
			leader = line
		}
	}

	require.NotEmpty(t, header)
	for _, col := range []string{"ROLE", "TAXABLE", "EXEMPT", "TAX", "EXEMPTION"} {
		assert.Contains(t, header, col)
	}
	assert.Contains(t, header, "│")

	require.NotEmpty(t, leader)
	assert.Contains(t, leader, "leader")
	assert.Contains(t, leader, "€ 5,00")
	assert.NotContains(t, out, "\t")
}

func TestCalculateCmdJSON(t *testing.T) {
	out, err := run(t, "calculate", "-f", "testdata/season.yaml", "--json")
	require.NoError(t, err)

	var results []citytax.BookingTaxResult
	require.NoError(t, json.Unmarshal([]byte(out), &results))
	require.Len(t, results, 3)

	expected := []string{"6", "4", "6"}
	for i, want := range expected {
		assert.True(t, decimal.RequireFromString(want).Equal(results[i].TotalTax), "booking %d: %s", i, results[i].TotalTax)
	}
	assert.True(t, decimal.RequireFromString("3").Equal(results[2].BaseRatePerNight))
}

func TestCalculateCmdErrors(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want error
	}{
		{"missing file", []string{"calculate", "-f", "testdata/nope.yaml"}, ierr.ErrNotFound},
		{"unknown role", []string{"calculate", "-f", "testdata/unknown_role.yaml"}, ierr.ErrUnknownGuestRole},
		{"rate over two decimals", []string{"calculate", "-f", "testdata/precise_rate.yaml"}, ierr.ErrValidation},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := run(t, tt.args...)
			require.Error(t, err)
			assert.True(t, ierr.Is(err, tt.want), "got %v", err)
		})
	}
}

func TestCalculateCmdRequiresFile(t *testing.T) {
	_, err := run(t, "calculate")
	require.Error(t, err)
}

func TestReportCmdText(t *testing.T) {
	out, err := run(t, "report", "-f", "testdata/season.yaml", "--period", "Inverno 2025", "--property", "Hotel Test")
	require.NoError(t, err)

	assert.Contains(t, out, "Periodo: Inverno 2025")
	assert.Contains(t, out, "Struttura: Hotel Test")
	assert.Contains(t, out, "Prenotazioni totali: 3")
	assert.Contains(t, out, "TOTALE IMPOSTA: € 16,00")
	assert.Contains(t, out, "Minori: 1")
}

func TestReportCmdMonth(t *testing.T) {
	out, err := run(t, "report", "-f", "testdata/season.yaml", "--month", "2025-01", "--format", "json")
	require.NoError(t, err)

	var summary citytax.TaxReport
	require.NoError(t, json.Unmarshal([]byte(out), &summary))
	assert.Equal(t, "Gennaio 2025", summary.Period)
	assert.Equal(t, 2, summary.TotalBookings)
	assert.True(t, decimal.NewFromInt(10).Equal(summary.TotalTax))
}

func TestReportCmdMonthSkipsOtherBookings(t *testing.T) {
	out, err := run(t, "report", "-f", "testdata/mixed_months.yaml", "--month", "2025-01", "--format", "json")
	require.NoError(t, err)

	var summary citytax.TaxReport
	require.NoError(t, json.Unmarshal([]byte(out), &summary))
	assert.Equal(t, 1, summary.TotalBookings)
	assert.True(t, decimal.NewFromInt(6).Equal(summary.TotalTax))

	_, err = run(t, "report", "-f", "testdata/mixed_months.yaml", "--month", "2025-03")
	require.Error(t, err)
	assert.True(t, ierr.Is(err, ierr.ErrUnknownGuestRole), "got %v", err)
}

func TestReportCmdCSV(t *testing.T) {
	out, err := run(t, "report", "-f", "testdata/season.yaml", "--format", "csv")
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 4)
	assert.True(t, strings.HasPrefix(lines[0], "booking_id,"))
}

func TestReportCmdRejects(t *testing.T) {
	_, err := run(t, "report", "-f", "testdata/season.yaml", "--format", "pdf")
	assert.True(t, ierr.Is(err, ierr.ErrValidation))

	_, err = run(t, "report", "-f", "testdata/season.yaml", "--month", "January")
	assert.True(t, ierr.Is(err, ierr.ErrValidation))
}

func TestValidateRuleCmd(t *testing.T) {
	out, err := run(t, "validate-rule", "-f", "testdata/season.yaml")
	require.NoError(t, err)
	assert.Contains(t, out, "rule 1 (from 2025-01-01): ok")
	assert.Contains(t, out, "rule 2 (from 2025-02-01): ok")

	out, err = run(t, "validate-rule", "-f", "testdata/overlap.yaml")
	assert.True(t, ierr.Is(err, ierr.ErrAmbiguousRuleConfiguration), "got %v", err)
	assert.Contains(t, out, "overlaps rule 1")

	out, err = run(t, "validate-rule", "-f", "testdata/invalid_rule.yaml")
	assert.True(t, ierr.Is(err, ierr.ErrInvalidRuleConfiguration), "got %v", err)
	assert.Contains(t, out, "unusually high")
}
