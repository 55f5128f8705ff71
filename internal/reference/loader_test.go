package reference

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"altscore/internal/features"
)

func TestReadCSV(t *testing.T) {
	csvData := strings.Join([]string{
		"business_id,net_cash_flow,burn_rate,is_default",
		"B001,1000,0,0",
		"B002,-200,10,1",
		"B003,3000,0,0",
	}, "\n")

	p, err := ReadCSV(strings.NewReader(csvData))
	require.NoError(t, err)
	assert.Equal(t, 3, p.Size())

	pct, ok := p.Rank(features.ColNetCashFlow, 1500)
	require.True(t, ok)
	assert.InDelta(t, 2.0/3.0, pct, 1e-9)

	// Columns absent from the file load as zero.
	pct, ok = p.Rank(features.ColAdSpendTotal, 1)
	require.True(t, ok)
	assert.InDelta(t, 1.0, pct, 1e-9)
}

func TestReadCSVRejectsBadNumber(t *testing.T) {
	csvData := "net_cash_flow\nnot-a-number\n"
	_, err := ReadCSV(strings.NewReader(csvData))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "net_cash_flow")
}

func TestLoadCSVMissingFile(t *testing.T) {
	_, err := LoadCSV("/nonexistent/reference.csv")
	assert.Error(t, err)
}
