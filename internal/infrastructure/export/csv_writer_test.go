package csvexport

import (
	"bytes"
	"encoding/csv"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/rentalops/backend/internal/domain/revenue"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ownerEarning(name string, gross, net string) revenue.StakeholderEarning {
	g := decimal.RequireFromString(gross)
	n := decimal.RequireFromString(net)
	return revenue.StakeholderEarning{
		StakeholderID:   uuid.MustParse("11111111-1111-1111-1111-111111111111"),
		StakeholderName: name,
		StakeholderType: revenue.StakeholderOwner,
		Gross:           g,
		Net:             n,
		Deductions:      g.Sub(n),
		BookingCount:    2,
		Status:          revenue.PayoutStatusPending,
		Properties: []revenue.PropertyEarningLine{
			{PropertyID: uuid.New(), PropertyName: "Beach House"},
		},
	}
}

func TestHeader_PerReportType(t *testing.T) {
	w := NewWriter()

	tests := []struct {
		kind revenue.StakeholderType
		want []string
	}{
		{revenue.StakeholderOwner, []string{"Owner ID", "Owner Name", "Properties", "Bookings", "Gross Revenue", "Deductions", "Net Payout", "Status"}},
		{revenue.StakeholderPropertyManager, []string{"Manager ID", "Manager Name", "Properties", "Bookings", "Management Fees", "Company Retained", "PM Share", "Status"}},
		{revenue.StakeholderReferralAgent, []string{"Agent ID", "Agent Name", "Properties", "Bookings", "Commission", "Status"}},
		{revenue.StakeholderRetailAgent, []string{"Agent ID", "Agent Name", "Properties", "Bookings", "Commission", "Status"}},
		{revenue.StakeholderStaff, []string{"Staff ID", "Staff Name", "Property Names", "Monthly Wage", "Status"}},
	}
	for _, tt := range tests {
		t.Run(string(tt.kind), func(t *testing.T) {
			got, err := w.Header(tt.kind)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestHeader_UnknownType(t *testing.T) {
	_, err := NewWriter().Header("landlord")
	assert.Error(t, err)
}

func TestWrite_OwnerRows(t *testing.T) {
	data, err := NewWriter().Render(revenue.StakeholderOwner, []revenue.StakeholderEarning{
		ownerEarning("Ada Lovelace", "1000", "712.5"),
	})
	require.NoError(t, err)

	records, err := csv.NewReader(bytes.NewReader(data)).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, []string{
		"11111111-1111-1111-1111-111111111111", "Ada Lovelace", "1", "2",
		"1000.00", "287.50", "712.50", "pending",
	}, records[1])
}

func TestWrite_EmptyListStillHasHeader(t *testing.T) {
	data, err := NewWriter().Render(revenue.StakeholderRetailAgent, nil)
	require.NoError(t, err)
	assert.Equal(t, "Agent ID,Agent Name,Properties,Bookings,Commission,Status\n", string(data))
}

func TestWrite_DelimiterAndBOM(t *testing.T) {
	data, err := NewWriter(WithDelimiter(';'), WithBOM(true)).Render(revenue.StakeholderReferralAgent, nil)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(data, utf8BOM))
	assert.Equal(t, "Agent ID;Agent Name;Properties;Bookings;Commission;Status\n", string(data[len(utf8BOM):]))
}

func TestWrite_StaffPropertyNames(t *testing.T) {
	staff := revenue.StakeholderEarning{
		StakeholderID:   uuid.New(),
		StakeholderName: "Gardener",
		Net:             decimal.NewFromInt(800),
		Status:          revenue.PayoutStatusPaid,
		Properties: []revenue.PropertyEarningLine{
			{PropertyID: uuid.New(), PropertyName: "Villa"},
			{PropertyID: uuid.New(), PropertyName: "Cabin"},
		},
	}
	data, err := NewWriter().Render(revenue.StakeholderStaff, []revenue.StakeholderEarning{staff})
	require.NoError(t, err)

	records, err := csv.NewReader(bytes.NewReader(data)).ReadAll()
	require.NoError(t, err)
	assert.Equal(t, "Cabin; Villa", records[1][2])
	assert.Equal(t, "800.00", records[1][3])
	assert.Equal(t, "paid", records[1][4])
}

func TestSanitizeCell(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"", ""},
		{"Ada", "Ada"},
		{"=HYPERLINK(\"x\")", "'=HYPERLINK(\"x\")"},
		{"+1", "'+1"},
		{"@cmd", "'@cmd"},
		{"-12.50", "-12.50"},
		{"-cmd", "'-cmd"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, sanitizeCell(tt.in), tt.in)
	}
}

func TestWrite_NamesAreSanitized(t *testing.T) {
	data, err := NewWriter().Render(revenue.StakeholderOwner, []revenue.StakeholderEarning{
		ownerEarning("=cmd|' /C calc'!A0", "10", "10"),
	})
	require.NoError(t, err)
	records, err := csv.NewReader(bytes.NewReader(data)).ReadAll()
	require.NoError(t, err)
	assert.Equal(t, "'=cmd|' /C calc'!A0", records[1][1])
}

func TestFilename(t *testing.T) {
	period := revenue.NewReportPeriod(
		time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC),
		time.Date(2024, 3, 31, 0, 0, 0, 0, time.UTC),
	)
	assert.Equal(t, "property-manager-payouts-20240301-20240331.csv",
		Filename(revenue.StakeholderPropertyManager, period))
}
