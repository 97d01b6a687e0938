package models_test

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MohammedShehe/BrothersCloud-frontend/internal/models"
)

func TestParseDate(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
		wantErr  bool
	}{
		{"Только дата", "2026-10-18", "2026-10-18", false},
		{"RFC3339 timestamp", "2026-10-18T00:00:00.000Z", "2026-10-18", false},
		{"Timestamp без зоны", "2026-10-18T13:45:00", "2026-10-18", false},
		{"Пустая строка", "", "", false},
		{"Мусор", "18/10/2026", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d, err := models.ParseDate(tt.input)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, d.String())
		})
	}
}

func TestDate_DaysUntil(t *testing.T) {
	today := models.MustParseDate("2026-10-18")
	assert.Equal(t, -1, today.DaysUntil(today.AddDays(-1)))
	assert.Equal(t, 0, today.DaysUntil(today))
	assert.Equal(t, 3, today.DaysUntil(models.MustParseDate("2026-10-21")))
	// Переход через границу месяца и года
	assert.Equal(t, 75, today.DaysUntil(models.MustParseDate("2027-01-01")))
}

func TestToday_IgnoresTimeOfDay(t *testing.T) {
	late := time.Date(2026, 10, 18, 23, 59, 59, 0, time.Local)
	early := time.Date(2026, 10, 18, 0, 0, 1, 0, time.Local)
	assert.Equal(t, models.Today(late), models.Today(early))
	assert.Equal(t, "2026-10-18", models.Today(late).String())
}

func TestDate_JSON(t *testing.T) {
	var payload struct {
		A models.Date `json:"a"`
		B models.Date `json:"b"`
		C models.Date `json:"c"`
	}
	err := json.Unmarshal([]byte(`{"a":"2026-01-05","b":null,"c":"not a date"}`), &payload)
	require.NoError(t, err)
	assert.Equal(t, "Jan 5, 2026", payload.A.Display())
	assert.True(t, payload.B.IsZero())
	assert.True(t, payload.C.IsZero(), "нераспознанная дата должна стать пустой, а не ошибкой")
	assert.Equal(t, "-", payload.C.Display())

	out, err := json.Marshal(payload)
	require.NoError(t, err)
	assert.JSONEq(t, `{"a":"2026-01-05","b":null,"c":null}`, string(out))
}

func TestMoneyAndCount_AcceptStrings(t *testing.T) {
	var stats models.RecordStats
	err := json.Unmarshal([]byte(`{"revenue":{"total_orders":"12","total_revenue":"340.5","avg_order_value":28.5}}`), &stats)
	require.NoError(t, err)
	assert.Equal(t, 12, stats.Revenue.TotalOrders.Int())
	assert.Equal(t, "340.50", stats.Revenue.TotalRevenue.String())
	assert.Equal(t, "$28.50", stats.Revenue.AvgOrderValue.Display())

	var empty models.RecordStats
	require.NoError(t, json.Unmarshal([]byte(`{"revenue":{"total_orders":null,"total_revenue":""}}`), &empty))
	assert.Equal(t, 0, empty.Revenue.TotalOrders.Int())
	assert.Equal(t, "$0.00", empty.Revenue.TotalRevenue.Display())

	var bad models.Count
	require.Error(t, json.Unmarshal([]byte(`"twelve"`), &bad))
}

func TestID_AcceptsNumberAndString(t *testing.T) {
	var page models.RecordPage
	err := json.Unmarshal([]byte(`{"records":[{"record_id":42},{"record_id":"abc-1"}],"pagination":{"total":"2"}}`), &page)
	require.NoError(t, err)
	require.Len(t, page.Records, 2)
	assert.Equal(t, models.ID("42"), page.Records[0].ID)
	assert.Equal(t, models.ID("abc-1"), page.Records[1].ID)
	assert.Equal(t, 2, page.Pagination.Total.Int())
}

func TestRecord_Defaults(t *testing.T) {
	r := models.Record{FirstName: "Ali", LastName: ""}
	assert.Equal(t, 1, r.Pairs())
	assert.Equal(t, "Ali", r.AddedBy())
	r.Pair = 3
	assert.Equal(t, 3, r.Pairs())
}

func TestCredentialInput_OmitsEmptyPassword(t *testing.T) {
	in := models.CredentialInput{
		ServiceName:  "Bank",
		Category:     models.DefaultCategory,
		PasswordDate: "2026-10-18",
		Notes:        models.Nullable("  "),
	}
	out, err := json.Marshal(in)
	require.NoError(t, err)
	assert.NotContains(t, string(out), "password\"")
	assert.Contains(t, string(out), `"notes":null`)

	in.Password = "s3cret"
	out, err = json.Marshal(in)
	require.NoError(t, err)
	assert.Contains(t, string(out), `"password":"s3cret"`)
}

func TestEvent_DisplayDate(t *testing.T) {
	assert.Equal(t, "Unknown Date", models.Event{}.DisplayDate())
	assert.Equal(t, "Dec 31, 2026", models.Event{EventDate: models.MustParseDate("2026-12-31")}.DisplayDate())
}
