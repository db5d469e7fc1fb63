package customers

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/northlight-bi/northlight/internal/analytics"
	"github.com/northlight-bi/northlight/internal/listview"
	"github.com/northlight-bi/northlight/internal/shared"
)

type mockRepository struct {
	rows          []Row
	countries     []string
	cities        []string
	detail        *DetailRow
	detailErr     error
	stats         StatsRow
	lastThreshold float64
}

func (m *mockRepository) FetchAll(ctx context.Context) ([]Row, error)     { return m.rows, nil }
func (m *mockRepository) Countries(ctx context.Context) ([]string, error) { return m.countries, nil }
func (m *mockRepository) Cities(ctx context.Context) ([]string, error)    { return m.cities, nil }

func (m *mockRepository) Detail(ctx context.Context, id string) (*DetailRow, error) {
	if m.detailErr != nil {
		return nil, m.detailErr
	}
	return m.detail, nil
}

func (m *mockRepository) Stats(ctx context.Context, vipThreshold float64) (StatsRow, error) {
	m.lastThreshold = vipThreshold
	return m.stats, nil
}

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func directoryRows() []Row {
	last := date(2024, time.July, 9)
	return []Row{
		{ID: "ALFKI", CompanyName: "Alfreds Futterkiste", ContactName: "Maria Anders",
			City: "Berlin", Country: "Germany", TotalOrders: 2, TotalRevenue: 5986, LastOrderDate: &last},
		{ID: "ANATR", CompanyName: "Ana Trujillo Emparedados", ContactName: "Ana Trujillo",
			City: "Mexico City", Country: "Mexico", TotalOrders: 1, TotalRevenue: 188.1, LastOrderDate: &last},
		{ID: "FISSA", CompanyName: "FISSA Fabrica", ContactName: "Diego Roel",
			City: "Madrid", Country: "Spain", TotalOrders: 0, TotalRevenue: 0, LastOrderDate: nil},
	}
}

func TestFetchDerivesSegmentsAndLastOrder(t *testing.T) {
	svc := NewService(&mockRepository{rows: directoryRows()}, 12, 5000)

	page, err := svc.Fetch(context.Background(), svc.DefaultState())
	require.NoError(t, err)
	require.Len(t, page.Rows, 3)

	byID := map[string]Customer{}
	for _, c := range page.Rows {
		byID[c.ID] = c
	}
	assert.Equal(t, analytics.SegmentVIP, byID["ALFKI"].Segment)
	assert.Equal(t, analytics.SegmentRegular, byID["ANATR"].Segment)
	assert.Equal(t, analytics.SegmentNew, byID["FISSA"].Segment)

	assert.Equal(t, "Jul 09, 2024", byID["ALFKI"].LastOrderDate)
	assert.Equal(t, NeverOrdered, byID["FISSA"].LastOrderDate)
}

func TestFetchDefaultSortIsCompanyAscending(t *testing.T) {
	svc := NewService(&mockRepository{rows: directoryRows()}, 12, 0)

	page, err := svc.Fetch(context.Background(), svc.DefaultState())
	require.NoError(t, err)
	assert.Equal(t, "ALFKI", page.Rows[0].ID)
	assert.Equal(t, "FISSA", page.Rows[2].ID)
}

func TestFetchFiltersCombine(t *testing.T) {
	svc := NewService(&mockRepository{rows: directoryRows()}, 12, 5000)

	st := svc.DefaultState().
		WithFilter(FilterCountry, "Germany").
		WithFilter(FilterSegment, analytics.SegmentVIP)
	page, err := svc.Fetch(context.Background(), st)
	require.NoError(t, err)
	require.Len(t, page.Rows, 1)
	assert.Equal(t, "ALFKI", page.Rows[0].ID)

	st = st.WithFilter(FilterSegment, analytics.SegmentNew)
	page, err = svc.Fetch(context.Background(), st)
	require.NoError(t, err)
	assert.Empty(t, page.Rows)
}

func TestFetchSearchMatchesCityAndCountry(t *testing.T) {
	svc := NewService(&mockRepository{rows: directoryRows()}, 12, 5000)

	page, err := svc.Fetch(context.Background(), svc.DefaultState().WithSearch("spain"))
	require.NoError(t, err)
	require.Len(t, page.Rows, 1)
	assert.Equal(t, "FISSA", page.Rows[0].ID)
}

func TestDropdownValuesPrependAll(t *testing.T) {
	repo := &mockRepository{countries: []string{"Germany", "Mexico"}, cities: []string{"Berlin"}}
	svc := NewService(repo, 12, 0)

	countries, err := svc.Countries(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{listview.All, "Germany", "Mexico"}, countries)

	cities, err := svc.Cities(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{listview.All, "Berlin"}, cities)
}

func TestDetailFormatsOrderHistory(t *testing.T) {
	shipped := date(2024, time.January, 16)
	repo := &mockRepository{detail: &DetailRow{
		ID: "ALFKI", CompanyName: "Alfreds Futterkiste", ContactName: "Maria Anders",
		City: "Berlin", Country: "Germany",
		Orders: []HistoryRow{
			{OrderID: 10251, OrderDate: date(2024, time.July, 9), ShippedDate: nil, TotalAmount: 5580},
			{OrderID: 10248, OrderDate: date(2024, time.January, 4), ShippedDate: &shipped, TotalAmount: 406},
		},
	}}
	svc := NewService(repo, 12, 5000)

	detail, err := svc.Detail(context.Background(), "ALFKI")
	require.NoError(t, err)
	require.Len(t, detail.Orders, 2)

	pending := detail.Orders[0]
	assert.Equal(t, analytics.StatusPending, pending.Status)
	assert.Nil(t, pending.ShippedDate)
	assert.Equal(t, "Jul 09, 2024", pending.OrderDate)

	done := detail.Orders[1]
	assert.Equal(t, analytics.StatusShipped, done.Status)
	require.NotNil(t, done.ShippedDate)
	assert.Equal(t, "Jan 16, 2024", *done.ShippedDate)
}

func TestDetailNotFound(t *testing.T) {
	svc := NewService(&mockRepository{detailErr: shared.ErrNotFound}, 12, 0)

	_, err := svc.Detail(context.Background(), "NOPE")
	require.ErrorIs(t, err, shared.ErrNotFound)
}

func TestStatsDerivesAverageAndPassesThreshold(t *testing.T) {
	repo := &mockRepository{stats: StatsRow{
		TotalCustomers: 4, TotalRevenue: 6000, VIPCustomers: 1, NewCustomers: 1, CountriesServed: 3,
	}}
	svc := NewService(repo, 12, 7500)

	stats, err := svc.Stats(context.Background())
	require.NoError(t, err)
	assert.InDelta(t, 1500, stats.AvgRevenuePerCustomer, 1e-9)
	assert.Equal(t, 7500.0, repo.lastThreshold)
}

func TestStatsEmptyDirectory(t *testing.T) {
	svc := NewService(&mockRepository{}, 12, 0)

	stats, err := svc.Stats(context.Background())
	require.NoError(t, err)
	assert.Zero(t, stats.AvgRevenuePerCustomer, "zero customers must not divide")
}
