package fmp

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) Client {
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	c := NewClient("test-key")
	c.HttpClient.
		SetBaseURL(server.URL).
		SetRetryWaitTime(time.Millisecond).
		SetRetryMaxWaitTime(5 * time.Millisecond)
	return c
}

func TestClient_GetIncomeStatements(t *testing.T) {
	t.Run("parses numeric fields", func(t *testing.T) {
		c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			require.Equal(t, "/v3/income-statement/AAPL", r.URL.Path)
			require.Equal(t, "annual", r.URL.Query().Get("period"))
			require.Equal(t, "test-key", r.URL.Query().Get("apikey"))
			w.Write([]byte(`[
				{"date": "2023-09-30", "symbol": "AAPL", "calendarYear": "2023", "revenue": 383285000000, "netIncome": 96995000000, "eps": 6.16, "link": "https://example.com"},
				{"date": "2022-09-24", "symbol": "AAPL", "calendarYear": "2022", "revenue": 394328000000, "netIncome": 99803000000, "eps": 6.15, "link": null}
			]`))
		})

		statements, err := c.GetIncomeStatements(context.Background(), "AAPL")
		require.NoError(t, err)
		require.Len(t, statements, 2)

		require.Equal(t, "2023-09-30", statements[0].Date)
		require.Equal(t, "2023", statements[0].CalendarYear)
		require.Equal(t, "383285000000", statements[0].Fields["revenue"].String())
		require.Equal(t, "6.16", statements[0].Fields["eps"].String())
		_, ok := statements[0].Fields["link"]
		require.False(t, ok)
	})

	t.Run("api error message", func(t *testing.T) {
		c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusUnauthorized)
			w.Write([]byte(`{"Error Message": "Invalid API KEY."}`))
		})

		_, err := c.GetIncomeStatements(context.Background(), "AAPL")
		require.ErrorContains(t, err, "Invalid API KEY.")
	})

	t.Run("non array body", func(t *testing.T) {
		c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`{"Error Message": "Limit Reach"}`))
		})

		_, err := c.GetIncomeStatements(context.Background(), "AAPL")
		require.ErrorContains(t, err, "Limit Reach")
	})

	t.Run("retries when rate limited", func(t *testing.T) {
		var calls int32
		c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			if atomic.AddInt32(&calls, 1) == 1 {
				w.WriteHeader(http.StatusTooManyRequests)
				return
			}
			w.Write([]byte(`[]`))
		})

		statements, err := c.GetIncomeStatements(context.Background(), "AAPL")
		require.NoError(t, err)
		require.Empty(t, statements)
		require.Equal(t, int32(2), atomic.LoadInt32(&calls))
	})
}

func TestClient_GetHistoricalMarketCaps(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/v3/historical-market-capitalization/MSFT", r.URL.Path)
		require.Equal(t, "2023-07-30", r.URL.Query().Get("to"))
		w.Write([]byte(`[
			{"symbol": "MSFT", "date": "2023-06-30", "marketCap": 2532080000000},
			{"symbol": "MSFT", "date": "2023-06-29", "marketCap": 2500000000000.5}
		]`))
	})

	marketCaps, err := c.GetHistoricalMarketCaps(
		context.Background(),
		"MSFT",
		time.Date(2023, 7, 30, 0, 0, 0, 0, time.UTC),
	)
	require.NoError(t, err)
	require.Len(t, marketCaps, 2)
	require.Equal(t, "2023-06-30", marketCaps[0].Date)
	require.Equal(t, "2500000000000.5", marketCaps[1].MarketCap.String())
}
