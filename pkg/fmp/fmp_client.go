package fmp

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/shopspring/decimal"
	"github.com/tidwall/gjson"
)

const DefaultBaseURL = "https://financialmodelingprep.com/api"

type Client struct {
	HttpClient *resty.Client
}

// Statement is one annual statement as returned by the API. Numeric
// attributes land in Fields, keyed by their JSON name.
type Statement struct {
	Symbol       string
	Date         string
	CalendarYear string
	Fields       map[string]decimal.Decimal
}

type MarketCap struct {
	Symbol    string
	Date      string
	MarketCap decimal.Decimal
}

func NewClient(apiKey string) Client {
	httpClient := resty.New().
		SetBaseURL(DefaultBaseURL).
		SetQueryParam("apikey", apiKey).
		SetTimeout(30 * time.Second).
		SetRetryCount(3).
		SetRetryWaitTime(5 * time.Second).
		SetRetryMaxWaitTime(60 * time.Second).
		AddRetryCondition(func(r *resty.Response, err error) bool {
			return r != nil && r.StatusCode() == http.StatusTooManyRequests
		})

	return Client{
		HttpClient: httpClient,
	}
}

func (c Client) GetIncomeStatements(ctx context.Context, symbol string) ([]Statement, error) {
	body, err := c.get(ctx, "/v3/income-statement/{symbol}", symbol, map[string]string{
		"period": "annual",
	})
	if err != nil {
		return nil, fmt.Errorf("failed to get income statements for %s: %w", symbol, err)
	}
	return parseStatements(body)
}

func (c Client) GetBalanceSheetStatements(ctx context.Context, symbol string) ([]Statement, error) {
	body, err := c.get(ctx, "/v3/balance-sheet-statement/{symbol}", symbol, map[string]string{
		"period": "annual",
	})
	if err != nil {
		return nil, fmt.Errorf("failed to get balance sheet statements for %s: %w", symbol, err)
	}
	return parseStatements(body)
}

func (c Client) GetHistoricalMarketCaps(ctx context.Context, symbol string, to time.Time) ([]MarketCap, error) {
	body, err := c.get(ctx, "/v3/historical-market-capitalization/{symbol}", symbol, map[string]string{
		"to": to.Format(time.DateOnly),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to get market caps for %s: %w", symbol, err)
	}

	out := []MarketCap{}
	for _, item := range body.Array() {
		marketCap, err := decimal.NewFromString(item.Get("marketCap").Raw)
		if err != nil {
			return nil, fmt.Errorf("failed to parse market cap %q: %w", item.Get("marketCap").Raw, err)
		}
		out = append(out, MarketCap{
			Symbol:    item.Get("symbol").String(),
			Date:      item.Get("date").String(),
			MarketCap: marketCap,
		})
	}

	return out, nil
}

func (c Client) get(ctx context.Context, path, symbol string, params map[string]string) (*gjson.Result, error) {
	response, err := c.HttpClient.R().
		SetContext(ctx).
		SetPathParam("symbol", symbol).
		SetQueryParams(params).
		Get(path)
	if err != nil {
		return nil, err
	}

	if response.StatusCode() != http.StatusOK {
		return nil, fmt.Errorf("failed with status code %d: %s", response.StatusCode(), errorMessage(response.Body()))
	}
	if !gjson.ValidBytes(response.Body()) {
		return nil, fmt.Errorf("received invalid json")
	}

	body := gjson.ParseBytes(response.Body())
	if !body.IsArray() {
		return nil, fmt.Errorf("expected array response: %s", errorMessage(response.Body()))
	}

	return &body, nil
}

func errorMessage(body []byte) string {
	if msg := gjson.GetBytes(body, "Error Message"); msg.Exists() {
		return msg.String()
	}
	return string(body)
}

func parseStatements(body *gjson.Result) ([]Statement, error) {
	out := []Statement{}
	var parseErr error

	body.ForEach(func(_, item gjson.Result) bool {
		statement := Statement{
			Symbol:       item.Get("symbol").String(),
			Date:         item.Get("date").String(),
			CalendarYear: item.Get("calendarYear").String(),
			Fields:       map[string]decimal.Decimal{},
		}
		item.ForEach(func(key, value gjson.Result) bool {
			if value.Type != gjson.Number {
				return true
			}
			d, err := decimal.NewFromString(value.Raw)
			if err != nil {
				parseErr = fmt.Errorf("failed to parse %s=%s: %w", key.String(), value.Raw, err)
				return false
			}
			statement.Fields[key.String()] = d
			return true
		})
		if parseErr != nil {
			return false
		}
		out = append(out, statement)
		return true
	})
	if parseErr != nil {
		return nil, parseErr
	}

	return out, nil
}
