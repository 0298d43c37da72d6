// Package rateprovider implements the quote provider client for AwesomeAPI.
package rateprovider

import (
	"context"
	"encoding/json"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/SscSPs/currency_purchase_api/internal/apperrors"
	"github.com/SscSPs/currency_purchase_api/internal/core/domain"
	portsprov "github.com/SscSPs/currency_purchase_api/internal/core/ports/providers"
	"github.com/SscSPs/currency_purchase_api/internal/platform/metrics"
	"github.com/shopspring/decimal"
)

// AwesomeAPIClient queries https://economia.awesomeapi.com.br.
type AwesomeAPIClient struct {
	client     *http.Client
	baseURL    string // e.g. https://economia.awesomeapi.com.br/json
	listURL    string // e.g. https://economia.awesomeapi.com.br/xml/available
	counterCCY string
}

// NewAwesomeAPIClient builds a client quoting against counterCurrency.
func NewAwesomeAPIClient(baseURL, listURL, counterCurrency string, timeout time.Duration) *AwesomeAPIClient {
	return &AwesomeAPIClient{
		client:     &http.Client{Timeout: timeout},
		baseURL:    strings.TrimRight(baseURL, "/"),
		listURL:    listURL,
		counterCCY: strings.ToUpper(counterCurrency),
	}
}

var _ portsprov.RateProvider = (*AwesomeAPIClient)(nil)

type quotePayload struct {
	Code string `json:"code"`
	Name string `json:"name"`
	Bid  string `json:"bid"`
}

// FetchQuote calls GET {base}/last/{CODE}-{COUNTER} once.
func (c *AwesomeAPIClient) FetchQuote(ctx context.Context, code string) (*domain.Quote, error) {
	code = strings.ToUpper(code)
	url := fmt.Sprintf("%s/last/%s-%s", c.baseURL, code, c.counterCCY)

	start := time.Now()
	quote, err := c.fetchQuote(ctx, url, code)
	metrics.RateProviderDuration.Observe(time.Since(start).Seconds())

	switch {
	case err == nil:
		metrics.RateProviderRequests.WithLabelValues(metrics.OutcomeSuccess).Inc()
	case errors.Is(err, apperrors.ErrUpstreamUnreachable):
		metrics.RateProviderRequests.WithLabelValues(metrics.OutcomeUnreachable).Inc()
	default:
		metrics.RateProviderRequests.WithLabelValues(metrics.OutcomeUnavailable).Inc()
	}
	return quote, err
}

func (c *AwesomeAPIClient) fetchQuote(ctx context.Context, url, code string) (*domain.Quote, error) {
	body, err := c.get(ctx, url)
	if err != nil {
		return nil, err
	}

	var payload map[string]quotePayload
	if err := json.Unmarshal(body, &payload); err != nil {
		return nil, fmt.Errorf("%w: decode quote for %s: %v", apperrors.ErrUpstreamUnavailable, code, err)
	}

	entry, ok := payload[code+c.counterCCY]
	if !ok || entry.Bid == "" {
		return nil, fmt.Errorf("%w: no bid for %s%s in response", apperrors.ErrUpstreamUnavailable, code, c.counterCCY)
	}

	bid, err := decimal.NewFromString(entry.Bid)
	if err != nil || !bid.IsPositive() {
		return nil, fmt.Errorf("%w: invalid bid %q for %s", apperrors.ErrUpstreamUnavailable, entry.Bid, code)
	}

	return &domain.Quote{
		Code: code,
		Name: currencyName(entry.Name),
		Bid:  bid,
	}, nil
}

// ListAvailable reads the provider's XML catalogue of pairs and keeps those
// quoted against the counter currency. Element names look like "USD-BRL" and
// their text like "Dólar Americano/Real Brasileiro".
func (c *AwesomeAPIClient) ListAvailable(ctx context.Context) ([]domain.AvailableCurrency, error) {
	body, err := c.get(ctx, c.listURL)
	if err != nil {
		return nil, err
	}

	suffix := "-" + c.counterCCY
	dec := xml.NewDecoder(strings.NewReader(string(body)))
	var (
		out   []domain.AvailableCurrency
		depth int
		pair  string
		text  strings.Builder
	)
	for {
		tok, err := dec.Token()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%w: decode currency list: %v", apperrors.ErrUpstreamUnavailable, err)
		}
		switch t := tok.(type) {
		case xml.StartElement:
			depth++
			if depth == 2 {
				pair = t.Name.Local
				text.Reset()
			}
		case xml.CharData:
			if depth == 2 {
				text.Write(t)
			}
		case xml.EndElement:
			if depth == 2 && strings.HasSuffix(pair, suffix) {
				code := strings.SplitN(pair, "-", 2)[0]
				out = append(out, domain.AvailableCurrency{
					Code: code,
					Name: currencyName(text.String()),
				})
			}
			depth--
		}
	}
	return out, nil
}

func (c *AwesomeAPIClient) get(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: build request: %v", apperrors.ErrUpstreamUnavailable, err)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", apperrors.ErrUpstreamUnreachable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("%w: status %d from %s", apperrors.ErrUpstreamUnavailable, resp.StatusCode, url)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: read body: %v", apperrors.ErrUpstreamUnreachable, err)
	}
	return body, nil
}

// currencyName keeps the foreign side of "Foreign/Counter" descriptions.
func currencyName(description string) string {
	return strings.TrimSpace(strings.SplitN(description, "/", 2)[0])
}
