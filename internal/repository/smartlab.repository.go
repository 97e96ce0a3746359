package repository

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/amp1re/tinkoff-invest-bot/internal/domain"
)

// BenchmarkSource serves the two raw tables the weight table builder needs:
// the index constituent listing and the share ticker listing.
type BenchmarkSource interface {
	FetchIndexTable(ctx context.Context) (domain.RawTable, error)
	FetchTickerTable(ctx context.Context) (domain.RawTable, error)
}

func NewSmartlabRepository(indexURL, tickersURL string) BenchmarkSource {
	return &smartlabRepositoryHandler{
		IndexURL:   indexURL,
		TickersURL: tickersURL,
		Client:     &http.Client{Timeout: 10 * time.Second},
	}
}

type smartlabRepositoryHandler struct {
	IndexURL   string
	TickersURL string
	Client     *http.Client
}

func (h *smartlabRepositoryHandler) FetchIndexTable(ctx context.Context) (domain.RawTable, error) {
	return h.fetchFirstTable(ctx, h.IndexURL)
}

func (h *smartlabRepositoryHandler) FetchTickerTable(ctx context.Context) (domain.RawTable, error) {
	return h.fetchFirstTable(ctx, h.TickersURL)
}

// fetchFirstTable downloads the page and lifts the first <table> into a
// RawTable: header cells from <th>, one row of <td> texts per <tr>. Rows
// without any <td> (header rows) are skipped.
func (h *smartlabRepositoryHandler) fetchFirstTable(ctx context.Context, url string) (domain.RawTable, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return domain.RawTable{}, err
	}

	resp, err := h.Client.Do(req)
	if err != nil {
		return domain.RawTable{}, fmt.Errorf("failed to fetch %s: %w", url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return domain.RawTable{}, fmt.Errorf("fetching %s returned status %d", url, resp.StatusCode)
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return domain.RawTable{}, fmt.Errorf("failed to parse %s: %w", url, err)
	}

	table := doc.Find("table").First()
	if table.Length() == 0 {
		return domain.RawTable{}, fmt.Errorf("no table found at %s", url)
	}

	out := domain.RawTable{}
	table.Find("th").Each(func(_ int, cell *goquery.Selection) {
		out.Header = append(out.Header, strings.TrimSpace(cell.Text()))
	})
	table.Find("tr").Each(func(_ int, tr *goquery.Selection) {
		row := []string{}
		tr.Find("td").Each(func(_ int, cell *goquery.Selection) {
			row = append(row, strings.TrimSpace(cell.Text()))
		})
		if len(row) > 0 {
			out.Rows = append(out.Rows, row)
		}
	})

	return out, nil
}
