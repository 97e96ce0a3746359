package repository

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"
)

const indexPage = `<html><body>
<div>decoration</div>
<table>
  <tr><th>№</th><th>Название</th><th>Вес</th></tr>
  <tr><td>1</td><td>Сбербанк</td><td>12.34%</td></tr>
  <tr><td>2</td><td>Газпром</td><td>9.8%</td></tr>
</table>
<table><tr><th>other</th></tr><tr><td>ignored</td></tr></table>
</body></html>`

func Test_smartlabRepositoryHandler_FetchIndexTable(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(indexPage))
	}))
	defer server.Close()

	handler := NewSmartlabRepository(server.URL+"/index", server.URL+"/tickers")

	table, err := handler.FetchIndexTable(context.Background())
	require.NoError(t, err)

	require.Equal(t, []string{"№", "Название", "Вес"}, table.Header)
	require.Equal(t, [][]string{
		{"1", "Сбербанк", "12.34%"},
		{"2", "Газпром", "9.8%"},
	}, table.Rows)
}

func Test_smartlabRepositoryHandler_Errors(t *testing.T) {
	t.Run("page without a table", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte("<html><body>nothing here</body></html>"))
		}))
		defer server.Close()

		_, err := NewSmartlabRepository(server.URL, server.URL).FetchIndexTable(context.Background())
		require.ErrorContains(t, err, "no table")
	})

	t.Run("non-200 status", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusBadGateway)
		}))
		defer server.Close()

		_, err := NewSmartlabRepository(server.URL, server.URL).FetchTickerTable(context.Background())
		require.ErrorContains(t, err, "status 502")
	})
}
