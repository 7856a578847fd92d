package notion

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/memegentino/backend/config"
	"github.com/stretchr/testify/require"
)

func Test_Endpoint_Forward_keepsRepeatedQueryKeys(t *testing.T) {
	var gotQuery url.Values
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.Query()
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"object":"page"}`))
	}))
	defer server.Close()

	endpoint := New(config.NotionConfigs{BaseURL: server.URL})

	query := url.Values{}
	query.Add("filter_properties", "aaa")
	query.Add("filter_properties", "bbb")
	query.Set("page_size", "10")

	resp, err := endpoint.Forward(
		context.Background(), "secret_tok", http.MethodGet, "pages/page-1",
		query, nil, "")
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.Code)

	require.Equal(t, []string{"aaa", "bbb"}, gotQuery["filter_properties"])
	require.Equal(t, "10", gotQuery.Get("page_size"))
}
