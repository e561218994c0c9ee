package cli

import (
	"bytes"
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"countrycat/internal/trace"
)

const samplePayload = `[
  {"name":{"official":"Republic of Zambia","nativeName":{"eng":{"official":"Republic of Zambia"}}},
   "cca2":"ZM","cca3":"ZMB","flags":{"png":"https://flagcdn.com/w320/zm.png"},
   "altSpellings":["ZM","Republic of Zambia"],"idd":{"root":"+2","suffixes":["60"]}},
  {"name":{"official":"Republic of Chad","nativeName":{"ara":{"official":"جمهورية تشاد"},"fra":{"official":"République du Tchad"}}},
   "cca2":"TD","cca3":"TCD","flags":{"png":"https://flagcdn.com/w320/td.png"},
   "altSpellings":["TD","Tchad"],"idd":{"root":"+2","suffixes":["35"]}},
  {"name":{"official":"Aruba"},"cca2":"AW","cca3":"ABW"}
]`

func serve(t *testing.T, status int, body string) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = fmt.Fprint(w, body)
	}))
	t.Cleanup(srv.Close)
	return srv
}

// execute runs the root command against endpoint and returns its output.
func execute(t *testing.T, endpoint string, args ...string) (string, error) {
	t.Helper()
	t.Setenv(trace.EndpointEnv, "")

	e := &env{}
	t.Cleanup(e.close)
	cmd := newRootCmd(e)

	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(append(args,
		"--endpoint", endpoint,
		"--log-file", filepath.Join(t.TempDir(), "countrycat.log"),
	))
	err := cmd.ExecuteContext(context.Background())
	return out.String(), err
}

func TestList_DefaultPage(t *testing.T) {
	srv := serve(t, http.StatusOK, samplePayload)

	out, err := execute(t, srv.URL, "list")
	require.NoError(t, err)

	assert.Contains(t, out, "Country Name")
	assert.Contains(t, out, "page 1/1 (3 matches)")
	aruba := strings.Index(out, "Aruba")
	chad := strings.Index(out, "Republic of Chad")
	zambia := strings.Index(out, "Republic of Zambia")
	assert.True(t, aruba < chad && chad < zambia, "expected ascending order:\n%s", out)
	assert.Contains(t, out, "https://flagcdn.com/w320/td.png")
	assert.Contains(t, out, "جمهورية تشاد")
	assert.Contains(t, out, "TD, Tchad")
}

func TestList_SearchAndSort(t *testing.T) {
	srv := serve(t, http.StatusOK, samplePayload)

	out, err := execute(t, srv.URL, "list", "--search", "REPUBLIC", "--sort", "desc")
	require.NoError(t, err)

	assert.NotContains(t, out, "Aruba")
	assert.Contains(t, out, "page 1/1 (2 matches)")
	assert.Less(t, strings.Index(out, "Republic of Zambia"), strings.Index(out, "Republic of Chad"))
}

func TestList_PageOutOfRange(t *testing.T) {
	srv := serve(t, http.StatusOK, samplePayload)

	out, err := execute(t, srv.URL, "list", "--page", "5")
	require.NoError(t, err)
	assert.NotContains(t, out, "Aruba")
	assert.Contains(t, out, "page 5/1 (3 matches)")

	out, err = execute(t, srv.URL, "list", "--page", "400000000000000000")
	require.NoError(t, err)
	assert.NotContains(t, out, "Aruba")
	assert.Contains(t, out, "page 400000000000000000/1 (3 matches)")
}

func TestList_FetchFailureIsEmpty(t *testing.T) {
	srv := serve(t, http.StatusInternalServerError, "boom")

	out, err := execute(t, srv.URL, "list")
	require.NoError(t, err)
	assert.Contains(t, out, "page 1/0 (0 matches)")
}

func TestList_InvalidSort(t *testing.T) {
	srv := serve(t, http.StatusOK, samplePayload)

	_, err := execute(t, srv.URL, "list", "--sort", "sideways")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid --sort")
}

func TestShow_ByCode(t *testing.T) {
	srv := serve(t, http.StatusOK, samplePayload)

	for _, code := range []string{"td", "TCD"} {
		out, err := execute(t, srv.URL, "show", code)
		require.NoError(t, err, code)
		assert.Contains(t, out, `"Republic of Chad"`)
		assert.Contains(t, out, `"TCD"`)
		assert.Less(t, strings.Index(out, "name:"), strings.Index(out, "cca2:"), "fields keep payload order")
	}
}

func TestShow_UnknownCode(t *testing.T) {
	srv := serve(t, http.StatusOK, samplePayload)

	_, err := execute(t, srv.URL, "show", "XX")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestShow_FetchFailure(t *testing.T) {
	srv := serve(t, http.StatusBadGateway, "")

	_, err := execute(t, srv.URL, "show", "TD")
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrNotFound)
}

func TestShow_RequiresCode(t *testing.T) {
	srv := serve(t, http.StatusOK, samplePayload)

	_, err := execute(t, srv.URL, "show")
	require.Error(t, err)
}

func TestFindByCode_BlankCode(t *testing.T) {
	_, ok := findByCode(nil, "  ")
	assert.False(t, ok)
}
