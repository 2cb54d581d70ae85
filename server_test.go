package unitconv_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/lone-faerie/unitconv"
	"github.com/lone-faerie/unitconv/config"
)

type convertResponse struct {
	Result *float64 `json:"result"`
	Error  string   `json:"error"`
}

func testServer(t *testing.T) *httptest.Server {
	t.Helper()

	srv := httptest.NewServer(unitconv.NewServer(config.Default()).Handler())
	t.Cleanup(srv.Close)

	return srv
}

func getConvert(t *testing.T, srv *httptest.Server, query string) (int, convertResponse) {
	t.Helper()

	resp, err := http.Get(srv.URL + "/convert?" + query)
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()

	if want, got := "application/json", resp.Header.Get("Content-Type"); got != want {
		t.Errorf("Content-Type: wanted %q, got %q", want, got)
	}

	var body convertResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatal(err)
	}

	return resp.StatusCode, body
}

func TestServerConvert(t *testing.T) {
	srv := testServer(t)

	var tests = []struct {
		name  string
		query string
		want  float64
	}{
		{"celsius to fahrenheit", "value=100&from_unit=c&to_unit=f", 212.0},
		{"meters to kilometers", "value=1000&from_unit=m&to_unit=km", 1.0},
		{"case folded", "value=5&from_unit=M&to_unit=CM", 500.0},
		{"negative", "value=-40&from_unit=c&to_unit=f", -40.0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			code, body := getConvert(t, srv, tt.query)

			if code != http.StatusOK {
				t.Fatalf("status: wanted %d, got %d", http.StatusOK, code)
			}
			if body.Error != "" {
				t.Fatalf("unexpected error %q", body.Error)
			}
			if body.Result == nil {
				t.Fatal("result is nil")
			}
			if *body.Result != tt.want {
				t.Errorf("result: wanted %v, got %v", tt.want, *body.Result)
			}
		})
	}
}

func TestServerConvertUnsupported(t *testing.T) {
	srv := testServer(t)

	code, body := getConvert(t, srv, "value=1&from_unit=ly&to_unit=m")

	// Unsupported pairs still answer 200 with an error body.
	if code != http.StatusOK {
		t.Fatalf("status: wanted %d, got %d", http.StatusOK, code)
	}
	if body.Result != nil {
		t.Fatalf("unexpected result %v", *body.Result)
	}

	want := "Conversion from 'ly' to 'm' is not supported."
	if body.Error != want {
		t.Errorf("error: wanted %q, got %q", want, body.Error)
	}
}

func TestServerConvertInvalidValue(t *testing.T) {
	srv := testServer(t)

	code, body := getConvert(t, srv, "value=abc&from_unit=m&to_unit=cm")

	if code != http.StatusBadRequest {
		t.Fatalf("status: wanted %d, got %d", http.StatusBadRequest, code)
	}
	if body.Error == "" {
		t.Error("wanted an error body, got none")
	}
}

func TestServerUnits(t *testing.T) {
	srv := testServer(t)

	resp, err := http.Get(srv.URL + "/units")
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()

	if want, got := http.StatusOK, resp.StatusCode; got != want {
		t.Fatalf("status: wanted %d, got %d", want, got)
	}

	var pairs []unitconv.Pair
	if err := json.NewDecoder(resp.Body).Decode(&pairs); err != nil {
		t.Fatal(err)
	}

	if len(pairs) == 0 {
		t.Fatal("no pairs returned")
	}

	for _, p := range pairs {
		if !unitconv.Supported(p.From, p.To) {
			t.Errorf("%v listed but not supported", p)
		}
	}
}

func TestServerHealth(t *testing.T) {
	srv := testServer(t)

	resp, err := http.Get(srv.URL + "/healthz")
	if err != nil {
		t.Fatal(err)
	}
	resp.Body.Close()

	if want, got := http.StatusNoContent, resp.StatusCode; got != want {
		t.Errorf("status: wanted %d, got %d", want, got)
	}
}

func TestServerMetrics(t *testing.T) {
	srv := testServer(t)

	resp, err := http.Get(srv.URL + "/metrics")
	if err != nil {
		t.Fatal(err)
	}
	resp.Body.Close()

	if want, got := http.StatusOK, resp.StatusCode; got != want {
		t.Errorf("status: wanted %d, got %d", want, got)
	}
}
