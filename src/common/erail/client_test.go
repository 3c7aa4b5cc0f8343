package erail

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/jack-barr3tt/erail-engine/src/common/parser"
	"github.com/jack-barr3tt/erail-engine/src/common/types"
	"github.com/jack-barr3tt/erail-engine/src/common/utils"
	"go.uber.org/zap"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	cfg := utils.DefaultConfig()
	cfg.ErailBaseURL = server.URL
	cfg.PnrBaseURL = server.URL + "/"
	cfg.UpstreamTimeout = 2 * time.Second

	return NewClient(cfg, nil, zap.NewNop().Sugar())
}

func TestFetchStationPair(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/rail/getTrains.aspx" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		q := r.URL.Query()
		if q.Get("Station_From") != "MMCT" || q.Get("Station_To") != "NDLS" || q.Get("Cache") != "true" {
			t.Errorf("unexpected query %s", r.URL.RawQuery)
		}
		if !strings.Contains(r.UserAgent(), "Chrome/91") {
			t.Errorf("unexpected user agent %q", r.UserAgent())
		}
		w.Write([]byte("~^12951~Mumbai Rajdhani"))
	})

	raw, err := client.FetchStationPair(context.Background(), "MMCT", "NDLS")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if raw.Body != "~^12951~Mumbai Rajdhani" {
		t.Errorf("body = %q", raw.Body)
	}
	if !strings.HasSuffix(raw.Source, "Station_From=MMCT&Station_To=NDLS&DataSource=0&Language=0&Cache=true") {
		t.Errorf("source = %q", raw.Source)
	}
}

func TestFetchFarePage(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/train-fare/12951" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		if r.URL.Query().Get("adult") != "2" || r.URL.Query().Get("smale") != "1" {
			t.Errorf("unexpected query %s", r.URL.RawQuery)
		}
		if r.Header.Get("Accept-Language") != "en-US,en;q=0.5" {
			t.Errorf("missing accept-language header")
		}
		w.Write([]byte("<html></html>"))
	})

	raw, err := client.FetchFarePage(context.Background(), types.FareQuery{
		TrainNo: "12951", From: "MMCT", To: "NDLS", Adult: 2, SeniorMale: 1,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(raw.Source, "/train-fare/12951?from=MMCT&to=NDLS&adult=2&child=0&sfemale=0&smale=1") {
		t.Errorf("source = %q", raw.Source)
	}
}

func TestFetchPnrPage(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/pnr-status/4512345678" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		w.Write([]byte(`data = {"Pnr":"4512345678"};`))
	})

	if _, err := client.FetchPnrPage(context.Background(), "4512345678"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestFetchFarePageRejectsBadStatus(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	})

	_, err := client.FetchFarePage(context.Background(), types.FareQuery{TrainNo: "12951", From: "MMCT", To: "NDLS", Adult: 1})
	if err == nil || err.Error() != "HTTP error! status: 503" {
		t.Errorf("expected status error, got %v", err)
	}
}

func TestFetchPassesErrorPagesToParser(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte("<html>PNR not found</html>"))
	})

	raw, err := client.FetchPnrPage(context.Background(), "4512345678")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if raw.Body != "<html>PNR not found</html>" {
		t.Errorf("body = %q", raw.Body)
	}
	if result := parser.ParsePnrPage(raw.Body, time.Now()); result.Success || result.Reason != types.DataNotFound {
		t.Errorf("expected DataNotFound, got success=%v reason=%s", result.Success, result.Reason)
	}

	if _, err := client.FetchTrainInfo(context.Background(), "12951"); err != nil {
		t.Errorf("unexpected error for train info: %v", err)
	}
}

func TestBuildKeys(t *testing.T) {
	if got := BuildStationPairKey("mmct", "ndls"); got != "erail:between:MMCT:NDLS" {
		t.Errorf("station pair key = %s", got)
	}
	q := types.FareQuery{TrainNo: "12951", From: "mmct", To: "NDLS", Adult: 1}
	if got := BuildFareKey(q); got != "erail:fare:12951:MMCT:NDLS:1:0:0:0" {
		t.Errorf("fare key = %s", got)
	}
}
