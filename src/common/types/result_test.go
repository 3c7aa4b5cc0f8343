package types

import (
	"encoding/json"
	"testing"
	"time"
)

func TestResultJSON(t *testing.T) {
	now := time.UnixMilli(1704101400000)

	ok, err := json.Marshal(Ok([]string{"12951"}, now))
	if err != nil {
		t.Fatal(err)
	}
	if string(ok) != `{"success":true,"time_stamp":1704101400000,"data":["12951"]}` {
		t.Errorf("unexpected success body: %s", ok)
	}

	failed, err := json.Marshal(Fail[[]string](UpstreamRejected, "From station not found", nil, now))
	if err != nil {
		t.Fatal(err)
	}
	if string(failed) != `{"success":false,"time_stamp":1704101400000,"data":"From station not found","reason":"UpstreamRejected"}` {
		t.Errorf("unexpected failure body: %s", failed)
	}

	bare, err := json.Marshal(Failure("PNR number is required", now))
	if err != nil {
		t.Fatal(err)
	}
	if string(bare) != `{"success":false,"time_stamp":1704101400000,"data":"PNR number is required"}` {
		t.Errorf("unexpected request failure body: %s", bare)
	}
}
