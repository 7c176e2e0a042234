package tests

import (
	"net/http"
	"testing"
	"time"

	"github.com/authflow-go/authflow"
)

// do drives one logical operation through a protocol the way a caller
// would: pre-flight steps, configure, send, inspect, retry.
func do(t *testing.T, client *http.Client, proto authflow.Protocol, method, url string) (*http.Response, []int) {
	t.Helper()
	var statuses []int
	for attempt := 0; ; attempt++ {
		if attempt > 5 {
			t.Fatal("too many retries")
		}
		for {
			step, err := proto.Step()
			if err != nil {
				t.Fatalf("step: %v", err)
			}
			if step == nil {
				break
			}
			switch s := step.(type) {
			case authflow.RequestStep:
				resp, err := client.Do(s.Request)
				proto.Respond(resp, err)
			case authflow.WaitStep:
				time.Sleep(s.Duration)
			}
		}

		req, err := http.NewRequest(method, url, nil)
		if err != nil {
			t.Fatalf("new request: %v", err)
		}
		req, err = proto.Configure(req)
		if err != nil {
			t.Fatalf("configure: %v", err)
		}

		resp, err := client.Do(req)
		if err != nil {
			t.Fatalf("do: %v", err)
		}
		statuses = append(statuses, resp.StatusCode)

		done, err := proto.HasCompleted(resp)
		if err != nil {
			t.Fatalf("has completed: %v", err)
		}
		if done {
			return resp, statuses
		}
		resp.Body.Close()
	}
}
