package authflow

import (
	"net/http"
	"testing"
	"time"

	"github.com/authflow-go/authflow/credential"
)

// waitingCredential asks for a wait on its first steps, then is ready.
type waitingCredential struct {
	credential.Token
	waits int
}

func (c *waitingCredential) AuthStep() (time.Duration, error) {
	if c.waits > 0 {
		c.waits--
		return 25 * time.Millisecond, nil
	}
	return 0, nil
}

// exchangeCredential hands out one out-of-band request.
type exchangeCredential struct {
	credential.Token
	req       *http.Request
	responded bool
}

func (c *exchangeCredential) StepRequest() (*http.Request, error) {
	if c.responded {
		return nil, nil
	}
	return c.req, nil
}

func (c *exchangeCredential) HandleResponse(resp *http.Response, err error) {
	c.responded = true
}

func TestCredentialStepWait(t *testing.T) {
	cred := &waitingCredential{waits: 1}
	b := NewHeaderAuth("X-Api-Key", cred)

	step, err := b.Step()
	if err != nil {
		t.Fatalf("step: %v", err)
	}
	wait, ok := step.(WaitStep)
	if !ok {
		t.Fatalf("step = %T, want WaitStep", step)
	}
	if wait.Duration != 25*time.Millisecond {
		t.Fatalf("wait = %v", wait.Duration)
	}

	step, err = b.Step()
	if err != nil || step != nil {
		t.Fatalf("second step = (%v, %v), want (nil, nil)", step, err)
	}
}

func TestCredentialStepRequest(t *testing.T) {
	req, _ := http.NewRequest(http.MethodPost, "https://as.test/token", nil)
	cred := &exchangeCredential{req: req}
	b := NewBearerAuth(cred)

	step, err := b.Step()
	if err != nil {
		t.Fatalf("step: %v", err)
	}
	rs, ok := step.(RequestStep)
	if !ok {
		t.Fatalf("step = %T, want RequestStep", step)
	}
	if rs.Request != req {
		t.Fatal("step carries the wrong request")
	}

	b.Respond(&http.Response{StatusCode: http.StatusOK}, nil)
	if !cred.responded {
		t.Fatal("respond did not reach the credential")
	}

	step, err = b.Step()
	if err != nil || step != nil {
		t.Fatalf("step after respond = (%v, %v), want (nil, nil)", step, err)
	}
}

func TestNoAuth(t *testing.T) {
	n := NewNoAuth()

	step, err := n.Step()
	if err != nil || step != nil {
		t.Fatalf("step = (%v, %v), want (nil, nil)", step, err)
	}
	req, _ := http.NewRequest(http.MethodGet, "https://api.test/", nil)
	got, err := n.Configure(req)
	if err != nil || got != req {
		t.Fatalf("configure = (%v, %v), want the request unchanged", got, err)
	}
	if len(req.Header) != 0 {
		t.Fatalf("headers = %v, want none", req.Header)
	}
	done, err := n.HasCompleted(&http.Response{StatusCode: http.StatusTeapot})
	if err != nil || !done {
		t.Fatalf("has completed = (%v, %v), want (true, nil)", done, err)
	}
}
