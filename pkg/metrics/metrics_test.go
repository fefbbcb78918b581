package metrics

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestCounterLabels(t *testing.T) {
	r := NewRegistry()
	c := r.NewCounter("requests_total", "Requests served.", "method", "status")

	c.Inc("POST", "200")
	c.Inc("POST", "200")
	c.Inc("POST", "400")

	if got := c.Value("POST", "200"); got != 2 {
		t.Errorf("value = %g", got)
	}
	if got := c.Value("POST", "400"); got != 1 {
		t.Errorf("value = %g", got)
	}
	// Wrong label cardinality is dropped, not panicked on.
	c.Inc("POST")
	if got := c.Value("POST"); got != 0 {
		t.Errorf("value = %g", got)
	}
}

func TestCounterRejectsNegative(t *testing.T) {
	r := NewRegistry()
	c := r.NewCounter("events_total", "Events.")
	c.Add(5)
	c.Add(-3)
	if got := c.Value(); got != 5 {
		t.Errorf("value = %g", got)
	}
}

func TestExposeFormat(t *testing.T) {
	r := NewRegistry()
	c := r.NewCounter("requests_total", "Requests served.", "status")
	c.Inc("200")
	r.NewGaugeFunc("items", "Item count.", func() float64 { return 25 })

	out := r.Expose()
	for _, want := range []string{
		"# TYPE requests_total counter",
		`requests_total{status="200"} 1`,
		"# TYPE items gauge",
		"items 25",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("exposition missing %q:\n%s", want, out)
		}
	}
}

func TestHandler(t *testing.T) {
	r := NewRegistry()
	r.NewCounter("x_total", "X.").Add(1)

	req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
	rec := httptest.NewRecorder()
	r.Handler().ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Errorf("status = %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "x_total 1") {
		t.Errorf("body = %q", rec.Body.String())
	}
}
