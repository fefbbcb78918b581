package config

import (
	"testing"

	"github.com/invmock/invmock/pkg/mutation"
)

func TestDefaultIsValid(t *testing.T) {
	cfg := Default()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("default config invalid: %v", err)
	}
	if cfg.Server.Port != 4280 {
		t.Errorf("port = %d", cfg.Server.Port)
	}
	if cfg.Seed.Items == 0 {
		t.Error("seed defaults missing")
	}
}

func TestParseOverridesDefaults(t *testing.T) {
	cfg, err := Parse([]byte(`
server:
  port: 9000
logging:
  level: debug
  format: json
seed:
  items: 5
  randomSeed: 42
ledger:
  totalPacksBoundary: picked
`))
	if err != nil {
		t.Fatal(err)
	}

	if cfg.Server.Port != 9000 {
		t.Errorf("port = %d", cfg.Server.Port)
	}
	// Untouched fields keep their defaults.
	if cfg.Server.ReadTimeout != 30 {
		t.Errorf("readTimeout = %d", cfg.Server.ReadTimeout)
	}
	if cfg.Logging.Level != "debug" || cfg.Logging.Format != "json" {
		t.Errorf("logging = %+v", cfg.Logging)
	}
	if cfg.Seed.Items != 5 || cfg.Seed.RandomSeed != 42 {
		t.Errorf("seed = %+v", cfg.Seed)
	}
	if cfg.Policy().TotalPacks != mutation.BoundaryPicked {
		t.Errorf("policy = %+v", cfg.Policy())
	}
}

func TestParseRejectsBadValues(t *testing.T) {
	cases := map[string]string{
		"port out of range": "server:\n  port: 700000\n",
		"unknown boundary":  "ledger:\n  totalPacksBoundary: sometimes\n",
		"malformed yaml":    "server: [\n",
	}
	for name, in := range cases {
		t.Run(name, func(t *testing.T) {
			if _, err := Parse([]byte(in)); err == nil {
				t.Error("expected an error")
			}
		})
	}
}
