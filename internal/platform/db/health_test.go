package db

import (
	"encoding/json"
	"testing"
)

func TestPoolStats_JSONFieldNames(t *testing.T) {
	stats := &PoolStats{
		TotalConns:      10,
		IdleConns:       5,
		AcquiredConns:   5,
		MaxConns:        20,
		AcquireCount:    100,
		AcquireDuration: "1.5s",
		Healthy:         true,
	}

	raw, err := json.Marshal(stats)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	var decoded map[string]interface{}
	if err := json.Unmarshal(raw, &decoded); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}

	for _, key := range []string{"totalConns", "idleConns", "acquiredConns", "maxConns", "acquireCount", "acquireDuration", "healthy"} {
		if _, ok := decoded[key]; !ok {
			t.Errorf("expected key %q in %s", key, raw)
		}
	}
	if decoded["healthy"] != true {
		t.Errorf("expected healthy=true, got %v", decoded["healthy"])
	}
}
