package metrics_test

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/artpar/pubforge/adapters/metrics"
)

func TestNew(t *testing.T) {
	// Use a new registry to avoid conflicts with other tests
	reg := prometheus.NewRegistry()
	m := metrics.NewWithRegistry(reg)

	if m == nil {
		t.Fatal("NewWithRegistry returned nil")
	}

	// Verify all metrics are initialized
	if m.RequestsTotal == nil {
		t.Error("RequestsTotal is nil")
	}
	if m.RequestDuration == nil {
		t.Error("RequestDuration is nil")
	}
	if m.RequestsInFlight == nil {
		t.Error("RequestsInFlight is nil")
	}
	if m.PublicationsSeeded == nil {
		t.Error("PublicationsSeeded is nil")
	}
	if m.SeedFailures == nil {
		t.Error("SeedFailures is nil")
	}
	if m.ValidationsTotal == nil {
		t.Error("ValidationsTotal is nil")
	}
	if m.IndexedPublications == nil {
		t.Error("IndexedPublications is nil")
	}
	if m.Reloads == nil {
		t.Error("Reloads is nil")
	}
}

func TestRequestsTotal(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := metrics.NewWithRegistry(reg)

	m.RequestsTotal.WithLabelValues("GET", "/api/types", "2xx").Inc()
	m.RequestsTotal.WithLabelValues("POST", "/api/validate", "4xx").Add(5)

	families, err := reg.Gather()
	if err != nil {
		t.Fatalf("Gather error: %v", err)
	}

	found := false
	for _, f := range families {
		if f.GetName() == "pubforge_requests_total" {
			found = true
			if len(f.GetMetric()) != 2 {
				t.Errorf("expected 2 metric series, got %d", len(f.GetMetric()))
			}
		}
	}
	if !found {
		t.Error("pubforge_requests_total metric not found")
	}
}

func TestSeedingMetrics(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := metrics.NewWithRegistry(reg)

	m.PublicationsSeeded.WithLabelValues("Blog Posts").Add(10)
	m.SeedFailures.WithLabelValues("Blog Posts").Inc()

	families, err := reg.Gather()
	if err != nil {
		t.Fatalf("Gather error: %v", err)
	}

	foundSeeded := false
	foundFailures := false
	for _, f := range families {
		if f.GetName() == "pubforge_publications_seeded_total" {
			foundSeeded = true
			if val := f.GetMetric()[0].GetCounter().GetValue(); val != 10 {
				t.Errorf("expected 10 seeded, got %f", val)
			}
		}
		if f.GetName() == "pubforge_seed_failures_total" {
			foundFailures = true
		}
	}
	if !foundSeeded {
		t.Error("pubforge_publications_seeded_total metric not found")
	}
	if !foundFailures {
		t.Error("pubforge_seed_failures_total metric not found")
	}
}

func TestValidationMetrics(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := metrics.NewWithRegistry(reg)

	m.ValidationsTotal.WithLabelValues("Blog Posts", "valid").Inc()
	m.ValidationsTotal.WithLabelValues("Blog Posts", "invalid").Inc()
	m.ValidationFailures.WithLabelValues("Blog Posts", "required").Add(3)

	families, err := reg.Gather()
	if err != nil {
		t.Fatalf("Gather error: %v", err)
	}

	found := false
	for _, f := range families {
		if f.GetName() == "pubforge_validations_total" {
			found = true
			if len(f.GetMetric()) != 2 {
				t.Errorf("expected 2 metric series, got %d", len(f.GetMetric()))
			}
		}
	}
	if !found {
		t.Error("pubforge_validations_total metric not found")
	}
}

func TestReloadMetrics(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := metrics.NewWithRegistry(reg)

	m.Reloads.WithLabelValues("tags").Inc()
	m.ReloadErrors.WithLabelValues("schemas").Inc()
	m.LastReload.WithLabelValues("tags").SetToCurrentTime()

	families, err := reg.Gather()
	if err != nil {
		t.Fatalf("Gather error: %v", err)
	}

	foundReloads := false
	foundLastReload := false
	for _, f := range families {
		if f.GetName() == "pubforge_reloads_total" {
			foundReloads = true
		}
		if f.GetName() == "pubforge_last_reload_timestamp" {
			foundLastReload = true
		}
	}
	if !foundReloads {
		t.Error("pubforge_reloads_total metric not found")
	}
	if !foundLastReload {
		t.Error("pubforge_last_reload_timestamp metric not found")
	}
}

func TestNormalizePath(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"/api/types", "/api/types"},
		{"/api/types/blog-posts", "/api/types/blog-posts"},
		{"/short", "/short"},
	}

	for _, tt := range tests {
		result := metrics.NormalizePath(tt.input)
		if result != tt.expected {
			t.Errorf("NormalizePath(%s) = %s, want %s", tt.input, result, tt.expected)
		}
	}

	// Test long path truncation
	longPath := "/very/long/path/that/exceeds/fifty/characters/in/total/length"
	result := metrics.NormalizePath(longPath)
	if len(result) > 53 { // 50 chars + "..."
		t.Errorf("NormalizePath should truncate long paths, got len=%d", len(result))
	}
	if result[len(result)-3:] != "..." {
		t.Errorf("truncated path should end with '...', got %s", result)
	}
}

func TestRequestsInFlight(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := metrics.NewWithRegistry(reg)

	m.RequestsInFlight.Inc()
	m.RequestsInFlight.Inc()
	m.RequestsInFlight.Dec()

	families, err := reg.Gather()
	if err != nil {
		t.Fatalf("Gather error: %v", err)
	}

	found := false
	for _, f := range families {
		if f.GetName() == "pubforge_requests_in_flight" {
			found = true
			if len(f.GetMetric()) != 1 {
				t.Errorf("expected 1 metric, got %d", len(f.GetMetric()))
			}
			// Value should be 1 (2 inc - 1 dec)
			val := f.GetMetric()[0].GetGauge().GetValue()
			if val != 1 {
				t.Errorf("expected value 1, got %f", val)
			}
		}
	}
	if !found {
		t.Error("pubforge_requests_in_flight metric not found")
	}
}
