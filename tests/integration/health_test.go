package integration

import "testing"

// TestLiveness verifies the liveness endpoint always answers.
func TestLiveness(t *testing.T) {
	skipIfNotRunning(t, catalogPort)

	status, data := httpGet(t, baseURL(catalogPort)+"/health/live")
	requireStatus(t, status, 200)

	if got := extractString(t, data, "status"); got != "up" {
		t.Fatalf("expected liveness status up, got %q", got)
	}
}

// TestReadiness verifies the readiness endpoint runs its dependency checks.
func TestReadiness(t *testing.T) {
	skipIfNotRunning(t, catalogPort)

	status, data := httpGet(t, baseURL(catalogPort)+"/health/ready")
	if status != 200 && status != 503 {
		t.Fatalf("expected readiness status 200 or 503, got %d", status)
	}
	if extractField(data, "checks") == nil {
		t.Fatal("expected checks in readiness response, got nil")
	}
}
