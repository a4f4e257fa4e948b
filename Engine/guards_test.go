package Engine

import (
	"strings"
	"testing"

	"Sanitrack/Models"
)

func TestEnsureArea(t *testing.T) {
	e := newTestEngine(t)
	area := seedArea(t, e)

	if err := e.Guard.EnsureArea(area.ID); err != nil {
		t.Errorf("existing area: %v", err)
	}
	if err := e.Guard.EnsureArea(999); !IsGuardViolation(err) {
		t.Errorf("missing area: expected guard violation, got %v", err)
	}
}

func TestEnsureEmployeeActive(t *testing.T) {
	e := newTestEngine(t)

	active := seedEmployee(t, e, Models.EmployeeStatusActive)
	if err := e.Guard.EnsureEmployeeActive(active.ID); err != nil {
		t.Errorf("ACTIVE employee: %v", err)
	}

	for _, status := range []string{Models.EmployeeStatusInactive, Models.EmployeeStatusOnLeave} {
		employee := seedEmployee(t, e, status)
		err := e.Guard.EnsureEmployeeActive(employee.ID)
		if !IsGuardViolation(err) {
			t.Fatalf("%s employee: expected guard violation, got %v", status, err)
		}
		if !strings.Contains(err.Error(), "ACTIVE") {
			t.Errorf("message %q should name ACTIVE", err.Error())
		}
	}

	if err := e.Guard.EnsureEmployeeActive(999); !IsGuardViolation(err) {
		t.Errorf("missing employee: expected guard violation, got %v", err)
	}
}
