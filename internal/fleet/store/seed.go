package store

import (
	"time"

	"auditarmor/internal/fleet/models"
)

func seedShips() []models.Ship {
	return []models.Ship{
		{ID: "ship-001", Name: "Alpha Prime", Fleet: "Alpha", Tenants: 78, Status: models.ShipStatusGoverned, Compliance: 99.8},
		{ID: "ship-002", Name: "Alpha Secondary", Fleet: "Alpha", Tenants: 82, Status: models.ShipStatusGoverned, Compliance: 99.5},
		{ID: "ship-003", Name: "Alpha Tertiary", Fleet: "Alpha", Tenants: 76, Status: models.ShipStatusGoverned, Compliance: 99.9},
		{ID: "ship-004", Name: "Alpha Quaternary", Fleet: "Alpha", Tenants: 76, Status: models.ShipStatusGoverned, Compliance: 99.2},
		{ID: "ship-005", Name: "Beta Prime", Fleet: "Beta", Tenants: 65, Status: models.ShipStatusGoverned, Compliance: 98.9},
		{ID: "ship-006", Name: "Beta Secondary", Fleet: "Beta", Tenants: 58, Status: models.ShipStatusGoverned, Compliance: 99.1},
		{ID: "ship-007", Name: "Beta Tertiary", Fleet: "Beta", Tenants: 62, Status: models.ShipStatusWarning, Compliance: 97.8},
		{ID: "ship-008", Name: "Beta Quaternary", Fleet: "Beta", Tenants: 55, Status: models.ShipStatusGoverned, Compliance: 98.5},
		{ID: "ship-009", Name: "Beta Quintary", Fleet: "Beta", Tenants: 58, Status: models.ShipStatusGoverned, Compliance: 99.0},
		{ID: "ship-010", Name: "Gamma Prime", Fleet: "Gamma", Tenants: 85, Status: models.ShipStatusGoverned, Compliance: 97.2},
		{ID: "ship-011", Name: "Gamma Secondary", Fleet: "Gamma", Tenants: 78, Status: models.ShipStatusWarning, Compliance: 96.8},
		{ID: "ship-012", Name: "Gamma Tertiary", Fleet: "Gamma", Tenants: 74, Status: models.ShipStatusGoverned, Compliance: 97.5},
	}
}

func seedTasks() []models.Task {
	return []models.Task{
		{ID: "task-001", Title: "Quarterly Compliance Review", Due: "2026-01-25", Priority: "high", Status: models.TaskStatusPending},
		{ID: "task-002", Title: "Tenant Onboarding Verification", Due: "2026-01-20", Priority: "medium", Status: models.TaskStatusInProgress},
		{ID: "task-003", Title: "Security Audit Documentation", Due: "2026-01-30", Priority: "low", Status: models.TaskStatusPending},
		{ID: "task-004", Title: "Fleet Alpha Inspection", Due: "2026-02-01", Priority: "medium", Status: models.TaskStatusPending},
		{ID: "task-005", Title: "Annual Governance Report", Due: "2026-02-15", Priority: "high", Status: models.TaskStatusPending},
	}
}

func seedUpdates() []models.Update {
	return []models.Update{
		{ID: 1, Type: "info", Message: "System operating normally", Timestamp: utc(2026, 1, 17, 12, 0)},
		{ID: 2, Type: "success", Message: "Daily compliance check completed", Timestamp: utc(2026, 1, 17, 6, 0)},
		{ID: 3, Type: "warning", Message: "Ship Gamma Secondary requires review", Timestamp: utc(2026, 1, 16, 14, 30)},
	}
}

func seedAlerts() []models.Alert {
	return []models.Alert{
		{Type: "warning", Message: "2 ships require attention", Timestamp: utc(2026, 1, 17, 10, 0)},
	}
}

func seedGovernance() models.Governance {
	return models.Governance{
		Standard:  models.ComplianceStandard,
		Threshold: 0.98,
		Status:    "Governed",
		LastAudit: utc(2026, 1, 15, 10, 30),
		NextAudit: utc(2026, 2, 15, 10, 30),
	}
}

func utc(year int, month time.Month, day, hour, minute int) time.Time {
	return time.Date(year, month, day, hour, minute, 0, 0, time.UTC)
}
