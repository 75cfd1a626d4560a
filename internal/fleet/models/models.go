// Package models holds the fleet compliance records served by the dashboard
// API.
package models

import "time"

// ServiceName and Version identify the API in health responses.
const (
	ServiceName = "Audit Armor"
	Version     = "2.0.0"
)

// ComplianceStandard is the evidentiary standard the fleet is governed by.
const ComplianceStandard = "Beyond Reasonable Doubt"

type ShipStatus string

const (
	ShipStatusGoverned ShipStatus = "governed"
	ShipStatusWarning  ShipStatus = "warning"
	ShipStatusCritical ShipStatus = "critical"
)

// Ship is one governed deployment hosting a number of tenants.
type Ship struct {
	ID         string     `json:"id"`
	Name       string     `json:"name"`
	Fleet      string     `json:"fleet"`
	Tenants    int        `json:"tenants"`
	Status     ShipStatus `json:"status"`
	Compliance float64    `json:"compliance"`
}

type TaskStatus string

const (
	TaskStatusPending    TaskStatus = "pending"
	TaskStatusInProgress TaskStatus = "in_progress"
	TaskStatusCompleted  TaskStatus = "completed"
)

// Task is a scheduled governance activity. Due is a calendar date.
type Task struct {
	ID       string     `json:"id"`
	Title    string     `json:"title"`
	Due      string     `json:"due"`
	Priority string     `json:"priority"`
	Status   TaskStatus `json:"status"`
}

// IsActive reports whether the task still needs work.
func (t Task) IsActive() bool {
	return t.Status != TaskStatusCompleted
}

type Update struct {
	ID        int       `json:"id"`
	Type      string    `json:"type"`
	Message   string    `json:"message"`
	Timestamp time.Time `json:"timestamp"`
}

type Alert struct {
	Type      string    `json:"type"`
	Message   string    `json:"message"`
	Timestamp time.Time `json:"timestamp"`
}

type Governance struct {
	Standard  string    `json:"standard"`
	Threshold float64   `json:"threshold"`
	Status    string    `json:"status"`
	LastAudit time.Time `json:"last_audit"`
	NextAudit time.Time `json:"next_audit"`
}

// Fleet aggregates the ships that share a fleet name.
type Fleet struct {
	Name          string  `json:"name"`
	Ships         []Ship  `json:"ships"`
	TotalTenants  int     `json:"total_tenants"`
	AvgCompliance float64 `json:"avg_compliance"`
	ShipCount     int     `json:"ship_count"`
}

// Score summarizes compliance across every ship.
type Score struct {
	OverallScore  float64 `json:"overall_score"`
	TotalShips    int     `json:"total_ships"`
	TotalTenants  int     `json:"total_tenants"`
	GovernedShips int     `json:"governed_ships"`
	WarningShips  int     `json:"warning_ships"`
	CriticalShips int     `json:"critical_ships"`
}

type OrbitCore struct {
	Name   string `json:"name"`
	Status string `json:"status"`
}

// OrbitShip is the subset of a ship drawn in the orbit view.
type OrbitShip struct {
	ID      string     `json:"id"`
	Name    string     `json:"name"`
	Status  ShipStatus `json:"status"`
	Tenants int        `json:"tenants"`
}

type Orbit struct {
	Core         OrbitCore   `json:"core"`
	Ships        []OrbitShip `json:"ships"`
	TotalTenants int         `json:"total_tenants"`
}

type CEOSummary struct {
	GovernanceScore  float64 `json:"governance_score"`
	TotalShips       int     `json:"total_ships"`
	TotalTenants     int     `json:"total_tenants"`
	ActiveTasks      int     `json:"active_tasks"`
	ComplianceStatus string  `json:"compliance_status"`
}

type CEODashboard struct {
	Role    string     `json:"role"`
	Summary CEOSummary `json:"summary"`
	Alerts  []Alert    `json:"alerts"`
}

// DeepDashboard is the auditor's view including the audit chain length.
type DeepDashboard struct {
	Role             string `json:"role"`
	Ships            []Ship `json:"ships"`
	Tasks            []Task `json:"tasks"`
	AuditChainLength int    `json:"audit_chain_length"`
}
