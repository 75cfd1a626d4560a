package service

import (
	"context"
	"errors"
	"math"

	"auditarmor/internal/fleet/models"
	dErrors "auditarmor/pkg/domain-errors"
	"auditarmor/pkg/platform/sentinel"
)

type Store interface {
	ListShips(ctx context.Context) ([]models.Ship, error)
	FindShip(ctx context.Context, id string) (*models.Ship, error)
	ListTasks(ctx context.Context) ([]models.Task, error)
	ListUpdates(ctx context.Context) ([]models.Update, error)
	ListAlerts(ctx context.Context) ([]models.Alert, error)
	Governance(ctx context.Context) (models.Governance, error)
}

// ChainCounter reports how many entries the audit chain holds.
type ChainCounter interface {
	Length(ctx context.Context) (int, error)
}

// Service aggregates fleet records into the dashboard views.
type Service struct {
	store Store
	chain ChainCounter
}

func New(store Store, chain ChainCounter) *Service {
	return &Service{store: store, chain: chain}
}

func (s *Service) Ships(ctx context.Context) ([]models.Ship, error) {
	ships, err := s.store.ListShips(ctx)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to list ships")
	}
	return ships, nil
}

func (s *Service) Ship(ctx context.Context, id string) (*models.Ship, error) {
	ship, err := s.store.FindShip(ctx, id)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return nil, dErrors.New(dErrors.CodeNotFound, "Ship not found")
		}
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to find ship")
	}
	return ship, nil
}

// Fleets groups ships by fleet in the order each fleet first appears.
func (s *Service) Fleets(ctx context.Context) ([]models.Fleet, error) {
	ships, err := s.Ships(ctx)
	if err != nil {
		return nil, err
	}

	var fleets []models.Fleet
	index := make(map[string]int)
	for _, ship := range ships {
		i, ok := index[ship.Fleet]
		if !ok {
			i = len(fleets)
			index[ship.Fleet] = i
			fleets = append(fleets, models.Fleet{Name: ship.Fleet})
		}
		fleets[i].Ships = append(fleets[i].Ships, ship)
		fleets[i].TotalTenants += ship.Tenants
	}
	for i := range fleets {
		fleets[i].ShipCount = len(fleets[i].Ships)
		fleets[i].AvgCompliance = meanCompliance(fleets[i].Ships)
	}
	return fleets, nil
}

func (s *Service) Score(ctx context.Context) (*models.Score, error) {
	ships, err := s.Ships(ctx)
	if err != nil {
		return nil, err
	}
	score := &models.Score{
		OverallScore: meanCompliance(ships),
		TotalShips:   len(ships),
		TotalTenants: totalTenants(ships),
	}
	for _, ship := range ships {
		switch ship.Status {
		case models.ShipStatusGoverned:
			score.GovernedShips++
		case models.ShipStatusWarning:
			score.WarningShips++
		case models.ShipStatusCritical:
			score.CriticalShips++
		}
	}
	return score, nil
}

func (s *Service) Tasks(ctx context.Context) ([]models.Task, error) {
	tasks, err := s.store.ListTasks(ctx)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to list tasks")
	}
	return tasks, nil
}

func (s *Service) Governance(ctx context.Context) (*models.Governance, error) {
	g, err := s.store.Governance(ctx)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to load governance")
	}
	return &g, nil
}

func (s *Service) Updates(ctx context.Context) ([]models.Update, error) {
	updates, err := s.store.ListUpdates(ctx)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to list updates")
	}
	return updates, nil
}

func (s *Service) Orbit(ctx context.Context) (*models.Orbit, error) {
	ships, err := s.Ships(ctx)
	if err != nil {
		return nil, err
	}
	orbit := &models.Orbit{
		Core:         models.OrbitCore{Name: "Audit Armor Core", Status: string(models.ShipStatusGoverned)},
		Ships:        make([]models.OrbitShip, 0, len(ships)),
		TotalTenants: totalTenants(ships),
	}
	for _, ship := range ships {
		orbit.Ships = append(orbit.Ships, models.OrbitShip{
			ID:      ship.ID,
			Name:    ship.Name,
			Status:  ship.Status,
			Tenants: ship.Tenants,
		})
	}
	return orbit, nil
}

func (s *Service) CEODashboard(ctx context.Context) (*models.CEODashboard, error) {
	ships, err := s.Ships(ctx)
	if err != nil {
		return nil, err
	}
	tasks, err := s.Tasks(ctx)
	if err != nil {
		return nil, err
	}
	alerts, err := s.store.ListAlerts(ctx)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to list alerts")
	}

	active := 0
	for _, t := range tasks {
		if t.IsActive() {
			active++
		}
	}
	return &models.CEODashboard{
		Role: "CEO",
		Summary: models.CEOSummary{
			GovernanceScore:  meanCompliance(ships),
			TotalShips:       len(ships),
			TotalTenants:     totalTenants(ships),
			ActiveTasks:      active,
			ComplianceStatus: models.ComplianceStandard,
		},
		Alerts: alerts,
	}, nil
}

// DeepDashboard is the auditor view. The chain length is read from the audit
// log on every call.
func (s *Service) DeepDashboard(ctx context.Context) (*models.DeepDashboard, error) {
	ships, err := s.Ships(ctx)
	if err != nil {
		return nil, err
	}
	tasks, err := s.Tasks(ctx)
	if err != nil {
		return nil, err
	}
	length, err := s.chain.Length(ctx)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to read audit chain length")
	}
	return &models.DeepDashboard{
		Role:             "Auditor",
		Ships:            ships,
		Tasks:            tasks,
		AuditChainLength: length,
	}, nil
}

func totalTenants(ships []models.Ship) int {
	total := 0
	for _, ship := range ships {
		total += ship.Tenants
	}
	return total
}

// meanCompliance rounds to one decimal place; an empty set scores zero.
func meanCompliance(ships []models.Ship) float64 {
	if len(ships) == 0 {
		return 0
	}
	var sum float64
	for _, ship := range ships {
		sum += ship.Compliance
	}
	return round1(sum / float64(len(ships)))
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}
