package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"

	"auditarmor/internal/fleet/models"
	"auditarmor/internal/fleet/service/mocks"
	"auditarmor/internal/fleet/store"
	dErrors "auditarmor/pkg/domain-errors"
)

//go:generate mockgen -source=service.go -destination=mocks/mocks.go -package=mocks Store,ChainCounter

type FleetServiceSuite struct {
	suite.Suite
	ctx     context.Context
	chain   *mocks.MockChainCounter
	service *Service
}

func TestFleetServiceSuite(t *testing.T) {
	suite.Run(t, new(FleetServiceSuite))
}

func (s *FleetServiceSuite) SetupTest() {
	s.ctx = context.Background()
	ctrl := gomock.NewController(s.T())
	s.chain = mocks.NewMockChainCounter(ctrl)
	s.service = New(store.NewSeededStore(), s.chain)
}

func (s *FleetServiceSuite) TestShip() {
	s.Run("known ship", func() {
		ship, err := s.service.Ship(s.ctx, "ship-007")
		s.Require().NoError(err)
		s.Equal("Beta Tertiary", ship.Name)
		s.Equal(models.ShipStatusWarning, ship.Status)
	})

	s.Run("unknown ship is not found", func() {
		_, err := s.service.Ship(s.ctx, "ship-404")
		s.True(dErrors.HasCode(err, dErrors.CodeNotFound))
		s.EqualError(err, "Ship not found")
	})
}

func (s *FleetServiceSuite) TestFleets() {
	fleets, err := s.service.Fleets(s.ctx)
	s.Require().NoError(err)
	s.Require().Len(fleets, 3)

	expected := []struct {
		name    string
		ships   int
		tenants int
		avg     float64
	}{
		{"Alpha", 4, 312, 99.6},
		{"Beta", 5, 298, 98.7},
		{"Gamma", 3, 237, 97.2},
	}
	for i, want := range expected {
		s.Equal(want.name, fleets[i].Name)
		s.Equal(want.ships, fleets[i].ShipCount)
		s.Len(fleets[i].Ships, want.ships)
		s.Equal(want.tenants, fleets[i].TotalTenants)
		s.InDelta(want.avg, fleets[i].AvgCompliance, 1e-9)
	}
}

func (s *FleetServiceSuite) TestScore() {
	score, err := s.service.Score(s.ctx)
	s.Require().NoError(err)
	s.InDelta(98.6, score.OverallScore, 1e-9)
	s.Equal(12, score.TotalShips)
	s.Equal(847, score.TotalTenants)
	s.Equal(10, score.GovernedShips)
	s.Equal(2, score.WarningShips)
	s.Equal(0, score.CriticalShips)
}

func (s *FleetServiceSuite) TestOrbit() {
	orbit, err := s.service.Orbit(s.ctx)
	s.Require().NoError(err)
	s.Equal("Audit Armor Core", orbit.Core.Name)
	s.Equal("governed", orbit.Core.Status)
	s.Len(orbit.Ships, 12)
	s.Equal(847, orbit.TotalTenants)
	s.Equal(models.OrbitShip{ID: "ship-010", Name: "Gamma Prime", Status: models.ShipStatusGoverned, Tenants: 85}, orbit.Ships[9])
}

func (s *FleetServiceSuite) TestCEODashboard() {
	dash, err := s.service.CEODashboard(s.ctx)
	s.Require().NoError(err)
	s.Equal("CEO", dash.Role)
	s.InDelta(98.6, dash.Summary.GovernanceScore, 1e-9)
	s.Equal(12, dash.Summary.TotalShips)
	s.Equal(847, dash.Summary.TotalTenants)
	s.Equal(5, dash.Summary.ActiveTasks)
	s.Equal("Beyond Reasonable Doubt", dash.Summary.ComplianceStatus)
	s.Require().Len(dash.Alerts, 1)
	s.Equal("2 ships require attention", dash.Alerts[0].Message)
}

func (s *FleetServiceSuite) TestDeepDashboard() {
	s.Run("includes chain length", func() {
		s.chain.EXPECT().Length(gomock.Any()).Return(7, nil)
		dash, err := s.service.DeepDashboard(s.ctx)
		s.Require().NoError(err)
		s.Equal("Auditor", dash.Role)
		s.Len(dash.Ships, 12)
		s.Len(dash.Tasks, 5)
		s.Equal(7, dash.AuditChainLength)
	})

	s.Run("chain failure is internal", func() {
		s.chain.EXPECT().Length(gomock.Any()).Return(0, errors.New("disk gone"))
		_, err := s.service.DeepDashboard(s.ctx)
		s.True(dErrors.HasCode(err, dErrors.CodeInternal))
	})
}

func (s *FleetServiceSuite) TestStoreFailuresAreInternal() {
	ctrl := gomock.NewController(s.T())
	st := mocks.NewMockStore(ctrl)
	svc := New(st, s.chain)
	boom := errors.New("boom")

	st.EXPECT().ListShips(gomock.Any()).Return(nil, boom)
	_, err := svc.Score(s.ctx)
	s.True(dErrors.HasCode(err, dErrors.CodeInternal))
	s.ErrorIs(err, boom)

	st.EXPECT().FindShip(gomock.Any(), "ship-001").Return(nil, boom)
	_, err = svc.Ship(s.ctx, "ship-001")
	s.True(dErrors.HasCode(err, dErrors.CodeInternal))
}

func (s *FleetServiceSuite) TestEmptyFleetScoresZero() {
	ctrl := gomock.NewController(s.T())
	st := mocks.NewMockStore(ctrl)
	st.EXPECT().ListShips(gomock.Any()).Return(nil, nil)

	score, err := New(st, s.chain).Score(s.ctx)
	s.Require().NoError(err)
	s.Zero(score.OverallScore)
	s.Zero(score.TotalShips)
}

func TestTaskIsActive(t *testing.T) {
	for status, want := range map[models.TaskStatus]bool{
		models.TaskStatusPending:    true,
		models.TaskStatusInProgress: true,
		models.TaskStatusCompleted:  false,
	} {
		if got := (models.Task{Status: status}).IsActive(); got != want {
			t.Errorf("status %s: got %v, want %v", status, got, want)
		}
	}
}
