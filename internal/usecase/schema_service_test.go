package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/mock"

	"github.com/riskibarqy/fbref-teamfit/internal/domain/featureorder"
	featureordermock "github.com/riskibarqy/fbref-teamfit/internal/mocks/domain/featureorder"
	playermock "github.com/riskibarqy/fbref-teamfit/internal/mocks/domain/player"
	playerstatsmock "github.com/riskibarqy/fbref-teamfit/internal/mocks/domain/playerstats"
	teammock "github.com/riskibarqy/fbref-teamfit/internal/mocks/domain/team"
	teamstatsmock "github.com/riskibarqy/fbref-teamfit/internal/mocks/domain/teamstats"
)

func TestSchemaService_Initialize_SeedsFeatureOrder(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	teamRepo := teammock.NewRepository(t)
	playerRepo := playermock.NewRepository(t)
	playerStatsRepo := playerstatsmock.NewRepository(t)
	teamStatsRepo := teamstatsmock.NewRepository(t)
	featureRepo := featureordermock.NewRepository(t)

	teamRepo.On("EnsureSchema", mock.Anything).Return(nil).Once()
	playerRepo.On("EnsureSchema", mock.Anything).Return(nil).Once()
	playerStatsRepo.On("EnsureSchema", mock.Anything).Return(nil).Once()
	teamStatsRepo.On("EnsureSchema", mock.Anything).Return(nil).Once()
	featureRepo.On("EnsureSchema", mock.Anything).Return(nil).Once()
	featureRepo.
		On("Replace", mock.Anything, mock.MatchedBy(func(v []featureorder.Feature) bool {
			return len(v) == 7 && v[0].Name == "poss_pct" && v[6].Name == "aerials_win_pct" && v[6].Ord == 6
		})).
		Return(nil).
		Once()

	service := NewSchemaService(teamRepo, playerRepo, playerStatsRepo, teamStatsRepo, featureRepo)
	features, err := service.Initialize(ctx)
	if err != nil {
		t.Fatalf("initialize: %v", err)
	}
	if len(features) != 7 {
		t.Fatalf("unexpected feature count: %d", len(features))
	}
}

func TestSchemaService_Initialize_StopsOnSchemaError(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	teamRepo := teammock.NewRepository(t)
	playerRepo := playermock.NewRepository(t)
	schemaErr := errors.New("permission denied")

	teamRepo.On("EnsureSchema", mock.Anything).Return(nil).Once()
	playerRepo.On("EnsureSchema", mock.Anything).Return(schemaErr).Once()

	service := NewSchemaService(teamRepo, playerRepo,
		playerstatsmock.NewRepository(t), teamstatsmock.NewRepository(t), featureordermock.NewRepository(t))

	_, err := service.Initialize(ctx)
	if !errors.Is(err, schemaErr) {
		t.Fatalf("expected schema error, got %v", err)
	}
}

func TestSchemaService_EnsureTables_KeepsFeatureOrder(t *testing.T) {
	t.Parallel()

	teamRepo := teammock.NewRepository(t)
	playerRepo := playermock.NewRepository(t)
	playerStatsRepo := playerstatsmock.NewRepository(t)
	teamStatsRepo := teamstatsmock.NewRepository(t)
	featureRepo := featureordermock.NewRepository(t)

	teamRepo.On("EnsureSchema", mock.Anything).Return(nil).Once()
	playerRepo.On("EnsureSchema", mock.Anything).Return(nil).Once()
	playerStatsRepo.On("EnsureSchema", mock.Anything).Return(nil).Once()
	teamStatsRepo.On("EnsureSchema", mock.Anything).Return(nil).Once()
	featureRepo.On("EnsureSchema", mock.Anything).Return(nil).Once()

	service := NewSchemaService(teamRepo, playerRepo, playerStatsRepo, teamStatsRepo, featureRepo)
	if err := service.EnsureTables(context.Background()); err != nil {
		t.Fatalf("ensure tables: %v", err)
	}
	featureRepo.AssertNotCalled(t, "Replace", mock.Anything, mock.Anything)
}
