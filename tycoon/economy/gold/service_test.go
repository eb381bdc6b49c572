package gold

import (
	"context"
	"errors"
	"testing"
	"time"

	"go.uber.org/mock/gomock"

	"github.com/mektycoon/mekgold/tycoon/config"
	"github.com/mektycoon/mekgold/tycoon/database/models"
	"github.com/mektycoon/mekgold/tycoon/database/repositories"
	"github.com/mektycoon/mekgold/tycoon/database/repositories/mock"
)

var fixedNow = time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)

type mockRepos struct {
	accounts      *mock.MockAccountRepository
	assets        *mock.MockAssetRepository
	modifiers     *mock.MockModifierRepository
	modifierTypes *mock.MockModifierTypeRepository
	settlements   *mock.MockSettlementRepository
}

func (m mockRepos) repos() repositories.Repos {
	return repositories.Repos{
		Accounts:      m.accounts,
		Assets:        m.assets,
		Modifiers:     m.modifiers,
		ModifierTypes: m.modifierTypes,
		Settlements:   m.settlements,
	}
}

// serviceMock returns a service whose store hands fn the mock repositories
// for every transaction.
func serviceMock(t *testing.T) (*Service, mockRepos) {
	ctrl := gomock.NewController(t)
	m := mockRepos{
		accounts:      mock.NewMockAccountRepository(ctrl),
		assets:        mock.NewMockAssetRepository(ctrl),
		modifiers:     mock.NewMockModifierRepository(ctrl),
		modifierTypes: mock.NewMockModifierTypeRepository(ctrl),
		settlements:   mock.NewMockSettlementRepository(ctrl),
	}

	store := mock.NewMockStore(ctrl)
	store.EXPECT().
		RunInTx(gomock.Any(), gomock.Any()).
		DoAndReturn(func(ctx context.Context, fn func(context.Context, repositories.Repos) error) error {
			return fn(ctx, m.repos())
		}).
		AnyTimes()
	store.EXPECT().Repos().Return(m.repos()).AnyTimes()

	s, err := NewService(store, DefaultConfig(),
		WithClock(func() time.Time { return fixedNow }),
		WithBackoff(func(int) time.Duration { return 0 }))
	if err != nil {
		t.Fatalf("NewService() error = %v", err)
	}
	return s, m
}

func account(id string, rate float64, last time.Time) *models.Account {
	return &models.Account{
		ID:             id,
		Role:           config.RolePlayer,
		GoldRate:       rate,
		LastSettlement: last,
		Level:          config.StartingLevel,
	}
}

func Test_service_AccountNotFoundWritesNothing(t *testing.T) {
	tests := []struct {
		name string
		call func(s *Service) error
	}{
		{
			name: "Collect",
			call: func(s *Service) error {
				_, err := s.Collect(context.Background(), "ghost")
				return err
			},
		},
		{
			name: "RecomputeRate",
			call: func(s *Service) error {
				_, err := s.RecomputeRate(context.Background(), "ghost")
				return err
			},
		},
		{
			name: "GrantModifier",
			call: func(s *Service) error {
				_, err := s.GrantModifier(context.Background(), GrantRequest{AccountID: "ghost", TypeID: "gold_rush"})
				return err
			},
		},
		{
			name: "Spend",
			call: func(s *Service) error {
				_, err := s.Spend(context.Background(), "ghost", 5)
				return err
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, m := serviceMock(t)
			m.accounts.EXPECT().
				GetByID(gomock.Any(), "ghost").
				Return(nil, &repositories.NotFoundError{Entity: "account", ID: "ghost"})

			err := tt.call(s)
			if !errors.Is(err, ErrAccountNotFound) {
				t.Errorf("error = %v, want ErrAccountNotFound", err)
			}
			if IsRetryable(err) {
				t.Errorf("IsRetryable(%v) = true, want false", err)
			}
		})
	}
}

func Test_service_RecomputeRateRetriesThenConflicts(t *testing.T) {
	s, m := serviceMock(t)
	maxRetries := s.Config().MaxRetries

	m.accounts.EXPECT().
		GetByID(gomock.Any(), "acct").
		DoAndReturn(func(context.Context, string) (*models.Account, error) {
			return account("acct", 10, fixedNow.Add(-time.Hour)), nil
		}).
		Times(maxRetries)
	m.assets.EXPECT().ListByAccount(gomock.Any(), "acct").Return(nil, nil).Times(maxRetries)
	m.modifiers.EXPECT().ListByAccount(gomock.Any(), "acct", false).Return(nil, nil).Times(maxRetries)
	m.accounts.EXPECT().
		Update(gomock.Any(), gomock.Any()).
		Return(repositories.ErrVersionConflict).
		Times(maxRetries)

	_, err := s.RecomputeRate(context.Background(), "acct")
	if !errors.Is(err, ErrConcurrentModification) {
		t.Fatalf("RecomputeRate() error = %v, want ErrConcurrentModification", err)
	}
	if !IsRetryable(err) {
		t.Errorf("IsRetryable(%v) = false, want true", err)
	}

	var conflict *ConflictError
	if !errors.As(err, &conflict) {
		t.Fatalf("RecomputeRate() error = %T, want *ConflictError", err)
	}
	if conflict.Attempts != maxRetries {
		t.Errorf("Attempts = %d, want %d", conflict.Attempts, maxRetries)
	}
	if !errors.Is(err, repositories.ErrVersionConflict) {
		t.Errorf("ConflictError does not wrap ErrVersionConflict: %v", err)
	}
}

func Test_service_RecomputeRateSucceedsAfterConflict(t *testing.T) {
	s, m := serviceMock(t)

	m.accounts.EXPECT().
		GetByID(gomock.Any(), "acct").
		DoAndReturn(func(context.Context, string) (*models.Account, error) {
			return account("acct", 10, fixedNow.Add(-2*time.Hour)), nil
		}).
		Times(2)
	m.assets.EXPECT().
		ListByAccount(gomock.Any(), "acct").
		Return([]*models.Asset{{ID: 1, AccountID: "acct", Level: 7}}, nil).
		Times(2)
	m.modifiers.EXPECT().ListByAccount(gomock.Any(), "acct", false).Return(nil, nil).Times(2)
	gomock.InOrder(
		m.accounts.EXPECT().Update(gomock.Any(), gomock.Any()).Return(repositories.ErrVersionConflict),
		m.accounts.EXPECT().Update(gomock.Any(), gomock.Any()).Return(nil),
	)
	m.settlements.EXPECT().Create(gomock.Any(), gomock.Any()).Return(nil)

	got, err := s.RecomputeRate(context.Background(), "acct")
	if err != nil {
		t.Fatalf("RecomputeRate() error = %v", err)
	}
	if got.Settled != 20 {
		t.Errorf("Settled = %v, want 20", got.Settled)
	}
	if got.NewRate != 7 {
		t.Errorf("NewRate = %v, want 7", got.NewRate)
	}
	if !got.SettledAt.Equal(fixedNow) {
		t.Errorf("SettledAt = %v, want %v", got.SettledAt, fixedNow)
	}
}

func Test_service_GrantModifierAtMaxStacks(t *testing.T) {
	s, m := serviceMock(t)

	existing := &models.Modifier{
		ID:        9,
		AccountID: "acct",
		TypeID:    "gold_rush",
		Source:    "shop",
		Category:  config.CategoryGoldRate,
		Kind:      models.KindPercentage,
		Magnitude: 25,
		Stacks:    3,
		Active:    true,
	}

	m.accounts.EXPECT().GetByID(gomock.Any(), "acct").Return(account("acct", 10, fixedNow), nil)
	m.modifierTypes.EXPECT().
		GetByID(gomock.Any(), "gold_rush").
		Return(&DefaultModifierTypes()[0], nil)
	m.modifiers.EXPECT().
		FindLive(gomock.Any(), "acct", "gold_rush", "shop", fixedNow).
		Return(existing, nil)

	got, err := s.GrantModifier(context.Background(), GrantRequest{AccountID: "acct", TypeID: "gold_rush", Source: "shop"})
	if err != nil {
		t.Fatalf("GrantModifier() error = %v", err)
	}
	if got.Outcome != GrantMaxStacks {
		t.Errorf("Outcome = %v, want %v", got.Outcome, GrantMaxStacks)
	}
	if got.MaxStacks != 3 {
		t.Errorf("MaxStacks = %d, want 3", got.MaxStacks)
	}
	if got.Modifier.Stacks != 3 {
		t.Errorf("Stacks = %d, want 3", got.Modifier.Stacks)
	}
	if got.Recompute != nil {
		t.Errorf("Recompute = %+v, want nil", got.Recompute)
	}
}

func Test_service_GrantModifierUnknownType(t *testing.T) {
	s, m := serviceMock(t)

	catalog := DefaultModifierTypes()
	listed := make([]*models.ModifierType, len(catalog))
	for i := range catalog {
		listed[i] = &catalog[i]
	}

	m.accounts.EXPECT().GetByID(gomock.Any(), "acct").Return(account("acct", 10, fixedNow), nil)
	m.modifierTypes.EXPECT().
		GetByID(gomock.Any(), "gold_rsh").
		Return(nil, &repositories.NotFoundError{Entity: "modifier_type", ID: "gold_rsh"})
	m.modifierTypes.EXPECT().List(gomock.Any()).Return(listed, nil)

	_, err := s.GrantModifier(context.Background(), GrantRequest{AccountID: "acct", TypeID: "gold_rsh"})
	if !errors.Is(err, ErrModifierTypeNotFound) {
		t.Fatalf("GrantModifier() error = %v, want ErrModifierTypeNotFound", err)
	}

	var notFound *ModifierTypeNotFoundError
	if !errors.As(err, &notFound) {
		t.Fatalf("GrantModifier() error = %T, want *ModifierTypeNotFoundError", err)
	}
	found := false
	for _, suggestion := range notFound.Suggestions {
		if suggestion == "gold_rush" {
			found = true
		}
	}
	if !found {
		t.Errorf("Suggestions = %v, want gold_rush among them", notFound.Suggestions)
	}
}

func Test_service_GrantModifierRejectsNegativeDuration(t *testing.T) {
	s, _ := serviceMock(t)

	d := -time.Minute
	_, err := s.GrantModifier(context.Background(), GrantRequest{AccountID: "acct", TypeID: "gold_rush", Duration: &d})
	if !errors.Is(err, ErrInvalidDuration) {
		t.Errorf("GrantModifier() error = %v, want ErrInvalidDuration", err)
	}
}

func Test_service_SpendValidation(t *testing.T) {
	tests := []struct {
		name    string
		balance float64
		amount  float64
		wantErr error
	}{
		{name: "Zero", balance: 10, amount: 0, wantErr: ErrInvalidAmount},
		{name: "Negative", balance: 10, amount: -1, wantErr: ErrInvalidAmount},
		{name: "Insufficient", balance: 10, amount: 10.5, wantErr: ErrInsufficientBalance},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, m := serviceMock(t)
			acct := account("acct", 0, fixedNow)
			acct.Balance = tt.balance
			m.accounts.EXPECT().GetByID(gomock.Any(), "acct").Return(acct, nil).AnyTimes()

			_, err := s.Spend(context.Background(), "acct", tt.amount)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("Spend() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func Test_exponentialBackoff(t *testing.T) {
	tests := []struct {
		attempt int
		want    time.Duration
	}{
		{attempt: 1, want: config.RetryBaseDelay},
		{attempt: 2, want: 2 * config.RetryBaseDelay},
		{attempt: 3, want: 4 * config.RetryBaseDelay},
		{attempt: 10, want: config.RetryMaxDelay},
	}

	for _, tt := range tests {
		if got := exponentialBackoff(tt.attempt); got != tt.want {
			t.Errorf("exponentialBackoff(%d) = %v, want %v", tt.attempt, got, tt.want)
		}
	}
}
