package services

import (
	"testing"

	"istore-api/internal/adapters/persistence/models"
	"istore-api/internal/core/domain"
)

func TestRankForSpendingThresholds(t *testing.T) {
	cfg := testLoyaltyConfig()

	tests := []struct {
		spending int64
		want     domain.Rank
	}{
		{0, domain.RankSilver},
		{9999999, domain.RankSilver},
		{10000000, domain.RankGold},
		{49999999, domain.RankGold},
		{50000000, domain.RankVIP},
		{120000000, domain.RankVIP},
	}
	for _, tt := range tests {
		if got := RankForSpending(tt.spending, cfg); got != tt.want {
			t.Errorf("RankForSpending(%d) = %s, want %s", tt.spending, got, tt.want)
		}
	}
}

func TestPointsForAmount(t *testing.T) {
	cfg := testLoyaltyConfig()

	tests := []struct {
		amount int64
		want   int64
	}{
		{0, 0},
		{9999, 0},
		{10000, 1},
		{25000, 2},
		{22000000, 2200},
		{-5000, 0},
	}
	for _, tt := range tests {
		if got := PointsForAmount(tt.amount, cfg); got != tt.want {
			t.Errorf("PointsForAmount(%d) = %d, want %d", tt.amount, got, tt.want)
		}
	}

	cfg.PointsDivisor = 0
	if got := PointsForAmount(50000, cfg); got != 0 {
		t.Errorf("zero divisor should award no points, got %d", got)
	}
}

func TestCreditLoyaltyAccumulates(t *testing.T) {
	cfg := testLoyaltyConfig()
	user := &models.User{Rank: string(domain.RankSilver)}

	creditLoyalty(user, 6000000, cfg)
	if user.TotalSpending != 6000000 || user.Points != 600 || user.Rank != string(domain.RankSilver) {
		t.Errorf("after first credit: %+v", user)
	}

	creditLoyalty(user, 6000000, cfg)
	if user.TotalSpending != 12000000 || user.Points != 1200 || user.Rank != string(domain.RankGold) {
		t.Errorf("after second credit: %+v", user)
	}
}

func TestCreditLoyaltyRankNeverDrops(t *testing.T) {
	cfg := testLoyaltyConfig()
	user := &models.User{Rank: string(domain.RankVIP), TotalSpending: 100000}

	creditLoyalty(user, 10000, cfg)
	if user.Rank != string(domain.RankVIP) {
		t.Errorf("rank must not drop, got %s", user.Rank)
	}
}

func TestRankOrdering(t *testing.T) {
	if !domain.RankSilver.Less(domain.RankGold) || !domain.RankGold.Less(domain.RankVIP) {
		t.Error("expected Silver < Gold < VIP")
	}
	if domain.RankVIP.Max(domain.RankSilver) != domain.RankVIP {
		t.Error("Max should keep the higher tier")
	}
	if domain.RankSilver.Max(domain.RankGold) != domain.RankGold {
		t.Error("Max should promote to the higher tier")
	}
}
