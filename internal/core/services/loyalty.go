package services

import (
	"istore-api/internal/adapters/persistence/models"
	"istore-api/internal/config"
	"istore-api/internal/core/domain"
)

// RankForSpending maps a lifetime spending amount to its loyalty tier.
func RankForSpending(spending int64, cfg config.LoyaltyConfig) domain.Rank {
	switch {
	case spending >= cfg.VIPThreshold:
		return domain.RankVIP
	case spending >= cfg.GoldThreshold:
		return domain.RankGold
	default:
		return domain.RankSilver
	}
}

// PointsForAmount converts a credited order amount into reward points,
// one point per full divisor unit, remainder discarded.
func PointsForAmount(amount int64, cfg config.LoyaltyConfig) int64 {
	if cfg.PointsDivisor <= 0 || amount <= 0 {
		return 0
	}
	return amount / cfg.PointsDivisor
}

// creditLoyalty applies a purchase amount to the user in memory:
// spending accumulates, points are awarded, and the rank is recomputed
// from the new total. Ranks never move down, even if thresholds change.
func creditLoyalty(user *models.User, amount int64, cfg config.LoyaltyConfig) {
	user.TotalSpending += amount
	user.Points += PointsForAmount(amount, cfg)

	current := domain.Rank(user.Rank)
	user.Rank = string(current.Max(RankForSpending(user.TotalSpending, cfg)))
}
