package domain

import "fmt"

// Role represents user role in the system
type Role string

const (
	RoleUser  Role = "USER"
	RoleAdmin Role = "ADMIN"
)

// Rank represents a loyalty membership tier, ordered Silver < Gold < VIP.
type Rank string

const (
	RankSilver Rank = "Silver"
	RankGold   Rank = "Gold"
	RankVIP    Rank = "VIP"
)

// rankOrder maps each rank to its position in the tier ordering.
var rankOrder = map[Rank]int{
	RankSilver: 0,
	RankGold:   1,
	RankVIP:    2,
}

// Less reports whether r is a lower tier than other.
func (r Rank) Less(other Rank) bool {
	return rankOrder[r] < rankOrder[other]
}

// Max returns the higher of the two tiers. Rank transitions are upward
// only, so crediting always keeps the max of old and recomputed rank.
func (r Rank) Max(other Rank) Rank {
	if r.Less(other) {
		return other
	}
	return r
}

// Order statuses. Intermediate labels are operator-defined strings;
// only Pending (initial) and Completed (terminal, credits loyalty) and
// Cancelled carry fixed semantics.
const (
	OrderStatusPending   = "Pending"
	OrderStatusCompleted = "Completed"
	OrderStatusCancelled = "Cancelled"
)

// Caller identifies the principal behind a request: a guest or an
// authenticated user. Checkout accepts both; guests forfeit the
// voucher, cart-clearing and loyalty side effects.
type Caller struct {
	UserID uint
	Role   Role
}

// Guest returns the unauthenticated caller.
func Guest() *Caller {
	return nil
}

// IsAuthenticated reports whether the caller carries an identity.
func (c *Caller) IsAuthenticated() bool {
	return c != nil && c.UserID != 0
}

func (c *Caller) String() string {
	if !c.IsAuthenticated() {
		return "guest"
	}
	return fmt.Sprintf("user#%d", c.UserID)
}
