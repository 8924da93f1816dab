package domain

// MembershipTier is a member's discount class
type MembershipTier string

const (
	TierStandard MembershipTier = "STANDARD"
	TierStudent  MembershipTier = "STUDENT"
	TierPremium  MembershipTier = "PREMIUM"
)

func (t MembershipTier) Valid() bool {
	switch t {
	case TierStandard, TierStudent, TierPremium:
		return true
	}
	return false
}

type Member struct {
	ID    int32          `json:"id"`
	Name  string         `json:"name"`
	Email string         `json:"email"`
	Tier  MembershipTier `json:"tier"`
	// History holds rental IDs in creation order. Append only.
	History []string `json:"history"`
}

func (m *Member) Clone() *Member {
	c := *m
	c.History = append([]string(nil), m.History...)
	return &c
}
