package models

import (
	"time"

	"github.com/creasty/defaults"
)

type WatchlistEntry struct {
	Symbol  string    `json:"symbol"`
	AddedAt time.Time `json:"addedAt"`
}

type WatchlistAddRequest struct {
	Symbol string `json:"symbol" validate:"required,notblank"`
}

// ProfileForm is the settings panel state. Defaults are applied by creasty/defaults.
type ProfileForm struct {
	InvestmentHorizon  InvestmentHorizon `json:"investmentHorizon" default:"mid" validate:"oneof=short mid long"`
	RiskProfile        RiskLevel         `json:"riskProfile" default:"moderate" validate:"oneof=conservative moderate aggressive"`
	PreferredSectors   []string          `json:"preferredSectors" default:"[]" validate:"dive,notblank"`
	NotificationsOptIn bool              `json:"notificationsOptIn"`
}

// DefaultProfileForm returns mid horizon, moderate risk, no sectors, no notifications.
func DefaultProfileForm() ProfileForm {
	var f ProfileForm
	// only fails on malformed default tags
	_ = defaults.Set(&f)
	return f
}

// Clone returns a copy that does not share the sectors slice.
func (f ProfileForm) Clone() ProfileForm {
	c := f
	c.PreferredSectors = append([]string{}, f.PreferredSectors...)
	return c
}

// UserProfile converts the form into the scoring input.
func (f ProfileForm) UserProfile() UserProfile {
	sectors := make([]string, len(f.PreferredSectors))
	copy(sectors, f.PreferredSectors)
	return UserProfile{
		Risk:               f.RiskProfile.Normalize(),
		InvestmentHorizon:  f.InvestmentHorizon,
		PreferredSectors:   sectors,
		NotificationsOptIn: f.NotificationsOptIn,
	}
}
