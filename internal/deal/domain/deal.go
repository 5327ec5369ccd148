package domain

import (
	"strings"
	"time"
)

// AccessLevel gates who may claim a deal.
type AccessLevel string

const (
	// AccessLevelPublic deals may be claimed by any authenticated user.
	AccessLevelPublic AccessLevel = "public"
	// AccessLevelLocked deals require the user's verification flag.
	AccessLevelLocked AccessLevel = "locked"
)

// Valid reports whether a is a known access level.
func (a AccessLevel) Valid() bool {
	return a == AccessLevelPublic || a == AccessLevelLocked
}

// Deal is a partner offer. Deals are created and deactivated by an
// out-of-band administrative process; this service reads them only.
type Deal struct {
	ID             string      `json:"id"`
	Title          string      `json:"title"`
	Slug           string      `json:"slug"`
	Description    string      `json:"description"`
	Category       string      `json:"category"`
	AccessLevel    AccessLevel `json:"accessLevel"`
	PartnerName    string      `json:"partnerName"`
	PartnerURL     string      `json:"partnerUrl,omitempty"`
	PartnerLogoURL string      `json:"partnerLogoUrl,omitempty"`
	Eligibility    string      `json:"eligibility"`
	IsActive       bool        `json:"isActive"`
	CreatedAt      time.Time   `json:"createdAt"`
	UpdatedAt      time.Time   `json:"updatedAt"`
}

// Summary is the deal projection joined onto claim listings.
type Summary struct {
	ID             string      `json:"id"`
	Title          string      `json:"title"`
	Slug           string      `json:"slug"`
	Description    string      `json:"description"`
	Category       string      `json:"category"`
	AccessLevel    AccessLevel `json:"accessLevel"`
	PartnerName    string      `json:"partnerName"`
	PartnerLogoURL string      `json:"partnerLogoUrl,omitempty"`
}

// Filter selects deals in catalog listings. Zero values mean "no filter";
// unrecognized values are ignored rather than rejected, so a typo'd filter
// degrades to an unfiltered listing.
type Filter struct {
	// Search is a case-insensitive substring match against title or
	// description. The input is always treated literally.
	Search string
	// Category is an exact category match.
	Category string
	// AccessLevel filters by access level when it is a known value.
	AccessLevel string
}

// Normalize trims filter fields and drops an unrecognized access level.
func (f Filter) Normalize() Filter {
	out := Filter{
		Search:   strings.TrimSpace(f.Search),
		Category: strings.TrimSpace(f.Category),
	}
	if lvl := AccessLevel(strings.TrimSpace(f.AccessLevel)); lvl.Valid() {
		out.AccessLevel = string(lvl)
	}
	return out
}
