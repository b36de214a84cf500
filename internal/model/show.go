package model

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
)

// Enumerated values accepted for the classification columns on shows.
// Handlers validate inbound values against these sets before anything
// reaches the database.
var (
	MediaTypes         = map[string]bool{"video": true, "audio": true, "both": true}
	RelationshipLevels = map[string]bool{"strong": true, "medium": true, "weak": true}
	ShowTypes          = map[string]bool{"Branded": true, "Original": true, "Partner": true}
)

// AnnualUSD maps a year label to a revenue figure. It is persisted as a JSON
// column, so it implements driver.Valuer and sql.Scanner.
type AnnualUSD map[string]float64

// Value marshals the map to JSON for storage. A nil map stores SQL NULL.
func (a AnnualUSD) Value() (driver.Value, error) {
	if a == nil {
		return nil, nil
	}
	return json.Marshal(a)
}

// Scan unmarshals a JSON column value into the map. NULL leaves it nil.
func (a *AnnualUSD) Scan(src any) error {
	if src == nil {
		*a = nil
		return nil
	}
	var raw []byte
	switch v := src.(type) {
	case []byte:
		raw = v
	case string:
		raw = []byte(v)
	default:
		return errors.New("annual_usd: unsupported column type")
	}
	return json.Unmarshal(raw, a)
}

// ShowAttrs holds every mutable column of the `shows` table. Pointer fields
// record presence: nil means the caller did not supply the field, which is
// how sparse updates are expressed without inspecting raw JSON keys.
type ShowAttrs struct {
	Title                           *string   `json:"title"`
	MinimumGuarantee                *float64  `json:"minimum_guarantee"`
	AnnualUSD                       AnnualUSD `json:"annual_usd"`
	SubnetworkID                    *string   `json:"subnetwork_id"`
	MediaType                       *string   `json:"media_type"`
	Tentpole                        *bool     `json:"tentpole"`
	RelationshipLevel               *string   `json:"relationship_level"`
	ShowType                        *string   `json:"show_type"`
	EvergreenOwnershipPct           *float64  `json:"evergreen_ownership_pct"`
	HasSponsorshipRevenue           *bool     `json:"has_sponsorship_revenue"`
	HasNonEvergreenRevenue          *bool     `json:"has_non_evergreen_revenue"`
	RequiresPartnerAccess           *bool     `json:"requires_partner_access"`
	HasBrandedRevenue               *bool     `json:"has_branded_revenue"`
	HasMarketingRevenue             *bool     `json:"has_marketing_revenue"`
	HasWebMgmtRevenue               *bool     `json:"has_web_mgmt_revenue"`
	GenreID                         *string   `json:"genre_id"`
	IsOriginal                      *bool     `json:"is_original"`
	ShowsPerYear                    *int      `json:"shows_per_year"`
	LatestCPMUSD                    *float64  `json:"latest_cpm_usd"`
	AdSlots                         *int      `json:"ad_slots"`
	AvgShowLengthMins               *int      `json:"avg_show_length_mins"`
	StartDate                       *string   `json:"start_date"` // "YYYY-MM-DD"
	ShowNameInQBO                   *string   `json:"show_name_in_qbo"`
	SideBonusPercent                *float64  `json:"side_bonus_percent"`
	YoutubeAdsPercent               *float64  `json:"youtube_ads_percent"`
	SubscriptionsPercent            *float64  `json:"subscriptions_percent"`
	StandardAdsPercent              *float64  `json:"standard_ads_percent"`
	SponsorshipAdFpLeadPercent      *float64  `json:"sponsorship_ad_fp_lead_percent"`
	SponsorshipAdPartnerLeadPercent *float64  `json:"sponsorship_ad_partner_lead_percent"`
	SponsorshipAdPartnerSoldPercent *float64  `json:"sponsorship_ad_partner_sold_percent"`
	ProgrammaticAdsSpanPercent      *float64  `json:"programmatic_ads_span_percent"`
	MerchandisePercent              *float64  `json:"merchandise_percent"`
	BrandedRevenuePercent           *float64  `json:"branded_revenue_percent"`
	MarketingServicesRevenuePercent *float64  `json:"marketing_services_revenue_percent"`
	DirectCustomerHandsOffPercent   *float64  `json:"direct_customer_hands_off_percent"`
	YoutubeHandsOffPercent          *float64  `json:"youtube_hands_off_percent"`
	SubscriptionHandsOffPercent     *float64  `json:"subscription_hands_off_percent"`
	Revenue2023                     *float64  `json:"revenue_2023"`
	Revenue2024                     *float64  `json:"revenue_2024"`
	Revenue2025                     *float64  `json:"revenue_2025"`
	EvergreenProductionStaffName    *string   `json:"evergreen_production_staff_name"`
	ShowHostContact                 *string   `json:"show_host_contact"`
	ShowPrimaryContact              *string   `json:"show_primary_contact"`
}

// Show is a podcast catalog row: an opaque id plus its attribute columns.
type Show struct {
	ID string `json:"id"`
	ShowAttrs
}

// ShowFilter selects shows by exact match on the supplied fields. Nil fields
// do not participate; an empty filter matches everything.
type ShowFilter struct {
	Title             *string
	MediaType         *string
	ShowType          *string
	RelationshipLevel *string
	GenreID           *string
	SubnetworkID      *string
	Tentpole          *bool
	IsOriginal        *bool
}
