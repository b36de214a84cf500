// This file implements persistence for podcast catalog entries. A Show row
// carries a large set of optional classification and revenue columns; all
// writes are parameterized and sparse updates only touch columns the caller
// explicitly supplied.
package repository

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/evergreenmedia/podcast-api/internal/model"
	"github.com/evergreenmedia/podcast-api/internal/utils"
)

// showCols is the canonical column order used by every SELECT on shows.
const showCols = `id, title, minimum_guarantee, annual_usd, subnetwork_id, media_type, tentpole,
relationship_level, show_type, evergreen_ownership_pct, has_sponsorship_revenue,
has_non_evergreen_revenue, requires_partner_access, has_branded_revenue, has_marketing_revenue,
has_web_mgmt_revenue, genre_id, is_original, shows_per_year, latest_cpm_usd, ad_slots,
avg_show_length_mins, start_date, show_name_in_qbo, side_bonus_percent, youtube_ads_percent,
subscriptions_percent, standard_ads_percent, sponsorship_ad_fp_lead_percent,
sponsorship_ad_partner_lead_percent, sponsorship_ad_partner_sold_percent,
programmatic_ads_span_percent, merchandise_percent, branded_revenue_percent,
marketing_services_revenue_percent, direct_customer_hands_off_percent,
youtube_hands_off_percent, subscription_hands_off_percent, revenue_2023, revenue_2024,
revenue_2025, evergreen_production_staff_name, show_host_contact, show_primary_contact`

// prefixCols rewrites a comma-separated column list to qualify every column
// with a table alias, for use in joined queries.
func prefixCols(alias, cols string) string {
	parts := strings.Split(cols, ",")
	for i, p := range parts {
		parts[i] = alias + "." + strings.TrimSpace(p)
	}
	return strings.Join(parts, ", ")
}

// ShowRepo manages persistence for shows.
type ShowRepo struct {
	db *sql.DB
}

// NewShowRepo constructs a ShowRepo with the given DB handle.
func NewShowRepo(db *sql.DB) *ShowRepo {
	return &ShowRepo{db: db}
}

// attrAssignments flattens the attribute struct into parallel column/value
// slices, skipping nil fields. Booleans are bound as 0/1, matching the
// tinyint columns.
func attrAssignments(a *model.ShowAttrs) (cols []string, vals []any) {
	addS := func(col string, v *string) {
		if v != nil {
			cols = append(cols, col)
			vals = append(vals, *v)
		}
	}
	addF := func(col string, v *float64) {
		if v != nil {
			cols = append(cols, col)
			vals = append(vals, *v)
		}
	}
	addI := func(col string, v *int) {
		if v != nil {
			cols = append(cols, col)
			vals = append(vals, *v)
		}
	}
	addB := func(col string, v *bool) {
		if v != nil {
			n := 0
			if *v {
				n = 1
			}
			cols = append(cols, col)
			vals = append(vals, n)
		}
	}

	addS("title", a.Title)
	addF("minimum_guarantee", a.MinimumGuarantee)
	if a.AnnualUSD != nil {
		cols = append(cols, "annual_usd")
		vals = append(vals, a.AnnualUSD)
	}
	addS("subnetwork_id", a.SubnetworkID)
	addS("media_type", a.MediaType)
	addB("tentpole", a.Tentpole)
	addS("relationship_level", a.RelationshipLevel)
	addS("show_type", a.ShowType)
	addF("evergreen_ownership_pct", a.EvergreenOwnershipPct)
	addB("has_sponsorship_revenue", a.HasSponsorshipRevenue)
	addB("has_non_evergreen_revenue", a.HasNonEvergreenRevenue)
	addB("requires_partner_access", a.RequiresPartnerAccess)
	addB("has_branded_revenue", a.HasBrandedRevenue)
	addB("has_marketing_revenue", a.HasMarketingRevenue)
	addB("has_web_mgmt_revenue", a.HasWebMgmtRevenue)
	addS("genre_id", a.GenreID)
	addB("is_original", a.IsOriginal)
	addI("shows_per_year", a.ShowsPerYear)
	addF("latest_cpm_usd", a.LatestCPMUSD)
	addI("ad_slots", a.AdSlots)
	addI("avg_show_length_mins", a.AvgShowLengthMins)
	addS("start_date", a.StartDate)
	addS("show_name_in_qbo", a.ShowNameInQBO)
	addF("side_bonus_percent", a.SideBonusPercent)
	addF("youtube_ads_percent", a.YoutubeAdsPercent)
	addF("subscriptions_percent", a.SubscriptionsPercent)
	addF("standard_ads_percent", a.StandardAdsPercent)
	addF("sponsorship_ad_fp_lead_percent", a.SponsorshipAdFpLeadPercent)
	addF("sponsorship_ad_partner_lead_percent", a.SponsorshipAdPartnerLeadPercent)
	addF("sponsorship_ad_partner_sold_percent", a.SponsorshipAdPartnerSoldPercent)
	addF("programmatic_ads_span_percent", a.ProgrammaticAdsSpanPercent)
	addF("merchandise_percent", a.MerchandisePercent)
	addF("branded_revenue_percent", a.BrandedRevenuePercent)
	addF("marketing_services_revenue_percent", a.MarketingServicesRevenuePercent)
	addF("direct_customer_hands_off_percent", a.DirectCustomerHandsOffPercent)
	addF("youtube_hands_off_percent", a.YoutubeHandsOffPercent)
	addF("subscription_hands_off_percent", a.SubscriptionHandsOffPercent)
	addF("revenue_2023", a.Revenue2023)
	addF("revenue_2024", a.Revenue2024)
	addF("revenue_2025", a.Revenue2025)
	addS("evergreen_production_staff_name", a.EvergreenProductionStaffName)
	addS("show_host_contact", a.ShowHostContact)
	addS("show_primary_contact", a.ShowPrimaryContact)
	return cols, vals
}

// rowScanner covers both *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

func scanShow(s rowScanner) (*model.Show, error) {
	var sh model.Show
	var startDate sql.NullTime
	err := s.Scan(
		&sh.ID, &sh.Title, &sh.MinimumGuarantee, &sh.AnnualUSD, &sh.SubnetworkID,
		&sh.MediaType, &sh.Tentpole, &sh.RelationshipLevel, &sh.ShowType,
		&sh.EvergreenOwnershipPct, &sh.HasSponsorshipRevenue, &sh.HasNonEvergreenRevenue,
		&sh.RequiresPartnerAccess, &sh.HasBrandedRevenue, &sh.HasMarketingRevenue,
		&sh.HasWebMgmtRevenue, &sh.GenreID, &sh.IsOriginal, &sh.ShowsPerYear,
		&sh.LatestCPMUSD, &sh.AdSlots, &sh.AvgShowLengthMins, &startDate,
		&sh.ShowNameInQBO, &sh.SideBonusPercent, &sh.YoutubeAdsPercent,
		&sh.SubscriptionsPercent, &sh.StandardAdsPercent, &sh.SponsorshipAdFpLeadPercent,
		&sh.SponsorshipAdPartnerLeadPercent, &sh.SponsorshipAdPartnerSoldPercent,
		&sh.ProgrammaticAdsSpanPercent, &sh.MerchandisePercent, &sh.BrandedRevenuePercent,
		&sh.MarketingServicesRevenuePercent, &sh.DirectCustomerHandsOffPercent,
		&sh.YoutubeHandsOffPercent, &sh.SubscriptionHandsOffPercent,
		&sh.Revenue2023, &sh.Revenue2024, &sh.Revenue2025,
		&sh.EvergreenProductionStaffName, &sh.ShowHostContact, &sh.ShowPrimaryContact,
	)
	if err != nil {
		return nil, err
	}
	if startDate.Valid {
		d := startDate.Time.Format("2006-01-02")
		sh.StartDate = &d
	}
	return &sh, nil
}

// Create inserts a new show with a generated id and returns the persisted
// row, including column defaults for fields the caller omitted.
func (r *ShowRepo) Create(ctx context.Context, attrs *model.ShowAttrs) (*model.Show, error) {
	id, err := utils.NewID()
	if err != nil {
		return nil, err
	}
	cols, vals := attrAssignments(attrs)
	cols = append([]string{"id"}, cols...)
	vals = append([]any{id}, vals...)

	q := "INSERT INTO shows (" + strings.Join(cols, ", ") + ") VALUES (" +
		strings.TrimSuffix(strings.Repeat("?, ", len(cols)), ", ") + ")"
	if _, err := r.db.ExecContext(ctx, q, vals...); err != nil {
		if isDupEntry(err) || isFKViolation(err) {
			return nil, ErrConflict
		}
		return nil, err
	}
	return r.GetByID(ctx, id)
}

// GetByID retrieves a show by its id. It returns ErrNotFound when there is
// no matching row.
func (r *ShowRepo) GetByID(ctx context.Context, id string) (*model.Show, error) {
	q := "SELECT " + showCols + " FROM shows WHERE id = ?"
	sh, err := scanShow(r.db.QueryRowContext(ctx, q, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return sh, nil
}

// List returns every show in the catalog.
func (r *ShowRepo) List(ctx context.Context) ([]model.Show, error) {
	return r.Filter(ctx, model.ShowFilter{})
}

// Filter returns shows matching the conjunction of all non-nil filter
// fields. With no fields set it behaves exactly like List.
func (r *ShowRepo) Filter(ctx context.Context, f model.ShowFilter) ([]model.Show, error) {
	q := "SELECT " + showCols + " FROM shows"
	var where []string
	var vals []any
	addS := func(col string, v *string) {
		if v != nil {
			where = append(where, col+" = ?")
			vals = append(vals, *v)
		}
	}
	addB := func(col string, v *bool) {
		if v != nil {
			n := 0
			if *v {
				n = 1
			}
			where = append(where, col+" = ?")
			vals = append(vals, n)
		}
	}
	addS("title", f.Title)
	addS("media_type", f.MediaType)
	addS("show_type", f.ShowType)
	addS("relationship_level", f.RelationshipLevel)
	addS("genre_id", f.GenreID)
	addS("subnetwork_id", f.SubnetworkID)
	addB("tentpole", f.Tentpole)
	addB("is_original", f.IsOriginal)
	if len(where) > 0 {
		q += " WHERE " + strings.Join(where, " AND ")
	}

	rows, err := r.db.QueryContext(ctx, q, vals...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	shows := []model.Show{}
	for rows.Next() {
		sh, err := scanShow(rows)
		if err != nil {
			return nil, err
		}
		shows = append(shows, *sh)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return shows, nil
}

// Update writes only the fields present in the patch. A patch with no
// fields set fails with ErrNoUpdateData before any statement runs; a patch
// against a missing show fails with ErrNotFound. The updated row is
// re-selected and returned.
func (r *ShowRepo) Update(ctx context.Context, id string, patch *model.ShowAttrs) (*model.Show, error) {
	cols, vals := attrAssignments(patch)
	if len(cols) == 0 {
		return nil, ErrNoUpdateData
	}
	for i, c := range cols {
		cols[i] = c + " = ?"
	}
	q := "UPDATE shows SET " + strings.Join(cols, ", ") + " WHERE id = ?"
	if _, err := r.db.ExecContext(ctx, q, append(vals, id)...); err != nil {
		if isDupEntry(err) || isFKViolation(err) {
			return nil, ErrConflict
		}
		return nil, err
	}
	// MySQL reports zero affected rows both for a missing row and for a
	// write that left values unchanged, so existence is settled by the
	// re-select rather than RowsAffected.
	return r.GetByID(ctx, id)
}

// Delete removes a show. ErrNotFound is returned when no row matched.
func (r *ShowRepo) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, "DELETE FROM shows WHERE id = ?", id)
	if err != nil {
		if isFKViolation(err) {
			return ErrConflict
		}
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}
