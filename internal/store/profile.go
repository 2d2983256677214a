package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"entgo.io/ent/dialect"
	entsql "entgo.io/ent/dialect/sql"

	"github.com/abhisek/pathfinder/internal/submission"
)

const profilesTable = "profiles"

// ErrEmailRequired is returned when a profile write has no email.
var ErrEmailRequired = errors.New("profile email is required")

// profileRepo implements ProfileRepo. Recommendations are stored as a JSON
// array of career titles.
type profileRepo struct {
	db *sql.DB
}

func (r *profileRepo) Upsert(ctx context.Context, data ProfileData) (*Profile, error) {
	email := normalizeEmail(data.Email)
	if email == "" {
		return nil, ErrEmailRequired
	}

	recs := data.Recommendations
	if recs == nil {
		recs = []string{}
	}
	recsJSON, err := json.Marshal(recs)
	if err != nil {
		return nil, fmt.Errorf("marshal recommendations: %w", err)
	}

	now := time.Now().UnixMilli()
	query, args := entsql.Dialect(dialect.SQLite).
		Insert(profilesTable).
		Columns("email", "conclusion", "recommendations", "reports", "created_at", "updated_at").
		Values(email, data.Conclusion, string(recsJSON), 1, now, now).
		OnConflict(
			entsql.ConflictColumns("email"),
			entsql.ResolveWith(func(u *entsql.UpdateSet) {
				u.SetExcluded("conclusion")
				u.SetExcluded("recommendations")
				u.SetExcluded("updated_at")
				u.Add("reports", 1)
			}),
		).
		Query()
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return nil, fmt.Errorf("upsert profile: %w", err)
	}

	p, err := r.Get(ctx, email)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, fmt.Errorf("profile %s missing after upsert", email)
	}
	return p, nil
}

func (r *profileRepo) Get(ctx context.Context, email string) (*Profile, error) {
	query, args := entsql.Dialect(dialect.SQLite).
		Select("email", "conclusion", "recommendations", "reports", "created_at", "updated_at").
		From(entsql.Table(profilesTable)).
		Where(entsql.EQ("email", normalizeEmail(email))).
		Query()

	var (
		p                Profile
		recsJSON         string
		created, updated int64
	)
	err := r.db.QueryRowContext(ctx, query, args...).
		Scan(&p.Email, &p.Conclusion, &recsJSON, &p.Reports, &created, &updated)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("query profile: %w", err)
	}

	if err := json.Unmarshal([]byte(recsJSON), &p.Recommendations); err != nil {
		return nil, fmt.Errorf("unmarshal recommendations: %w", err)
	}
	p.CreatedAt = time.UnixMilli(created).UTC()
	p.UpdatedAt = time.UnixMilli(updated).UTC()
	return &p, nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// ProfileSyncer writes submission profile updates straight into a
// ProfileRepo. It is used when no remote profile service is configured.
type ProfileSyncer struct {
	Repo ProfileRepo
}

// SyncProfile implements submission.ProfileSyncer.
func (s ProfileSyncer) SyncProfile(ctx context.Context, update submission.ProfileUpdate) error {
	_, err := s.Repo.Upsert(ctx, ProfileData{
		Email:           update.Email,
		Conclusion:      update.Conclusion,
		Recommendations: update.Recommendations,
	})
	return err
}
