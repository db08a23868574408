package pg

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/localizer/dashboard/shared/domain"
	internal_errors "github.com/localizer/dashboard/shared/errors"
	sharedpg "github.com/localizer/dashboard/shared/storage/pg"
)

type scanner interface {
	Scan(dest ...any) error
}

// collect scans every row with scan and closes rows.
func collect[T any](rows *sql.Rows, scan func(scanner) (T, error)) ([]T, error) {
	defer rows.Close()
	out := []T{}
	for rows.Next() {
		v, err := scan(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate rows: %w", err)
	}
	return out, nil
}

// one maps sql.ErrNoRows to a 404 with message.
func one[T any](row *sql.Row, scan func(scanner) (T, error), message string) (T, error) {
	v, err := scan(row)
	if errors.Is(err, sql.ErrNoRows) {
		var zero T
		return zero, internal_errors.NotFound(message)
	}
	return v, err
}

func deleteByID(ctx context.Context, q sharedpg.Querier, table, id, message string) error {
	res, err := q.ExecContext(ctx, "DELETE FROM "+table+" WHERE id = $1", id)
	if err != nil {
		return fmt.Errorf("failed to delete from %s: %w", table, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return internal_errors.NotFound(message)
	}
	return nil
}

// constraintError turns constraint violations into 422s.
func constraintError(err error) error {
	if name := sharedpg.Constraint(err); name != "" {
		return internal_errors.Unprocessable("Constraint violated: " + name)
	}
	return err
}

// =========================================================================
// Cards
// =========================================================================

const (
	cardColumns  = "id, title, subtitle, description, link, badge, preview_url, is_coming_soon, sort_order, is_active, type"
	cardNotFound = "Card not found"
)

type CardStore struct {
	db *sql.DB
}

func scanCard(s scanner) (domain.Card, error) {
	var c domain.Card
	var comingSoon, active bool
	err := s.Scan(&c.ID, &c.Title, &c.Subtitle, &c.Description, &c.Link, &c.Badge, &c.PreviewURL,
		&comingSoon, &c.Order, &active, &c.Type)
	c.IsComingSoon = domain.Flag(comingSoon)
	c.IsActive = domain.Flag(active)
	return c, err
}

func (s *CardStore) List(ctx context.Context) ([]domain.Card, error) {
	rows, err := s.db.QueryContext(ctx, "SELECT "+cardColumns+" FROM cards ORDER BY sort_order, created_at, id")
	if err != nil {
		return nil, fmt.Errorf("failed to list cards: %w", err)
	}
	return collect(rows, scanCard)
}

func (s *CardStore) Get(ctx context.Context, id domain.ID) (domain.Card, error) {
	row := s.db.QueryRowContext(ctx, "SELECT "+cardColumns+" FROM cards WHERE id = $1", string(id))
	return one(row, scanCard, cardNotFound)
}

func (s *CardStore) Insert(ctx context.Context, c domain.Card) (domain.Card, error) {
	row := s.db.QueryRowContext(ctx, `
	INSERT INTO cards (id, title, subtitle, description, link, badge, preview_url, is_coming_soon, sort_order, is_active, type)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
	RETURNING `+cardColumns,
		uuid.NewString(), c.Title, c.Subtitle, c.Description, c.Link, c.Badge, c.PreviewURL,
		c.IsComingSoon.Bool(), c.Order, c.IsActive.Bool(), string(c.Type))
	created, err := scanCard(row)
	if err != nil {
		return domain.Card{}, constraintError(err)
	}
	return created, nil
}

func (s *CardStore) Update(ctx context.Context, id domain.ID, c domain.Card) (domain.Card, error) {
	row := s.db.QueryRowContext(ctx, `
	UPDATE cards SET title = $2, subtitle = $3, description = $4, link = $5, badge = $6, preview_url = $7,
		is_coming_soon = $8, sort_order = $9, is_active = $10, type = $11
	WHERE id = $1
	RETURNING `+cardColumns,
		string(id), c.Title, c.Subtitle, c.Description, c.Link, c.Badge, c.PreviewURL,
		c.IsComingSoon.Bool(), c.Order, c.IsActive.Bool(), string(c.Type))
	updated, err := one(row, scanCard, cardNotFound)
	if err != nil {
		return domain.Card{}, constraintError(err)
	}
	return updated, nil
}

func (s *CardStore) Delete(ctx context.Context, id domain.ID) error {
	return deleteByID(ctx, s.db, "cards", string(id), cardNotFound)
}

// =========================================================================
// Reviews
// =========================================================================

const (
	reviewColumns  = "id, name, email, rate, review"
	reviewNotFound = "Review not found"
)

type ReviewStore struct {
	db *sql.DB
}

func scanReview(s scanner) (domain.Review, error) {
	var r domain.Review
	err := s.Scan(&r.ID, &r.Name, &r.Email, &r.Rate, &r.Review)
	return r, err
}

func (s *ReviewStore) List(ctx context.Context) ([]domain.Review, error) {
	rows, err := s.db.QueryContext(ctx, "SELECT "+reviewColumns+" FROM reviews ORDER BY created_at, id")
	if err != nil {
		return nil, fmt.Errorf("failed to list reviews: %w", err)
	}
	return collect(rows, scanReview)
}

func (s *ReviewStore) Get(ctx context.Context, id domain.ID) (domain.Review, error) {
	row := s.db.QueryRowContext(ctx, "SELECT "+reviewColumns+" FROM reviews WHERE id = $1", string(id))
	return one(row, scanReview, reviewNotFound)
}

func (s *ReviewStore) Insert(ctx context.Context, r domain.Review) (domain.Review, error) {
	row := s.db.QueryRowContext(ctx, `
	INSERT INTO reviews (id, name, email, rate, review) VALUES ($1, $2, $3, $4, $5)
	RETURNING `+reviewColumns,
		uuid.NewString(), r.Name, r.Email, r.Rate, r.Review)
	created, err := scanReview(row)
	if err != nil {
		return domain.Review{}, constraintError(err)
	}
	return created, nil
}

func (s *ReviewStore) Update(ctx context.Context, id domain.ID, r domain.Review) (domain.Review, error) {
	row := s.db.QueryRowContext(ctx, `
	UPDATE reviews SET name = $2, email = $3, rate = $4, review = $5 WHERE id = $1
	RETURNING `+reviewColumns,
		string(id), r.Name, r.Email, r.Rate, r.Review)
	updated, err := one(row, scanReview, reviewNotFound)
	if err != nil {
		return domain.Review{}, constraintError(err)
	}
	return updated, nil
}

func (s *ReviewStore) Delete(ctx context.Context, id domain.ID) error {
	return deleteByID(ctx, s.db, "reviews", string(id), reviewNotFound)
}

// =========================================================================
// Contacts
// =========================================================================

const (
	contactColumns  = "id, name, email, phone, message, date"
	contactNotFound = "Contact not found"
)

type ContactStore struct {
	db *sql.DB
}

func scanContact(s scanner) (domain.Contact, error) {
	var c domain.Contact
	err := s.Scan(&c.ID, &c.Name, &c.Email, &c.Phone, &c.Message, &c.Date)
	c.Date = c.Date.UTC()
	return c, err
}

func (s *ContactStore) List(ctx context.Context) ([]domain.Contact, error) {
	rows, err := s.db.QueryContext(ctx, "SELECT "+contactColumns+" FROM contacts ORDER BY date DESC, id")
	if err != nil {
		return nil, fmt.Errorf("failed to list contacts: %w", err)
	}
	return collect(rows, scanContact)
}

func (s *ContactStore) Get(ctx context.Context, id domain.ID) (domain.Contact, error) {
	row := s.db.QueryRowContext(ctx, "SELECT "+contactColumns+" FROM contacts WHERE id = $1", string(id))
	return one(row, scanContact, contactNotFound)
}

func (s *ContactStore) Insert(ctx context.Context, c domain.Contact) (domain.Contact, error) {
	row := s.db.QueryRowContext(ctx, `
	INSERT INTO contacts (id, name, email, phone, message, date) VALUES ($1, $2, $3, $4, $5, $6)
	RETURNING `+contactColumns,
		uuid.NewString(), c.Name, c.Email, c.Phone, c.Message, c.Date)
	return scanContact(row)
}

func (s *ContactStore) Update(ctx context.Context, id domain.ID, c domain.Contact) (domain.Contact, error) {
	row := s.db.QueryRowContext(ctx, `
	UPDATE contacts SET name = $2, email = $3, phone = $4, message = $5, date = $6 WHERE id = $1
	RETURNING `+contactColumns,
		string(id), c.Name, c.Email, c.Phone, c.Message, c.Date)
	return one(row, scanContact, contactNotFound)
}

func (s *ContactStore) Delete(ctx context.Context, id domain.ID) error {
	return deleteByID(ctx, s.db, "contacts", string(id), contactNotFound)
}
