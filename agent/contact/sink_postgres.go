package contact

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/uptrace/bun"

	contractx "github.com/tanpawarit/ecom-support-agent/agent/contract"
)

type contactRow struct {
	bun.BaseModel `bun:"table:contact_requests"`

	ID        int64     `bun:"id,pk,autoincrement"`
	Name      string    `bun:"name,notnull"`
	Email     string    `bun:"email,notnull"`
	Phone     string    `bun:"phone,notnull"`
	CreatedAt time.Time `bun:"created_at,notnull"`
}

// PostgresSink appends contact records to an append-only contact_requests
// table. The database serializes concurrent appends.
type PostgresSink struct {
	db *bun.DB
}

func NewPostgresSink(ctx context.Context, db *bun.DB) (*PostgresSink, error) {
	if db == nil {
		return nil, errors.New("bun db is required")
	}
	if _, err := db.NewCreateTable().Model((*contactRow)(nil)).IfNotExists().Exec(ctx); err != nil {
		return nil, fmt.Errorf("create contact_requests table: %w", err)
	}
	return &PostgresSink{db: db}, nil
}

func (s *PostgresSink) Append(ctx context.Context, rec contractx.ContactRecord) error {
	row := &contactRow{
		Name:      rec.Name,
		Email:     rec.Email,
		Phone:     rec.Phone,
		CreatedAt: rec.CreatedAt,
	}
	if _, err := s.db.NewInsert().Model(row).Exec(ctx); err != nil {
		return fmt.Errorf("insert contact request: %w", err)
	}
	return nil
}
