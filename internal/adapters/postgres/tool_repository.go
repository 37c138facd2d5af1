package postgres_adapter

import (
	"context"
	"fmt"
	"time"
	"tool-catalog-service/internal/contextkeys"
	"tool-catalog-service/internal/core/domain"
	"tool-catalog-service/internal/core/port"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// toolRow - строка таблицы tools
type toolRow struct {
	ID              string    `db:"id"`
	Name            string    `db:"name"`
	Description     string    `db:"description"`
	Category        string    `db:"category"`
	Condition       string    `db:"condition"`
	City            string    `db:"city"`
	Area            string    `db:"area"`
	PostalCode      string    `db:"postal_code"`
	OwnerName       string    `db:"owner_name"`
	OwnerEmail      string    `db:"owner_email"`
	OwnerPhone      string    `db:"owner_phone"`
	Availability    *string   `db:"availability"`
	Status          *string   `db:"status"`
	MaxDurationDays int       `db:"max_duration_days"`
	Deposit         float64   `db:"deposit"`
	Instructions    string    `db:"instructions"`
	Images          []string  `db:"images"`
	Tags            []string  `db:"tags"`
	CreatedAt       time.Time `db:"created_at"`
	UpdatedAt       time.Time `db:"updated_at"`
}

func (r toolRow) toDomain() domain.Tool {
	return domain.Tool{
		ID:           r.ID,
		Name:         r.Name,
		Description:  r.Description,
		Category:     domain.Category(r.Category),
		Condition:    domain.Condition(r.Condition),
		Location:     domain.Location{City: r.City, Area: r.Area, PostalCode: r.PostalCode},
		Owner:        domain.Owner{Name: r.OwnerName, Email: r.OwnerEmail, Phone: r.OwnerPhone},
		Availability: domain.Availability(deref(r.Availability)),
		Status:       deref(r.Status),
		BorrowingTerms: domain.BorrowingTerms{
			MaxDurationDays: r.MaxDurationDays,
			Deposit:         r.Deposit,
			Instructions:    r.Instructions,
		},
		Images:    r.Images,
		Tags:      r.Tags,
		CreatedAt: r.CreatedAt.UTC(),
		UpdatedAt: r.UpdatedAt.UTC(),
	}
}

// ToolRepository реализует port.ToolCollectionPort и port.ToolSeederPort поверх PostgreSQL
type ToolRepository struct {
	pool        *pgxpool.Pool
	onTransient func()
}

func NewToolRepository(pool *pgxpool.Pool, onTransient func()) (*ToolRepository, error) {
	if pool == nil {
		return nil, fmt.Errorf("pgxpool.Pool cannot be nil")
	}
	if onTransient == nil {
		onTransient = func() {}
	}
	return &ToolRepository{pool: pool, onTransient: onTransient}, nil
}

func (r *ToolRepository) Find(ctx context.Context, predicate domain.Predicate, sort domain.SortSpec) ([]domain.Tool, error) {
	query, args, err := buildFindQuery(predicate, sort)
	if err != nil {
		return nil, fmt.Errorf("failed to build tools query: %w", err)
	}

	contextkeys.LoggerFromContext(ctx).Debug("Executing tools query", port.Fields{
		"adapter": "postgres", "args_count": len(args),
	})

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, r.wrap("find tools", err)
	}
	records, err := pgx.CollectRows(rows, pgx.RowToStructByName[toolRow])
	if err != nil {
		return nil, r.wrap("scan tools", err)
	}

	tools := make([]domain.Tool, 0, len(records))
	for _, rec := range records {
		tools = append(tools, rec.toDomain())
	}
	return tools, nil
}

func (r *ToolRepository) AggregateDistinctValues(ctx context.Context, fields []domain.Field) (*domain.DistinctValues, error) {
	query, err := buildDistinctQuery(fields)
	if err != nil {
		return nil, fmt.Errorf("failed to build distinct query: %w", err)
	}

	var total int64
	lists := make([][]string, len(fields))
	dest := make([]interface{}, 0, len(fields)+1)
	dest = append(dest, &total)
	for i := range lists {
		dest = append(dest, &lists[i])
	}

	if err := r.pool.QueryRow(ctx, query).Scan(dest...); err != nil {
		return nil, r.wrap("aggregate distinct values", err)
	}

	result := &domain.DistinctValues{
		Values: make(map[domain.Field][]string, len(fields)),
		Total:  int(total),
	}
	for i, field := range fields {
		result.Values[field] = domain.DistinctSorted(lists[i])
	}
	return result, nil
}

const createSchemaSQL = `
CREATE TABLE IF NOT EXISTS tools (
	id                TEXT PRIMARY KEY,
	name              TEXT NOT NULL,
	description       TEXT NOT NULL,
	category          TEXT NOT NULL DEFAULT 'Other',
	condition         TEXT NOT NULL DEFAULT 'Good',
	city              TEXT NOT NULL,
	area              TEXT NOT NULL,
	postal_code       TEXT NOT NULL DEFAULT '',
	owner_name        TEXT NOT NULL,
	owner_email       TEXT NOT NULL,
	owner_phone       TEXT NOT NULL DEFAULT '',
	availability      TEXT,
	status            TEXT,
	max_duration_days INTEGER NOT NULL DEFAULT 7,
	deposit           DOUBLE PRECISION NOT NULL DEFAULT 0,
	instructions      TEXT NOT NULL DEFAULT '',
	images            TEXT[] NOT NULL DEFAULT '{}',
	tags              TEXT[] NOT NULL DEFAULT '{}',
	created_at        TIMESTAMPTZ NOT NULL DEFAULT now(),
	updated_at        TIMESTAMPTZ NOT NULL DEFAULT now()
);
CREATE INDEX IF NOT EXISTS idx_tools_category ON tools (category);
CREATE INDEX IF NOT EXISTS idx_tools_city ON tools (city);
CREATE INDEX IF NOT EXISTS idx_tools_availability ON tools (availability);
CREATE INDEX IF NOT EXISTS idx_tools_owner_email ON tools (owner_email);
CREATE INDEX IF NOT EXISTS idx_tools_created_at ON tools (created_at DESC, id);
CREATE INDEX IF NOT EXISTS idx_tools_tags ON tools USING GIN (tags);
`

func (r *ToolRepository) EnsureIndexes(ctx context.Context) error {
	if _, err := r.pool.Exec(ctx, createSchemaSQL); err != nil {
		return r.wrap("create schema", err)
	}
	return nil
}

var copyColumns = []string{
	"id", "name", "description", "category", "condition", "city", "area", "postal_code",
	"owner_name", "owner_email", "owner_phone", "availability", "status",
	"max_duration_days", "deposit", "instructions", "images", "tags", "created_at", "updated_at",
}

// InsertMany вставляет записи одной транзакцией через COPY
func (r *ToolRepository) InsertMany(ctx context.Context, tools []domain.Tool) (int, error) {
	if len(tools) == 0 {
		return 0, nil
	}

	rows := make([][]interface{}, 0, len(tools))
	for _, tool := range tools {
		id := tool.ID
		if id == "" {
			id = uuid.NewString()
		}
		rows = append(rows, []interface{}{
			id, tool.Name, tool.Description, string(tool.Category), string(tool.Condition),
			tool.Location.City, tool.Location.Area, tool.Location.PostalCode,
			tool.Owner.Name, tool.Owner.Email, tool.Owner.Phone,
			nullable(string(tool.Availability)), nullable(tool.Status),
			tool.BorrowingTerms.MaxDurationDays, tool.BorrowingTerms.Deposit, tool.BorrowingTerms.Instructions,
			nonNil(tool.Images), nonNil(tool.Tags), tool.CreatedAt, tool.UpdatedAt,
		})
	}

	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return 0, r.wrap("begin transaction", err)
	}
	defer tx.Rollback(ctx)

	copied, err := tx.CopyFrom(ctx, pgx.Identifier{"tools"}, copyColumns, pgx.CopyFromRows(rows))
	if err != nil {
		return 0, r.wrap("copy tools", err)
	}
	if err := tx.Commit(ctx); err != nil {
		return 0, r.wrap("commit tools", err)
	}
	return int(copied), nil
}

func (r *ToolRepository) wrap(op string, err error) error {
	classified := classifyError(err)
	if domain.IsTransient(classified) {
		r.onTransient()
	}
	return fmt.Errorf("postgres %s: %w", op, classified)
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func nullable(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func nonNil(values []string) []string {
	if values == nil {
		return []string{}
	}
	return values
}
