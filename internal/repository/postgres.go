package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	_ "github.com/jackc/pgx/v5/stdlib"
	"go.uber.org/zap"

	"github.com/mmeshcher/shops-admin/internal/models"
)

const shopsTable = "shops"

var shopColumns = []string{"id", "title", "url", "created_at", "updated_at"}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

type PostgresRepository struct {
	pool   *pgxpool.Pool
	sb     squirrel.StatementBuilderType
	logger *zap.Logger
}

func NewPostgresRepository(dsn, migrationsPath string, logger *zap.Logger) (*PostgresRepository, error) {
	config, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := runMigrations(dsn, migrationsPath, logger); err != nil {
		return nil, fmt.Errorf("migrations failed: %w", err)
	}

	pool, err := pgxpool.NewWithConfig(ctx, config)
	if err != nil {
		return nil, fmt.Errorf("create pool: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	logger.Info("PostgreSQL repository initialized")

	return &PostgresRepository{
		pool:   pool,
		sb:     newStatementBuilder(),
		logger: logger,
	}, nil
}

func newStatementBuilder() squirrel.StatementBuilderType {
	return squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
}

func runMigrations(dsn, migrationsPath string, logger *zap.Logger) error {
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return fmt.Errorf("open database for migrations: %w", err)
	}
	defer db.Close()

	if err := db.Ping(); err != nil {
		return fmt.Errorf("ping database for migrations: %w", err)
	}

	driver, err := postgres.WithInstance(db, &postgres.Config{})
	if err != nil {
		return fmt.Errorf("create migration driver: %w", err)
	}

	m, err := migrate.NewWithDatabaseInstance(
		"file://"+migrationsPath,
		"postgres", driver,
	)
	if err != nil {
		return fmt.Errorf("create migrator: %w", err)
	}

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("apply migrations: %w", err)
	}

	logger.Info("Migrations applied", zap.String("path", migrationsPath))
	return nil
}

func (p *PostgresRepository) FindByID(ctx context.Context, id int64) (*models.Shop, error) {
	query, args, err := p.sb.
		Select(shopColumns...).
		From(shopsTable).
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	var shop models.Shop
	err = p.pool.QueryRow(ctx, query, args...).Scan(
		&shop.ID, &shop.Title, &shop.URL, &shop.CreatedAt, &shop.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("query row: %w", err)
	}

	return &shop, nil
}

func (p *PostgresRepository) Find(ctx context.Context, filter ListFilter) ([]models.Shop, int, error) {
	if filter.Offset < 0 {
		return nil, 0, ErrNegativeOffset
	}

	countQuery, countArgs, err := applySearch(p.sb.Select("COUNT(*)").From(shopsTable), filter.Search).ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("build count query: %w", err)
	}

	var total int
	if err := p.pool.QueryRow(ctx, countQuery, countArgs...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count shops: %w", err)
	}

	if total == 0 {
		return []models.Shop{}, 0, nil
	}

	query, args, err := buildListQuery(p.sb, filter).ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("build query: %w", err)
	}

	rows, err := p.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("query shops: %w", err)
	}
	defer rows.Close()

	shops := make([]models.Shop, 0, filter.Limit)
	for rows.Next() {
		var shop models.Shop
		if err := rows.Scan(&shop.ID, &shop.Title, &shop.URL, &shop.CreatedAt, &shop.UpdatedAt); err != nil {
			return nil, 0, fmt.Errorf("scan row: %w", err)
		}
		shops = append(shops, shop)
	}

	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("rows error: %w", err)
	}

	return shops, total, nil
}

func buildListQuery(sb squirrel.StatementBuilderType, filter ListFilter) squirrel.SelectBuilder {
	builder := applySearch(sb.Select(shopColumns...).From(shopsTable), filter.Search).
		OrderBy("id ASC")

	if filter.Limit > 0 {
		builder = builder.Limit(uint64(filter.Limit))
	}
	if filter.Offset > 0 {
		builder = builder.Offset(uint64(filter.Offset))
	}

	return builder
}

func applySearch(builder squirrel.SelectBuilder, search string) squirrel.SelectBuilder {
	search = strings.TrimSpace(search)
	if search == "" {
		return builder
	}

	return builder.Where(squirrel.ILike{"title": "%" + likeEscaper.Replace(search) + "%"})
}

func (p *PostgresRepository) Titles(ctx context.Context) (map[int64]string, error) {
	query, args, err := p.sb.
		Select("id", "title").
		From(shopsTable).
		OrderBy("id ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	rows, err := p.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query titles: %w", err)
	}
	defer rows.Close()

	titles := make(map[int64]string)
	for rows.Next() {
		var id int64
		var title string
		if err := rows.Scan(&id, &title); err != nil {
			return nil, fmt.Errorf("scan row: %w", err)
		}
		titles[id] = title
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows error: %w", err)
	}

	return titles, nil
}

func (p *PostgresRepository) Create(ctx context.Context, shop *models.Shop) error {
	query, args, err := p.sb.
		Insert(shopsTable).
		Columns("title", "url").
		Values(shop.Title, shop.URL).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("build query: %w", err)
	}

	err = p.pool.QueryRow(ctx, query, args...).Scan(&shop.ID, &shop.CreatedAt, &shop.UpdatedAt)
	if err != nil {
		return fmt.Errorf("insert shop: %w", mapPgError(err))
	}

	return nil
}

func (p *PostgresRepository) Update(ctx context.Context, shop *models.Shop) error {
	query, args, err := p.sb.
		Update(shopsTable).
		Set("title", shop.Title).
		Set("url", shop.URL).
		Set("updated_at", squirrel.Expr("now()")).
		Where(squirrel.Eq{"id": shop.ID}).
		Suffix("RETURNING created_at, updated_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("build query: %w", err)
	}

	err = p.pool.QueryRow(ctx, query, args...).Scan(&shop.CreatedAt, &shop.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return ErrNotFound
		}
		return fmt.Errorf("update shop: %w", mapPgError(err))
	}

	return nil
}

func (p *PostgresRepository) Delete(ctx context.Context, id int64) error {
	query, args, err := p.sb.
		Delete(shopsTable).
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build query: %w", err)
	}

	cmdTag, err := p.pool.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("delete shop: %w", err)
	}

	if cmdTag.RowsAffected() == 0 {
		return ErrNotFound
	}

	return nil
}

func (p *PostgresRepository) Ping(ctx context.Context) error {
	return p.pool.Ping(ctx)
}

func (p *PostgresRepository) Close() error {
	p.pool.Close()
	return nil
}

func mapPgError(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation {
		return fmt.Errorf("%w: %s", ErrConflict, pgErr.Message)
	}
	return err
}
