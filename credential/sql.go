package credential

import (
	"context"
	"embed"
	"io/fs"
	"time"

	"github.com/kbukum/labauth/database"
)

//go:embed migrations
var migrationFS embed.FS

// Migrations returns the schema migrations for driver d. It satisfies
// database.MigrationSource.
func Migrations(d database.Driver) (fs.FS, string) {
	return migrationFS, "migrations/" + string(d)
}

// identityRow is the gorm model of the identities table.
type identityRow struct {
	Username     string `gorm:"primaryKey"`
	PasswordHash string
	CreatedAt    time.Time
}

func (identityRow) TableName() string { return "identities" }

// SQLStore persists identities in a SQL database. Uniqueness comes from the
// primary key on username.
type SQLStore struct {
	db *database.DB
}

// NewSQLStore creates a store over an open database. The identities table
// must exist; see Migrations.
func NewSQLStore(db *database.DB) *SQLStore {
	return &SQLStore{db: db}
}

var _ Store = (*SQLStore)(nil)

func (s *SQLStore) Insert(ctx context.Context, id Identity) error {
	row := identityRow{Username: id.Username, PasswordHash: id.PasswordHash, CreatedAt: id.CreatedAt}
	err := s.db.WithContext(ctx).Create(&row).Error
	switch {
	case err == nil:
		return nil
	case database.IsDuplicate(err):
		return ErrAlreadyExists
	default:
		return unavailable("insert", err)
	}
}

func (s *SQLStore) Lookup(ctx context.Context, username string) (Identity, error) {
	var row identityRow
	err := s.db.WithContext(ctx).Where("username = ?", username).Take(&row).Error
	switch {
	case err == nil:
		return Identity{Username: row.Username, PasswordHash: row.PasswordHash, CreatedAt: row.CreatedAt}, nil
	case database.IsNotFound(err):
		return Identity{}, ErrNotFound
	default:
		return Identity{}, unavailable("lookup", err)
	}
}
