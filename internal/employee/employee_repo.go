package employee

import (
	"context"
	"database/sql"

	"github.com/Shivkumar-Raghuwanshi/employee-hub/internal/owner"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

//go:generate mockgen -source=employee_repo.go -destination=mock/employee_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository
	Create(ctx context.Context, empl *Employee) error
	FindAllByOwner(ctx context.Context, ownerID string) ([]Employee, error)
	FindOptionsByOwner(ctx context.Context, ownerID string) ([]Employee, error)
	FindByIDAndOwner(ctx context.Context, ownerID string, id string) (*Employee, error)
	Update(ctx context.Context, empl *Employee) error
	// Delete reports how many rows went away so the service can turn a
	// second delete of the same id into NotFound.
	Delete(ctx context.Context, ownerID string, id string) (int64, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

// WithTx rebinds the repository onto the caller's transaction, so the row
// mutation commits or rolls back together with everything else in that tx.
func (r *repository) WithTx(tx *sql.Tx) Repository {
	txDB, err := gorm.Open(postgres.New(postgres.Config{Conn: tx}), &gorm.Config{})
	if err != nil {
		return r
	}
	return &repository{db: txDB}
}

func (r *repository) Create(ctx context.Context, empl *Employee) error {
	return r.db.WithContext(ctx).Create(empl).Error
}

func (r *repository) FindAllByOwner(ctx context.Context, ownerID string) ([]Employee, error) {
	var empls []Employee
	err := r.db.WithContext(ctx).
		Scopes(owner.Scope(ownerID)).
		Order("created_at ASC").
		Find(&empls).Error
	return empls, err
}

func (r *repository) FindOptionsByOwner(ctx context.Context, ownerID string) ([]Employee, error) {
	var empls []Employee
	err := r.db.WithContext(ctx).
		Scopes(owner.Scope(ownerID)).
		Select("id", "name").
		Order("name ASC").
		Find(&empls).Error
	return empls, err
}

func (r *repository) FindByIDAndOwner(ctx context.Context, ownerID string, id string) (*Employee, error) {
	var empl Employee
	err := r.db.WithContext(ctx).
		Scopes(owner.Scope(ownerID)).
		First(&empl, "id = ?", id).Error
	return &empl, err
}

func (r *repository) Update(ctx context.Context, empl *Employee) error {
	return r.db.WithContext(ctx).Save(empl).Error
}

func (r *repository) Delete(ctx context.Context, ownerID string, id string) (int64, error) {
	res := r.db.WithContext(ctx).
		Scopes(owner.Scope(ownerID)).
		Delete(&Employee{}, "id = ?", id)
	return res.RowsAffected, res.Error
}
