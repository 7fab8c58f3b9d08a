package postgres

import (
	"context"
	"time"

	"github.com/maplepath/api/internal/models"
	"gorm.io/gorm"
)

type UserRepository interface {
	Create(ctx context.Context, u *models.User) error
	GetByID(ctx context.Context, id int64) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	GetByFirebaseUID(ctx context.Context, uid string) (*models.User, error)
	UpdateProfile(ctx context.Context, id int64, fields map[string]any) error
	LinkFirebase(ctx context.Context, id int64, uid string) error
}

type userRepo struct {
	db *gorm.DB
}

func NewUserRepo(db *gorm.DB) UserRepository {
	return &userRepo{db: db}
}

func (r *userRepo) Create(ctx context.Context, u *models.User) error {
	return mapErr(r.db.WithContext(ctx).Create(u).Error)
}

func (r *userRepo) GetByID(ctx context.Context, id int64) (*models.User, error) {
	return r.takeWhere(ctx, "id = ?", id)
}

func (r *userRepo) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	return r.takeWhere(ctx, "email = ?", email)
}

func (r *userRepo) GetByFirebaseUID(ctx context.Context, uid string) (*models.User, error) {
	return r.takeWhere(ctx, "firebase_uid = ?", uid)
}

func (r *userRepo) takeWhere(ctx context.Context, query string, arg any) (*models.User, error) {
	var u models.User
	if err := r.db.WithContext(ctx).Where(query, arg).Take(&u).Error; err != nil {
		return nil, mapErr(err)
	}
	return &u, nil
}

// UpdateProfile only touches the whitelisted profile columns present in fields.
func (r *userRepo) UpdateProfile(ctx context.Context, id int64, fields map[string]any) error {
	allowed := map[string]struct{}{"full_name": {}, "phone_number": {}, "profile_picture_url": {}}
	upd := map[string]any{}
	for k, v := range fields {
		if _, ok := allowed[k]; ok {
			upd[k] = v
		}
	}
	if len(upd) == 0 {
		return nil
	}
	upd["updated_at"] = time.Now().UTC()

	res := r.db.WithContext(ctx).Model(&models.User{}).Where("id = ?", id).Updates(upd)
	if res.Error != nil {
		return mapErr(res.Error)
	}
	if res.RowsAffected == 0 {
		return mapErr(gorm.ErrRecordNotFound)
	}
	return nil
}

func (r *userRepo) LinkFirebase(ctx context.Context, id int64, uid string) error {
	res := r.db.WithContext(ctx).Model(&models.User{}).
		Where("id = ?", id).
		Updates(map[string]any{"firebase_uid": uid, "is_verified": true, "updated_at": time.Now().UTC()})
	if res.Error != nil {
		return mapErr(res.Error)
	}
	if res.RowsAffected == 0 {
		return mapErr(gorm.ErrRecordNotFound)
	}
	return nil
}
