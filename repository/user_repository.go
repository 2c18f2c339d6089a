package repository

import (
	"context"
	"errors"

	"github.com/alexandru1c/refeelv2/entity"

	"gorm.io/gorm"
)

// UserRepository รับผิดชอบการคุยกับตาราง users ใน DB เท่านั้น
type UserRepository struct {
	DB *gorm.DB
}

func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{DB: db}
}

// หาผู้ใช้จาก email
func (r *UserRepository) FindByEmail(email string) (*entity.User, error) {
	var user entity.User
	if err := r.DB.Where("email = ?", email).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// นับจำนวน user ที่มี email ซ้ำ
func (r *UserRepository) CountByEmail(email string) (int64, error) {
	var count int64
	if err := r.DB.Model(&entity.User{}).Where("email = ?", email).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// สร้าง user ใหม่
func (r *UserRepository) Create(user *entity.User) error {
	return r.DB.Create(user).Error
}

// โหลด user ตาม ID
func (r *UserRepository) FindByID(id uint) (*entity.User, error) {
	var user entity.User
	if err := r.DB.First(&user, id).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *UserRepository) FindByUUID(ctx context.Context, uuid string) (*entity.User, error) {
	var user entity.User
	if err := r.DB.WithContext(ctx).Where("user_uuid = ?", uuid).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// FindOrProvision คืน user ตาม subject ถ้ายังไม่มีจะสร้างใหม่ด้วย balance 0
func (r *UserRepository) FindOrProvision(ctx context.Context, uuid, email, displayName string) (*entity.User, error) {
	user, err := r.FindByUUID(ctx, uuid)
	if err == nil {
		return user, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	user = &entity.User{UserUUID: uuid, Email: email, DisplayName: displayName}
	if err := r.DB.WithContext(ctx).
		Where(entity.User{UserUUID: uuid}).
		FirstOrCreate(user).Error; err != nil {
		return nil, err
	}
	return user, nil
}
