package repositories

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/go-sql-driver/mysql"
	"gorm.io/gorm"

	"github.com/fnbapp/backend/app/apperror"
	"github.com/fnbapp/backend/app/models"
)

// UserRepositoryImpl is the credential store. Every operation is a short,
// individually transactional read/modify/commit against the users table.
type UserRepositoryImpl interface {
	Create(ctx context.Context, user *models.User) error
	FindByID(ctx context.Context, id string) (*models.User, error)
	FindByEmail(ctx context.Context, email string) (*models.User, error)
	FindByEmailAndCode(ctx context.Context, email, code string) (*models.User, error)
	ClearVerificationCode(ctx context.Context, userID string) error
	SaveResetToken(ctx context.Context, userID string, token *string, expiresAt *time.Time) error
	FindByResetToken(ctx context.Context, token string) (*models.User, error)
	ClearResetToken(ctx context.Context, userID string) error
	UpdatePassword(ctx context.Context, userID string, newPasswordHash string) error
	UpdateProfile(ctx context.Context, userID, username, phone string) error
	UpdatePhoto(ctx context.Context, userID, photoURL string) error
	UpdateStatus(ctx context.Context, userID, status string) error
	ListPaginated(ctx context.Context, limit, offset int) ([]models.User, int64, error)
}

type userRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) UserRepositoryImpl {
	return &userRepository{db}
}

// isDuplicateKey catches the unique constraint violation the database raises
// when two sign-ups race on the same email/username/phone.
func isDuplicateKey(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	var mysqlErr *mysql.MySQLError
	return errors.As(err, &mysqlErr) && mysqlErr.Number == 1062
}

func (r *userRepository) Create(ctx context.Context, user *models.User) error {
	if user.RoleID == 0 {
		user.RoleID = models.RoleUser
	}
	if user.Status == "" {
		user.Status = models.StatusActive
	}

	if err := r.db.WithContext(ctx).Create(user).Error; err != nil {
		if isDuplicateKey(err) {
			return apperror.ErrDuplicateIdentity
		}
		return fmt.Errorf("failed to create user %s: %w", user.Email, err)
	}
	return nil
}

func (r *userRepository) FindByID(ctx context.Context, id string) (*models.User, error) {
	var user models.User
	err := r.db.WithContext(ctx).First(&user, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	err := r.db.WithContext(ctx).Where("email = ?", email).First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &user, nil
}

// FindByEmailAndCode matches the (email, verification code) pair in a single
// lookup, so a wrong code and an unknown email are indistinguishable.
func (r *userRepository) FindByEmailAndCode(ctx context.Context, email, code string) (*models.User, error) {
	var user models.User
	err := r.db.WithContext(ctx).
		Where("email = ? AND verification_code = ?", email, code).
		First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) ClearVerificationCode(ctx context.Context, userID string) error {
	updates := map[string]interface{}{
		"verification_code": nil,
		"updated_at":        time.Now(),
	}
	result := r.db.WithContext(ctx).Model(&models.User{}).Where("id = ?", userID).Updates(updates)
	if result.Error != nil {
		return fmt.Errorf("failed to clear verification code for user %s: %w", userID, result.Error)
	}
	return nil
}

func (r *userRepository) SaveResetToken(ctx context.Context, userID string, token *string, expiresAt *time.Time) error {
	updates := map[string]interface{}{
		"reset_token":         token,
		"reset_token_expires": expiresAt,
		"updated_at":          time.Now(),
	}
	result := r.db.WithContext(ctx).Model(&models.User{}).Where("id = ?", userID).Updates(updates)
	if result.Error != nil {
		return fmt.Errorf("failed to save reset token for user %s: %w", userID, result.Error)
	}
	return nil
}

// FindByResetToken looks the account up by token only. Expiry is re-checked
// by the caller at commit time, not here.
func (r *userRepository) FindByResetToken(ctx context.Context, token string) (*models.User, error) {
	var user models.User
	err := r.db.WithContext(ctx).Where("reset_token = ?", token).First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) ClearResetToken(ctx context.Context, userID string) error {
	updates := map[string]interface{}{
		"reset_token":         nil,
		"reset_token_expires": nil,
		"updated_at":          time.Now(),
	}
	result := r.db.WithContext(ctx).Model(&models.User{}).Where("id = ?", userID).Updates(updates)
	if result.Error != nil {
		return fmt.Errorf("failed to clear reset token for user %s: %w", userID, result.Error)
	}
	return nil
}

func (r *userRepository) UpdatePassword(ctx context.Context, userID string, newPasswordHash string) error {
	updates := map[string]interface{}{
		"password_hash": newPasswordHash,
		"updated_at":    time.Now(),
	}
	result := r.db.WithContext(ctx).Model(&models.User{}).Where("id = ?", userID).Updates(updates)
	if result.Error != nil {
		return fmt.Errorf("failed to update password for user %s: %w", userID, result.Error)
	}
	return nil
}

func (r *userRepository) UpdateProfile(ctx context.Context, userID, username, phone string) error {
	updates := map[string]interface{}{
		"username":   username,
		"phone":      phone,
		"updated_at": time.Now(),
	}
	result := r.db.WithContext(ctx).Model(&models.User{}).Where("id = ?", userID).Updates(updates)
	if result.Error != nil {
		if isDuplicateKey(result.Error) {
			return apperror.ErrDuplicateIdentity
		}
		return fmt.Errorf("failed to update profile for user %s: %w", userID, result.Error)
	}
	return nil
}

func (r *userRepository) UpdatePhoto(ctx context.Context, userID, photoURL string) error {
	updates := map[string]interface{}{
		"photo":      photoURL,
		"updated_at": time.Now(),
	}
	result := r.db.WithContext(ctx).Model(&models.User{}).Where("id = ?", userID).Updates(updates)
	if result.Error != nil {
		return fmt.Errorf("failed to update photo for user %s: %w", userID, result.Error)
	}
	return nil
}

func (r *userRepository) UpdateStatus(ctx context.Context, userID, status string) error {
	updates := map[string]interface{}{
		"status":     status,
		"updated_at": time.Now(),
	}
	result := r.db.WithContext(ctx).Model(&models.User{}).Where("id = ?", userID).Updates(updates)
	if result.Error != nil {
		return fmt.Errorf("failed to update status for user %s: %w", userID, result.Error)
	}
	return nil
}

func (r *userRepository) ListPaginated(ctx context.Context, limit, offset int) ([]models.User, int64, error) {
	var users []models.User
	var total int64

	if err := r.db.WithContext(ctx).Model(&models.User{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}
	if err := r.db.WithContext(ctx).Limit(limit).Offset(offset).Order("created_at DESC").Find(&users).Error; err != nil {
		return nil, 0, err
	}
	return users, total, nil
}
