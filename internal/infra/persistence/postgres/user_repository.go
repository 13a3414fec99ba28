package postgres

import (
	"context"

	"passport/internal/domain/entity"
	domainerrors "passport/internal/domain/errors"
	"passport/internal/domain/repository"
	"passport/internal/infra/persistence/model"

	"github.com/pkg/errors"
	"gorm.io/gorm"
)

// userRepository implements the domain.UserRepository interface using GORM.
type userRepository struct {
	db *gorm.DB
}

// NewUserRepository is the constructor for userRepository.
// It returns the repository as a domain.UserRepository interface, adhering to dependency inversion.
func NewUserRepository(db *gorm.DB) repository.UserRepository {
	return &userRepository{db: db}
}

// Create persists a new user entity to the database.
func (repo *userRepository) Create(ctx context.Context, user *entity.User) error {
	userM := fromUserDomain(user)

	if err := repo.db.WithContext(ctx).Create(userM).Error; err != nil {
		if isUniqueConstraintViolation(err) {
			return repository.ErrDuplicateUser
		}
		if isNotNullConstraintViolation(err) {
			return domainerrors.ErrValidationFailed.WrapMessage("missing required user information")
		}
		return errors.Wrap(err, "failed to create user")
	}

	// Reflect the database-assigned timestamps back onto the entity.
	user.CreatedAt = userM.CreatedAt
	user.UpdatedAt = userM.UpdatedAt

	return nil
}

// FindByID retrieves a single user by their public identifier.
func (repo *userRepository) FindByID(ctx context.Context, id entity.UserID) (*entity.User, error) {
	var userM model.UserModel
	if err := repo.db.WithContext(ctx).Where("id = ?", id).First(&userM).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrUserNotFound
		}
		return nil, errors.Wrap(err, "failed to find user by id")
	}

	return toUserDomain(&userM), nil
}

// FindByEmail retrieves a single user by their login email.
func (repo *userRepository) FindByEmail(ctx context.Context, email string) (*entity.User, error) {
	var userM model.UserModel
	if err := repo.db.WithContext(ctx).Where("email = ?", email).First(&userM).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrUserNotFound
		}
		return nil, errors.Wrap(err, "failed to find user by email")
	}

	return toUserDomain(&userM), nil
}

// Update persists the mutable profile fields of an existing user.
func (repo *userRepository) Update(ctx context.Context, user *entity.User) error {
	result := repo.db.WithContext(ctx).
		Model(&model.UserModel{}).
		Where("id = ?", user.ID).
		Updates(map[string]any{
			"email":      user.Email,
			"first_name": user.FirstName,
			"last_name":  user.LastName,
		})
	if err := result.Error; err != nil {
		if isUniqueConstraintViolation(err) {
			return repository.ErrDuplicateUser
		}
		return errors.Wrap(err, "failed to update user")
	}
	if result.RowsAffected == 0 {
		return repository.ErrUserNotFound
	}

	return nil
}

// SetPasswordHash replaces the stored credential of a user.
func (repo *userRepository) SetPasswordHash(ctx context.Context, id entity.UserID, encoded string) error {
	return repo.setColumn(ctx, id, "password_hash", encoded)
}

// SetSuspended toggles the suspension flag.
func (repo *userRepository) SetSuspended(ctx context.Context, id entity.UserID, suspended bool) error {
	return repo.setColumn(ctx, id, "is_suspended", suspended)
}

// SetDeleted toggles the soft-delete flag.
func (repo *userRepository) SetDeleted(ctx context.Context, id entity.UserID, deleted bool) error {
	return repo.setColumn(ctx, id, "is_deleted", deleted)
}

// SetEmailVerified marks the login email as confirmed.
func (repo *userRepository) SetEmailVerified(ctx context.Context, id entity.UserID, verified bool) error {
	return repo.setColumn(ctx, id, "email_verified", verified)
}

func (repo *userRepository) setColumn(ctx context.Context, id entity.UserID, column string, value any) error {
	result := repo.db.WithContext(ctx).
		Model(&model.UserModel{}).
		Where("id = ?", id).
		Update(column, value)
	if err := result.Error; err != nil {
		return errors.Wrapf(err, "failed to update user %s", column)
	}
	if result.RowsAffected == 0 {
		return repository.ErrUserNotFound
	}

	return nil
}

// --- Mapper Functions ---
// These helpers convert between domain entities and persistence models.

// toUserDomain converts a GORM UserModel to a domain User entity.
func toUserDomain(data *model.UserModel) *entity.User {
	if data == nil {
		return nil
	}

	return &entity.User{
		ID:            data.ID,
		Email:         data.Email,
		FirstName:     data.FirstName,
		LastName:      data.LastName,
		PasswordHash:  data.PasswordHash,
		EmailVerified: data.EmailVerified,
		IsSuspended:   data.IsSuspended,
		IsDeleted:     data.IsDeleted,
		Role:          entity.Role(data.Role),
		CreatedAt:     data.CreatedAt,
		UpdatedAt:     data.UpdatedAt,
	}
}

// fromUserDomain converts a domain User entity to a GORM UserModel for persistence.
func fromUserDomain(data *entity.User) *model.UserModel {
	if data == nil {
		return nil
	}

	return &model.UserModel{
		ID:            data.ID,
		Email:         data.Email,
		FirstName:     data.FirstName,
		LastName:      data.LastName,
		PasswordHash:  data.PasswordHash,
		EmailVerified: data.EmailVerified,
		IsSuspended:   data.IsSuspended,
		IsDeleted:     data.IsDeleted,
		Role:          data.Role.String(),
	}
}
