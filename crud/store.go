package crud

import (
	"errors"

	"github.com/sato4sk/items-api/models"
	"gorm.io/gorm"
)

// FakeHashSuffix is appended to plaintext passwords before storage. This is
// a toy scheme, not hashing; see services.VerifyPassword.
const FakeHashSuffix = "notreallyhashed"

// Store is the data access layer for users and items. Lookups return
// (nil, nil) for absent rows so callers must handle the missing case
// explicitly instead of tripping over zero-valued records.
type Store struct {
	db *gorm.DB
}

func NewStore(db *gorm.DB) *Store {
	return &Store{db: db}
}

func (s *Store) GetUser(userID uint) (*models.User, error) {
	var user models.User
	err := s.db.First(&user, userID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// GetUserByEmail returns the first user with the given email. Uniqueness is
// enforced by the schema, not here.
func (s *Store) GetUserByEmail(email string) (*models.User, error) {
	var user models.User
	err := s.db.Where("email = ?", email).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (s *Store) GetUsers(skip, limit int) ([]models.User, error) {
	var users []models.User
	if err := s.db.Offset(skip).Limit(limit).Find(&users).Error; err != nil {
		return nil, err
	}
	return users, nil
}

// GetActiveFirstUser returns the active user with the smallest id,
// unconditionally excluding excludeID. Used to pick the recipient during
// deactivation; the exclusion guarantees the target can never receive its
// own items regardless of when its flag flip commits.
func (s *Store) GetActiveFirstUser(excludeID uint) (*models.User, error) {
	var user models.User
	err := s.db.
		Where("is_active = ? AND id <> ?", true, excludeID).
		Order("id").
		First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// CreateUser stores a new active user. Returns ErrEmailTaken when the email
// is already registered.
func (s *Store) CreateUser(email, password string) (*models.User, error) {
	existing, err := s.GetUserByEmail(email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, ErrEmailTaken
	}

	user := models.User{
		Email:          email,
		HashedPassword: password + FakeHashSuffix,
		IsActive:       true,
	}
	if err := s.db.Create(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// DeactivateUser flips the target's is_active flag and reassigns every item
// it owns to the active user with the smallest id among all other users.
// The flag flip and the reassignments commit as one transaction; on any
// failure nothing is persisted.
func (s *Store) DeactivateUser(userID uint) (*models.User, error) {
	var user models.User
	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&user, userID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrUserNotFound
			}
			return err
		}
		user.IsActive = false

		var recipient models.User
		err := tx.
			Where("is_active = ? AND id <> ?", true, userID).
			Order("id").
			First(&recipient).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNoEligibleRecipient
		}
		if err != nil {
			return err
		}

		if err := tx.Model(&models.Item{}).
			Where("owner_id = ?", userID).
			Update("owner_id", recipient.ID).Error; err != nil {
			return err
		}

		return tx.Save(&user).Error
	})
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (s *Store) GetItems(skip, limit int) ([]models.Item, error) {
	var items []models.Item
	if err := s.db.Offset(skip).Limit(limit).Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

func (s *Store) GetItemsByOwner(ownerID uint) ([]models.Item, error) {
	var items []models.Item
	if err := s.db.Where("owner_id = ?", ownerID).Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

func (s *Store) CreateUserItem(title, description string, ownerID uint) (*models.Item, error) {
	item := models.Item{
		Title:       title,
		Description: description,
		OwnerID:     ownerID,
	}
	if err := s.db.Create(&item).Error; err != nil {
		return nil, err
	}
	return &item, nil
}
