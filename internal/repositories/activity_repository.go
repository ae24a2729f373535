package repositories

import (
	"github.com/socialite-app/backend/internal/models"
	"gorm.io/gorm"
)

// ActivityRepository defines the interface for fitness activity operations.
// Every query is scoped to the owning user; other users' activities are
// invisible rather than forbidden.
type ActivityRepository interface {
	CreateActivity(activity *models.Activity) error
	GetActivityByID(id, userID uint) (*models.Activity, error)
	GetActivitiesByUserID(userID uint, page, limit int) ([]models.Activity, int64, error)
	GetHistory(userID uint) ([]models.Activity, error)
	UpdateActivity(activity *models.Activity) error
	DeleteActivity(id, userID uint) (bool, error)
}

// PostgresActivityRepository implements ActivityRepository for PostgreSQL
type PostgresActivityRepository struct {
	db *gorm.DB
}

// NewPostgresActivityRepository creates a new PostgresActivityRepository
func NewPostgresActivityRepository(db *gorm.DB) *PostgresActivityRepository {
	return &PostgresActivityRepository{db: db}
}

// CreateActivity creates a new activity
func (r *PostgresActivityRepository) CreateActivity(activity *models.Activity) error {
	return r.db.Create(activity).Error
}

// GetActivityByID retrieves an activity owned by userID
func (r *PostgresActivityRepository) GetActivityByID(id, userID uint) (*models.Activity, error) {
	var activity models.Activity
	if err := r.db.Where("id = ? AND user_id = ?", id, userID).First(&activity).Error; err != nil {
		return nil, err
	}
	return &activity, nil
}

// GetActivitiesByUserID retrieves a user's activities newest first
func (r *PostgresActivityRepository) GetActivitiesByUserID(userID uint, page, limit int) ([]models.Activity, int64, error) {
	var total int64
	if err := r.db.Model(&models.Activity{}).Where("user_id = ?", userID).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var activities []models.Activity
	offset := (page - 1) * limit
	err := r.db.Where("user_id = ?", userID).Order("date DESC").Offset(offset).Limit(limit).Find(&activities).Error
	return activities, total, err
}

// GetHistory retrieves the full newest-first activity history of a user
func (r *PostgresActivityRepository) GetHistory(userID uint) ([]models.Activity, error) {
	var activities []models.Activity
	err := r.db.Where("user_id = ?", userID).Order("date DESC").Find(&activities).Error
	return activities, err
}

// UpdateActivity updates an existing activity
func (r *PostgresActivityRepository) UpdateActivity(activity *models.Activity) error {
	return r.db.Save(activity).Error
}

// DeleteActivity deletes an activity owned by userID and reports whether
// a row existed
func (r *PostgresActivityRepository) DeleteActivity(id, userID uint) (bool, error) {
	res := r.db.Where("id = ? AND user_id = ?", id, userID).Delete(&models.Activity{})
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}
