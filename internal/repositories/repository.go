package repositories

import (
	"renthub/internal/database"
)

type Repository struct {
	User         UserRepository
	Unit         UnitRepository
	Rental       RentalRepository
	Maintenance  MaintenanceRepository
	Notification NotificationRepository
	History      HistoryRepository
}

func New(db database.DB) Repository {
	return Repository{
		User:         NewUserRepository(),
		Unit:         NewUnitRepository(),
		Rental:       NewRentalRepository(),
		Maintenance:  NewMaintenanceRepository(),
		Notification: NewNotificationRepository(),
		History:      NewHistoryRepository(),
	}
}
