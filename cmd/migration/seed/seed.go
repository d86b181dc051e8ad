package seed

import (
	"time"

	"renthub/config"
	"renthub/internal/logger"
	. "renthub/internal/models"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

func Seed(db *gorm.DB, config config.Config, log logger.Logger) error {
	log = log.Function("seed")
	log.Info("Seeding development data")

	users := []User{
		{
			FirstName: "Admin",
			LastName:  "User",
			Email:     "admin@example.com",
			Role:      UserRoleAdmin,
			IsActive:  true,
		},
		{
			FirstName: "Olive",
			LastName:  "Owner",
			Email:     "olive.owner@example.com",
			Role:      UserRoleOwner,
			IsActive:  true,
		},
		{
			FirstName: "Theo",
			LastName:  "Tenant",
			Email:     "theo.tenant@example.com",
			Role:      UserRoleTenant,
			IsActive:  true,
		},
	}

	for i := range users {
		var existing User
		if err := db.First(&existing, "email = ?", users[i].Email).Error; err == nil {
			users[i] = existing
			log.Debug("User already exists", "email", existing.Email)
			continue
		}
		if err := db.Create(&users[i]).Error; err != nil {
			return log.Err("failed to create user", err, "email", users[i].Email)
		}
		log.Info("Seeded user", "email", users[i].Email)
	}

	owner := users[1]
	tenant := users[2]

	units := []Unit{
		{
			OwnerID:   owner.ID,
			Name:      "Maple Street 12A",
			Address:   "12A Maple Street",
			Bedrooms:  2,
			Bathrooms: 1,
			AreaSqM:   64,
		},
		{
			OwnerID:   owner.ID,
			Name:      "Harbor View 3",
			Address:   "3 Harbor View Road",
			Bedrooms:  3,
			Bathrooms: 2,
			AreaSqM:   98,
		},
	}

	for i := range units {
		var existing Unit
		if err := db.First(&existing, "name = ? AND owner_id = ?", units[i].Name, owner.ID).Error; err == nil {
			units[i] = existing
			continue
		}
		if err := db.Create(&units[i]).Error; err != nil {
			return log.Err("failed to create unit", err, "name", units[i].Name)
		}
		log.Info("Seeded unit", "name", units[i].Name)
	}

	increase := decimal.NewFromInt(10)
	duration := 1
	rentals := []Rental{
		{
			UnitID:      units[0].ID,
			OwnerID:     owner.ID,
			TenantID:    tenant.ID,
			StartDate:   time.Now().AddDate(0, -1, 0),
			IsMonthly:   true,
			MonthsCount: 6,
			StartPrice:  decimal.NewFromInt(1200),
		},
		{
			UnitID:           units[1].ID,
			OwnerID:          owner.ID,
			TenantID:         tenant.ID,
			StartDate:        time.Now().AddDate(0, 1, 0),
			EndDate:          timePtr(time.Now().AddDate(2, 1, 0)),
			StartPrice:       decimal.NewFromInt(2000),
			IncreaseValue:    &increase,
			PeriodicDuration: &duration,
			IsPercentage:     true,
			Status:           RentalStatusConfirmed,
		},
	}

	for i := range rentals {
		var existing Rental
		if err := db.First(&existing, "unit_id = ? AND tenant_id = ?", rentals[i].UnitID, tenant.ID).Error; err == nil {
			continue
		}
		if err := db.Create(&rentals[i]).Error; err != nil {
			return log.Err("failed to create rental", err, "unitID", rentals[i].UnitID)
		}
		log.Info("Seeded rental", "unitID", rentals[i].UnitID)
	}

	log.Info("Seeding complete")
	return nil
}

func timePtr(t time.Time) *time.Time {
	return &t
}
