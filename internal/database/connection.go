// internal/database/connection.go
package database

import (
	"fmt"
	"log"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/teeloom/teeloom-backend/internal/config"
	"github.com/teeloom/teeloom-backend/internal/models"
)

var DB *gorm.DB

func Initialize(cfg config.DatabaseConfig) (*gorm.DB, error) {
	var err error
	var gormConfig *gorm.Config

	// Configure GORM logger
	if cfg.LogLevel == "silent" {
		gormConfig = &gorm.Config{
			Logger: logger.Default.LogMode(logger.Silent),
		}
	} else {
		gormConfig = &gorm.Config{
			Logger: logger.Default.LogMode(logger.Info),
		}
	}

	// Connect to database
	DB, err = gorm.Open(postgres.Open(cfg.DSN()), gormConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	// Get underlying sql.DB
	sqlDB, err := DB.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}

	// Configure connection pool
	sqlDB.SetMaxOpenConns(cfg.MaxOpenConns)
	sqlDB.SetMaxIdleConns(cfg.MaxIdleConns)
	sqlDB.SetConnMaxLifetime(time.Duration(cfg.MaxLifetime) * time.Second)

	// Test connection
	if err := sqlDB.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	log.Println("Database connection established successfully")
	return DB, nil
}

func Close(db *gorm.DB) {
	sqlDB, err := db.DB()
	if err != nil {
		log.Printf("Error getting underlying sql.DB: %v", err)
		return
	}

	if err := sqlDB.Close(); err != nil {
		log.Printf("Error closing database connection: %v", err)
	} else {
		log.Println("Database connection closed successfully")
	}
}

func RunMigrations(db *gorm.DB) error {
	log.Println("Running database migrations...")

	// Enable UUID extension
	if err := db.Exec("CREATE EXTENSION IF NOT EXISTS \"uuid-ossp\"").Error; err != nil {
		return fmt.Errorf("failed to create UUID extension: %w", err)
	}

	// Run auto-migrations
	err := db.AutoMigrate(
		&models.User{},
		&models.Designer{},
		&models.Portfolio{},
		&models.SocialLink{},
		&models.ShirtSize{},
		&models.DesignRequest{},
		&models.Design{},
		&models.FabricCanvas{},
		&models.DesignPreview{},
		&models.InventoryCategory{},
		&models.InventoryItem{},
		&models.Transaction{},
		&models.Notification{},
		&models.AdminSetting{},
		&models.AuditLog{},
	)

	if err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	// Create indexes
	if err := createIndexes(db); err != nil {
		return fmt.Errorf("failed to create indexes: %w", err)
	}

	log.Println("Database migrations completed successfully")
	return nil
}

func createIndexes(db *gorm.DB) error {
	indexes := []string{
		// User indexes
		"CREATE INDEX IF NOT EXISTS idx_users_email ON users(email)",
		"CREATE INDEX IF NOT EXISTS idx_users_role_status ON users(role, status)",

		// Request indexes
		"CREATE INDEX IF NOT EXISTS idx_design_requests_client ON design_requests(client_id)",
		"CREATE INDEX IF NOT EXISTS idx_design_requests_status ON design_requests(status)",
		"CREATE INDEX IF NOT EXISTS idx_design_requests_created_at ON design_requests(created_at DESC)",

		// Design indexes. The unique request_id index backs the 1:1
		// design-per-request invariant.
		"CREATE UNIQUE INDEX IF NOT EXISTS uidx_designs_request ON designs(request_id) WHERE deleted_at IS NULL",
		"CREATE INDEX IF NOT EXISTS idx_designs_designer_status ON designs(designer_id, status)",
		"CREATE INDEX IF NOT EXISTS idx_designs_client ON designs(client_id)",

		// Canvas indexes: enumeration by design, point lookup by
		// (design, region). The unique index enforces one canvas per region.
		"CREATE INDEX IF NOT EXISTS idx_fabric_canvases_design ON fabric_canvases(design_id)",
		"CREATE UNIQUE INDEX IF NOT EXISTS uidx_fabric_canvases_design_region ON fabric_canvases(design_id, region) WHERE deleted_at IS NULL",

		// Preview indexes
		"CREATE INDEX IF NOT EXISTS idx_design_previews_design ON design_previews(design_id)",
		"CREATE INDEX IF NOT EXISTS idx_design_previews_size ON design_previews(design_id, size_id)",

		// Inventory indexes
		"CREATE INDEX IF NOT EXISTS idx_inventory_items_category ON inventory_items(category_id)",
		"CREATE INDEX IF NOT EXISTS idx_inventory_items_name ON inventory_items(name)",

		// Transaction indexes
		"CREATE INDEX IF NOT EXISTS idx_transactions_client ON transactions(client_id)",
		"CREATE INDEX IF NOT EXISTS idx_transactions_designer ON transactions(designer_id)",
		"CREATE INDEX IF NOT EXISTS idx_transactions_type_status ON transactions(transaction_type, status)",

		// Admin indexes
		"CREATE INDEX IF NOT EXISTS idx_audit_logs_user_action ON audit_logs(user_id, action)",
		"CREATE INDEX IF NOT EXISTS idx_audit_logs_resource ON audit_logs(resource_type, resource_id)",
		"CREATE INDEX IF NOT EXISTS idx_audit_logs_created ON audit_logs(created_at DESC)",
		"CREATE INDEX IF NOT EXISTS idx_notifications_user_status ON notifications(user_id, status)",
		"CREATE INDEX IF NOT EXISTS idx_admin_settings_category ON admin_settings(category, key)",

		// Full-text search on requests
		"CREATE INDEX IF NOT EXISTS idx_design_requests_search ON design_requests USING GIN(to_tsvector('english', title || ' ' || COALESCE(description, '')))",
	}

	for _, index := range indexes {
		if err := db.Exec(index).Error; err != nil {
			log.Printf("Warning: Failed to create index: %s, Error: %v", index, err)
			// Continue with other indexes instead of failing completely
		}
	}

	return nil
}

// Seed initial data
func SeedInitialData(db *gorm.DB) error {
	log.Println("Seeding initial data...")

	// Create default admin user
	var adminCount int64
	db.Model(&models.User{}).Where("role = ?", models.UserRoleAdmin).Count(&adminCount)

	if adminCount == 0 {
		admin := &models.User{
			Email:     "admin@teeloom.app",
			FirstName: "System",
			LastName:  "Administrator",
			Role:      models.UserRoleAdmin,
			Status:    models.UserStatusActive,
		}

		if err := admin.SetPassword("admin123!@#"); err != nil {
			return fmt.Errorf("failed to set admin password: %w", err)
		}

		if err := db.Create(admin).Error; err != nil {
			return fmt.Errorf("failed to create admin user: %w", err)
		}

		log.Println("Default admin user created successfully")
	}

	if err := seedShirtSizes(db); err != nil {
		return err
	}

	if err := seedInventoryCategories(db); err != nil {
		return err
	}

	if err := seedSettings(db); err != nil {
		return err
	}

	log.Println("Initial data seeding completed")
	return nil
}

func seedShirtSizes(db *gorm.DB) error {
	var count int64
	db.Model(&models.ShirtSize{}).Count(&count)
	if count > 0 {
		return nil
	}

	sleeve := func(w, l float64) (*float64, *float64) { return &w, &l }

	adultSW, adultSL := sleeve(20, 22)
	kidsSW, kidsSL := sleeve(14, 15)

	sizes := []models.ShirtSize{
		{SizeLabel: "S", Width: 46, Height: 66, Type: models.ShirtTypeTshirt, SleeveWidth: adultSW, SleeveLength: adultSL, Category: models.SizeCategoryAdult},
		{SizeLabel: "M", Width: 51, Height: 69, Type: models.ShirtTypeTshirt, SleeveWidth: adultSW, SleeveLength: adultSL, Category: models.SizeCategoryAdult},
		{SizeLabel: "L", Width: 56, Height: 71, Type: models.ShirtTypeTshirt, SleeveWidth: adultSW, SleeveLength: adultSL, Category: models.SizeCategoryAdult},
		{SizeLabel: "XL", Width: 61, Height: 74, Type: models.ShirtTypeTshirt, SleeveWidth: adultSW, SleeveLength: adultSL, Category: models.SizeCategoryAdult},
		{SizeLabel: "S", Width: 36, Height: 51, Type: models.ShirtTypeTshirt, SleeveWidth: kidsSW, SleeveLength: kidsSL, Category: models.SizeCategoryKids},
		{SizeLabel: "M", Width: 41, Height: 56, Type: models.ShirtTypeTshirt, SleeveWidth: kidsSW, SleeveLength: kidsSL, Category: models.SizeCategoryKids},
	}

	for _, size := range sizes {
		if err := db.Create(&size).Error; err != nil {
			return fmt.Errorf("failed to seed shirt size %s/%s: %w", size.Category, size.SizeLabel, err)
		}
	}

	return nil
}

func seedInventoryCategories(db *gorm.DB) error {
	categories := []models.InventoryCategory{
		{Name: "Fabric", Description: "Shirt blanks and raw fabric"},
		{Name: "Ink", Description: "Printing inks and dyes"},
		{Name: "Thread", Description: "Embroidery and stitching thread"},
		{Name: "Packaging", Description: "Bags, boxes, and labels"},
	}

	for _, category := range categories {
		var count int64
		db.Model(&models.InventoryCategory{}).Where("name = ?", category.Name).Count(&count)
		if count == 0 {
			if err := db.Create(&category).Error; err != nil {
				return fmt.Errorf("failed to seed inventory category %s: %w", category.Name, err)
			}
		}
	}

	return nil
}

func seedSettings(db *gorm.DB) error {
	defaultSettings := []models.AdminSetting{
		{
			Category:    "general",
			Key:         "platform_name",
			Value:       models.JSONB{"value": "Teeloom"},
			DataType:    "string",
			Description: "Platform name displayed to users",
		},
		{
			Category:    "payments",
			Key:         "platform_fee_percentage",
			Value:       models.JSONB{"value": 5.0},
			DataType:    "float",
			Description: "Platform fee percentage for design fees",
		},
		{
			Category:    "requests",
			Key:         "auto_approve_requests",
			Value:       models.JSONB{"value": false},
			DataType:    "boolean",
			Description: "Automatically approve new design requests",
		},
		{
			Category:    "content",
			Key:         "max_file_size",
			Value:       models.JSONB{"value": 50},
			DataType:    "integer",
			Description: "Maximum file size in MB for uploads",
		},
	}

	for _, setting := range defaultSettings {
		var count int64
		db.Model(&models.AdminSetting{}).Where("category = ? AND key = ?", setting.Category, setting.Key).Count(&count)

		if count == 0 {
			var admin models.User
			if err := db.Where("role = ?", models.UserRoleAdmin).First(&admin).Error; err == nil {
				setting.UpdatedBy = admin.ID
				if err := db.Create(&setting).Error; err != nil {
					log.Printf("Warning: Failed to create setting %s.%s: %v", setting.Category, setting.Key, err)
				}
			}
		}
	}

	return nil
}

// Transaction helper
func WithTransaction(db *gorm.DB, fn func(*gorm.DB) error) error {
	tx := db.Begin()
	if tx.Error != nil {
		return tx.Error
	}

	defer func() {
		if r := recover(); r != nil {
			tx.Rollback()
			panic(r)
		}
	}()

	if err := fn(tx); err != nil {
		tx.Rollback()
		return err
	}

	return tx.Commit().Error
}
