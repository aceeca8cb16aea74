package config

import (
	"log"

	"istore-api/internal/adapters/persistence/models"
	"istore-api/internal/pkg/password"

	"gorm.io/gorm"
)

// Seeder handles database seeding
type Seeder struct {
	db *gorm.DB
}

// NewSeeder creates a new seeder instance
func NewSeeder(db *gorm.DB) *Seeder {
	return &Seeder{db: db}
}

// Run executes all seeders
func (s *Seeder) Run() error {
	log.Println("🌱 Running database seeders...")

	if err := s.seedAdminUser(); err != nil {
		log.Printf("⚠️ Admin seeder skipped: %v", err)
	}
	if err := s.seedProducts(); err != nil {
		log.Printf("⚠️ Product seeder skipped: %v", err)
	}
	if err := s.seedVouchers(); err != nil {
		log.Printf("⚠️ Voucher seeder skipped: %v", err)
	}

	log.Println("✅ Database seeding completed")
	return nil
}

// seedAdminUser seeds default admin user
// This is for development/testing only
// In production, create admin through secure process
func (s *Seeder) seedAdminUser() error {
	var count int64
	s.db.Model(&models.User{}).Where("role = ?", "ADMIN").Count(&count)
	if count > 0 {
		return nil // Admin already exists
	}

	hashedPassword, err := password.Hash("admin123456")
	if err != nil {
		return err
	}

	admin := &models.User{
		Email:    "admin@istore.vn",
		Password: hashedPassword,
		Role:     "ADMIN",
		Rank:     "Silver",
	}

	if err := s.db.Create(admin).Error; err != nil {
		return err
	}

	log.Printf("✅ Admin user created: %s", admin.Email)
	return nil
}

// seedProducts seeds the storefront catalog. Every product starts
// with 50 units in stock.
func (s *Seeder) seedProducts() error {
	var count int64
	s.db.Model(&models.Product{}).Count(&count)
	if count > 0 {
		return nil // Catalog already seeded
	}

	products := []models.Product{
		// Phone
		{Name: "iPhone 7 Plus", Category: "Phone", Price: 22000000, ImageURL: "images/iphone7plus.jpeg"},
		{Name: "iPhone 8 Plus", Category: "Phone", Price: 5000000, ImageURL: "images/iphone8plus.webp"},
		{Name: "iPhone 11", Category: "Phone", Price: 10000000, ImageURL: "images/iphone11.jpg"},
		{Name: "iPhone SE (3rd gen)", Category: "Phone", Price: 10000000, ImageURL: "images/iphone se 3rd gold.webp"},
		{Name: "iPhone 12", Category: "Phone", Price: 20000000, ImageURL: "images/iphone 12 black.png"},
		{Name: "iPhone 12 Pro", Category: "Phone", Price: 25000000, ImageURL: "images/12 gold.webp"},
		{Name: "iPhone 13", Category: "Phone", Price: 15000000, ImageURL: "images/iphone 13 blue.jpg"},
		{Name: "iPhone 14", Category: "Phone", Price: 17000000, ImageURL: "images/iphone 14 red.jpg"},
		{Name: "iPhone 14 Pro Max", Category: "Phone", Price: 26500000, ImageURL: "images/iphone14promax.webp"},
		{Name: "iPhone 15 Plus", Category: "Phone", Price: 23000000, ImageURL: "images/iphonee15 plus black.png"},
		{Name: "iPhone 15 Pro Max", Category: "Phone", Price: 27500000, ImageURL: "images/iphone15promax.webp"},
		{Name: "iPhone 16 Pro Max", Category: "Phone", Price: 31000000, ImageURL: "images/16 pro max đen.webp"},

		// Headphone
		{Name: "AirPods (3rd gen)", Category: "HeadPhone", Price: 4000000, ImageURL: "images/AirPods (3rd gen).jpg"},
		{Name: "Airpods Pro 2", Category: "HeadPhone", Price: 5000000, ImageURL: "images/airpod2.jpg"},
		{Name: "AirPods Max", Category: "HeadPhone", Price: 13000000, ImageURL: "images/airpodmax.png"},

		// Watch
		{Name: "Apple Watch SE (2nd gen)", Category: "Watch", Price: 6000000, ImageURL: "images/se black.jpg"},
		{Name: "Apple Watch Series 9", Category: "Watch", Price: 10000000, ImageURL: "images/watch series 9 rose.webp"},
		{Name: "Apple Watch Ultra 2", Category: "Watch", Price: 20000000, ImageURL: "images/black.webp"},

		// iPad
		{Name: "iPad Air (M2)", Category: "iPad", Price: 15000000, ImageURL: "images/ipad air m2 gold.jpg"},
		{Name: "iPad Pro (M4)", Category: "iPad", Price: 25000000, ImageURL: "images/ipadprom4.jpg"},

		// Laptop
		{Name: "MacBook Air 15 M3", Category: "Laptop", Price: 32000000, ImageURL: "images/air15 black.webp"},

		// Desktop
		{Name: "iMac 24 M3", Category: "Desktop", Price: 33000000, ImageURL: "images/imac24.jpg"},
		{Name: "Mac mini M2", Category: "Desktop", Price: 15000000, ImageURL: "images/Mac mini M2.jpg"},

		// TV & Home
		{Name: "Apple TV 4K (3rd gen)", Category: "TV & Home", Price: 3500000, ImageURL: "images/appletv4k.jpg"},
		{Name: "HomePod (2nd gen)", Category: "TV & Home", Price: 7500000, ImageURL: "images/homepod2.jpg"},
	}

	for i := range products {
		products[i].Stock = 50
	}

	if err := s.db.Create(&products).Error; err != nil {
		return err
	}

	log.Printf("✅ Seeded %d catalog products", len(products))
	return nil
}

// seedVouchers seeds a starter set of promotional vouchers
func (s *Seeder) seedVouchers() error {
	var count int64
	s.db.Model(&models.Voucher{}).Count(&count)
	if count > 0 {
		return nil
	}

	vouchers := []models.Voucher{
		{Code: "SAVE50", DiscountAmount: 50000, PointsRequired: 100, Quantity: 100, IsActive: true},
		{Code: "SAVE200", DiscountAmount: 200000, PointsRequired: 350, Quantity: 50, IsActive: true},
		{Code: "SAVE500", DiscountAmount: 500000, PointsRequired: 800, Quantity: 20, IsActive: true},
	}

	if err := s.db.Create(&vouchers).Error; err != nil {
		return err
	}

	log.Printf("✅ Seeded %d vouchers", len(vouchers))
	return nil
}
