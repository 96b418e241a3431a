package main

import (
	"fmt"

	"github.com/abhinandan-jain01/NearMart/internal/config"
	"github.com/abhinandan-jain01/NearMart/internal/logger"
	"github.com/abhinandan-jain01/NearMart/internal/models"
	"github.com/abhinandan-jain01/NearMart/internal/service"

	"golang.org/x/crypto/bcrypt"
)

const demoPassword = "nearmart-demo"

func main() {
	cfg := config.Load()
	logger.Init(cfg.Server.Mode, cfg.Log.ToLoggerOptions())
	stdLog := logger.StdLogger()

	if err := models.InitDB(cfg.Database.Driver, cfg.Database.DSN, models.DBPoolConfig{
		MaxOpenConns:           cfg.Database.Pool.MaxOpenConns,
		MaxIdleConns:           cfg.Database.Pool.MaxIdleConns,
		ConnMaxLifetimeSeconds: cfg.Database.Pool.ConnMaxLifetimeSeconds,
		ConnMaxIdleTimeSeconds: cfg.Database.Pool.ConnMaxIdleTimeSeconds,
	}); err != nil {
		stdLog.Fatalf("failed to connect database: %v", err)
	}

	if err := models.AutoMigrate(); err != nil {
		stdLog.Fatalf("failed to migrate database: %v", err)
	}

	passwordHash, err := bcrypt.GenerateFromPassword([]byte(demoPassword), bcrypt.DefaultCost)
	if err != nil {
		stdLog.Fatalf("failed to hash demo password: %v", err)
	}

	// Demo retailers around central Bengaluru.
	retailers := []models.Retailer{
		{
			Name:         "Lakshmi General Store",
			Email:        "lakshmi@nearmart.demo",
			PasswordHash: string(passwordHash),
			Phone:        "+91-9000000001",
			Address:      "12 MG Road, Bengaluru",
			Latitude:     12.9752,
			Longitude:    77.6068,
			IsOpen:       true,
		},
		{
			Name:         "Green Basket Organics",
			Email:        "greenbasket@nearmart.demo",
			PasswordHash: string(passwordHash),
			Phone:        "+91-9000000002",
			Address:      "45 Indiranagar 100ft Road, Bengaluru",
			Latitude:     12.9784,
			Longitude:    77.6408,
			IsOpen:       true,
		},
		{
			Name:         "City Pharma & Daily Needs",
			Email:        "citypharma@nearmart.demo",
			PasswordHash: string(passwordHash),
			Phone:        "+91-9000000003",
			Address:      "8 Koramangala 5th Block, Bengaluru",
			Latitude:     12.9352,
			Longitude:    77.6245,
			IsOpen:       false,
		},
	}

	retailerIDs := map[string]uint{}
	for _, r := range retailers {
		var existing models.Retailer
		if err := models.DB.Where("email = ?", r.Email).First(&existing).Error; err != nil {
			if err := models.DB.Create(&r).Error; err != nil {
				stdLog.Printf("failed to create retailer %s: %v", r.Email, err)
				continue
			}
			stdLog.Printf("created retailer: %s", r.Email)
			retailerIDs[r.Email] = r.ID
		} else {
			existing.Name = r.Name
			existing.Phone = r.Phone
			existing.Address = r.Address
			existing.Latitude = r.Latitude
			existing.Longitude = r.Longitude
			existing.IsOpen = r.IsOpen
			if err := models.DB.Save(&existing).Error; err != nil {
				stdLog.Printf("failed to update retailer %s: %v", r.Email, err)
				continue
			}
			stdLog.Printf("updated retailer: %s", r.Email)
			retailerIDs[r.Email] = existing.ID
		}
	}

	customers := []models.Customer{
		{
			Name:         "Asha Nair",
			Email:        "asha@nearmart.demo",
			PasswordHash: string(passwordHash),
			Phone:        "+91-9100000001",
			Address:      "21 Richmond Road, Bengaluru",
			Latitude:     12.9634,
			Longitude:    77.6062,
		},
		{
			Name:         "Rohan Mehta",
			Email:        "rohan@nearmart.demo",
			PasswordHash: string(passwordHash),
			Phone:        "+91-9100000002",
			Address:      "7 HSR Layout Sector 2, Bengaluru",
			Latitude:     12.9116,
			Longitude:    77.6474,
		},
	}

	customerIDs := map[string]uint{}
	for _, cu := range customers {
		var existing models.Customer
		if err := models.DB.Where("email = ?", cu.Email).First(&existing).Error; err != nil {
			if err := models.DB.Create(&cu).Error; err != nil {
				stdLog.Printf("failed to create customer %s: %v", cu.Email, err)
				continue
			}
			stdLog.Printf("created customer: %s", cu.Email)
			customerIDs[cu.Email] = cu.ID
		} else {
			existing.Name = cu.Name
			existing.Phone = cu.Phone
			existing.Address = cu.Address
			existing.Latitude = cu.Latitude
			existing.Longitude = cu.Longitude
			if err := models.DB.Save(&existing).Error; err != nil {
				stdLog.Printf("failed to update customer %s: %v", cu.Email, err)
				continue
			}
			stdLog.Printf("updated customer: %s", cu.Email)
			customerIDs[cu.Email] = existing.ID
		}
	}

	products := []struct {
		RetailerEmail string
		Product       models.Product
	}{
		{
			RetailerEmail: "lakshmi@nearmart.demo",
			Product: models.Product{
				Name:        "Basmati Rice 1kg",
				Description: "Aged long-grain basmati rice.",
				PriceAmount: models.NewMoneyFromFloat(2.99),
				Stock:       40,
				IsAvailable: true,
				Category:    "groceries",
				Images:      models.StringArray([]string{"https://images.unsplash.com/photo-1586201375761-83865001e31c?w=800"}),
			},
		},
		{
			RetailerEmail: "lakshmi@nearmart.demo",
			Product: models.Product{
				Name:        "Toor Dal 500g",
				Description: "Unpolished split pigeon peas.",
				PriceAmount: models.NewMoneyFromFloat(1.99),
				Stock:       25,
				IsAvailable: true,
				Category:    "groceries",
				Images:      models.StringArray([]string{"https://images.unsplash.com/photo-1585996950364-1951fcbe0b5e?w=800"}),
			},
		},
		{
			RetailerEmail: "lakshmi@nearmart.demo",
			Product: models.Product{
				Name:        "Sunflower Oil 1L",
				Description: "Refined cooking oil.",
				PriceAmount: models.NewMoneyFromFloat(2.99),
				Stock:       0,
				IsAvailable: true,
				Category:    "groceries",
			},
		},
		{
			RetailerEmail: "greenbasket@nearmart.demo",
			Product: models.Product{
				Name:        "Organic Tomatoes 500g",
				Description: "Pesticide-free vine tomatoes.",
				PriceAmount: models.NewMoneyFromFloat(1.49),
				Stock:       18,
				IsAvailable: true,
				Category:    "produce",
				Images:      models.StringArray([]string{"https://images.unsplash.com/photo-1592924357228-91a4daadcfea?w=800"}),
			},
		},
		{
			RetailerEmail: "greenbasket@nearmart.demo",
			Product: models.Product{
				Name:        "Cold-Pressed Coconut Oil 500ml",
				Description: "Single-origin, wood pressed.",
				PriceAmount: models.NewMoneyFromFloat(5.49),
				Stock:       12,
				IsAvailable: false,
				Category:    "pantry",
			},
		},
		{
			RetailerEmail: "citypharma@nearmart.demo",
			Product: models.Product{
				Name:        "Paracetamol 500mg Strip",
				Description: "Pack of 15 tablets.",
				PriceAmount: models.NewMoneyFromFloat(0.99),
				Stock:       60,
				IsAvailable: true,
				Category:    "pharmacy",
			},
		},
	}

	for _, entry := range products {
		retailerID := retailerIDs[entry.RetailerEmail]
		if retailerID == 0 {
			stdLog.Printf("skip product %s: retailer %s missing", entry.Product.Name, entry.RetailerEmail)
			continue
		}
		prod := entry.Product
		prod.RetailerID = retailerID

		var existing models.Product
		if err := models.DB.Where("retailer_id = ? AND name = ?", retailerID, prod.Name).First(&existing).Error; err != nil {
			if err := models.DB.Create(&prod).Error; err != nil {
				stdLog.Printf("failed to create product %s: %v", prod.Name, err)
			} else {
				stdLog.Printf("created product: %s", prod.Name)
			}
		} else {
			existing.Description = prod.Description
			existing.PriceAmount = prod.PriceAmount
			existing.Stock = prod.Stock
			existing.IsAvailable = prod.IsAvailable
			existing.Category = prod.Category
			existing.Images = prod.Images
			if err := models.DB.Save(&existing).Error; err != nil {
				stdLog.Printf("failed to update product %s: %v", prod.Name, err)
			} else {
				stdLog.Printf("updated product: %s", prod.Name)
			}
		}
	}

	fmt.Println("\nSeed data ready.")
	fmt.Printf("Demo password for all accounts: %s\n", demoPassword)

	fmt.Println("\nCustomer tokens:")
	for _, cu := range customers {
		id := customerIDs[cu.Email]
		if id == 0 {
			continue
		}
		token, err := service.IssueCustomerToken(cfg.Auth.CustomerJWT, id, cu.Email)
		if err != nil {
			stdLog.Printf("failed to issue token for %s: %v", cu.Email, err)
			continue
		}
		fmt.Printf("  %s\n    %s\n", cu.Email, token)
	}

	fmt.Println("\nRetailer tokens:")
	for _, r := range retailers {
		id := retailerIDs[r.Email]
		if id == 0 {
			continue
		}
		token, err := service.IssueRetailerToken(cfg.Auth.RetailerJWT, id, r.Email)
		if err != nil {
			stdLog.Printf("failed to issue token for %s: %v", r.Email, err)
			continue
		}
		fmt.Printf("  %s\n    %s\n", r.Email, token)
	}
}
