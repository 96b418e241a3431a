package repository

import (
	"fmt"
	"sync"
	"testing"

	"github.com/abhinandan-jain01/NearMart/internal/models"

	"github.com/glebarez/sqlite"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

func setupProductRepositoryTest(t *testing.T) (*GormProductRepository, *gorm.DB) {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	if err := db.AutoMigrate(&models.Product{}); err != nil {
		t.Fatalf("migrate product failed: %v", err)
	}
	return NewProductRepository(db), db
}

func createTestProduct(t *testing.T, repo *GormProductRepository, name string, stock int, available bool) *models.Product {
	t.Helper()
	product := &models.Product{
		RetailerID:  1,
		Name:        name,
		PriceAmount: models.NewMoneyFromDecimal(decimal.NewFromInt(10)),
		Stock:       stock,
		IsAvailable: available,
		Category:    "grocery",
	}
	if err := repo.Create(product); err != nil {
		t.Fatalf("create product failed: %v", err)
	}
	return product
}

func TestDecrementStockGuards(t *testing.T) {
	repo, db := setupProductRepositoryTest(t)
	product := createTestProduct(t, repo, "milk", 5, true)

	affected, err := repo.DecrementStock(product.ID, 3)
	if err != nil {
		t.Fatalf("decrement stock failed: %v", err)
	}
	if affected != 1 {
		t.Fatalf("decrement affected want 1 got %d", affected)
	}

	// more than remaining: guard must reject without touching the row
	affected, err = repo.DecrementStock(product.ID, 3)
	if err != nil {
		t.Fatalf("decrement over stock failed: %v", err)
	}
	if affected != 0 {
		t.Fatalf("decrement over stock affected want 0 got %d", affected)
	}

	// exact remaining is allowed
	affected, err = repo.DecrementStock(product.ID, 2)
	if err != nil {
		t.Fatalf("decrement exact stock failed: %v", err)
	}
	if affected != 1 {
		t.Fatalf("decrement exact stock affected want 1 got %d", affected)
	}

	var got models.Product
	if err := db.First(&got, product.ID).Error; err != nil {
		t.Fatalf("reload product failed: %v", err)
	}
	if got.Stock != 0 {
		t.Fatalf("stock want 0 got %d", got.Stock)
	}
}

func TestDecrementStockRejectsUnavailable(t *testing.T) {
	repo, _ := setupProductRepositoryTest(t)
	product := createTestProduct(t, repo, "hidden", 10, false)

	affected, err := repo.DecrementStock(product.ID, 1)
	if err != nil {
		t.Fatalf("decrement unavailable failed: %v", err)
	}
	if affected != 0 {
		t.Fatalf("decrement unavailable affected want 0 got %d", affected)
	}
}

func TestIncrementStockRestores(t *testing.T) {
	repo, db := setupProductRepositoryTest(t)
	product := createTestProduct(t, repo, "eggs", 4, true)

	if _, err := repo.DecrementStock(product.ID, 4); err != nil {
		t.Fatalf("decrement stock failed: %v", err)
	}
	affected, err := repo.IncrementStock(product.ID, 4)
	if err != nil {
		t.Fatalf("increment stock failed: %v", err)
	}
	if affected != 1 {
		t.Fatalf("increment affected want 1 got %d", affected)
	}

	var got models.Product
	if err := db.First(&got, product.ID).Error; err != nil {
		t.Fatalf("reload product failed: %v", err)
	}
	if got.Stock != 4 {
		t.Fatalf("stock want 4 got %d", got.Stock)
	}
}

func TestDecrementStockConcurrentNeverNegative(t *testing.T) {
	repo, db := setupProductRepositoryTest(t)
	product := createTestProduct(t, repo, "bread", 5, true)

	const workers = 10
	var wg sync.WaitGroup
	var mu sync.Mutex
	successes := 0

	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			affected, err := repo.DecrementStock(product.ID, 1)
			if err != nil {
				// sqlite single-writer contention, never a negative stock
				return
			}
			if affected == 1 {
				mu.Lock()
				successes++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	if successes > 5 {
		t.Fatalf("successes want <= 5 got %d", successes)
	}

	var got models.Product
	if err := db.First(&got, product.ID).Error; err != nil {
		t.Fatalf("reload product failed: %v", err)
	}
	if got.Stock < 0 {
		t.Fatalf("stock went negative: %d", got.Stock)
	}
	if got.Stock != 5-successes {
		t.Fatalf("stock want %d got %d", 5-successes, got.Stock)
	}
}

func TestListFiltersByRetailerAndAvailability(t *testing.T) {
	repo, _ := setupProductRepositoryTest(t)
	createTestProduct(t, repo, "visible", 3, true)
	createTestProduct(t, repo, "hidden", 3, false)

	items, total, err := repo.List(ProductListFilter{Page: 1, PageSize: 10, RetailerID: 1, OnlyAvailable: true})
	if err != nil {
		t.Fatalf("list products failed: %v", err)
	}
	if total != 1 {
		t.Fatalf("total want 1 got %d", total)
	}
	if len(items) != 1 || items[0].Name != "visible" {
		t.Fatalf("unexpected list result: %+v", items)
	}
}
