package category

import (
	"encoding/json"
	"log"
	"os"

	"gorm.io/gorm"

	"formshub_backend/internals/features/forms/categories/model"
	userModel "formshub_backend/internals/features/users/user/model"
)

type CategorySeed struct {
	CategoryName        string  `json:"category_name"`
	CategoryDescription *string `json:"category_description"`
	OwnerEmail          string  `json:"owner_email"`
}

func SeedCategoriesFromJSON(db *gorm.DB, filePath string) {
	log.Println("📥 Membaca file category:", filePath)

	file, err := os.ReadFile(filePath)
	if err != nil {
		log.Fatalf("❌ Gagal membaca file JSON: %v", err)
	}

	var inputs []CategorySeed
	if err := json.Unmarshal(file, &inputs); err != nil {
		log.Fatalf("❌ Gagal decode JSON: %v", err)
	}

	for _, data := range inputs {
		var owner userModel.UserModel
		if err := db.Where("email = ?", data.OwnerEmail).First(&owner).Error; err != nil {
			log.Printf("❌ Owner '%s' tidak ditemukan, category '%s' dilewati.", data.OwnerEmail, data.CategoryName)
			continue
		}

		var existing model.CategoryModel
		if err := db.Where("category_name = ? AND category_owner_id = ?", data.CategoryName, owner.ID).
			First(&existing).Error; err == nil {
			log.Printf("ℹ️ Category '%s' milik '%s' sudah ada, dilewati.", data.CategoryName, data.OwnerEmail)
			continue
		}

		newCategory := model.CategoryModel{
			CategoryName:        data.CategoryName,
			CategoryDescription: data.CategoryDescription,
			CategoryOwnerID:     owner.ID,
		}
		if err := db.Create(&newCategory).Error; err != nil {
			log.Printf("❌ Gagal insert category '%s': %v", data.CategoryName, err)
		} else {
			log.Printf("✅ Berhasil insert category '%s'", data.CategoryName)
		}
	}
}
