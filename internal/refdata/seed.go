package refdata

import (
	"log"

	"gorm.io/gorm"
)

// SeedReferenceData inserts the city and category lists on first boot
func SeedReferenceData(db *gorm.DB) error {
	var cityCount int64
	if err := db.Model(&City{}).Count(&cityCount).Error; err != nil {
		return err
	}
	if cityCount == 0 {
		cities := []City{
			{NameEn: "Erbil", NameAr: "أربيل", NameKu: "هەولێر"},
			{NameEn: "Sulaymaniyah", NameAr: "السليمانية", NameKu: "سلێمانی"},
			{NameEn: "Duhok", NameAr: "دهوك", NameKu: "دهۆک"},
			{NameEn: "Baghdad", NameAr: "بغداد", NameKu: "بەغدا"},
			{NameEn: "Basra", NameAr: "البصرة", NameKu: "بەسرە"},
			{NameEn: "Mosul", NameAr: "الموصل", NameKu: "مووسڵ"},
			{NameEn: "Kirkuk", NameAr: "كركوك", NameKu: "کەرکووک"},
			{NameEn: "Halabja", NameAr: "حلبجة", NameKu: "هەڵەبجە"},
		}
		if err := db.Create(&cities).Error; err != nil {
			return err
		}
		log.Printf("Seeded %d cities", len(cities))
	}

	var categoryCount int64
	if err := db.Model(&Category{}).Count(&categoryCount).Error; err != nil {
		return err
	}
	if categoryCount == 0 {
		categories := []Category{
			{NameEn: "Social", NameAr: "اجتماعي", NameKu: "کۆمەڵایەتی", Icon: "Users"},
			{NameEn: "Music", NameAr: "موسيقى", NameKu: "مۆسیقا", Icon: "Music"},
			{NameEn: "Wellness", NameAr: "العافية", NameKu: "تەندروستی", Icon: "HeartPulse"},
			{NameEn: "Sports", NameAr: "رياضة", NameKu: "وەرزش", Icon: "Bike"},
			{NameEn: "Festivals", NameAr: "مهرجانات", NameKu: "فیستیڤاڵەکان", Icon: "Tent"},
			{NameEn: "Food & Drink", NameAr: "طعام وشراب", NameKu: "خواردن و خواردنەوە", Icon: "UtensilsCrossed"},
			{NameEn: "Conferences", NameAr: "مؤتمرات", NameKu: "کۆنفرانسەکان", Icon: "Presentation"},
			{NameEn: "Art & Culture", NameAr: "فن وثقافة", NameKu: "هونەر و کەلتوور", Icon: "Palette"},
		}
		if err := db.Create(&categories).Error; err != nil {
			return err
		}
		log.Printf("Seeded %d categories", len(categories))
	}

	return nil
}
