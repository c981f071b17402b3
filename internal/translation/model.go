package translation

import (
	"time"
)

// Supported interface languages
const (
	LangEnglish = "en"
	LangArabic  = "ar"
	LangKurdish = "ku"
)

// SupportedLang reports whether lang is one of the served languages
func SupportedLang(lang string) bool {
	switch lang {
	case LangEnglish, LangArabic, LangKurdish:
		return true
	}
	return false
}

// Translation represents one UI string in one language. The (key, lang)
// pair is unique.
type Translation struct {
	ID        uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	Key       string    `gorm:"size:150;not null;uniqueIndex:idx_key_lang" json:"key"`
	Lang      string    `gorm:"size:5;not null;uniqueIndex:idx_key_lang" json:"lang"`
	Value     string    `gorm:"type:text;not null" json:"value"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (Translation) TableName() string {
	return "translations"
}

// UpsertTranslationRequest is the admin payload for setting one string
type UpsertTranslationRequest struct {
	Key   string `json:"key" binding:"required"`
	Lang  string `json:"lang" binding:"required"`
	Value string `json:"value" binding:"required"`
}
