package translation

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/hawrami/events-iraq-backend/utils"
)

var ErrUnknownLang = errors.New("unsupported language")

const cacheTTL = 30 * time.Minute

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// GetTranslations returns the flat key→value dictionary for a language
func (s *Service) GetTranslations(lang string) (map[string]string, error) {
	if !SupportedLang(lang) {
		return nil, ErrUnknownLang
	}

	cacheKey := fmt.Sprintf("translations:%s", lang)
	if cached, ok := utils.CacheGet(cacheKey); ok {
		var dict map[string]string
		if err := json.Unmarshal([]byte(cached), &dict); err == nil {
			return dict, nil
		}
	}

	rows, err := s.repo.GetByLang(lang)
	if err != nil {
		return nil, err
	}

	dict := make(map[string]string, len(rows))
	for _, row := range rows {
		dict[row.Key] = row.Value
	}

	if payload, err := json.Marshal(dict); err == nil {
		utils.CacheSet(cacheKey, string(payload), cacheTTL)
	}

	return dict, nil
}

// Upsert sets one UI string and drops the cached dictionary
func (s *Service) Upsert(req *UpsertTranslationRequest) (*Translation, error) {
	if !SupportedLang(req.Lang) {
		return nil, ErrUnknownLang
	}

	t := &Translation{
		Key:   req.Key,
		Lang:  req.Lang,
		Value: req.Value,
	}
	if err := s.repo.Upsert(t); err != nil {
		return nil, err
	}

	utils.CacheInvalidate(fmt.Sprintf("translations:%s", req.Lang))
	return t, nil
}
