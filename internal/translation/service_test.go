package translation_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/hawrami/events-iraq-backend/internal/translation"
)

type fakeTranslationRepo struct {
	rows map[string]map[string]string // lang -> key -> value
}

func newFakeTranslationRepo() *fakeTranslationRepo {
	return &fakeTranslationRepo{rows: map[string]map[string]string{}}
}

func (r *fakeTranslationRepo) GetByLang(lang string) ([]translation.Translation, error) {
	var out []translation.Translation
	for key, value := range r.rows[lang] {
		out = append(out, translation.Translation{Key: key, Lang: lang, Value: value})
	}
	return out, nil
}

func (r *fakeTranslationRepo) Upsert(t *translation.Translation) error {
	if r.rows[t.Lang] == nil {
		r.rows[t.Lang] = map[string]string{}
	}
	r.rows[t.Lang][t.Key] = t.Value
	return nil
}

func (r *fakeTranslationRepo) Count() (int64, error) {
	var n int64
	for _, keys := range r.rows {
		n += int64(len(keys))
	}
	return n, nil
}

func TestGetTranslationsReturnsFlatDictionary(t *testing.T) {
	repo := newFakeTranslationRepo()
	require.NoError(t, repo.Upsert(&translation.Translation{Key: "header.events", Lang: "ku", Value: "ڕووداوەکان"}))
	require.NoError(t, repo.Upsert(&translation.Translation{Key: "header.login", Lang: "ku", Value: "چوونەژوورەوە"}))
	require.NoError(t, repo.Upsert(&translation.Translation{Key: "header.events", Lang: "ar", Value: "الفعاليات"}))

	svc := translation.NewService(repo)

	dict, err := svc.GetTranslations("ku")
	require.NoError(t, err)
	require.Len(t, dict, 2)
	require.Equal(t, "ڕووداوەکان", dict["header.events"])
}

func TestGetTranslationsUnknownLang(t *testing.T) {
	svc := translation.NewService(newFakeTranslationRepo())

	_, err := svc.GetTranslations("fr")
	require.ErrorIs(t, err, translation.ErrUnknownLang)
}

func TestUpsertReplacesExistingValue(t *testing.T) {
	repo := newFakeTranslationRepo()
	svc := translation.NewService(repo)

	_, err := svc.Upsert(&translation.UpsertTranslationRequest{Key: "home.title", Lang: "en", Value: "Discover events"})
	require.NoError(t, err)

	_, err = svc.Upsert(&translation.UpsertTranslationRequest{Key: "home.title", Lang: "en", Value: "Find events"})
	require.NoError(t, err)

	dict, err := svc.GetTranslations("en")
	require.NoError(t, err)
	require.Len(t, dict, 1, "same key and language overwrites, no duplicate row")
	require.Equal(t, "Find events", dict["home.title"])
}

func TestUpsertRejectsUnknownLang(t *testing.T) {
	svc := translation.NewService(newFakeTranslationRepo())

	_, err := svc.Upsert(&translation.UpsertTranslationRequest{Key: "home.title", Lang: "de", Value: "x"})
	require.ErrorIs(t, err, translation.ErrUnknownLang)
}
