package auditlog_test

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/hawrami/events-iraq-backend/internal/auditlog"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type fakeAuditRepo struct {
	logs []auditlog.AuditLog
}

func (r *fakeAuditRepo) Create(ctx context.Context, log *auditlog.AuditLog) error {
	log.ID = uint(len(r.logs) + 1)
	r.logs = append(r.logs, *log)
	return nil
}

func (r *fakeAuditRepo) GetByFilter(ctx context.Context, filter auditlog.AuditLogFilter) ([]auditlog.AuditLogResponse, int64, error) {
	var out []auditlog.AuditLogResponse
	for _, l := range r.logs {
		if filter.Action != "" && l.Action != filter.Action {
			continue
		}
		out = append(out, auditlog.AuditLogResponse{
			ID: l.ID, UserID: l.UserID, Action: l.Action,
			Details: l.Details, IPAddress: l.IPAddress, Status: l.Status,
		})
	}
	return out, int64(len(out)), nil
}

func (r *fakeAuditRepo) GetByID(ctx context.Context, id uint) (*auditlog.AuditLogResponse, error) {
	for _, l := range r.logs {
		if l.ID == id {
			return &auditlog.AuditLogResponse{
				ID: l.ID, UserID: l.UserID, Action: l.Action,
				Details: l.Details, IPAddress: l.IPAddress, Status: l.Status,
			}, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func TestLogActionStoresDetailsAsJSON(t *testing.T) {
	repo := &fakeAuditRepo{}
	svc := auditlog.NewService(repo)

	adminID := uint(7)
	err := svc.LogAction(context.Background(), &adminID, auditlog.ActionEventApproved, map[string]interface{}{
		"event_id": 42,
		"title":    "Newroz Concert",
	}, "10.0.0.1", "success")
	require.NoError(t, err)
	require.Len(t, repo.logs, 1)

	var details map[string]interface{}
	require.NoError(t, json.Unmarshal(repo.logs[0].Details, &details))
	require.Equal(t, float64(42), details["event_id"])
	require.Equal(t, "Newroz Concert", details["title"])
}

func TestLogActionNilDetailsBecomesEmptyObject(t *testing.T) {
	repo := &fakeAuditRepo{}
	svc := auditlog.NewService(repo)

	require.NoError(t, svc.LogAction(context.Background(), nil, auditlog.ActionUserLogin, nil, "10.0.0.1", "failure"))
	require.JSONEq(t, "{}", string(repo.logs[0].Details))
}
