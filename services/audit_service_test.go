package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/blogem/lanauthgate/logging"
	"github.com/blogem/lanauthgate/metrics"
	"github.com/blogem/lanauthgate/models"
	"github.com/blogem/lanauthgate/repositories/mocks"
	"github.com/blogem/lanauthgate/userctx"
)

type recordingPublisher struct {
	entries []models.AuditEntry
}

func (p *recordingPublisher) Publish(entry models.AuditEntry) {
	p.entries = append(p.entries, entry)
}

func TestAuditService_Record(t *testing.T) {
	repo := mocks.NewMockAuditRepository(t)
	publisher := &recordingPublisher{}
	service := NewAuditService(repo, publisher, metrics.New(), logging.Nop()).(*auditService)
	service.now = func() time.Time { return time.Date(2024, 5, 1, 13, 4, 5, 0, time.Local) }

	repo.EXPECT().Create(mock.Anything, mock.MatchedBy(func(e *models.AuditEntry) bool {
		return e.Timestamp == "2024-05-01 13:04:05" &&
			e.IPAddress == "192.168.1.20" &&
			e.Action == models.ActionLogin &&
			e.Details == "success=true"
	})).Run(func(ctx context.Context, entry *models.AuditEntry) {
		entry.ID = 11
	}).Return(nil)

	ctx := userctx.SetClientIP(context.Background(), "192.168.1.20")
	entry, err := service.Record(ctx, models.ActionLogin, "success=true")

	require.NoError(t, err)
	require.NotNil(t, entry)
	assert.Equal(t, int64(11), entry.ID)
	require.Len(t, publisher.entries, 1)
	assert.Equal(t, int64(11), publisher.entries[0].ID)
}

func TestAuditService_RecordDropsUnknownAction(t *testing.T) {
	repo := mocks.NewMockAuditRepository(t)
	publisher := &recordingPublisher{}
	service := NewAuditService(repo, publisher, nil, logging.Nop())

	entry, err := service.Record(context.Background(), models.ActionKind("DEBUG_STATUS"), "")

	assert.NoError(t, err)
	assert.Nil(t, entry)
	assert.Empty(t, publisher.entries)
}

func TestAuditService_RecordWithoutClientIP(t *testing.T) {
	repo := mocks.NewMockAuditRepository(t)
	service := NewAuditService(repo, nil, nil, logging.Nop())

	repo.EXPECT().Create(mock.Anything, mock.MatchedBy(func(e *models.AuditEntry) bool {
		return e.IPAddress == userctx.UnknownIP
	})).Return(nil)

	_, err := service.Record(context.Background(), models.ActionLogout, "")
	assert.NoError(t, err)
}

func TestAuditService_RecordStorageFailure(t *testing.T) {
	repo := mocks.NewMockAuditRepository(t)
	publisher := &recordingPublisher{}
	service := NewAuditService(repo, publisher, nil, logging.Nop())

	repo.EXPECT().Create(mock.Anything, mock.Anything).Return(errors.New("database is locked"))

	_, err := service.Record(context.Background(), models.ActionLogout, "")

	assert.True(t, IsKind(err, KindInternal))
	assert.Empty(t, publisher.entries)
}

func TestAuditService_Recent(t *testing.T) {
	repo := mocks.NewMockAuditRepository(t)
	service := NewAuditService(repo, nil, nil, logging.Nop())

	repo.EXPECT().Recent(mock.Anything, DefaultAuditListLimit).Return([]models.AuditEntry{}, nil).Once()
	repo.EXPECT().Recent(mock.Anything, 1000).Return([]models.AuditEntry{}, nil).Once()

	_, err := service.Recent(context.Background(), 0)
	require.NoError(t, err)
	_, err = service.Recent(context.Background(), 5000)
	require.NoError(t, err)
}

func TestAuditService_Tail(t *testing.T) {
	repo := mocks.NewMockAuditRepository(t)
	service := NewAuditService(repo, nil, nil, logging.Nop())

	repo.EXPECT().Since(mock.Anything, int64(0), 10).Return([]models.AuditEntry{{ID: 1}, {ID: 2}}, nil)

	entries, err := service.Tail(context.Background(), -5, 10)
	require.NoError(t, err)
	assert.Len(t, entries, 2)

	entries, err = service.Tail(context.Background(), 0, 0)
	require.NoError(t, err)
	assert.Empty(t, entries)
}
