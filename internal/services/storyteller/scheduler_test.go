package storyteller

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/ternarybob/arbor"
	"github.com/ternarybob/storyteller/internal/common"
	"github.com/ternarybob/storyteller/internal/models"
)

func TestNewScheduler_RejectsUnknownNarrativeType(t *testing.T) {
	service, _ := newTestService(t)

	_, err := NewScheduler(service, common.ProcessingConfig{Schedule: "*/15 * * * *", NarrativeType: "tweet"}, arbor.NewLogger())
	assert.True(t, errors.Is(err, ErrUnknownNarrativeType))
}

func TestScheduler_RunOnce(t *testing.T) {
	ctx := context.Background()
	service, manager := newTestService(t)

	scheduler, err := NewScheduler(service, common.ProcessingConfig{
		Schedule:      "*/15 * * * *",
		NarrativeType: string(models.NarrativeNewsletter),
	}, arbor.NewLogger())
	require.NoError(t, err)

	generated, err := scheduler.RunOnce(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, generated)

	narratives, err := manager.NarrativeStorage().ListNarratives(ctx)
	require.NoError(t, err)
	for _, n := range narratives {
		assert.Equal(t, models.NarrativeNewsletter, n.NarrativeType)
	}

	status := scheduler.Status()
	require.NotNil(t, status.LastRun)
	assert.True(t, status.LastRun.Equal(testNow))
	assert.Empty(t, status.LastError)
	assert.False(t, status.Running)
}

func TestScheduler_StartStop(t *testing.T) {
	service, _ := newTestService(t)

	scheduler, err := NewScheduler(service, common.ProcessingConfig{Schedule: "*/15 * * * *"}, arbor.NewLogger())
	require.NoError(t, err)

	require.NoError(t, scheduler.Start())
	assert.True(t, scheduler.Status().Running)
	assert.Error(t, scheduler.Start())

	scheduler.Stop()
	assert.False(t, scheduler.Status().Running)
	scheduler.Stop()
}

func TestScheduler_StartRejectsBadSchedule(t *testing.T) {
	service, _ := newTestService(t)

	scheduler, err := NewScheduler(service, common.ProcessingConfig{Schedule: "not a schedule"}, arbor.NewLogger())
	require.NoError(t, err)
	assert.Error(t, scheduler.Start())
}
