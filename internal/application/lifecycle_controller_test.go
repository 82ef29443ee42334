package application

import (
	"context"
	"testing"

	"github.com/bnema/appearance-snapshots/internal/domain"
	"github.com/bnema/appearance-snapshots/internal/ports"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSpecialModeExitRevertsSessions(t *testing.T) {
	t.Parallel()

	service, m, _ := newSessionFixture(t, SessionOptions{DisableAutomaticRevert: false})
	notifier := &recordingNotifier{}
	controller := NewLifecycleController(service, m.actors, notifier, nil)
	signal := &fakeSignal{}
	detach := controller.Attach(signal)
	defer detach()

	expectApply(m, npcActor, "")
	ctx := context.Background()
	_, err := service.Apply(ctx, ApplyRequest{Record: "Aria", Slot: 3})
	require.NoError(t, err)

	expectRevert(m, npcActor, "")
	signal.fireExit(ctx)

	_, ok := service.Session(3)
	assert.False(t, ok)
	require.Len(t, notifier.notifications, 1)
	assert.Equal(t, ports.NotifyInfo, notifier.notifications[0].level)
	assert.Contains(t, notifier.notifications[0].message, "Reverted 1")
}

func TestSpecialModeExitKeepsExemptPrimarySession(t *testing.T) {
	t.Parallel()

	service, m, _ := newSessionFixture(t, SessionOptions{DisableAutomaticRevert: true})
	notifier := &recordingNotifier{}
	controller := NewLifecycleController(service, m.actors, notifier, nil)
	signal := &fakeSignal{}
	controller.Attach(signal)

	expectApply(m, primaryActor, "scale-p")
	ctx := context.Background()
	_, err := service.Apply(ctx, ApplyRequest{Record: "Aria", Slot: primaryActor.Slot})
	require.NoError(t, err)

	signal.fireExit(ctx)
	_, ok := service.Session(primaryActor.Slot)
	assert.True(t, ok)
	assert.Empty(t, notifier.notifications)

	expectRevert(m, primaryActor, "scale-p")
	count, err := controller.RevertAll(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, count)
	_, ok = service.Session(primaryActor.Slot)
	assert.False(t, ok)
}

func TestSpecialModeExitWithNothingActiveIsSilent(t *testing.T) {
	t.Parallel()

	m := newEngineMocks(t)
	service := NewSessionService(newTestRepo(t), m.collaborators(), SessionOptions{}, nil, nil, nil)
	notifier := &recordingNotifier{}
	controller := NewLifecycleController(service, m.actors, notifier, nil)

	controller.HandleSpecialModeExited(context.Background())
	assert.Empty(t, notifier.notifications)
}

func TestDetachStopsHandling(t *testing.T) {
	t.Parallel()

	m := newEngineMocks(t)
	service := NewSessionService(newTestRepo(t), m.collaborators(), SessionOptions{}, nil, nil, nil)
	controller := NewLifecycleController(service, m.actors, nil, nil)
	signal := &fakeSignal{}

	detach := controller.Attach(signal)
	assert.Len(t, signal.handlers, 1)
	detach()
	assert.Empty(t, signal.handlers)
}

func TestTickTracksSpecialMode(t *testing.T) {
	t.Parallel()

	m := newEngineMocks(t)
	service := NewSessionService(newTestRepo(t), m.collaborators(), SessionOptions{}, nil, nil, nil)
	controller := NewLifecycleController(service, m.actors, nil, nil)

	m.actors.EXPECT().BySlot(mockAnyContext(), domain.SpecialModeProbeSlot).Return(domain.Actor{Slot: 201}, true, nil).Once()
	m.actors.EXPECT().BySlot(mockAnyContext(), domain.SpecialModeProbeSlot).Return(domain.Actor{}, false, nil).Once()

	ctx := context.Background()
	assert.True(t, controller.Tick(ctx))
	assert.True(t, controller.InSpecialMode())
	assert.False(t, controller.Tick(ctx))
	assert.False(t, controller.InSpecialMode())
}
