package broker_test

import (
	"testing"

	"github.com/scholarbase/scholarship_portal_api/internal/core/domain"
	"github.com/scholarbase/scholarship_portal_api/internal/platform/broker"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func scholarEvent(receiverID string) domain.NotificationEvent {
	return domain.NotificationEvent{Scholar: &domain.ScholarNotification{
		NotificationID: "n1",
		ReceiverID:     receiverID,
		Type:           domain.NotifyDocument,
		Title:          "t",
	}}
}

func adminEvent(role *domain.Role) domain.NotificationEvent {
	return domain.NotificationEvent{Admin: &domain.AdminNotification{
		NotificationID: "n2",
		Role:           role,
		Type:           domain.NotifyAnnouncement,
		Title:          "t",
	}}
}

func TestPublishMatchesScholarFilter(t *testing.T) {
	b := broker.New(4)
	defer b.Close()

	mine, cancelMine := b.Subscribe(broker.Filter{ScholarID: "s1"})
	defer cancelMine()
	other, cancelOther := b.Subscribe(broker.Filter{ScholarID: "s2"})
	defer cancelOther()

	delivered := b.Publish(scholarEvent("s1"))

	require.Equal(t, 1, delivered)
	ev := <-mine
	assert.Equal(t, "s1", ev.Scholar.ReceiverID)
	assert.Empty(t, other)
}

func TestPublishAdminRoleVisibility(t *testing.T) {
	docs := domain.RoleManageDocuments

	b := broker.New(4)
	defer b.Close()

	docsCh, cancelDocs := b.Subscribe(broker.Filter{Role: domain.RoleManageDocuments})
	defer cancelDocs()
	gatherCh, cancelGather := b.Subscribe(broker.Filter{Role: domain.RoleManageGatherings})
	defer cancelGather()
	superCh, cancelSuper := b.Subscribe(broker.Filter{Role: domain.RoleSuperAdmin})
	defer cancelSuper()

	delivered := b.Publish(adminEvent(&docs))

	// The addressed role and SUPER_ADMIN see it, other admin roles do not.
	require.Equal(t, 2, delivered)
	assert.Len(t, docsCh, 1)
	assert.Len(t, superCh, 1)
	assert.Empty(t, gatherCh)
}

func TestPublishNilRoleReachesEveryAdmin(t *testing.T) {
	b := broker.New(4)
	defer b.Close()

	docsCh, cancelDocs := b.Subscribe(broker.Filter{Role: domain.RoleManageDocuments})
	defer cancelDocs()
	viewerCh, cancelViewer := b.Subscribe(broker.Filter{Role: domain.RoleViewer})
	defer cancelViewer()
	scholarCh, cancelScholar := b.Subscribe(broker.Filter{ScholarID: "s1"})
	defer cancelScholar()

	delivered := b.Publish(adminEvent(nil))

	require.Equal(t, 2, delivered)
	assert.Len(t, docsCh, 1)
	assert.Len(t, viewerCh, 1)
	assert.Empty(t, scholarCh)
}

func TestLateSubscriberMissesEarlierPublish(t *testing.T) {
	b := broker.New(4)
	defer b.Close()

	// Nothing is registered yet, so the event goes nowhere and is not replayed.
	require.Equal(t, 0, b.Publish(scholarEvent("s1")))

	ch, cancel := b.Subscribe(broker.Filter{ScholarID: "s1"})
	defer cancel()

	// The late joiner starts empty; earlier events are only recoverable
	// through the persisted notification store.
	assert.Empty(t, ch)

	require.Equal(t, 1, b.Publish(scholarEvent("s1")))
	assert.Len(t, ch, 1)
}

func TestPublishNeverBlocksOnFullBuffer(t *testing.T) {
	b := broker.New(1)
	defer b.Close()

	ch, cancel := b.Subscribe(broker.Filter{ScholarID: "s1"})
	defer cancel()

	assert.Equal(t, 1, b.Publish(scholarEvent("s1")))
	// Buffer full: the second publish drops for this subscriber instead of blocking.
	assert.Equal(t, 0, b.Publish(scholarEvent("s1")))
	assert.Len(t, ch, 1)
}

func TestCancelRemovesSubscriber(t *testing.T) {
	b := broker.New(4)
	defer b.Close()

	ch, cancel := b.Subscribe(broker.Filter{ScholarID: "s1"})
	cancel()

	assert.Equal(t, 0, b.Publish(scholarEvent("s1")))

	_, open := <-ch
	assert.False(t, open)

	// Cancelling twice is harmless.
	cancel()
}

func TestCloseShutsDownSubscriptions(t *testing.T) {
	b := broker.New(4)

	ch, cancel := b.Subscribe(broker.Filter{ScholarID: "s1"})
	defer cancel()

	b.Close()

	_, open := <-ch
	require.False(t, open)
	assert.Equal(t, 0, b.Publish(scholarEvent("s1")))

	// Subscribing after close yields an already-closed channel.
	late, lateCancel := b.Subscribe(broker.Filter{ScholarID: "s1"})
	defer lateCancel()
	_, open = <-late
	assert.False(t, open)
}
