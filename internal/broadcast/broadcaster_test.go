package broadcast

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nutrileaf/nutrileaf-client/internal/app/model"
)

func TestBroadcaster_Publish_DeliversInRegistrationOrder(t *testing.T) {
	b := New(nil)

	var order []string
	b.Subscribe(model.CartChanged, func(model.ChangeNotification) {
		order = append(order, "first")
	})
	b.Subscribe(model.CartChanged, func(model.ChangeNotification) {
		order = append(order, "second")
	})
	b.Subscribe(model.CartChanged, func(model.ChangeNotification) {
		order = append(order, "third")
	})

	b.Publish(context.Background(), model.ChangeNotification{Kind: model.CartChanged})

	assert.Equal(t, []string{"first", "second", "third"}, order)
}

func TestBroadcaster_Publish_FiltersByKind(t *testing.T) {
	b := New(nil)

	var cartHits, profileHits int
	b.Subscribe(model.CartChanged, func(model.ChangeNotification) { cartHits++ })
	b.Subscribe(model.ProfileChanged, func(model.ChangeNotification) { profileHits++ })

	b.Publish(context.Background(), model.ChangeNotification{Kind: model.CartChanged})

	assert.Equal(t, 1, cartHits)
	assert.Equal(t, 0, profileHits)
}

func TestBroadcaster_Unsubscribe_StopsDelivery(t *testing.T) {
	b := New(nil)

	var hits int
	unsubscribe := b.Subscribe(model.CartChanged, func(model.ChangeNotification) { hits++ })

	b.Publish(context.Background(), model.ChangeNotification{Kind: model.CartChanged})
	unsubscribe()
	b.Publish(context.Background(), model.ChangeNotification{Kind: model.CartChanged})

	assert.Equal(t, 1, hits)

	// Disposing twice is harmless.
	unsubscribe()
}

func TestBroadcaster_TwoSubscribers_AgreeOnAggregate(t *testing.T) {
	b := New(nil)

	// Two independent surfaces showing the same count must converge to
	// the same value from the same notification.
	var navCount, drawerCount int
	b.Subscribe(model.CartChanged, func(n model.ChangeNotification) {
		navCount = n.Cart.TotalCount()
	})
	b.Subscribe(model.CartChanged, func(n model.ChangeNotification) {
		drawerCount = n.Cart.TotalCount()
	})

	cart := model.Cart{Items: []model.CartItem{
		{ProductID: 1, Name: "Moringa Powder", Price: 299, Quantity: 2},
		{ProductID: 2, Name: "Neem Oil", Price: 150, Quantity: 1},
	}}
	b.Publish(context.Background(), model.ChangeNotification{Kind: model.CartChanged, Cart: &cart})
	b.Publish(context.Background(), model.ChangeNotification{Kind: model.CartChanged, Cart: &cart})

	assert.Equal(t, 3, navCount)
	assert.Equal(t, navCount, drawerCount)
}

func TestBroadcaster_DeliverRemote_CarriesKindOnly(t *testing.T) {
	b := New(nil)

	var received *model.ChangeNotification
	b.Subscribe(model.ProfileChanged, func(n model.ChangeNotification) {
		received = &n
	})

	b.DeliverRemote(model.ProfileChanged)

	require.NotNil(t, received)
	assert.Equal(t, model.ProfileChanged, received.Kind)
	assert.Nil(t, received.Cart)
	assert.Nil(t, received.Profile)
}

func TestBroadcaster_Publish_AnnouncesToSignal(t *testing.T) {
	signal := &recordingSignal{}
	b := New(signal)

	b.Publish(context.Background(), model.ChangeNotification{Kind: model.CartChanged})

	assert.Equal(t, []model.ChangeKind{model.CartChanged}, signal.announced)
}

func TestBroadcaster_Publish_SwallowsSignalFailure(t *testing.T) {
	signal := &recordingSignal{err: errors.New("redis down")}
	b := New(signal)

	var hits int
	b.Subscribe(model.CartChanged, func(model.ChangeNotification) { hits++ })

	// Local delivery must not be affected by a failed announcement.
	b.Publish(context.Background(), model.ChangeNotification{Kind: model.CartChanged})
	assert.Equal(t, 1, hits)
}

func TestBroadcaster_HandlerMayUnsubscribeDuringDispatch(t *testing.T) {
	b := New(nil)

	var unsubscribe func()
	var hits int
	unsubscribe = b.Subscribe(model.CartChanged, func(model.ChangeNotification) {
		hits++
		unsubscribe()
	})

	b.Publish(context.Background(), model.ChangeNotification{Kind: model.CartChanged})
	b.Publish(context.Background(), model.ChangeNotification{Kind: model.CartChanged})

	assert.Equal(t, 1, hits)
}

type recordingSignal struct {
	announced []model.ChangeKind
	err       error
}

func (s *recordingSignal) Announce(_ context.Context, kind model.ChangeKind) error {
	s.announced = append(s.announced, kind)
	return s.err
}
