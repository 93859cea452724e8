package events

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestNewEnvelope(t *testing.T) {
	e := NewEnvelope(TypeOrderPlaced, OrderPlacedPayload{
		OrderID: 7, SellerID: 1, ProductID: 2, User: "u1", Quantity: 3, Price: 9.5,
	})

	require.NotEmpty(t, e.EventID)
	require.Equal(t, TypeOrderPlaced, e.EventType)
	require.Equal(t, "storefront", e.Producer)
	require.WithinDuration(t, time.Now(), e.OccurredAt, time.Minute)

	var p OrderPlacedPayload
	require.NoError(t, json.Unmarshal(e.Payload, &p))
	require.Equal(t, int64(7), p.OrderID)
	require.Equal(t, "u1", p.User)
}

func TestEnvelopeIDsAreUnique(t *testing.T) {
	a := NewEnvelope(TypeSellerCreated, SellerCreatedPayload{SellerID: 1, Name: "alice"})
	b := NewEnvelope(TypeSellerCreated, SellerCreatedPayload{SellerID: 1, Name: "alice"})
	require.NotEqual(t, a.EventID, b.EventID)
}
