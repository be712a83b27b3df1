package gateway

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"saranalaya/internal/status"
)

func TestHmac256_Deterministic(t *testing.T) {
	body := []byte(`{"payment_id":"p123","status":"confirmed"}`)
	key := []byte("secret")

	first := Hmac256(body, key)
	second := Hmac256(body, key)

	assert.Equal(t, first, second)
	assert.Len(t, first, 64)
	assert.NotEqual(t, first, Hmac256(body, []byte("other")))
}

func TestVerifyHMAC(t *testing.T) {
	body := []byte(`{"payment_id":"p123","status":"confirmed"}`)
	key := []byte("secret")

	assert.True(t, VerifyHMAC(body, key, Hmac256(body, key)))
	assert.False(t, VerifyHMAC(body, key, "deadbeef"))
	assert.False(t, VerifyHMAC([]byte("tampered"), key, Hmac256(body, key)))
}

func TestHashToken_CompareRoundtrip(t *testing.T) {
	hash, err := HashToken("webhook-token")
	require.NoError(t, err)

	assert.True(t, CompareToken(hash, "webhook-token"))
	assert.False(t, CompareToken(hash, "wrong-token"))
	assert.False(t, CompareToken("not-a-hash", "webhook-token"))
}

func TestDummy_PaymentURL(t *testing.T) {
	d, err := NewDummy(context.Background(), &DummyConfig{
		PublicURL: "https://tickets.example.com",
	})
	require.NoError(t, err)

	url, err := d.PaymentURL(context.Background(), &PaymentRequest{PaymentID: "p123"})
	require.NoError(t, err)
	assert.Equal(t, "https://tickets.example.com/events/payment-details/p123", url)

	_, err = d.PaymentURL(context.Background(), &PaymentRequest{})
	assert.Error(t, err)
}

func TestDummy_VerifyNotification(t *testing.T) {
	body := []byte(`{"payment_id":"p123","status":"confirmed"}`)

	signed, err := NewDummy(context.Background(), &DummyConfig{HMACKey: "secret"})
	require.NoError(t, err)

	assert.True(t, signed.VerifyNotification(body, Hmac256(body, []byte("secret"))))
	assert.False(t, signed.VerifyNotification(body, "deadbeef"))
	assert.False(t, signed.VerifyNotification(body, ""))

	// Without a configured key every notification passes (local dev only).
	unsigned, err := NewDummy(context.Background(), &DummyConfig{})
	require.NoError(t, err)
	assert.True(t, unsigned.VerifyNotification(body, ""))
}

func TestFactory_CreateProvider(t *testing.T) {
	factory := NewFactory()

	provider, err := factory.CreateProvider(context.Background(), ProviderDummy, &DummyConfig{})
	require.NoError(t, err)
	assert.Equal(t, ProviderDummy, provider.Name())

	_, err = factory.CreateProvider(context.Background(), ProviderDummy, "wrong type")
	assert.Error(t, err)

	_, err = factory.CreateProvider(context.Background(), ProviderName("stripe"), nil)
	assert.Error(t, err)
}

func TestRegistry_FirstRegisteredIsPrimary(t *testing.T) {
	registry := NewRegistry(NewFactory())

	err := registry.Register(context.Background(), ProviderDummy, &DummyConfig{})
	require.NoError(t, err)

	primary, err := registry.Primary()
	require.NoError(t, err)
	assert.Equal(t, ProviderDummy, primary.Name())

	_, err = registry.Get(ProviderMollie)
	assert.ErrorIs(t, err, status.ErrProviderNotFound)
}

func TestRegistry_NoPrimaryWithoutRegistrations(t *testing.T) {
	registry := NewRegistry(NewFactory())

	_, err := registry.Primary()
	assert.ErrorIs(t, err, status.ErrNoPrimaryProvider)
}
