package middleware

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mbarros/inquira/pkg/adapters/memory"
	"github.com/mbarros/inquira/pkg/domain"
	"github.com/mbarros/inquira/pkg/ports"
)

var (
	keyA = []byte("0123456789abcdef0123456789abcdef")
	keyB = []byte("fedcba9876543210fedcba9876543210")
)

func sampleRun() *domain.Run {
	return &domain.Run{
		ID:           "r1",
		WorkflowName: "triagem",
		Status:       domain.RunActive,
		Answers: map[string]any{
			"q1": true,
			"q2": "grave",
		},
		Visited: map[string]bool{"q1": true, "q2": true},
	}
}

func TestEncryptionRoundTrip(t *testing.T) {
	ctx := context.Background()
	inner := memory.NewRunStore()
	store := NewEncryptionMiddleware(EncryptionConfig{ActiveKey: keyA})(inner)

	require.NoError(t, store.Save(ctx, sampleRun()))

	loaded, err := store.Load(ctx, "r1")
	require.NoError(t, err)
	assert.Equal(t, true, loaded.Answers["q1"])
	assert.Equal(t, "grave", loaded.Answers["q2"])
	assert.True(t, loaded.Visited["q2"])
}

func TestEncryptionHidesAnswersAtRest(t *testing.T) {
	ctx := context.Background()
	inner := memory.NewRunStore()
	store := NewEncryptionMiddleware(EncryptionConfig{ActiveKey: keyA})(inner)

	require.NoError(t, store.Save(ctx, sampleRun()))

	raw, err := inner.Load(ctx, "r1")
	require.NoError(t, err)
	assert.NotContains(t, raw.Answers, "q1", "plaintext answers must not reach the inner store")
	assert.Contains(t, raw.Answers, envelopeKey)
	assert.Empty(t, raw.Visited)
	assert.Equal(t, domain.RunActive, raw.Status, "status stays readable for monitoring")
}

func TestEncryptionKeyRotation(t *testing.T) {
	ctx := context.Background()
	inner := memory.NewRunStore()

	old := NewEncryptionMiddleware(EncryptionConfig{ActiveKey: keyA})(inner)
	require.NoError(t, old.Save(ctx, sampleRun()))

	rotated := NewEncryptionMiddleware(EncryptionConfig{
		ActiveKey:    keyB,
		FallbackKeys: [][]byte{keyA},
	})(inner)

	loaded, err := rotated.Load(ctx, "r1")
	require.NoError(t, err)
	assert.Equal(t, "grave", loaded.Answers["q2"])
}

func TestEncryptionWrongKey(t *testing.T) {
	ctx := context.Background()
	inner := memory.NewRunStore()

	require.NoError(t, NewEncryptionMiddleware(EncryptionConfig{ActiveKey: keyA})(inner).Save(ctx, sampleRun()))

	_, err := NewEncryptionMiddleware(EncryptionConfig{ActiveKey: keyB})(inner).Load(ctx, "r1")
	assert.Error(t, err)
}

func TestEncryptionRejectsPlainRecord(t *testing.T) {
	ctx := context.Background()
	inner := memory.NewRunStore()
	require.NoError(t, inner.Save(ctx, sampleRun()))

	_, err := NewEncryptionMiddleware(EncryptionConfig{ActiveKey: keyA})(inner).Load(ctx, "r1")
	assert.ErrorContains(t, err, "envelope")
}

func TestEncryptionRequires32ByteKey(t *testing.T) {
	assert.Panics(t, func() {
		NewEncryptionMiddleware(EncryptionConfig{ActiveKey: []byte("short")})
	})
}

func TestEncryptedRunStoreContract(t *testing.T) {
	store := NewEncryptionMiddleware(EncryptionConfig{ActiveKey: keyA})(memory.NewRunStore())
	ports.RunRunStoreContract(t, store)
}
