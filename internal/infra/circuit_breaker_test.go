package infra

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var errTerminal = errors.New("terminal fora do ar")

func falha() error   { return errTerminal }
func sucesso() error { return nil }

func TestCircuitBreakerAbreAposFalhas(t *testing.T) {
	cb := NewCircuitBreaker(CircuitBreakerConfig{
		FailureThreshold: 3,
		SuccessThreshold: 1,
		OpenTimeout:      time.Minute,
	})

	for i := 0; i < 3; i++ {
		assert.ErrorIs(t, cb.Execute(falha), errTerminal)
	}
	assert.Equal(t, CBOpen, cb.State())

	// open circuit fast-fails without calling fn
	chamado := false
	err := cb.Execute(func() error { chamado = true; return nil })
	assert.ErrorIs(t, err, ErrCircuitOpen)
	assert.False(t, chamado)
}

func TestCircuitBreakerFechaNoSucesso(t *testing.T) {
	cb := NewCircuitBreaker(CircuitBreakerConfig{
		FailureThreshold: 2,
		SuccessThreshold: 2,
		OpenTimeout:      10 * time.Millisecond,
	})

	require.Error(t, cb.Execute(falha))
	require.Error(t, cb.Execute(falha))
	require.Equal(t, CBOpen, cb.State())

	time.Sleep(15 * time.Millisecond)
	assert.Equal(t, CBHalfOpen, cb.State())

	require.NoError(t, cb.Execute(sucesso))
	assert.Equal(t, CBHalfOpen, cb.State())
	require.NoError(t, cb.Execute(sucesso))
	assert.Equal(t, CBClosed, cb.State())
}

func TestCircuitBreakerProbeFalhaReabre(t *testing.T) {
	cb := NewCircuitBreaker(CircuitBreakerConfig{
		FailureThreshold: 1,
		SuccessThreshold: 1,
		OpenTimeout:      10 * time.Millisecond,
	})

	require.Error(t, cb.Execute(falha))
	require.Equal(t, CBOpen, cb.State())

	time.Sleep(15 * time.Millisecond)
	require.Equal(t, CBHalfOpen, cb.State())

	require.Error(t, cb.Execute(falha))
	assert.Equal(t, CBOpen, cb.State())
}

func TestCircuitBreakerSucessoZeraContagem(t *testing.T) {
	cb := NewCircuitBreaker(CircuitBreakerConfig{
		FailureThreshold: 3,
		SuccessThreshold: 1,
		OpenTimeout:      time.Minute,
	})

	require.Error(t, cb.Execute(falha))
	require.Error(t, cb.Execute(falha))
	require.NoError(t, cb.Execute(sucesso))
	require.Error(t, cb.Execute(falha))
	require.Error(t, cb.Execute(falha))
	// streak was broken, still below the threshold
	assert.Equal(t, CBClosed, cb.State())
}
