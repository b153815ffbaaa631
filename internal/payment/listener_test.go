package payment

import (
	"context"
	"fmt"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/relove-market/storefront/internal/config"
)

func hitReturnUrl(t *testing.T, port int, query string) {
	t.Helper()
	returnUrl := fmt.Sprintf("http://127.0.0.1:%d/payment/return?%s", port, query)
	deadline := time.Now().Add(5 * time.Second)
	for time.Now().Before(deadline) {
		resp, err := http.Get(returnUrl)
		if err == nil {
			resp.Body.Close()
			return
		}
		time.Sleep(20 * time.Millisecond)
	}
	t.Fatal("payment return listener never came up")
}

func TestWaitForReturnSuccess(t *testing.T) {
	cfg := config.Payment{ReturnHost: "127.0.0.1", ReturnPort: 18917}
	results := make(chan Result, 1)
	errs := make(chan error, 1)
	go func() {
		result, err := WaitForReturn(context.Background(), cfg)
		results <- result
		errs <- err
	}()

	hitReturnUrl(t, cfg.ReturnPort, "vnp_TxnRef=ORDER-31&vnp_ResponseCode=00")

	select {
	case result := <-results:
		require.NoError(t, <-errs)
		assert.True(t, result.Success)
		assert.Equal(t, "ORDER-31", result.TransactionRef)
		assert.Equal(t, "00", result.ResponseCode)
	case <-time.After(5 * time.Second):
		t.Fatal("listener never reported the return")
	}
}

func TestWaitForReturnGatewayDecline(t *testing.T) {
	cfg := config.Payment{ReturnHost: "127.0.0.1", ReturnPort: 18918}
	results := make(chan Result, 1)
	errs := make(chan error, 1)
	go func() {
		result, err := WaitForReturn(context.Background(), cfg)
		results <- result
		errs <- err
	}()

	hitReturnUrl(t, cfg.ReturnPort, "vnp_TxnRef=ORDER-31&vnp_ResponseCode=24")

	select {
	case result := <-results:
		require.NoError(t, <-errs)
		assert.False(t, result.Success)
		assert.Equal(t, "24", result.ResponseCode)
	case <-time.After(5 * time.Second):
		t.Fatal("listener never reported the return")
	}
}

func TestWaitForReturnCancelled(t *testing.T) {
	cfg := config.Payment{ReturnHost: "127.0.0.1", ReturnPort: 18919}
	c, cancel := context.WithCancel(context.Background())
	errs := make(chan error, 1)
	go func() {
		_, err := WaitForReturn(c, cfg)
		errs <- err
	}()

	time.Sleep(50 * time.Millisecond)
	cancel()

	select {
	case err := <-errs:
		assert.ErrorIs(t, err, context.Canceled)
	case <-time.After(5 * time.Second):
		t.Fatal("listener never observed the cancellation")
	}
}
