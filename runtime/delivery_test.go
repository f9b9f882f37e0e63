package runtime

import (
	"context"
	"errors"
	"testing"
)

func TestCompletionSettlesOnce(t *testing.T) {
	c := newCompletion()
	errFirst := errors.New("first")

	c.settle("value", errFirst)
	c.settle("other", nil)

	select {
	case <-c.Done():
	default:
		t.Fatal("Done not closed after settle")
	}

	value, err := c.Result()
	if value != "value" || !errors.Is(err, errFirst) {
		t.Fatalf("Result = (%v, %v), want (value, first)", value, err)
	}
}

func TestCompletionWaitHonorsContext(t *testing.T) {
	c := newCompletion()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := c.Wait(ctx); !errors.Is(err, context.Canceled) {
		t.Fatalf("Wait = %v, want context.Canceled", err)
	}

	c.settle(42, nil)
	value, err := c.Wait(context.Background())
	if err != nil || value != 42 {
		t.Fatalf("Wait = (%v, %v), want (42, nil)", value, err)
	}
}
