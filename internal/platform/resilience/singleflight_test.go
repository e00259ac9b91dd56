package resilience

import (
	"sync"
	"sync/atomic"
	"testing"
	"time"
)

func TestSingleFlight_CollapsesConcurrentCalls(t *testing.T) {
	var g SingleFlight
	var executions atomic.Int32
	var shared atomic.Int32

	const workers = 20
	start := make(chan struct{})
	var wg sync.WaitGroup
	wg.Add(workers)

	for i := 0; i < workers; i++ {
		go func() {
			defer wg.Done()
			<-start
			val, err, wasShared := g.Do("respond:user-1:inv-1", func() (any, error) {
				executions.Add(1)
				time.Sleep(20 * time.Millisecond)
				return "accepted", nil
			})
			if err != nil {
				t.Errorf("singleflight call failed: %v", err)
			}
			if val != "accepted" {
				t.Errorf("unexpected shared value %v", val)
			}
			if wasShared {
				shared.Add(1)
			}
		}()
	}

	close(start)
	wg.Wait()

	if got := executions.Load(); got != 1 {
		t.Fatalf("expected one execution, got %d", got)
	}
	if got := shared.Load(); got != workers-1 {
		t.Fatalf("expected %d shared results, got %d", workers-1, got)
	}
}

func TestSingleFlight_KeyReusableAfterCompletion(t *testing.T) {
	var g SingleFlight
	var executions atomic.Int32

	for i := 0; i < 3; i++ {
		_, err, _ := g.Do("same-key", func() (any, error) {
			executions.Add(1)
			return nil, nil
		})
		if err != nil {
			t.Fatalf("call %d failed: %v", i, err)
		}
	}

	if got := executions.Load(); got != 3 {
		t.Fatalf("expected sequential calls to each execute, got %d", got)
	}
}
