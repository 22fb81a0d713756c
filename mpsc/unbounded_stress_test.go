// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package mpsc_test

import (
	"context"
	"sync"
	"testing"

	"github.com/kelborn-sh/sync2/mpsc"
)

func TestUnboundedStress(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping stress test in -short mode")
	}

	const producers = 32
	const perProducer = 2000

	tx, rx, err := mpsc.Channel[int64](mpsc.Unbounded)
	if err != nil {
		t.Fatalf("Channel: %v", err)
	}

	var wg sync.WaitGroup
	for p := 0; p < producers; p++ {
		sender := tx.Clone()
		wg.Add(1)
		go func(sender mpsc.Sender[int64]) {
			defer wg.Done()
			defer sender.Close()
			for i := 0; i < perProducer; i++ {
				if err := sender.Send(context.Background(), int64(i)); err != nil {
					t.Errorf("Send: %v", err)
					return
				}
			}
		}(sender)
	}
	tx.Close()

	received := 0
	for {
		_, err := rx.Recv(context.Background())
		if err != nil {
			if mpsc.IsClosed(err) {
				break
			}
			t.Fatalf("Recv: %v", err)
		}
		received++
	}
	wg.Wait()

	want := producers * perProducer
	if received != want {
		t.Fatalf("received %d items, want %d", received, want)
	}
}
