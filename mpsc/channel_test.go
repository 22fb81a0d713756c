// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package mpsc_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/kelborn-sh/sync2/mpsc"
)

type transportCase struct {
	name     string
	capacity int
}

func transports() []transportCase {
	return []transportCase{
		{"unbounded", mpsc.Unbounded},
		{"rendezvous", 0},
		{"bounded-1", 1},
		{"bounded-16", 16},
	}
}

func TestChannelInvalidCapacity(t *testing.T) {
	if _, _, err := mpsc.Channel[int](-2); !errors.Is(err, mpsc.ErrInvalidCapacity) {
		t.Fatalf("Channel(-2): got %v, want ErrInvalidCapacity", err)
	}
}

func TestChannelFIFOPerProducer(t *testing.T) {
	for _, tc := range transports() {
		t.Run(tc.name, func(t *testing.T) {
			tx, rx, err := mpsc.Channel[int](tc.capacity)
			if err != nil {
				t.Fatalf("Channel: %v", err)
			}
			defer tx.Close()

			done := make(chan struct{})
			go func() {
				defer close(done)
				for i := 0; i < 5; i++ {
					if err := tx.Send(context.Background(), i); err != nil {
						t.Errorf("Send(%d): %v", i, err)
						return
					}
				}
			}()

			for i := 0; i < 5; i++ {
				v, err := rx.Recv(context.Background())
				if err != nil {
					t.Fatalf("Recv(%d): %v", i, err)
				}
				if v != i {
					t.Fatalf("Recv(%d): got %d, want %d", i, v, i)
				}
			}
			<-done
		})
	}
}

func TestChannelMultipleProducersDeliverEverything(t *testing.T) {
	for _, tc := range transports() {
		t.Run(tc.name, func(t *testing.T) {
			const producers = 8
			const perProducer = 50

			tx, rx, err := mpsc.Channel[int](tc.capacity)
			if err != nil {
				t.Fatalf("Channel: %v", err)
			}

			var wg sync.WaitGroup
			for p := 0; p < producers; p++ {
				sender := tx.Clone()
				wg.Add(1)
				go func(sender mpsc.Sender[int]) {
					defer wg.Done()
					defer sender.Close()
					for i := 0; i < perProducer; i++ {
						if err := sender.Send(context.Background(), i); err != nil {
							t.Errorf("Send: %v", err)
							return
						}
					}
				}(sender)
			}
			tx.Close()

			count := 0
			for {
				_, err := rx.Recv(context.Background())
				if err != nil {
					if mpsc.IsClosed(err) {
						break
					}
					t.Fatalf("Recv: %v", err)
				}
				count++
			}
			wg.Wait()

			want := producers * perProducer
			if count != want {
				t.Fatalf("received %d items, want %d", count, want)
			}
		})
	}
}

func TestChannelReceiverCloseRejectsSend(t *testing.T) {
	for _, tc := range transports() {
		t.Run(tc.name, func(t *testing.T) {
			tx, rx, err := mpsc.Channel[int](tc.capacity)
			if err != nil {
				t.Fatalf("Channel: %v", err)
			}
			rx.Close()

			if err := tx.Send(context.Background(), 1); !mpsc.IsClosed(err) {
				t.Fatalf("Send after receiver Close: got %v, want ErrClosed", err)
			}
		})
	}
}

func TestChannelSenderCloseDrainsThenCloses(t *testing.T) {
	for _, tc := range transports() {
		t.Run(tc.name, func(t *testing.T) {
			tx, rx, err := mpsc.Channel[int](tc.capacity)
			if err != nil {
				t.Fatalf("Channel: %v", err)
			}

			if tc.capacity != 0 { // rendezvous has no buffering to drain ahead of Close
				if err := tx.Send(context.Background(), 42); err != nil {
					t.Fatalf("Send: %v", err)
				}
			}
			tx.Close()

			if tc.capacity != 0 {
				v, err := rx.Recv(context.Background())
				if err != nil {
					t.Fatalf("Recv: %v", err)
				}
				if v != 42 {
					t.Fatalf("Recv: got %d, want 42", v)
				}
			}

			if _, err := rx.Recv(context.Background()); !mpsc.IsClosed(err) {
				t.Fatalf("Recv after drain: got %v, want ErrClosed", err)
			}
		})
	}
}

func TestChannelTrySendWouldBlock(t *testing.T) {
	tx, _, err := mpsc.Channel[int](1)
	if err != nil {
		t.Fatalf("Channel: %v", err)
	}
	if err := tx.TrySend(1); err != nil {
		t.Fatalf("TrySend(1): %v", err)
	}
	if err := tx.TrySend(2); !mpsc.IsWouldBlock(err) {
		t.Fatalf("TrySend(2) on full bounded channel: got %v, want ErrWouldBlock", err)
	}
}

func TestChannelTryRecvWouldBlock(t *testing.T) {
	_, rx, err := mpsc.Channel[int](mpsc.Unbounded)
	if err != nil {
		t.Fatalf("Channel: %v", err)
	}
	if _, err := rx.TryRecv(); !mpsc.IsWouldBlock(err) {
		t.Fatalf("TryRecv on empty channel: got %v, want ErrWouldBlock", err)
	}
}

func TestRendezvousSendBlocksUntilReceived(t *testing.T) {
	tx, rx, err := mpsc.Channel[int](0)
	if err != nil {
		t.Fatalf("Channel: %v", err)
	}
	defer tx.Close()

	sent := make(chan struct{})
	go func() {
		_ = tx.Send(context.Background(), 7)
		close(sent)
	}()

	select {
	case <-sent:
		t.Fatal("rendezvous Send returned before Recv")
	case <-time.After(20 * time.Millisecond):
	}

	v, err := rx.Recv(context.Background())
	if err != nil {
		t.Fatalf("Recv: %v", err)
	}
	if v != 7 {
		t.Fatalf("Recv: got %d, want 7", v)
	}

	select {
	case <-sent:
	case <-time.After(time.Second):
		t.Fatal("rendezvous Send never returned after Recv")
	}
}

func TestBoundedSendBlocksWhenFull(t *testing.T) {
	tx, rx, err := mpsc.Channel[int](1)
	if err != nil {
		t.Fatalf("Channel: %v", err)
	}
	defer tx.Close()

	if err := tx.Send(context.Background(), 1); err != nil {
		t.Fatalf("Send(1): %v", err)
	}

	secondSent := make(chan struct{})
	go func() {
		_ = tx.Send(context.Background(), 2)
		close(secondSent)
	}()

	select {
	case <-secondSent:
		t.Fatal("Send(2) returned while the bounded queue was full")
	case <-time.After(20 * time.Millisecond):
	}

	if _, err := rx.Recv(context.Background()); err != nil {
		t.Fatalf("Recv: %v", err)
	}

	select {
	case <-secondSent:
	case <-time.After(time.Second):
		t.Fatal("Send(2) never returned after freeing a slot")
	}
}

func TestChannelSendContextCanceled(t *testing.T) {
	tx, _, err := mpsc.Channel[int](0)
	if err != nil {
		t.Fatalf("Channel: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Millisecond)
	defer cancel()

	if err := tx.Send(ctx, 1); !mpsc.IsTimeout(err) {
		t.Fatalf("Send with no receiver: got %v, want a timeout error", err)
	}
}

func TestChannelRecvContextCanceled(t *testing.T) {
	_, rx, err := mpsc.Channel[int](mpsc.Unbounded)
	if err != nil {
		t.Fatalf("Channel: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Millisecond)
	defer cancel()

	if _, err := rx.Recv(ctx); !mpsc.IsTimeout(err) {
		t.Fatalf("Recv with no sender: got %v, want a timeout error", err)
	}
}

func TestChannelDrainStopsOnClose(t *testing.T) {
	tx, rx, err := mpsc.Channel[int](mpsc.Unbounded)
	if err != nil {
		t.Fatalf("Channel: %v", err)
	}

	for i := 0; i < 3; i++ {
		if err := tx.Send(context.Background(), i); err != nil {
			t.Fatalf("Send(%d): %v", i, err)
		}
	}
	tx.Close()

	var got []int
	for v := range rx.Drain() {
		got = append(got, v)
	}

	if len(got) != 3 {
		t.Fatalf("Drain: got %d items, want 3", len(got))
	}
	for i, v := range got {
		if v != i {
			t.Fatalf("Drain[%d]: got %d, want %d", i, v, i)
		}
	}
}

func TestSenderReceiverBlocks(t *testing.T) {
	cases := []struct {
		name       string
		capacity   int
		sendBlocks mpsc.Blocking
		recvBlocks mpsc.Blocking
	}{
		{"unbounded", mpsc.Unbounded, mpsc.BlockingNever, mpsc.BlockingSometimes},
		{"bounded", 4, mpsc.BlockingSometimes, mpsc.BlockingSometimes},
		{"rendezvous", 0, mpsc.BlockingAlways, mpsc.BlockingAlways},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			tx, rx, err := mpsc.Channel[int](tc.capacity)
			if err != nil {
				t.Fatalf("Channel: %v", err)
			}
			defer tx.Close()

			if got := tx.Blocks(); got != tc.sendBlocks {
				t.Fatalf("Sender.Blocks(): got %v, want %v", got, tc.sendBlocks)
			}
			if got := rx.Blocks(); got != tc.recvBlocks {
				t.Fatalf("Receiver.Blocks(): got %v, want %v", got, tc.recvBlocks)
			}
		})
	}
}

func TestTrySendContextSucceedsWithinDeadline(t *testing.T) {
	tx, rx, err := mpsc.Channel[int](1)
	if err != nil {
		t.Fatalf("Channel: %v", err)
	}
	defer tx.Close()

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()

	if err := tx.TrySendContext(ctx, 1); err != nil {
		t.Fatalf("TrySendContext: %v", err)
	}
	v, err := rx.TryRecvContext(ctx)
	if err != nil {
		t.Fatalf("TryRecvContext: %v", err)
	}
	if v != 1 {
		t.Fatalf("TryRecvContext: got %d, want 1", v)
	}
}

func TestTrySendContextTimesOutWhenFull(t *testing.T) {
	tx, _, err := mpsc.Channel[int](1)
	if err != nil {
		t.Fatalf("Channel: %v", err)
	}
	defer tx.Close()

	if err := tx.TrySend(1); err != nil {
		t.Fatalf("TrySend: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Millisecond)
	defer cancel()

	if err := tx.TrySendContext(ctx, 2); !mpsc.IsTimeout(err) {
		t.Fatalf("TrySendContext on full bounded channel: got %v, want a timeout error", err)
	}
}

func TestOptionsBuilder(t *testing.T) {
	tx, rx, err := mpsc.Build[int](mpsc.New().WithCapacity(4))
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	defer tx.Close()

	if err := tx.Send(context.Background(), 1); err != nil {
		t.Fatalf("Send: %v", err)
	}
	v, err := rx.Recv(context.Background())
	if err != nil {
		t.Fatalf("Recv: %v", err)
	}
	if v != 1 {
		t.Fatalf("Recv: got %d, want 1", v)
	}
}
