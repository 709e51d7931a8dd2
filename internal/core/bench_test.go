package core

import (
	"context"
	"fmt"
	"testing"
)

func benchmarkMovementBroadcast(b *testing.B, recipients int) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	hub := NewHub(nil)
	go hub.Run(ctx)

	grid := Grid{Width: 1000, Height: 1000, Obstacles: map[Position]struct{}{}}

	mover := NewClient("mover")
	hub.RegisterClient(mover)
	mover.Commands <- &Command{Kind: CommandJoin, SpaceID: "bench", UserID: 0, Grid: grid}
	<-mover.Events // ack

	clients := make([]*Client, 0, recipients)
	for i := range recipients {
		c := NewClient(fmt.Sprintf("c%d", i))
		hub.RegisterClient(c)
		c.Commands <- &Command{Kind: CommandJoin, SpaceID: "bench", UserID: int64(i + 1), Grid: grid}
		clients = append(clients, c)
	}

	// Drain events for all but the first recipient to avoid channel backpressure.
	target := clients[0]
	for _, c := range clients[1:] {
		go func(cl *Client) {
			for range cl.Events {
			}
		}(c)
	}
	// Wait for all joins to settle, then flush the join noise from target.
	for len(hub.Occupancy("bench")) != recipients+1 {
	}
	for len(target.Events) > 0 {
		<-target.Events
	}

	b.ReportAllocs()
	b.ResetTimer()

	// Oscillate between the spawn cell and its right neighbor.
	for i := 0; i < b.N; i++ {
		mover.Commands <- &Command{Kind: CommandMove, Target: Position{X: i % 2, Y: 0}}
		<-target.Events
	}
}

func BenchmarkMovementBroadcast_10(b *testing.B)  { benchmarkMovementBroadcast(b, 10) }
func BenchmarkMovementBroadcast_100(b *testing.B) { benchmarkMovementBroadcast(b, 100) }
func BenchmarkMovementBroadcast_500(b *testing.B) { benchmarkMovementBroadcast(b, 500) }
