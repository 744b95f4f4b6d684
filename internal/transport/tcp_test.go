package transport

import (
	"bytes"
	"context"
	"io"
	"net"
	"testing"
	"time"

	"github.com/segmentio/kafka-go"

	"github.com/dastra/kafkalog/internal/ports"
	"github.com/dastra/kafkalog/internal/protocol"
	"github.com/dastra/kafkalog/pkg/log"
)

func TestTCP_ProduceWritesWireFrame(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("listen: %v", err)
	}
	defer ln.Close()

	received := make(chan []byte, 1)
	go func() {
		c, err := ln.Accept()
		if err != nil {
			return
		}
		defer c.Close()
		c.SetReadDeadline(time.Now().Add(5 * time.Second))
		data, _ := io.ReadAll(c)
		received <- data
	}()

	addr := ln.Addr().(*net.TCPAddr)
	target := ports.Target{Host: "127.0.0.1", Port: addr.Port, Topic: "logs", Partition: 3}

	tr := NewTCP(log.NewNoopLogger())
	conn, err := tr.Open(context.Background(), target)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}

	frame, err := protocol.NewFrame([]byte("hello"), "logs", 3)
	if err != nil {
		t.Fatalf("NewFrame: %v", err)
	}
	if err := conn.Produce(context.Background(), frame); err != nil {
		t.Fatalf("Produce: %v", err)
	}
	if err := conn.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	select {
	case data := <-received:
		if !bytes.Equal(data, frame.Wire) {
			t.Errorf("listener received % x, want % x", data, frame.Wire)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for frame")
	}
}

func TestTCP_OpenRefused(t *testing.T) {
	// Grab a free port and close the listener so the dial is refused.
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("listen: %v", err)
	}
	addr := ln.Addr().(*net.TCPAddr)
	ln.Close()

	tr := NewTCP(log.NewNoopLogger())
	target := ports.Target{Host: "127.0.0.1", Port: addr.Port, Topic: "logs", Partition: 0}

	if _, err := tr.Open(context.Background(), target); err == nil {
		t.Fatal("Open succeeded against closed port, want error")
	}
}

func TestDryRun_RecordsFramesWithoutIO(t *testing.T) {
	tr := NewDryRun()
	target := ports.Target{Host: "localhost", Port: 9092, Topic: "default", Partition: -1}

	conn, err := tr.Open(context.Background(), target)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}

	frame, err := protocol.NewFrame([]byte("hello"), "default", -1)
	if err != nil {
		t.Fatalf("NewFrame: %v", err)
	}
	if err := conn.Produce(context.Background(), frame); err != nil {
		t.Fatalf("Produce: %v", err)
	}

	frames := tr.Frames()
	if len(frames) != 1 || !bytes.Equal(frames[0], frame.Wire) {
		t.Errorf("recorded frames = %d, want the hello wire frame", len(frames))
	}

	dc := conn.(*DryRunConn)
	if dc.Closed() {
		t.Error("connection reports closed before Close")
	}
	if err := conn.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}
	if !dc.Closed() {
		t.Error("connection does not report closed after Close")
	}
}

func TestBalancerFor(t *testing.T) {
	b := balancerFor(3)
	if got := b.Balance(kafka.Message{}, 0, 1, 2, 3, 4); got != 3 {
		t.Errorf("pinned balancer chose partition %d, want 3", got)
	}

	if _, ok := balancerFor(-1).(fixedBalancer); ok {
		t.Error("sentinel partition must not pin a partition")
	}
}
