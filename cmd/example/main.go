package main

import (
	"bytes"
	"context"
	"fmt"
	"log"
	"sync/atomic"

	"github.com/andrew-d/csmrand"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/hemal-shah/objpool"
	"github.com/hemal-shah/objpool/bufpool"
)

// renderBuffer is the kind of allocation-heavy scratch object the pool
// is meant for: it carries a growable buffer that should be reused
// across renders instead of reallocated.
type renderBuffer struct {
	id     int
	serial int // bumped on every checkout by the activate hook
	buf    bytes.Buffer
}

func main() {
	log.Println("Running object pool examples...")

	log.Println("\n=== Running Basic Example ===")
	example()

	log.Println("\n=== Running Concurrent Workers Example ===")
	exampleConcurrentWorkers()

	log.Println("\n=== Running Buffer Pool Example ===")
	exampleBufferPool()

	log.Println("\nAll examples completed!")
}

// example demonstrates the basic checkout/check-in cycle and pre-warming.
func example() {
	logger, err := zap.NewDevelopment()
	if err != nil {
		log.Fatalf("Failed to create logger: %v", err)
	}

	nextID := 0
	pool, err := objpool.New(
		func() (*renderBuffer, error) {
			nextID++
			return &renderBuffer{id: nextID}, nil
		},
		objpool.WithActivate(func(rb *renderBuffer) error {
			rb.serial++
			return nil
		}),
		objpool.WithReset(func(rb *renderBuffer) error {
			rb.buf.Reset()
			return nil
		}),
		objpool.WithLogger[*renderBuffer](logger),
	)
	if err != nil {
		log.Fatalf("Failed to create pool: %v", err)
	}

	// Pre-warm so the first renders don't pay for construction.
	created, err := pool.Prime(4)
	if err != nil {
		log.Fatalf("Failed to prime pool: %v", err)
	}
	fmt.Printf("✓ Primed pool with %d instances (idle=%d)\n", created, pool.Idle())

	rb, err := pool.Take()
	if err != nil {
		log.Fatalf("Failed to take from pool: %v", err)
	}
	rb.buf.WriteString("hello world")
	fmt.Printf("✓ Rendered %d bytes with buffer #%d (serial=%d)\n", rb.buf.Len(), rb.id, rb.serial)

	if err := pool.Return(rb); err != nil {
		log.Fatalf("Failed to return to pool: %v", err)
	}
	fmt.Printf("✓ Returned buffer #%d (idle=%d)\n", rb.id, pool.Idle())
}

// exampleConcurrentWorkers churns a shared pool from several goroutines,
// rendering random-sized payloads.
func exampleConcurrentWorkers() {
	// The pool may invoke the factory from any goroutine calling Take,
	// so the ID counter must be atomic here.
	var nextID atomic.Int64
	pool, err := objpool.New(
		func() (*renderBuffer, error) {
			return &renderBuffer{id: int(nextID.Add(1))}, nil
		},
		objpool.WithReset(func(rb *renderBuffer) error {
			rb.buf.Reset()
			return nil
		}),
	)
	if err != nil {
		log.Fatalf("Failed to create pool: %v", err)
	}

	group, _ := errgroup.WithContext(context.Background())
	for w := 0; w < 8; w++ {
		group.Go(func() error {
			for i := 0; i < 100; i++ {
				rb, err := pool.Take()
				if err != nil {
					return err
				}
				rb.buf.Write(make([]byte, csmrand.Intn(4096)))
				if err := pool.Return(rb); err != nil {
					return err
				}
			}
			return nil
		})
	}
	if err := group.Wait(); err != nil {
		log.Fatalf("Worker failed: %v", err)
	}
	fmt.Printf("✓ 8 workers completed 800 renders using %d instances\n", pool.Idle())
}

// exampleBufferPool shows the bufpool convenience wrapper.
func exampleBufferPool() {
	pool := bufpool.New()

	buf := pool.Get()
	buf.WriteString("scratch")
	fmt.Printf("✓ Wrote %d bytes\n", buf.Len())
	pool.Put(buf)

	reused := pool.Get()
	fmt.Printf("✓ Reused buffer is reset (len=%d)\n", reused.Len())
}
