package appender_test

import (
	"context"
	"fmt"

	"github.com/dastra/kafkalog/pkg/appender"
)

// Example demonstrates the dry-run mode: the full encode path runs, but
// nothing touches the network.
func Example() {
	cfg := appender.DefaultConfig()
	cfg.Topic = "logs"
	cfg.Partition = 3
	cfg.DryRun = true

	app, err := appender.New(cfg)
	if err != nil {
		fmt.Println("new:", err)
		return
	}
	defer app.Close()

	ctx := context.Background()
	if err := app.Activate(ctx); err != nil {
		fmt.Println("activate:", err)
		return
	}
	if err := app.Append(ctx, []byte("hello")); err != nil {
		fmt.Println("append:", err)
		return
	}

	frames := app.DryRunFrames()
	fmt.Println("frames:", len(frames))
	fmt.Println("frame bytes:", len(frames[0]))
	// Output:
	// frames: 1
	// frame bytes: 30
}
