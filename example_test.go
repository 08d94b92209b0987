package pendant_test

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/aretw0/pendant"
	"github.com/aretw0/pendant/pkg/adapters/memory"
	"github.com/aretw0/pendant/pkg/adapters/sim"
	"github.com/aretw0/pendant/pkg/protocol"
)

// ExampleDevice_Run drives the Alert behaviour against a simulated coprocessor. The manual clock
// advances by one tick interval per tick, so the run takes no wall time.
func ExampleDevice_Run() {
	link := sim.New(sim.WithPeerReads(1))
	dev, err := pendant.New(link, pendant.WithClock(memory.NewManualClock(time.Unix(0, 0))))
	if err != nil {
		log.Fatal(err)
	}

	report, err := dev.Run(context.Background(), "alert")
	if err != nil {
		log.Fatal(err)
	}

	fmt.Println(report.Result)
	fmt.Println("peer read:", report.PeerRead)
	for _, f := range link.Sent() {
		fmt.Println(protocol.CommandName(f.Command))
	}
	// Output:
	// finished
	// peer read: true
	// alert
	// start_broadcast
	// stop_broadcast
	// sleep
}

// ExampleDevice_Run_failure shows that a failed behaviour is a report, not an error.
func ExampleDevice_Run_failure() {
	dev, err := pendant.New(sim.New(sim.WithSilence()), pendant.WithClock(memory.NewManualClock(time.Unix(0, 0))))
	if err != nil {
		log.Fatal(err)
	}

	report, err := dev.Run(context.Background(), "alert")
	fmt.Println(err)
	fmt.Println(report.Result)
	fmt.Println(report.Failure)
	// Output:
	// <nil>
	// critical_error
	// alert halted at wake (exhausted_retries)
}
