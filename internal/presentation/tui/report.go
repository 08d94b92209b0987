package tui

import (
	"fmt"
	"strings"

	"github.com/aretw0/pendant/pkg/domain"
	"github.com/aretw0/pendant/pkg/protocol"
)

// PrintReport renders a run report.
func (p *Printer) PrintReport(r *domain.Report) {
	status := p.strong("FINISHED", "#22c55e")
	if !r.Succeeded() {
		status = p.strong(strings.ToUpper(r.Result.String()), "#ef4444")
	}

	fmt.Fprintln(p.out, p.rule())
	fmt.Fprintf(p.out, "%s  %s\n", status, r.Behaviour)
	fmt.Fprintf(p.out, "run       %s\n", r.ID)
	if r.Device != "" {
		fmt.Fprintf(p.out, "device    %s\n", r.Device)
	}
	fmt.Fprintf(p.out, "ticks     %d\n", r.Ticks)
	fmt.Fprintf(p.out, "duration  %s\n", r.Duration)
	fmt.Fprintf(p.out, "peer read %t\n", r.PeerRead)
	fmt.Fprintf(p.out, "steps     %s\n", strings.Join(r.Visited, " → "))
	if r.Failure != nil {
		fmt.Fprintf(p.out, "failure   %s\n", p.style(r.Failure.Error(), "#f97316"))
	}
	fmt.Fprintln(p.out, p.rule())
}

// PrintFrame renders an encoded frame as hex with its decoded fields.
func (p *Printer) PrintFrame(raw []byte) {
	fmt.Fprintf(p.out, "% X\n", raw)

	f, err := protocol.Decode(raw)
	if err != nil {
		fmt.Fprintf(p.out, "%s\n", p.style(err.Error(), "#ef4444"))
		return
	}
	direction := "host → coprocessor"
	if f.Magic == protocol.MagicAwaiting {
		direction = "coprocessor → host"
	}
	name := protocol.CommandName(f.Command)
	if name == "" {
		name = "unknown"
	}
	fmt.Fprintf(p.out, "%s  %s (0x%02X)  len=%d  checksum=0x%02X\n",
		p.style(direction, "#818cf8"), name, f.Command, len(f.Payload), raw[len(raw)-1])
}
