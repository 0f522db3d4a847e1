package ui

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"

	"github.com/muurk/vectorscan/internal/netprobe"
	"github.com/muurk/vectorscan/internal/subnet"
)

// Printer writes UI components to an output. It also implements
// scan.Observer, printing one line per live host during a sweep. All
// methods are safe for concurrent use.
type Printer struct {
	mu      sync.Mutex
	out     io.Writer
	width   int
	maxHost int
}

// NewPrinter creates a new Printer that writes to the given writer.
// If w is nil, os.Stdout is used.
func NewPrinter(w io.Writer) *Printer {
	if w == nil {
		w = os.Stdout
	}
	return &Printer{
		out:     w,
		width:   GetTerminalWidth(),
		maxHost: 254,
	}
}

// SetWidth overrides the detected terminal width
func (p *Printer) SetWidth(width int) *Printer {
	p.width = width
	return p
}

// SetMaxHost sets the host range shown when a prefix sweep starts
func (p *Printer) SetMaxHost(n int) *Printer {
	p.maxHost = n
	return p
}

// Width returns the terminal width used by this printer
func (p *Printer) Width() int {
	return p.width
}

// Println writes content with a newline
func (p *Printer) Println(content string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	_, _ = fmt.Fprintln(p.out, content)
}

// Newline prints an empty line
func (p *Printer) Newline() {
	p.Println("")
}

// Info prints a plain status line
func (p *Printer) Info(format string, args ...any) {
	p.Println(ProgressLabelStyle.Render(fmt.Sprintf(format, args...)))
}

// Note prints a muted status line
func (p *Printer) Note(format string, args ...any) {
	p.Println(NoteStyle.PaddingLeft(2).Render(fmt.Sprintf(format, args...)))
}

// Divider prints a horizontal rule across the content width
func (p *Printer) Divider() {
	p.Println(RenderHorizontalDivider(p.width, "─"))
}

// PrintHeader prints the run header box
func (p *Printer) PrintHeader(h *Header) {
	p.Println(h.SetWidth(p.width).Render())
	p.Newline()
}

// PrintResult prints a result box
func (p *Printer) PrintResult(r *Result) {
	p.Println(r.SetWidth(p.width).Render())
	p.Newline()
}

// PrintSuccess prints a success result box
func (p *Printer) PrintSuccess(title string, details ...Detail) {
	p.PrintResult(NewSuccessResult(title, details...))
}

// PrintWarning prints a warning result box
func (p *Printer) PrintWarning(title string, details ...Detail) {
	p.PrintResult(NewWarningResult(title, details...))
}

// PrintError prints a failure result box with troubleshooting tips
func (p *Printer) PrintError(title string, err error, troubleshooting []string) {
	p.PrintResult(NewFailureResult(title, err, troubleshooting))
}

// PrefixStarted implements scan.Observer
func (p *Printer) PrefixStarted(prefix subnet.Prefix) {
	p.Info("Scanning remote hosts at %s.(1-%d) on %s, please wait.", prefix.Network, p.maxHost, prefix.Interface)
}

// HostAlive implements scan.Observer
func (p *Printer) HostAlive(res netprobe.Result) {
	p.Println(HostLineStyle.Render(hostLine(res)))
}

// ProbeFailed implements scan.Observer
func (p *Printer) ProbeFailed(res netprobe.Result) {
	p.Println(NoteStyle.PaddingLeft(4).Render(res.Address + " probe failed"))
}

// Matched implements scan.Observer
func (p *Printer) Matched(res netprobe.Result) {
	p.Println(MatchLineStyle.Render(hostLine(res) + "  " + SuccessMarker + " Vector"))
}

func hostLine(res netprobe.Result) string {
	mac := "mac address not found"
	if res.HardwareAddr != nil {
		mac = res.HardwareAddr.String()
	}
	return strings.Join([]string{res.Address, mac}, " ")
}
