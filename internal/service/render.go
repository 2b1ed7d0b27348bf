package service

import (
	"encoding/json"
	"fmt"
	"io"
	"text/tabwriter"

	humanize "github.com/dustin/go-humanize"
	"github.com/rs/zerolog"

	"github.com/dotX12/subnetcalc/internal/domain"
)

// RenderService formats planner results as tables or JSON
type RenderService struct {
	logger zerolog.Logger
	out    io.Writer
	asJSON bool
}

// NewRenderService creates a new render service writing to out
func NewRenderService(logger zerolog.Logger, out io.Writer, asJSON bool) *RenderService {
	return &RenderService{
		logger: logger,
		out:    out,
		asJSON: asJSON,
	}
}

// Subnets renders an equal-subnetting result
func (s *RenderService) Subnets(parent domain.Network, subnets []domain.Network) error {
	if s.asJSON {
		return s.writeJSON(struct {
			Parent  domain.Network   `json:"parent"`
			Subnets []domain.Network `json:"subnets"`
		}{Parent: parent, Subnets: subnets})
	}

	fmt.Fprintf(s.out, "Parent network: %s (%s addresses)\n\n", parent, humanize.Comma(int64(parent.Size())))

	w := tabwriter.NewWriter(s.out, 0, 0, 3, ' ', 0)
	fmt.Fprintln(w, "#\tNETWORK\tMASK\tBROADCAST\tFIRST HOST\tLAST HOST\tUSABLE")
	for i, n := range subnets {
		hr := n.HostRange()
		fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s\t%s\t%s\n",
			i+1, n, n.Prefix.MaskAddress(), hr.Broadcast, hr.FirstUsable, hr.LastUsable,
			humanize.Comma(int64(hr.UsableHosts)))
	}

	return w.Flush()
}

// Allocation renders a VLSM result in original request order followed by a
// spare-capacity summary
func (s *RenderService) Allocation(alloc *Allocation) error {
	if s.asJSON {
		return s.writeJSON(alloc)
	}

	fmt.Fprintf(s.out, "Parent network: %s (%s addresses)\n\n", alloc.Parent, humanize.Comma(int64(alloc.Parent.Size())))

	w := tabwriter.NewWriter(s.out, 0, 0, 3, ' ', 0)
	fmt.Fprintln(w, "REQ\tHOSTS\tNETWORK\tMASK\tFIRST HOST\tLAST HOST\tUSABLE")
	for _, sub := range alloc.Subnets {
		hr := sub.Network.HostRange()
		fmt.Fprintf(w, "%d\t%d\t%s\t%s\t%s\t%s\t%s\n",
			sub.RequestIndex+1, sub.RequestedHosts, sub.Network, sub.Network.Prefix.MaskAddress(),
			hr.FirstUsable, hr.LastUsable, humanize.Comma(int64(hr.UsableHosts)))
	}
	if err := w.Flush(); err != nil {
		return err
	}

	fmt.Fprintf(s.out, "\nSpare capacity: %s addresses", humanize.Comma(int64(alloc.SpareAddresses())))
	if len(alloc.Spare) > 0 {
		fmt.Fprint(s.out, " in")
		for _, n := range alloc.Spare {
			fmt.Fprintf(s.out, " %s", n)
		}
	}
	fmt.Fprintln(s.out)

	return nil
}

// Summary renders a route-summarization result
func (s *RenderService) Summary(input, summarized []domain.Network) error {
	if s.asJSON {
		return s.writeJSON(struct {
			Input      []domain.Network `json:"input"`
			Summarized []domain.Network `json:"summarized"`
		}{Input: input, Summarized: summarized})
	}

	fmt.Fprintf(s.out, "Summarized %d route(s) into %d:\n\n", len(input), len(summarized))

	w := tabwriter.NewWriter(s.out, 0, 0, 3, ' ', 0)
	fmt.Fprintln(w, "NETWORK\tMASK\tADDRESSES")
	for _, n := range summarized {
		fmt.Fprintf(w, "%s\t%s\t%s\n", n, n.Prefix.MaskAddress(), humanize.Comma(int64(n.Size())))
	}

	return w.Flush()
}

// Span renders a single covering supernet
func (s *RenderService) Span(input []domain.Network, span domain.Network) error {
	if s.asJSON {
		return s.writeJSON(struct {
			Input    []domain.Network `json:"input"`
			Supernet domain.Network   `json:"supernet"`
		}{Input: input, Supernet: span})
	}

	hr := span.HostRange()
	fmt.Fprintf(s.out, "Covering supernet for %d network(s):\n\n", len(input))

	w := tabwriter.NewWriter(s.out, 0, 0, 3, ' ', 0)
	fmt.Fprintf(w, "Supernet:\t%s\n", span)
	fmt.Fprintf(w, "Mask:\t%s\n", span.Prefix.MaskAddress())
	fmt.Fprintf(w, "Broadcast:\t%s\n", hr.Broadcast)
	fmt.Fprintf(w, "Addresses:\t%s\n", humanize.Comma(int64(span.Size())))

	return w.Flush()
}

// Analysis renders a full single-address report
func (s *RenderService) Analysis(a domain.Analysis) error {
	if s.asJSON {
		return s.writeJSON(a)
	}

	yesNo := func(b bool) string {
		if b {
			return "Yes"
		}
		return "No"
	}

	w := tabwriter.NewWriter(s.out, 0, 0, 3, ' ', 0)
	fmt.Fprintf(w, "Address:\t%s\n", a.Address)
	fmt.Fprintf(w, "Prefix length:\t/%d\n", a.PrefixLength)
	fmt.Fprintf(w, "Subnet mask:\t%s\n", a.SubnetMask)
	fmt.Fprintf(w, "Wildcard mask:\t%s\n", a.WildcardMask)
	fmt.Fprintf(w, "Network:\t%s\n", a.NetworkAddress)
	fmt.Fprintf(w, "Broadcast:\t%s\n", a.BroadcastAddress)
	fmt.Fprintf(w, "First host:\t%s\n", a.FirstHost)
	fmt.Fprintf(w, "Last host:\t%s\n", a.LastHost)
	fmt.Fprintf(w, "Total addresses:\t%s\n", humanize.Comma(int64(a.TotalAddresses)))
	fmt.Fprintf(w, "Usable hosts:\t%s\n", humanize.Comma(int64(a.UsableHosts)))
	fmt.Fprintf(w, "Class:\t%s\n", a.Class)
	fmt.Fprintf(w, "Private:\t%s\n", yesNo(a.Private))
	fmt.Fprintf(w, "Loopback:\t%s\n", yesNo(a.Loopback))
	fmt.Fprintf(w, "Link-local:\t%s\n", yesNo(a.LinkLocal))
	fmt.Fprintf(w, "Multicast:\t%s\n", yesNo(a.Multicast))
	fmt.Fprintf(w, "Binary:\t%s\n", a.Binary)
	fmt.Fprintf(w, "Hex:\t0x%s\n", a.Hex)

	return w.Flush()
}

func (s *RenderService) writeJSON(v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode result: %w", err)
	}

	_, err = fmt.Fprintln(s.out, string(data))
	return err
}
