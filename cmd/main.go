package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/hashicorp/go-multierror"
	"github.com/spf13/cobra"

	"github.com/dotX12/subnetcalc/internal/domain"
	"github.com/dotX12/subnetcalc/internal/logger"
	"github.com/dotX12/subnetcalc/internal/service"
)

var (
	logLevel   string
	jsonOutput bool

	subnetCount int
	newPrefix   int
	hostsPer    int

	vlsmHosts []int

	spanOnly bool

	version = "dev" // set at build time via -ldflags
)

func main() {
	// Setup logger
	log := logger.New()
	logger.SetGlobalLogger(log)

	rootCmd := &cobra.Command{
		Use:     "subnetcalc",
		Short:   "IPv4 subnetting, VLSM and route-summarization calculator",
		Long:    `Calculator for IPv4 address analysis, equal-size subnetting, variable-length subnet mask (VLSM) allocation and route summarization.`,
		Version: version,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			// Update logger level if specified
			if logLevel != "" {
				log = logger.NewWithLevel(logLevel)
				logger.SetGlobalLogger(log)
			}
		},
		SilenceUsage: true,
	}

	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "info", "Log level (trace, debug, info, warn, error)")
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "Output results as JSON")

	analyzeCmd := &cobra.Command{
		Use:   "analyze <address[/prefix]>",
		Short: "Analyze a single IPv4 address",
		Long:  `Shows mask, network and broadcast addresses, usable host range, classful designation, special-use flags and binary/hex forms. A bare address is treated as a /32.`,
		Args:  cobra.ExactArgs(1),
		RunE:  runAnalyze,
	}

	subnetCmd := &cobra.Command{
		Use:   "subnet <network/prefix>",
		Short: "Divide a network into equal-size subnets",
		Long:  `Divides the parent network by subnet count (rounded up to a power of two), by target prefix length, or by required hosts per subnet.`,
		Args:  cobra.ExactArgs(1),
		RunE:  runSubnet,
	}
	subnetCmd.Flags().IntVarP(&subnetCount, "subnets", "s", 0, "Number of subnets needed")
	subnetCmd.Flags().IntVarP(&newPrefix, "new-prefix", "p", 0, "Target prefix length for each subnet")
	subnetCmd.Flags().IntVarP(&hostsPer, "hosts", "H", 0, "Usable hosts needed per subnet")
	subnetCmd.MarkFlagsOneRequired("subnets", "new-prefix", "hosts")
	subnetCmd.MarkFlagsMutuallyExclusive("subnets", "new-prefix", "hosts")

	vlsmCmd := &cobra.Command{
		Use:   "vlsm <network/prefix>",
		Short: "Allocate variably-sized subnets for a list of host requirements",
		Long:  `Assigns the smallest adequate subnet to each host-count requirement using largest-first packing. Results are reported in the order the requirements were given, followed by the spare capacity of the parent.`,
		Args:  cobra.ExactArgs(1),
		RunE:  runVLSM,
	}
	vlsmCmd.Flags().IntSliceVarP(&vlsmHosts, "hosts", "H", []int{}, "Required host counts, e.g. --hosts 100,50,10")
	vlsmCmd.MarkFlagRequired("hosts")

	summarizeCmd := &cobra.Command{
		Use:   "summarize <network/prefix>...",
		Short: "Merge networks into the minimal covering route set",
		Long:  `Merges bit-aligned buddy blocks until no merge remains possible. With --span, returns instead the single smallest supernet covering all inputs.`,
		Args:  cobra.MinimumNArgs(1),
		RunE:  runSummarize,
	}
	summarizeCmd.Flags().BoolVar(&spanOnly, "span", false, "Compute the single covering supernet instead of merging buddies")

	rootCmd.AddCommand(analyzeCmd, subnetCmd, vlsmCmd, summarizeCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	log := logger.Global()

	input := args[0]

	var (
		addr   domain.Address
		prefix domain.Prefix
		err    error
	)
	if strings.Contains(input, "/") {
		addrPart, prefixPart, _ := strings.Cut(input, "/")
		if addr, err = domain.ParseAddress(addrPart); err != nil {
			return err
		}
		if prefix, err = domain.ParsePrefix(prefixPart); err != nil {
			return err
		}
	} else {
		if addr, err = domain.ParseAddress(input); err != nil {
			return err
		}
		prefix = 32
	}

	render := service.NewRenderService(log.Logger, os.Stdout, jsonOutput)
	return render.Analysis(domain.Analyze(addr, prefix))
}

func runSubnet(cmd *cobra.Command, args []string) error {
	log := logger.Global()

	parent, err := parseParent(args[0])
	if err != nil {
		return err
	}

	planner := service.NewPlannerService(log.Logger)

	var subnets []domain.Network
	switch {
	case cmd.Flags().Changed("subnets"):
		subnets, err = planner.DivideByCount(parent, subnetCount)
	case cmd.Flags().Changed("new-prefix"):
		subnets, err = planner.DivideByPrefix(parent, newPrefix)
	default:
		subnets, err = planner.DivideByHosts(parent, hostsPer)
	}
	if err != nil {
		return err
	}

	render := service.NewRenderService(log.Logger, os.Stdout, jsonOutput)
	return render.Subnets(parent, subnets)
}

func runVLSM(cmd *cobra.Command, args []string) error {
	log := logger.Global()

	parent, err := parseParent(args[0])
	if err != nil {
		return err
	}

	allocator := service.NewVLSMService(log.Logger)
	allocation, err := allocator.Allocate(parent, vlsmHosts)
	if err != nil {
		return err
	}

	render := service.NewRenderService(log.Logger, os.Stdout, jsonOutput)
	return render.Allocation(allocation)
}

func runSummarize(cmd *cobra.Command, args []string) error {
	log := logger.Global()

	var merr *multierror.Error
	networks := make([]domain.Network, 0, len(args))
	for _, arg := range args {
		network, err := domain.ParseCIDR(arg)
		if err != nil {
			merr = multierror.Append(merr, err)
			continue
		}
		networks = append(networks, network)
	}
	if err := merr.ErrorOrNil(); err != nil {
		return err
	}

	aggregator := service.NewAggregatorService(log.Logger)
	render := service.NewRenderService(log.Logger, os.Stdout, jsonOutput)

	if spanOnly {
		span, err := aggregator.Span(networks)
		if err != nil {
			return err
		}
		return render.Span(networks, span)
	}

	return render.Summary(networks, aggregator.Summarize(networks))
}

// parseParent parses a CIDR block, masking off any host bits and warning
// about what was dropped so normalization is never silent
func parseParent(s string) (domain.Network, error) {
	network, dropped, err := domain.ParseCIDRNormalize(s)
	if err != nil {
		return domain.Network{}, err
	}

	if dropped != 0 {
		logger.Global().Warn().
			Str("input", s).
			Stringer("network", network).
			Stringer("dropped_host_bits", dropped).
			Msg("Input address had host bits set; using the network address")
	}

	return network, nil
}
