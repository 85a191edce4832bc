package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"sort"
	"text/tabwriter"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"go.fd.io/govpp"

	"github.com/veesix-networks/vpptest/internal/topology"
	"github.com/veesix-networks/vpptest/pkg/config"
	"github.com/veesix-networks/vpptest/pkg/ifmgr"
	"github.com/veesix-networks/vpptest/pkg/logger"
	"github.com/veesix-networks/vpptest/pkg/southbound/vpp"
	"github.com/veesix-networks/vpptest/pkg/version"
	"github.com/veesix-networks/vpptest/pkg/vppif"
)

func main() {
	configPath := flag.String("config", "harness.yaml", "Path to harness configuration file")
	showMetrics := flag.Bool("metrics", false, "Print API request counters on exit")
	showVersion := flag.Bool("version", false, "Print version and exit")
	flag.Parse()

	if *showVersion {
		fmt.Println(version.Full())
		return
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	components := make(map[string]logger.LogLevel, len(cfg.Logging.Components))
	for name, level := range cfg.Logging.Components {
		components[name] = logger.LogLevel(level)
	}
	logger.Configure(cfg.Logging.Format, logger.LogLevel(cfg.Logging.Level), components)

	runID := uuid.New().String()
	mainLog := logger.Get(logger.Harness).With("run_id", runID)
	mainLog.Info("Starting interface probe", "version", version.Version, "config", *configPath, "api_socket", cfg.Dataplane.APISocket)

	conn, err := govpp.Connect(cfg.Dataplane.APISocket)
	if err != nil {
		log.Fatalf("Failed to connect to VPP: %v", err)
	}
	defer conn.Disconnect()

	registry := prometheus.NewRegistry()
	client, err := vpp.NewVPP(vpp.VPPConfig{
		Connection:   conn,
		ReplyTimeout: cfg.Dataplane.ReplyTimeout,
		Registerer:   registry,
	})
	if err != nil {
		log.Fatalf("Failed to create VPP client: %v", err)
	}

	ifMgr := ifmgr.New(client)
	ifaces, buildErr := topology.New(client, ifMgr).Build(cfg.Interfaces)
	if buildErr != nil {
		mainLog.Error("Topology build failed", "error", buildErr)
	}

	printTopology(os.Stdout, ifaces)

	if *showMetrics {
		if err := printMetrics(os.Stdout, registry); err != nil {
			mainLog.Warn("Failed to gather metrics", "error", err)
		}
	}

	if buildErr != nil {
		os.Exit(1)
	}
	mainLog.Info("Probe complete", "interfaces", len(ifaces))
}

func printTopology(w io.Writer, ifaces []*vppif.Interface) {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	defer tw.Flush()

	fmt.Fprintln(tw, "SW_IF_INDEX\tNAME\tMAC\tIPV4\tIPV6\tHOSTS\tSUBIFS")
	for _, iface := range ifaces {
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s/%d\t%s/%d\t%d\t%d\n",
			iface.Handle(), iface.Name(), iface.LocalMACString(),
			iface.LocalIP4String(), 24, iface.LocalIP6String(), 64,
			len(iface.RemoteHosts()), len(iface.SubInterfaces()))
		for _, h := range iface.RemoteHosts() {
			fmt.Fprintf(tw, "\t  peer %d\t%s\t%s\t%s\t\t\n", h.Ordinal(), h.MACString(), h.IP4String(), h.IP6String())
		}
	}
}

func printMetrics(w io.Writer, g prometheus.Gatherer) error {
	families, err := g.Gather()
	if err != nil {
		return err
	}

	var lines []string
	for _, mf := range families {
		for _, m := range mf.GetMetric() {
			labels := ""
			for _, lp := range m.GetLabel() {
				labels += fmt.Sprintf(" %s=%s", lp.GetName(), lp.GetValue())
			}
			lines = append(lines, fmt.Sprintf("%s%s %g", mf.GetName(), labels, m.GetCounter().GetValue()))
		}
	}
	sort.Strings(lines)
	for _, l := range lines {
		fmt.Fprintln(w, l)
	}
	return nil
}
