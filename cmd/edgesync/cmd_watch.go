package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/samber/lo"
	"github.com/spf13/cobra"

	"github.com/carlosrabelo/edgesync/internal/application/services"
	"github.com/carlosrabelo/edgesync/internal/domain/entities"
	"github.com/carlosrabelo/edgesync/internal/infrastructure/transport"
	"github.com/carlosrabelo/edgesync/internal/infrastructure/traps"
	"github.com/carlosrabelo/edgesync/internal/util"
)

var (
	listenAddr string
	community  string
	debounce   time.Duration
)

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Re-apply the desired state when a switch reports a link or restart trap",
	Long: `Listen for SNMP linkUp, linkDown, coldStart and warmStart traps and run
"apply" against the switch that sent them. Every switch in the configuration
is watched unless --target narrows it to one.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if target == "" {
			allSwitches = true
		}
		switches, err := prepareSwitches(cmd.ErrOrStderr(), checkSections(services.DomainAll))
		if err != nil {
			return err
		}
		byTarget := lo.KeyBy(switches, func(sw entities.SwitchConfig) string {
			return sw.Target
		})

		listener := traps.NewListener(lo.Keys(byTarget), community, debounce)
		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		listenErr := make(chan error, 1)
		go func() {
			listenErr <- listener.Listen(listenAddr)
		}()

		pool := transport.NewPool()
		defer pool.CloseAll()
		task := reconcileTask(services.DomainAll, applyAll)

		for {
			select {
			case <-ctx.Done():
				listener.Close()
				return nil
			case err := <-listenErr:
				return err
			case ev := <-listener.Events():
				sw := byTarget[ev.Target]
				out, err := reconcileOnce(pool, sw, task)
				if out != "" {
					fmt.Fprint(cmd.OutOrStdout(), out)
				}
				if err != nil {
					fmt.Fprintf(cmd.ErrOrStderr(), "%s %s: %v\n", red("FAILED"), sw.Target, err)
				}
				if err := recorder.WriteTextfile(metricsFile); err != nil {
					util.Warnf("%v", err)
				}
			}
		}
	},
}

// reconcileOnce runs task on sw. A failed run drops the pooled session so
// the next trap reconnects.
func reconcileOnce(pool *transport.Pool, sw entities.SwitchConfig, task switchTask) (string, error) {
	run, err := connect(pool, sw)
	if err == nil {
		var out string
		out, err = task(run)
		if err == nil {
			return out, nil
		}
	}
	pool.Get(sw).Disconnect()
	return "", err
}

func init() {
	watchCmd.Flags().StringVar(&listenAddr, "listen", "0.0.0.0:162", "Address to receive SNMP traps on")
	watchCmd.Flags().StringVar(&community, "community", "public", "SNMP community of incoming traps")
	watchCmd.Flags().DurationVar(&debounce, "debounce", traps.DefaultDebounce, "Minimum time between two runs for the same switch")
}
