package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	mqttcommon "github.com/tuannt39-study/jhipster-sample/common/mqtt"
	rediscommon "github.com/tuannt39-study/jhipster-sample/common/redis"
	"github.com/tuannt39-study/jhipster-sample/internal/config"
	"github.com/tuannt39-study/jhipster-sample/internal/events"

	"github.com/spf13/cobra"
)

func newEventsCmd(g *globalOptions) *cobra.Command {
	var group string
	cmd := &cobra.Command{
		Use:   "events",
		Short: "Follow entity change events from the configured backend (redis or mqtt)",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, logger, err := g.setup()
			if err != nil {
				return err
			}
			defer logger.Sync()

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			emit := printEvent(cmd.OutOrStdout())

			switch cfg.Events.Backend {
			case config.EventsRedis:
				rdb := rediscommon.NewRedisClient(&cfg.Redis)
				defer rediscommon.Close(rdb)
				consumer, _ := os.Hostname()
				if consumer == "" {
					consumer = serviceName
				}
				return events.Tail(ctx, rdb, cfg.Events.Stream, group, consumer, emit)
			case config.EventsMQTT:
				mc, err := mqttcommon.NewClient(&cfg.MQTT, logger)
				if err != nil {
					return err
				}
				defer mc.Disconnect()
				err = mc.Subscribe(cfg.Events.Topic, mc.QoS(), func(_ string, payload []byte) error {
					var e events.Event
					if err := json.Unmarshal(payload, &e); err != nil {
						return err
					}
					return emit(e)
				})
				if err != nil {
					return err
				}
				<-ctx.Done()
				return nil
			default:
				return fmt.Errorf("EVENTS_BACKEND is %q; set it to redis or mqtt", cfg.Events.Backend)
			}
		},
	}
	cmd.Flags().StringVar(&group, "group", "hr-admin-cli", "redis consumer group")
	return cmd
}

// printEvent 每个事件输出一行
func printEvent(w io.Writer) func(events.Event) error {
	return func(e events.Event) error {
		_, err := fmt.Fprintf(w, "%s  %-12s %-8s id=%s  %s\n",
			e.At.Format("2006-01-02T15:04:05Z07:00"), e.Entity, e.Action, e.ID, e.EventID)
		return err
	}
}
