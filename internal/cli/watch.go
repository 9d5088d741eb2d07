package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/staff-directory-api/internal/models"
	"github.com/staff-directory-api/internal/notify"
)

func newWatchCmd(a *app) *cobra.Command {
	var addr, channel string

	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Follow notifications published by a running server",
		RunE: func(cmd *cobra.Command, args []string) error {
			if addr == "" {
				addr = a.cfg.Notify.RedisAddr
			}
			if addr == "" {
				return errors.New("no redis address: pass --redis or set NOTIFY_REDIS_ADDR")
			}
			if channel == "" {
				channel = a.cfg.Notify.RedisChannel
			}

			client := notify.NewRedisClient(addr, a.cfg.Notify.RedisPassword, a.log)
			defer client.Close()

			out := cmd.OutOrStdout()
			return notify.Watch(cmd.Context(), client, channel, func(n models.Notification) {
				fmt.Fprintf(out, "%s %s %s: %s\n", dimStyle.Render(n.At.Format("15:04:05")), kindPrefix(n.Kind), n.Title, n.Body)
			})
		},
	}

	cmd.Flags().StringVar(&addr, "redis", "", "Redis address (default: $NOTIFY_REDIS_ADDR)")
	cmd.Flags().StringVar(&channel, "channel", "", "Notification channel")
	return cmd
}
