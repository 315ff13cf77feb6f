package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
)

var subscribeCommand = &cobra.Command{
	Use:   "subscribe <topic>",
	Short: "Subscribe to a topic and print events until interrupted",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		session, closeFn, err := dial()
		if err != nil {
			return err
		}
		defer closeFn()

		sub, err := session.Subscribe(context.Background(), args[0], nil)
		if err != nil {
			return fmt.Errorf("subscribe: %w", err)
		}
		defer sub.Unsubscribe()

		interrupt := make(chan os.Signal, 1)
		signal.Notify(interrupt, syscall.SIGINT, syscall.SIGTERM)

		for {
			select {
			case event, ok := <-sub.Events():
				if !ok {
					return nil
				}
				b, _ := json.Marshal(event.Arguments)
				fmt.Println(string(b))
			case <-interrupt:
				return nil
			}
		}
	},
}
