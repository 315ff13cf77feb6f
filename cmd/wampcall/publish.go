package main

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
)

var (
	publishArgsJSON string
	acknowledge     bool
)

var publishCommand = &cobra.Command{
	Use:   "publish <topic>",
	Short: "Publish an event to a topic",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		var publishArgs []interface{}
		if publishArgsJSON != "" {
			if err := json.Unmarshal([]byte(publishArgsJSON), &publishArgs); err != nil {
				return fmt.Errorf("parse --args: %w", err)
			}
		}

		session, closeFn, err := dial()
		if err != nil {
			return err
		}
		defer closeFn()

		options := map[string]interface{}{}
		if acknowledge {
			options["acknowledge"] = true
		}

		published, err := session.Publish(context.Background(), args[0], publishArgs, nil, options)
		if err != nil {
			return fmt.Errorf("publish: %w", err)
		}
		if published != nil {
			fmt.Printf("published %d\n", published.Publication)
		}
		return nil
	},
}

func init() {
	publishCommand.Flags().StringVar(&publishArgsJSON, "args", "", "JSON array of positional publish arguments")
	publishCommand.Flags().BoolVar(&acknowledge, "ack", false, "wait for PUBLISHED acknowledgement")
}
