package main

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
)

var callArgsJSON string

var callCommand = &cobra.Command{
	Use:   "call <procedure>",
	Short: "Call a procedure and print every RESULT until the stream terminates",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		var callArgs []interface{}
		if callArgsJSON != "" {
			if err := json.Unmarshal([]byte(callArgsJSON), &callArgs); err != nil {
				return fmt.Errorf("parse --args: %w", err)
			}
		}

		session, closeFn, err := dial()
		if err != nil {
			return err
		}
		defer closeFn()

		handle, err := session.Call(context.Background(), args[0], callArgs, nil, nil)
		if err != nil {
			return fmt.Errorf("call: %w", err)
		}

		for event := range handle.Events() {
			if event.Err != nil {
				return event.Err
			}
			b, _ := json.Marshal(event.Result.Arguments)
			fmt.Println(string(b))
		}
		return nil
	},
}

func init() {
	callCommand.Flags().StringVar(&callArgsJSON, "args", "", "JSON array of positional call arguments")
}
