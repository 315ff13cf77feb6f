package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	wampclient "github.com/wamp-go/client"
	"github.com/wamp-go/client/config"
	"github.com/wamp-go/client/serialize"
	"github.com/wamp-go/client/transport/websocket"
)

var rootCommand = &cobra.Command{
	Use:   "wampcall",
	Short: "Exercise a WAMP session's call/publish/subscribe surface",
}

var (
	urlFlag           string
	realmFlag         string
	serializationFlag string
	connectTimeout    time.Duration
	configPathFlag    string
)

func Execute() {
	if err := rootCommand.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCommand.PersistentFlags().StringVar(&urlFlag, "url", "ws://localhost:8080/ws", "router websocket url")
	rootCommand.PersistentFlags().StringVar(&realmFlag, "realm", "", "realm to join")
	rootCommand.PersistentFlags().StringVar(&serializationFlag, "serialization", "json", "json or msgpack")
	rootCommand.PersistentFlags().DurationVar(&connectTimeout, "connect-timeout", 10*time.Second, "handshake timeout")
	rootCommand.PersistentFlags().StringVar(&configPathFlag, "config", "", "TOML config file; overrides the flags above when set")

	rootCommand.AddCommand(callCommand)
	rootCommand.AddCommand(publishCommand)
	rootCommand.AddCommand(subscribeCommand)
}

// dial opens a Session against urlFlag/realmFlag (or, when --config is
// set, the file it names), honoring connectTimeout (or the file's
// connect timeout) for the opening handshake.
func dial() (*wampclient.Session, func(), error) {
	url, realm, serialization, timeout := urlFlag, realmFlag, serializationFlag, connectTimeout
	if configPathFlag != "" {
		cfg, err := config.Load(configPathFlag)
		if err != nil {
			return nil, nil, err
		}
		url, realm, serialization, timeout = cfg.URL, cfg.Realm, cfg.Serialization, cfg.ConnectTimeout
	}

	var codec serialize.Codec
	if serialization == "msgpack" {
		codec = serialize.MsgpackCodec{}
	} else {
		codec = serialize.JSONCodec{}
	}

	transport := websocket.New(websocket.Options{URL: url, Codec: codec})
	session := wampclient.NewSession(transport)

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	if err := session.Connect(ctx, wampclient.ConnectOptions{Realm: realm}); err != nil {
		return nil, nil, fmt.Errorf("connect: %w", err)
	}
	closeFn := func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		session.Close(ctx)
	}
	return session, closeFn, nil
}
