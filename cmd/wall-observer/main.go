// Command wall-observer subscribes to Wall contract notifications on a Neo
// node and prints posted messages as they arrive. Messages are not stored
// on-chain, so tools like this one are the only way to read them.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"strings"
	"time"

	"github.com/nspcc-dev/neo-go/pkg/core/state"
	"github.com/nspcc-dev/neo-go/pkg/encoding/address"
	"github.com/nspcc-dev/neo-go/pkg/neorpc"
	"github.com/nspcc-dev/neo-go/pkg/rpcclient"
	"github.com/nspcc-dev/neo-go/pkg/util"
	"github.com/nspcc-dev/wall-contract/rpc/wall"
)

func main() {
	neoRPCEndpoint := flag.String("rpc", "", "WebSocket address of the Neo RPC server (e.g. ws://localhost:30333/ws)")
	contractHash := flag.String("contract", "", "Wall contract hash (LE hex)")

	flag.Parse()

	switch {
	case *neoRPCEndpoint == "":
		log.Fatal("missing Neo RPC endpoint")
	case *contractHash == "":
		log.Fatal("missing Wall contract hash")
	}

	h, err := util.Uint160DecodeStringLE(strings.TrimPrefix(*contractHash, "0x"))
	if err != nil {
		log.Fatal(fmt.Errorf("invalid contract hash: %w", err))
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	err = observe(ctx, *neoRPCEndpoint, h)
	if err != nil {
		log.Fatal(err)
	}
}

func observe(ctx context.Context, endpoint string, contractHash util.Uint160) error {
	c, err := rpcclient.NewWS(ctx, endpoint, rpcclient.WSOptions{})
	if err != nil {
		return fmt.Errorf("create WS client: %w", err)
	}

	err = c.Init()
	if err != nil {
		return fmt.Errorf("init WS client: %w", err)
	}

	defer c.Close()

	ch := make(chan *state.ContainedNotificationEvent)
	subID, err := c.ReceiveExecutionNotifications(&neorpc.NotificationFilter{
		Contract: &contractHash,
	}, ch)
	if err != nil {
		return fmt.Errorf("subscribe to notifications: %w", err)
	}

	defer func() {
		_ = c.Unsubscribe(subID)
	}()

	log.Printf("listening for notifications of contract %s", contractHash.StringLE())

	for {
		select {
		case <-ctx.Done():
			return nil
		case ntf, ok := <-ch:
			if !ok {
				return fmt.Errorf("subscription channel closed")
			}
			printNotification(ntf)
		}
	}
}

func printNotification(ntf *state.ContainedNotificationEvent) {
	switch ntf.Name {
	case "WallInitialized":
		var ev wall.WallInitializedEvent
		if err := ev.FromStackItem(ntf.Item); err != nil {
			log.Printf("skip malformed WallInitialized notification: %v", err)
			return
		}
		log.Printf("wall %d created by %s", ev.WallID, address.Uint160ToString(ev.Recipient))
	case "MessagePosted":
		var ev wall.MessagePostedEvent
		if err := ev.FromStackItem(ntf.Item); err != nil {
			log.Printf("skip malformed MessagePosted notification: %v", err)
			return
		}
		ts := time.UnixMilli(ev.Timestamp.Int64()).UTC().Format(time.RFC3339)
		log.Printf("[%s] wall %d, %s: %s", ts, ev.WallID, address.Uint160ToString(ev.User), ev.Message)
	}
}
