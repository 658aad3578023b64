package relayer

import (
	"context"
	"encoding/base64"
	"fmt"
	"net/http"
	"time"

	"github.com/ybbus/jsonrpc"

	"cw20ics20bridge/types"
)

const MethodSendPacket = "send_packet"

// SendPacketParams is the JSON-RPC payload of send_packet. Data is base64,
// timeout is nanoseconds since epoch as a decimal string.
type SendPacketParams struct {
	ID        string `json:"id"`
	ChannelID string `json:"channel_id"`
	Sequence  uint64 `json:"sequence"`
	Data      string `json:"data"`
	Timeout   string `json:"timeout_timestamp"`
}

type SendPacketResult struct {
	Accepted bool   `json:"accepted"`
	TxHash   string `json:"tx_hash,omitempty"`
}

// Client submits packets to the relayer over JSON-RPC.
type Client struct {
	rpc jsonrpc.RPCClient
}

func New(url string, authToken string, timeout time.Duration) *Client {
	opts := &jsonrpc.RPCClientOpts{
		HTTPClient: &http.Client{Timeout: timeout},
	}
	if authToken != "" {
		opts.CustomHeaders = map[string]string{"Authorization": "Bearer " + authToken}
	}
	return &Client{rpc: jsonrpc.NewClientWithOpts(url, opts)}
}

func NewWithRPC(rpc jsonrpc.RPCClient) *Client {
	return &Client{rpc: rpc}
}

func (c *Client) SendPacket(ctx context.Context, msg types.SendPacketMsg) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	params := SendPacketParams{
		ID:        msg.ID,
		ChannelID: msg.ChannelID,
		Sequence:  msg.Sequence,
		Data:      base64.StdEncoding.EncodeToString(msg.Data),
		Timeout:   fmt.Sprintf("%d", msg.Timeout.Nanos()),
	}

	response, err := c.rpc.Call(MethodSendPacket, &params)
	if err != nil {
		return fmt.Errorf("relayer call: %w", err)
	}
	if response.Error != nil {
		return fmt.Errorf("relayer rejected packet: %w", response.Error)
	}

	var result SendPacketResult
	if err := response.GetObject(&result); err != nil {
		return fmt.Errorf("cannot decode relayer result: %w", err)
	}
	if !result.Accepted {
		return fmt.Errorf("relayer did not accept packet %s", msg.ID)
	}
	return nil
}
