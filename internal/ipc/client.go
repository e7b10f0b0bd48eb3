package ipc

import (
	"net"
	"net/rpc"
	"net/rpc/jsonrpc"
	"time"
)

// Client provides RPC access to the daemon.
type Client struct {
	conn   net.Conn
	client *rpc.Client
}

// Dial connects to the IPC server at the given socket path.
func Dial(path string) (*Client, error) {
	conn, err := net.DialTimeout("unix", path, 2*time.Second)
	if err != nil {
		return nil, err
	}
	rpcClient := rpc.NewClientWithCodec(jsonrpc.NewClientCodec(conn))
	return &Client{conn: conn, client: rpcClient}, nil
}

// Close closes the underlying connection.
func (c *Client) Close() error {
	if c.client != nil {
		_ = c.client.Close()
	}
	if c.conn != nil {
		return c.conn.Close()
	}
	return nil
}

// Open starts a session for the event, optionally scoped to one part.
func (c *Client) Open(eventID int64, part string) (*OpenResponse, error) {
	var resp OpenResponse
	req := OpenRequest{EventID: eventID, Part: part}
	if err := c.client.Call("Cornerman.Open", req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// Search triggers an indexer search for the session target.
func (c *Client) Search() (*SearchResponse, error) {
	var resp SearchResponse
	if err := c.client.Call("Cornerman.Search", SearchRequest{}, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// Grab asks the daemon to acquire the result at the zero-based index.
func (c *Client) Grab(index int) (*GrabResponse, error) {
	var resp GrabResponse
	req := GrabRequest{Index: index}
	if err := c.client.Call("Cornerman.Grab", req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// Confirm approves the pending blocklist override.
func (c *Client) Confirm() (*ConfirmResponse, error) {
	var resp ConfirmResponse
	if err := c.client.Call("Cornerman.Confirm", ConfirmRequest{}, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// Cancel discards the pending blocklist override.
func (c *Client) Cancel() (*CancelResponse, error) {
	var resp CancelResponse
	if err := c.client.Call("Cornerman.Cancel", CancelRequest{}, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// CloseSession discards the session slot.
func (c *Client) CloseSession() (*CloseResponse, error) {
	var resp CloseResponse
	if err := c.client.Call("Cornerman.CloseSession", CloseRequest{}, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// Session fetches the current session state.
func (c *Client) Session() (*SessionResponse, error) {
	var resp SessionResponse
	if err := c.client.Call("Cornerman.Session", SessionRequest{}, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// RenamePreview previews pending renames for the given scope.
func (c *Client) RenamePreview(req RenamePreviewRequest) (*RenamePreviewResponse, error) {
	var resp RenamePreviewResponse
	if err := c.client.Call("Cornerman.RenamePreview", req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// RenameApply executes the renames for the given scope.
func (c *Client) RenameApply(req RenameApplyRequest) (*RenameApplyResponse, error) {
	var resp RenameApplyResponse
	if err := c.client.Call("Cornerman.RenameApply", req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// Status retrieves the daemon status.
func (c *Client) Status() (*StatusResponse, error) {
	var resp StatusResponse
	if err := c.client.Call("Cornerman.Status", StatusRequest{}, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// TestNotification triggers a notification test via the daemon.
func (c *Client) TestNotification() (*TestNotificationResponse, error) {
	var resp TestNotificationResponse
	if err := c.client.Call("Cornerman.TestNotification", TestNotificationRequest{}, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// Stop asks the daemon process to shut down.
func (c *Client) Stop() (*StopResponse, error) {
	var resp StopResponse
	if err := c.client.Call("Cornerman.Stop", StopRequest{}, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}
