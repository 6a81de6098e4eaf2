package rpc

import (
	"io"

	"golang.org/x/net/context"
	"google.golang.org/grpc"
)

type Client struct {
	cc *grpc.ClientConn
}

// Dial connects to an Analyzer service. Callers pass transport
// options such as grpc.WithInsecure().
func Dial(addr string, opts ...grpc.DialOption) (*Client, error) {
	cc, err := grpc.Dial(addr, opts...)
	if err != nil {
		return nil, err
	}
	return &Client{cc: cc}, nil
}

func (c *Client) Analyze(ctx context.Context, req *AnalyzeRequest) (*AnalyzeResponse, error) {
	out := new(AnalyzeResponse)
	err := c.cc.Invoke(ctx, "/isolation.Analyzer/Analyze", req, out)
	if err != nil {
		return nil, err
	}
	return out, nil
}

// Search streams every result the remote search publishes to fn,
// until the search ends or fn returns an error.
func (c *Client) Search(ctx context.Context, req *AnalyzeRequest, fn func(*SearchUpdate) error) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	stream, err := c.cc.NewStream(ctx, &serviceDesc.Streams[0], "/isolation.Analyzer/Search")
	if err != nil {
		return err
	}
	if err := stream.SendMsg(req); err != nil {
		return err
	}
	if err := stream.CloseSend(); err != nil {
		return err
	}
	for {
		u := new(SearchUpdate)
		err := stream.RecvMsg(u)
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return err
		}
		if err := fn(u); err != nil {
			return err
		}
	}
}

func (c *Client) Close() error {
	return c.cc.Close()
}
