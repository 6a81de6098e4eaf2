package rpc

import (
	"github.com/golang/protobuf/proto"
	"golang.org/x/net/context"
	"google.golang.org/grpc"
)

// The messages below are encoded with the default gRPC proto codec.
// They are written by hand; the field tags match isolation.proto:
//
//	message AnalyzeRequest {
//	  string position = 1;
//	  int32 depth = 2;
//	  int64 limit_ms = 3;
//	  bool reference = 4;
//	}
//	message AnalyzeResponse {
//	  string move = 1;
//	  double score = 2;
//	  int32 depth = 3;
//	  uint64 visited = 4;
//	  uint64 evaluated = 5;
//	  int64 elapsed_ms = 6;
//	}
//	message SearchUpdate {
//	  string move = 1;
//	  double score = 2;
//	  int32 depth = 3;
//	}

type AnalyzeRequest struct {
	// Position is in notation.ParsePosition format.
	Position string `protobuf:"bytes,1,opt,name=position,proto3" json:"position,omitempty"`
	// Depth is the deepest iteration to search; 0 means the
	// engine default.
	Depth int32 `protobuf:"varint,2,opt,name=depth,proto3" json:"depth,omitempty"`
	// LimitMs bounds the search's wall-clock time.
	LimitMs   int64 `protobuf:"varint,3,opt,name=limit_ms,json=limitMs,proto3" json:"limit_ms,omitempty"`
	Reference bool  `protobuf:"varint,4,opt,name=reference,proto3" json:"reference,omitempty"`
}

func (m *AnalyzeRequest) Reset()         { *m = AnalyzeRequest{} }
func (m *AnalyzeRequest) String() string { return proto.CompactTextString(m) }
func (*AnalyzeRequest) ProtoMessage()    {}

type AnalyzeResponse struct {
	Move string `protobuf:"bytes,1,opt,name=move,proto3" json:"move,omitempty"`
	// Score is from the side to move's point of view. Decided
	// games score +Inf or -Inf.
	Score     float64 `protobuf:"fixed64,2,opt,name=score,proto3" json:"score,omitempty"`
	Depth     int32   `protobuf:"varint,3,opt,name=depth,proto3" json:"depth,omitempty"`
	Visited   uint64  `protobuf:"varint,4,opt,name=visited,proto3" json:"visited,omitempty"`
	Evaluated uint64  `protobuf:"varint,5,opt,name=evaluated,proto3" json:"evaluated,omitempty"`
	ElapsedMs int64   `protobuf:"varint,6,opt,name=elapsed_ms,json=elapsedMs,proto3" json:"elapsed_ms,omitempty"`
}

func (m *AnalyzeResponse) Reset()         { *m = AnalyzeResponse{} }
func (m *AnalyzeResponse) String() string { return proto.CompactTextString(m) }
func (*AnalyzeResponse) ProtoMessage()    {}

type SearchUpdate struct {
	Move  string  `protobuf:"bytes,1,opt,name=move,proto3" json:"move,omitempty"`
	Score float64 `protobuf:"fixed64,2,opt,name=score,proto3" json:"score,omitempty"`
	Depth int32   `protobuf:"varint,3,opt,name=depth,proto3" json:"depth,omitempty"`
}

func (m *SearchUpdate) Reset()         { *m = SearchUpdate{} }
func (m *SearchUpdate) String() string { return proto.CompactTextString(m) }
func (*SearchUpdate) ProtoMessage()    {}

type AnalyzerServer interface {
	Analyze(context.Context, *AnalyzeRequest) (*AnalyzeResponse, error)
	Search(*AnalyzeRequest, Analyzer_SearchServer) error
}

type Analyzer_SearchServer interface {
	Send(*SearchUpdate) error
	grpc.ServerStream
}

type analyzerSearchServer struct {
	grpc.ServerStream
}

func (x *analyzerSearchServer) Send(m *SearchUpdate) error {
	return x.ServerStream.SendMsg(m)
}

func RegisterAnalyzerServer(s *grpc.Server, srv AnalyzerServer) {
	s.RegisterService(&serviceDesc, srv)
}

func analyzeHandler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
	in := new(AnalyzeRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(AnalyzerServer).Analyze(ctx, in)
	}
	info := &grpc.UnaryServerInfo{
		Server:     srv,
		FullMethod: "/isolation.Analyzer/Analyze",
	}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(AnalyzerServer).Analyze(ctx, req.(*AnalyzeRequest))
	}
	return interceptor(ctx, in, info, handler)
}

func searchHandler(srv interface{}, stream grpc.ServerStream) error {
	m := new(AnalyzeRequest)
	if err := stream.RecvMsg(m); err != nil {
		return err
	}
	return srv.(AnalyzerServer).Search(m, &analyzerSearchServer{stream})
}

var serviceDesc = grpc.ServiceDesc{
	ServiceName: "isolation.Analyzer",
	HandlerType: (*AnalyzerServer)(nil),
	Methods: []grpc.MethodDesc{
		{
			MethodName: "Analyze",
			Handler:    analyzeHandler,
		},
	},
	Streams: []grpc.StreamDesc{
		{
			StreamName:    "Search",
			Handler:       searchHandler,
			ServerStreams: true,
		},
	},
	Metadata: "isolation.proto",
}
