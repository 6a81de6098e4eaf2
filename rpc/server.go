package rpc

import (
	"fmt"
	"time"

	"github.com/rs/zerolog/log"
	"golang.org/x/net/context"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/nelhage/isolation/ai"
	"github.com/nelhage/isolation/isolation"
	"github.com/nelhage/isolation/notation"
)

const defaultMaxDepth = 12

// Server answers analysis requests with a fresh searcher per
// request, so concurrent requests never share search state.
type Server struct {
	// MaxDepth caps requested depths. 0 means 12.
	MaxDepth int
	Debug    int
	Weights  *ai.Weights
}

func (s *Server) prepare(req *AnalyzeRequest) (*ai.MinimaxAI, *isolation.Position, error) {
	p, err := notation.ParsePosition(req.Position)
	if err != nil {
		return nil, nil, status.Errorf(codes.InvalidArgument, "position: %v", err)
	}
	if over, _ := p.GameOver(); over {
		return nil, nil, status.Errorf(codes.FailedPrecondition, "game is over")
	}
	limit := s.MaxDepth
	if limit == 0 {
		limit = defaultMaxDepth
	}
	if req.Depth < 0 || int(req.Depth) > limit {
		return nil, nil, status.Errorf(codes.InvalidArgument, "depth %d out of range [0, %d]", req.Depth, limit)
	}
	cfg := ai.MinimaxConfig{
		Depth: int(req.Depth),
		Debug: s.Debug,
	}
	if req.Reference {
		cfg.Pruning = ai.Reference
	}
	if s.Weights != nil {
		cfg.Evaluate = ai.MakeEvaluator(s.Weights)
	}
	return ai.NewMinimax(cfg), p, nil
}

func withLimit(ctx context.Context, req *AnalyzeRequest) (context.Context, context.CancelFunc) {
	if req.LimitMs > 0 {
		return context.WithTimeout(ctx, time.Duration(req.LimitMs)*time.Millisecond)
	}
	return context.WithCancel(ctx)
}

func (s *Server) Analyze(ctx context.Context, req *AnalyzeRequest) (*AnalyzeResponse, error) {
	engine, p, err := s.prepare(req)
	if err != nil {
		return nil, err
	}
	ctx, cancel := withLimit(ctx, req)
	defer cancel()

	r, st, ok := engine.Analyze(ctx, p)
	if !ok {
		return nil, status.Errorf(codes.DeadlineExceeded, "no move found in time")
	}
	log.Info().
		Str("position", req.Position).
		Str("move", notation.FormatMove(r.Action)).
		Str("score", ai.FormatScore(r.Score)).
		Int("depth", r.Depth).
		Dur("elapsed", st.Elapsed).
		Msg("analyze")
	return &AnalyzeResponse{
		Move:      notation.FormatMove(r.Action),
		Score:     r.Score,
		Depth:     int32(r.Depth),
		Visited:   st.Visited,
		Evaluated: st.Evaluated,
		ElapsedMs: st.Elapsed.Milliseconds(),
	}, nil
}

func (s *Server) Search(req *AnalyzeRequest, stream Analyzer_SearchServer) error {
	return s.Stream(stream.Context(), req, stream.Send)
}

// Stream runs an anytime search and calls send with every result
// the search publishes, in order. A send error stops the search. If
// the search is cut short before publishing anything, Stream fails
// with DeadlineExceeded, as Analyze does.
func (s *Server) Stream(ctx context.Context, req *AnalyzeRequest, send func(*SearchUpdate) error) error {
	engine, p, err := s.prepare(req)
	if err != nil {
		return err
	}
	ctx, stop := withLimit(ctx, req)
	defer stop()
	var sendErr error
	published := false
	engine.ChooseAction(ctx, p, ai.PublisherFunc(func(r ai.Result) {
		if sendErr != nil {
			return
		}
		published = true
		sendErr = send(&SearchUpdate{
			Move:  notation.FormatMove(r.Action),
			Score: r.Score,
			Depth: int32(r.Depth),
		})
		if sendErr != nil {
			stop()
		}
	}))
	if sendErr != nil {
		return fmt.Errorf("send: %w", sendErr)
	}
	if !published {
		return status.Errorf(codes.DeadlineExceeded, "no move found in time")
	}
	return nil
}
