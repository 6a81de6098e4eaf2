package serve

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/google/subcommands"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"
	"google.golang.org/grpc"

	"github.com/nelhage/isolation/cmd/internal/opt"
	"github.com/nelhage/isolation/rpc"
	"github.com/nelhage/isolation/web"
)

type Command struct {
	port     int
	httpAddr string
	maxDepth int
	mmopt    opt.Minimax
}

func (*Command) Name() string     { return "serve" }
func (*Command) Synopsis() string { return "Serve analysis RPCs via GRPC and HTTP" }
func (*Command) Usage() string {
	return `serve [flags]

Serves the isolation.Analyzer GRPC service on -port and the same
analyses over HTTP and websockets on -http.
`
}

func (c *Command) SetFlags(flags *flag.FlagSet) {
	flags.IntVar(&c.port, "port", 55430, "GRPC bind port")
	flags.StringVar(&c.httpAddr, "http", ":8080", "HTTP bind address, empty to disable")
	flags.IntVar(&c.maxDepth, "max-depth", 12, "deepest search a request may ask for")
	c.mmopt.AddFlags(flags)
}

func (c *Command) Execute(ctx context.Context, flag *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	w, err := c.mmopt.ParseWeights()
	if err != nil {
		log.Error().Err(err).Msg("-weights")
		return subcommands.ExitUsageError
	}
	analyzer := &rpc.Server{
		MaxDepth: c.maxDepth,
		Debug:    c.mmopt.Debug,
		Weights:  w,
	}

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()
	grp, ctx := errgroup.WithContext(ctx)

	lis, err := net.Listen("tcp", fmt.Sprintf(":%d", c.port))
	if err != nil {
		log.Fatal().Err(err).Int("port", c.port).Msg("listen")
	}
	gs := grpc.NewServer()
	rpc.RegisterAnalyzerServer(gs, analyzer)
	grp.Go(func() error {
		log.Info().Int("port", c.port).Msg("serving grpc")
		return gs.Serve(lis)
	})
	grp.Go(func() error {
		<-ctx.Done()
		gs.GracefulStop()
		return nil
	})

	if c.httpAddr != "" {
		hs := &http.Server{
			Addr:    c.httpAddr,
			Handler: web.NewRouter(analyzer),
		}
		grp.Go(func() error {
			log.Info().Str("addr", c.httpAddr).Msg("serving http")
			if err := hs.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				return err
			}
			return nil
		})
		grp.Go(func() error {
			<-ctx.Done()
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			return hs.Shutdown(shutdownCtx)
		})
	}

	if err := grp.Wait(); err != nil {
		log.Error().Err(err).Msg("serve")
		return subcommands.ExitFailure
	}
	log.Info().Msg("shut down")
	return subcommands.ExitSuccess
}
