package main

import (
	"fmt"
	"os"

	"github.com/aws/aws-lambda-go/lambda"

	"github.com/nomadreads/nomadreads-server/internal/infrastructure"
	"github.com/nomadreads/nomadreads-server/internal/interfaces/function"
	"github.com/nomadreads/nomadreads-server/internal/interfaces/httpserver"
)

// Serverless entry point. Tracing and the metrics listener are not started here;
// the function runtime owns process lifetime.
func main() {
	cfg, err := infrastructure.ProvideConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "load config: %v\n", err)
		os.Exit(1)
	}

	log, err := infrastructure.ProvideLogger(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "initialize logger: %v\n", err)
		os.Exit(1)
	}
	log = log.With().Str("runtime", "function").Logger()

	completer := infrastructure.ProvideChatCompleter(cfg, log)
	service := infrastructure.ProvideRecommendationService(cfg, completer, log)
	adapter := function.NewAdapter(httpserver.New(cfg, log, service).Handler(), log)

	log.Info().Str("model", completer.Model()).Msg("function handler ready")
	lambda.Start(adapter.Handle)
}
