package app

import (
	"context"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/jinwoohan/insuragraph/internal/modules/qa"
	"github.com/jinwoohan/insuragraph/internal/platform/envutil"
	"github.com/jinwoohan/insuragraph/internal/platform/logger"
	"github.com/jinwoohan/insuragraph/internal/platform/neo4jdb"
	"github.com/jinwoohan/insuragraph/internal/platform/openai"
)

// Pipeline bundles the wired QA service with the clients whose lifecycles
// the entrypoints must manage.
type Pipeline struct {
	Service *qa.Service
	Graph   *neo4jdb.Client
	Redis   *redis.Client
}

func (p *Pipeline) Close(ctx context.Context) {
	if p.Redis != nil {
		_ = p.Redis.Close()
	}
	if p.Graph != nil {
		_ = p.Graph.Close(ctx)
	}
}

// BuildPipeline wires clients and pipeline stages the way every entrypoint
// (HTTP server, terminal loop) consumes them.
func BuildPipeline(cfg Config, log *logger.Logger) (*Pipeline, error) {
	graph, err := neo4jdb.NewFromEnv(log)
	if err != nil {
		return nil, err
	}

	llm, err := openai.NewClient(log)
	if err != nil {
		graph.Close(context.Background())
		return nil, err
	}

	// Answer prose tolerates a little sampling; planning and Cypher stay at
	// the client's configured (low) temperature.
	answerTemp := 0.2
	if f, err := strconv.ParseFloat(cfg.AnswerTemp, 64); err == nil {
		answerTemp = f
	}
	answerLLM := openai.WithTemperature(llm, answerTemp)

	// Optional digest cache, on only when REDIS_ADDR is set.
	var cache *redis.Client
	if addr := envutil.Str("REDIS_ADDR", ""); addr != "" {
		cache = redis.NewClient(&redis.Options{Addr: addr})
		if err := cache.Ping(context.Background()).Err(); err != nil {
			log.Warn("redis unreachable; digest cache disabled", "error", err)
			_ = cache.Close()
			cache = nil
		}
	}

	planner := qa.NewPlanner(llm, log)
	assembler := qa.NewAssembler(graph, cache, time.Duration(cfg.CacheTTLSeconds)*time.Second, log)
	guard := qa.NewReadOnlyGuard()
	cypher := qa.NewCypherSynthesizer(llm, guard, log)
	answerer := qa.NewAnswerSynthesizer(answerLLM, cfg.AnswerLocale, log)

	return &Pipeline{
		Service: qa.NewService(planner, assembler, cypher, answerer, graph, log),
		Graph:   graph,
		Redis:   cache,
	}, nil
}
