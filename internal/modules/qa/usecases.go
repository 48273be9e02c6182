package qa

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/jinwoohan/insuragraph/internal/domain"
	"github.com/jinwoohan/insuragraph/internal/platform/logger"
)

// Service runs the full question-to-answer pipeline. Each call is strictly
// sequential and owns its request-scoped state; instances are safe for
// concurrent questions because nothing mutable is shared across calls.
type Service struct {
	planner   *Planner
	assembler *Assembler
	cypher    *CypherSynthesizer
	answerer  *AnswerSynthesizer
	graph     GraphExecutor
	log       *logger.Logger
	tracer    trace.Tracer
}

func NewService(
	planner *Planner,
	assembler *Assembler,
	cypher *CypherSynthesizer,
	answerer *AnswerSynthesizer,
	graph GraphExecutor,
	log *logger.Logger,
) *Service {
	return &Service{
		planner:   planner,
		assembler: assembler,
		cypher:    cypher,
		answerer:  answerer,
		graph:     graph,
		log:       log.With("service", "QA"),
		tracer:    otel.Tracer("qa"),
	}
}

// Ask answers one question about one product. The returned Turn always
// records the question and whatever stages completed; when err is non-nil
// the Turn's Fault says which stage failed and why, so callers can show the
// fault next to the conversation instead of inside an answer.
func (s *Service) Ask(ctx context.Context, productID, question string) (domain.Turn, error) {
	turn := domain.Turn{
		ID:        uuid.New(),
		ProductID: productID,
		Question:  question,
		AskedAt:   time.Now().UTC(),
	}

	ctx, span := s.tracer.Start(ctx, "qa.ask",
		trace.WithAttributes(attribute.String("product_id", productID)))
	defer span.End()

	// Stage 1: metadata plan. A planner parse failure degrades to an empty
	// plan instead of aborting; every other failure aborts the question.
	categories, err := s.planStage(ctx, question)
	if err != nil {
		var planErr *PlanningError
		if !errors.As(err, &planErr) {
			return s.fault(turn, "planning_failure", err)
		}
		s.log.Warn("metadata plan unparsable; continuing with empty plan", "error", err.Error())
		categories = nil
	}
	turn.Categories = categories

	// Stage 2: context assembly.
	contextText, err := s.assembleStage(ctx, productID, categories)
	if err != nil {
		return s.fault(turn, "execution_failure", err)
	}
	turn.Context = contextText

	// Stage 3: constrained query generation. A rejected candidate never
	// reaches the executor.
	query, err := s.cypherStage(ctx, question, productID, contextText)
	if err != nil {
		var rejected *WriteRejectedError
		if errors.As(err, &rejected) {
			turn.Cypher = rejected.Query
			return s.fault(turn, "write_operation_rejected", err)
		}
		return s.fault(turn, "generation_failure", err)
	}
	turn.Cypher = query

	rows, err := s.executeStage(ctx, query, productID)
	if err != nil {
		return s.fault(turn, "execution_failure", &ExecutionError{Query: query, Err: err})
	}
	turn.RowCount = len(rows)

	// Stage 4: grounded answer.
	answer, err := s.answerStage(ctx, AnswerInput{
		Question: question,
		Cypher:   query,
		Rows:     rows,
		Context:  contextText,
	})
	if err != nil {
		return s.fault(turn, "generation_failure", err)
	}
	turn.Answer = answer

	s.log.Info("question answered",
		"product_id", productID,
		"categories", len(categories),
		"rows", len(rows),
	)
	return turn, nil
}

func (s *Service) planStage(ctx context.Context, question string) ([]domain.Category, error) {
	ctx, span := s.tracer.Start(ctx, "qa.plan")
	defer span.End()
	return s.planner.Plan(ctx, question)
}

func (s *Service) assembleStage(ctx context.Context, productID string, categories []domain.Category) (string, error) {
	ctx, span := s.tracer.Start(ctx, "qa.assemble",
		trace.WithAttributes(attribute.Int("categories", len(categories))))
	defer span.End()
	return s.assembler.Assemble(ctx, productID, categories)
}

func (s *Service) cypherStage(ctx context.Context, question, productID, contextText string) (string, error) {
	ctx, span := s.tracer.Start(ctx, "qa.synthesize_cypher")
	defer span.End()
	return s.cypher.Synthesize(ctx, question, productID, contextText)
}

func (s *Service) executeStage(ctx context.Context, query, productID string) ([]domain.Row, error) {
	ctx, span := s.tracer.Start(ctx, "qa.execute")
	defer span.End()
	return s.graph.ReadQuery(ctx, query, map[string]any{"product_id": productID})
}

func (s *Service) answerStage(ctx context.Context, in AnswerInput) (string, error) {
	ctx, span := s.tracer.Start(ctx, "qa.answer",
		trace.WithAttributes(attribute.Int("rows", len(in.Rows))))
	defer span.End()
	return s.answerer.Answer(ctx, in)
}

func (s *Service) fault(turn domain.Turn, kind string, err error) (domain.Turn, error) {
	turn.Fault = &domain.Fault{Kind: kind, Detail: err.Error()}
	s.log.Warn("pipeline fault", "kind", kind, "error", err.Error())
	return turn, err
}
