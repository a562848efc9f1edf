package chat

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/gelaboca/gelaboca-backend/internal/catalog"
	"github.com/gelaboca/gelaboca-backend/pkg/logger"
	"github.com/gelaboca/gelaboca-backend/pkg/metrics"
	"github.com/gelaboca/gelaboca-backend/pkg/pinecone"
)

// Stage tuning. The rewrite and selection stages run cold so their output
// stays machine-parseable; the reply stages run warm for a natural tone.
const (
	rewriteMaxTokens   = 200
	rewriteTemperature = 0.3

	retrievalTopK = 8

	selectMaxTokens   = 50
	selectTemperature = 0.1

	respondProductMaxTokens = 150
	respondGeneralMaxTokens = 200
	respondTemperature      = 0.7
)

const (
	stageRewrite  = "rewrite"
	stageRetrieve = "retrieve"
	stageSelect   = "select"
	stageRespond  = "respond"
)

// CompletionClient is the slice of the language-model client the pipeline uses.
type CompletionClient interface {
	Complete(ctx context.Context, prompt string, maxTokens int, temperature float64) (string, error)
	CompleteChat(ctx context.Context, system, user string, maxTokens int, temperature float64) (string, error)
}

// Embedder turns text into an index query vector.
type Embedder interface {
	Embed(ctx context.Context, text string) ([]float32, error)
}

// Index is the slice of the vector index client the pipeline uses.
type Index interface {
	Query(ctx context.Context, req pinecone.QueryRequest) ([]pinecone.Match, error)
}

// ProductInfo points the tablet UI at the recommended product.
type ProductInfo struct {
	Name string `json:"name"`
	Slug string `json:"slug"`
}

// Reply is the assistant's answer to one message.
type Reply struct {
	Message string       `json:"message"`
	Product *ProductInfo `json:"productInfo,omitempty"`
}

// Service runs the assistant pipeline: rewrite the message, retrieve similar
// products, pick one, and phrase a reply. Every stage degrades to a fallback
// so the customer always gets an answer.
type Service struct {
	completions CompletionClient
	embedder    Embedder
	index       Index
	history     HistoryStore
	metrics     *metrics.ChatPipelineMetrics
	logg        *logger.Logger

	historyLimit int

	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

// NewService builds the chat service. historyLimit bounds stored
// conversations; zero disables the cap.
func NewService(
	completions CompletionClient,
	embedder Embedder,
	index Index,
	history HistoryStore,
	chatMetrics *metrics.ChatPipelineMetrics,
	logg *logger.Logger,
	historyLimit int,
) *Service {
	return &Service{
		completions:  completions,
		embedder:     embedder,
		index:        index,
		history:      history,
		metrics:      chatMetrics,
		logg:         logg,
		historyLimit: historyLimit,
		locks:        make(map[string]*sync.Mutex),
	}
}

// Respond processes one customer message and returns the assistant reply.
// The reply message is always non-empty. Exchanges for the same session are
// serialized so the history stays a coherent transcript.
func (s *Service) Respond(ctx context.Context, sessionID, userMessage string) Reply {
	unlock := s.lockSession(sessionID)
	defer unlock()

	ctx = s.logg.WithSessionID(ctx, sessionID)

	history, err := s.history.Get(ctx, sessionID)
	if err != nil {
		s.logg.Warn(s.logg.WithField(ctx, "error", err.Error()), "history load failed, starting fresh")
		history = nil
	}
	if len(history) == 0 {
		history = seedHistory()
	}
	history = append(history, Message{Role: RoleUser, Content: userMessage})

	reply := s.process(ctx, userMessage, history)

	history = append(history, Message{Role: RoleAssistant, Content: reply.Message})
	history = capHistory(history, s.historyLimit)
	if err := s.history.Set(ctx, sessionID, history); err != nil {
		s.logg.Warn(s.logg.WithField(ctx, "error", err.Error()), "history save failed")
	}

	return reply
}

// ClearHistory forgets the session's conversation.
func (s *Service) ClearHistory(ctx context.Context, sessionID string) error {
	unlock := s.lockSession(sessionID)
	defer unlock()
	return s.history.Delete(ctx, sessionID)
}

func (s *Service) process(ctx context.Context, userMessage string, history []Message) (reply Reply) {
	defer func() {
		if r := recover(); r != nil {
			s.logg.Error(ctx, "chat pipeline panicked", fmt.Errorf("%v", r))
			reply = Reply{Message: FallbackApology}
		}
	}()

	adjusted := s.rewrite(ctx, userMessage, history)
	candidates := s.retrieve(ctx, adjusted)
	product := s.selectProduct(ctx, userMessage, history, candidates)

	if product != nil {
		s.metrics.IncSelection("product")
		return Reply{
			Message: s.respondWithProduct(ctx, userMessage, history, *product),
			Product: &ProductInfo{Name: product.Name, Slug: product.Slug()},
		}
	}

	s.metrics.IncSelection("none")
	return Reply{Message: s.respondGeneral(ctx, userMessage)}
}

// rewrite reformulates the message with conversation context so retrieval
// works on a self-contained query. Falls back to the raw message.
func (s *Service) rewrite(ctx context.Context, userMessage string, history []Message) string {
	ctx = s.logg.WithStage(ctx, stageRewrite)
	started := time.Now()
	defer func() { s.metrics.ObserveStage(stageRewrite, time.Since(started)) }()

	adjusted, err := s.completions.Complete(ctx, rewritePrompt(userMessage, history), rewriteMaxTokens, rewriteTemperature)
	if err != nil {
		s.logg.Warn(s.logg.WithField(ctx, "error", err.Error()), "message rewrite failed")
		s.metrics.IncFallback(stageRewrite)
		return userMessage
	}
	adjusted = strings.TrimSpace(adjusted)
	if adjusted == "" {
		s.metrics.IncFallback(stageRewrite)
		return userMessage
	}
	return adjusted
}

// retrieve embeds the adjusted query and pulls the closest active products.
// When embedding or the ranked query fails it degrades to an unranked
// zero-vector sweep, and to an empty slate when that fails too.
func (s *Service) retrieve(ctx context.Context, adjusted string) []catalog.Product {
	ctx = s.logg.WithStage(ctx, stageRetrieve)
	started := time.Now()
	defer func() { s.metrics.ObserveStage(stageRetrieve, time.Since(started)) }()

	vector, err := s.embedder.Embed(ctx, adjusted)
	if err != nil {
		s.logg.Warn(s.logg.WithField(ctx, "error", err.Error()), "query embedding failed")
		return s.retrieveFallback(ctx)
	}

	matches, err := s.index.Query(ctx, pinecone.QueryRequest{
		Vector:          vector,
		TopK:            retrievalTopK,
		IncludeMetadata: true,
		Filter:          pinecone.ActiveOnlyFilter(),
	})
	if err != nil {
		s.logg.Warn(s.logg.WithField(ctx, "error", err.Error()), "similarity query failed")
		return s.retrieveFallback(ctx)
	}

	return productsFromMatches(matches)
}

func (s *Service) retrieveFallback(ctx context.Context) []catalog.Product {
	s.metrics.IncFallback(stageRetrieve)

	matches, err := s.index.Query(ctx, pinecone.QueryRequest{
		Vector:          pinecone.ZeroVector(catalog.EmbeddingDims),
		TopK:            retrievalTopK,
		IncludeMetadata: true,
		Filter:          pinecone.ActiveOnlyFilter(),
	})
	if err != nil {
		s.logg.Warn(s.logg.WithField(ctx, "error", err.Error()), "fallback product sweep failed")
		return nil
	}

	products := productsFromMatches(matches)
	if len(products) > retrievalTopK {
		products = products[:retrievalTopK]
	}
	return products
}

// selectProduct asks the model to pick one candidate by id, or the NENHUM
// sentinel for non-product questions. Truncated ids resolve by prefix; on
// model failure the top-ranked candidate wins.
func (s *Service) selectProduct(ctx context.Context, userMessage string, history []Message, candidates []catalog.Product) *catalog.Product {
	if len(candidates) == 0 {
		return nil
	}

	ctx = s.logg.WithStage(ctx, stageSelect)
	started := time.Now()
	defer func() { s.metrics.ObserveStage(stageSelect, time.Since(started)) }()

	selectedID, err := s.completions.Complete(ctx, selectPrompt(userMessage, history, candidates), selectMaxTokens, selectTemperature)
	if err != nil {
		s.logg.Warn(s.logg.WithField(ctx, "error", err.Error()), "product selection failed")
		s.metrics.IncFallback(stageSelect)
		return &candidates[0]
	}

	selectedID = strings.TrimSpace(selectedID)
	if selectedID == "" || selectedID == selectionNone {
		return nil
	}

	for i := range candidates {
		if candidates[i].ID == selectedID {
			return &candidates[i]
		}
	}
	for i := range candidates {
		if strings.HasPrefix(candidates[i].ID, selectedID) {
			return &candidates[i]
		}
	}
	return nil
}

func (s *Service) respondWithProduct(ctx context.Context, userMessage string, history []Message, product catalog.Product) string {
	ctx = s.logg.WithStage(ctx, stageRespond)
	started := time.Now()
	defer func() { s.metrics.ObserveStage(stageRespond, time.Since(started)) }()

	answer, err := s.completions.Complete(ctx, respondProductPrompt(userMessage, history, product), respondProductMaxTokens, respondTemperature)
	if err != nil {
		s.logg.Warn(s.logg.WithField(ctx, "error", err.Error()), "product reply generation failed")
		s.metrics.IncFallback(stageRespond)
		return productFallbackError(product)
	}
	answer = strings.TrimSpace(answer)
	if answer == "" {
		s.metrics.IncFallback(stageRespond)
		return productFallbackEmpty(product)
	}
	return answer
}

func (s *Service) respondGeneral(ctx context.Context, userMessage string) string {
	ctx = s.logg.WithStage(ctx, stageRespond)
	started := time.Now()
	defer func() { s.metrics.ObserveStage(stageRespond, time.Since(started)) }()

	answer, err := s.completions.CompleteChat(ctx, generalSystemPrompt, userMessage, respondGeneralMaxTokens, respondTemperature)
	if err != nil {
		s.logg.Warn(s.logg.WithField(ctx, "error", err.Error()), "general reply generation failed")
		s.metrics.IncFallback(stageRespond)
		return FallbackGreeting
	}
	answer = strings.TrimSpace(answer)
	if answer == "" {
		s.metrics.IncFallback(stageRespond)
		return FallbackGreeting
	}
	return answer
}

func productsFromMatches(matches []pinecone.Match) []catalog.Product {
	products := make([]catalog.Product, 0, len(matches))
	for _, match := range matches {
		if match.Metadata == nil {
			continue
		}
		products = append(products, catalog.ProductFromMatch(match))
	}
	return products
}

func (s *Service) lockSession(sessionID string) func() {
	s.mu.Lock()
	lock, ok := s.locks[sessionID]
	if !ok {
		lock = &sync.Mutex{}
		s.locks[sessionID] = lock
	}
	s.mu.Unlock()

	lock.Lock()
	return lock.Unlock
}
