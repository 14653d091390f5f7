package main

import (
	"context"
	"fmt"
	"time"

	"leavedesk/internal/chat"
	"leavedesk/internal/config"
	"leavedesk/internal/embedding"
	"leavedesk/internal/hr"
	"leavedesk/internal/logging"
	"leavedesk/internal/perception"
	"leavedesk/internal/retrieval"
	"leavedesk/internal/session"
	"leavedesk/internal/tools"
)

// buildOrchestrator assembles the full turn pipeline from configuration.
// The returned cleanup closes the retrieval index if one was opened.
func buildOrchestrator(cfg *config.Config) (*chat.Orchestrator, func(), error) {
	if err := cfg.Validate(); err != nil {
		return nil, nil, err
	}

	llm := perception.NewGeminiClientWithConfig(perception.GeminiConfig{
		APIKey:  cfg.LLM.APIKey,
		BaseURL: cfg.LLM.BaseURL,
		Model:   cfg.LLM.Model,
		Timeout: cfg.LLMTimeout(),
	})

	searcher, cleanup, err := buildSearcher(cfg)
	if err != nil {
		return nil, nil, err
	}

	dir := hr.NewDirectory()
	catalog := tools.NewCatalog(dir, searcher)
	orch := chat.NewOrchestrator(llm, catalog.Registry(), session.NewStore())

	logging.Boot("orchestrator wired: model=%s tools=%d", cfg.LLM.Model, catalog.Registry().Count())
	return orch, cleanup, nil
}

// buildSearcher prefers the embedding-backed index and falls back to keyword
// search when the index cannot be built.
func buildSearcher(cfg *config.Config) (retrieval.Searcher, func(), error) {
	engine, err := embedding.NewGenAIEngine(cfg.LLM.APIKey, cfg.Retrieval.EmbeddingModel, "RETRIEVAL_DOCUMENT")
	if err != nil {
		logging.Retrieval("embedding engine unavailable (%v), using keyword search", err)
		return retrieval.NewKeywordSearcher(retrieval.PolicyDocument(), cfg.Retrieval.ChunkSize, cfg.Retrieval.ChunkOverlap), func() {}, nil
	}

	idx, err := retrieval.NewIndex(cfg.Retrieval.DatabasePath, engine)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open policy index: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()
	if err := idx.EnsureBuilt(ctx, retrieval.PolicyDocument(), cfg.Retrieval.ChunkSize, cfg.Retrieval.ChunkOverlap); err != nil {
		idx.Close()
		logging.Retrieval("policy index build failed (%v), using keyword search", err)
		return retrieval.NewKeywordSearcher(retrieval.PolicyDocument(), cfg.Retrieval.ChunkSize, cfg.Retrieval.ChunkOverlap), func() {}, nil
	}

	return idx, func() { idx.Close() }, nil
}
