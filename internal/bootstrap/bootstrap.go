package bootstrap

import (
	"context"
	"errors"
	"fmt"

	"github.com/inscribe-ai/docprocessor/internal/config"
	"github.com/inscribe-ai/docprocessor/internal/core/ports"
	"github.com/inscribe-ai/docprocessor/internal/core/usecase"
	"github.com/inscribe-ai/docprocessor/internal/infrastructure/chunking"
	"github.com/inscribe-ai/docprocessor/internal/infrastructure/extractor/pdffile"
	"github.com/inscribe-ai/docprocessor/internal/infrastructure/llm/openai"
	"github.com/inscribe-ai/docprocessor/internal/infrastructure/queue/nats"
	"github.com/inscribe-ai/docprocessor/internal/infrastructure/repository/postgres"
	"github.com/inscribe-ai/docprocessor/internal/infrastructure/resilience"
	"github.com/inscribe-ai/docprocessor/internal/infrastructure/storage/localfs"
	"github.com/inscribe-ai/docprocessor/internal/infrastructure/vector/qdrant"
)

type App struct {
	Config config.Config

	Queue ports.TaskQueue
	Repo  ports.DocumentRepository

	UploadUC  ports.DocumentIngestor
	ProcessUC ports.DocumentProcessor
	QueryUC   ports.DocumentQueryService
	StatusUC  ports.StatusReader
	ManageUC  ports.DocumentManager

	closeFn func()
}

func New(ctx context.Context, cfg config.Config) (*App, error) {
	if cfg.PostgresDSN == "" {
		return nil, errors.New("POSTGRES_DSN is required")
	}

	db, err := postgres.OpenDB(cfg.PostgresDSN)
	if err != nil {
		return nil, fmt.Errorf("open postgres: %w", err)
	}
	repo := postgres.NewDocumentRepository(db)
	if err := repo.EnsureSchema(ctx); err != nil {
		return nil, fmt.Errorf("ensure schema: %w", err)
	}
	analyses := postgres.NewAnalysisRepository(db)

	storage, err := localfs.New(cfg.UploadDir)
	if err != nil {
		return nil, fmt.Errorf("init object storage: %w", err)
	}

	executor := resilience.NewExecutor(resilience.DefaultConfig())

	queue, err := nats.NewWithOptions(cfg.NATSURL, cfg.NATSSubject, nats.Options{
		ResilienceExecutor: executor,
	})
	if err != nil {
		return nil, fmt.Errorf("init task queue: %w", err)
	}

	var llm *openai.Client
	if cfg.OpenAIBaseURL != "" {
		llm = openai.NewWithBaseURL(cfg.OpenAIAPIKey, cfg.OpenAIBaseURL, cfg.OpenAIChatModel, cfg.OpenAIEmbedModel, executor)
	} else {
		llm = openai.New(cfg.OpenAIAPIKey, cfg.OpenAIChatModel, cfg.OpenAIEmbedModel, executor)
	}

	chunkStore := qdrant.New(cfg.QdrantURL, cfg.QdrantCollection)
	chunker := chunking.NewSplitter(cfg.ChunkSize, cfg.ChunkOverlap)
	extractor := pdffile.NewExtractor(storage)

	summarizer := usecase.NewSummarizeUseCase(llm, cfg.SummaryTargetChunks, cfg.SummaryMinChunkSize)
	indexer := usecase.NewIndexChunksUseCase(chunker, llm, chunkStore)

	uploadUC := usecase.NewUploadDocumentUseCase(repo, storage, queue)
	processUC := usecase.NewProcessDocumentUseCase(repo, analyses, storage, extractor, summarizer, indexer)
	queryUC := usecase.NewQueryDocumentUseCase(analyses, llm, chunkStore, llm, cfg.QueryTopK, cfg.SimilarityThreshold)
	statusUC := usecase.NewStatusUseCase(repo, analyses)
	manageUC := usecase.NewManageDocumentUseCase(repo, analyses, chunkStore)

	return &App{
		Config: cfg,
		Queue:  queue,
		Repo:   repo,

		UploadUC:  uploadUC,
		ProcessUC: processUC,
		QueryUC:   queryUC,
		StatusUC:  statusUC,
		ManageUC:  manageUC,

		closeFn: func() {
			queue.Close()
			_ = db.Close()
		},
	}, nil
}

func (a *App) Close() {
	if a.closeFn != nil {
		a.closeFn()
	}
}
