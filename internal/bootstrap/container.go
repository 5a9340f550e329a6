package bootstrap

import (
	"context"
	"fmt"

	"ai-note-assistant/internal/config"
	"ai-note-assistant/internal/controller"
	"ai-note-assistant/internal/handler"
	"ai-note-assistant/internal/pkg/logger"
	"ai-note-assistant/internal/repository/contract"
	"ai-note-assistant/internal/repository/memory"
	"ai-note-assistant/internal/repository/redisstore"
	"ai-note-assistant/internal/repository/unitofwork"
	"ai-note-assistant/internal/service"
	"ai-note-assistant/internal/websocket"
	"ai-note-assistant/pkg/assistant/intent"
	"ai-note-assistant/pkg/assistant/response"
	"ai-note-assistant/pkg/assistant/state"
	"ai-note-assistant/pkg/assistant/suggest"
	"ai-note-assistant/pkg/llm"
	"ai-note-assistant/pkg/llm/factory"
	pktNats "ai-note-assistant/pkg/nats"
	"ai-note-assistant/pkg/search"
	"ai-note-assistant/pkg/store"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

const auditDurableName = "assistant-audit"

type Container struct {
	Logger logger.ILogger

	// Controllers
	AssistantController controller.IAssistantController
	NoteController      controller.INoteController
	ConversationHandler *handler.ConversationHandler

	// Core
	AssistantService service.IAssistantService
	NoteStore        store.NoteStore

	// Background Services (Exposed for main.go to run)
	ConsumerService service.IConsumerService
	WebSocketHub    *websocket.Hub
	LexiconWatcher  *search.LexiconWatcher // nil unless a lexicon file is watched

	closers []func()
}

// Options lets callers swap the text oracle, mostly for the console and tests.
type Options struct {
	Oracle llm.LLMProvider
	Logger logger.ILogger
}

// NewContainer wires the application. A nil db keeps notes in memory.
func NewContainer(ctx context.Context, db *gorm.DB, cfg *config.Config, opts Options) (*Container, error) {
	c := &Container{}

	// 1. Core Facades
	sysLogger := opts.Logger
	if sysLogger == nil {
		sysLogger = logger.NewZapLogger(cfg.App.LogFilePath, cfg.IsProduction())
	}
	c.Logger = sysLogger

	var uowFactory unitofwork.RepositoryFactory
	if db != nil {
		uowFactory = unitofwork.NewRepositoryFactory(db)
	} else {
		sysLogger.Warn("Bootstrap", "No database configured, notes are kept in memory", nil)
		uowFactory = memory.NewRepositoryFactory(nil)
	}

	// 2. Search
	var lexicon search.LexiconSource = search.DefaultLexicon()
	if cfg.Search.LexiconFile != "" {
		watcher, err := search.NewLexiconWatcher(cfg.Search.LexiconFile, sysLogger)
		if err != nil {
			return nil, fmt.Errorf("load lexicon: %w", err)
		}
		lexicon = watcher
		if cfg.Search.LexiconWatch {
			c.LexiconWatcher = watcher
		}
	}
	engine := search.NewEngine(lexicon)

	// 3. Infrastructure
	var eventPublisher service.EventPublisher
	if cfg.App.NatsURL != "" {
		natsPub, err := pktNats.NewPublisher(cfg.App.NatsURL, sysLogger)
		if err != nil {
			sysLogger.Warn("Bootstrap", "Failed to connect to NATS Publisher", map[string]interface{}{"error": err.Error()})
		} else {
			eventPublisher = natsPub
			c.closers = append(c.closers, natsPub.Close)
			c.startEventAudit(ctx, cfg, sysLogger)
		}
	}

	var rdb *redis.Client
	if cfg.App.RedisURL != "" {
		opt, err := redis.ParseURL(cfg.App.RedisURL)
		if err != nil {
			sysLogger.Warn("Bootstrap", "Failed to parse Redis URL, using it as address", map[string]interface{}{"error": err.Error()})
			opt = &redis.Options{Addr: cfg.App.RedisURL}
		}
		rdb = redis.NewClient(opt)
		if err := rdb.Ping(ctx).Err(); err != nil {
			sysLogger.Warn("Bootstrap", "Failed to connect to Redis", map[string]interface{}{"error": err.Error()})
		}
		c.closers = append(c.closers, func() { rdb.Close() })
	}

	var conversations contract.ConversationRepository
	switch cfg.Conversation.Store {
	case "redis":
		if rdb == nil {
			return nil, fmt.Errorf("CONVERSATION_STORE=redis requires REDIS_URL")
		}
		conversations = redisstore.NewConversationRepository(rdb, cfg.Conversation.TTL)
	case "", "memory":
		conversations = memory.NewConversationRepository(cfg.Conversation.TTL)
	default:
		return nil, fmt.Errorf("unsupported conversation store: %s", cfg.Conversation.Store)
	}

	// 4. Text oracle
	oracle := opts.Oracle
	if oracle == nil {
		var err error
		oracle, err = factory.NewLLMProvider(ctx, cfg.Ai.LLMProvider, cfg.Ai.LLMModel, cfg.Ai.OllamaBaseURL, cfg.Keys.GoogleGemini)
		if err != nil {
			return nil, fmt.Errorf("init LLM provider: %w", err)
		}
		sysLogger.Info("Bootstrap", "Using LLM provider", map[string]interface{}{
			"provider": cfg.Ai.LLMProvider,
			"model":    cfg.Ai.LLMModel,
		})
	}

	// 5. Services
	c.NoteStore = service.NewNoteService(uowFactory, engine, eventPublisher, cfg.Database.QueryLimit, sysLogger)
	suggester := suggest.NewSuggester(c.NoteStore, engine, sysLogger)
	classifier := intent.NewClassifier(oracle, c.NoteStore, suggester, sysLogger)
	states := state.NewManager(conversations, sysLogger)

	wsLogger := logger.NewIsolatedLogger("logs/websocket.log")
	c.WebSocketHub = websocket.NewHub(rdb, wsLogger)

	c.AssistantService = service.NewAssistantService(
		classifier,
		c.NoteStore,
		states,
		response.NewFormatter(),
		c.WebSocketHub,
		sysLogger,
	)

	// 6. Inbound queue
	pubSub := gochannel.NewGoChannel(
		gochannel.Config{},
		watermill.NewStdLogger(false, false),
	)
	c.closers = append(c.closers, func() { pubSub.Close() })

	publisherService := service.NewPublisherService(cfg.Events.InboundTopic, pubSub)
	c.ConsumerService = service.NewConsumerService(pubSub, cfg.Events.InboundTopic, c.AssistantService, sysLogger)

	// 7. Controllers
	c.AssistantController = controller.NewAssistantController(c.AssistantService, publisherService)
	c.NoteController = controller.NewNoteController(c.NoteStore)
	c.ConversationHandler = handler.NewConversationHandler(c.AssistantService, c.WebSocketHub, wsLogger)

	return c, nil
}

func (c *Container) startEventAudit(ctx context.Context, cfg *config.Config, log logger.ILogger) {
	natsSub, err := pktNats.NewSubscriber(cfg.App.NatsURL, log)
	if err != nil {
		log.Warn("Bootstrap", "Failed to connect to NATS Subscriber", map[string]interface{}{"error": err.Error()})
		return
	}
	audit := service.NewEventAuditService(log)
	if err := natsSub.Subscribe(ctx, pktNats.SubjectPrefix+">", auditDurableName, audit.Handle); err != nil {
		log.Warn("Bootstrap", "Failed to subscribe event audit", map[string]interface{}{"error": err.Error()})
		natsSub.Close()
		return
	}
	c.closers = append(c.closers, natsSub.Close)
}

// Close releases connections in reverse order of creation.
func (c *Container) Close() {
	for i := len(c.closers) - 1; i >= 0; i-- {
		c.closers[i]()
	}
	if c.Logger != nil {
		c.Logger.Sync()
	}
}
