package handlers

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"time"

	"github.com/gomodule/redigo/redis"
	"github.com/gorilla/mux"
	"go.uber.org/zap"

	"github.com/pickupsports/game-chat-api/api"
	"github.com/pickupsports/game-chat-api/chat"
	"github.com/pickupsports/game-chat-api/config"
	"github.com/pickupsports/game-chat-api/databases"
	"github.com/pickupsports/game-chat-api/models"
	"github.com/pickupsports/game-chat-api/realtime"
	"github.com/pickupsports/game-chat-api/redisconn"
)

// App stores the router, db connection and realtime plumbing, so it can be reused
type App struct {
	Router    *mux.Router
	Config    config.Config
	Hub       *realtime.Hub
	Publisher realtime.Publisher
	RedisPool *redis.Pool

	dbHelper   databases.DatabaseHelper
	service    *chat.Service
	cursors    *chat.CursorService
	filter     *chat.ProfanityFilter
	subscriber *realtime.Subscriber
}

// Messages exposes the chat message database for the scheduler wiring in main
func (a *App) Messages() databases.ChatMessageDatabase {
	return databases.NewChatMessageDatabase(a.dbHelper)
}

// Locks exposes the scheduler lock database for the scheduler wiring in main
func (a *App) Locks() databases.SchedulerLockDatabase {
	return databases.NewSchedulerLockDatabase(a.dbHelper)
}

// New creates a new mux router and all the routes
func (a *App) New() *mux.Router {
	authn := realtime.NewConnectionAuthenticator(&a.Config)

	// setup go-guardian for middleware
	m := api.MiddlewareAuth{Auth: authn}
	m.SetupGoGuardian()

	r := mux.NewRouter()

	messages := databases.NewChatMessageDatabase(a.dbHelper)
	games := databases.NewGameDatabase(a.dbHelper)
	moderation := databases.NewModerationDatabase(a.dbHelper)
	cursors := databases.NewReadCursorDatabase(a.dbHelper)

	a.filter = chat.NewProfanityFilter(&a.Config)
	var limiter chat.RateLimiter
	if a.RedisPool != nil {
		limiter = chat.NewRedisRateLimiter(a.RedisPool)
	}
	a.service = &chat.Service{
		Messages:   messages,
		Games:      games,
		Moderation: moderation,
		Filter:     a.filter,
		Limiter:    limiter,
		RateLimit:  a.Config.ChatRateLimit,
		RateWindow: a.Config.ChatRateWindow,
	}
	a.cursors = &chat.CursorService{Cursors: cursors, Messages: messages}

	a.Hub = realtime.NewHub()
	if a.Config.ClusterFanout && a.RedisPool != nil {
		a.Publisher = &realtime.ClusteredPublisher{
			Pool:    a.RedisPool,
			Channel: a.Config.ChatChannel,
			Hub:     a.Hub,
		}
		a.subscriber = &realtime.Subscriber{
			Pool:    a.RedisPool,
			Channel: a.Config.ChatChannel,
			Hub:     a.Hub,
		}
	} else {
		a.Publisher = &realtime.LocalPublisher{Hub: a.Hub}
	}

	c := Chat{Service: a.service, Publisher: a.Publisher, Games: games}
	rs := ReadStatus{Cursors: a.cursors, Games: games}
	pa := ProfanityAdmin{Filter: a.filter}
	ma := ModerationAdmin{DB: moderation}
	ws := ChatSocket{
		Hub:        a.Hub,
		Auth:       authn,
		Authorizer: &realtime.DestinationAuthorizer{Games: games},
		Service:    a.service,
		Publisher:  a.Publisher,
	}

	// healthchex
	r.HandleFunc("/health", healthCheckHandler)

	r.HandleFunc("/ws/chat", ws.HandleChatWebSocket)

	// REST routes get a request deadline; the websocket stays outside
	// the subrouter because its connections are long-lived.
	apiCreate := r.PathPrefix("/api/v1").Subrouter()
	apiCreate.Use(api.TimeoutMiddleware(30 * time.Second))

	apiCreate.Handle("/auth/token", http.HandlerFunc(m.CreateToken)).Methods("POST")
	apiCreate.Handle("/auth/logout", api.Middleware(http.HandlerFunc(api.RevokeToken))).Methods("DELETE")

	apiCreate.Handle("/games/{gameId}/chat", api.Middleware(http.HandlerFunc(c.SubmitHandler))).Methods("POST")
	apiCreate.Handle("/games/{gameId}/chat/history", api.Middleware(http.HandlerFunc(c.HistoryHandler))).Methods("GET")
	apiCreate.Handle("/games/{gameId}/chat/latest", api.Middleware(http.HandlerFunc(c.LatestHandler))).Methods("GET")
	apiCreate.Handle("/games/{gameId}/chat/since", api.Middleware(http.HandlerFunc(c.SinceHandler))).Methods("GET")

	apiCreate.Handle("/games/{gameId}/chat/read-status/{username}", api.Middleware(http.HandlerFunc(rs.GetHandler))).Methods("GET")
	apiCreate.Handle("/games/{gameId}/chat/read-status/{username}", api.Middleware(http.HandlerFunc(rs.UpdateHandler))).Methods("PUT")
	apiCreate.Handle("/games/{gameId}/chat/unread-count/{username}", api.Middleware(http.HandlerFunc(rs.UnreadCountHandler))).Methods("GET")

	apiCreate.Handle("/admin/chat/filter/words", api.Middleware(http.HandlerFunc(pa.ListWordsHandler))).Methods("GET")
	apiCreate.Handle("/admin/chat/filter/words", api.Middleware(http.HandlerFunc(pa.AddWordHandler))).Methods("POST")
	apiCreate.Handle("/admin/chat/filter/words", api.Middleware(http.HandlerFunc(pa.ReplaceWordsHandler))).Methods("PUT")
	apiCreate.Handle("/admin/chat/filter/words/{word}", api.Middleware(http.HandlerFunc(pa.RemoveWordHandler))).Methods("DELETE")
	apiCreate.Handle("/admin/chat/filter/reload", api.Middleware(http.HandlerFunc(pa.ReloadHandler))).Methods("POST")
	apiCreate.Handle("/admin/chat/filter/settings", api.Middleware(http.HandlerFunc(pa.UpdateSettingsHandler))).Methods("PUT")

	apiCreate.Handle("/admin/games/{gameId}/moderation", api.Middleware(http.HandlerFunc(ma.GetHandler))).Methods("GET")
	apiCreate.Handle("/admin/games/{gameId}/moderation/mute", api.Middleware(http.HandlerFunc(ma.MuteHandler))).Methods("POST")
	apiCreate.Handle("/admin/games/{gameId}/moderation/mute/{username}", api.Middleware(http.HandlerFunc(ma.UnmuteHandler))).Methods("DELETE")
	apiCreate.Handle("/admin/games/{gameId}/moderation/kick", api.Middleware(http.HandlerFunc(ma.KickHandler))).Methods("POST")
	apiCreate.Handle("/admin/games/{gameId}/moderation/kick/{username}", api.Middleware(http.HandlerFunc(ma.UnkickHandler))).Methods("DELETE")

	return r
}

// Initialize is invoked by main to connect with the database and create a router
func (a *App) Initialize() error {

	client, err := databases.NewClient(&a.Config)
	if err != nil {
		// if we fail to create a new database client, then kill the pod
		zap.S().With(err).Error("failed to create new client")
		return err
	}

	a.dbHelper = databases.NewDatabase(&a.Config, client)
	err = client.Connect()
	if err != nil {
		// if we fail to connect to the database, then kill the pod
		zap.S().With(err).Error("failed to connect to database")
		return err
	}
	zap.S().Info("game-chat-api has connected to the database")

	if a.Config.RedisURL != "" {
		a.RedisPool = redisconn.NewPool(a.Config.RedisURL)
	}

	// initialize api router
	a.initializeRoutes()

	if err := a.ensureIndexes(); err != nil {
		zap.S().With(err).Error("failed to create indexes")
		return err
	}

	if a.subscriber != nil {
		go a.subscriber.Run(context.Background())
	}
	return nil

}

func (a *App) initializeRoutes() {
	a.Router = a.New()
}

// ensureIndexes creates the unique and read-path indexes the pipeline
// relies on; without the (gameId, clientId) index the idempotency
// contract does not hold.
func (a *App) ensureIndexes() error {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := databases.NewChatMessageDatabase(a.dbHelper).EnsureIndexes(ctx); err != nil {
		return err
	}
	if err := databases.NewReadCursorDatabase(a.dbHelper).EnsureIndexes(ctx); err != nil {
		return err
	}
	return databases.NewModerationDatabase(a.dbHelper).EnsureIndexes(ctx)
}

func healthCheckHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	b, _ := json.Marshal(models.HealthCheckResponse{
		Alive: true,
	})
	_, _ = io.WriteString(w, string(b))
}
