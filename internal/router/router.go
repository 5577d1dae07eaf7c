package router

import (
	"net/http"
	"time"

	_ "petplus/docs"
	"petplus/internal/adapters/auth/jwtauth"
	memmedia "petplus/internal/adapters/media/memory"
	mem "petplus/internal/adapters/storage/memory"
	pg "petplus/internal/adapters/storage/postgres"
	"petplus/internal/domain/media"
	"petplus/internal/domain/pets"
	"petplus/internal/domain/posts"
	"petplus/internal/domain/services"
	"petplus/internal/domain/users"
	"petplus/internal/domain/vaccines"
	"petplus/internal/middleware"
	"petplus/internal/platform/logger"
	"petplus/internal/platform/metrics"
	"petplus/internal/platform/respond"
	"petplus/internal/ports/auth"
	portmedia "petplus/internal/ports/media"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	httpSwagger "github.com/swaggo/http-swagger"
)

type Options struct {
	Logger logger.Logger

	// Verifier e Issuer normalmente son el mismo jwtauth.Manager.
	// Si faltan se usa un manager con secreto aleatorio (modo dev: los tokens no sobreviven un reinicio).
	Verifier auth.AuthVerifier
	Issuer   auth.TokenIssuer

	// Uploader nil => relay en memoria.
	Uploader       portmedia.Uploader
	UploadMaxBytes int64

	// Cache nil => sin cache de /services.
	Cache            services.Cache
	ServicesCacheTTL time.Duration

	CORSAllowedOrigins []string

	// Opcional: si viene, usa Postgres. Si no, in-memory.
	DB *sqlx.DB
}

type repos struct {
	users    users.Repository
	pets     pets.Repository
	vaccines vaccines.Repository
	services services.Repository
	posts    posts.Repository
}

func newRepos(db *sqlx.DB) repos {
	if db != nil {
		return repos{
			users:    pg.NewUsersRepo(db),
			pets:     pg.NewPetsRepo(db),
			vaccines: pg.NewVaccinesRepo(db),
			services: pg.NewServicesRepo(db),
			posts:    pg.NewPostsRepo(db),
		}
	}

	usersRepo := mem.NewUserRepo()
	vaccineRepo := mem.NewVaccineRepo()
	return repos{
		users:    usersRepo,
		pets:     mem.NewPetRepo(usersRepo, vaccineRepo),
		vaccines: vaccineRepo,
		services: mem.NewServiceRepo(),
		posts:    mem.NewPostRepo(usersRepo),
	}
}

func NewRouter(opts Options) http.Handler {
	log := opts.Logger
	if log == nil {
		log = logger.NewNop()
	}

	verifier, issuer := opts.Verifier, opts.Issuer
	if verifier == nil || issuer == nil {
		dev, _ := jwtauth.NewManager(uuid.NewString())
		if verifier == nil {
			verifier = dev
		}
		if issuer == nil {
			issuer = dev
		}
		log.Warn("jwt: using ephemeral dev secret", nil)
	}

	uploader := opts.Uploader
	if uploader == nil {
		uploader = memmedia.NewUploader("")
	}
	relay := media.NewRelay(uploader, opts.UploadMaxBytes)
	limit := relay.MaxBytes()

	rp := newRepos(opts.DB)

	// Services por módulo
	usersSvc := users.NewService(rp.users, issuer, relay)
	petsSvc := pets.NewService(rp.pets, rp.vaccines, relay)
	vaccinesSvc := vaccines.NewService(rp.vaccines, petsSvc)
	servicesSvc := services.NewService(rp.services, opts.Cache, opts.ServicesCacheTTL)
	postsSvc := posts.NewService(rp.posts, relay)

	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(middleware.Recover(log))
	r.Use(metrics.Instrument)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   opts.CORSAllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
		MaxAge:           300,
	}))
	r.Use(middleware.AuthContext(verifier))
	r.Use(middleware.RequestLog(log))

	r.NotFound(func(w http.ResponseWriter, _ *http.Request) {
		respond.Error(w, http.StatusNotFound, "not found")
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, _ *http.Request) {
		respond.Error(w, http.StatusMethodNotAllowed, "method not allowed")
	})

	r.Get("/", func(w http.ResponseWriter, _ *http.Request) {
		respond.JSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	r.Handle("/metrics", metrics.Handler())
	r.Get("/swagger/*", httpSwagger.Handler(httpSwagger.URL("/swagger/doc.json")))

	// Rutas por módulo; el cliente web usa el prefijo /api, así que se montan en ambos.
	api := func(ar chi.Router) {
		users.RegisterRoutes(ar, usersSvc, limit)
		pets.RegisterRoutes(ar, petsSvc, limit, func(pr chi.Router) {
			vaccines.RegisterRoutes(pr, vaccinesSvc)
		})
		services.RegisterRoutes(ar, servicesSvc)
		posts.RegisterRoutes(ar, postsSvc, limit)
	}
	r.Group(api)
	r.Route("/api", api)

	return r
}
