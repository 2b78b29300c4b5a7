package http

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/aussiebroadwan/tally/internal/tenant/metrics"
	"github.com/aussiebroadwan/tally/internal/tenant/service"
	"github.com/aussiebroadwan/tally/internal/tenant/store"
	"github.com/aussiebroadwan/tally/pkg/cryptox"
	"github.com/aussiebroadwan/tally/pkg/httpx"
	"github.com/aussiebroadwan/tally/pkg/jwtx"
	"github.com/aussiebroadwan/tally/pkg/slogx"
	"github.com/aussiebroadwan/tally/pkg/tenantsdk"

	_ "github.com/aussiebroadwan/tally/api/tenant" // Swagger docs
	httpSwagger "github.com/swaggo/http-swagger"
)

// Router holds shared dependencies for HTTP handlers.
type Router struct {
	Mux         *http.ServeMux
	middlewares []httpx.Middleware

	verifier     jwtx.Verifier
	buildVersion string
	startTime    time.Time
	logger       *slog.Logger

	store    store.Store
	vault    *cryptox.Vault
	Services *service.Services

	// Metrics is optional. When nil /metrics is not served.
	Metrics *metrics.Collector

	// BillingToken is the shared secret the billing provider sends. When
	// empty every billing event is refused.
	BillingToken string
}

func NewRouter(
	verifier jwtx.Verifier,
	buildVersion string,
	st store.Store,
	vault *cryptox.Vault,
	services *service.Services,
	logger *slog.Logger,
) *Router {
	r := &Router{
		Mux:          http.NewServeMux(),
		verifier:     verifier,
		buildVersion: buildVersion,
		startTime:    time.Now(),
		logger:       logger,
		store:        st,
		vault:        vault,
		Services:     services,
	}

	r.middlewares = []httpx.Middleware{
		slogx.HTTPMiddleware(r.logger),
	}

	return r
}

func (r *Router) ApplyRoutes() {
	r.registerIdentity()
	r.registerCompanies()
	r.registerMembers()
	r.registerSubscription()
	r.registerAudit()
	r.registerCredentials()
	r.registerTransactions()
	r.registerSystem()

	r.Mux.Handle("/swagger/", httpSwagger.Handler())
}

// ServeHTTP implements http.Handler for Router and applies the global middleware chain.
//
//	@title			Tally Tenant Service API
//	@version		0.1.0
//	@description	Tenant directory, authorization and provisioning for Tally. Every company-scoped route is checked against the caller's role and the company's subscription.
//	@description
//	@description				Tokens are issued by the identity provider; this service only reads the subject.
//
//	@contact.name				AussieBroadWAN Team
//	@contact.url				https://github.com/aussiebroadwan/tally
//
//	@license.name				MIT
//	@license.url				https://opensource.org/licenses/MIT
//
//	@host						localhost:8080
//	@BasePath					/
//
//	@schemes					http https
//
//	@securityDefinitions.apikey	BearerAuth
//	@in							header
//	@name						Authorization
//	@description				JWT access token. Format: "Bearer {token}".
func (r *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	httpx.Chain(r.Mux, r.middlewares...).ServeHTTP(w, req)
}

// handle registers h under pattern with request metrics labelled by the
// pattern itself.
func (r *Router) handle(pattern string, h http.Handler, mws ...httpx.Middleware) {
	r.Mux.Handle(pattern, r.Metrics.Middleware(pattern, httpx.Chain(h, mws...)))
}

// secured is the chain for routes that act as the calling principal.
func (r *Router) secured(limit httpx.RateLimitConfig) []httpx.Middleware {
	return []httpx.Middleware{
		httpx.AuthnMiddleware(r.verifier),
		httpx.RateLimitByPrincipal(limit),
	}
}

func (r *Router) registerIdentity() {
	// POST /bootstrap - strict: each call may provision a company
	r.handle("POST /v1/bootstrap",
		&BootstrapHandler{BootstrapService: r.Services.Bootstrap},
		r.secured(httpx.StrictLimit)...,
	)

	r.handle("GET /v1/me",
		&MeHandler{Directory: r.Services.Directory},
		r.secured(httpx.LenientLimit)...,
	)

	// POST /authorize - other services ask before every gated action
	r.handle("POST /v1/authorize",
		&AuthorizeHandler{Guard: r.Services.Guard},
		r.secured(httpx.LenientLimit)...,
	)
}

func (r *Router) registerCompanies() {
	h := &CompanyHandler{Companies: r.Services.Companies}

	r.handle("GET /v1/companies/{companyID}", http.HandlerFunc(h.HandleGet), r.secured(httpx.LenientLimit)...)
	r.handle("PATCH /v1/companies/{companyID}", http.HandlerFunc(h.HandleUpdate), r.secured(httpx.ModerateLimit)...)
	r.handle("DELETE /v1/companies/{companyID}", http.HandlerFunc(h.HandleDelete), r.secured(httpx.StrictLimit)...)
}

func (r *Router) registerMembers() {
	h := &MembersHandler{Members: r.Services.Members}

	r.handle("GET /v1/companies/{companyID}/members", http.HandlerFunc(h.HandleList), r.secured(httpx.LenientLimit)...)
	r.handle("POST /v1/companies/{companyID}/members", http.HandlerFunc(h.HandleAdd), r.secured(httpx.ModerateLimit)...)
	r.handle("PUT /v1/companies/{companyID}/members/{principalID}", http.HandlerFunc(h.HandleChangeRole), r.secured(httpx.ModerateLimit)...)
	r.handle("DELETE /v1/companies/{companyID}/members/{principalID}", http.HandlerFunc(h.HandleRemove), r.secured(httpx.ModerateLimit)...)
}

func (r *Router) registerSubscription() {
	h := &SubscriptionHandler{Subscriptions: r.Services.Subscriptions}

	r.handle("GET /v1/companies/{companyID}/subscription", http.HandlerFunc(h.HandleGet), r.secured(httpx.LenientLimit)...)
	r.handle("PATCH /v1/companies/{companyID}/subscription", http.HandlerFunc(h.HandleUpdate), r.secured(httpx.ModerateLimit)...)

	// POST /billing/events - machine caller, shared token instead of a JWT
	r.handle("POST /v1/billing/events",
		&BillingHandler{Subscriptions: r.Services.Subscriptions},
		httpx.RequireSharedToken(tenantsdk.BillingTokenHeader, r.BillingToken),
		httpx.RateLimitByIP(httpx.PublicLimit),
	)
}

func (r *Router) registerAudit() {
	h := &AuditHandler{Audit: r.Services.Audit}

	r.handle("GET /v1/companies/{companyID}/audit", http.HandlerFunc(h.HandleList), r.secured(httpx.ModerateLimit)...)

	// Verification replays the whole chain
	r.handle("GET /v1/companies/{companyID}/audit/verify", http.HandlerFunc(h.HandleVerify), r.secured(httpx.StrictLimit)...)
}

func (r *Router) registerCredentials() {
	h := &CredentialsHandler{Credentials: r.Services.Credentials}

	r.handle("GET /v1/companies/{companyID}/credentials", http.HandlerFunc(h.HandleList), r.secured(httpx.LenientLimit)...)
	r.handle("GET /v1/companies/{companyID}/credentials/{platform}", http.HandlerFunc(h.HandleGet), r.secured(httpx.ModerateLimit)...)
	r.handle("PUT /v1/companies/{companyID}/credentials/{platform}", http.HandlerFunc(h.HandlePut), r.secured(httpx.ModerateLimit)...)
	r.handle("DELETE /v1/companies/{companyID}/credentials/{platform}", http.HandlerFunc(h.HandleDelete), r.secured(httpx.ModerateLimit)...)
	r.handle("POST /v1/companies/{companyID}/credentials/{platform}/sync", http.HandlerFunc(h.HandleSync), r.secured(httpx.LenientLimit)...)
}

func (r *Router) registerTransactions() {
	h := &TransactionsHandler{Transactions: r.Services.Transactions}

	r.handle("GET /v1/companies/{companyID}/transactions", http.HandlerFunc(h.HandleList), r.secured(httpx.LenientLimit)...)
	r.handle("POST /v1/companies/{companyID}/transactions", http.HandlerFunc(h.HandleCreate), r.secured(httpx.LenientLimit)...)
	r.handle("GET /v1/companies/{companyID}/transactions/{transactionID}", http.HandlerFunc(h.HandleGet), r.secured(httpx.LenientLimit)...)
	r.handle("DELETE /v1/companies/{companyID}/transactions/{transactionID}", http.HandlerFunc(h.HandleDelete), r.secured(httpx.ModerateLimit)...)
}

func (r *Router) registerSystem() {
	// Health check endpoints - lenient rate limits (monitoring systems may poll frequently)
	r.Mux.Handle("GET /livez",
		httpx.Chain(LivezHandler(r.startTime, r.buildVersion),
			httpx.RateLimitByIP(httpx.LenientLimit),
		),
	)
	r.Mux.Handle("GET /readyz",
		httpx.Chain(ReadyzHandler(r.startTime, r.buildVersion, r.store, r.vault),
			httpx.RateLimitByIP(httpx.LenientLimit),
		),
	)

	if r.Metrics != nil {
		r.Mux.Handle("GET /metrics", r.Metrics.Handler())
	}
}
