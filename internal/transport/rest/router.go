package rest

import (
	"database/sql"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi"
	chiMiddleware "github.com/go-chi/chi/middleware"
	goredis "github.com/redis/go-redis/v9"

	"github.com/silcast/crane-admin/internal/access"
	"github.com/silcast/crane-admin/internal/auth"
	"github.com/silcast/crane-admin/internal/client"
	"github.com/silcast/crane-admin/internal/contact"
	"github.com/silcast/crane-admin/internal/crane"
	"github.com/silcast/crane-admin/internal/employee"
	"github.com/silcast/crane-admin/internal/inventory"
	"github.com/silcast/crane-admin/internal/lookup"
	"github.com/silcast/crane-admin/internal/movement"
	"github.com/silcast/crane-admin/internal/servicereport"
	"github.com/silcast/crane-admin/internal/supplier"
	"github.com/silcast/crane-admin/internal/transport"
	"github.com/silcast/crane-admin/internal/transport/middleware"
	"github.com/silcast/crane-admin/internal/transport/swagger"
	"github.com/silcast/crane-admin/internal/user"
)

// Handlers groups every HTTP handler the API mounts. A nil handler leaves its routes unmounted.
type Handlers struct {
	Auth          *auth.Handler
	RBAC          *auth.RBACAuthorization
	Employee      *employee.Handler
	Crane         *crane.Handler
	Movement      *movement.Handler
	Supplier      *supplier.Handler
	Client        *client.Handler
	Inventory     *inventory.Handler
	ServiceReport *servicereport.Handler
	Access        *access.Handler
	User          *user.Handler
	Lookup        *lookup.Handler
	Contact       *contact.Handler
}

type Options struct {
	DB             *sql.DB
	Redis          *goredis.Client
	OpenAPI        *swagger.Document
	AllowedOrigins []string
	Logger         *slog.Logger
}

// crudHandler is the uniform five-route contract of every managed entity.
type crudHandler interface {
	List(w http.ResponseWriter, r *http.Request)
	Get(w http.ResponseWriter, r *http.Request)
	Create(w http.ResponseWriter, r *http.Request)
	Update(w http.ResponseWriter, r *http.Request)
	Delete(w http.ResponseWriter, r *http.Request)
}

type crudPermissions struct {
	view, create, edit, delete string
}

func NewRouter(opts Options, h Handlers) *chi.Mux {
	router := chi.NewRouter()
	RegisterAllRoutes(router, opts, h)
	return router
}

func RegisterAllRoutes(router *chi.Mux, opts Options, h Handlers) {
	healthHandler := NewHealthHandler(opts.DB, opts.Redis)
	rbac := h.RBAC
	if rbac == nil {
		rbac = auth.NewRBACAuthorization(opts.Logger)
	}

	router.Use(middleware.CORS(opts.AllowedOrigins))
	router.Use(chiMiddleware.RequestID)
	router.Use(middleware.RequestID)
	router.Use(middleware.Logging)
	router.Use(middleware.Recovery(transport.NewBaseHandler(opts.Logger)))

	if opts.OpenAPI != nil {
		router.Method(http.MethodGet, swagger.DocumentURL, opts.OpenAPI)
		router.Handle("/swagger/*", swagger.Handler())
	}

	router.Route("/api", func(r chi.Router) {
		r.Get("/health", healthHandler.Health)
		r.Get("/ping", healthHandler.Ping)

		if h.Contact != nil {
			r.Post("/enviar-correo", h.Contact.Send)
		}
		if h.Auth == nil {
			return
		}
		r.Post("/auth/login", h.Auth.Login)

		r.Group(func(pr chi.Router) {
			pr.Use(h.Auth.AuthMiddleware)

			pr.Post("/auth/logout", h.Auth.Logout)
			pr.Get("/user", h.Auth.Me)

			if h.Lookup != nil {
				pr.With(rbac.Require(auth.PermViewEmployees)).Get("/employees-list", h.Lookup.Employees)
				pr.With(rbac.Require(auth.PermViewGruas)).Get("/gruas-list-simple", h.Lookup.Cranes)
			}

			if h.Employee != nil {
				pr.Route("/empleados", func(er chi.Router) {
					mountCRUD(er, rbac, h.Employee, crudPermissions{
						auth.PermViewEmployees, auth.PermCreateEmployees, auth.PermEditEmployees, auth.PermDeleteEmployees,
					})
				})
			}
			if h.Crane != nil {
				pr.Route("/gruas", func(gr chi.Router) {
					mountCRUD(gr, rbac, h.Crane, crudPermissions{
						auth.PermViewGruas, auth.PermCreateGruas, auth.PermEditGruas, auth.PermDeleteGruas,
					})
				})
			}
			if h.Movement != nil {
				pr.Route("/movimientos-grua", func(mr chi.Router) {
					mr.With(rbac.Require(auth.PermViewMovements)).Get("/filter-by-date", h.Movement.FilterByDate)
					mr.With(rbac.Require(auth.PermViewMovements)).Get("/by-grua/{id}", h.Movement.ByCrane)
					mountCRUD(mr, rbac, h.Movement, crudPermissions{
						auth.PermViewMovements, auth.PermCreateMovements, auth.PermEditMovements, auth.PermDeleteMovements,
					})
				})
			}
			if h.Supplier != nil {
				pr.Route("/proveedores", func(sr chi.Router) {
					mountCRUD(sr, rbac, h.Supplier, crudPermissions{
						auth.PermViewSuppliers, auth.PermCreateSuppliers, auth.PermEditSuppliers, auth.PermDeleteSuppliers,
					})
				})
			}
			if h.Client != nil {
				pr.Route("/clientes", func(cr chi.Router) {
					mountCRUD(cr, rbac, h.Client, crudPermissions{
						auth.PermViewClients, auth.PermCreateClients, auth.PermEditClients, auth.PermDeleteClients,
					})
				})
			}
			if h.Inventory != nil {
				pr.Route("/inventarios", func(ir chi.Router) {
					mountCRUD(ir, rbac, h.Inventory, crudPermissions{
						auth.PermViewInventory, auth.PermCreateInventory, auth.PermEditInventory, auth.PermDeleteInventory,
					})
					ir.With(rbac.Require(auth.PermEditInventory)).Post("/{id}/entradas", h.Inventory.RecordEntry)
					ir.With(rbac.Require(auth.PermEditInventory)).Post("/{id}/salidas", h.Inventory.RecordExit)
					ir.With(rbac.Require(auth.PermViewInventory)).Get("/{id}/movimientos", h.Inventory.Movements)
				})
			}
			if h.ServiceReport != nil {
				pr.Route("/reportes-servicio", func(rr chi.Router) {
					mountCRUD(rr, rbac, h.ServiceReport, crudPermissions{
						auth.PermViewServiceReports, auth.PermCreateServiceReports, auth.PermEditServiceReports, auth.PermDeleteServiceReports,
					})
				})
			}
			if h.Access != nil {
				pr.Route("/accesos", func(ar chi.Router) {
					mountCRUD(ar, rbac, h.Access, crudPermissions{
						auth.PermViewAccesses, auth.PermCreateAccesses, auth.PermEditAccesses, auth.PermDeleteAccesses,
					})
				})
			}
			if h.User != nil {
				pr.Route("/users", func(ur chi.Router) {
					ur.With(rbac.Require(auth.PermManageUsers)).Get("/roles", h.User.Roles)
					mountCRUD(ur, rbac, h.User, crudPermissions{
						auth.PermViewUsers, auth.PermCreateUsers, auth.PermEditUsers, auth.PermDeleteUsers,
					})
				})
			}
		})
	})
}

func mountCRUD(r chi.Router, rbac *auth.RBACAuthorization, h crudHandler, perms crudPermissions) {
	r.With(rbac.Require(perms.view)).Get("/", h.List)
	r.With(rbac.Require(perms.create)).Post("/", h.Create)
	r.With(rbac.Require(perms.view)).Get("/{id}", h.Get)
	r.With(rbac.Require(perms.edit)).Put("/{id}", h.Update)
	r.With(rbac.Require(perms.delete)).Delete("/{id}", h.Delete)
}
