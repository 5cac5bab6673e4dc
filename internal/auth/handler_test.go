package auth

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"time"

	"github.com/go-chi/chi"
	"github.com/onsi/ginkgo/v2"
	"github.com/onsi/gomega"

	"github.com/silcast/crane-admin/internal"
	"github.com/silcast/crane-admin/internal/transport"
)

var _ = ginkgo.Describe("Auth HTTP surface", func() {
	var (
		router  *chi.Mux
		service *Service
		handler *Handler
		rbac    *RBACAuthorization
		reached bool
	)

	login := func(email string) string {
		resp, err := service.Login(context.Background(), LoginDTO{Email: email, Password: "correct_password"})
		gomega.Expect(err).ToNot(gomega.HaveOccurred())
		return resp.AccessToken
	}

	do := func(method, path, token, body string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		if token != "" {
			req.Header.Set("Authorization", "Bearer "+token)
		}
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)
		return rec
	}

	ginkgo.BeforeEach(func() {
		reached = false
		service = NewService(newMockRepository(), newMemoryTokenStore(), NewJWTTokenGenerator("test-secret", time.Hour), quietLogger)
		handler = NewHandler(transport.NewBaseHandler(quietLogger), service)
		rbac = NewRBACAuthorization(quietLogger)

		router = chi.NewRouter()
		router.Post("/login", handler.Login)
		router.Group(func(pr chi.Router) {
			pr.Use(handler.AuthMiddleware)
			pr.Post("/logout", handler.Logout)
			pr.Get("/user", handler.Me)
			pr.With(rbac.Require(PermDeleteMovements)).Delete("/movimientos-grua/1", func(w http.ResponseWriter, r *http.Request) {
				reached = true
				w.WriteHeader(http.StatusNoContent)
			})
		})
		router.With(rbac.Require(PermViewGruas)).Get("/unguarded", func(w http.ResponseWriter, r *http.Request) {
			reached = true
		})
	})

	ginkgo.It("should log in and return the token envelope", func() {
		rec := do(http.MethodPost, "/login", "", `{"email":"admin@silcast.com","password":"correct_password"}`)
		gomega.Expect(rec.Code).To(gomega.Equal(http.StatusOK))

		var body map[string]interface{}
		gomega.Expect(json.Unmarshal(rec.Body.Bytes(), &body)).To(gomega.Succeed())
		gomega.Expect(body).To(gomega.HaveKey("access_token"))
		gomega.Expect(body["token_type"]).To(gomega.Equal("Bearer"))
		gomega.Expect(body["user"]).To(gomega.HaveKeyWithValue("email", "admin@silcast.com"))
	})

	ginkgo.It("should answer bad credentials with 401", func() {
		rec := do(http.MethodPost, "/login", "", `{"email":"admin@silcast.com","password":"nope"}`)
		gomega.Expect(rec.Code).To(gomega.Equal(http.StatusUnauthorized))
		gomega.Expect(rec.Body.String()).To(gomega.ContainSubstring("Credenciales inválidas"))
	})

	ginkgo.It("should answer a malformed body with 422", func() {
		rec := do(http.MethodPost, "/login", "", `{"email":`)
		gomega.Expect(rec.Code).To(gomega.Equal(http.StatusUnprocessableEntity))
	})

	ginkgo.It("should require a bearer token", func() {
		rec := do(http.MethodGet, "/user", "", "")
		gomega.Expect(rec.Code).To(gomega.Equal(http.StatusUnauthorized))
	})

	ginkgo.It("should return the current user", func() {
		rec := do(http.MethodGet, "/user", login("guardia@silcast.com"), "")
		gomega.Expect(rec.Code).To(gomega.Equal(http.StatusOK))

		var user internal.CurrentUser
		gomega.Expect(json.Unmarshal(rec.Body.Bytes(), &user)).To(gomega.Succeed())
		gomega.Expect(user.Roles).To(gomega.ConsistOf(RoleGuardia))
	})

	ginkgo.It("should reject the token after logout", func() {
		token := login("admin@silcast.com")
		gomega.Expect(do(http.MethodPost, "/logout", token, "").Code).To(gomega.Equal(http.StatusOK))
		gomega.Expect(do(http.MethodGet, "/user", token, "").Code).To(gomega.Equal(http.StatusUnauthorized))
	})

	ginkgo.It("should forbid a guardia from deleting a movement", func() {
		rec := do(http.MethodDelete, "/movimientos-grua/1", login("guardia@silcast.com"), "")
		gomega.Expect(rec.Code).To(gomega.Equal(http.StatusForbidden))
		gomega.Expect(reached).To(gomega.BeFalse())
	})

	ginkgo.It("should let a super-admin delete a movement", func() {
		rec := do(http.MethodDelete, "/movimientos-grua/1", login("admin@silcast.com"), "")
		gomega.Expect(rec.Code).To(gomega.Equal(http.StatusNoContent))
		gomega.Expect(reached).To(gomega.BeTrue())
	})

	ginkgo.It("should answer 401 when authorization runs without a user", func() {
		rec := do(http.MethodGet, "/unguarded", "", "")
		gomega.Expect(rec.Code).To(gomega.Equal(http.StatusUnauthorized))
		gomega.Expect(reached).To(gomega.BeFalse())
	})
})
