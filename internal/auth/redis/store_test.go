package redis_test

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	goredis "github.com/redis/go-redis/v9"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/silcast/crane-admin/internal/auth"
	authRedis "github.com/silcast/crane-admin/internal/auth/redis"
)

func TestRedisTokenStore(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Auth Redis Suite")
}

var _ = Describe("Redis TokenStore", func() {
	var (
		ctx   context.Context
		mr    *miniredis.Miniredis
		store *authRedis.TokenStore
	)

	BeforeEach(func() {
		var err error
		ctx = context.Background()
		mr, err = miniredis.Run()
		Expect(err).NotTo(HaveOccurred())
		DeferCleanup(mr.Close)

		client := goredis.NewClient(&goredis.Options{Addr: mr.Addr()})
		DeferCleanup(client.Close)
		store = authRedis.NewTokenStore(client, "test:session:")
	})

	It("stores a session under the prefixed token id with the token TTL", func() {
		token := &auth.IssuedToken{ID: "abc", UserID: 9, ExpiresAt: time.Now().Add(30 * time.Minute)}
		Expect(store.Save(ctx, token)).To(Succeed())

		Expect(mr.Exists("test:session:abc")).To(BeTrue())
		Expect(mr.TTL("test:session:abc")).To(BeNumerically("~", 30*time.Minute, time.Minute))

		live, err := store.Exists(ctx, "abc")
		Expect(err).NotTo(HaveOccurred())
		Expect(live).To(BeTrue())
	})

	It("forgets a revoked session", func() {
		Expect(store.Save(ctx, &auth.IssuedToken{ID: "abc", UserID: 9, ExpiresAt: time.Now().Add(time.Minute)})).To(Succeed())
		Expect(store.Revoke(ctx, "abc")).To(Succeed())

		live, err := store.Exists(ctx, "abc")
		Expect(err).NotTo(HaveOccurred())
		Expect(live).To(BeFalse())
	})

	It("lets sessions lapse with their TTL", func() {
		Expect(store.Save(ctx, &auth.IssuedToken{ID: "abc", UserID: 9, ExpiresAt: time.Now().Add(time.Minute)})).To(Succeed())
		mr.FastForward(2 * time.Minute)

		live, err := store.Exists(ctx, "abc")
		Expect(err).NotTo(HaveOccurred())
		Expect(live).To(BeFalse())
	})

	It("refuses to store an already expired token", func() {
		err := store.Save(ctx, &auth.IssuedToken{ID: "old", ExpiresAt: time.Now().Add(-time.Second)})
		Expect(err).To(HaveOccurred())
	})
})
