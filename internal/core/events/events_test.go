package events_test

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"testing"

	"github.com/silcast/crane-admin/internal"
	"github.com/silcast/crane-admin/internal/core/events"
	"github.com/silcast/crane-admin/pkg/logger"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

func TestEvents(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Events Suite")
}

var _ = Describe("EventBus", func() {
	var (
		buf *bytes.Buffer
		lg  *slog.Logger
		ctx context.Context
	)

	BeforeEach(func() {
		buf = &bytes.Buffer{}
		lg = slog.New(slog.NewJSONHandler(buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
		ctx = internal.ContextWithUser(context.Background(), &internal.CurrentUser{ID: 42})
	})

	It("delivers to handlers in order, in the caller's goroutine", func() {
		bus := events.NewEventBus(lg)
		var seen []string
		bus.Subscribe(events.EventTypeMutation, func(_ context.Context, e events.Event) error {
			seen = append(seen, "first")
			return nil
		})
		bus.Subscribe(events.EventTypeMutation, func(_ context.Context, e events.Event) error {
			seen = append(seen, "second")
			return nil
		})

		Expect(bus.Publish(ctx, events.NewMutationEvent(ctx, "grua", 1, events.ActionCreate, nil))).To(Succeed())
		Expect(seen).To(Equal([]string{"first", "second"}))
	})

	It("stops at the first failing handler", func() {
		bus := events.NewEventBus(lg)
		calls := 0
		bus.Subscribe(events.EventTypeMutation, func(context.Context, events.Event) error {
			calls++
			return errors.New("boom")
		})
		bus.Subscribe(events.EventTypeMutation, func(context.Context, events.Event) error {
			calls++
			return nil
		})

		Expect(bus.Publish(ctx, events.NewMutationEvent(ctx, "grua", 1, events.ActionCreate, nil))).To(HaveOccurred())
		Expect(calls).To(Equal(1))
	})

	Describe("mutation events", func() {
		It("captures the actor from the context", func() {
			e := events.NewMutationEvent(ctx, "empleado", 9, events.ActionUpdate, nil)
			Expect(e.ActorID).To(Equal(int64(42)))
			Expect(e.Outcome).To(Equal(events.OutcomeSucceeded))
			Expect(e.EventID()).NotTo(BeEmpty())
		})

		It("classifies expected errors as rejections and the rest as failures", func() {
			rejected := events.NewMutationEvent(ctx, "empleado", 9, events.ActionDelete, internal.NewResourceNotFound("Empleado"))
			Expect(rejected.Outcome).To(Equal(events.OutcomeRejected))

			failed := events.NewMutationEvent(ctx, "empleado", 9, events.ActionDelete, errors.New("db down"))
			Expect(failed.Outcome).To(Equal(events.OutcomeFailed))
		})

		It("writes an audit line with actor, entity and outcome", func() {
			events.Record(ctx, events.NewAuditBus(lg), "proveedor", 3, events.ActionDelete, nil)
			Expect(buf.String()).To(ContainSubstring(`"actor_id":42`))
			Expect(buf.String()).To(ContainSubstring(`"entity":"proveedor"`))
			Expect(buf.String()).To(ContainSubstring(`"outcome":"succeeded"`))
		})

		It("prefers the request logger over the fallback", func() {
			reqBuf := &bytes.Buffer{}
			reqLogger := slog.New(slog.NewJSONHandler(reqBuf, nil)).With("request_id", "req-7")
			reqCtx := logger.Into(ctx, reqLogger)

			events.Record(reqCtx, events.NewAuditBus(lg), "grua", 5, events.ActionUpdate, nil)
			Expect(reqBuf.String()).To(ContainSubstring(`"request_id":"req-7"`))
			Expect(reqBuf.String()).To(ContainSubstring(`"entity":"grua"`))
			Expect(buf.String()).NotTo(ContainSubstring(`"entity":"grua"`))
		})
	})
})
