package skald_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/useskald/skald-go/pkg/skald"
)

// sseServer answers every request with the given raw SSE payload.
func sseServer(payload string) *httptest.Server {
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/event-stream")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(payload))
	}))
}

// drain collects every event until the stream reports end of sequence.
func drain(stream *skald.Stream) ([]skald.StreamEvent, error) {
	var events []skald.StreamEvent
	for {
		event, err := stream.Next()
		if err != nil {
			return events, err
		}
		if event == nil {
			return events, nil
		}
		events = append(events, *event)
	}
}

var _ = Describe("Stream", func() {
	var ctx context.Context

	BeforeEach(func() {
		ctx = context.Background()
	})

	newClient := func(baseURL string) *skald.Client {
		c, err := skald.New(skald.Config{APIKey: "sk-test", BaseURL: baseURL}, nil)
		Expect(err).NotTo(HaveOccurred())
		return c
	}

	Describe("ChatStream", func() {
		It("sets stream to true on the wire and asks for SSE", func() {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				Expect(r.Header.Get("Accept")).To(Equal("text/event-stream"))

				var wire struct {
					Stream bool `json:"stream"`
				}
				Expect(json.NewDecoder(r.Body).Decode(&wire)).To(Succeed())
				Expect(wire.Stream).To(BeTrue())

				w.Write([]byte("data: {\"type\":\"done\"}\n"))
			}))
			defer server.Close()

			c := newClient(server.URL)
			stream, err := c.ChatStream(ctx, skald.ChatRequest{Query: "q"})
			Expect(err).NotTo(HaveOccurred())
			defer stream.Close()

			_, err = drain(stream)
			Expect(err).NotTo(HaveOccurred())
		})

		It("yields token events in wire order and ends after done", func() {
			server := sseServer(
				"data: {\"type\":\"token\",\"content\":\"Hel\"}\n" +
					": ping\n" +
					"data: {\"type\":\"token\",\"content\":\"lo\"}\n" +
					"data: {\"type\":\"done\"}\n")
			defer server.Close()

			c := newClient(server.URL)
			stream, err := c.ChatStream(ctx, skald.ChatRequest{Query: "q"})
			Expect(err).NotTo(HaveOccurred())
			defer stream.Close()

			events, err := drain(stream)
			Expect(err).NotTo(HaveOccurred())
			Expect(events).To(HaveLen(3))
			Expect(events[0].Content).To(Equal("Hel"))
			Expect(events[1].Content).To(Equal("lo"))
			Expect(events[2].Type).To(Equal(skald.StreamEventDone))
		})

		It("does not read past the done event", func() {
			server := sseServer(
				"data: {\"type\":\"done\"}\n" +
					"data: {\"type\":\"token\",\"content\":\"stray\"}\n")
			defer server.Close()

			c := newClient(server.URL)
			stream, err := c.ChatStream(ctx, skald.ChatRequest{Query: "q"})
			Expect(err).NotTo(HaveOccurred())
			defer stream.Close()

			events, err := drain(stream)
			Expect(err).NotTo(HaveOccurred())
			Expect(events).To(HaveLen(1))
			Expect(events[0].Type).To(Equal(skald.StreamEventDone))
		})

		It("silently drops malformed frames", func() {
			server := sseServer(
				"data: {\"type\":\"token\",\"content\":\"ok\"}\n" +
					"data: this is not json\n" +
					"data: {\"type\":\"done\"}\n")
			defer server.Close()

			c := newClient(server.URL)
			stream, err := c.ChatStream(ctx, skald.ChatRequest{Query: "q"})
			Expect(err).NotTo(HaveOccurred())
			defer stream.Close()

			events, err := drain(stream)
			Expect(err).NotTo(HaveOccurred())
			Expect(events).To(HaveLen(2))
			Expect(events[0].Content).To(Equal("ok"))
			Expect(events[1].Type).To(Equal(skald.StreamEventDone))
		})

		It("ends immediately on an empty stream body", func() {
			server := sseServer("")
			defer server.Close()

			c := newClient(server.URL)
			stream, err := c.ChatStream(ctx, skald.ChatRequest{Query: "q"})
			Expect(err).NotTo(HaveOccurred())
			defer stream.Close()

			events, err := drain(stream)
			Expect(err).NotTo(HaveOccurred())
			Expect(events).To(BeEmpty())
		})

		It("ends cleanly when the server closes without a done event", func() {
			server := sseServer("data: {\"type\":\"token\",\"content\":\"partial\"}\n")
			defer server.Close()

			c := newClient(server.URL)
			stream, err := c.ChatStream(ctx, skald.ChatRequest{Query: "q"})
			Expect(err).NotTo(HaveOccurred())
			defer stream.Close()

			events, err := drain(stream)
			Expect(err).NotTo(HaveOccurred())
			Expect(events).To(HaveLen(1))
			Expect(events[0].Content).To(Equal("partial"))
		})

		It("surfaces upstream failures as APIError before streaming begins", func() {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				http.Error(w, "query is required", http.StatusBadRequest)
			}))
			defer server.Close()

			c := newClient(server.URL)
			_, err := c.ChatStream(ctx, skald.ChatRequest{})
			Expect(err).To(HaveOccurred())

			var apiErr *skald.APIError
			Expect(errors.As(err, &apiErr)).To(BeTrue())
			Expect(apiErr.Status).To(Equal(http.StatusBadRequest))
		})
	})

	Describe("GenerateStream", func() {
		It("streams from the generate endpoint", func() {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				Expect(r.URL.Path).To(Equal("/api/v1/generate"))

				var wire struct {
					Prompt string `json:"prompt"`
					Stream bool   `json:"stream"`
				}
				Expect(json.NewDecoder(r.Body).Decode(&wire)).To(Succeed())
				Expect(wire.Prompt).To(Equal("p"))
				Expect(wire.Stream).To(BeTrue())

				w.Write([]byte(
					"data: {\"type\":\"token\",\"content\":\"# Doc\"}\n" +
						"data: {\"type\":\"done\"}\n"))
			}))
			defer server.Close()

			c := newClient(server.URL)
			stream, err := c.GenerateStream(ctx, skald.GenerateRequest{Prompt: "p"})
			Expect(err).NotTo(HaveOccurred())
			defer stream.Close()

			events, err := drain(stream)
			Expect(err).NotTo(HaveOccurred())
			Expect(events).To(HaveLen(2))
			Expect(events[0].Content).To(Equal("# Doc"))
		})
	})

	Describe("Close", func() {
		It("is idempotent", func() {
			server := sseServer("data: {\"type\":\"done\"}\n")
			defer server.Close()

			c := newClient(server.URL)
			stream, err := c.ChatStream(ctx, skald.ChatRequest{Query: "q"})
			Expect(err).NotTo(HaveOccurred())

			Expect(stream.Close()).To(Succeed())
			Expect(stream.Close()).To(Succeed())
		})

		It("keeps Next returning nil after the stream ends", func() {
			server := sseServer("data: {\"type\":\"done\"}\n")
			defer server.Close()

			c := newClient(server.URL)
			stream, err := c.ChatStream(ctx, skald.ChatRequest{Query: "q"})
			Expect(err).NotTo(HaveOccurred())
			defer stream.Close()

			_, err = drain(stream)
			Expect(err).NotTo(HaveOccurred())

			event, err := stream.Next()
			Expect(err).NotTo(HaveOccurred())
			Expect(event).To(BeNil())
		})
	})
})
