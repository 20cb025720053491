package skald_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"

	"github.com/google/uuid"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/useskald/skald-go/pkg/skald"
)

var _ = Describe("Client", func() {
	var ctx context.Context

	BeforeEach(func() {
		ctx = context.Background()
	})

	newClient := func(baseURL string) *skald.Client {
		c, err := skald.New(skald.Config{APIKey: "sk-test", BaseURL: baseURL}, nil)
		Expect(err).NotTo(HaveOccurred())
		return c
	}

	Describe("New", func() {
		It("requires an API key", func() {
			_, err := skald.New(skald.Config{}, nil)
			Expect(err).To(HaveOccurred())
			Expect(err.Error()).To(ContainSubstring("API key is required"))
		})

		It("strips a trailing slash from the base URL", func() {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				Expect(r.URL.Path).To(Equal("/api/v1/memo/abc"))
				json.NewEncoder(w).Encode(skald.Memo{Title: "t"})
			}))
			defer server.Close()

			c := newClient(server.URL + "/")
			_, err := c.GetMemo(ctx, "abc", "")
			Expect(err).NotTo(HaveOccurred())
		})
	})

	Describe("request headers", func() {
		It("sends bearer auth, a request id and a JSON content type", func() {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				Expect(r.Header.Get("Authorization")).To(Equal("Bearer sk-test"))
				Expect(r.Header.Get("Content-Type")).To(Equal("application/json"))

				_, err := uuid.Parse(r.Header.Get("X-Request-Id"))
				Expect(err).NotTo(HaveOccurred())

				json.NewEncoder(w).Encode(skald.CreateMemoResponse{OK: true})
			}))
			defer server.Close()

			c := newClient(server.URL)
			_, err := c.CreateMemo(ctx, skald.CreateMemoRequest{Title: "t", Content: "c"})
			Expect(err).NotTo(HaveOccurred())
		})

		It("omits the content type on bodyless requests", func() {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				Expect(r.Header.Get("Content-Type")).To(BeEmpty())
				json.NewEncoder(w).Encode(skald.Memo{Title: "t"})
			}))
			defer server.Close()

			c := newClient(server.URL)
			_, err := c.GetMemo(ctx, "abc", "")
			Expect(err).NotTo(HaveOccurred())
		})
	})

	Describe("error mapping", func() {
		It("maps non-2xx responses to APIError with the verbatim body", func() {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusUnprocessableEntity)
				w.Write([]byte(`{"detail":"title is required"}`))
			}))
			defer server.Close()

			c := newClient(server.URL)
			_, err := c.CreateMemo(ctx, skald.CreateMemoRequest{})
			Expect(err).To(HaveOccurred())

			var apiErr *skald.APIError
			Expect(errors.As(err, &apiErr)).To(BeTrue())
			Expect(apiErr.Status).To(Equal(http.StatusUnprocessableEntity))
			Expect(apiErr.Body).To(Equal(`{"detail":"title is required"}`))
		})

		It("maps connection failures to TransportError", func() {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
			server.Close() // nothing is listening anymore

			c := newClient(server.URL)
			_, err := c.GetMemo(ctx, "abc", "")
			Expect(err).To(HaveOccurred())

			var transportErr *skald.TransportError
			Expect(errors.As(err, &transportErr)).To(BeTrue())
			Expect(transportErr.Unwrap()).To(HaveOccurred())
		})

		It("rejects an unknown id type before any network call", func() {
			var calls atomic.Int32
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				calls.Add(1)
			}))
			defer server.Close()

			c := newClient(server.URL)
			_, err := c.GetMemo(ctx, "abc", "bogus")
			Expect(err).To(MatchError(skald.ErrInvalidIDType))
			Expect(calls.Load()).To(BeZero())
		})
	})
})
