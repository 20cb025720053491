package skald_test

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/useskald/skald-go/pkg/skald"
)

var _ = Describe("Memo operations", func() {
	var ctx context.Context

	BeforeEach(func() {
		ctx = context.Background()
	})

	newClient := func(baseURL string) *skald.Client {
		c, err := skald.New(skald.Config{APIKey: "sk-test", BaseURL: baseURL}, nil)
		Expect(err).NotTo(HaveOccurred())
		return c
	}

	Describe("CreateMemo", func() {
		It("sends an empty metadata object when none is provided", func() {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				Expect(r.Method).To(Equal(http.MethodPost))
				Expect(r.URL.Path).To(Equal("/api/v1/memo"))

				body, err := io.ReadAll(r.Body)
				Expect(err).NotTo(HaveOccurred())

				var wire map[string]json.RawMessage
				Expect(json.Unmarshal(body, &wire)).To(Succeed())
				Expect(string(wire["metadata"])).To(Equal("{}"))

				json.NewEncoder(w).Encode(skald.CreateMemoResponse{OK: true})
			}))
			defer server.Close()

			c := newClient(server.URL)
			resp, err := c.CreateMemo(ctx, skald.CreateMemoRequest{Title: "t", Content: "c"})
			Expect(err).NotTo(HaveOccurred())
			Expect(resp.OK).To(BeTrue())
		})

		It("passes caller-provided metadata through unchanged", func() {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				var wire struct {
					Metadata map[string]any `json:"metadata"`
					Tags     []string       `json:"tags"`
				}
				Expect(json.NewDecoder(r.Body).Decode(&wire)).To(Succeed())
				Expect(wire.Metadata).To(HaveKeyWithValue("team", "docs"))
				Expect(wire.Tags).To(Equal([]string{"runbook", "oncall"}))

				json.NewEncoder(w).Encode(skald.CreateMemoResponse{OK: true})
			}))
			defer server.Close()

			c := newClient(server.URL)
			_, err := c.CreateMemo(ctx, skald.CreateMemoRequest{
				Title:    "t",
				Content:  "c",
				Metadata: map[string]any{"team": "docs"},
				Tags:     []string{"runbook", "oncall"},
			})
			Expect(err).NotTo(HaveOccurred())
		})
	})

	Describe("GetMemo", func() {
		It("defaults an empty id type to memo_uuid with no id_type parameter", func() {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				Expect(r.URL.Path).To(Equal("/api/v1/memo/mem-123"))
				Expect(r.URL.Query().Has("id_type")).To(BeFalse())
				json.NewEncoder(w).Encode(skald.Memo{MemoUUID: "mem-123", Title: "t"})
			}))
			defer server.Close()

			c := newClient(server.URL)
			memo, err := c.GetMemo(ctx, "mem-123", "")
			Expect(err).NotTo(HaveOccurred())
			Expect(memo.MemoUUID).To(Equal("mem-123"))
		})

		It("percent-encodes reference ids containing slashes", func() {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				Expect(r.URL.EscapedPath()).To(Equal("/api/v1/memo/docs%2Fguides%2Fintro"))
				Expect(r.URL.Query().Get("id_type")).To(Equal("reference_id"))
				json.NewEncoder(w).Encode(skald.Memo{ReferenceID: "docs/guides/intro", Title: "t"})
			}))
			defer server.Close()

			c := newClient(server.URL)
			memo, err := c.GetMemo(ctx, "docs/guides/intro", skald.IDTypeReferenceID)
			Expect(err).NotTo(HaveOccurred())
			Expect(memo.ReferenceID).To(Equal("docs/guides/intro"))
		})
	})

	Describe("ListMemos", func() {
		It("omits pagination parameters when zero", func() {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				Expect(r.URL.RawQuery).To(BeEmpty())
				json.NewEncoder(w).Encode(skald.MemoPage{Count: 0})
			}))
			defer server.Close()

			c := newClient(server.URL)
			_, err := c.ListMemos(ctx, skald.ListMemosRequest{})
			Expect(err).NotTo(HaveOccurred())
		})

		It("sends page and page_size and decodes the pagination envelope", func() {
			next := "/api/v1/memo?page=3"
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				Expect(r.URL.Query().Get("page")).To(Equal("2"))
				Expect(r.URL.Query().Get("page_size")).To(Equal("10"))
				json.NewEncoder(w).Encode(skald.MemoPage{
					Count:   25,
					Next:    &next,
					Results: []skald.Memo{{MemoUUID: "a", Title: "t"}},
				})
			}))
			defer server.Close()

			c := newClient(server.URL)
			page, err := c.ListMemos(ctx, skald.ListMemosRequest{Page: 2, PageSize: 10})
			Expect(err).NotTo(HaveOccurred())
			Expect(page.Count).To(Equal(25))
			Expect(page.Next).NotTo(BeNil())
			Expect(page.Previous).To(BeNil())
			Expect(page.Results).To(HaveLen(1))
		})
	})

	Describe("UpdateMemo", func() {
		It("sends only the fields that were set", func() {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				Expect(r.Method).To(Equal(http.MethodPatch))

				var wire map[string]json.RawMessage
				Expect(json.NewDecoder(r.Body).Decode(&wire)).To(Succeed())
				Expect(wire).To(HaveKey("title"))
				Expect(wire).NotTo(HaveKey("content"))
				Expect(wire).NotTo(HaveKey("summary"))
				Expect(wire).NotTo(HaveKey("metadata"))

				json.NewEncoder(w).Encode(skald.Memo{MemoUUID: "mem-123", Title: "renamed"})
			}))
			defer server.Close()

			title := "renamed"
			c := newClient(server.URL)
			memo, err := c.UpdateMemo(ctx, "mem-123", skald.UpdateMemoRequest{Title: &title}, "")
			Expect(err).NotTo(HaveOccurred())
			Expect(memo.Title).To(Equal("renamed"))
		})
	})

	Describe("DeleteMemo", func() {
		It("accepts a 2xx response with no payload", func() {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				Expect(r.Method).To(Equal(http.MethodDelete))
				w.WriteHeader(http.StatusNoContent)
			}))
			defer server.Close()

			c := newClient(server.URL)
			Expect(c.DeleteMemo(ctx, "mem-123", "")).To(Succeed())
		})

		It("addresses by reference id when asked", func() {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				Expect(r.URL.Query().Get("id_type")).To(Equal("reference_id"))
				w.WriteHeader(http.StatusNoContent)
			}))
			defer server.Close()

			c := newClient(server.URL)
			Expect(c.DeleteMemo(ctx, "my-ref", skald.IDTypeReferenceID)).To(Succeed())
		})
	})
})
