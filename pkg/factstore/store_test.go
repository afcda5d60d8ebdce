package factstore_test

import (
	"errors"
	"os"
	"path/filepath"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/pensieveco/pensieve/pkg/factstore"
)

var _ = Describe("Store", func() {
	var tmpDir string
	var path string
	var store *factstore.Store

	BeforeEach(func() {
		var err error
		tmpDir, err = os.MkdirTemp("", "factstore-test-*")
		Expect(err).NotTo(HaveOccurred())

		path = filepath.Join(tmpDir, "memories.json")
		store, err = factstore.NewStore(factstore.Config{Path: path})
		Expect(err).NotTo(HaveOccurred())
	})

	AfterEach(func() {
		os.RemoveAll(tmpDir)
	})

	Describe("NewStore", func() {
		It("requires a path", func() {
			_, err := factstore.NewStore(factstore.Config{})
			Expect(err).To(HaveOccurred())
			Expect(err.Error()).To(ContainSubstring("path is required"))
		})

		It("exposes the document path", func() {
			Expect(store.Path()).To(Equal(path))
		})
	})

	Describe("Load", func() {
		It("returns ErrNoStore when the file does not exist", func() {
			_, err := store.Load()
			Expect(err).To(MatchError(factstore.ErrNoStore))
		})

		It("loads a well-formed document", func() {
			data := `{"favorite_color": "blue", "dog_name": "Rex"}`
			Expect(os.WriteFile(path, []byte(data), 0o600)).To(Succeed())

			fb, err := store.Load()
			Expect(err).NotTo(HaveOccurred())
			Expect(fb.Len()).To(Equal(2))

			val, ok := fb.Get("favorite_color")
			Expect(ok).To(BeTrue())
			Expect(val).To(Equal("blue"))
		})

		It("reports invalid JSON as corruption", func() {
			Expect(os.WriteFile(path, []byte("{not json"), 0o600)).To(Succeed())

			_, err := store.Load()

			var corrupt *factstore.CorruptError
			Expect(errors.As(err, &corrupt)).To(BeTrue())
			Expect(corrupt.NotObject).To(BeFalse())
			Expect(corrupt.Path).To(Equal(path))
		})

		It("reports an empty file as corruption", func() {
			Expect(os.WriteFile(path, []byte(""), 0o600)).To(Succeed())

			_, err := store.Load()

			var corrupt *factstore.CorruptError
			Expect(errors.As(err, &corrupt)).To(BeTrue())
			Expect(corrupt.NotObject).To(BeFalse())
		})

		It("reports a non-object document as corruption", func() {
			Expect(os.WriteFile(path, []byte(`["a", "b"]`), 0o600)).To(Succeed())

			_, err := store.Load()

			var corrupt *factstore.CorruptError
			Expect(errors.As(err, &corrupt)).To(BeTrue())
			Expect(corrupt.NotObject).To(BeTrue())
			Expect(err.Error()).To(ContainSubstring("not a JSON object"))
		})

		It("does not modify a corrupt file", func() {
			Expect(os.WriteFile(path, []byte("{not json"), 0o600)).To(Succeed())

			_, err := store.Load()
			Expect(err).To(HaveOccurred())

			data, err := os.ReadFile(path)
			Expect(err).NotTo(HaveOccurred())
			Expect(string(data)).To(Equal("{not json"))
		})

		It("renders non-string values through their JSON form", func() {
			data := `{"age": 42, "likes_go": true, "nested": {"a": 1}}`
			Expect(os.WriteFile(path, []byte(data), 0o600)).To(Succeed())

			fb, err := store.Load()
			Expect(err).NotTo(HaveOccurred())

			age, _ := fb.Get("age")
			Expect(age).To(Equal("42"))

			likes, _ := fb.Get("likes_go")
			Expect(likes).To(Equal("true"))

			nested, _ := fb.Get("nested")
			Expect(nested).To(Equal(`{"a":1}`))
		})
	})

	Describe("Upsert", func() {
		It("creates the document on first write", func() {
			Expect(store.Upsert("favorite_color", "blue")).To(Succeed())

			fb, err := store.Load()
			Expect(err).NotTo(HaveOccurred())
			Expect(fb.Len()).To(Equal(1))

			val, ok := fb.Get("favorite_color")
			Expect(ok).To(BeTrue())
			Expect(val).To(Equal("blue"))
		})

		It("creates missing parent directories", func() {
			deep := filepath.Join(tmpDir, "a", "b", "memories.json")
			s, err := factstore.NewStore(factstore.Config{Path: deep})
			Expect(err).NotTo(HaveOccurred())

			Expect(s.Upsert("k", "v")).To(Succeed())

			_, err = os.Stat(deep)
			Expect(err).NotTo(HaveOccurred())
		})

		It("writes human-readable indented JSON", func() {
			Expect(store.Upsert("favorite_color", "blue")).To(Succeed())

			data, err := os.ReadFile(path)
			Expect(err).NotTo(HaveOccurred())
			Expect(string(data)).To(Equal("{\n  \"favorite_color\": \"blue\"\n}"))
		})

		It("merges new facts into the existing document", func() {
			Expect(store.Upsert("first", "1")).To(Succeed())
			Expect(store.Upsert("second", "2")).To(Succeed())

			fb, err := store.Load()
			Expect(err).NotTo(HaveOccurred())
			Expect(fb.Len()).To(Equal(2))
			Expect(fb.Keys()).To(Equal([]string{"first", "second"}))
		})

		It("overwrites an existing key without duplicating it", func() {
			Expect(store.Upsert("color", "blue")).To(Succeed())
			Expect(store.Upsert("color", "green")).To(Succeed())

			fb, err := store.Load()
			Expect(err).NotTo(HaveOccurred())
			Expect(fb.Len()).To(Equal(1))

			val, _ := fb.Get("color")
			Expect(val).To(Equal("green"))
		})

		It("keeps a key's position when overwritten", func() {
			Expect(store.Upsert("a", "1")).To(Succeed())
			Expect(store.Upsert("b", "2")).To(Succeed())
			Expect(store.Upsert("a", "updated")).To(Succeed())

			fb, err := store.Load()
			Expect(err).NotTo(HaveOccurred())
			Expect(fb.Keys()).To(Equal([]string{"a", "b"}))
		})

		It("preserves insertion order across many writes", func() {
			keys := []string{"zulu", "alpha", "mike", "bravo", "yankee"}
			for i, k := range keys {
				Expect(store.Upsert(k, string(rune('0'+i)))).To(Succeed())
			}

			fb, err := store.Load()
			Expect(err).NotTo(HaveOccurred())
			Expect(fb.Keys()).To(Equal(keys))
		})

		It("starts fresh over a corrupt document", func() {
			Expect(os.WriteFile(path, []byte("{not json"), 0o600)).To(Succeed())

			Expect(store.Upsert("k", "v")).To(Succeed())

			fb, err := store.Load()
			Expect(err).NotTo(HaveOccurred())
			Expect(fb.Len()).To(Equal(1))

			val, _ := fb.Get("k")
			Expect(val).To(Equal("v"))
		})

		It("starts fresh over a non-object document", func() {
			Expect(os.WriteFile(path, []byte(`[1, 2, 3]`), 0o600)).To(Succeed())

			Expect(store.Upsert("k", "v")).To(Succeed())

			fb, err := store.Load()
			Expect(err).NotTo(HaveOccurred())
			Expect(fb.Keys()).To(Equal([]string{"k"}))
		})

		It("preserves non-string values from a hand-edited document", func() {
			data := `{"age": 42}`
			Expect(os.WriteFile(path, []byte(data), 0o600)).To(Succeed())

			Expect(store.Upsert("name", "Ada")).To(Succeed())

			raw, err := os.ReadFile(path)
			Expect(err).NotTo(HaveOccurred())
			Expect(string(raw)).To(ContainSubstring(`"age": 42`))
			Expect(string(raw)).To(ContainSubstring(`"name": "Ada"`))
		})

		It("leaves no temp files behind", func() {
			Expect(store.Upsert("a", "1")).To(Succeed())
			Expect(store.Upsert("b", "2")).To(Succeed())

			entries, err := os.ReadDir(tmpDir)
			Expect(err).NotTo(HaveOccurred())
			Expect(entries).To(HaveLen(1))
			Expect(entries[0].Name()).To(Equal("memories.json"))
		})
	})
})

var _ = Describe("ResolvePath", func() {
	It("returns the configured path when set", func() {
		p, err := factstore.ResolvePath("/tmp/somewhere/memories.json")
		Expect(err).NotTo(HaveOccurred())
		Expect(p).To(Equal("/tmp/somewhere/memories.json"))
	})

	It("absolutizes relative configured paths", func() {
		p, err := factstore.ResolvePath("relative.json")
		Expect(err).NotTo(HaveOccurred())
		Expect(filepath.IsAbs(p)).To(BeTrue())
		Expect(filepath.Base(p)).To(Equal("relative.json"))
	})

	It("ignores surrounding whitespace", func() {
		p, err := factstore.ResolvePath("  /tmp/padded.json  ")
		Expect(err).NotTo(HaveOccurred())
		Expect(p).To(Equal("/tmp/padded.json"))
	})

	It("falls back to the pensieve directory default", func() {
		tmpHome, err := os.MkdirTemp("", "resolve-home-*")
		Expect(err).NotTo(HaveOccurred())
		DeferCleanup(func() { os.RemoveAll(tmpHome) })

		origHome := os.Getenv("HOME")
		Expect(os.Setenv("HOME", tmpHome)).To(Succeed())
		DeferCleanup(func() { os.Setenv("HOME", origHome) })

		p, err := factstore.ResolvePath("")
		Expect(err).NotTo(HaveOccurred())
		Expect(filepath.Base(p)).To(Equal("memories.json"))
		Expect(p).To(ContainSubstring(".pensieve"))
	})
})
